package ledger

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Kind is the side of a transaction.
type Kind string

const (
	Buy  Kind = "BUY"
	Sell Kind = "SELL"
)

func (k Kind) Valid() bool {
	return k == Buy || k == Sell
}

// ParseKind accepts "BUY" or "SELL".
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if !k.Valid() {
		return "", fmt.Errorf("unknown transaction kind %q", s)
	}
	return k, nil
}

// Transaction records one completed buy or sell. Transactions are never
// modified once appended to a ledger.
type Transaction struct {
	ID        string
	Symbol    string
	Kind      Kind
	Quantity  int64
	UnitPrice decimal.Decimal
	Time      time.Time
}

// Amount is Quantity × UnitPrice.
func (t Transaction) Amount() decimal.Decimal {
	return t.UnitPrice.Mul(decimal.NewFromInt(t.Quantity))
}

func (t Transaction) String() string {
	return fmt.Sprintf("%s %d shares of %s at %s/share on %s",
		t.Kind, t.Quantity, t.Symbol, t.UnitPrice.StringFixed(2), t.Time.Format("2006-01-02 15:04:05"))
}
