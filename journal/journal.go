// Package journal keeps an audit trail of completed transactions next to the
// portfolio state file. The state file stays the source of truth; the journal
// is an append-only mirror meant for querying and review.
package journal

import (
	"time"

	"github.com/rustyeddy/stocksim/ledger"
	"github.com/shopspring/decimal"
)

// TransactionRecord is one journaled buy or sell.
type TransactionRecord struct {
	ID        string
	Symbol    string
	Kind      string
	Quantity  int64
	UnitPrice decimal.Decimal
	Amount    decimal.Decimal
	CashAfter decimal.Decimal
	Time      time.Time
}

// FromFill builds the record for a completed ledger fill.
func FromFill(f ledger.Fill) TransactionRecord {
	return TransactionRecord{
		ID:        f.ID,
		Symbol:    f.Symbol,
		Kind:      string(f.Kind),
		Quantity:  f.Quantity,
		UnitPrice: f.UnitPrice,
		Amount:    f.Amount,
		CashAfter: f.CashAfter,
		Time:      f.Time,
	}
}

type Journal interface {
	RecordTransaction(TransactionRecord) error
	Close() error
}

// Discard is a Journal that drops every record. It is used when journaling
// is turned off in the config.
var Discard Journal = discard{}

type discard struct{}

func (discard) RecordTransaction(TransactionRecord) error { return nil }
func (discard) Close() error                              { return nil }
