package ledger

import (
	"errors"
	"fmt"

	"github.com/rustyeddy/stocksim/market"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidQuantity    = errors.New("invalid quantity, must be greater than zero")
	ErrInsufficientFunds  = errors.New("insufficient cash")
	ErrInsufficientShares = errors.New("insufficient shares")
	ErrInvalidInstrument  = errors.New("invalid instrument")
	ErrHoldingOverflow    = errors.New("holding too large")
)

// Op names the ledger operation that failed.
type Op string

const (
	OpBuy  Op = "buy"
	OpSell Op = "sell"
)

// TradeError reports a rejected buy or sell. Requested and Available carry
// the amounts that were compared: cash for ErrInsufficientFunds, share counts
// for ErrInsufficientShares, ErrInvalidQuantity and ErrHoldingOverflow, and
// the quoted price for ErrInvalidInstrument.
type TradeError struct {
	Op        Op
	Symbol    string
	Requested decimal.Decimal
	Available decimal.Decimal
	Err       error
}

func (e *TradeError) Error() string {
	switch {
	case errors.Is(e.Err, ErrInsufficientFunds):
		return fmt.Sprintf("%s %s: %v: need %s, but only have %s",
			e.Op, e.Symbol, e.Err, e.Requested.StringFixed(2), e.Available.StringFixed(2))
	case errors.Is(e.Err, ErrInsufficientShares):
		return fmt.Sprintf("%s %s: %v: hold %s, but tried to sell %s",
			e.Op, e.Symbol, e.Err, e.Available, e.Requested)
	case errors.Is(e.Err, ErrInvalidInstrument):
		return fmt.Sprintf("%s %q: %v: price %s", e.Op, e.Symbol, e.Err, e.Requested)
	case errors.Is(e.Err, ErrHoldingOverflow):
		return fmt.Sprintf("%s %s: %v: hold %s, cannot add %s", e.Op, e.Symbol, e.Err, e.Available, e.Requested)
	default:
		return fmt.Sprintf("%s %s: %v: got %s", e.Op, e.Symbol, e.Err, e.Requested)
	}
}

func (e *TradeError) Unwrap() error { return e.Err }

func invalidQuantity(op Op, symbol string, qty int64) error {
	return &TradeError{
		Op:        op,
		Symbol:    symbol,
		Requested: decimal.NewFromInt(qty),
		Err:       ErrInvalidQuantity,
	}
}

// checkInstrument rejects quotes the ledger cannot record: a blank symbol or
// a negative price.
func checkInstrument(op Op, inst market.Instrument) error {
	if inst.Symbol == "" || inst.Price.IsNegative() {
		return &TradeError{
			Op:        op,
			Symbol:    inst.Symbol,
			Requested: inst.Price,
			Err:       ErrInvalidInstrument,
		}
	}
	return nil
}
