package ledger

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// State is the full content of a ledger, detached from any lock. It is what
// gets persisted and restored.
type State struct {
	Cash     decimal.Decimal
	Holdings map[string]int64
	History  []Transaction
}

// Snapshot copies the ledger's state.
func (l *Ledger) Snapshot() State {
	l.mu.Lock()
	defer l.mu.Unlock()

	s := State{
		Cash:     l.cash,
		Holdings: make(map[string]int64, len(l.holdings)),
		History:  make([]Transaction, len(l.history)),
	}
	for sym, qty := range l.holdings {
		s.Holdings[sym] = qty
	}
	copy(s.History, l.history)
	return s
}

// Validate checks the ledger invariants against s. History order is the
// order of insertion; timestamps are not compared because the wall clock
// may step backwards between trades.
func (s State) Validate() error {
	var errs error
	if s.Cash.IsNegative() {
		errs = errors.Join(errs, fmt.Errorf("negative cash %s", s.Cash))
	}
	for sym, qty := range s.Holdings {
		if sym == "" {
			errs = errors.Join(errs, errors.New("holding with empty symbol"))
		}
		if qty < 1 {
			errs = errors.Join(errs, fmt.Errorf("holding %s: quantity %d", sym, qty))
		}
	}
	for i, tx := range s.History {
		if !tx.Kind.Valid() {
			errs = errors.Join(errs, fmt.Errorf("history[%d]: unknown kind %q", i, tx.Kind))
		}
		if tx.Quantity <= 0 {
			errs = errors.Join(errs, fmt.Errorf("history[%d]: quantity %d", i, tx.Quantity))
		}
		if tx.UnitPrice.IsNegative() {
			errs = errors.Join(errs, fmt.Errorf("history[%d]: negative price %s", i, tx.UnitPrice))
		}
	}
	return errs
}

// Restore rebuilds a ledger from s after validating it.
func Restore(s State, opts ...Option) (*Ledger, error) {
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid ledger state: %w", err)
	}
	l := New(s.Cash, opts...)
	for sym, qty := range s.Holdings {
		l.holdings[sym] = qty
	}
	l.history = make([]Transaction, len(s.History))
	copy(l.history, s.History)
	return l, nil
}
