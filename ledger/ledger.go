// Package ledger holds one trader's cash, stock holdings and the append-only
// log of completed buys and sells.
//
// Every operation is all-or-nothing: it validates against the current state
// first, then updates cash, holdings and history together under one lock.
// A rejected operation leaves the ledger exactly as it was.
package ledger

import (
	"math"
	"sort"
	"sync"
	"time"

	"github.com/rustyeddy/stocksim/market"
	"github.com/rustyeddy/stocksim/pkg/id"
	"github.com/shopspring/decimal"
)

// PriceLookup resolves a symbol to its current quote. *market.Catalog
// satisfies it.
type PriceLookup interface {
	Lookup(symbol string) (market.Instrument, bool)
}

// Ledger is one trader's account. It is safe for concurrent use.
type Ledger struct {
	mu       sync.Mutex
	cash     decimal.Decimal
	holdings map[string]int64
	history  []Transaction

	now func() time.Time
	ids id.Source
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithClock sets the time source used to stamp transactions.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// WithIDs sets the source of transaction IDs.
func WithIDs(src id.Source) Option {
	return func(l *Ledger) { l.ids = src }
}

// New returns an empty ledger funded with startingCash.
func New(startingCash decimal.Decimal, opts ...Option) *Ledger {
	l := &Ledger{
		cash:     startingCash,
		holdings: make(map[string]int64),
		now:      time.Now,
		ids:      id.NewGenerator(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Fill is the outcome of a successful Buy or Sell.
type Fill struct {
	Transaction
	// Amount is the cash that changed hands: the cost of a buy or the
	// revenue of a sale.
	Amount decimal.Decimal
	// CashAfter is the balance once the fill was applied.
	CashAfter decimal.Decimal
}

// Buy purchases qty shares of inst at inst.Price.
func (l *Ledger) Buy(inst market.Instrument, qty int64) (Fill, error) {
	if qty <= 0 {
		return Fill{}, invalidQuantity(OpBuy, inst.Symbol, qty)
	}
	if err := checkInstrument(OpBuy, inst); err != nil {
		return Fill{}, err
	}
	cost := inst.Price.Mul(decimal.NewFromInt(qty))

	l.mu.Lock()
	defer l.mu.Unlock()

	if cost.GreaterThan(l.cash) {
		return Fill{}, &TradeError{
			Op:        OpBuy,
			Symbol:    inst.Symbol,
			Requested: cost,
			Available: l.cash,
			Err:       ErrInsufficientFunds,
		}
	}
	if held := l.holdings[inst.Symbol]; held > math.MaxInt64-qty {
		return Fill{}, &TradeError{
			Op:        OpBuy,
			Symbol:    inst.Symbol,
			Requested: decimal.NewFromInt(qty),
			Available: decimal.NewFromInt(held),
			Err:       ErrHoldingOverflow,
		}
	}

	tx := l.newTransactionLocked(inst, Buy, qty)
	l.cash = l.cash.Sub(cost)
	l.holdings[inst.Symbol] += qty
	l.history = append(l.history, tx)

	return Fill{Transaction: tx, Amount: cost, CashAfter: l.cash}, nil
}

// Sell disposes of qty shares of inst at inst.Price. The holding entry is
// dropped once it reaches zero.
func (l *Ledger) Sell(inst market.Instrument, qty int64) (Fill, error) {
	if qty <= 0 {
		return Fill{}, invalidQuantity(OpSell, inst.Symbol, qty)
	}
	if err := checkInstrument(OpSell, inst); err != nil {
		return Fill{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	held := l.holdings[inst.Symbol]
	if held < qty {
		return Fill{}, &TradeError{
			Op:        OpSell,
			Symbol:    inst.Symbol,
			Requested: decimal.NewFromInt(qty),
			Available: decimal.NewFromInt(held),
			Err:       ErrInsufficientShares,
		}
	}

	revenue := inst.Price.Mul(decimal.NewFromInt(qty))
	tx := l.newTransactionLocked(inst, Sell, qty)
	l.cash = l.cash.Add(revenue)
	if held == qty {
		delete(l.holdings, inst.Symbol)
	} else {
		l.holdings[inst.Symbol] = held - qty
	}
	l.history = append(l.history, tx)

	return Fill{Transaction: tx, Amount: revenue, CashAfter: l.cash}, nil
}

func (l *Ledger) newTransactionLocked(inst market.Instrument, kind Kind, qty int64) Transaction {
	return Transaction{
		ID:        l.ids.New(),
		Symbol:    inst.Symbol,
		Kind:      kind,
		Quantity:  qty,
		UnitPrice: inst.Price,
		Time:      l.now(),
	}
}

// Valuation returns cash plus every holding marked at its current catalog
// price. A holding whose symbol the catalog no longer knows counts as zero;
// it is skipped, not removed.
func (l *Ledger) Valuation(prices PriceLookup) decimal.Decimal {
	l.mu.Lock()
	defer l.mu.Unlock()

	total := l.cash
	for sym, qty := range l.holdings {
		inst, ok := prices.Lookup(sym)
		if !ok {
			continue
		}
		total = total.Add(inst.Price.Mul(decimal.NewFromInt(qty)))
	}
	return total
}

// Position is a holding marked to market.
type Position struct {
	Symbol   string
	Name     string
	Quantity int64
	Price    decimal.Decimal
	Value    decimal.Decimal
	// Priced is false when the catalog has no quote for Symbol; Price and
	// Value are zero in that case.
	Priced bool
}

// Positions returns the holdings sorted by symbol, each valued against prices.
func (l *Ledger) Positions(prices PriceLookup) []Position {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Position, 0, len(l.holdings))
	for sym, qty := range l.holdings {
		p := Position{Symbol: sym, Quantity: qty}
		if inst, ok := prices.Lookup(sym); ok {
			p.Name = inst.Name
			p.Price = inst.Price
			p.Value = inst.Price.Mul(decimal.NewFromInt(qty))
			p.Priced = true
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Symbol < out[j].Symbol })
	return out
}

// Cash returns the current cash balance.
func (l *Ledger) Cash() decimal.Decimal {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cash
}

// Quantity returns the number of shares held for symbol, zero if none.
func (l *Ledger) Quantity(symbol string) int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.holdings[symbol]
}

// Holdings returns a copy of the symbol -> quantity map.
func (l *Ledger) Holdings() map[string]int64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make(map[string]int64, len(l.holdings))
	for sym, qty := range l.holdings {
		out[sym] = qty
	}
	return out
}

// History returns a copy of the log in chronological order.
func (l *Ledger) History() []Transaction {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Transaction, len(l.history))
	copy(out, l.history)
	return out
}

// HistoryDescending returns a copy of the log, most recent first.
func (l *Ledger) HistoryDescending() []Transaction {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Transaction, len(l.history))
	for i, tx := range l.history {
		out[len(l.history)-1-i] = tx
	}
	return out
}
