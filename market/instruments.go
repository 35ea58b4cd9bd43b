package market

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrSymbolNotFound = errors.New("symbol not found in market data")

// Instrument is a quoted, tradable stock. Values are snapshots and are never
// modified once they are in a Catalog.
type Instrument struct {
	Symbol string
	Name   string
	Price  decimal.Decimal
}

func (i Instrument) String() string {
	return fmt.Sprintf("%s (%s): %s", i.Symbol, i.Name, i.Price.StringFixed(2))
}

// Catalog is the read-only set of instruments known to the simulator, keyed
// by upper-case symbol.
type Catalog struct {
	instruments map[string]Instrument
}

// NewCatalog builds a catalog. Symbols are normalized to upper case; empty
// symbols, negative prices and duplicates are rejected.
func NewCatalog(instruments ...Instrument) (*Catalog, error) {
	c := &Catalog{instruments: make(map[string]Instrument, len(instruments))}
	for _, inst := range instruments {
		sym := normalize(inst.Symbol)
		if sym == "" {
			return nil, fmt.Errorf("instrument %q: symbol is required", inst.Name)
		}
		if inst.Price.IsNegative() {
			return nil, fmt.Errorf("instrument %s: negative price %s", sym, inst.Price)
		}
		if _, dup := c.instruments[sym]; dup {
			return nil, fmt.Errorf("instrument %s: duplicate symbol", sym)
		}
		inst.Symbol = sym
		c.instruments[sym] = inst
	}
	return c, nil
}

// DefaultCatalog returns the built-in market: five NSE listings at fixed
// INR prices. There is no live feed.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(
		Instrument{Symbol: "TCS", Name: "Tata Consultancy Services", Price: decimal.RequireFromString("3800.00")},
		Instrument{Symbol: "RELIANCE", Name: "Reliance Industries", Price: decimal.RequireFromString("2950.00")},
		Instrument{Symbol: "HDFC", Name: "HDFC Bank", Price: decimal.RequireFromString("1500.00")},
		Instrument{Symbol: "INFY", Name: "Infosys", Price: decimal.RequireFromString("1600.00")},
		Instrument{Symbol: "SBIN", Name: "State Bank of India", Price: decimal.RequireFromString("750.00")},
	)
	if err != nil {
		panic(err)
	}
	return c
}

// Lookup returns the instrument for symbol. Matching ignores case and
// surrounding whitespace.
func (c *Catalog) Lookup(symbol string) (Instrument, bool) {
	inst, ok := c.instruments[normalize(symbol)]
	return inst, ok
}

// Resolve is Lookup for callers that want an error on a miss.
func (c *Catalog) Resolve(symbol string) (Instrument, error) {
	inst, ok := c.Lookup(symbol)
	if !ok {
		return Instrument{}, fmt.Errorf("stock with symbol %q: %w", normalize(symbol), ErrSymbolNotFound)
	}
	return inst, nil
}

// Instruments returns every instrument sorted by symbol.
func (c *Catalog) Instruments() []Instrument {
	out := make([]Instrument, 0, len(c.instruments))
	for _, inst := range c.instruments {
		out = append(out, inst)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Symbol < out[j].Symbol })
	return out
}

func (c *Catalog) Len() int { return len(c.instruments) }

func normalize(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}
