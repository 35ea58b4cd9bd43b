// Package report renders the human-readable views of the simulator: the
// market listing, the portfolio, the transaction history and trade results.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/rustyeddy/stocksim/ledger"
	"github.com/rustyeddy/stocksim/market"
)

// Printer writes reports to W, formatting money in Currency.
type Printer struct {
	W        io.Writer
	Currency string
}

func New(w io.Writer, currency string) *Printer {
	return &Printer{W: w, Currency: currency}
}

func (p *Printer) money(inst market.Instrument) string {
	return market.FormatMoney(inst.Price, p.Currency)
}

// Market lists every instrument in the catalog.
func (p *Printer) Market(c *market.Catalog) {
	fmt.Fprintln(p.W, "--- Current Market Data ---")
	insts := c.Instruments()
	if len(insts) == 0 {
		fmt.Fprintln(p.W, "No stocks available in the market.")
	}
	for _, inst := range insts {
		fmt.Fprintf(p.W, "%s (%s): %s\n", inst.Symbol, inst.Name, p.money(inst))
	}
	fmt.Fprintln(p.W, strings.Repeat("-", 27))
}

// Portfolio shows cash, each holding valued at the catalog price and the
// total portfolio value.
func (p *Printer) Portfolio(l *ledger.Ledger, prices ledger.PriceLookup) {
	fmt.Fprintln(p.W, "--- Your Portfolio ---")
	fmt.Fprintf(p.W, "Cash Balance: %s\n", market.FormatMoney(l.Cash(), p.Currency))
	fmt.Fprintln(p.W, "Holdings:")

	positions := l.Positions(prices)
	if len(positions) == 0 {
		fmt.Fprintln(p.W, "  No stocks held.")
	}
	for _, pos := range positions {
		if !pos.Priced {
			fmt.Fprintf(p.W, "  - %s: %d shares (Price data unavailable)\n", pos.Symbol, pos.Quantity)
			continue
		}
		fmt.Fprintf(p.W, "  - %s (%s): %d shares (Current Price: %s, Value: %s)\n",
			pos.Symbol, pos.Name, pos.Quantity,
			market.FormatMoney(pos.Price, p.Currency),
			market.FormatMoney(pos.Value, p.Currency))
	}

	fmt.Fprintf(p.W, "Total Portfolio Value: %s\n", market.FormatMoney(l.Valuation(prices), p.Currency))
	fmt.Fprintln(p.W, strings.Repeat("-", 22))
}

// History lists transactions in the order given; callers pass
// Ledger.HistoryDescending for most-recent-first.
func (p *Printer) History(txs []ledger.Transaction) {
	fmt.Fprintln(p.W, "--- Transaction History ---")
	if len(txs) == 0 {
		fmt.Fprintln(p.W, "  No transactions yet.")
	}
	for _, tx := range txs {
		fmt.Fprintf(p.W, "  %s %d shares of %s at %s/share on %s\n",
			tx.Kind, tx.Quantity, tx.Symbol,
			market.FormatMoney(tx.UnitPrice, p.Currency),
			tx.Time.Local().Format("2006-01-02 15:04:05"))
	}
	fmt.Fprintln(p.W, strings.Repeat("-", 27))
}

// Fill reports a completed trade.
func (p *Printer) Fill(f ledger.Fill) {
	verb := "bought"
	if f.Kind == ledger.Sell {
		verb = "sold"
	}
	fmt.Fprintf(p.W, "Successfully %s %d shares of %s for %s. Cash balance: %s\n",
		verb, f.Quantity, f.Symbol,
		market.FormatMoney(f.Amount, p.Currency),
		market.FormatMoney(f.CashAfter, p.Currency))
}
