package cmd

import (
	"github.com/rustyeddy/stocksim/ledger"
	"github.com/rustyeddy/stocksim/report"
	"github.com/rustyeddy/stocksim/store"
	"github.com/spf13/cobra"
)

var portfolioCmd = &cobra.Command{
	Use:     "portfolio",
	Aliases: []string{"pf"},
	Short:   "Show cash, holdings and total portfolio value",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := cfg.Catalog()
		if err != nil {
			return err
		}
		report.New(cmd.OutOrStdout(), cfg.Account.Currency).Portfolio(loadLedger(), catalog)
		return nil
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the transaction history, most recent first",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		report.New(cmd.OutOrStdout(), cfg.Account.Currency).History(loadLedger().HistoryDescending())
	},
}

func init() {
	rootCmd.AddCommand(portfolioCmd)
	rootCmd.AddCommand(historyCmd)
}

// loadLedger restores the saved portfolio or starts a fresh one.
func loadLedger() *ledger.Ledger {
	l, _ := store.LoadOrNew(cfg.State.Path, cfg.Account.StartingCash.Decimal, appLog)
	return l
}
