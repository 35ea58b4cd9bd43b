package cmd

import (
	"fmt"

	"github.com/rustyeddy/stocksim/input"
	"github.com/rustyeddy/stocksim/journal"
	"github.com/rustyeddy/stocksim/ledger"
	"github.com/rustyeddy/stocksim/report"
	"github.com/rustyeddy/stocksim/store"
	"github.com/spf13/cobra"
)

var buyCmd = &cobra.Command{
	Use:   "buy <symbol> <quantity>",
	Short: "Buy whole shares at the current market price",
	Long: `Buy shares of a listed stock. The cost is taken from your cash balance.

Example:
  stocksim buy TCS 2`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTrade(cmd, ledger.Buy, args)
	},
}

var sellCmd = &cobra.Command{
	Use:   "sell <symbol> <quantity>",
	Short: "Sell whole shares at the current market price",
	Long: `Sell shares you hold. The proceeds are added to your cash balance.

Example:
  stocksim sell TCS 1`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTrade(cmd, ledger.Sell, args)
	},
}

func init() {
	rootCmd.AddCommand(buyCmd)
	rootCmd.AddCommand(sellCmd)
}

// runTrade applies one order and saves the result. A rejected order leaves
// the saved state untouched.
func runTrade(cmd *cobra.Command, kind ledger.Kind, args []string) error {
	order, err := input.ParseOrder(args[0], args[1])
	if err != nil {
		return err
	}
	catalog, err := cfg.Catalog()
	if err != nil {
		return err
	}
	inst, err := catalog.Resolve(order.Symbol)
	if err != nil {
		return err
	}

	l := loadLedger()
	var fill ledger.Fill
	if kind == ledger.Buy {
		fill, err = l.Buy(inst, order.Quantity)
	} else {
		fill, err = l.Sell(inst, order.Quantity)
	}
	if err != nil {
		appLog.Debug("order rejected", "kind", kind, "symbol", order.Symbol, "quantity", order.Quantity, "err", err)
		return err
	}

	if err := store.Save(cfg.State.Path, l, cfg.Account.Currency); err != nil {
		return fmt.Errorf("save portfolio: %w", err)
	}
	appLog.Info("trade committed", "id", fill.ID, "kind", fill.Kind, "symbol", fill.Symbol,
		"quantity", fill.Quantity, "cash", fill.CashAfter.String())

	report.New(cmd.OutOrStdout(), cfg.Account.Currency).Fill(fill)

	if err := recordFill(fill); err != nil {
		appLog.Error("journal write failed", "id", fill.ID, "err", err)
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: trade saved but not journaled: %v\n", err)
	}
	return nil
}

func recordFill(fill ledger.Fill) error {
	j, err := cfg.OpenJournal()
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer j.Close()

	return j.RecordTransaction(journal.FromFill(fill))
}
