package cmd

import (
	"github.com/rustyeddy/stocksim/report"
	"github.com/spf13/cobra"
)

var marketCmd = &cobra.Command{
	Use:   "market",
	Short: "List the stocks available to trade",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := cfg.Catalog()
		if err != nil {
			return err
		}
		report.New(cmd.OutOrStdout(), cfg.Account.Currency).Market(catalog)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(marketCmd)
}
