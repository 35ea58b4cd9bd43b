package cmd

import (
	"fmt"
	"log/slog"

	"github.com/rustyeddy/stocksim/config"
	"github.com/rustyeddy/stocksim/internal/logger"
	"github.com/spf13/cobra"
)

var (
	cfgFile  string
	logLevel string

	cfg    *config.Config
	appLog = slog.Default()
)

var rootCmd = &cobra.Command{
	Use:   "stocksim",
	Short: "A paper-trading stock portfolio simulator",
	Long: `Stocksim keeps a simulated cash account and a stock portfolio on disk.

It provides commands for:
  - Listing the market catalog and its current prices
  - Buying and selling whole shares against your cash balance
  - Viewing holdings, their value and the total portfolio value
  - Reviewing the transaction history and the audit journal

State is saved to the file named by state.path after every trade.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default settings when empty)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn or error")
}

func setup(cmd *cobra.Command, args []string) error {
	lvl, err := logger.ParseLevel(logLevel)
	if err != nil {
		return err
	}
	appLog = logger.Init("stocksim", lvl)

	if cfgFile == "" {
		cfg = config.Default()
		return nil
	}
	loaded, err := config.LoadFromFile(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg = loaded
	appLog.Debug("config loaded", "path", cfgFile, "state", cfg.State.Path, "journal", cfg.Journal.Type)
	return nil
}
