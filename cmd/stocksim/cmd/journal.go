package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rustyeddy/stocksim/input"
	"github.com/rustyeddy/stocksim/journal"
	"github.com/spf13/cobra"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Query the transaction journal",
	Long: `Query and display transaction journal records.

Subcommands:
  tx     - Get details of a specific transaction by ID
  today  - List transactions made today
  day    - List transactions made on a specific day
  symbol - List every transaction for one stock
  csv    - Print a CSV journal

Examples:
  stocksim journal tx <transaction-id>
  stocksim journal today
  stocksim journal day 2024-01-15
  stocksim journal symbol TCS`,
}

var journalTxCmd = &cobra.Command{
	Use:   "tx <transaction-id>",
	Short: "Get details of a specific transaction",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalTx,
}

var journalTodayCmd = &cobra.Command{
	Use:   "today",
	Short: "List transactions made today",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return listDay(cmd, time.Now().In(time.Local).Format("2006-01-02"))
	},
}

var journalDayCmd = &cobra.Command{
	Use:   "day <YYYY-MM-DD>",
	Short: "List transactions made on a specific day",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return listDay(cmd, args[0])
	},
}

var journalSymbolCmd = &cobra.Command{
	Use:   "symbol <symbol>",
	Short: "List every transaction for one stock",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalSymbol,
}

var journalCSVCmd = &cobra.Command{
	Use:   "csv [path]",
	Short: "Print the transactions recorded in a CSV journal",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runJournalCSV,
}

var journalDBPath string

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.AddCommand(journalTxCmd)
	journalCmd.AddCommand(journalTodayCmd)
	journalCmd.AddCommand(journalDayCmd)
	journalCmd.AddCommand(journalSymbolCmd)
	journalCmd.AddCommand(journalCSVCmd)

	journalCmd.PersistentFlags().StringVarP(&journalDBPath, "db", "d", "", "path to SQLite journal DB (default journal.db_path)")
}

func openSQLite() (*journal.SQLite, error) {
	path := journalDBPath
	if path == "" {
		path = cfg.Journal.DBPath
	}
	if path == "" {
		return nil, errors.New("no SQLite journal configured: set journal.db_path or pass --db")
	}
	j, err := journal.NewSQLite(path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	return j, nil
}

func runJournalTx(cmd *cobra.Command, args []string) error {
	j, err := openSQLite()
	if err != nil {
		return err
	}
	defer j.Close()

	rec, err := j.GetTransaction(args[0])
	if err != nil {
		return fmt.Errorf("get transaction: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), journal.FormatTransactionOrg(rec))
	return nil
}

func listDay(cmd *cobra.Command, day string) error {
	start, end, err := dayBounds(time.Local, day)
	if err != nil {
		return fmt.Errorf("date: %w", err)
	}

	j, err := openSQLite()
	if err != nil {
		return err
	}
	defer j.Close()

	recs, err := j.ListBetween(start, end)
	if err != nil {
		return fmt.Errorf("query transactions: %w", err)
	}

	printRecords(cmd, recs)
	return nil
}

func runJournalSymbol(cmd *cobra.Command, args []string) error {
	sym, err := input.ParseSymbol(args[0])
	if err != nil {
		return err
	}

	j, err := openSQLite()
	if err != nil {
		return err
	}
	defer j.Close()

	recs, err := j.ListBySymbol(sym)
	if err != nil {
		return fmt.Errorf("query transactions: %w", err)
	}

	printRecords(cmd, recs)
	return nil
}

func runJournalCSV(cmd *cobra.Command, args []string) error {
	path := cfg.Journal.CSVPath
	if len(args) == 1 {
		path = args[0]
	}
	if path == "" {
		return errors.New("no CSV journal configured: set journal.csv_path or pass a path")
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	recs, err := journal.ReadCSV(f)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	printRecords(cmd, recs)
	return nil
}

func printRecords(cmd *cobra.Command, recs []journal.TransactionRecord) {
	if len(recs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No transactions found.")
		return
	}
	fmt.Fprintln(cmd.OutOrStdout(), journal.FormatTransactionsOrg(recs))
}

func dayBounds(loc *time.Location, day string) (time.Time, time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", day, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	end := start.AddDate(0, 0, 1)
	return start, end, nil
}
