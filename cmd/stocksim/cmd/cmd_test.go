package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rustyeddy/stocksim/config"
	"github.com/rustyeddy/stocksim/input"
	"github.com/rustyeddy/stocksim/journal"
	"github.com/rustyeddy/stocksim/ledger"
	"github.com/rustyeddy/stocksim/market"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type env struct {
	dir    string
	config string
	cfg    *config.Config
}

func newEnv(t *testing.T, jc config.JournalConfig) env {
	t.Helper()

	dir := t.TempDir()
	c := config.Default()
	c.State.Path = filepath.Join(dir, "portfolio.json")
	c.Journal = jc
	path := filepath.Join(dir, "stocksim.yaml")
	require.NoError(t, c.SaveToFile(path))
	return env{dir: dir, config: path, cfg: c}
}

// run executes the root command with args and returns everything it wrote.
func (e env) run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cfgFile, logLevel, journalDBPath = "", "info", ""

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--config", e.config, "--log-level", "error"}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	e := newEnv(t, config.JournalConfig{Type: "none"})

	out, err := e.run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "stocksim version "+version)
}

func TestMarketCommand(t *testing.T) {
	e := newEnv(t, config.JournalConfig{Type: "none"})

	out, err := e.run(t, "market")
	require.NoError(t, err)
	assert.Contains(t, out, "TCS (Tata Consultancy Services): ₹3,800.00")
	assert.Contains(t, out, "INFY (Infosys): ₹1,600.00")
}

func TestBuyThenPortfolio(t *testing.T) {
	e := newEnv(t, config.JournalConfig{Type: "none"})

	out, err := e.run(t, "buy", "tcs", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Successfully bought 2 shares of TCS for ₹7,600.00. Cash balance: ₹2,400.00")

	_, err = os.Stat(e.cfg.State.Path)
	require.NoError(t, err, "state saved after trade")

	out, err = e.run(t, "portfolio")
	require.NoError(t, err)
	assert.Contains(t, out, "Cash Balance: ₹2,400.00")
	assert.Contains(t, out, "TCS (Tata Consultancy Services): 2 shares")
	assert.Contains(t, out, "Total Portfolio Value: ₹10,000.00")
}

func TestRejectedOrdersLeaveStateAlone(t *testing.T) {
	e := newEnv(t, config.JournalConfig{Type: "none"})

	_, err := e.run(t, "buy", "TCS", "3")
	assert.True(t, errors.Is(err, ledger.ErrInsufficientFunds), "got %v", err)

	_, err = os.Stat(e.cfg.State.Path)
	assert.True(t, errors.Is(err, os.ErrNotExist), "no state written for a rejected order")

	_, err = e.run(t, "sell", "SBIN", "1")
	var te *ledger.TradeError
	require.True(t, errors.As(err, &te), "got %v", err)
	assert.True(t, errors.Is(err, ledger.ErrInsufficientShares))
	assert.True(t, te.Requested.Equal(decimal.NewFromInt(1)))
}

func TestTradeInputErrors(t *testing.T) {
	e := newEnv(t, config.JournalConfig{Type: "none"})

	tests := []struct {
		name string
		args []string
		want error
	}{
		{"not a number", []string{"buy", "TCS", "ten"}, input.ErrNotInteger},
		{"zero", []string{"buy", "TCS", "0"}, input.ErrOutOfRange},
		{"negative", []string{"sell", "--", "TCS", "-2"}, input.ErrOutOfRange},
		{"blank symbol", []string{"buy", " ", "1"}, input.ErrEmpty},
		{"unknown symbol", []string{"buy", "ACME", "1"}, market.ErrSymbolNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.run(t, tt.args...)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}

	_, err := e.run(t, "buy", "TCS")
	assert.Error(t, err, "quantity argument is required")
}

func TestHistoryMostRecentFirst(t *testing.T) {
	e := newEnv(t, config.JournalConfig{Type: "none"})

	out, err := e.run(t, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "No transactions yet.")

	_, err = e.run(t, "buy", "SBIN", "4")
	require.NoError(t, err)
	_, err = e.run(t, "sell", "SBIN", "1")
	require.NoError(t, err)

	out, err = e.run(t, "history")
	require.NoError(t, err)
	sell := strings.Index(out, "SELL 1 shares of SBIN")
	buy := strings.Index(out, "BUY 4 shares of SBIN")
	require.NotEqual(t, -1, sell)
	require.NotEqual(t, -1, buy)
	assert.Less(t, sell, buy)
}

func TestSQLiteJournalCommands(t *testing.T) {
	e := newEnv(t, config.JournalConfig{Type: "sqlite", DBPath: "journal.db"})
	e.cfg.Journal.DBPath = filepath.Join(e.dir, "journal.db")
	require.NoError(t, e.cfg.SaveToFile(e.config))

	_, err := e.run(t, "buy", "INFY", "2")
	require.NoError(t, err)
	_, err = e.run(t, "buy", "TCS", "1")
	require.NoError(t, err)

	out, err := e.run(t, "journal", "today")
	require.NoError(t, err)
	assert.Contains(t, out, "** BUY 2 INFY")
	assert.Contains(t, out, "** BUY 1 TCS")

	out, err = e.run(t, "journal", "symbol", "infy")
	require.NoError(t, err)
	assert.Contains(t, out, "** BUY 2 INFY")
	assert.NotContains(t, out, "TCS")

	j, err := journal.NewSQLite(e.cfg.Journal.DBPath)
	require.NoError(t, err)
	recs, err := j.ListBySymbol("TCS")
	require.NoError(t, err)
	require.NoError(t, j.Close())
	require.Len(t, recs, 1)

	out, err = e.run(t, "journal", "tx", recs[0].ID)
	require.NoError(t, err)
	assert.Contains(t, out, ":ID: "+recs[0].ID)
	assert.Contains(t, out, ":CASH_AFTER: 3000.00")

	out, err = e.run(t, "journal", "day", "1999-01-01")
	require.NoError(t, err)
	assert.Contains(t, out, "No transactions found.")

	_, err = e.run(t, "journal", "day", "yesterday")
	assert.ErrorContains(t, err, "date:")
}

func TestJournalWithoutDatabase(t *testing.T) {
	e := newEnv(t, config.JournalConfig{Type: "none"})

	_, err := e.run(t, "journal", "today")
	assert.ErrorContains(t, err, "no SQLite journal configured")
}

func TestCSVJournal(t *testing.T) {
	e := newEnv(t, config.JournalConfig{Type: "csv", CSVPath: "tx.csv"})
	e.cfg.Journal.CSVPath = filepath.Join(e.dir, "tx.csv")
	require.NoError(t, e.cfg.SaveToFile(e.config))

	_, err := e.run(t, "buy", "HDFC", "3")
	require.NoError(t, err)
	_, err = e.run(t, "sell", "HDFC", "3")
	require.NoError(t, err)

	out, err := e.run(t, "journal", "csv")
	require.NoError(t, err)
	assert.Contains(t, out, "** BUY 3 HDFC")
	assert.Contains(t, out, "** SELL 3 HDFC")
}

func TestJournalFailureDoesNotUndoTrade(t *testing.T) {
	e := newEnv(t, config.JournalConfig{Type: "csv", CSVPath: "tx.csv"})
	e.cfg.Journal.CSVPath = filepath.Join(e.dir, "missing", "tx.csv")
	require.NoError(t, e.cfg.SaveToFile(e.config))

	out, err := e.run(t, "buy", "TCS", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Successfully bought 1 shares of TCS")
	assert.Contains(t, out, "Warning: trade saved but not journaled")

	out, err = e.run(t, "portfolio")
	require.NoError(t, err)
	assert.Contains(t, out, "Cash Balance: ₹6,200.00")
}

func TestConfigInitAndValidate(t *testing.T) {
	e := newEnv(t, config.JournalConfig{Type: "none"})
	path := filepath.Join(e.dir, "generated.yaml")

	out, err := e.run(t, "config", "init", "--output", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Created default configuration")

	out, err = e.run(t, "config", "validate", "--file", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration valid")
	assert.Contains(t, out, "Market: 5 instruments")

	bad := filepath.Join(e.dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("account:\n  currency: \"\"\n"), 0o644))
	_, err = e.run(t, "config", "validate", "--file", bad)
	assert.ErrorContains(t, err, "validation failed")
}

func TestBadLogLevel(t *testing.T) {
	e := newEnv(t, config.JournalConfig{Type: "none"})

	rootCmd.SetArgs([]string{"--config", e.config, "--log-level", "loud", "version"})
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	assert.ErrorContains(t, rootCmd.Execute(), "unknown log level")
}

func TestDayBounds(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)

	start, end, err := dayBounds(loc, "2024-03-10")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, loc), start)
	assert.Equal(t, 24*time.Hour, end.Sub(start))

	_, _, err = dayBounds(loc, "10/03/2024")
	assert.Error(t, err)
}
