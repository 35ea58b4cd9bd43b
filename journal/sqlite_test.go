package journal

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLite(t *testing.T) (*SQLite, string) {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")

	j, err := NewSQLite(path)
	require.NoError(t, err)

	return j, path
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func sampleRecord(id string, ts time.Time) TransactionRecord {
	return TransactionRecord{
		ID:        id,
		Symbol:    "TCS",
		Kind:      "BUY",
		Quantity:  2,
		UnitPrice: d("3800.00"),
		Amount:    d("7600.00"),
		CashAfter: d("2400.00"),
		Time:      ts,
	}
}

func TestSQLiteSchemaCreated(t *testing.T) {
	t.Parallel()

	j, path := newTestSQLite(t)
	assert.NoError(t, j.Close())

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	var name string
	err = db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name='transactions'`).Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "transactions", name)
}

func TestSQLiteReopenKeepsRecords(t *testing.T) {
	t.Parallel()

	j, path := newTestSQLite(t)
	ts := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, j.RecordTransaction(sampleRecord("T1", ts)))
	require.NoError(t, j.Close())

	j2, err := NewSQLite(path)
	require.NoError(t, err)
	defer j2.Close()

	rec, err := j2.GetTransaction("T1")
	require.NoError(t, err)
	assert.Equal(t, "TCS", rec.Symbol)
}

func TestSQLiteRejectsDuplicateID(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	ts := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, j.RecordTransaction(sampleRecord("T1", ts)))
	assert.Error(t, j.RecordTransaction(sampleRecord("T1", ts)))
}

func TestSQLiteRejectsBadKind(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	rec := sampleRecord("T1", time.Now())
	rec.Kind = "HOLD"
	assert.Error(t, j.RecordTransaction(rec))
}
