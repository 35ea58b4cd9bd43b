package journal

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

type SQLite struct {
	db *sql.DB
}

// NewSQLite opens (or creates) the journal database at path and makes sure
// the schema exists.
func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &SQLite{db: db}, nil
}

func (j *SQLite) RecordTransaction(t TransactionRecord) error {
	// Decimals go in as TEXT so amounts come back exactly as recorded.
	_, err := j.db.Exec(`
		INSERT INTO transactions
		(id, symbol, kind, quantity, unit_price, amount, cash_after, time)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Symbol, t.Kind, t.Quantity,
		t.UnitPrice.String(), t.Amount.String(), t.CashAfter.String(), t.Time.UTC(),
	)
	return err
}

func (j *SQLite) Close() error {
	return j.db.Close()
}
