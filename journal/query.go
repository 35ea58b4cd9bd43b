package journal

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const selectTransactions = `
	SELECT id, symbol, kind, quantity, unit_price, amount, cash_after, time
	FROM transactions`

type scanner interface {
	Scan(dest ...any) error
}

func scanTransaction(s scanner) (TransactionRecord, error) {
	var rec TransactionRecord
	err := s.Scan(
		&rec.ID,
		&rec.Symbol,
		&rec.Kind,
		&rec.Quantity,
		&rec.UnitPrice,
		&rec.Amount,
		&rec.CashAfter,
		&rec.Time,
	)
	return rec, err
}

// GetTransaction returns a single transaction record by ID.
func (j *SQLite) GetTransaction(id string) (TransactionRecord, error) {
	row := j.db.QueryRow(selectTransactions+` WHERE id = ?`, id)

	rec, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return TransactionRecord{}, fmt.Errorf("transaction %q not found", id)
		}
		return TransactionRecord{}, err
	}
	return rec, nil
}

// ListBetween returns transactions whose time is within [start, end),
// oldest first.
func (j *SQLite) ListBetween(start, end time.Time) ([]TransactionRecord, error) {
	rows, err := j.db.Query(selectTransactions+`
		WHERE time >= ? AND time < ?
		ORDER BY time ASC, id ASC`, start.UTC(), end.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TransactionRecord
	for rows.Next() {
		rec, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListBySymbol returns every transaction for symbol, oldest first.
func (j *SQLite) ListBySymbol(symbol string) ([]TransactionRecord, error) {
	rows, err := j.db.Query(selectTransactions+`
		WHERE symbol = ?
		ORDER BY time ASC, id ASC`, symbol)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TransactionRecord
	for rows.Next() {
		rec, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
