package journal

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"
)

var csvHeader = []string{"id", "symbol", "kind", "quantity", "unit_price", "amount", "cash_after", "time"}

type CSV struct {
	w *csv.Writer
	f *os.File
}

// NewCSV opens path for appending. The header row is written only when the
// file is new or empty, so successive runs extend the same journal.
func NewCSV(path string) (*CSV, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	w := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := w.Write(csvHeader); err != nil {
			_ = f.Close()
			return nil, err
		}
		w.Flush()
		if err := w.Error(); err != nil {
			_ = f.Close()
			return nil, err
		}
	}

	return &CSV{w: w, f: f}, nil
}

func (j *CSV) RecordTransaction(t TransactionRecord) error {
	err := j.w.Write([]string{
		t.ID,
		t.Symbol,
		t.Kind,
		strconv.FormatInt(t.Quantity, 10),
		t.UnitPrice.String(),
		t.Amount.String(),
		t.CashAfter.String(),
		t.Time.UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return err
	}
	j.w.Flush()
	return j.w.Error()
}

func (j *CSV) Close() error {
	j.w.Flush()
	if err := j.w.Error(); err != nil {
		_ = j.f.Close()
		return err
	}
	return j.f.Close()
}

// ReadCSV parses a journal written by CSV.
func ReadCSV(r io.Reader) ([]TransactionRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(csvHeader)

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	out := make([]TransactionRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		rec, err := parseCSVRow(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

func parseCSVRow(row []string) (TransactionRecord, error) {
	rec := TransactionRecord{ID: row[0], Symbol: row[1], Kind: row[2]}

	qty, err := strconv.ParseInt(row[3], 10, 64)
	if err != nil {
		return rec, fmt.Errorf("quantity: %w", err)
	}
	rec.Quantity = qty

	if err := rec.UnitPrice.Scan(row[4]); err != nil {
		return rec, fmt.Errorf("unit_price: %w", err)
	}
	if err := rec.Amount.Scan(row[5]); err != nil {
		return rec, fmt.Errorf("amount: %w", err)
	}
	if err := rec.CashAfter.Scan(row[6]); err != nil {
		return rec, fmt.Errorf("cash_after: %w", err)
	}

	ts, err := time.Parse(time.RFC3339Nano, row[7])
	if err != nil {
		return rec, fmt.Errorf("time: %w", err)
	}
	rec.Time = ts
	return rec, nil
}
