// Package store persists a ledger to a single file and reads it back.
//
// The on-disk format is a versioned JSON document:
//
//	{
//	  "version": 1,
//	  "currency": "INR",
//	  "cash": "2400",
//	  "holdings": {"TCS": 2},
//	  "history": [
//	    {"id": "01HN…", "symbol": "TCS", "kind": "BUY", "quantity": 2,
//	     "unit_price": "3800", "time": "2024-01-02T09:16:00Z"}
//	  ]
//	}
//
// Amounts are decimal strings so nothing is lost to float rounding. Paths
// ending in ".xz" are xz-compressed.
package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rustyeddy/stocksim/ledger"
	"github.com/shopspring/decimal"
	"github.com/ulikunitz/xz"
)

// Version is the schema version written by Save.
const Version = 1

// ErrStateUnavailable means no usable saved state exists: the file is
// missing, unreadable or does not decode to a valid ledger.
var ErrStateUnavailable = errors.New("portfolio state unavailable")

type document struct {
	Version  int              `json:"version"`
	Currency string           `json:"currency,omitempty"`
	Cash     decimal.Decimal  `json:"cash"`
	Holdings map[string]int64 `json:"holdings"`
	History  []record         `json:"history"`
}

type record struct {
	ID        string          `json:"id"`
	Symbol    string          `json:"symbol"`
	Kind      string          `json:"kind"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Time      time.Time       `json:"time"`
}

// Encode writes the ledger's state as a JSON document.
func Encode(w io.Writer, l *ledger.Ledger, currency string) error {
	s := l.Snapshot()
	doc := document{
		Version:  Version,
		Currency: currency,
		Cash:     s.Cash,
		Holdings: s.Holdings,
		History:  make([]record, 0, len(s.History)),
	}
	for _, tx := range s.History {
		doc.History = append(doc.History, record{
			ID:        tx.ID,
			Symbol:    tx.Symbol,
			Kind:      string(tx.Kind),
			Quantity:  tx.Quantity,
			UnitPrice: tx.UnitPrice,
			Time:      tx.Time,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// Decode reads a JSON document and rebuilds the ledger. It also returns the
// currency recorded in the document, which may be empty.
func Decode(r io.Reader, opts ...ledger.Option) (*ledger.Ledger, string, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var doc document
	if err := dec.Decode(&doc); err != nil {
		return nil, "", fmt.Errorf("decode state: %w", err)
	}
	if doc.Version != Version {
		return nil, "", fmt.Errorf("unsupported state version %d (want %d)", doc.Version, Version)
	}

	s := ledger.State{
		Cash:     doc.Cash,
		Holdings: doc.Holdings,
		History:  make([]ledger.Transaction, 0, len(doc.History)),
	}
	for i, rec := range doc.History {
		kind, err := ledger.ParseKind(rec.Kind)
		if err != nil {
			return nil, "", fmt.Errorf("history[%d]: %w", i, err)
		}
		s.History = append(s.History, ledger.Transaction{
			ID:        rec.ID,
			Symbol:    rec.Symbol,
			Kind:      kind,
			Quantity:  rec.Quantity,
			UnitPrice: rec.UnitPrice,
			Time:      rec.Time,
		})
	}

	l, err := ledger.Restore(s, opts...)
	if err != nil {
		return nil, "", err
	}
	return l, doc.Currency, nil
}

// Save writes the ledger to path. The file is written to path+".part" and
// renamed into place so a crash never leaves a half-written state file.
func Save(path string, l *ledger.Ledger, currency string) error {
	var buf bytes.Buffer
	if err := Encode(&buf, l, currency); err != nil {
		return fmt.Errorf("encode state: %w", err)
	}

	data := buf.Bytes()
	if compressed(path) {
		var zbuf bytes.Buffer
		zw, err := xz.NewWriter(&zbuf)
		if err != nil {
			return fmt.Errorf("xz writer: %w", err)
		}
		if _, err := zw.Write(data); err != nil {
			return fmt.Errorf("xz compress: %w", err)
		}
		if err := zw.Close(); err != nil {
			return fmt.Errorf("xz compress: %w", err)
		}
		data = zbuf.Bytes()
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create state dir: %w", err)
		}
	}

	tmp := path + ".part"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("write state file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("write state file: %w", err)
	}
	return nil
}

// Load reads the ledger saved at path. Every failure wraps
// ErrStateUnavailable; a missing file additionally wraps fs.ErrNotExist.
func Load(path string, opts ...ledger.Option) (*ledger.Ledger, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrStateUnavailable, err)
	}
	defer f.Close()

	var r io.Reader = f
	if compressed(path) {
		zr, err := xz.NewReader(f)
		if err != nil {
			return nil, "", fmt.Errorf("%w: xz reader: %w", ErrStateUnavailable, err)
		}
		r = zr
	}

	l, cur, err := Decode(r, opts...)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %s: %w", ErrStateUnavailable, path, err)
	}
	return l, cur, nil
}

// LoadOrNew never fails: if path holds no usable state it logs why and
// returns a fresh ledger funded with startingCash. An unreadable file is
// renamed to path+".corrupt" first so the next Save cannot overwrite it.
// The bool reports whether saved state was restored.
func LoadOrNew(path string, startingCash decimal.Decimal, log *slog.Logger, opts ...ledger.Option) (*ledger.Ledger, bool) {
	l, _, err := Load(path, opts...)
	switch {
	case err == nil:
		log.Debug("portfolio loaded", "path", path, "cash", l.Cash().String())
		return l, true
	case errors.Is(err, fs.ErrNotExist):
		log.Info("no existing portfolio found, starting fresh", "path", path)
	default:
		bad := path + ".corrupt"
		if rerr := os.Rename(path, bad); rerr != nil {
			log.Warn("error loading portfolio, starting fresh", "path", path, "err", err, "rename_err", rerr)
		} else {
			log.Warn("error loading portfolio, moved it aside, starting fresh", "path", path, "moved_to", bad, "err", err)
		}
	}
	return ledger.New(startingCash, opts...), false
}

func compressed(path string) bool {
	return strings.HasSuffix(path, ".xz")
}
