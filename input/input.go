// Package input validates raw user text before it reaches the market or the
// ledger. Bad input comes back as a *ParseError value; nothing panics and
// nothing retries.
package input

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrEmpty      = errors.New("value is required")
	ErrNotInteger = errors.New("not a whole number")
	ErrOutOfRange = errors.New("must be greater than zero")
	ErrBadSymbol  = errors.New("symbol may only contain letters, digits, '&', '-' and '.'")
)

// ParseError describes why a field could not be parsed.
type ParseError struct {
	Field string
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Input == "" {
		return fmt.Sprintf("invalid %s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("invalid %s %q: %v", e.Field, e.Input, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ParseSymbol trims and upper-cases a ticker symbol.
func ParseSymbol(s string) (string, error) {
	sym := strings.ToUpper(strings.TrimSpace(s))
	if sym == "" {
		return "", &ParseError{Field: "symbol", Input: s, Err: ErrEmpty}
	}
	for _, r := range sym {
		switch {
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '&', r == '-', r == '.':
		default:
			return "", &ParseError{Field: "symbol", Input: s, Err: ErrBadSymbol}
		}
	}
	return sym, nil
}

// ParseQuantity parses a strictly positive whole number of shares.
func ParseQuantity(s string) (int64, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return 0, &ParseError{Field: "quantity", Input: s, Err: ErrEmpty}
	}
	n, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil {
		return 0, &ParseError{Field: "quantity", Input: s, Err: ErrNotInteger}
	}
	if n <= 0 {
		return 0, &ParseError{Field: "quantity", Input: s, Err: ErrOutOfRange}
	}
	return n, nil
}

// Order is a parsed buy or sell request.
type Order struct {
	Symbol   string
	Quantity int64
}

// ParseOrder parses the symbol and quantity arguments of a trade command.
// Both fields are checked and their errors joined.
func ParseOrder(symbol, quantity string) (Order, error) {
	sym, symErr := ParseSymbol(symbol)
	qty, qtyErr := ParseQuantity(quantity)
	if err := errors.Join(symErr, qtyErr); err != nil {
		return Order{}, err
	}
	return Order{Symbol: sym, Quantity: qty}, nil
}
