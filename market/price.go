package market

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is the currency the built-in catalog is quoted in.
const DefaultCurrency = "INR"

// FormatMoney renders amount in the given ISO currency using go-money's
// formatting rules, e.g. 3800 INR -> "₹3,800.00". Unknown currency codes
// fall back to "3800.00 XYZ".
func FormatMoney(amount decimal.Decimal, currency string) string {
	cur := money.GetCurrency(currency)
	if cur == nil {
		return amount.StringFixed(2) + " " + currency
	}
	minor := amount.Shift(int32(cur.Fraction)).Round(0).IntPart()
	return money.New(minor, cur.Code).Display()
}

// ValidCurrency reports whether go-money knows the ISO code.
func ValidCurrency(code string) bool {
	return money.GetCurrency(code) != nil
}
