package journal

import (
	"fmt"
	"strings"
	"time"
)

// FormatTransactionOrg renders a TransactionRecord as an Org-mode entry with
// the structured facts in a PROPERTIES drawer and an empty Notes section.
func FormatTransactionOrg(t TransactionRecord) string {
	heading := fmt.Sprintf("** %s %d %s (%s)", t.Kind, t.Quantity, t.Symbol, shortID(t.ID))

	var b strings.Builder
	b.WriteString(heading)
	b.WriteString("\n")
	b.WriteString(":PROPERTIES:\n")
	b.WriteString(fmt.Sprintf(":ID: %s\n", t.ID))
	b.WriteString(fmt.Sprintf(":SYMBOL: %s\n", t.Symbol))
	b.WriteString(fmt.Sprintf(":KIND: %s\n", t.Kind))
	b.WriteString(fmt.Sprintf(":QUANTITY: %d\n", t.Quantity))
	b.WriteString(fmt.Sprintf(":UNIT_PRICE: %s\n", t.UnitPrice.StringFixed(2)))
	b.WriteString(fmt.Sprintf(":AMOUNT: %s\n", t.Amount.StringFixed(2)))
	b.WriteString(fmt.Sprintf(":CASH_AFTER: %s\n", t.CashAfter.StringFixed(2)))
	b.WriteString(fmt.Sprintf(":TIME: %s\n", t.Time.UTC().Format(time.RFC3339)))
	b.WriteString(":END:\n")
	b.WriteString("\n")
	b.WriteString("*** Notes\n- \n")

	return b.String()
}

// FormatTransactionsOrg renders multiple records separated by blank lines.
func FormatTransactionsOrg(txs []TransactionRecord) string {
	var b strings.Builder
	for i, t := range txs {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(FormatTransactionOrg(t))
	}
	return b.String()
}

func shortID(full string) string {
	if len(full) <= 8 {
		return full
	}
	return full[:8]
}
