package export

import (
	"fmt"
	"strings"

	"billcraft-cli/internal/model"
	"billcraft-cli/internal/totals"
)

const textWidth = 72

// Text renders the invoice preview as plain text, suitable for piping to a
// printer spooler or a pager.
func Text(inv model.Invoice) string {
	tot := totals.Compute(inv.Items, inv.TaxPercent, inv.DiscountPercent)

	var b strings.Builder
	fmt.Fprintf(&b, "%-*s%s\n", textWidth-len(inv.InvoiceNumber), inv.Title, inv.InvoiceNumber)
	fmt.Fprintf(&b, "Date: %s\n", inv.Date)
	b.WriteString(strings.Repeat("-", textWidth) + "\n")

	fmt.Fprintf(&b, "%-40s %6s %11s %12s\n", "Description", "Qty", "Price", "Amount")
	for _, it := range inv.Items {
		desc := it.Description
		if len(desc) > 40 {
			desc = desc[:37] + "..."
		}
		amount := it.Price * float64(it.Quantity)
		fmt.Fprintf(&b, "%-40s %6d %11s %12s\n",
			desc, it.Quantity, Money(inv.Currency, it.Price), Money(inv.Currency, amount))
	}
	b.WriteString(strings.Repeat("-", textWidth) + "\n")

	line := func(label, value string) {
		fmt.Fprintf(&b, "%*s %12s\n", textWidth-13, label, value)
	}
	line("Subtotal", Money(inv.Currency, tot.Subtotal))
	line(fmt.Sprintf("Tax (%s%%)", trimPercent(inv.TaxPercent)), Money(inv.Currency, tot.TaxValue))
	line(fmt.Sprintf("Discount (%s%%)", trimPercent(inv.DiscountPercent)), Money(inv.Currency, -tot.DiscountValue))
	line("Total", Money(inv.Currency, tot.Total))

	return b.String()
}
