package mutate

import (
	"strings"

	"billcraft-cli/internal/model"
	"billcraft-cli/internal/totals"
)

// SetTax writes the tax percentage. Malformed input coerces to 0.
func SetTax(inv model.Invoice, raw string) (model.Invoice, Result) {
	out := inv.Clone()
	out.TaxPercent = totals.ParsePercent(raw)
	return out, Result{
		Changed:       true,
		RecordHistory: true,
		EventType:     "invoice.set_tax",
		EntityID:      out.InvoiceNumber,
		Payload:       map[string]any{"taxPercent": out.TaxPercent},
	}
}

// SetDiscount writes the discount percentage. Malformed input coerces to 0.
func SetDiscount(inv model.Invoice, raw string) (model.Invoice, Result) {
	out := inv.Clone()
	out.DiscountPercent = totals.ParsePercent(raw)
	return out, Result{
		Changed:       true,
		RecordHistory: true,
		EventType:     "invoice.set_discount",
		EntityID:      out.InvoiceNumber,
		Payload:       map[string]any{"discountPercent": out.DiscountPercent},
	}
}

// Header fields (title, number, date, currency) persist like everything
// else but do not participate in undo history.

func SetTitle(inv model.Invoice, title string) (model.Invoice, Result) {
	out := inv.Clone()
	out.Title = title
	return out, Result{
		Changed:   true,
		EventType: "invoice.set_title",
		EntityID:  out.InvoiceNumber,
		Payload:   map[string]any{"title": title},
	}
}

func SetInvoiceNumber(inv model.Invoice, number string) (model.Invoice, Result) {
	out := inv.Clone()
	out.InvoiceNumber = strings.TrimSpace(number)
	return out, Result{
		Changed:   true,
		EventType: "invoice.set_number",
		EntityID:  out.InvoiceNumber,
		Payload:   map[string]any{"invoiceNumber": out.InvoiceNumber},
	}
}

func SetDate(inv model.Invoice, date string) (model.Invoice, Result) {
	out := inv.Clone()
	out.Date = strings.TrimSpace(date)
	return out, Result{
		Changed:   true,
		EventType: "invoice.set_date",
		EntityID:  out.InvoiceNumber,
		Payload:   map[string]any{"date": out.Date},
	}
}

// SetCurrency validates against the supported enum; unknown codes are
// rejected rather than coerced (the picker never produces them, so an
// unknown code is caller error, not user input).
func SetCurrency(inv model.Invoice, raw string) (model.Invoice, Result, error) {
	c, ok := model.ParseCurrency(raw)
	if !ok {
		return inv, Result{}, UnknownCurrencyError{Code: raw}
	}
	out := inv.Clone()
	out.Currency = c
	return out, Result{
		Changed:   true,
		EventType: "invoice.set_currency",
		EntityID:  out.InvoiceNumber,
		Payload:   map[string]any{"currency": string(c)},
	}, nil
}
