package mutate

import (
	"errors"
	"testing"

	"billcraft-cli/internal/model"
)

func TestSetTaxAndDiscount(t *testing.T) {
	inv := testInvoice()

	out, res := SetTax(inv, "12.5")
	if out.TaxPercent != 12.5 {
		t.Fatalf("tax: got %v, want 12.5", out.TaxPercent)
	}
	if !res.RecordHistory {
		t.Fatalf("tax change must push history")
	}

	out, _ = SetDiscount(out, "oops")
	if out.DiscountPercent != 0 {
		t.Fatalf("malformed discount should coerce to 0; got %v", out.DiscountPercent)
	}
	if inv.TaxPercent != 10 || inv.DiscountPercent != 5 {
		t.Fatalf("input invoice mutated: %+v", inv)
	}
}

func TestHeaderFields_DoNotPushHistory(t *testing.T) {
	inv := testInvoice()

	out, res := SetTitle(inv, "Consulting — March")
	if out.Title != "Consulting — March" {
		t.Fatalf("title not written: %q", out.Title)
	}
	if res.RecordHistory {
		t.Fatalf("title is not part of undo history")
	}

	out, res = SetInvoiceNumber(out, "  INV-042 ")
	if out.InvoiceNumber != "INV-042" {
		t.Fatalf("number: got %q", out.InvoiceNumber)
	}
	if res.RecordHistory {
		t.Fatalf("number is not part of undo history")
	}

	out, res = SetDate(out, "2026-03-01")
	if out.Date != "2026-03-01" || res.RecordHistory {
		t.Fatalf("date: got %q history=%v", out.Date, res.RecordHistory)
	}
}

func TestSetCurrency(t *testing.T) {
	inv := testInvoice()

	out, res, err := SetCurrency(inv, "eur")
	if err != nil {
		t.Fatalf("SetCurrency error: %v", err)
	}
	if out.Currency != model.CurrencyEUR {
		t.Fatalf("currency: got %v", out.Currency)
	}
	if res.RecordHistory {
		t.Fatalf("currency is not part of undo history")
	}

	var uc UnknownCurrencyError
	if _, _, err := SetCurrency(inv, "GBP"); !errors.As(err, &uc) {
		t.Fatalf("expected UnknownCurrencyError; got %v", err)
	}
}
