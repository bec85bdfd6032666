package mutate

import (
	"errors"
	"testing"

	"billcraft-cli/internal/model"
	"billcraft-cli/internal/validate"
)

func testInvoice() model.Invoice {
	return model.Invoice{
		Items: []model.LineItem{
			{ID: "li-a", Description: "Design", Quantity: 2, Price: 10},
			{ID: "li-b", Description: "Hosting", Quantity: 1, Price: 5},
		},
		TaxPercent:      10,
		DiscountPercent: 5,
		Currency:        model.CurrencyUSD,
		Title:           "Invoice",
		InvoiceNumber:   "INV-001",
		Date:            "2026-01-15",
	}
}

func TestUpdateItem_WritesCoercedValue(t *testing.T) {
	inv := testInvoice()
	errs := validate.Errors{}

	out, res, err := UpdateItem(inv, errs, "li-a", "quantity", "3")
	if err != nil {
		t.Fatalf("UpdateItem error: %v", err)
	}
	if !res.Changed || !res.RecordHistory {
		t.Fatalf("expected changed+history; got %+v", res)
	}
	if got := out.Items[0].Quantity; got != 3 {
		t.Fatalf("quantity: got %d, want 3", got)
	}
	// Input invoice is untouched (value semantics).
	if inv.Items[0].Quantity != 2 {
		t.Fatalf("input invoice mutated: quantity %d", inv.Items[0].Quantity)
	}
}

func TestUpdateItem_MalformedInputUsesDefaults(t *testing.T) {
	inv := testInvoice()
	errs := validate.Errors{}

	out, _, err := UpdateItem(inv, errs, "li-a", "price", "abc")
	if err != nil {
		t.Fatalf("UpdateItem error: %v", err)
	}
	if out.Items[0].Price != 0 {
		t.Fatalf("malformed price should coerce to 0; got %v", out.Items[0].Price)
	}

	out, _, err = UpdateItem(out, errs, "li-a", "quantity", "x")
	if err != nil {
		t.Fatalf("UpdateItem error: %v", err)
	}
	if out.Items[0].Quantity != 1 {
		t.Fatalf("malformed quantity should coerce to 1; got %d", out.Items[0].Quantity)
	}
	if len(errs) != 0 {
		t.Fatalf("coerced defaults are valid; expected no errors, got %v", errs)
	}
}

func TestUpdateItem_AnnotatesButDoesNotBlock(t *testing.T) {
	inv := testInvoice()
	errs := validate.Errors{}

	out, _, err := UpdateItem(inv, errs, "li-b", "quantity", "0")
	if err != nil {
		t.Fatalf("UpdateItem error: %v", err)
	}
	// The write happens even though the value is flagged.
	if out.Items[1].Quantity != 0 {
		t.Fatalf("expected quantity 0 written; got %d", out.Items[1].Quantity)
	}
	if got := errs[validate.Key(validate.FieldQuantity, "li-b")]; got != validate.MsgQuantityMin {
		t.Fatalf("expected validation warning; got %q", got)
	}

	out, _, err = UpdateItem(out, errs, "li-b", "quantity", "1")
	if err != nil {
		t.Fatalf("UpdateItem error: %v", err)
	}
	if len(errs) != 0 {
		t.Fatalf("expected warning cleared; got %v", errs)
	}
}

func TestUpdateItem_UnknownItemAndField(t *testing.T) {
	inv := testInvoice()
	errs := validate.Errors{}

	var nf NotFoundError
	if _, _, err := UpdateItem(inv, errs, "li-zzz", "price", "1"); !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError; got %v", err)
	}
	var uf UnknownFieldError
	if _, _, err := UpdateItem(inv, errs, "li-a", "amount", "1"); !errors.As(err, &uf) {
		t.Fatalf("expected UnknownFieldError; got %v", err)
	}
}

func TestAddItem_AppendsDefaultRow(t *testing.T) {
	inv := testInvoice()

	out, res := AddItem(inv)
	if len(out.Items) != 3 {
		t.Fatalf("expected 3 items; got %d", len(out.Items))
	}
	it := out.Items[2]
	if it.Description != "" || it.Quantity != 1 || it.Price != 0 {
		t.Fatalf("expected default empty row; got %+v", it)
	}
	if it.ID == "" || it.ID == out.Items[0].ID || it.ID == out.Items[1].ID {
		t.Fatalf("expected fresh unique id; got %q", it.ID)
	}
	if !res.RecordHistory {
		t.Fatalf("add must push history")
	}
	if len(inv.Items) != 2 {
		t.Fatalf("input invoice mutated")
	}
}

func TestRemoveItem_FiltersAndClearsErrors(t *testing.T) {
	inv := testInvoice()
	errs := validate.Errors{
		validate.Key(validate.FieldQuantity, "li-a"): validate.MsgQuantityMin,
		validate.Key(validate.FieldPrice, "li-b"):    validate.MsgPriceNegative,
	}

	out, res, err := RemoveItem(inv, errs, "li-a")
	if err != nil {
		t.Fatalf("RemoveItem error: %v", err)
	}
	if len(out.Items) != 1 || out.Items[0].ID != "li-b" {
		t.Fatalf("expected only li-b left; got %+v", out.Items)
	}
	if !res.RecordHistory {
		t.Fatalf("remove must push history")
	}
	if _, ok := errs[validate.Key(validate.FieldQuantity, "li-a")]; ok {
		t.Fatalf("expected li-a errors cleared")
	}
	if _, ok := errs[validate.Key(validate.FieldPrice, "li-b")]; !ok {
		t.Fatalf("li-b errors must survive removing li-a")
	}
}

func TestRemoveItem_LastItemIsRefused(t *testing.T) {
	inv := testInvoice()
	inv.Items = inv.Items[:1]
	errs := validate.Errors{}

	out, res, err := RemoveItem(inv, errs, "li-a")
	if !errors.Is(err, ErrLastItem) {
		t.Fatalf("expected ErrLastItem; got %v", err)
	}
	if res.Changed {
		t.Fatalf("expected no-op result")
	}
	if len(out.Items) != 1 {
		t.Fatalf("invoice must keep its last row")
	}
}
