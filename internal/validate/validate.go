package validate

import (
	"billcraft-cli/internal/model"
)

// Validation annotates, it never blocks: an out-of-range value is still
// written to the invoice, and the matching key here tells the UI to render
// a warning next to the field. Keys use the line item's stable ID (not its
// position) so entries cannot go stale when rows are removed or reordered.

const (
	MsgQuantityMin   = "Quantity must be at least 1"
	MsgPriceNegative = "Price cannot be negative"
)

const (
	FieldDescription = "description"
	FieldQuantity    = "quantity"
	FieldPrice       = "price"
)

// Errors maps "{field}-{itemID}" to a warning message. Entries exist only
// for currently-invalid fields.
type Errors map[string]string

func Key(field, itemID string) string {
	return field + "-" + itemID
}

// Field checks a single field of an item, adding or clearing its key.
func Field(errs Errors, field string, it model.LineItem) {
	switch field {
	case FieldQuantity:
		if it.Quantity < 1 {
			errs[Key(FieldQuantity, it.ID)] = MsgQuantityMin
		} else {
			delete(errs, Key(FieldQuantity, it.ID))
		}
	case FieldPrice:
		if it.Price < 0 {
			errs[Key(FieldPrice, it.ID)] = MsgPriceNegative
		} else {
			delete(errs, Key(FieldPrice, it.ID))
		}
	}
}

// Item checks every validated field of an item.
func Item(errs Errors, it model.LineItem) {
	Field(errs, FieldQuantity, it)
	Field(errs, FieldPrice, it)
}

// ClearItem removes all keys belonging to an item, used when the row is
// removed from the invoice.
func ClearItem(errs Errors, itemID string) {
	delete(errs, Key(FieldQuantity, itemID))
	delete(errs, Key(FieldPrice, itemID))
}
