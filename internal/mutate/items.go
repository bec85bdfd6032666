// Package mutate holds the state transitions of the invoice editor.
//
// Every operation is reducer-style: it takes the current invoice by value
// and returns a new one plus a Result describing what happened. Callers own
// the side effects (persisting the snapshot, recording undo history,
// appending the edit event); the transitions themselves are pure.
package mutate

import (
	"strings"

	"billcraft-cli/internal/model"
	"billcraft-cli/internal/totals"
	"billcraft-cli/internal/validate"
)

// Result reports the outcome of a transition. When RecordHistory is set the
// caller pushes an undo snapshot; EventType/EntityID/Payload feed the edit
// log.
type Result struct {
	Changed       bool
	RecordHistory bool
	EventType     string
	EntityID      string
	Payload       map[string]any
}

// UpdateItem writes a raw field edit into the item with the given ID.
// Values are coerced, not rejected: malformed numeric input becomes the
// field default (price 0, quantity 1), and out-of-range values are stored
// as-is while the validator annotates them in errs.
func UpdateItem(inv model.Invoice, errs validate.Errors, itemID, field, raw string) (model.Invoice, Result, error) {
	field = strings.ToLower(strings.TrimSpace(field))
	_, idx, ok := inv.FindItem(itemID)
	if !ok {
		return inv, Result{}, NotFoundError{ID: itemID}
	}

	out := inv.Clone()
	it := &out.Items[idx]

	switch field {
	case validate.FieldDescription:
		it.Description = raw
	case validate.FieldQuantity:
		it.Quantity = totals.ParseQuantity(raw)
	case validate.FieldPrice:
		it.Price = totals.ParsePrice(raw)
	default:
		return inv, Result{}, UnknownFieldError{Field: field}
	}

	validate.Field(errs, field, *it)

	return out, Result{
		Changed:       true,
		RecordHistory: true,
		EventType:     "item.update",
		EntityID:      it.ID,
		Payload:       map[string]any{"field": field, "value": raw},
	}, nil
}

// AddItem appends a default empty row.
func AddItem(inv model.Invoice) (model.Invoice, Result) {
	out := inv.Clone()
	it := model.NewLineItem()
	out.Items = append(out.Items, it)
	return out, Result{
		Changed:       true,
		RecordHistory: true,
		EventType:     "item.add",
		EntityID:      it.ID,
		Payload:       map[string]any{"count": len(out.Items)},
	}
}

// RemoveItem filters out the row with the given ID and drops its validation
// keys. Removing the only remaining row is refused: the invoice never
// becomes empty.
func RemoveItem(inv model.Invoice, errs validate.Errors, itemID string) (model.Invoice, Result, error) {
	if len(inv.Items) <= 1 {
		return inv, Result{}, ErrLastItem
	}
	_, idx, ok := inv.FindItem(itemID)
	if !ok {
		return inv, Result{}, NotFoundError{ID: itemID}
	}

	out := inv.Clone()
	out.Items = append(out.Items[:idx], out.Items[idx+1:]...)
	validate.ClearItem(errs, itemID)

	return out, Result{
		Changed:       true,
		RecordHistory: true,
		EventType:     "item.remove",
		EntityID:      itemID,
		Payload:       map[string]any{"count": len(out.Items)},
	}, nil
}
