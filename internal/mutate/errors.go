package mutate

import "fmt"

// ErrLastItem is returned when removal would leave the invoice empty.
// The invoice always keeps at least one row.
var ErrLastItem = fmt.Errorf("cannot remove the last line item")

type NotFoundError struct {
	ID string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("line item not found: %s", e.ID)
}

type UnknownFieldError struct {
	Field string
}

func (e UnknownFieldError) Error() string {
	return fmt.Sprintf("unknown line item field: %q (want description|quantity|price)", e.Field)
}

type UnknownCurrencyError struct {
	Code string
}

func (e UnknownCurrencyError) Error() string {
	return fmt.Sprintf("unknown currency: %q (want USD|EUR|INR)", e.Code)
}
