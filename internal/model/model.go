package model

import (
	"crypto/rand"
	"encoding/base32"
	"strings"
	"time"
)

type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyINR Currency = "INR"
)

// Currencies lists the supported currencies in picker order.
var Currencies = []Currency{CurrencyUSD, CurrencyEUR, CurrencyINR}

func (c Currency) Symbol() string {
	switch c {
	case CurrencyEUR:
		return "€"
	case CurrencyINR:
		return "₹"
	default:
		return "$"
	}
}

func (c Currency) Valid() bool {
	switch c {
	case CurrencyUSD, CurrencyEUR, CurrencyINR:
		return true
	}
	return false
}

func ParseCurrency(s string) (Currency, bool) {
	c := Currency(strings.ToUpper(strings.TrimSpace(s)))
	return c, c.Valid()
}

// LineItem is one billable row. The ID is a stable identifier so validation
// errors and UI selection survive removals and reorders.
type LineItem struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

// Invoice is the full editable state. Items is never empty: removal logic
// refuses to drop the last row.
type Invoice struct {
	Items           []LineItem `json:"items"`
	TaxPercent      float64    `json:"taxPercent"`
	DiscountPercent float64    `json:"discountPercent"`
	Currency        Currency   `json:"currency"`
	Title           string     `json:"title"`
	InvoiceNumber   string     `json:"invoiceNumber"`
	Date            string     `json:"date"` // YYYY-MM-DD
}

// NewLineItemID returns li-<suffix> where suffix is 8 chars of base32
// (lowercase, no padding). 8 chars base32 ~= 40 bits of space.
func NewLineItemID() string {
	var b [5]byte
	if _, err := rand.Read(b[:]); err != nil {
		// crypto/rand failing is effectively unreachable; fall back to a
		// timestamp-derived suffix rather than threading an error everywhere.
		return "li-" + strings.ToLower(time.Now().UTC().Format("150405.000"))
	}
	enc := base32.StdEncoding.WithPadding(base32.NoPadding)
	return "li-" + strings.ToLower(enc.EncodeToString(b[:]))
}

func NewLineItem() LineItem {
	return LineItem{ID: NewLineItemID(), Description: "", Quantity: 1, Price: 0}
}

// DefaultInvoice is the hard-coded starting state used when neither a share
// link nor a stored snapshot is available.
func DefaultInvoice() Invoice {
	return Invoice{
		Items:           []LineItem{NewLineItem()},
		TaxPercent:      0,
		DiscountPercent: 0,
		Currency:        CurrencyUSD,
		Title:           "Invoice",
		InvoiceNumber:   "INV-001",
		Date:            time.Now().Format("2006-01-02"),
	}
}

// CloneItems deep-copies a line item slice. History snapshots and reducer
// transitions must never alias the live slice.
func CloneItems(items []LineItem) []LineItem {
	out := make([]LineItem, len(items))
	copy(out, items)
	return out
}

func (inv Invoice) Clone() Invoice {
	out := inv
	out.Items = CloneItems(inv.Items)
	return out
}

func (inv Invoice) FindItem(id string) (LineItem, int, bool) {
	for i, it := range inv.Items {
		if it.ID == id {
			return it, i, true
		}
	}
	return LineItem{}, -1, false
}

// Normalize fills gaps in decoded data (missing IDs, unknown currency, empty
// item list) so snapshots and share links from older builds keep loading.
func (inv *Invoice) Normalize() {
	for i := range inv.Items {
		if strings.TrimSpace(inv.Items[i].ID) == "" {
			inv.Items[i].ID = NewLineItemID()
		}
	}
	if len(inv.Items) == 0 {
		inv.Items = []LineItem{NewLineItem()}
	}
	if !inv.Currency.Valid() {
		inv.Currency = CurrencyUSD
	}
}
