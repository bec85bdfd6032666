// Package export renders the invoice preview into shareable artifacts: a
// single-page A4 PDF and a plain-text rendition for printing.
package export

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"billcraft-cli/internal/model"
	"billcraft-cli/internal/totals"

	"github.com/jung-kurt/gofpdf"
)

// DefaultFileName is the artifact name used when the caller does not pick one.
const DefaultFileName = "invoice.pdf"

// PDF writes a single-page A4 rendition of the invoice.
func PDF(inv model.Invoice, w io.Writer) error {
	tot := totals.Compute(inv.Items, inv.TaxPercent, inv.DiscountPercent)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(inv.Title, true)
	pdf.AddPage()

	// Header.
	pdf.SetFont("Arial", "B", 20)
	pdf.CellFormat(130, 12, inv.Title, "", 0, "L", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(60, 12, inv.InvoiceNumber, "", 1, "R", false, 0, "")
	pdf.CellFormat(130, 6, "", "", 0, "L", false, 0, "")
	pdf.CellFormat(60, 6, "Date: "+inv.Date, "", 1, "R", false, 0, "")
	pdf.Ln(8)

	// Items table.
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(235, 235, 235)
	pdf.CellFormat(100, 8, "Description", "1", 0, "L", true, 0, "")
	pdf.CellFormat(20, 8, "Qty", "1", 0, "R", true, 0, "")
	pdf.CellFormat(35, 8, "Price", "1", 0, "R", true, 0, "")
	pdf.CellFormat(35, 8, "Amount", "1", 1, "R", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, it := range inv.Items {
		amount := it.Price * float64(it.Quantity)
		pdf.CellFormat(100, 8, it.Description, "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, 8, strconv.Itoa(it.Quantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 8, moneyASCII(inv.Currency, it.Price), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 8, moneyASCII(inv.Currency, amount), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(6)

	// Totals block, right-aligned under the table.
	row := func(label, value string, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		pdf.SetFont("Arial", style, 10)
		pdf.CellFormat(120, 7, "", "", 0, "L", false, 0, "")
		pdf.CellFormat(35, 7, label, "", 0, "R", false, 0, "")
		pdf.CellFormat(35, 7, value, "", 1, "R", false, 0, "")
	}
	row("Subtotal", moneyASCII(inv.Currency, tot.Subtotal), false)
	row(fmt.Sprintf("Tax (%s%%)", trimPercent(inv.TaxPercent)), moneyASCII(inv.Currency, tot.TaxValue), false)
	row(fmt.Sprintf("Discount (%s%%)", trimPercent(inv.DiscountPercent)), moneyASCII(inv.Currency, -tot.DiscountValue), false)
	row("Total", moneyASCII(inv.Currency, tot.Total), true)

	return pdf.Output(w)
}

// WritePDF exports to a file, creating parent-less paths as given.
func WritePDF(inv model.Invoice, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := PDF(inv, f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// trimPercent formats a rate without trailing zeros (10, 12.5).
func trimPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
