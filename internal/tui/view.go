package tui

import (
	"fmt"
	"strconv"
	"strings"

	"billcraft-cli/internal/export"
	"billcraft-cli/internal/totals"
	"billcraft-cli/internal/validate"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

const (
	descWidth   = 34
	qtyWidth    = 6
	priceWidth  = 12
	amountWidth = 12
)

// View is the top-level render boundary: a panic anywhere in rendering is
// swapped for an apology frame instead of killing the program mid-session.
// The invoice itself is already persisted, so nothing is lost.
func (m appModel) View() string {
	out, err := m.render()
	if err != nil {
		return m.renderApology()
	}
	return out
}

func (m appModel) render() (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("render: %v", r)
		}
	}()

	width := m.width
	if width <= 0 {
		width = 80
	}

	if m.previewOpen {
		return m.renderPreview(width), nil
	}

	var b strings.Builder
	b.WriteString(m.renderTitleBar(width))
	b.WriteString("\n\n")
	b.WriteString(m.renderItems())
	b.WriteString("\n")
	b.WriteString(m.renderHeaderFields())
	b.WriteString("\n")
	b.WriteString(m.renderTotals())
	b.WriteString("\n")
	b.WriteString(m.renderFooter(width))
	return b.String(), nil
}

func (m appModel) renderTitleBar(width int) string {
	left := " " + m.inv.Title + "  ·  " + m.inv.InvoiceNumber
	right := m.inv.Date + " "
	pad := width - xansi.StringWidth(left) - xansi.StringWidth(right)
	if pad < 1 {
		pad = 1
	}
	bar := left + strings.Repeat(" ", pad) + right
	return lipgloss.NewStyle().Background(colorHeaderBg).Foreground(colorSurfaceFg).Bold(true).Render(bar)
}

func (m appModel) renderItems() string {
	var b strings.Builder

	head := fmt.Sprintf("  %-*s %*s %*s %*s",
		descWidth, "Description", qtyWidth, "Qty", priceWidth, "Price", amountWidth, "Amount")
	b.WriteString(styleMuted().Render(head))
	b.WriteString("\n")

	for i, it := range m.inv.Items {
		amount := it.Price * float64(it.Quantity)

		desc := m.cell(i, colDescription, it.Description, descWidth, false)
		qty := m.cell(i, colQuantity, strconv.Itoa(it.Quantity), qtyWidth, true)
		price := m.cell(i, colPrice, export.Money(m.inv.Currency, it.Price), priceWidth, true)
		amt := padLeft(export.Money(m.inv.Currency, amount), amountWidth)

		marker := "  "
		if m.onItemRow() && m.row == i {
			marker = lipgloss.NewStyle().Foreground(colorAccent).Render("> ")
		}
		fmt.Fprintf(&b, "%s%s %s %s %s\n", marker, desc, qty, price, amt)

		// Inline warnings for this row, keyed by the item's stable ID.
		for _, field := range []string{validate.FieldQuantity, validate.FieldPrice} {
			if msg, ok := m.errs[validate.Key(field, it.ID)]; ok {
				b.WriteString("    " + styleWarn().Render("! "+msg) + "\n")
			}
		}
	}
	return b.String()
}

func (m appModel) renderHeaderFields() string {
	labels := [headerFieldCount]string{"Title", "Number", "Date", "Currency", "Tax %", "Discount %"}
	values := [headerFieldCount]string{
		m.inv.Title,
		m.inv.InvoiceNumber,
		m.inv.Date,
		string(m.inv.Currency) + " " + m.inv.Currency.Symbol(),
		formatFloat(m.inv.TaxPercent),
		formatFloat(m.inv.DiscountPercent),
	}

	var b strings.Builder
	for hf := 0; hf < headerFieldCount; hf++ {
		marker := "  "
		val := values[hf]
		selected := m.onHeaderField(hf)
		if selected {
			marker = lipgloss.NewStyle().Foreground(colorAccent).Render("> ")
			if m.editing {
				val = m.input.View()
			} else {
				val = styleSelected().Render(padRight(val, 24))
			}
		}
		fmt.Fprintf(&b, "%s%-12s %s\n", marker, labels[hf], val)
	}
	return b.String()
}

func (m appModel) renderTotals() string {
	tot := totals.Compute(m.inv.Items, m.inv.TaxPercent, m.inv.DiscountPercent)
	c := m.inv.Currency

	var b strings.Builder
	line := func(label, value string, bold bool) {
		st := lipgloss.NewStyle()
		if bold {
			st = st.Bold(true)
		}
		fmt.Fprintf(&b, "  %s\n", st.Render(fmt.Sprintf("%-20s %12s", label, value)))
	}
	line("Subtotal", export.Money(c, tot.Subtotal), false)
	line("Tax", export.Money(c, tot.TaxValue), false)
	line("Discount", export.Money(c, -tot.DiscountValue), false)
	line("Total", export.Money(c, tot.Total), true)
	return b.String()
}

func (m appModel) renderFooter(width int) string {
	var b strings.Builder
	if m.status != "" {
		b.WriteString("  " + styleWarn().Render(xansi.Truncate(m.status, width-4, "...")) + "\n")
	}
	help := "tab/arrows move · enter edit · ctrl+n add row · ctrl+d remove · ctrl+z undo · ctrl+y redo · ctrl+o preview · ctrl+p export · esc quit"
	b.WriteString("  " + styleMuted().Render(xansi.Truncate(help, width-4, "...")))
	return b.String()
}

// renderPreview shows the full plain-text invoice, framed. While an export
// is pending the frame doubles as the progress indicator.
func (m appModel) renderPreview(width int) string {
	body := export.Text(m.inv)

	title := " Preview "
	if m.pendingExport {
		title = " Preview · exporting... "
	}

	frame := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorAccent).
		Padding(0, 1)

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(colorAccent).Bold(true).Render(title))
	b.WriteString("\n")
	b.WriteString(frame.Render(strings.TrimRight(body, "\n")))
	b.WriteString("\n")
	foot := "esc close · ctrl+p export pdf"
	if m.status != "" {
		foot = m.status + " · " + foot
	}
	b.WriteString("  " + styleMuted().Render(xansi.Truncate(foot, width-4, "...")))
	return b.String()
}

func (m appModel) renderApology() string {
	msg := strings.Join([]string{
		"",
		"  Something went wrong while drawing the editor.",
		"",
		"  Your invoice is saved on disk; nothing is lost.",
		"  Quit with ctrl+c and start billcraft again.",
		"",
	}, "\n")
	return styleWarn().Render(msg)
}

// cell renders one item table cell, highlighting the selected one and
// swapping in the text input while it is being edited.
func (m appModel) cell(row, col int, value string, width int, alignRight bool) string {
	selected := m.onItemRow() && m.row == row && m.col == col

	if selected && m.editing {
		return padRight(m.input.View(), width)
	}

	value = xansi.Truncate(value, width, "...")
	if alignRight {
		value = padLeft(value, width)
	} else {
		value = padRight(value, width)
	}
	if selected {
		return styleSelected().Render(value)
	}
	return value
}

func padRight(s string, width int) string {
	if n := width - xansi.StringWidth(s); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}

func padLeft(s string, width int) string {
	if n := width - xansi.StringWidth(s); n > 0 {
		return strings.Repeat(" ", n) + s
	}
	return s
}
