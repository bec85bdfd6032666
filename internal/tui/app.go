package tui

import (
	"context"
	"path/filepath"
	"strconv"

	"billcraft-cli/internal/export"
	"billcraft-cli/internal/history"
	"billcraft-cli/internal/model"
	"billcraft-cli/internal/mutate"
	"billcraft-cli/internal/store"
	"billcraft-cli/internal/totals"
	"billcraft-cli/internal/validate"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Item table columns, in navigation order.
const (
	colDescription = iota
	colQuantity
	colPrice
	columnCount
)

// Header fields are addressed as extra rows below the items table.
const (
	hfTitle = iota
	hfNumber
	hfDate
	hfCurrency
	hfTax
	hfDiscount
	headerFieldCount
)

// previewReadyMsg signals that the preview frame for a pending export has
// been scheduled. The exporter waits for this message, never for a timer.
type previewReadyMsg struct{}

type exportDoneMsg struct {
	path string
	err  error
}

type appModel struct {
	store store.Store
	inv   model.Invoice
	errs  validate.Errors
	hist  *history.Log

	width  int
	height int

	// Cursor over the editable grid: item rows first, header fields after.
	row int
	col int

	editing bool
	input   textinput.Model

	previewOpen   bool
	pendingExport bool

	status string
}

func newAppModel(s store.Store, inv model.Invoice) appModel {
	inv.Normalize()

	errs := validate.Errors{}
	for _, it := range inv.Items {
		validate.Item(errs, it)
	}

	// The loaded state is the undo floor: the first edit can always be
	// undone back to it.
	hist := history.NewLog()
	hist.Record(inv.Items, inv.TaxPercent, inv.DiscountPercent)

	ti := textinput.New()
	ti.Prompt = ""

	return appModel{
		store: s,
		inv:   inv,
		errs:  errs,
		hist:  hist,
		input: ti,
	}
}

func (m appModel) Init() tea.Cmd { return nil }

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case previewReadyMsg:
		if !m.pendingExport {
			return m, nil
		}
		return m, exportCmd(m.store, m.inv)

	case exportDoneMsg:
		m.pendingExport = false
		if msg.err != nil {
			m.status = "export failed: " + msg.err.Error()
		} else {
			m.status = "exported " + msg.path
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.previewOpen {
		switch msg.String() {
		case "esc", "ctrl+o", "q":
			if !m.pendingExport {
				m.previewOpen = false
			}
			return m, nil
		case "ctrl+p":
			return m.startExport()
		}
		return m, nil
	}

	if m.editing {
		switch msg.String() {
		case "enter":
			return m.commitEdit()
		case "esc":
			m.editing = false
			m.input.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "esc":
		return m, tea.Quit
	case "up", "shift+tab":
		m.moveRow(-1)
	case "down":
		m.moveRow(1)
	case "tab":
		m.moveNext()
	case "left":
		m.moveCol(-1)
	case "right":
		m.moveCol(1)
	case "enter":
		if m.onHeaderField(hfCurrency) {
			return m.cycleCurrency()
		}
		return m.startEdit(m.currentValue()), nil
	case "ctrl+n":
		return m.addItem()
	case "ctrl+d":
		return m.removeItem()
	case "ctrl+z":
		return m.undo()
	case "ctrl+y":
		return m.redo()
	case "ctrl+o":
		m.previewOpen = true
		return m, nil
	case "ctrl+p":
		return m.startExport()
	default:
		// Type-to-edit: printable input replaces the cell value directly.
		if msg.Type == tea.KeyRunes && !msg.Alt {
			if m.onHeaderField(hfCurrency) {
				return m, nil
			}
			next := m.startEdit("")
			var cmd tea.Cmd
			next.input, cmd = next.input.Update(msg)
			return next, cmd
		}
	}
	return m, nil
}

// --- navigation ---------------------------------------------------------

func (m appModel) rowCount() int { return len(m.inv.Items) + headerFieldCount }

func (m appModel) onItemRow() bool { return m.row < len(m.inv.Items) }

func (m appModel) headerIndex() int { return m.row - len(m.inv.Items) }

func (m appModel) onHeaderField(hf int) bool {
	return !m.onItemRow() && m.headerIndex() == hf
}

func (m *appModel) moveRow(delta int) {
	m.row += delta
	m.clampCursor()
}

func (m *appModel) moveCol(delta int) {
	if !m.onItemRow() {
		return
	}
	m.col += delta
	m.clampCursor()
}

// moveNext walks cells left to right, then top to bottom, wrapping to the
// first cell after the last header field.
func (m *appModel) moveNext() {
	if m.onItemRow() && m.col < columnCount-1 {
		m.col++
		return
	}
	m.col = 0
	m.row++
	if m.row >= m.rowCount() {
		m.row = 0
	}
}

func (m *appModel) clampCursor() {
	if m.row < 0 {
		m.row = 0
	}
	if m.row >= m.rowCount() {
		m.row = m.rowCount() - 1
	}
	if !m.onItemRow() {
		m.col = 0
		return
	}
	if m.col < 0 {
		m.col = 0
	}
	if m.col >= columnCount {
		m.col = columnCount - 1
	}
}

// --- editing ------------------------------------------------------------

func (m appModel) currentValue() string {
	if m.onItemRow() {
		it := m.inv.Items[m.row]
		switch m.col {
		case colQuantity:
			return strconv.Itoa(it.Quantity)
		case colPrice:
			return formatFloat(it.Price)
		default:
			return it.Description
		}
	}
	switch m.headerIndex() {
	case hfTitle:
		return m.inv.Title
	case hfNumber:
		return m.inv.InvoiceNumber
	case hfDate:
		return m.inv.Date
	case hfCurrency:
		return string(m.inv.Currency)
	case hfTax:
		return formatFloat(m.inv.TaxPercent)
	default:
		return formatFloat(m.inv.DiscountPercent)
	}
}

func (m appModel) startEdit(initial string) appModel {
	m.editing = true
	m.status = ""
	m.input.SetValue(initial)
	m.input.CursorEnd()
	m.input.Focus()
	return m
}

func (m appModel) commitEdit() (tea.Model, tea.Cmd) {
	raw := m.input.Value()
	m.editing = false
	m.input.Blur()

	var (
		next model.Invoice
		res  mutate.Result
		err  error
	)
	if m.onItemRow() {
		it := m.inv.Items[m.row]
		fields := [columnCount]string{validate.FieldDescription, validate.FieldQuantity, validate.FieldPrice}
		next, res, err = mutate.UpdateItem(m.inv, m.errs, it.ID, fields[m.col], raw)
	} else {
		switch m.headerIndex() {
		case hfTitle:
			next, res = mutate.SetTitle(m.inv, raw)
		case hfNumber:
			next, res = mutate.SetInvoiceNumber(m.inv, raw)
		case hfDate:
			next, res = mutate.SetDate(m.inv, raw)
		case hfCurrency:
			next, res, err = mutate.SetCurrency(m.inv, raw)
		case hfTax:
			next, res = mutate.SetTax(m.inv, raw)
		default:
			next, res = mutate.SetDiscount(m.inv, raw)
		}
	}
	if err != nil {
		m.status = err.Error()
		return m, nil
	}

	m.inv = next
	m.persist(res)
	return m, nil
}

func (m appModel) cycleCurrency() (tea.Model, tea.Cmd) {
	cur := 0
	for i, c := range model.Currencies {
		if c == m.inv.Currency {
			cur = i
			break
		}
	}
	nextCode := model.Currencies[(cur+1)%len(model.Currencies)]
	next, res, err := mutate.SetCurrency(m.inv, string(nextCode))
	if err != nil {
		m.status = err.Error()
		return m, nil
	}
	m.inv = next
	m.persist(res)
	return m, nil
}

// --- structural edits ---------------------------------------------------

func (m appModel) addItem() (tea.Model, tea.Cmd) {
	next, res := mutate.AddItem(m.inv)
	m.inv = next
	m.persist(res)
	m.row = len(m.inv.Items) - 1
	m.col = colDescription
	return m, nil
}

func (m appModel) removeItem() (tea.Model, tea.Cmd) {
	if !m.onItemRow() {
		return m, nil
	}
	it := m.inv.Items[m.row]
	next, res, err := mutate.RemoveItem(m.inv, m.errs, it.ID)
	if err != nil {
		m.status = err.Error()
		return m, nil
	}
	m.inv = next
	m.persist(res)
	// Keep the cursor inside the items table.
	if m.row >= len(m.inv.Items) {
		m.row = len(m.inv.Items) - 1
	}
	return m, nil
}

// --- undo/redo ----------------------------------------------------------

func (m appModel) undo() (tea.Model, tea.Cmd) {
	snap, ok := m.hist.Undo()
	if !ok {
		m.status = "nothing to undo"
		return m, nil
	}
	return m.restore(snap, "invoice.undo"), nil
}

func (m appModel) redo() (tea.Model, tea.Cmd) {
	snap, ok := m.hist.Redo()
	if !ok {
		m.status = "nothing to redo"
		return m, nil
	}
	return m.restore(snap, "invoice.redo"), nil
}

func (m appModel) restore(snap history.Snapshot, eventType string) appModel {
	m.inv.Items = snap.Items
	m.inv.TaxPercent = snap.TaxPercent
	m.inv.DiscountPercent = snap.DiscountPercent
	m.revalidate()
	m.clampCursor()
	if err := m.store.SaveInvoice(m.inv); err != nil {
		m.status = "save failed: " + err.Error()
		return m
	}
	if err := m.store.AppendEvent(eventType, m.inv.InvoiceNumber, nil); err != nil {
		m.status = "event log: " + err.Error()
		return m
	}
	m.status = ""
	return m
}

func (m *appModel) revalidate() {
	m.errs = validate.Errors{}
	for _, it := range m.inv.Items {
		validate.Item(m.errs, it)
	}
}

// --- persistence --------------------------------------------------------

// persist applies a completed transition's side effects: undo snapshot,
// invoice snapshot, edit event. The snapshot is authoritative; a failing
// event append only warns.
func (m *appModel) persist(res mutate.Result) {
	if !res.Changed {
		return
	}
	if res.RecordHistory {
		m.hist.Record(m.inv.Items, m.inv.TaxPercent, m.inv.DiscountPercent)
	}
	if err := m.store.SaveInvoice(m.inv); err != nil {
		m.status = "save failed: " + err.Error()
		return
	}
	if res.EventType != "" {
		if err := m.store.AppendEvent(res.EventType, res.EntityID, res.Payload); err != nil {
			m.status = "event log: " + err.Error()
			return
		}
	}
	m.status = ""
}

// --- export -------------------------------------------------------------

// startExport opens the preview and arms the export. The PDF capture runs
// when the previewReadyMsg arrives, i.e. after this frame (with the preview
// visible) has been scheduled for render.
func (m appModel) startExport() (tea.Model, tea.Cmd) {
	m.previewOpen = true
	m.pendingExport = true
	m.status = "exporting..."
	return m, func() tea.Msg { return previewReadyMsg{} }
}

func exportCmd(s store.Store, inv model.Invoice) tea.Cmd {
	return func() tea.Msg {
		path := filepath.Join(s.Dir, export.DefaultFileName)
		if err := export.WritePDF(inv, path); err != nil {
			return exportDoneMsg{err: err}
		}
		tot := totals.Compute(inv.Items, inv.TaxPercent, inv.DiscountPercent)
		_, err := s.RecordExport(context.Background(), store.ExportRecord{
			InvoiceNumber: inv.InvoiceNumber,
			Title:         inv.Title,
			Currency:      string(inv.Currency),
			Total:         tot.Total,
			Path:          path,
		})
		if err != nil {
			// Archive trouble must not fail the export itself.
			return exportDoneMsg{path: path}
		}
		_ = s.AppendEvent("invoice.export", inv.InvoiceNumber, map[string]any{"path": path})
		return exportDoneMsg{path: path}
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
