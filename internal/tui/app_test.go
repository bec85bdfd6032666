package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"billcraft-cli/internal/model"
	"billcraft-cli/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

func testModel(t *testing.T) appModel {
	t.Helper()
	s := store.Store{Dir: t.TempDir()}
	inv, err := s.LoadInvoice()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	m := newAppModel(s, inv)
	m.width = 100
	m.height = 40
	return m
}

func press(t *testing.T, m appModel, msg tea.Msg) (appModel, tea.Cmd) {
	t.Helper()
	nm, cmd := m.Update(msg)
	return nm.(appModel), cmd
}

func key(k tea.KeyType) tea.Msg { return tea.KeyMsg{Type: k} }

func typeText(t *testing.T, m appModel, s string) appModel {
	t.Helper()
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return m
}

func TestTypeToEdit_CommitsDescription(t *testing.T) {
	m := testModel(t)

	m = typeText(t, m, "Design work")
	if !m.editing {
		t.Fatalf("typing should start an edit")
	}
	m, _ = press(t, m, key(tea.KeyEnter))
	if m.editing {
		t.Fatalf("enter should commit the edit")
	}
	if got := m.inv.Items[0].Description; got != "Design work" {
		t.Fatalf("description: got %q", got)
	}

	// The edit is already on disk.
	inv, err := m.store.LoadInvoice()
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if inv.Items[0].Description != "Design work" {
		t.Fatalf("edit not persisted: %+v", inv.Items[0])
	}
}

func TestEscCancelsEdit(t *testing.T) {
	m := testModel(t)
	m = typeText(t, m, "oops")
	m, _ = press(t, m, key(tea.KeyEsc))
	if m.editing {
		t.Fatalf("esc should cancel the edit")
	}
	if m.inv.Items[0].Description != "" {
		t.Fatalf("cancelled edit must not change state")
	}
}

func TestQuantityEdit_InvalidValueWarnsButWrites(t *testing.T) {
	m := testModel(t)
	m.col = colQuantity

	m = typeText(t, m, "0")
	m, _ = press(t, m, key(tea.KeyEnter))

	if got := m.inv.Items[0].Quantity; got != 0 {
		t.Fatalf("quantity: got %d, want 0 written as-is", got)
	}
	if !strings.Contains(m.View(), "Quantity must be at least 1") {
		t.Fatalf("expected inline warning in view")
	}
}

func TestAddRemoveItemKeys(t *testing.T) {
	m := testModel(t)

	m, _ = press(t, m, key(tea.KeyCtrlN))
	if len(m.inv.Items) != 2 {
		t.Fatalf("ctrl+n: got %d items, want 2", len(m.inv.Items))
	}
	if m.row != 1 || m.col != colDescription {
		t.Fatalf("cursor should land on the new row, got row=%d col=%d", m.row, m.col)
	}

	m, _ = press(t, m, key(tea.KeyCtrlD))
	if len(m.inv.Items) != 1 {
		t.Fatalf("ctrl+d: got %d items, want 1", len(m.inv.Items))
	}

	// Removing the last remaining row is refused.
	m, _ = press(t, m, key(tea.KeyCtrlD))
	if len(m.inv.Items) != 1 {
		t.Fatalf("last row must survive, got %d items", len(m.inv.Items))
	}
	if m.status == "" {
		t.Fatalf("expected a status message explaining the refusal")
	}
}

func TestUndoRedoKeys(t *testing.T) {
	m := testModel(t)

	m, _ = press(t, m, key(tea.KeyCtrlN))
	m, _ = press(t, m, key(tea.KeyCtrlN))
	if len(m.inv.Items) != 3 {
		t.Fatalf("setup: got %d items", len(m.inv.Items))
	}

	m, _ = press(t, m, key(tea.KeyCtrlZ))
	m, _ = press(t, m, key(tea.KeyCtrlZ))
	if len(m.inv.Items) != 1 {
		t.Fatalf("undo x2: got %d items, want 1", len(m.inv.Items))
	}

	// Past the start of the log undo is a no-op.
	m, _ = press(t, m, key(tea.KeyCtrlZ))
	if len(m.inv.Items) != 1 {
		t.Fatalf("undo at floor must be a no-op")
	}

	m, _ = press(t, m, key(tea.KeyCtrlY))
	if len(m.inv.Items) != 2 {
		t.Fatalf("redo: got %d items, want 2", len(m.inv.Items))
	}
}

func TestHeaderFieldsAreNotUndoable(t *testing.T) {
	m := testModel(t)

	// Move to the Number field and change it.
	m.row = len(m.inv.Items) + hfNumber
	m = typeText(t, m, "INV-042")
	m, _ = press(t, m, key(tea.KeyEnter))
	if m.inv.InvoiceNumber != "INV-042" {
		t.Fatalf("number: got %q", m.inv.InvoiceNumber)
	}

	m, _ = press(t, m, key(tea.KeyCtrlZ))
	if m.inv.InvoiceNumber != "INV-042" {
		t.Fatalf("undo must not touch the invoice number")
	}
}

func TestCurrencyCyclesOnEnter(t *testing.T) {
	m := testModel(t)
	m.row = len(m.inv.Items) + hfCurrency

	m, _ = press(t, m, key(tea.KeyEnter))
	if m.inv.Currency != model.CurrencyEUR {
		t.Fatalf("currency: got %s, want EUR", m.inv.Currency)
	}
	m, _ = press(t, m, key(tea.KeyEnter))
	m, _ = press(t, m, key(tea.KeyEnter))
	if m.inv.Currency != model.CurrencyUSD {
		t.Fatalf("cycle should wrap back to USD, got %s", m.inv.Currency)
	}
}

func TestExportWaitsForPreviewReady(t *testing.T) {
	m := testModel(t)

	m, cmd := press(t, m, key(tea.KeyCtrlP))
	if !m.previewOpen || !m.pendingExport {
		t.Fatalf("ctrl+p should open the preview and arm the export")
	}
	if cmd == nil {
		t.Fatalf("expected a ready-signal command")
	}
	msg := cmd()
	if _, ok := msg.(previewReadyMsg); !ok {
		t.Fatalf("expected previewReadyMsg, got %T", msg)
	}

	// The capture itself only runs once the ready signal arrives.
	m, cmd = press(t, m, msg)
	if cmd == nil {
		t.Fatalf("expected the export command")
	}
	done, ok := cmd().(exportDoneMsg)
	if !ok {
		t.Fatalf("expected exportDoneMsg")
	}
	if done.err != nil {
		t.Fatalf("export: %v", done.err)
	}

	b, err := os.ReadFile(filepath.Join(m.store.Dir, "invoice.pdf"))
	if err != nil {
		t.Fatalf("expected PDF on disk: %v", err)
	}
	if !strings.HasPrefix(string(b), "%PDF") {
		t.Fatalf("not a PDF")
	}

	m, _ = press(t, m, done)
	if m.pendingExport {
		t.Fatalf("export should be disarmed after completion")
	}
	if !strings.Contains(m.status, "exported") {
		t.Fatalf("status: got %q", m.status)
	}
}

func TestPreviewShowsTotals(t *testing.T) {
	m := testModel(t)
	m.col = colPrice
	m = typeText(t, m, "100")
	m, _ = press(t, m, key(tea.KeyEnter))

	m, _ = press(t, m, key(tea.KeyCtrlO))
	view := m.View()
	if !strings.Contains(view, "$100.00") {
		t.Fatalf("preview should contain the line amount:\n%s", view)
	}
	if !strings.Contains(view, "Total") {
		t.Fatalf("preview should contain the totals block")
	}

	m, _ = press(t, m, key(tea.KeyEsc))
	if m.previewOpen {
		t.Fatalf("esc should close the preview")
	}
}

func TestTabWalksCellsAndWraps(t *testing.T) {
	m := testModel(t)

	m, _ = press(t, m, key(tea.KeyTab))
	m, _ = press(t, m, key(tea.KeyTab))
	if m.row != 0 || m.col != colPrice {
		t.Fatalf("tab x2: got row=%d col=%d", m.row, m.col)
	}

	// Walk off the item row into the header fields, then wrap around.
	for i := 0; i < headerFieldCount+1; i++ {
		m, _ = press(t, m, key(tea.KeyTab))
	}
	if m.row != 0 || m.col != colDescription {
		t.Fatalf("tab should wrap to the first cell, got row=%d col=%d", m.row, m.col)
	}
}

func TestViewSurvivesZeroWidth(t *testing.T) {
	m := testModel(t)
	m.width = 0
	if v := m.View(); v == "" || strings.Contains(v, "Something went wrong") {
		t.Fatalf("zero-width render should still produce the editor frame")
	}
}
