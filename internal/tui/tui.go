// Package tui is the interactive single-screen invoice editor: an items
// table with cell-level focus, header fields, a live totals pane, and a
// preview/export modal. All edits flow through the reducer transitions in
// internal/mutate and persist immediately.
package tui

import (
	"billcraft-cli/internal/model"
	"billcraft-cli/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the editor on the given workspace. It blocks until the user
// quits.
func Run(s store.Store, inv model.Invoice) error {
	applyColorProfilePreference()
	applyThemePreference()

	p := tea.NewProgram(newAppModel(s, inv), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
