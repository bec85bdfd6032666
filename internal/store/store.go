package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"billcraft-cli/internal/model"
)

const invoiceFileName = "invoice.json"

// Store is a workspace directory holding the durable invoice snapshot, the
// edit event log, and the export archive.
type Store struct {
	Dir string
}

func ConfigDir() (string, error) {
	// Test/advanced override (keeps unit tests from touching ~/.billcraft).
	if v := strings.TrimSpace(os.Getenv("BILLCRAFT_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".billcraft"), nil
}

func WorkspaceDir(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errors.New("workspace name is empty")
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "workspaces", name), nil
}

func (s Store) Ensure() error {
	return os.MkdirAll(s.Dir, 0o755)
}

func (s Store) invoicePath() string {
	return filepath.Join(s.Dir, invoiceFileName)
}

// LoadInvoice reads the durable snapshot. Loading is best effort: a missing
// or corrupt file yields the built-in defaults, never an error the caller
// has to branch on. Corruption is reported on stderr so the user knows the
// previous state was abandoned.
func (s Store) LoadInvoice() (model.Invoice, error) {
	if err := s.Ensure(); err != nil {
		return model.Invoice{}, err
	}
	b, err := os.ReadFile(s.invoicePath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return model.DefaultInvoice(), nil
		}
		return model.Invoice{}, err
	}
	var inv model.Invoice
	if err := json.Unmarshal(b, &inv); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %s is corrupt (%v); starting from defaults\n", s.invoicePath(), err)
		return model.DefaultInvoice(), nil
	}
	inv.Normalize()
	return inv, nil
}

// SaveInvoice overwrites the durable snapshot (last-write-wins, no
// versioning). Written via tmp+rename so a crash never leaves a torn file.
func (s Store) SaveInvoice(inv model.Invoice) error {
	if err := s.Ensure(); err != nil {
		return err
	}
	b, err := json.MarshalIndent(inv, "", "  ")
	if err != nil {
		return err
	}
	path := s.invoicePath()
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
