package cli

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"billcraft-cli/internal/store"

	"github.com/spf13/cobra"
)

func newWorkspaceCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "workspace",
		Short: "Manage workspaces (one invoice per workspace)",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List known workspaces",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := listWorkspaces()
			if err != nil {
				return writeErr(cmd, err)
			}
			cfg, err := store.LoadConfig()
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"workspaces": names,
				"current":    currentWorkspaceName(cfg),
			}})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "use <name>",
		Short: "Switch the current workspace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(args[0])
			if name == "" {
				return writeErr(cmd, errors.New("workspace name is empty"))
			}
			cfg, err := store.LoadConfig()
			if err != nil {
				return writeErr(cmd, err)
			}
			cfg.CurrentWorkspace = name
			if err := store.SaveConfig(cfg); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"current": name}})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "current",
		Short: "Print the current workspace",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := store.LoadConfig()
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"current": currentWorkspaceName(cfg)}})
		},
	})
	return cmd
}

func currentWorkspaceName(cfg *store.GlobalConfig) string {
	if cfg != nil && cfg.CurrentWorkspace != "" {
		return cfg.CurrentWorkspace
	}
	return "default"
}

func listWorkspaces() ([]string, error) {
	dir, err := store.ConfigDir()
	if err != nil {
		return nil, err
	}
	out := []string{}
	ents, err := os.ReadDir(filepath.Join(dir, "workspaces"))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return out, nil
		}
		return nil, err
	}
	for _, e := range ents {
		if e.IsDir() {
			out = append(out, e.Name())
		}
	}
	sort.Strings(out)
	return out, nil
}
