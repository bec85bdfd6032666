package cli

import (
	"fmt"
	"os"
	"strings"

	"billcraft-cli/internal/format"
	"billcraft-cli/internal/model"
	"billcraft-cli/internal/mutate"
	"billcraft-cli/internal/store"
	"billcraft-cli/internal/tui"

	"github.com/spf13/cobra"
)

type App struct {
	Dir        string
	Workspace  string
	PrettyJSON bool
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "billcraft",
		Short:        "Billcraft (local-first) invoice builder CLI + TUI",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive editor
  billcraft

  # Scriptable edits
  billcraft items add
  billcraft set tax 10

  # Share and import
  billcraft share
  billcraft open 'https://billcraft.app/i?data=...'

  # Export
  billcraft export --out invoice.pdf
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive editor.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("BILLCRAFT_DIR", ""), "Path to workspace dir (advanced: overrides workspace resolution; use for fixtures/tests)")
	cmd.PersistentFlags().StringVar(&app.Workspace, "workspace", envOr("BILLCRAFT_WORKSPACE", ""), "Workspace name (default: 'default')")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")

	cmd.AddCommand(newItemsCmd(app))
	cmd.AddCommand(newSetCmd(app))
	cmd.AddCommand(newShowCmd(app))
	cmd.AddCommand(newTotalsCmd(app))
	cmd.AddCommand(newShareCmd(app))
	cmd.AddCommand(newOpenCmd(app))
	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newPrintCmd(app))
	cmd.AddCommand(newEventsCmd(app))
	cmd.AddCommand(newArchiveCmd(app))
	cmd.AddCommand(newWorkspaceCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

func runTUI(app *App) error {
	s, err := resolveStore(app)
	if err != nil {
		return err
	}
	inv, err := s.LoadInvoice()
	if err != nil {
		return err
	}
	return tui.Run(s, inv)
}

// resolveStore picks the workspace directory:
// 1) --dir
// 2) --workspace
// 3) config.json currentWorkspace
// 4) the implicit "default" workspace
func resolveStore(app *App) (store.Store, error) {
	dir := app.Dir
	if dir == "" {
		if app.Workspace == "" {
			if cfg, err := store.LoadConfig(); err == nil && cfg.CurrentWorkspace != "" {
				app.Workspace = cfg.CurrentWorkspace
			} else {
				app.Workspace = "default"
			}
		}
		d, err := store.WorkspaceDir(app.Workspace)
		if err != nil {
			return store.Store{}, err
		}
		dir = d
		app.Dir = dir
	}
	return store.Store{Dir: dir}, nil
}

// commit persists a completed transition: snapshot first (authoritative),
// then the edit event (best effort — an unwritable log must not lose the
// edit itself).
func commit(s store.Store, inv model.Invoice, res mutate.Result) error {
	if !res.Changed {
		return nil
	}
	if err := s.SaveInvoice(inv); err != nil {
		return err
	}
	if res.EventType != "" {
		if err := s.AppendEvent(res.EventType, res.EntityID, res.Payload); err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not append edit event: %v\n", err)
		}
	}
	return nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, "json", app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
