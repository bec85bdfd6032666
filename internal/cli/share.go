package cli

import (
	"fmt"
	"os"

	"billcraft-cli/internal/model"
	"billcraft-cli/internal/share"

	"github.com/spf13/cobra"
)

func newShareCmd(app *App) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "share",
		Short: "Print a shareable link encoding the full invoice state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := resolveStore(app)
			if err != nil {
				return err
			}
			inv, err := s.LoadInvoice()
			if err != nil {
				return err
			}
			link, err := share.Encode(inv)
			if err != nil {
				return writeErr(cmd, err)
			}
			if raw {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), link)
				return err
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"link": link}})
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Print just the link (no JSON envelope)")

	return cmd
}

func newOpenCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "open <link>",
		Short: "Import invoice state from a share link, replacing the stored snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := resolveStore(app)
			if err != nil {
				return err
			}

			inv, present, err := share.Decode(args[0])
			switch {
			case err != nil:
				// A data parameter was there but malformed: defaults win, not
				// the stored snapshot.
				fmt.Fprintf(os.Stderr, "warning: could not decode share link (%v); using defaults\n", err)
				inv = model.DefaultInvoice()
			case !present:
				// No data parameter at all: keep the stored snapshot.
				stored, err := s.LoadInvoice()
				if err != nil {
					return err
				}
				inv = stored
			}

			if err := s.SaveInvoice(inv); err != nil {
				return writeErr(cmd, err)
			}
			if err := s.AppendEvent("invoice.open_link", inv.InvoiceNumber, map[string]any{"imported": present && err == nil}); err != nil {
				fmt.Fprintf(os.Stderr, "warning: could not append edit event: %v\n", err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"invoice": inv}})
		},
	}
}
