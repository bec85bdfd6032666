package cli

import (
	"context"
	"fmt"
	"os"

	"billcraft-cli/internal/export"
	"billcraft-cli/internal/store"
	"billcraft-cli/internal/totals"

	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the invoice to a single-page A4 PDF",
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

			if err := export.WritePDF(inv, out); err != nil {
				return writeErr(cmd, err)
			}

			tot := totals.Compute(inv.Items, inv.TaxPercent, inv.DiscountPercent)
			rec, err := s.RecordExport(context.Background(), store.ExportRecord{
				InvoiceNumber: inv.InvoiceNumber,
				Title:         inv.Title,
				Currency:      string(inv.Currency),
				Total:         tot.Total,
				Path:          out,
			})
			if err != nil {
				// The PDF is already on disk; a failed archive write should
				// not fail the export.
				fmt.Fprintf(os.Stderr, "warning: could not archive export: %v\n", err)
			}
			if err := s.AppendEvent("invoice.export", inv.InvoiceNumber, map[string]any{"path": out}); err != nil {
				fmt.Fprintf(os.Stderr, "warning: could not append edit event: %v\n", err)
			}

			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"path":   out,
				"export": rec,
			}})
		},
	}

	cmd.Flags().StringVar(&out, "out", export.DefaultFileName, "Output file path")

	return cmd
}

func newPrintCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "print",
		Short: "Render the invoice preview as plain text (pipe to lpr to print)",
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
			_, err = fmt.Fprint(cmd.OutOrStdout(), export.Text(inv))
			return err
		},
	}
}
