package cli

import (
	"billcraft-cli/internal/export"
	"billcraft-cli/internal/format"
	"billcraft-cli/internal/totals"

	"github.com/spf13/cobra"
)

func newShowCmd(app *App) *cobra.Command {
	var asText bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the stored invoice",
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

			if asText {
				return format.Write(cmd.OutOrStdout(), export.Text(inv), "text", false)
			}
			tot := totals.Compute(inv.Items, inv.TaxPercent, inv.DiscountPercent)
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"invoice": inv,
				"totals":  tot,
			}})
		},
	}

	cmd.Flags().BoolVar(&asText, "text", false, "Render as the plain-text preview instead of JSON")

	return cmd
}

func newTotalsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "totals",
		Short: "Print the computed totals (subtotal, tax, discount, total)",
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
			tot := totals.Compute(inv.Items, inv.TaxPercent, inv.DiscountPercent)
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"totals": tot}})
		},
	}
}
