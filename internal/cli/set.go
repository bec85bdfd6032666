package cli

import (
	"billcraft-cli/internal/model"
	"billcraft-cli/internal/mutate"

	"github.com/spf13/cobra"
)

func newSetCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Set invoice-level fields (tax, discount, title, number, date, currency)",
	}

	type headerOp struct {
		use   string
		short string
		apply func(model.Invoice, string) (model.Invoice, mutate.Result, error)
	}

	wrap := func(f func(model.Invoice, string) (model.Invoice, mutate.Result)) func(model.Invoice, string) (model.Invoice, mutate.Result, error) {
		return func(inv model.Invoice, raw string) (model.Invoice, mutate.Result, error) {
			out, res := f(inv, raw)
			return out, res, nil
		}
	}

	ops := []headerOp{
		{"tax <percent>", "Set the tax percentage (malformed input counts as 0)", wrap(mutate.SetTax)},
		{"discount <percent>", "Set the discount percentage (malformed input counts as 0)", wrap(mutate.SetDiscount)},
		{"title <text>", "Set the invoice title", wrap(mutate.SetTitle)},
		{"number <text>", "Set the invoice number", wrap(mutate.SetInvoiceNumber)},
		{"date <yyyy-mm-dd>", "Set the invoice date", wrap(mutate.SetDate)},
		{"currency <USD|EUR|INR>", "Set the invoice currency", mutate.SetCurrency},
	}

	for _, op := range ops {
		op := op
		cmd.AddCommand(&cobra.Command{
			Use:   op.use,
			Short: op.short,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				s, err := resolveStore(app)
				if err != nil {
					return err
				}
				inv, err := s.LoadInvoice()
				if err != nil {
					return err
				}

				inv, res, err := op.apply(inv, args[0])
				if err != nil {
					return writeErr(cmd, err)
				}
				if err := commit(s, inv, res); err != nil {
					return writeErr(cmd, err)
				}
				return writeOut(cmd, app, map[string]any{"data": map[string]any{"invoice": inv}})
			},
		})
	}

	return cmd
}
