package cli

import (
	"fmt"

	"billcraft-cli/internal/mutate"
	"billcraft-cli/internal/validate"

	"github.com/spf13/cobra"
)

func newItemsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "items",
		Short: "Manage invoice line items",
	}
	cmd.AddCommand(newItemsListCmd(app))
	cmd.AddCommand(newItemsAddCmd(app))
	cmd.AddCommand(newItemsSetCmd(app))
	cmd.AddCommand(newItemsRemoveCmd(app))
	return cmd
}

func newItemsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List line items",
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
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"items": inv.Items}})
		},
	}
}

func newItemsAddCmd(app *App) *cobra.Command {
	var description string
	var quantity string
	var price string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Append a line item (default: empty row, quantity 1, price 0)",
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

			inv, res := mutate.AddItem(inv)
			errs := validate.Errors{}
			itemID := res.EntityID
			for field, raw := range map[string]string{
				validate.FieldDescription: description,
				validate.FieldQuantity:    quantity,
				validate.FieldPrice:       price,
			} {
				if raw == "" {
					continue
				}
				inv, _, err = mutate.UpdateItem(inv, errs, itemID, field, raw)
				if err != nil {
					return writeErr(cmd, err)
				}
			}
			if err := commit(s, inv, res); err != nil {
				return writeErr(cmd, err)
			}
			warnValidation(cmd, errs)

			it, _, _ := inv.FindItem(itemID)
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"item": it}})
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "Item description")
	cmd.Flags().StringVar(&quantity, "quantity", "", "Item quantity (malformed input counts as 1)")
	cmd.Flags().StringVar(&price, "price", "", "Item unit price (malformed input counts as 0)")

	return cmd
}

func newItemsSetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set <item-id> <description|quantity|price> <value>",
		Short: "Set one field of a line item",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := resolveStore(app)
			if err != nil {
				return err
			}
			inv, err := s.LoadInvoice()
			if err != nil {
				return err
			}

			errs := validate.Errors{}
			inv, res, err := mutate.UpdateItem(inv, errs, args[0], args[1], args[2])
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := commit(s, inv, res); err != nil {
				return writeErr(cmd, err)
			}
			warnValidation(cmd, errs)

			it, _, _ := inv.FindItem(args[0])
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"item": it}})
		},
	}
}

func newItemsRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <item-id>",
		Short: "Remove a line item (the last remaining item cannot be removed)",
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

			inv, res, err := mutate.RemoveItem(inv, validate.Errors{}, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := commit(s, inv, res); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"items": inv.Items}})
		},
	}
}

// warnValidation surfaces non-blocking field warnings on stderr; the write
// has already happened.
func warnValidation(cmd *cobra.Command, errs validate.Errors) {
	for key, msg := range errs {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s: %s\n", key, msg)
	}
}
