package cli

import (
	"context"

	"github.com/spf13/cobra"
)

func newEventsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Inspect the append-only edit log",
	}

	var limit int
	list := &cobra.Command{
		Use:   "list",
		Short: "List edit events, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := resolveStore(app)
			if err != nil {
				return err
			}
			evs, err := s.ReadEvents(limit)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"events": evs}})
		},
	}
	list.Flags().IntVar(&limit, "limit", 50, "Keep only the most recent N events (0 = all)")
	cmd.AddCommand(list)

	return cmd
}

func newArchiveCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Inspect previously exported invoices",
	}

	var limit int
	list := &cobra.Command{
		Use:   "list",
		Short: "List archived exports, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := resolveStore(app)
			if err != nil {
				return err
			}
			recs, err := s.ListExports(context.Background(), limit)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"exports": recs}})
		},
	}
	list.Flags().IntVar(&limit, "limit", 20, "Keep only the most recent N exports (0 = all)")
	cmd.AddCommand(list)

	return cmd
}
