package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/familytrip/tripboard/internal/api"
	"github.com/familytrip/tripboard/internal/domain"
	"github.com/familytrip/tripboard/internal/screen"
)

func newChecklistCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checklist",
		Short: "Packing and preparation checklist of the selected trip",
	}
	cmd.AddCommand(newChecklistListCmd(app))
	cmd.AddCommand(newChecklistAddCmd(app))
	cmd.AddCommand(newChecklistToggleCmd(app))
	cmd.AddCommand(newChecklistRmCmd(app))
	return cmd
}

func newChecklistListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List checklist items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.open(cmd)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()

			v := screen.NewChecklist(s.trips, s.remote, app.Log)
			defer v.Close()
			if err := v.Load(cmd.Context()); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, tripScoped(v.TripID(), mapSlice(v.Items(), api.FromChecklistItem)))
		},
	}
}

func newChecklistAddCmd(app *App) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "add <label>",
		Short: "Add a checklist item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			item := domain.ChecklistItem{
				Category: strings.TrimSpace(category),
				Label:    strings.TrimSpace(args[0]),
			}

			s, err := app.open(cmd)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()

			created, err := screen.NewChecklist(s.trips, s.remote, app.Log).Add(cmd.Context(), item)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": api.FromChecklistItem(created)})
		},
	}

	cmd.Flags().StringVar(&category, "category", "general", "Group the item belongs to")
	return cmd
}

func newChecklistToggleCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <item-id>",
		Short: "Flip an item between checked and unchecked",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("checklist item", args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			s, err := app.open(cmd)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()

			item, err := screen.NewChecklist(s.trips, s.remote, app.Log).Toggle(cmd.Context(), id)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": api.FromChecklistItem(item)})
		},
	}
}

func newChecklistRmCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <item-id>",
		Short: "Remove a checklist item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("checklist item", args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			s, err := app.open(cmd)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()

			if err := screen.NewChecklist(s.trips, s.remote, app.Log).Remove(cmd.Context(), id); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"deleted": id})
		},
	}
}
