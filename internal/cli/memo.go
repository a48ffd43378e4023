package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/familytrip/tripboard/internal/api"
	"github.com/familytrip/tripboard/internal/domain"
	"github.com/familytrip/tripboard/internal/screen"
)

func newMemoCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "memo",
		Aliases: []string{"memos"},
		Short:   "Notes attached to the selected trip",
	}
	cmd.AddCommand(newMemoListCmd(app))
	cmd.AddCommand(newMemoAddCmd(app))
	cmd.AddCommand(newMemoEditCmd(app))
	cmd.AddCommand(newMemoRmCmd(app))
	return cmd
}

func newMemoListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List memos, most recently edited first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.open(cmd)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()

			v := screen.NewMemos(s.trips, s.remote, app.Log)
			defer v.Close()
			if err := v.Load(cmd.Context()); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, tripScoped(v.TripID(), mapSlice(v.Items(), api.FromMemo)))
		},
	}
}

func newMemoAddCmd(app *App) *cobra.Command {
	var title, content string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Write a memo",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.open(cmd)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()

			m := domain.Memo{Title: strings.TrimSpace(title), Content: content}
			created, err := screen.NewMemos(s.trips, s.remote, app.Log).Add(cmd.Context(), m)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": api.FromMemo(created)})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Memo title")
	cmd.Flags().StringVar(&content, "content", "", "Memo body")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newMemoEditCmd(app *App) *cobra.Command {
	var title, content string

	cmd := &cobra.Command{
		Use:   "edit <memo-id>",
		Short: "Change a memo's title or body",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("memo", args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			if !cmd.Flags().Changed("title") && !cmd.Flags().Changed("content") {
				return writeErr(cmd, fmt.Errorf("%w: pass --title or --content", domain.ErrValidation))
			}

			s, err := app.open(cmd)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()

			v := screen.NewMemos(s.trips, s.remote, app.Log)
			defer v.Close()
			if err := v.Load(cmd.Context()); err != nil {
				return writeErr(cmd, err)
			}
			m, ok := findByID(v.Items(), func(m domain.Memo) bool { return m.ID == id })
			if !ok {
				return writeErr(cmd, fmt.Errorf("memo %s: %w", id, domain.ErrNotFound))
			}
			if cmd.Flags().Changed("title") {
				m.Title = strings.TrimSpace(title)
			}
			if cmd.Flags().Changed("content") {
				m.Content = content
			}

			updated, err := v.Edit(cmd.Context(), m)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": api.FromMemo(updated)})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&content, "content", "", "New body")
	return cmd
}

func newMemoRmCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <memo-id>",
		Short: "Delete a memo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("memo", args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			s, err := app.open(cmd)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()

			if err := screen.NewMemos(s.trips, s.remote, app.Log).Remove(cmd.Context(), id); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"deleted": id})
		},
	}
}
