package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/familytrip/tripboard/internal/api"
	"github.com/familytrip/tripboard/internal/domain"
	"github.com/familytrip/tripboard/internal/screen"
)

func newScheduleCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "schedule",
		Aliases: []string{"schedules"},
		Short:   "Day-by-day plan of the selected trip",
	}
	cmd.AddCommand(newScheduleListCmd(app))
	cmd.AddCommand(newScheduleAddCmd(app))
	cmd.AddCommand(newScheduleRmCmd(app))
	return cmd
}

func newScheduleListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List schedule entries by date and start time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.open(cmd)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()

			v := screen.NewSchedules(s.trips, s.remote, app.Log)
			defer v.Close()
			if err := v.Load(cmd.Context()); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, tripScoped(v.TripID(), mapSlice(v.Items(), api.FromSchedule)))
		},
	}
}

func newScheduleAddCmd(app *App) *cobra.Command {
	var (
		date               string
		startTime, endTime string
		title, location    string
		memo               string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a schedule entry to the selected trip",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := parseDate("date", date)
			if err != nil {
				return writeErr(cmd, err)
			}
			entry := domain.Schedule{
				Date:      d,
				StartTime: strings.TrimSpace(startTime),
				EndTime:   strings.TrimSpace(endTime),
				Title:     strings.TrimSpace(title),
				Location:  strings.TrimSpace(location),
				Memo:      memo,
			}

			s, err := app.open(cmd)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()

			created, err := screen.NewSchedules(s.trips, s.remote, app.Log).Add(cmd.Context(), entry)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": api.FromSchedule(created)})
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day of the entry (YYYY-MM-DD)")
	cmd.Flags().StringVar(&startTime, "start-time", "", "Start time (HH:MM)")
	cmd.Flags().StringVar(&endTime, "end-time", "", "End time (HH:MM)")
	cmd.Flags().StringVar(&title, "title", "", "What is happening")
	cmd.Flags().StringVar(&location, "location", "", "Where it happens")
	cmd.Flags().StringVar(&memo, "memo", "", "Free-form note")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newScheduleRmCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <schedule-id>",
		Short: "Remove a schedule entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("schedule", args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			s, err := app.open(cmd)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()

			if err := screen.NewSchedules(s.trips, s.remote, app.Log).Remove(cmd.Context(), id); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"deleted": id})
		},
	}
}
