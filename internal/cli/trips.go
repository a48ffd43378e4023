package cli

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/familytrip/tripboard/internal/api"
	"github.com/familytrip/tripboard/internal/domain"
	"github.com/familytrip/tripboard/internal/screen"
	"github.com/familytrip/tripboard/internal/tripctx"
)

func newTripsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trips",
		Short: "List trips and choose the active one",
	}
	cmd.AddCommand(newTripsListCmd(app))
	cmd.AddCommand(newTripsShowCmd(app))
	cmd.AddCommand(newTripsUseCmd(app))
	cmd.AddCommand(newTripsClearCmd(app))
	cmd.AddCommand(newTripsCreateCmd(app))
	cmd.AddCommand(newTripsDeleteCmd(app))
	return cmd
}

type tripRow struct {
	api.Trip
	Selected bool `json:"selected"`
}

func newTripsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List trips, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.open(cmd)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()

			snap := s.trips.Snapshot()
			rows := make([]tripRow, len(snap.Trips))
			for i, t := range snap.Trips {
				rows[i] = tripRow{Trip: api.FromTrip(t), Selected: t.ID == snap.SelectedID}
			}
			return writeOut(cmd, app, map[string]any{"data": rows})
		},
	}
}

func newTripsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the selected trip and its day counter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.open(cmd)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()

			trip, countdown, ok := screen.NewTrips(s.trips, s.remote).Selected()
			if !ok {
				return writeOut(cmd, app, map[string]any{"data": nil, "message": "no trip selected"})
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"trip":      api.FromTrip(trip),
				"countdown": api.FromCountdown(countdown),
			}})
		},
	}
}

func newTripsUseCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "use <trip-id>",
		Short: "Make a trip the active one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("trip", args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			s, err := app.open(cmd)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()

			cancel := s.trips.Subscribe(func(snap tripctx.Snapshot) {
				app.Log.Debug("selection changed", "state", snap.State.String(), "trip_id", snap.SelectedID)
			})
			defer cancel()

			if err := s.trips.Select(cmd.Context(), id); err != nil {
				return writeErr(cmd, err)
			}
			trip := s.trips.SelectedTrip()
			if trip == nil {
				return writeErr(cmd, fmt.Errorf("trip %s: %w", id, domain.ErrNotFound))
			}
			return writeOut(cmd, app, map[string]any{"data": api.FromTrip(*trip)})
		},
	}
}

func newTripsClearCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Forget the active trip",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.open(cmd)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()

			if err := s.trips.Select(cmd.Context(), uuid.Nil); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": nil})
		},
	}
}

func newTripsCreateCmd(app *App) *cobra.Command {
	var (
		title       string
		start, end  string
		familyCount int
		cities      string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a trip and make it the active one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t := domain.Trip{Title: strings.TrimSpace(title)}
			var err error
			if t.StartDate, err = parseDate("start", start); err != nil {
				return writeErr(cmd, err)
			}
			if t.EndDate, err = parseDate("end", end); err != nil {
				return writeErr(cmd, err)
			}
			if familyCount > 0 {
				t.FamilyCount = &familyCount
			}
			for _, c := range strings.Split(cities, ",") {
				if c = strings.TrimSpace(c); c != "" {
					t.Cities = append(t.Cities, c)
				}
			}

			s, err := app.open(cmd)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()

			created, err := screen.NewTrips(s.trips, s.remote).Create(cmd.Context(), t)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": api.FromTrip(created)})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Trip title")
	cmd.Flags().StringVar(&start, "start", "", "First day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "Last day (YYYY-MM-DD)")
	cmd.Flags().IntVar(&familyCount, "family", 0, "Number of travellers")
	cmd.Flags().StringVar(&cities, "cities", "", "Comma-separated cities")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
	return cmd
}

func newTripsDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <trip-id>",
		Short: "Delete a trip and everything in it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("trip", args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			s, err := app.open(cmd)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()

			if err := screen.NewTrips(s.trips, s.remote).Delete(cmd.Context(), id); err != nil {
				return writeErr(cmd, err)
			}
			var selected any
			if sel := s.trips.SelectedID(); sel != uuid.Nil {
				selected = sel
			}
			return writeOut(cmd, app, map[string]any{"deleted": id, "selected_trip_id": selected})
		},
	}
}
