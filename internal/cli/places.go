package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/familytrip/tripboard/internal/api"
	"github.com/familytrip/tripboard/internal/domain"
	"github.com/familytrip/tripboard/internal/screen"
)

func newPlacesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "places",
		Aliases: []string{"place"},
		Short:   "Places to visit on the selected trip",
	}
	cmd.AddCommand(newPlacesListCmd(app))
	cmd.AddCommand(newPlacesAddCmd(app))
	cmd.AddCommand(newPlacesVisitCmd(app))
	cmd.AddCommand(newPlacesRmCmd(app))
	return cmd
}

func newPlacesListCmd(app *App) *cobra.Command {
	var city, category string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List places, optionally narrowed by city and category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.open(cmd)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()

			v := screen.NewPlaces(s.trips, s.remote, app.Log)
			defer v.Close()
			v.SetFilter(domain.PlaceFilter{
				City:     strings.TrimSpace(city),
				Category: domain.PlaceCategory(strings.ToLower(strings.TrimSpace(category))),
			})
			if err := v.Load(cmd.Context()); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, tripScoped(v.TripID(), mapSlice(v.Items(), api.FromPlace)))
		},
	}

	cmd.Flags().StringVar(&city, "city", "", "Only places in this city")
	cmd.Flags().StringVar(&category, "category", "", "Only this category (tour, food, shop, play, museum, medical, market)")
	return cmd
}

func newPlacesAddCmd(app *App) *cobra.Command {
	var (
		p        domain.Place
		category string
		lat, lng float64
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a place to the selected trip",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p.Name = strings.TrimSpace(args[0])
			p.City = strings.TrimSpace(p.City)
			p.Category = domain.PlaceCategory(strings.ToLower(strings.TrimSpace(category)))
			if cmd.Flags().Changed("lat") {
				p.Lat = &lat
			}
			if cmd.Flags().Changed("lng") {
				p.Lng = &lng
			}

			s, err := app.open(cmd)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()

			created, err := screen.NewPlaces(s.trips, s.remote, app.Log).Add(cmd.Context(), p)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": api.FromPlace(created)})
		},
	}

	f := cmd.Flags()
	f.StringVar(&p.City, "city", "", "City the place is in")
	f.StringVar(&category, "category", string(domain.PlaceTour), "tour, food, shop, play, museum, medical or market")
	f.IntVar(&p.Rating, "rating", 0, "Rating from 0 to 5")
	f.BoolVar(&p.IsKidFriendly, "kid-friendly", false, "Suitable for children")
	f.StringVar(&p.Notes, "notes", "", "Free-form notes")
	f.StringVar(&p.Address, "address", "", "Street address")
	f.StringVar(&p.OperatingHours, "hours", "", "Opening hours")
	f.StringVar(&p.ContactPhone, "phone", "", "Contact phone number")
	f.StringVar(&p.WebsiteURL, "website", "", "Website URL")
	f.StringVar(&p.GoogleMapURL, "map", "", "Map link")
	f.Float64Var(&lat, "lat", 0, "Latitude")
	f.Float64Var(&lng, "lng", 0, "Longitude")
	_ = cmd.MarkFlagRequired("city")
	return cmd
}

func newPlacesVisitCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "visit <place-id>",
		Short: "Record a visit to a place",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("place", args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			s, err := app.open(cmd)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()

			p, err := screen.NewPlaces(s.trips, s.remote, app.Log).Visit(cmd.Context(), id)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": api.FromPlace(p)})
		},
	}
}

func newPlacesRmCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <place-id>",
		Short: "Remove a place",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("place", args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			s, err := app.open(cmd)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()

			if err := screen.NewPlaces(s.trips, s.remote, app.Log).Remove(cmd.Context(), id); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"deleted": id})
		},
	}
}
