// Package cli implements the tripdash command tree.
package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/familytrip/tripboard/internal/client"
	"github.com/familytrip/tripboard/internal/config"
	"github.com/familytrip/tripboard/internal/domain"
	"github.com/familytrip/tripboard/internal/localstore"
	"github.com/familytrip/tripboard/internal/tripctx"
)

const dateLayout = "2006-01-02"

type App struct {
	APIURL          string
	ProfilePath     string
	Token           string
	Timeout         time.Duration
	OrphanRefetches int
	PrettyJSON      bool
	Ephemeral       bool

	Log *slog.Logger
}

// NewRootCmd builds the tripdash command with flag defaults taken from cfg.
func NewRootCmd(cfg config.ClientConfig, log *slog.Logger) *cobra.Command {
	if log == nil {
		log = slog.Default()
	}
	app := &App{
		Timeout:         cfg.Timeout,
		OrphanRefetches: cfg.OrphanRefetches,
		Log:             log,
	}

	cmd := &cobra.Command{
		Use:           "tripdash",
		Short:         "Family trip dashboard",
		SilenceUsage:  true,
		SilenceErrors: true,
		Example: strings.TrimSpace(`
  # Pick the trip every other command works on
  tripdash trips list
  tripdash trips use <trip-id>

  # Work inside the selected trip
  tripdash schedule list
  tripdash expenses list --currency AUD --sort amount --desc
  tripdash checklist toggle <item-id>
`),
	}

	cmd.PersistentFlags().StringVar(&app.APIURL, "api", cfg.APIURL, "tripboard API base URL")
	cmd.PersistentFlags().StringVar(&app.ProfilePath, "profile", cfg.ProfilePath, "Path to the local profile database")
	cmd.PersistentFlags().StringVar(&app.Token, "token", cfg.Token, "Bearer token for the API")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().BoolVar(&app.Ephemeral, "ephemeral", false, "Do not read or write the local profile")

	cmd.AddCommand(newTripsCmd(app))
	cmd.AddCommand(newScheduleCmd(app))
	cmd.AddCommand(newPlacesCmd(app))
	cmd.AddCommand(newExpensesCmd(app))
	cmd.AddCommand(newChecklistCmd(app))
	cmd.AddCommand(newMemoCmd(app))
	cmd.AddCommand(newRateCmd(app))

	return cmd
}

func (app *App) client() *client.Client {
	opts := []client.Option{client.WithToken(app.Token)}
	if app.Timeout > 0 {
		opts = append(opts, client.WithTimeout(app.Timeout))
	}
	return client.New(app.APIURL, opts...)
}

// session is one command's view of the API: a client plus the shared trip
// context, already refreshed.
type session struct {
	remote *client.Client
	trips  *tripctx.Context
	close  func() error
}

func (s *session) Close() error { return s.close() }

func (app *App) open(cmd *cobra.Command) (*session, error) {
	ctx := cmd.Context()
	remote := app.client()

	var store tripctx.Store = &tripctx.MemoryStore{}
	closeFn := func() error { return nil }
	if !app.Ephemeral {
		ls, err := localstore.Open(ctx, app.ProfilePath)
		if err != nil {
			app.Log.Warn("profile unavailable; the selected trip will not be remembered", "path", app.ProfilePath, "error", err)
			store = tripctx.NopStore{}
		} else {
			store, closeFn = ls, ls.Close
		}
	}

	tc := tripctx.New(remote, store,
		tripctx.WithLogger(app.Log),
		tripctx.WithOrphanRefetches(app.OrphanRefetches),
	)
	if err := tc.Refresh(ctx); err != nil {
		_ = closeFn()
		return nil, err
	}
	return &session{remote: remote, trips: tc, close: closeFn}, nil
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	if app.PrettyJSON {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}

// tripScoped is the output of every per-trip list: the trip the rows belong
// to (null when nothing is selected) and the rows.
func tripScoped[T any](tripID uuid.UUID, data []T) map[string]any {
	out := map[string]any{"trip_id": nil, "data": data}
	if data == nil {
		out["data"] = []T{}
	}
	if tripID != uuid.Nil {
		out["trip_id"] = tripID
	} else {
		out["message"] = "no trip selected; run `tripdash trips use <id>`"
	}
	return out
}

func parseID(kind, s string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s id %q is not a valid id", domain.ErrValidation, kind, s)
	}
	return id, nil
}

func parseDate(flag, s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: --%s must be YYYY-MM-DD", domain.ErrValidation, flag)
	}
	return t, nil
}

func parseOptionalDate(flag, s string) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	t, err := parseDate(flag, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func mapSlice[T, D any](in []T, f func(T) D) []D {
	out := make([]D, len(in))
	for i, v := range in {
		out[i] = f(v)
	}
	return out
}

func findByID[T any](items []T, match func(T) bool) (T, bool) {
	for _, it := range items {
		if match(it) {
			return it, true
		}
	}
	var zero T
	return zero, false
}
