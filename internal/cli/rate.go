package cli

import (
	"github.com/spf13/cobra"

	"github.com/familytrip/tripboard/internal/api"
)

func newRateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rate",
		Short: "Show the current AUD to KRW exchange rate",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := app.client().ExchangeRate(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": api.FromExchangeRate(r)})
		},
	}
}
