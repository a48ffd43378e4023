package cli

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/familytrip/tripboard/internal/api"
	"github.com/familytrip/tripboard/internal/domain"
	"github.com/familytrip/tripboard/internal/screen"
)

func newExpensesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "expenses",
		Aliases: []string{"expense"},
		Short:   "Spending on the selected trip",
	}
	cmd.AddCommand(newExpensesListCmd(app))
	cmd.AddCommand(newExpensesSummaryCmd(app))
	cmd.AddCommand(newExpensesAddCmd(app))
	cmd.AddCommand(newExpensesRmCmd(app))
	cmd.AddCommand(newExpensesExportCmd(app))
	return cmd
}

// expenseQueryFlags are the filter and order flags shared by list and summary.
type expenseQueryFlags struct {
	city, category, currency string
	from, to                 string
	sort                     string
	desc                     bool
}

func (q *expenseQueryFlags) register(cmd *cobra.Command, withSort bool) {
	f := cmd.Flags()
	f.StringVar(&q.city, "city", "", "Only expenses in this city")
	f.StringVar(&q.category, "category", "", "Only this category (food, transport, lodging, activity, shopping, etc)")
	f.StringVar(&q.currency, "currency", "", "Only this currency (AUD or KRW)")
	f.StringVar(&q.from, "from", "", "Earliest date, inclusive (YYYY-MM-DD)")
	f.StringVar(&q.to, "to", "", "Latest date, inclusive (YYYY-MM-DD)")
	if withSort {
		f.StringVar(&q.sort, "sort", string(domain.SortByDate), "Order by date or amount")
		f.BoolVar(&q.desc, "desc", false, "Largest or latest first")
	}
}

// parse reuses the server's query decoding so both sides agree on the
// meaning of every flag.
func (q *expenseQueryFlags) parse() (domain.ExpenseFilter, domain.ExpenseSort, error) {
	v := url.Values{}
	for k, s := range map[string]string{
		"city": q.city, "category": strings.ToLower(q.category), "currency": q.currency,
		"from": q.from, "to": q.to, "sort": q.sort,
	} {
		if s = strings.TrimSpace(s); s != "" {
			v.Set(k, s)
		}
	}
	if q.desc {
		v.Set("order", "desc")
	}
	return api.ParseExpenseQuery(v)
}

func newExpensesListCmd(app *App) *cobra.Command {
	var q expenseQueryFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List expenses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, srt, err := q.parse()
			if err != nil {
				return writeErr(cmd, err)
			}
			s, err := app.open(cmd)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()

			v := screen.NewExpenses(s.trips, s.remote, app.Log)
			defer v.Close()
			v.SetQuery(f, srt)
			if err := v.Load(cmd.Context()); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, tripScoped(v.TripID(), mapSlice(v.Items(), api.FromExpense)))
		},
	}

	q.register(cmd, true)
	return cmd
}

func newExpensesSummaryCmd(app *App) *cobra.Command {
	var q expenseQueryFlags

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Totals per currency and per category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, srt, err := q.parse()
			if err != nil {
				return writeErr(cmd, err)
			}
			s, err := app.open(cmd)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()

			v := screen.NewExpenses(s.trips, s.remote, app.Log)
			defer v.Close()
			v.SetQuery(f, srt)
			sum, err := v.Summary(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"trip_id": s.trips.SelectedID(), "data": api.FromExpenseSummary(sum)})
		},
	}

	q.register(cmd, false)
	return cmd
}

func newExpensesAddCmd(app *App) *cobra.Command {
	var (
		date, amount       string
		currency, category string
		title, city        string
		scheduleID         string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record an expense on the selected trip",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := parseDate("date", date)
			if err != nil {
				return writeErr(cmd, err)
			}
			amt, err := decimal.NewFromString(strings.TrimSpace(amount))
			if err != nil {
				return writeErr(cmd, fmt.Errorf("%w: --amount %q is not a number", domain.ErrValidation, amount))
			}
			e := domain.Expense{
				Date:     d,
				Amount:   amt,
				Currency: domain.Currency(strings.ToUpper(strings.TrimSpace(currency))),
				Category: domain.ExpenseCategory(strings.ToLower(strings.TrimSpace(category))),
				Title:    strings.TrimSpace(title),
				City:     strings.TrimSpace(city),
			}
			if scheduleID != "" {
				var id uuid.UUID
				if id, err = parseID("schedule", scheduleID); err != nil {
					return writeErr(cmd, err)
				}
				e.ScheduleID = &id
			}

			s, err := app.open(cmd)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()

			created, err := screen.NewExpenses(s.trips, s.remote, app.Log).Add(cmd.Context(), e)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": api.FromExpense(created)})
		},
	}

	f := cmd.Flags()
	f.StringVar(&date, "date", "", "Day of the expense (YYYY-MM-DD)")
	f.StringVar(&amount, "amount", "", "Amount, e.g. 12.50")
	f.StringVar(&currency, "currency", string(domain.CurrencyAUD), "AUD or KRW")
	f.StringVar(&category, "category", string(domain.ExpenseEtc), "food, transport, lodging, activity, shopping or etc")
	f.StringVar(&title, "title", "", "What it was for")
	f.StringVar(&city, "city", "", "Where it was spent")
	f.StringVar(&scheduleID, "schedule", "", "Schedule entry the expense belongs to")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newExpensesRmCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <expense-id>",
		Short: "Delete an expense",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("expense", args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			s, err := app.open(cmd)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()

			if err := screen.NewExpenses(s.trips, s.remote, app.Log).Remove(cmd.Context(), id); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"deleted": id})
		},
	}
}

func newExpensesExportCmd(app *App) *cobra.Command {
	var (
		q     expenseQueryFlags
		asCSV bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export expenses as a flat table, JSON or CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, srt, err := q.parse()
			if err != nil {
				return writeErr(cmd, err)
			}
			s, err := app.open(cmd)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()

			tripID := s.trips.SelectedID()
			if tripID == uuid.Nil {
				return writeErr(cmd, screen.ErrNoTrip)
			}
			list, err := s.remote.ExportExpenses(cmd.Context(), tripID, f, srt)
			if err != nil {
				return writeErr(cmd, err)
			}
			rows := mapSlice(list, api.FromExpenseExportRow)
			if asCSV {
				return api.WriteExpenseCSV(cmd.OutOrStdout(), rows)
			}
			return writeOut(cmd, app, tripScoped(tripID, rows))
		},
	}

	q.register(cmd, true)
	cmd.Flags().BoolVar(&asCSV, "csv", false, "Write CSV instead of JSON")
	return cmd
}
