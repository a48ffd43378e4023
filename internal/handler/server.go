// Package handler implements the HTTP handlers for the tripboard API.
// All handlers are methods on Server. Methods are split into resource-specific
// files (trip.go, expense.go, etc.) but share the same Server struct so they
// can access its dependencies. Routes wires them onto a chi router.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/familytrip/tripboard/internal/domain"
)

// TripServicer defines the business operations the trip handlers depend on.
// Interfaces live here, in the consumer package, so handler tests can inject
// mocks without touching the service layer.
type TripServicer interface {
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	List(ctx context.Context) ([]domain.Trip, error)
	Update(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Countdown(ctx context.Context, id uuid.UUID) (domain.Countdown, error)
}

type ScheduleServicer interface {
	Create(ctx context.Context, s domain.Schedule) (domain.Schedule, error)
	ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Schedule, error)
	Update(ctx context.Context, s domain.Schedule) (domain.Schedule, error)
	Delete(ctx context.Context, tripID, id uuid.UUID) error
}

type PlaceServicer interface {
	Create(ctx context.Context, p domain.Place) (domain.Place, error)
	ListByTripID(ctx context.Context, tripID uuid.UUID, f domain.PlaceFilter) ([]domain.Place, error)
	Update(ctx context.Context, p domain.Place) (domain.Place, error)
	Delete(ctx context.Context, tripID, id uuid.UUID) error
	RecordVisit(ctx context.Context, tripID, id uuid.UUID) (domain.Place, error)
}

type ChecklistServicer interface {
	Create(ctx context.Context, item domain.ChecklistItem) (domain.ChecklistItem, error)
	ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.ChecklistItem, error)
	Update(ctx context.Context, item domain.ChecklistItem) (domain.ChecklistItem, error)
	Delete(ctx context.Context, tripID, id uuid.UUID) error
	Toggle(ctx context.Context, tripID, id uuid.UUID) (domain.ChecklistItem, error)
}

type ExpenseServicer interface {
	Create(ctx context.Context, e domain.Expense) (domain.Expense, error)
	List(ctx context.Context, tripID uuid.UUID, f domain.ExpenseFilter, order domain.ExpenseSort) ([]domain.Expense, error)
	Summary(ctx context.Context, tripID uuid.UUID, f domain.ExpenseFilter) (domain.ExpenseSummary, error)
	Update(ctx context.Context, e domain.Expense) (domain.Expense, error)
	Delete(ctx context.Context, tripID, id uuid.UUID) error
}

type MemoServicer interface {
	Create(ctx context.Context, m domain.Memo) (domain.Memo, error)
	ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Memo, error)
	Update(ctx context.Context, m domain.Memo) (domain.Memo, error)
	Delete(ctx context.Context, tripID, id uuid.UUID) error
}

// ExportServicer builds the flat expense export.
type ExportServicer interface {
	Export(ctx context.Context, tripID uuid.UUID, f domain.ExpenseFilter, order domain.ExpenseSort) ([]domain.ExpenseExportRow, error)
}

// RateServicer returns the current AUD to KRW exchange rate.
type RateServicer interface {
	Rate(ctx context.Context) (domain.ExchangeRate, error)
}

// Services bundles the dependencies of Server. Nil entries leave their
// routes unregistered, which keeps focused handler tests small.
type Services struct {
	Trips      TripServicer
	Schedules  ScheduleServicer
	Places     PlaceServicer
	Checklists ChecklistServicer
	Expenses   ExpenseServicer
	Memos      MemoServicer
	Exports    ExportServicer
	Rates      RateServicer
}

// Server holds the services every handler needs.
type Server struct {
	trips      TripServicer
	schedules  ScheduleServicer
	places     PlaceServicer
	checklists ChecklistServicer
	expenses   ExpenseServicer
	memos      MemoServicer
	exports    ExportServicer
	rates      RateServicer
	log        *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
func NewServer(svc Services, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		trips:      svc.Trips,
		schedules:  svc.Schedules,
		places:     svc.Places,
		checklists: svc.Checklists,
		expenses:   svc.Expenses,
		memos:      svc.Memos,
		exports:    svc.Exports,
		rates:      svc.Rates,
		log:        log,
	}
}

// Routes registers every endpoint on r. Middleware is the caller's concern.
func (s *Server) Routes(r chi.Router) {
	r.Get("/healthz", s.GetHealth)
	if s.rates != nil {
		r.Get("/exchange-rate", s.GetExchangeRate)
	}
	if s.trips == nil {
		return
	}

	r.Route("/trips", func(r chi.Router) {
		r.Get("/", s.ListTrips)
		r.Post("/", s.CreateTrip)

		r.Route("/{tripID}", func(r chi.Router) {
			r.Get("/", s.GetTrip)
			r.Put("/", s.UpdateTrip)
			r.Delete("/", s.DeleteTrip)
			r.Get("/countdown", s.GetCountdown)

			if s.schedules != nil {
				r.Get("/schedules", s.ListSchedules)
				r.Post("/schedules", s.CreateSchedule)
				r.Put("/schedules/{id}", s.UpdateSchedule)
				r.Delete("/schedules/{id}", s.DeleteSchedule)
			}
			if s.places != nil {
				r.Get("/places", s.ListPlaces)
				r.Post("/places", s.CreatePlace)
				r.Put("/places/{id}", s.UpdatePlace)
				r.Delete("/places/{id}", s.DeletePlace)
				r.Post("/places/{id}/visits", s.RecordPlaceVisit)
			}
			if s.checklists != nil {
				r.Get("/checklists", s.ListChecklist)
				r.Post("/checklists", s.CreateChecklistItem)
				r.Put("/checklists/{id}", s.UpdateChecklistItem)
				r.Delete("/checklists/{id}", s.DeleteChecklistItem)
				r.Post("/checklists/{id}/toggle", s.ToggleChecklistItem)
			}
			if s.expenses != nil {
				r.Get("/expenses", s.ListExpenses)
				r.Post("/expenses", s.CreateExpense)
				r.Get("/expenses/summary", s.GetExpenseSummary)
				r.Put("/expenses/{id}", s.UpdateExpense)
				r.Delete("/expenses/{id}", s.DeleteExpense)
			}
			if s.exports != nil {
				r.Get("/expenses/export", s.ExportExpenses)
			}
			if s.memos != nil {
				r.Get("/memos", s.ListMemos)
				r.Post("/memos", s.CreateMemo)
				r.Put("/memos/{id}", s.UpdateMemo)
				r.Delete("/memos/{id}", s.DeleteMemo)
			}
		})
	})
}

// Handler returns a bare router carrying only the API routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	s.Routes(r)
	return r
}
