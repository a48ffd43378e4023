package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/familytrip/tripboard/internal/api"
	"github.com/familytrip/tripboard/internal/domain"
	"github.com/familytrip/tripboard/internal/handler"
)

// Test doubles for the handler's service interfaces. Set only the function
// fields a test needs.

type mockTripServicer struct {
	create    func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByID   func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	list      func(ctx context.Context) ([]domain.Trip, error)
	update    func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	delete    func(ctx context.Context, id uuid.UUID) error
	countdown func(ctx context.Context, id uuid.UUID) (domain.Countdown, error)
}

func (m *mockTripServicer) Create(ctx context.Context, t domain.Trip) (domain.Trip, error) {
	return m.create(ctx, t)
}
func (m *mockTripServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripServicer) List(ctx context.Context) ([]domain.Trip, error) {
	return m.list(ctx)
}
func (m *mockTripServicer) Update(ctx context.Context, t domain.Trip) (domain.Trip, error) {
	return m.update(ctx, t)
}
func (m *mockTripServicer) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}
func (m *mockTripServicer) Countdown(ctx context.Context, id uuid.UUID) (domain.Countdown, error) {
	return m.countdown(ctx, id)
}

var _ handler.TripServicer = (*mockTripServicer)(nil)

type mockScheduleServicer struct {
	create       func(ctx context.Context, s domain.Schedule) (domain.Schedule, error)
	listByTripID func(ctx context.Context, tripID uuid.UUID) ([]domain.Schedule, error)
	update       func(ctx context.Context, s domain.Schedule) (domain.Schedule, error)
	delete       func(ctx context.Context, tripID, id uuid.UUID) error
}

func (m *mockScheduleServicer) Create(ctx context.Context, s domain.Schedule) (domain.Schedule, error) {
	return m.create(ctx, s)
}
func (m *mockScheduleServicer) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Schedule, error) {
	return m.listByTripID(ctx, tripID)
}
func (m *mockScheduleServicer) Update(ctx context.Context, s domain.Schedule) (domain.Schedule, error) {
	return m.update(ctx, s)
}
func (m *mockScheduleServicer) Delete(ctx context.Context, tripID, id uuid.UUID) error {
	return m.delete(ctx, tripID, id)
}

var _ handler.ScheduleServicer = (*mockScheduleServicer)(nil)

type mockPlaceServicer struct {
	create       func(ctx context.Context, p domain.Place) (domain.Place, error)
	listByTripID func(ctx context.Context, tripID uuid.UUID, f domain.PlaceFilter) ([]domain.Place, error)
	update       func(ctx context.Context, p domain.Place) (domain.Place, error)
	delete       func(ctx context.Context, tripID, id uuid.UUID) error
	recordVisit  func(ctx context.Context, tripID, id uuid.UUID) (domain.Place, error)
}

func (m *mockPlaceServicer) Create(ctx context.Context, p domain.Place) (domain.Place, error) {
	return m.create(ctx, p)
}
func (m *mockPlaceServicer) ListByTripID(ctx context.Context, tripID uuid.UUID, f domain.PlaceFilter) ([]domain.Place, error) {
	return m.listByTripID(ctx, tripID, f)
}
func (m *mockPlaceServicer) Update(ctx context.Context, p domain.Place) (domain.Place, error) {
	return m.update(ctx, p)
}
func (m *mockPlaceServicer) Delete(ctx context.Context, tripID, id uuid.UUID) error {
	return m.delete(ctx, tripID, id)
}
func (m *mockPlaceServicer) RecordVisit(ctx context.Context, tripID, id uuid.UUID) (domain.Place, error) {
	return m.recordVisit(ctx, tripID, id)
}

var _ handler.PlaceServicer = (*mockPlaceServicer)(nil)

type mockChecklistServicer struct {
	create       func(ctx context.Context, item domain.ChecklistItem) (domain.ChecklistItem, error)
	listByTripID func(ctx context.Context, tripID uuid.UUID) ([]domain.ChecklistItem, error)
	update       func(ctx context.Context, item domain.ChecklistItem) (domain.ChecklistItem, error)
	delete       func(ctx context.Context, tripID, id uuid.UUID) error
	toggle       func(ctx context.Context, tripID, id uuid.UUID) (domain.ChecklistItem, error)
}

func (m *mockChecklistServicer) Create(ctx context.Context, item domain.ChecklistItem) (domain.ChecklistItem, error) {
	return m.create(ctx, item)
}
func (m *mockChecklistServicer) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.ChecklistItem, error) {
	return m.listByTripID(ctx, tripID)
}
func (m *mockChecklistServicer) Update(ctx context.Context, item domain.ChecklistItem) (domain.ChecklistItem, error) {
	return m.update(ctx, item)
}
func (m *mockChecklistServicer) Delete(ctx context.Context, tripID, id uuid.UUID) error {
	return m.delete(ctx, tripID, id)
}
func (m *mockChecklistServicer) Toggle(ctx context.Context, tripID, id uuid.UUID) (domain.ChecklistItem, error) {
	return m.toggle(ctx, tripID, id)
}

var _ handler.ChecklistServicer = (*mockChecklistServicer)(nil)

type mockExpenseServicer struct {
	create  func(ctx context.Context, e domain.Expense) (domain.Expense, error)
	list    func(ctx context.Context, tripID uuid.UUID, f domain.ExpenseFilter, order domain.ExpenseSort) ([]domain.Expense, error)
	summary func(ctx context.Context, tripID uuid.UUID, f domain.ExpenseFilter) (domain.ExpenseSummary, error)
	update  func(ctx context.Context, e domain.Expense) (domain.Expense, error)
	delete  func(ctx context.Context, tripID, id uuid.UUID) error
}

func (m *mockExpenseServicer) Create(ctx context.Context, e domain.Expense) (domain.Expense, error) {
	return m.create(ctx, e)
}
func (m *mockExpenseServicer) List(ctx context.Context, tripID uuid.UUID, f domain.ExpenseFilter, order domain.ExpenseSort) ([]domain.Expense, error) {
	return m.list(ctx, tripID, f, order)
}
func (m *mockExpenseServicer) Summary(ctx context.Context, tripID uuid.UUID, f domain.ExpenseFilter) (domain.ExpenseSummary, error) {
	return m.summary(ctx, tripID, f)
}
func (m *mockExpenseServicer) Update(ctx context.Context, e domain.Expense) (domain.Expense, error) {
	return m.update(ctx, e)
}
func (m *mockExpenseServicer) Delete(ctx context.Context, tripID, id uuid.UUID) error {
	return m.delete(ctx, tripID, id)
}

var _ handler.ExpenseServicer = (*mockExpenseServicer)(nil)

type mockMemoServicer struct {
	create       func(ctx context.Context, m domain.Memo) (domain.Memo, error)
	listByTripID func(ctx context.Context, tripID uuid.UUID) ([]domain.Memo, error)
	update       func(ctx context.Context, m domain.Memo) (domain.Memo, error)
	delete       func(ctx context.Context, tripID, id uuid.UUID) error
}

func (m *mockMemoServicer) Create(ctx context.Context, memo domain.Memo) (domain.Memo, error) {
	return m.create(ctx, memo)
}
func (m *mockMemoServicer) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Memo, error) {
	return m.listByTripID(ctx, tripID)
}
func (m *mockMemoServicer) Update(ctx context.Context, memo domain.Memo) (domain.Memo, error) {
	return m.update(ctx, memo)
}
func (m *mockMemoServicer) Delete(ctx context.Context, tripID, id uuid.UUID) error {
	return m.delete(ctx, tripID, id)
}

var _ handler.MemoServicer = (*mockMemoServicer)(nil)

type rateFunc func(ctx context.Context) (domain.ExchangeRate, error)

func (f rateFunc) Rate(ctx context.Context) (domain.ExchangeRate, error) { return f(ctx) }

var _ handler.RateServicer = rateFunc(nil)

// ---- helpers ---------------------------------------------------------------

// allTrips satisfies every trip lookup; nested-resource tests use it so the
// trip routes are registered.
func allTrips() *mockTripServicer {
	return &mockTripServicer{}
}

func newHTTPHandler(svc handler.Services) http.Handler {
	if svc.Trips == nil {
		svc.Trips = allTrips()
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return handler.NewServer(svc, log).Handler()
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func do(t *testing.T, h http.Handler, method, path string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[api.ErrorResponse](t, rec).Error.Code
}
