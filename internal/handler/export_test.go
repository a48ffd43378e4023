package handler_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/familytrip/tripboard/internal/api"
	"github.com/familytrip/tripboard/internal/domain"
	"github.com/familytrip/tripboard/internal/handler"
)

// ---- mock ExportServicer ---------------------------------------------------

type mockExportServicer struct {
	export func(ctx context.Context, tripID uuid.UUID, f domain.ExpenseFilter, order domain.ExpenseSort) ([]domain.ExpenseExportRow, error)
}

func (m *mockExportServicer) Export(ctx context.Context, tripID uuid.UUID, f domain.ExpenseFilter, order domain.ExpenseSort) ([]domain.ExpenseExportRow, error) {
	return m.export(ctx, tripID, f, order)
}

// compile-time check: mockExportServicer must satisfy handler.ExportServicer.
var _ handler.ExportServicer = (*mockExportServicer)(nil)

// exportRowFixture returns a fully-populated domain.ExpenseExportRow.
func exportRowFixture(tripID uuid.UUID) domain.ExpenseExportRow {
	return domain.ExpenseExportRow{
		TripID:        tripID,
		TripTitle:     "Sydney, summer",
		Date:          time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC),
		Title:         "Ferry to Manly",
		Category:      domain.ExpenseTransport,
		City:          "Sydney",
		Amount:        decimal.RequireFromString("18.4"),
		Currency:      domain.CurrencyAUD,
		ScheduleTitle: "Beach day",
	}
}

func exportReturning(rows []domain.ExpenseExportRow, err error) *mockExportServicer {
	return &mockExportServicer{
		export: func(context.Context, uuid.UUID, domain.ExpenseFilter, domain.ExpenseSort) ([]domain.ExpenseExportRow, error) {
			return rows, err
		},
	}
}

// ---- GET /trips/{tripID}/expenses/export -----------------------------------

func TestExportExpenses_DefaultJSON(t *testing.T) {
	tripID := uuid.New()
	h := newHTTPHandler(handler.Services{Exports: exportReturning([]domain.ExpenseExportRow{exportRowFixture(tripID)}, nil)})

	rec := do(t, h, http.MethodGet, "/trips/"+tripID.String()+"/expenses/export", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
	body := decode[api.List[api.ExpenseExportRow]](t, rec)
	require.Len(t, body.Data, 1)
	assert.Equal(t, "Ferry to Manly", body.Data[0].Title)
	assert.Equal(t, "Beach day", body.Data[0].ScheduleTitle)
	assert.True(t, decimal.RequireFromString("18.4").Equal(body.Data[0].Amount))
}

func TestExportExpenses_EmptyJSON(t *testing.T) {
	h := newHTTPHandler(handler.Services{Exports: exportReturning(nil, nil)})

	rec := do(t, h, http.MethodGet, "/trips/"+uuid.NewString()+"/expenses/export", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":[]}`, rec.Body.String())
}

func TestExportExpenses_CSV(t *testing.T) {
	tripID := uuid.New()
	h := newHTTPHandler(handler.Services{Exports: exportReturning([]domain.ExpenseExportRow{exportRowFixture(tripID)}, nil)})

	rec := do(t, h, http.MethodGet, "/trips/"+tripID.String()+"/expenses/export?format=csv", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "expenses-"+tripID.String()+".csv")

	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "trip_id,trip_title,date,title,category,city,amount,currency,schedule_title", lines[0])
	assert.Equal(t, tripID.String()+`,"Sydney, summer",2026-01-12,Ferry to Manly,transport,Sydney,18.4,AUD,Beach day`, lines[1])
}

func TestExportExpenses_PassesQuery(t *testing.T) {
	var (
		gotF domain.ExpenseFilter
		gotS domain.ExpenseSort
	)
	svc := &mockExportServicer{
		export: func(_ context.Context, _ uuid.UUID, f domain.ExpenseFilter, s domain.ExpenseSort) ([]domain.ExpenseExportRow, error) {
			gotF, gotS = f, s
			return nil, nil
		},
	}

	rec := do(t, newHTTPHandler(handler.Services{Exports: svc}), http.MethodGet,
		"/trips/"+uuid.NewString()+"/expenses/export?format=csv&category=food&sort=amount", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.ExpenseFood, gotF.Category)
	assert.Equal(t, domain.SortByAmount, gotS.Field)
}

func TestExportExpenses_422_UnknownFormat(t *testing.T) {
	h := newHTTPHandler(handler.Services{Exports: exportReturning(nil, nil)})

	rec := do(t, h, http.MethodGet, "/trips/"+uuid.NewString()+"/expenses/export?format=xlsx", nil)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, api.CodeValidation, errorCode(t, rec))
}

func TestExportExpenses_404_TripMissing(t *testing.T) {
	h := newHTTPHandler(handler.Services{Exports: exportReturning(nil, domain.ErrNotFound)})

	rec := do(t, h, http.MethodGet, "/trips/"+uuid.NewString()+"/expenses/export", nil)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, api.CodeNotFound, errorCode(t, rec))
}

func TestExportExpenses_500_ServiceError(t *testing.T) {
	h := newHTTPHandler(handler.Services{Exports: exportReturning(nil, errors.New("db down"))})

	rec := do(t, h, http.MethodGet, "/trips/"+uuid.NewString()+"/expenses/export?format=csv", nil)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, api.CodeInternal, errorCode(t, rec))
}
