package service_test

import (
	"context"

	"github.com/google/uuid"

	"github.com/familytrip/tripboard/internal/domain"
	"github.com/familytrip/tripboard/internal/repo"
)

// Hand-written test doubles. Each method is a function field; set only the
// ones a test needs.

type mockTripRepo struct {
	create  func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByID func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	list    func(ctx context.Context) ([]domain.Trip, error)
	update  func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	delete  func(ctx context.Context, id uuid.UUID) error
}

func (m *mockTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.create(ctx, trip)
}
func (m *mockTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripRepo) List(ctx context.Context) ([]domain.Trip, error) {
	return m.list(ctx)
}
func (m *mockTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.update(ctx, trip)
}
func (m *mockTripRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

var _ repo.TripRepo = (*mockTripRepo)(nil)

// existingTrips returns a trip repo whose GetByID always succeeds.
func existingTrips() *mockTripRepo {
	return &mockTripRepo{
		getByID: func(_ context.Context, id uuid.UUID) (domain.Trip, error) {
			return domain.Trip{ID: id, Title: "Sydney"}, nil
		},
	}
}

// missingTrips returns a trip repo whose GetByID always reports not found.
func missingTrips() *mockTripRepo {
	return &mockTripRepo{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.Trip, error) {
			return domain.Trip{}, domain.ErrNotFound
		},
	}
}

type mockScheduleRepo struct {
	create       func(ctx context.Context, s domain.Schedule) (domain.Schedule, error)
	getByID      func(ctx context.Context, tripID, id uuid.UUID) (domain.Schedule, error)
	listByTripID func(ctx context.Context, tripID uuid.UUID) ([]domain.Schedule, error)
	update       func(ctx context.Context, s domain.Schedule) (domain.Schedule, error)
	delete       func(ctx context.Context, tripID, id uuid.UUID) error
}

func (m *mockScheduleRepo) Create(ctx context.Context, s domain.Schedule) (domain.Schedule, error) {
	return m.create(ctx, s)
}
func (m *mockScheduleRepo) GetByID(ctx context.Context, tripID, id uuid.UUID) (domain.Schedule, error) {
	return m.getByID(ctx, tripID, id)
}
func (m *mockScheduleRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Schedule, error) {
	return m.listByTripID(ctx, tripID)
}
func (m *mockScheduleRepo) Update(ctx context.Context, s domain.Schedule) (domain.Schedule, error) {
	return m.update(ctx, s)
}
func (m *mockScheduleRepo) Delete(ctx context.Context, tripID, id uuid.UUID) error {
	return m.delete(ctx, tripID, id)
}

var _ repo.ScheduleRepo = (*mockScheduleRepo)(nil)

type mockPlaceRepo struct {
	create          func(ctx context.Context, p domain.Place) (domain.Place, error)
	getByID         func(ctx context.Context, tripID, id uuid.UUID) (domain.Place, error)
	listByTripID    func(ctx context.Context, tripID uuid.UUID, f domain.PlaceFilter) ([]domain.Place, error)
	update          func(ctx context.Context, p domain.Place) (domain.Place, error)
	delete          func(ctx context.Context, tripID, id uuid.UUID) error
	incrementVisits func(ctx context.Context, tripID, id uuid.UUID) (domain.Place, error)
}

func (m *mockPlaceRepo) Create(ctx context.Context, p domain.Place) (domain.Place, error) {
	return m.create(ctx, p)
}
func (m *mockPlaceRepo) GetByID(ctx context.Context, tripID, id uuid.UUID) (domain.Place, error) {
	return m.getByID(ctx, tripID, id)
}
func (m *mockPlaceRepo) ListByTripID(ctx context.Context, tripID uuid.UUID, f domain.PlaceFilter) ([]domain.Place, error) {
	return m.listByTripID(ctx, tripID, f)
}
func (m *mockPlaceRepo) Update(ctx context.Context, p domain.Place) (domain.Place, error) {
	return m.update(ctx, p)
}
func (m *mockPlaceRepo) Delete(ctx context.Context, tripID, id uuid.UUID) error {
	return m.delete(ctx, tripID, id)
}
func (m *mockPlaceRepo) IncrementVisits(ctx context.Context, tripID, id uuid.UUID) (domain.Place, error) {
	return m.incrementVisits(ctx, tripID, id)
}

var _ repo.PlaceRepo = (*mockPlaceRepo)(nil)

type mockChecklistRepo struct {
	create       func(ctx context.Context, item domain.ChecklistItem) (domain.ChecklistItem, error)
	listByTripID func(ctx context.Context, tripID uuid.UUID) ([]domain.ChecklistItem, error)
	update       func(ctx context.Context, item domain.ChecklistItem) (domain.ChecklistItem, error)
	delete       func(ctx context.Context, tripID, id uuid.UUID) error
	toggle       func(ctx context.Context, tripID, id uuid.UUID) (domain.ChecklistItem, error)
}

func (m *mockChecklistRepo) Create(ctx context.Context, item domain.ChecklistItem) (domain.ChecklistItem, error) {
	return m.create(ctx, item)
}
func (m *mockChecklistRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.ChecklistItem, error) {
	return m.listByTripID(ctx, tripID)
}
func (m *mockChecklistRepo) Update(ctx context.Context, item domain.ChecklistItem) (domain.ChecklistItem, error) {
	return m.update(ctx, item)
}
func (m *mockChecklistRepo) Delete(ctx context.Context, tripID, id uuid.UUID) error {
	return m.delete(ctx, tripID, id)
}
func (m *mockChecklistRepo) Toggle(ctx context.Context, tripID, id uuid.UUID) (domain.ChecklistItem, error) {
	return m.toggle(ctx, tripID, id)
}

var _ repo.ChecklistRepo = (*mockChecklistRepo)(nil)

type mockExpenseRepo struct {
	create       func(ctx context.Context, e domain.Expense) (domain.Expense, error)
	getByID      func(ctx context.Context, tripID, id uuid.UUID) (domain.Expense, error)
	listByTripID func(ctx context.Context, tripID uuid.UUID) ([]domain.Expense, error)
	update       func(ctx context.Context, e domain.Expense) (domain.Expense, error)
	delete       func(ctx context.Context, tripID, id uuid.UUID) error
}

func (m *mockExpenseRepo) Create(ctx context.Context, e domain.Expense) (domain.Expense, error) {
	return m.create(ctx, e)
}
func (m *mockExpenseRepo) GetByID(ctx context.Context, tripID, id uuid.UUID) (domain.Expense, error) {
	return m.getByID(ctx, tripID, id)
}
func (m *mockExpenseRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Expense, error) {
	return m.listByTripID(ctx, tripID)
}
func (m *mockExpenseRepo) Update(ctx context.Context, e domain.Expense) (domain.Expense, error) {
	return m.update(ctx, e)
}
func (m *mockExpenseRepo) Delete(ctx context.Context, tripID, id uuid.UUID) error {
	return m.delete(ctx, tripID, id)
}

var _ repo.ExpenseRepo = (*mockExpenseRepo)(nil)

type mockMemoRepo struct {
	create       func(ctx context.Context, m domain.Memo) (domain.Memo, error)
	getByID      func(ctx context.Context, tripID, id uuid.UUID) (domain.Memo, error)
	listByTripID func(ctx context.Context, tripID uuid.UUID) ([]domain.Memo, error)
	update       func(ctx context.Context, m domain.Memo) (domain.Memo, error)
	delete       func(ctx context.Context, tripID, id uuid.UUID) error
}

func (m *mockMemoRepo) Create(ctx context.Context, memo domain.Memo) (domain.Memo, error) {
	return m.create(ctx, memo)
}
func (m *mockMemoRepo) GetByID(ctx context.Context, tripID, id uuid.UUID) (domain.Memo, error) {
	return m.getByID(ctx, tripID, id)
}
func (m *mockMemoRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Memo, error) {
	return m.listByTripID(ctx, tripID)
}
func (m *mockMemoRepo) Update(ctx context.Context, memo domain.Memo) (domain.Memo, error) {
	return m.update(ctx, memo)
}
func (m *mockMemoRepo) Delete(ctx context.Context, tripID, id uuid.UUID) error {
	return m.delete(ctx, tripID, id)
}

var _ repo.MemoRepo = (*mockMemoRepo)(nil)

type stubRates struct {
	rate domain.ExchangeRate
	err  error
}

func (s stubRates) Rate(context.Context) (domain.ExchangeRate, error) {
	return s.rate, s.err
}
