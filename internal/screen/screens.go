package screen

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/familytrip/tripboard/internal/domain"
)

// ScheduleBackend is the schedule API used by Schedules. *client.Client
// implements it, as it does every backend in this package.
type ScheduleBackend interface {
	ListSchedules(ctx context.Context, tripID uuid.UUID) ([]domain.Schedule, error)
	CreateSchedule(ctx context.Context, s domain.Schedule) (domain.Schedule, error)
	UpdateSchedule(ctx context.Context, s domain.Schedule) (domain.Schedule, error)
	DeleteSchedule(ctx context.Context, tripID, id uuid.UUID) error
}

// PlaceBackend is the place API used by Places.
type PlaceBackend interface {
	ListPlaces(ctx context.Context, tripID uuid.UUID, f domain.PlaceFilter) ([]domain.Place, error)
	CreatePlace(ctx context.Context, p domain.Place) (domain.Place, error)
	UpdatePlace(ctx context.Context, p domain.Place) (domain.Place, error)
	DeletePlace(ctx context.Context, tripID, id uuid.UUID) error
	RecordPlaceVisit(ctx context.Context, tripID, id uuid.UUID) (domain.Place, error)
}

// ChecklistBackend is the checklist API used by Checklist.
type ChecklistBackend interface {
	ListChecklist(ctx context.Context, tripID uuid.UUID) ([]domain.ChecklistItem, error)
	CreateChecklistItem(ctx context.Context, it domain.ChecklistItem) (domain.ChecklistItem, error)
	UpdateChecklistItem(ctx context.Context, it domain.ChecklistItem) (domain.ChecklistItem, error)
	DeleteChecklistItem(ctx context.Context, tripID, id uuid.UUID) error
	ToggleChecklistItem(ctx context.Context, tripID, id uuid.UUID) (domain.ChecklistItem, error)
}

// ExpenseBackend is the expense API used by Expenses.
type ExpenseBackend interface {
	ListExpenses(ctx context.Context, tripID uuid.UUID, f domain.ExpenseFilter, s domain.ExpenseSort) ([]domain.Expense, error)
	ExpenseSummary(ctx context.Context, tripID uuid.UUID, f domain.ExpenseFilter) (domain.ExpenseSummary, error)
	CreateExpense(ctx context.Context, e domain.Expense) (domain.Expense, error)
	UpdateExpense(ctx context.Context, e domain.Expense) (domain.Expense, error)
	DeleteExpense(ctx context.Context, tripID, id uuid.UUID) error
}

// MemoBackend is the memo API used by Memos.
type MemoBackend interface {
	ListMemos(ctx context.Context, tripID uuid.UUID) ([]domain.Memo, error)
	CreateMemo(ctx context.Context, m domain.Memo) (domain.Memo, error)
	UpdateMemo(ctx context.Context, m domain.Memo) (domain.Memo, error)
	DeleteMemo(ctx context.Context, tripID, id uuid.UUID) error
}

// Schedules lists the day-by-day plan of the selected trip.
type Schedules struct {
	*Screen[domain.Schedule]
	b ScheduleBackend
}

// NewSchedules returns a schedule screen following sel.
func NewSchedules(sel Selection, b ScheduleBackend, log *slog.Logger) *Schedules {
	return &Schedules{Screen: New[domain.Schedule]("schedules", sel, b.ListSchedules, log), b: b}
}

// Add creates s in the selected trip. The draft is shown until the server
// answers.
func (v *Schedules) Add(ctx context.Context, s domain.Schedule) (domain.Schedule, error) {
	s.ID = uuid.Nil
	isDraft := func(x domain.Schedule) bool { return x.ID == uuid.Nil }
	return Mutate(ctx, v.Screen, Mutation[domain.Schedule, domain.Schedule]{
		Apply: func(items []domain.Schedule) []domain.Schedule { return append(items, s) },
		Write: func(ctx context.Context, tripID uuid.UUID) (domain.Schedule, error) {
			s.TripID = tripID
			return v.b.CreateSchedule(ctx, s)
		},
		Commit: func(items []domain.Schedule, created domain.Schedule) []domain.Schedule {
			return replaceWhere(items, created, isDraft)
		},
	})
}

// Update replaces schedule s.ID.
func (v *Schedules) Update(ctx context.Context, s domain.Schedule) (domain.Schedule, error) {
	same := func(x domain.Schedule) bool { return x.ID == s.ID }
	return Mutate(ctx, v.Screen, Mutation[domain.Schedule, domain.Schedule]{
		Apply: func(items []domain.Schedule) []domain.Schedule { return replaceWhere(items, s, same) },
		Write: func(ctx context.Context, tripID uuid.UUID) (domain.Schedule, error) {
			s.TripID = tripID
			return v.b.UpdateSchedule(ctx, s)
		},
		Commit: func(items []domain.Schedule, got domain.Schedule) []domain.Schedule {
			return replaceWhere(items, got, same)
		},
	})
}

// Remove deletes schedule id.
func (v *Schedules) Remove(ctx context.Context, id uuid.UUID) error {
	_, err := Mutate(ctx, v.Screen, Mutation[domain.Schedule, struct{}]{
		Apply: func(items []domain.Schedule) []domain.Schedule {
			return removeWhere(items, func(x domain.Schedule) bool { return x.ID == id })
		},
		Write: func(ctx context.Context, tripID uuid.UUID) (struct{}, error) {
			return struct{}{}, v.b.DeleteSchedule(ctx, tripID, id)
		},
	})
	return err
}

// Places lists the saved places of the selected trip, narrowed by a filter.
type Places struct {
	*Screen[domain.Place]
	b PlaceBackend

	mu     sync.Mutex
	filter domain.PlaceFilter
}

// NewPlaces returns a place screen following sel with an empty filter.
func NewPlaces(sel Selection, b PlaceBackend, log *slog.Logger) *Places {
	v := &Places{b: b}
	v.Screen = New[domain.Place]("places", sel, func(ctx context.Context, tripID uuid.UUID) ([]domain.Place, error) {
		return b.ListPlaces(ctx, tripID, v.Filter())
	}, log)
	return v
}

// SetFilter narrows the next Load.
func (v *Places) SetFilter(f domain.PlaceFilter) {
	v.mu.Lock()
	v.filter = f
	v.mu.Unlock()
}

// Filter returns the filter used by Load.
func (v *Places) Filter() domain.PlaceFilter {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.filter
}

// Add saves p in the selected trip.
func (v *Places) Add(ctx context.Context, p domain.Place) (domain.Place, error) {
	p.ID = uuid.Nil
	isDraft := func(x domain.Place) bool { return x.ID == uuid.Nil }
	return Mutate(ctx, v.Screen, Mutation[domain.Place, domain.Place]{
		Apply: func(items []domain.Place) []domain.Place { return append(items, p) },
		Write: func(ctx context.Context, tripID uuid.UUID) (domain.Place, error) {
			p.TripID = tripID
			return v.b.CreatePlace(ctx, p)
		},
		Commit: func(items []domain.Place, created domain.Place) []domain.Place {
			return replaceWhere(items, created, isDraft)
		},
	})
}

// Update replaces place p.ID.
func (v *Places) Update(ctx context.Context, p domain.Place) (domain.Place, error) {
	same := func(x domain.Place) bool { return x.ID == p.ID }
	return Mutate(ctx, v.Screen, Mutation[domain.Place, domain.Place]{
		Apply: func(items []domain.Place) []domain.Place { return replaceWhere(items, p, same) },
		Write: func(ctx context.Context, tripID uuid.UUID) (domain.Place, error) {
			p.TripID = tripID
			return v.b.UpdatePlace(ctx, p)
		},
		Commit: func(items []domain.Place, got domain.Place) []domain.Place {
			return replaceWhere(items, got, same)
		},
	})
}

// Visit bumps the visit counter of place id.
func (v *Places) Visit(ctx context.Context, id uuid.UUID) (domain.Place, error) {
	same := func(x domain.Place) bool { return x.ID == id }
	return Mutate(ctx, v.Screen, Mutation[domain.Place, domain.Place]{
		Apply: func(items []domain.Place) []domain.Place {
			for i := range items {
				if same(items[i]) {
					items[i].VisitCount++
				}
			}
			return items
		},
		Write: func(ctx context.Context, tripID uuid.UUID) (domain.Place, error) {
			return v.b.RecordPlaceVisit(ctx, tripID, id)
		},
		Commit: func(items []domain.Place, got domain.Place) []domain.Place {
			return replaceWhere(items, got, same)
		},
	})
}

// Remove deletes place id.
func (v *Places) Remove(ctx context.Context, id uuid.UUID) error {
	_, err := Mutate(ctx, v.Screen, Mutation[domain.Place, struct{}]{
		Apply: func(items []domain.Place) []domain.Place {
			return removeWhere(items, func(x domain.Place) bool { return x.ID == id })
		},
		Write: func(ctx context.Context, tripID uuid.UUID) (struct{}, error) {
			return struct{}{}, v.b.DeletePlace(ctx, tripID, id)
		},
	})
	return err
}

// Checklist lists the packing and preparation items of the selected trip.
type Checklist struct {
	*Screen[domain.ChecklistItem]
	b ChecklistBackend
}

// NewChecklist returns a checklist screen following sel.
func NewChecklist(sel Selection, b ChecklistBackend, log *slog.Logger) *Checklist {
	return &Checklist{Screen: New[domain.ChecklistItem]("checklist", sel, b.ListChecklist, log), b: b}
}

// Add creates item it in the selected trip.
func (v *Checklist) Add(ctx context.Context, it domain.ChecklistItem) (domain.ChecklistItem, error) {
	it.ID = uuid.Nil
	isDraft := func(x domain.ChecklistItem) bool { return x.ID == uuid.Nil }
	return Mutate(ctx, v.Screen, Mutation[domain.ChecklistItem, domain.ChecklistItem]{
		Apply: func(items []domain.ChecklistItem) []domain.ChecklistItem { return append(items, it) },
		Write: func(ctx context.Context, tripID uuid.UUID) (domain.ChecklistItem, error) {
			it.TripID = tripID
			return v.b.CreateChecklistItem(ctx, it)
		},
		Commit: func(items []domain.ChecklistItem, created domain.ChecklistItem) []domain.ChecklistItem {
			return replaceWhere(items, created, isDraft)
		},
	})
}

// Toggle flips the checked state of item id.
func (v *Checklist) Toggle(ctx context.Context, id uuid.UUID) (domain.ChecklistItem, error) {
	same := func(x domain.ChecklistItem) bool { return x.ID == id }
	return Mutate(ctx, v.Screen, Mutation[domain.ChecklistItem, domain.ChecklistItem]{
		Apply: func(items []domain.ChecklistItem) []domain.ChecklistItem {
			for i := range items {
				if same(items[i]) {
					items[i].IsChecked = !items[i].IsChecked
				}
			}
			return items
		},
		Write: func(ctx context.Context, tripID uuid.UUID) (domain.ChecklistItem, error) {
			return v.b.ToggleChecklistItem(ctx, tripID, id)
		},
		Commit: func(items []domain.ChecklistItem, got domain.ChecklistItem) []domain.ChecklistItem {
			return replaceWhere(items, got, same)
		},
	})
}

// Remove deletes item id.
func (v *Checklist) Remove(ctx context.Context, id uuid.UUID) error {
	_, err := Mutate(ctx, v.Screen, Mutation[domain.ChecklistItem, struct{}]{
		Apply: func(items []domain.ChecklistItem) []domain.ChecklistItem {
			return removeWhere(items, func(x domain.ChecklistItem) bool { return x.ID == id })
		},
		Write: func(ctx context.Context, tripID uuid.UUID) (struct{}, error) {
			return struct{}{}, v.b.DeleteChecklistItem(ctx, tripID, id)
		},
	})
	return err
}

// Expenses lists the expenses of the selected trip under a filter and order.
type Expenses struct {
	*Screen[domain.Expense]
	b ExpenseBackend

	mu     sync.Mutex
	filter domain.ExpenseFilter
	sort   domain.ExpenseSort
}

// NewExpenses returns an expense screen following sel.
func NewExpenses(sel Selection, b ExpenseBackend, log *slog.Logger) *Expenses {
	v := &Expenses{b: b}
	v.Screen = New[domain.Expense]("expenses", sel, func(ctx context.Context, tripID uuid.UUID) ([]domain.Expense, error) {
		f, s := v.Query()
		return b.ListExpenses(ctx, tripID, f, s)
	}, log)
	return v
}

// SetQuery sets the filter and order used by the next Load and Summary.
func (v *Expenses) SetQuery(f domain.ExpenseFilter, s domain.ExpenseSort) {
	v.mu.Lock()
	v.filter, v.sort = f, s
	v.mu.Unlock()
}

// Query returns the filter and order set by SetQuery.
func (v *Expenses) Query() (domain.ExpenseFilter, domain.ExpenseSort) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.filter, v.sort
}

// Summary totals the filtered expenses of the selected trip.
func (v *Expenses) Summary(ctx context.Context) (domain.ExpenseSummary, error) {
	tripID := v.sel.SelectedID()
	if tripID == uuid.Nil {
		return domain.ExpenseSummary{}, ErrNoTrip
	}
	f, _ := v.Query()
	return v.b.ExpenseSummary(ctx, tripID, f)
}

// Add records e in the selected trip.
func (v *Expenses) Add(ctx context.Context, e domain.Expense) (domain.Expense, error) {
	e.ID = uuid.Nil
	isDraft := func(x domain.Expense) bool { return x.ID == uuid.Nil }
	return Mutate(ctx, v.Screen, Mutation[domain.Expense, domain.Expense]{
		Apply: func(items []domain.Expense) []domain.Expense { return append(items, e) },
		Write: func(ctx context.Context, tripID uuid.UUID) (domain.Expense, error) {
			e.TripID = tripID
			return v.b.CreateExpense(ctx, e)
		},
		Commit: func(items []domain.Expense, created domain.Expense) []domain.Expense {
			items = replaceWhere(items, created, isDraft)
			_, s := v.Query()
			domain.SortExpenses(items, s)
			return items
		},
	})
}

// Remove deletes expense id.
func (v *Expenses) Remove(ctx context.Context, id uuid.UUID) error {
	_, err := Mutate(ctx, v.Screen, Mutation[domain.Expense, struct{}]{
		Apply: func(items []domain.Expense) []domain.Expense {
			return removeWhere(items, func(x domain.Expense) bool { return x.ID == id })
		},
		Write: func(ctx context.Context, tripID uuid.UUID) (struct{}, error) {
			return struct{}{}, v.b.DeleteExpense(ctx, tripID, id)
		},
	})
	return err
}

// Memos lists the notes of the selected trip.
type Memos struct {
	*Screen[domain.Memo]
	b MemoBackend
}

// NewMemos returns a memo screen following sel.
func NewMemos(sel Selection, b MemoBackend, log *slog.Logger) *Memos {
	return &Memos{Screen: New[domain.Memo]("memos", sel, b.ListMemos, log), b: b}
}

// Add creates memo m in the selected trip.
func (v *Memos) Add(ctx context.Context, m domain.Memo) (domain.Memo, error) {
	m.ID = uuid.Nil
	isDraft := func(x domain.Memo) bool { return x.ID == uuid.Nil }
	return Mutate(ctx, v.Screen, Mutation[domain.Memo, domain.Memo]{
		Apply: func(items []domain.Memo) []domain.Memo { return append(items, m) },
		Write: func(ctx context.Context, tripID uuid.UUID) (domain.Memo, error) {
			m.TripID = tripID
			return v.b.CreateMemo(ctx, m)
		},
		Commit: func(items []domain.Memo, created domain.Memo) []domain.Memo {
			return replaceWhere(items, created, isDraft)
		},
	})
}

// Edit replaces the title and content of memo m.ID.
func (v *Memos) Edit(ctx context.Context, m domain.Memo) (domain.Memo, error) {
	same := func(x domain.Memo) bool { return x.ID == m.ID }
	return Mutate(ctx, v.Screen, Mutation[domain.Memo, domain.Memo]{
		Apply: func(items []domain.Memo) []domain.Memo { return replaceWhere(items, m, same) },
		Write: func(ctx context.Context, tripID uuid.UUID) (domain.Memo, error) {
			m.TripID = tripID
			return v.b.UpdateMemo(ctx, m)
		},
		Commit: func(items []domain.Memo, got domain.Memo) []domain.Memo {
			return replaceWhere(items, got, same)
		},
	})
}

// Remove deletes memo id.
func (v *Memos) Remove(ctx context.Context, id uuid.UUID) error {
	_, err := Mutate(ctx, v.Screen, Mutation[domain.Memo, struct{}]{
		Apply: func(items []domain.Memo) []domain.Memo {
			return removeWhere(items, func(x domain.Memo) bool { return x.ID == id })
		},
		Write: func(ctx context.Context, tripID uuid.UUID) (struct{}, error) {
			return struct{}{}, v.b.DeleteMemo(ctx, tripID, id)
		},
	})
	return err
}
