package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/google/uuid"

	"github.com/familytrip/tripboard/internal/api"
	"github.com/familytrip/tripboard/internal/domain"
)

func tripPath(tripID uuid.UUID, rest string) string {
	return "/trips/" + tripID.String() + rest
}

func itemPath(tripID uuid.UUID, relation string, id uuid.UUID) string {
	return tripPath(tripID, "/"+relation+"/"+id.String())
}

// FetchAll returns every trip, newest first. It satisfies tripctx.Fetcher.
func (c *Client) FetchAll(ctx context.Context) ([]domain.Trip, error) {
	trips, err := c.ListTrips(ctx)
	if err != nil {
		return nil, fmt.Errorf("client.Client.FetchAll: %w", err)
	}
	return trips, nil
}

// ListTrips calls GET /trips.
func (c *Client) ListTrips(ctx context.Context) ([]domain.Trip, error) {
	var out api.List[api.Trip]
	if err := c.do(ctx, http.MethodGet, "/trips", nil, nil, &out); err != nil {
		return nil, fmt.Errorf("client.Client.ListTrips: %w", err)
	}
	trips := make([]domain.Trip, len(out.Data))
	for i, t := range out.Data {
		trips[i] = t.ToDomain()
	}
	return trips, nil
}

// GetTrip calls GET /trips/{id}.
func (c *Client) GetTrip(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	var out api.Trip
	if err := c.do(ctx, http.MethodGet, tripPath(id, ""), nil, nil, &out); err != nil {
		return domain.Trip{}, fmt.Errorf("client.Client.GetTrip: %w", err)
	}
	return out.ToDomain(), nil
}

// CreateTrip creates t and returns the stored trip.
func (c *Client) CreateTrip(ctx context.Context, t domain.Trip) (domain.Trip, error) {
	var out api.Trip
	if err := c.do(ctx, http.MethodPost, "/trips", nil, api.TripRequestFrom(t), &out); err != nil {
		return domain.Trip{}, fmt.Errorf("client.Client.CreateTrip: %w", err)
	}
	return out.ToDomain(), nil
}

// UpdateTrip replaces trip t.ID.
func (c *Client) UpdateTrip(ctx context.Context, t domain.Trip) (domain.Trip, error) {
	var out api.Trip
	if err := c.do(ctx, http.MethodPut, tripPath(t.ID, ""), nil, api.TripRequestFrom(t), &out); err != nil {
		return domain.Trip{}, fmt.Errorf("client.Client.UpdateTrip: %w", err)
	}
	return out.ToDomain(), nil
}

// DeleteTrip deletes trip id with everything that belongs to it.
func (c *Client) DeleteTrip(ctx context.Context, id uuid.UUID) error {
	if err := c.do(ctx, http.MethodDelete, tripPath(id, ""), nil, nil, nil); err != nil {
		return fmt.Errorf("client.Client.DeleteTrip: %w", err)
	}
	return nil
}

// Countdown returns the days until trip id starts.
func (c *Client) Countdown(ctx context.Context, id uuid.UUID) (domain.Countdown, error) {
	var out api.Countdown
	if err := c.do(ctx, http.MethodGet, tripPath(id, "/countdown"), nil, nil, &out); err != nil {
		return domain.Countdown{}, fmt.Errorf("client.Client.Countdown: %w", err)
	}
	return out.ToDomain(), nil
}

// ListSchedules returns the schedules of tripID.
func (c *Client) ListSchedules(ctx context.Context, tripID uuid.UUID) ([]domain.Schedule, error) {
	var out api.List[api.Schedule]
	if err := c.do(ctx, http.MethodGet, tripPath(tripID, "/schedules"), nil, nil, &out); err != nil {
		return nil, fmt.Errorf("client.Client.ListSchedules: %w", err)
	}
	list := make([]domain.Schedule, len(out.Data))
	for i, s := range out.Data {
		list[i] = s.ToDomain()
	}
	return list, nil
}

// CreateSchedule creates s in s.TripID.
func (c *Client) CreateSchedule(ctx context.Context, s domain.Schedule) (domain.Schedule, error) {
	var out api.Schedule
	if err := c.do(ctx, http.MethodPost, tripPath(s.TripID, "/schedules"), nil, api.ScheduleRequestFrom(s), &out); err != nil {
		return domain.Schedule{}, fmt.Errorf("client.Client.CreateSchedule: %w", err)
	}
	return out.ToDomain(), nil
}

// UpdateSchedule replaces schedule s.ID.
func (c *Client) UpdateSchedule(ctx context.Context, s domain.Schedule) (domain.Schedule, error) {
	var out api.Schedule
	if err := c.do(ctx, http.MethodPut, itemPath(s.TripID, "schedules", s.ID), nil, api.ScheduleRequestFrom(s), &out); err != nil {
		return domain.Schedule{}, fmt.Errorf("client.Client.UpdateSchedule: %w", err)
	}
	return out.ToDomain(), nil
}

// DeleteSchedule deletes schedule id of tripID.
func (c *Client) DeleteSchedule(ctx context.Context, tripID, id uuid.UUID) error {
	if err := c.do(ctx, http.MethodDelete, itemPath(tripID, "schedules", id), nil, nil, nil); err != nil {
		return fmt.Errorf("client.Client.DeleteSchedule: %w", err)
	}
	return nil
}

// ListPlaces returns the places of tripID matching f.
func (c *Client) ListPlaces(ctx context.Context, tripID uuid.UUID, f domain.PlaceFilter) ([]domain.Place, error) {
	q := url.Values{}
	if f.City != "" {
		q.Set("city", f.City)
	}
	if f.Category != "" {
		q.Set("category", string(f.Category))
	}
	var out api.List[api.Place]
	if err := c.do(ctx, http.MethodGet, tripPath(tripID, "/places"), q, nil, &out); err != nil {
		return nil, fmt.Errorf("client.Client.ListPlaces: %w", err)
	}
	list := make([]domain.Place, len(out.Data))
	for i, p := range out.Data {
		list[i] = p.ToDomain()
	}
	return list, nil
}

// CreatePlace creates p in p.TripID.
func (c *Client) CreatePlace(ctx context.Context, p domain.Place) (domain.Place, error) {
	var out api.Place
	if err := c.do(ctx, http.MethodPost, tripPath(p.TripID, "/places"), nil, api.PlaceRequestFrom(p), &out); err != nil {
		return domain.Place{}, fmt.Errorf("client.Client.CreatePlace: %w", err)
	}
	return out.ToDomain(), nil
}

// UpdatePlace replaces place p.ID.
func (c *Client) UpdatePlace(ctx context.Context, p domain.Place) (domain.Place, error) {
	var out api.Place
	if err := c.do(ctx, http.MethodPut, itemPath(p.TripID, "places", p.ID), nil, api.PlaceRequestFrom(p), &out); err != nil {
		return domain.Place{}, fmt.Errorf("client.Client.UpdatePlace: %w", err)
	}
	return out.ToDomain(), nil
}

// DeletePlace deletes place id of tripID.
func (c *Client) DeletePlace(ctx context.Context, tripID, id uuid.UUID) error {
	if err := c.do(ctx, http.MethodDelete, itemPath(tripID, "places", id), nil, nil, nil); err != nil {
		return fmt.Errorf("client.Client.DeletePlace: %w", err)
	}
	return nil
}

// RecordPlaceVisit bumps the visit count of place id.
func (c *Client) RecordPlaceVisit(ctx context.Context, tripID, id uuid.UUID) (domain.Place, error) {
	var out api.Place
	if err := c.do(ctx, http.MethodPost, itemPath(tripID, "places", id)+"/visits", nil, nil, &out); err != nil {
		return domain.Place{}, fmt.Errorf("client.Client.RecordPlaceVisit: %w", err)
	}
	return out.ToDomain(), nil
}

// ListChecklist returns the checklist of tripID.
func (c *Client) ListChecklist(ctx context.Context, tripID uuid.UUID) ([]domain.ChecklistItem, error) {
	var out api.List[api.ChecklistItem]
	if err := c.do(ctx, http.MethodGet, tripPath(tripID, "/checklists"), nil, nil, &out); err != nil {
		return nil, fmt.Errorf("client.Client.ListChecklist: %w", err)
	}
	list := make([]domain.ChecklistItem, len(out.Data))
	for i, it := range out.Data {
		list[i] = it.ToDomain()
	}
	return list, nil
}

// CreateChecklistItem creates it in it.TripID.
func (c *Client) CreateChecklistItem(ctx context.Context, it domain.ChecklistItem) (domain.ChecklistItem, error) {
	var out api.ChecklistItem
	if err := c.do(ctx, http.MethodPost, tripPath(it.TripID, "/checklists"), nil, api.ChecklistItemRequestFrom(it), &out); err != nil {
		return domain.ChecklistItem{}, fmt.Errorf("client.Client.CreateChecklistItem: %w", err)
	}
	return out.ToDomain(), nil
}

// UpdateChecklistItem replaces item it.ID.
func (c *Client) UpdateChecklistItem(ctx context.Context, it domain.ChecklistItem) (domain.ChecklistItem, error) {
	var out api.ChecklistItem
	if err := c.do(ctx, http.MethodPut, itemPath(it.TripID, "checklists", it.ID), nil, api.ChecklistItemRequestFrom(it), &out); err != nil {
		return domain.ChecklistItem{}, fmt.Errorf("client.Client.UpdateChecklistItem: %w", err)
	}
	return out.ToDomain(), nil
}

// DeleteChecklistItem deletes item id of tripID.
func (c *Client) DeleteChecklistItem(ctx context.Context, tripID, id uuid.UUID) error {
	if err := c.do(ctx, http.MethodDelete, itemPath(tripID, "checklists", id), nil, nil, nil); err != nil {
		return fmt.Errorf("client.Client.DeleteChecklistItem: %w", err)
	}
	return nil
}

// ToggleChecklistItem flips the checked state of item id.
func (c *Client) ToggleChecklistItem(ctx context.Context, tripID, id uuid.UUID) (domain.ChecklistItem, error) {
	var out api.ChecklistItem
	if err := c.do(ctx, http.MethodPost, itemPath(tripID, "checklists", id)+"/toggle", nil, nil, &out); err != nil {
		return domain.ChecklistItem{}, fmt.Errorf("client.Client.ToggleChecklistItem: %w", err)
	}
	return out.ToDomain(), nil
}

// ListExpenses returns the expenses of tripID matching f in order s.
func (c *Client) ListExpenses(ctx context.Context, tripID uuid.UUID, f domain.ExpenseFilter, s domain.ExpenseSort) ([]domain.Expense, error) {
	var out api.List[api.Expense]
	if err := c.do(ctx, http.MethodGet, tripPath(tripID, "/expenses"), api.ExpenseQueryValues(f, s), nil, &out); err != nil {
		return nil, fmt.Errorf("client.Client.ListExpenses: %w", err)
	}
	list := make([]domain.Expense, len(out.Data))
	for i, e := range out.Data {
		list[i] = e.ToDomain()
	}
	return list, nil
}

// ExpenseSummary totals the expenses of tripID matching f.
func (c *Client) ExpenseSummary(ctx context.Context, tripID uuid.UUID, f domain.ExpenseFilter) (domain.ExpenseSummary, error) {
	var out api.ExpenseSummary
	q := api.ExpenseQueryValues(f, domain.ExpenseSort{})
	if err := c.do(ctx, http.MethodGet, tripPath(tripID, "/expenses/summary"), q, nil, &out); err != nil {
		return domain.ExpenseSummary{}, fmt.Errorf("client.Client.ExpenseSummary: %w", err)
	}
	return out.ToDomain(), nil
}

// ExportExpenses fetches the flat expense export in its JSON form.
func (c *Client) ExportExpenses(ctx context.Context, tripID uuid.UUID, f domain.ExpenseFilter, s domain.ExpenseSort) ([]domain.ExpenseExportRow, error) {
	var out api.List[api.ExpenseExportRow]
	if err := c.do(ctx, http.MethodGet, tripPath(tripID, "/expenses/export"), api.ExpenseQueryValues(f, s), nil, &out); err != nil {
		return nil, fmt.Errorf("client.Client.ExportExpenses: %w", err)
	}
	rows := make([]domain.ExpenseExportRow, len(out.Data))
	for i, r := range out.Data {
		rows[i] = r.ToDomain()
	}
	return rows, nil
}

// CreateExpense records e in e.TripID.
func (c *Client) CreateExpense(ctx context.Context, e domain.Expense) (domain.Expense, error) {
	var out api.Expense
	if err := c.do(ctx, http.MethodPost, tripPath(e.TripID, "/expenses"), nil, api.ExpenseRequestFrom(e), &out); err != nil {
		return domain.Expense{}, fmt.Errorf("client.Client.CreateExpense: %w", err)
	}
	return out.ToDomain(), nil
}

// UpdateExpense replaces expense e.ID.
func (c *Client) UpdateExpense(ctx context.Context, e domain.Expense) (domain.Expense, error) {
	var out api.Expense
	if err := c.do(ctx, http.MethodPut, itemPath(e.TripID, "expenses", e.ID), nil, api.ExpenseRequestFrom(e), &out); err != nil {
		return domain.Expense{}, fmt.Errorf("client.Client.UpdateExpense: %w", err)
	}
	return out.ToDomain(), nil
}

// DeleteExpense deletes expense id of tripID.
func (c *Client) DeleteExpense(ctx context.Context, tripID, id uuid.UUID) error {
	if err := c.do(ctx, http.MethodDelete, itemPath(tripID, "expenses", id), nil, nil, nil); err != nil {
		return fmt.Errorf("client.Client.DeleteExpense: %w", err)
	}
	return nil
}

// ListMemos returns the memos of tripID.
func (c *Client) ListMemos(ctx context.Context, tripID uuid.UUID) ([]domain.Memo, error) {
	var out api.List[api.Memo]
	if err := c.do(ctx, http.MethodGet, tripPath(tripID, "/memos"), nil, nil, &out); err != nil {
		return nil, fmt.Errorf("client.Client.ListMemos: %w", err)
	}
	list := make([]domain.Memo, len(out.Data))
	for i, m := range out.Data {
		list[i] = m.ToDomain()
	}
	return list, nil
}

// CreateMemo creates m in m.TripID.
func (c *Client) CreateMemo(ctx context.Context, m domain.Memo) (domain.Memo, error) {
	var out api.Memo
	if err := c.do(ctx, http.MethodPost, tripPath(m.TripID, "/memos"), nil, api.MemoRequestFrom(m), &out); err != nil {
		return domain.Memo{}, fmt.Errorf("client.Client.CreateMemo: %w", err)
	}
	return out.ToDomain(), nil
}

// UpdateMemo replaces memo m.ID.
func (c *Client) UpdateMemo(ctx context.Context, m domain.Memo) (domain.Memo, error) {
	var out api.Memo
	if err := c.do(ctx, http.MethodPut, itemPath(m.TripID, "memos", m.ID), nil, api.MemoRequestFrom(m), &out); err != nil {
		return domain.Memo{}, fmt.Errorf("client.Client.UpdateMemo: %w", err)
	}
	return out.ToDomain(), nil
}

// DeleteMemo deletes memo id of tripID.
func (c *Client) DeleteMemo(ctx context.Context, tripID, id uuid.UUID) error {
	if err := c.do(ctx, http.MethodDelete, itemPath(tripID, "memos", id), nil, nil, nil); err != nil {
		return fmt.Errorf("client.Client.DeleteMemo: %w", err)
	}
	return nil
}

// ExchangeRate returns the current AUD to KRW rate.
func (c *Client) ExchangeRate(ctx context.Context) (domain.ExchangeRate, error) {
	var out api.ExchangeRate
	if err := c.do(ctx, http.MethodGet, "/exchange-rate", nil, nil, &out); err != nil {
		return domain.ExchangeRate{}, fmt.Errorf("client.Client.ExchangeRate: %w", err)
	}
	return out.ToDomain(), nil
}
