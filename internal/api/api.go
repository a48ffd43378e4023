// Package api holds the JSON wire types shared by the HTTP handlers and the
// tripdash client, with conversions to and from domain values.
// Request types carry validator tags; call Validate before using them.
package api

import (
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"

	"github.com/familytrip/tripboard/internal/domain"
)

// Error codes carried in ErrorDetail.Code.
const (
	CodeNotFound        = "not_found"
	CodeValidation      = "validation_error"
	CodeBadRequest      = "bad_request"
	CodeUnauthenticated = "unauthenticated"
	CodeBodyTooLarge    = "body_too_large"
	CodeRateUnavailable = "rate_unavailable"
	CodeRateUnparsable  = "rate_unparsable"
	CodeInternal        = "internal_error"
)

// ErrorDetail is the body of every non-2xx response.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps ErrorDetail under an "error" key.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// List is the envelope for collection responses.
type List[T any] struct {
	Data []T `json:"data"`
}

// Health is the body of GET /healthz.
type Health struct {
	Status string `json:"status"`
}

// Trip is a trip as returned by the /trips routes.
type Trip struct {
	ID          uuid.UUID          `json:"id"`
	Title       string             `json:"title"`
	StartDate   openapi_types.Date `json:"start_date"`
	EndDate     openapi_types.Date `json:"end_date"`
	FamilyCount *int               `json:"family_count,omitempty"`
	Cities      []string           `json:"cities"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// TripRequest is the body of POST /trips and PUT /trips/{tripID}.
type TripRequest struct {
	Title       string             `json:"title" validate:"required,max=200"`
	StartDate   openapi_types.Date `json:"start_date" validate:"required"`
	EndDate     openapi_types.Date `json:"end_date" validate:"required"`
	FamilyCount *int               `json:"family_count,omitempty" validate:"omitempty,min=1"`
	Cities      []string           `json:"cities,omitempty" validate:"dive,max=100"`
}

// FromTrip converts a domain trip to its wire form.
func FromTrip(t domain.Trip) Trip {
	cities := t.Cities
	if cities == nil {
		cities = []string{}
	}
	return Trip{
		ID:          t.ID,
		Title:       t.Title,
		StartDate:   openapi_types.Date{Time: t.StartDate},
		EndDate:     openapi_types.Date{Time: t.EndDate},
		FamilyCount: t.FamilyCount,
		Cities:      cities,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// ToDomain converts t back to a domain.Trip.
func (t Trip) ToDomain() domain.Trip {
	return domain.Trip{
		ID:          t.ID,
		Title:       t.Title,
		StartDate:   t.StartDate.Time,
		EndDate:     t.EndDate.Time,
		FamilyCount: t.FamilyCount,
		Cities:      t.Cities,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// ToDomain builds a trip with the given id; use uuid.Nil for creates.
func (r TripRequest) ToDomain(id uuid.UUID) domain.Trip {
	return domain.Trip{
		ID:          id,
		Title:       r.Title,
		StartDate:   r.StartDate.Time,
		EndDate:     r.EndDate.Time,
		FamilyCount: r.FamilyCount,
		Cities:      r.Cities,
	}
}

// TripRequestFrom builds the body that creates or updates t.
func TripRequestFrom(t domain.Trip) TripRequest {
	return TripRequest{
		Title:       t.Title,
		StartDate:   openapi_types.Date{Time: t.StartDate},
		EndDate:     openapi_types.Date{Time: t.EndDate},
		FamilyCount: t.FamilyCount,
		Cities:      t.Cities,
	}
}

// Countdown is the body of GET /trips/{tripID}/countdown.
type Countdown struct {
	Phase          string `json:"phase"`
	DaysUntilStart int    `json:"days_until_start"`
	DayNumber      int    `json:"day_number"`
	TotalDays      int    `json:"total_days"`
	DaysSinceEnd   int    `json:"days_since_end"`
}

// FromCountdown converts a domain countdown to its wire form.
func FromCountdown(c domain.Countdown) Countdown {
	return Countdown{
		Phase:          string(c.Phase),
		DaysUntilStart: c.DaysUntilStart,
		DayNumber:      c.DayNumber,
		TotalDays:      c.TotalDays,
		DaysSinceEnd:   c.DaysSinceEnd,
	}
}

// ToDomain converts c back to a domain.Countdown.
func (c Countdown) ToDomain() domain.Countdown {
	return domain.Countdown{
		Phase:          domain.Phase(c.Phase),
		DaysUntilStart: c.DaysUntilStart,
		DayNumber:      c.DayNumber,
		TotalDays:      c.TotalDays,
		DaysSinceEnd:   c.DaysSinceEnd,
	}
}

// Schedule is one timetable entry of a trip.
type Schedule struct {
	ID        uuid.UUID          `json:"id"`
	TripID    uuid.UUID          `json:"trip_id"`
	Date      openapi_types.Date `json:"date"`
	StartTime string             `json:"start_time,omitempty"`
	EndTime   string             `json:"end_time,omitempty"`
	Title     string             `json:"title"`
	Location  string             `json:"location,omitempty"`
	Memo      string             `json:"memo,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
}

// ScheduleRequest is the body that creates or updates a schedule. Times are
// "15:04" strings.
type ScheduleRequest struct {
	Date      openapi_types.Date `json:"date" validate:"required"`
	StartTime string             `json:"start_time,omitempty" validate:"omitempty,datetime=15:04"`
	EndTime   string             `json:"end_time,omitempty" validate:"omitempty,datetime=15:04"`
	Title     string             `json:"title" validate:"required,max=200"`
	Location  string             `json:"location,omitempty" validate:"max=200"`
	Memo      string             `json:"memo,omitempty"`
}

// FromSchedule converts a domain schedule to its wire form.
func FromSchedule(s domain.Schedule) Schedule {
	return Schedule{
		ID:        s.ID,
		TripID:    s.TripID,
		Date:      openapi_types.Date{Time: s.Date},
		StartTime: s.StartTime,
		EndTime:   s.EndTime,
		Title:     s.Title,
		Location:  s.Location,
		Memo:      s.Memo,
		CreatedAt: s.CreatedAt,
	}
}

// ToDomain converts s back to a domain.Schedule.
func (s Schedule) ToDomain() domain.Schedule {
	return domain.Schedule{
		ID:        s.ID,
		TripID:    s.TripID,
		Date:      s.Date.Time,
		StartTime: s.StartTime,
		EndTime:   s.EndTime,
		Title:     s.Title,
		Location:  s.Location,
		Memo:      s.Memo,
		CreatedAt: s.CreatedAt,
	}
}

// ToDomain builds the schedule r describes for tripID. id is uuid.Nil on create.
func (r ScheduleRequest) ToDomain(tripID, id uuid.UUID) domain.Schedule {
	return domain.Schedule{
		ID:        id,
		TripID:    tripID,
		Date:      r.Date.Time,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		Title:     r.Title,
		Location:  r.Location,
		Memo:      r.Memo,
	}
}

// ScheduleRequestFrom builds the body that writes s.
func ScheduleRequestFrom(s domain.Schedule) ScheduleRequest {
	return ScheduleRequest{
		Date:      openapi_types.Date{Time: s.Date},
		StartTime: s.StartTime,
		EndTime:   s.EndTime,
		Title:     s.Title,
		Location:  s.Location,
		Memo:      s.Memo,
	}
}

// Place is a saved place of a trip.
type Place struct {
	ID             uuid.UUID `json:"id"`
	TripID         uuid.UUID `json:"trip_id"`
	Name           string    `json:"name"`
	City           string    `json:"city,omitempty"`
	Category       string    `json:"category"`
	Rating         int       `json:"rating"`
	IsKidFriendly  bool      `json:"is_kid_friendly"`
	Notes          string    `json:"notes,omitempty"`
	Address        string    `json:"address,omitempty"`
	OperatingHours string    `json:"operating_hours,omitempty"`
	ContactPhone   string    `json:"contact_phone,omitempty"`
	WebsiteURL     string    `json:"website_url,omitempty"`
	GoogleMapURL   string    `json:"google_map_url,omitempty"`
	Lat            *float64  `json:"lat,omitempty"`
	Lng            *float64  `json:"lng,omitempty"`
	VisitCount     int       `json:"visit_count"`
}

// PlaceRequest is the body that creates or updates a place.
type PlaceRequest struct {
	Name           string   `json:"name" validate:"required,max=200"`
	City           string   `json:"city,omitempty" validate:"max=100"`
	Category       string   `json:"category" validate:"required,oneof=tour food shop play museum medical market"`
	Rating         int      `json:"rating" validate:"gte=0,lte=5"`
	IsKidFriendly  bool     `json:"is_kid_friendly"`
	Notes          string   `json:"notes,omitempty"`
	Address        string   `json:"address,omitempty"`
	OperatingHours string   `json:"operating_hours,omitempty"`
	ContactPhone   string   `json:"contact_phone,omitempty"`
	WebsiteURL     string   `json:"website_url,omitempty" validate:"omitempty,url"`
	GoogleMapURL   string   `json:"google_map_url,omitempty" validate:"omitempty,url"`
	Lat            *float64 `json:"lat,omitempty" validate:"omitempty,gte=-90,lte=90"`
	Lng            *float64 `json:"lng,omitempty" validate:"omitempty,gte=-180,lte=180"`
}

// FromPlace converts a domain place to its wire form.
func FromPlace(p domain.Place) Place {
	return Place{
		ID:             p.ID,
		TripID:         p.TripID,
		Name:           p.Name,
		City:           p.City,
		Category:       string(p.Category),
		Rating:         p.Rating,
		IsKidFriendly:  p.IsKidFriendly,
		Notes:          p.Notes,
		Address:        p.Address,
		OperatingHours: p.OperatingHours,
		ContactPhone:   p.ContactPhone,
		WebsiteURL:     p.WebsiteURL,
		GoogleMapURL:   p.GoogleMapURL,
		Lat:            p.Lat,
		Lng:            p.Lng,
		VisitCount:     p.VisitCount,
	}
}

// ToDomain converts p back to a domain.Place.
func (p Place) ToDomain() domain.Place {
	return domain.Place{
		ID:             p.ID,
		TripID:         p.TripID,
		Name:           p.Name,
		City:           p.City,
		Category:       domain.PlaceCategory(p.Category),
		Rating:         p.Rating,
		IsKidFriendly:  p.IsKidFriendly,
		Notes:          p.Notes,
		Address:        p.Address,
		OperatingHours: p.OperatingHours,
		ContactPhone:   p.ContactPhone,
		WebsiteURL:     p.WebsiteURL,
		GoogleMapURL:   p.GoogleMapURL,
		Lat:            p.Lat,
		Lng:            p.Lng,
		VisitCount:     p.VisitCount,
	}
}

// ToDomain builds the place r describes for tripID.
func (r PlaceRequest) ToDomain(tripID, id uuid.UUID) domain.Place {
	return domain.Place{
		ID:             id,
		TripID:         tripID,
		Name:           r.Name,
		City:           r.City,
		Category:       domain.PlaceCategory(r.Category),
		Rating:         r.Rating,
		IsKidFriendly:  r.IsKidFriendly,
		Notes:          r.Notes,
		Address:        r.Address,
		OperatingHours: r.OperatingHours,
		ContactPhone:   r.ContactPhone,
		WebsiteURL:     r.WebsiteURL,
		GoogleMapURL:   r.GoogleMapURL,
		Lat:            r.Lat,
		Lng:            r.Lng,
	}
}

// PlaceRequestFrom builds the body that writes p.
func PlaceRequestFrom(p domain.Place) PlaceRequest {
	return PlaceRequest{
		Name:           p.Name,
		City:           p.City,
		Category:       string(p.Category),
		Rating:         p.Rating,
		IsKidFriendly:  p.IsKidFriendly,
		Notes:          p.Notes,
		Address:        p.Address,
		OperatingHours: p.OperatingHours,
		ContactPhone:   p.ContactPhone,
		WebsiteURL:     p.WebsiteURL,
		GoogleMapURL:   p.GoogleMapURL,
		Lat:            p.Lat,
		Lng:            p.Lng,
	}
}

// ChecklistItem is one entry of a trip checklist.
type ChecklistItem struct {
	ID        uuid.UUID `json:"id"`
	TripID    uuid.UUID `json:"trip_id"`
	Category  string    `json:"category"`
	Label     string    `json:"label"`
	IsChecked bool      `json:"is_checked"`
}

// ChecklistItemRequest is the body that creates or updates a checklist item.
type ChecklistItemRequest struct {
	Category  string `json:"category" validate:"required,max=100"`
	Label     string `json:"label" validate:"required,max=200"`
	IsChecked bool   `json:"is_checked"`
}

// FromChecklistItem converts a domain checklist item to its wire form.
func FromChecklistItem(c domain.ChecklistItem) ChecklistItem {
	return ChecklistItem{ID: c.ID, TripID: c.TripID, Category: c.Category, Label: c.Label, IsChecked: c.IsChecked}
}

// ToDomain converts c back to a domain.ChecklistItem.
func (c ChecklistItem) ToDomain() domain.ChecklistItem {
	return domain.ChecklistItem{ID: c.ID, TripID: c.TripID, Category: c.Category, Label: c.Label, IsChecked: c.IsChecked}
}

// ToDomain builds the item r describes for tripID.
func (r ChecklistItemRequest) ToDomain(tripID, id uuid.UUID) domain.ChecklistItem {
	return domain.ChecklistItem{ID: id, TripID: tripID, Category: r.Category, Label: r.Label, IsChecked: r.IsChecked}
}

// ChecklistItemRequestFrom builds the body that writes c.
func ChecklistItemRequestFrom(c domain.ChecklistItem) ChecklistItemRequest {
	return ChecklistItemRequest{Category: c.Category, Label: c.Label, IsChecked: c.IsChecked}
}

// Expense is one expense of a trip. Amount is a decimal string.
type Expense struct {
	ID         uuid.UUID          `json:"id"`
	TripID     uuid.UUID          `json:"trip_id"`
	Date       openapi_types.Date `json:"date"`
	Amount     decimal.Decimal    `json:"amount"`
	Currency   string             `json:"currency"`
	Category   string             `json:"category"`
	Title      string             `json:"title"`
	City       string             `json:"city,omitempty"`
	ScheduleID *uuid.UUID         `json:"schedule_id,omitempty"`
	CreatedAt  time.Time          `json:"created_at"`
}

// ExpenseRequest is the body that creates or updates an expense. Amount must
// fit NUMERIC(14,2).
type ExpenseRequest struct {
	Date       openapi_types.Date `json:"date" validate:"required"`
	Amount     decimal.Decimal    `json:"amount" validate:"gt=0"`
	Currency   string             `json:"currency" validate:"required,oneof=AUD KRW"`
	Category   string             `json:"category" validate:"required,oneof=food transport lodging activity shopping etc"`
	Title      string             `json:"title" validate:"required,max=200"`
	City       string             `json:"city,omitempty" validate:"max=100"`
	ScheduleID *uuid.UUID         `json:"schedule_id,omitempty"`
}

// FromExpense converts a domain expense to its wire form.
func FromExpense(e domain.Expense) Expense {
	return Expense{
		ID:         e.ID,
		TripID:     e.TripID,
		Date:       openapi_types.Date{Time: e.Date},
		Amount:     e.Amount,
		Currency:   string(e.Currency),
		Category:   string(e.Category),
		Title:      e.Title,
		City:       e.City,
		ScheduleID: e.ScheduleID,
		CreatedAt:  e.CreatedAt,
	}
}

// ToDomain converts e back to a domain.Expense.
func (e Expense) ToDomain() domain.Expense {
	return domain.Expense{
		ID:         e.ID,
		TripID:     e.TripID,
		Date:       e.Date.Time,
		Amount:     e.Amount,
		Currency:   domain.Currency(e.Currency),
		Category:   domain.ExpenseCategory(e.Category),
		Title:      e.Title,
		City:       e.City,
		ScheduleID: e.ScheduleID,
		CreatedAt:  e.CreatedAt,
	}
}

// ToDomain builds the expense r describes for tripID.
func (r ExpenseRequest) ToDomain(tripID, id uuid.UUID) domain.Expense {
	return domain.Expense{
		ID:         id,
		TripID:     tripID,
		Date:       r.Date.Time,
		Amount:     r.Amount,
		Currency:   domain.Currency(r.Currency),
		Category:   domain.ExpenseCategory(r.Category),
		Title:      r.Title,
		City:       r.City,
		ScheduleID: r.ScheduleID,
	}
}

// ExpenseRequestFrom builds the body that writes e.
func ExpenseRequestFrom(e domain.Expense) ExpenseRequest {
	return ExpenseRequest{
		Date:       openapi_types.Date{Time: e.Date},
		Amount:     e.Amount,
		Currency:   string(e.Currency),
		Category:   string(e.Category),
		Title:      e.Title,
		City:       e.City,
		ScheduleID: e.ScheduleID,
	}
}

// Money is an amount in one currency.
type Money struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

// CategoryTotal is the spend of one category in one currency.
type CategoryTotal struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

// ExpenseSummary is the body of GET /trips/{tripID}/expenses/summary.
type ExpenseSummary struct {
	Count          int             `json:"count"`
	Totals         []Money         `json:"totals"`
	ByCategory     []CategoryTotal `json:"by_category"`
	ConvertedTotal *Money          `json:"converted_total,omitempty"`
	Rate           *ExchangeRate   `json:"rate,omitempty"`
}

// FromExpenseSummary converts a domain summary to its wire form.
func FromExpenseSummary(s domain.ExpenseSummary) ExpenseSummary {
	out := ExpenseSummary{
		Count:      s.Count,
		Totals:     make([]Money, 0, len(s.Totals)),
		ByCategory: make([]CategoryTotal, 0, len(s.ByCategory)),
	}
	for _, m := range s.Totals {
		out.Totals = append(out.Totals, Money{Amount: m.Amount, Currency: string(m.Currency)})
	}
	for _, c := range s.ByCategory {
		out.ByCategory = append(out.ByCategory, CategoryTotal{
			Category: string(c.Category),
			Amount:   c.Money.Amount,
			Currency: string(c.Money.Currency),
		})
	}
	if s.ConvertedTotal != nil {
		out.ConvertedTotal = &Money{Amount: s.ConvertedTotal.Amount, Currency: string(s.ConvertedTotal.Currency)}
	}
	if s.Rate != nil {
		r := FromExchangeRate(*s.Rate)
		out.Rate = &r
	}
	return out
}

// ToDomain converts s back to a domain.ExpenseSummary.
func (s ExpenseSummary) ToDomain() domain.ExpenseSummary {
	out := domain.ExpenseSummary{
		Count:      s.Count,
		Totals:     make([]domain.Money, 0, len(s.Totals)),
		ByCategory: make([]domain.CategoryTotal, 0, len(s.ByCategory)),
	}
	for _, m := range s.Totals {
		out.Totals = append(out.Totals, domain.Money{Amount: m.Amount, Currency: domain.Currency(m.Currency)})
	}
	for _, c := range s.ByCategory {
		out.ByCategory = append(out.ByCategory, domain.CategoryTotal{
			Category: domain.ExpenseCategory(c.Category),
			Money:    domain.Money{Amount: c.Amount, Currency: domain.Currency(c.Currency)},
		})
	}
	if s.ConvertedTotal != nil {
		out.ConvertedTotal = &domain.Money{Amount: s.ConvertedTotal.Amount, Currency: domain.Currency(s.ConvertedTotal.Currency)}
	}
	if s.Rate != nil {
		r := s.Rate.ToDomain()
		out.Rate = &r
	}
	return out
}

// Memo is a free-form note of a trip.
type Memo struct {
	ID        uuid.UUID `json:"id"`
	TripID    uuid.UUID `json:"trip_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MemoRequest is the body that creates or updates a memo.
type MemoRequest struct {
	Title   string `json:"title" validate:"required,max=200"`
	Content string `json:"content"`
}

// FromMemo converts a domain memo to its wire form.
func FromMemo(m domain.Memo) Memo {
	return Memo{ID: m.ID, TripID: m.TripID, Title: m.Title, Content: m.Content, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt}
}

// ToDomain converts m back to a domain.Memo.
func (m Memo) ToDomain() domain.Memo {
	return domain.Memo{ID: m.ID, TripID: m.TripID, Title: m.Title, Content: m.Content, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt}
}

// ToDomain builds the memo r describes for tripID.
func (r MemoRequest) ToDomain(tripID, id uuid.UUID) domain.Memo {
	return domain.Memo{ID: id, TripID: tripID, Title: r.Title, Content: r.Content}
}

// MemoRequestFrom builds the body that writes m.
func MemoRequestFrom(m domain.Memo) MemoRequest {
	return MemoRequest{Title: m.Title, Content: m.Content}
}

// ExchangeRate is the body of GET /exchange-rate. Rate is an exact decimal
// string, like expense amounts.
type ExchangeRate struct {
	Rate      decimal.Decimal `json:"rate"`
	Base      string          `json:"base"`
	Quote     string          `json:"quote"`
	FetchedAt time.Time       `json:"fetched_at"`
	Source    string          `json:"source"`
	Cached    bool            `json:"cached"`
}

// FromExchangeRate converts a domain rate to its wire form.
func FromExchangeRate(r domain.ExchangeRate) ExchangeRate {
	return ExchangeRate{
		Rate:      r.Rate,
		Base:      string(r.Base),
		Quote:     string(r.Quote),
		FetchedAt: r.FetchedAt,
		Source:    r.Source,
		Cached:    r.Cached,
	}
}

// ToDomain converts r back to a domain.ExchangeRate.
func (r ExchangeRate) ToDomain() domain.ExchangeRate {
	return domain.ExchangeRate{
		Rate:      r.Rate,
		Base:      domain.Currency(r.Base),
		Quote:     domain.Currency(r.Quote),
		FetchedAt: r.FetchedAt,
		Source:    r.Source,
		Cached:    r.Cached,
	}
}
