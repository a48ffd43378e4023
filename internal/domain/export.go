package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpenseExportRow is a single row in an expense export.
// It is a flat, denormalized view: one row per expense, with the trip title
// repeated on every row and the linked schedule's title resolved.
// ScheduleTitle is empty when the expense is not linked to a schedule.
type ExpenseExportRow struct {
	TripID    uuid.UUID
	TripTitle string

	Date     time.Time
	Title    string
	Category ExpenseCategory
	City     string
	Amount   decimal.Decimal
	Currency Currency

	ScheduleTitle string
}
