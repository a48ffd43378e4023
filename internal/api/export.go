package api

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"

	"github.com/familytrip/tripboard/internal/domain"
)

// ExportFormatCSV is the ?format= value that selects CSV output.
const ExportFormatCSV = "csv"

// ExpenseExportRow is one row of GET /trips/{tripID}/expenses/export.
type ExpenseExportRow struct {
	TripID        uuid.UUID          `json:"trip_id"`
	TripTitle     string             `json:"trip_title"`
	Date          openapi_types.Date `json:"date"`
	Title         string             `json:"title"`
	Category      string             `json:"category"`
	City          string             `json:"city,omitempty"`
	Amount        decimal.Decimal    `json:"amount"`
	Currency      string             `json:"currency"`
	ScheduleTitle string             `json:"schedule_title,omitempty"`
}

// FromExpenseExportRow converts a domain export row to its wire form.
func FromExpenseExportRow(r domain.ExpenseExportRow) ExpenseExportRow {
	return ExpenseExportRow{
		TripID:        r.TripID,
		TripTitle:     r.TripTitle,
		Date:          openapi_types.Date{Time: r.Date},
		Title:         r.Title,
		Category:      string(r.Category),
		City:          r.City,
		Amount:        r.Amount,
		Currency:      string(r.Currency),
		ScheduleTitle: r.ScheduleTitle,
	}
}

// ToDomain converts r back to a domain.ExpenseExportRow.
func (r ExpenseExportRow) ToDomain() domain.ExpenseExportRow {
	return domain.ExpenseExportRow{
		TripID:        r.TripID,
		TripTitle:     r.TripTitle,
		Date:          r.Date.Time,
		Title:         r.Title,
		Category:      domain.ExpenseCategory(r.Category),
		City:          r.City,
		Amount:        r.Amount,
		Currency:      domain.Currency(r.Currency),
		ScheduleTitle: r.ScheduleTitle,
	}
}

// expenseCSVHeader is the first row of every CSV export.
var expenseCSVHeader = []string{
	"trip_id", "trip_title", "date", "title", "category",
	"city", "amount", "currency", "schedule_title",
}

// WriteExpenseCSV writes a header row followed by one record per row.
// The server and the tripdash client share it so both produce the same file.
func WriteExpenseCSV(w io.Writer, rows []ExpenseExportRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(expenseCSVHeader); err != nil {
		return fmt.Errorf("api.WriteExpenseCSV: %w", err)
	}
	for _, r := range rows {
		rec := []string{
			r.TripID.String(),
			r.TripTitle,
			r.Date.Time.Format(dateLayout),
			r.Title,
			r.Category,
			r.City,
			r.Amount.String(),
			r.Currency,
			r.ScheduleTitle,
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("api.WriteExpenseCSV: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("api.WriteExpenseCSV: %w", err)
	}
	return nil
}
