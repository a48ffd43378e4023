package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/familytrip/tripboard/internal/domain"
)

// ExpenseRepo defines the persistence operations for Expenses.
type ExpenseRepo interface {
	Create(ctx context.Context, e domain.Expense) (domain.Expense, error)
	GetByID(ctx context.Context, tripID, id uuid.UUID) (domain.Expense, error)

	// ListByTripID returns expenses newest first (date, then creation time).
	// Filtering and re-sorting happen in memory at the service layer.
	ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Expense, error)

	Update(ctx context.Context, e domain.Expense) (domain.Expense, error)
	Delete(ctx context.Context, tripID, id uuid.UUID) error
}

type pgExpenseRepo struct {
	db db
}

// NewExpenseRepo constructs an ExpenseRepo backed by the provided db connection.
func NewExpenseRepo(db db) ExpenseRepo {
	return &pgExpenseRepo{db: db}
}

// amount travels as text in both directions so no precision is lost between
// NUMERIC and decimal.Decimal.
const expenseColumns = `id, trip_id, date, amount::text, currency, category, title, city, schedule_id, created_at`

func (r *pgExpenseRepo) Create(ctx context.Context, e domain.Expense) (domain.Expense, error) {
	const q = `
		INSERT INTO expenses (trip_id, date, amount, currency, category, title, city, schedule_id)
		VALUES (@trip_id, @date, @amount::text::numeric, @currency, @category, @title, @city, @schedule_id)
		RETURNING ` + expenseColumns

	result, err := scanExpense(r.db.QueryRow(ctx, q, expenseArgs(e)))
	if err != nil {
		return domain.Expense{}, fmt.Errorf("repo.ExpenseRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgExpenseRepo) GetByID(ctx context.Context, tripID, id uuid.UUID) (domain.Expense, error) {
	const q = `SELECT ` + expenseColumns + ` FROM expenses WHERE id = @id AND trip_id = @trip_id`

	result, err := scanExpense(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "trip_id": tripID}))
	if err != nil {
		return domain.Expense{}, fmt.Errorf("repo.ExpenseRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgExpenseRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Expense, error) {
	const q = `
		SELECT ` + expenseColumns + `
		FROM expenses
		WHERE trip_id = @trip_id
		ORDER BY date DESC, created_at DESC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.ExpenseRepo.ListByTripID: %w", err)
	}
	out, err := collect(rows, scanExpense)
	if err != nil {
		return nil, fmt.Errorf("repo.ExpenseRepo.ListByTripID: %w", err)
	}
	return out, nil
}

func (r *pgExpenseRepo) Update(ctx context.Context, e domain.Expense) (domain.Expense, error) {
	const q = `
		UPDATE expenses
		SET date        = @date,
		    amount      = @amount::text::numeric,
		    currency    = @currency,
		    category    = @category,
		    title       = @title,
		    city        = @city,
		    schedule_id = @schedule_id
		WHERE id = @id AND trip_id = @trip_id
		RETURNING ` + expenseColumns

	result, err := scanExpense(r.db.QueryRow(ctx, q, expenseArgs(e)))
	if err != nil {
		return domain.Expense{}, fmt.Errorf("repo.ExpenseRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgExpenseRepo) Delete(ctx context.Context, tripID, id uuid.UUID) error {
	const q = `DELETE FROM expenses WHERE id = @id AND trip_id = @trip_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id, "trip_id": tripID})
	if err != nil {
		return fmt.Errorf("repo.ExpenseRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.ExpenseRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func expenseArgs(e domain.Expense) pgx.NamedArgs {
	return pgx.NamedArgs{
		"id":          e.ID,
		"trip_id":     e.TripID,
		"date":        e.Date,
		"amount":      e.Amount.String(),
		"currency":    string(e.Currency),
		"category":    string(e.Category),
		"title":       e.Title,
		"city":        e.City,
		"schedule_id": e.ScheduleID, // nil becomes NULL
	}
}

func scanExpense(s scanner) (domain.Expense, error) {
	var (
		e                  domain.Expense
		id, tripID         pgtype.UUID
		scheduleID         pgtype.UUID
		date               pgtype.Date
		amount             string
		currency, category string
	)
	err := s.Scan(&id, &tripID, &date, &amount, &currency, &category, &e.Title, &e.City, &scheduleID, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Expense{}, domain.ErrNotFound
		}
		return domain.Expense{}, err
	}

	e.Amount, err = decimal.NewFromString(amount)
	if err != nil {
		return domain.Expense{}, fmt.Errorf("parse amount %q: %w", amount, err)
	}
	e.ID = uuid.UUID(id.Bytes)
	e.TripID = uuid.UUID(tripID.Bytes)
	e.Date = date.Time
	e.Currency = domain.Currency(currency)
	e.Category = domain.ExpenseCategory(category)
	if scheduleID.Valid {
		sid := uuid.UUID(scheduleID.Bytes)
		e.ScheduleID = &sid
	}
	return e, nil
}
