package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/familytrip/tripboard/internal/domain"
)

// ChecklistRepo defines the persistence operations for checklist items.
type ChecklistRepo interface {
	Create(ctx context.Context, item domain.ChecklistItem) (domain.ChecklistItem, error)

	// ListByTripID returns items ordered by category then label.
	ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.ChecklistItem, error)

	Update(ctx context.Context, item domain.ChecklistItem) (domain.ChecklistItem, error)
	Delete(ctx context.Context, tripID, id uuid.UUID) error

	// Toggle flips is_checked in a single statement and returns the new row.
	Toggle(ctx context.Context, tripID, id uuid.UUID) (domain.ChecklistItem, error)
}

type pgChecklistRepo struct {
	db db
}

// NewChecklistRepo constructs a ChecklistRepo backed by the provided db connection.
func NewChecklistRepo(db db) ChecklistRepo {
	return &pgChecklistRepo{db: db}
}

const checklistColumns = `id, trip_id, category, label, is_checked`

func (r *pgChecklistRepo) Create(ctx context.Context, item domain.ChecklistItem) (domain.ChecklistItem, error) {
	const q = `
		INSERT INTO checklists (trip_id, category, label, is_checked)
		VALUES (@trip_id, @category, @label, @is_checked)
		RETURNING ` + checklistColumns

	args := pgx.NamedArgs{
		"trip_id":    item.TripID,
		"category":   item.Category,
		"label":      item.Label,
		"is_checked": item.IsChecked,
	}
	result, err := scanChecklistItem(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.ChecklistItem{}, fmt.Errorf("repo.ChecklistRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgChecklistRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.ChecklistItem, error) {
	const q = `
		SELECT ` + checklistColumns + `
		FROM checklists
		WHERE trip_id = @trip_id
		ORDER BY category, label`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.ChecklistRepo.ListByTripID: %w", err)
	}
	out, err := collect(rows, scanChecklistItem)
	if err != nil {
		return nil, fmt.Errorf("repo.ChecklistRepo.ListByTripID: %w", err)
	}
	return out, nil
}

func (r *pgChecklistRepo) Update(ctx context.Context, item domain.ChecklistItem) (domain.ChecklistItem, error) {
	const q = `
		UPDATE checklists
		SET category   = @category,
		    label      = @label,
		    is_checked = @is_checked
		WHERE id = @id AND trip_id = @trip_id
		RETURNING ` + checklistColumns

	args := pgx.NamedArgs{
		"id":         item.ID,
		"trip_id":    item.TripID,
		"category":   item.Category,
		"label":      item.Label,
		"is_checked": item.IsChecked,
	}
	result, err := scanChecklistItem(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.ChecklistItem{}, fmt.Errorf("repo.ChecklistRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgChecklistRepo) Delete(ctx context.Context, tripID, id uuid.UUID) error {
	const q = `DELETE FROM checklists WHERE id = @id AND trip_id = @trip_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id, "trip_id": tripID})
	if err != nil {
		return fmt.Errorf("repo.ChecklistRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.ChecklistRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgChecklistRepo) Toggle(ctx context.Context, tripID, id uuid.UUID) (domain.ChecklistItem, error) {
	const q = `
		UPDATE checklists
		SET is_checked = NOT is_checked
		WHERE id = @id AND trip_id = @trip_id
		RETURNING ` + checklistColumns

	result, err := scanChecklistItem(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "trip_id": tripID}))
	if err != nil {
		return domain.ChecklistItem{}, fmt.Errorf("repo.ChecklistRepo.Toggle: %w", err)
	}
	return result, nil
}

func scanChecklistItem(s scanner) (domain.ChecklistItem, error) {
	var (
		item       domain.ChecklistItem
		id, tripID pgtype.UUID
	)
	err := s.Scan(&id, &tripID, &item.Category, &item.Label, &item.IsChecked)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ChecklistItem{}, domain.ErrNotFound
		}
		return domain.ChecklistItem{}, err
	}
	item.ID = uuid.UUID(id.Bytes)
	item.TripID = uuid.UUID(tripID.Bytes)
	return item, nil
}
