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

// TripRepo defines the persistence operations for Trips.
// The service layer depends on this interface, not the concrete Postgres implementation.
type TripRepo interface {
	// Create inserts a new trip and returns the persisted record (with DB-generated
	// id, created_at, and updated_at populated).
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// GetByID retrieves a single trip by its UUID primary key.
	// Returns domain.ErrNotFound if no trip with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)

	// List returns every trip ordered by created_at descending (newest first).
	// The directory is not paginated.
	List(ctx context.Context) ([]domain.Trip, error)

	// Update overwrites the mutable fields of an existing trip and returns the
	// updated record. Returns domain.ErrNotFound if no trip with that ID exists.
	Update(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// Delete removes a trip and, by cascade, everything scoped to it.
	// Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

const tripColumns = `id, title, start_date, end_date, family_count, cities, created_at, updated_at`

func (r *pgTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		INSERT INTO trips (title, start_date, end_date, family_count, cities)
		VALUES (@title, @start_date, @end_date, @family_count, @cities)
		RETURNING ` + tripColumns

	args := pgx.NamedArgs{
		"title":        trip.Title,
		"start_date":   trip.StartDate,
		"end_date":     trip.EndDate,
		"family_count": trip.FamilyCount, // nil becomes NULL
		"cities":       joinCities(trip.Cities),
	}

	result, err := scanTrip(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	const q = `SELECT ` + tripColumns + ` FROM trips WHERE id = @id`

	result, err := scanTrip(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgTripRepo) List(ctx context.Context) ([]domain.Trip, error) {
	const q = `SELECT ` + tripColumns + ` FROM trips ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.List: %w", err)
	}
	trips, err := collect(rows, scanTrip)
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.List: %w", err)
	}
	return trips, nil
}

func (r *pgTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		UPDATE trips
		SET title        = @title,
		    start_date   = @start_date,
		    end_date     = @end_date,
		    family_count = @family_count,
		    cities       = @cities,
		    updated_at   = now()
		WHERE id = @id
		RETURNING ` + tripColumns

	args := pgx.NamedArgs{
		"id":           trip.ID,
		"title":        trip.Title,
		"start_date":   trip.StartDate,
		"end_date":     trip.EndDate,
		"family_count": trip.FamilyCount,
		"cities":       joinCities(trip.Cities),
	}

	result, err := scanTrip(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgTripRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM trips WHERE id = @id`, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.TripRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TripRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanTrip maps a single database row into a domain.Trip.
func scanTrip(s scanner) (domain.Trip, error) {
	var (
		t           domain.Trip
		id          pgtype.UUID
		start, end  pgtype.Date
		familyCount *int32
		cities      *string
	)

	err := s.Scan(&id, &t.Title, &start, &end, &familyCount, &cities, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Trip{}, domain.ErrNotFound
		}
		return domain.Trip{}, err
	}

	t.ID = uuid.UUID(id.Bytes)
	t.StartDate = start.Time
	t.EndDate = end.Time
	if familyCount != nil {
		n := int(*familyCount)
		t.FamilyCount = &n
	}
	t.Cities = splitCities(cities)
	return t, nil
}
