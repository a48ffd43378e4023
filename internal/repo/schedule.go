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

// ScheduleRepo defines the persistence operations for Schedules.
// Every single-row operation is scoped by tripID to enforce ownership.
type ScheduleRepo interface {
	Create(ctx context.Context, s domain.Schedule) (domain.Schedule, error)

	// GetByID returns domain.ErrNotFound if the schedule does not exist under tripID.
	GetByID(ctx context.Context, tripID, id uuid.UUID) (domain.Schedule, error)

	// ListByTripID returns schedules ordered by date, then start time (untimed
	// entries first), then creation time.
	ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Schedule, error)

	Update(ctx context.Context, s domain.Schedule) (domain.Schedule, error)
	Delete(ctx context.Context, tripID, id uuid.UUID) error
}

type pgScheduleRepo struct {
	db db
}

// NewScheduleRepo constructs a ScheduleRepo backed by the provided db connection.
func NewScheduleRepo(db db) ScheduleRepo {
	return &pgScheduleRepo{db: db}
}

const scheduleColumns = `id, trip_id, date, start_time, end_time, title, location, memo, created_at`

func (r *pgScheduleRepo) Create(ctx context.Context, s domain.Schedule) (domain.Schedule, error) {
	const q = `
		INSERT INTO schedules (trip_id, date, start_time, end_time, title, location, memo)
		VALUES (@trip_id, @date, @start_time, @end_time, @title, @location, @memo)
		RETURNING ` + scheduleColumns

	result, err := scanSchedule(r.db.QueryRow(ctx, q, scheduleArgs(s)))
	if err != nil {
		return domain.Schedule{}, fmt.Errorf("repo.ScheduleRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgScheduleRepo) GetByID(ctx context.Context, tripID, id uuid.UUID) (domain.Schedule, error) {
	const q = `SELECT ` + scheduleColumns + ` FROM schedules WHERE id = @id AND trip_id = @trip_id`

	result, err := scanSchedule(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "trip_id": tripID}))
	if err != nil {
		return domain.Schedule{}, fmt.Errorf("repo.ScheduleRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgScheduleRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Schedule, error) {
	const q = `
		SELECT ` + scheduleColumns + `
		FROM schedules
		WHERE trip_id = @trip_id
		ORDER BY date, start_time NULLS FIRST, created_at`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.ScheduleRepo.ListByTripID: %w", err)
	}
	out, err := collect(rows, scanSchedule)
	if err != nil {
		return nil, fmt.Errorf("repo.ScheduleRepo.ListByTripID: %w", err)
	}
	return out, nil
}

func (r *pgScheduleRepo) Update(ctx context.Context, s domain.Schedule) (domain.Schedule, error) {
	const q = `
		UPDATE schedules
		SET date       = @date,
		    start_time = @start_time,
		    end_time   = @end_time,
		    title      = @title,
		    location   = @location,
		    memo       = @memo
		WHERE id = @id AND trip_id = @trip_id
		RETURNING ` + scheduleColumns

	result, err := scanSchedule(r.db.QueryRow(ctx, q, scheduleArgs(s)))
	if err != nil {
		return domain.Schedule{}, fmt.Errorf("repo.ScheduleRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgScheduleRepo) Delete(ctx context.Context, tripID, id uuid.UUID) error {
	const q = `DELETE FROM schedules WHERE id = @id AND trip_id = @trip_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id, "trip_id": tripID})
	if err != nil {
		return fmt.Errorf("repo.ScheduleRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.ScheduleRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func scheduleArgs(s domain.Schedule) pgx.NamedArgs {
	return pgx.NamedArgs{
		"id":         s.ID,
		"trip_id":    s.TripID,
		"date":       s.Date,
		"start_time": nullString(s.StartTime),
		"end_time":   nullString(s.EndTime),
		"title":      s.Title,
		"location":   s.Location,
		"memo":       s.Memo,
	}
}

func scanSchedule(s scanner) (domain.Schedule, error) {
	var (
		sc         domain.Schedule
		id, tripID pgtype.UUID
		date       pgtype.Date
		start, end *string
	)
	err := s.Scan(&id, &tripID, &date, &start, &end, &sc.Title, &sc.Location, &sc.Memo, &sc.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Schedule{}, domain.ErrNotFound
		}
		return domain.Schedule{}, err
	}
	sc.ID = uuid.UUID(id.Bytes)
	sc.TripID = uuid.UUID(tripID.Bytes)
	sc.Date = date.Time
	sc.StartTime = derefString(start)
	sc.EndTime = derefString(end)
	return sc, nil
}
