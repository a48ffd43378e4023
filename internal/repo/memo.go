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

// MemoRepo defines the persistence operations for Memos.
type MemoRepo interface {
	Create(ctx context.Context, m domain.Memo) (domain.Memo, error)
	GetByID(ctx context.Context, tripID, id uuid.UUID) (domain.Memo, error)

	// ListByTripID returns memos most recently edited first.
	ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Memo, error)

	// Update overwrites title and content and bumps updated_at.
	Update(ctx context.Context, m domain.Memo) (domain.Memo, error)
	Delete(ctx context.Context, tripID, id uuid.UUID) error
}

type pgMemoRepo struct {
	db db
}

// NewMemoRepo constructs a MemoRepo backed by the provided db connection.
func NewMemoRepo(db db) MemoRepo {
	return &pgMemoRepo{db: db}
}

const memoColumns = `id, trip_id, title, content, created_at, updated_at`

func (r *pgMemoRepo) Create(ctx context.Context, m domain.Memo) (domain.Memo, error) {
	const q = `
		INSERT INTO memos (trip_id, title, content)
		VALUES (@trip_id, @title, @content)
		RETURNING ` + memoColumns

	args := pgx.NamedArgs{"trip_id": m.TripID, "title": m.Title, "content": nullString(m.Content)}
	result, err := scanMemo(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Memo{}, fmt.Errorf("repo.MemoRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgMemoRepo) GetByID(ctx context.Context, tripID, id uuid.UUID) (domain.Memo, error) {
	const q = `SELECT ` + memoColumns + ` FROM memos WHERE id = @id AND trip_id = @trip_id`

	result, err := scanMemo(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "trip_id": tripID}))
	if err != nil {
		return domain.Memo{}, fmt.Errorf("repo.MemoRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgMemoRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Memo, error) {
	const q = `
		SELECT ` + memoColumns + `
		FROM memos
		WHERE trip_id = @trip_id
		ORDER BY updated_at DESC, created_at DESC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.MemoRepo.ListByTripID: %w", err)
	}
	out, err := collect(rows, scanMemo)
	if err != nil {
		return nil, fmt.Errorf("repo.MemoRepo.ListByTripID: %w", err)
	}
	return out, nil
}

func (r *pgMemoRepo) Update(ctx context.Context, m domain.Memo) (domain.Memo, error) {
	const q = `
		UPDATE memos
		SET title      = @title,
		    content    = @content,
		    updated_at = now()
		WHERE id = @id AND trip_id = @trip_id
		RETURNING ` + memoColumns

	args := pgx.NamedArgs{"id": m.ID, "trip_id": m.TripID, "title": m.Title, "content": nullString(m.Content)}
	result, err := scanMemo(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Memo{}, fmt.Errorf("repo.MemoRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgMemoRepo) Delete(ctx context.Context, tripID, id uuid.UUID) error {
	const q = `DELETE FROM memos WHERE id = @id AND trip_id = @trip_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id, "trip_id": tripID})
	if err != nil {
		return fmt.Errorf("repo.MemoRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.MemoRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func scanMemo(s scanner) (domain.Memo, error) {
	var (
		m          domain.Memo
		id, tripID pgtype.UUID
		content    *string
	)
	err := s.Scan(&id, &tripID, &m.Title, &content, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Memo{}, domain.ErrNotFound
		}
		return domain.Memo{}, err
	}
	m.ID = uuid.UUID(id.Bytes)
	m.TripID = uuid.UUID(tripID.Bytes)
	m.Content = derefString(content)
	return m, nil
}
