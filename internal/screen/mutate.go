package screen

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Mutation is one optimistic write on a Screen[T] producing an R.
type Mutation[T, R any] struct {
	// Apply changes the local rows before the write is sent.
	Apply func(items []T) []T
	// Write performs the request for the given trip.
	Write func(ctx context.Context, tripID uuid.UUID) (R, error)
	// Commit patches the rows with the server's answer. Nil keeps Apply's result.
	Commit func(items []T, result R) []T
	// Rollback undoes Apply after a failed write. Nil restores the rows as
	// they were before Apply.
	Rollback func(items []T) []T
}

// Mutate runs m against s for the currently selected trip. A screen still
// showing rows of an earlier selection is re-listed first. On success the rows are patched with Commit. On
// failure they are rolled back and the screen re-lists from the server before
// the error is returned. Writes on one screen never overlap.
func Mutate[T, R any](ctx context.Context, s *Screen[T], m Mutation[T, R]) (R, error) {
	var zero R

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	tripID := s.sel.SelectedID()
	if tripID == uuid.Nil {
		return zero, fmt.Errorf("screen.%s.Mutate: %w", s.name, ErrNoTrip)
	}
	if s.showsOtherTrip(tripID) {
		if err := s.Load(ctx); err != nil {
			return zero, fmt.Errorf("screen.%s.Mutate: %w", s.name, err)
		}
	}

	var before []T
	s.update(tripID, func(items []T) []T {
		before = append([]T(nil), items...)
		if m.Apply == nil {
			return items
		}
		return m.Apply(items)
	})

	result, err := m.Write(ctx, tripID)
	if err != nil {
		s.update(tripID, func(items []T) []T {
			if m.Rollback != nil {
				return m.Rollback(items)
			}
			return before
		})
		s.log.WarnContext(ctx, "write failed; re-fetching", "trip_id", tripID, "error", err)
		if lerr := s.Load(ctx); lerr != nil {
			s.log.WarnContext(ctx, "re-fetch after failed write", "error", lerr)
		}
		return zero, fmt.Errorf("screen.%s.Mutate: %w", s.name, err)
	}

	if m.Commit != nil {
		s.update(tripID, func(items []T) []T { return m.Commit(items, result) })
	}
	return result, nil
}

// replaceWhere returns items with the first element matching match replaced
// by v, or with v appended when nothing matches.
func replaceWhere[T any](items []T, v T, match func(T) bool) []T {
	for i := range items {
		if match(items[i]) {
			items[i] = v
			return items
		}
	}
	return append(items, v)
}

// removeWhere drops every element matching match.
func removeWhere[T any](items []T, match func(T) bool) []T {
	out := items[:0]
	for _, it := range items {
		if !match(it) {
			out = append(out, it)
		}
	}
	return out
}
