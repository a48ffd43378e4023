// Package screen holds the per-relation views of tripdash. Each screen follows
// the shared trip selection, lists its own rows for the selected trip and
// writes through Mutate, which applies changes optimistically.
package screen

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// ErrNoTrip is returned by writes attempted while no trip is selected.
var ErrNoTrip = errors.New("no trip selected")

// Selection is the part of tripctx.Context a screen reads.
type Selection interface {
	SelectedID() uuid.UUID
}

// Lister loads the rows of one relation for a trip.
type Lister[T any] func(ctx context.Context, tripID uuid.UUID) ([]T, error)

// Screen is a list of T bound to the selected trip.
type Screen[T any] struct {
	name string
	sel  Selection
	list Lister[T]
	log  *slog.Logger

	writeMu sync.Mutex // one write (and its follow-up) at a time

	mu     sync.Mutex
	tripID uuid.UUID
	items  []T
	loaded bool
	closed bool
}

// New builds a screen called name (used in logs). A nil log uses slog.Default.
func New[T any](name string, sel Selection, list Lister[T], log *slog.Logger) *Screen[T] {
	if log == nil {
		log = slog.Default()
	}
	return &Screen[T]{name: name, sel: sel, list: list, log: log.With("screen", name)}
}

// Load reads the selected trip id and lists its rows. With no trip selected
// the screen is emptied and no query is made. Results that arrive after the
// screen was closed, or after the selection moved on, are dropped.
func (s *Screen[T]) Load(ctx context.Context) error {
	tripID := s.sel.SelectedID()
	if tripID == uuid.Nil {
		s.mu.Lock()
		s.tripID, s.items, s.loaded = uuid.Nil, nil, true
		s.mu.Unlock()
		return nil
	}

	items, err := s.list(ctx, tripID)
	if err != nil {
		s.log.ErrorContext(ctx, "load failed", "trip_id", tripID, "error", err)
		return fmt.Errorf("screen.%s.Load: %w", s.name, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.sel.SelectedID() != tripID {
		s.log.DebugContext(ctx, "discarding stale load", "trip_id", tripID)
		return nil
	}
	s.tripID, s.items, s.loaded = tripID, items, true
	return nil
}

// Items returns a copy of the current rows.
func (s *Screen[T]) Items() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]T(nil), s.items...)
}

// TripID is the trip the rows belong to, or uuid.Nil.
func (s *Screen[T]) TripID() uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tripID
}

// Empty reports whether the screen is showing the "no trip selected" state.
func (s *Screen[T]) Empty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded && s.tripID == uuid.Nil
}

// Close stops the screen from accepting further results.
func (s *Screen[T]) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
}

// showsOtherTrip reports whether the screen holds rows listed for a trip other
// than tripID.
func (s *Screen[T]) showsOtherTrip(tripID uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded && s.tripID != tripID
}

// update replaces the rows through fn, unless the screen has since closed or
// switched trips.
func (s *Screen[T]) update(tripID uuid.UUID, fn func([]T) []T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.tripID != tripID {
		return
	}
	s.items = fn(append([]T(nil), s.items...))
}
