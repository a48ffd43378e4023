package tripctx

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/familytrip/tripboard/internal/domain"
)

// Fetcher loads the full trip directory, newest first.
type Fetcher interface {
	FetchAll(ctx context.Context) ([]domain.Trip, error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context) ([]domain.Trip, error)

func (f FetcherFunc) FetchAll(ctx context.Context) ([]domain.Trip, error) { return f(ctx) }

// Store persists the selected trip id across sessions. Load reports ok=false
// when nothing is stored. Context treats any error as "nothing stored".
type Store interface {
	Load(ctx context.Context) (id uuid.UUID, ok bool, err error)
	Save(ctx context.Context, id uuid.UUID) error
	Clear(ctx context.Context) error
}

// MemoryStore keeps the selection in process memory.
type MemoryStore struct {
	mu sync.Mutex
	id uuid.UUID
	ok bool
}

func (m *MemoryStore) Load(context.Context) (uuid.UUID, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.id, m.ok, nil
}

func (m *MemoryStore) Save(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.id, m.ok = id, true
	return nil
}

func (m *MemoryStore) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.id, m.ok = uuid.Nil, false
	return nil
}

// NopStore never stores anything. Use it when local storage is unavailable.
type NopStore struct{}

func (NopStore) Load(context.Context) (uuid.UUID, bool, error) { return uuid.Nil, false, nil }
func (NopStore) Save(context.Context, uuid.UUID) error         { return nil }
func (NopStore) Clear(context.Context) error                   { return nil }
