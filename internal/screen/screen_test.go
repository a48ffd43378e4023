package screen

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/familytrip/tripboard/internal/domain"
)

// selection is a settable Selection.
type selection struct {
	mu sync.Mutex
	id uuid.UUID
}

func (s *selection) SelectedID() uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id
}

func (s *selection) set(id uuid.UUID) {
	s.mu.Lock()
	s.id = id
	s.mu.Unlock()
}

// fakeChecklist is an in-memory ChecklistBackend with switchable failures.
type fakeChecklist struct {
	mu        sync.Mutex
	items     map[uuid.UUID][]domain.ChecklistItem
	lists     int
	failWrite error
	onWrite   func()
}

var _ ChecklistBackend = (*fakeChecklist)(nil)

func newFakeChecklist(tripID uuid.UUID, items ...domain.ChecklistItem) *fakeChecklist {
	return &fakeChecklist{items: map[uuid.UUID][]domain.ChecklistItem{tripID: items}}
}

func (f *fakeChecklist) ListChecklist(_ context.Context, tripID uuid.UUID) ([]domain.ChecklistItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists++
	return append([]domain.ChecklistItem(nil), f.items[tripID]...), nil
}

func (f *fakeChecklist) write() error {
	if f.onWrite != nil {
		f.onWrite()
	}
	return f.failWrite
}

func (f *fakeChecklist) CreateChecklistItem(_ context.Context, it domain.ChecklistItem) (domain.ChecklistItem, error) {
	if err := f.write(); err != nil {
		return domain.ChecklistItem{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	it.ID = uuid.New()
	f.items[it.TripID] = append(f.items[it.TripID], it)
	return it, nil
}

func (f *fakeChecklist) UpdateChecklistItem(_ context.Context, it domain.ChecklistItem) (domain.ChecklistItem, error) {
	return it, f.write()
}

func (f *fakeChecklist) DeleteChecklistItem(_ context.Context, tripID, id uuid.UUID) error {
	if err := f.write(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items[tripID] = removeWhere(f.items[tripID], func(x domain.ChecklistItem) bool { return x.ID == id })
	return nil
}

func (f *fakeChecklist) ToggleChecklistItem(_ context.Context, tripID, id uuid.UUID) (domain.ChecklistItem, error) {
	if err := f.write(); err != nil {
		return domain.ChecklistItem{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, it := range f.items[tripID] {
		if it.ID == id {
			f.items[tripID][i].IsChecked = !it.IsChecked
			return f.items[tripID][i], nil
		}
	}
	return domain.ChecklistItem{}, domain.ErrNotFound
}

func (f *fakeChecklist) listCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lists
}

func item(tripID uuid.UUID, label string) domain.ChecklistItem {
	return domain.ChecklistItem{ID: uuid.New(), TripID: tripID, Category: "docs", Label: label}
}

func TestScreen_NoSelectionMakesNoQuery(t *testing.T) {
	sel := &selection{}
	backend := newFakeChecklist(uuid.New())
	v := NewChecklist(sel, backend, nil)

	require.NoError(t, v.Load(context.Background()))

	assert.True(t, v.Empty())
	assert.Empty(t, v.Items())
	assert.Equal(t, 0, backend.listCalls())

	_, err := v.Toggle(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNoTrip)
}

func TestScreen_LoadListsSelectedTrip(t *testing.T) {
	tripID := uuid.New()
	sel := &selection{id: tripID}
	backend := newFakeChecklist(tripID, item(tripID, "passport"), item(tripID, "charger"))
	v := NewChecklist(sel, backend, nil)

	require.NoError(t, v.Load(context.Background()))

	assert.False(t, v.Empty())
	assert.Equal(t, tripID, v.TripID())
	assert.Len(t, v.Items(), 2)
}

func TestScreen_DiscardsResultForPreviousSelection(t *testing.T) {
	first, second := uuid.New(), uuid.New()
	sel := &selection{id: first}
	v := New[string]("test", sel, func(_ context.Context, tripID uuid.UUID) ([]string, error) {
		sel.set(second) // the user switched trips while this request was in flight
		return []string{tripID.String()}, nil
	}, nil)

	require.NoError(t, v.Load(context.Background()))

	assert.Empty(t, v.Items())
	assert.Equal(t, uuid.Nil, v.TripID())
}

func TestScreen_ClosedScreenDiscardsLateResult(t *testing.T) {
	tripID := uuid.New()
	release := make(chan struct{})
	v := New[string]("test", &selection{id: tripID}, func(context.Context, uuid.UUID) ([]string, error) {
		<-release
		return []string{"late"}, nil
	}, nil)

	done := make(chan error)
	go func() { done <- v.Load(context.Background()) }()
	v.Close()
	close(release)

	require.NoError(t, <-done)
	assert.Empty(t, v.Items())
}

func TestScreen_LoadError(t *testing.T) {
	boom := errors.New("backend down")
	v := New[string]("test", &selection{id: uuid.New()}, func(context.Context, uuid.UUID) ([]string, error) {
		return nil, boom
	}, nil)

	err := v.Load(context.Background())

	assert.ErrorIs(t, err, boom)
}

func TestMutate_OptimisticThenCommit(t *testing.T) {
	tripID := uuid.New()
	passport := item(tripID, "passport")
	backend := newFakeChecklist(tripID, passport)
	v := NewChecklist(&selection{id: tripID}, backend, nil)
	require.NoError(t, v.Load(context.Background()))

	backend.onWrite = func() {
		// The optimistic change is visible while the request is in flight.
		assert.True(t, v.Items()[0].IsChecked)
	}
	got, err := v.Toggle(context.Background(), passport.ID)

	require.NoError(t, err)
	assert.True(t, got.IsChecked)
	assert.True(t, v.Items()[0].IsChecked)
	assert.Equal(t, 1, backend.listCalls(), "success needs no re-fetch")
}

func TestMutate_RollbackAndRefetchOnError(t *testing.T) {
	tripID := uuid.New()
	passport := item(tripID, "passport")
	backend := newFakeChecklist(tripID, passport)
	v := NewChecklist(&selection{id: tripID}, backend, nil)
	require.NoError(t, v.Load(context.Background()))

	boom := errors.New("write rejected")
	backend.failWrite = boom
	_, err := v.Toggle(context.Background(), passport.ID)

	require.ErrorIs(t, err, boom)
	require.Len(t, v.Items(), 1)
	assert.False(t, v.Items()[0].IsChecked, "optimistic change rolled back")
	assert.Equal(t, 2, backend.listCalls(), "failed write triggers a re-fetch")
}

func TestMutate_CustomRollback(t *testing.T) {
	tripID := uuid.New()
	v := New[int]("numbers", &selection{id: tripID}, func(context.Context, uuid.UUID) ([]int, error) {
		return []int{1, 2}, nil
	}, nil)
	require.NoError(t, v.Load(context.Background()))

	var rolledBack bool
	_, err := Mutate(context.Background(), v, Mutation[int, int]{
		Apply: func(items []int) []int { return append(items, 3) },
		Write: func(context.Context, uuid.UUID) (int, error) { return 0, errors.New("nope") },
		Rollback: func(items []int) []int {
			rolledBack = true
			return items[:len(items)-1]
		},
	})

	require.Error(t, err)
	assert.True(t, rolledBack)
	assert.Equal(t, []int{1, 2}, v.Items())
}

func TestMutate_AddReplacesDraft(t *testing.T) {
	tripID := uuid.New()
	backend := newFakeChecklist(tripID)
	v := NewChecklist(&selection{id: tripID}, backend, nil)
	require.NoError(t, v.Load(context.Background()))

	backend.onWrite = func() {
		items := v.Items()
		require.Len(t, items, 1)
		assert.Equal(t, uuid.Nil, items[0].ID, "draft has no id yet")
	}
	created, err := v.Add(context.Background(), domain.ChecklistItem{Category: "docs", Label: "visa"})

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, tripID, created.TripID)
	assert.Equal(t, []domain.ChecklistItem{created}, v.Items())
}

func TestMutate_WritesFollowSelectionChange(t *testing.T) {
	first, second := uuid.New(), uuid.New()
	sel := &selection{id: first}
	backend := newFakeChecklist(first, item(first, "passport"))
	backend.items[second] = []domain.ChecklistItem{item(second, "sunscreen")}
	v := NewChecklist(sel, backend, nil)
	require.NoError(t, v.Load(context.Background()))

	sel.set(second)
	created, err := v.Add(context.Background(), domain.ChecklistItem{Category: "docs", Label: "visa"})

	require.NoError(t, err)
	assert.Equal(t, second, created.TripID)
	assert.Equal(t, second, v.TripID())
	require.Len(t, v.Items(), 2)
	assert.Equal(t, "sunscreen", v.Items()[0].Label)
	assert.Equal(t, created, v.Items()[1])
	assert.Len(t, backend.items[first], 1, "earlier trip untouched")
}

func TestMutate_WithoutLoadWritesToSelection(t *testing.T) {
	tripID := uuid.New()
	backend := newFakeChecklist(tripID)
	v := NewChecklist(&selection{id: tripID}, backend, nil)

	created, err := v.Add(context.Background(), domain.ChecklistItem{Category: "docs", Label: "visa"})

	require.NoError(t, err)
	assert.Equal(t, tripID, created.TripID)
	assert.Equal(t, 0, backend.listCalls())
}

func TestMutate_RemoveFailureRestoresItem(t *testing.T) {
	tripID := uuid.New()
	a, b := item(tripID, "a"), item(tripID, "b")
	backend := newFakeChecklist(tripID, a, b)
	v := NewChecklist(&selection{id: tripID}, backend, nil)
	require.NoError(t, v.Load(context.Background()))

	backend.failWrite = domain.ErrNotFound
	err := v.Remove(context.Background(), a.ID)

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, []domain.ChecklistItem{a, b}, v.Items())
}

func TestMutate_WritesAreSerialized(t *testing.T) {
	tripID := uuid.New()
	v := New[int]("numbers", &selection{id: tripID}, func(context.Context, uuid.UUID) ([]int, error) {
		return nil, nil
	}, nil)
	require.NoError(t, v.Load(context.Background()))

	var inFlight, maxInFlight atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, err := Mutate(context.Background(), v, Mutation[int, int]{
				Apply: func(items []int) []int { return append(items, n) },
				Write: func(context.Context, uuid.UUID) (int, error) {
					cur := inFlight.Add(1)
					for {
						prev := maxInFlight.Load()
						if cur <= prev || maxInFlight.CompareAndSwap(prev, cur) {
							break
						}
					}
					time.Sleep(time.Millisecond)
					inFlight.Add(-1)
					return n, nil
				},
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxInFlight.Load())
	assert.Len(t, v.Items(), 8)
}
