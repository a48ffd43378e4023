package tripctx

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/familytrip/tripboard/internal/domain"
)

// scriptedFetcher returns its responses in order, repeating the last one.
type scriptedFetcher struct {
	mu        sync.Mutex
	responses []fetchResult
	calls     int
}

type fetchResult struct {
	trips []domain.Trip
	err   error
}

func (f *scriptedFetcher) FetchAll(context.Context) ([]domain.Trip, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.calls
	if i >= len(f.responses) {
		i = len(f.responses) - 1
	}
	f.calls++
	r := f.responses[i]
	return r.trips, r.err
}

func (f *scriptedFetcher) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func serve(results ...fetchResult) *scriptedFetcher {
	return &scriptedFetcher{responses: results}
}

func ok(trips []domain.Trip) fetchResult { return fetchResult{trips: trips} }

// failingStore fails every operation.
type failingStore struct{}

func (failingStore) Load(context.Context) (uuid.UUID, bool, error) {
	return uuid.Nil, false, errors.New("storage disabled")
}
func (failingStore) Save(context.Context, uuid.UUID) error { return errors.New("storage disabled") }
func (failingStore) Clear(context.Context) error           { return errors.New("storage disabled") }

var _ Store = (*MemoryStore)(nil)
var _ Store = NopStore{}
var _ Store = failingStore{}

func stored(t *testing.T, s Store) (uuid.UUID, bool) {
	t.Helper()
	id, found, err := s.Load(context.Background())
	require.NoError(t, err)
	return id, found
}

func TestContext_InitialResolutionSelectsNewest(t *testing.T) {
	dir := directory(3)
	store := &MemoryStore{}
	c := New(serve(ok(dir)), store)

	assert.True(t, c.Loading())
	require.NoError(t, c.Refresh(context.Background()))

	assert.False(t, c.Loading())
	assert.Equal(t, dir[0].ID, c.SelectedID())
	require.NotNil(t, c.SelectedTrip())
	assert.Equal(t, dir[0].ID, c.SelectedTrip().ID)
	assert.Equal(t, StateDefaulted, c.Snapshot().State)

	id, found := stored(t, store)
	assert.True(t, found)
	assert.Equal(t, dir[0].ID, id)
}

func TestContext_InitialResolutionRestoresPersisted(t *testing.T) {
	dir := directory(3)
	store := &MemoryStore{}
	require.NoError(t, store.Save(context.Background(), dir[1].ID))

	c := New(serve(ok(dir)), store)
	require.NoError(t, c.Refresh(context.Background()))

	assert.Equal(t, dir[1].ID, c.SelectedID())
	assert.Equal(t, StateRestored, c.Snapshot().State)
}

func TestContext_StalePersistedFallsBackToNewest(t *testing.T) {
	dir := directory(2)
	store := &MemoryStore{}
	require.NoError(t, store.Save(context.Background(), uuid.New()))

	c := New(serve(ok(dir)), store)
	require.NoError(t, c.Refresh(context.Background()))

	assert.Equal(t, dir[0].ID, c.SelectedID())
	id, _ := stored(t, store)
	assert.Equal(t, dir[0].ID, id)
}

func TestContext_RefreshKeepsPresentSelection(t *testing.T) {
	dir := directory(3)
	newer := directory(1)
	grown := append(newer, dir...)
	c := New(serve(ok(dir), ok(grown)), &MemoryStore{})

	require.NoError(t, c.Refresh(context.Background()))
	require.NoError(t, c.Select(context.Background(), dir[2].ID))
	require.NoError(t, c.Refresh(context.Background()))

	assert.Equal(t, dir[2].ID, c.SelectedID(), "a new newest trip must not steal the selection")
	assert.Len(t, c.Trips(), 4)
}

func TestContext_OrphanTriggersExactlyOneRefetch(t *testing.T) {
	dir := directory(3)
	fetcher := serve(ok(dir))
	c := New(fetcher, &MemoryStore{})
	require.NoError(t, c.Refresh(context.Background()))
	require.Equal(t, 1, fetcher.Calls())

	t5 := uuid.New()
	require.NoError(t, c.Select(context.Background(), t5))
	assert.Equal(t, 2, fetcher.Calls(), "one extra fetch for the orphan")
	assert.Equal(t, t5, c.SelectedID(), "orphaned selection is not replaced")
	assert.Nil(t, c.SelectedTrip())
	assert.Equal(t, StateOrphaned, c.Snapshot().State)

	require.NoError(t, c.Refresh(context.Background()))
	assert.Equal(t, 3, fetcher.Calls(), "no further extra fetches for the same orphan")
}

func TestContext_OrphanOnRefreshFetchesOnceMore(t *testing.T) {
	dir := directory(3)
	fetcher := serve(ok(nil), ok(dir))
	c := New(fetcher, &MemoryStore{})

	// Empty directory: the choice is held until trips arrive.
	t5 := uuid.New()
	require.NoError(t, c.Refresh(context.Background()))
	require.NoError(t, c.Select(context.Background(), t5))
	assert.Equal(t, StateCold, c.Snapshot().State)
	require.Equal(t, 1, fetcher.Calls())

	require.NoError(t, c.Refresh(context.Background()))
	assert.Equal(t, 3, fetcher.Calls(), "the refresh plus one orphan refetch")
	assert.Equal(t, t5, c.SelectedID())
}

func TestContext_OrphanResolvedByRefetch(t *testing.T) {
	dir := directory(2)
	created := directory(1)
	fetcher := serve(ok(dir), ok(dir), ok(append(created, dir...)))
	store := &MemoryStore{}
	c := New(fetcher, store)
	require.NoError(t, c.Refresh(context.Background()))

	require.NoError(t, c.Refresh(context.Background()))
	// The directory still misses the new trip; the orphan refetch finds it.
	require.NoError(t, c.Select(context.Background(), created[0].ID))

	assert.Equal(t, 3, fetcher.Calls())
	assert.Equal(t, created[0].ID, c.SelectedID())
	assert.Equal(t, StateKept, c.Snapshot().State)
	id, _ := stored(t, store)
	assert.Equal(t, created[0].ID, id)
}

func TestContext_ClearHoldsUntilDirectoryChanges(t *testing.T) {
	dir := directory(3)
	newer := directory(1)
	fetcher := serve(ok(dir), ok(dir), ok(dir), ok(append(newer, dir...)))
	store := &MemoryStore{}
	c := New(fetcher, store)
	require.NoError(t, c.Refresh(context.Background()))
	require.Equal(t, dir[0].ID, c.SelectedID())

	require.NoError(t, c.Select(context.Background(), uuid.Nil))
	assert.Equal(t, uuid.Nil, c.SelectedID())
	assert.Equal(t, StateCleared, c.Snapshot().State)
	_, found := stored(t, store)
	assert.False(t, found)

	for i := 0; i < 2; i++ {
		require.NoError(t, c.Refresh(context.Background()))
		assert.Equal(t, uuid.Nil, c.SelectedID(), "unchanged directory keeps the selection clear")
		assert.Equal(t, StateIdle, c.Snapshot().State)
	}

	require.NoError(t, c.Refresh(context.Background()))
	assert.Equal(t, newer[0].ID, c.SelectedID(), "a changed directory re-arms the default")
}

func TestContext_ClearIgnoresValueStoredLater(t *testing.T) {
	dir := directory(3)
	store := &MemoryStore{}
	c := New(serve(ok(dir)), store)
	ctx := context.Background()
	require.NoError(t, c.Refresh(ctx))
	require.NoError(t, c.Select(ctx, uuid.Nil))

	// Another tripdash process sharing the profile stores a selection.
	require.NoError(t, store.Save(ctx, dir[2].ID))
	require.NoError(t, c.Refresh(ctx))

	snap := c.Snapshot()
	assert.Equal(t, uuid.Nil, snap.SelectedID)
	assert.Equal(t, StateIdle, snap.State)
}

func TestContext_FailedFetchKeepsState(t *testing.T) {
	dir := directory(2)
	boom := errors.New("network down")
	fetcher := serve(ok(dir), fetchResult{err: boom})
	c := New(fetcher, &MemoryStore{})
	require.NoError(t, c.Refresh(context.Background()))
	require.NoError(t, c.Select(context.Background(), dir[1].ID))

	err := c.Refresh(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, dir[1].ID, c.SelectedID())
	assert.Len(t, c.Trips(), 2)
	assert.False(t, c.Loading())
}

func TestContext_FirstFetchFailureClearsLoading(t *testing.T) {
	c := New(serve(fetchResult{err: errors.New("offline")}), nil)

	require.Error(t, c.Refresh(context.Background()))
	assert.False(t, c.Loading())
	assert.Empty(t, c.Trips())
	assert.Equal(t, uuid.Nil, c.SelectedID())
}

func TestContext_FailingStoreIsTreatedAsAbsent(t *testing.T) {
	dir := directory(2)
	c := New(serve(ok(dir)), failingStore{})

	require.NoError(t, c.Refresh(context.Background()))
	assert.Equal(t, dir[0].ID, c.SelectedID())

	require.NoError(t, c.Select(context.Background(), dir[1].ID))
	assert.Equal(t, dir[1].ID, c.SelectedID())
	require.NoError(t, c.Select(context.Background(), uuid.Nil))
	assert.Equal(t, uuid.Nil, c.SelectedID())
}

func TestContext_OrphanRefetchCapIsConfigurable(t *testing.T) {
	dir := directory(1)
	fetcher := serve(ok(dir))
	c := New(fetcher, nil, WithOrphanRefetches(3))
	require.NoError(t, c.Refresh(context.Background()))

	require.NoError(t, c.Select(context.Background(), uuid.New()))
	assert.Equal(t, 4, fetcher.Calls())
}

func TestContext_Subscribe(t *testing.T) {
	dir := directory(2)
	c := New(serve(ok(dir)), nil)

	var got []Snapshot
	cancel := c.Subscribe(func(s Snapshot) { got = append(got, s) })

	require.NoError(t, c.Refresh(context.Background()))
	require.Len(t, got, 1)
	assert.False(t, got[0].Loading)
	assert.Equal(t, dir[0].ID, got[0].SelectedID)

	require.NoError(t, c.Select(context.Background(), dir[1].ID))
	require.Len(t, got, 2)
	assert.Equal(t, dir[1].ID, got[1].SelectedID)
	require.NotNil(t, got[1].SelectedTrip)

	cancel()
	cancel()
	require.NoError(t, c.Select(context.Background(), uuid.Nil))
	assert.Len(t, got, 2)
}

func TestContext_ConcurrentUse(t *testing.T) {
	dir := directory(4)
	c := New(serve(ok(dir)), &MemoryStore{})

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			switch i % 4 {
			case 0:
				_ = c.Refresh(context.Background())
			case 1:
				_ = c.Select(context.Background(), dir[i%len(dir)].ID)
			case 2:
				_ = c.Snapshot()
			default:
				_ = c.SelectedTrip()
			}
		}(i)
	}
	wg.Wait()

	require.NoError(t, c.Refresh(context.Background()))
	assert.Len(t, c.Trips(), 4)
	assert.False(t, c.Loading())
}
