package tripctx

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/familytrip/tripboard/internal/domain"
)

// Snapshot is a consistent view of a Context at one instant.
type Snapshot struct {
	SelectedID   uuid.UUID
	SelectedTrip *domain.Trip
	Trips        []domain.Trip
	Loading      bool
	State        State
}

// Context is the one shared selection of a session. Build it once and hand
// the pointer to every screen. All methods are safe for concurrent use; the
// lock is never held while fetching.
type Context struct {
	fetcher     Fetcher
	store       Store
	log         *slog.Logger
	maxRefetch  int
	mu          sync.Mutex
	trips       []domain.Trip
	selected    uuid.UUID
	loading     bool
	fetched     bool
	autoDefault bool
	decided     bool // a non-cold decision was made; the store is no longer read
	state       State
	orphanID    uuid.UUID
	orphanUsed  int
	subs        map[int]func(Snapshot)
	nextSub     int
}

// Option customizes a Context.
type Option func(*Context)

// WithLogger sets the logger for fetch and storage failures.
func WithLogger(l *slog.Logger) Option { return func(c *Context) { c.log = l } }

// WithOrphanRefetches caps the extra directory fetches a single orphaned
// selection may trigger. The default is 1.
func WithOrphanRefetches(n int) Option { return func(c *Context) { c.maxRefetch = n } }

// New returns a Context that is loading and has nothing selected. A nil
// store behaves like NopStore.
func New(fetcher Fetcher, store Store, opts ...Option) *Context {
	if store == nil {
		store = NopStore{}
	}
	c := &Context{
		fetcher:     fetcher,
		store:       store,
		log:         slog.Default(),
		maxRefetch:  1,
		loading:     true,
		autoDefault: true,
		state:       StateCold,
		subs:        make(map[int]func(Snapshot)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SelectedID returns the selected trip id, or uuid.Nil.
func (c *Context) SelectedID() uuid.UUID {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selected
}

// SelectedTrip returns the selected trip, or nil when nothing is selected or
// the selection is not in the directory.
func (c *Context) SelectedTrip() *domain.Trip {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selectedTripLocked()
}

// Trips returns a copy of the directory.
func (c *Context) Trips() []domain.Trip {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]domain.Trip(nil), c.trips...)
}

// Loading is true until the first directory fetch finishes, successfully
// or not.
func (c *Context) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Snapshot returns the selection, directory and loading flag read under one
// lock.
func (c *Context) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Subscribe registers fn to run after every state change, on the goroutine
// that made the change. Call the returned func to unsubscribe.
func (c *Context) Subscribe(fn func(Snapshot)) (cancel func()) {
	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.subs, id)
			c.mu.Unlock()
		})
	}
}

// Refresh fetches the directory and reconciles the selection against it.
// An orphaned selection may trigger further fetches, up to the orphan
// refetch cap. On error the previous directory and selection are kept.
func (c *Context) Refresh(ctx context.Context) error {
	for {
		trips, err := c.fetcher.FetchAll(ctx)
		if err != nil {
			c.log.ErrorContext(ctx, "fetch trip directory", "error", err)
			c.mu.Lock()
			changed := c.loading
			c.loading = false
			c.fetched = true
			snap, subs := c.snapshotLocked(), c.subscribersLocked()
			c.mu.Unlock()
			if changed {
				notify(subs, snap)
			}
			return fmt.Errorf("tripctx.Context.Refresh: %w", err)
		}

		if !c.applyDirectory(ctx, trips) {
			return nil
		}
	}
}

// Select makes id the active trip. uuid.Nil clears the selection, which also
// stops the newest trip from being picked automatically until the directory
// changes. Selecting an id missing from the directory triggers a refresh.
func (c *Context) Select(ctx context.Context, id uuid.UUID) error {
	c.mu.Lock()
	in := Input{
		Directory:   c.trips,
		Selected:    id,
		AutoDefault: c.autoDefault,
		Cleared:     id == uuid.Nil,
	}
	in.RefetchBudget = c.budgetLocked(id)
	d := Reconcile(in)
	c.commitLocked(ctx, d)
	snap, subs := c.snapshotLocked(), c.subscribersLocked()
	c.mu.Unlock()

	notify(subs, snap)

	if d.Refetch {
		return c.Refresh(ctx)
	}
	return nil
}

// applyDirectory installs a fetched directory and reconciles. It reports
// whether another fetch is wanted.
func (c *Context) applyDirectory(ctx context.Context, trips []domain.Trip) bool {
	c.mu.Lock()
	changed := c.fetched && !sameIDs(c.trips, trips)
	c.trips = trips
	c.loading = false
	c.fetched = true

	in := Input{
		Directory:        trips,
		Selected:         c.selected,
		AutoDefault:      c.autoDefault,
		DirectoryChanged: changed,
		RefetchBudget:    c.budgetLocked(c.selected),
	}
	if !c.decided && c.selected == uuid.Nil && len(trips) > 0 {
		in.Persisted = c.loadPersistedLocked(ctx)
	}
	d := Reconcile(in)
	c.commitLocked(ctx, d)
	snap, subs := c.snapshotLocked(), c.subscribersLocked()
	c.mu.Unlock()

	notify(subs, snap)
	return d.Refetch
}

// commitLocked applies a decision to the in-memory and persisted selection.
func (c *Context) commitLocked(ctx context.Context, d Decision) {
	c.selected = d.Selected
	c.autoDefault = d.AutoDefault
	c.state = d.State
	if d.State != StateCold {
		c.decided = true
	}

	if d.State == StateOrphaned {
		if d.Refetch {
			c.orphanUsed++
		}
		c.orphanID = d.Selected
	} else {
		c.orphanID, c.orphanUsed = uuid.Nil, 0
	}

	switch d.Persist {
	case PersistSave:
		if err := c.store.Save(ctx, d.Selected); err != nil {
			c.log.WarnContext(ctx, "save selected trip", "trip_id", d.Selected, "error", err)
		}
	case PersistClear:
		if err := c.store.Clear(ctx); err != nil {
			c.log.WarnContext(ctx, "clear selected trip", "error", err)
		}
	}
	if d.State != StateCold {
		c.log.DebugContext(ctx, "trip selection reconciled", "state", d.State.String(), "trip_id", d.Selected)
	}
}

// budgetLocked returns how many refetches id may still trigger as an orphan.
func (c *Context) budgetLocked(id uuid.UUID) int {
	if id == c.orphanID {
		return c.maxRefetch - c.orphanUsed
	}
	return c.maxRefetch
}

func (c *Context) loadPersistedLocked(ctx context.Context) uuid.UUID {
	id, ok, err := c.store.Load(ctx)
	if err != nil {
		c.log.WarnContext(ctx, "load selected trip", "error", err)
		return uuid.Nil
	}
	if !ok {
		return uuid.Nil
	}
	return id
}

func (c *Context) selectedTripLocked() *domain.Trip {
	if c.selected == uuid.Nil {
		return nil
	}
	i := indexOf(c.trips, c.selected)
	if i < 0 {
		return nil
	}
	t := c.trips[i]
	return &t
}

func (c *Context) snapshotLocked() Snapshot {
	return Snapshot{
		SelectedID:   c.selected,
		SelectedTrip: c.selectedTripLocked(),
		Trips:        append([]domain.Trip(nil), c.trips...),
		Loading:      c.loading,
		State:        c.state,
	}
}

func (c *Context) subscribersLocked() []func(Snapshot) {
	out := make([]func(Snapshot), 0, len(c.subs))
	for _, fn := range c.subs {
		out = append(out, fn)
	}
	return out
}

func notify(subs []func(Snapshot), snap Snapshot) {
	for _, fn := range subs {
		fn(snap)
	}
}
