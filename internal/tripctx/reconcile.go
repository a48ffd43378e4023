// Package tripctx owns the active-trip selection of a tripdash session: which
// trip every screen is looking at, how that choice is restored from the local
// profile, and how it survives directory refreshes.
package tripctx

import (
	"github.com/google/uuid"

	"github.com/familytrip/tripboard/internal/domain"
)

// State names the branch Reconcile took.
type State int

const (
	// StateCold means the directory is empty; the selection is left alone.
	StateCold State = iota
	// StateKept means the selection is present in the directory.
	StateKept
	// StateRestored means the persisted id was adopted.
	StateRestored
	// StateDefaulted means the newest trip was adopted.
	StateDefaulted
	// StateCleared means the caller cleared the selection.
	StateCleared
	// StateOrphaned means the selection is missing from a non-empty directory.
	StateOrphaned
	// StateIdle means nothing is selected and nothing may be adopted.
	StateIdle
)

func (s State) String() string {
	switch s {
	case StateCold:
		return "cold"
	case StateKept:
		return "kept"
	case StateRestored:
		return "restored"
	case StateDefaulted:
		return "defaulted"
	case StateCleared:
		return "cleared"
	case StateOrphaned:
		return "orphaned"
	case StateIdle:
		return "idle"
	}
	return "unknown"
}

// PersistAction tells the caller what to do with the persisted selection.
type PersistAction int

const (
	PersistNone PersistAction = iota
	PersistSave
	PersistClear
)

// Input is everything Reconcile looks at. uuid.Nil means "no selection" for
// both Selected and Persisted.
type Input struct {
	Directory []domain.Trip
	Selected  uuid.UUID
	Persisted uuid.UUID

	// AutoDefault is true while the newest trip may still be adopted: on the
	// first resolution of a session.
	AutoDefault bool
	// DirectoryChanged re-arms AutoDefault. Set it when the directory ids
	// differ from the previous directory.
	DirectoryChanged bool
	// Cleared is set when the caller explicitly cleared the selection.
	Cleared bool
	// RefetchBudget is how many more refetches the current orphan may cause.
	RefetchBudget int
}

// Decision is the outcome of Reconcile.
type Decision struct {
	State    State
	Selected uuid.UUID
	Persist  PersistAction
	Refetch  bool
	// AutoDefault is the armed flag to carry into the next Reconcile.
	AutoDefault bool
}

// Reconcile decides what is selected. It has no side effects; the caller
// applies Persist and performs the refetch.
func Reconcile(in Input) Decision {
	armed := in.AutoDefault || in.DirectoryChanged

	if in.Cleared {
		return Decision{State: StateCleared, Selected: uuid.Nil, Persist: PersistClear}
	}
	if len(in.Directory) == 0 {
		return Decision{State: StateCold, Selected: in.Selected, AutoDefault: armed}
	}

	if in.Selected != uuid.Nil {
		if contains(in.Directory, in.Selected) {
			return Decision{State: StateKept, Selected: in.Selected, Persist: PersistSave}
		}
		return Decision{State: StateOrphaned, Selected: in.Selected, Refetch: in.RefetchBudget > 0}
	}

	if in.Persisted != uuid.Nil && contains(in.Directory, in.Persisted) {
		return Decision{State: StateRestored, Selected: in.Persisted, Persist: PersistSave}
	}
	if armed {
		return Decision{State: StateDefaulted, Selected: in.Directory[0].ID, Persist: PersistSave}
	}
	return Decision{State: StateIdle, Selected: uuid.Nil}
}

func contains(dir []domain.Trip, id uuid.UUID) bool {
	return indexOf(dir, id) >= 0
}

func indexOf(dir []domain.Trip, id uuid.UUID) int {
	for i, t := range dir {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// sameIDs reports whether a and b list the same trip ids in the same order.
func sameIDs(a, b []domain.Trip) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ID != b[i].ID {
			return false
		}
	}
	return true
}
