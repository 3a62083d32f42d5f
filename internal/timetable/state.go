package timetable

import "errors"

// StateManager errors.
var (
	ErrNoGrid        = errors.New("no grid loaded")
	ErrNothingToUndo = errors.New("nothing to undo")
)

const defaultMaxHistory = 50

// historyEntry is one undo-able grid state.
type historyEntry struct {
	Description string
	Grid        *Grid
}

// StateManager tracks the saved grid (as last persisted) against the
// working grid (in-memory edits). Grids are immutable, so history and the
// saved/working split are cheap reference snapshots.
type StateManager struct {
	saved   *Grid
	working *Grid

	history    []historyEntry
	maxHistory int

	mutations int // commits/deletes since the last persist
}

// NewStateManager creates an empty state manager.
func NewStateManager() *StateManager {
	return &StateManager{maxHistory: defaultMaxHistory}
}

// SetGrid installs a freshly loaded grid as both saved and working state.
func (sm *StateManager) SetGrid(g *Grid) {
	sm.saved = g
	sm.working = g
	sm.history = nil
	sm.mutations = 0
}

// Grid returns the working grid, or nil before load.
func (sm *StateManager) Grid() *Grid {
	return sm.working
}

// SavedGrid returns the grid as last persisted.
func (sm *StateManager) SavedGrid() *Grid {
	return sm.saved
}

// HasChanges returns true if there are unsaved modifications.
func (sm *StateManager) HasChanges() bool {
	return sm.mutations > 0
}

// Mutations returns the number of commits/deletes since the last persist.
// The page controller uses it to invalidate stale validation results.
func (sm *StateManager) Mutations() int {
	return sm.mutations
}

// Commit places an entry at the cell on the working grid.
func (sm *StateManager) Commit(k Key, e Entry, description string) error {
	if sm.working == nil {
		return ErrNoGrid
	}
	sm.pushHistory(description)
	sm.working = sm.working.Set(k, e)
	sm.mutations++
	return nil
}

// Delete removes the entry at the cell from the working grid.
func (sm *StateManager) Delete(k Key, description string) error {
	if sm.working == nil {
		return ErrNoGrid
	}
	sm.pushHistory(description)
	sm.working = sm.working.Remove(k)
	sm.mutations++
	return nil
}

// Replace swaps in an externally built working grid (draft recovery).
func (sm *StateManager) Replace(g *Grid, description string) error {
	if sm.working == nil {
		return ErrNoGrid
	}
	sm.pushHistory(description)
	sm.working = g
	sm.mutations++
	return nil
}

// CanUndo returns true if there are operations to undo.
func (sm *StateManager) CanUndo() bool {
	return len(sm.history) > 0
}

// Undo reverts the last commit or delete.
func (sm *StateManager) Undo() error {
	if len(sm.history) == 0 {
		return ErrNothingToUndo
	}
	entry := sm.history[len(sm.history)-1]
	sm.history = sm.history[:len(sm.history)-1]
	sm.working = entry.Grid
	sm.mutations++
	return nil
}

// MarkSaved records that the working grid was persisted successfully.
func (sm *StateManager) MarkSaved() {
	sm.saved = sm.working
	sm.history = nil
	sm.mutations = 0
}

// Discard reverts the working grid to the last persisted state.
func (sm *StateManager) Discard() {
	sm.working = sm.saved
	sm.history = nil
	sm.mutations = 0
}

func (sm *StateManager) pushHistory(description string) {
	if len(sm.history) >= sm.maxHistory {
		sm.history = sm.history[1:]
	}
	sm.history = append(sm.history, historyEntry{Description: description, Grid: sm.working})
}
