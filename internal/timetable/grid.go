package timetable

import (
	"fmt"
	"sort"
)

// WireSubject is the flat subject shape the backend stores per entry.
type WireSubject struct {
	ID   int64  `json:"id"`
	Name string `json:"subject_name"`
	Code string `json:"subject_code"`
}

// WireTeacher is the flat teacher shape the backend stores per entry.
type WireTeacher struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// WireEntry is the persisted cell shape, keyed by the string wire key.
type WireEntry struct {
	Subject   WireSubject `json:"subject"`
	Teacher   WireTeacher `json:"teacher"`
	TeacherID int64       `json:"teacher_id"`
	Room      string      `json:"room"`
	Type      string      `json:"type"`
}

// Grid is the authoritative in-memory mapping of assigned entries over the
// fixed (weekday x slot) address space. It is immutable: Set and Remove
// return a new grid, so saved and working states can share structure.
//
// Operations are total functions over valid keys. Both days and slots are
// drawn from the fixed sequences supplied at load time; addressing a cell
// outside them is a programming error and panics.
type Grid struct {
	slots   []TimeSlot
	entries map[Key]Entry
}

// NewGrid creates an empty grid over the given slot sequence.
func NewGrid(slots []TimeSlot) *Grid {
	g := &Grid{
		slots:   make([]TimeSlot, len(slots)),
		entries: make(map[Key]Entry),
	}
	copy(g.slots, slots)
	for i := range g.slots {
		g.slots[i].Normalize()
	}
	return g
}

// Slots returns the ordered slot sequence.
func (g *Grid) Slots() []TimeSlot {
	out := make([]TimeSlot, len(g.slots))
	copy(out, g.slots)
	return out
}

// SlotByDisplay returns the slot with the given time display.
func (g *Grid) SlotByDisplay(display string) (TimeSlot, bool) {
	for _, s := range g.slots {
		if s.Display == display {
			return s, true
		}
	}
	return TimeSlot{}, false
}

// validKey reports whether the key addresses a loaded cell.
func (g *Grid) validKey(k Key) bool {
	if !k.Day.Valid() {
		return false
	}
	_, ok := g.SlotByDisplay(k.Display)
	return ok
}

func (g *Grid) mustValidKey(k Key) {
	if !g.validKey(k) {
		panic(fmt.Sprintf("timetable: key %q outside the loaded grid", k.WireKey()))
	}
}

// EntryAt returns the entry occupying the cell, if any. No side effects.
func (g *Grid) EntryAt(k Key) (Entry, bool) {
	g.mustValidKey(k)
	e, ok := g.entries[k]
	return e, ok
}

// Set places a complete entry at the cell, overwriting any existing one.
// Partial merges never happen; a save always supplies a whole entry.
func (g *Grid) Set(k Key, e Entry) *Grid {
	g.mustValidKey(k)
	ng := g.clone()
	ng.entries[k] = e
	return ng
}

// Remove clears the cell. Removing an absent key is a no-op, not an error.
func (g *Grid) Remove(k Key) *Grid {
	g.mustValidKey(k)
	if _, ok := g.entries[k]; !ok {
		return g
	}
	ng := g.clone()
	delete(ng.entries, k)
	return ng
}

// Len returns the number of assigned entries.
func (g *Grid) Len() int {
	return len(g.entries)
}

// Keys returns the assigned cell addresses in stable wire-key order.
func (g *Grid) Keys() []Key {
	keys := make([]Key, 0, len(g.entries))
	for k := range g.entries {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Day != keys[j].Day {
			return keys[i].Day < keys[j].Day
		}
		return keys[i].Display < keys[j].Display
	})
	return keys
}

func (g *Grid) clone() *Grid {
	ng := &Grid{
		slots:   g.slots, // slot sequence is fixed, safe to share
		entries: make(map[Key]Entry, len(g.entries)),
	}
	for k, e := range g.entries {
		ng.entries[k] = e
	}
	return ng
}

// Serialize translates the grid into the flat wire shape the backend
// expects: string keys and per-entry subject/teacher/teacher_id/room/type.
func (g *Grid) Serialize() map[string]WireEntry {
	out := make(map[string]WireEntry, len(g.entries))
	for k, e := range g.entries {
		out[k.WireKey()] = WireEntry{
			Subject: WireSubject{
				ID:   e.Subject.ID,
				Name: e.Subject.Name,
				Code: e.Subject.Code,
			},
			Teacher: WireTeacher{
				ID:        e.Teacher.ID,
				FirstName: e.Teacher.FirstName,
				LastName:  e.Teacher.LastName,
			},
			TeacherID: e.Teacher.ID,
			Room:      e.Room,
			Type:      string(e.Type),
		}
	}
	return out
}

// ApplyWire populates a new grid from persisted wire entries. Keys that do
// not address a loaded slot are rejected: the backend defines the slot set,
// so a mismatch means the payload belongs to a different configuration.
func (g *Grid) ApplyWire(entries map[string]WireEntry) (*Grid, error) {
	ng := g.clone()
	for wk, we := range entries {
		k, err := ParseWireKey(wk)
		if err != nil {
			return nil, fmt.Errorf("entry key %q: %w", wk, err)
		}
		if !ng.validKey(k) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownWireKey, wk)
		}
		ct, err := ParseClassType(we.Type)
		if err != nil {
			return nil, fmt.Errorf("entry %q: %w", wk, err)
		}
		teacherID := we.Teacher.ID
		if teacherID == 0 {
			teacherID = we.TeacherID
		}
		ng.entries[k] = Entry{
			Subject: Subject{ID: we.Subject.ID, Name: we.Subject.Name, Code: we.Subject.Code},
			Teacher: Teacher{ID: teacherID, FirstName: we.Teacher.FirstName, LastName: we.Teacher.LastName},
			Room:    we.Room,
			Type:    ct,
		}
	}
	return ng, nil
}
