// Package editor implements the add/edit/delete lifecycle for a single grid
// cell: a modal working copy that is committed to the grid only after the
// backend conflict check clears, and discarded otherwise.
package editor

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/javiermolinar/aula/internal/api"
	"github.com/javiermolinar/aula/internal/oracle"
	"github.com/javiermolinar/aula/internal/timetable"
)

// Editor errors.
var (
	ErrEditorClosed   = errors.New("editor is not open")
	ErrEditorBusy     = errors.New("a conflict check is already in flight")
	ErrNoPendingCheck = errors.New("no conflict check is pending")
	ErrMissingSubject = errors.New("missing required field: subject")
	ErrMissingTeacher = errors.New("missing required field: teacher")
	ErrNoOverride     = errors.New("no inconclusive check to override")
)

// State is the editor lifecycle state. The tagged states make illegal
// situations (saving a closed editor, deleting a brand-new cell) explicit
// instead of nil-checked.
type State int

const (
	StateClosed  State = iota
	StateNew           // open on an empty cell
	StateEditing       // open on an existing entry
)

// String returns the state name for logs and tests.
func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateNew:
		return "new"
	case StateEditing:
		return "editing"
	default:
		return "unknown"
	}
}

// WorkingCopy is the transient form state. Nil subject/teacher mean "no
// selection"; both are required before a save may proceed.
type WorkingCopy struct {
	Subject *timetable.Subject  `validate:"required"`
	Teacher *timetable.Teacher  `validate:"required"`
	Room    string              `validate:"max=64"`
	Type    timetable.ClassType `validate:"required"`
}

// Scope pins conflict checks to the timetable being edited.
type Scope struct {
	AcademicYearID     int64
	Semester           int
	ExcludeTimetableID int64
}

// SaveStatus classifies a resolved save attempt.
type SaveStatus int

const (
	// SaveCommitted: the working copy is in the grid, editor closed.
	SaveCommitted SaveStatus = iota
	// SaveBlocked: the backend reported conflicts; nothing committed.
	SaveBlocked
	// SaveInconclusive: the check failed in transit. Nothing committed;
	// the operator may retry or explicitly override.
	SaveInconclusive
)

// SaveResult is the outcome of one save attempt.
type SaveResult struct {
	Status    SaveStatus
	Conflicts *timetable.ConflictResult // set when Status == SaveBlocked
	Err       error                     // set when Status == SaveInconclusive
}

// Editor is the cell-level state machine. A single instance is shared
// across cells: only one modal session exists at a time, so grid commits
// are serialized by construction. All methods run on the event loop; the
// conflict check itself is staged by BeginSave and performed by the caller,
// so no goroutine ever touches editor state.
type Editor struct {
	state   State
	day     timetable.Weekday
	slot    timetable.TimeSlot
	working WorkingCopy

	scope    Scope
	validate *validator.Validate

	gen         uint64 // bumped on Open and close; stale check results carry an old value
	pending     bool   // a staged check has not been resolved yet
	canOverride bool   // last save ended inconclusive
}

// New creates a closed editor bound to the given check scope.
func New(scope Scope) *Editor {
	return &Editor{
		scope:    scope,
		validate: validator.New(),
	}
}

// State returns the current lifecycle state.
func (e *Editor) State() State { return e.state }

// Key returns the cell address of the open session.
func (e *Editor) Key() timetable.Key {
	return timetable.KeyFor(e.day, e.slot)
}

// Slot returns the slot of the open session.
func (e *Editor) Slot() timetable.TimeSlot { return e.slot }

// Day returns the weekday of the open session.
func (e *Editor) Day() timetable.Weekday { return e.day }

// Working returns the transient working copy.
func (e *Editor) Working() WorkingCopy { return e.working }

// Generation identifies the current editing session. A check result tagged
// with an older generation belongs to a session that has since closed.
func (e *Editor) Generation() uint64 { return e.gen }

// Open starts an editing session on the given cell. An occupied cell
// pre-fills the working copy (a plain copy, never a live reference); an
// empty cell opens blank with type Regular.
func (e *Editor) Open(g *timetable.Grid, day timetable.Weekday, slot timetable.TimeSlot) {
	e.day = day
	e.slot = slot
	e.gen++
	e.pending = false
	e.canOverride = false

	if existing, ok := g.EntryAt(timetable.KeyFor(day, slot)); ok {
		subject := existing.Subject
		teacher := existing.Teacher
		e.working = WorkingCopy{
			Subject: &subject,
			Teacher: &teacher,
			Room:    existing.Room,
			Type:    existing.Type,
		}
		e.state = StateEditing
		return
	}

	e.working = WorkingCopy{Type: timetable.TypeRegular}
	e.state = StateNew
}

// SelectSubject sets the working copy's subject and resets the teacher:
// eligibility is a property of the subject's own roster, so a previously
// chosen teacher may no longer qualify.
func (e *Editor) SelectSubject(s timetable.Subject) {
	if e.state == StateClosed {
		return
	}
	e.working.Subject = &s
	e.working.Teacher = nil
	e.canOverride = false
}

// EligibleTeachers returns the chosen subject's roster, or nil before a
// subject is selected. The school-wide roster is never consulted here.
func (e *Editor) EligibleTeachers() []timetable.Teacher {
	if e.working.Subject == nil {
		return nil
	}
	return e.working.Subject.Teachers
}

// SelectTeacher sets the working copy's teacher.
func (e *Editor) SelectTeacher(t timetable.Teacher) {
	if e.state == StateClosed {
		return
	}
	e.working.Teacher = &t
	e.canOverride = false
}

// SetRoom sets the working copy's room.
func (e *Editor) SetRoom(room string) {
	if e.state == StateClosed {
		return
	}
	e.working.Room = room
}

// SetType sets the working copy's class type.
func (e *Editor) SetType(t timetable.ClassType) {
	if e.state == StateClosed || !t.Valid() {
		return
	}
	e.working.Type = t
}

// checkFields validates the working copy, mapping validator output onto the
// editor's sentinel errors.
func (e *Editor) checkFields() error {
	err := e.validate.Struct(e.working)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			switch fe.Field() {
			case "Subject":
				return ErrMissingSubject
			case "Teacher":
				return ErrMissingTeacher
			}
		}
	}
	return fmt.Errorf("invalid entry: %w", err)
}

// BeginSave validates the working copy and stages the save. It returns the
// conflict check the caller must run, or nil when the slot has no parseable
// time range and the save may be resolved as clear immediately. A second
// BeginSave before the staged check resolves returns ErrEditorBusy.
func (e *Editor) BeginSave() (*api.ConflictCheckRequest, error) {
	if e.state == StateClosed {
		return nil, ErrEditorClosed
	}
	if e.pending {
		return nil, ErrEditorBusy
	}
	if err := e.checkFields(); err != nil {
		return nil, err
	}

	e.pending = true
	if !e.slot.HasTimes() {
		return nil, nil
	}
	return &api.ConflictCheckRequest{
		TeacherID:          e.working.Teacher.ID,
		Day:                e.day.String(),
		StartTime:          e.slot.Start,
		EndTime:            e.slot.End,
		AcademicYearID:     e.scope.AcademicYearID,
		Semester:           e.scope.Semester,
		ExcludeTimetableID: e.scope.ExcludeTimetableID,
	}, nil
}

// ResolveSave applies the outcome of the staged check. A clear result
// commits the working copy into the grid and closes; the grid is never
// touched on any other outcome.
func (e *Editor) ResolveSave(check oracle.SlotCheck, g *timetable.Grid) (SaveResult, *timetable.Grid, error) {
	if e.state == StateClosed {
		return SaveResult{}, g, ErrEditorClosed
	}
	if !e.pending {
		return SaveResult{}, g, ErrNoPendingCheck
	}
	e.pending = false

	switch check.Outcome {
	case timetable.OutcomeConflict:
		return SaveResult{Status: SaveBlocked, Conflicts: check.Result}, g, nil
	case timetable.OutcomeInconclusive:
		e.canOverride = true
		return SaveResult{Status: SaveInconclusive, Err: check.Err}, g, nil
	}

	return SaveResult{Status: SaveCommitted}, e.commit(g), nil
}

// CommitAnyway commits the working copy without a clear check result. Only
// valid immediately after an inconclusive save: an explicit operator
// override, never a silent default.
func (e *Editor) CommitAnyway(g *timetable.Grid) (*timetable.Grid, error) {
	if e.state == StateClosed {
		return g, ErrEditorClosed
	}
	if !e.canOverride {
		return g, ErrNoOverride
	}
	return e.commit(g), nil
}

func (e *Editor) commit(g *timetable.Grid) *timetable.Grid {
	// Cancel may have closed the session after the check was staged.
	if e.state == StateClosed {
		return g
	}
	entry := timetable.Entry{
		Subject: *e.working.Subject,
		Teacher: *e.working.Teacher,
		Room:    e.working.Room,
		Type:    e.working.Type,
	}
	ng := g.Set(e.Key(), entry)
	e.close()
	return ng
}

// Delete removes the cell's entry and closes. Only meaningful from
// StateEditing; on a new cell it is a disabled no-op, not an error.
func (e *Editor) Delete(g *timetable.Grid) (*timetable.Grid, bool) {
	if e.state != StateEditing {
		return g, false
	}
	ng := g.Remove(e.Key())
	e.close()
	return ng, true
}

// Cancel discards the working copy unconditionally and closes. The grid is
// untouched.
func (e *Editor) Cancel() {
	if e.state == StateClosed {
		return
	}
	e.close()
}

func (e *Editor) close() {
	e.state = StateClosed
	e.working = WorkingCopy{}
	e.gen++
	e.pending = false
	e.canOverride = false
}
