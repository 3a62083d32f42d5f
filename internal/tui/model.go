// Package tui provides the terminal user interface for aula.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/javiermolinar/aula/internal/api"
	"github.com/javiermolinar/aula/internal/config"
	"github.com/javiermolinar/aula/internal/db"
	"github.com/javiermolinar/aula/internal/editor"
	"github.com/javiermolinar/aula/internal/oracle"
	"github.com/javiermolinar/aula/internal/timetable"
	"github.com/javiermolinar/aula/internal/tui/commands"
	"github.com/javiermolinar/aula/internal/tui/theme"
)

// Phase is the page lifecycle phase.
type Phase int

const (
	PhaseLoading Phase = iota
	PhaseReady
	PhaseError // load failed; only retry or quit
)

// BusyOp is the single in-flight backend operation, if any. The page allows
// at most one at a time.
type BusyOp int

const (
	OpNone BusyOp = iota
	OpCheckingSlot
	OpValidating
	OpSavingDraft
	OpSavingFinal
)

// ModalType identifies the type of modal.
type ModalType int

const (
	ModalNone ModalType = iota
	ModalEntryForm
	ModalConflicts    // blocked save: backend conflict list
	ModalInconclusive // check failed in transit: retry / override / cancel
	ModalValidation   // whole-grid validation verdict
	ModalConfirmDelete
	ModalConfirmQuit // quit with unsaved changes
)

// Entry form fields, in tab order.
const (
	fieldSubject = iota
	fieldTeacher
	fieldRoom
	fieldType
	fieldCount
)

// Position represents a cursor position in the grid.
type Position struct {
	Day int // 0=Monday .. 5=Saturday
	Row int // Slot row index
}

// Model is the main TUI model.
type Model struct {
	// Dependencies
	client api.Client
	cache  *db.DraftCache
	orc    *oracle.Oracle
	config *config.Config
	log    *zap.Logger

	// Theme and styles
	theme  *theme.Theme
	styles *Styles

	// Timetable state
	timetableID int64
	meta        *api.Timetable
	state       *timetable.StateManager
	ed          *editor.Editor
	subjects    []timetable.Subject

	// Page state
	phase  Phase
	busy   BusyOp
	cursor Position

	// Modal state
	modalType  ModalType
	formFocus  int
	subjectIdx int // index into subjects
	teacherIdx int // index into the selected subject's roster
	typeIdx    int // index into classTypes
	roomInput  textinput.Model

	// Conflict / validation results
	conflicts       *timetable.ConflictResult
	inconclusiveErr error
	lastValidation  *timetable.ValidationResult
	validatedAt     int // mutation count when lastValidation was produced

	// Overlay state
	overlay Overlay

	// Terminal dimensions and layout
	width    int
	height   int
	colWidth int

	// Messages
	statusMsg  string    // Temporary status/error message
	statusTime time.Time // When to clear message

	// Error state
	err error
}

var classTypes = []timetable.ClassType{
	timetable.TypeRegular,
	timetable.TypeLab,
	timetable.TypeTutorial,
	timetable.TypePractical,
}

// New creates a new TUI model for one timetable.
func New(client api.Client, cache *db.DraftCache, cfg *config.Config, log *zap.Logger, timetableID int64) *Model {
	roomInput := textinput.New()
	roomInput.Placeholder = "Room (optional)"
	roomInput.CharLimit = 64
	roomInput.Width = 28

	// Load theme from config
	t, err := theme.Load(cfg.UI.Theme)
	if err != nil {
		t, _ = theme.Load("frappe")
	}

	styles := NewStyles(t)

	roomInput.PlaceholderStyle = styles.ModalPlaceholderStyle
	roomInput.TextStyle = styles.ModalInputTextStyle
	roomInput.PromptStyle = styles.ModalInputTextStyle
	roomInput.Cursor.Style = styles.ModalInputCursorStyle
	roomInput.Cursor.TextStyle = styles.ModalInputTextStyle

	if log == nil {
		log = zap.NewNop()
	}

	return &Model{
		client:      client,
		cache:       cache,
		orc:         oracle.New(client, log),
		config:      cfg,
		log:         log,
		theme:       t,
		styles:      styles,
		timetableID: timetableID,
		state:       timetable.NewStateManager(),
		phase:       PhaseLoading,
		roomInput:   roomInput,
		overlay:     newOverlay(),
		colWidth:    defaultColWidth,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return commands.Load(m.client, m.cache, m.timetableID)
}

// Run starts the TUI.
func Run(client api.Client, cache *db.DraftCache, cfg *config.Config, log *zap.Logger, timetableID int64) error {
	model := New(client, cache, cfg, log, timetableID)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// editorScope pins the editor's conflict checks to the loaded timetable.
func editorScope(tt *api.Timetable) editor.Scope {
	return editor.Scope{
		AcademicYearID:     tt.AcademicYearID,
		Semester:           tt.Semester,
		ExcludeTimetableID: tt.ID,
	}
}

// newEditor builds the cell editor wired to the conflict oracle.
func (m *Model) newEditor(tt *api.Timetable) *editor.Editor {
	return editor.New(editorScope(tt))
}

// validationStale reports whether the last validation result predates grid
// mutations and must not be shown as current.
func (m Model) validationStale() bool {
	return m.lastValidation != nil && m.validatedAt != m.state.Mutations()
}

// currentSlot returns the slot under the cursor.
func (m Model) currentSlot() (timetable.TimeSlot, bool) {
	g := m.state.Grid()
	if g == nil {
		return timetable.TimeSlot{}, false
	}
	slots := g.Slots()
	if m.cursor.Row < 0 || m.cursor.Row >= len(slots) {
		return timetable.TimeSlot{}, false
	}
	return slots[m.cursor.Row], true
}

// currentKey returns the grid key under the cursor.
func (m Model) currentKey() (timetable.Key, bool) {
	slot, ok := m.currentSlot()
	if !ok {
		return timetable.Key{}, false
	}
	day := timetable.Weekday(m.cursor.Day)
	if !day.Valid() {
		return timetable.Key{}, false
	}
	return timetable.KeyFor(day, slot), true
}

func (m *Model) setStatus(msg string, d time.Duration) {
	m.statusMsg = msg
	m.statusTime = time.Now().Add(d)
}
