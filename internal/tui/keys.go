package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/aula/internal/editor"
	"github.com/javiermolinar/aula/internal/oracle"
	"github.com/javiermolinar/aula/internal/timetable"
	"github.com/javiermolinar/aula/internal/tui/commands"
)

// handleKeyMsg routes key presses by page phase and open modal.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.phase {
	case PhaseLoading:
		if msg.String() == "q" || msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m, nil
	case PhaseError:
		return m.handleErrorKeys(msg)
	}

	if m.modalType != ModalNone {
		return m.handleModalKeys(msg)
	}
	return m.handleGridKeys(msg)
}

func (m Model) handleErrorKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "r":
		m.phase = PhaseLoading
		m.err = nil
		return m, commands.Load(m.client, m.cache, m.timetableID)
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	}
	return m, nil
}

// handleGridKeys handles navigation and page actions while no modal is open.
func (m Model) handleGridKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	g := m.state.Grid()
	if g == nil {
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "q", "esc":
		if m.state.HasChanges() {
			m.modalType = ModalConfirmQuit
			return m, nil
		}
		return m, tea.Quit

	case "h", "left":
		if m.cursor.Day > 0 {
			m.cursor.Day--
		}
		return m, nil

	case "l", "right":
		if m.cursor.Day < timetable.DaysPerWeek-1 {
			m.cursor.Day++
		}
		return m, nil

	case "k", "up":
		if m.cursor.Row > 0 {
			m.cursor.Row--
		}
		return m, nil

	case "j", "down":
		if m.cursor.Row < len(g.Slots())-1 {
			m.cursor.Row++
		}
		return m, nil

	case "enter":
		return m.openEditor()

	case "u":
		if err := m.state.Undo(); err != nil {
			m.setStatus("Nothing to undo", 2*time.Second)
			return m, nil
		}
		m.lastValidation = nil
		m.setStatus("Undone", 2*time.Second)
		return m, commands.CacheDraft(m.cache, m.meta, m.state.Grid())

	case "v":
		if m.busy != OpNone {
			return m, nil
		}
		if g.Len() == 0 {
			m.setStatus("Nothing to validate yet", 2*time.Second)
			return m, nil
		}
		m.busy = OpValidating
		return m, commands.Validate(m.orc, m.meta, g)

	case "s":
		return m.saveTimetable(true)

	case "S":
		return m.saveTimetable(false)
	}

	return m, nil
}

// openEditor opens the entry form for the cell under the cursor. Lunch rows
// are not editable.
func (m Model) openEditor() (tea.Model, tea.Cmd) {
	slot, ok := m.currentSlot()
	if !ok || slot.IsLunch {
		return m, nil
	}
	if len(m.subjects) == 0 {
		m.setStatus("No subjects assigned to this section", 3*time.Second)
		return m, nil
	}

	day := timetable.Weekday(m.cursor.Day)
	m.ed.Open(m.state.Grid(), day, slot)
	m.syncFormFromEditor()
	m.modalType = ModalEntryForm
	m.formFocus = fieldSubject
	return m, nil
}

// syncFormFromEditor aligns the form widgets with the editor's working copy
// after Open pre-filled it.
func (m *Model) syncFormFromEditor() {
	wc := m.ed.Working()

	m.subjectIdx = 0
	if wc.Subject != nil {
		for i, s := range m.subjects {
			if s.ID == wc.Subject.ID {
				m.subjectIdx = i
				break
			}
		}
	}

	m.teacherIdx = 0
	if wc.Teacher != nil {
		for i, t := range m.ed.EligibleTeachers() {
			if t.ID == wc.Teacher.ID {
				m.teacherIdx = i
				break
			}
		}
	}

	m.typeIdx = 0
	for i, ct := range classTypes {
		if ct == wc.Type {
			m.typeIdx = i
			break
		}
	}

	m.roomInput.SetValue(wc.Room)
	m.roomInput.Blur()

	// Open on an empty cell starts with no subject; select the first one so
	// the form always shows a concrete choice.
	if wc.Subject == nil {
		m.ed.SelectSubject(m.subjects[0])
	}
}

// saveTimetable pushes the working grid to the backend. Validation is
// advisory: a final save is blocked only while a current (non-stale)
// validation verdict says the grid is invalid.
func (m Model) saveTimetable(draft bool) (tea.Model, tea.Cmd) {
	if m.busy != OpNone {
		return m, nil
	}
	if !draft && m.lastValidation != nil && !m.validationStale() && !m.lastValidation.IsValid {
		m.setStatus("Resolve validation conflicts before final save", 4*time.Second)
		return m, nil
	}
	if draft {
		m.busy = OpSavingDraft
	} else {
		m.busy = OpSavingFinal
	}
	return m, commands.Save(m.client, m.cache, m.meta, m.state.Grid(), draft)
}

// handleModalKeys dispatches keys to the open modal.
func (m Model) handleModalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.modalType {
	case ModalEntryForm:
		return m.handleEntryFormKeys(msg)
	case ModalConflicts:
		return m.handleConflictsKeys(msg)
	case ModalInconclusive:
		return m.handleInconclusiveKeys(msg)
	case ModalValidation:
		if msg.String() == "esc" || msg.String() == "enter" || msg.String() == "q" {
			m.modalType = ModalNone
		}
		return m, nil
	case ModalConfirmDelete:
		return m.handleConfirmDeleteKeys(msg)
	case ModalConfirmQuit:
		return m.handleConfirmQuitKeys(msg)
	}
	return m, nil
}

// startEntrySave validates the form and stages the conflict check. A slot
// without a parseable time range has nothing to check against and resolves
// as clear right away.
func (m Model) startEntrySave() (tea.Model, tea.Cmd) {
	req, err := m.ed.BeginSave()
	if err != nil {
		m.setStatus(fmt.Sprintf("Cannot save: %v", err), 4*time.Second)
		return m, nil
	}
	if req == nil {
		return m.resolveEntrySave(oracle.SlotCheck{Outcome: timetable.OutcomeClear})
	}
	m.busy = OpCheckingSlot
	return m, commands.CheckEntry(m.orc, *req, m.ed.Generation())
}

func (m Model) handleEntryFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.busy == OpCheckingSlot {
		// A check is in flight; only allow bailing out.
		if msg.String() == "esc" {
			m.busy = OpNone
			m.ed.Cancel()
			m.closeModal()
		}
		return m, nil
	}

	switch msg.String() {
	case "esc":
		m.ed.Cancel()
		m.closeModal()
		return m, nil

	case "tab":
		m.setFormFocus((m.formFocus + 1) % fieldCount)
		return m, nil

	case "shift+tab":
		m.setFormFocus((m.formFocus + fieldCount - 1) % fieldCount)
		return m, nil

	case "enter":
		return m.startEntrySave()
	}

	if m.formFocus == fieldRoom {
		var cmd tea.Cmd
		m.roomInput, cmd = m.roomInput.Update(msg)
		m.ed.SetRoom(m.roomInput.Value())
		return m, cmd
	}

	switch msg.String() {
	case "d":
		if m.ed.State() == editor.StateEditing {
			m.modalType = ModalConfirmDelete
		}
		return m, nil

	case "up", "k", "left":
		return m.cycleFormField(-1)

	case "down", "j", "right":
		return m.cycleFormField(1)
	}

	return m, nil
}

// setFormFocus moves focus between entry form fields, managing the text
// input's focus state.
func (m *Model) setFormFocus(f int) {
	m.formFocus = f
	if f == fieldRoom {
		m.roomInput.Focus()
	} else {
		m.roomInput.Blur()
	}
}

// cycleFormField steps the focused selector field by delta.
func (m Model) cycleFormField(delta int) (tea.Model, tea.Cmd) {
	switch m.formFocus {
	case fieldSubject:
		n := len(m.subjects)
		if n == 0 {
			return m, nil
		}
		m.subjectIdx = (m.subjectIdx + delta + n) % n
		m.ed.SelectSubject(m.subjects[m.subjectIdx])
		m.teacherIdx = 0

	case fieldTeacher:
		roster := m.ed.EligibleTeachers()
		n := len(roster)
		if n == 0 {
			return m, nil
		}
		m.teacherIdx = (m.teacherIdx + delta + n) % n
		m.ed.SelectTeacher(roster[m.teacherIdx])

	case fieldType:
		n := len(classTypes)
		m.typeIdx = (m.typeIdx + delta + n) % n
		m.ed.SetType(classTypes[m.typeIdx])
	}
	return m, nil
}

func (m Model) handleConflictsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "c":
		if m.conflicts != nil {
			return m, commands.CopyToClipboard(conflictsCopyText(m.conflicts))
		}
		return m, nil
	case "esc", "enter", "q":
		// Back to the form so the user can pick a different teacher or slot.
		m.conflicts = nil
		m.modalType = ModalEntryForm
		return m, nil
	}
	return m, nil
}

func (m Model) handleInconclusiveKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "r":
		m.inconclusiveErr = nil
		m.modalType = ModalEntryForm
		return m.startEntrySave()

	case "o":
		ng, err := m.ed.CommitAnyway(m.state.Grid())
		if err != nil {
			m.setStatus(fmt.Sprintf("Error: %v", err), 3*time.Second)
			return m, nil
		}
		return m.applyCommit(ng, "period saved unchecked")

	case "esc":
		m.inconclusiveErr = nil
		m.modalType = ModalEntryForm
		return m, nil
	}
	return m, nil
}

func (m Model) handleConfirmDeleteKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		ng, ok := m.ed.Delete(m.state.Grid())
		if !ok {
			m.modalType = ModalEntryForm
			return m, nil
		}
		return m.applyCommit(ng, "period deleted")

	case "n", "esc":
		m.modalType = ModalEntryForm
		return m, nil
	}
	return m, nil
}

func (m Model) handleConfirmQuitKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		return m, tea.Quit
	case "n", "esc":
		m.modalType = ModalNone
		return m, nil
	}
	return m, nil
}

// closeModal resets all form and modal state.
func (m *Model) closeModal() {
	m.modalType = ModalNone
	m.formFocus = fieldSubject
	m.conflicts = nil
	m.inconclusiveErr = nil
	m.roomInput.Blur()
	m.roomInput.SetValue("")
}
