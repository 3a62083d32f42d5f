package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/aula/internal/editor"
	"github.com/javiermolinar/aula/internal/timetable"
)

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func pressKey(t *testing.T, m Model, msg tea.KeyMsg) Model {
	t.Helper()
	updated, _ := m.Update(msg)
	return updated.(Model)
}

func TestNavigationClampsToGrid(t *testing.T) {
	m := newReadyModel(t)

	// Already at the top-left corner; moving further must not underflow.
	m = pressKey(t, m, keyRune('h'))
	m = pressKey(t, m, keyRune('k'))
	if m.cursor.Day != 0 || m.cursor.Row != 0 {
		t.Fatalf("cursor = %+v, want origin", m.cursor)
	}

	for i := 0; i < 10; i++ {
		m = pressKey(t, m, keyRune('l'))
		m = pressKey(t, m, keyRune('j'))
	}
	if m.cursor.Day != timetable.DaysPerWeek-1 {
		t.Fatalf("cursor.Day = %d, want %d", m.cursor.Day, timetable.DaysPerWeek-1)
	}
	if want := len(testSlots()) - 1; m.cursor.Row != want {
		t.Fatalf("cursor.Row = %d, want %d", m.cursor.Row, want)
	}
}

func TestEnterOpensEntryForm(t *testing.T) {
	m := newReadyModel(t)

	m = pressKey(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.modalType != ModalEntryForm {
		t.Fatalf("modalType = %v, want %v", m.modalType, ModalEntryForm)
	}
	if m.ed.State() != editor.StateNew {
		t.Fatalf("editor state = %v, want %v", m.ed.State(), editor.StateNew)
	}
	// An empty cell pre-selects the first subject so the form never shows
	// a void selection.
	if m.ed.Working().Subject == nil {
		t.Fatal("expected a pre-selected subject")
	}
}

func TestEnterOnLunchRowDoesNothing(t *testing.T) {
	m := newReadyModel(t)
	m.cursor.Row = 1 // lunch slot in testSlots

	m = pressKey(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.modalType != ModalNone {
		t.Fatalf("modalType = %v, want %v", m.modalType, ModalNone)
	}
}

func TestEnterOnOccupiedCellPrefillsForm(t *testing.T) {
	m := newReadyModel(t)
	key := timetable.KeyFor(timetable.Monday, testSlots()[0])
	if err := m.state.Replace(m.state.Grid().Set(key, testEntry()), "seed"); err != nil {
		t.Fatalf("Replace: %v", err)
	}

	m = pressKey(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.ed.State() != editor.StateEditing {
		t.Fatalf("editor state = %v, want %v", m.ed.State(), editor.StateEditing)
	}
	wc := m.ed.Working()
	if wc.Subject == nil || wc.Subject.ID != 4 {
		t.Fatalf("working subject = %+v, want MATH", wc.Subject)
	}
	if wc.Room != "101" {
		t.Fatalf("working room = %q, want %q", wc.Room, "101")
	}
}

func TestFormSubjectCycleResetsTeacher(t *testing.T) {
	m := newReadyModel(t)
	m = pressKey(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m.ed.SelectTeacher(m.ed.EligibleTeachers()[0])

	m = pressKey(t, m, tea.KeyMsg{Type: tea.KeyDown})

	wc := m.ed.Working()
	if wc.Subject == nil || wc.Subject.ID != 5 {
		t.Fatalf("working subject = %+v, want PHY", wc.Subject)
	}
	if wc.Teacher != nil {
		t.Fatal("changing subject must clear the teacher selection")
	}
	if m.teacherIdx != 0 {
		t.Fatalf("teacherIdx = %d, want 0", m.teacherIdx)
	}
}

func TestFormTabCyclesFocus(t *testing.T) {
	m := newReadyModel(t)
	m = pressKey(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	order := []int{fieldTeacher, fieldRoom, fieldType, fieldSubject}
	for _, want := range order {
		m = pressKey(t, m, tea.KeyMsg{Type: tea.KeyTab})
		if m.formFocus != want {
			t.Fatalf("formFocus = %d, want %d", m.formFocus, want)
		}
	}
}

func TestFormEscCancels(t *testing.T) {
	m := newReadyModel(t)
	m = pressKey(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	m = pressKey(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	if m.modalType != ModalNone {
		t.Fatalf("modalType = %v, want %v", m.modalType, ModalNone)
	}
	if m.ed.State() != editor.StateClosed {
		t.Fatalf("editor state = %v, want %v", m.ed.State(), editor.StateClosed)
	}
	if m.state.Grid().Len() != 0 {
		t.Fatal("cancelling must not touch the grid")
	}
}

func TestConflictsModalEscReturnsToForm(t *testing.T) {
	m := newReadyModel(t)
	m.modalType = ModalConflicts
	m.conflicts = &timetable.ConflictResult{HasConflict: true}

	m = pressKey(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	if m.modalType != ModalEntryForm {
		t.Fatalf("modalType = %v, want %v", m.modalType, ModalEntryForm)
	}
	if m.conflicts != nil {
		t.Fatal("expected the conflict list to be discarded")
	}
}

func TestFinalSaveUnblockedWithoutValidation(t *testing.T) {
	m := newReadyModel(t)

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'S'}})
	got := updated.(Model)

	if got.busy != OpSavingFinal {
		t.Fatalf("busy = %v, want %v", got.busy, OpSavingFinal)
	}
	if cmd == nil {
		t.Fatal("expected a save command")
	}
}

func TestFinalSaveBlockedOnFailedValidation(t *testing.T) {
	m := newReadyModel(t)
	m.lastValidation = &timetable.ValidationResult{IsValid: false}
	m.validatedAt = m.state.Mutations()

	m = pressKey(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'S'}})

	if m.busy != OpNone {
		t.Fatalf("busy = %v, want %v", m.busy, OpNone)
	}
	if m.statusMsg == "" {
		t.Fatal("expected a status message about the failed validation")
	}
}

func TestFinalSaveUnblockedOnStaleFailedValidation(t *testing.T) {
	m := newReadyModel(t)
	m.lastValidation = &timetable.ValidationResult{IsValid: false}
	m.validatedAt = m.state.Mutations()

	key := timetable.KeyFor(timetable.Monday, testSlots()[0])
	if err := m.state.Replace(m.state.Grid().Set(key, testEntry()), "edit"); err != nil {
		t.Fatalf("Replace: %v", err)
	}

	m = pressKey(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'S'}})

	if m.busy != OpSavingFinal {
		t.Fatalf("busy = %v, want %v", m.busy, OpSavingFinal)
	}
}

func TestFinalSaveStartsWithPassingValidation(t *testing.T) {
	m := newReadyModel(t)
	m.lastValidation = &timetable.ValidationResult{IsValid: true}
	m.validatedAt = m.state.Mutations()

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'S'}})
	got := updated.(Model)

	if got.busy != OpSavingFinal {
		t.Fatalf("busy = %v, want %v", got.busy, OpSavingFinal)
	}
	if cmd == nil {
		t.Fatal("expected a save command")
	}
}

func TestValidateDisabledOnEmptyGrid(t *testing.T) {
	m := newReadyModel(t)

	m = pressKey(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'v'}})

	if m.busy != OpNone {
		t.Fatalf("busy = %v, want %v", m.busy, OpNone)
	}
	if m.statusMsg == "" {
		t.Fatal("expected a status message explaining there is nothing to validate")
	}
}

func TestValidateStartsWithEntries(t *testing.T) {
	m := newReadyModel(t)
	key := timetable.KeyFor(timetable.Monday, testSlots()[0])
	if err := m.state.Replace(m.state.Grid().Set(key, testEntry()), "edit"); err != nil {
		t.Fatalf("Replace: %v", err)
	}

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'v'}})
	got := updated.(Model)

	if got.busy != OpValidating {
		t.Fatalf("busy = %v, want %v", got.busy, OpValidating)
	}
	if cmd == nil {
		t.Fatal("expected a validate command")
	}
}

func TestUndoRestoresPreviousGrid(t *testing.T) {
	m := newReadyModel(t)
	key := timetable.KeyFor(timetable.Monday, testSlots()[0])
	if err := m.state.Replace(m.state.Grid().Set(key, testEntry()), "edit"); err != nil {
		t.Fatalf("Replace: %v", err)
	}
	m.lastValidation = &timetable.ValidationResult{IsValid: true}

	m = pressKey(t, m, keyRune('u'))

	if m.state.Grid().Len() != 0 {
		t.Fatalf("grid len = %d, want 0 after undo", m.state.Grid().Len())
	}
	if m.lastValidation != nil {
		t.Fatal("undo must invalidate the validation verdict")
	}
}

func TestQuitWithUnsavedChangesAsksFirst(t *testing.T) {
	m := newReadyModel(t)
	key := timetable.KeyFor(timetable.Monday, testSlots()[0])
	if err := m.state.Replace(m.state.Grid().Set(key, testEntry()), "edit"); err != nil {
		t.Fatalf("Replace: %v", err)
	}

	m = pressKey(t, m, keyRune('q'))
	if m.modalType != ModalConfirmQuit {
		t.Fatalf("modalType = %v, want %v", m.modalType, ModalConfirmQuit)
	}

	m = pressKey(t, m, keyRune('n'))
	if m.modalType != ModalNone {
		t.Fatalf("modalType = %v, want %v", m.modalType, ModalNone)
	}
}

func TestQuitCleanExitsImmediately(t *testing.T) {
	m := newReadyModel(t)

	_, cmd := m.Update(keyRune('q'))
	if cmd == nil {
		t.Fatal("expected a quit command")
	}
}
