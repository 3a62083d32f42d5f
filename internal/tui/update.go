package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/javiermolinar/aula/internal/api"
	"github.com/javiermolinar/aula/internal/editor"
	"github.com/javiermolinar/aula/internal/oracle"
	"github.com/javiermolinar/aula/internal/timetable"
	"github.com/javiermolinar/aula/internal/tui/commands"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.colWidth = m.calculateColWidth()
		return m, nil

	case commands.LoadedMsg:
		return m.handleLoaded(msg)

	case commands.SlotCheckedMsg:
		return m.handleSlotChecked(msg)

	case commands.ValidatedMsg:
		m.busy = OpNone
		m.lastValidation = msg.Result
		m.validatedAt = m.state.Mutations()
		m.modalType = ModalValidation
		return m, nil

	case commands.SaveDoneMsg:
		return m.handleSaveDone(msg)

	case commands.DraftCachedMsg:
		if msg.Err != nil {
			m.log.Warn("caching draft snapshot", zap.Error(msg.Err))
		}
		return m, nil

	case commands.ErrMsg:
		m.busy = OpNone
		if m.phase == PhaseLoading {
			m.phase = PhaseError
			m.err = msg.Err
			return m, nil
		}
		m.setStatus(fmt.Sprintf("Error: %s", api.ServerMessage(msg.Err, msg.Err.Error())), 5*time.Second)
		return m, nil

	case commands.StatusMsgCmd:
		m.setStatus(msg.Msg, 3*time.Second)
		return m, tea.Tick(3*time.Second, func(time.Time) tea.Msg {
			return commands.ClearStatusMsg{}
		})

	case commands.ClearStatusMsg:
		if time.Now().After(m.statusTime) {
			m.statusMsg = ""
		}
		return m, nil
	}

	// Forward remaining messages to the room input while the form is open.
	if m.modalType == ModalEntryForm && m.formFocus == fieldRoom {
		var cmd tea.Cmd
		m.roomInput, cmd = m.roomInput.Update(msg)
		m.ed.SetRoom(m.roomInput.Value())
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// handleLoaded installs the fetched timetable, restoring a cached local
// draft over the server state when one exists.
func (m Model) handleLoaded(msg commands.LoadedMsg) (tea.Model, tea.Cmd) {
	m.meta = msg.Timetable
	m.subjects = msg.Subjects
	m.ed = m.newEditor(msg.Timetable)
	m.state.SetGrid(msg.Grid)
	m.phase = PhaseReady
	m.cursor = Position{}
	m.lastValidation = nil

	if msg.Draft != nil {
		restored, err := timetable.NewGrid(msg.Timetable.Slots).ApplyWire(msg.Draft.Entries)
		if err != nil {
			m.log.Warn("discarding unreadable draft snapshot", zap.Error(err))
			return m, nil
		}
		if err := m.state.Replace(restored, "restore draft"); err == nil {
			m.setStatus(fmt.Sprintf("Restored local draft from %s", msg.Draft.UpdatedAt.Local().Format("Jan 2 15:04")), 5*time.Second)
		}
	}

	return m, nil
}

// handleSlotChecked applies the outcome of a staged conflict check. A
// result tagged with an older session generation belongs to an editing
// session the user already cancelled and is dropped.
func (m Model) handleSlotChecked(msg commands.SlotCheckedMsg) (tea.Model, tea.Cmd) {
	m.busy = OpNone
	if msg.Generation != m.ed.Generation() {
		return m, nil
	}
	return m.resolveEntrySave(msg.Check)
}

// resolveEntrySave feeds a check outcome into the editor and routes the
// resulting save status.
func (m Model) resolveEntrySave(check oracle.SlotCheck) (tea.Model, tea.Cmd) {
	result, grid, err := m.ed.ResolveSave(check, m.state.Grid())
	if err != nil {
		m.setStatus(fmt.Sprintf("Cannot save: %v", err), 4*time.Second)
		return m, nil
	}

	switch result.Status {
	case editor.SaveBlocked:
		m.conflicts = result.Conflicts
		m.modalType = ModalConflicts
		return m, nil

	case editor.SaveInconclusive:
		m.inconclusiveErr = result.Err
		m.modalType = ModalInconclusive
		return m, nil
	}

	return m.applyCommit(grid, "period saved")
}

// applyCommit registers a committed grid, closes the modal, and snapshots
// the draft locally.
func (m Model) applyCommit(g *timetable.Grid, status string) (tea.Model, tea.Cmd) {
	if err := m.state.Replace(g, status); err != nil {
		m.setStatus(fmt.Sprintf("Error: %v", err), 5*time.Second)
		return m, nil
	}
	// Any mutation invalidates the previous whole-grid verdict.
	m.lastValidation = nil
	m.modalType = ModalNone
	m.conflicts = nil
	m.inconclusiveErr = nil
	m.setStatus("Saved. Unsaved changes pending.", 3*time.Second)
	return m, commands.CacheDraft(m.cache, m.meta, g)
}

func (m Model) handleSaveDone(msg commands.SaveDoneMsg) (tea.Model, tea.Cmd) {
	m.busy = OpNone
	m.state.MarkSaved()
	if !msg.Draft {
		m.meta.IsDraft = false
	}

	status := "Timetable saved"
	if msg.Draft {
		status = "Draft saved to server"
	}
	if msg.Response != nil && msg.Response.Message != "" {
		status = msg.Response.Message
	}

	// A successful save ends the editing session; the verdict is printed
	// above the restored terminal on exit.
	return m, tea.Sequence(tea.Println(status), tea.Quit)
}

// calculateColWidth divides the available width across the six day columns.
func (m Model) calculateColWidth() int {
	if m.width <= 0 {
		return defaultColWidth
	}
	// time column + borders/padding
	available := m.width - 15 - 6
	w := available / timetable.DaysPerWeek
	if w < 8 {
		w = 8
	}
	if w > 24 {
		w = 24
	}
	return w
}
