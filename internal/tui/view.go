package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/aula/internal/timetable"
	"github.com/javiermolinar/aula/internal/tui/view"
)

// View renders the TUI using a boxed, parent-controlled layout.
func (m Model) View() string {
	state := m.viewState()
	return view.Render(state)
}

func (m Model) viewState() view.ViewState {
	base := m.renderAppContent()
	showModal := m.modalType != ModalNone

	modalContent := ""
	if showModal {
		modalContent = m.renderModal()
	}

	m.overlay.SetActive(showModal)
	m.overlay.SetBackground(m.styles.colorBg)

	return view.ViewState{
		Width:            m.width,
		Height:           m.height,
		BaseContent:      base,
		ModalContent:     modalContent,
		ShowModal:        showModal,
		Overlay:          m.overlay,
		EmptyPlaceholder: "Loading timetable...",
	}
}

func (m Model) renderAppContent() string {
	switch m.phase {
	case PhaseLoading:
		return m.renderLoading()
	case PhaseError:
		return m.renderLoadError()
	}

	var b strings.Builder
	b.WriteString(m.renderTitle())
	b.WriteString("\n\n")
	b.WriteString(m.renderGrid())
	b.WriteString("\n")
	b.WriteString(m.renderLegend())
	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())
	b.WriteString("\n")
	b.WriteString(m.renderHelp())

	return m.styles.AppStyle.Render(b.String())
}

func (m Model) renderLoading() string {
	return m.styles.AppStyle.Render(
		m.styles.StatusStyle.Render("Loading timetable..."))
}

func (m Model) renderLoadError() string {
	var b strings.Builder
	b.WriteString(m.styles.InvalidStyle.Render("Could not load timetable"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(m.styles.StatusStyle.Render(m.err.Error()))
		b.WriteString("\n\n")
	}
	b.WriteString(m.styles.HelpStyle.Render("[r] Retry   [q] Quit"))
	return m.styles.AppStyle.Render(b.String())
}

// renderTitle shows the class/section heading with save-state markers.
func (m Model) renderTitle() string {
	title := fmt.Sprintf("%s %s", m.meta.ClassName, m.meta.SectionName)
	if m.meta.Semester > 0 {
		title += fmt.Sprintf("  ·  Semester %d", m.meta.Semester)
	}
	parts := []string{m.styles.TitleStyle.Render(title)}

	if m.meta.IsDraft {
		parts = append(parts, m.styles.DirtyStyle.Render("[draft]"))
	}
	if m.state.HasChanges() {
		parts = append(parts, m.styles.DirtyStyle.Render("● unsaved"))
	}
	if m.lastValidation != nil && !m.validationStale() {
		if m.lastValidation.IsValid {
			parts = append(parts, m.styles.ValidStyle.Render("✓ validated"))
		} else {
			parts = append(parts, m.styles.InvalidStyle.Render("✗ conflicts"))
		}
	}

	return strings.Join(parts, "  ")
}

// renderGrid draws the weekly table: a time column plus one column per day.
func (m Model) renderGrid() string {
	g := m.state.Grid()
	if g == nil {
		return ""
	}

	days := timetable.Weekdays()

	header := make([]string, 0, len(days)+1)
	header = append(header, m.styles.TimeColumnStyle.Render(""))
	for i, d := range days {
		style := m.styles.DayHeaderStyleWidth(m.colWidth)
		if i == m.cursor.Day {
			style = style.Foreground(m.styles.colorAccent)
		}
		header = append(header, style.Render(d.Short()))
	}

	rows := []string{lipgloss.JoinHorizontal(lipgloss.Top, header...)}

	for rowIdx, slot := range g.Slots() {
		cells := make([]string, 0, len(days)+1)
		cells = append(cells, m.styles.TimeColumnStyle.Render(slot.Display))

		for dayIdx, d := range days {
			cells = append(cells, m.renderCell(g, d, slot, dayIdx == m.cursor.Day && rowIdx == m.cursor.Row))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	return m.styles.TableStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// renderCell draws one grid cell: two lines of entry detail, or a
// placeholder for empty and lunch cells.
func (m Model) renderCell(g *timetable.Grid, day timetable.Weekday, slot timetable.TimeSlot, selected bool) string {
	if slot.IsLunch {
		style := m.styles.LunchCellStyleWidth(m.colWidth)
		if selected {
			style = m.styles.CursorStyleWidth(m.colWidth)
		}
		return style.Render("Lunch")
	}

	entry, ok := g.EntryAt(timetable.KeyFor(day, slot))
	if !ok {
		style := m.styles.EmptyCellStyleWidth(m.colWidth)
		if selected {
			style = m.styles.CursorStyleWidth(m.colWidth)
		}
		return style.Render("·")
	}

	label := entry.Subject.Code
	if label == "" {
		label = entry.Subject.Name
	}
	detail := entry.Teacher.FullName()
	if entry.Room != "" {
		detail += " · " + entry.Room
	}

	content := truncate(label, m.colWidth-2) + "\n" + truncate(detail, m.colWidth-2)

	if selected {
		return m.styles.CursorStyleWidth(m.colWidth).Render(content)
	}
	return m.styles.CellStyleWidth(entry.Type, m.colWidth).Render(content)
}

func (m Model) renderLegend() string {
	items := []string{
		m.styles.CellRegularStyle.UnsetWidth().UnsetHeight().Padding(0, 1).Render("Regular"),
		m.styles.CellLabStyle.UnsetWidth().UnsetHeight().Padding(0, 1).Render("Lab"),
		m.styles.CellTutorialStyle.UnsetWidth().UnsetHeight().Padding(0, 1).Render("Tutorial"),
		m.styles.CellPracticalStyle.UnsetWidth().UnsetHeight().Padding(0, 1).Render("Practical"),
	}
	return m.styles.LegendStyle.Render(strings.Join(items, " "))
}

// renderStatusBar shows the transient status message or the current busy
// operation.
func (m Model) renderStatusBar() string {
	switch m.busy {
	case OpCheckingSlot:
		return m.styles.StatusStyle.Render("Checking for conflicts...")
	case OpValidating:
		return m.styles.StatusStyle.Render("Validating timetable...")
	case OpSavingDraft:
		return m.styles.StatusStyle.Render("Saving draft...")
	case OpSavingFinal:
		return m.styles.StatusStyle.Render("Saving timetable...")
	}

	if m.statusMsg != "" && time.Now().Before(m.statusTime) {
		return m.styles.StatusStyle.Render(m.statusMsg)
	}
	return m.styles.StatusStyle.Render("")
}

func (m Model) renderHelp() string {
	return m.styles.HelpStyle.Render(
		"[↑↓←→/hjkl] Move  [Enter] Edit  [u] Undo  [v] Validate  [s] Save draft  [S] Save final  [q] Quit")
}

// truncate shortens s to max columns, rune-safe, with an ellipsis.
func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max == 1 {
		return "…"
	}
	return string(r[:max-1]) + "…"
}
