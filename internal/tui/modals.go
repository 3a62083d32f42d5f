package tui

import (
	"fmt"
	"strings"

	"github.com/javiermolinar/aula/internal/editor"
	"github.com/javiermolinar/aula/internal/timetable"
	"github.com/javiermolinar/aula/internal/tui/view"
)

// renderModal renders the current modal.
func (m Model) renderModal() string {
	switch m.modalType {
	case ModalEntryForm:
		return m.renderEntryFormModal()
	case ModalConflicts:
		return m.renderConflictsModal()
	case ModalInconclusive:
		return m.renderInconclusiveModal()
	case ModalValidation:
		return m.renderValidationModal()
	case ModalConfirmDelete:
		return m.renderConfirmDeleteModal()
	case ModalConfirmQuit:
		return m.renderConfirmQuitModal()
	}
	return ""
}

// renderEntryFormModal shows the period editor: subject, teacher, room and
// class type for the cell under the cursor.
func (m Model) renderEntryFormModal() string {
	styles := m.styles.ModalStyles()

	var b strings.Builder

	wc := m.ed.Working()
	isExisting := m.ed.State() == editor.StateEditing

	b.WriteString(m.renderFormField(fieldSubject, "Subject", m.subjectValue(wc)))
	b.WriteString("\n")
	b.WriteString(m.renderFormField(fieldTeacher, "Teacher", m.teacherValue(wc)))
	b.WriteString("\n")
	b.WriteString(m.renderFormField(fieldRoom, "Room", m.roomInput.View()))
	b.WriteString("\n")
	b.WriteString(m.renderFormField(fieldType, "Type", m.typeOptions(wc)))

	if m.busy == OpCheckingSlot {
		b.WriteString("\n\n")
		b.WriteString(m.styles.StatusStyle.Render("Checking for conflicts..."))
	}

	title := fmt.Sprintf("%s · %s", m.ed.Day(), m.ed.Slot().Display)
	return view.RenderModalFrame(title, b.String(), view.EntryFormFooter(isExisting, styles), styles)
}

// renderFormField renders a labelled field with a focus marker.
func (m Model) renderFormField(field int, label, value string) string {
	labelStyle := m.styles.FieldStyle
	marker := "  "
	if m.formFocus == field {
		labelStyle = m.styles.FieldFocusedStyle
		marker = "> "
	}
	return marker + labelStyle.Render(label+":") + " " + value
}

func (m Model) subjectValue(wc editor.WorkingCopy) string {
	if wc.Subject == nil {
		return m.styles.ModalPlaceholderStyle.Render("(select a subject)")
	}
	label := wc.Subject.Name
	if wc.Subject.Code != "" {
		label += " (" + wc.Subject.Code + ")"
	}
	if m.formFocus == fieldSubject {
		return m.styles.OptionActiveStyle.Render("‹ " + label + " ›")
	}
	return m.styles.OptionInactiveStyle.Render(label)
}

func (m Model) teacherValue(wc editor.WorkingCopy) string {
	roster := m.ed.EligibleTeachers()
	if len(roster) == 0 {
		return m.styles.ModalPlaceholderStyle.Render("(no eligible teachers)")
	}
	if wc.Teacher == nil {
		return m.styles.ModalPlaceholderStyle.Render("(select a teacher)")
	}
	label := wc.Teacher.FullName()
	if m.formFocus == fieldTeacher {
		return m.styles.OptionActiveStyle.Render("‹ " + label + " ›")
	}
	return m.styles.OptionInactiveStyle.Render(label)
}

func (m Model) typeOptions(wc editor.WorkingCopy) string {
	parts := make([]string, 0, len(classTypes))
	for _, ct := range classTypes {
		label := string(ct)
		if ct == wc.Type {
			parts = append(parts, m.styles.OptionActiveStyle.Render("["+label+"]"))
		} else {
			parts = append(parts, m.styles.OptionInactiveStyle.Render(label))
		}
	}
	return strings.Join(parts, " ")
}

// renderConflictsModal lists the backend's conflicting assignments for a
// blocked save.
func (m Model) renderConflictsModal() string {
	styles := m.styles.ModalStyles()

	var b strings.Builder
	count := 0
	if m.conflicts != nil {
		count = len(m.conflicts.Conflicts)
	}
	b.WriteString(m.styles.InvalidStyle.Render(
		fmt.Sprintf("Teacher is already booked (%d conflict(s))", count)))
	b.WriteString("\n\n")

	if m.conflicts != nil {
		for _, c := range m.conflicts.Conflicts {
			line := fmt.Sprintf("%s  %s %s - %s  %s %s · %s",
				c.TeacherName, c.Day, c.StartTime, c.EndTime,
				c.ClassName, c.SectionName, c.SubjectName)
			b.WriteString(m.styles.ModalConflictStyle.Render(line))
			b.WriteString("\n")
		}
	}

	return view.RenderModalFrame("Conflicts", b.String(), view.ConflictListFooter(styles), styles)
}

// renderInconclusiveModal reports a failed conflict check and offers retry
// or an explicit unchecked commit.
func (m Model) renderInconclusiveModal() string {
	styles := m.styles.ModalStyles()

	var b strings.Builder
	b.WriteString(m.styles.ModalBodyStyle.Render("The conflict check could not be completed."))
	b.WriteString("\n\n")
	if m.inconclusiveErr != nil {
		b.WriteString(m.styles.ModalMetaStyle.Render(m.inconclusiveErr.Error()))
		b.WriteString("\n\n")
	}
	b.WriteString(m.styles.DirtyStyle.Render("Committing anyway skips the conflict check."))

	return view.RenderModalFrame("Check failed", b.String(), view.InconclusiveFooter(styles), styles)
}

// renderValidationModal shows the whole-grid validation verdict.
func (m Model) renderValidationModal() string {
	styles := m.styles.ModalStyles()

	var b strings.Builder
	if m.lastValidation != nil && m.lastValidation.IsValid {
		b.WriteString(m.styles.ValidStyle.Render("✓ No conflicts found"))
	} else {
		b.WriteString(m.styles.InvalidStyle.Render("✗ Validation failed"))
	}
	if m.lastValidation != nil && m.lastValidation.Message != "" {
		b.WriteString("\n\n")
		b.WriteString(m.styles.ModalBodyStyle.Render(m.lastValidation.Message))
	}

	return view.RenderModalFrame("Validation", b.String(), view.ValidationFooter(styles), styles)
}

func (m Model) renderConfirmDeleteModal() string {
	styles := m.styles.ModalStyles()

	body := m.styles.ModalBodyStyle.Render(
		fmt.Sprintf("Delete the period at %s, %s?", m.ed.Day(), m.ed.Slot().Display))
	return view.RenderModalFrame("Delete period", body, view.ConfirmFooter(styles), styles)
}

func (m Model) renderConfirmQuitModal() string {
	styles := m.styles.ModalStyles()

	body := m.styles.ModalBodyStyle.Render("You have unsaved changes. Quit anyway?")
	return view.RenderModalFrame("Unsaved changes", body, view.ConfirmFooter(styles), styles)
}

// conflictsCopyText formats the conflict list as plain text for the
// clipboard.
func conflictsCopyText(r *timetable.ConflictResult) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Conflicts (%d):\n", len(r.Conflicts)))
	for _, c := range r.Conflicts {
		b.WriteString(fmt.Sprintf("- %s, %s %s - %s: %s %s, %s\n",
			c.TeacherName, c.Day, c.StartTime, c.EndTime,
			c.ClassName, c.SectionName, c.SubjectName))
	}
	return b.String()
}
