// Package tui provides the terminal user interface for aula.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/aula/internal/timetable"
	"github.com/javiermolinar/aula/internal/tui/theme"
	"github.com/javiermolinar/aula/internal/tui/view"
)

// Default column width - recalculated from the terminal width.
const defaultColWidth = 16

// Styles holds all lipgloss styles for the TUI, derived from a theme.
type Styles struct {
	// Theme colors as lipgloss colors
	colorBg          lipgloss.Color
	colorBgHighlight lipgloss.Color
	colorBgSelection lipgloss.Color
	colorFg          lipgloss.Color
	colorFgMuted     lipgloss.Color
	colorAccent      lipgloss.Color
	colorConflict    lipgloss.Color
	colorWarning     lipgloss.Color

	palette *theme.Palette

	// Title style
	TitleStyle lipgloss.Style

	// Header styles
	DayHeaderStyle lipgloss.Style

	// Time column
	TimeColumnStyle lipgloss.Style

	// Grid cell styles
	CellRegularStyle   lipgloss.Style
	CellLabStyle       lipgloss.Style
	CellTutorialStyle  lipgloss.Style
	CellPracticalStyle lipgloss.Style
	LunchCellStyle     lipgloss.Style
	EmptyCellStyle     lipgloss.Style
	CursorStyle        lipgloss.Style

	// Status message
	StatusStyle  lipgloss.Style
	DirtyStyle   lipgloss.Style
	ValidStyle   lipgloss.Style
	InvalidStyle lipgloss.Style

	// Help text
	HelpStyle lipgloss.Style

	// Legend
	LegendStyle lipgloss.Style

	// Modal styles
	ModalStyle             lipgloss.Style
	ModalBgColor           lipgloss.Color
	ModalBackdropColor     lipgloss.Color
	ModalHeaderStyle       lipgloss.Style
	ModalFooterStyle       lipgloss.Style
	ModalTitleStyle        lipgloss.Style
	ModalBodyStyle         lipgloss.Style
	ModalMetaStyle         lipgloss.Style
	ModalLabelStyle        lipgloss.Style
	ModalConflictStyle     lipgloss.Style
	ModalInputTextStyle    lipgloss.Style
	ModalInputCursorStyle  lipgloss.Style
	ModalPlaceholderStyle  lipgloss.Style
	ModalButtonStyle       lipgloss.Style
	ModalButtonActiveStyle lipgloss.Style
	ModalHintStyle         lipgloss.Style

	// Form option styles
	OptionActiveStyle   lipgloss.Style
	OptionInactiveStyle lipgloss.Style
	FieldFocusedStyle   lipgloss.Style
	FieldStyle          lipgloss.Style

	// Table container
	TableStyle lipgloss.Style

	// App container
	AppStyle lipgloss.Style
}

// NewStyles creates a new Styles instance from a theme.
func NewStyles(t *theme.Theme) *Styles {
	s := &Styles{}
	palette := theme.NewPalette(t)
	s.palette = palette

	s.colorBg = palette.Bg
	s.colorBgHighlight = palette.BgHighlight
	s.colorBgSelection = palette.BgSelection
	s.colorFg = palette.Fg
	s.colorFgMuted = palette.FgMuted
	s.colorAccent = palette.Accent
	s.colorConflict = palette.Conflict
	s.colorWarning = palette.Warning

	s.TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(s.colorAccent).
		Background(s.colorBg)

	s.DayHeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Align(lipgloss.Center).
		Foreground(s.colorFg).
		Background(s.colorBg).
		Width(defaultColWidth)

	s.TimeColumnStyle = lipgloss.NewStyle().
		Foreground(s.colorAccent).
		Background(s.colorBg).
		Width(15)

	cell := lipgloss.NewStyle().
		Width(defaultColWidth).
		Align(lipgloss.Left)

	s.CellRegularStyle = cell.
		Background(palette.RegularBg).
		Foreground(palette.TextOnRegular)

	s.CellLabStyle = cell.
		Background(palette.LabBg).
		Foreground(palette.TextOnLab)

	s.CellTutorialStyle = cell.
		Background(palette.TutorialBg).
		Foreground(palette.TextOnTutorial)

	s.CellPracticalStyle = cell.
		Background(palette.PracticalBg).
		Foreground(palette.TextOnPractical)

	// Lunch rows are visibly inert
	s.LunchCellStyle = cell.
		Background(palette.LunchBg).
		Foreground(s.colorFgMuted).
		Italic(true)

	s.EmptyCellStyle = cell.
		Foreground(s.colorFgMuted).
		Background(s.colorBg)

	s.CursorStyle = cell.
		Background(s.colorBgSelection).
		Foreground(s.colorAccent).
		Bold(true)

	s.StatusStyle = lipgloss.NewStyle().
		Foreground(s.colorWarning).
		Background(s.colorBg).
		Bold(true)

	s.DirtyStyle = lipgloss.NewStyle().
		Foreground(s.colorWarning).
		Background(s.colorBg).
		Bold(true)

	s.ValidStyle = lipgloss.NewStyle().
		Foreground(palette.Lab).
		Background(s.colorBg).
		Bold(true)

	s.InvalidStyle = lipgloss.NewStyle().
		Foreground(s.colorConflict).
		Background(s.colorBg).
		Bold(true)

	s.HelpStyle = lipgloss.NewStyle().
		Foreground(s.colorFg).
		Background(s.colorBg)

	s.LegendStyle = lipgloss.NewStyle().
		Foreground(s.colorFgMuted).
		Background(s.colorBg)

	// Modal styles - use high-contrast theme colors
	modal := palette.Modal
	modalBg := modal.Bg
	s.ModalBackdropColor = modal.Backdrop
	s.ModalBgColor = modalBg

	s.ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(modal.Border).
		Background(modalBg).
		Foreground(modal.Text).
		Padding(1, 1).
		Width(64).
		Align(lipgloss.Left)

	s.ModalHeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(modal.Text).
		Background(modalBg).
		Padding(0, 1).
		Align(lipgloss.Center)

	s.ModalFooterStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Background(modalBg)

	s.ModalTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(modal.Text).
		Background(modalBg)

	s.ModalBodyStyle = lipgloss.NewStyle().
		Foreground(modal.Text).
		Background(modalBg)

	s.ModalMetaStyle = lipgloss.NewStyle().
		Foreground(modal.Muted).
		Background(modalBg)

	s.ModalLabelStyle = lipgloss.NewStyle().
		Foreground(modal.Text).
		Bold(true).
		Width(10).
		Background(modalBg)

	s.ModalConflictStyle = lipgloss.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Dark: string(s.colorConflict), Light: string(s.colorConflict)}).
		Background(modalBg)

	s.ModalInputTextStyle = lipgloss.NewStyle().
		Foreground(modal.Text).
		Background(modalBg)

	s.ModalInputCursorStyle = lipgloss.NewStyle().
		Foreground(modal.ReverseText).
		Background(modal.Highlight)

	s.ModalPlaceholderStyle = lipgloss.NewStyle().
		Foreground(modal.Muted).
		Background(modalBg)

	s.ModalButtonStyle = lipgloss.NewStyle().
		Background(modal.Panel).
		Foreground(modal.Text).
		Padding(0, 3)

	s.ModalButtonActiveStyle = lipgloss.NewStyle().
		Background(modal.Highlight).
		Foreground(modal.ReverseText).
		Padding(0, 3).
		Underline(true)

	s.ModalHintStyle = lipgloss.NewStyle().
		Foreground(modal.Muted).
		Background(modalBg)

	s.OptionActiveStyle = lipgloss.NewStyle().
		Background(modal.Highlight).
		Foreground(modal.ReverseText).
		Bold(true).
		Padding(0, 1)

	s.OptionInactiveStyle = lipgloss.NewStyle().
		Background(modalBg).
		Foreground(modal.Muted).
		Padding(0, 1)

	s.FieldFocusedStyle = lipgloss.NewStyle().
		Foreground(modal.Text).
		Background(modal.Panel).
		Bold(true)

	s.FieldStyle = lipgloss.NewStyle().
		Foreground(modal.Text).
		Background(modalBg)

	s.TableStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.colorAccent).
		Background(s.colorBg).
		Padding(0, 1)

	s.AppStyle = lipgloss.NewStyle().
		Background(s.colorBg).
		PaddingTop(1).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingBottom(1)

	return s
}

// CellStyle returns the grid cell style for a class type.
func (s *Styles) CellStyle(t timetable.ClassType) lipgloss.Style {
	switch t {
	case timetable.TypeLab:
		return s.CellLabStyle
	case timetable.TypeTutorial:
		return s.CellTutorialStyle
	case timetable.TypePractical:
		return s.CellPracticalStyle
	default:
		return s.CellRegularStyle
	}
}

// CellStyleWidth returns the class type cell style with the given width.
func (s *Styles) CellStyleWidth(t timetable.ClassType, width int) lipgloss.Style {
	return s.CellStyle(t).Width(width)
}

// EmptyCellStyleWidth returns the empty cell style with the given width.
func (s *Styles) EmptyCellStyleWidth(width int) lipgloss.Style {
	return s.EmptyCellStyle.Width(width)
}

// LunchCellStyleWidth returns the lunch cell style with the given width.
func (s *Styles) LunchCellStyleWidth(width int) lipgloss.Style {
	return s.LunchCellStyle.Width(width)
}

// CursorStyleWidth returns the cursor style with the given width.
func (s *Styles) CursorStyleWidth(width int) lipgloss.Style {
	return s.CursorStyle.Width(width)
}

// DayHeaderStyleWidth returns the day header style with the given width.
func (s *Styles) DayHeaderStyleWidth(width int) lipgloss.Style {
	return s.DayHeaderStyle.Width(width)
}

// ModalStyles returns the modal style group for view helpers.
func (s *Styles) ModalStyles() view.ModalStyles {
	return view.ModalStyles{
		ModalHeaderStyle:       s.ModalHeaderStyle,
		ModalTitleStyle:        s.ModalTitleStyle,
		ModalFooterStyle:       s.ModalFooterStyle,
		ModalStyle:             s.ModalStyle,
		ModalButtonStyle:       s.ModalButtonStyle,
		ModalButtonActiveStyle: s.ModalButtonActiveStyle,
		ModalBodyStyle:         s.ModalBodyStyle,
	}
}
