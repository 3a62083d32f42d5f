package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const (
	overlayMinWidth  = 24
	overlayMinHeight = 5
	overlayMaxWidth  = 72
	overlayMaxHeight = 20
)

// Overlay composites a centered opaque modal box over the grid view. The
// box grows to fit its content, clamped to the terminal.
type Overlay struct {
	active bool
	bg     lipgloss.Color
}

func newOverlay() Overlay { return Overlay{} }

// Active reports whether the overlay is visible.
func (o Overlay) Active() bool { return o.active }

// SetActive shows or hides the overlay.
func (o *Overlay) SetActive(active bool) { o.active = active }

// SetBackground sets the box fill color.
func (o *Overlay) SetBackground(c lipgloss.Color) { o.bg = c }

func (o Overlay) bgSeq() string {
	return ansi.Style{}.BackgroundColor(ansi.HexColor(string(o.bg))).String()
}

// Render draws the modal box centered over base. An inactive overlay or
// degenerate dimensions return base untouched.
func (o Overlay) Render(base string, width, height int, content string) string {
	if !o.active || width <= 0 || height <= 0 {
		return base
	}

	body := splitContent(content)
	boxW, boxH := o.boxSize(body, width, height)
	if boxW <= 0 || boxH <= 0 {
		return base
	}

	top := max0((height - boxH) / 2)
	left := max0((width - boxW) / 2)

	box := o.paintBox(body, boxW, boxH)
	canvas := padCanvas(base, width, height)

	var b strings.Builder
	for row := 0; row < height; row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		if row < top || row >= top+boxH {
			b.WriteString(canvas[row])
			continue
		}
		line := canvas[row]
		b.WriteString(ansi.Cut(line, 0, left))
		b.WriteString(box[row-top])
		b.WriteString(ansi.Cut(line, left+boxW, width))
	}
	return b.String()
}

// boxSize picks the box dimensions: half the width and a third of the
// height, clamped, then grown to fit the content and capped at the
// terminal size.
func (o Overlay) boxSize(body []string, width, height int) (int, int) {
	cw, ch := contentSize(body)
	w := clamp(width/2, overlayMinWidth, overlayMaxWidth)
	h := clamp(height/3, overlayMinHeight, overlayMaxHeight)
	if cw > w {
		w = cw
	}
	if ch > h {
		h = ch
	}
	if w > width {
		w = width
	}
	if h > height {
		h = height
	}
	return w, h
}

// paintBox fills a boxW x boxH rectangle with the background color and
// centers the content lines inside it.
func (o Overlay) paintBox(body []string, boxW, boxH int) []string {
	bg := o.bgSeq()
	blank := bg + strings.Repeat(" ", boxW) + ansi.ResetStyle

	cw, ch := contentSize(body)
	if cw > boxW {
		cw = boxW
	}
	if ch > boxH {
		ch = boxH
	}
	top := max0((boxH - ch) / 2)
	left := (boxW - cw) / 2

	rows := make([]string, boxH)
	for i := range rows {
		rows[i] = blank
	}
	for i := 0; i < ch; i++ {
		line := body[i]
		w := lipgloss.Width(line)
		if w > cw {
			line = ansi.Cut(line, 0, cw)
			w = cw
		}
		if w < cw {
			line += strings.Repeat(" ", cw-w)
		}
		line = reassertBackground(line, bg)
		rows[top+i] = bg + strings.Repeat(" ", left) + line + bg +
			strings.Repeat(" ", boxW-left-cw) + ansi.ResetStyle
	}
	return rows
}

// reassertBackground re-applies the box fill after any reset a styled
// content fragment emits, so lipgloss output does not punch holes in it.
func reassertBackground(line, bg string) string {
	if bg == "" || line == "" {
		return line
	}
	for _, reset := range []string{ansi.ResetStyle, "\x1b[0m", "\x1b[49m"} {
		line = strings.ReplaceAll(line, reset, reset+bg)
	}
	return line
}

func splitContent(content string) []string {
	if content == "" {
		return nil
	}
	lines := strings.Split(content, "\n")
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func contentSize(lines []string) (int, int) {
	w := 0
	for _, l := range lines {
		if lw := lipgloss.Width(l); lw > w {
			w = lw
		}
	}
	return w, len(lines)
}

// padCanvas squares the base view off to exactly width x height.
func padCanvas(base string, width, height int) []string {
	lines := strings.Split(base, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	for i, l := range lines {
		lines[i] = fitLine(l, width)
	}
	return lines
}

func fitLine(line string, width int) string {
	w := lipgloss.Width(line)
	switch {
	case w > width:
		return ansi.Cut(line, 0, width)
	case w < width:
		return line + strings.Repeat(" ", width-w)
	}
	return line
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func max0(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
