package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func TestOverlaySetActive(t *testing.T) {
	overlay := newOverlay()
	if overlay.Active() {
		t.Fatalf("expected overlay to start inactive")
	}

	overlay.SetActive(true)
	if !overlay.Active() {
		t.Fatalf("expected overlay to be active")
	}

	overlay.SetActive(false)
	if overlay.Active() {
		t.Fatalf("expected overlay to be inactive again")
	}
}

func TestOverlayRenderInactiveReturnsBase(t *testing.T) {
	overlay := newOverlay()
	base := "alpha\nbeta"
	got := overlay.Render(base, 10, 2, "content")
	if got != base {
		t.Fatalf("expected base content unchanged when inactive")
	}
}

func TestOverlayRenderCentersBox(t *testing.T) {
	overlay := newOverlay()
	overlay.SetBackground(lipgloss.Color("#0c0c0c"))
	overlay.SetActive(true)

	width := 30
	height := 12
	row := strings.Repeat(".", width)
	base := strings.Repeat(row+"\n", height-1) + row
	content := "ENTRY FORM"
	got := overlay.Render(base, width, height, content)

	lines := strings.Split(got, "\n")
	if len(lines) != height {
		t.Fatalf("expected %d lines, got %d", height, len(lines))
	}

	boxW, boxH := overlay.boxSize(splitContent(content), width, height)
	if boxW <= 0 || boxH <= 0 {
		t.Fatalf("expected non-zero box size")
	}
	top := (height - boxH) / 2
	bg := overlay.bgSeq()

	if !strings.Contains(ansi.Strip(got), content) {
		t.Fatalf("expected rendered content to include entry form text")
	}

	for i, line := range lines {
		lineWidth := lipgloss.Width(line)
		if lineWidth != width {
			t.Fatalf("expected line width %d, got %d", width, lineWidth)
		}

		hasBg := strings.Contains(line, bg)
		if i >= top && i < top+boxH {
			if !hasBg {
				t.Fatalf("expected box background on line %d", i)
			}
		} else if hasBg {
			t.Fatalf("expected no box background on line %d", i)
		}
	}
}

func TestOverlayBoxGrowsToContent(t *testing.T) {
	overlay := newOverlay()
	wide := strings.Repeat("w", overlayMinWidth+10)
	body := splitContent(wide)

	boxW, _ := overlay.boxSize(body, 2*overlayMinWidth+20, 30)
	if boxW < overlayMinWidth+10 {
		t.Fatalf("box width %d does not fit content width %d", boxW, overlayMinWidth+10)
	}

	// Never wider than the terminal, however long the content.
	boxW, _ = overlay.boxSize(body, overlayMinWidth, 30)
	if boxW != overlayMinWidth {
		t.Fatalf("box width %d exceeds terminal width %d", boxW, overlayMinWidth)
	}
}

func TestOverlayRenderUsesBackgroundColor(t *testing.T) {
	overlay := newOverlay()
	overlay.SetBackground(lipgloss.Color("#123456"))
	overlay.SetActive(true)

	width := 20
	height := 6
	row := strings.Repeat(".", width)
	base := strings.Repeat(row+"\n", height-1) + row
	got := overlay.Render(base, width, height, "x")

	if !strings.Contains(got, overlay.bgSeq()) {
		t.Fatalf("expected overlay background sequence in output")
	}
}

func TestFitLine(t *testing.T) {
	if got := fitLine("ab", 5); got != "ab   " {
		t.Fatalf("fitLine pad = %q", got)
	}
	if got := fitLine("abcdef", 3); lipgloss.Width(got) != 3 {
		t.Fatalf("fitLine cut width = %d", lipgloss.Width(got))
	}
}
