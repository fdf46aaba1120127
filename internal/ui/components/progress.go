package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mockmentor/internal/ui/theme"
)

const (
	minBarWidth  = 4
	percentWidth = 6 // "  100%"
	filledCell   = "█"
	emptyCell    = "░"
)

// ProgressBar displays a horizontal progress bar.
type ProgressBar struct {
	Label       string
	LabelWidth  int
	Percent     float64 // 0-1
	ShowPercent bool
	Width       int
}

// NewProgressBar creates a new progress bar.
func NewProgressBar(label string, percent float64, showPercent bool, width int) ProgressBar {
	return ProgressBar{
		Label:       label,
		Percent:     percent,
		ShowPercent: showPercent,
		Width:       width,
	}
}

// View renders the progress bar. The rendered width never exceeds Width
// unless Width is too small to hold the label and a minimal bar.
func (p ProgressBar) View() string {
	var b strings.Builder

	if p.Label != "" {
		b.WriteString(theme.Body.Render(fmt.Sprintf("%-*s", p.LabelWidth, p.Label)))
		b.WriteString("  ")
	}

	barWidth := p.Width - lipgloss.Width(b.String())
	if p.ShowPercent {
		barWidth -= percentWidth
	}
	barWidth = max(barWidth, minBarWidth)

	pct := min(max(p.Percent, 0), 1)
	filled := int(float64(barWidth) * pct)

	b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Render(strings.Repeat(filledCell, filled)))
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat(emptyCell, barWidth-filled)))

	if p.ShowPercent {
		b.WriteString(theme.Label.Render(fmt.Sprintf("  %3d%%", int(pct*100))))
	}
	return b.String()
}
