package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/lugat/internal/ui/theme"
)

// ProgressBar displays a horizontal progress bar.
type ProgressBar struct {
	Label string
	Done  int
	Total int
	Width int
}

// NewProgressBar creates a bar for done out of total.
func NewProgressBar(label string, done, total, width int) ProgressBar {
	return ProgressBar{
		Label: label,
		Done:  done,
		Total: total,
		Width: width,
	}
}

// Fraction returns done/total clamped to [0, 1]. An unknown total is 0.
func (p ProgressBar) Fraction() float64 {
	if p.Total <= 0 {
		return 0
	}
	f := float64(p.Done) / float64(p.Total)
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// View renders the bar followed by "done/total".
func (p ProgressBar) View() string {
	var result string

	if p.Label != "" {
		result += lipgloss.NewStyle().Foreground(theme.Ink).Render(p.Label) + "  "
	}

	count := fmt.Sprintf("  %d/%d", p.Done, p.Total)
	barWidth := p.Width - lipgloss.Width(result) - len(count)
	if barWidth < 4 {
		barWidth = 4
	}

	filled := int(float64(barWidth) * p.Fraction())
	empty := barWidth - filled

	result += theme.ProgressFilled.Render(strings.Repeat(" ", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", empty))

	result += lipgloss.NewStyle().
		Foreground(theme.Faint).
		Render(count)

	return result
}
