package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/lugat/internal/ui/components"
	"github.com/abhisek/lugat/internal/ui/theme"
)

// renderTitle returns the centered wordmark.
func renderTitle(cw int, compact bool) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(components.Wordmark(compact || cw < components.WordmarkMinWidth))
}

// stats is what the dashboard line shows.
type stats struct {
	user      string
	words     int
	wordsErr  string
	lastScore int
	hasLast   bool
}

// renderStatsBar renders the dashboard line in a bordered box matching content width.
func renderStatsBar(s stats, cw int, compact bool) string {
	userStyle := lipgloss.NewStyle().Foreground(theme.Mark).Bold(true)
	wordStyle := lipgloss.NewStyle().Foreground(theme.Notice).Bold(true)
	scoreStyle := lipgloss.NewStyle().Foreground(theme.Teal).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(theme.Faint)

	var parts []string
	if s.user == "" {
		parts = append(parts, dimStyle.Render("SIGNED OUT"))
	} else {
		parts = append(parts, userStyle.Render("● "+strings.ToUpper(s.user)))
		switch {
		case s.wordsErr != "":
			parts = append(parts, lipgloss.NewStyle().Foreground(theme.Wrong).Render("WORDS UNAVAILABLE"))
		case compact:
			parts = append(parts, wordStyle.Render(fmt.Sprintf("%dw", s.words)))
		default:
			parts = append(parts, wordStyle.Render(fmt.Sprintf("%d WORDS", s.words)))
		}
	}
	if s.hasLast {
		parts = append(parts, scoreStyle.Render(fmt.Sprintf("LAST %d%%", s.lastScore)))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Teal).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(strings.Join(parts, "  "))
}

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 28

// renderMenu draws each item as a fixed-width button, or falls back to the
// plain menu on short terminals.
func renderMenu(m components.Menu, cw int, compact bool) string {
	if compact {
		return lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(m.View())
	}

	base := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)
	buttons := make([]string, 0, len(m.Items))
	for i, it := range m.Items {
		if i == m.Selected {
			buttons = append(buttons, base.
				Bold(true).
				Foreground(theme.Night).
				Background(theme.Mark).
				BorderForeground(theme.Mark).
				Render("▸ "+it.Caption()))
			continue
		}
		buttons = append(buttons, base.
			Foreground(theme.Ink).
			BorderForeground(theme.Rule).
			Render(it.Caption()))
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(buttons, "\n"))
}

// renderNotice renders a one-line message under the menu.
func renderNotice(text string, cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Notice).
		Width(cw).
		Align(lipgloss.Center).
		Render(text)
}

// renderCabinetFrame wraps content in a double-border frame, centered
// in the given dimensions.
func renderCabinetFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Brand).
		Width(width - 2).
		Height(height - 2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}
