package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lugat/internal/ui/theme"
)

// ContentWidth returns the uniform inner width used for boxed sections.
func ContentWidth(frameWidth int) int {
	w := frameWidth - 6
	if w > 64 {
		w = 64
	}
	if w < 20 {
		w = 20
	}
	return w
}

// Card wraps content in a rounded card at the given content width.
func Card(content string, cw int) string {
	return theme.Card.
		Width(cw - 2).
		Render(content)
}

// Center places content in the middle of the given area.
func Center(content string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

// Banner renders a single centered line in the given color style.
func Banner(text string, style lipgloss.Style, width int) string {
	return style.Width(width).Align(lipgloss.Center).Render(text)
}
