// Package layout draws the frame around every screen: a title bar with the
// signed-in user, and a footer with key hints or the pending request.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/lugat/internal/ui/theme"
)

const (
	MinWidth  = 80
	MinHeight = 24

	// HeaderHeight and FooterHeight are the rows taken by Chrome.
	HeaderHeight = 2
	FooterHeight = 2

	// Below these content sizes screens drop decoration.
	CompactWidth  = 100
	CompactHeight = 24
)

// KeyHint is one key and what it does, shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// IsCompact reports whether content of this size should use the compact
// rendering.
func IsCompact(width, height int) bool {
	return width < CompactWidth || height < CompactHeight
}

// IsTooSmall reports whether the terminal cannot fit the app at all.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage asks the user to enlarge the terminal.
func RenderMinSizeMessage(width, height int) string {
	return lipgloss.NewStyle().
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.Ink).
		Width(width).
		Height(height).
		Render(fmt.Sprintf("lugat needs at least %d×%d\n\nnow %d×%d", MinWidth, MinHeight, width, height))
}

// Chrome is the frame around a screen.
type Chrome struct {
	Title  string
	Status string
	Hints  []KeyHint
	// Busy replaces the hints while a request is in flight.
	Busy string
}

// Render places content between the title bar and the footer, padded to
// exactly height rows.
func (c Chrome) Render(content string, width, height int) string {
	body := lipgloss.NewStyle().
		Width(width).
		Height(max(height-HeaderHeight-FooterHeight, 0)).
		MaxHeight(max(height-HeaderHeight-FooterHeight, 0)).
		Render(content)
	return c.header(width) + "\n" + body + "\n" + c.footer(width)
}

// ContentSize is the room left for a screen inside the chrome.
func ContentSize(width, height int) (int, int) {
	return width, max(height-HeaderHeight-FooterHeight, 0)
}

func (c Chrome) header(width int) string {
	left := lipgloss.NewStyle().Foreground(theme.Brand).Bold(true).Render(" lugat")
	if c.Title != "" {
		left += lipgloss.NewStyle().Foreground(theme.Faint).Render(" / ") +
			lipgloss.NewStyle().Foreground(theme.Ink).Render(c.Title)
	}
	right := lipgloss.NewStyle().Foreground(theme.Notice).Render(c.Status + " ")

	gap := max(width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	bar := lipgloss.NewStyle().Background(theme.Surface).Width(width).
		Render(left + strings.Repeat(" ", gap) + right)
	return bar + "\n" + rule(width)
}

func (c Chrome) footer(width int) string {
	var line string
	if c.Busy != "" {
		line = lipgloss.NewStyle().Foreground(theme.Notice).Italic(true).Render(" ⋯ " + c.Busy)
	} else {
		line = " " + renderHints(c.Hints)
	}
	return rule(width) + "\n" + lipgloss.NewStyle().MaxWidth(width).Render(line)
}

func renderHints(hints []KeyHint) string {
	key := lipgloss.NewStyle().Foreground(theme.Mark).Bold(true)
	desc := lipgloss.NewStyle().Foreground(theme.Faint)
	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts, key.Render(h.Key)+" "+desc.Render(h.Description))
	}
	return strings.Join(parts, desc.Render("  ·  "))
}

func rule(width int) string {
	return lipgloss.NewStyle().Foreground(theme.Rule).Render(strings.Repeat("─", max(width, 0)))
}
