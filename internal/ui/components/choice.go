package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lugat/internal/ui/theme"
)

// Choice picks one of a few labelled options with left/right.
type Choice struct {
	Label    string
	Options  []string
	Selected int
	Focused  bool
}

// NewChoice creates a choice with the given option selected.
func NewChoice(label string, options []string, selected int) Choice {
	if selected < 0 || selected >= len(options) {
		selected = 0
	}
	return Choice{Label: label, Options: options, Selected: selected}
}

// Update cycles the selection while focused.
func (c Choice) Update(msg tea.Msg) (Choice, tea.Cmd) {
	if !c.Focused || len(c.Options) == 0 {
		return c, nil
	}
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}
	switch kmsg.String() {
	case "left", "h":
		c.Selected = (c.Selected - 1 + len(c.Options)) % len(c.Options)
	case "right", "l", "space", " ":
		c.Selected = (c.Selected + 1) % len(c.Options)
	}
	return c, nil
}

// View renders the label followed by every option, the selected one highlighted.
func (c Choice) View() string {
	labelStyle := lipgloss.NewStyle().Foreground(theme.Faint).Width(14)
	if c.Focused {
		labelStyle = labelStyle.Foreground(theme.Brand).Bold(true)
	}
	opts := make([]string, len(c.Options))
	for i, o := range c.Options {
		if i == c.Selected {
			opts[i] = theme.Selected.Render("[" + o + "]")
		} else {
			opts[i] = theme.Unselected.Render(" " + o + " ")
		}
	}
	return labelStyle.Render(c.Label) + strings.Join(opts, " ")
}
