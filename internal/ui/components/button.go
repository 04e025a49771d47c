package components

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lugat/internal/ui/theme"
)

// Button is a styled button component.
type Button struct {
	Label   string
	Active  bool
	OnPress func() tea.Cmd
}

// NewButton creates a new button.
func NewButton(label string, active bool, onPress func() tea.Cmd) Button {
	return Button{
		Label:   label,
		Active:  active,
		OnPress: onPress,
	}
}

// View renders the button.
func (b Button) View() string {
	if b.Active {
		return theme.ButtonActive.Render("▸ " + b.Label)
	}
	return theme.ButtonInactive.Render(b.Label)
}

// ButtonRow is a horizontal set of buttons with one active at a time.
type ButtonRow struct {
	Buttons []Button
	active  int
}

// NewButtonRow activates the first button.
func NewButtonRow(buttons ...Button) ButtonRow {
	r := ButtonRow{Buttons: buttons}
	r.setActive(0)
	return r
}

// Active returns the index of the active button.
func (r ButtonRow) Active() int { return r.active }

func (r *ButtonRow) setActive(i int) {
	if i < 0 || i >= len(r.Buttons) {
		return
	}
	r.active = i
	for j := range r.Buttons {
		r.Buttons[j].Active = j == i
	}
}

// Update moves between buttons with left/right and presses on Enter.
func (r ButtonRow) Update(msg tea.Msg) (ButtonRow, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(r.Buttons) == 0 {
		return r, nil
	}
	switch kmsg.String() {
	case "left", "h", "shift+tab":
		r.setActive((r.active - 1 + len(r.Buttons)) % len(r.Buttons))
	case "right", "l", "tab":
		r.setActive((r.active + 1) % len(r.Buttons))
	case "enter":
		if b := r.Buttons[r.active]; b.OnPress != nil {
			return r, b.OnPress()
		}
	}
	return r, nil
}

// View renders the buttons side by side.
func (r ButtonRow) View() string {
	parts := make([]string, 0, len(r.Buttons)*2)
	for i, b := range r.Buttons {
		if i > 0 {
			parts = append(parts, "  ")
		}
		parts = append(parts, b.View())
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, parts...)
}
