package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lugat/internal/ui/theme"
)

// MenuItem is one entry of a Menu. Key, when set, selects and runs the
// item in one press.
type MenuItem struct {
	Label    string
	Key      string
	Action   func() tea.Cmd
	Disabled bool
}

// Caption is the label with its shortcut, as drawn on buttons.
func (it MenuItem) Caption() string {
	if it.Key == "" {
		return it.Label
	}
	return strings.ToUpper(it.Key) + " · " + it.Label
}

// Menu is a vertical list of actions. Up and down wrap around and skip
// disabled items.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu selects the first enabled item.
func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items, Selected: -1}
	m.move(1)
	if m.Selected < 0 {
		m.Selected = 0
	}
	return m
}

func (m *Menu) move(dir int) {
	n := len(m.Items)
	for step := 1; step <= n; step++ {
		i := ((m.Selected+dir*step)%n + n) % n
		if !m.Items[i].Disabled {
			m.Selected = i
			return
		}
	}
}

func (m Menu) run(i int) tea.Cmd {
	if i < 0 || i >= len(m.Items) {
		return nil
	}
	it := m.Items[i]
	if it.Disabled || it.Action == nil {
		return nil
	}
	return it.Action()
}

func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(m.Items) == 0 {
		return m, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k", "shift+tab":
		m.move(-1)
		return m, nil
	case "down", "j", "tab":
		m.move(1)
		return m, nil
	case "enter":
		return m, m.run(m.Selected)
	}

	for i, it := range m.Items {
		if it.Key != "" && !it.Disabled && strings.EqualFold(it.Key, key) {
			m.Selected = i
			return m, m.run(i)
		}
	}
	return m, nil
}

// View renders the menu as plain lines, for short terminals.
func (m Menu) View() string {
	var b strings.Builder
	for i, it := range m.Items {
		switch {
		case it.Disabled:
			b.WriteString(theme.Disabled.Render("    " + it.Caption()))
		case i == m.Selected:
			b.WriteString(theme.Selected.Render("  ▸ " + it.Caption()))
		default:
			b.WriteString(theme.Unselected.Render("    " + it.Caption()))
		}
		b.WriteString("\n")
	}
	return b.String()
}
