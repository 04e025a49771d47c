package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
)

// Form is a vertical stack of text inputs with one focused at a time.
// Tab and the arrow keys move focus; Enter on the last field submits.
type Form struct {
	Fields  []TextInput
	focused int
}

// FormSubmitMsg is returned by Form.Update when Enter is pressed on the
// last field.
type FormSubmitMsg struct{}

// NewForm focuses the first field.
func NewForm(fields ...TextInput) Form {
	f := Form{Fields: fields}
	if len(f.Fields) > 0 {
		f.Fields[0].Focus()
	}
	return f
}

// Init starts the cursor blinking in the focused field.
func (f Form) Init() tea.Cmd {
	if len(f.Fields) == 0 {
		return nil
	}
	return f.Fields[f.focused].Focus()
}

// Focused returns the index of the focused field.
func (f Form) Focused() int { return f.focused }

// Value returns the raw value of field i.
func (f Form) Value(i int) string {
	if i < 0 || i >= len(f.Fields) {
		return ""
	}
	return f.Fields[i].Value()
}

// FocusField moves focus to field i.
func (f *Form) FocusField(i int) tea.Cmd {
	if i < 0 || i >= len(f.Fields) {
		return nil
	}
	f.Fields[f.focused].Blur()
	f.focused = i
	return f.Fields[i].Focus()
}

// Update routes navigation keys and forwards the rest to the focused field.
func (f Form) Update(msg tea.Msg) (Form, tea.Cmd) {
	if len(f.Fields) == 0 {
		return f, nil
	}
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "tab", "down":
			return f, f.FocusField((f.focused + 1) % len(f.Fields))
		case "shift+tab", "up":
			return f, f.FocusField((f.focused - 1 + len(f.Fields)) % len(f.Fields))
		case "enter":
			if f.focused == len(f.Fields)-1 {
				return f, func() tea.Msg { return FormSubmitMsg{} }
			}
			return f, f.FocusField(f.focused + 1)
		}
	}

	var cmd tea.Cmd
	f.Fields[f.focused], cmd = f.Fields[f.focused].Update(msg)
	return f, cmd
}

// View renders one field per line.
func (f Form) View() string {
	lines := make([]string, len(f.Fields))
	for i, field := range f.Fields {
		lines[i] = field.View()
	}
	return strings.Join(lines, "\n\n")
}
