package components

import (
	"strconv"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lugat/internal/ui/theme"
)

// TextInput wraps bubbles/textinput with a label and Lugat styling.
type TextInput struct {
	Model       textinput.Model
	Label       string
	NumericOnly bool
	submitted   bool
	valid       bool
}

// NewTextInput creates a new, unfocused text input. limit caps the
// number of characters; 0 means no cap.
func NewTextInput(label, placeholder string, limit int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = ""
	if limit > 0 {
		ti.CharLimit = limit
	}
	ti.SetWidth(32)

	return TextInput{
		Model: ti,
		Label: label,
	}
}

// NewPasswordInput creates a text input that masks what is typed.
func NewPasswordInput(label string) TextInput {
	t := NewTextInput(label, "", 128)
	t.Model.EchoMode = textinput.EchoPassword
	t.Model.EchoCharacter = '•'
	return t
}

// NewNumericInput creates a text input that only accepts digits.
func NewNumericInput(label string, value int) TextInput {
	t := NewTextInput(label, "0", 6)
	t.NumericOnly = true
	t.Model.SetValue(strconv.Itoa(value))
	return t
}

// Focus gives the input keyboard focus.
func (t *TextInput) Focus() tea.Cmd {
	return t.Model.Focus()
}

// Blur removes keyboard focus.
func (t *TextInput) Blur() {
	t.Model.Blur()
}

// Focused reports whether the input has focus.
func (t TextInput) Focused() bool {
	return t.Model.Focused()
}

// Update handles messages.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if t.NumericOnly {
		if kmsg, ok := msg.(tea.KeyMsg); ok {
			key := kmsg.String()
			if len(key) == 1 {
				if key[0] < '0' || key[0] > '9' {
					return t, nil
				}
			}
		}
	}

	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the label and the input on one line.
func (t TextInput) View() string {
	label := lipgloss.NewStyle().Foreground(theme.Faint).Width(14).Render(t.Label)
	if t.Focused() {
		label = lipgloss.NewStyle().Foreground(theme.Brand).Bold(true).Width(14).Render(t.Label)
	}
	view := label + t.Model.View()
	if t.submitted {
		if t.valid {
			view += " " + lipgloss.NewStyle().Foreground(theme.Right).Render("✓")
		} else {
			view += " " + lipgloss.NewStyle().Foreground(theme.Wrong).Render("✗")
		}
	}
	return view
}

// Value returns the current input value.
func (t TextInput) Value() string {
	return t.Model.Value()
}

// SetValue replaces the input value.
func (t *TextInput) SetValue(v string) {
	t.Model.SetValue(v)
}

// Reset clears the value and any submit marker.
func (t *TextInput) Reset() {
	t.Model.Reset()
	t.submitted = false
}

// NumericValue returns the input value as an integer.
func (t TextInput) NumericValue() (int, error) {
	return strconv.Atoi(t.Model.Value())
}

// Submit marks the input as submitted with a validation result.
func (t *TextInput) Submit(valid bool) {
	t.submitted = true
	t.valid = valid
}
