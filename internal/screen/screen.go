package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lugat/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// EscapeHandler is implemented by screens that want Esc for themselves,
// e.g. to ask for confirmation before leaving a running test.
type EscapeHandler interface {
	HandlesEscape() bool
}

// BusyReporter is implemented by screens that wait on the server. A
// non-empty Busy replaces the key hints in the footer.
type BusyReporter interface {
	Busy() string
}

// ResumedMsg is delivered to a screen when it becomes active again
// after the screen above it was popped.
type ResumedMsg struct{}
