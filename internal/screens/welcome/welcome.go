// Package welcome is the splash shown at startup.
package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lugat/internal/router"
	"github.com/abhisek/lugat/internal/screen"
	"github.com/abhisek/lugat/internal/ui/components"
	"github.com/abhisek/lugat/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	flipEvery    = 4 // ticks per word pair
	phase1End    = 500 * time.Millisecond
	phase2End    = 1500 * time.Millisecond
	totalDur     = 3000 * time.Millisecond
)

const tagline = "English ⇄ Uzbek, one word at a time"

type tickMsg time.Time

// WelcomeScreen plays a short splash, then hands over to the screen
// produced by next on the first key press.
type WelcomeScreen struct {
	next         func() screen.Screen
	elapsed      time.Duration
	tickCount    int
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that will transition to the screen produced by next.
func New(next func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{next: next}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.transitioned {
			return w, nil
		}
		if w.elapsed < totalDur {
			w.elapsed += tickInterval
		}
		w.tickCount++
		return w, tick()

	case tea.KeyPressMsg:
		return w, w.transition()
	}

	return w, nil
}

// transition builds the next screen once; later calls are no-ops.
func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	return router.Replace(w.next())
}

func (w *WelcomeScreen) View(width, height int) string {
	var sections []string

	// Phase 1: the empty book.
	frame := 0
	if w.elapsed >= phase1End {
		// Phase 2+: word pairs flip on the pages.
		frame = w.tickCount / flipEvery
	}
	sections = append(sections, renderBook(frame))

	// Phase 3: wordmark, tagline and hint.
	if w.elapsed >= phase2End {
		sections = append(sections,
			"",
			components.Wordmark(width < components.WordmarkMinWidth+4),
			"",
			lipgloss.NewStyle().Foreground(theme.Ink).Bold(true).Render(tagline),
			"",
			lipgloss.NewStyle().Foreground(theme.Faint).Italic(true).Render("press any key to continue"),
		)
	}

	content := strings.Join(sections, "\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
