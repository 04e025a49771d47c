package settings

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lugat/internal/api"
	"github.com/abhisek/lugat/internal/quiz"
	"github.com/abhisek/lugat/internal/router"
	"github.com/abhisek/lugat/internal/screen"
	quizscreen "github.com/abhisek/lugat/internal/screens/quiz"
	"github.com/abhisek/lugat/internal/ui/components"
	"github.com/abhisek/lugat/internal/ui/layout"
	"github.com/abhisek/lugat/internal/ui/theme"
	"github.com/abhisek/lugat/internal/vocab"
	"github.com/abhisek/lugat/internal/workspace"
)

type countLoadedMsg struct {
	Count int
	Err   error
}

type startedMsg struct {
	Orchestrator *quiz.Orchestrator
	Err          error
}

const (
	fieldDirection = iota
	fieldStart
	fieldEnd
	fieldSound
	fieldCount
)

var directions = []vocab.Direction{vocab.Forward, vocab.Reverse}

// SettingsScreen picks the direction and word range of a new test.
type SettingsScreen struct {
	ws        *workspace.Workspace
	direction components.Choice
	start     components.TextInput
	end       components.TextInput
	sound     components.Choice
	focus     int
	count     int
	loaded    bool
	busy      bool
	errMsg    string
}

var _ screen.Screen = (*SettingsScreen)(nil)
var _ screen.KeyHintProvider = (*SettingsScreen)(nil)

// New creates a new SettingsScreen prefilled from the last test.
func New(ws *workspace.Workspace) *SettingsScreen {
	prev := ws.Settings()

	labels := make([]string, len(directions))
	selected := 0
	for i, d := range directions {
		labels[i] = d.Label()
		if d == prev.Direction {
			selected = i
		}
	}

	soundSel := 0
	if b := ws.Bell(); b != nil && b.Muted() {
		soundSel = 1
	}

	s := &SettingsScreen{
		ws:        ws,
		direction: components.NewChoice("Direction", labels, selected),
		start:     components.NewNumericInput("Start index", prev.Start),
		end:       components.NewNumericInput("End index", prev.End),
		sound:     components.NewChoice("Sound", []string{"On", "Off"}, soundSel),
	}
	s.direction.Focused = true
	return s
}

func (s *SettingsScreen) Init() tea.Cmd {
	ws := s.ws
	return func() tea.Msg {
		ctx := context.Background()
		cache, err := ws.Words(ctx)
		if err != nil {
			return countLoadedMsg{Err: err}
		}
		if err := cache.Reload(ctx); err != nil {
			return countLoadedMsg{Err: err}
		}
		return countLoadedMsg{Count: cache.Len()}
	}
}

func (s *SettingsScreen) Title() string {
	return "Test settings"
}

func (s *SettingsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Field"},
		{Key: "←→", Description: "Change"},
		{Key: "Enter", Description: "Start"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SettingsScreen) setFocus(i int) tea.Cmd {
	s.focus = (i + fieldCount) % fieldCount
	s.direction.Focused = s.focus == fieldDirection
	s.sound.Focused = s.focus == fieldSound
	s.start.Blur()
	s.end.Blur()
	switch s.focus {
	case fieldStart:
		return s.start.Focus()
	case fieldEnd:
		return s.end.Focus()
	}
	return nil
}

// request reads the form. Unparseable numbers are reported like
// out-of-range ones.
func (s *SettingsScreen) request() (quiz.StartRequest, error) {
	req := quiz.StartRequest{Direction: directions[s.direction.Selected]}
	start, err := s.start.NumericValue()
	if err != nil {
		return req, &quiz.ValidationError{Field: "start", Msg: "Start index must be a number."}
	}
	end, err := s.end.NumericValue()
	if err != nil {
		return req, &quiz.ValidationError{Field: "end", Msg: "End index must be a number."}
	}
	req.Start, req.End = start, end
	return req, nil
}

func (s *SettingsScreen) begin() tea.Cmd {
	req, err := s.request()
	if s.count == 0 || err == nil {
		err = quiz.ValidateRange(s.count, req.Start, req.End)
	}
	if err != nil {
		s.errMsg = api.Message(err, api.OpStartTest.Fallback())
		return nil
	}
	s.ws.SetSettings(req)
	s.busy = true
	s.errMsg = ""

	ws, count := s.ws, s.count
	return func() tea.Msg {
		ctx := context.Background()
		o, err := ws.NewOrchestrator(ctx)
		if err != nil {
			return startedMsg{Err: err}
		}
		if err := o.Start(ctx, req, count); err != nil {
			return startedMsg{Err: err}
		}
		return startedMsg{Orchestrator: o}
	}
}

func (s *SettingsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case countLoadedMsg:
		s.loaded = msg.Err == nil
		if msg.Err != nil {
			s.errMsg = api.Message(msg.Err, api.OpListWords.Fallback())
			return s, nil
		}
		s.count = msg.Count
		if end, err := s.end.NumericValue(); s.count > 0 && (err != nil || end == 0 || end > s.count-1) {
			s.end.SetValue(fmt.Sprint(s.count - 1))
		}
		return s, nil

	case startedMsg:
		s.busy = false
		if msg.Err != nil {
			s.errMsg = api.Message(msg.Err, api.OpStartTest.Fallback())
			return s, nil
		}
		return s, router.Replace(quizscreen.New(s.ws, msg.Orchestrator))

	case tea.KeyMsg:
		if s.busy {
			return s, nil
		}
		switch msg.String() {
		case "up", "shift+tab":
			return s, s.setFocus(s.focus - 1)
		case "down", "tab":
			return s, s.setFocus(s.focus + 1)
		case "enter":
			if !s.loaded {
				return s, nil
			}
			return s, s.begin()
		}
	}

	var cmd tea.Cmd
	switch s.focus {
	case fieldDirection:
		s.direction, cmd = s.direction.Update(msg)
	case fieldStart:
		s.start, cmd = s.start.Update(msg)
	case fieldEnd:
		s.end, cmd = s.end.Update(msg)
	case fieldSound:
		before := s.sound.Selected
		s.sound, cmd = s.sound.Update(msg)
		if b := s.ws.Bell(); b != nil && before != s.sound.Selected {
			b.SetMuted(s.sound.Selected == 1)
		}
	}
	return s, cmd
}

func (s *SettingsScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(theme.Title.Width(cw - 6).Render("New test"))
	b.WriteString("\n")
	switch {
	case !s.loaded && s.errMsg == "":
		b.WriteString(theme.Subtitle.Width(cw - 6).Render("Counting your words…"))
	case s.loaded:
		b.WriteString(theme.Subtitle.Width(cw - 6).Render(
			fmt.Sprintf("You have %d words. Valid range: 0-%d", s.count, max(s.count-1, 0))))
	}
	b.WriteString("\n\n")

	b.WriteString(s.direction.View())
	b.WriteString("\n\n")
	b.WriteString(s.start.View())
	b.WriteString("\n\n")
	b.WriteString(s.end.View())
	b.WriteString("\n\n")
	b.WriteString(s.sound.View())
	b.WriteString("\n\n")

	switch {
	case s.busy:
		b.WriteString(theme.Hint.Render("Starting…"))
	case s.errMsg != "":
		b.WriteString(theme.ErrorText.Render(s.errMsg))
	case s.loaded && s.count == 0:
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Notice).Render("Add some words before starting a test."))
	}

	return components.Center(components.Card(b.String(), cw), width, height)
}
