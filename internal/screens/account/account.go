// Package account holds the sign-in, registration and password reset screens.
package account

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lugat/internal/api"
	"github.com/abhisek/lugat/internal/router"
	"github.com/abhisek/lugat/internal/screen"
	"github.com/abhisek/lugat/internal/store"
	"github.com/abhisek/lugat/internal/ui/components"
	"github.com/abhisek/lugat/internal/ui/layout"
	"github.com/abhisek/lugat/internal/ui/theme"
	"github.com/abhisek/lugat/internal/workspace"
)

// signedInMsg reports the outcome of a login or registration.
type signedInMsg struct {
	Creds *store.Credentials
	Err   error
}

// noticeMsg reports the outcome of a password reset step.
type noticeMsg struct {
	Text string
	Err  error
}

// submitFunc turns the form values into a request.
type submitFunc func(ws *workspace.Workspace, values []string) tea.Cmd

// FormScreen is a titled form that sends one request on submit.
type FormScreen struct {
	ws       *workspace.Workspace
	title    string
	intro    string
	op       api.Op
	form     components.Form
	submit   submitFunc
	busy     bool
	errMsg   string
	info     string
	followUp func(ws *workspace.Workspace) screen.Screen
}

var _ screen.Screen = (*FormScreen)(nil)
var _ screen.KeyHintProvider = (*FormScreen)(nil)

func (s *FormScreen) Init() tea.Cmd {
	return s.form.Init()
}

func (s *FormScreen) Title() string {
	return s.title
}

func (s *FormScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Submit"},
	}
	if s.followUp != nil {
		hints = append(hints, layout.KeyHint{Key: "Ctrl+R", Description: "I have a code"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}

func (s *FormScreen) values() []string {
	out := make([]string, len(s.form.Fields))
	for i := range s.form.Fields {
		out[i] = s.form.Value(i)
	}
	return out
}

func (s *FormScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case signedInMsg:
		s.busy = false
		if msg.Err != nil {
			s.errMsg = api.Message(msg.Err, s.op.Fallback())
			return s, nil
		}
		s.ws.SetUser(msg.Creds)
		return s, router.Pop

	case noticeMsg:
		s.busy = false
		if msg.Err != nil {
			s.errMsg = api.Message(msg.Err, s.op.Fallback())
			return s, nil
		}
		s.errMsg = ""
		s.info = msg.Text
		return s, nil

	case components.FormSubmitMsg:
		if s.busy {
			return s, nil
		}
		s.busy = true
		s.errMsg = ""
		s.info = ""
		return s, s.submit(s.ws, s.values())

	case tea.KeyMsg:
		if msg.String() == "ctrl+r" && s.followUp != nil {
			return s, router.Replace(s.followUp(s.ws))
		}
		if s.busy {
			return s, nil
		}
	}

	var cmd tea.Cmd
	s.form, cmd = s.form.Update(msg)
	return s, cmd
}

func (s *FormScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(theme.Title.Width(cw - 6).Render(s.title))
	b.WriteString("\n")
	if s.intro != "" {
		b.WriteString(theme.Subtitle.Width(cw - 6).Render(s.intro))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(s.form.View())
	b.WriteString("\n\n")

	switch {
	case s.busy:
		b.WriteString(theme.Hint.Render("Please wait…"))
	case s.errMsg != "":
		b.WriteString(theme.ErrorText.Render(s.errMsg))
	case s.info != "":
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Right).Render(s.info))
	}

	return components.Center(components.Card(b.String(), cw), width, height)
}

func signIn(fn func(ctx context.Context) (*store.Credentials, error)) tea.Cmd {
	return func() tea.Msg {
		c, err := fn(context.Background())
		return signedInMsg{Creds: c, Err: err}
	}
}

func notice(fn func(ctx context.Context) (string, error)) tea.Cmd {
	return func() tea.Msg {
		text, err := fn(context.Background())
		return noticeMsg{Text: text, Err: err}
	}
}
