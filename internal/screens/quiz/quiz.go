// Package quiz is the screen that runs a server-scored test.
package quiz

import (
	"context"
	"errors"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lugat/internal/api"
	orch "github.com/abhisek/lugat/internal/quiz"
	"github.com/abhisek/lugat/internal/router"
	"github.com/abhisek/lugat/internal/screen"
	"github.com/abhisek/lugat/internal/screens/mistakes"
	"github.com/abhisek/lugat/internal/screens/result"
	"github.com/abhisek/lugat/internal/ui/components"
	"github.com/abhisek/lugat/internal/ui/layout"
	"github.com/abhisek/lugat/internal/vocab"
	"github.com/abhisek/lugat/internal/workspace"
)

// QuizScreen implements screen.Screen for a running test.
type QuizScreen struct {
	ws          *workspace.Workspace
	o           *orch.Orchestrator
	snap        orch.Snapshot
	input       components.TextInput
	confirmQuit bool
	errMsg      string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.EscapeHandler = (*QuizScreen)(nil)
var _ screen.BusyReporter = (*QuizScreen)(nil)

// New wraps an orchestrator whose session has been started.
func New(ws *workspace.Workspace, o *orch.Orchestrator) *QuizScreen {
	in := components.NewTextInput("Answer", "type the translation", 0)
	in.Focus()
	return &QuizScreen{
		ws:    ws,
		o:     o,
		snap:  o.Snapshot(),
		input: in,
	}
}

func (s *QuizScreen) Init() tea.Cmd {
	s.snap.Pending = true
	return tea.Batch(s.input.Focus(), s.step(s.o.LoadQuestion))
}

func (s *QuizScreen) Title() string {
	return "Test"
}

// HandlesEscape keeps Esc from leaving a running session without a
// confirmation.
func (s *QuizScreen) HandlesEscape() bool {
	return !s.snap.State.Terminal()
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.confirmQuit:
		return []layout.KeyHint{
			{Key: "Y", Description: "Finish now"},
			{Key: "N", Description: "Keep going"},
		}
	case s.snap.State == orch.Errored:
		hints := []layout.KeyHint{{Key: "R", Description: "Retry"}}
		if len(s.unfinishedMistakes()) > 0 {
			hints = append(hints, layout.KeyHint{Key: "M", Description: "Replay mistakes"})
		}
		return append(hints, layout.KeyHint{Key: "Esc", Description: "Finish"})
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Submit"},
		{Key: "Esc", Description: "Finish early"},
	}
}

func (s *QuizScreen) Busy() string {
	if !s.snap.Pending {
		return ""
	}
	switch s.snap.State {
	case orch.AwaitingAnswer:
		return "Checking answer"
	case orch.Transitioning:
		return "Loading next question"
	case orch.Finishing:
		return "Fetching result"
	case orch.Errored:
		return "Retrying"
	}
	return "Loading question"
}

// unfinishedMistakes returns the wrong answers seen so far when the result
// itself could not be fetched.
func (s *QuizScreen) unfinishedMistakes() []vocab.Mistake {
	if s.snap.State != orch.Errored || s.snap.FailedStep != orch.Finishing {
		return nil
	}
	return s.o.Mistakes()
}

func (s *QuizScreen) cue() orch.Cue {
	if b := s.ws.Bell(); b != nil {
		return b
	}
	return nil
}

// step runs fn in the background and reports back with stepDoneMsg.
func (s *QuizScreen) step(fn func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return stepDoneMsg{Err: fn(context.Background())}
	}
}

func (s *QuizScreen) submit(answer string) tea.Cmd {
	o := s.o
	return func() tea.Msg {
		a, err := o.SubmitAnswer(context.Background(), answer)
		return answeredMsg{Answer: a, Err: err}
	}
}

// settle refreshes the snapshot after a step. It fetches the next prompt
// after an advance and moves on to the result once the session is over.
func (s *QuizScreen) settle(err error) tea.Cmd {
	s.snap = s.o.Snapshot()
	s.errMsg = ""
	if err != nil && !errors.Is(err, orch.ErrBusy) {
		s.errMsg = api.Message(err, fallbackFor(s.snap.FailedStep))
	}
	if s.snap.State == orch.Finished {
		res, _ := s.o.Result()
		return router.Replace(result.New(res, s.cue()))
	}
	if err == nil && s.snap.State == orch.AwaitingQuestion && !s.snap.Pending {
		s.snap.Pending = true
		return s.step(s.o.LoadQuestion)
	}
	return nil
}

// fallbackFor names the failed request for the generic error line.
func fallbackFor(step orch.State) string {
	switch step {
	case orch.AwaitingQuestion:
		return api.OpQuestion.Fallback()
	case orch.AwaitingAnswer:
		return api.OpAnswer.Fallback()
	case orch.Transitioning:
		return api.OpNext.Fallback()
	case orch.Finishing:
		return api.OpFinish.Fallback()
	}
	return api.DefaultFallback
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case stepDoneMsg:
		return s, s.settle(msg.Err)

	case answeredMsg:
		if msg.Err == nil {
			s.input.Reset()
		}
		return s, s.settle(msg.Err)

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.snap.State == orch.AwaitingAnswer && !s.confirmQuit {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *QuizScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.confirmQuit {
		switch key {
		case "y", "Y":
			s.confirmQuit = false
			s.snap.Pending = true
			return s, s.step(s.o.Finish)
		case "n", "N", "esc":
			s.confirmQuit = false
		}
		return s, nil
	}

	if s.snap.Pending {
		return s, nil
	}

	switch key {
	case "esc":
		if s.snap.SessionID.IsZero() {
			return s, router.Pop
		}
		s.confirmQuit = true
		return s, nil
	}

	switch s.snap.State {
	case orch.Errored:
		switch key {
		case "r", "R":
			s.snap.Pending = true
			s.errMsg = ""
			return s, s.step(s.o.Retry)
		case "m", "M":
			if ms := s.unfinishedMistakes(); len(ms) > 0 {
				return s, router.Push(mistakes.New(ms, s.cue()))
			}
		}
		return s, nil

	case orch.AwaitingAnswer:
		if key == "enter" {
			s.snap.Pending = true
			return s, s.submit(s.input.Value())
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}
