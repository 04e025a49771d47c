package result

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lugat/internal/router"
	"github.com/abhisek/lugat/internal/screens/mistakes"
	"github.com/abhisek/lugat/internal/vocab"
)

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func sample() vocab.SessionResult {
	return vocab.SessionResult{
		TotalQuestions: 4,
		Correct:        3,
		Wrong:          1,
		Percentage:     75,
		Mistakes:       []vocab.Mistake{{Prompt: "dog", Expected: "it", Provided: "mushuk"}},
	}
}

func TestResultScreen_Title(t *testing.T) {
	if New(sample(), nil).Title() != "Result" {
		t.Error("unexpected title")
	}
}

func TestResultScreen_Display(t *testing.T) {
	view := New(sample(), nil).View(100, 30)
	for _, want := range []string{"75%", "Questions: 4", "Correct: 3", "Wrong: 1", "dog", "Replay mistakes"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestResultScreen_NoMistakes(t *testing.T) {
	res := vocab.SessionResult{TotalQuestions: 2, Correct: 2, Percentage: 100}
	view := New(res, nil).View(100, 30)
	if !strings.Contains(view, "No mistakes. Well done!") {
		t.Errorf("missing praise:\n%s", view)
	}
	if strings.Contains(view, "Replay mistakes") {
		t.Error("replay button shown without mistakes")
	}
}

func TestResultScreen_ReplayPushesMistakes(t *testing.T) {
	s := New(sample(), nil)
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected a command")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected push")
	}
	if _, ok := push.Screen.(*mistakes.MistakesScreen); !ok {
		t.Errorf("pushed %T", push.Screen)
	}
}

func TestResultScreen_HomePopsToRoot(t *testing.T) {
	s := New(sample(), nil)
	s.Update(specialKey(tea.KeyRight))
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	if _, ok := cmd().(router.PopToRootMsg); !ok {
		t.Error("expected pop to root")
	}
}

func TestRenderMistakes_Truncates(t *testing.T) {
	ms := make([]vocab.Mistake, 6)
	for i := range ms {
		ms[i] = vocab.Mistake{Prompt: "p", Expected: "e"}
	}
	out := RenderMistakes(ms, 80, 4)
	if !strings.Contains(out, "… and 3 more") {
		t.Errorf("missing overflow line:\n%s", out)
	}
	if !strings.Contains(out, "(blank)") {
		t.Errorf("blank answers should be marked:\n%s", out)
	}
}
