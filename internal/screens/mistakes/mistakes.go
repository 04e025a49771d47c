// Package mistakes replays the words missed in a test, checked locally.
package mistakes

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lugat/internal/quiz"
	"github.com/abhisek/lugat/internal/replay"
	"github.com/abhisek/lugat/internal/router"
	"github.com/abhisek/lugat/internal/screen"
	"github.com/abhisek/lugat/internal/ui/components"
	"github.com/abhisek/lugat/internal/ui/layout"
	"github.com/abhisek/lugat/internal/ui/theme"
	"github.com/abhisek/lugat/internal/vocab"
)

// MistakesScreen asks every missed word again, in order.
type MistakesScreen struct {
	engine *replay.Engine
	cue    quiz.Cue
	input  components.TextInput
	last   *replay.Verdict
}

var _ screen.Screen = (*MistakesScreen)(nil)
var _ screen.KeyHintProvider = (*MistakesScreen)(nil)

// New creates a replay over ms. cue may be nil.
func New(ms []vocab.Mistake, cue quiz.Cue) *MistakesScreen {
	in := components.NewTextInput("Answer", "type the translation", 0)
	in.Focus()
	return &MistakesScreen{
		engine: replay.FromMistakes(ms),
		cue:    cue,
		input:  in,
	}
}

func (s *MistakesScreen) Init() tea.Cmd {
	return s.input.Focus()
}

func (s *MistakesScreen) Title() string {
	return "Mistakes replay"
}

func (s *MistakesScreen) KeyHints() []layout.KeyHint {
	if s.engine.Done() {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Done"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Check"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *MistakesScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "enter" {
		if s.engine.Done() {
			return s, router.Pop
		}
		v, err := s.engine.Submit(s.input.Value())
		if err != nil {
			return s, nil
		}
		if s.cue != nil {
			s.cue.Play(v.Correct)
		}
		s.last = &v
		s.input.Reset()
		return s, nil
	}

	if s.engine.Done() {
		return s, nil
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *MistakesScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	if s.engine.Empty() {
		return center.Foreground(theme.Faint).Italic(true).
			Render("\n\n\nNo mistakes to replay.")
	}

	var b strings.Builder
	b.WriteString("\n")
	done := s.engine.Position() - 1
	if s.engine.Done() {
		done = s.engine.Len()
	}
	bar := components.NewProgressBar("", done, s.engine.Len(), min(40, width/2))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
	b.WriteString("\n\n\n")

	if item, ok := s.engine.Current(); ok {
		b.WriteString(center.Foreground(theme.Ink).Bold(true).Render(item.Prompt + " - ?"))
		b.WriteString("\n\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.input.View()))
		b.WriteString("\n\n")
	}

	if v := s.last; v != nil {
		verdict := "Correct"
		if !v.Correct {
			verdict = fmt.Sprintf("Wrong. Correct answer: %s", v.Item.Expected)
		}
		b.WriteString(theme.Verdict(v.Correct).Width(width).Align(lipgloss.Center).Render(verdict))
		b.WriteString("\n\n")
	}

	if s.engine.Done() {
		sum := s.engine.Summary()
		b.WriteString(theme.Title.Width(width).Render("Replay complete"))
		b.WriteString("\n\n")
		b.WriteString(center.Render(
			fmt.Sprintf("Correct: %d / %d   ", sum.Correct, sum.Total) +
				theme.Score(sum.Percentage).Render(fmt.Sprintf("(%d%%)", sum.Percentage))))
		b.WriteString("\n")
		for _, m := range sum.Mistakes {
			b.WriteString("\n")
			b.WriteString(center.Foreground(theme.Faint).Render(
				fmt.Sprintf("%s → %s (you: %q)", m.Prompt, m.Expected, m.Provided)))
		}
	}
	return b.String()
}
