package result

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lugat/internal/quiz"
	"github.com/abhisek/lugat/internal/router"
	"github.com/abhisek/lugat/internal/screen"
	"github.com/abhisek/lugat/internal/screens/mistakes"
	"github.com/abhisek/lugat/internal/ui/components"
	"github.com/abhisek/lugat/internal/ui/layout"
	"github.com/abhisek/lugat/internal/ui/theme"
	"github.com/abhisek/lugat/internal/vocab"
)

// ResultScreen shows the score of a finished test and its mistakes.
type ResultScreen struct {
	result  vocab.SessionResult
	buttons components.ButtonRow
}

var _ screen.Screen = (*ResultScreen)(nil)
var _ screen.KeyHintProvider = (*ResultScreen)(nil)

// New creates a new ResultScreen. cue, if not nil, is handed to the
// mistake replay.
func New(res vocab.SessionResult, cue quiz.Cue) *ResultScreen {
	home := components.NewButton("Home", false, func() tea.Cmd {
		return func() tea.Msg { return router.PopToRootMsg{} }
	})
	var row components.ButtonRow
	if len(res.Mistakes) > 0 {
		replay := components.NewButton("Replay mistakes", false, func() tea.Cmd {
			return router.Push(mistakes.New(res.Mistakes, cue))
		})
		row = components.NewButtonRow(replay, home)
	} else {
		row = components.NewButtonRow(home)
	}
	return &ResultScreen{result: res, buttons: row}
}

func (s *ResultScreen) Init() tea.Cmd {
	return nil
}

func (s *ResultScreen) Title() string {
	return "Result"
}

func (s *ResultScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "←→", Description: "Choose"},
		{Key: "Enter", Description: "Select"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ResultScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	s.buttons, cmd = s.buttons.Update(msg)
	return s, cmd
}

func (s *ResultScreen) View(width, height int) string {
	res := s.result
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(theme.Title.Width(width).Render("Test complete!"))
	b.WriteString("\n\n")

	b.WriteString(theme.Score(res.Percentage).Width(width).Align(lipgloss.Center).Render(fmt.Sprintf("%d%%", res.Percentage)))
	b.WriteString("\n\n")

	stats := fmt.Sprintf("Questions: %d        Correct: %d        Wrong: %d",
		res.TotalQuestions, res.Correct, res.Wrong)
	b.WriteString(center.Foreground(theme.Ink).Render(stats))
	b.WriteString("\n\n")

	b.WriteString(RenderMistakes(res.Mistakes, width, height-12))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.buttons.View()))
	return b.String()
}

// RenderMistakes lists prompt, expected and given answers, trimmed to
// fit maxRows lines.
func RenderMistakes(ms []vocab.Mistake, width, maxRows int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	if len(ms) == 0 {
		return center.Foreground(theme.Right).Render("No mistakes. Well done!")
	}

	divider := lipgloss.NewStyle().Foreground(theme.Rule).Render(strings.Repeat("─", min(width-8, 60)))
	var b strings.Builder
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Faint).Render("Mistakes")))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n")

	shown := ms
	if maxRows > 1 && len(ms) > maxRows {
		shown = ms[:maxRows-1]
	}
	for _, m := range shown {
		given := m.Provided
		if given == "" {
			given = "(blank)"
		}
		line := fmt.Sprintf("%s  →  %s   %s",
			m.Prompt,
			lipgloss.NewStyle().Foreground(theme.Right).Render(m.Expected),
			lipgloss.NewStyle().Foreground(theme.Wrong).Strikethrough(true).Render(given))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, line))
		b.WriteString("\n")
	}
	if len(shown) < len(ms) {
		b.WriteString(center.Foreground(theme.Faint).Render(fmt.Sprintf("… and %d more", len(ms)-len(shown))))
	}
	return strings.TrimRight(b.String(), "\n")
}
