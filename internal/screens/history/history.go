package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/lugat/internal/quiz"
	"github.com/abhisek/lugat/internal/router"
	"github.com/abhisek/lugat/internal/screen"
	"github.com/abhisek/lugat/internal/screens/mistakes"
	"github.com/abhisek/lugat/internal/screens/result"
	"github.com/abhisek/lugat/internal/store"
	"github.com/abhisek/lugat/internal/ui/layout"
	"github.com/abhisek/lugat/internal/ui/theme"
	"github.com/abhisek/lugat/internal/workspace"
)

const listLimit = 50

type historyLoadedMsg struct {
	Records []store.ResultRecord
	Err     error
}

// HistoryScreen displays past test results from the local journal.
type HistoryScreen struct {
	ws       *workspace.Workspace
	records  []store.ResultRecord
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(ws *workspace.Workspace) *HistoryScreen {
	return &HistoryScreen{
		ws:       ws,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.ws.Results()
	return func() tea.Msg {
		if repo == nil {
			return historyLoadedMsg{}
		}
		recs, err := repo.List(context.Background(), listLimit)
		return historyLoadedMsg{Records: recs, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "R", Description: "Replay mistakes"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.records = msg.Records
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.records)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
			return s, nil
		case "r":
			if s.selected >= len(s.records) {
				return s, nil
			}
			ms := s.records[s.selected].Result.Mistakes
			if len(ms) == 0 {
				return s, nil
			}
			var cue quiz.Cue
			if b := s.ws.Bell(); b != nil {
				cue = b
			}
			return s, router.Push(mistakes.New(ms, cue))
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Wrong).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Faint).
			Render("\n\n  Loading history...")
	}
	if len(s.records) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Faint).Italic(true).
			Render("\n\n  No tests yet. Start practicing!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, rec := range s.records {
		res := rec.Result
		dateStr := rec.FinishedAt.Local().Format("Jan 02, 2006 15:04")

		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		line := fmt.Sprintf("%s%s  %s  #%d-%d  %d/%d  ",
			prefix, dateStr, rec.Direction.Label(), rec.Start, rec.End,
			res.Correct, res.TotalQuestions)

		style := lipgloss.NewStyle().Foreground(theme.Ink)
		if i == s.selected {
			style = style.Foreground(theme.Brand).Bold(true)
		}
		pct := theme.Score(res.Percentage).Render(fmt.Sprintf("%d%%", res.Percentage))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			style.Render(line)+pct))
		b.WriteString("\n")

		if s.expanded[i] {
			b.WriteString(result.RenderMistakes(res.Mistakes, width, 8))
			b.WriteString("\n\n")
		}
	}

	return b.String()
}
