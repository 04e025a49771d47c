package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	orch "github.com/abhisek/lugat/internal/quiz"
	"github.com/abhisek/lugat/internal/ui/components"
	"github.com/abhisek/lugat/internal/ui/theme"
	"github.com/abhisek/lugat/internal/vocab"
)

func (s *QuizScreen) View(width, height int) string {
	if s.confirmQuit {
		return renderQuitConfirm(width)
	}

	var b strings.Builder
	snap := s.snap

	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Teal).
		Bold(true).
		Render("  " + snap.Request.Direction.Label())
	bar := components.NewProgressBar("", snap.Progress, snap.Total, min(40, width/2))
	infoLine := infoLeft
	if pad := width - lipgloss.Width(infoLeft) - lipgloss.Width(bar.View()) - 4; pad > 0 {
		infoLine += strings.Repeat(" ", pad) + bar.View()
	}
	b.WriteString(infoLine)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Rule).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n\n")

	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	switch {
	case snap.State == orch.AwaitingQuestion || snap.State == orch.Starting:
		b.WriteString(center.Foreground(theme.Faint).Render("Loading question…"))
	case snap.State == orch.Finishing:
		b.WriteString(center.Foreground(theme.Faint).Render("Finishing…"))
	case snap.State == orch.Errored && snap.Prompt == "":
		b.WriteString(center.Foreground(theme.Faint).Render("—"))
	default:
		asked := theme.Language(snap.Request.Direction == vocab.Forward)
		b.WriteString(asked.Width(width).Align(lipgloss.Center).Render(snap.Prompt + " - ?"))
		b.WriteString("\n\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.input.View()))
	}
	b.WriteString("\n\n")

	if snap.Pending && snap.State == orch.AwaitingAnswer {
		b.WriteString(center.Foreground(theme.Faint).Render("Checking…"))
		b.WriteString("\n")
	} else if a := snap.LastAnswer; a != nil {
		verdict := "Correct"
		if !a.Correct {
			verdict = fmt.Sprintf("Wrong. Correct answer: %s", a.Expected)
		}
		b.WriteString(theme.Verdict(a.Correct).Width(width).Align(lipgloss.Center).Render(verdict))
		b.WriteString("\n")
	}

	if s.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(center.Foreground(theme.Wrong).Render(s.errMsg))
		if snap.State == orch.Errored {
			b.WriteString("\n")
			hint := "Press R to retry or Esc to finish."
			if len(s.unfinishedMistakes()) > 0 {
				hint = "Press R to retry, or M to replay the mistakes made so far."
			}
			b.WriteString(center.Foreground(theme.Faint).Render(hint))
		}
	}

	return b.String()
}

// renderQuitConfirm renders the finish-early dialog.
func renderQuitConfirm(width int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(center.Foreground(theme.Ink).Bold(true).Render("Finish the test now?"))
	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.Faint).Render("Unanswered words are not counted."))
	b.WriteString("\n\n")
	b.WriteString(center.Foreground(theme.Right).Render("[Y] Yes, show my result"))
	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.Brand).Render("[N] No, keep going"))
	return b.String()
}
