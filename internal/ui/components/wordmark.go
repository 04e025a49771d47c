package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lugat/internal/ui/theme"
)

const wordmarkFull = ` ██╗     ██╗   ██╗ ██████╗  █████╗ ████████╗
 ██║     ██║   ██║██╔════╝ ██╔══██╗╚══██╔══╝
 ██║     ██║   ██║██║  ███╗███████║   ██║
 ██║     ██║   ██║██║   ██║██╔══██║   ██║
 ███████╗╚██████╔╝╚██████╔╝██║  ██║   ██║
 ╚══════╝ ╚═════╝  ╚═════╝ ╚═╝  ╚═╝   ╚═╝`

const wordmarkCompact = "L · U · G · A · T"

// WordmarkMinWidth is the narrowest width that fits the block-letter art.
const WordmarkMinWidth = 46

// Wordmark returns the LUGAT title in the highlight color, as block
// letters or as a single spaced line when compact.
func Wordmark(compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Mark).
		Bold(true)
	if compact {
		return style.Render(wordmarkCompact)
	}
	return style.Render(wordmarkFull)
}
