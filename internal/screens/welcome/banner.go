package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lugat/internal/ui/theme"
)

const bookArt = `   ___________   ___________
  /           \ /           \
 |  EN          |          UZ |
 |              |             |
 |              |             |
  \___________/ \___________/`

// samplePairs flip across the open book while the splash plays.
var samplePairs = [][2]string{
	{"book", "kitob"},
	{"water", "suv"},
	{"friend", "do'st"},
	{"word", "so'z"},
	{"house", "uy"},
	{"bread", "non"},
}

// renderBook draws the book with the pair for frame on its pages.
func renderBook(frame int) string {
	pair := samplePairs[frame%len(samplePairs)]
	pages := lipgloss.NewStyle().Foreground(theme.Brand).Render(bookArt)
	left := theme.Language(true).Width(12).Align(lipgloss.Right).Render(pair[0])
	right := theme.Language(false).Width(12).Render(pair[1])
	return pages + "\n" + left + "  ⇄  " + right
}
