// Package theme holds the colours and text styles of the terminal UI.
package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Palette names colours by what they mark on screen.
type Palette struct {
	Ink     color.Color // body text
	Faint   color.Color // hints and secondary text
	Rule    color.Color // borders and separators
	Surface color.Color // cards and bars
	Night   color.Color // text on bright fills
	Brand   color.Color // wordmark, titles, focus
	Teal    color.Color // progress and secondary labels
	Notice  color.Color // status and warnings
	Mark    color.Color // selection highlight
	English color.Color
	Uzbek   color.Color
	Right   color.Color // correct answers and good scores
	Wrong   color.Color // wrong answers and errors
}

// Dark is the palette for dark terminals; it is the only one in use.
var Dark = Palette{
	Ink:     lipgloss.Color("#E5E9F0"),
	Faint:   lipgloss.Color("#8893A8"),
	Rule:    lipgloss.Color("#3B4252"),
	Surface: lipgloss.Color("#242933"),
	Night:   lipgloss.Color("#191C24"),
	Brand:   lipgloss.Color("#5EB1E0"),
	Teal:    lipgloss.Color("#4FB8A8"),
	Notice:  lipgloss.Color("#E8B04A"),
	Mark:    lipgloss.Color("#F2D06B"),
	English: lipgloss.Color("#7AA2F7"),
	Uzbek:   lipgloss.Color("#3FBF8F"),
	Right:   lipgloss.Color("#6CCB5F"),
	Wrong:   lipgloss.Color("#E8636F"),
}

var (
	Ink     = Dark.Ink
	Faint   = Dark.Faint
	Rule    = Dark.Rule
	Surface = Dark.Surface
	Night   = Dark.Night
	Brand   = Dark.Brand
	Teal    = Dark.Teal
	Notice  = Dark.Notice
	Mark    = Dark.Mark
	English = Dark.English
	Uzbek   = Dark.Uzbek
	Right   = Dark.Right
	Wrong   = Dark.Wrong
)

var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Brand).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(Faint).
			Align(lipgloss.Center)

	Hint = lipgloss.NewStyle().
		Foreground(Faint).
		Italic(true)

	Card = lipgloss.NewStyle().
		Background(Surface).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Rule).
		Padding(1, 2)

	Selected = lipgloss.NewStyle().
			Foreground(Brand).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Ink)

	Disabled = lipgloss.NewStyle().
			Foreground(Faint)

	Correct = lipgloss.NewStyle().
		Foreground(Right).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Wrong).
			Bold(true)

	ErrorText = lipgloss.NewStyle().
			Foreground(Wrong)

	ProgressFilled = lipgloss.NewStyle().
			Background(Teal)

	ProgressEmpty = lipgloss.NewStyle().
			Background(Rule)

	ButtonActive = lipgloss.NewStyle().
			Background(Brand).
			Foreground(Night).
			Bold(true).
			Padding(0, 2)

	ButtonInactive = lipgloss.NewStyle().
			Background(Surface).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Rule).
			Padding(0, 2)
)

// Verdict is the style for the line that follows a checked answer.
func Verdict(correct bool) lipgloss.Style {
	if correct {
		return Correct
	}
	return Incorrect
}

// Score bands a percentage: 80 and up is good, below 50 is poor.
func Score(pct int) lipgloss.Style {
	switch {
	case pct >= 80:
		return Correct
	case pct >= 50:
		return lipgloss.NewStyle().Foreground(Notice).Bold(true)
	default:
		return Incorrect
	}
}

// Language colours a word by the language it is written in.
func Language(english bool) lipgloss.Style {
	if english {
		return lipgloss.NewStyle().Foreground(English).Bold(true)
	}
	return lipgloss.NewStyle().Foreground(Uzbek).Bold(true)
}
