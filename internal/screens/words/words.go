package words

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lugat/internal/api"
	"github.com/abhisek/lugat/internal/corpus"
	"github.com/abhisek/lugat/internal/router"
	"github.com/abhisek/lugat/internal/screen"
	"github.com/abhisek/lugat/internal/ui/components"
	"github.com/abhisek/lugat/internal/ui/layout"
	"github.com/abhisek/lugat/internal/ui/theme"
	"github.com/abhisek/lugat/internal/vocab"
	"github.com/abhisek/lugat/internal/workspace"
)

type wordsLoadedMsg struct {
	Cache *corpus.Cache
	Err   error
}

type wordDeletedMsg struct {
	Err error
}

// WordsScreen lists the user's words with search and paging.
type WordsScreen struct {
	ws        *workspace.Workspace
	cache     *corpus.Cache
	view      corpus.View
	page      int
	selected  int
	search    components.TextInput
	searching bool
	confirm   bool
	loading   bool
	errMsg    string
}

var _ screen.Screen = (*WordsScreen)(nil)
var _ screen.KeyHintProvider = (*WordsScreen)(nil)
var _ screen.EscapeHandler = (*WordsScreen)(nil)
var _ screen.BusyReporter = (*WordsScreen)(nil)

// New creates a new WordsScreen.
func New(ws *workspace.Workspace) *WordsScreen {
	return &WordsScreen{
		ws:      ws,
		page:    1,
		search:  components.NewTextInput("Search", "english or uzbek", 120),
		loading: true,
	}
}

func (s *WordsScreen) Init() tea.Cmd {
	return s.reload()
}

func (s *WordsScreen) Title() string {
	return "Words"
}

func (s *WordsScreen) Busy() string {
	if s.loading {
		return "Loading words"
	}
	return ""
}

func (s *WordsScreen) HandlesEscape() bool {
	return s.searching || s.confirm
}

func (s *WordsScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.confirm:
		return []layout.KeyHint{
			{Key: "Y", Description: "Delete"},
			{Key: "N", Description: "Cancel"},
		}
	case s.searching:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Done"},
			{Key: "Esc", Description: "Clear"},
		}
	}
	return []layout.KeyHint{
		{Key: "/", Description: "Search"},
		{Key: "←→", Description: "Page"},
		{Key: "A", Description: "Add"},
		{Key: "E", Description: "Edit"},
		{Key: "D", Description: "Delete"},
		{Key: "R", Description: "Reload"},
		{Key: "Esc", Description: "Back"},
	}
}

// reload fetches every page from the server into the cache.
func (s *WordsScreen) reload() tea.Cmd {
	ws := s.ws
	return func() tea.Msg {
		ctx := context.Background()
		cache, err := ws.Words(ctx)
		if err != nil {
			return wordsLoadedMsg{Err: err}
		}
		return wordsLoadedMsg{Cache: cache, Err: cache.Reload(ctx)}
	}
}

// refresh recomputes the visible page from the cache.
func (s *WordsScreen) refresh() {
	if s.cache == nil || !s.cache.Loaded() {
		return
	}
	s.view = s.cache.Apply(s.search.Value(), s.page)
	s.page = s.view.PageIndex
	if s.selected >= len(s.view.Items) {
		s.selected = max(0, len(s.view.Items)-1)
	}
}

func (s *WordsScreen) current() (vocab.WordEntry, bool) {
	if s.selected < 0 || s.selected >= len(s.view.Items) {
		return vocab.WordEntry{}, false
	}
	return s.view.Items[s.selected], true
}

func (s *WordsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case wordsLoadedMsg:
		s.loading = false
		if msg.Cache != nil {
			s.cache = msg.Cache
		}
		if msg.Err != nil {
			s.errMsg = api.Message(msg.Err, api.OpListWords.Fallback())
		} else {
			s.errMsg = ""
		}
		s.refresh()
		return s, nil

	case wordDeletedMsg:
		s.loading = false
		switch {
		case corpus.IsStale(msg.Err):
			s.errMsg = api.Message(msg.Err, api.OpListWords.Fallback())
		case msg.Err != nil:
			s.errMsg = api.Message(msg.Err, api.OpDeleteWord.Fallback())
		default:
			s.errMsg = ""
		}
		s.refresh()
		return s, nil

	case screen.ResumedMsg:
		if s.cache != nil {
			if err := s.cache.Stale(); err != nil {
				s.errMsg = api.Message(err, api.OpListWords.Fallback())
			}
		}
		s.refresh()
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.searching {
		var cmd tea.Cmd
		s.search, cmd = s.search.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *WordsScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.confirm {
		switch key {
		case "y", "Y":
			s.confirm = false
			w, ok := s.current()
			if !ok || s.cache == nil {
				return s, nil
			}
			s.loading = true
			cache := s.cache
			return s, func() tea.Msg {
				return wordDeletedMsg{Err: cache.Remove(context.Background(), w.ID)}
			}
		case "n", "N", "esc":
			s.confirm = false
		}
		return s, nil
	}

	if s.searching {
		switch key {
		case "enter":
			s.searching = false
			s.search.Blur()
			return s, nil
		case "esc":
			s.searching = false
			s.search.Blur()
			s.search.Reset()
			s.page = 1
			s.refresh()
			return s, nil
		}
		var cmd tea.Cmd
		s.search, cmd = s.search.Update(msg)
		s.page = 1
		s.selected = 0
		s.refresh()
		return s, cmd
	}

	switch key {
	case "esc":
		return s, router.Pop
	case "/":
		s.searching = true
		return s, s.search.Focus()
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < len(s.view.Items)-1 {
			s.selected++
		}
	case "left", "h", "pgup":
		if s.page > 1 {
			s.page--
			s.selected = 0
			s.refresh()
		}
	case "right", "l", "pgdown":
		if s.page < s.view.PageCount {
			s.page++
			s.selected = 0
			s.refresh()
		}
	case "r":
		s.loading = true
		return s, s.reload()
	case "a":
		if s.cache != nil {
			return s, router.Push(NewEditor(s.cache, nil))
		}
	case "e", "enter":
		if w, ok := s.current(); ok {
			return s, router.Push(NewEditor(s.cache, &w))
		}
	case "d", "delete":
		if _, ok := s.current(); ok {
			s.confirm = true
		}
	}
	return s, nil
}

func (s *WordsScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n")

	searchLine := s.search.View()
	if !s.searching && s.search.Value() == "" {
		searchLine = theme.Hint.Render("Press / to search")
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, searchLine))
	b.WriteString("\n\n")

	switch {
	case s.loading && s.cache == nil:
		b.WriteString(components.Banner("Loading words…", lipgloss.NewStyle().Foreground(theme.Faint), width))
		return b.String()
	case s.cache == nil || !s.cache.Loaded():
		b.WriteString(components.Banner(s.errMsg, theme.ErrorText, width))
		return b.String()
	}

	if len(s.view.Items) == 0 {
		text := "No words yet. Press A to add one."
		if strings.TrimSpace(s.search.Value()) != "" {
			text = "No words match your search."
		}
		b.WriteString(components.Banner(text, theme.Hint, width))
	} else {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.renderTable(width)))
	}
	b.WriteString("\n\n")

	footer := fmt.Sprintf("Page %d of %d  ·  %d matching  ·  %d total",
		s.view.PageIndex, s.view.PageCount, s.view.TotalMatching, s.cache.Len())
	b.WriteString(components.Banner(footer, lipgloss.NewStyle().Foreground(theme.Faint), width))

	if s.confirm {
		if w, ok := s.current(); ok {
			b.WriteString("\n\n")
			b.WriteString(components.Banner(
				fmt.Sprintf("Delete %q → %q? [Y/N]", w.English, w.Uzbek),
				lipgloss.NewStyle().Foreground(theme.Notice).Bold(true), width))
		}
	}
	if s.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(components.Banner(s.errMsg, theme.ErrorText, width))
	}
	return b.String()
}

func (s *WordsScreen) renderTable(width int) string {
	col := min(28, (width-12)/2)
	head := lipgloss.NewStyle().Foreground(theme.Faint).Bold(true)
	cell := lipgloss.NewStyle().Width(col)

	rows := []string{
		"  " + head.Width(col).Render("English") + "  " + head.Width(col).Render("Uzbek"),
	}
	for i, w := range s.view.Items {
		line := cell.Render(w.English) + "  " + cell.Render(w.Uzbek)
		if i == s.selected {
			rows = append(rows, theme.Selected.Render("▸ "+line))
		} else {
			rows = append(rows, theme.Unselected.Render("  "+line))
		}
	}
	return strings.Join(rows, "\n")
}
