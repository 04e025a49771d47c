package words

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lugat/internal/api"
	"github.com/abhisek/lugat/internal/corpus"
	"github.com/abhisek/lugat/internal/router"
	"github.com/abhisek/lugat/internal/screen"
	"github.com/abhisek/lugat/internal/ui/components"
	"github.com/abhisek/lugat/internal/ui/layout"
	"github.com/abhisek/lugat/internal/ui/theme"
	"github.com/abhisek/lugat/internal/vocab"
)

type wordSavedMsg struct {
	Err error
}

// EditorScreen adds a new word or edits an existing one.
type EditorScreen struct {
	cache  *corpus.Cache
	word   *vocab.WordEntry
	form   components.Form
	busy   bool
	errMsg string
}

var _ screen.Screen = (*EditorScreen)(nil)
var _ screen.KeyHintProvider = (*EditorScreen)(nil)
var _ screen.BusyReporter = (*EditorScreen)(nil)

// NewEditor edits word, or adds a new one when word is nil.
func NewEditor(cache *corpus.Cache, word *vocab.WordEntry) *EditorScreen {
	english := components.NewTextInput("English", "cat", vocab.MaxWordLength)
	uzbek := components.NewTextInput("Uzbek", "mushuk", vocab.MaxWordLength)
	if word != nil {
		english.SetValue(word.English)
		uzbek.SetValue(word.Uzbek)
	}
	return &EditorScreen{
		cache: cache,
		word:  word,
		form:  components.NewForm(english, uzbek),
	}
}

func (s *EditorScreen) Init() tea.Cmd {
	return s.form.Init()
}

func (s *EditorScreen) Title() string {
	if s.word != nil {
		return "Edit word"
	}
	return "Add word"
}

func (s *EditorScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Save"},
		{Key: "Esc", Description: "Cancel"},
	}
}

func (s *EditorScreen) Busy() string {
	if s.busy {
		return "Saving word"
	}
	return ""
}

func (s *EditorScreen) op() api.Op {
	if s.word != nil {
		return api.OpUpdateWord
	}
	return api.OpCreateWord
}

func (s *EditorScreen) save() tea.Cmd {
	in := vocab.WordInput{English: s.form.Value(0), Uzbek: s.form.Value(1)}
	cache, word := s.cache, s.word
	return func() tea.Msg {
		ctx := context.Background()
		var err error
		if word != nil {
			_, err = cache.Update(ctx, word.ID, in)
		} else {
			_, err = cache.Add(ctx, in)
		}
		return wordSavedMsg{Err: err}
	}
}

func (s *EditorScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case wordSavedMsg:
		s.busy = false
		// A stale list means the word was saved; the list screen reports
		// the failed reload.
		if msg.Err != nil && !corpus.IsStale(msg.Err) {
			s.errMsg = api.Message(msg.Err, s.op().Fallback())
			return s, nil
		}
		return s, router.Pop

	case components.FormSubmitMsg:
		if s.busy {
			return s, nil
		}
		s.busy = true
		s.errMsg = ""
		return s, s.save()

	case tea.KeyMsg:
		if s.busy {
			return s, nil
		}
		if msg.String() == "esc" {
			return s, router.Pop
		}
	}

	var cmd tea.Cmd
	s.form, cmd = s.form.Update(msg)
	return s, cmd
}

func (s *EditorScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(theme.Title.Width(cw - 6).Render(s.Title()))
	b.WriteString("\n\n")
	b.WriteString(s.form.View())
	b.WriteString("\n\n")
	switch {
	case s.busy:
		b.WriteString(theme.Hint.Render("Saving…"))
	case s.errMsg != "":
		b.WriteString(theme.ErrorText.Render(s.errMsg))
	}
	return components.Center(components.Card(b.String(), cw), width, height)
}
