package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lugat/internal/api"
	"github.com/abhisek/lugat/internal/router"
	"github.com/abhisek/lugat/internal/screen"
	"github.com/abhisek/lugat/internal/screens/account"
	"github.com/abhisek/lugat/internal/screens/history"
	"github.com/abhisek/lugat/internal/screens/settings"
	"github.com/abhisek/lugat/internal/screens/words"
	"github.com/abhisek/lugat/internal/ui/components"
	"github.com/abhisek/lugat/internal/ui/layout"
	"github.com/abhisek/lugat/internal/workspace"
)

// homeLoadedMsg carries the dashboard numbers.
type homeLoadedMsg struct {
	User      string
	Words     int
	WordsErr  error
	LastScore int
	HasLast   bool
	Err       error
}

// loggedOutMsg is sent once local credentials are gone.
type loggedOutMsg struct{}

// HomeScreen is the main menu.
type HomeScreen struct {
	ws      *workspace.Workspace
	menu    components.Menu
	stats   stats
	notice  string
	loading bool
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(ws *workspace.Workspace) *HomeScreen {
	h := &HomeScreen{ws: ws, loading: true}
	h.buildMenu()
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.load()
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "S", Description: "Sound"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// load restores credentials and gathers the dashboard numbers.
func (h *HomeScreen) load() tea.Cmd {
	ws := h.ws
	return func() tea.Msg {
		ctx := context.Background()
		var msg homeLoadedMsg

		if results := ws.Results(); results != nil {
			if recs, err := results.List(ctx, 1); err == nil && len(recs) > 0 {
				msg.LastScore = recs[0].Result.Percentage
				msg.HasLast = true
			}
		}

		user, err := ws.Restore(ctx)
		if err != nil {
			msg.Err = err
			return msg
		}
		if user == nil {
			return msg
		}
		msg.User = user.Username
		if msg.User == "" {
			msg.User = user.Email
		}

		cache, err := ws.Words(ctx)
		if err == nil {
			err = cache.Reload(ctx)
		}
		if err != nil {
			msg.WordsErr = err
			return msg
		}
		msg.Words = cache.Len()
		return msg
	}
}

func (h *HomeScreen) logout() tea.Cmd {
	ws := h.ws
	return func() tea.Msg {
		// Logout always clears local credentials; a server failure is logged there.
		_ = ws.Accounts().Logout(context.Background())
		ws.SetUser(nil)
		return loggedOutMsg{}
	}
}

// buildMenu lays out the items for the current sign-in state.
func (h *HomeScreen) buildMenu() {
	var items []components.MenuItem
	if h.stats.user == "" {
		items = []components.MenuItem{
			{Label: "LOG IN", Key: "l", Action: func() tea.Cmd { return router.Push(account.NewLogin(h.ws)) }},
			{Label: "REGISTER", Key: "r", Action: func() tea.Cmd { return router.Push(account.NewRegister(h.ws)) }},
			{Label: "FORGOT PASSWORD", Key: "f", Action: func() tea.Cmd { return router.Push(account.NewForgot(h.ws)) }},
			{Label: "HISTORY", Key: "h", Action: func() tea.Cmd { return router.Push(history.New(h.ws)) }},
			{Label: "QUIT", Key: "q", Action: func() tea.Cmd { return tea.Quit }},
		}
	} else {
		items = []components.MenuItem{
			{Label: "START TEST", Key: "t", Action: func() tea.Cmd { return router.Push(settings.New(h.ws)) }},
			{Label: "WORDS", Key: "w", Action: func() tea.Cmd { return router.Push(words.New(h.ws)) }},
			{Label: "HISTORY", Key: "h", Action: func() tea.Cmd { return router.Push(history.New(h.ws)) }},
			{Label: h.soundLabel(), Action: func() tea.Cmd { h.toggleSound(); return nil }},
			{Label: "LOG OUT", Key: "o", Action: h.logout},
			{Label: "QUIT", Key: "q", Action: func() tea.Cmd { return tea.Quit }},
		}
	}

	selected := 0
	if h.menu.Selected < len(items) {
		selected = h.menu.Selected
	}
	h.menu = components.NewMenu(items)
	h.menu.Selected = selected
}

func (h *HomeScreen) soundLabel() string {
	if b := h.ws.Bell(); b != nil && b.Muted() {
		return "SOUND: OFF"
	}
	return "SOUND: ON"
}

func (h *HomeScreen) toggleSound() {
	if b := h.ws.Bell(); b != nil {
		b.Toggle()
	}
	h.buildMenu()
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case homeLoadedMsg:
		h.loading = false
		h.notice = ""
		h.stats = stats{
			user:      msg.User,
			words:     msg.Words,
			lastScore: msg.LastScore,
			hasLast:   msg.HasLast,
		}
		if msg.Err != nil {
			h.notice = "Could not read saved login: " + msg.Err.Error()
		}
		if msg.WordsErr != nil {
			h.stats.wordsErr = api.Message(msg.WordsErr, api.OpListWords.Fallback())
			h.notice = h.stats.wordsErr
		}
		h.buildMenu()
		return h, nil

	case loggedOutMsg:
		h.stats = stats{}
		h.buildMenu()
		return h, h.load()

	case screen.ResumedMsg:
		return h, h.load()

	case tea.KeyMsg:
		if strings.EqualFold(msg.String(), "s") {
			h.toggleSound()
			return h, nil
		}
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	compact := layout.IsCompact(width, height)

	cw := components.ContentWidth(width)

	sections := []string{
		renderTitle(cw, compact),
		renderStatsBar(h.stats, cw, compact),
		renderMenu(h.menu, cw, compact),
	}
	if h.notice != "" {
		sections = append(sections, renderNotice(h.notice, cw))
	} else if h.loading {
		sections = append(sections, renderNotice("Loading…", cw))
	}

	return renderCabinetFrame(strings.Join(sections, "\n\n"), width, height)
}
