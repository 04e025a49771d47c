package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lugat/internal/router"
	"github.com/abhisek/lugat/internal/screen"
	"github.com/abhisek/lugat/internal/screens/home"
	"github.com/abhisek/lugat/internal/screens/welcome"
	"github.com/abhisek/lugat/internal/ui/layout"
	"github.com/abhisek/lugat/internal/workspace"
)

// AppModel is the root Bubble Tea model.
type AppModel struct {
	ws     *workspace.Workspace
	router *router.Router
	width  int
	height int
}

// Options configures the TUI.
type Options struct {
	// Splash shows the welcome animation before the home screen.
	Splash bool
}

// newAppModel creates a new AppModel starting at the home screen, or at
// the splash that leads to it.
func newAppModel(ws *workspace.Workspace, opts Options) AppModel {
	var first screen.Screen = home.New(ws)
	if opts.Splash {
		first = welcome.New(func() screen.Screen { return home.New(ws) })
	}
	return AppModel{
		ws:     ws,
		router: router.New(first),
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if h, ok := m.router.Active().(screen.EscapeHandler); ok && h.HandlesEscape() {
				break
			}
			if m.router.Depth() > 1 {
				return m, router.Pop
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.render())
	return v
}

// render draws the header, the active screen and the footer.
func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	chrome := layout.Chrome{
		Title:  title,
		Status: m.ws.Status(),
		Hints:  m.footerHints(active),
	}
	if b, ok := active.(screen.BusyReporter); ok {
		chrome.Busy = b.Busy()
	}

	cw, ch := layout.ContentSize(m.width, m.height)
	return chrome.Render(m.router.View(cw, ch), m.width, m.height)
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		if hints := p.KeyHints(); len(hints) > 0 {
			return hints
		}
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program.
func Run(ws *workspace.Workspace, opts Options) error {
	p := tea.NewProgram(newAppModel(ws, opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
