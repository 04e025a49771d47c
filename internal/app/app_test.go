package app

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lugat/internal/router"
	"github.com/abhisek/lugat/internal/screen"
	"github.com/abhisek/lugat/internal/ui/layout"
	"github.com/abhisek/lugat/internal/workspace/workspacetest"
)

type stubScreen struct {
	title   string
	keepEsc bool
	busy    string
	got     []tea.Msg
}

func (s *stubScreen) Init() tea.Cmd { return nil }
func (s *stubScreen) Title() string { return s.title }
func (s *stubScreen) View(width, height int) string { return "stub body" }
func (s *stubScreen) HandlesEscape() bool { return s.keepEsc }
func (s *stubScreen) Busy() string { return s.busy }
func (s *stubScreen) KeyHints() []layout.KeyHint { return []layout.KeyHint{{Key: "X", Description: "Stub action"}} }
func (s *stubScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	s.got = append(s.got, msg)
	return s, nil
}

func sized(t *testing.T) AppModel {
	t.Helper()
	ws, _ := workspacetest.New(nil)
	m := newAppModel(ws, Options{})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return updated.(AppModel)
}

func TestAppModel_RendersHeaderAndFooter(t *testing.T) {
	m := sized(t)
	out := m.render()
	for _, want := range []string{"lugat", "Home", "signed out", "Navigate"} {
		if !strings.Contains(out, want) {
			t.Errorf("frame missing %q:\n%s", want, out)
		}
	}
}

func TestAppModel_TooSmall(t *testing.T) {
	m := sized(t)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 10, Height: 5})
	m = updated.(AppModel)
	if m.render() != layout.RenderMinSizeMessage(10, 5) {
		t.Error("expected min size message")
	}
}

func TestAppModel_CtrlCQuits(t *testing.T) {
	m := sized(t)
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected QuitMsg")
	}
}

func TestAppModel_EscAtRootStays(t *testing.T) {
	m := sized(t)
	if _, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape}); cmd != nil {
		t.Error("esc at root should do nothing")
	}
}

func TestAppModel_EscPopsPushedScreen(t *testing.T) {
	m := sized(t)
	stub := &stubScreen{title: "Stub"}
	m.Update(router.PushScreenMsg{Screen: stub})

	out := m.render()
	if !strings.Contains(out, "stub body") || !strings.Contains(out, "Stub action") {
		t.Errorf("expected stub screen with its hints:\n%s", out)
	}

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected pop command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
	if len(stub.got) != 0 {
		t.Errorf("stub received %v", stub.got)
	}
}

func TestAppModel_EscForwardedToHandler(t *testing.T) {
	m := sized(t)
	stub := &stubScreen{title: "Stub", keepEsc: true}
	m.Update(router.PushScreenMsg{Screen: stub})

	m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if len(stub.got) != 1 {
		t.Fatalf("stub got %d messages, want 1", len(stub.got))
	}
	if m.router.Depth() != 2 {
		t.Errorf("depth = %d, want 2", m.router.Depth())
	}
}

func TestAppModel_SplashLeadsHome(t *testing.T) {
	ws, _ := workspacetest.New(nil)
	m := newAppModel(ws, Options{Splash: true})
	if m.router.Active().Title() != "" {
		t.Fatalf("expected splash first, got %q", m.router.Active().Title())
	}

	_, cmd := m.Update(tea.KeyPressMsg{Code: ' '})
	msg := cmd()
	m.Update(msg)
	if m.router.Active().Title() != "Home" {
		t.Errorf("active = %q, want Home", m.router.Active().Title())
	}
	if m.router.Depth() != 1 {
		t.Errorf("depth = %d, want 1", m.router.Depth())
	}
}

func TestAppModel_BusyReplacesHints(t *testing.T) {
	m := sized(t)
	stub := &stubScreen{title: "Stub", busy: "Checking answer"}
	m.Update(router.PushScreenMsg{Screen: stub})

	out := m.render()
	if !strings.Contains(out, "Checking answer") {
		t.Errorf("footer missing busy text:\n%s", out)
	}
	if strings.Contains(out, "Stub action") {
		t.Errorf("hints shown while busy:\n%s", out)
	}

	stub.busy = ""
	if out := m.render(); !strings.Contains(out, "Stub action") {
		t.Errorf("hints missing once idle:\n%s", out)
	}
}
