package home

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lugat/internal/feedback"
	"github.com/abhisek/lugat/internal/router"
	"github.com/abhisek/lugat/internal/screen"
	"github.com/abhisek/lugat/internal/screens/account"
	"github.com/abhisek/lugat/internal/screens/settings"
	"github.com/abhisek/lugat/internal/store"
	"github.com/abhisek/lugat/internal/vocab"
	"github.com/abhisek/lugat/internal/workspace/workspacetest"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func twoWords() *workspacetest.Backend {
	return workspacetest.NewBackend([2]string{"cat", "mushuk"}, [2]string{"dog", "it"})
}

func TestHomeScreen_Title(t *testing.T) {
	ws, _ := workspacetest.New(nil)
	if New(ws).Title() != "Home" {
		t.Error("unexpected title")
	}
}

func TestHomeScreen_SignedOutMenu(t *testing.T) {
	ws, _ := workspacetest.New(nil)
	h := New(ws)
	h.Update(h.Init()())

	want := []string{"LOG IN", "REGISTER", "FORGOT PASSWORD", "HISTORY", "QUIT"}
	if strings.Join(labels(h), ",") != strings.Join(want, ",") {
		t.Errorf("labels = %v, want %v", labels(h), want)
	}
	if !strings.Contains(h.View(100, 40), "SIGNED OUT") {
		t.Errorf("missing signed-out badge:\n%s", h.View(100, 40))
	}

	_, cmd := h.Update(specialKey(tea.KeyEnter))
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected push")
	}
	if _, ok := push.Screen.(*account.FormScreen); !ok {
		t.Errorf("pushed %T, want login form", push.Screen)
	}
}

func TestHomeScreen_RestoresSession(t *testing.T) {
	ws, fx := workspacetest.New(twoWords())
	fx.Accounts.Creds = &store.Credentials{Username: "ali", Access: "access"}
	fx.Results.Save(context.Background(), &store.ResultRecord{Result: vocab.SessionResult{Percentage: 80}})

	h := New(ws)
	h.Update(h.Init()())

	if labels(h)[0] != "START TEST" {
		t.Errorf("labels = %v", labels(h))
	}
	view := h.View(100, 40)
	for _, want := range []string{"● ALI", "2 WORDS", "LAST 80%"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}

	_, cmd := h.Update(specialKey(tea.KeyEnter))
	push := cmd().(router.PushScreenMsg)
	if _, ok := push.Screen.(*settings.SettingsScreen); !ok {
		t.Errorf("pushed %T, want settings", push.Screen)
	}
}

func TestHomeScreen_WordsUnavailable(t *testing.T) {
	b := twoWords()
	b.Fail["ListWords"] = errors.New("down")
	ws, fx := workspacetest.New(b)
	fx.Accounts.Creds = &store.Credentials{Username: "ali", Access: "access"}

	h := New(ws)
	h.Update(h.Init()())

	if h.stats.wordsErr == "" || h.notice == "" {
		t.Error("expected words error notice")
	}
	if !strings.Contains(h.View(100, 40), "WORDS UNAVAILABLE") {
		t.Errorf("missing badge:\n%s", h.View(100, 40))
	}
}

func TestHomeScreen_SoundToggle(t *testing.T) {
	bell := feedback.NewBell(io.Discard, false)
	ws, fx := workspacetest.New(twoWords(), workspacetest.WithBell(bell))
	fx.SignIn(ws, "ali")
	h := New(ws)
	h.Update(h.Init()())

	h.Update(keyPress('s'))
	if !bell.Muted() {
		t.Error("expected muted after S")
	}
	if labels(h)[3] != "SOUND: OFF" {
		t.Errorf("label = %q, want SOUND: OFF", labels(h)[3])
	}
}

func TestHomeScreen_Logout(t *testing.T) {
	ws, fx := workspacetest.New(twoWords())
	fx.SignIn(ws, "ali")
	h := New(ws)
	h.Update(h.Init()())

	for range 4 {
		h.Update(specialKey(tea.KeyDown))
	}
	if labels(h)[h.menu.Selected] != "LOG OUT" {
		t.Fatalf("selected %q", labels(h)[h.menu.Selected])
	}
	_, cmd := h.Update(specialKey(tea.KeyEnter))
	_, cmd = h.Update(cmd())
	h.Update(cmd())

	if fx.Accounts.Logouts != 1 || ws.User() != nil {
		t.Errorf("logouts = %d user = %v", fx.Accounts.Logouts, ws.User())
	}
	if labels(h)[0] != "LOG IN" {
		t.Errorf("labels = %v", labels(h))
	}
}

func TestHomeScreen_ResumedReloads(t *testing.T) {
	ws, _ := workspacetest.New(nil)
	h := New(ws)
	var s screen.Screen = h
	if _, cmd := s.Update(screen.ResumedMsg{}); cmd == nil {
		t.Error("expected reload on resume")
	}
}

func labels(h *HomeScreen) []string {
	out := make([]string, len(h.menu.Items))
	for i, it := range h.menu.Items {
		out[i] = it.Label
	}
	return out
}

func TestHomeScreen_Shortcut(t *testing.T) {
	ws, fx := workspacetest.New(twoWords())
	fx.SignIn(ws, "ali")
	h := New(ws)
	h.Update(h.Init()())

	_, cmd := h.Update(keyPress('w'))
	if cmd == nil {
		t.Fatal("expected push of the words screen")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok || push.Screen.Title() != "Words" {
		t.Errorf("w pushed %T", cmd())
	}
	if labels(h)[h.menu.Selected] != "WORDS" {
		t.Errorf("selected %q, want WORDS", labels(h)[h.menu.Selected])
	}
}
