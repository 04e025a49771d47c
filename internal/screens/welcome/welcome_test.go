package welcome

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lugat/internal/router"
	"github.com/abhisek/lugat/internal/screen"
)

// stubScreen is a minimal screen implementation for testing.
type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                          { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                   { return "home" }
func (s *stubScreen) Title() string                          { return "Home" }

func newTestWelcomeWithCounter() (*WelcomeScreen, *int) {
	callCount := 0
	factory := func() screen.Screen {
		callCount++
		return &stubScreen{}
	}
	return New(factory), &callCount
}

func sendTicks(w *WelcomeScreen, n int) (screen.Screen, tea.Cmd) {
	var s screen.Screen = w
	var cmd tea.Cmd
	for i := 0; i < n; i++ {
		s, cmd = s.Update(tickMsg(time.Now()))
	}
	return s, cmd
}

func TestPhaseTransitions(t *testing.T) {
	w, _ := newTestWelcomeWithCounter()

	view := w.View(100, 30)
	if strings.Contains(view, tagline) {
		t.Error("tagline should not be visible at start")
	}
	if !strings.Contains(view, "book") {
		t.Error("first word pair should be on the pages")
	}

	sendTicks(w, 5)
	if w.elapsed != 500*time.Millisecond {
		t.Errorf("expected elapsed 500ms, got %v", w.elapsed)
	}

	sendTicks(w, 10)
	if w.elapsed != 1500*time.Millisecond {
		t.Errorf("expected elapsed 1500ms, got %v", w.elapsed)
	}
	view = w.View(100, 30)
	if !strings.Contains(view, tagline) {
		t.Error("tagline should be visible after phase 2")
	}
	if !strings.Contains(view, "press any key") {
		t.Error("hint should be visible after phase 2")
	}
}

func TestWordPairsFlip(t *testing.T) {
	w, _ := newTestWelcomeWithCounter()
	sendTicks(w, 5)
	if !strings.Contains(w.View(100, 30), "water") {
		t.Errorf("expected second pair after 5 ticks:\n%s", w.View(100, 30))
	}
}

func TestKeypressDuringAnimationSkipsToTransition(t *testing.T) {
	w, callCount := newTestWelcomeWithCounter()
	sendTicks(w, 3)

	_, cmd := w.Update(tea.KeyPressMsg{Code: ' '})
	if cmd == nil {
		t.Fatal("keypress during animation should trigger transition")
	}
	if _, ok := cmd().(router.ReplaceScreenMsg); !ok {
		t.Fatal("expected ReplaceScreenMsg")
	}
	if *callCount != 1 {
		t.Errorf("factory should be called once, got %d", *callCount)
	}
}

func TestNoAutoTransition(t *testing.T) {
	w, callCount := newTestWelcomeWithCounter()

	_, cmd := sendTicks(w, 45)
	if *callCount != 0 {
		t.Errorf("factory should not be called without keypress, got %d", *callCount)
	}
	if w.elapsed != totalDur {
		t.Errorf("expected elapsed capped at %v, got %v", totalDur, w.elapsed)
	}
	if cmd == nil {
		t.Error("ticks should keep the pairs flipping")
	}
}

func TestFactoryCalledOnce(t *testing.T) {
	w, callCount := newTestWelcomeWithCounter()

	sendTicks(w, 45)
	w.Update(tea.KeyPressMsg{Code: 'a'})

	_, cmd := w.Update(tea.KeyPressMsg{Code: 'b'})
	if cmd != nil {
		t.Error("second keypress should not produce a command")
	}
	if *callCount != 1 {
		t.Errorf("factory should be called exactly once, got %d", *callCount)
	}
	if _, cmd := w.Update(tickMsg(time.Now())); cmd != nil {
		t.Error("ticks should stop after the transition")
	}
}

func TestTitleEmpty(t *testing.T) {
	w, _ := newTestWelcomeWithCounter()
	if w.Title() != "" {
		t.Errorf("expected empty title, got %q", w.Title())
	}
}
