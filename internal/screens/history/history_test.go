package history

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lugat/internal/router"
	"github.com/abhisek/lugat/internal/screens/mistakes"
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

func seeded(t *testing.T) *HistoryScreen {
	t.Helper()
	ws, fx := workspacetest.New(nil)
	ctx := context.Background()
	finished := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	recs := []store.ResultRecord{
		{
			Direction: vocab.Forward, Start: 0, End: 3,
			Result: vocab.SessionResult{
				TotalQuestions: 4, Correct: 3, Wrong: 1, Percentage: 75,
				Mistakes: []vocab.Mistake{{Prompt: "dog", Expected: "it", Provided: "ot"}},
			},
			FinishedAt: finished,
		},
		{
			Direction: vocab.Reverse, Start: 2, End: 3,
			Result:     vocab.SessionResult{TotalQuestions: 2, Correct: 2, Percentage: 100},
			FinishedAt: finished.Add(time.Hour),
		},
	}
	for i := range recs {
		if err := fx.Results.Save(ctx, &recs[i]); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}
	s := New(ws)
	s.Update(s.Init()())
	return s
}

func TestHistoryScreen_Title(t *testing.T) {
	ws, _ := workspacetest.New(nil)
	if New(ws).Title() != "History" {
		t.Error("unexpected title")
	}
}

func TestHistoryScreen_Empty(t *testing.T) {
	ws, _ := workspacetest.New(nil)
	s := New(ws)
	if !strings.Contains(s.View(100, 30), "Loading history") {
		t.Errorf("expected loading view:\n%s", s.View(100, 30))
	}
	s.Update(s.Init()())
	if !strings.Contains(s.View(100, 30), "No tests yet") {
		t.Errorf("expected empty view:\n%s", s.View(100, 30))
	}
}

func TestHistoryScreen_ListsNewestFirst(t *testing.T) {
	s := seeded(t)
	if len(s.records) != 2 {
		t.Fatalf("loaded %d records, want 2", len(s.records))
	}
	view := s.View(120, 30)
	first := strings.Index(view, "Uzbek → English")
	second := strings.Index(view, "English → Uzbek")
	if first < 0 || second < 0 || first > second {
		t.Errorf("records out of order:\n%s", view)
	}
	if !strings.Contains(view, "3/4") || !strings.Contains(view, "75%") {
		t.Errorf("missing score:\n%s", view)
	}
}

func TestHistoryScreen_ExpandShowsMistakes(t *testing.T) {
	s := seeded(t)
	s.Update(specialKey(tea.KeyDown))
	if strings.Contains(s.View(120, 30), "Mistakes") {
		t.Fatal("mistakes shown before expanding")
	}
	s.Update(specialKey(tea.KeyEnter))
	if !strings.Contains(s.View(120, 30), "dog") {
		t.Errorf("expanded view missing mistake:\n%s", s.View(120, 30))
	}
}

func TestHistoryScreen_ReplayMistakes(t *testing.T) {
	s := seeded(t)

	if _, cmd := s.Update(keyPress('r')); cmd != nil {
		t.Error("record without mistakes should not replay")
	}

	s.Update(specialKey(tea.KeyDown))
	_, cmd := s.Update(keyPress('r'))
	if cmd == nil {
		t.Fatal("expected push")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected PushScreenMsg")
	}
	if _, ok := push.Screen.(*mistakes.MistakesScreen); !ok {
		t.Errorf("pushed %T", push.Screen)
	}
}

func TestHistoryScreen_SelectionClamps(t *testing.T) {
	s := seeded(t)
	s.Update(specialKey(tea.KeyUp))
	if s.selected != 0 {
		t.Errorf("selected = %d, want 0", s.selected)
	}
	for range 5 {
		s.Update(specialKey(tea.KeyDown))
	}
	if s.selected != 1 {
		t.Errorf("selected = %d, want 1", s.selected)
	}
}
