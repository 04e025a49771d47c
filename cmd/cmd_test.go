package cmd

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lugat/internal/api"
	"github.com/abhisek/lugat/internal/corpus"
	"github.com/abhisek/lugat/internal/store"
	"github.com/abhisek/lugat/internal/vocab"
)

// execute runs the root command against a fresh database and config dir.
func execute(t *testing.T, db string, args ...string) (string, error) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("LUGAT_CONFIG", "")
	t.Setenv("LUGAT_LOG_FILE", filepath.Join(dir, "lugat.log"))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(""))
	rootCmd.SetArgs(append([]string{"--db", db}, args...))
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, filepath.Join(t.TempDir(), "lugat.db"), "version")
	require.NoError(t, err)
	assert.Equal(t, "lugat (devel)\n", out)
}

func TestVersionCommand_Verbose(t *testing.T) {
	t.Cleanup(func() { _ = versionCmd.Flags().Set("verbose", "false") })
	db := filepath.Join(t.TempDir(), "lugat.db")

	out, err := execute(t, db, "version", "-v")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "lugat (devel)\n"))
	assert.Contains(t, out, "database: "+db)
	assert.Contains(t, out, "server:   http")
	assert.Contains(t, out, filepath.Join("lugat", "config.yaml"))
}

func TestWhoami_NotLoggedIn(t *testing.T) {
	_, err := execute(t, filepath.Join(t.TempDir(), "lugat.db"), "whoami")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not logged in")
}

func TestHistoryCommands(t *testing.T) {
	db := filepath.Join(t.TempDir(), "lugat.db")
	st, err := store.Open(db)
	require.NoError(t, err)
	rec := &store.ResultRecord{
		ID:        uuid.MustParse("3f2b8c1e-0000-4000-8000-000000000001"),
		SessionID: "42",
		Direction: vocab.Reverse,
		Start:     0,
		End:       4,
		Result: vocab.SessionResult{
			TotalQuestions: 5, Correct: 4, Wrong: 1, Percentage: 80,
			Mistakes: []vocab.Mistake{{Prompt: "it", Expected: "dog", Provided: "cat"}},
		},
		StartedAt:  time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC),
		FinishedAt: time.Date(2026, 5, 1, 10, 5, 0, 0, time.UTC),
	}
	require.NoError(t, st.ResultRepo().Save(context.Background(), rec))
	require.NoError(t, st.Close())

	out, err := execute(t, db, "history", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "3f2b8c1e")
	assert.Contains(t, out, "Uzbek → English")
	assert.Contains(t, out, "80%")

	out, err = execute(t, db, "history", "show", "3f2b")
	require.NoError(t, err)
	assert.Contains(t, out, "Session:   42")
	assert.Contains(t, out, "Score: 80%")
	assert.Contains(t, out, "dog")

	_, err = execute(t, db, "history", "show", "ffff")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no result")
}

func TestPrintWordPage(t *testing.T) {
	words := []vocab.WordEntry{
		{ID: "1", English: "cat", Uzbek: "mushuk"},
		{ID: "2", English: "dog", Uzbek: "it"},
	}

	var out bytes.Buffer
	printWordPage(&out, corpus.Apply(words, "", 1), len(words))
	assert.Contains(t, out.String(), "mushuk")
	assert.Contains(t, out.String(), "Page 1 of 1 · 2 matching · 2 total")

	out.Reset()
	printWordPage(&out, corpus.Apply(words, "zebra", 1), len(words))
	assert.Equal(t, "No words match \"zebra\".\n", out.String())

	out.Reset()
	printWordPage(&out, corpus.Apply(nil, "", 1), 0)
	assert.Contains(t, out.String(), "No words yet.")
}

func TestTokenStatus(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	sign := func(exp time.Time) string {
		tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"user_id": "7",
			"exp":     exp.Unix(),
		}).SignedString([]byte("test-secret"))
		require.NoError(t, err)
		return tok
	}

	assert.True(t, strings.HasPrefix(tokenStatus(sign(now.Add(time.Hour)), now), "valid until"))
	assert.True(t, strings.HasPrefix(tokenStatus(sign(now.Add(-time.Hour)), now), "expired"))
	assert.Equal(t, "unknown expiry", tokenStatus("not-a-token", now))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
}

func TestWarnStale(t *testing.T) {
	var buf bytes.Buffer
	warnStale(&buf, errors.New("boom"))
	assert.Empty(t, buf.String())

	warnStale(&buf, &corpus.StaleError{Err: errors.New("boom")})
	assert.Contains(t, buf.String(), "change saved")
	assert.Contains(t, buf.String(), api.OpListWords.Fallback())
}
