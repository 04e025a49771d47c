package workspace

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lugat/internal/auth"
	"github.com/abhisek/lugat/internal/corpus"
	"github.com/abhisek/lugat/internal/feedback"
	"github.com/abhisek/lugat/internal/quiz"
	"github.com/abhisek/lugat/internal/store"
	"github.com/abhisek/lugat/internal/vocab"
)

type fakeAccounts struct {
	current *store.Credentials
}

func (f *fakeAccounts) Login(context.Context, auth.LoginForm) (*store.Credentials, error) {
	return f.current, nil
}
func (f *fakeAccounts) Register(context.Context, auth.RegisterForm) (*store.Credentials, error) {
	return f.current, nil
}
func (f *fakeAccounts) Logout(context.Context) error { f.current = nil; return nil }
func (f *fakeAccounts) Current(context.Context) (*store.Credentials, error) {
	if f.current == nil {
		return nil, auth.ErrNotLoggedIn
	}
	return f.current, nil
}

func (f *fakeAccounts) ForgotPassword(context.Context, auth.ForgotForm) (string, error) {
	return "sent", nil
}
func (f *fakeAccounts) ResetPassword(context.Context, auth.ResetForm) (string, error) {
	return "done", nil
}

type oneQuestionBackend struct{}

func (oneQuestionBackend) ListWords(context.Context, int) (corpus.Page, error) {
	return corpus.Page{Items: []vocab.WordEntry{{ID: vocab.ID("1"), English: "cat", Uzbek: "mushuk"}}}, nil
}
func (oneQuestionBackend) CreateWord(context.Context, vocab.WordInput) (vocab.WordEntry, error) {
	return vocab.WordEntry{}, nil
}
func (oneQuestionBackend) UpdateWord(context.Context, vocab.ID, vocab.WordInput) (vocab.WordEntry, error) {
	return vocab.WordEntry{}, nil
}
func (oneQuestionBackend) DeleteWord(context.Context, vocab.ID) error { return nil }
func (oneQuestionBackend) StartTest(context.Context, quiz.StartRequest) (quiz.Started, error) {
	return quiz.Started{SessionID: vocab.ID("s1"), TotalQuestions: 1}, nil
}
func (oneQuestionBackend) Question(context.Context, vocab.ID) (quiz.Question, error) {
	return quiz.Question{Prompt: "cat", Progress: 1, Total: 1}, nil
}
func (oneQuestionBackend) Answer(context.Context, vocab.ID, string) (quiz.Answer, error) {
	return quiz.Answer{Correct: false, Expected: "mushuk", Progress: 1, Total: 1}, nil
}
func (oneQuestionBackend) Next(context.Context, vocab.ID) (quiz.Question, error) {
	return quiz.Question{Finished: true}, nil
}
func (oneQuestionBackend) Finish(_ context.Context, id vocab.ID) (vocab.SessionResult, error) {
	return vocab.SessionResult{SessionID: id, TotalQuestions: 1, Wrong: 1,
		Mistakes: []vocab.Mistake{{Prompt: "cat", Expected: "mushuk", Provided: "it"}}}, nil
}

type memResults struct {
	saved []store.ResultRecord
}

func (m *memResults) Save(_ context.Context, rec *store.ResultRecord) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	m.saved = append(m.saved, *rec)
	return nil
}
func (m *memResults) List(context.Context, int) ([]store.ResultRecord, error) { return m.saved, nil }
func (m *memResults) Get(context.Context, uuid.UUID) (*store.ResultRecord, error) {
	return nil, store.ErrNotFound
}
func (m *memResults) Resolve(context.Context, string) (*store.ResultRecord, error) {
	return nil, store.ErrNotFound
}

func newWorkspace(accounts *fakeAccounts, results *memResults) (*Workspace, *int) {
	connects := 0
	ws := New(Options{
		Accounts: accounts,
		Connect: func(context.Context) (Backend, error) {
			connects++
			return oneQuestionBackend{}, nil
		},
		Results: results,
		Now:     func() time.Time { return time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC) },
	})
	return ws, &connects
}

func TestRestore(t *testing.T) {
	t.Run("signed out", func(t *testing.T) {
		ws, _ := newWorkspace(&fakeAccounts{}, nil)
		c, err := ws.Restore(context.Background())
		require.NoError(t, err)
		assert.Nil(t, c)
		assert.Nil(t, ws.User())
		assert.Equal(t, "signed out", ws.Status())
	})

	t.Run("signed in", func(t *testing.T) {
		ws, _ := newWorkspace(&fakeAccounts{current: &store.Credentials{Username: "ali", Access: "tok"}}, nil)
		c, err := ws.Restore(context.Background())
		require.NoError(t, err)
		require.NotNil(t, c)
		assert.Equal(t, "● ali", ws.Status())
	})
}

func TestWordsCacheIsBoundToUser(t *testing.T) {
	ws, connects := newWorkspace(&fakeAccounts{}, nil)
	ctx := context.Background()

	first, err := ws.Words(ctx)
	require.NoError(t, err)
	again, err := ws.Words(ctx)
	require.NoError(t, err)
	assert.Same(t, first, again)
	assert.Equal(t, 1, *connects)

	ws.SetUser(&store.Credentials{Username: "vali"})
	other, err := ws.Words(ctx)
	require.NoError(t, err)
	assert.NotSame(t, first, other)
	assert.Equal(t, 2, *connects)
}

func TestConnectFailure(t *testing.T) {
	boom := errors.New("no credentials")
	ws := New(Options{Connect: func(context.Context) (Backend, error) { return nil, boom }})

	_, err := ws.Words(context.Background())
	assert.ErrorIs(t, err, boom)
	_, err = ws.NewOrchestrator(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestFinishedSessionIsJournaled(t *testing.T) {
	results := &memResults{}
	ws, _ := newWorkspace(&fakeAccounts{}, results)
	ctx := context.Background()

	o, err := ws.NewOrchestrator(ctx)
	require.NoError(t, err)
	req := quiz.StartRequest{Direction: vocab.Reverse, Start: 0, End: 0}
	require.NoError(t, o.Start(ctx, req, 1))
	require.NoError(t, o.LoadQuestion(ctx))
	_, err = o.SubmitAnswer(ctx, "it")
	require.NoError(t, err)
	require.Equal(t, quiz.Finished, o.State())

	require.Len(t, results.saved, 1)
	rec := results.saved[0]
	assert.NotEqual(t, uuid.Nil, rec.ID)
	assert.Equal(t, vocab.ID("s1"), rec.SessionID)
	assert.Equal(t, vocab.Reverse, rec.Direction)
	assert.Equal(t, 1, rec.Result.Wrong)
	require.Len(t, rec.Result.Mistakes, 1)
	assert.Equal(t, "mushuk", rec.Result.Mistakes[0].Expected)
}

func TestSettingsAndStatus(t *testing.T) {
	bell := feedback.NewBell(&bytes.Buffer{}, true)
	ws := New(Options{Bell: bell})

	assert.Equal(t, vocab.Forward, ws.Settings().Direction)
	ws.SetSettings(quiz.StartRequest{Direction: vocab.Reverse, Start: 2, End: 4})
	assert.Equal(t, 4, ws.Settings().End)

	ws.SetUser(&store.Credentials{Email: "a@b.uz"})
	assert.Equal(t, "● a@b.uz  ♪ off", ws.Status())
	bell.SetMuted(false)
	assert.Equal(t, "● a@b.uz  ♪ on", ws.Status())
}
