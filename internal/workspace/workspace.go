// Package workspace holds what the signed-in user is working with: their
// credentials, the word cache bound to them, the test settings they last
// chose and the journal finished tests are written to. The TUI and the
// line-mode commands share one Workspace.
package workspace

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/abhisek/lugat/internal/auth"
	"github.com/abhisek/lugat/internal/corpus"
	"github.com/abhisek/lugat/internal/feedback"
	"github.com/abhisek/lugat/internal/quiz"
	"github.com/abhisek/lugat/internal/store"
	"github.com/abhisek/lugat/internal/vocab"
)

// Accounts is the credential lifecycle used by the login screens.
type Accounts interface {
	Login(ctx context.Context, form auth.LoginForm) (*store.Credentials, error)
	Register(ctx context.Context, form auth.RegisterForm) (*store.Credentials, error)
	Logout(ctx context.Context) error
	Current(ctx context.Context) (*store.Credentials, error)
	ForgotPassword(ctx context.Context, form auth.ForgotForm) (string, error)
	ResetPassword(ctx context.Context, form auth.ResetForm) (string, error)
}

// Backend is everything the word and quiz screens need from the server.
type Backend interface {
	corpus.WordStore
	quiz.Server
}

// Connector returns a backend authenticated as the stored user.
type Connector func(ctx context.Context) (Backend, error)

// Options wires a Workspace.
type Options struct {
	Accounts Accounts
	Connect  Connector
	Results  store.ResultRepo
	Bell     *feedback.Bell
	Logger   *slog.Logger
	Now      func() time.Time
}

// Workspace is safe for concurrent use; tea commands touch it from
// their own goroutines.
type Workspace struct {
	accounts Accounts
	connect  Connector
	results  store.ResultRepo
	bell     *feedback.Bell
	logger   *slog.Logger
	now      func() time.Time

	mu       sync.Mutex
	user     *store.Credentials
	backend  Backend
	words    *corpus.Cache
	settings quiz.StartRequest
}

// New creates a Workspace. Nothing is loaded until first use.
func New(opts Options) *Workspace {
	w := &Workspace{
		accounts: opts.Accounts,
		connect:  opts.Connect,
		results:  opts.Results,
		bell:     opts.Bell,
		logger:   opts.Logger,
		now:      opts.Now,
		settings: quiz.StartRequest{Direction: vocab.Forward},
	}
	if w.logger == nil {
		w.logger = slog.Default()
	}
	if w.now == nil {
		w.now = time.Now
	}
	return w
}

// Accounts returns the credential lifecycle.
func (w *Workspace) Accounts() Accounts { return w.accounts }

// Results returns the local result journal.
func (w *Workspace) Results() store.ResultRepo { return w.results }

// Bell returns the feedback cue, possibly nil.
func (w *Workspace) Bell() *feedback.Bell { return w.bell }

// Restore loads stored credentials, if any. Not being signed in is not an error.
func (w *Workspace) Restore(ctx context.Context) (*store.Credentials, error) {
	c, err := w.accounts.Current(ctx)
	if errors.Is(err, auth.ErrNotLoggedIn) {
		w.SetUser(nil)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	w.SetUser(c)
	return c, nil
}

// User returns the signed-in user's credentials, or nil.
func (w *Workspace) User() *store.Credentials {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.user
}

// SetUser switches the signed-in user and drops everything bound to the
// previous one.
func (w *Workspace) SetUser(c *store.Credentials) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.user = c
	w.backend = nil
	w.words = nil
}

// Backend returns the server connection for the signed-in user.
func (w *Workspace) Backend(ctx context.Context) (Backend, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.backendLocked(ctx)
}

func (w *Workspace) backendLocked(ctx context.Context) (Backend, error) {
	if w.backend != nil {
		return w.backend, nil
	}
	b, err := w.connect(ctx)
	if err != nil {
		return nil, err
	}
	w.backend = b
	return b, nil
}

// Words returns the word cache for the signed-in user. The cache is
// created on first use and reloaded only by its callers.
func (w *Workspace) Words(ctx context.Context) (*corpus.Cache, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.words != nil {
		return w.words, nil
	}
	b, err := w.backendLocked(ctx)
	if err != nil {
		return nil, err
	}
	w.words = corpus.New(b, w.logger)
	return w.words, nil
}

// Settings returns the last chosen test settings.
func (w *Workspace) Settings() quiz.StartRequest {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.settings
}

// SetSettings remembers the test settings for the next test.
func (w *Workspace) SetSettings(req quiz.StartRequest) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.settings = req
}

// NewOrchestrator returns a fresh orchestrator against the signed-in
// user's backend. Finished sessions are written to the result journal.
func (w *Workspace) NewOrchestrator(ctx context.Context) (*quiz.Orchestrator, error) {
	b, err := w.Backend(ctx)
	if err != nil {
		return nil, err
	}
	opts := []quiz.Option{
		quiz.WithLogger(w.logger),
		quiz.WithClock(w.now),
		quiz.WithFinishHook(w.record),
	}
	if w.bell != nil {
		opts = append(opts, quiz.WithCue(w.bell))
	}
	return quiz.NewOrchestrator(b, opts...), nil
}

// record journals a finished session. Failures are logged, never surfaced:
// the result is already on screen.
func (w *Workspace) record(out quiz.Outcome) {
	if w.results == nil {
		return
	}
	rec := &store.ResultRecord{
		SessionID:  out.Result.SessionID,
		Direction:  out.Request.Direction,
		Start:      out.Request.Start,
		End:        out.Request.End,
		Result:     out.Result,
		StartedAt:  out.StartedAt,
		FinishedAt: out.FinishedAt,
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := w.results.Save(ctx, rec); err != nil {
		w.logger.Warn("save result", "session_id", out.Result.SessionID.String(), "error", err)
		return
	}
	w.logger.Debug("result saved", "id", rec.ID.String(), "session_id", out.Result.SessionID.String())
}

// Status is the one-line account summary shown in the header.
func (w *Workspace) Status() string {
	u := w.User()
	sound := ""
	if w.bell != nil {
		if w.bell.Muted() {
			sound = "  ♪ off"
		} else {
			sound = "  ♪ on"
		}
	}
	if u == nil {
		return "signed out" + sound
	}
	name := u.Username
	if name == "" {
		name = u.Email
	}
	return fmt.Sprintf("● %s%s", name, sound)
}
