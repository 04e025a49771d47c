// Package workspacetest provides in-memory fakes for building a
// workspace.Workspace in tests.
package workspacetest

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/abhisek/lugat/internal/auth"
	"github.com/abhisek/lugat/internal/corpus"
	"github.com/abhisek/lugat/internal/feedback"
	"github.com/abhisek/lugat/internal/quiz"
	"github.com/abhisek/lugat/internal/store"
	"github.com/abhisek/lugat/internal/vocab"
	"github.com/abhisek/lugat/internal/workspace"
)

// Accounts is an in-memory credential lifecycle.
type Accounts struct {
	mu      sync.Mutex
	Creds   *store.Credentials
	Err     error
	Logouts int
}

func (a *Accounts) Login(_ context.Context, form auth.LoginForm) (*store.Credentials, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.Err != nil {
		return nil, a.Err
	}
	a.Creds = &store.Credentials{Username: form.Identifier, Access: "access"}
	return a.Creds, nil
}

func (a *Accounts) Register(_ context.Context, form auth.RegisterForm) (*store.Credentials, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.Err != nil {
		return nil, a.Err
	}
	a.Creds = &store.Credentials{Username: form.Username, Email: form.Email, Access: "access"}
	return a.Creds, nil
}

func (a *Accounts) Logout(context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.Logouts++
	a.Creds = nil
	return nil
}

func (a *Accounts) Current(context.Context) (*store.Credentials, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.Creds == nil {
		return nil, auth.ErrNotLoggedIn
	}
	return a.Creds, nil
}

func (a *Accounts) ForgotPassword(_ context.Context, form auth.ForgotForm) (string, error) {
	if a.Err != nil {
		return "", a.Err
	}
	return "Reset link sent to " + form.Email, nil
}

func (a *Accounts) ResetPassword(context.Context, auth.ResetForm) (string, error) {
	if a.Err != nil {
		return "", a.Err
	}
	return "Password updated.", nil
}

// Backend is an in-memory word store and quiz server. Words are served
// in pages of corpus.PageSize; a test asks each selected word once, in order.
type Backend struct {
	mu     sync.Mutex
	words  []vocab.WordEntry
	nextID int

	// Fail makes the next call of the named method return the error once.
	Fail map[string]error

	session  vocab.ID
	items    []vocab.WordEntry
	dir      vocab.Direction
	pos      int
	correct  int
	mistakes []vocab.Mistake
	Calls    []string
}

// NewBackend seeds the store with english/uzbek pairs.
func NewBackend(pairs ...[2]string) *Backend {
	b := &Backend{Fail: map[string]error{}}
	for _, p := range pairs {
		b.nextID++
		b.words = append(b.words, vocab.WordEntry{ID: vocab.ID(strconv.Itoa(b.nextID)), English: p[0], Uzbek: p[1]})
	}
	return b
}

func (b *Backend) call(name string) error {
	b.Calls = append(b.Calls, name)
	if err, ok := b.Fail[name]; ok {
		delete(b.Fail, name)
		return err
	}
	return nil
}

func (b *Backend) ListWords(_ context.Context, page int) (corpus.Page, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.call("ListWords"); err != nil {
		return corpus.Page{}, err
	}
	from := (page - 1) * corpus.PageSize
	if from > len(b.words) {
		from = len(b.words)
	}
	to := min(from+corpus.PageSize, len(b.words))
	items := append([]vocab.WordEntry(nil), b.words[from:to]...)
	return corpus.Page{Items: items, Count: len(b.words), Paginated: true}, nil
}

func (b *Backend) CreateWord(_ context.Context, in vocab.WordInput) (vocab.WordEntry, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.call("CreateWord"); err != nil {
		return vocab.WordEntry{}, err
	}
	b.nextID++
	w := vocab.WordEntry{ID: vocab.ID(strconv.Itoa(b.nextID)), English: in.English, Uzbek: in.Uzbek}
	b.words = append(b.words, w)
	return w, nil
}

func (b *Backend) UpdateWord(_ context.Context, id vocab.ID, in vocab.WordInput) (vocab.WordEntry, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.call("UpdateWord"); err != nil {
		return vocab.WordEntry{}, err
	}
	for i := range b.words {
		if b.words[i].ID == id {
			b.words[i].English, b.words[i].Uzbek = in.English, in.Uzbek
			return b.words[i], nil
		}
	}
	return vocab.WordEntry{}, fmt.Errorf("word %s not found", id)
}

func (b *Backend) DeleteWord(_ context.Context, id vocab.ID) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.call("DeleteWord"); err != nil {
		return err
	}
	for i := range b.words {
		if b.words[i].ID == id {
			b.words = append(b.words[:i], b.words[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("word %s not found", id)
}

// Words returns the stored words sorted by id.
func (b *Backend) Words() []vocab.WordEntry {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := append([]vocab.WordEntry(nil), b.words...)
	sort.Slice(out, func(i, j int) bool { return out[i].ID.String() < out[j].ID.String() })
	return out
}

func (b *Backend) StartTest(_ context.Context, req quiz.StartRequest) (quiz.Started, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.call("StartTest"); err != nil {
		return quiz.Started{}, err
	}
	if req.End >= len(b.words) {
		return quiz.Started{}, errors.New("range out of bounds")
	}
	b.session = vocab.ID(uuid.NewString())
	b.items = append([]vocab.WordEntry(nil), b.words[req.Start:req.End+1]...)
	b.dir = req.Direction
	b.pos, b.correct, b.mistakes = 0, 0, nil
	return quiz.Started{SessionID: b.session, TotalWords: len(b.items), TotalQuestions: len(b.items)}, nil
}

func (b *Backend) prompt() (string, string) {
	w := b.items[b.pos]
	if b.dir == vocab.Reverse {
		return w.Uzbek, w.English
	}
	return w.English, w.Uzbek
}

func (b *Backend) question() quiz.Question {
	if b.pos >= len(b.items) {
		return quiz.Question{Finished: true}
	}
	p, _ := b.prompt()
	return quiz.Question{Prompt: p, Progress: b.pos + 1, Total: len(b.items)}
}

func (b *Backend) Question(context.Context, vocab.ID) (quiz.Question, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.call("Question"); err != nil {
		return quiz.Question{}, err
	}
	return b.question(), nil
}

func (b *Backend) Answer(_ context.Context, _ vocab.ID, answer string) (quiz.Answer, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.call("Answer"); err != nil {
		return quiz.Answer{}, err
	}
	p, want := b.prompt()
	ok := strings.EqualFold(strings.TrimSpace(answer), want)
	if ok {
		b.correct++
	} else {
		b.mistakes = append(b.mistakes, vocab.Mistake{Prompt: p, Expected: want, Provided: strings.TrimSpace(answer)})
	}
	return quiz.Answer{Correct: ok, Expected: want, Progress: b.pos + 1, Total: len(b.items), Finished: b.pos+1 >= len(b.items)}, nil
}

func (b *Backend) Next(context.Context, vocab.ID) (quiz.Question, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.call("Next"); err != nil {
		return quiz.Question{}, err
	}
	b.pos++
	return b.question(), nil
}

func (b *Backend) Finish(_ context.Context, id vocab.ID) (vocab.SessionResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.call("Finish"); err != nil {
		return vocab.SessionResult{}, err
	}
	answered := b.correct + len(b.mistakes)
	return vocab.SessionResult{
		SessionID:      id,
		TotalQuestions: len(b.items),
		Correct:        b.correct,
		Wrong:          len(b.mistakes),
		Percentage:     vocab.Percentage(b.correct, answered),
		Mistakes:       append([]vocab.Mistake(nil), b.mistakes...),
	}, nil
}

// Results is an in-memory result journal.
type Results struct {
	mu      sync.Mutex
	Records []store.ResultRecord
}

func (r *Results) Save(_ context.Context, rec *store.ResultRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	r.Records = append([]store.ResultRecord{*rec}, r.Records...)
	return nil
}

func (r *Results) List(_ context.Context, limit int) ([]store.ResultRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if limit <= 0 || limit > len(r.Records) {
		limit = len(r.Records)
	}
	return append([]store.ResultRecord(nil), r.Records[:limit]...), nil
}

func (r *Results) Get(_ context.Context, id uuid.UUID) (*store.ResultRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.Records {
		if r.Records[i].ID == id {
			rec := r.Records[i]
			return &rec, nil
		}
	}
	return nil, store.ErrNotFound
}

func (r *Results) Resolve(_ context.Context, prefix string) (*store.ResultRecord, error) {
	r.mu.Lock()
	var found []store.ResultRecord
	for _, rec := range r.Records {
		if strings.HasPrefix(rec.ID.String(), prefix) {
			found = append(found, rec)
		}
	}
	r.mu.Unlock()
	switch len(found) {
	case 0:
		return nil, store.ErrNotFound
	case 1:
		return &found[0], nil
	}
	return nil, store.ErrAmbiguous
}

// Fixture bundles the fakes behind a Workspace.
type Fixture struct {
	Accounts *Accounts
	Backend  *Backend
	Results  *Results
}

// Option adjusts the workspace options before New builds it.
type Option func(*workspace.Options)

// WithBell attaches a feedback bell.
func WithBell(b *feedback.Bell) Option {
	return func(o *workspace.Options) { o.Bell = b }
}

// New builds a Workspace over fresh fakes. A nil backend gets an empty one.
func New(backend *Backend, opts ...Option) (*workspace.Workspace, *Fixture) {
	if backend == nil {
		backend = NewBackend()
	}
	f := &Fixture{Accounts: &Accounts{}, Backend: backend, Results: &Results{}}
	o := workspace.Options{
		Accounts: f.Accounts,
		Connect:  func(context.Context) (workspace.Backend, error) { return f.Backend, nil },
		Results:  f.Results,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return workspace.New(o), f
}

// SignIn stores credentials for name and makes them current.
func (f *Fixture) SignIn(ws *workspace.Workspace, name string) {
	f.Accounts.mu.Lock()
	f.Accounts.Creds = &store.Credentials{Username: name, Access: "access"}
	creds := f.Accounts.Creds
	f.Accounts.mu.Unlock()
	ws.SetUser(creds)
}
