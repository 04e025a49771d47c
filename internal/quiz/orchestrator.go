package quiz

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/abhisek/lugat/internal/vocab"
)

// Orchestrator sequences one quiz session against a Server. It never judges
// answers itself. At most one request is in flight at a time; methods called
// while one is pending return ErrBusy.
//
// An Orchestrator is single-use: once Finished it stays Finished.
type Orchestrator struct {
	server   Server
	cue      Cue
	logger   *slog.Logger
	onFinish func(Outcome)
	now      func() time.Time

	mu         sync.Mutex
	state      State
	failedStep State
	pending    bool
	err        error

	req       StartRequest
	sessionID vocab.ID
	startedAt time.Time

	prompt   string
	progress int
	total    int

	// answer holds the text of the answer being submitted so a failed
	// submission can be retried as is.
	answer     string
	lastAnswer *Answer
	mistakes   []vocab.Mistake
	result     *vocab.SessionResult
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithCue sets the right/wrong feedback cue.
func WithCue(c Cue) Option {
	return func(o *Orchestrator) { o.cue = c }
}

// WithLogger sets the logger for state transitions.
func WithLogger(l *slog.Logger) Option {
	return func(o *Orchestrator) { o.logger = l }
}

// WithFinishHook registers fn to receive the outcome once the session has
// finished. fn runs on the goroutine that completed the finish step.
func WithFinishHook(fn func(Outcome)) Option {
	return func(o *Orchestrator) { o.onFinish = fn }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) { o.now = now }
}

// NewOrchestrator creates an orchestrator in the Configuring state.
func NewOrchestrator(server Server, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		server: server,
		cue:    silentCue{},
		logger: slog.Default(),
		now:    time.Now,
		state:  Configuring,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Snapshot is a consistent copy of the orchestrator's visible fields.
type Snapshot struct {
	State     State
	Pending   bool
	SessionID vocab.ID
	Request   StartRequest
	Prompt    string
	Progress  int
	Total     int
	// LastAnswer is the verdict on the most recent submission, if any.
	LastAnswer *Answer
	// Err is the failure that moved the session to Errored.
	Err error
	// FailedStep is the step that Retry would re-run.
	FailedStep State
}

// Snapshot returns the current visible state.
func (o *Orchestrator) Snapshot() Snapshot {
	o.mu.Lock()
	defer o.mu.Unlock()
	s := Snapshot{
		State:      o.state,
		Pending:    o.pending,
		SessionID:  o.sessionID,
		Request:    o.req,
		Prompt:     o.prompt,
		Progress:   o.progress,
		Total:      o.total,
		Err:        o.err,
		FailedStep: o.failedStep,
	}
	if o.lastAnswer != nil {
		a := *o.lastAnswer
		s.LastAnswer = &a
	}
	return s
}

// State returns the current state.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Mistakes returns the wrong answers observed so far, in order. They are
// kept apart from the server's result and only stand in for it when the
// result cannot be fetched.
func (o *Orchestrator) Mistakes() []vocab.Mistake {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]vocab.Mistake(nil), o.mistakes...)
}

// Result returns the session result once Finished.
func (o *Orchestrator) Result() (vocab.SessionResult, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.result == nil {
		return vocab.SessionResult{}, false
	}
	return *o.result, true
}

// Start validates req against a word list of corpusSize entries and opens a
// session. A validation failure leaves the orchestrator in Configuring and
// makes no request.
func (o *Orchestrator) Start(ctx context.Context, req StartRequest, corpusSize int) error {
	if err := ValidateRange(corpusSize, req.Start, req.End); err != nil {
		return err
	}
	if req.Direction == "" {
		req.Direction = vocab.Forward
	}
	if !req.Direction.Valid() {
		return &ValidationError{Field: "direction", Msg: fmt.Sprintf("Unknown direction %q.", req.Direction)}
	}

	if _, err := o.acquire(Configuring); err != nil {
		return err
	}
	o.mu.Lock()
	o.req = req
	o.enter(Starting)
	o.mu.Unlock()
	return o.start(ctx)
}

func (o *Orchestrator) start(ctx context.Context) error {
	o.mu.Lock()
	req := o.req
	o.mu.Unlock()

	started, err := o.server.StartTest(ctx, req)
	if err != nil {
		return o.fail(Starting, err)
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	o.sessionID = started.SessionID
	o.startedAt = o.now()
	if started.TotalQuestions > 0 {
		o.total = started.TotalQuestions
	}
	o.enter(AwaitingQuestion)
	o.pending = false
	return nil
}

// LoadQuestion fetches the current prompt. If the server reports the
// session over, the session is finished instead.
func (o *Orchestrator) LoadQuestion(ctx context.Context) error {
	id, err := o.acquire(AwaitingQuestion)
	if err != nil {
		return err
	}
	return o.loadQuestion(ctx, id)
}

func (o *Orchestrator) loadQuestion(ctx context.Context, id vocab.ID) error {
	q, err := o.server.Question(ctx, id)
	if err != nil {
		return o.fail(AwaitingQuestion, err)
	}
	if q.Finished {
		return o.finish(ctx, id)
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	o.setQuestion(q)
	o.enter(AwaitingAnswer)
	o.pending = false
	return nil
}

// SubmitAnswer sends the user's answer and plays the feedback cue for the
// verdict. The session then either finishes or advances to the next
// question. The verdict is returned even when the following step fails.
func (o *Orchestrator) SubmitAnswer(ctx context.Context, answer string) (Answer, error) {
	id, err := o.acquire(AwaitingAnswer)
	if err != nil {
		return Answer{}, err
	}
	o.mu.Lock()
	o.answer = answer
	o.mu.Unlock()
	return o.submit(ctx, id)
}

func (o *Orchestrator) submit(ctx context.Context, id vocab.ID) (Answer, error) {
	o.mu.Lock()
	answer := o.answer
	o.mu.Unlock()

	res, err := o.server.Answer(ctx, id, answer)
	if err != nil {
		return Answer{}, o.fail(AwaitingAnswer, err)
	}

	o.cue.Play(res.Correct)

	o.mu.Lock()
	a := res
	o.lastAnswer = &a
	if !res.Correct {
		o.mistakes = append(o.mistakes, vocab.Mistake{
			Prompt:   o.prompt,
			Expected: res.Expected,
			Provided: strings.TrimSpace(answer),
		})
	}
	// progress is the position of the question just answered
	last := o.total > 0 && o.progress >= o.total
	done := res.Finished || last
	if done {
		o.mu.Unlock()
		return res, o.finish(ctx, id)
	}
	o.enter(Transitioning)
	o.mu.Unlock()

	return res, o.advance(ctx, id)
}

func (o *Orchestrator) advance(ctx context.Context, id vocab.ID) error {
	q, err := o.server.Next(ctx, id)
	if err != nil {
		return o.fail(Transitioning, err)
	}
	if q.Finished {
		return o.finish(ctx, id)
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	o.setQuestion(q)
	o.answer = ""
	o.enter(AwaitingQuestion)
	o.pending = false
	return nil
}

// Finish ends the session early and fetches its result. It is valid once a
// session exists and has not already finished.
func (o *Orchestrator) Finish(ctx context.Context) error {
	id, err := o.acquire(AwaitingQuestion, AwaitingAnswer, Errored)
	if err != nil {
		return err
	}
	if id.IsZero() {
		o.mu.Lock()
		o.pending = false
		o.mu.Unlock()
		return fmt.Errorf("%w: no session to finish", ErrNotAllowed)
	}
	return o.finish(ctx, id)
}

// finish must be called with the pending flag held. Finished is absorbing,
// so a session can reach this point at most once successfully.
func (o *Orchestrator) finish(ctx context.Context, id vocab.ID) error {
	o.mu.Lock()
	o.err = nil
	o.enter(Finishing)
	o.mu.Unlock()

	res, err := o.server.Finish(ctx, id)
	if err != nil {
		return o.fail(Finishing, err)
	}

	o.mu.Lock()
	if res.SessionID.IsZero() {
		res.SessionID = id
	}
	o.result = &res
	o.enter(Finished)
	o.pending = false
	out := Outcome{Request: o.req, Result: res, StartedAt: o.startedAt, FinishedAt: o.now()}
	hook := o.onFinish
	o.mu.Unlock()

	if hook != nil {
		hook(out)
	}
	return nil
}

// Retry re-runs the step that failed. The session id is kept, and a failed
// answer is resent with the same text.
func (o *Orchestrator) Retry(ctx context.Context) error {
	id, err := o.acquire(Errored)
	if err != nil {
		return err
	}

	o.mu.Lock()
	step := o.failedStep
	o.err = nil
	o.enter(step)
	o.mu.Unlock()

	switch step {
	case Starting:
		return o.start(ctx)
	case AwaitingQuestion:
		return o.loadQuestion(ctx, id)
	case AwaitingAnswer:
		_, err := o.submit(ctx, id)
		return err
	case Transitioning:
		return o.advance(ctx, id)
	case Finishing:
		return o.finish(ctx, id)
	}

	o.mu.Lock()
	o.pending = false
	o.mu.Unlock()
	return fmt.Errorf("%w: nothing to retry", ErrNotAllowed)
}

// acquire claims the single in-flight slot if the state is one of allowed.
func (o *Orchestrator) acquire(allowed ...State) (vocab.ID, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.pending {
		return "", ErrBusy
	}
	for _, s := range allowed {
		if o.state == s {
			o.pending = true
			return o.sessionID, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrNotAllowed, o.state)
}

// fail records err against step and moves to Errored.
func (o *Orchestrator) fail(step State, err error) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.failedStep = step
	o.err = err
	o.enter(Errored)
	o.pending = false
	o.logger.Warn("quiz step failed", "session_id", o.sessionID.String(), "step", step.String(), "error", err)
	return err
}

func (o *Orchestrator) setQuestion(q Question) {
	o.prompt = q.Prompt
	o.progress = q.Progress
	if q.Total > 0 {
		o.total = q.Total
	}
}

// enter must be called with mu held.
func (o *Orchestrator) enter(to State) {
	if o.state == to {
		return
	}
	o.logger.Debug("quiz state", "session_id", o.sessionID.String(), "from", o.state.String(), "to", to.String())
	o.state = to
}
