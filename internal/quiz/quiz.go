// Package quiz drives a server-scored vocabulary test session through its
// start, question, answer, next and finish steps.
package quiz

import (
	"context"
	"errors"
	"time"

	"github.com/abhisek/lugat/internal/vocab"
)

// StartRequest selects the words to test by their 0-based, inclusive
// position in the current word list.
type StartRequest struct {
	Direction vocab.Direction
	Start     int
	End       int
}

// Started is the quiz server's reply to a start request.
type Started struct {
	SessionID      vocab.ID
	TotalWords     int
	TotalQuestions int
}

// Question is either a prompt or a notice that the session is over.
type Question struct {
	Finished bool
	Prompt   string
	Progress int
	Total    int
}

// Answer is the server's verdict on one submitted answer.
type Answer struct {
	Correct  bool
	Expected string
	Finished bool
	Progress int
	Total    int
}

// Server is the remote quiz service. It owns question selection and scoring.
type Server interface {
	StartTest(ctx context.Context, req StartRequest) (Started, error)
	Question(ctx context.Context, sessionID vocab.ID) (Question, error)
	Answer(ctx context.Context, sessionID vocab.ID, answer string) (Answer, error)
	Next(ctx context.Context, sessionID vocab.ID) (Question, error)
	Finish(ctx context.Context, sessionID vocab.ID) (vocab.SessionResult, error)
}

// Cue gives the user immediate right/wrong feedback.
type Cue interface {
	Play(correct bool)
}

// Outcome is handed to the finish hook once per completed session.
type Outcome struct {
	Request    StartRequest
	Result     vocab.SessionResult
	StartedAt  time.Time
	FinishedAt time.Time
}

var (
	// ErrBusy is returned when a step is requested while another is in flight.
	ErrBusy = errors.New("quiz: a request is already in flight")

	// ErrNotAllowed is returned when a step is not valid in the current state.
	ErrNotAllowed = errors.New("quiz: step not allowed in current state")
)

type silentCue struct{}

func (silentCue) Play(bool) {}
