package quiz

import (
	orch "github.com/abhisek/lugat/internal/quiz"
)

// stepDoneMsg is sent when an orchestrator step returns.
type stepDoneMsg struct {
	Err error
}

// answeredMsg is sent when an answer has been checked and the session moved on.
type answeredMsg struct {
	Answer orch.Answer
	Err    error
}
