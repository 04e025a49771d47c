package quiz

// State is the orchestrator's position in the session protocol.
type State int

const (
	Configuring State = iota
	Starting
	AwaitingQuestion
	AwaitingAnswer
	Transitioning
	Finishing
	Finished
	Errored
)

var stateNames = [...]string{
	Configuring:      "configuring",
	Starting:         "starting",
	AwaitingQuestion: "awaiting_question",
	AwaitingAnswer:   "awaiting_answer",
	Transitioning:    "transitioning",
	Finishing:        "finishing",
	Finished:         "finished",
	Errored:          "errored",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// Terminal reports whether no further protocol step can follow.
func (s State) Terminal() bool {
	return s == Finished
}

// Busy reports whether the state is one in which a request is normally in
// flight and input should be held back.
func (s State) Busy() bool {
	switch s {
	case Starting, Transitioning, Finishing:
		return true
	}
	return false
}
