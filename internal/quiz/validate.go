package quiz

import "fmt"

// ValidationError rejects a start request before any network call.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string { return e.Msg }

// UserMessage returns the text shown to the user.
func (e *ValidationError) UserMessage() string { return e.Msg }

// ValidateRange checks a 0-based inclusive index range against a corpus of
// n words. Checks run in a fixed order and the first failure wins.
func ValidateRange(n, start, end int) error {
	switch {
	case n <= 0:
		return &ValidationError{Field: "words", Msg: "You have no words yet. Add some words before starting a test."}
	case start < 0:
		return &ValidationError{Field: "start", Msg: "Start index must be 0 or greater."}
	case end > n-1:
		return &ValidationError{Field: "end", Msg: fmt.Sprintf("End index must be at most %d.", n-1)}
	case start > end:
		return &ValidationError{Field: "start", Msg: "Start index must be less than or equal to end index."}
	}
	return nil
}
