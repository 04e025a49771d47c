// Package vocab holds the domain types shared by the word cache, the quiz
// orchestrator, the replay engine and the HTTP client.
package vocab

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// ID is an opaque, server-assigned identifier. Numeric ids are kept in their
// textual form and written back as JSON numbers so the server sees exactly
// what it issued.
type ID string

// String returns the textual form of the id.
func (id ID) String() string { return string(id) }

// IsZero reports whether the id is unset.
func (id ID) IsZero() bool { return id == "" }

// UnmarshalJSON accepts a JSON number, a JSON string or null.
func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || bytes.Equal(b, []byte("null")):
		*id = ""
		return nil
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return fmt.Errorf("decode id: %w", err)
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("decode id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// MarshalJSON writes integer-looking ids as numbers and everything else as strings.
func (id ID) MarshalJSON() ([]byte, error) {
	if isInteger(string(id)) {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

func isInteger(s string) bool {
	if s == "" {
		return false
	}
	s = strings.TrimPrefix(s, "-")
	if s == "" || (len(s) > 1 && s[0] == '0') {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// WordEntry is one vocabulary pair owned by the word store.
type WordEntry struct {
	ID      ID
	English string
	Uzbek   string
}

// Direction selects which side of a pair is prompted.
type Direction string

const (
	// Forward prompts English and expects Uzbek.
	Forward Direction = "en_to_uz"
	// Reverse prompts Uzbek and expects English.
	Reverse Direction = "uz_to_en"
)

// ParseDirection accepts the wire values and the forward/reverse aliases.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(Forward), "forward", "en", "en-uz":
		return Forward, nil
	case string(Reverse), "reverse", "uz", "uz-en":
		return Reverse, nil
	}
	return "", fmt.Errorf("invalid direction %q: must be %s or %s", s, Forward, Reverse)
}

// Valid reports whether d is one of the two known directions.
func (d Direction) Valid() bool {
	return d == Forward || d == Reverse
}

// Label is the human-readable name of the direction.
func (d Direction) Label() string {
	if d == Reverse {
		return "Uzbek → English"
	}
	return "English → Uzbek"
}

// Toggle returns the opposite direction.
func (d Direction) Toggle() Direction {
	if d == Reverse {
		return Forward
	}
	return Reverse
}

// Mistake is one missed prompt. Provided is empty when the server did not
// report what was typed.
type Mistake struct {
	Prompt   string
	Expected string
	Provided string
}

// SessionResult is the terminal value of a finished quiz session.
type SessionResult struct {
	SessionID      ID
	TotalQuestions int
	Correct        int
	Wrong          int
	Percentage     int // 0..100
	Mistakes       []Mistake
}

// Percentage returns round(correct / total * 100), or 0 for an empty total.
func Percentage(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(correct) / float64(total) * 100))
}

// ClampPercentage rounds a server-reported percentage into 0..100.
func ClampPercentage(p float64) int {
	v := int(math.Round(p))
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
