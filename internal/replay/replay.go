// Package replay re-quizzes the mistakes of a finished session locally,
// without contacting the quiz server.
package replay

import (
	"errors"
	"strings"

	"github.com/abhisek/lugat/internal/vocab"
)

// ErrDone is returned by Submit once every item has been answered.
var ErrDone = errors.New("replay: no items left")

// Item is one prompt to replay and the answer that counts as correct.
type Item struct {
	Prompt   string
	Expected string
}

// Verdict is the outcome of one submission.
type Verdict struct {
	Item     Item
	Provided string
	Correct  bool
}

// Summary is the engine's own tally.
type Summary struct {
	Total      int
	Correct    int
	Wrong      int
	Percentage int
	// Mistakes are the items missed again during the replay.
	Mistakes []vocab.Mistake
}

// Engine walks the items in order, advancing on every submission.
type Engine struct {
	items    []Item
	pos      int
	correct  int
	mistakes []vocab.Mistake
}

// New creates an engine over items. An empty list yields an engine that is
// already done and reports Empty.
func New(items []Item) *Engine {
	return &Engine{items: append([]Item(nil), items...)}
}

// FromMistakes builds an engine from a session's mistakes, ignoring what
// was originally typed.
func FromMistakes(mistakes []vocab.Mistake) *Engine {
	items := make([]Item, 0, len(mistakes))
	for _, m := range mistakes {
		items = append(items, Item{Prompt: m.Prompt, Expected: m.Expected})
	}
	return New(items)
}

// Normalize folds an answer for comparison: surrounding whitespace is
// trimmed and the text is lowercased.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Matches reports whether answer counts as expected.
func Matches(answer, expected string) bool {
	return Normalize(answer) == Normalize(expected)
}

// Empty reports whether there was nothing to replay.
func (e *Engine) Empty() bool { return len(e.items) == 0 }

// Done reports whether every item has been answered.
func (e *Engine) Done() bool { return e.pos >= len(e.items) }

// Len returns the number of items.
func (e *Engine) Len() int { return len(e.items) }

// Position returns the 1-based index of the current item, or Len once done.
func (e *Engine) Position() int { return min(e.pos+1, len(e.items)) }

// Current returns the item awaiting an answer.
func (e *Engine) Current() (Item, bool) {
	if e.Done() {
		return Item{}, false
	}
	return e.items[e.pos], true
}

// Submit judges answer against the current item and moves on.
func (e *Engine) Submit(answer string) (Verdict, error) {
	item, ok := e.Current()
	if !ok {
		return Verdict{}, ErrDone
	}
	v := Verdict{Item: item, Provided: strings.TrimSpace(answer), Correct: Matches(answer, item.Expected)}
	if v.Correct {
		e.correct++
	} else {
		e.mistakes = append(e.mistakes, vocab.Mistake{Prompt: item.Prompt, Expected: item.Expected, Provided: v.Provided})
	}
	e.pos++
	return v, nil
}

// Summary returns the tally so far. Percentage is over all items.
func (e *Engine) Summary() Summary {
	answered := min(e.pos, len(e.items))
	return Summary{
		Total:      len(e.items),
		Correct:    e.correct,
		Wrong:      answered - e.correct,
		Percentage: vocab.Percentage(e.correct, len(e.items)),
		Mistakes:   append([]vocab.Mistake(nil), e.mistakes...),
	}
}
