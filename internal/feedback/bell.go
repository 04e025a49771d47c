// Package feedback plays the right/wrong answer cue on the terminal.
package feedback

import (
	"io"
	"sync"
	"sync/atomic"
	"time"
)

// bell is the ASCII BEL control character.
const bell = "\a"

// failureGap separates the two rings of the failure cue.
const failureGap = 150 * time.Millisecond

// Bell rings the terminal bell: once for a correct answer, twice for a
// wrong one. It is safe for concurrent use.
type Bell struct {
	mu    sync.Mutex
	w     io.Writer
	muted atomic.Bool
	after func(time.Duration, func())
}

// NewBell returns a Bell writing to w.
func NewBell(w io.Writer, muted bool) *Bell {
	b := &Bell{w: w, after: func(d time.Duration, f func()) { time.AfterFunc(d, f) }}
	b.muted.Store(muted)
	return b
}

// Play rings the cue for the verdict unless muted.
func (b *Bell) Play(correct bool) {
	if b.muted.Load() {
		return
	}
	b.ring()
	if !correct {
		b.after(failureGap, b.ring)
	}
}

// Muted reports whether the cue is silenced.
func (b *Bell) Muted() bool { return b.muted.Load() }

// SetMuted silences or restores the cue.
func (b *Bell) SetMuted(m bool) { b.muted.Store(m) }

// Toggle flips the muted flag and returns the new value.
func (b *Bell) Toggle() bool {
	for {
		old := b.muted.Load()
		if b.muted.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

func (b *Bell) ring() {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, _ = io.WriteString(b.w, bell)
}
