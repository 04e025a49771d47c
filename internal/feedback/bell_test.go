package feedback

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestBell(muted bool) (*Bell, *bytes.Buffer) {
	var buf bytes.Buffer
	b := NewBell(&buf, muted)
	b.after = func(_ time.Duration, f func()) { f() }
	return b, &buf
}

func TestBell_Play(t *testing.T) {
	b, buf := newTestBell(false)

	b.Play(true)
	assert.Equal(t, "\a", buf.String())

	buf.Reset()
	b.Play(false)
	assert.Equal(t, "\a\a", buf.String())
}

func TestBell_Muted(t *testing.T) {
	b, buf := newTestBell(true)
	b.Play(false)
	assert.Empty(t, buf.String())
	assert.True(t, b.Muted())

	assert.False(t, b.Toggle())
	b.Play(true)
	assert.Equal(t, "\a", buf.String())

	b.SetMuted(true)
	assert.True(t, b.Muted())
}
