package presenter

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/aretw0/workbench/pkg/adapters/clipboard"
	"github.com/aretw0/workbench/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// manualScheduler fires timers only when the test advances time.
type manualScheduler struct {
	mu     sync.Mutex
	now    time.Duration
	timers []*manualTimer
}

type manualTimer struct {
	at      time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (t *manualTimer) Stop() bool {
	was := !t.stopped && !t.fired
	t.stopped = true
	return was
}

func (s *manualScheduler) AfterFunc(d time.Duration, f func()) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &manualTimer{at: s.now + d, f: f}
	s.timers = append(s.timers, t)
	return t
}

func (s *manualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	s.now += d
	var due []*manualTimer
	for _, t := range s.timers {
		if !t.stopped && !t.fired && t.at <= s.now {
			t.fired = true
			due = append(due, t)
		}
	}
	s.mu.Unlock()
	for _, t := range due {
		t.f()
	}
}

func TestPresent(t *testing.T) {
	p := New(&clipboard.Memory{})
	field := &Field{}

	p.Present(field, domain.Success(domain.Output{Text: "HELLO"}))
	assert.Equal(t, "HELLO", field.Text())

	p.Present(field, domain.Failure(domain.KindFormat, "Invalid JSON: unexpected end of JSON input"))
	assert.Equal(t, "Invalid JSON: unexpected end of JSON input", field.Text())
}

func TestCopy_RevertsAfterDelay(t *testing.T) {
	sched := &manualScheduler{}
	clip := &clipboard.Memory{}
	p := New(clip, WithScheduler(sched))
	btn := NewButton("")

	require.NoError(t, p.Copy(context.Background(), btn, "s3cr3t"))
	assert.Equal(t, "s3cr3t", clip.Text)
	assert.Equal(t, CopiedLabel, btn.Label())

	sched.Advance(1499 * time.Millisecond)
	assert.Equal(t, CopiedLabel, btn.Label())

	sched.Advance(time.Millisecond)
	assert.Equal(t, IdleLabel, btn.Label())
}

func TestCopy_LastActionWins(t *testing.T) {
	sched := &manualScheduler{}
	p := New(&clipboard.Memory{}, WithScheduler(sched))
	btn := NewButton("Copy password")

	require.NoError(t, p.Copy(context.Background(), btn, "first"))
	sched.Advance(1000 * time.Millisecond)
	require.NoError(t, p.Copy(context.Background(), btn, "second"))

	// The first timer would have fired here.
	sched.Advance(600 * time.Millisecond)
	assert.Equal(t, CopiedLabel, btn.Label())

	sched.Advance(900 * time.Millisecond)
	assert.Equal(t, "Copy password", btn.Label())
}

func TestCopy_EmptyTextIsNoop(t *testing.T) {
	sched := &manualScheduler{}
	clip := &clipboard.Memory{Text: "previous"}
	p := New(clip, WithScheduler(sched))
	btn := NewButton("")

	require.NoError(t, p.Copy(context.Background(), btn, ""))
	assert.Equal(t, "previous", clip.Text)
	assert.Equal(t, IdleLabel, btn.Label())
	assert.Empty(t, sched.timers)
}

func TestCopy_ClipboardFailure(t *testing.T) {
	sched := &manualScheduler{}
	p := New(&clipboard.Memory{Err: errors.New("permission denied")}, WithScheduler(sched))
	btn := NewButton("")

	err := p.Copy(context.Background(), btn, "text")
	require.Error(t, err)
	assert.Equal(t, MsgCopyFailed, err.Error())
	assert.Equal(t, IdleLabel, btn.Label())
	assert.Empty(t, sched.timers)
}

func TestCopy_WallClock(t *testing.T) {
	p := New(&clipboard.Memory{}, WithDelay(20*time.Millisecond))
	btn := NewButton("")

	require.NoError(t, p.Copy(context.Background(), btn, "x"))
	assert.Equal(t, CopiedLabel, btn.Label())
	assert.Eventually(t, func() bool { return btn.Label() == IdleLabel }, time.Second, 5*time.Millisecond)
}
