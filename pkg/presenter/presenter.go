// Package presenter writes tool results to output fields and drives the
// transient "Copied!" feedback of copy buttons.
package presenter

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/workbench/internal/logging"
	"github.com/aretw0/workbench/pkg/domain"
	"github.com/aretw0/workbench/pkg/ports"
)

// Copy feedback labels and timing.
const (
	IdleLabel     = "Copy"
	CopiedLabel   = "Copied!"
	FeedbackDelay = 1500 * time.Millisecond
	MsgCopyFailed = "Copy failed, please copy manually."
)

// Timer is a pending scheduled call.
type Timer interface {
	Stop() bool
}

// Scheduler runs f once after d.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type wallScheduler struct{}

func (wallScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Field is an output area. Safe for concurrent use.
type Field struct {
	mu   sync.RWMutex
	text string
}

// Set replaces the field content.
func (f *Field) Set(text string) {
	f.mu.Lock()
	f.text = text
	f.mu.Unlock()
}

// Text returns the field content.
func (f *Field) Text() string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.text
}

// Button is a copy button whose label flips to CopiedLabel for a while.
type Button struct {
	mu    sync.Mutex
	idle  string
	label string
	timer Timer
	gen   uint64
}

// NewButton returns a button showing idle.
func NewButton(idle string) *Button {
	if idle == "" {
		idle = IdleLabel
	}
	return &Button{idle: idle, label: idle}
}

// Label returns the current label.
func (b *Button) Label() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.label
}

// Presenter renders results and copy feedback.
type Presenter struct {
	clipboard ports.Clipboard
	scheduler Scheduler
	delay     time.Duration
	logger    *slog.Logger
}

// Option configures a Presenter.
type Option func(*Presenter)

// WithScheduler replaces the wall-clock timer source.
func WithScheduler(s Scheduler) Option {
	return func(p *Presenter) {
		p.scheduler = s
	}
}

// WithDelay overrides how long CopiedLabel stays.
func WithDelay(d time.Duration) Option {
	return func(p *Presenter) {
		if d > 0 {
			p.delay = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Presenter) {
		p.logger = logger
	}
}

// New returns a Presenter copying through clipboard.
func New(clipboard ports.Clipboard, opts ...Option) *Presenter {
	p := &Presenter{
		clipboard: clipboard,
		scheduler: wallScheduler{},
		delay:     FeedbackDelay,
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Present writes the result to field: the output text on success, the
// failure message otherwise.
func (p *Presenter) Present(field *Field, res domain.Result) {
	field.Set(res.Text())
}

// Copy writes text to the clipboard and flips the button to CopiedLabel until
// the delay elapses. Empty text does nothing. A copy during the delay restarts
// it, so the last copy wins. A clipboard failure leaves the label alone and
// returns MsgCopyFailed.
func (p *Presenter) Copy(ctx context.Context, btn *Button, text string) error {
	if text == "" {
		return nil
	}
	if err := p.clipboard.Write(ctx, text); err != nil {
		p.logger.Warn("clipboard write failed", "err", err)
		return &domain.ToolError{Kind: domain.KindInternal, Message: MsgCopyFailed, Err: err}
	}

	btn.mu.Lock()
	defer btn.mu.Unlock()

	if btn.timer != nil {
		btn.timer.Stop()
	}
	btn.gen++
	gen := btn.gen
	btn.label = CopiedLabel
	btn.timer = p.scheduler.AfterFunc(p.delay, func() {
		btn.mu.Lock()
		defer btn.mu.Unlock()
		if btn.gen == gen {
			btn.label = btn.idle
			btn.timer = nil
		}
	})
	return nil
}
