// Package clipboard writes to the system clipboard.
package clipboard

import (
	"context"
	"errors"
	"fmt"

	backend "github.com/atotto/clipboard"
)

// ErrUnsupported is returned when no clipboard utility is available
// (e.g. a headless Linux host without xclip, xsel or wl-copy).
var ErrUnsupported = errors.New("clipboard not supported on this system")

// System implements ports.Clipboard using the OS clipboard.
type System struct {
	write       func(string) error
	unsupported func() bool
}

// New returns the system clipboard.
func New() *System {
	return &System{
		write:       backend.WriteAll,
		unsupported: func() bool { return backend.Unsupported },
	}
}

// Write copies text to the clipboard.
func (s *System) Write(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.unsupported() {
		return ErrUnsupported
	}
	if err := s.write(text); err != nil {
		return fmt.Errorf("write clipboard: %w", err)
	}
	return nil
}

// Memory is an in-process clipboard for tests and headless sessions.
type Memory struct {
	Text string
	Err  error
}

// Write stores text, or fails with m.Err when set.
func (m *Memory) Write(ctx context.Context, text string) error {
	if m.Err != nil {
		return m.Err
	}
	m.Text = text
	return nil
}
