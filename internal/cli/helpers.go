package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/tidwall/pretty"
	"golang.org/x/term"

	"github.com/aretw0/workbench/internal/logging"
)

// ErrInterrupted is returned by InterruptibleReader once its cancel channel is closed.
var ErrInterrupted = errors.New("interrupted")

// SignalContext wraps a context and captures the signal that cancelled it.
type SignalContext struct {
	context.Context
	Cancel func()
	start  sync.Once
	stop   sync.Once
	sigCh  chan os.Signal
	sigVal os.Signal
	mu     sync.Mutex
}

// NewSignalContext creates a context that is cancelled on SIGINT or SIGTERM.
// It acts as a drop-in replacement for signal.NotifyContext but allows retrieving the signal.
func NewSignalContext(parent context.Context) *SignalContext {
	ctx, cancel := context.WithCancel(parent)
	sc := &SignalContext{
		Context: ctx,
		Cancel:  cancel,
		sigCh:   make(chan os.Signal, 1),
	}

	sc.start.Do(func() {
		signal.Notify(sc.sigCh, os.Interrupt, syscall.SIGTERM)
		go func() {
			select {
			case sig := <-sc.sigCh:
				sc.mu.Lock()
				sc.sigVal = sig
				sc.mu.Unlock()
				sc.Cancel()
			case <-sc.Context.Done():
			}
			sc.stop.Do(func() {
				signal.Stop(sc.sigCh)
			})
		}()
	})

	return sc
}

// Signal returns the signal that caused the context to be cancelled, or nil.
func (sc *SignalContext) Signal() os.Signal {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.sigVal
}

// NewLogger builds the stderr logger for the configured level.
// "off" silences logging entirely.
func NewLogger(level string) (*slog.Logger, error) {
	if level == "off" {
		return logging.NewNop(), nil
	}
	lvl, err := logging.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	return logging.New(lvl), nil
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// ColorJSON pretty-prints JSON, adding ANSI colours when color is set.
func ColorJSON(data []byte, color bool) []byte {
	out := pretty.Pretty(data)
	if color {
		out = pretty.Color(out, nil)
	}
	return out
}

// printSystemMessage prints a standardized system message.
func printSystemMessage(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, ">>> %s\n", fmt.Sprintf(format, args...))
}

// InterruptibleReader wraps an io.Reader (like os.Stdin) and checks for a cancellation signal.
type InterruptibleReader struct {
	base   io.Reader
	cancel <-chan struct{}
}

func NewInterruptibleReader(base io.Reader, cancel <-chan struct{}) *InterruptibleReader {
	return &InterruptibleReader{
		base:   base,
		cancel: cancel,
	}
}

func (r *InterruptibleReader) Read(p []byte) (n int, err error) {
	select {
	case <-r.cancel:
		return 0, ErrInterrupted
	default:
	}

	// Blocks until the terminal delivers a line.
	n, err = r.base.Read(p)

	select {
	case <-r.cancel:
		return 0, ErrInterrupted
	default:
	}
	return n, err
}

func isInterrupted(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, ErrInterrupted)
}

// handleExecutionError maps interruptions to a clean exit.
func handleExecutionError(err error) error {
	if err == nil || isInterrupted(err) {
		return nil
	}
	return err
}
