package cli

import (
	"context"
	"io"
	"time"

	"github.com/aretw0/workbench"
	"github.com/aretw0/workbench/internal/presentation/tui"
	"github.com/aretw0/workbench/pkg/ports"
)

// ShellOptions configures the interactive shell.
type ShellOptions struct {
	Input         io.Reader
	Output        io.Writer
	Headless      bool
	Clipboard     ports.Clipboard
	FeedbackDelay time.Duration
}

// RunShell starts the panel REPL until EOF, :quit or an interrupt.
func RunShell(ctx context.Context, wb *workbench.Workbench, opts ShellOptions) error {
	sc := NewSignalContext(ctx)
	defer sc.Cancel()

	sh := workbench.NewShell(NewInterruptibleReader(opts.Input, sc.Done()), opts.Output)
	sh.Headless = opts.Headless
	sh.Clipboard = opts.Clipboard
	sh.FeedbackDelay = opts.FeedbackDelay
	if opts.Headless {
		sh.Renderer = tui.NewPlainRenderer()
	} else {
		tui.PrintBanner(opts.Output, workbench.Version, wb.Year())
		sh.Renderer = tui.NewRenderer()
	}

	err := sh.Run(sc, wb)
	if isInterrupted(err) && sc.Signal() != nil && !opts.Headless {
		io.WriteString(opts.Output, "\n")
		printSystemMessage(opts.Output, "Interrupted in panel '%s'.", wb.Panels().Active())
	}
	return handleExecutionError(err)
}
