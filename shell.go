package workbench

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/aretw0/workbench/pkg/domain"
	"github.com/aretw0/workbench/pkg/ports"
	"github.com/aretw0/workbench/pkg/presenter"
)

// Shell is an interactive panel REPL over line-based IO.
// A line is either a command (":panels", ":panel <id>", ":tools", ":copy",
// ":save <path>", ":quit"), a tool id followed by key=value arguments, or
// free text fed to the first tool of the active panel.
type Shell struct {
	Input     io.Reader
	Output    io.Writer
	Headless  bool
	Renderer  ContentRenderer
	Clipboard ports.Clipboard
	// FeedbackDelay overrides how long the copy button shows its result.
	FeedbackDelay time.Duration
}

// ContentRenderer transforms markdown listings before they are printed.
// This allows for TUI rendering (markdown to ANSI) without coupling the core package.
type ContentRenderer func(string) (string, error)

// NewShell creates a Shell on the given IO.
func NewShell(in io.Reader, out io.Writer) *Shell {
	return &Shell{Input: in, Output: out}
}

type shellState struct {
	field  presenter.Field
	button *presenter.Button
	last   domain.Result
}

// Run reads lines until EOF or a quit command.
func (s *Shell) Run(ctx context.Context, wb *Workbench) error {
	if s.Input == nil {
		return fmt.Errorf("input reader must be set (use os.Stdin)")
	}
	if s.Output == nil {
		return fmt.Errorf("output writer must be set (use os.Stdout)")
	}
	lineReader := bufio.NewReader(s.Input)
	var presOpts []presenter.Option
	if s.FeedbackDelay > 0 {
		presOpts = append(presOpts, presenter.WithDelay(s.FeedbackDelay))
	}
	pres := presenter.New(s.Clipboard, presOpts...)
	st := &shellState{button: presenter.NewButton(presenter.IdleLabel)}

	if !s.Headless {
		fmt.Fprintf(s.Output, "--- Workbench %s (c) %d ---\n", strings.TrimSpace(Version), wb.Year())
		fmt.Fprintln(s.Output, "Type :panels, :panel <id>, :tools or :quit.")
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !s.Headless {
			fmt.Fprintf(s.Output, "[%s]> ", wb.Panels().Active())
		}

		text, err := lineReader.ReadString('\n')
		if err != nil && err != io.EOF {
			return fmt.Errorf("input error: %w", err)
		}
		line := strings.TrimSpace(text)

		if line != "" {
			quit, cmdErr := s.handle(ctx, wb, pres, st, line)
			if cmdErr != nil {
				fmt.Fprintf(s.Output, "Error: %v\n", cmdErr)
			}
			if quit {
				fmt.Fprintln(s.Output, "Bye!")
				return nil
			}
		}

		if err == io.EOF {
			return nil
		}
	}
}

func (s *Shell) handle(ctx context.Context, wb *Workbench, pres *presenter.Presenter, st *shellState, line string) (bool, error) {
	words, err := SplitLine(line)
	if err != nil {
		return false, err
	}
	if len(words) == 0 {
		return false, nil
	}

	switch words[0] {
	case ":quit", ":q", "quit", "exit":
		return true, nil
	case ":panels":
		s.print(panelListing(wb))
		return false, nil
	case ":panel":
		if len(words) != 2 {
			return false, fmt.Errorf("usage: :panel <id>")
		}
		if !wb.Activate(ctx, words[1]) {
			return false, fmt.Errorf("unknown panel %q", words[1])
		}
		return false, nil
	case ":tools":
		s.print(toolListing(wb.ToolsOn(wb.Panels().Active())))
		return false, nil
	case ":copy":
		if s.Clipboard == nil {
			return false, fmt.Errorf("clipboard unavailable")
		}
		if err := pres.Copy(ctx, st.button, st.field.Text()); err != nil {
			return false, err
		}
		fmt.Fprintf(s.Output, "[%s]\n", st.button.Label())
		return false, nil
	case ":save":
		if len(words) != 2 {
			return false, fmt.Errorf("usage: :save <path>")
		}
		if !st.last.OK || st.last.Output.Artifact == nil {
			return false, fmt.Errorf("nothing to save")
		}
		if err := os.WriteFile(words[1], st.last.Output.Artifact.Data, 0o644); err != nil {
			return false, fmt.Errorf("failed to save artifact: %w", err)
		}
		fmt.Fprintf(s.Output, "Saved %s\n", words[1])
		return false, nil
	}

	if strings.HasPrefix(words[0], ":") {
		return false, fmt.Errorf("unknown command %s", words[0])
	}

	var (
		id domain.ToolID
		in domain.Input
	)
	if tool, ok := wb.Lookup(domain.ToolID(words[0])); ok {
		id = tool.ID
		if in, err = ParseArgs(words[1:]); err != nil {
			return false, err
		}
		wb.Activate(ctx, tool.Panel)
	} else {
		tools := wb.ToolsOn(wb.Panels().Active())
		if len(tools) == 0 {
			return false, fmt.Errorf("no tool available on panel %s", wb.Panels().Active())
		}
		id = tools[0].ID
		in = domain.Input{"text": line}
	}

	st.last = wb.Run(ctx, id, in)
	pres.Present(&st.field, st.last)
	fmt.Fprintln(s.Output, st.field.Text())
	return false, nil
}

func (s *Shell) print(markdown string) {
	out := markdown
	if s.Renderer != nil {
		if rendered, err := s.Renderer(markdown); err == nil {
			out = rendered
		}
	}
	fmt.Fprintln(s.Output, strings.TrimRight(out, "\n"))
}

func panelListing(wb *Workbench) string {
	var b strings.Builder
	for _, p := range wb.Panels().Panels() {
		marker := " "
		if p.Active {
			marker = "*"
		}
		fmt.Fprintf(&b, "%s %s\n", marker, p.ID)
	}
	return b.String()
}

func toolListing(tools []domain.Tool) string {
	var b strings.Builder
	for _, t := range tools {
		fmt.Fprintf(&b, "- **%s**: %s\n", t.ID, t.Title)
		for _, p := range t.Params {
			req := ""
			if p.Required {
				req = ", required"
			}
			fmt.Fprintf(&b, "  - `%s` (%s%s)\n", p.Name, p.Type, req)
		}
	}
	return b.String()
}
