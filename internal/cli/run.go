package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/aretw0/workbench"
	"github.com/aretw0/workbench/pkg/domain"
	"github.com/aretw0/workbench/pkg/ports"
	"github.com/aretw0/workbench/pkg/presenter"
	"github.com/aretw0/workbench/pkg/validate"
)

// ErrToolFailed is returned by RunTool when the tool reports a Failure.
// The message has already been printed.
var ErrToolFailed = errors.New("tool failed")

// RunOptions contains all the configuration for the run command.
type RunOptions struct {
	Tool      string
	Args      []string // key=value pairs
	File      string   // fed to the tool's "data" parameter
	Out       string   // where to write an artifact
	Copy      bool
	JSON      bool
	Color     bool
	Clipboard ports.Clipboard
}

// RunTool executes one tool and prints its result to out. Failure messages go
// to errOut unless JSON output is requested.
func RunTool(ctx context.Context, wb *workbench.Workbench, opts RunOptions, out, errOut io.Writer) error {
	tool, ok := wb.Lookup(domain.ToolID(opts.Tool))
	if !ok {
		return fmt.Errorf("unknown tool %q (see 'workbench list')", opts.Tool)
	}

	in, err := workbench.ParseArgs(opts.Args)
	if err != nil {
		return err
	}
	if in, err = validate.SanitizeFields(in, validate.MaxInputSize()); err != nil {
		return fmt.Errorf("invalid input: %w", err)
	}
	if opts.File != "" {
		if err := attachFile(in, opts.File); err != nil {
			return err
		}
	}

	wb.Activate(ctx, tool.Panel)
	res := wb.Run(ctx, tool.ID, in)

	if res.OK && res.Output.Artifact != nil && opts.Out != "" {
		if err := saveArtifact(opts.Out, res.Output.Artifact); err != nil {
			return err
		}
	}

	if opts.JSON {
		if err := writeResultJSON(out, res, opts.Color); err != nil {
			return err
		}
	} else {
		printResult(out, errOut, res, opts.Out)
	}

	if !res.OK {
		return ErrToolFailed
	}

	if opts.Copy {
		if opts.Clipboard == nil {
			return fmt.Errorf("clipboard unavailable")
		}
		btn := presenter.NewButton(presenter.IdleLabel)
		if err := presenter.New(opts.Clipboard).Copy(ctx, btn, res.Text()); err != nil {
			return err
		}
		printSystemMessage(out, "%s", btn.Label())
	}
	return nil
}

func attachFile(in domain.Input, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	in["data"] = data
	in["filename"] = filepath.Base(path)
	if mime := http.DetectContentType(data); mime != "application/octet-stream" {
		in["mime"] = mime
	}
	return nil
}

func saveArtifact(path string, a *domain.Artifact) error {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, a.Name)
	}
	if err := os.WriteFile(path, a.Data, 0o644); err != nil {
		return fmt.Errorf("failed to save artifact: %w", err)
	}
	return nil
}

func printResult(out, errOut io.Writer, res domain.Result, savedTo string) {
	if !res.OK {
		fmt.Fprintf(errOut, "Error: %s\n", res.Error)
		return
	}
	if a := res.Output.Artifact; a != nil {
		if savedTo == "" {
			printSystemMessage(out, "%s (%s, %d bytes); use --out to save it", a.Name, a.MIMEType, len(a.Data))
		} else {
			printSystemMessage(out, "Saved %s", savedTo)
		}
		return
	}
	fmt.Fprintln(out, res.Output.Text)
}

func writeResultJSON(out io.Writer, res domain.Result, color bool) error {
	data, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	_, err = out.Write(ColorJSON(data, color))
	return err
}
