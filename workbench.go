package workbench

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/workbench/internal/logging"
	"github.com/aretw0/workbench/pkg/adapters/imaging"
	"github.com/aretw0/workbench/pkg/adapters/pdf"
	"github.com/aretw0/workbench/pkg/adapters/qr"
	"github.com/aretw0/workbench/pkg/domain"
	"github.com/aretw0/workbench/pkg/panel"
	"github.com/aretw0/workbench/pkg/ports"
	"github.com/aretw0/workbench/pkg/registry"
	"github.com/aretw0/workbench/pkg/transform"
)

// Workbench is the high-level entry point of the toolkit.
// It wires the tool registry, the executors and their collaborators, and
// the panel controller shared by the front ends.
type Workbench struct {
	registry *registry.Registry
	panels   *panel.Controller

	deps         transform.Dependencies
	hooks        domain.LifecycleHooks
	logger       *slog.Logger
	initialPanel string
	bare         bool
}

// Option defines a functional option for configuring the Workbench.
type Option func(*Workbench)

// WithLifecycleHooks registers observability hooks for tool runs and panel switches.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(w *Workbench) {
		w.hooks = hooks
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Workbench) {
		w.logger = logger
	}
}

// WithClock sets the clock used by the age calculator, PDF metadata and the footer year.
func WithClock(c ports.Clock) Option {
	return func(w *Workbench) {
		w.deps.Clock = c
	}
}

// WithRandom sets the entropy source of the password generator.
func WithRandom(r io.Reader) Option {
	return func(w *Workbench) {
		w.deps.Random = r
	}
}

// WithDocumentRenderer replaces the PDF renderer.
func WithDocumentRenderer(r ports.DocumentRenderer) Option {
	return func(w *Workbench) {
		w.deps.Renderer = r
	}
}

// WithQREncoder replaces the QR encoder.
func WithQREncoder(e ports.QREncoder) Option {
	return func(w *Workbench) {
		w.deps.QR = e
	}
}

// WithImageCodec replaces the JPEG/PNG codec.
func WithImageCodec(c ports.ImageCodec) Option {
	return func(w *Workbench) {
		w.deps.Images = c
	}
}

// WithTextRasterizer replaces the text-to-image rasterizer.
func WithTextRasterizer(r ports.TextRasterizer) Option {
	return func(w *Workbench) {
		w.deps.Rasterizer = r
	}
}

// WithPageSize sets the default PDF page size.
func WithPageSize(size ports.PageSize) Option {
	return func(w *Workbench) {
		w.deps.PageSize = size
	}
}

// WithQRSize sets the default QR image size in pixels.
func WithQRSize(size int) Option {
	return func(w *Workbench) {
		w.deps.QRSize = size
	}
}

// WithInitialPanel sets the panel shown first (default: panel.Default).
func WithInitialPanel(id string) Option {
	return func(w *Workbench) {
		w.initialPanel = id
	}
}

// WithoutDefaultCollaborators skips the built-in PDF, QR and image adapters.
// Only collaborators injected through options are registered, so artifact
// tools without one are left out of the catalogue.
func WithoutDefaultCollaborators() Option {
	return func(w *Workbench) {
		w.bare = true
	}
}

// New initializes a Workbench with every built-in tool registered.
func New(opts ...Option) (*Workbench, error) {
	w := &Workbench{
		deps: transform.Dependencies{
			PageSize: ports.PageA4,
			QRSize:   transform.DefaultQRSize,
		},
		initialPanel: panel.Default,
	}
	for _, opt := range opts {
		opt(w)
	}

	if w.logger == nil {
		w.logger = logging.NewNop()
	}
	if w.deps.Clock == nil {
		w.deps.Clock = ports.SystemClock()
	}
	if w.deps.Random == nil {
		w.deps.Random = rand.Reader
	}

	if !w.bare {
		if w.deps.Renderer == nil {
			w.deps.Renderer = pdf.New(pdf.WithClock(w.deps.Clock.Now))
		}
		if w.deps.QR == nil {
			w.deps.QR = qr.New()
		}
		if w.deps.Images == nil {
			w.deps.Images = imaging.NewCodec()
		}
		if w.deps.Rasterizer == nil {
			rasterizer, err := imaging.NewRasterizer(imaging.DefaultCanvas)
			if err != nil {
				return nil, fmt.Errorf("failed to initialize text rasterizer: %w", err)
			}
			w.deps.Rasterizer = rasterizer
		}
	}

	w.registry = registry.NewRegistry(
		registry.WithLifecycleHooks(w.hooks),
		registry.WithLogger(w.logger),
		registry.WithClock(w.deps.Clock.Now),
	)
	transform.Register(w.registry, w.deps)

	w.panels = panel.NewController(
		panel.WithInitial(w.initialPanel),
		panel.WithLifecycleHooks(w.hooks),
		panel.WithClock(w.deps.Clock.Now),
	)

	return w, nil
}

// Tools returns the registered tools in sidebar order.
func (w *Workbench) Tools() []domain.Tool {
	var out []domain.Tool
	for _, tool := range transform.Catalogue() {
		if _, ok := w.registry.Lookup(tool.ID); ok {
			out = append(out, tool)
		}
	}
	return out
}

// Lookup returns the metadata of a registered tool.
func (w *Workbench) Lookup(id domain.ToolID) (domain.Tool, bool) {
	return w.registry.Lookup(id)
}

// ToolsOn returns the registered tools of a panel.
func (w *Workbench) ToolsOn(panelID string) []domain.Tool {
	var out []domain.Tool
	for _, tool := range w.Tools() {
		if tool.Panel == panelID {
			out = append(out, tool)
		}
	}
	return out
}

// Run executes a tool and returns its Result. It never fails: unknown tools,
// rejected input and internal errors all come back as Failure results.
func (w *Workbench) Run(ctx context.Context, id domain.ToolID, in domain.Input) domain.Result {
	return w.registry.Run(ctx, id, in)
}

// Panels returns the panel controller.
func (w *Workbench) Panels() *panel.Controller {
	return w.panels
}

// Activate shows panelID and hides every other panel. Unknown panels are ignored.
func (w *Workbench) Activate(ctx context.Context, panelID string) bool {
	return w.panels.Activate(ctx, panelID)
}

// Year is the current year shown in the footer.
func (w *Workbench) Year() int {
	return w.deps.Clock.Now().Year()
}

// Registry exposes the underlying registry.
func (w *Workbench) Registry() *registry.Registry {
	return w.registry
}
