package registry

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/aretw0/workbench/internal/logging"
	"github.com/aretw0/workbench/pkg/domain"
)

// Transform defines the signature for a tool implementation.
// It receives a context and the raw input fields, and returns an output or error.
// Errors meant for the user are *domain.ToolError values.
type Transform func(ctx context.Context, in domain.Input) (domain.Output, error)

type entry struct {
	tool domain.Tool
	fn   Transform
}

// Registry manages the available tools.
type Registry struct {
	mu    sync.RWMutex
	tools map[domain.ToolID]entry

	hooks  domain.LifecycleHooks
	logger *slog.Logger
	now    func() time.Time
}

// Option configures the Registry.
type Option func(*Registry)

// WithLifecycleHooks registers observability hooks fired around every Run.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(r *Registry) {
		r.hooks = hooks
	}
}

// WithLogger configures a logger for failed invocations.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

// WithClock overrides the time source used for event timestamps and durations.
func WithClock(now func() time.Time) Option {
	return func(r *Registry) {
		r.now = now
	}
}

// NewRegistry creates a new empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		tools:  make(map[domain.ToolID]entry),
		logger: logging.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a tool to the registry.
// If a tool with the same ID exists, it is overwritten.
func (r *Registry) Register(tool domain.Tool, fn Transform) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tools[tool.ID] = entry{tool: tool, fn: fn}
}

// Lookup returns the metadata of a registered tool.
func (r *Registry) Lookup(id domain.ToolID) (domain.Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.tools[id]
	return e.tool, ok
}

// List returns the metadata of every tool, sorted by ID.
func (r *Registry) List() []domain.Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Tool, 0, len(r.tools))
	for _, e := range r.tools {
		out = append(out, e.tool)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ByPanel returns the tools shown on the given panel, sorted by ID.
func (r *Registry) ByPanel(panel string) []domain.Tool {
	var out []domain.Tool
	for _, t := range r.List() {
		if t.Panel == panel {
			out = append(out, t)
		}
	}
	return out
}

// Execute looks up a tool by ID and executes it.
// Returns an error wrapping domain.ErrToolNotFound if the tool is not registered.
func (r *Registry) Execute(ctx context.Context, id domain.ToolID, in domain.Input) (out domain.Output, err error) {
	r.mu.RLock()
	e, ok := r.tools[id]
	r.mu.RUnlock()

	if !ok {
		return domain.Output{}, fmt.Errorf("%w: %s", domain.ErrToolNotFound, id)
	}
	if in == nil {
		in = domain.Input{}
	}

	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("tool %s panicked: %v", id, p)
		}
	}()
	return e.fn(ctx, in)
}

// Run executes a tool and folds the outcome into exactly one Result.
// It never returns an error: failures become Failure results carrying the message.
func (r *Registry) Run(ctx context.Context, id domain.ToolID, in domain.Input) domain.Result {
	tool, _ := r.Lookup(id)
	start := r.now()

	if r.hooks.OnToolCall != nil {
		r.hooks.OnToolCall(ctx, &domain.ToolEvent{
			EventBase: domain.EventBase{Timestamp: start, Type: domain.EventToolCall},
			Tool:      id,
			Panel:     tool.Panel,
		})
	}

	out, err := r.Execute(ctx, id, in)

	var res domain.Result
	if err != nil {
		kind := domain.KindOf(err)
		msg := err.Error()
		if kind == domain.KindInternal {
			r.logger.Error("Tool failed", "tool", id, "err", err)
			msg = "Unexpected error: " + msg
		} else {
			r.logger.Debug("Tool rejected input", "tool", id, "kind", kind, "err", err)
		}
		res = domain.Failure(kind, msg)
	} else {
		res = domain.Success(out)
	}
	res.Tool = id

	if r.hooks.OnToolReturn != nil {
		end := r.now()
		r.hooks.OnToolReturn(ctx, &domain.ToolEvent{
			EventBase: domain.EventBase{Timestamp: end, Type: domain.EventToolReturn},
			Tool:      id,
			Panel:     tool.Panel,
			IsError:   !res.OK,
			Kind:      res.Kind,
			Duration:  end.Sub(start),
		})
	}
	return res
}
