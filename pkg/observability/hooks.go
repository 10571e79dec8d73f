package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/workbench/pkg/domain"
)

// LoggingHooks logs tool calls at debug level and tool returns and panel
// switches at info level.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnToolCall: func(ctx context.Context, e *domain.ToolEvent) {
			logger.DebugContext(ctx, "tool_call", "tool", e.Tool, "panel", e.Panel)
		},
		OnToolReturn: func(ctx context.Context, e *domain.ToolEvent) {
			logger.InfoContext(ctx, "tool_return",
				"tool", e.Tool,
				"is_error", e.IsError,
				"kind", e.Kind,
				"duration", e.Duration,
			)
		},
		OnPanelSwitch: func(ctx context.Context, e *domain.PanelEvent) {
			logger.InfoContext(ctx, "panel_switch", "from", e.From, "to", e.To)
		},
	}
}

// Combine chains hooks in order. Nil callbacks are skipped.
func Combine(all ...domain.LifecycleHooks) domain.LifecycleHooks {
	var calls, returns []func(context.Context, *domain.ToolEvent)
	var switches []func(context.Context, *domain.PanelEvent)
	for _, h := range all {
		if h.OnToolCall != nil {
			calls = append(calls, h.OnToolCall)
		}
		if h.OnToolReturn != nil {
			returns = append(returns, h.OnToolReturn)
		}
		if h.OnPanelSwitch != nil {
			switches = append(switches, h.OnPanelSwitch)
		}
	}

	var out domain.LifecycleHooks
	if len(calls) > 0 {
		out.OnToolCall = func(ctx context.Context, e *domain.ToolEvent) {
			for _, f := range calls {
				f(ctx, e)
			}
		}
	}
	if len(returns) > 0 {
		out.OnToolReturn = func(ctx context.Context, e *domain.ToolEvent) {
			for _, f := range returns {
				f(ctx, e)
			}
		}
	}
	if len(switches) > 0 {
		out.OnPanelSwitch = func(ctx context.Context, e *domain.PanelEvent) {
			for _, f := range switches {
				f(ctx, e)
			}
		}
	}
	return out
}
