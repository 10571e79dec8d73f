package observability

import (
	"context"
	"net/http"

	"github.com/aretw0/workbench/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome label values.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Metrics holds the Prometheus collectors of Workbench.
type Metrics struct {
	ToolInvocations *prometheus.CounterVec
	ToolDuration    *prometheus.HistogramVec
	PanelSwitches   *prometheus.CounterVec

	gatherer prometheus.Gatherer
}

// NewMetrics creates the collectors and registers them on a private registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		ToolInvocations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "workbench_tool_invocations_total",
				Help: "Total number of tool invocations by outcome",
			},
			[]string{"tool", "outcome"},
		),
		ToolDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "workbench_tool_duration_seconds",
				Help:    "Duration of tool executions",
				Buckets: prometheus.ExponentialBuckets(0.0005, 4, 8),
			},
			[]string{"tool"},
		),
		PanelSwitches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "workbench_panel_switches_total",
				Help: "Total number of panel activations",
			},
			[]string{"panel"},
		),
		gatherer: reg,
	}
	reg.MustRegister(m.ToolInvocations, m.ToolDuration, m.PanelSwitches)
	return m
}

// Hooks records every tool return and panel switch.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnToolReturn: func(_ context.Context, e *domain.ToolEvent) {
			outcome := OutcomeSuccess
			if e.IsError {
				outcome = OutcomeFailure
			}
			m.ToolInvocations.WithLabelValues(string(e.Tool), outcome).Inc()
			m.ToolDuration.WithLabelValues(string(e.Tool)).Observe(e.Duration.Seconds())
		},
		OnPanelSwitch: func(_ context.Context, e *domain.PanelEvent) {
			m.PanelSwitches.WithLabelValues(e.To).Inc()
		},
	}
}

// Handler serves the collected metrics in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
