package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventToolCall    EventType = "tool_call"
	EventToolReturn  EventType = "tool_return"
	EventPanelSwitch EventType = "panel_switch"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// ToolEvent represents a tool invocation.
type ToolEvent struct {
	EventBase
	Tool     ToolID        `json:"tool"`
	Panel    string        `json:"panel,omitempty"`
	IsError  bool          `json:"is_error,omitempty"`
	Kind     ErrorKind     `json:"kind,omitempty"`
	Duration time.Duration `json:"duration,omitempty"`
}

// PanelEvent represents a panel switch.
type PanelEvent struct {
	EventBase
	From string `json:"from"`
	To   string `json:"to"`
}

// LifecycleHooks defines callbacks for observability.
type LifecycleHooks struct {
	OnToolCall    func(context.Context, *ToolEvent)
	OnToolReturn  func(context.Context, *ToolEvent)
	OnPanelSwitch func(context.Context, *PanelEvent)
}
