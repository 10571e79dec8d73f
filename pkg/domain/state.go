package domain

import "time"

// PanelState records which panel is visible. Exactly one panel is active.
type PanelState struct {
	Active    string    `json:"active"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewPanelState creates a state with the given panel active.
func NewPanelState(panelID string, now time.Time) *PanelState {
	return &PanelState{Active: panelID, UpdatedAt: now}
}
