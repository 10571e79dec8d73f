package ports

import (
	"context"

	"github.com/aretw0/workbench/pkg/domain"
)

// PanelStore keeps the panel state of front-end sessions.
// Sessions are ephemeral: implementations may expire them.
type PanelStore interface {
	// Save stores the state for a given session ID.
	Save(ctx context.Context, sessionID string, state *domain.PanelState) error

	// Load retrieves the state for a given session ID.
	// Returns domain.ErrSessionNotFound if the session does not exist.
	Load(ctx context.Context, sessionID string) (*domain.PanelState, error)

	// Delete removes the state for a given session ID.
	Delete(ctx context.Context, sessionID string) error

	// List returns the IDs of live sessions.
	List(ctx context.Context) ([]string, error)
}
