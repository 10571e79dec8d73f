package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/workbench/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunPanelStoreContract runs a suite of tests to verify that a PanelStore implementation
// adheres to the defined interface contract.
func RunPanelStoreContract(t *testing.T, store PanelStore) {
	ctx := context.Background()
	sessionID := "contract-test-session-" + time.Now().Format("20060102150405")
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("Save and Load", func(t *testing.T) {
		err := store.Save(ctx, sessionID, domain.NewPanelState("json-formatter", now))
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, "json-formatter", loaded.Active)
		assert.True(t, now.Equal(loaded.UpdatedAt))
	})

	t.Run("Save Overwrites", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, sessionID, domain.NewPanelState("bmi-calculator", now)))

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		assert.Equal(t, "bmi-calculator", loaded.Active)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, sessionID, domain.NewPanelState("word-counter", now)))

		err := store.Delete(ctx, sessionID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound, "Load after Delete should return ErrSessionNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := sessionID + "-1"
		id2 := sessionID + "-2"
		_ = store.Save(ctx, id1, domain.NewPanelState("word-counter", now))
		_ = store.Save(ctx, id2, domain.NewPanelState("word-counter", now))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		sessions, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, sessions, id1)
		assert.Contains(t, sessions, id2)
	})
}
