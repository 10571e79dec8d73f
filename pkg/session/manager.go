package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/workbench/internal/logging"
	"github.com/aretw0/workbench/pkg/domain"
	"github.com/aretw0/workbench/pkg/panel"
	"github.com/aretw0/workbench/pkg/ports"
)

// DefaultLockTTL bounds how long a distributed lock is held.
const DefaultLockTTL = 30 * time.Second

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager orchestrates panel state access per session.
// It uses reference counting to garbage collect unused locks.
type Manager struct {
	store ports.PanelStore

	mu    sync.Mutex            // guards locks
	locks map[string]*lockEntry // active locks by session ID

	locker  ports.DistributedLocker // optional
	lockTTL time.Duration
	logger  *slog.Logger
	hooks   domain.LifecycleHooks
	initial string
	now     func() time.Time
}

// Option configures the Manager.
type Option func(*Manager)

// WithLocker enables distributed locking.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(m *Manager) {
		m.locker = locker
	}
}

// WithLockTTL sets the TTL of distributed locks.
func WithLockTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		if ttl > 0 {
			m.lockTTL = ttl
		}
	}
}

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithLifecycleHooks registers callbacks fired when a session switches panel.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(m *Manager) {
		m.hooks = hooks
	}
}

// WithInitialPanel sets the panel of new sessions.
func WithInitialPanel(id string) Option {
	return func(m *Manager) {
		if panel.Known(id) {
			m.initial = id
		}
	}
}

// WithClock sets the time source of state updates.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

// NewManager creates a new session Manager backed by store.
func NewManager(store ports.PanelStore, opts ...Option) *Manager {
	m := &Manager{
		store:   store,
		locks:   make(map[string]*lockEntry),
		lockTTL: DefaultLockTTL,
		logger:  logging.NewNop(),
		initial: panel.Default,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller must lock entry.mu, and call release(sessionID) after unlocking.
func (m *Manager) acquire(sessionID string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		entry = &lockEntry{}
		m.locks[sessionID] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (m *Manager) release(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		return
	}

	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, sessionID)
	}
}

// loadOrStart must run under the session lock.
func (m *Manager) loadOrStart(ctx context.Context, sessionID string) (*domain.PanelState, error) {
	state, err := m.store.Load(ctx, sessionID)
	if err == nil {
		return state, nil
	}
	if !errors.Is(err, domain.ErrSessionNotFound) {
		return nil, fmt.Errorf("failed to check session existence: %w", err)
	}

	state = domain.NewPanelState(m.initial, m.now())
	if err := m.store.Save(ctx, sessionID, state); err != nil {
		return nil, fmt.Errorf("failed to initialize session: %w", err)
	}
	return state, nil
}

// Current returns the panel state of a session, starting it on the initial
// panel when it does not exist yet.
func (m *Manager) Current(ctx context.Context, sessionID string) (*domain.PanelState, error) {
	var state *domain.PanelState
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		var err error
		state, err = m.loadOrStart(ctx, sessionID)
		return err
	})
	return state, err
}

// Activate switches the session to panelID. Unknown panels leave the stored
// state untouched and return it along with domain.ErrUnknownPanel.
func (m *Manager) Activate(ctx context.Context, sessionID, panelID string) (*domain.PanelState, error) {
	var state *domain.PanelState
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		current, err := m.loadOrStart(ctx, sessionID)
		if err != nil {
			return err
		}
		state = current

		ctrl := panel.NewController(
			panel.WithInitial(current.Active),
			panel.WithLifecycleHooks(m.hooks),
			panel.WithClock(m.now),
		)
		if !ctrl.Activate(ctx, panelID) {
			return fmt.Errorf("%w: %s", domain.ErrUnknownPanel, panelID)
		}

		next := ctrl.Snapshot()
		if err := m.store.Save(ctx, sessionID, next); err != nil {
			return fmt.Errorf("failed to save session: %w", err)
		}
		state = next
		return nil
	})
	return state, err
}

// Delete removes the session from the store.
func (m *Manager) Delete(ctx context.Context, sessionID string) error {
	return m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		return m.store.Delete(ctx, sessionID)
	})
}

// List delegates to the store.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	return m.store.List(ctx)
}

// Store returns the underlying panel store.
func (m *Manager) Store() ports.PanelStore {
	return m.store
}

// WithLock executes a function while holding the lock for the session.
func (m *Manager) WithLock(ctx context.Context, sessionID string, fn func(context.Context) error) error {
	entry := m.acquire(sessionID)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(sessionID)
	}()

	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, sessionID, m.lockTTL)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			if err := unlock(ctx); err != nil {
				m.logger.Warn("Failed to release distributed lock (will expire via TTL)",
					"session_id", sessionID,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}
