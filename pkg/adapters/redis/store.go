// Package redis provides Redis-backed session storage and distributed locking.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/aretw0/workbench/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

const (
	// DefaultPrefix namespaces every key written by the store.
	DefaultPrefix = "workbench:session:"
	// DefaultTTL expires idle sessions.
	DefaultTTL = 24 * time.Hour
)

// Store implements ports.PanelStore on Redis.
// States are JSON strings under prefix+sessionID; a sorted set at prefix+"index"
// scores every session with its expiry so List can skip expired ones.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

// Option configures the Store.
type Option func(*Store)

// WithPrefix overrides the key prefix.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// WithTTL sets the session expiry. Zero keeps sessions forever.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// New connects to the Redis server at addr.
func New(addr, password string, db int, opts ...Option) *Store {
	client := backend.NewClient(&backend.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return NewFromClient(client, opts...)
}

// NewFromClient wraps an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	s := &Store{
		client: client,
		prefix: DefaultPrefix,
		ttl:    DefaultTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Client returns the underlying client, for sharing with a Locker.
func (s *Store) Client() *backend.Client {
	return s.client
}

func (s *Store) key(sessionID string) string {
	return s.prefix + sessionID
}

func (s *Store) indexKey() string {
	return s.prefix + "index"
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

// Save stores the state and refreshes its expiry.
func (s *Store) Save(ctx context.Context, sessionID string, state *domain.PanelState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal panel state: %w", err)
	}

	score := float64(time.Now().Add(s.ttl).Unix())
	if s.ttl <= 0 {
		score = float64(1<<53 - 1)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.key(sessionID), data, s.ttl)
	pipe.ZAdd(ctx, s.indexKey(), backend.Z{Score: score, Member: sessionID})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save session %s: %w", sessionID, err)
	}
	return nil
}

// Load retrieves the state. Expired sessions are reported as not found.
func (s *Store) Load(ctx context.Context, sessionID string) (*domain.PanelState, error) {
	data, err := s.client.Get(ctx, s.key(sessionID)).Bytes()
	if errors.Is(err, backend.Nil) {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session %s: %w", sessionID, err)
	}

	var state domain.PanelState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal panel state: %w", err)
	}
	return &state, nil
}

// Delete removes the state and its index entry.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, s.key(sessionID))
	pipe.ZRem(ctx, s.indexKey(), sessionID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete session %s: %w", sessionID, err)
	}
	return nil
}

// List returns live sessions. Expired index entries are removed lazily.
func (s *Store) List(ctx context.Context) ([]string, error) {
	if s.ttl > 0 {
		now := strconv.FormatInt(time.Now().Unix(), 10)
		if err := s.client.ZRemRangeByScore(ctx, s.indexKey(), "-inf", now).Err(); err != nil {
			return nil, fmt.Errorf("failed to prune session index: %w", err)
		}
	}
	sessions, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	return sessions, nil
}
