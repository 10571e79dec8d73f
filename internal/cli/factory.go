package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aretw0/workbench"
	"github.com/aretw0/workbench/internal/config"
	"github.com/aretw0/workbench/pkg/adapters/memory"
	"github.com/aretw0/workbench/pkg/adapters/redis"
	"github.com/aretw0/workbench/pkg/domain"
	"github.com/aretw0/workbench/pkg/observability"
	"github.com/aretw0/workbench/pkg/ports"
	"github.com/aretw0/workbench/pkg/session"
	"github.com/aretw0/workbench/pkg/validate"
)

// redisPingTimeout bounds the startup connectivity check.
const redisPingTimeout = 3 * time.Second

// NewHooks combines debug logging with the given metrics, if any.
func NewHooks(logger *slog.Logger, metrics *observability.Metrics) domain.LifecycleHooks {
	if metrics == nil {
		return observability.LoggingHooks(logger)
	}
	return observability.Combine(observability.LoggingHooks(logger), metrics.Hooks())
}

// NewWorkbench builds a Workbench from the settings file.
func NewWorkbench(cfg config.Config, logger *slog.Logger, hooks domain.LifecycleHooks) (*workbench.Workbench, error) {
	applyInputLimit(cfg.Tools.MaxInputSize)

	return workbench.New(
		workbench.WithLogger(logger),
		workbench.WithLifecycleHooks(hooks),
		workbench.WithInitialPanel(cfg.DefaultPanel),
		workbench.WithPageSize(ports.PageSize(strings.ToLower(cfg.Tools.PageSize))),
		workbench.WithQRSize(cfg.Tools.QRSize),
	)
}

// NewSessionManager returns a Redis-backed manager when Redis.Addr is set and
// an in-memory one otherwise.
func NewSessionManager(ctx context.Context, cfg config.Config, logger *slog.Logger, hooks domain.LifecycleHooks) (*session.Manager, error) {
	opts := []session.Option{
		session.WithLogger(logger),
		session.WithLifecycleHooks(hooks),
		session.WithInitialPanel(cfg.DefaultPanel),
	}

	if cfg.Redis.Addr == "" {
		logger.Debug("Session store", "backend", "memory")
		return session.NewManager(memory.NewStore(), opts...), nil
	}

	store := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
		redis.WithPrefix(cfg.Redis.Prefix),
		redis.WithTTL(time.Duration(cfg.Redis.TTL)),
	)
	pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()
	if err := store.Ping(pingCtx); err != nil {
		return nil, fmt.Errorf("redis session store unavailable at %s: %w", cfg.Redis.Addr, err)
	}

	logger.Info("Session store", "backend", "redis", "addr", cfg.Redis.Addr)
	opts = append(opts, session.WithLocker(redis.NewLocker(store.Client(), cfg.Redis.Prefix)))
	return session.NewManager(store, opts...), nil
}

// applyInputLimit publishes a non-default limit to the validators.
// An explicit environment value wins.
func applyInputLimit(size int) {
	if size <= 0 || size == validate.DefaultMaxInputSize {
		return
	}
	if os.Getenv(validate.EnvMaxInputSize) != "" {
		return
	}
	_ = os.Setenv(validate.EnvMaxInputSize, strconv.Itoa(size))
}
