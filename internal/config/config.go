// Package config loads the workbench.yaml (or .json) settings file.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/workbench/internal/logging"
	"github.com/aretw0/workbench/pkg/adapters/redis"
	"github.com/aretw0/workbench/pkg/panel"
	"github.com/aretw0/workbench/pkg/ports"
	"github.com/aretw0/workbench/pkg/presenter"
	"github.com/aretw0/workbench/pkg/transform"
	"github.com/aretw0/workbench/pkg/validate"
)

// DefaultPath is looked up in the working directory when --config is not set.
const DefaultPath = "workbench.yaml"

// EnvRedisAddr overrides Redis.Addr.
const EnvRedisAddr = "WORKBENCH_REDIS_ADDR"

// MCP transports.
const (
	TransportStdio = "stdio"
	TransportSSE   = "sse"
)

// Duration is a time.Duration written as "1500ms", "24h" etc.
type Duration time.Duration

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

type HTTPConfig struct {
	Port int `yaml:"port" json:"port"`
}

type MCPConfig struct {
	Transport string `yaml:"transport" json:"transport"`
	Port      int    `yaml:"port" json:"port"`
}

// RedisConfig enables the Redis session store when Addr is set.
type RedisConfig struct {
	Addr     string   `yaml:"addr" json:"addr"`
	Password string   `yaml:"password" json:"password"`
	DB       int      `yaml:"db" json:"db"`
	Prefix   string   `yaml:"prefix" json:"prefix"`
	TTL      Duration `yaml:"ttl" json:"ttl"`
}

type ToolsConfig struct {
	PageSize      string   `yaml:"page_size" json:"page_size"`
	QRSize        int      `yaml:"qr_size" json:"qr_size"`
	FeedbackDelay Duration `yaml:"feedback_delay" json:"feedback_delay"`
	MaxInputSize  int      `yaml:"max_input_size" json:"max_input_size"`
}

// Config is the full settings file.
type Config struct {
	LogLevel     string      `yaml:"log_level" json:"log_level"`
	DefaultPanel string      `yaml:"default_panel" json:"default_panel"`
	HTTP         HTTPConfig  `yaml:"http" json:"http"`
	MCP          MCPConfig   `yaml:"mcp" json:"mcp"`
	Redis        RedisConfig `yaml:"redis" json:"redis"`
	Tools        ToolsConfig `yaml:"tools" json:"tools"`
}

// Default returns the settings used when no file is present.
func Default() Config {
	return Config{
		LogLevel:     "info",
		DefaultPanel: panel.Default,
		HTTP:         HTTPConfig{Port: 8080},
		MCP:          MCPConfig{Transport: TransportStdio, Port: 8081},
		Redis: RedisConfig{
			Prefix: redis.DefaultPrefix,
			TTL:    Duration(redis.DefaultTTL),
		},
		Tools: ToolsConfig{
			PageSize:      string(ports.PageA4),
			QRSize:        transform.DefaultQRSize,
			FeedbackDelay: Duration(presenter.FeedbackDelay),
			MaxInputSize:  validate.DefaultMaxInputSize,
		},
	}
}

// Load reads path over the defaults and applies environment overrides.
// A missing file is not an error; the defaults are returned.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return cfg, fmt.Errorf("failed to read config: %w", err)
	default:
		if strings.ToLower(filepath.Ext(path)) == ".json" {
			if err := json.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
			}
		} else {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
			}
		}
	}

	applyEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if addr := os.Getenv(EnvRedisAddr); addr != "" {
		cfg.Redis.Addr = addr
	}
	if val := os.Getenv(validate.EnvMaxInputSize); val != "" {
		if size, err := strconv.Atoi(val); err == nil && size > 0 {
			cfg.Tools.MaxInputSize = size
		}
	}
}

// Validate rejects values no component can use.
func (c Config) Validate() error {
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if !panel.Known(c.DefaultPanel) {
		return fmt.Errorf("invalid config: unknown default_panel %q", c.DefaultPanel)
	}
	switch ports.PageSize(strings.ToLower(c.Tools.PageSize)) {
	case ports.PageA4, ports.PageLetter:
	default:
		return fmt.Errorf("invalid config: page_size must be a4 or letter, got %q", c.Tools.PageSize)
	}
	switch c.MCP.Transport {
	case TransportStdio, TransportSSE:
	default:
		return fmt.Errorf("invalid config: mcp transport must be stdio or sse, got %q", c.MCP.Transport)
	}
	if c.HTTP.Port <= 0 || c.MCP.Port <= 0 {
		return fmt.Errorf("invalid config: ports must be positive")
	}
	return nil
}
