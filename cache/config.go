package cache

import (
	"fmt"
	"time"

	"github.com/kbukum/tripcost/logger"
)

// Backend names accepted by Config.Backend.
const (
	BackendNone   = "none"
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Config selects and configures a response store.
type Config struct {
	// Backend is one of "none", "memory" or "redis". Defaults to "none".
	Backend string `yaml:"backend" mapstructure:"backend" validate:"omitempty,oneof=none memory redis"`

	// TTL is how long a cached response stays valid. Defaults to 1h.
	TTL time.Duration `yaml:"ttl" mapstructure:"ttl" validate:"gte=0"`

	// MaxEntries bounds the memory backend. 0 means unbounded.
	MaxEntries int `yaml:"max_entries" mapstructure:"max_entries" validate:"gte=0"`

	// Redis configures the redis backend.
	Redis RedisConfig `yaml:"redis" mapstructure:"redis"`
}

// ApplyDefaults fills in zero-value fields.
func (c *Config) ApplyDefaults() {
	if c.Backend == "" {
		c.Backend = BackendNone
	}
	if c.TTL == 0 {
		c.TTL = time.Hour
	}
}

// Open builds the configured store. It returns a nil Store for the "none" backend.
func Open(cfg Config, log *logger.Logger) (Store, error) {
	cfg.ApplyDefaults()
	switch cfg.Backend {
	case BackendNone:
		return nil, nil
	case BackendMemory:
		return NewMemory(cfg.MaxEntries), nil
	case BackendRedis:
		r, err := NewRedis(cfg.Redis, log)
		if err != nil {
			return nil, err
		}
		return r, nil
	default:
		return nil, fmt.Errorf("cache: unknown backend %q", cfg.Backend)
	}
}
