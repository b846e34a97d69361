package config

import (
	"github.com/kbukum/tripcost/budget"
	"github.com/kbukum/tripcost/cache"
	"github.com/kbukum/tripcost/errors"
	"github.com/kbukum/tripcost/logger"
	"github.com/kbukum/tripcost/observability"
	"github.com/kbukum/tripcost/validation"
	"github.com/kbukum/tripcost/version"
)

// Config is the full tripcost configuration.
type Config struct {
	Name        string `yaml:"name" mapstructure:"name"`
	Environment string `yaml:"environment" mapstructure:"environment" validate:"oneof=development staging production"`
	Debug       bool   `yaml:"debug" mapstructure:"debug"`

	API       budget.Config        `yaml:"api" mapstructure:"api"`
	Cache     cache.Config         `yaml:"cache" mapstructure:"cache"`
	Logging   logger.Config        `yaml:"logging" mapstructure:"logging"`
	Telemetry observability.Config `yaml:"telemetry" mapstructure:"telemetry"`
}

// ApplyDefaults fills in zero-value fields of every section.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "tripcost"
	}
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Debug && c.Logging.Level == "" {
		c.Logging.Level = "debug"
	}
	c.Logging.ApplyDefaults()

	c.API.ApplyDefaults()
	c.Cache.ApplyDefaults()
	c.Cache.Redis.ApplyDefaults()
	c.API.CacheTTL = c.Cache.TTL

	if c.Telemetry.ServiceName == "" {
		c.Telemetry.ServiceName = c.Name
	}
	if c.Telemetry.ServiceVersion == "" {
		c.Telemetry.ServiceVersion = version.Get().Version
	}
	if c.Telemetry.Environment == "" {
		c.Telemetry.Environment = c.Environment
	}
	c.Telemetry.ApplyDefaults()
}

// Validate checks every section. Struct tag failures are reported together
// as one INVALID_INPUT error keyed by config path.
func (c *Config) Validate() error {
	if err := validation.Validate(c); err != nil {
		return err
	}
	if err := c.Logging.Validate(); err != nil {
		return errors.Validation(err.Error()).WithCause(err)
	}
	if err := c.Telemetry.Validate(); err != nil {
		return errors.Validation(err.Error()).WithCause(err)
	}
	if c.Cache.Backend == cache.BackendRedis {
		if err := c.Cache.Redis.Validate(); err != nil {
			return errors.Validation(err.Error()).WithCause(err).WithDetail("field", "cache.redis")
		}
	}
	return nil
}
