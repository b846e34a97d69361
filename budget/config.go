package budget

import (
	"time"

	"github.com/kbukum/tripcost/cache"
	"github.com/kbukum/tripcost/resilience"
	"github.com/kbukum/tripcost/validation"
	"github.com/kbukum/tripcost/version"
)

// DefaultBaseURL is the production v3 endpoint.
const DefaultBaseURL = "http://www.budgetyourtrip.com/api/v3/"

// APIKeyHeader carries the API key on every request.
const APIKeyHeader = "X-API-KEY"

const (
	defaultTimeout  = 30 * time.Second
	defaultCacheTTL = time.Hour
)

// Config configures a Client.
type Config struct {
	// BaseURL is the API root. Defaults to DefaultBaseURL.
	BaseURL string `yaml:"base_url" mapstructure:"base_url" validate:"required,url"`

	// APIKey is sent in the X-API-KEY header.
	APIKey string `yaml:"key" mapstructure:"key" validate:"required"`

	// Timeout bounds each request. Defaults to 30s.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout" validate:"gt=0"`

	// UserAgent defaults to tripcost/<version>.
	UserAgent string `yaml:"user_agent" mapstructure:"user_agent"`

	// RateLimit throttles requests sent to the API. Disabled by default.
	RateLimit resilience.LimiterConfig `yaml:"rate_limit" mapstructure:"rate_limit"`

	// Cache stores successful responses when set.
	Cache cache.Store `yaml:"-" mapstructure:"-"`

	// CacheTTL is how long cached responses stay valid. Defaults to 1h.
	CacheTTL time.Duration `yaml:"-" mapstructure:"-"`
}

// ApplyDefaults fills in zero-value fields.
func (c *Config) ApplyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.UserAgent == "" {
		c.UserAgent = version.UserAgent()
	}
	if c.CacheTTL <= 0 {
		c.CacheTTL = defaultCacheTTL
	}
}

// Validate checks the configuration. It returns an *errors.AppError with
// code INVALID_INPUT listing every failing field.
func (c *Config) Validate() error {
	return validation.Validate(c)
}
