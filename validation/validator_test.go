package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbukum/tripcost/errors"
)

type apiSection struct {
	BaseURL string        `mapstructure:"base_url" validate:"required,url"`
	Key     string        `mapstructure:"key" validate:"required"`
	Timeout time.Duration `mapstructure:"timeout" validate:"gte=0"`
}

type cacheSection struct {
	Backend string `mapstructure:"backend" validate:"oneof=none memory redis"`
	Addr    string `mapstructure:"addr" validate:"required_if=Backend redis"`
}

type rootConfig struct {
	API   apiSection   `mapstructure:"api"`
	Cache cacheSection `mapstructure:"cache"`
}

func TestValidate_Valid(t *testing.T) {
	cfg := rootConfig{
		API:   apiSection{BaseURL: "http://www.budgetyourtrip.com/api/v3/", Key: "k"},
		Cache: cacheSection{Backend: "memory"},
	}
	assert.NoError(t, Validate(cfg))
}

func TestValidate_ReportsConfigKeys(t *testing.T) {
	cfg := rootConfig{
		API:   apiSection{BaseURL: "not a url"},
		Cache: cacheSection{Backend: "redis"},
	}

	err := Validate(cfg)
	require.Error(t, err)

	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeInvalidInput, appErr.Code)
	assert.Contains(t, appErr.Message, "api.base_url: must be a valid URL")
	assert.Contains(t, appErr.Message, "api.key: is required")
	assert.Contains(t, appErr.Message, "cache.addr: is required when Backend redis")

	fields, ok := appErr.Details["fields"].([]FieldError)
	require.True(t, ok)
	assert.Len(t, fields, 3)
}

func TestValidate_OneOf(t *testing.T) {
	cfg := rootConfig{
		API:   apiSection{BaseURL: "http://localhost", Key: "k"},
		Cache: cacheSection{Backend: "memcached"},
	}
	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cache.backend: must be one of: none memory redis")
}

func TestFieldName_Fallbacks(t *testing.T) {
	type sample struct {
		JSONOnly  string `json:"json_only" validate:"required"`
		NoTags    string `validate:"required"`
		SkipField string `json:"-" mapstructure:"-"`
	}
	err := Validate(sample{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "json_only: is required")
	assert.Contains(t, err.Error(), "no_tags: is required")
}

func TestToSnakeCase(t *testing.T) {
	assert.Equal(t, "base_url", toSnakeCase("BaseUrl"))
	assert.Equal(t, "key", toSnakeCase("Key"))
}
