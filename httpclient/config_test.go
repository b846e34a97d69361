package httpclient

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConfig_ApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, "httpclient", cfg.Name)

	cfg = Config{Timeout: time.Second, Name: "budget"}
	cfg.ApplyDefaults()
	assert.Equal(t, time.Second, cfg.Timeout)
	assert.Equal(t, "budget", cfg.Name)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"empty base url", Config{Timeout: time.Second}, false},
		{"http", Config{Timeout: time.Second, BaseURL: "http://www.budgetyourtrip.com/api/v3/"}, false},
		{"https", Config{Timeout: time.Second, BaseURL: "https://example.com"}, false},
		{"bad scheme", Config{Timeout: time.Second, BaseURL: "ftp://example.com"}, true},
		{"no timeout", Config{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
