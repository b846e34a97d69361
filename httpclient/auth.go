package httpclient

import (
	"net/http"

	"github.com/google/uuid"
)

// DefaultAPIKeyHeader is the header used when AuthConfig.Header is empty.
const DefaultAPIKeyHeader = "X-API-KEY"

// AuthConfig is a static API key sent in a request header.
// A nil *AuthConfig sends no credentials.
type AuthConfig struct {
	// Key is the API key value.
	Key string
	// Header names the header carrying the key. Defaults to DefaultAPIKeyHeader.
	Header string
}

// APIKeyAuth returns an AuthConfig sending key in header.
func APIKeyAuth(key, header string) *AuthConfig {
	return &AuthConfig{Key: key, Header: header}
}

func (a *AuthConfig) header() string {
	if a.Header == "" {
		return DefaultAPIKeyHeader
	}
	return a.Header
}

func (a *AuthConfig) apply(req *http.Request) {
	if a == nil || a.Key == "" {
		return
	}
	req.Header.Set(a.header(), a.Key)
}

// fingerprint identifies the credential without exposing it, so requests
// made with different keys never share a cache entry.
func (a *AuthConfig) fingerprint() string {
	if a == nil || a.Key == "" {
		return "anonymous"
	}
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(a.Key)).String()
}
