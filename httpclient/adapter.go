package httpclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	neturl "net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kbukum/tripcost/cache"
	"github.com/kbukum/tripcost/logger"
	"github.com/kbukum/tripcost/resilience"
)

// RequestIDHeader carries the per-request correlation id.
const RequestIDHeader = "X-Request-ID"

// Adapter is a configurable HTTP adapter with auth, request ids and an
// optional response cache.
type Adapter struct {
	httpClient *http.Client
	config     Config
	cache      cache.Store
	cacheTTL   time.Duration
	limiter    *resilience.Limiter
	log        *logger.Logger
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(a *Adapter) {
		if hc != nil {
			a.httpClient = hc
		}
	}
}

// WithLogger sets the adapter logger.
func WithLogger(log *logger.Logger) Option {
	return func(a *Adapter) {
		if log != nil {
			a.log = log
		}
	}
}

// WithCache stores successful GET responses in store for ttl.
// A nil store disables caching.
func WithCache(store cache.Store, ttl time.Duration) Option {
	return func(a *Adapter) {
		a.cache = store
		a.cacheTTL = ttl
	}
}

// WithRateLimit throttles requests that reach the network. Cache hits are
// not throttled. A nil limiter disables throttling.
func WithRateLimit(l *resilience.Limiter) Option {
	return func(a *Adapter) {
		a.limiter = l
	}
}

// New creates a new HTTP adapter with the given configuration.
func New(cfg Config, opts ...Option) (*Adapter, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	a := &Adapter{
		httpClient: &http.Client{
			Transport: http.DefaultTransport.(*http.Transport).Clone(),
			Timeout:   cfg.Timeout,
		},
		config: cfg,
		log:    logger.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.log = a.log.WithComponent(cfg.Name)
	return a, nil
}

// Do executes an HTTP request and returns the complete response.
// Non-2xx statuses are returned as *Error together with the response.
func (a *Adapter) Do(ctx context.Context, req Request) (*Response, error) {
	httpReq, requestID, err := a.buildRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	auth := a.config.Auth
	if req.Auth != nil {
		auth = req.Auth
	}

	key := ""
	if a.cache != nil && !req.NoCache && httpReq.Method == http.MethodGet {
		key = cacheKey(a.config.Name, httpReq.URL.String(), auth)
		if resp, ok := a.lookup(ctx, key, requestID); ok {
			return resp, nil
		}
	}

	auth.apply(httpReq)

	if err := a.limiter.Wait(ctx); err != nil {
		return nil, NewTimeoutError(err)
	}
	resp, err := a.send(ctx, httpReq, requestID)
	if err != nil {
		return resp, err
	}
	if key != "" {
		if err := a.cache.Set(ctx, key, resp.Body, a.cacheTTL); err != nil {
			a.log.Warn("response cache write failed", logger.ErrorFields("cache_set", err))
		}
	}
	return resp, nil
}

// Unwrap returns the underlying *http.Client for advanced use cases.
func (a *Adapter) Unwrap() *http.Client {
	return a.httpClient
}

// GetConfig returns the adapter's configuration.
func (a *Adapter) GetConfig() Config {
	return a.config
}

// Close releases idle connections and the cache store.
func (a *Adapter) Close() error {
	a.httpClient.CloseIdleConnections()
	if a.cache != nil {
		return a.cache.Close()
	}
	return nil
}

func (a *Adapter) lookup(ctx context.Context, key, requestID string) (*Response, bool) {
	body, ok, err := a.cache.Get(ctx, key)
	if err != nil {
		a.log.Warn("response cache read failed", logger.ErrorFields("cache_get", err))
		return nil, false
	}
	if !ok {
		return nil, false
	}
	a.log.Debug("response served from cache", map[string]interface{}{
		logger.FieldRequestID: requestID,
		logger.FieldCacheHit:  true,
	})
	return &Response{
		StatusCode: http.StatusOK,
		Headers:    map[string]string{},
		Body:       body,
		RequestID:  requestID,
		Cached:     true,
	}, true
}

// send performs the round trip and classifies the status.
func (a *Adapter) send(ctx context.Context, httpReq *http.Request, requestID string) (*Response, error) {
	start := time.Now()
	resp, err := a.httpClient.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil || isTimeout(err) {
			return nil, NewTimeoutError(err)
		}
		return nil, NewConnectionError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewConnectionError(fmt.Errorf("read response body: %w", err))
	}

	fields := logger.DurationFields("http_request", time.Since(start))
	fields[logger.FieldRequestID] = requestID
	fields[logger.FieldPath] = httpReq.URL.Path
	fields[logger.FieldStatus] = resp.StatusCode
	a.log.Debug("http request completed", fields)

	result := &Response{
		StatusCode: resp.StatusCode,
		Headers:    flattenHeaders(resp.Header),
		Body:       body,
		RequestID:  requestID,
	}

	if classErr := ClassifyStatusCode(resp.StatusCode, body); classErr != nil {
		return result, classErr
	}
	return result, nil
}

// buildRequest constructs an *http.Request from the adapter config and request.
// Auth is applied separately so credentials never reach the cache key.
func (a *Adapter) buildRequest(ctx context.Context, req Request) (*http.Request, string, error) {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	url := req.Path
	if a.config.BaseURL != "" {
		// Credentials are only ever sent to the configured host.
		if isAbsoluteURL(req.Path) {
			return nil, "", NewValidationError("path must be relative to the base URL")
		}
		url = strings.TrimRight(a.config.BaseURL, "/") + "/" + strings.TrimLeft(req.Path, "/")
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, url, http.NoBody)
	if err != nil {
		return nil, "", NewValidationError(fmt.Sprintf("create request: %v", err))
	}

	if len(req.Query) > 0 {
		q := httpReq.URL.Query()
		for k, v := range req.Query {
			q.Set(k, v)
		}
		httpReq.URL.RawQuery = q.Encode()
	}

	httpReq.Header.Set("Accept", "application/json")
	if a.config.UserAgent != "" {
		httpReq.Header.Set("User-Agent", a.config.UserAgent)
	}
	for k, v := range a.config.Headers {
		httpReq.Header.Set(k, v)
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	requestID := httpReq.Header.Get(RequestIDHeader)
	if requestID == "" {
		if id, ok := logger.RequestIDFromContext(ctx); ok {
			requestID = id
		} else {
			requestID = uuid.NewString()
		}
		httpReq.Header.Set(RequestIDHeader, requestID)
	}

	return httpReq, requestID, nil
}

// cacheKey scopes a URL by adapter name and credential fingerprint.
func cacheKey(name, url string, auth *AuthConfig) string {
	return name + ":" + auth.fingerprint() + ":" + url
}

// flattenHeaders converts multi-value headers to single-value.
func flattenHeaders(h http.Header) map[string]string {
	result := make(map[string]string, len(h))
	for k, v := range h {
		if len(v) > 0 {
			result[k] = v[0]
		}
	}
	return result
}

type timeoutError interface {
	Timeout() bool
}

func isTimeout(err error) bool {
	var te timeoutError
	return errors.As(err, &te) && te.Timeout()
}

// isAbsoluteURL reports whether path names its own scheme or host.
func isAbsoluteURL(path string) bool {
	u, err := neturl.Parse(path)
	if err != nil {
		return strings.Contains(path, "://")
	}
	return u.IsAbs() || u.Host != ""
}
