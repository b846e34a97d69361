package rest

import (
	"context"
	"errors"
	"net/http"

	"github.com/kbukum/tripcost/httpclient"
	"github.com/kbukum/tripcost/logger"
)

// Client fetches envelope payloads through an httpclient.Adapter.
type Client struct {
	http *httpclient.Adapter
	log  *logger.Logger
}

// New creates a REST client from the given adapter config.
func New(cfg httpclient.Config, log *logger.Logger, opts ...httpclient.Option) (*Client, error) {
	if log == nil {
		log = logger.NewNop()
	}
	opts = append([]httpclient.Option{httpclient.WithLogger(log)}, opts...)
	a, err := httpclient.New(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return NewFromAdapter(a, log), nil
}

// NewFromAdapter creates a REST client from an existing adapter.
func NewFromAdapter(a *httpclient.Adapter, log *logger.Logger) *Client {
	if log == nil {
		log = logger.NewNop()
	}
	return &Client{http: a, log: log.WithComponent("rest")}
}

// HTTP returns the underlying adapter.
func (c *Client) HTTP() *httpclient.Adapter {
	return c.http
}

// Close releases the adapter.
func (c *Client) Close() error {
	return c.http.Close()
}

// RequestOption configures a single request.
type RequestOption func(*httpclient.Request)

// WithQuery adds query parameters to the request.
func WithQuery(params map[string]string) RequestOption {
	return func(r *httpclient.Request) {
		if r.Query == nil {
			r.Query = make(map[string]string, len(params))
		}
		for k, v := range params {
			r.Query[k] = v
		}
	}
}

// WithoutCache bypasses the response cache.
func WithoutCache() RequestOption {
	return func(r *httpclient.Request) {
		r.NoCache = true
	}
}

// Fetch performs a GET on path and returns the envelope payload.
//
// A 404 returns (nil, nil). Authentication failures, other non-2xx statuses
// and transport failures return the *httpclient.Error. A 2xx body that is
// not a JSON object with a "data" field is logged and returns (nil, nil).
func (c *Client) Fetch(ctx context.Context, path string, opts ...RequestOption) (any, error) {
	req := httpclient.Request{Method: http.MethodGet, Path: path}
	for _, opt := range opts {
		opt(&req)
	}

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		if httpclient.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	data, err := Unwrap(resp.Body)
	if err != nil {
		fields := logger.ErrorFields("unwrap_envelope", err)
		fields[logger.FieldPath] = path
		fields[logger.FieldRequestID] = resp.RequestID
		fields[logger.FieldStatus] = resp.StatusCode
		c.log.Warn("unexpected response body", fields)
		return nil, nil
	}
	return data, nil
}

// IsMalformed reports whether err came from Unwrap.
func IsMalformed(err error) bool {
	return errors.Is(err, ErrNotJSON) || errors.Is(err, ErrNotObject) || errors.Is(err, ErrMissingPayload)
}
