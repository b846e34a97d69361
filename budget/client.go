package budget

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/tripcost/errors"
	"github.com/kbukum/tripcost/httpclient"
	"github.com/kbukum/tripcost/httpclient/rest"
	"github.com/kbukum/tripcost/logger"
	"github.com/kbukum/tripcost/observability"
	"github.com/kbukum/tripcost/resilience"
)

// ServiceName labels errors, logs and cache keys.
const ServiceName = "budgetyourtrip"

// Client is a BudgetYourTrip API client. It holds only immutable
// configuration and is safe for concurrent use.
type Client struct {
	rest       *rest.Client
	log        *logger.Logger
	tracer     trace.Tracer
	metrics    *observability.Metrics
	httpClient *http.Client
	baseURL    string
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the client logger.
func WithLogger(log *logger.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// WithTracer sets the tracer used for per-operation spans.
func WithTracer(t trace.Tracer) Option {
	return func(c *Client) {
		if t != nil {
			c.tracer = t
		}
	}
}

// WithMetrics sets the metric instruments recorded per operation.
func WithMetrics(m *observability.Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New creates a client. cfg is validated after defaults are applied.
func New(cfg Config, opts ...Option) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Client{
		log:     logger.NewNop(),
		tracer:  observability.Tracer(),
		baseURL: cfg.BaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.metrics == nil {
		if m, err := observability.NewMetrics(observability.Meter()); err == nil {
			c.metrics = m
		}
	}
	c.log = c.log.WithComponent("budget")

	httpOpts := []httpclient.Option{httpclient.WithHTTPClient(c.httpClient)}
	if cfg.Cache != nil {
		httpOpts = append(httpOpts, httpclient.WithCache(cfg.Cache, cfg.CacheTTL))
	}
	if limiter := resilience.NewLimiter(cfg.RateLimit); limiter != nil {
		log := c.log
		limiter.OnWait(func(d time.Duration) {
			log.Debug("request throttled", logger.Fields(logger.FieldDuration, d.Milliseconds()))
		})
		httpOpts = append(httpOpts, httpclient.WithRateLimit(limiter))
	}
	rc, err := rest.New(httpclient.Config{
		Name:      ServiceName,
		BaseURL:   cfg.BaseURL,
		Timeout:   cfg.Timeout,
		UserAgent: cfg.UserAgent,
		Auth:      httpclient.APIKeyAuth(cfg.APIKey, APIKeyHeader),
	}, c.log, httpOpts...)
	if err != nil {
		return nil, errors.Validation(err.Error()).WithCause(err)
	}
	c.rest = rc
	return c, nil
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Close releases idle connections and the response cache.
func (c *Client) Close() error {
	return c.rest.Close()
}

// Category returns the category with the given id.
func (c *Client) Category(ctx context.Context, id int) (*Category, error) {
	return lookupOne(ctx, c, "category", "categories/"+strconv.Itoa(id), newCategory)
}

// Categories returns every cost category.
func (c *Client) Categories(ctx context.Context) ([]*Category, error) {
	return lookupMany(ctx, c, "categories", "categories/", newCategory)
}

// Currency returns the currency with the given code, e.g. "AUD".
func (c *Client) Currency(ctx context.Context, code string) (*Currency, error) {
	p, err := segmentPath("currencies/", "code", code)
	if err != nil {
		return nil, err
	}
	return lookupOne(ctx, c, "currency", p, newCurrency)
}

// Currencies returns every currency.
func (c *Client) Currencies(ctx context.Context) ([]*Currency, error) {
	return lookupMany(ctx, c, "currencies", "currencies/", newCurrency)
}

// Location returns the location with the given geoname id.
func (c *Client) Location(ctx context.Context, geonameID int) (*Location, error) {
	return lookupOne(ctx, c, "location", "locations/"+strconv.Itoa(geonameID), newLocation)
}

// LocationInfo returns the location with the given geoname id together with its costs.
func (c *Client) LocationInfo(ctx context.Context, geonameID int) (*Location, error) {
	return lookupOne(ctx, c, "location_info", "costs/locationinfo/"+strconv.Itoa(geonameID), newLocation)
}

// SearchLocations returns the locations matching term, in the order the API ranks them.
func (c *Client) SearchLocations(ctx context.Context, term string) ([]*Location, error) {
	p, err := segmentPath("search/location/", "term", term)
	if err != nil {
		return nil, err
	}
	return lookupMany(ctx, c, "search_locations", p, newLocation)
}

// CountryInfo returns the country with the given code together with its costs.
func (c *Client) CountryInfo(ctx context.Context, code string) (*Country, error) {
	p, err := segmentPath("costs/countryinfo/", "code", code)
	if err != nil {
		return nil, err
	}
	return lookupOne(ctx, c, "country_info", p, newCountry)
}

// SearchCountries returns the countries matching term.
func (c *Client) SearchCountries(ctx context.Context, term string) ([]*Country, error) {
	p, err := segmentPath("search/country/", "term", term)
	if err != nil {
		return nil, err
	}
	return lookupMany(ctx, c, "search_countries", p, newCountry)
}

// CountryCosts returns the per-category costs of a country.
func (c *Client) CountryCosts(ctx context.Context, code string) ([]*Cost, error) {
	p, err := segmentPath("costs/country/", "code", code)
	if err != nil {
		return nil, err
	}
	return lookupMany(ctx, c, "country_costs", p, newCost)
}

// LocationCosts returns the per-category costs of a location.
func (c *Client) LocationCosts(ctx context.Context, geonameID int) ([]*Cost, error) {
	return lookupMany(ctx, c, "location_costs", "costs/location/"+strconv.Itoa(geonameID), newCost)
}

// Default currencies for ConvertCurrency.
const (
	DefaultFromCurrency = "usd"
	DefaultToCurrency   = "eur"
)

// ConvertCurrency converts amount between currency codes. Empty codes
// default to usd and eur. The result is nil when the API has no answer.
func (c *Client) ConvertCurrency(ctx context.Context, amount float64, from, to string) (*float64, error) {
	if from == "" {
		from = DefaultFromCurrency
	}
	if to == "" {
		to = DefaultToCurrency
	}
	p := "currencies/convert/" + url.PathEscape(from) + "/" + url.PathEscape(to) + "/" +
		strconv.FormatFloat(amount, 'f', -1, 64)

	data, err := c.fetch(ctx, "convert_currency", p, []attribute.KeyValue{
		attribute.String("budget.from", from),
		attribute.String("budget.to", to),
	})
	if err != nil || data == nil {
		return nil, err
	}
	doc, ok := data.(map[string]any)
	if !ok {
		c.log.Warn("conversion payload is not an object", logger.Fields(logger.FieldPath, p))
		return nil, nil
	}
	return convertedAmount(doc), nil
}

// Raw fetches path relative to the base URL and returns the unwrapped payload.
func (c *Client) Raw(ctx context.Context, path string, query map[string]string) (any, error) {
	if u, err := url.Parse(path); err != nil || u.IsAbs() || u.Host != "" {
		return nil, errors.Validation("path must be relative to the base URL").WithDetail("path", path)
	}
	path = strings.TrimLeft(path, "/")
	if path == "" {
		return nil, errors.Validation("path must not be empty")
	}
	var opts []rest.RequestOption
	if len(query) > 0 {
		opts = append(opts, rest.WithQuery(query))
	}
	return c.fetch(ctx, "raw", path, nil, opts...)
}

// segmentPath appends an escaped, non-empty path segment to prefix.
func segmentPath(prefix, name, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", errors.Validation(fmt.Sprintf("%s must not be empty", name)).WithDetail("field", name)
	}
	return prefix + url.PathEscape(value), nil
}
