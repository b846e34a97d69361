package budget

import (
	"context"
	stderrors "errors"
	"strconv"

	"github.com/kbukum/tripcost/mapper"
)

// ErrDetached is returned by navigation methods on records that were not
// built by a Client.
var ErrDetached = stderrors.New("budget: record is not attached to a client")

var categoryMapping = mapper.Mapping{
	"id_":         mapper.Key("category_id"),
	"name":        mapper.Key("name"),
	"description": mapper.Key("description"),
}

var currencyMapping = mapper.Mapping{
	"id_":    mapper.Key("currency_code"),
	"name":   mapper.Key("currency"),
	"symbol": mapper.Key("symbol"),
}

var costMapping = mapper.Mapping{
	"id_":         mapper.Key("category_id"),
	"budget":      mapper.Key("value_budget"),
	"midrange":    mapper.Key("value_midrange"),
	"luxury":      mapper.Key("value_luxury"),
	"country_id":  mapper.Key("country_code"),
	"location_id": mapper.Key("geonameid"),
}

var countryMapping = mapper.Mapping{
	"id_":           mapper.Key("country_code"),
	"name":          mapper.Key("name"),
	"canonical_url": mapper.Key("url"),
	"negotiate":     mapper.Key("negotiate"),
	"currency":      mapper.Key("currency_code"),
}

var locationMapping = mapper.Mapping{
	"id_":           mapper.Key("geonameid"),
	"name":          mapper.Key("name"),
	"latitude":      mapper.Key("latitude"),
	"longitude":     mapper.Key("longitude"),
	"feature_class": mapper.Key("feature_class"),
	"feature_code":  mapper.Key("feature_code"),
	"country_code":  mapper.Key("country_code"),
	"country_name":  mapper.Key("country_name"),
	"admin1_code":   mapper.Key("admin1_code"),
	"negotiate":     mapper.Key("negotiate"),
	"currency_code": mapper.Key("currency_code"),
	"currency":      mapper.Key("currency"),
}

// Category is a travel cost category such as Accommodation.
type Category struct {
	ID          *int64  `json:"id_" yaml:"id_"`
	Name        *string `json:"name" yaml:"name"`
	Description *string `json:"description" yaml:"description"`

	record mapper.Record
	client *Client
}

// NewCategory builds a detached Category from a category document.
func NewCategory(doc mapper.Document) *Category {
	return newCategory(doc, nil)
}

func newCategory(doc mapper.Document, c *Client) *Category {
	r := mapper.Build(categoryMapping, doc)
	return &Category{
		ID:          r.Int("id_"),
		Name:        r.Str("name"),
		Description: r.Str("description"),
		record:      r,
		client:      c,
	}
}

// Source returns the client that built the category, if any.
func (x *Category) Source() (*Client, bool) { return x.client, x.client != nil }

// Record returns the mapped attributes the category was built from.
func (x *Category) Record() mapper.Record { return x.record }

// Equal reports whether both categories carry the same mapped values.
func (x *Category) Equal(o *Category) bool {
	if x == nil || o == nil {
		return x == o
	}
	return x.record.Equal(o.record)
}

func (x *Category) String() string { return "Category" + x.record.String() }

// Currency is a currency known to the API.
type Currency struct {
	Code   *string `json:"id_" yaml:"id_"`
	Name   *string `json:"name" yaml:"name"`
	Symbol *string `json:"symbol" yaml:"symbol"`

	record mapper.Record
	client *Client
}

// NewCurrency builds a detached Currency from a currency document.
func NewCurrency(doc mapper.Document) *Currency {
	return newCurrency(doc, nil)
}

func newCurrency(doc mapper.Document, c *Client) *Currency {
	r := mapper.Build(currencyMapping, doc)
	return &Currency{
		Code:   r.Str("id_"),
		Name:   r.Str("name"),
		Symbol: r.Str("symbol"),
		record: r,
		client: c,
	}
}

// Source returns the client that built the currency, if any.
func (x *Currency) Source() (*Client, bool) { return x.client, x.client != nil }

// Record returns the mapped attributes the currency was built from.
func (x *Currency) Record() mapper.Record { return x.record }

// Equal reports whether both currencies carry the same mapped values.
func (x *Currency) Equal(o *Currency) bool {
	if x == nil || o == nil {
		return x == o
	}
	return x.record.Equal(o.record)
}

func (x *Currency) String() string { return "Currency" + x.record.String() }

// Cost is the daily cost of one category at three travel styles.
type Cost struct {
	CategoryID  *int64   `json:"id_" yaml:"id_"`
	Budget      *float64 `json:"budget" yaml:"budget"`
	Midrange    *float64 `json:"midrange" yaml:"midrange"`
	Luxury      *float64 `json:"luxury" yaml:"luxury"`
	CountryCode *string  `json:"country_id" yaml:"country_id"`
	LocationID  *int64   `json:"location_id" yaml:"location_id"`

	record mapper.Record
	client *Client
}

// NewCost builds a detached Cost from a cost document.
func NewCost(doc mapper.Document) *Cost {
	return newCost(doc, nil)
}

func newCost(doc mapper.Document, c *Client) *Cost {
	r := mapper.Build(costMapping, doc)
	return &Cost{
		CategoryID:  r.Int("id_"),
		Budget:      r.Float("budget"),
		Midrange:    r.Float("midrange"),
		Luxury:      r.Float("luxury"),
		CountryCode: r.Str("country_id"),
		LocationID:  r.Int("location_id"),
		record:      r,
		client:      c,
	}
}

// Source returns the client that built the cost, if any.
func (x *Cost) Source() (*Client, bool) { return x.client, x.client != nil }

// Record returns the mapped attributes the cost was built from.
func (x *Cost) Record() mapper.Record { return x.record }

// Equal reports whether both costs carry the same mapped values.
func (x *Cost) Equal(o *Cost) bool {
	if x == nil || o == nil {
		return x == o
	}
	return x.record.Equal(o.record)
}

func (x *Cost) String() string { return "Cost" + x.record.String() }

// CategoryInfo fetches the category this cost belongs to.
// It returns (nil, nil) when the cost has no category id.
func (x *Cost) CategoryInfo(ctx context.Context) (*Category, error) {
	c, ok := x.Source()
	if !ok {
		return nil, ErrDetached
	}
	if x.CategoryID == nil {
		return nil, nil
	}
	return c.Category(ctx, int(*x.CategoryID))
}

// Country is a country, optionally with its per-category costs.
// Costs is nil when the payload carried no costs.
type Country struct {
	Code         *string `json:"id_" yaml:"id_"`
	Name         *string `json:"name" yaml:"name"`
	CanonicalURL *string `json:"canonical_url" yaml:"canonical_url"`
	Negotiate    *int64  `json:"negotiate" yaml:"negotiate"`
	Currency     *string `json:"currency" yaml:"currency"`
	Costs        []*Cost `json:"costs,omitempty" yaml:"costs,omitempty"`

	record mapper.Record
	client *Client
}

// NewCountry builds a detached Country from a bare country document or an
// info+costs document.
func NewCountry(doc mapper.Document) *Country {
	return newCountry(doc, nil)
}

func newCountry(doc mapper.Document, c *Client) *Country {
	s := decodeShape(doc)
	r := mapper.Build(countryMapping, s.fields)
	return &Country{
		Code:         r.Str("id_"),
		Name:         r.Str("name"),
		CanonicalURL: r.Str("canonical_url"),
		Negotiate:    r.Int("negotiate"),
		Currency:     r.Str("currency"),
		Costs:        buildCosts(s, c),
		record:       r,
		client:       c,
	}
}

// Source returns the client that built the country, if any.
func (x *Country) Source() (*Client, bool) { return x.client, x.client != nil }

// Record returns the mapped attributes the country was built from.
func (x *Country) Record() mapper.Record { return x.record }

// Equal reports whether both countries carry the same mapped values. Costs are not compared.
func (x *Country) Equal(o *Country) bool {
	if x == nil || o == nil {
		return x == o
	}
	return x.record.Equal(o.record)
}

func (x *Country) String() string { return "Country" + x.record.String() + costsSuffix(x.Costs) }

// CurrencyInfo fetches the country's currency.
// It returns (nil, nil) when the country has no currency code.
func (x *Country) CurrencyInfo(ctx context.Context) (*Currency, error) {
	c, ok := x.Source()
	if !ok {
		return nil, ErrDetached
	}
	if x.Currency == nil || *x.Currency == "" {
		return nil, nil
	}
	return c.Currency(ctx, *x.Currency)
}

// Location is a geoname location, optionally with its per-category costs.
// Costs is nil when the payload carried no costs.
type Location struct {
	GeonameID    *int64   `json:"id_" yaml:"id_"`
	Name         *string  `json:"name" yaml:"name"`
	Latitude     *float64 `json:"latitude" yaml:"latitude"`
	Longitude    *float64 `json:"longitude" yaml:"longitude"`
	FeatureClass *string  `json:"feature_class" yaml:"feature_class"`
	FeatureCode  *string  `json:"feature_code" yaml:"feature_code"`
	CountryCode  *string  `json:"country_code" yaml:"country_code"`
	CountryName  *string  `json:"country_name" yaml:"country_name"`
	Admin1Code   *string  `json:"admin1_code" yaml:"admin1_code"`
	Negotiate    *int64   `json:"negotiate" yaml:"negotiate"`
	CurrencyCode *string  `json:"currency_code" yaml:"currency_code"`
	Currency     *string  `json:"currency" yaml:"currency"`
	Costs        []*Cost  `json:"costs,omitempty" yaml:"costs,omitempty"`

	record mapper.Record
	client *Client
}

// NewLocation builds a detached Location from a bare location document or an
// info+costs document.
func NewLocation(doc mapper.Document) *Location {
	return newLocation(doc, nil)
}

func newLocation(doc mapper.Document, c *Client) *Location {
	s := decodeShape(doc)
	r := mapper.Build(locationMapping, s.fields)
	return &Location{
		GeonameID:    r.Int("id_"),
		Name:         r.Str("name"),
		Latitude:     r.Float("latitude"),
		Longitude:    r.Float("longitude"),
		FeatureClass: r.Str("feature_class"),
		FeatureCode:  r.Str("feature_code"),
		CountryCode:  r.Str("country_code"),
		CountryName:  r.Str("country_name"),
		Admin1Code:   r.Str("admin1_code"),
		Negotiate:    r.Int("negotiate"),
		CurrencyCode: r.Str("currency_code"),
		Currency:     r.Str("currency"),
		Costs:        buildCosts(s, c),
		record:       r,
		client:       c,
	}
}

// Source returns the client that built the location, if any.
func (x *Location) Source() (*Client, bool) { return x.client, x.client != nil }

// Record returns the mapped attributes the location was built from.
func (x *Location) Record() mapper.Record { return x.record }

// Equal reports whether both locations carry the same mapped values. Costs are not compared.
func (x *Location) Equal(o *Location) bool {
	if x == nil || o == nil {
		return x == o
	}
	return x.record.Equal(o.record)
}

func (x *Location) String() string { return "Location" + x.record.String() + costsSuffix(x.Costs) }

// CountryInfo fetches the country this location lies in, with its costs.
// It returns (nil, nil) when the location has no country code.
func (x *Location) CountryInfo(ctx context.Context) (*Country, error) {
	c, ok := x.Source()
	if !ok {
		return nil, ErrDetached
	}
	if x.CountryCode == nil || *x.CountryCode == "" {
		return nil, nil
	}
	return c.CountryInfo(ctx, *x.CountryCode)
}

func buildCosts(s shape, c *Client) []*Cost {
	if !s.withCosts {
		return nil
	}
	costs := make([]*Cost, 0, len(s.costs))
	for _, doc := range s.costs {
		costs = append(costs, newCost(doc, c))
	}
	return costs
}

func costsSuffix(costs []*Cost) string {
	if costs == nil {
		return ""
	}
	return "[costs: " + strconv.Itoa(len(costs)) + "]"
}

// convertedAmount reads the newAmount field of a conversion payload.
func convertedAmount(doc mapper.Document) *float64 {
	v, ok := mapper.Resolve(doc, mapper.Key("newAmount"))
	if !ok || v == nil {
		return nil
	}
	return mapper.ToFloat(v)
}
