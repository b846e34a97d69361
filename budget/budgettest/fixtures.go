package budgettest

import "github.com/gin-gonic/gin"

// APIKey is the key the fake accepts.
const APIKey = "test-api-key"

// Categories are served by categories/ and categories/{id}.
var Categories = []gin.H{
	{"category_id": 1, "name": "Accommodation", "description": "From camping to luxury hotels, costs are for one person and assume double occupancy."},
	{"category_id": 2, "name": "Local Transportation", "description": "Taxis, local buses, subway, etc."},
	{"category_id": 3, "name": "Food", "description": "Meals at restaurants, snacks and groceries."},
	{"category_id": "16", "name": "Charitable Donations", "description": "Gifts and donations."},
}

// Currencies are served by currencies/ and currencies/{code}.
var Currencies = []gin.H{
	{"currency_code": "USD", "currency": "Dollar (United States)", "symbol": "$"},
	{"currency_code": "EUR", "currency": "Euro", "symbol": "€"},
	{"currency_code": "AUD", "currency": "Dollar (Australia) ", "symbol": "AU$"},
}

// Rates are units of each currency per US dollar, used by currencies/convert.
var Rates = map[string]float64{
	"USD": 1,
	"EUR": 0.92,
	"AUD": 1.5,
}

// Locations are served by locations/{geonameid} and the location searches.
var Locations = []gin.H{
	{
		"geonameid": "4167147", "name": "Orlando", "latitude": "28.53834", "longitude": "-81.37924",
		"feature_class": "P", "feature_code": "PPLA2", "country_code": "US",
		"country_name": "United States of America", "admin1_code": "FL", "negotiate": "1",
		"currency_code": "USD", "currency": "Dollar (United States)",
	},
	{
		"geonameid": "4197000", "name": "Georgia", "latitude": "32.75042", "longitude": "-83.50018",
		"feature_class": "A", "feature_code": "ADM1", "country_code": "US",
		"country_name": "United States of America", "admin1_code": "GA", "negotiate": "1",
		"currency_code": "USD", "currency": "Dollar (United States)",
	},
	{
		"geonameid": 614540, "name": "Georgia", "latitude": 42, "longitude": 43.5,
		"feature_class": "A", "feature_code": "PCLI", "country_code": "GE",
		"country_name": "Georgia", "admin1_code": "00", "negotiate": 2,
		"currency_code": "GEL", "currency": "Lari",
	},
}

// Countries are the bare country documents behind costs/countryinfo/{code}.
var Countries = []gin.H{
	{"country_code": "US", "name": "United States of America", "url": "united-states-of-america", "negotiate": "1", "currency_code": "USD"},
	{"country_code": "GB", "name": "United Kingdom", "url": "united-kingdom", "negotiate": "1", "currency_code": "GBP"},
	{"country_code": "GE", "name": "Georgia", "url": "georgia", "negotiate": "2", "currency_code": "GEL"},
}

// CountryCosts are the per-category costs of each country.
var CountryCosts = map[string][]gin.H{
	"US": {
		{"category_id": "1", "value_budget": "45.12", "value_midrange": "110.5", "value_luxury": "320", "country_code": "US"},
		{"category_id": "2", "value_budget": "10.2", "value_midrange": "25.75", "value_luxury": "80", "country_code": "US"},
		{"category_id": "3", "value_budget": "20", "value_midrange": "45.5", "value_luxury": "110.25", "country_code": "US"},
	},
	"GB": {
		{"category_id": "1", "value_budget": "40", "value_midrange": "120", "value_luxury": "400", "country_code": "GB"},
	},
	"GE": {},
}

// LocationCosts are the per-category costs of each location, keyed by geoname id.
var LocationCosts = map[string][]gin.H{
	"4167147": {
		{"category_id": 1, "value_budget": 38.5, "value_midrange": 95, "value_luxury": 250.75, "country_code": "US", "geonameid": 4167147},
		{"category_id": 3, "value_budget": 18, "value_midrange": 40, "value_luxury": 99.9, "country_code": "US", "geonameid": 4167147},
	},
}
