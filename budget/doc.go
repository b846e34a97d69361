// Package budget is a typed client for the BudgetYourTrip travel-cost API.
//
// A Client turns method calls into GET requests against the v3 REST API and
// maps the returned documents onto Category, Currency, Cost, Country and
// Location records:
//
//	c, err := budget.New(budget.Config{APIKey: key})
//	if err != nil {
//	    return err
//	}
//	defer c.Close()
//
//	country, err := c.CountryInfo(ctx, "US")
//	if err != nil {
//	    return err // authentication or transport failure
//	}
//	if country == nil {
//	    return nil // no such country
//	}
//
// Lookups that find nothing return a nil record and a nil error. Only
// authentication failures, unexpected statuses and transport failures are
// errors; they are reported as *errors.AppError.
//
// Records built by a Client are attached to it and can navigate to related
// resources (Location.CountryInfo, Country.CurrencyInfo, Cost.CategoryInfo).
// Records built with the exported constructors are detached.
package budget
