// Package budgettest provides an in-process fake of the BudgetYourTrip v3
// API for tests.
//
//	srv := budgettest.New()
//	defer srv.Close()
//
//	c, _ := budget.New(budget.Config{BaseURL: srv.BaseURL(), APIKey: budgettest.APIKey})
//
// The fake serves a small fixed data set (see fixtures.go), rejects requests
// without the expected X-API-KEY with 401, answers unknown resources with 404
// and records every request it receives. Individual paths can be overridden
// with SetResponse to simulate malformed bodies or server errors.
package budgettest
