// Package rest interprets the BudgetYourTrip response envelope on top of
// the httpclient adapter.
//
// Every successful response is a JSON object whose payload sits under
// "data". Fetch returns that payload, reports a 404 as absence (nil, nil)
// and fails on authentication errors and any other non-2xx status:
//
//	c, _ := rest.New(httpclient.Config{BaseURL: base, Auth: auth}, log)
//	data, err := c.Fetch(ctx, "currencies/usd")
//	if err != nil {
//	    // fatal: 401/403, 5xx, transport failure
//	}
//	if data == nil {
//	    // absent: 404, malformed body, or missing "data"
//	}
package rest
