// Package httpclient is the transport used by the BudgetYourTrip client.
//
// An Adapter performs requests against a base URL, applies API-key
// authentication, stamps every request with an X-Request-ID and classifies
// non-2xx statuses into *Error values. GET responses with a 2xx status can be
// served from a cache.Store.
//
//	a, err := httpclient.New(httpclient.Config{
//	    BaseURL: "http://www.budgetyourtrip.com/api/v3/",
//	    Auth:    httpclient.APIKeyAuth(key, "X-API-KEY"),
//	}, httpclient.WithCache(cache.NewMemory(0), time.Hour))
//
//	resp, err := a.Do(ctx, httpclient.Request{Method: http.MethodGet, Path: "currencies/"})
//
// The rest subpackage interprets the {"data": ...} envelope on top of Do.
package httpclient
