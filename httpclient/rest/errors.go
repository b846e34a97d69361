package rest

import "github.com/kbukum/tripcost/httpclient"

// Convenience re-exports so callers can classify Fetch errors
// without importing httpclient.

// IsAuth checks if the error is a 401/403 authentication error.
func IsAuth(err error) bool { return httpclient.IsAuth(err) }

// IsConnection checks if the error is a connection failure.
func IsConnection(err error) bool { return httpclient.IsConnection(err) }

// IsRateLimit checks if the error is a 429 Too Many Requests.
func IsRateLimit(err error) bool { return httpclient.IsRateLimit(err) }

// IsServerError checks if the error is a 5xx server error.
func IsServerError(err error) bool { return httpclient.IsServerError(err) }

// IsTimeout checks if the error is a timeout.
func IsTimeout(err error) bool { return httpclient.IsTimeout(err) }
