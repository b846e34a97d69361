// Package errors provides the error type surfaced by tripcost to callers.
// Every fatal failure carries a machine-readable code, the HTTP status that
// caused it (when there was one) and a retryable hint.
package errors
