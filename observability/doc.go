// Package observability wires OpenTelemetry tracing and metrics for the
// BudgetYourTrip client.
//
// Setup installs OTLP/HTTP exporters when telemetry is enabled and returns a
// Provider whose Shutdown flushes them. When disabled, the global no-op
// providers stay in place and every span and instrument is free.
//
// Each client operation is wrapped in an Operation: a span named
// "budget.<operation>" plus counters and a duration histogram labelled with
// the outcome (found, absent, error).
package observability
