// Package cache provides response stores used by httpclient to avoid
// repeating idempotent GET requests.
//
// Two stores are available: Memory, an in-process TTL map, and Redis, backed
// by go-redis for sharing cached responses between processes.
package cache
