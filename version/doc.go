// Package version provides build metadata for tripcost.
//
// Version, git commit and build time are set at compile time via -ldflags:
//
//	go build -ldflags "-X github.com/kbukum/tripcost/version.Version=1.0.0" ./cmd/tripcost
package version
