// Package config loads tripcost configuration.
//
// Values come from a YAML file, then a .env file, then the process
// environment, each layer overriding the previous one. Environment variables
// are bound to nested keys by splitting on underscores, so API_KEY sets
// api.key and API_BASE_URL sets api.base_url.
//
// # Usage
//
//	cfg, err := config.Load("tripcost", config.WithConfigFile("config.yml"))
package config
