// Package logger provides structured logging for tripcost using zerolog.
//
// It supports JSON and console output, level configuration and
// component-scoped loggers with map-based structured fields.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "json"
//
// # Usage
//
//	log := logger.New(&cfg, "tripcost").WithComponent("budget")
//	log.Info("fetched", logger.Fields("path", "categories/1", "status", 200))
package logger
