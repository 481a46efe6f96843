// Package logger provides structured logging for the SDK using zerolog.
//
// It supports JSON and console output, level configuration and
// component-scoped loggers with structured fields. The dispatcher's default
// audit collaborator writes every request/response pair through it.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "json"
//	  components:
//	    audit: "warn"
//
// # Usage
//
//	log := logger.Get("dispatcher")
//	log.Info("request sent", logger.Fields("request_id", id))
package logger
