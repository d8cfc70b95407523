// Package logger provides structured logging for oidcguard using zerolog.
//
// It supports JSON and console output, level configuration, and
// component-scoped loggers. Fields are passed as maps, usually built with
// Fields:
//
//	log := logger.WithComponent("provider")
//	log.Debug("validating token", logger.Fields(logger.FieldProvider, "google", logger.FieldKeyID, kid))
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "json"
package logger
