// Package logger provides structured logging attribute helpers built on
// Go's standard slog package. Helpers return empty Attrs for zero inputs,
// so call sites never need nil checks:
//
//	log.Error("dispatch failed",
//		logger.Error(err),
//		logger.Route("users", "show"),
//		logger.Status(500),
//	)
package logger
