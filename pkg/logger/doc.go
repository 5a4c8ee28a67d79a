// Package logger builds the application's log/slog loggers.
//
// Loggers write JSON to stdout by default, or colored text via tint when
// Config.Format is "text". NewWithSentry additionally fans records out to
// Sentry: errors become issues, warnings are stored as logs. Without a DSN it
// falls back to stdout only, so the same wiring runs in development.
//
// Context extractors add request-scoped attributes to every record:
//
//	log := logger.NewWithConfig(logger.Config{Format: "text"},
//		middlewares.RequestIDExtractor(),
//		middlewares.LocaleExtractor(),
//	)
//	log.InfoContext(ctx, "page rendered")
//	// ... request_id=01J... locale=de
//
// FlushSentry has the shutdown-hook signature and should run last.
package logger
