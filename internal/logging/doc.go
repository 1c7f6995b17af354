// Package logging provides structured logging for the latexfmt CLI using slog.
//
// The package supports both text and JSON output formats, configurable log
// levels, and helpers for testing. All loggers are based on the standard
// library's [log/slog] package.
//
// Text output goes through [Handler], which colours levels and keys when the
// destination is a terminal. When a log file is requested the root command
// fans records out with [MultiHandler].
//
// # Context
//
// Commands receive their logger through the cobra context:
//
//	ctx = logging.NewContext(ctx, logger)
//	...
//	logging.FromContext(ctx).Debug("running latexindent", "file", path)
//
// # Testing
//
// Use [ForTest] to capture log output via the testing framework:
//
//	logger := logging.ForTest(t)
package logging
