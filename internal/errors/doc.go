// Package errors provides error handling conventions for the latexfmt CLI.
//
// This package defines sentinel errors for common failure conditions,
// an ExitError type for CLI exit code handling, exit code constants
// following standard Unix conventions, and thin re-exports of
// github.com/cockroachdb/errors so command code needs a single import.
//
// # Exit Codes
//
//   - ExitSuccess (0): Command completed successfully
//   - ExitUser (1): User-related error, or files that need formatting under --check
//   - ExitSystem (2): Formatter missing, formatter failure, I/O
//
// # ExitError
//
// [ExitError] wraps an underlying error with an exit code and optional suggestion:
//
//	err := lferrors.NewSystemError(formatter.ErrFormatterNotFound, "Install latexindent")
//	os.Exit(lferrors.ExitCode(err))
package errors
