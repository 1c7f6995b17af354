// Package formatter drives latexindent and turns its output into editor edits.
//
// An [Invoker] owns the name of the formatter executable. Before each run it
// checks the executable is on the search path using the platform's lookup
// command (which/where); when the bare name is missing it retries once with
// the platform suffix (.pl or .exe) and keeps the suffixed name from then on.
//
// The formatter is run as
//
//	latexindent -c <dir> <file> -y=defaultIndent: '<indent>'
//
// and its standard output becomes a single [TextEdit] replacing the whole
// document. Failures never produce edits: the invoker logs them, reports a
// short message through its [Notifier], and returns a classified error
// ([ErrFormatterNotFound], [ErrFormatFailed], or
// platform.ErrUnsupportedPlatform) for hosts that need an exit code.
//
// Invokers serialise their own calls, so one instance may be shared by the
// language server and the CLI code paths.
package formatter
