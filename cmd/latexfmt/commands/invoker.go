package commands

import (
	"context"
	"io"
	"log/slog"
	"runtime"

	"github.com/fatih/color"

	"github.com/thoreinstein/latexfmt/internal/config"
	"github.com/thoreinstein/latexfmt/internal/formatter"
	"github.com/thoreinstein/latexfmt/internal/logging"
)

// hostPlatform is the OS identifier used to pick a platform profile.
// Tests replace it.
var hostPlatform = runtime.GOOS

// newRunner builds the subprocess runner. Tests replace it.
var newRunner = func(cfg *config.Config, logger *slog.Logger) formatter.Runner {
	return &formatter.ExecRunner{
		Timeout: cfg.Formatter.Timeout,
		Logger:  logger,
	}
}

// newInvoker wires an Invoker from the config and the logger in ctx.
func newInvoker(ctx context.Context, cfg *config.Config, n formatter.Notifier) *formatter.Invoker {
	logger := logging.FromContext(ctx)
	return formatter.New(newRunner(cfg, logger),
		formatter.WithNotifier(n),
		formatter.WithLogger(logger),
		formatter.WithPlatform(hostPlatform),
		formatter.WithExecutable(cfg.Formatter.Executable),
		formatter.WithCleanup(cfg.Formatter.CleanupLog),
	)
}

// newStderrNotifier prints user-visible formatter messages in red.
func newStderrNotifier(w io.Writer) formatter.Notifier {
	red := color.New(color.FgRed)
	return formatter.NotifierFunc(func(msg string) {
		red.Fprintln(w, msg)
	})
}
