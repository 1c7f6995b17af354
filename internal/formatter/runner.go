package formatter

import (
	"bytes"
	"context"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/thoreinstein/latexfmt/internal/logging"
)

// Runner executes a program and returns its standard output.
// A non-nil error means the program could not be started, exited non-zero,
// or was cancelled; stdout may still hold partial output.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (stdout string, err error)
}

// RunnerFunc adapts a function to the Runner interface.
type RunnerFunc func(ctx context.Context, name string, args ...string) (string, error)

// Run calls f.
func (f RunnerFunc) Run(ctx context.Context, name string, args ...string) (string, error) {
	return f(ctx, name, args...)
}

// execCommand is swapped in tests.
var execCommand = exec.CommandContext

// ExecRunner runs programs with os/exec. Arguments are passed directly as
// argv, never through a shell, so paths with spaces or quotes are safe.
type ExecRunner struct {
	// Timeout bounds each run. Zero means no limit.
	Timeout time.Duration

	// Dir is the working directory. Empty means the current directory.
	Dir string

	// Logger receives trace records of each command line.
	Logger *slog.Logger
}

var _ Runner = (*ExecRunner)(nil)

// Run executes name with args and captures stdout and stderr.
// On failure the returned error includes the trimmed stderr text.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	cmd := execCommand(ctx, name, args...)
	cmd.Dir = r.Dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if r.Logger != nil {
		r.Logger.Log(ctx, logging.LevelTrace, "exec", "cmd", name, "args", args)
	}

	err := cmd.Run()
	if err == nil {
		return stdout.String(), nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		if errors.Is(ctxErr, context.DeadlineExceeded) {
			return stdout.String(), errors.Wrapf(ctxErr, "%s timed out after %s", name, r.Timeout)
		}
		return stdout.String(), errors.Wrapf(ctxErr, "%s cancelled", name)
	}

	if msg := strings.TrimSpace(stderr.String()); msg != "" {
		return stdout.String(), errors.Wrapf(err, "%s: %s", name, msg)
	}
	return stdout.String(), errors.Wrap(err, name)
}
