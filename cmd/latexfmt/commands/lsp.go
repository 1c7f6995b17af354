package commands

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/latexfmt/cmd"
	"github.com/thoreinstein/latexfmt/internal/errors"
	"github.com/thoreinstein/latexfmt/internal/logging"
	"github.com/thoreinstein/latexfmt/internal/lsp"
	"github.com/thoreinstein/latexfmt/internal/paths"
)

// lspStdin and lspStdout are the protocol streams. Tests replace them.
var (
	lspStdin  io.Reader = os.Stdin
	lspStdout io.Writer = os.Stdout

	// lspLogPath is the log written when --log-file is not given.
	lspLogPath = paths.LogFile
)

func init() {
	rootCmd.AddCommand(lspCmd)
}

var lspCmd = &cobra.Command{
	Use:   "lsp",
	Short: "Run the language server on stdin/stdout",
	Long: `Run a Language Server Protocol server that provides whole-document
formatting for LaTeX files.

The server speaks JSON-RPC over stdin and stdout. Logs go to stderr and to
the file given with --log-file (default: lsp.log in the latexfmt cache
directory). Modified buffers are saved before formatting
unless lsp.save_before_format is false, because latexindent reads the file
from disk.`,
	Example: `  # Neovim (nvim-lspconfig style)
  cmd = { "latexfmt", "lsp" }

  # Log protocol traffic
  latexfmt lsp -vvv --log-file /tmp/latexfmt.log

  See Also: latexfmt format, latexfmt doctor`,
	Args: cobra.NoArgs,
	RunE: runLSP,
}

func runLSP(c *cobra.Command, _ []string) error {
	cfg := currentConfig()
	ctx := c.Context()

	if logFile == "" {
		f, err := openLSPLog()
		if err != nil {
			logging.FromContext(ctx).Warn("lsp log unavailable", "error", err)
		} else {
			defer f.Close()
			logger := logging.FromContext(ctx)
			logger = slog.New(logging.NewMultiHandler(
				logger.Handler(),
				slog.NewJSONHandler(f, &slog.HandlerOptions{Level: logLevel}),
			))
			ctx = logging.NewContext(ctx, logger)
		}
	}

	srv := lsp.NewServer(lspStdin, lspStdout,
		lsp.WithLogger(logging.FromContext(ctx)),
		lsp.WithServerInfo("latexfmt", cmd.Version),
		lsp.WithSaveBeforeFormat(cfg.LSP.SaveBeforeFormat),
		lsp.WithDefaultOptions(cfg.FormatterOptions()),
	)
	srv.SetFormatter(newInvoker(ctx, cfg, srv))

	if err := srv.Run(ctx); err != nil {
		if errors.Is(err, lsp.ErrExitWithoutShutdown) {
			return errors.NewExitError(nil, errors.ExitUser)
		}
		return errors.NewSystemError(err, "")
	}
	return nil
}

func openLSPLog() (*os.File, error) {
	path := lspLogPath()
	if err := paths.EnsureDir(filepath.Dir(path), 0); err != nil {
		return nil, errors.Wrap(err, "creating log directory")
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, errors.Wrap(err, "opening lsp log")
	}
	return f, nil
}
