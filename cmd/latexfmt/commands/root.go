// Package commands implements the CLI commands for latexfmt.
package commands

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/latexfmt/cmd"
	"github.com/thoreinstein/latexfmt/internal/config"
	"github.com/thoreinstein/latexfmt/internal/errors"
	"github.com/thoreinstein/latexfmt/internal/logging"
)

// debugEnv raises the log level when no -v flag is given.
const debugEnv = "LATEXFMT_DEBUG"

// annotationConfig marks commands that run even when the config is invalid.
const annotationConfig = "latexfmt/config"

// verbosity holds the count of -v flags.
var verbosity int

// quiet holds the value of the -q/--quiet flag.
var quiet bool

// logFormat holds the value of the --log-format flag.
var logFormat string

// logFile holds the path to the log file.
var logFile string

// logLevel is the level chosen by setupLogging.
var logLevel = slog.LevelInfo

// configPath holds the value of the --config flag.
var configPath string

// loadedConfig and configLoadErr hold the result of loading the config.
var (
	loadedConfig  *config.Config
	configLoadErr error
)

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (e.g., -v, -vv)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"log format: text, json")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"write logs to file in JSON format")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"config file (default: ./config.yaml, then the latexfmt config directory)")

	rootCmd.Version = cmd.Version
	rootCmd.SetVersionTemplate("latexfmt version {{.Version}}\n")

	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

func initConfig() {
	config.Init()
	loadedConfig, configLoadErr = config.Load(configPath)
}

var rootCmd = &cobra.Command{
	Use:   "latexfmt",
	Short: "Format LaTeX documents with latexindent",
	Long: `latexfmt formats LaTeX sources by running latexindent and returning the
result as a single whole-document replacement.

It works as a command-line formatter and as a language server (latexfmt lsp)
that editors can use for textDocument/formatting. latexindent must be
installed; it ships with TeX Live and MiKTeX.`,
	Example: `  # Print a formatted file
  latexfmt format thesis.tex

  # Rewrite every LaTeX file under a directory
  latexfmt format -w chapters/

  # Check installation
  latexfmt doctor

  See Also: latexfmt lsp, latexfmt config`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if err := setupLogging(cmd); err != nil {
			return err
		}
		return checkConfig(cmd)
	},
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// setupLogging configures the default logger based on verbosity flags.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(errors.New("cannot use --quiet and --verbose together"), "")
	}

	var level slog.Level
	if quiet {
		level = slog.LevelError
	} else {
		v := verbosity
		if v == 0 {
			switch os.Getenv(debugEnv) {
			case "1", "true":
				v = 2
			case "2":
				v = 3
			}
		}
		level = logging.LevelFromVerbosity(v)
	}

	logLevel = level
	opts := &slog.HandlerOptions{Level: level}

	var primary slog.Handler
	switch logging.Format(logFormat) {
	case logging.FormatJSON:
		primary = slog.NewJSONHandler(cmd.ErrOrStderr(), opts)
	case logging.FormatText:
		primary = logging.NewHandler(cmd.ErrOrStderr(), opts)
	default:
		return errors.NewUserError(errors.Newf("unknown log format %q", logFormat), "use text or json")
	}

	handler := primary
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return errors.NewUserError(errors.Wrap(err, "opening log file"), "")
		}
		// File output uses JSON format
		handler = logging.NewMultiHandler(primary, slog.NewJSONHandler(f, opts))
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, logger))
	return nil
}

// checkConfig fails commands that need a valid config when loading failed.
func checkConfig(cmd *cobra.Command) error {
	if configLoadErr == nil {
		return nil
	}
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[annotationConfig] == "optional" {
			return nil
		}
	}
	if cmd.Name() == "help" {
		return nil
	}
	return errors.NewConfigError(configLoadErr)
}

// currentConfig returns the loaded config, or defaults when none loaded.
func currentConfig() *config.Config {
	if loadedConfig == nil {
		return config.Default()
	}
	return loadedConfig
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// PrintError writes err and any suggestion to w. ExitErrors without an
// underlying error only carry an exit code and print nothing.
func PrintError(w io.Writer, err error) {
	var exitErr *errors.ExitError
	if errors.As(err, &exitErr) {
		if exitErr.Err == nil {
			return
		}
		red := color.New(color.FgRed)
		red.Fprintf(w, "Error: %v\n", exitErr.Err)
		if exitErr.Suggestion != "" {
			color.New(color.FgYellow).Fprintf(w, "%s\n", exitErr.Suggestion)
		}
		return
	}
	color.New(color.FgRed).Fprintf(w, "Error: %v\n", err)
}
