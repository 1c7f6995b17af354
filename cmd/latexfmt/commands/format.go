package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/latexfmt/internal/config"
	"github.com/thoreinstein/latexfmt/internal/errors"
	"github.com/thoreinstein/latexfmt/internal/formatter"
	"github.com/thoreinstein/latexfmt/internal/logging"
	"github.com/thoreinstein/latexfmt/internal/platform"
	"github.com/thoreinstein/latexfmt/internal/prompt"
	"github.com/thoreinstein/latexfmt/internal/texfile"
	"github.com/thoreinstein/latexfmt/pkg/fileutil"
)

var (
	formatWrite       bool
	formatDiff        bool
	formatCheck       bool
	formatInteractive bool
	formatTabSize     int
	formatUseTabs     bool
)

func init() {
	formatCmd.Flags().BoolVarP(&formatWrite, "write", "w", false,
		"write result to the source file instead of stdout")
	formatCmd.Flags().BoolVarP(&formatDiff, "diff", "d", false,
		"print a unified diff instead of the formatted text")
	formatCmd.Flags().BoolVar(&formatCheck, "check", false,
		"list files that would change and exit 1 if any")
	formatCmd.Flags().BoolVarP(&formatInteractive, "interactive", "i", false,
		"pick one file with a fuzzy finder")
	formatCmd.Flags().IntVar(&formatTabSize, "tab-size", 0,
		"spaces per indent level (overrides indent.tab_size)")
	formatCmd.Flags().BoolVar(&formatUseTabs, "use-tabs", false,
		"indent with a tab character (overrides indent.insert_spaces)")
	formatCmd.MarkFlagsMutuallyExclusive("write", "diff", "check")
	rootCmd.AddCommand(formatCmd)
}

var formatCmd = &cobra.Command{
	Use:   "format [paths...]",
	Short: "Format LaTeX files",
	Long: `Format LaTeX files with latexindent.

Arguments may be .tex, .sty, .cls, .dtx or .ltx files, or directories that
are searched recursively (hidden directories are skipped).

Output modes (mutually exclusive):
  (default)   Print the formatted text to stdout
  --write     Rewrite files in place
  --diff      Print a unified diff
  --check     List files that would change; exit 1 if any`,
	Example: `  # Print the formatted document
  latexfmt format main.tex

  # Format a whole project in place with two-space indents
  latexfmt format -w --tab-size 2 .

  # CI check
  latexfmt format --check .

  # Pick a file interactively and show the diff
  latexfmt format -i -d

  See Also: latexfmt lsp, latexfmt doctor`,
	RunE: runFormat,
}

// stdinIsTerminal decides between the fuzzy finder and the numbered
// prompt. Tests replace it.
var stdinIsTerminal = func() bool { return logging.IsTTY(os.Stdin) }

// findFile is the interactive picker. Tests replace it.
var findFile = func(files []string) (int, error) {
	return fuzzyfinder.Find(
		files,
		func(i int) string { return files[i] },
		fuzzyfinder.WithPromptString("tex> "),
		fuzzyfinder.WithPreviewWindow(func(i, _, h int) string {
			if i == -1 {
				return ""
			}
			return texfile.Head(files[i], h)
		}),
	)
}

func runFormat(cmd *cobra.Command, args []string) error {
	cfg := currentConfig()
	opts, err := formatOptions(cmd, cfg)
	if err != nil {
		return err
	}

	files, err := formatInputs(cmd, args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return errors.NewUserError(errors.ErrNoInput, "pass .tex files or directories, or use --interactive")
	}

	out := cmd.OutOrStdout()
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)
	inv := newInvoker(ctx, cfg, newStderrNotifier(cmd.ErrOrStderr()))

	var failed, changed int
	for _, path := range files {
		data, err := fileutil.ReadFileWithLimit(path)
		if err != nil {
			logger.Error("reading file", "path", path, "error", err)
			failed++
			continue
		}
		text := string(data)

		edits, err := inv.FormatDocument(ctx, formatter.Document{Path: path, Text: text}, opts)
		if err != nil {
			if errors.Is(err, formatter.ErrFormatterNotFound) || errors.Is(err, platform.ErrUnsupportedPlatform) {
				return errors.NewSystemError(err, "Run: latexfmt doctor")
			}
			failed++
			continue
		}

		formatted, err := formatter.Apply(text, edits)
		if err != nil {
			return errors.NewSystemError(errors.Wrapf(err, "applying edits to %s", path), "")
		}

		if err := emit(out, path, text, formatted, len(files) > 1); err != nil {
			return err
		}
		if formatted != text {
			changed++
		}
	}

	if failed > 0 {
		return errors.NewSystemError(
			errors.Newf("%d of %d file(s) failed to format", failed, len(files)),
			"Re-run with -vv to see latexindent's output")
	}
	if formatCheck && changed > 0 {
		return errors.NewExitError(nil, errors.ExitUser)
	}
	return nil
}

// formatOptions merges indentation flags over the config.
func formatOptions(cmd *cobra.Command, cfg *config.Config) (formatter.Options, error) {
	opts := cfg.FormatterOptions()
	if cmd.Flags().Changed("tab-size") {
		if formatTabSize < 1 || formatTabSize > config.MaxTabSize {
			return opts, errors.NewUserError(
				errors.Newf("--tab-size must be between 1 and %d", config.MaxTabSize), "")
		}
		opts.TabSize = formatTabSize
		opts.InsertSpaces = true
	}
	if formatUseTabs {
		opts.InsertSpaces = false
	}
	return opts, nil
}

// formatInputs expands the arguments into LaTeX files, or asks the user to
// pick one when --interactive is set.
func formatInputs(cmd *cobra.Command, args []string) ([]string, error) {
	if !formatInteractive {
		if len(args) == 0 {
			return nil, nil
		}
		files, err := texfile.FindAll(args)
		if err != nil {
			return nil, errors.NewUserError(err, "")
		}
		return files, nil
	}

	roots := args
	if len(roots) == 0 {
		roots = []string{"."}
	}
	candidates, err := texfile.FindAll(roots)
	if err != nil {
		return nil, errors.NewUserError(err, "")
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	if !stdinIsTerminal() {
		idx, err := prompt.NewSelector(cmd.InOrStdin(), cmd.ErrOrStderr()).Select("LaTeX files", candidates)
		if err != nil {
			if errors.Is(err, prompt.ErrSelectionCancelled) {
				return nil, errors.NewExitError(nil, errors.ExitUser)
			}
			return nil, errors.NewUserError(err, "enter a number from the list")
		}
		return []string{candidates[idx]}, nil
	}

	idx, err := findFile(candidates)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return nil, errors.NewExitError(nil, errors.ExitUser)
		}
		return nil, errors.Wrap(err, "file picker failed")
	}
	return []string{candidates[idx]}, nil
}

// emit writes one file's result in the selected output mode.
func emit(out io.Writer, path, original, formatted string, many bool) error {
	switch {
	case formatWrite:
		if formatted == original {
			return nil
		}
		if err := fileutil.ReplaceFile(path, []byte(formatted)); err != nil {
			return errors.NewSystemError(errors.Wrapf(err, "writing %s", path), "")
		}
		fmt.Fprintln(out, path)
	case formatCheck:
		if formatted != original {
			fmt.Fprintln(out, path)
		}
	case formatDiff:
		if formatted == original {
			return nil
		}
		diff, err := unifiedDiff(path, original, formatted)
		if err != nil {
			return errors.Wrapf(err, "diffing %s", path)
		}
		writeDiff(out, diff)
	default:
		if many {
			fmt.Fprintf(out, "%% ==> %s <==\n", path)
		}
		io.WriteString(out, formatted)
	}
	return nil
}

func unifiedDiff(path, a, b string) (string, error) {
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(a),
		B:        difflib.SplitLines(b),
		FromFile: path,
		ToFile:   path + " (formatted)",
		Context:  3,
	})
}

// writeDiff colours added and removed lines when out is a colour terminal.
func writeDiff(out io.Writer, diff string) {
	if !logging.SupportsColor(out) {
		io.WriteString(out, diff)
		return
	}
	add := color.New(color.FgGreen)
	del := color.New(color.FgRed)
	hunk := color.New(color.FgCyan)
	for _, line := range strings.SplitAfter(diff, "\n") {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			io.WriteString(out, line)
		case strings.HasPrefix(line, "+"):
			add.Fprint(out, line)
		case strings.HasPrefix(line, "-"):
			del.Fprint(out, line)
		case strings.HasPrefix(line, "@@"):
			hunk.Fprint(out, line)
		default:
			io.WriteString(out, line)
		}
	}
}
