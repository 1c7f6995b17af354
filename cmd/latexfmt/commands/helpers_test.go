package commands

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/thoreinstein/latexfmt/internal/config"
	"github.com/thoreinstein/latexfmt/internal/formatter"
	"github.com/thoreinstein/latexfmt/internal/paths"
	"github.com/thoreinstein/latexfmt/internal/platform"
)

// fakeLatexindent stands in for which and latexindent. It strips trailing
// whitespace from every line of the file it is asked to format.
type fakeLatexindent struct {
	mu        sync.Mutex
	installed []string
	fail      bool
	calls     [][]string
}

func (f *fakeLatexindent) Run(_ context.Context, name string, args ...string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, append([]string{name}, args...))

	if name == "which" || name == "where" {
		for _, exe := range f.installed {
			if args[0] == exe {
				return "/usr/bin/" + exe + "\n", nil
			}
		}
		return "", errors.New("exit status 1")
	}

	if f.fail {
		return "", errors.New("exit status 255: unmatched braces")
	}
	data, err := os.ReadFile(args[2])
	if err != nil {
		return "", err
	}
	lines := strings.SplitAfter(string(data), "\n")
	for i, l := range lines {
		nl := strings.HasSuffix(l, "\n")
		lines[i] = strings.TrimRight(l, " \t\n")
		if nl {
			lines[i] += "\n"
		}
	}
	return strings.Join(lines, ""), nil
}

// formatCalls returns the argv of every latexindent run.
func (f *fakeLatexindent) formatCalls() [][]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out [][]string
	for _, c := range f.calls {
		if c[0] != "which" && c[0] != "where" {
			out = append(out, c)
		}
	}
	return out
}

// setupCommand isolates package state for one command run: a fresh working
// directory, config directory, fake formatter and default flag values.
func setupCommand(t *testing.T) (dir string, fake *fakeLatexindent) {
	t.Helper()

	dir = t.TempDir()
	t.Chdir(dir)
	t.Setenv(paths.ConfigDirEnv, filepath.Join(dir, "xdg"))
	t.Setenv(debugEnv, "")
	t.Setenv("NO_COLOR", "1")

	fake = &fakeLatexindent{installed: []string{"latexindent"}}

	origRunner, origPlatform := newRunner, hostPlatform
	origStdin, origStdout, origLogPath := lspStdin, lspStdout, lspLogPath
	origFind, origTerminal := findFile, stdinIsTerminal
	origDefault := slog.Default()
	t.Cleanup(func() {
		newRunner, hostPlatform = origRunner, origPlatform
		lspStdin, lspStdout, lspLogPath = origStdin, origStdout, origLogPath
		findFile, stdinIsTerminal = origFind, origTerminal
		slog.SetDefault(origDefault)
	})

	newRunner = func(*config.Config, *slog.Logger) formatter.Runner { return fake }
	hostPlatform = platform.Linux
	lspLogPath = func() string { return filepath.Join(dir, "cache", "lsp.log") }
	stdinIsTerminal = func() bool { return true }

	return dir, fake
}

// resetFlags restores every flag to its default so state from an earlier
// Execute does not leak into the next one.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// execute runs the root command with args and captures its output.
func execute(t *testing.T, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	resetFlags(rootCmd)
	var out, errOut bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err = rootCmd.ExecuteContext(t.Context())
	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}
