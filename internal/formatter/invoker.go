package formatter

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"

	"github.com/thoreinstein/latexfmt/internal/platform"
)

// DefaultExecutable is the canonical base name of the formatter.
const DefaultExecutable = "latexindent"

// LogArtifact is the file latexindent leaves next to the document it formats.
const LogArtifact = "indent.log"

// Sentinel errors returned by FormatDocument and RunFormatter.
var (
	// ErrFormatterNotFound indicates neither the bare nor the suffixed
	// executable name could be found on the search path.
	ErrFormatterNotFound = errors.New("formatter not found in PATH")

	// ErrFormatFailed indicates the formatter ran and failed.
	ErrFormatFailed = errors.New("formatting failed")
)

// User-visible messages.
const (
	msgNotFound    = "Can not find %s in PATH!"
	msgFailed      = "Formatting failed. Please refer to the latexfmt log for details."
	msgUnsupported = "Formatting is not supported on %s."
)

// Document is the file being formatted. latexindent reads Path from disk;
// Text is the content the host currently holds and is used to compute the
// replacement range.
type Document struct {
	Path string
	Text string
}

// Notifier shows short messages to the user.
type Notifier interface {
	ShowError(msg string)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(msg string)

// ShowError calls f.
func (f NotifierFunc) ShowError(msg string) { f(msg) }

type nopNotifier struct{}

func (nopNotifier) ShowError(string) {}

// Invoker locates latexindent and runs it on documents.
// Its methods are safe for concurrent use; calls are serialised.
type Invoker struct {
	mu sync.Mutex

	runner     Runner
	notifier   Notifier
	logger     *slog.Logger
	platformID string
	executable string
	cleanupLog bool
	removeFile func(string) error
	statFile   func(string) (os.FileInfo, error)
}

// Option configures an Invoker.
type Option func(*Invoker)

// WithNotifier sets the sink for user-visible messages.
func WithNotifier(n Notifier) Option {
	return func(i *Invoker) {
		if n != nil {
			i.notifier = n
		}
	}
}

// WithLogger sets the logger. The default discards output.
func WithLogger(l *slog.Logger) Option {
	return func(i *Invoker) {
		if l != nil {
			i.logger = l
		}
	}
}

// WithPlatform overrides the host operating system identifier, which
// otherwise comes from runtime.GOOS.
func WithPlatform(id string) Option {
	return func(i *Invoker) { i.platformID = id }
}

// WithExecutable sets the formatter's base name or path.
func WithExecutable(name string) Option {
	return func(i *Invoker) {
		if name != "" {
			i.executable = name
		}
	}
}

// WithCleanup controls removal of the indent.log artifact after a
// successful run. Enabled by default.
func WithCleanup(enabled bool) Option {
	return func(i *Invoker) { i.cleanupLog = enabled }
}

// New returns an Invoker that runs commands through runner.
func New(runner Runner, opts ...Option) *Invoker {
	i := &Invoker{
		runner:     runner,
		notifier:   nopNotifier{},
		logger:     slog.New(slog.DiscardHandler),
		platformID: runtime.GOOS,
		executable: DefaultExecutable,
		cleanupLog: true,
		removeFile: os.Remove,
		statFile:   os.Stat,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Executable returns the formatter name the next run will use. It may carry
// the platform suffix after a lookup found only the suffixed name.
func (i *Invoker) Executable() string {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.executable
}

// Platform resolves the invoker's host platform.
func (i *Invoker) Platform() (platform.Profile, error) {
	return platform.Resolve(i.platformID)
}

// IsExecutableAvailable reports whether the formatter can be found with
// lookupCommand. When the bare name yields no output the platform suffix is
// appended and the lookup is retried once; the suffixed name is kept for all
// later runs. An absolute executable path is checked on disk instead, since
// where(1) rejects full paths.
func (i *Invoker) IsExecutableAvailable(ctx context.Context, lookupCommand string) bool {
	i.mu.Lock()
	defer i.mu.Unlock()

	profile, err := i.Platform()
	if err != nil {
		i.logger.Debug("platform unresolved, lookup without suffix", "platform", i.platformID)
	}
	return i.isExecutableAvailable(ctx, profile, lookupCommand)
}

func (i *Invoker) isExecutableAvailable(ctx context.Context, profile platform.Profile, lookupCommand string) bool {
	check := func() bool { return i.lookup(ctx, lookupCommand) }
	if absolutePath(profile, i.executable) {
		check = func() bool { return i.stat(profile) }
	}

	if check() {
		return true
	}

	suffixed := profile.Executable(i.executable)
	if suffixed == i.executable {
		return false
	}
	i.logger.Debug("formatter not found, retrying with suffix",
		"executable", i.executable, "suffix", profile.ExecutableSuffix)
	i.executable = suffixed

	return check()
}

// lookup runs "<lookupCommand> <executable>". Only the presence of output
// matters; the exit status is ignored.
func (i *Invoker) lookup(ctx context.Context, lookupCommand string) bool {
	out, err := i.runner.Run(ctx, lookupCommand, i.executable)
	found := strings.TrimSpace(out) != ""
	i.logger.Debug("formatter lookup",
		"command", lookupCommand, "executable", i.executable, "found", found, "error", err)
	return found
}

// stat reports whether the absolute executable path is a regular file that
// can be run. Windows has no execute bit.
func (i *Invoker) stat(profile platform.Profile) bool {
	info, err := i.statFile(i.executable)
	found := err == nil && info.Mode().IsRegular() &&
		(profile.ID == platform.Windows || info.Mode().Perm()&0o111 != 0)
	i.logger.Debug("formatter stat", "executable", i.executable, "found", found, "error", err)
	return found
}

// absolutePath reports whether name is absolute on the profile's operating
// system, whatever the host running the check.
func absolutePath(profile platform.Profile, name string) bool {
	if profile.ID != platform.Windows {
		return strings.HasPrefix(name, "/") || filepath.IsAbs(name)
	}
	// \\server\share or C:\dir
	if strings.HasPrefix(name, `\\`) || strings.HasPrefix(name, "//") {
		return true
	}
	return len(name) >= 3 && name[1] == ':' && (name[2] == '\\' || name[2] == '/')
}

// FormatDocument resolves the platform, checks the formatter is reachable and
// formats doc. On any failure it returns no edits together with an error
// matching platform.ErrUnsupportedPlatform, ErrFormatterNotFound or
// ErrFormatFailed under errors.Is. Empty formatter output yields no edits and no error.
func (i *Invoker) FormatDocument(ctx context.Context, doc Document, opts Options) ([]TextEdit, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	profile, err := i.Platform()
	if err != nil {
		i.logger.Error("cannot format on this platform", "platform", i.platformID)
		i.notifier.ShowError(fmt.Sprintf(msgUnsupported, i.platformID))
		return nil, err
	}

	if !i.isExecutableAvailable(ctx, profile, profile.LookupCommand) {
		msg := fmt.Sprintf(msgNotFound, displayName(i.executable, profile))
		i.logger.Error(msg)
		i.notifier.ShowError(msg)
		return nil, errors.Wrapf(ErrFormatterNotFound, "%s", i.executable)
	}

	return i.runFormatter(ctx, doc, opts)
}

// RunFormatter runs the formatter on doc without the availability check.
func (i *Invoker) RunFormatter(ctx context.Context, doc Document, opts Options) ([]TextEdit, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.runFormatter(ctx, doc, opts)
}

func (i *Invoker) runFormatter(ctx context.Context, doc Document, opts Options) ([]TextEdit, error) {
	path, err := filepath.Abs(doc.Path)
	if err != nil {
		path = doc.Path
	}
	dir := filepath.Dir(path)

	stdout, err := i.runner.Run(ctx, i.executable, Args(dir, path, opts.IndentString())...)
	if err != nil {
		i.logger.Error("Formatting failed", "file", path, "error", err)
		i.notifier.ShowError(msgFailed)
		return nil, errors.Wrapf(errors.Mark(err, ErrFormatFailed), "formatting %s", path)
	}

	if stdout == "" {
		i.logger.Debug("formatter produced no output", "file", path)
		return nil, nil
	}

	edits := []TextEdit{{
		Range:   FullRange(doc.Text),
		NewText: stdout,
	}}

	if i.cleanupLog {
		_ = i.removeFile(filepath.Join(dir, LogArtifact))
	}

	i.logger.Info("Formatted "+path, "bytes", len(stdout))
	return edits, nil
}

// Args builds the latexindent argument list:
//
//	-c <dir> <path> -y=defaultIndent: '<indent>'
//
// -c points latexindent's cruft directory (where indent.log goes) at the
// document's directory.
func Args(dir, path, indent string) []string {
	return []string{
		"-c", dir,
		path,
		"-y=defaultIndent: '" + indent + "'",
	}
}

// displayName strips any platform suffix so messages name the tool the user
// would install.
func displayName(executable string, profile platform.Profile) string {
	base := executable
	if n := strings.LastIndexAny(base, `/\`); n >= 0 {
		base = base[n+1:]
	}
	if profile.ExecutableSuffix != "" {
		base = strings.TrimSuffix(base, profile.ExecutableSuffix)
	}
	return base
}
