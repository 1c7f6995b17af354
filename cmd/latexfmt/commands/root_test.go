package commands

import (
	"bytes"
	"errors"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/latexfmt/cmd"
	apperrors "github.com/thoreinstein/latexfmt/internal/errors"
	"github.com/thoreinstein/latexfmt/internal/logging"
)

func TestSetupLogging_Levels(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		env       string
		wantLevel slog.Level
	}{
		{"default", nil, "", slog.LevelInfo},
		{"-vv", []string{"-vv"}, "", slog.LevelDebug},
		{"-vvv", []string{"-vvv"}, "", logging.LevelTrace},
		{"quiet", []string{"-q"}, "", slog.LevelError},
		{"env 1", nil, "1", slog.LevelDebug},
		{"env true", nil, "true", slog.LevelDebug},
		{"env 2", nil, "2", logging.LevelTrace},
		{"env unknown", nil, "yes", slog.LevelInfo},
		{"flag beats env", []string{"-v"}, "2", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupCommand(t)
			t.Setenv(debugEnv, tt.env)

			_, _, err := execute(t, "", append(tt.args, "version")...)
			require.NoError(t, err)

			logger := slog.Default()
			assert.True(t, logger.Enabled(t.Context(), tt.wantLevel), "level %v should be enabled", tt.wantLevel)
			assert.False(t, logger.Enabled(t.Context(), tt.wantLevel-1), "level %v should be disabled", tt.wantLevel-1)
			assert.Equal(t, tt.wantLevel, logLevel)
		})
	}
}

func TestSetupLogging_QuietAndVerbose(t *testing.T) {
	setupCommand(t)
	_, _, err := execute(t, "", "-q", "-v", "version")
	require.Error(t, err)
	assert.Equal(t, apperrors.ExitUser, apperrors.ExitCode(err))
}

func TestSetupLogging_UnknownFormat(t *testing.T) {
	setupCommand(t)
	_, _, err := execute(t, "", "--log-format", "xml", "version")
	assert.Error(t, err)
}

func TestSetupLogging_LogFile(t *testing.T) {
	dir, _ := setupCommand(t)
	logPath := filepath.Join(dir, "run.log")
	path := writeFile(t, filepath.Join(dir, "main.tex"), messy)

	_, stderr, err := execute(t, "", "--log-file", logPath, "format", path)
	require.NoError(t, err)
	assert.Contains(t, stderr, "Formatted")
	assert.Contains(t, readFile(t, logPath), `"msg":"Formatted `)
}

func TestVersion(t *testing.T) {
	setupCommand(t)
	orig := cmd.Version
	cmd.Version = "1.4.0"
	t.Cleanup(func() { cmd.Version = orig })

	out, _, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "latexfmt version 1.4.0")
	assert.Contains(t, out, "commit:")
	assert.Contains(t, out, "built:")
}

func TestPrintError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want []string
		none bool
	}{
		{"plain", errors.New("boom"), []string{"Error: boom"}, false},
		{"with suggestion", apperrors.NewConfigError(errors.New("bad tab size")), []string{"Error: bad tab size", "Run: latexfmt doctor"}, false},
		{"silent exit", apperrors.NewExitError(nil, apperrors.ExitUser), nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b bytes.Buffer
			PrintError(&b, tt.err)
			if tt.none {
				assert.Empty(t, b.String())
				return
			}
			for _, w := range tt.want {
				assert.Contains(t, b.String(), w)
			}
		})
	}
}
