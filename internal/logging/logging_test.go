package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelInfo, Format: FormatJSON, Output: &buf})

	logger.Info("formatted", "file", "main.tex")

	var parsed map[string]any
	if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatalf("output is not valid JSON: %v\noutput: %s", err, buf.String())
	}
	if parsed["msg"] != "formatted" {
		t.Errorf("msg = %v, want %q", parsed["msg"], "formatted")
	}
	if parsed["file"] != "main.tex" {
		t.Errorf("file = %v, want %q", parsed["file"], "main.tex")
	}
}

func TestNew_UnknownFormatDefaultsToText(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelInfo, Format: Format("xml"), Output: &buf})

	logger.Info("hello", "key", "value")

	out := buf.String()
	if json.Valid(buf.Bytes()) {
		t.Errorf("unknown format should default to text, got JSON: %s", out)
	}
	if !strings.Contains(out, "INFO") || !strings.Contains(out, "key=value") {
		t.Errorf("unexpected text output: %q", out)
	}
}

func TestHandler_Handle(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	now := time.Now()
	logger.Info("Formatted /tmp/main.tex", "bytes", 42)

	out := buf.String()
	for _, want := range []string{"INFO", "Formatted /tmp/main.tex", "bytes=42", now.Format(time.Kitchen)} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
	if !strings.HasSuffix(out, "\n") {
		t.Errorf("output should end with newline: %q", out)
	}
}

func TestHandler_NoTime(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(&buf, nil)

	r := slog.NewRecord(time.Time{}, slog.LevelWarn, "no time", 0)
	if err := h.Handle(t.Context(), r); err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if got := buf.String(); !strings.HasPrefix(got, "WARN ") {
		t.Errorf("expected line to start with level, got %q", got)
	}
}

func TestHandler_WithAttrsAndGroup(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, nil)).
		With("component", "lsp").
		WithGroup("req")

	logger.Info("handling", "method", "textDocument/formatting", slog.Group("opts", "tabSize", 2))

	out := buf.String()
	for _, want := range []string{"component=lsp", "req.method=textDocument/formatting", "req.opts.tabSize=2"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}

func TestHandler_TraceLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, &slog.HandlerOptions{Level: LevelTrace}))

	logger.Log(t.Context(), LevelTrace, "argv", "cmd", "which latexindent")

	if !strings.Contains(buf.String(), "TRACE") {
		t.Errorf("expected TRACE level, got %q", buf.String())
	}
}

func TestHandler_Enabled(t *testing.T) {
	h := NewHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelWarn})

	ctx := t.Context()
	if h.Enabled(ctx, slog.LevelInfo) {
		t.Error("Info should be disabled when min level is Warn")
	}
	if !h.Enabled(ctx, slog.LevelError) {
		t.Error("Error should be enabled when min level is Warn")
	}
}

func TestLevelFromVerbosity(t *testing.T) {
	tests := []struct {
		v    int
		want slog.Level
	}{
		{0, slog.LevelInfo},
		{1, slog.LevelInfo},
		{2, slog.LevelDebug},
		{3, LevelTrace},
		{7, LevelTrace},
	}
	for _, tt := range tests {
		if got := LevelFromVerbosity(tt.v); got != tt.want {
			t.Errorf("LevelFromVerbosity(%d) = %v, want %v", tt.v, got, tt.want)
		}
	}
}

func TestContext(t *testing.T) {
	if FromContext(t.Context()) != slog.Default() {
		t.Error("FromContext without logger should return slog.Default()")
	}

	logger := NewDiscard()
	ctx := NewContext(t.Context(), logger)
	if FromContext(ctx) != logger {
		t.Error("FromContext should return the stored logger")
	}
}

func TestMultiHandler(t *testing.T) {
	var text, js bytes.Buffer
	h := NewMultiHandler(
		NewHandler(&text, &slog.HandlerOptions{Level: slog.LevelWarn}),
		slog.NewJSONHandler(&js, &slog.HandlerOptions{Level: slog.LevelDebug}),
	)
	logger := slog.New(h).With("run", 1)

	logger.Debug("only json")
	logger.Warn("both")

	if strings.Contains(text.String(), "only json") {
		t.Error("text handler should have filtered the debug record")
	}
	if !strings.Contains(text.String(), "both") {
		t.Error("text handler should have received the warn record")
	}
	if got := strings.Count(js.String(), "\n"); got != 2 {
		t.Errorf("json handler received %d records, want 2", got)
	}
	if !strings.Contains(js.String(), `"run":1`) {
		t.Errorf("json output missing attrs from With: %s", js.String())
	}
	if !h.Enabled(t.Context(), slog.LevelDebug) {
		t.Error("MultiHandler should be enabled when any handler is")
	}
}

func TestForTest(t *testing.T) {
	logger := ForTest(t)
	logger.Debug("visible with -v")
}
