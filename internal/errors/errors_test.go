package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestExitError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ExitError
		want string
	}{
		{
			name: "with underlying error",
			err:  NewExitError(ErrNoInput, ExitUser),
			want: "no input files",
		},
		{
			name: "with wrapped error",
			err:  NewExitError(fmt.Errorf("loading config: %w", ErrInvalidConfig), ExitUser),
			want: "loading config: invalid configuration",
		},
		{
			name: "nil underlying error",
			err:  NewExitError(nil, ExitSystem),
			want: "exit code 2",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("ExitError.Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExitError_Unwrap(t *testing.T) {
	err := NewSystemError(fmt.Errorf("formatting: %w", ErrNoInput), "pass a file")
	if !errors.Is(err, ErrNoInput) {
		t.Error("errors.Is() should find sentinel through ExitError")
	}
	if errors.Is(err, ErrInvalidConfig) {
		t.Error("errors.Is() matched an unrelated sentinel")
	}
	if NewExitError(nil, ExitUser).Unwrap() != nil {
		t.Error("Unwrap() of nil error should be nil")
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name           string
		err            *ExitError
		wantCode       int
		wantSuggestion string
	}{
		{"user", NewUserError(ErrNoInput, "pass a file"), ExitUser, "pass a file"},
		{"system", NewSystemError(New("latexindent not found"), "install it"), ExitSystem, "install it"},
		{"config", NewConfigError(ErrInvalidConfig), ExitUser, "Run: latexfmt doctor"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.wantCode {
				t.Errorf("Code = %d, want %d", tt.err.Code, tt.wantCode)
			}
			if tt.err.Suggestion != tt.wantSuggestion {
				t.Errorf("Suggestion = %q, want %q", tt.err.Suggestion, tt.wantSuggestion)
			}
		})
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"plain error", errors.New("boom"), ExitUser},
		{"exit error", NewSystemError(ErrNoInput, ""), ExitSystem},
		{"wrapped exit error", Wrap(NewSystemError(ErrNoInput, ""), "running"), ExitSystem},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMark(t *testing.T) {
	cause := New("indent.tab_size: out of range")
	err := Wrap(Mark(cause, ErrInvalidConfig), "validating config")

	if got := err.Error(); got != "validating config: indent.tab_size: out of range" {
		t.Errorf("message = %q, mark must not change it", got)
	}
	if !Is(err, ErrInvalidConfig) {
		t.Error("Is() should match the mark")
	}
	if !Is(err, cause) {
		t.Error("Is() should still match the cause")
	}
	if Is(cause, ErrInvalidConfig) {
		t.Error("Mark() must not change the original error")
	}
}

func TestWrap(t *testing.T) {
	if Wrap(nil, "context") != nil {
		t.Error("Wrap(nil) should return nil")
	}

	err := Wrapf(ErrNoInput, "opening %s", "main.tex")
	if got := err.Error(); got != "opening main.tex: no input files" {
		t.Errorf("Wrapf() = %q", got)
	}
	if !Is(err, ErrNoInput) {
		t.Error("Is() should see through Wrapf")
	}

	var exitErr *ExitError
	if !As(Wrap(NewUserError(ErrNoInput, ""), "ctx"), &exitErr) {
		t.Fatal("As() should find ExitError")
	}
	if exitErr.Code != ExitUser {
		t.Errorf("Code = %d, want %d", exitErr.Code, ExitUser)
	}
}
