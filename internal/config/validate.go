package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

// MaxTabSize bounds indent.tab_size.
const MaxTabSize = 16

// Validation errors for configuration fields.
var (
	// ErrUnsupportedVersion indicates an unknown schema version.
	ErrUnsupportedVersion = errors.New("unsupported config version")

	// ErrInvalidExecutable indicates formatter.executable is empty or malformed.
	ErrInvalidExecutable = errors.New("invalid formatter executable")

	// ErrInvalidTabSize indicates indent.tab_size is out of range.
	ErrInvalidTabSize = errors.New("invalid tab size")

	// ErrInvalidTimeout indicates formatter.timeout is negative.
	ErrInvalidTimeout = errors.New("invalid timeout")
)

// FieldError reports a problem with one configuration key.
type FieldError struct {
	Key   string
	Value any
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %v (%s)", e.Err, e.Value, e.Key)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// Validate checks a Config for validity.
// Returns nil if valid, or a slice of validation errors.
func Validate(cfg *Config) []error {
	if cfg == nil {
		return []error{errors.New("config is nil")}
	}

	var errs []error

	if cfg.Version != CurrentVersion {
		errs = append(errs, &FieldError{Key: KeyVersion, Value: cfg.Version, Err: ErrUnsupportedVersion})
	}

	if err := validateExecutable(cfg.Formatter.Executable); err != nil {
		errs = append(errs, &FieldError{Key: KeyExecutable, Value: cfg.Formatter.Executable, Err: err})
	}

	if cfg.Formatter.Timeout < 0 {
		errs = append(errs, &FieldError{Key: KeyTimeout, Value: cfg.Formatter.Timeout, Err: ErrInvalidTimeout})
	}

	if cfg.Indent.TabSize < 1 || cfg.Indent.TabSize > MaxTabSize {
		errs = append(errs, &FieldError{Key: KeyTabSize, Value: cfg.Indent.TabSize, Err: ErrInvalidTabSize})
	}

	return errs
}

// validateExecutable accepts a bare name for PATH lookup or an absolute path.
// Relative paths with separators would be resolved against whatever
// directory the editor happens to start in.
func validateExecutable(name string) error {
	if strings.TrimSpace(name) == "" || strings.ContainsRune(name, '\x00') {
		return ErrInvalidExecutable
	}
	if strings.ContainsAny(name, `/\`) && !filepath.IsAbs(name) {
		return ErrInvalidExecutable
	}
	return nil
}

func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
