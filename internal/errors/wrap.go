package errors

import "github.com/cockroachdb/errors"

// Thin re-exports so command code can import a single errors package.

// New returns an error with the given message and a stack trace.
func New(msg string) error { return errors.New(msg) }

// Newf formats an error message and attaches a stack trace.
func Newf(format string, args ...any) error { return errors.Newf(format, args...) }

// Wrap annotates err with msg. It returns nil if err is nil.
func Wrap(err error, msg string) error { return errors.Wrap(err, msg) }

// Wrapf annotates err with a formatted message. It returns nil if err is nil.
func Wrapf(err error, format string, args ...any) error {
	return errors.Wrapf(err, format, args...)
}

// Mark returns err unchanged in message but matching reference under Is.
func Mark(err, reference error) error { return errors.Mark(err, reference) }

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool { return errors.Is(err, target) }

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool { return errors.As(err, target) }
