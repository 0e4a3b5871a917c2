// Package xnberr collects the error kinds used throughout xnb.
//
// Errors are grouped into two wrappers, mirroring the distinction between
// a bad stream and a bad file: IOError wraps failures reading from the
// underlying io.ReadSeeker, and Error wraps failures in the data itself -
// a header that isn't XNB, a manifest entry with no matching reader, a
// type ID outside the manifest's range. Both wrappers carry one of the
// sentinel errors below plus the calling function's name, and both
// support errors.Is/errors.As through Unwrap.
package xnberr

import (
	"errors"
	"runtime"
)

// Sentinel error kinds. Compare against these with errors.Is, never by
// string contents.
var (
	// ErrIO is the kind of every IOError: the underlying reader failed or
	// ran out of data before a value finished decoding.
	ErrIO = errors.New("io error")

	// ErrNotXnb is returned when the first three header bytes aren't the
	// XNB magic.
	ErrNotXnb = errors.New("not an xnb file")

	// ErrTruncated is returned when the header's declared size is larger
	// than the source.
	ErrTruncated = errors.New("truncated data")

	// ErrCompressedUnsupported is returned when the header's compressed
	// flag bit is set. Decompression is out of scope.
	ErrCompressedUnsupported = errors.New("compressed xnb is unsupported")

	// ErrUnknownReader is returned when a manifest entry names a reader
	// with no registered match, and the name isn't a specialization of any
	// registered generic reader either.
	ErrUnknownReader = errors.New("unknown type reader")

	// ErrUnknownTargetType is returned when no registered reader's target
	// type matches a requested type name.
	ErrUnknownTargetType = errors.New("unknown target type")

	// ErrBadTypeId is returned when an object's type ID is zero for a
	// non-nullable slot, outside the manifest's range, or selects a reader
	// of a different target type than a pre-tagged field requires.
	ErrBadTypeId = errors.New("bad type id")

	// ErrSizeMismatch is returned when the number of bytes consumed
	// parsing the payload doesn't match the header's declared file size.
	ErrSizeMismatch = errors.New("declared size does not match bytes read")

	// ErrReflectiveUnsupported is returned when the reflective reader is
	// asked to read a value; resolving it from the manifest succeeds.
	ErrReflectiveUnsupported = errors.New("reflective type reader is unsupported")

	// ErrBadUTF8 is returned when a length-prefixed string or a char
	// contains an invalid UTF-8 byte sequence.
	ErrBadUTF8 = errors.New("invalid utf-8")
)

// NewIOError returns an IOError wrapping err. If message is empty it is
// filled with the calling function's name.
func NewIOError(err error, message string) error {
	if err == nil {
		return NewError(ErrIO, "NewIOError called with nil error", "xnberr.NewIOError")
	}
	if message == "" {
		message = "in " + GetCaller(1)
	}
	return IOError{Err: err, Message: message}
}

// IOError is returned when the underlying reader misbehaves.
type IOError struct {
	Err     error
	Message string
}

func (e IOError) Error() string {
	if e.Message != "" {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

func (e IOError) Unwrap() error { return e.Err }

// Is reports every IOError as being of kind ErrIO.
func (e IOError) Is(target error) bool { return target == ErrIO }

// NewError returns an Error wrapping err with message and caller. If
// caller is empty it is filled with the calling function's name.
func NewError(err error, message string, caller string) error {
	if caller == "" {
		caller = GetCaller(1)
	}
	return Error{Err: err, Message: message, Caller: caller}
}

// Error is returned for malformed data - anything that isn't an io
// failure.
type Error struct {
	Err     error
	Message string
	Caller  string
}

func (e Error) Error() (str string) {
	if e.Caller != "" {
		str = e.Caller + ": "
	}
	str += e.Err.Error()
	if e.Message != "" {
		str += " (" + e.Message + ")"
	}
	return str
}

func (e Error) Unwrap() error { return e.Err }

// GetCaller returns the name of the calling function, skipping skip
// additional frames above it.
func GetCaller(skip int) string {
	pcs := make([]uintptr, 1)
	n := runtime.Callers(2+skip, pcs)
	if n != 1 {
		return "unknown function"
	}
	frames := runtime.CallersFrames(pcs)
	frame, _ := frames.Next()
	return frame.Function
}
