package core

import (
	"errors"
	"fmt"
)

// Kind classifies importer failures. Every error returned by this
// package carries exactly one Kind so callers can branch on the
// outcome without string matching.
type Kind int

const (
	// KindUnexpected is the catch-all for failures outside the named
	// taxonomy. It must never escape as a panic or crash the caller.
	KindUnexpected Kind = iota

	// KindFileNotFound indicates the source path does not exist.
	KindFileNotFound

	// KindPermissionDenied indicates the file exists but cannot be
	// opened for reading.
	KindPermissionDenied

	// KindDecode indicates the byte stream could not be decoded under
	// the requested encoding, or the encoding name is unknown.
	KindDecode

	// KindParse indicates the delimited-format parser rejected the
	// content (unbalanced quoting, empty file, missing header).
	KindParse

	// KindUnknownColumn indicates a query referenced a column that is
	// not in the loaded headers.
	KindUnknownColumn

	// KindNoData indicates a query ran before any successful load.
	KindNoData

	// KindWrite indicates a summary export could not be written.
	KindWrite
)

// String returns the stable name of the kind.
func (k Kind) String() string {
	switch k {
	case KindFileNotFound:
		return "file_not_found"
	case KindPermissionDenied:
		return "permission_denied"
	case KindDecode:
		return "decode_error"
	case KindParse:
		return "parse_error"
	case KindUnknownColumn:
		return "unknown_column"
	case KindNoData:
		return "no_data"
	case KindWrite:
		return "write_error"
	default:
		return "unexpected"
	}
}

// Error is the structured error type for all importer operations.
type Error struct {
	Kind   Kind
	Op     string // operation that failed: "load", "filter", "export"
	Path   string // source or destination path, when relevant
	Column string // offending column, for KindUnknownColumn
	Err    error  // underlying cause, may be nil
}

func (e *Error) Error() string {
	msg := e.Op + ": " + e.Kind.String()
	if e.Column != "" {
		msg += fmt.Sprintf(" %q", e.Column)
	}
	if e.Path != "" {
		msg += fmt.Sprintf(" (%s)", e.Path)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf extracts the Kind from an error chain. Errors that did not
// originate in this package report KindUnexpected.
func KindOf(err error) Kind {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return KindUnexpected
}
