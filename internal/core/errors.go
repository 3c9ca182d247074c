package core

// errors.go defines the single error type surfaced by every census operation.
//
// Each error carries one of a closed set of kinds so callers can branch on
// the failure category:
//
//   - KindFileAccess: the source does not exist, is not a CSV file, or cannot be read
//   - KindDecode: content does not match the expected schema (delimiter, header, values)
//   - KindEmptyData: a query ran before any successful load
//   - KindUnsupportedCountry: the country tag (or a field for that country) is unknown
//
// Use errors.Is with the Err* sentinels, or KindOf, to inspect an error.

import (
	"errors"
	"fmt"
)

// Kind categorizes a census error.
type Kind int

const (
	KindUnknown Kind = iota
	KindFileAccess
	KindDecode
	KindEmptyData
	KindUnsupportedCountry
)

func (k Kind) String() string {
	switch k {
	case KindFileAccess:
		return "file access"
	case KindDecode:
		return "decode"
	case KindEmptyData:
		return "empty data"
	case KindUnsupportedCountry:
		return "unsupported country"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is. They match any *Error of the same kind.
var (
	ErrFileAccess         = &Error{Kind: KindFileAccess}
	ErrDecode             = &Error{Kind: KindDecode}
	ErrEmptyData          = &Error{Kind: KindEmptyData}
	ErrUnsupportedCountry = &Error{Kind: KindUnsupportedCountry}
)

// Error is the tagged error returned by loads, orderings and exports.
type Error struct {
	Kind    Kind
	Op      string // Operation that failed: "load", "enrich", "sort", ...
	Path    string // Source or destination, if any
	Message string // Human-readable description
	Err     error  // Underlying cause, if any
}

func (e *Error) Error() string {
	msg := e.Kind.String() + " error"
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Path != "" {
		msg += fmt.Sprintf(" (%s)", e.Path)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is a sentinel of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Op == "" && t.Message == "" && t.Err == nil && t.Kind == e.Kind
}

// KindOf returns the kind of the first *Error in err's chain, or KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func fileAccess(op, path string, err error) *Error {
	return &Error{Kind: KindFileAccess, Op: op, Path: path, Err: err}
}

func decodeError(op, path, message string, err error) *Error {
	return &Error{Kind: KindDecode, Op: op, Path: path, Message: message, Err: err}
}

func emptyData(op string) *Error {
	return &Error{Kind: KindEmptyData, Op: op, Message: "no census data loaded"}
}

func unsupportedCountry(op, tag string) *Error {
	return &Error{Kind: KindUnsupportedCountry, Op: op, Message: fmt.Sprintf("unsupported country %q", tag)}
}
