package models

import "fmt"

// ErrorType represents different categories of parse errors
type ErrorType int

const (
	// ErrUnknownField is an unrecognized key; the field is skipped and the
	// record continues.
	ErrUnknownField ErrorType = iota
	// ErrInvalidInteger is a numeric field that failed to parse; the field
	// is left unset and the record continues.
	ErrInvalidInteger
	// ErrMalformedPackageName is a PKGNAME with no base/version separator.
	ErrMalformedPackageName
	// ErrMalformedLine is a line with no '='; the rest of the record is
	// discarded and parsing resumes at the next record.
	ErrMalformedLine
	// ErrInvalidEncoding is a buffer that is not valid UTF-8. Fatal to the
	// stream instance, never to the host process.
	ErrInvalidEncoding
	// ErrMissingField is a completed record missing a required field; the
	// record is discarded and the stream continues.
	ErrMissingField
)

// String returns the string representation of ErrorType
func (e ErrorType) String() string {
	switch e {
	case ErrUnknownField:
		return "UnknownField"
	case ErrInvalidInteger:
		return "InvalidInteger"
	case ErrMalformedPackageName:
		return "MalformedPackageName"
	case ErrMalformedLine:
		return "MalformedLine"
	case ErrInvalidEncoding:
		return "InvalidEncoding"
	case ErrMissingField:
		return "MissingField"
	default:
		return "Unknown"
	}
}

// ParseError represents an error while parsing a pkg_summary(5) stream
type ParseError struct {
	Type  ErrorType
	Field string
	Value string
	Err   error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	switch {
	case e.Field != "" && e.Value != "":
		return fmt.Sprintf("[%s] %s=%s", e.Type, e.Field, e.Value)
	case e.Field != "":
		return fmt.Sprintf("[%s] %s", e.Type, e.Field)
	case e.Err != nil:
		return fmt.Sprintf("[%s] %v", e.Type, e.Err)
	default:
		return fmt.Sprintf("[%s]", e.Type)
	}
}

// Unwrap returns the wrapped error
func (e *ParseError) Unwrap() error {
	return e.Err
}
