package domain

import (
	"errors"
	"fmt"
)

// ErrToolNotFound is returned when a tool identifier is not registered.
var ErrToolNotFound = errors.New("tool not found")

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

// ErrUnknownPanel is returned when a panel identifier is not part of the layout.
var ErrUnknownPanel = errors.New("unknown panel")

// ErrorKind classifies a tool failure.
type ErrorKind string

const (
	KindValidation  ErrorKind = "validation"        // bad or missing input
	KindFormat      ErrorKind = "format"            // malformed JSON, Base64, percent-encoding
	KindUnsupported ErrorKind = "unsupported_input" // wrong file type for a converter
	KindUnknownTool ErrorKind = "unknown_tool"
	KindInternal    ErrorKind = "internal"
)

// ToolError is the failure returned by a transform.
// Message is shown to the user as is.
type ToolError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *ToolError) Error() string {
	return e.Message
}

func (e *ToolError) Unwrap() error {
	return e.Err
}

// Validation builds a KindValidation error.
func Validation(format string, args ...any) *ToolError {
	return &ToolError{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// Malformed builds a KindFormat error wrapping the parser error.
func Malformed(err error, format string, args ...any) *ToolError {
	return &ToolError{Kind: KindFormat, Message: fmt.Sprintf(format, args...), Err: err}
}

// Unsupported builds a KindUnsupported error.
func Unsupported(format string, args ...any) *ToolError {
	return &ToolError{Kind: KindUnsupported, Message: fmt.Sprintf(format, args...)}
}

// KindOf reports the kind of err. Errors that are not a *ToolError are internal.
func KindOf(err error) ErrorKind {
	var te *ToolError
	if errors.As(err, &te) {
		return te.Kind
	}
	if errors.Is(err, ErrToolNotFound) {
		return KindUnknownTool
	}
	return KindInternal
}
