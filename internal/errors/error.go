package errors

import (
	stderrors "errors"
	"fmt"
)

// Category represents the type of error.
type Category string

const (
	CategoryRuntime  Category = "runtime"
	CategoryBinding  Category = "binding"
	CategoryDI       Category = "di"
	CategoryProtocol Category = "protocol"
	CategoryConfig   Category = "config"
	CategoryUpload   Category = "upload"
)

// FacetError is a structured error with a registered code, a detailed
// explanation, and an optional fix suggestion.
type FacetError struct {
	// Code is a unique error identifier (e.g., "F101").
	Code string

	// Category is the error type (runtime, binding, etc.).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// DocURL is a link to documentation about this error.
	DocURL string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *FacetError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Message
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *FacetError) Unwrap() error {
	return e.Wrapped
}

// WithSuggestion adds a fix suggestion to the error.
func (e *FacetError) WithSuggestion(s string) *FacetError {
	e.Suggestion = s
	return e
}

// WithDetail replaces the detailed explanation of the error.
func (e *FacetError) WithDetail(d string) *FacetError {
	e.Detail = d
	return e
}

// WithMessagef replaces the short message with a formatted one. The code and
// registered detail are kept.
func (e *FacetError) WithMessagef(format string, args ...any) *FacetError {
	e.Message = fmt.Sprintf(format, args...)
	return e
}

// Wrap wraps another error.
func (e *FacetError) Wrap(err error) *FacetError {
	e.Wrapped = err
	return e
}

// New creates a FacetError from a registered error code.
func New(code string) *FacetError {
	template, ok := registry[code]
	if !ok {
		return &FacetError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &FacetError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
		DocURL:   template.DocURL,
	}
}

// Newf creates a FacetError with a formatted message and no code.
func Newf(category Category, format string, args ...any) *FacetError {
	return &FacetError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error under the given code. A FacetError passes
// through unchanged.
func FromError(err error, code string) *FacetError {
	if err == nil {
		return nil
	}
	var fe *FacetError
	if stderrors.As(err, &fe) {
		return fe
	}
	return New(code).Wrap(err)
}

// HasCode reports whether err or any error it wraps is a FacetError with the
// given code.
func HasCode(err error, code string) bool {
	for err != nil {
		if fe, ok := err.(*FacetError); ok && fe.Code == code {
			return true
		}
		err = stderrors.Unwrap(err)
	}
	return false
}
