package errors

import (
	stderrors "errors"
	"fmt"
)

// Category represents the type of error.
type Category string

const (
	CategoryRoute        Category = "route"
	CategoryPage         Category = "page"
	CategoryGuard        Category = "guard"
	CategoryRender       Category = "render"
	CategoryHistory      Category = "history"
	CategoryRegistration Category = "registration"
)

// PagioError is a structured error with a stable code, suggestions, and
// documentation links.
type PagioError struct {
	// Code is a unique error identifier (e.g., "N001").
	Code string

	// Category is the error type (route, page, guard, ...).
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
func (e *PagioError) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	if e.Wrapped != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Wrapped)
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *PagioError) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target carries the same code. This lets callers write
// errors.Is(err, errors.New("N001")) without caring about wrapped causes.
func (e *PagioError) Is(target error) bool {
	var pe *PagioError
	if stderrors.As(target, &pe) {
		return pe.Code != "" && pe.Code == e.Code
	}
	return false
}

// WithDetail adds a detailed explanation to the error.
func (e *PagioError) WithDetail(d string) *PagioError {
	e.Detail = d
	return e
}

// WithDetailf adds a formatted detailed explanation to the error.
func (e *PagioError) WithDetailf(format string, args ...any) *PagioError {
	e.Detail = fmt.Sprintf(format, args...)
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *PagioError) WithSuggestion(s string) *PagioError {
	e.Suggestion = s
	return e
}

// Wrap wraps another error.
func (e *PagioError) Wrap(err error) *PagioError {
	e.Wrapped = err
	return e
}

// New creates a PagioError from a registered error code.
func New(code string) *PagioError {
	template, ok := registry[code]
	if !ok {
		return &PagioError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &PagioError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
		DocURL:   template.DocURL,
	}
}

// Newf creates a new PagioError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *PagioError {
	return &PagioError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in a PagioError.
func FromError(err error, code string) *PagioError {
	if err == nil {
		return nil
	}
	if pe, ok := err.(*PagioError); ok {
		return pe
	}
	return New(code).Wrap(err)
}

// CodeOf returns the code carried by err, or "" if err is not a PagioError.
func CodeOf(err error) string {
	var pe *PagioError
	if stderrors.As(err, &pe) {
		return pe.Code
	}
	return ""
}

// HasCode reports whether err (or any error it wraps) carries the code.
func HasCode(err error, code string) bool {
	return CodeOf(err) == code
}
