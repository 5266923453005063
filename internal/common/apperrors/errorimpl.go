package apperrors

import (
	"errors"
	"strings"
)

// appError is the concrete Error implementation.
type appError struct {
	msg         string  // primary error message
	base        error   // parent in the sentinel chain
	causes      []error // attached causes
	statuscode  int     // HTTP-style status code
	expandError bool    // controls ErrorAll expansion
}

// New creates a root-level error with the given message.
func New(msg string) Error {
	return &appError{
		msg: msg,
	}
}

// Error returns the primary message.
func (e *appError) Error() string {
	return e.msg
}

// ErrorAll returns the message followed by all attached causes when
// expansion is enabled, otherwise the same as Error().
func (e *appError) ErrorAll() string {
	if !e.expandError {
		return e.msg
	}
	var b strings.Builder
	b.WriteString(e.msg)
	for _, err := range e.causes {
		b.WriteString("; ")
		b.WriteString(err.Error())
	}
	return b.String()
}

// Unwrap returns the parent error for errors.Is / errors.As.
func (e *appError) Unwrap() error {
	return e.base
}

// UnwrapAll returns all attached causes in attachment order.
func (e *appError) UnwrapAll() []error {
	return e.causes
}

// New derives a fresh sentinel from the current error. The derived error
// inherits the status code and matches the parent under errors.Is.
func (e *appError) New(msg string) Error {
	return &appError{
		msg:        msg,
		base:       e,
		statuscode: e.statuscode,
	}
}

// Msg creates a new error with a new message, wrapping the current error.
func (e *appError) Msg(msg string) Error {
	return &appError{
		msg:         msg,
		base:        e,
		causes:      append([]error{e}, e.causes...),
		statuscode:  e.statuscode,
		expandError: e.expandError,
	}
}

// MsgErr creates a new error with a message and attaches additional causes.
func (e *appError) MsgErr(msg string, errs ...error) Error {
	return &appError{
		msg:         msg,
		base:        e,
		causes:      append([]error{e}, errs...),
		statuscode:  e.statuscode,
		expandError: e.expandError,
	}
}

// Err attaches causes to the current error, keeping its message.
func (e *appError) Err(errs ...error) Error {
	return &appError{
		msg:         e.msg,
		base:        e,
		causes:      append([]error{e}, errs...),
		statuscode:  e.statuscode,
		expandError: e.expandError,
	}
}

// SetExpandError returns a shallow copy with an updated expansion flag.
func (e *appError) SetExpandError(flag bool) Error {
	cp := *e
	cp.expandError = flag
	return &cp
}

// SetStatusCode returns a shallow copy with an updated status code.
func (e *appError) SetStatusCode(code int) Error {
	cp := *e
	cp.statuscode = code
	return &cp
}

// StatusCode returns the current status code.
func (e *appError) StatusCode() int {
	return e.statuscode
}

// As matches target against the attached causes, so errors.As can reach a
// concrete error wrapped under a sentinel.
func (e *appError) As(target any) bool {
	for _, err := range e.causes {
		if errors.As(err, target) {
			return true
		}
	}
	return false
}

// Is matches against the parent chain and every attached cause.
func (e *appError) Is(target error) bool {
	if target == nil {
		return false
	}
	if errors.Is(e.base, target) {
		return true
	}
	for _, err := range e.causes {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
