// Package poolerrors provides structured error handling for poolkit's
// configuration and tooling surfaces. It extends standard errors with a
// category, key-value context and a captured call stack.
//
// The core pool packages deliberately do not use it: per their contract,
// programmer errors panic and expected non-unique outcomes are reported
// through boolean results. This package serves the layers above, where
// failures are ordinary and need context: config loading, workload setup
// and the CLI.
//
// Example:
//
//	if err := config.Load(path, &cfg); err != nil {
//	    return poolerrors.Wrap(err, poolerrors.ErrorTypeConfig, "loading workload config").
//	        WithDetail("path", path)
//	}
package poolerrors

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// ErrorType categorizes an error for handling strategies and reporting.
type ErrorType string

const (
	// ErrorTypeInternal represents internal system errors
	ErrorTypeInternal ErrorType = "internal"
	// ErrorTypeConfig represents configuration errors
	ErrorTypeConfig ErrorType = "config"
	// ErrorTypeValidation represents validation errors
	ErrorTypeValidation ErrorType = "validation"
	// ErrorTypeWorkload represents workload execution errors
	ErrorTypeWorkload ErrorType = "workload"
)

// StackFrame is one captured call site.
type StackFrame struct {
	Function string
	File     string
	Line     int
}

// Error is a structured error with a category, optional cause and
// key-value details. Instances are not safe for concurrent modification;
// attach details before sharing.
type Error struct {
	Type    ErrorType
	Message string
	Cause   error
	Details map[string]interface{}
	Stack   []StackFrame
}

// New creates a structured error of the given type.
func New(errType ErrorType, message string) *Error {
	return &Error{
		Type:    errType,
		Message: message,
		Details: make(map[string]interface{}),
		Stack:   captureStack(2),
	}
}

// Newf creates a structured error with a formatted message.
func Newf(errType ErrorType, format string, args ...interface{}) *Error {
	e := New(errType, fmt.Sprintf(format, args...))
	e.Stack = captureStack(2)
	return e
}

// Wrap wraps an existing error with a category and message, preserving the
// cause for errors.Is and errors.As. Wrapping nil returns nil.
func Wrap(err error, errType ErrorType, message string) *Error {
	if err == nil {
		return nil
	}
	return &Error{
		Type:    errType,
		Message: message,
		Cause:   err,
		Details: make(map[string]interface{}),
		Stack:   captureStack(2),
	}
}

// WithDetail attaches a key-value pair and returns the error for chaining.
func (e *Error) WithDetail(key string, value interface{}) *Error {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Type))
	b.WriteString(": ")
	b.WriteString(e.Message)
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the wrapped cause, if any.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches structured errors by type, so callers can test categories with
// errors.Is(err, &Error{Type: ErrorTypeConfig}).
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Type == t.Type
}

// IsType reports whether err is (or wraps) a structured error of the given
// type.
func IsType(err error, errType ErrorType) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Type == errType
}

// captureStack records up to 16 frames above the error constructor.
func captureStack(skip int) []StackFrame {
	pcs := make([]uintptr, 16)
	n := runtime.Callers(skip+1, pcs)
	if n == 0 {
		return nil
	}
	frames := runtime.CallersFrames(pcs[:n])
	stack := make([]StackFrame, 0, n)
	for {
		frame, more := frames.Next()
		stack = append(stack, StackFrame{
			Function: frame.Function,
			File:     frame.File,
			Line:     frame.Line,
		})
		if !more {
			break
		}
	}
	return stack
}
