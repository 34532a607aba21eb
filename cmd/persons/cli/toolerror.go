// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import "fmt"

// ErrorCategory tells a script what to do about a failed command
// without parsing the message.
type ErrorCategory string

const (
	// CategoryValidation: the arguments or the record were rejected,
	// locally or by the server. Fix the input before trying again.
	CategoryValidation ErrorCategory = "validation"

	// CategoryNotFound: the person named by an identifier does not
	// exist on the server.
	CategoryNotFound ErrorCategory = "not_found"

	// CategoryForbidden: the server refused the configured token.
	CategoryForbidden ErrorCategory = "forbidden"

	// CategoryTransient: the server was unreachable or failed with a
	// server-side status. The same command may succeed later.
	CategoryTransient ErrorCategory = "transient"

	// CategoryInternal: a malformed response or a local failure that
	// retrying will not fix.
	CategoryInternal ErrorCategory = "internal"
)

// ToolError is the error type every persons command returns. Err keeps
// the wrapped chain for errors.Is and errors.As.
type ToolError struct {
	Category ErrorCategory
	Err      error

	// Hint is a suggested next step, printed after a blank line.
	Hint string
}

func (e *ToolError) Error() string {
	if e.Hint == "" {
		return e.Err.Error()
	}
	return e.Err.Error() + "\n\n" + e.Hint
}

func (e *ToolError) Unwrap() error { return e.Err }

// WithHint sets the hint and returns e.
func (e *ToolError) WithHint(hint string) *ToolError {
	e.Hint = hint
	return e
}

func newToolError(category ErrorCategory, format string, args []any) *ToolError {
	return &ToolError{Category: category, Err: fmt.Errorf(format, args...)}
}

// Validation formats a CategoryValidation error. Like every constructor
// here it accepts %w.
func Validation(format string, args ...any) *ToolError {
	return newToolError(CategoryValidation, format, args)
}

func NotFound(format string, args ...any) *ToolError {
	return newToolError(CategoryNotFound, format, args)
}

func Forbidden(format string, args ...any) *ToolError {
	return newToolError(CategoryForbidden, format, args)
}

func Transient(format string, args ...any) *ToolError {
	return newToolError(CategoryTransient, format, args)
}

func Internal(format string, args ...any) *ToolError {
	return newToolError(CategoryInternal, format, args)
}
