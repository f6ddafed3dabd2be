// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package a2a

import (
	"fmt"
)

// JSON-RPC and A2A specific error codes.
const (
	CodeParseError     int64 = -32700
	CodeInvalidRequest int64 = -32600
	CodeMethodNotFound int64 = -32601
	CodeInvalidParams  int64 = -32602
	CodeInternalError  int64 = -32603

	CodeTaskNotFound                 int64 = -32001
	CodeTaskNotCancelable            int64 = -32002
	CodePushNotificationNotSupported int64 = -32003
	CodeUnsupportedOperation         int64 = -32004
	CodeContentTypeNotSupported      int64 = -32005
	CodeInvalidAgentResponse         int64 = -32006
)

// Error is a protocol-level error carrying a JSON-RPC error code.
//
// Two errors match under [errors.Is] when their codes are equal, so callers can test
// against the sentinel values below regardless of the message.
type Error struct {
	// A Number that indicates the error type that occurred.
	Code int64 `json:"code"`

	// A String providing a short description of the error.
	Message string `json:"message"`

	// A Primitive or Structured value that contains additional information about the error.
	Data any `json:"data,omitzero"`
}

// NewError returns an Error with code and message.
func NewError(code int64, message string) *Error {
	return &Error{Code: code, Message: message}
}

// NewInvalidParamsError returns an Error with [CodeInvalidParams].
func NewInvalidParamsError(format string, args ...any) *Error {
	return NewError(CodeInvalidParams, fmt.Sprintf(format, args...))
}

// Error implements error.
func (e *Error) Error() string {
	return fmt.Sprintf("a2a: %s (code %d)", e.Message, e.Code)
}

// Is reports whether target is an *Error with the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// A2A specific errors.
var (
	// ErrParse is the error for invalid JSON payloads.
	ErrParse = NewError(CodeParseError, "Invalid JSON payload")

	// ErrInvalidRequest is the error for payloads that are not valid requests or events.
	ErrInvalidRequest = NewError(CodeInvalidRequest, "Request payload validation error")

	// ErrMethodNotFound is the error for unknown methods.
	ErrMethodNotFound = NewError(CodeMethodNotFound, "Method not found")

	// ErrInvalidParams is the error for invalid parameters, including task identity mismatches.
	ErrInvalidParams = NewError(CodeInvalidParams, "Invalid parameters")

	// ErrInternal is the error for internal failures.
	ErrInternal = NewError(CodeInternalError, "Internal error")

	// ErrTaskNotFound is the error for task not found.
	ErrTaskNotFound = NewError(CodeTaskNotFound, "Task not found")

	// ErrTaskNotCancelable is the error for task not cancelable.
	ErrTaskNotCancelable = NewError(CodeTaskNotCancelable, "Task cannot be canceled")

	// ErrPushNotificationNotSupported is the error for push notification not supported.
	ErrPushNotificationNotSupported = NewError(CodePushNotificationNotSupported, "Push Notification is not supported")

	// ErrUnsupportedOperation is the error for unsupported operation.
	ErrUnsupportedOperation = NewError(CodeUnsupportedOperation, "This operation is not supported")

	// ErrContentTypeNotSupported is the error for content type not supported.
	ErrContentTypeNotSupported = NewError(CodeContentTypeNotSupported, "Incompatible content types")

	// ErrInvalidAgentResponse is the error for an agent response that does not match the protocol.
	ErrInvalidAgentResponse = NewError(CodeInvalidAgentResponse, "Invalid agent response")
)
