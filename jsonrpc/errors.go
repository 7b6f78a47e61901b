// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package jsonrpc

import (
	"fmt"
)

// Standard JSON-RPC 2.0 error codes.
const (
	// ParseErrorCode indicates invalid JSON payload.
	ParseErrorCode = -32700
	// InvalidRequestCode indicates request payload validation error.
	InvalidRequestCode = -32600
	// MethodNotFoundCode indicates the method does not exist.
	MethodNotFoundCode = -32601
	// InvalidParamsCode indicates invalid method parameters.
	InvalidParamsCode = -32602
	// InternalErrorCode indicates an internal server error. It is the default code.
	InternalErrorCode = -32603
)

// A2A specific error codes.
const (
	// NotFoundCode indicates the referenced task or push notification config does not exist.
	NotFoundCode = -32001
	// InvalidTransitionCode indicates a task status change outside the transition graph.
	InvalidTransitionCode = -32002
)

// Error represents a JSON-RPC 2.0 error object.
type Error struct {
	// Code is the error code.
	Code int `json:"code"`
	// Message is a short description of the error.
	Message string `json:"message"`
	// Data contains optional additional error details.
	Data any `json:"data,omitzero"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("jsonrpc error %d: %s", e.Code, e.Message)
}

// Is reports whether target is an *Error with the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// Sentinel errors for matching with [errors.Is]; only the code is compared.
var (
	ErrParse          = &Error{Code: ParseErrorCode, Message: "Parse error"}
	ErrInvalidRequest = &Error{Code: InvalidRequestCode, Message: "Invalid Request"}
	ErrMethodNotFound = &Error{Code: MethodNotFoundCode, Message: "Method not found"}
	ErrInvalidParams  = &Error{Code: InvalidParamsCode, Message: "Invalid params"}
	ErrInternal       = &Error{Code: InternalErrorCode, Message: "Internal error"}
)

// NewParseError creates a new parse error.
func NewParseError(message string) *Error {
	return &Error{Code: ParseErrorCode, Message: message}
}

// NewInvalidRequestError creates a new InvalidRequest error.
func NewInvalidRequestError(message string) *Error {
	return &Error{Code: InvalidRequestCode, Message: message}
}

// NewMethodNotFoundError creates a new MethodNotFound error for method.
func NewMethodNotFoundError(method string) *Error {
	return &Error{Code: MethodNotFoundCode, Message: fmt.Sprintf("Method not found: %s", method)}
}

// NewInvalidParamsError creates a new InvalidParams error.
func NewInvalidParamsError(message string) *Error {
	return &Error{Code: InvalidParamsCode, Message: message}
}

// NewInternalError creates a new Internal error.
func NewInternalError(message string) *Error {
	return &Error{Code: InternalErrorCode, Message: message}
}
