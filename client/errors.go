// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"errors"
	"fmt"

	"github.com/go-a2a/a2a-exchange/jsonrpc"
)

// HTTPError reports a response whose status is not 200 OK.
type HTTPError struct {
	StatusCode int
	Body       string
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("http status %d", e.StatusCode)
	}
	return fmt.Sprintf("http status %d: %s", e.StatusCode, e.Body)
}

// ErrorCode returns the JSON-RPC error code carried by err, or 0.
func ErrorCode(err error) int {
	var rpcErr *jsonrpc.Error
	if errors.As(err, &rpcErr) {
		return rpcErr.Code
	}
	return 0
}

// IsNotFound reports whether err is a NotFound error response.
func IsNotFound(err error) bool {
	return ErrorCode(err) == jsonrpc.NotFoundCode
}

// IsInvalidTransition reports whether err rejects a task status change.
func IsInvalidTransition(err error) bool {
	return ErrorCode(err) == jsonrpc.InvalidTransitionCode
}

// IsInvalidParams reports whether err rejects the request parameters.
func IsInvalidParams(err error) bool {
	return ErrorCode(err) == jsonrpc.InvalidParamsCode
}
