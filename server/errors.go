// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"errors"

	"github.com/go-a2a/a2a-exchange"
	"github.com/go-a2a/a2a-exchange/jsonrpc"
)

// ErrorCode returns the JSON-RPC error code for err.
//
// InvalidParams, InvalidRequest, NotFound and InvalidTransition each map to a
// fixed code; any other error is internal.
func ErrorCode(err error) int {
	var rpcErr *jsonrpc.Error
	if errors.As(err, &rpcErr) {
		return rpcErr.Code
	}
	switch a2a.Kind(err) {
	case a2a.ErrInvalidRequest:
		return jsonrpc.InvalidRequestCode
	case a2a.ErrInvalidParams:
		return jsonrpc.InvalidParamsCode
	case a2a.ErrNotFound:
		return jsonrpc.NotFoundCode
	case a2a.ErrInvalidTransition:
		return jsonrpc.InvalidTransitionCode
	default:
		return jsonrpc.InternalErrorCode
	}
}

// toRPCError converts a domain failure into a JSON-RPC error object.
func toRPCError(err error) *jsonrpc.Error {
	var rpcErr *jsonrpc.Error
	if errors.As(err, &rpcErr) {
		return rpcErr
	}
	return &jsonrpc.Error{Code: ErrorCode(err), Message: err.Error()}
}
