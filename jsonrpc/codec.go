// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package jsonrpc

import (
	"bytes"
	"slices"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"

	"github.com/go-a2a/a2a-exchange/internal/pool"
)

// ParseRequest parses and validates a single raw request.
//
// It fails with a parse error when raw is not valid JSON, and with an
// InvalidRequest error when the version is absent or not "2.0", when the method
// is missing or not a non-empty string, or when params is neither an object nor
// an array. An object repeating a member name is an InvalidRequest. Params
// defaults to an empty object and ID defaults to null.
func ParseRequest(raw []byte) (*Request, *Error) {
	raw = bytes.TrimSpace(raw)
	if !jsontext.Value(raw).IsValid(jsontext.AllowDuplicateNames(true)) {
		return nil, NewParseError("Invalid JSON payload")
	}
	if len(raw) == 0 || raw[0] != '{' {
		return nil, NewInvalidRequestError("Request must be a JSON object")
	}
	if !jsontext.Value(raw).IsValid() {
		return nil, NewInvalidRequestError("Request must not repeat member names")
	}

	var members map[string]jsontext.Value
	if err := json.Unmarshal(raw, &members); err != nil {
		return nil, NewInvalidRequestError("Request must be a JSON object")
	}

	var version string
	if v, ok := members["jsonrpc"]; !ok || json.Unmarshal(v, &version) != nil || version != Version {
		return nil, NewInvalidRequestError("Invalid JSON-RPC version")
	}

	var method string
	if v, ok := members["method"]; !ok || json.Unmarshal(v, &method) != nil || method == "" {
		return nil, NewInvalidRequestError("Missing method")
	}

	params := jsontext.Value("{}")
	if v, ok := members["params"]; ok {
		switch v.Kind() {
		case '{', '[':
			params = slices.Clone(v)
		case 'n':
		default:
			return nil, NewInvalidRequestError("Params must be an object or an array")
		}
	}

	return &Request{
		JSONRPC: Version,
		ID:      RawID(members["id"]),
		Method:  method,
		Params:  params,
	}, nil
}

// PeekID returns the identifier of raw when raw is a JSON object carrying one,
// so that errors for invalid requests can still be correlated. Otherwise it
// returns the null ID. A repeated "id" member is ambiguous and yields null.
func PeekID(raw []byte) ID {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return ID{}
	}
	var envelope struct {
		ID jsontext.Value `json:"id"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return ID{}
	}
	return RawID(envelope.ID)
}

// IsValidRequest reports whether raw parses as a valid request.
func IsValidRequest(raw []byte) bool {
	_, err := ParseRequest(raw)
	return err == nil
}

// SplitBatch reports whether raw is a batch and returns its elements.
// A non-batch payload is returned as its only element.
func SplitBatch(raw []byte) (elems []jsontext.Value, batch bool, rpcErr *Error) {
	raw = bytes.TrimSpace(raw)
	if !jsontext.Value(raw).IsValid(jsontext.AllowDuplicateNames(true)) {
		return nil, false, NewParseError("Invalid JSON payload")
	}
	if raw[0] != '[' {
		return []jsontext.Value{raw}, false, nil
	}
	if err := json.Unmarshal(raw, &elems, jsontext.AllowDuplicateNames(true)); err != nil {
		return nil, true, NewParseError("Invalid JSON payload")
	}
	if len(elems) == 0 {
		return nil, true, NewInvalidRequestError("Batch request cannot be empty")
	}
	return elems, true, nil
}

// NewResponse builds a success response.
func NewResponse(id ID, result any) *Response {
	return &Response{ID: id, Result: result}
}

// NewError builds an error response. A zero code defaults to [InternalErrorCode].
func NewError(id ID, message string, code int) *Response {
	if code == 0 {
		code = InternalErrorCode
	}
	return &Response{ID: id, Error: &Error{Code: code, Message: message}}
}

// NewErrorResponse builds an error response from an error object.
func NewErrorResponse(id ID, err *Error) *Response {
	return &Response{ID: id, Error: err}
}

// Encode marshals v deterministically.
func Encode(v any) ([]byte, error) {
	buf := pool.Bytes.Get()
	defer pool.PutBytes(buf)

	if err := json.MarshalWrite(buf, v, json.Deterministic(true)); err != nil {
		return nil, err
	}
	return bytes.Clone(buf.Bytes()), nil
}
