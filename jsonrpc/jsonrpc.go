// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package jsonrpc implements the JSON-RPC 2.0 envelope codec used by the A2A exchange:
// it parses and validates requests and builds result and error responses.
package jsonrpc

import (
	"bytes"
	"fmt"
	"slices"
	"strconv"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// Version is the only JSON-RPC version accepted.
const Version = "2.0"

var null = jsontext.Value("null")

// ID represents the unique identifier for JSON-RPC messages.
// It holds the raw JSON text of the identifier so it can be echoed back unchanged.
// The zero ID is JSON null.
type ID struct {
	raw jsontext.Value
}

// StringID returns a string identifier.
func StringID(s string) ID {
	b, _ := json.Marshal(s)
	return ID{raw: b}
}

// IntID returns a numeric identifier.
func IntID(n int64) ID {
	return ID{raw: jsontext.Value(strconv.FormatInt(n, 10))}
}

// RawID wraps raw JSON text as an identifier.
func RawID(raw jsontext.Value) ID {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, null) {
		return ID{}
	}
	return ID{raw: slices.Clone(raw)}
}

// IsNull reports whether the identifier is absent or JSON null.
func (id ID) IsNull() bool {
	return len(id.raw) == 0
}

// Raw returns the raw JSON text of the identifier.
func (id ID) Raw() jsontext.Value {
	if id.IsNull() {
		return null
	}
	return id.raw
}

// Equal reports whether both identifiers have the same JSON text.
func (id ID) Equal(o ID) bool {
	return bytes.Equal(id.Raw(), o.Raw())
}

// String returns the JSON text of the identifier.
func (id ID) String() string {
	return string(id.Raw())
}

// MarshalJSON implements [json.Marshaler].
func (id ID) MarshalJSON() ([]byte, error) {
	return slices.Clone(id.Raw()), nil
}

// UnmarshalJSON implements [json.Unmarshaler].
func (id *ID) UnmarshalJSON(data []byte) error {
	*id = RawID(data)
	return nil
}

// Request represents a JSON-RPC 2.0 request.
type Request struct {
	// JSONRPC version, always "2.0".
	JSONRPC string `json:"jsonrpc"`
	// ID is the request identifier; null means a notification.
	ID ID `json:"id,omitzero"`
	// Method identifies the operation to perform.
	Method string `json:"method"`
	// Params contains parameters for the method, an object or an array.
	Params jsontext.Value `json:"params,omitzero"`
}

// NewRequest creates a new [Request]. A nil params encodes as an empty object.
func NewRequest(method string, params any, id ID) (*Request, error) {
	raw := jsontext.Value("{}")
	if params != nil {
		b, err := json.Marshal(params, json.Deterministic(true))
		if err != nil {
			return nil, fmt.Errorf("marshal params: %w", err)
		}
		raw = b
	}
	return &Request{
		JSONRPC: Version,
		ID:      id,
		Method:  method,
		Params:  raw,
	}, nil
}

// IsNotification reports whether the request carries no identifier.
func (r *Request) IsNotification() bool {
	return r.ID.IsNull()
}

// DecodeParams unmarshals the request params into v.
func (r *Request) DecodeParams(v any) error {
	params := r.Params
	if len(params) == 0 {
		params = jsontext.Value("{}")
	}
	return json.Unmarshal(params, v)
}

// Response represents a JSON-RPC 2.0 response. Exactly one of Result or Error is encoded:
// a nil Error encodes Result, even when Result is nil.
type Response struct {
	// ID echoes the identifier of the request.
	ID ID
	// Result contains the successful result data (can be null).
	Result any
	// Error contains an error object if the request failed.
	Error *Error
}

type resultEnvelope struct {
	JSONRPC string `json:"jsonrpc"`
	ID      ID     `json:"id"`
	Result  any    `json:"result"`
}

type errorEnvelope struct {
	JSONRPC string `json:"jsonrpc"`
	ID      ID     `json:"id"`
	Error   *Error `json:"error"`
}

// MarshalJSON implements [json.Marshaler].
func (r Response) MarshalJSON() ([]byte, error) {
	if r.Error != nil {
		return json.Marshal(errorEnvelope{JSONRPC: Version, ID: r.ID, Error: r.Error}, json.Deterministic(true))
	}
	return json.Marshal(resultEnvelope{JSONRPC: Version, ID: r.ID, Result: r.Result}, json.Deterministic(true))
}

// UnmarshalJSON implements [json.Unmarshaler]. A decoded Result is a [jsontext.Value].
func (r *Response) UnmarshalJSON(data []byte) error {
	var env struct {
		JSONRPC string         `json:"jsonrpc"`
		ID      ID             `json:"id"`
		Result  jsontext.Value `json:"result"`
		Error   *Error         `json:"error"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}
	if env.JSONRPC != Version {
		return fmt.Errorf("jsonrpc: unsupported version %q", env.JSONRPC)
	}
	if env.Error != nil && len(env.Result) > 0 {
		return fmt.Errorf("jsonrpc: response carries both result and error")
	}
	*r = Response{ID: env.ID, Error: env.Error}
	if env.Error == nil {
		if len(env.Result) == 0 {
			env.Result = null
		}
		r.Result = slices.Clone(env.Result)
	}
	return nil
}

// DecodeResult unmarshals the response result into v.
func (r *Response) DecodeResult(v any) error {
	if r.Error != nil {
		return r.Error
	}
	raw, ok := r.Result.(jsontext.Value)
	if !ok {
		b, err := json.Marshal(r.Result)
		if err != nil {
			return err
		}
		raw = b
	}
	return json.Unmarshal(raw, v)
}
