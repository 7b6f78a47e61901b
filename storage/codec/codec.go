// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides the record encodings used to persist values in a storage backend.
package codec

import (
	"fmt"
)

// Codec marshals records to bytes. Implementations must be deterministic.
type Codec interface {
	Name() string
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

// Names of the built-in codecs.
const (
	NameJSON  = "json"
	NameProto = "proto"
)

// ByName returns the built-in codec registered under name. An empty name selects JSON.
func ByName(name string) (Codec, error) {
	switch name {
	case "", NameJSON:
		return JSON(), nil
	case NameProto:
		return Proto(), nil
	default:
		return nil, fmt.Errorf("codec: unknown codec %q", name)
	}
}
