// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"github.com/go-json-experiment/json"
)

type jsonCodec struct{}

// JSON returns a codec producing deterministic JSON.
func JSON() Codec { return jsonCodec{} }

func (jsonCodec) Name() string { return NameJSON }

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v, json.Deterministic(true))
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}
