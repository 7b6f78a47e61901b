// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"fmt"

	"github.com/go-json-experiment/json"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

type protoCodec struct {
	mo proto.MarshalOptions
	uo proto.UnmarshalOptions
}

// Proto returns a Protocol Buffers codec with deterministic marshaling.
//
// Values that are proto messages are encoded directly. Any other value is
// projected through its JSON form into a [structpb.Value] first. structpb
// numbers are float64, so integers beyond 2^53 stored this way come back
// rounded; use [JSON] when records carry such numbers.
func Proto() Codec {
	return protoCodec{
		mo: proto.MarshalOptions{Deterministic: true},
		uo: proto.UnmarshalOptions{},
	}
}

func (protoCodec) Name() string { return NameProto }

func (p protoCodec) Marshal(v any) ([]byte, error) {
	if msg, ok := v.(proto.Message); ok {
		return p.mo.Marshal(msg)
	}

	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("protobuf: %w", err)
	}
	var tree any
	if err := json.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("protobuf: %w", err)
	}
	pv, err := structpb.NewValue(tree)
	if err != nil {
		return nil, fmt.Errorf("protobuf: %w", err)
	}
	return p.mo.Marshal(pv)
}

func (p protoCodec) Unmarshal(data []byte, v any) error {
	if msg, ok := v.(proto.Message); ok {
		return p.uo.Unmarshal(data, msg)
	}

	var pv structpb.Value
	if err := p.uo.Unmarshal(data, &pv); err != nil {
		return fmt.Errorf("protobuf: %w", err)
	}
	jsonData, err := json.Marshal(pv.AsInterface())
	if err != nil {
		return fmt.Errorf("protobuf: %w", err)
	}
	return json.Unmarshal(jsonData, v)
}
