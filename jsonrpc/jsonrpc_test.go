// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package jsonrpc_test

import (
	"testing"

	gocmp "github.com/google/go-cmp/cmp"

	"github.com/go-a2a/a2a-exchange/jsonrpc"
)

func TestID(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		id       jsonrpc.ID
		wantS    string
		wantNull bool
	}{
		"string": {id: jsonrpc.StringID("abc123"), wantS: `"abc123"`},
		"int":    {id: jsonrpc.IntID(3), wantS: `3`},
		"raw":    {id: jsonrpc.RawID([]byte(` 1.5 `)), wantS: `1.5`},
		"zero":   {id: jsonrpc.ID{}, wantS: `null`, wantNull: true},
		"null":   {id: jsonrpc.RawID([]byte(`null`)), wantS: `null`, wantNull: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			if got := tt.id.String(); got != tt.wantS {
				t.Errorf("String() = %s, want %s", got, tt.wantS)
			}
			if got := tt.id.IsNull(); got != tt.wantNull {
				t.Errorf("IsNull() = %v, want %v", got, tt.wantNull)
			}
		})
	}
}

func TestIDMarshaling(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		id       jsonrpc.ID
		expected string
	}{
		{name: "string", id: jsonrpc.StringID("abc123"), expected: `"abc123"`},
		{name: "int", id: jsonrpc.IntID(3), expected: `3`},
		{name: "null", id: jsonrpc.ID{}, expected: `null`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			data, err := tt.id.MarshalJSON()
			if err != nil {
				t.Fatalf("MarshalJSON() error = %v", err)
			}
			if diff := gocmp.Diff(tt.expected, string(data)); diff != "" {
				t.Errorf("MarshalJSON(): (-want +got):\n%s", diff)
			}

			var newID jsonrpc.ID
			if err := newID.UnmarshalJSON(data); err != nil {
				t.Fatalf("UnmarshalJSON() error = %v", err)
			}
			if diff := gocmp.Diff(tt.id, newID); diff != "" {
				t.Errorf("UnmarshalJSON(): (-want +got):\n%s", diff)
			}
		})
	}
}

func TestIDEqual(t *testing.T) {
	t.Parallel()

	if !jsonrpc.IntID(7).Equal(jsonrpc.RawID([]byte("7"))) {
		t.Error("IntID(7) should equal raw 7")
	}
	if jsonrpc.IntID(7).Equal(jsonrpc.StringID("7")) {
		t.Error("IntID(7) should not equal string \"7\"")
	}
	if !(jsonrpc.ID{}).Equal(jsonrpc.RawID(nil)) {
		t.Error("zero ID should equal absent ID")
	}
}
