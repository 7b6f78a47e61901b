// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-json-experiment/json/jsontext"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/go-a2a/a2a-exchange"
	"github.com/go-a2a/a2a-exchange/jsonrpc"
)

func TestDecodeParams(t *testing.T) {
	tests := map[string]struct {
		raw  string
		want []string
	}{
		"object":     {raw: `{"taskId":"t1","configId":"c1"}`, want: []string{"configId", "taskId"}},
		"empty":      {raw: `{}`, want: []string{}},
		"positional": {raw: `["t1","c1"]`, want: []string{}},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			p, err := decodeParams(&jsonrpc.Request{Params: jsontext.Value(tt.raw)})
			if err != nil {
				t.Fatal(err)
			}
			got := []string{}
			for k := range p {
				got = append(got, k)
			}
			if diff := cmp.Diff(tt.want, got, cmpopts.SortSlices(func(a, b string) bool { return a < b })); diff != "" {
				t.Errorf("keys mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParamsTaskID(t *testing.T) {
	tests := map[string]struct {
		raw     string
		names   []string
		want    string
		wantErr bool
	}{
		"present":    {raw: `{"taskId":"t1"}`, want: "t1"},
		"alias":      {raw: `{"id":"t2"}`, names: []string{"taskId", "id"}, want: "t2"},
		"first wins": {raw: `{"taskId":"t1","id":"t2"}`, names: []string{"taskId", "id"}, want: "t1"},
		"null skips": {raw: `{"taskId":null,"id":"t2"}`, names: []string{"taskId", "id"}, want: "t2"},
		"missing":    {raw: `{}`, wantErr: true},
		"empty":      {raw: `{"taskId":""}`, wantErr: true},
		"number":     {raw: `{"taskId":12}`, wantErr: true},
		"object":     {raw: `{"taskId":{"id":"t1"}}`, wantErr: true},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			p, err := decodeParams(&jsonrpc.Request{Params: jsontext.Value(tt.raw)})
			if err != nil {
				t.Fatal(err)
			}
			got, err := p.taskID(tt.names...)
			if tt.wantErr {
				if !errors.Is(err, a2a.ErrInvalidParams) {
					t.Fatalf("taskID() error = %v, want InvalidParams", err)
				}
				if err.Error() != "Task ID is required" {
					t.Errorf("message = %q", err.Error())
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("taskID() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParamsStr(t *testing.T) {
	p, err := decodeParams(&jsonrpc.Request{Params: jsontext.Value(`{"status":"working","bad":3}`)})
	if err != nil {
		t.Fatal(err)
	}

	if s, err := p.str("status"); err != nil || s != "working" {
		t.Errorf("str(status) = %q, %v", s, err)
	}
	if s, err := p.str("absent"); err != nil || s != "" {
		t.Errorf("str(absent) = %q, %v", s, err)
	}
	if _, err := p.str("bad"); !errors.Is(err, a2a.ErrInvalidParams) {
		t.Errorf("str(bad) error = %v, want InvalidParams", err)
	}
}

func TestParamsPushConfig(t *testing.T) {
	tests := map[string]struct {
		raw  string
		want *a2a.PushNotificationConfig
	}{
		"config":       {raw: `{"config":{"url":"https://example.com/a"}}`, want: &a2a.PushNotificationConfig{URL: "https://example.com/a"}},
		"alias":        {raw: `{"pushNotificationConfig":{"url":"https://example.com/b","id":"x"}}`, want: &a2a.PushNotificationConfig{ID: "x", URL: "https://example.com/b"}},
		"missing":      {raw: `{}`},
		"string":       {raw: `{"config":"https://example.com"}`},
		"wrong fields": {raw: `{"config":{"url":5}}`},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			p, err := decodeParams(&jsonrpc.Request{Params: jsontext.Value(tt.raw)})
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, p.pushConfig()); diff != "" {
				t.Errorf("pushConfig() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestErrorCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{err: a2a.NewInvalidParamsError("bad"), want: jsonrpc.InvalidParamsCode},
		{err: a2a.TaskNotFoundError{TaskID: "t"}, want: jsonrpc.NotFoundCode},
		{err: a2a.PushConfigNotFoundError{TaskID: "t", ConfigID: "c"}, want: jsonrpc.NotFoundCode},
		{err: a2a.InvalidTransitionError{TaskID: "t", From: a2a.TaskStateCompleted, To: a2a.TaskStateWorking}, want: jsonrpc.InvalidTransitionCode},
		{err: fmt.Errorf("wrapped: %w", a2a.TaskNotFoundError{TaskID: "t"}), want: jsonrpc.NotFoundCode},
		{err: jsonrpc.NewMethodNotFoundError("x"), want: jsonrpc.MethodNotFoundCode},
		{err: errors.New("disk on fire"), want: jsonrpc.InternalErrorCode},
	}
	for _, tt := range tests {
		if got := ErrorCode(tt.err); got != tt.want {
			t.Errorf("ErrorCode(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
