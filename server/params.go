// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"

	"github.com/go-a2a/a2a-exchange"
	"github.com/go-a2a/a2a-exchange/jsonrpc"
)

// params holds the named members of a request's params object.
// Positional params carry no named members.
type params map[string]jsontext.Value

func decodeParams(req *jsonrpc.Request) (params, error) {
	if req.Params.Kind() != '{' {
		return params{}, nil
	}
	var p params
	if err := req.DecodeParams(&p); err != nil {
		return nil, a2a.NewInvalidParamsError("Invalid params: %v", err)
	}
	return p, nil
}

// lookup returns the first present, non-null member among names.
func (p params) lookup(names ...string) (jsontext.Value, bool) {
	for _, name := range names {
		if v, ok := p[name]; ok && v.Kind() != 'n' {
			return v, true
		}
	}
	return nil, false
}

// str returns the first present member among names as a string. Absent
// members yield "". A member of another type is an InvalidParams error.
func (p params) str(names ...string) (string, error) {
	v, ok := p.lookup(names...)
	if !ok {
		return "", nil
	}
	var s string
	if v.Kind() != '"' || json.Unmarshal(v, &s) != nil {
		return "", a2a.NewInvalidParamsError("%s must be a string", names[0])
	}
	return s, nil
}

// decode unmarshals the first present member among names into v and reports
// whether one was present.
func (p params) decode(v any, names ...string) (bool, error) {
	raw, ok := p.lookup(names...)
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return true, a2a.NewInvalidParamsError("Invalid %s: %v", names[0], err)
	}
	return true, nil
}

// taskID returns the required task id. A missing or non-string id reports
// "Task ID is required".
func (p params) taskID(names ...string) (string, error) {
	if len(names) == 0 {
		names = []string{"taskId"}
	}
	v, ok := p.lookup(names...)
	var id string
	if !ok || v.Kind() != '"' || json.Unmarshal(v, &id) != nil || id == "" {
		return "", a2a.NewInvalidParamsError("Task ID is required")
	}
	return id, nil
}

// pushConfig returns the config carried under "config" or its alias
// "pushNotificationConfig". Anything that is not an object decoding into a
// config yields nil so the registry reports the invalid config.
func (p params) pushConfig() *a2a.PushNotificationConfig {
	v, ok := p.lookup("config", "pushNotificationConfig")
	if !ok || v.Kind() != '{' {
		return nil
	}
	var cfg a2a.PushNotificationConfig
	if err := json.Unmarshal(v, &cfg); err != nil {
		return nil
	}
	return &cfg
}
