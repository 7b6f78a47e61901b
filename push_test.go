// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package a2a_test

import (
	"testing"

	"github.com/go-json-experiment/json"
	gocmp "github.com/google/go-cmp/cmp"

	"github.com/go-a2a/a2a-exchange"
)

func TestPushNotificationConfigValidate(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		cfg     *a2a.PushNotificationConfig
		wantErr bool
	}{
		"https":        {cfg: &a2a.PushNotificationConfig{URL: "https://example.com/webhook"}},
		"http":         {cfg: &a2a.PushNotificationConfig{URL: "http://localhost:9000/hook"}},
		"nil":          {cfg: nil, wantErr: true},
		"empty url":    {cfg: &a2a.PushNotificationConfig{}, wantErr: true},
		"relative":     {cfg: &a2a.PushNotificationConfig{URL: "/webhook"}, wantErr: true},
		"ftp":          {cfg: &a2a.PushNotificationConfig{URL: "ftp://example.com/x"}, wantErr: true},
		"missing host": {cfg: &a2a.PushNotificationConfig{URL: "https:///x"}, wantErr: true},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestAuthenticationInfoKeepsUnknownMembers(t *testing.T) {
	t.Parallel()

	raw := `{"authentication":{"schemes":["Bearer"],"type":"bearer"},"id":"c1","token":"tok","url":"https://example.com/webhook"}`
	var cfg a2a.PushNotificationConfig
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		t.Fatal(err)
	}

	want := &a2a.PushNotificationConfig{
		ID:    "c1",
		URL:   "https://example.com/webhook",
		Token: "tok",
		Authentication: &a2a.AuthenticationInfo{
			Schemes: []string{"Bearer"},
			Extra:   map[string]a2a.Value{"type": a2a.StringValue("bearer")},
		},
	}
	if diff := gocmp.Diff(want, &cfg); diff != "" {
		t.Errorf("Unmarshal() mismatch (-want +got):\n%s", diff)
	}

	c := cfg.Clone()
	c.Authentication.Schemes[0] = "Basic"
	if cfg.Authentication.Schemes[0] != "Bearer" {
		t.Error("Clone() shares schemes with the original")
	}
}

func TestTaskPushNotificationConfigValidate(t *testing.T) {
	t.Parallel()

	valid := &a2a.TaskPushNotificationConfig{
		TaskID:                 "t1",
		PushNotificationConfig: &a2a.PushNotificationConfig{ID: "t1", URL: "https://example.com"},
	}
	if err := valid.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}

	noTask := *valid
	noTask.TaskID = ""
	if err := noTask.Validate(); err == nil {
		t.Error("Validate() accepted an empty task id")
	}

	noID := &a2a.TaskPushNotificationConfig{
		TaskID:                 "t1",
		PushNotificationConfig: &a2a.PushNotificationConfig{URL: "https://example.com"},
	}
	if err := noID.Validate(); err == nil {
		t.Error("Validate() accepted an empty config id")
	}
}
