// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package a2a_test

import (
	"testing"

	"github.com/go-json-experiment/json"
	gocmp "github.com/google/go-cmp/cmp"

	"github.com/go-a2a/a2a-exchange"
)

func testCard() *a2a.AgentCard {
	return &a2a.AgentCard{
		Name:            "Test Agent",
		Description:     "A test agent",
		URL:             "https://example.com/agent",
		Version:         "1.0.0",
		ProtocolVersion: a2a.Version,
		Capabilities: a2a.AgentCapabilities{
			PushNotifications: true,
		},
		DefaultInputModes:  []string{"text"},
		DefaultOutputModes: []string{"text"},
		Skills: []a2a.AgentSkill{
			{ID: "echo", Name: "Echo", Description: "Repeats the input", Tags: []string{"demo"}},
		},
	}
}

func TestAgentCardValidate(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		mutate  func(*a2a.AgentCard)
		wantErr bool
	}{
		"valid":         {mutate: func(*a2a.AgentCard) {}},
		"no name":       {mutate: func(c *a2a.AgentCard) { c.Name = "" }, wantErr: true},
		"no url":        {mutate: func(c *a2a.AgentCard) { c.URL = "" }, wantErr: true},
		"no version":    {mutate: func(c *a2a.AgentCard) { c.Version = "" }, wantErr: true},
		"unnamed skill": {mutate: func(c *a2a.AgentCard) { c.Skills[0].Name = "" }, wantErr: true},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			card := testCard()
			tt.mutate(card)
			if err := card.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestAgentCardJSON(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(testCard(), json.Deterministic(true))
	if err != nil {
		t.Fatal(err)
	}

	var got a2a.AgentCard
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if diff := gocmp.Diff(testCard(), &got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}

	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		t.Fatal(err)
	}
	if fields["protocolVersion"] != a2a.Version {
		t.Errorf("protocolVersion = %v", fields["protocolVersion"])
	}
}
