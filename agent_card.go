// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package a2a

import (
	"fmt"
)

// AgentCapabilities lists the optional protocol features an agent supports.
type AgentCapabilities struct {
	Streaming              bool `json:"streaming" yaml:"streaming"`
	PushNotifications      bool `json:"pushNotifications" yaml:"push_notifications"`
	StateTransitionHistory bool `json:"stateTransitionHistory" yaml:"state_transition_history"`
}

// AgentSkill describes a unit of capability an agent can perform.
type AgentSkill struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	Tags        []string `json:"tags,omitzero" yaml:"tags"`
	Examples    []string `json:"examples,omitzero" yaml:"examples"`
}

// AgentCard is the static metadata an agent publishes about itself.
type AgentCard struct {
	Name               string            `json:"name" yaml:"name"`
	Description        string            `json:"description" yaml:"description"`
	URL                string            `json:"url" yaml:"url"`
	Version            string            `json:"version" yaml:"version"`
	ProtocolVersion    string            `json:"protocolVersion" yaml:"protocol_version"`
	Capabilities       AgentCapabilities `json:"capabilities" yaml:"capabilities"`
	DefaultInputModes  []string          `json:"defaultInputModes" yaml:"default_input_modes"`
	DefaultOutputModes []string          `json:"defaultOutputModes" yaml:"default_output_modes"`
	Skills             []AgentSkill      `json:"skills" yaml:"skills"`
}

// Validate ensures the AgentCard carries the mandatory fields.
func (c *AgentCard) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("agent card name cannot be empty")
	}
	if c.URL == "" {
		return fmt.Errorf("agent card URL cannot be empty")
	}
	if c.Version == "" {
		return fmt.Errorf("agent card version cannot be empty")
	}
	for i, s := range c.Skills {
		if s.ID == "" || s.Name == "" {
			return fmt.Errorf("agent skill at index %d needs an ID and a name", i)
		}
	}
	return nil
}
