// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package a2a

import (
	"fmt"
	"slices"
	"strings"
)

// Role identifies the sender of a message.
type Role string

const (
	// RoleUser is a message sent by the client.
	RoleUser Role = "user"
	// RoleAgent is a message sent by the agent.
	RoleAgent Role = "agent"
)

// Valid reports whether r is a declared role.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAgent:
		return true
	default:
		return false
	}
}

// UnmarshalText implements [encoding.TextUnmarshaler] and rejects unknown roles.
func (r *Role) UnmarshalText(text []byte) error {
	role := Role(text)
	if !role.Valid() {
		return fmt.Errorf("unknown message role %q", text)
	}
	*r = role
	return nil
}

// Part is a piece of message content. Only text parts are supported.
type Part struct {
	Kind     string   `json:"kind"`
	Text     string   `json:"text"`
	Metadata Metadata `json:"metadata,omitzero"`
}

// NewTextPart returns a text part.
func NewTextPart(text string) Part {
	return Part{Kind: KindText, Text: text}
}

// Validate ensures the Part is valid.
func (p Part) Validate() error {
	if p.Kind != KindText {
		return fmt.Errorf("unsupported part kind %q", p.Kind)
	}
	return nil
}

// Message is a single message exchanged between user and agent.
type Message struct {
	MessageID        string   `json:"messageId"`
	Role             Role     `json:"role"`
	Kind             string   `json:"kind"`
	Parts            []Part   `json:"parts"`
	ContextID        string   `json:"contextId,omitzero"`
	TaskID           string   `json:"taskId,omitzero"`
	ReferenceTaskIDs []string `json:"referenceTaskIds,omitzero"`
	Extensions       []string `json:"extensions,omitzero"`
	Metadata         Metadata `json:"metadata,omitzero"`
}

// NewMessage returns a message with a fresh id.
func NewMessage(role Role, parts ...Part) *Message {
	return &Message{
		MessageID: NewID(),
		Role:      role,
		Kind:      KindMessage,
		Parts:     slices.Clone(parts),
	}
}

// NewUserMessage returns a user message holding a single text part.
func NewUserMessage(text string) *Message {
	return NewMessage(RoleUser, NewTextPart(text))
}

// NewAgentMessage returns an agent message holding a single text part.
func NewAgentMessage(text string) *Message {
	return NewMessage(RoleAgent, NewTextPart(text))
}

// AddPart appends a part.
func (m *Message) AddPart(p Part) {
	m.Parts = append(m.Parts, p)
}

// SetContextID links the message to a context.
func (m *Message) SetContextID(contextID string) {
	m.ContextID = contextID
}

// SetTaskID links the message to a task.
func (m *Message) SetTaskID(taskID string) {
	m.TaskID = taskID
}

// AddReferenceTaskID records a related task.
func (m *Message) AddReferenceTaskID(taskID string) {
	m.ReferenceTaskIDs = append(m.ReferenceTaskIDs, taskID)
}

// AddExtension records an extension URI.
func (m *Message) AddExtension(uri string) {
	m.Extensions = append(m.Extensions, uri)
}

// SetMetadataValue sets a single metadata entry.
func (m *Message) SetMetadataValue(key string, v Value) {
	if m.Metadata == nil {
		m.Metadata = make(Metadata)
	}
	m.Metadata[key] = v
}

// MergeMetadata merges md into the message metadata.
func (m *Message) MergeMetadata(md Metadata) {
	m.Metadata = m.Metadata.Merge(md)
}

// TextContent joins the text of all parts with newlines.
func (m *Message) TextContent() string {
	texts := make([]string, 0, len(m.Parts))
	for _, p := range m.Parts {
		if p.Kind == KindText {
			texts = append(texts, p.Text)
		}
	}
	return strings.Join(texts, "\n")
}

// Validate ensures the Message is valid.
func (m *Message) Validate() error {
	if m.MessageID == "" {
		return fmt.Errorf("message ID cannot be empty")
	}
	if !m.Role.Valid() {
		return fmt.Errorf("message %s has invalid role %q", m.MessageID, m.Role)
	}
	if len(m.Parts) == 0 {
		return fmt.Errorf("message %s has no parts", m.MessageID)
	}
	for i, p := range m.Parts {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("part at index %d is invalid: %w", i, err)
		}
	}
	return nil
}

// Clone returns a deep copy of the message.
func (m *Message) Clone() *Message {
	if m == nil {
		return nil
	}
	c := *m
	if m.Parts != nil {
		c.Parts = make([]Part, len(m.Parts))
		for i, p := range m.Parts {
			p.Metadata = p.Metadata.Clone()
			c.Parts[i] = p
		}
	}
	c.ReferenceTaskIDs = slices.Clone(m.ReferenceTaskIDs)
	c.Extensions = slices.Clone(m.Extensions)
	c.Metadata = m.Metadata.Clone()
	return &c
}
