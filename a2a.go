// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package a2a provides the domain types of the Agent-to-Agent (A2A) protocol exchange:
// tasks and their lifecycle states, messages, push notification configurations,
// the static agent card and the error taxonomy shared by the stores and the dispatcher.
package a2a

import (
	"github.com/google/uuid"
)

// Version is the current version of the A2A protocol.
const Version = "0.2.5"

// Kind values carried on the wire to discriminate protocol objects.
const (
	KindTask    = "task"
	KindMessage = "message"
	KindText    = "text"
)

// NewID returns a fresh random identifier.
func NewID() string {
	return uuid.NewString()
}
