// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package a2a

import (
	"fmt"
	"slices"
	"time"
)

// TaskState represents the lifecycle state of a Task.
type TaskState string

const (
	// TaskStateSubmitted indicates the task has been submitted.
	TaskStateSubmitted TaskState = "submitted"

	// TaskStateWorking indicates the task is being worked on.
	TaskStateWorking TaskState = "working"

	// TaskStateInputRequired indicates the task is waiting for input.
	TaskStateInputRequired TaskState = "input-required"

	// TaskStateCompleted indicates the task has been completed.
	TaskStateCompleted TaskState = "completed"

	// TaskStateFailed indicates the task has failed.
	TaskStateFailed TaskState = "failed"

	// TaskStateCanceled indicates the task has been canceled.
	TaskStateCanceled TaskState = "canceled"
)

// TaskStates lists every TaskState in declaration order.
var TaskStates = []TaskState{
	TaskStateSubmitted,
	TaskStateWorking,
	TaskStateInputRequired,
	TaskStateCompleted,
	TaskStateFailed,
	TaskStateCanceled,
}

// Next returns the states reachable from s in one transition.
// Terminal and unknown states have none.
func (s TaskState) Next() []TaskState {
	switch s {
	case TaskStateSubmitted:
		return []TaskState{TaskStateWorking}
	case TaskStateWorking:
		return []TaskState{TaskStateInputRequired, TaskStateCompleted, TaskStateFailed, TaskStateCanceled}
	case TaskStateInputRequired:
		return []TaskState{TaskStateWorking, TaskStateCanceled}
	case TaskStateCompleted, TaskStateFailed, TaskStateCanceled:
		return nil
	default:
		return nil
	}
}

// CanTransitionTo reports whether next is reachable from s in one transition.
func (s TaskState) CanTransitionTo(next TaskState) bool {
	return slices.Contains(s.Next(), next)
}

// IsTerminal reports whether s is a final state.
func (s TaskState) IsTerminal() bool {
	switch s {
	case TaskStateCompleted, TaskStateFailed, TaskStateCanceled:
		return true
	default:
		return false
	}
}

// Valid reports whether s is one of the declared states.
func (s TaskState) Valid() bool {
	return slices.Contains(TaskStates, s)
}

// UnmarshalText implements [encoding.TextUnmarshaler] and rejects unknown states.
func (s *TaskState) UnmarshalText(text []byte) error {
	state := TaskState(text)
	if !state.Valid() {
		return fmt.Errorf("unknown task state %q", text)
	}
	*s = state
	return nil
}

// Task is a unit of asynchronous agent work with a tracked lifecycle status.
type Task struct {
	// ID is the unique identifier of the task, generated at creation.
	ID string `json:"id"`
	// ContextID groups related tasks and messages.
	ContextID string `json:"contextId,omitzero"`
	// Kind is always "task".
	Kind string `json:"kind"`
	// Description is a human readable description of the work.
	Description string `json:"description"`
	// Status is the current lifecycle state.
	Status TaskState `json:"status"`
	// Metadata carries caller supplied extension data.
	Metadata Metadata `json:"metadata,omitzero"`
	// History holds the messages exchanged for this task.
	History []*Message `json:"history,omitzero"`
	// CreatedAt is the creation time.
	CreatedAt time.Time `json:"createdAt"`
	// UpdatedAt is the time of the last mutation.
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewTask returns a submitted task with a fresh id.
func NewTask(description string, metadata Metadata) *Task {
	now := time.Now().UTC()
	return &Task{
		ID:          NewID(),
		ContextID:   NewID(),
		Kind:        KindTask,
		Description: description,
		Status:      TaskStateSubmitted,
		Metadata:    metadata.Clone(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Validate ensures the Task is valid.
func (t *Task) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("task ID cannot be empty")
	}
	if !t.Status.Valid() {
		return fmt.Errorf("task %s has unknown status %q", t.ID, t.Status)
	}
	for i, msg := range t.History {
		if msg == nil {
			return fmt.Errorf("history message at index %d cannot be nil", i)
		}
		if err := msg.Validate(); err != nil {
			return fmt.Errorf("history message at index %d is invalid: %w", i, err)
		}
	}
	return nil
}

// Clone returns a deep copy of the task.
func (t *Task) Clone() *Task {
	if t == nil {
		return nil
	}
	c := *t
	c.Metadata = t.Metadata.Clone()
	if t.History != nil {
		c.History = make([]*Message, len(t.History))
		for i, msg := range t.History {
			c.History[i] = msg.Clone()
		}
	}
	return &c
}
