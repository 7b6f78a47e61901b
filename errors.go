// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package a2a

import (
	"errors"
	"fmt"
)

// Error kinds. Every error produced by the stores matches exactly one of them with [errors.Is].
var (
	// ErrInvalidRequest reports a malformed envelope.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrInvalidParams reports a missing or malformed required field.
	ErrInvalidParams = errors.New("invalid params")
	// ErrNotFound reports a referenced task or config that does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidTransition reports an illegal status change.
	ErrInvalidTransition = errors.New("invalid transition")
	// ErrInternal reports an unexpected failure.
	ErrInternal = errors.New("internal error")
)

// TaskNotFoundError represents an error when a task is not found.
type TaskNotFoundError struct {
	TaskID string
}

// Error implements the error interface.
func (e TaskNotFoundError) Error() string {
	if e.TaskID == "" {
		return "Task not found"
	}
	return fmt.Sprintf("Task not found: %s", e.TaskID)
}

// Is reports whether target is [ErrNotFound].
func (e TaskNotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// PushConfigNotFoundError represents an error when a push notification config is not found.
type PushConfigNotFoundError struct {
	TaskID   string
	ConfigID string
}

// Error implements the error interface.
func (e PushConfigNotFoundError) Error() string {
	if e.ConfigID == "" {
		return fmt.Sprintf("Push notification config not found for task %s", e.TaskID)
	}
	return fmt.Sprintf("Push notification config %s not found for task %s", e.ConfigID, e.TaskID)
}

// Is reports whether target is [ErrNotFound].
func (e PushConfigNotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// InvalidTransitionError represents an attempt to move a task along an edge
// that is not part of the transition graph.
type InvalidTransitionError struct {
	TaskID string
	From   TaskState
	To     TaskState
}

// Error implements the error interface.
func (e InvalidTransitionError) Error() string {
	return fmt.Sprintf("Invalid transition for task %s: %s -> %s", e.TaskID, e.From, e.To)
}

// Is reports whether target is [ErrInvalidTransition].
func (e InvalidTransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}

// InvalidParamsError represents a missing or malformed parameter.
type InvalidParamsError struct {
	Message string
}

// Error implements the error interface.
func (e InvalidParamsError) Error() string {
	return e.Message
}

// Is reports whether target is [ErrInvalidParams].
func (e InvalidParamsError) Is(target error) bool {
	return target == ErrInvalidParams
}

// NewInvalidParamsError creates a new InvalidParamsError.
func NewInvalidParamsError(format string, args ...any) InvalidParamsError {
	return InvalidParamsError{Message: fmt.Sprintf(format, args...)}
}

// Kind classifies err into one of the error kinds. Unknown errors are [ErrInternal].
func Kind(err error) error {
	for _, kind := range []error{ErrInvalidRequest, ErrInvalidParams, ErrNotFound, ErrInvalidTransition} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return ErrInternal
}
