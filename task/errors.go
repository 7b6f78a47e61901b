// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package task

import (
	"fmt"
)

// TaskStoreError represents an unexpected failure of the underlying storage.
type TaskStoreError struct {
	Operation string
	TaskID    string
	Err       error
}

// NewTaskStoreError creates a new TaskStoreError.
func NewTaskStoreError(operation, taskID string, err error) TaskStoreError {
	return TaskStoreError{Operation: operation, TaskID: taskID, Err: err}
}

// Error returns the error message.
func (e TaskStoreError) Error() string {
	if e.TaskID == "" {
		return fmt.Sprintf("task store %s operation failed: %v", e.Operation, e.Err)
	}
	return fmt.Sprintf("task store %s operation failed for task %s: %v", e.Operation, e.TaskID, e.Err)
}

// Unwrap returns the underlying error.
func (e TaskStoreError) Unwrap() error {
	return e.Err
}

// PushConfigStoreError represents an unexpected failure while managing push notification configs.
type PushConfigStoreError struct {
	Operation string
	TaskID    string
	Err       error
}

// NewPushConfigStoreError creates a new PushConfigStoreError.
func NewPushConfigStoreError(operation, taskID string, err error) PushConfigStoreError {
	return PushConfigStoreError{Operation: operation, TaskID: taskID, Err: err}
}

// Error returns the error message.
func (e PushConfigStoreError) Error() string {
	return fmt.Sprintf("push config store %s operation failed for task %s: %v", e.Operation, e.TaskID, e.Err)
}

// Unwrap returns the underlying error.
func (e PushConfigStoreError) Unwrap() error {
	return e.Err
}
