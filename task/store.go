// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package task owns the task lifecycle and the push notification registry.
//
// Both stores persist through a [storage.Backend] and share one store-wide
// lock, so cascading operations never need lock ordering.
package task

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/go-a2a/a2a-exchange"
	"github.com/go-a2a/a2a-exchange/storage"
	"github.com/go-a2a/a2a-exchange/storage/codec"
)

// Collection names used in the backend.
const (
	TasksCollection       = "tasks"
	PushConfigsCollection = "push_configs"
)

// Filter selects tasks in [Store.List]. A nil Filter selects every task.
type Filter func(*a2a.Task) bool

// ByState selects tasks in the given state.
func ByState(state a2a.TaskState) Filter {
	return func(t *a2a.Task) bool { return t.Status == state }
}

// ByContext selects tasks belonging to the given context.
func ByContext(contextID string) Filter {
	return func(t *a2a.Task) bool { return t.ContextID == contextID }
}

// And selects tasks accepted by every non-nil filter.
func And(filters ...Filter) Filter {
	return func(t *a2a.Task) bool {
		for _, f := range filters {
			if f != nil && !f(t) {
				return false
			}
		}
		return true
	}
}

// Option configures a [Store].
type Option func(*Store)

// WithCodec sets the record codec. The default is JSON.
func WithCodec(c codec.Codec) Option {
	return func(s *Store) { s.codec = c }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// WithClock sets the time source used for CreatedAt and UpdatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// CreateOption adjusts a task before it is first stored.
type CreateOption func(*a2a.Task)

// WithContextID places the new task in an existing context.
func WithContextID(contextID string) CreateOption {
	return func(t *a2a.Task) {
		if contextID != "" {
			t.ContextID = contextID
		}
	}
}

// WithMessage records msg as the first history entry. The message is bound to
// the new task and adopts its context unless it carries one.
func WithMessage(msg *a2a.Message) CreateOption {
	return func(t *a2a.Task) {
		if msg == nil {
			return
		}
		m := msg.Clone()
		if m.ContextID != "" {
			t.ContextID = m.ContextID
		} else {
			m.SetContextID(t.ContextID)
		}
		m.SetTaskID(t.ID)
		t.History = append(t.History, m)
	}
}

// Store manages tasks and their status transitions.
// All operations are thread-safe using sync.RWMutex.
type Store struct {
	mu      sync.RWMutex
	backend storage.Backend
	codec   codec.Codec
	logger  *slog.Logger
	now     func() time.Time

	tasks   *storage.Collection[a2a.Task]
	configs *storage.Collection[a2a.TaskPushNotificationConfig]
}

// NewStore creates a Store persisting into backend.
func NewStore(backend storage.Backend, opts ...Option) *Store {
	s := &Store{
		backend: backend,
		codec:   codec.JSON(),
		logger:  slog.New(slog.DiscardHandler),
		now:     func() time.Time { return time.Now().UTC() },
	}
	for _, o := range opts {
		o(s)
	}
	s.tasks = storage.NewCollection[a2a.Task](backend, s.codec, TasksCollection)
	s.configs = storage.NewCollection[a2a.TaskPushNotificationConfig](backend, s.codec, PushConfigsCollection)
	return s
}

// Create stores a new submitted task with a fresh id.
func (s *Store) Create(ctx context.Context, description string, metadata a2a.Metadata, opts ...CreateOption) (*a2a.Task, error) {
	t := a2a.NewTask(description, metadata)
	now := s.now()
	t.CreatedAt, t.UpdatedAt = now, now
	for _, o := range opts {
		o(t)
	}
	if err := t.Validate(); err != nil {
		return nil, a2a.NewInvalidParamsError("Invalid task: %v", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.tasks.Put(ctx, t.ID, t); err != nil {
		return nil, NewTaskStoreError("create", t.ID, err)
	}
	s.logger.DebugContext(ctx, "task created", slog.String("task_id", t.ID), slog.String("context_id", t.ContextID))
	return t, nil
}

// CreateFromMessage creates a task whose description is the text of msg and
// whose history starts with msg.
func (s *Store) CreateFromMessage(ctx context.Context, msg *a2a.Message, metadata a2a.Metadata, opts ...CreateOption) (*a2a.Task, error) {
	if msg == nil {
		return nil, a2a.NewInvalidParamsError("Message is required")
	}
	if err := msg.Validate(); err != nil {
		return nil, a2a.NewInvalidParamsError("Invalid message: %v", err)
	}
	return s.Create(ctx, msg.TextContent(), metadata, append(opts, WithMessage(msg))...)
}

// Get returns the task with the given id.
func (s *Store) Get(ctx context.Context, taskID string) (*a2a.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.get(ctx, taskID)
}

// get must be called with s.mu held.
func (s *Store) get(ctx context.Context, taskID string) (*a2a.Task, error) {
	if taskID == "" {
		return nil, a2a.TaskNotFoundError{}
	}
	t, err := s.tasks.Get(ctx, taskID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, a2a.TaskNotFoundError{TaskID: taskID}
	}
	if err != nil {
		return nil, NewTaskStoreError("get", taskID, err)
	}
	return t, nil
}

// Exists reports whether a task with the given id is stored.
func (s *Store) Exists(ctx context.Context, taskID string) (bool, error) {
	_, err := s.Get(ctx, taskID)
	if errors.Is(err, a2a.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

// UpdateStatus moves the task to state along an edge of the transition graph.
func (s *Store) UpdateStatus(ctx context.Context, taskID string, state a2a.TaskState) (*a2a.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.get(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if !t.Status.CanTransitionTo(state) {
		return nil, a2a.InvalidTransitionError{TaskID: taskID, From: t.Status, To: state}
	}

	from := t.Status
	t.Status = state
	t.UpdatedAt = s.now()
	if err := s.tasks.Put(ctx, t.ID, t); err != nil {
		return nil, NewTaskStoreError("update", taskID, err)
	}
	s.logger.DebugContext(ctx, "task status updated",
		slog.String("task_id", taskID),
		slog.String("from", string(from)),
		slog.String("to", string(state)),
	)
	return t, nil
}

// Cancel moves the task to the canceled state.
func (s *Store) Cancel(ctx context.Context, taskID string) (*a2a.Task, error) {
	return s.UpdateStatus(ctx, taskID, a2a.TaskStateCanceled)
}

// AppendMessage adds msg to the task history. A task waiting for input resumes
// working; terminal tasks accept no further messages.
func (s *Store) AppendMessage(ctx context.Context, taskID string, msg *a2a.Message) (*a2a.Task, error) {
	if msg == nil {
		return nil, a2a.NewInvalidParamsError("Message is required")
	}
	if err := msg.Validate(); err != nil {
		return nil, a2a.NewInvalidParamsError("Invalid message: %v", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.get(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if t.Status.IsTerminal() {
		return nil, a2a.InvalidTransitionError{TaskID: taskID, From: t.Status, To: a2a.TaskStateWorking}
	}

	m := msg.Clone()
	m.SetTaskID(t.ID)
	if m.ContextID == "" {
		m.SetContextID(t.ContextID)
	}
	t.History = append(t.History, m)
	if t.Status == a2a.TaskStateInputRequired {
		t.Status = a2a.TaskStateWorking
	}
	t.UpdatedAt = s.now()

	if err := s.tasks.Put(ctx, t.ID, t); err != nil {
		return nil, NewTaskStoreError("append", taskID, err)
	}
	return t, nil
}

// List returns the tasks accepted by filter in creation order.
func (s *Store) List(ctx context.Context, filter Filter) ([]*a2a.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tasks, err := s.tasks.List(ctx, filter)
	if err != nil {
		return nil, NewTaskStoreError("list", "", err)
	}
	return tasks, nil
}

// Delete removes the task and every push notification config registered for it.
func (s *Store) Delete(ctx context.Context, taskID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.get(ctx, taskID); err != nil {
		return err
	}

	configs, err := s.configsFor(ctx, taskID)
	if err != nil {
		return NewTaskStoreError("delete", taskID, err)
	}
	for _, c := range configs {
		if _, err := s.configs.Delete(ctx, configKey(taskID, c.PushNotificationConfig.ID)); err != nil {
			return NewTaskStoreError("delete", taskID, err)
		}
	}
	if _, err := s.tasks.Delete(ctx, taskID); err != nil {
		return NewTaskStoreError("delete", taskID, err)
	}
	s.logger.DebugContext(ctx, "task deleted", slog.String("task_id", taskID), slog.Int("push_configs", len(configs)))
	return nil
}

// configsFor must be called with s.mu held.
func (s *Store) configsFor(ctx context.Context, taskID string) ([]*a2a.TaskPushNotificationConfig, error) {
	return s.configs.List(ctx, func(c *a2a.TaskPushNotificationConfig) bool {
		return c.TaskID == taskID
	})
}
