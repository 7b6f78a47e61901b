// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package task

import (
	"context"
	"errors"
	"log/slog"

	"github.com/go-a2a/a2a-exchange"
	"github.com/go-a2a/a2a-exchange/storage"
)

// SetResult is returned by [PushConfigStore.Set].
type SetResult struct {
	Status string `json:"status"`
	TaskID string `json:"taskId"`
}

// GetResult is returned by [PushConfigStore.Get].
type GetResult struct {
	PushNotificationConfig *a2a.PushNotificationConfig `json:"pushNotificationConfig"`
}

// ResubscribeResult is returned by [PushConfigStore.Resubscribe].
type ResubscribeResult struct {
	Status string `json:"status"`
	TaskID string `json:"taskId"`
}

// PushConfigStore is the registry of push notification configs.
//
// A task may hold several configs, each identified by its config id. A config
// registered without an id is stored under the task id. Configs are kept in the
// order they were first set.
type PushConfigStore struct {
	tasks  *Store
	logger *slog.Logger
}

// NewPushConfigStore creates a registry sharing the lock and backend of tasks.
func NewPushConfigStore(tasks *Store) *PushConfigStore {
	return &PushConfigStore{tasks: tasks, logger: tasks.logger}
}

func configKey(taskID, configID string) string {
	return taskID + "/" + configID
}

// Set registers cfg for the task, replacing a config with the same id.
func (s *PushConfigStore) Set(ctx context.Context, taskID string, cfg *a2a.PushNotificationConfig) (*SetResult, error) {
	if taskID == "" {
		return nil, a2a.NewInvalidParamsError("Task ID is required")
	}
	if cfg == nil {
		return nil, a2a.NewInvalidParamsError("Valid config object is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, a2a.NewInvalidParamsError("Valid config object is required: %v", err)
	}

	s.tasks.mu.Lock()
	defer s.tasks.mu.Unlock()

	if _, err := s.tasks.get(ctx, taskID); err != nil {
		return nil, err
	}

	c := cfg.Clone()
	if c.ID == "" {
		c.ID = taskID
	}
	record := &a2a.TaskPushNotificationConfig{TaskID: taskID, PushNotificationConfig: c}
	if err := s.tasks.configs.Put(ctx, configKey(taskID, c.ID), record); err != nil {
		return nil, NewPushConfigStoreError("set", taskID, err)
	}
	s.logger.DebugContext(ctx, "push notification config set", slog.String("task_id", taskID), slog.String("config_id", c.ID))

	return &SetResult{Status: a2a.StatusConfigured, TaskID: taskID}, nil
}

// Get returns the config with the given id. An empty configID selects the
// first config set for the task.
func (s *PushConfigStore) Get(ctx context.Context, taskID, configID string) (*GetResult, error) {
	s.tasks.mu.RLock()
	defer s.tasks.mu.RUnlock()

	if _, err := s.tasks.get(ctx, taskID); err != nil {
		return nil, err
	}

	if configID != "" {
		record, err := s.tasks.configs.Get(ctx, configKey(taskID, configID))
		if errors.Is(err, storage.ErrNotFound) {
			return nil, a2a.PushConfigNotFoundError{TaskID: taskID, ConfigID: configID}
		}
		if err != nil {
			return nil, NewPushConfigStoreError("get", taskID, err)
		}
		return &GetResult{PushNotificationConfig: record.PushNotificationConfig}, nil
	}

	records, err := s.tasks.configsFor(ctx, taskID)
	if err != nil {
		return nil, NewPushConfigStoreError("get", taskID, err)
	}
	if len(records) == 0 {
		return nil, a2a.PushConfigNotFoundError{TaskID: taskID}
	}
	return &GetResult{PushNotificationConfig: records[0].PushNotificationConfig}, nil
}

// List returns every config of the task in set order.
func (s *PushConfigStore) List(ctx context.Context, taskID string) ([]*a2a.TaskPushNotificationConfig, error) {
	s.tasks.mu.RLock()
	defer s.tasks.mu.RUnlock()

	if _, err := s.tasks.get(ctx, taskID); err != nil {
		return nil, err
	}
	records, err := s.tasks.configsFor(ctx, taskID)
	if err != nil {
		return nil, NewPushConfigStoreError("list", taskID, err)
	}
	return records, nil
}

// Delete removes the config with the given id. An empty configID selects the
// same config as [PushConfigStore.Get]: the first one set for the task.
func (s *PushConfigStore) Delete(ctx context.Context, taskID, configID string) error {
	s.tasks.mu.Lock()
	defer s.tasks.mu.Unlock()

	if _, err := s.tasks.get(ctx, taskID); err != nil {
		return err
	}
	if configID == "" {
		records, err := s.tasks.configsFor(ctx, taskID)
		if err != nil {
			return NewPushConfigStoreError("delete", taskID, err)
		}
		if len(records) == 0 {
			return a2a.PushConfigNotFoundError{TaskID: taskID}
		}
		configID = records[0].PushNotificationConfig.ID
	}

	removed, err := s.tasks.configs.Delete(ctx, configKey(taskID, configID))
	if err != nil {
		return NewPushConfigStoreError("delete", taskID, err)
	}
	if !removed {
		return a2a.PushConfigNotFoundError{TaskID: taskID, ConfigID: configID}
	}
	s.logger.DebugContext(ctx, "push notification config deleted", slog.String("task_id", taskID), slog.String("config_id", configID))
	return nil
}

// Resubscribe confirms that the task exists. It does not modify any state.
func (s *PushConfigStore) Resubscribe(ctx context.Context, taskID string) (*ResubscribeResult, error) {
	if _, err := s.tasks.Get(ctx, taskID); err != nil {
		return nil, err
	}
	return &ResubscribeResult{Status: a2a.StatusSubscribed, TaskID: taskID}, nil
}
