// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"context"

	"github.com/go-a2a/a2a-exchange"
	"github.com/go-a2a/a2a-exchange/task"
)

// handlerFunc executes one method against decoded params.
type handlerFunc func(ctx context.Context, p params) (any, error)

// StatusResult is the result of ping.
type StatusResult struct {
	Status string `json:"status"`
}

// routes returns the fixed routing table.
func (d *Dispatcher) routes() map[string]handlerFunc {
	return map[string]handlerFunc{
		a2a.MethodGetAgentCard:                 d.handleGetAgentCard,
		a2a.MethodPing:                         d.handlePing,
		a2a.MethodTasksSend:                    d.handleTasksSend,
		a2a.MethodTasksGet:                     d.handleTasksGet,
		a2a.MethodTasksList:                    d.handleTasksList,
		a2a.MethodTasksCancel:                  d.handleTasksCancel,
		a2a.MethodTasksResubscribe:             d.handleTasksResubscribe,
		a2a.MethodPushNotificationConfigSet:    d.handlePushConfigSet,
		a2a.MethodPushNotificationConfigGet:    d.handlePushConfigGet,
		a2a.MethodPushNotificationConfigList:   d.handlePushConfigList,
		a2a.MethodPushNotificationConfigDelete: d.handlePushConfigDelete,
	}
}

func (d *Dispatcher) handleGetAgentCard(ctx context.Context, _ params) (any, error) {
	return d.card, nil
}

func (d *Dispatcher) handlePing(ctx context.Context, _ params) (any, error) {
	return &StatusResult{Status: a2a.StatusOK}, nil
}

// handleTasksSend continues the task named by message.taskId, or creates a new
// task from the message and/or description.
func (d *Dispatcher) handleTasksSend(ctx context.Context, p params) (any, error) {
	var msg *a2a.Message
	if _, err := p.decode(&msg, "message"); err != nil {
		return nil, err
	}
	description, err := p.str("description")
	if err != nil {
		return nil, err
	}
	contextID, err := p.str("contextId")
	if err != nil {
		return nil, err
	}
	var metadata a2a.Metadata
	if _, err := p.decode(&metadata, "metadata"); err != nil {
		return nil, err
	}

	switch {
	case msg != nil && msg.TaskID != "":
		return d.tasks.AppendMessage(ctx, msg.TaskID, msg)
	case msg != nil && description == "":
		return d.tasks.CreateFromMessage(ctx, msg, metadata, task.WithContextID(contextID))
	case msg != nil:
		if err := msg.Validate(); err != nil {
			return nil, a2a.NewInvalidParamsError("Invalid message: %v", err)
		}
		return d.tasks.Create(ctx, description, metadata, task.WithContextID(contextID), task.WithMessage(msg))
	case description != "":
		return d.tasks.Create(ctx, description, metadata, task.WithContextID(contextID))
	default:
		return nil, a2a.NewInvalidParamsError("Message or description is required")
	}
}

func (d *Dispatcher) handleTasksGet(ctx context.Context, p params) (any, error) {
	taskID, err := p.taskID("taskId", "id")
	if err != nil {
		return nil, err
	}
	return d.tasks.Get(ctx, taskID)
}

func (d *Dispatcher) handleTasksList(ctx context.Context, p params) (any, error) {
	var filters []task.Filter

	status, err := p.str("status")
	if err != nil {
		return nil, err
	}
	if status != "" {
		state := a2a.TaskState(status)
		if !state.Valid() {
			return nil, a2a.NewInvalidParamsError("Invalid status: %s", status)
		}
		filters = append(filters, task.ByState(state))
	}

	contextID, err := p.str("contextId")
	if err != nil {
		return nil, err
	}
	if contextID != "" {
		filters = append(filters, task.ByContext(contextID))
	}

	return d.tasks.List(ctx, task.And(filters...))
}

// handleTasksCancel cancels a working or input-required task. Tasks leave
// submitted only when agent-side code calls [task.Store.UpdateStatus], so a
// task nothing has picked up yet cannot be canceled.
func (d *Dispatcher) handleTasksCancel(ctx context.Context, p params) (any, error) {
	taskID, err := p.taskID("taskId", "id")
	if err != nil {
		return nil, err
	}
	return d.tasks.Cancel(ctx, taskID)
}

func (d *Dispatcher) handleTasksResubscribe(ctx context.Context, p params) (any, error) {
	taskID, err := p.taskID()
	if err != nil {
		return nil, err
	}
	return d.push.Resubscribe(ctx, taskID)
}

func (d *Dispatcher) handlePushConfigSet(ctx context.Context, p params) (any, error) {
	taskID, err := p.taskID()
	if err != nil {
		return nil, err
	}
	return d.push.Set(ctx, taskID, p.pushConfig())
}

func (d *Dispatcher) handlePushConfigGet(ctx context.Context, p params) (any, error) {
	taskID, err := p.taskID()
	if err != nil {
		return nil, err
	}
	configID, err := p.str("configId", "pushNotificationConfigId")
	if err != nil {
		return nil, err
	}
	return d.push.Get(ctx, taskID, configID)
}

func (d *Dispatcher) handlePushConfigList(ctx context.Context, p params) (any, error) {
	taskID, err := p.taskID()
	if err != nil {
		return nil, err
	}
	return d.push.List(ctx, taskID)
}

func (d *Dispatcher) handlePushConfigDelete(ctx context.Context, p params) (any, error) {
	taskID, err := p.taskID()
	if err != nil {
		return nil, err
	}
	configID, err := p.str("configId", "pushNotificationConfigId")
	if err != nil {
		return nil, err
	}
	if err := d.push.Delete(ctx, taskID, configID); err != nil {
		return nil, err
	}
	return nil, nil
}
