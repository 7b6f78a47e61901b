// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package client is a JSON-RPC client for the A2A exchange.
package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"

	"github.com/go-json-experiment/json"

	"github.com/go-a2a/a2a-exchange"
	"github.com/go-a2a/a2a-exchange/jsonrpc"
	"github.com/go-a2a/a2a-exchange/task"
)

// Client calls the methods of an exchange over HTTP.
//
// A Client is safe for concurrent use.
type Client struct {
	hc           *http.Client
	endpoint     string
	interceptors []Interceptor
	invoker      Invoker

	nextID atomic.Int64
}

// New returns a Client posting requests to endpoint.
func New(endpoint string, opts ...Option) *Client {
	c := &Client{
		hc:       http.DefaultClient,
		endpoint: endpoint,
	}
	for _, o := range opts {
		o(c)
	}
	c.invoker = chainInterceptors(c.interceptors, func(_ context.Context, req *http.Request) (*http.Response, error) {
		return c.hc.Do(req)
	})
	return c
}

// Call invokes method with params and decodes the result into result.
// A nil result discards it. A JSON-RPC error response is returned as a
// [*jsonrpc.Error].
func (c *Client) Call(ctx context.Context, method string, params, result any) error {
	req, err := jsonrpc.NewRequest(method, params, jsonrpc.IntID(c.nextID.Add(1)))
	if err != nil {
		return err
	}
	payload, err := jsonrpc.Encode(req)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	resp, err := c.post(ctx, payload)
	if err != nil {
		return err
	}
	if !resp.ID.Equal(req.ID) {
		return fmt.Errorf("response id %s does not match request id %s", resp.ID, req.ID)
	}
	if resp.Error != nil {
		return resp.Error
	}
	if result == nil {
		return nil
	}
	if err := resp.DecodeResult(result); err != nil {
		return fmt.Errorf("decode %s result: %w", method, err)
	}
	return nil
}

func (c *Client) post(ctx context.Context, payload []byte) (*jsonrpc.Response, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	httpResp, err := c.invoker(ctx, httpReq)
	if err != nil {
		return nil, fmt.Errorf("post %s: %w", c.endpoint, err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(httpResp.Body, 512))
		return nil, &HTTPError{StatusCode: httpResp.StatusCode, Body: string(bytes.TrimSpace(body))}
	}

	var resp jsonrpc.Response
	if err := json.UnmarshalRead(httpResp.Body, &resp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &resp, nil
}

// Ping checks that the exchange answers.
func (c *Client) Ping(ctx context.Context) error {
	var res struct {
		Status string `json:"status"`
	}
	if err := c.Call(ctx, a2a.MethodPing, nil, &res); err != nil {
		return err
	}
	if res.Status != a2a.StatusOK {
		return fmt.Errorf("unexpected ping status %q", res.Status)
	}
	return nil
}

// AgentCard returns the card served by get_agent_card.
func (c *Client) AgentCard(ctx context.Context) (*a2a.AgentCard, error) {
	var card a2a.AgentCard
	if err := c.Call(ctx, a2a.MethodGetAgentCard, nil, &card); err != nil {
		return nil, err
	}
	return &card, nil
}

// SendParams are the parameters of tasks/send.
type SendParams struct {
	Message     *a2a.Message `json:"message,omitzero"`
	Description string       `json:"description,omitzero"`
	ContextID   string       `json:"contextId,omitzero"`
	Metadata    a2a.Metadata `json:"metadata,omitzero"`
}

// SendTask creates a task, or appends the message to the task it names.
func (c *Client) SendTask(ctx context.Context, params *SendParams) (*a2a.Task, error) {
	var t a2a.Task
	if err := c.Call(ctx, a2a.MethodTasksSend, params, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

type taskIDParams struct {
	TaskID   string `json:"taskId"`
	ConfigID string `json:"configId,omitzero"`
}

// GetTask returns the task with the given id.
func (c *Client) GetTask(ctx context.Context, taskID string) (*a2a.Task, error) {
	var t a2a.Task
	if err := c.Call(ctx, a2a.MethodTasksGet, &taskIDParams{TaskID: taskID}, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// ListParams filter tasks/list. Zero fields do not filter.
type ListParams struct {
	Status    a2a.TaskState `json:"status,omitzero"`
	ContextID string        `json:"contextId,omitzero"`
}

// ListTasks returns the tasks accepted by params in creation order.
func (c *Client) ListTasks(ctx context.Context, params *ListParams) ([]*a2a.Task, error) {
	if params == nil {
		params = &ListParams{}
	}
	var tasks []*a2a.Task
	if err := c.Call(ctx, a2a.MethodTasksList, params, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// CancelTask moves the task to the canceled state.
func (c *Client) CancelTask(ctx context.Context, taskID string) (*a2a.Task, error) {
	var t a2a.Task
	if err := c.Call(ctx, a2a.MethodTasksCancel, &taskIDParams{TaskID: taskID}, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// Resubscribe re-establishes the notification channel of a task.
func (c *Client) Resubscribe(ctx context.Context, taskID string) (*task.ResubscribeResult, error) {
	var res task.ResubscribeResult
	if err := c.Call(ctx, a2a.MethodTasksResubscribe, &taskIDParams{TaskID: taskID}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// SetPushConfig registers or replaces a push notification config of a task.
func (c *Client) SetPushConfig(ctx context.Context, taskID string, cfg *a2a.PushNotificationConfig) (*task.SetResult, error) {
	params := struct {
		TaskID string                      `json:"taskId"`
		Config *a2a.PushNotificationConfig `json:"config"`
	}{TaskID: taskID, Config: cfg}

	var res task.SetResult
	if err := c.Call(ctx, a2a.MethodPushNotificationConfigSet, &params, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// GetPushConfig returns a push notification config. An empty configID
// selects the first config set for the task.
func (c *Client) GetPushConfig(ctx context.Context, taskID, configID string) (*a2a.PushNotificationConfig, error) {
	var res task.GetResult
	if err := c.Call(ctx, a2a.MethodPushNotificationConfigGet, &taskIDParams{TaskID: taskID, ConfigID: configID}, &res); err != nil {
		return nil, err
	}
	return res.PushNotificationConfig, nil
}

// ListPushConfigs returns the push notification configs of a task in set order.
func (c *Client) ListPushConfigs(ctx context.Context, taskID string) ([]*a2a.TaskPushNotificationConfig, error) {
	var configs []*a2a.TaskPushNotificationConfig
	if err := c.Call(ctx, a2a.MethodPushNotificationConfigList, &taskIDParams{TaskID: taskID}, &configs); err != nil {
		return nil, err
	}
	return configs, nil
}

// DeletePushConfig removes a push notification config. An empty configID
// selects the config keyed by the task id.
func (c *Client) DeletePushConfig(ctx context.Context, taskID, configID string) error {
	return c.Call(ctx, a2a.MethodPushNotificationConfigDelete, &taskIDParams{TaskID: taskID, ConfigID: configID}, nil)
}
