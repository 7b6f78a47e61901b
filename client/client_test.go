// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package client_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/go-a2a/a2a-exchange"
	"github.com/go-a2a/a2a-exchange/auth"
	"github.com/go-a2a/a2a-exchange/client"
	"github.com/go-a2a/a2a-exchange/jsonrpc"
	"github.com/go-a2a/a2a-exchange/server"
	"github.com/go-a2a/a2a-exchange/storage/memory"
	"github.com/go-a2a/a2a-exchange/task"
)

func newExchange(t *testing.T, opts ...server.HTTPOption) *httptest.Server {
	t.Helper()
	store := task.NewStore(memory.New())
	d := server.NewDispatcher(store, task.NewPushConfigStore(store))
	srv := httptest.NewServer(server.NewHTTPHandler(d, opts...))
	t.Cleanup(srv.Close)
	return srv
}

func TestClientTaskLifecycle(t *testing.T) {
	ctx := context.Background()
	c := client.New(newExchange(t).URL + "/")

	if err := c.Ping(ctx); err != nil {
		t.Fatalf("Ping() error = %v", err)
	}

	created, err := c.SendTask(ctx, &client.SendParams{
		Message:  a2a.NewUserMessage("summarize the report"),
		Metadata: a2a.Metadata{"priority": a2a.NumberValue(1)},
	})
	if err != nil {
		t.Fatalf("SendTask() error = %v", err)
	}
	if created.Status != a2a.TaskStateSubmitted || created.Description != "summarize the report" {
		t.Errorf("SendTask() = %+v", created)
	}

	got, err := c.GetTask(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetTask() error = %v", err)
	}
	if diff := cmp.Diff(created, got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("GetTask() mismatch (-want +got):\n%s", diff)
	}

	followUp := a2a.NewUserMessage("and translate it")
	followUp.SetTaskID(created.ID)
	working, err := c.SendTask(ctx, &client.SendParams{Message: followUp})
	if err != nil {
		t.Fatalf("SendTask(follow-up) error = %v", err)
	}
	if len(working.History) != 2 {
		t.Errorf("history has %d messages, want 2", len(working.History))
	}

	submitted, err := c.ListTasks(ctx, &client.ListParams{Status: a2a.TaskStateSubmitted})
	if err != nil {
		t.Fatalf("ListTasks() error = %v", err)
	}
	if len(submitted) != 1 {
		t.Errorf("ListTasks(submitted) returned %d tasks, want 1", len(submitted))
	}

	if _, err := c.CancelTask(ctx, created.ID); !client.IsInvalidTransition(err) {
		t.Errorf("CancelTask(submitted) error = %v, want an invalid transition", err)
	}
}

func TestClientErrors(t *testing.T) {
	ctx := context.Background()
	c := client.New(newExchange(t).URL + "/")

	_, err := c.GetTask(ctx, "missing")
	if !client.IsNotFound(err) {
		t.Fatalf("GetTask(missing) error = %v, want NotFound", err)
	}
	var rpcErr *jsonrpc.Error
	if !errors.As(err, &rpcErr) || rpcErr.Message != "Task not found: missing" {
		t.Errorf("error = %#v", err)
	}

	if _, err := c.SendTask(ctx, &client.SendParams{}); !client.IsInvalidParams(err) {
		t.Errorf("SendTask(empty) error = %v, want InvalidParams", err)
	}

	err = c.Call(ctx, "tasks/unknown", nil, nil)
	if got := client.ErrorCode(err); got != jsonrpc.MethodNotFoundCode {
		t.Errorf("ErrorCode() = %d, want %d", got, jsonrpc.MethodNotFoundCode)
	}
}

func TestClientPushConfigs(t *testing.T) {
	ctx := context.Background()
	c := client.New(newExchange(t).URL + "/")

	tk, err := c.SendTask(ctx, &client.SendParams{Description: "Test task"})
	if err != nil {
		t.Fatal(err)
	}

	set, err := c.SetPushConfig(ctx, tk.ID, &a2a.PushNotificationConfig{URL: "https://example.com/webhook"})
	if err != nil {
		t.Fatalf("SetPushConfig() error = %v", err)
	}
	if diff := cmp.Diff(&task.SetResult{Status: "configured", TaskID: tk.ID}, set); diff != "" {
		t.Errorf("SetPushConfig() mismatch (-want +got):\n%s", diff)
	}
	if _, err := c.SetPushConfig(ctx, tk.ID, &a2a.PushNotificationConfig{ID: "second", URL: "https://example.com/second"}); err != nil {
		t.Fatal(err)
	}

	cfg, err := c.GetPushConfig(ctx, tk.ID, "")
	if err != nil {
		t.Fatalf("GetPushConfig() error = %v", err)
	}
	if diff := cmp.Diff(&a2a.PushNotificationConfig{ID: tk.ID, URL: "https://example.com/webhook"}, cfg); diff != "" {
		t.Errorf("GetPushConfig() mismatch (-want +got):\n%s", diff)
	}

	list, err := c.ListPushConfigs(ctx, tk.ID)
	if err != nil {
		t.Fatalf("ListPushConfigs() error = %v", err)
	}
	var ids []string
	for _, entry := range list {
		ids = append(ids, entry.PushNotificationConfig.ID)
	}
	if diff := cmp.Diff([]string{tk.ID, "second"}, ids); diff != "" {
		t.Errorf("ListPushConfigs() ids mismatch (-want +got):\n%s", diff)
	}

	if err := c.DeletePushConfig(ctx, tk.ID, ""); err != nil {
		t.Fatalf("DeletePushConfig() error = %v", err)
	}
	if _, err := c.GetPushConfig(ctx, tk.ID, tk.ID); !client.IsNotFound(err) {
		t.Errorf("GetPushConfig(deleted) error = %v, want NotFound", err)
	}

	res, err := c.Resubscribe(ctx, tk.ID)
	if err != nil {
		t.Fatalf("Resubscribe() error = %v", err)
	}
	if res.Status != "subscribed" || res.TaskID != tk.ID {
		t.Errorf("Resubscribe() = %+v", res)
	}
}

func TestClientAgentCard(t *testing.T) {
	ctx := context.Background()
	srv := newExchange(t)

	viaRPC, err := client.New(srv.URL + "/").AgentCard(ctx)
	if err != nil {
		t.Fatalf("AgentCard() error = %v", err)
	}
	viaHTTP, err := client.NewCardResolver(srv.URL, nil).AgentCard(ctx, "")
	if err != nil {
		t.Fatalf("CardResolver.AgentCard() error = %v", err)
	}
	if diff := cmp.Diff(viaRPC, viaHTTP); diff != "" {
		t.Errorf("agent cards differ (-rpc +http):\n%s", diff)
	}
	if diff := cmp.Diff(server.DefaultAgentCard(), viaHTTP); diff != "" {
		t.Errorf("agent card mismatch (-want +got):\n%s", diff)
	}

	if _, err := client.NewCardResolver(srv.URL, nil).AgentCard(ctx, "/missing.json"); err == nil {
		t.Error("AgentCard(missing path) succeeded")
	}
}

func TestClientBearerToken(t *testing.T) {
	ctx := context.Background()
	v, err := auth.NewVerifier([]byte("client-secret"), "a2a-exchange")
	if err != nil {
		t.Fatal(err)
	}
	srv := newExchange(t, server.WithVerifier(v))

	err = client.New(srv.URL + "/").Ping(ctx)
	var httpErr *client.HTTPError
	if !errors.As(err, &httpErr) || httpErr.StatusCode != http.StatusUnauthorized {
		t.Fatalf("Ping() without token error = %v, want HTTP 401", err)
	}

	token, err := v.Sign("bob", time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	if err := client.New(srv.URL+"/", client.WithBearerToken(token)).Ping(ctx); err != nil {
		t.Errorf("Ping() with token error = %v", err)
	}
}

func TestRetryInterceptor(t *testing.T) {
	ctx := context.Background()
	exchange := newExchange(t)

	var calls atomic.Int32
	flaky := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			http.Error(w, "try again", http.StatusServiceUnavailable)
			return
		}
		// forward to the real exchange
		req, _ := http.NewRequestWithContext(r.Context(), r.Method, exchange.URL+"/", r.Body)
		req.Header = r.Header.Clone()
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadGateway)
			return
		}
		defer resp.Body.Close()
		w.Header().Set("Content-Type", resp.Header.Get("Content-Type"))
		w.WriteHeader(resp.StatusCode)
		io.Copy(w, resp.Body)
	}))
	t.Cleanup(flaky.Close)

	policy := &client.RetryPolicy{MaxAttempts: 3, InitialDelay: time.Millisecond, MaxDelay: 5 * time.Millisecond, Multiplier: 2}
	c := client.New(flaky.URL, client.WithInterceptors(client.RetryInterceptor(policy)))
	if err := c.Ping(ctx); err != nil {
		t.Fatalf("Ping() error = %v", err)
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("server saw %d calls, want 3", got)
	}

	calls.Store(-10)
	err := c.Ping(ctx)
	var httpErr *client.HTTPError
	if !errors.As(err, &httpErr) || httpErr.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("Ping() after exhausting retries error = %v, want HTTP 503", err)
	}
}
