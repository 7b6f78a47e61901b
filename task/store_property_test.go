// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package task

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"pgregory.net/rapid"

	"github.com/go-a2a/a2a-exchange"
	"github.com/go-a2a/a2a-exchange/storage/memory"
)

func TestProperty_UnknownIDsAreNotFound(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		ctx := context.Background()
		store := NewStore(memory.New())
		push := NewPushConfigStore(store)

		n := rapid.IntRange(0, 5).Draw(rt, "tasks")
		for i := range n {
			if _, err := store.Create(ctx, rapid.StringMatching(`[A-Za-z ]{0,20}`).Draw(rt, "description"), nil); err != nil {
				rt.Fatalf("Create(%d) error = %v", i, err)
			}
		}

		// generated ids are uuids and never match this pattern
		id := rapid.StringMatching(`missing-[a-z0-9]{1,12}`).Draw(rt, "id")
		if _, err := store.Get(ctx, id); !errors.Is(err, a2a.ErrNotFound) {
			rt.Fatalf("Get(%q) error = %v, want ErrNotFound", id, err)
		}
		if _, err := push.Get(ctx, id, ""); !errors.Is(err, a2a.ErrNotFound) {
			rt.Fatalf("push.Get(%q) error = %v, want ErrNotFound", id, err)
		}
		if err := push.Delete(ctx, id, ""); !errors.Is(err, a2a.ErrNotFound) {
			rt.Fatalf("push.Delete(%q) error = %v, want ErrNotFound", id, err)
		}
	})
}

func TestProperty_SetThenGetReturnsConfig(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		ctx := context.Background()
		store := NewStore(memory.New())
		push := NewPushConfigStore(store)

		task, err := store.Create(ctx, "property", nil)
		if err != nil {
			rt.Fatal(err)
		}

		cfg := &a2a.PushNotificationConfig{
			ID:    rapid.StringMatching(`[a-z0-9-]{1,16}`).Draw(rt, "configID"),
			URL:   rapid.StringMatching(`https?://[a-z]{1,10}\.example\.com(/[a-z0-9]{0,8})?`).Draw(rt, "url"),
			Token: rapid.StringMatching(`[A-Za-z0-9]{0,12}`).Draw(rt, "token"),
		}
		if _, err := push.Set(ctx, task.ID, cfg); err != nil {
			rt.Fatalf("Set() error = %v", err)
		}

		got, err := push.Get(ctx, task.ID, cfg.ID)
		if err != nil {
			rt.Fatalf("Get() error = %v", err)
		}
		if diff := cmp.Diff(cfg, got.PushNotificationConfig); diff != "" {
			rt.Fatalf("Get() mismatch (-want +got):\n%s", diff)
		}

		if err := push.Delete(ctx, task.ID, cfg.ID); err != nil {
			rt.Fatalf("Delete() error = %v", err)
		}
		if _, err := push.Get(ctx, task.ID, cfg.ID); !errors.Is(err, a2a.ErrNotFound) {
			rt.Fatalf("Get() after Delete error = %v, want ErrNotFound", err)
		}
	})
}

func TestProperty_ListMatchesSetOrder(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		ctx := context.Background()
		store := NewStore(memory.New())
		push := NewPushConfigStore(store)

		var tasks []string
		for range rapid.IntRange(1, 3).Draw(rt, "tasks") {
			task, err := store.Create(ctx, "property", nil)
			if err != nil {
				rt.Fatal(err)
			}
			tasks = append(tasks, task.ID)
		}

		// model: per task, config ids in first-set order
		model := make(map[string][]string)
		ops := rapid.IntRange(0, 20).Draw(rt, "ops")
		for range ops {
			taskID := rapid.SampledFrom(tasks).Draw(rt, "taskID")
			configID := rapid.SampledFrom([]string{"a", "b", "c", "d"}).Draw(rt, "configID")

			if rapid.Bool().Draw(rt, "delete") {
				err := push.Delete(ctx, taskID, configID)
				i := slices.Index(model[taskID], configID)
				if i < 0 {
					if !errors.Is(err, a2a.ErrNotFound) {
						rt.Fatalf("Delete(absent) error = %v, want ErrNotFound", err)
					}
					continue
				}
				if err != nil {
					rt.Fatalf("Delete() error = %v", err)
				}
				model[taskID] = slices.Delete(model[taskID], i, i+1)
				continue
			}

			cfg := &a2a.PushNotificationConfig{ID: configID, URL: "https://example.com/" + configID}
			if _, err := push.Set(ctx, taskID, cfg); err != nil {
				rt.Fatalf("Set() error = %v", err)
			}
			if !slices.Contains(model[taskID], configID) {
				model[taskID] = append(model[taskID], configID)
			}
		}

		for _, taskID := range tasks {
			list, err := push.List(ctx, taskID)
			if err != nil {
				rt.Fatalf("List() error = %v", err)
			}
			got := []string{}
			for _, c := range list {
				if c.TaskID != taskID {
					rt.Fatalf("List(%s) returned config of %s", taskID, c.TaskID)
				}
				got = append(got, c.PushNotificationConfig.ID)
			}
			want := model[taskID]
			if want == nil {
				want = []string{}
			}
			if diff := cmp.Diff(want, got); diff != "" {
				rt.Fatalf("List(%s) mismatch (-want +got):\n%s", taskID, diff)
			}
		}
	})
}

func TestProperty_TransitionsFollowGraph(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		ctx := context.Background()
		store := NewStore(memory.New())

		task, err := store.Create(ctx, "property", nil)
		if err != nil {
			rt.Fatal(err)
		}

		state := a2a.TaskStateSubmitted
		for range rapid.IntRange(1, 12).Draw(rt, "steps") {
			next := rapid.SampledFrom(a2a.TaskStates).Draw(rt, "next")
			_, err := store.UpdateStatus(ctx, task.ID, next)

			if state.CanTransitionTo(next) {
				if err != nil {
					rt.Fatalf("UpdateStatus(%s -> %s) error = %v", state, next, err)
				}
				state = next
			} else if !errors.Is(err, a2a.ErrInvalidTransition) {
				rt.Fatalf("UpdateStatus(%s -> %s) error = %v, want ErrInvalidTransition", state, next, err)
			}

			got, err := store.Get(ctx, task.ID)
			if err != nil {
				rt.Fatal(err)
			}
			if got.Status != state {
				rt.Fatalf("status = %s, want %s", got.Status, state)
			}
		}
	})
}
