// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package a2a

// A2A RPC method names.
const (
	// MethodGetAgentCard returns the static agent card.
	MethodGetAgentCard = "get_agent_card"
	// MethodPing is a liveness probe.
	MethodPing = "ping"
	// MethodTasksSend creates a task, or appends a message to an existing one.
	MethodTasksSend = "tasks/send"
	// MethodTasksGet returns a task.
	MethodTasksGet = "tasks/get"
	// MethodTasksList lists tasks, optionally filtered.
	MethodTasksList = "tasks/list"
	// MethodTasksCancel moves a task to the canceled state.
	MethodTasksCancel = "tasks/cancel"
	// MethodTasksResubscribe re-establishes the notification channel of a task.
	MethodTasksResubscribe = "tasks/resubscribe"
	// MethodPushNotificationConfigSet sets or updates a push notification configuration.
	MethodPushNotificationConfigSet = "tasks/pushNotificationConfig/set"
	// MethodPushNotificationConfigGet returns a push notification configuration.
	MethodPushNotificationConfigGet = "tasks/pushNotificationConfig/get"
	// MethodPushNotificationConfigList lists the push notification configurations of a task.
	MethodPushNotificationConfigList = "tasks/pushNotificationConfig/list"
	// MethodPushNotificationConfigDelete removes a push notification configuration.
	MethodPushNotificationConfigDelete = "tasks/pushNotificationConfig/delete"
)

// Result status values.
const (
	StatusOK         = "ok"
	StatusConfigured = "configured"
	StatusSubscribed = "subscribed"
)
