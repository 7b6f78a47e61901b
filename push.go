// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package a2a

import (
	"fmt"
	"net/url"
	"slices"
)

// AuthenticationInfo describes how the agent authenticates against a push notification endpoint.
type AuthenticationInfo struct {
	// Schemes lists the supported authentication schemes, e.g. "Bearer".
	Schemes []string `json:"schemes,omitzero"`
	// Credentials are optional credentials for the endpoint.
	Credentials string `json:"credentials,omitzero"`
	// Extra holds members that are not part of the known shape, so they survive a round trip.
	Extra map[string]Value `json:",unknown"`
}

// Clone returns a deep copy of the authentication info.
func (a *AuthenticationInfo) Clone() *AuthenticationInfo {
	if a == nil {
		return nil
	}
	c := *a
	c.Schemes = slices.Clone(a.Schemes)
	if a.Extra != nil {
		c.Extra = Metadata(a.Extra).Clone()
	}
	return &c
}

// PushNotificationConfig is a webhook registration for task updates.
type PushNotificationConfig struct {
	// ID identifies the configuration within its task.
	ID string `json:"id,omitzero"`
	// URL is the endpoint notifications are sent to.
	URL string `json:"url"`
	// Token is an optional secret echoed back on every notification.
	Token string `json:"token,omitzero"`
	// Authentication describes how to authenticate against URL.
	Authentication *AuthenticationInfo `json:"authentication,omitzero"`
}

// Validate ensures the PushNotificationConfig has an absolute http(s) URL.
func (c *PushNotificationConfig) Validate() error {
	if c == nil {
		return fmt.Errorf("push notification config cannot be nil")
	}
	if c.URL == "" {
		return fmt.Errorf("push notification URL cannot be empty")
	}
	u, err := url.Parse(c.URL)
	if err != nil {
		return fmt.Errorf("invalid push notification URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("push notification URL must use http or https: %q", c.URL)
	}
	if u.Host == "" {
		return fmt.Errorf("push notification URL must have a host: %q", c.URL)
	}
	return nil
}

// Clone returns a deep copy of the configuration.
func (c *PushNotificationConfig) Clone() *PushNotificationConfig {
	if c == nil {
		return nil
	}
	cp := *c
	cp.Authentication = c.Authentication.Clone()
	return &cp
}

// TaskPushNotificationConfig binds a PushNotificationConfig to its task.
type TaskPushNotificationConfig struct {
	TaskID                 string                  `json:"taskId"`
	PushNotificationConfig *PushNotificationConfig `json:"pushNotificationConfig"`
}

// Validate ensures the TaskPushNotificationConfig is valid.
func (c *TaskPushNotificationConfig) Validate() error {
	if c.TaskID == "" {
		return fmt.Errorf("task ID cannot be empty")
	}
	if err := c.PushNotificationConfig.Validate(); err != nil {
		return err
	}
	if c.PushNotificationConfig.ID == "" {
		return fmt.Errorf("push notification config ID cannot be empty")
	}
	return nil
}
