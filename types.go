// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package a2a

import (
	"fmt"
	"net/url"
)

// PushNotificationAuthenticationInfo defines authentication details for push notifications.
type PushNotificationAuthenticationInfo struct {
	// Optional credentials.
	Credentials string `json:"credentials,omitzero"`

	// Supported authentication schemes - e.g. Basic, Bearer.
	Schemes []string `json:"schemes"`
}

// PushNotificationConfig is the configuration for setting up push notifications for task updates.
type PushNotificationConfig struct {
	Authentication *PushNotificationAuthenticationInfo `json:"authentication,omitzero"`

	// Push Notification ID - created by server to support multiple callbacks.
	ID string `json:"id,omitzero"`

	// Token unique to this task/session.
	Token string `json:"token,omitzero"`

	// URL for sending the push notifications.
	URL string `json:"url"`
}

// Validate ensures the PushNotificationConfig is valid.
func (c *PushNotificationConfig) Validate() error {
	if c.URL == "" {
		return fmt.Errorf("push notification URL cannot be empty")
	}
	u, err := url.Parse(c.URL)
	if err != nil {
		return fmt.Errorf("invalid push notification URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("push notification URL must use http or https, got %q", u.Scheme)
	}
	return nil
}

// Clone returns a deep copy of c.
func (c *PushNotificationConfig) Clone() *PushNotificationConfig {
	if c == nil {
		return nil
	}

	out := *c
	if c.Authentication != nil {
		out.Authentication = &PushNotificationAuthenticationInfo{
			Credentials: c.Authentication.Credentials,
			Schemes:     cloneStrings(c.Authentication.Schemes),
		}
	}
	return &out
}

// TaskPushNotificationConfig holds the parameters for setting or getting push notification configuration for a task.
type TaskPushNotificationConfig struct {
	// Push notification configuration.
	PushNotificationConfig *PushNotificationConfig `json:"pushNotificationConfig"`

	// Task id.
	TaskID string `json:"taskId"`
}
