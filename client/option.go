// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"net/http"
)

// Option configures a [Client].
type Option func(*Client)

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.hc = hc
	}
}

// WithInterceptors appends interceptors. They run in the given order.
func WithInterceptors(interceptors ...Interceptor) Option {
	return func(c *Client) {
		c.interceptors = append(c.interceptors, interceptors...)
	}
}

// WithBearerToken authenticates every request with token.
func WithBearerToken(token string) Option {
	return WithInterceptors(HeaderInterceptor(map[string]string{"Authorization": "Bearer " + token}))
}
