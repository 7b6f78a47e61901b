// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package auth authenticates callers of the HTTP binding with bearer JWTs and
// carries the resulting identity through the request context.
package auth

import (
	"context"
)

// User is the identity attached to a request.
type User interface {
	// IsAuthenticated reports whether the identity was verified.
	IsAuthenticated() bool

	// UserName returns the verified subject, or "" for anonymous callers.
	UserName() string
}

// UnauthenticatedUser is the anonymous caller. Its zero value is ready to use.
type UnauthenticatedUser struct{}

// IsAuthenticated always returns false.
func (UnauthenticatedUser) IsAuthenticated() bool { return false }

// UserName always returns "".
func (UnauthenticatedUser) UserName() string { return "" }

// AuthenticatedUser is a caller whose token was verified.
type AuthenticatedUser struct {
	Subject string
}

// IsAuthenticated always returns true.
func (AuthenticatedUser) IsAuthenticated() bool { return true }

// UserName returns the token subject.
func (u AuthenticatedUser) UserName() string { return u.Subject }

type userKey struct{}

// WithUser returns a copy of ctx carrying user.
func WithUser(ctx context.Context, user User) context.Context {
	return context.WithValue(ctx, userKey{}, user)
}

// UserFromContext returns the user carried by ctx, or [UnauthenticatedUser].
func UserFromContext(ctx context.Context) User {
	if u, ok := ctx.Value(userKey{}).(User); ok && u != nil {
		return u
	}
	return UnauthenticatedUser{}
}
