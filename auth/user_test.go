// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package auth

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestUsers(t *testing.T) {
	tests := map[string]struct {
		user     User
		wantAuth bool
		wantName string
	}{
		"unauthenticated zero value": {
			user:     UnauthenticatedUser{},
			wantAuth: false,
			wantName: "",
		},
		"authenticated": {
			user:     AuthenticatedUser{Subject: "agent-7"},
			wantAuth: true,
			wantName: "agent-7",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if diff := cmp.Diff(tt.wantAuth, tt.user.IsAuthenticated()); diff != "" {
				t.Errorf("IsAuthenticated() mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.wantName, tt.user.UserName()); diff != "" {
				t.Errorf("UserName() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestUserFromContext(t *testing.T) {
	ctx := context.Background()
	if got := UserFromContext(ctx); got != (UnauthenticatedUser{}) {
		t.Errorf("UserFromContext(empty) = %#v, want UnauthenticatedUser", got)
	}

	ctx = WithUser(ctx, AuthenticatedUser{Subject: "alice"})
	if got := UserFromContext(ctx).UserName(); got != "alice" {
		t.Errorf("UserFromContext().UserName() = %q, want %q", got, "alice")
	}
}
