// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for admin authentication,
// cross-origin protection, caching headers and request metrics.
package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/ayyavuayyavuconstruction/Ayyavu-Construction/internal/session"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

// ContextKeyAdminID holds the authenticated admin's id.
const ContextKeyAdminID ContextKey = "admin_id"

// Authenticator resolves the admin bound to a request's session.
type Authenticator interface {
	Authenticate(ctx context.Context) (int64, error)
}

// RequireAdmin rejects requests without an admin session with a JSON 401
// before the wrapped handler runs. It must sit inside the session
// manager's LoadAndSave.
func RequireAdmin(gate Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			adminID, err := gate.Authenticate(r.Context())
			if err != nil {
				if !errors.Is(err, session.ErrUnauthenticated) {
					slog.ErrorContext(r.Context(), "session lookup failed", "error", err, "path", r.URL.Path)
				}
				writeUnauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyAdminID, adminID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetAdminID returns the admin id stored by RequireAdmin, or 0.
func GetAdminID(r *http.Request) int64 {
	if id, ok := r.Context().Value(ContextKeyAdminID).(int64); ok {
		return id
	}
	return 0
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"error":   "Authentication required",
	})
}
