// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/mileusna/useragent"

	"github.com/ayyavuayyavuconstruction/Ayyavu-Construction/internal/auth"
	"github.com/ayyavuayyavuconstruction/Ayyavu-Construction/internal/metrics"
)

// CredentialVerifier checks a username and password pair.
type CredentialVerifier interface {
	Verify(ctx context.Context, username, password string) (auth.Credentials, error)
}

// SessionGate binds, reads and ends admin sessions.
type SessionGate interface {
	Establish(ctx context.Context, principalID int64) (string, error)
	IsAuthenticated(ctx context.Context) bool
	Revoke(ctx context.Context) error
}

// AuthHandler handles admin login, logout and session checks.
type AuthHandler struct {
	verifier CredentialVerifier
	gate     SessionGate
	metrics  *metrics.Metrics
}

// NewAuthHandler creates a new AuthHandler. m may be nil.
func NewAuthHandler(verifier CredentialVerifier, gate SessionGate, m *metrics.Metrics) *AuthHandler {
	return &AuthHandler{
		verifier: verifier,
		gate:     gate,
		metrics:  m,
	}
}

// Login handles POST /api/admin/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	req, err := decodeLogin(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, msgInvalidRequestBody)
		return
	}

	client := clientAttrs(r)

	creds, err := h.verifier.Verify(r.Context(), req.Username, req.Password)
	if err != nil {
		var failure *auth.AuthFailure
		if errors.As(err, &failure) {
			h.metrics.RecordLogin(metrics.LoginInvalid)
			slog.InfoContext(r.Context(), "admin login rejected",
				append([]any{"username", req.Username, "reason", string(failure.Reason)}, client...)...)
			writeJSONError(w, http.StatusUnauthorized, msgInvalidCredentials)
			return
		}
		h.metrics.RecordLogin(metrics.LoginError)
		slog.ErrorContext(r.Context(), "database error during login", "error", err, "username", req.Username)
		writeJSONError(w, http.StatusInternalServerError, msgDatabaseError)
		return
	}

	if _, err := h.gate.Establish(r.Context(), creds.PrincipalID); err != nil {
		h.metrics.RecordLogin(metrics.LoginError)
		slog.ErrorContext(r.Context(), "failed to establish session", "error", err, "admin_id", creds.PrincipalID)
		writeJSONError(w, http.StatusInternalServerError, msgDatabaseError)
		return
	}

	h.metrics.RecordLogin(metrics.LoginSuccess)
	slog.InfoContext(r.Context(), "admin logged in",
		append([]any{"admin_id", creds.PrincipalID, "username", creds.Username}, client...)...)

	writeJSONSuccess(w, map[string]any{"message": "Login successful"})
}

// Logout handles POST /api/admin/logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.gate.Revoke(r.Context()); err != nil {
		slog.ErrorContext(r.Context(), "session destroy error", "error", err)
	}
	writeJSONSuccess(w, map[string]any{"message": "Logout successful"})
}

// Check handles GET /api/admin/check.
func (h *AuthHandler) Check(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{
		"authenticated": h.gate.IsAuthenticated(r.Context()),
	})
}

// clientAttrs returns log attributes describing the caller's browser.
func clientAttrs(r *http.Request) []any {
	ua := useragent.Parse(r.UserAgent())

	browser, platform := ua.Name, ua.OS
	if browser == "" {
		browser = "Unknown"
	}
	if platform == "" {
		platform = "Unknown"
	}

	device := "desktop"
	switch {
	case ua.Mobile:
		device = "mobile"
	case ua.Tablet:
		device = "tablet"
	case ua.Bot:
		device = "bot"
	}

	return []any{"browser", browser, "os", platform, "device", device}
}
