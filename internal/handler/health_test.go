// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/ayyavuayyavuconstruction/Ayyavu-Construction/internal/version"
)

type staticAdminChecker bool

func (c staticAdminChecker) IsAuthenticated(context.Context) bool { return bool(c) }

type panickingAdminChecker struct{}

func (panickingAdminChecker) IsAuthenticated(context.Context) bool {
	panic("scs: no session data in context")
}

func newTestHealthHandler(t *testing.T) *HealthHandler {
	t.Helper()
	return NewHealthHandler(testDB(t), t.TempDir(), version.Info{Version: "v1.2.3"}, staticAdminChecker(true))
}

func TestHealthHandler_Health(t *testing.T) {
	handler := newTestHealthHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	handler.Health(w, req)

	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q; want application/json", ct)
	}

	var resp HealthStatus
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}

	if resp.Version != "v1.2.3" {
		t.Errorf("version = %q; want v1.2.3", resp.Version)
	}
	if resp.Checks["database"].Status != "healthy" {
		t.Errorf("database check = %+v; want healthy", resp.Checks["database"])
	}
	if _, ok := resp.Checks["disk"]; !ok {
		t.Error("expected disk check in response")
	}
	assertStatus(t, w.Code, http.StatusOK)
}

func TestHealthHandler_Health_UnhealthyDatabase(t *testing.T) {
	handler := newTestHealthHandler(t)
	_ = handler.db.Close()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	handler.Health(w, req)

	assertStatus(t, w.Code, http.StatusServiceUnavailable)

	var resp HealthStatus
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Status != "degraded" {
		t.Errorf("status = %v; want degraded", resp.Status)
	}
	if resp.Checks["database"].Status != "unhealthy" {
		t.Errorf("database check = %+v; want unhealthy", resp.Checks["database"])
	}
}

func TestHealthHandler_Health_Public(t *testing.T) {
	tests := []struct {
		name   string
		admins AdminChecker
	}{
		{"no checker", nil},
		{"anonymous", staticAdminChecker(false)},
		{"no session loaded", panickingAdminChecker{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewHealthHandler(testDB(t), t.TempDir(), version.Info{Version: "v1.2.3"}, tt.admins)
			_ = handler.db.Close()

			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			w := httptest.NewRecorder()

			handler.Health(w, req)

			assertStatus(t, w.Code, http.StatusServiceUnavailable)

			var resp map[string]any
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to unmarshal response: %v", err)
			}
			if len(resp) != 1 || resp["status"] != "degraded" {
				t.Errorf("public response = %v; want only status", resp)
			}
		})
	}
}

// testHealthProbe tests a health probe endpoint for expected status response.
func testHealthProbe(t *testing.T, path string, handlerFn func(http.ResponseWriter, *http.Request), expectedCode int, expectedStatus string) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()

	handlerFn(w, req)

	assertStatus(t, w.Code, expectedCode)

	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}

	if resp["status"] != expectedStatus {
		t.Errorf("status = %q; want %s", resp["status"], expectedStatus)
	}
}

func TestHealthHandler_Liveness(t *testing.T) {
	handler := newTestHealthHandler(t)
	testHealthProbe(t, "/health/live", handler.Liveness, http.StatusOK, "alive")
}

func TestHealthHandler_Readiness(t *testing.T) {
	handler := newTestHealthHandler(t)
	testHealthProbe(t, "/health/ready", handler.Readiness, http.StatusOK, "ready")
}

func TestHealthHandler_Readiness_NotReady(t *testing.T) {
	handler := newTestHealthHandler(t)
	_ = handler.db.Close()
	testHealthProbe(t, "/health/ready", handler.Readiness, http.StatusServiceUnavailable, "not_ready")
}

func TestHealthHandler_DiskCheck(t *testing.T) {
	handler := newTestHealthHandler(t)

	tests := []struct {
		name     string
		setupDir func(t *testing.T) string
	}{
		{
			name: "existing directory",
			setupDir: func(t *testing.T) string {
				return t.TempDir()
			},
		},
		{
			name: "non-existent directory",
			setupDir: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "nonexistent")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler.uploadsDir = tt.setupDir(t)

			check := handler.checkDiskSpace()
			if check.Status == "unhealthy" {
				t.Errorf("disk check = %+v; want healthy or degraded", check)
			}
			if check.Message == "" {
				t.Error("disk check should carry a message")
			}
		})
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		bytes uint64
		want  string
	}{
		{0, "0 B"},
		{500, "500 B"},
		{1024, "1.00 KB"},
		{1536, "1.50 KB"},
		{1048576, "1.00 MB"},
		{1572864, "1.50 MB"},
		{1073741824, "1.00 GB"},
		{1610612736, "1.50 GB"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got := formatBytes(tt.bytes)
			if got != tt.want {
				t.Errorf("formatBytes(%d) = %q; want %q", tt.bytes, got, tt.want)
			}
		})
	}
}
