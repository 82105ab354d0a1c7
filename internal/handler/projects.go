// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/ayyavuayyavuconstruction/Ayyavu-Construction/internal/metrics"
	"github.com/ayyavuayyavuconstruction/Ayyavu-Construction/internal/middleware"
	"github.com/ayyavuayyavuconstruction/Ayyavu-Construction/internal/model"
	"github.com/ayyavuayyavuconstruction/Ayyavu-Construction/internal/service"
	"github.com/ayyavuayyavuconstruction/Ayyavu-Construction/internal/store"
	"github.com/ayyavuayyavuconstruction/Ayyavu-Construction/internal/util"
)

// ProjectResponse is the wire form of a project. Absent values are null.
type ProjectResponse struct {
	ID             int64        `json:"id"`
	Title          string       `json:"title"`
	Description    *string      `json:"description"`
	Location       *string      `json:"location"`
	Status         string       `json:"status"`
	Category       *string      `json:"category"`
	ImageURL       *string      `json:"image_url"`
	Area           *string      `json:"area"`
	Bedrooms       *int64       `json:"bedrooms"`
	Bathrooms      *int64       `json:"bathrooms"`
	Price          *json.Number `json:"price"`
	CompletionDate *string      `json:"completion_date"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

func newProjectResponse(p store.Project) ProjectResponse {
	resp := ProjectResponse{
		ID:             p.ID,
		Title:          p.Title,
		Description:    util.PtrFromNullString(p.Description),
		Location:       util.PtrFromNullString(p.Location),
		Status:         p.Status,
		Category:       util.PtrFromNullString(p.Category),
		ImageURL:       util.PtrFromNullString(p.ImageURL),
		Area:           util.PtrFromNullString(p.Area),
		CompletionDate: util.FormatNullDate(p.CompletionDate),
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
	if p.Bedrooms.Valid {
		resp.Bedrooms = &p.Bedrooms.Int64
	}
	if p.Bathrooms.Valid {
		resp.Bathrooms = &p.Bathrooms.Int64
	}
	if p.Price.Valid {
		n := json.Number(p.Price.Decimal.String())
		resp.Price = &n
	}
	return resp
}

// ProjectHandler serves the public catalog and the admin mutations.
type ProjectHandler struct {
	projects *service.ProjectService
	uploads  *service.UploadService
	metrics  *metrics.Metrics
}

// NewProjectHandler creates a new ProjectHandler. m may be nil.
func NewProjectHandler(projects *service.ProjectService, uploads *service.UploadService, m *metrics.Metrics) *ProjectHandler {
	return &ProjectHandler{
		projects: projects,
		uploads:  uploads,
		metrics:  m,
	}
}

// List handles GET /api/projects.
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	projects, err := h.projects.List(r.Context(), model.ProjectFilter{
		Status:   q.Get(fieldStatus),
		Category: q.Get(fieldCategory),
	})
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to list projects", "error", err)
		writeJSONError(w, http.StatusInternalServerError, msgDatabaseError)
		return
	}

	resp := make([]ProjectResponse, 0, len(projects))
	for _, p := range projects {
		resp = append(resp, newProjectResponse(p))
	}
	writeJSON(w, http.StatusOK, resp)
}

// Get handles GET /api/projects/{id}.
func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, msgInvalidProjectID)
		return
	}

	p, err := h.projects.Get(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err, "failed to get project", id)
		return
	}
	writeJSON(w, http.StatusOK, newProjectResponse(p))
}

// Create handles POST /api/admin/projects.
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	in, mediaRef, ok := h.readProject(w, r, "create")
	if !ok {
		return
	}

	p, err := h.projects.Create(r.Context(), in, mediaRef)
	if err != nil {
		h.recordMutation("create", err)
		h.writeServiceError(w, r, err, "failed to create project", 0)
		return
	}

	h.recordMutation("create", nil)
	slog.InfoContext(r.Context(), "project created", "project_id", p.ID, "admin_id", middleware.GetAdminID(r))
	writeJSONSuccess(w, map[string]any{
		"id":      p.ID,
		"message": "Project created successfully",
	})
}

// Update handles PUT /api/admin/projects/{id}.
func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, msgInvalidProjectID)
		return
	}

	in, mediaRef, ok := h.readProject(w, r, "update")
	if !ok {
		return
	}

	if _, err := h.projects.Update(r.Context(), id, in, mediaRef); err != nil {
		h.recordMutation("update", err)
		h.writeServiceError(w, r, err, "failed to update project", id)
		return
	}

	h.recordMutation("update", nil)
	slog.InfoContext(r.Context(), "project updated", "project_id", id, "admin_id", middleware.GetAdminID(r))
	writeJSONSuccess(w, map[string]any{"message": "Project updated successfully"})
}

// Delete handles DELETE /api/admin/projects/{id}.
func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, msgInvalidProjectID)
		return
	}

	if err := h.projects.Delete(r.Context(), id); err != nil {
		h.recordMutation("delete", err)
		h.writeServiceError(w, r, err, "failed to delete project", id)
		return
	}

	h.recordMutation("delete", nil)
	slog.InfoContext(r.Context(), "project deleted", "project_id", id, "admin_id", middleware.GetAdminID(r))
	writeJSONSuccess(w, map[string]any{"message": "Project deleted successfully"})
}

// readProject decodes the body and relocates the attachment, if any. It
// writes the error response itself and reports false when the request
// cannot continue.
func (h *ProjectHandler) readProject(w http.ResponseWriter, r *http.Request, op string) (model.ProjectInput, string, bool) {
	in, upload, err := decodeProject(r)
	if err != nil {
		h.metrics.RecordMutation(op, metrics.ResultInvalid)
		writeJSONError(w, http.StatusBadRequest, msgInvalidRequestBody)
		return model.ProjectInput{}, "", false
	}
	if upload == nil {
		return in, "", true
	}
	defer func() { _ = upload.File.Close() }()

	ref, err := h.uploads.Relocate(upload.File, upload.Header.Filename)
	if err != nil {
		h.metrics.RecordMutation(op, metrics.ResultError)
		slog.ErrorContext(r.Context(), "failed to store upload", "error", err, "filename", upload.Header.Filename)
		writeJSONError(w, http.StatusInternalServerError, msgUploadFailed)
		return model.ProjectInput{}, "", false
	}
	h.metrics.AddUploadBytes(upload.Header.Size)
	slog.DebugContext(r.Context(), "upload stored", "ref", ref, "size", upload.Header.Size)

	return in, ref, true
}

// writeServiceError maps service errors onto HTTP responses.
func (h *ProjectHandler) writeServiceError(w http.ResponseWriter, r *http.Request, err error, logMsg string, id int64) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		writeJSONError(w, http.StatusNotFound, msgProjectNotFound)
	case errors.Is(err, service.ErrInvalidInput):
		writeJSONError(w, http.StatusBadRequest, err.Error())
	default:
		slog.ErrorContext(r.Context(), logMsg, "error", err, "project_id", id)
		writeJSONError(w, http.StatusInternalServerError, msgDatabaseError)
	}
}

func (h *ProjectHandler) recordMutation(op string, err error) {
	result := metrics.ResultOK
	switch {
	case err == nil:
	case errors.Is(err, service.ErrNotFound):
		result = metrics.ResultNotFound
	case errors.Is(err, service.ErrInvalidInput):
		result = metrics.ResultInvalid
	default:
		result = metrics.ResultError
	}
	h.metrics.RecordMutation(op, result)
}
