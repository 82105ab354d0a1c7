// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service implements the project catalog operations and the upload
// relocation used by the admin API.
package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ayyavuayyavuconstruction/Ayyavu-Construction/internal/model"
	"github.com/ayyavuayyavuconstruction/Ayyavu-Construction/internal/store"
	"github.com/ayyavuayyavuconstruction/Ayyavu-Construction/internal/util"
)

var (
	// ErrNotFound is returned when the addressed project does not exist.
	ErrNotFound = errors.New("project not found")
	// ErrInvalidInput is returned when a numeric or date field cannot be parsed.
	ErrInvalidInput = errors.New("invalid input")
)

// ProjectService reads and writes portfolio projects.
type ProjectService struct {
	queries *store.Queries
	now     func() time.Time
}

// NewProjectService creates a new project service.
func NewProjectService(queries *store.Queries) *ProjectService {
	return &ProjectService{
		queries: queries,
		now:     time.Now,
	}
}

// List returns the projects matching filter, newest first.
func (s *ProjectService) List(ctx context.Context, filter model.ProjectFilter) ([]store.Project, error) {
	projects, err := s.queries.ListProjects(ctx, store.ProjectFilter{
		Status:   filter.Status,
		Category: filter.Category,
	})
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	return projects, nil
}

// Get returns a single project.
func (s *ProjectService) Get(ctx context.Context, id int64) (store.Project, error) {
	p, err := s.queries.GetProject(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return store.Project{}, ErrNotFound
	}
	if err != nil {
		return store.Project{}, fmt.Errorf("getting project %d: %w", id, err)
	}
	return p, nil
}

// Create stores a new project. mediaRef is the relocated upload, or "" when
// none was sent.
func (s *ProjectService) Create(ctx context.Context, in model.ProjectInput, mediaRef string) (store.Project, error) {
	params, err := normalize(in, mediaRef)
	if err != nil {
		return store.Project{}, err
	}

	now := s.now().UTC()
	id, err := s.queries.CreateProject(ctx, store.CreateProjectParams{
		ProjectParams: params,
		CreatedAt:     now,
		UpdatedAt:     now,
	})
	if err != nil {
		return store.Project{}, fmt.Errorf("creating project: %w", err)
	}

	return s.Get(ctx, id)
}

// Update replaces every field of a project. The stored image is kept when
// mediaRef is "".
func (s *ProjectService) Update(ctx context.Context, id int64, in model.ProjectInput, mediaRef string) (store.Project, error) {
	params, err := normalize(in, mediaRef)
	if err != nil {
		return store.Project{}, err
	}

	n, err := s.queries.UpdateProject(ctx, store.UpdateProjectParams{
		ID:            id,
		ProjectParams: params,
		UpdatedAt:     s.now().UTC(),
	})
	if err != nil {
		return store.Project{}, fmt.Errorf("updating project %d: %w", id, err)
	}
	if n == 0 {
		return store.Project{}, ErrNotFound
	}

	return s.Get(ctx, id)
}

// Delete removes a project. Its image file stays on disk.
func (s *ProjectService) Delete(ctx context.Context, id int64) error {
	n, err := s.queries.DeleteProject(ctx, id)
	if err != nil {
		return fmt.Errorf("deleting project %d: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// normalize maps submitted values onto store columns. Text fields keep
// whatever was sent, including "". Numeric and date fields that are empty
// or zero become NULL, so a real zero cannot be stored.
func normalize(in model.ProjectInput, mediaRef string) (store.ProjectParams, error) {
	params := store.ProjectParams{
		Title:       util.NullStringFromPtr(in.Title),
		Description: util.NullStringFromPtr(in.Description),
		Location:    util.NullStringFromPtr(in.Location),
		Status:      util.NullStringFromPtr(in.Status),
		Category:    util.NullStringFromPtr(in.Category),
		Area:        util.NullStringFromPtr(in.Area),
	}
	if mediaRef != "" {
		params.ImageURL = sql.NullString{String: mediaRef, Valid: true}
	}

	var err error
	if params.Bedrooms, err = util.ParseNullInt64(in.Bedrooms); err != nil {
		return store.ProjectParams{}, fmt.Errorf("%w: bedrooms: %v", ErrInvalidInput, err)
	}
	if params.Bathrooms, err = util.ParseNullInt64(in.Bathrooms); err != nil {
		return store.ProjectParams{}, fmt.Errorf("%w: bathrooms: %v", ErrInvalidInput, err)
	}
	if params.Price, err = util.ParseNullDecimal(in.Price); err != nil {
		return store.ProjectParams{}, fmt.Errorf("%w: price: %v", ErrInvalidInput, err)
	}
	if params.CompletionDate, err = util.ParseNullDate(in.CompletionDate); err != nil {
		return store.ProjectParams{}, fmt.Errorf("%w: completion_date: %v", ErrInvalidInput, err)
	}

	return params, nil
}
