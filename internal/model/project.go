// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model holds the project shapes shared by handlers, services and the store.
package model

// ProjectStatus is the lifecycle stage of a portfolio project.
type ProjectStatus string

// Project statuses. The projects table rejects anything else.
const (
	ProjectStatusCompleted ProjectStatus = "completed"
	ProjectStatusOngoing   ProjectStatus = "ongoing"
	ProjectStatusUpcoming  ProjectStatus = "upcoming"
)

// ProjectInput carries the submitted fields of a create or update exactly as
// received. A nil text field was not submitted; numeric and date fields are
// left unparsed so the service decides how empty and zero values persist.
type ProjectInput struct {
	Title          *string
	Description    *string
	Location       *string
	Status         *string
	Category       *string
	Area           *string
	Bedrooms       string
	Bathrooms      string
	Price          string
	CompletionDate string
}

// ProjectFilter narrows a project listing. Empty fields match everything.
type ProjectFilter struct {
	Status   string
	Category string
}
