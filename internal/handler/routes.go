// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ayyavuayyavuconstruction/Ayyavu-Construction/internal/middleware"
)

// API groups the handlers and guards mounted under /api.
type API struct {
	Auth     *AuthHandler
	Projects *ProjectHandler
	Gate     middleware.Authenticator
	// CSRF guards the admin sub-tree; nil disables it.
	CSRF func(http.Handler) http.Handler
}

// Mount registers the JSON API on r. The session manager's LoadAndSave must
// already be in r's middleware chain.
func (a API) Mount(r chi.Router) {
	r.Route(RouteAPI, func(r chi.Router) {
		r.Get(RouteProjects, a.Projects.List)
		r.Get(RouteProjectsID, a.Projects.Get)

		r.Route(RouteAdmin, func(r chi.Router) {
			r.Use(middleware.NoStore)
			if a.CSRF != nil {
				r.Use(a.CSRF)
			}

			r.Post(RouteLogin, a.Auth.Login)
			r.Post(RouteLogout, a.Auth.Logout)
			r.Get(RouteCheck, a.Auth.Check)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin(a.Gate))
				r.Post(RouteProjects, a.Projects.Create)
				r.Put(RouteProjectsID, a.Projects.Update)
				r.Delete(RouteProjectsID, a.Projects.Delete)
			})
		})
	})
}
