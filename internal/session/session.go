// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package session configures the scs session manager and the admin gate
// built on top of it.
package session

import (
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
)

// New creates a session manager backed by store.
// Cookies last for the browser session; lifetime bounds the server side.
func New(store scs.Store, lifetime time.Duration, isDev bool) *scs.SessionManager {
	sm := scs.New()
	sm.Store = store

	sm.Lifetime = lifetime
	sm.Cookie.Persist = false
	sm.Cookie.HttpOnly = true
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Secure = !isDev // Secure cookies in production only
	sm.Cookie.Path = "/"

	if !isDev {
		// __Host- requires Secure, Path=/ and no Domain
		sm.Cookie.Name = "__Host-session"
	}

	return sm
}
