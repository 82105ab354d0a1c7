// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexedwards/scs/v2"
)

// principalKey is the session key holding the authenticated admin's id.
const principalKey = "admin_id"

// ErrUnauthenticated means the request carries no live admin session.
var ErrUnauthenticated = errors.New("authentication required")

// Gate binds admin principals to sessions. All methods need a context that
// went through the manager's LoadAndSave middleware.
type Gate struct {
	sm *scs.SessionManager
}

// NewGate creates a Gate over sm.
func NewGate(sm *scs.SessionManager) *Gate {
	return &Gate{sm: sm}
}

// Manager returns the underlying session manager, for mounting LoadAndSave.
func (g *Gate) Manager() *scs.SessionManager {
	return g.sm
}

// Establish starts a fresh session for principalID and returns its token.
// The token is rotated so a pre-login session id cannot be fixed by an attacker.
func (g *Gate) Establish(ctx context.Context, principalID int64) (string, error) {
	if err := g.sm.RenewToken(ctx); err != nil {
		return "", fmt.Errorf("renewing session token: %w", err)
	}
	g.sm.Put(ctx, principalKey, principalID)

	token, _, err := g.sm.Commit(ctx)
	if err != nil {
		return "", fmt.Errorf("committing session: %w", err)
	}
	return token, nil
}

// Authenticate returns the principal bound to the current session.
func (g *Gate) Authenticate(ctx context.Context) (int64, error) {
	id := g.sm.GetInt64(ctx, principalKey)
	if id == 0 {
		return 0, ErrUnauthenticated
	}
	return id, nil
}

// IsAuthenticated reports whether the current session holds a principal.
func (g *Gate) IsAuthenticated(ctx context.Context) bool {
	_, err := g.Authenticate(ctx)
	return err == nil
}

// Revoke ends the current session. Revoking an anonymous session is not an error.
func (g *Gate) Revoke(ctx context.Context) error {
	if err := g.sm.Destroy(ctx); err != nil {
		return fmt.Errorf("destroying session: %w", err)
	}
	return nil
}
