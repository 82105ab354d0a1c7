// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// ErrUnknownPrincipal is returned by a CredentialLookup when no admin has the
// requested username.
var ErrUnknownPrincipal = errors.New("unknown principal")

// Credentials is what the store knows about an admin principal.
type Credentials struct {
	PrincipalID  int64
	Username     string
	PasswordHash string
}

// CredentialLookup finds the stored credentials for a username.
type CredentialLookup interface {
	LookupCredentials(ctx context.Context, username string) (Credentials, error)
}

// FailureReason says why a login attempt was rejected.
type FailureReason string

// Failure reasons. Both surface to clients as the same generic error.
const (
	ReasonNotFound FailureReason = "not_found"
	ReasonMismatch FailureReason = "mismatch"
)

// AuthFailure is returned by Verify when the credentials are wrong.
type AuthFailure struct {
	Reason FailureReason
}

func (e *AuthFailure) Error() string {
	return fmt.Sprintf("authentication failed: %s", e.Reason)
}

// PasswordUpdater replaces the stored hash of a principal.
type PasswordUpdater interface {
	UpdatePasswordHash(ctx context.Context, principalID int64, hash string) error
}

// Verifier checks submitted credentials against stored hashes.
type Verifier struct {
	lookup  CredentialLookup
	updater PasswordUpdater
}

// NewVerifier creates a Verifier over the given lookup. When the lookup also
// implements PasswordUpdater, hashes with outdated parameters (including
// bcrypt) are replaced after a successful verification.
func NewVerifier(lookup CredentialLookup) *Verifier {
	v := &Verifier{lookup: lookup}
	if u, ok := lookup.(PasswordUpdater); ok {
		v.updater = u
	}
	return v
}

var (
	dummyHashOnce sync.Once
	dummyHash     string
)

// burnHash spends the same work as a real verification so unknown usernames
// are not distinguishable by response time.
func burnHash(password string) {
	dummyHashOnce.Do(func() {
		dummyHash, _ = HashArgon2("timing-equalizer")
	})
	if dummyHash != "" {
		_, _ = VerifyArgon2(password, dummyHash)
	}
}

// Verify returns the principal for a matching username and password. Wrong
// credentials yield an *AuthFailure; any other error comes from the lookup
// or a corrupt stored hash. A failed rehash is logged and does not fail the
// verification.
func (v *Verifier) Verify(ctx context.Context, username, password string) (Credentials, error) {
	creds, err := v.lookup.LookupCredentials(ctx, username)
	if errors.Is(err, ErrUnknownPrincipal) {
		burnHash(password)
		return Credentials{}, &AuthFailure{Reason: ReasonNotFound}
	}
	if err != nil {
		return Credentials{}, fmt.Errorf("looking up credentials: %w", err)
	}

	ok, err := CheckPassword(password, creds.PasswordHash)
	if err != nil {
		return Credentials{}, fmt.Errorf("checking password for %q: %w", username, err)
	}
	if !ok {
		return Credentials{}, &AuthFailure{Reason: ReasonMismatch}
	}

	if v.updater != nil && NeedsRehash(creds.PasswordHash) {
		v.rehash(ctx, &creds, password)
	}

	return creds, nil
}

func (v *Verifier) rehash(ctx context.Context, creds *Credentials, password string) {
	newHash, err := HashPassword(password)
	if err != nil {
		slog.ErrorContext(ctx, "failed to re-hash password", "error", err, "admin_id", creds.PrincipalID)
		return
	}
	if err := v.updater.UpdatePasswordHash(ctx, creds.PrincipalID, newHash); err != nil {
		slog.ErrorContext(ctx, "failed to store re-hashed password", "error", err, "admin_id", creds.PrincipalID)
		return
	}
	creds.PasswordHash = newHash
	slog.InfoContext(ctx, "password re-hashed with updated parameters", "admin_id", creds.PrincipalID)
}
