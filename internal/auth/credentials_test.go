package auth

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

type fakeLookup struct {
	users map[string]Credentials
	err   error
	calls int
}

func (f *fakeLookup) LookupCredentials(_ context.Context, username string) (Credentials, error) {
	f.calls++
	if f.err != nil {
		return Credentials{}, f.err
	}
	c, ok := f.users[username]
	if !ok {
		return Credentials{}, ErrUnknownPrincipal
	}
	return c, nil
}

func newFakeLookup(t *testing.T) *fakeLookup {
	t.Helper()
	hash, err := HashPassword("admin123")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	return &fakeLookup{users: map[string]Credentials{
		"admin": {PrincipalID: 1, Username: "admin", PasswordHash: hash},
	}}
}

func TestVerify_Success(t *testing.T) {
	lookup := newFakeLookup(t)
	v := NewVerifier(lookup)

	creds, err := v.Verify(context.Background(), "admin", "admin123")
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if creds.PrincipalID != 1 || creds.Username != "admin" {
		t.Errorf("got %+v", creds)
	}
	if lookup.calls != 1 {
		t.Errorf("lookup calls = %d, want 1", lookup.calls)
	}
}

func TestVerify_Failures(t *testing.T) {
	tests := []struct {
		name       string
		username   string
		password   string
		wantReason FailureReason
	}{
		{"wrong password", "admin", "wrong", ReasonMismatch},
		{"empty password", "admin", "", ReasonMismatch},
		{"unknown user", "ghost", "admin123", ReasonNotFound},
		{"username is case sensitive", "Admin", "admin123", ReasonNotFound},
	}

	v := NewVerifier(newFakeLookup(t))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.Verify(context.Background(), tt.username, tt.password)
			var af *AuthFailure
			if !errors.As(err, &af) {
				t.Fatalf("expected *AuthFailure, got %v", err)
			}
			if af.Reason != tt.wantReason {
				t.Errorf("Reason = %q, want %q", af.Reason, tt.wantReason)
			}
		})
	}
}

func TestVerify_LookupError(t *testing.T) {
	boom := errors.New("disk on fire")
	v := NewVerifier(&fakeLookup{err: boom})

	_, err := v.Verify(context.Background(), "admin", "admin123")
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped lookup error, got %v", err)
	}
	var af *AuthFailure
	if errors.As(err, &af) {
		t.Error("store failure must not look like bad credentials")
	}
}

func TestVerify_CorruptHash(t *testing.T) {
	v := NewVerifier(&fakeLookup{users: map[string]Credentials{
		"admin": {PrincipalID: 1, Username: "admin", PasswordHash: "not-a-hash"},
	}})

	_, err := v.Verify(context.Background(), "admin", "admin123")
	var af *AuthFailure
	if err == nil || errors.As(err, &af) {
		t.Fatalf("expected non-auth error for corrupt hash, got %v", err)
	}
}

type updatingLookup struct {
	*fakeLookup
	updated map[int64]string
	err     error
}

func (u *updatingLookup) UpdatePasswordHash(_ context.Context, principalID int64, hash string) error {
	if u.err != nil {
		return u.err
	}
	u.updated[principalID] = hash
	return nil
}

func bcryptLookup(t *testing.T) *fakeLookup {
	t.Helper()
	raw, err := bcrypt.GenerateFromPassword([]byte("admin123"), 10)
	if err != nil {
		t.Fatalf("bcrypt error: %v", err)
	}
	return &fakeLookup{users: map[string]Credentials{
		"admin": {PrincipalID: 7, Username: "admin", PasswordHash: string(raw)},
	}}
}

func TestVerify_RehashesLegacyHash(t *testing.T) {
	lookup := &updatingLookup{fakeLookup: bcryptLookup(t), updated: map[int64]string{}}
	v := NewVerifier(lookup)

	creds, err := v.Verify(context.Background(), "admin", "admin123")
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}

	newHash, ok := lookup.updated[7]
	if !ok {
		t.Fatal("bcrypt hash was not replaced")
	}
	if NeedsRehash(newHash) {
		t.Errorf("replacement hash %q still needs rehash", newHash)
	}
	if creds.PasswordHash != newHash {
		t.Error("returned credentials carry the old hash")
	}
	if valid, err := CheckPassword("admin123", newHash); err != nil || !valid {
		t.Errorf("replacement hash does not verify: %v", err)
	}
}

func TestVerify_CurrentHashNotRewritten(t *testing.T) {
	lookup := &updatingLookup{fakeLookup: newFakeLookup(t), updated: map[int64]string{}}
	v := NewVerifier(lookup)

	if _, err := v.Verify(context.Background(), "admin", "admin123"); err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if len(lookup.updated) != 0 {
		t.Errorf("current hash was rewritten: %v", lookup.updated)
	}
}

func TestVerify_RehashFailureStillSucceeds(t *testing.T) {
	lookup := &updatingLookup{fakeLookup: bcryptLookup(t), err: errors.New("read-only")}
	v := NewVerifier(lookup)

	creds, err := v.Verify(context.Background(), "admin", "admin123")
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if creds.PrincipalID != 7 {
		t.Errorf("got %+v", creds)
	}
}
