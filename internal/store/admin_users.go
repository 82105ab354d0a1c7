package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/ayyavuayyavuconstruction/Ayyavu-Construction/internal/auth"
)

const getAdminUserByUsername = `SELECT id, username, password, created_at FROM admin_users WHERE username = ?`

// GetAdminUserByUsername returns sql.ErrNoRows when no such user exists.
func (q *Queries) GetAdminUserByUsername(ctx context.Context, username string) (AdminUser, error) {
	row := q.db.QueryRowContext(ctx, getAdminUserByUsername, username)
	var u AdminUser
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt)
	return u, err
}

// CreateAdminUserParams holds the columns of a new admin user.
type CreateAdminUserParams struct {
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

// CreateAdminUserIfAbsent inserts the user unless the username is taken.
// It reports whether a row was inserted.
func (q *Queries) CreateAdminUserIfAbsent(ctx context.Context, arg CreateAdminUserParams) (bool, error) {
	query := q.insertIgnore() + ` admin_users (username, password, created_at) VALUES (?, ?, ?)`
	result, err := q.db.ExecContext(ctx, query, arg.Username, arg.PasswordHash, arg.CreatedAt)
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// LookupCredentials adapts the admin_users table to auth.CredentialLookup.
func (q *Queries) LookupCredentials(ctx context.Context, username string) (auth.Credentials, error) {
	u, err := q.GetAdminUserByUsername(ctx, username)
	if errors.Is(err, sql.ErrNoRows) {
		return auth.Credentials{}, auth.ErrUnknownPrincipal
	}
	if err != nil {
		return auth.Credentials{}, err
	}
	return auth.Credentials{PrincipalID: u.ID, Username: u.Username, PasswordHash: u.PasswordHash}, nil
}

const updateAdminUserPassword = `UPDATE admin_users SET password = ? WHERE id = ?`

// UpdatePasswordHash adapts the admin_users table to auth.PasswordUpdater.
func (q *Queries) UpdatePasswordHash(ctx context.Context, principalID int64, hash string) error {
	_, err := q.db.ExecContext(ctx, updateAdminUserPassword, hash, principalID)
	return err
}
