// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package session

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexedwards/scs/goredisstore"
	"github.com/alexedwards/scs/mysqlstore"
	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/alexedwards/scs/v2/memstore"
	"github.com/redis/go-redis/v9"

	"github.com/ayyavuayyavuconstruction/Ayyavu-Construction/internal/store"
)

// cleanupInterval is how often the SQL and memory stores purge expired sessions.
const cleanupInterval = 5 * time.Minute

// NewMemoryStore keeps sessions in process memory. They do not survive a restart.
func NewMemoryStore() scs.Store {
	return memstore.NewWithCleanupInterval(cleanupInterval)
}

// NewSQLStore keeps sessions in the sessions table of the application database.
func NewSQLStore(db *sql.DB, dialect store.Dialect) (scs.Store, error) {
	switch dialect {
	case store.DialectSQLite:
		return sqlite3store.NewWithCleanupInterval(db, cleanupInterval), nil
	case store.DialectMySQL:
		return mysqlstore.NewWithCleanupInterval(db, cleanupInterval), nil
	default:
		return nil, fmt.Errorf("no session store for dialect %q", dialect)
	}
}

// NewRedisClient connects to Redis and verifies the connection.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}

	return client, nil
}

// NewRedisStore keeps sessions in Redis under prefix. Expiry is handled by Redis TTLs.
func NewRedisStore(client *redis.Client, prefix string) scs.Store {
	return goredisstore.NewWithPrefix(client, prefix)
}
