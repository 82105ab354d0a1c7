package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gateServer exposes login, whoami and logout endpoints over a Gate.
func gateServer(t *testing.T, store scs.Store) *httptest.Server {
	t.Helper()

	gate := NewGate(New(store, time.Hour, true))

	mux := http.NewServeMux()
	mux.HandleFunc("/login", func(w http.ResponseWriter, r *http.Request) {
		id, _ := strconv.ParseInt(r.URL.Query().Get("id"), 10, 64)
		token, err := gate.Establish(r.Context(), id)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		_, _ = fmt.Fprint(w, token)
	})
	mux.HandleFunc("/whoami", func(w http.ResponseWriter, r *http.Request) {
		id, err := gate.Authenticate(r.Context())
		if errors.Is(err, ErrUnauthenticated) {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = fmt.Fprint(w, id)
	})
	mux.HandleFunc("/logout", func(w http.ResponseWriter, r *http.Request) {
		if err := gate.Revoke(r.Context()); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})

	srv := httptest.NewServer(gate.Manager().LoadAndSave(mux))
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, srv *httptest.Server, path string, cookie *http.Cookie) (*http.Response, string) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, srv.URL+path, nil)
	require.NoError(t, err)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	buf := make([]byte, 128)
	n, _ := resp.Body.Read(buf)
	return resp, string(buf[:n])
}

func sessionCookie(resp *http.Response) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == "session" {
			return c
		}
	}
	return nil
}

func exerciseGate(t *testing.T, store scs.Store) {
	srv := gateServer(t, store)

	resp, _ := get(t, srv, "/whoami", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "anonymous request")

	resp, token := get(t, srv, "/login?id=7", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	cookie := sessionCookie(resp)
	require.NotNil(t, cookie, "login must set the session cookie")
	assert.Equal(t, token, cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.Zero(t, cookie.MaxAge, "cookie should last for the browser session")

	resp, body := get(t, srv, "/whoami", cookie)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "7", body)

	resp, _ = get(t, srv, "/whoami", &http.Cookie{Name: "session", Value: "forged-token"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "unknown token")

	resp, _ = get(t, srv, "/logout", cookie)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = get(t, srv, "/whoami", cookie)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "revoked token")
}

func TestGate_MemoryStore(t *testing.T) {
	exerciseGate(t, NewMemoryStore())
}

func TestGate_SQLiteStore(t *testing.T) {
	exerciseGate(t, sqlite3store.NewWithCleanupInterval(setupTestDB(t), 0))
}

func TestGate_RedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	exerciseGate(t, NewRedisStore(client, "test:session:"))

	keys := mr.Keys()
	for _, k := range keys {
		assert.Contains(t, k, "test:session:")
	}
}

func TestGate_EstablishRotatesToken(t *testing.T) {
	srv := gateServer(t, NewMemoryStore())

	resp, first := get(t, srv, "/login?id=1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	cookie := sessionCookie(resp)
	require.NotNil(t, cookie)

	resp, second := get(t, srv, "/login?id=1", cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEqual(t, first, second, "re-login must issue a new token")

	resp, _ = get(t, srv, "/whoami", cookie)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "old token must be dead after rotation")
}

func TestNewRedisClient(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewRedisClient(context.Background(), "redis://"+mr.Addr()+"/0")
	require.NoError(t, err)
	_ = client.Close()

	_, err = NewRedisClient(context.Background(), "not-a-url")
	assert.Error(t, err)

	mr.Close()
	_, err = NewRedisClient(context.Background(), "redis://"+mr.Addr()+"/0")
	assert.Error(t, err)
}
