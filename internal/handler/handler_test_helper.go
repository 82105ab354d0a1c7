package handler

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/ayyavuayyavuconstruction/Ayyavu-Construction/internal/auth"
	"github.com/ayyavuayyavuconstruction/Ayyavu-Construction/internal/metrics"
	"github.com/ayyavuayyavuconstruction/Ayyavu-Construction/internal/service"
	"github.com/ayyavuayyavuconstruction/Ayyavu-Construction/internal/session"
	"github.com/ayyavuayyavuconstruction/Ayyavu-Construction/internal/store"
	"github.com/ayyavuayyavuconstruction/Ayyavu-Construction/internal/testutil"
)

// testDB creates a migrated SQLite database in a temp directory.
func testDB(t *testing.T) *sql.DB {
	t.Helper()
	return testutil.TestDB(t)
}

// testEnv is a running API backed by a seeded database.
type testEnv struct {
	db         *sql.DB
	queries    *store.Queries
	metrics    *metrics.Metrics
	uploadsDir string
	server     *httptest.Server
}

// newTestEnv seeds a database and serves the API the way main mounts it,
// without cross-origin protection.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWithCSRF(t, nil)
}

// newTestEnvWithCSRF is newTestEnv with csrf guarding the admin sub-tree.
func newTestEnvWithCSRF(t *testing.T, csrf func(http.Handler) http.Handler) *testEnv {
	t.Helper()

	db := testutil.SeededDB(t)
	queries := store.New(db)

	uploadsDir := t.TempDir()
	m := metrics.New()

	gate := session.NewGate(session.New(session.NewMemoryStore(), time.Hour, true))
	api := API{
		Auth:     NewAuthHandler(auth.NewVerifier(queries), gate, m),
		Projects: NewProjectHandler(service.NewProjectService(queries), service.NewUploadService(uploadsDir), m),
		Gate:     gate,
		CSRF:     csrf,
	}

	r := chi.NewRouter()
	r.Use(gate.Manager().LoadAndSave)
	api.Mount(r)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return &testEnv{
		db:         db,
		queries:    queries,
		metrics:    m,
		uploadsDir: uploadsDir,
		server:     srv,
	}
}

// client returns an HTTP client with its own cookie jar.
func (e *testEnv) client(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar}
}

// adminClient returns a client logged in as the seeded admin.
func (e *testEnv) adminClient(t *testing.T) *http.Client {
	t.Helper()
	c := e.client(t)
	resp := e.postJSON(t, c, "/api/admin/login", map[string]any{
		"username": store.DefaultAdminUsername,
		"password": store.DefaultAdminPassword,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return c
}

func (e *testEnv) do(t *testing.T, c *http.Client, method, path, contentType string, body io.Reader) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, e.server.URL+path, body)
	require.NoError(t, err)
	if contentType != "" {
		req.Header.Set(HeaderContentType, contentType)
	}
	resp, err := c.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = resp.Body.Close()
	})
	return resp
}

func (e *testEnv) get(t *testing.T, c *http.Client, path string) *http.Response {
	t.Helper()
	return e.do(t, c, http.MethodGet, path, "", nil)
}

func (e *testEnv) postJSON(t *testing.T, c *http.Client, path string, body any) *http.Response {
	t.Helper()
	return e.sendJSON(t, c, http.MethodPost, path, body)
}

func (e *testEnv) sendJSON(t *testing.T, c *http.Client, method, path string, body any) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	return e.do(t, c, method, path, "application/json", bytes.NewReader(raw))
}

func (e *testEnv) sendForm(t *testing.T, c *http.Client, method, path string, values url.Values) *http.Response {
	t.Helper()
	return e.do(t, c, method, path, "application/x-www-form-urlencoded", strings.NewReader(values.Encode()))
}

// sendMultipart sends fields plus an optional image attachment.
func (e *testEnv) sendMultipart(t *testing.T, c *http.Client, method, path string, fields map[string]string, filename string, content []byte) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if filename != "" {
		fw, err := mw.CreateFormFile(fieldImage, filename)
		require.NoError(t, err)
		_, err = fw.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	return e.do(t, c, method, path, mw.FormDataContentType(), &buf)
}

func (e *testEnv) projectCount(t *testing.T) int64 {
	t.Helper()
	n, err := e.queries.CountProjects(context.Background())
	require.NoError(t, err)
	return n
}

// decodeBody decodes a JSON response body into v.
func decodeBody(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

// requestWithURLParams adds chi URL parameters to a request.
func requestWithURLParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for key, value := range params {
		rctx.URLParams.Add(key, value)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// assertStatus checks if the response status code matches the expected value.
func assertStatus(t *testing.T, got, want int) {
	t.Helper()
	if got != want {
		t.Errorf("status = %d; want %d", got, want)
	}
}
