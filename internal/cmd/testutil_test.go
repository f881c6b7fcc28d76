// Test utilities for exercising commands against mock HTTP servers.
//
// The pattern: build a routeHandler with mock responses, call
// setupTestEnv to point the CLI at the test server, then run
// Execute() and assert on the captured output.
//
//	handler := newRouteHandler().
//	    On("GET", "/api/info", jsonResponse(200, `{"postCount": 1}`))
//	setupTestEnv(t, handler)
//
//	output := captureStdout(t, func() {
//	    if err := Execute(context.Background(), []string{"info"}); err != nil {
//	        t.Fatalf("command failed: %v", err)
//	    }
//	})
package cmd

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
)

// setupTestEnv starts a mock server and points the CLI at it through
// the environment. Credentials resolve from SZURU_BASE_URL plus
// username/token, the keyring is forced to an isolated file backend so
// no stored profile leaks in, and the response cache is disabled.
// Cleanup is automatic via t.Setenv.
func setupTestEnv(t *testing.T, handler http.Handler) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	t.Setenv("SZURU_BASE_URL", server.URL)
	t.Setenv("SZURU_USERNAME", "tester")
	t.Setenv("SZURU_TOKEN", "test-token")
	t.Setenv("SZURU_PROFILE", "")
	t.Setenv("SZURU_KEYRING_BACKEND", "file")
	t.Setenv("SZURU_KEYRING_PASSWORD", "test")
	t.Setenv("SZURU_CREDENTIALS_DIR", t.TempDir())
	t.Setenv("SZURU_NO_CACHE", "1")

	return server
}

// setupAnonymousTestEnv is setupTestEnv without credentials.
func setupAnonymousTestEnv(t *testing.T, handler http.Handler) *httptest.Server {
	t.Helper()

	server := setupTestEnv(t, handler)
	t.Setenv("SZURU_USERNAME", "")
	t.Setenv("SZURU_TOKEN", "")
	return server
}

// captureStdout executes fn and returns everything it wrote to stdout.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	fn()

	_ = w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	return buf.String()
}

// jsonResponse returns a handler that writes a fixed JSON response.
func jsonResponse(statusCode int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)
		_, _ = w.Write([]byte(body))
	}
}

// routeHandler routes requests by exact "METHOD PATH" match and
// returns 404 for anything unregistered.
type routeHandler struct {
	routes map[string]http.HandlerFunc
}

func newRouteHandler() *routeHandler {
	return &routeHandler{routes: make(map[string]http.HandlerFunc)}
}

// On registers a handler for the given method and path, returning the
// routeHandler for chaining.
func (h *routeHandler) On(method, path string, handler http.HandlerFunc) *routeHandler {
	h.routes[method+" "+path] = handler
	return h
}

func (h *routeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if handler, ok := h.routes[r.Method+" "+r.URL.Path]; ok {
		handler(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	_, _ = w.Write([]byte(`{"name":"PostNotFoundError","title":"Not found","description":"no route"}`))
}
