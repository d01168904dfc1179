package api

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/terraincognita07/coachdesk/internal/client"
	"github.com/terraincognita07/coachdesk/internal/services"
	"github.com/terraincognita07/coachdesk/internal/session"
)

const testSecretKey = "test-secret-key-0123456789-abcdefghijklmnop"

// testBackend answers "METHOD /path" routes and records what it was asked.
type testBackend struct {
	server *httptest.Server

	mu     sync.Mutex
	routes map[string]http.HandlerFunc
	calls  []string
}

func newTestBackend(t *testing.T, routes map[string]http.HandlerFunc) *testBackend {
	t.Helper()

	backend := &testBackend{routes: routes}
	backend.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Method + " " + r.URL.Path
		backend.mu.Lock()
		backend.calls = append(backend.calls, key)
		handler, ok := backend.routes[key]
		backend.mu.Unlock()
		if !ok {
			http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
			return
		}
		handler(w, r)
	}))
	t.Cleanup(backend.server.Close)
	return backend
}

func (backend *testBackend) called(key string) bool {
	backend.mu.Lock()
	defer backend.mu.Unlock()
	for _, call := range backend.calls {
		if call == key {
			return true
		}
	}
	return false
}

func jsonResponse(status int, payload any) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(payload)
	}
}

func statusResponse(status int) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
	}
}

func newTestApp(t *testing.T, backend *testBackend) (*fiber.App, *Handler) {
	t.Helper()
	return newTestAppWithOptions(t, backend, AppOptions{DisableCSRF: true})
}

func newTestAppWithOptions(t *testing.T, backend *testBackend, options AppOptions) (*fiber.App, *Handler) {
	t.Helper()

	backendClient, err := client.New(client.Config{
		BaseURL:        backend.server.URL,
		Timeout:        5 * time.Second,
		OnUnauthorized: session.InvalidateFromContext,
	})
	if err != nil {
		t.Fatalf("init backend client: %v", err)
	}

	handler, err := NewHandler(Options{
		Services:    services.NewServices(backendClient),
		SecretKey:   testSecretKey,
		Location:    time.UTC,
		PageSize:    20,
		LogFetchCap: 500,
	})
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}
	return NewApp(handler, options), handler
}

func signTestToken(t *testing.T, role string, expiresAt time.Time) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "user-1",
		"role": role,
		"exp":  expiresAt.Unix(),
	}).SignedString([]byte("backend-signing-key"))
	if err != nil {
		t.Fatalf("sign test token: %v", err)
	}
	return token
}

func authCookieFor(t *testing.T, handler *Handler, token string) string {
	t.Helper()

	sealed, err := handler.cookies.seal(authCookiePurpose, []byte(token))
	if err != nil {
		t.Fatalf("seal auth cookie: %v", err)
	}
	return authCookieName + "=" + sealed
}

func userCookie(t *testing.T, handler *Handler) string {
	t.Helper()
	return authCookieFor(t, handler, signTestToken(t, "user", time.Now().Add(time.Hour)))
}

func adminCookie(t *testing.T, handler *Handler) string {
	t.Helper()
	return authCookieFor(t, handler, signTestToken(t, "admin", time.Now().Add(time.Hour)))
}

type testRequest struct {
	method string
	path   string
	cookie string
	form   url.Values
	json   bool
}

func perform(t *testing.T, app *fiber.App, request testRequest) *http.Response {
	t.Helper()

	method := request.method
	if method == "" {
		method = http.MethodGet
	}
	var body io.Reader
	if request.form != nil {
		body = strings.NewReader(request.form.Encode())
	}

	httpRequest := httptest.NewRequest(method, request.path, body)
	if request.form != nil {
		httpRequest.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if request.cookie != "" {
		httpRequest.Header.Set("Cookie", request.cookie)
	}
	if request.json {
		httpRequest.Header.Set("Accept", "application/json")
	}

	response, err := app.Test(httpRequest, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, request.path, err)
	}
	t.Cleanup(func() {
		_ = response.Body.Close()
	})
	return response
}

func readBody(t *testing.T, response *http.Response) string {
	t.Helper()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	return string(body)
}

func decodeView(t *testing.T, response *http.Response, data any) View {
	t.Helper()

	var envelope struct {
		View
		Data json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(response.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode view: %v", err)
	}
	if data != nil && len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, data); err != nil {
			t.Fatalf("decode view data: %v", err)
		}
	}
	return envelope.View
}

func responseCookie(cookies []*http.Cookie, name string) *http.Cookie {
	for _, cookie := range cookies {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

func countResponseCookies(cookies []*http.Cookie, name string) int {
	count := 0
	for _, cookie := range cookies {
		if cookie.Name == name {
			count++
		}
	}
	return count
}

func decodeFlashCookie(t *testing.T, cookie *http.Cookie) FlashPayload {
	t.Helper()

	if cookie == nil || cookie.Value == "" {
		t.Fatal("expected a flash cookie")
	}
	decoded, err := base64.RawURLEncoding.DecodeString(cookie.Value)
	if err != nil {
		t.Fatalf("decode flash cookie: %v", err)
	}
	payload := FlashPayload{}
	if err := json.Unmarshal(decoded, &payload); err != nil {
		t.Fatalf("unmarshal flash cookie: %v", err)
	}
	return payload
}
