package api

import (
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/terraincognita07/coachdesk/internal/session"
)

func TestLoginSetsSealedAuthCookie(t *testing.T) {
	token := signTestToken(t, "user", time.Now().Add(time.Hour))
	backend := newTestBackend(t, map[string]http.HandlerFunc{
		"POST /auth/login": jsonResponse(http.StatusOK, map[string]string{"token": token}),
	})
	app, handler := newTestApp(t, backend)

	response := perform(t, app, testRequest{
		method: http.MethodPost,
		path:   "/login",
		form:   url.Values{"email": {"Coach@Example.com"}, "password": {"correct-horse"}},
	})
	if response.StatusCode != http.StatusSeeOther {
		t.Fatalf("expected status 303, got %d", response.StatusCode)
	}
	if location := response.Header.Get("Location"); location != "/dashboard" {
		t.Fatalf("expected redirect to /dashboard, got %q", location)
	}

	cookie := responseCookie(response.Cookies(), authCookieName)
	if cookie == nil || cookie.Value == "" {
		t.Fatal("expected auth cookie")
	}
	if strings.Contains(cookie.Value, token) {
		t.Fatal("expected auth cookie to be sealed, found raw token")
	}
	if !cookie.HttpOnly {
		t.Fatal("expected auth cookie to be HttpOnly")
	}
	opened, err := handler.cookies.open(authCookiePurpose, cookie.Value)
	if err != nil || string(opened) != token {
		t.Fatalf("expected sealed cookie to open to the backend token, err=%v", err)
	}
}

func TestLoginInvalidCredentialsRedirectPreservesEmail(t *testing.T) {
	backend := newTestBackend(t, map[string]http.HandlerFunc{
		"POST /auth/login": jsonResponse(http.StatusUnauthorized, map[string]string{"error": "invalid credentials"}),
	})
	app, _ := newTestApp(t, backend)

	response := perform(t, app, testRequest{
		method: http.MethodPost,
		path:   "/login",
		form:   url.Values{"email": {"coach@example.com"}, "password": {"wrong"}},
	})
	if response.StatusCode != http.StatusSeeOther {
		t.Fatalf("expected status 303, got %d", response.StatusCode)
	}
	if location := response.Header.Get("Location"); location != "/login" {
		t.Fatalf("expected redirect to /login, got %q", location)
	}
	if cookie := responseCookie(response.Cookies(), authCookieName); cookie != nil && cookie.Value != "" {
		t.Fatal("expected no auth cookie after failed login")
	}

	flash := decodeFlashCookie(t, responseCookie(response.Cookies(), flashCookieName))
	if flash.LoginEmail != "coach@example.com" {
		t.Fatalf("expected preserved login email, got %q", flash.LoginEmail)
	}
	if flash.Toast == nil || flash.Toast.Message != messageInvalidCredentials {
		t.Fatalf("expected invalid credentials toast, got %#v", flash.Toast)
	}
}

func TestLoginRejectsExpiredBackendToken(t *testing.T) {
	backend := newTestBackend(t, map[string]http.HandlerFunc{
		"POST /auth/login": jsonResponse(http.StatusOK, map[string]string{
			"token": signTestToken(t, "user", time.Now().Add(-time.Minute)),
		}),
	})
	app, _ := newTestApp(t, backend)

	response := perform(t, app, testRequest{
		method: http.MethodPost,
		path:   "/api/auth/login",
		form:   url.Values{"email": {"coach@example.com"}, "password": {"secret"}},
	})
	if response.StatusCode == http.StatusOK {
		t.Fatal("expected an expired backend token to fail login")
	}
}

func TestLoginMissingFieldsSkipsBackend(t *testing.T) {
	backend := newTestBackend(t, nil)
	app, _ := newTestApp(t, backend)

	response := perform(t, app, testRequest{
		method: http.MethodPost,
		path:   "/api/auth/login",
		form:   url.Values{"email": {"not-an-email"}},
	})
	if response.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", response.StatusCode)
	}
	if backend.called("POST /auth/login") {
		t.Fatal("expected invalid input to be rejected before the backend call")
	}
}

func TestLoginPageRedirectsAuthenticatedUser(t *testing.T) {
	backend := newTestBackend(t, nil)
	app, handler := newTestApp(t, backend)

	response := perform(t, app, testRequest{path: "/login", cookie: userCookie(t, handler)})
	if response.StatusCode != http.StatusSeeOther {
		t.Fatalf("expected status 303, got %d", response.StatusCode)
	}
	if location := response.Header.Get("Location"); location != "/dashboard" {
		t.Fatalf("expected redirect to /dashboard, got %q", location)
	}
}

func TestLoginPageRendersFlashToastOnce(t *testing.T) {
	backend := newTestBackend(t, nil)
	app, _ := newTestApp(t, backend)

	first := perform(t, app, testRequest{path: "/dashboard"})
	flashCookie := responseCookie(first.Cookies(), flashCookieName)
	if flashCookie == nil {
		t.Fatal("expected flash cookie from guarded redirect")
	}

	page := perform(t, app, testRequest{path: "/login", cookie: flashCookieName + "=" + flashCookie.Value})
	body := readBody(t, page)
	if !strings.Contains(body, session.MessageSignInRequired) {
		t.Fatalf("expected sign-in toast on login page, got %q", body)
	}
	cleared := responseCookie(page.Cookies(), flashCookieName)
	if cleared == nil || cleared.Value != "" {
		t.Fatalf("expected flash cookie to be cleared after rendering, got %#v", cleared)
	}
}

func TestLogoutClearsCookieEvenWhenBackendFails(t *testing.T) {
	backend := newTestBackend(t, map[string]http.HandlerFunc{
		"POST /auth/logout": statusResponse(http.StatusInternalServerError),
	})
	app, handler := newTestApp(t, backend)

	response := perform(t, app, testRequest{
		method: http.MethodPost,
		path:   "/logout",
		cookie: userCookie(t, handler),
		form:   url.Values{},
	})
	if response.StatusCode != http.StatusSeeOther {
		t.Fatalf("expected status 303, got %d", response.StatusCode)
	}
	cookie := responseCookie(response.Cookies(), authCookieName)
	if cookie == nil || cookie.Value != "" {
		t.Fatalf("expected cleared auth cookie, got %#v", cookie)
	}
	if !backend.called("POST /auth/logout") {
		t.Fatal("expected backend logout to be attempted")
	}
}

func TestSessionStatusReportsClaims(t *testing.T) {
	backend := newTestBackend(t, nil)
	app, handler := newTestApp(t, backend)

	response := perform(t, app, testRequest{path: "/api/session", cookie: adminCookie(t, handler)})
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.StatusCode)
	}
	body := readBody(t, response)
	if !strings.Contains(body, `"role":"admin"`) || !strings.Contains(body, `"status":"authenticated"`) {
		t.Fatalf("unexpected session payload %q", body)
	}
	if strings.Contains(body, "token") {
		t.Fatalf("expected token to stay out of the session payload, got %q", body)
	}
}
