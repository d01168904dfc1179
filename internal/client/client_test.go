package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, configure func(*Config)) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	config := Config{BaseURL: server.URL + "/api/v1"}
	if configure != nil {
		configure(&config)
	}
	backend, err := New(config)
	require.NoError(t, err)
	return backend
}

func TestNewRejectsInvalidBaseURL(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)

	_, err = New(Config{BaseURL: "ftp://example.com"})
	assert.Error(t, err)
}

func TestDoAttachesBearerAndDecodes(t *testing.T) {
	var seen *http.Request
	backend := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		seen = r
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"name":"ada"}`))
	}, nil)

	var out struct {
		Name string `json:"name"`
	}
	err := backend.Do(context.Background(), Request{
		Path:  "/profile",
		Query: url.Values{"limit": []string{"5"}},
		Token: "tok-123",
	}, &out)
	require.NoError(t, err)

	assert.Equal(t, "ada", out.Name)
	assert.Equal(t, "/api/v1/profile", seen.URL.Path)
	assert.Equal(t, "5", seen.URL.Query().Get("limit"))
	assert.Equal(t, "Bearer tok-123", seen.Header.Get("Authorization"))
	assert.NotEmpty(t, seen.Header.Get(requestIDHeader))
}

func TestDoOmitsAuthorizationWithoutToken(t *testing.T) {
	backend := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusNoContent)
	}, nil)

	require.NoError(t, backend.Do(context.Background(), Request{Path: "/version"}, &struct{}{}))
}

func TestDoEncodesJSONBody(t *testing.T) {
	backend := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		payload := map[string]bool{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.True(t, payload["enabled"])
		w.WriteHeader(http.StatusOK)
	}, nil)

	err := backend.Do(context.Background(), Request{
		Method: http.MethodPatch,
		Path:   "/admin/feature-flags/beta",
		Token:  "tok",
		Body:   map[string]bool{"enabled": true},
	}, nil)
	require.NoError(t, err)
}

func TestDoMapsStatusToKind(t *testing.T) {
	tests := []struct {
		status   int
		kind     ErrorKind
		sentinel error
	}{
		{status: http.StatusUnauthorized, kind: KindUnauthorized, sentinel: ErrUnauthorized},
		{status: http.StatusForbidden, kind: KindForbidden, sentinel: ErrForbidden},
		{status: http.StatusNotFound, kind: KindNotFound, sentinel: ErrNotFound},
		{status: http.StatusUnprocessableEntity, kind: KindRequest, sentinel: ErrRequest},
		{status: http.StatusBadGateway, kind: KindServer, sentinel: ErrServer},
	}

	for _, testCase := range tests {
		t.Run(http.StatusText(testCase.status), func(t *testing.T) {
			backend := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(testCase.status)
				_, _ = w.Write([]byte(`{"error":"nope"}`))
			}, nil)

			err := backend.Do(context.Background(), Request{Path: "/x", Token: "tok"}, &struct{}{})
			require.Error(t, err)
			assert.Equal(t, testCase.kind, KindOf(err))
			assert.ErrorIs(t, err, testCase.sentinel)

			var backendErr *Error
			require.True(t, errors.As(err, &backendErr))
			assert.Equal(t, testCase.status, backendErr.Status)
			assert.Equal(t, "nope", backendErr.Message)
		})
	}
}

func TestUnauthorizedRunsInterceptorForAnyCall(t *testing.T) {
	calls := 0
	backend := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}, func(config *Config) {
		config.OnUnauthorized = func(context.Context) { calls++ }
	})

	_ = backend.Do(context.Background(), Request{Path: "/moods", Token: "tok"}, &struct{}{})
	_, _ = backend.Download(context.Background(), Request{Path: "/export/pdf", Token: "tok"})

	assert.Equal(t, 2, calls)
}

func TestDoReportsDecodeFailure(t *testing.T) {
	backend := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"broken":`))
	}, nil)

	err := backend.Do(context.Background(), Request{Path: "/x"}, &struct{}{})
	assert.Equal(t, KindDecode, KindOf(err))
}

func TestDoReportsNetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	baseURL := server.URL
	server.Close()

	backend, err := New(Config{BaseURL: baseURL})
	require.NoError(t, err)

	err = backend.Do(context.Background(), Request{Path: "/x"}, nil)
	assert.Equal(t, KindNetwork, KindOf(err))
	assert.ErrorIs(t, err, ErrNetwork)
}

func TestDownloadReturnsBodyAndFilename(t *testing.T) {
	backend := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/pdf", r.Header.Get("Accept"))
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="report-2025.pdf"`)
		_, _ = w.Write([]byte("%PDF-1.7"))
	}, nil)

	download, err := backend.Download(context.Background(), Request{Path: "/export/pdf", Token: "tok", Accept: "application/pdf"})
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", download.ContentType)
	assert.Equal(t, "report-2025.pdf", download.Filename)
	assert.Equal(t, []byte("%PDF-1.7"), download.Body)
}

func TestMetricsCountOutcomes(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := NewMetrics(registry)

	var status atomic.Int32
	status.Store(http.StatusOK)
	backend := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(int(status.Load()))
	}, func(config *Config) {
		config.Metrics = metrics
	})

	require.NoError(t, backend.Do(context.Background(), Request{Path: "/moods/1", Route: "/moods/:id"}, nil))
	status.Store(http.StatusInternalServerError)
	require.Error(t, backend.Do(context.Background(), Request{Path: "/moods/2", Route: "/moods/:id"}, nil))

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.requests.WithLabelValues("GET", "/moods/:id", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.requests.WithLabelValues("GET", "/moods/:id", "server")))
}

func TestUserMessagePrefersBackendTextForRequestErrors(t *testing.T) {
	err := &Error{Kind: KindRequest, Message: "amount exceeds charge"}
	assert.Equal(t, "amount exceeds charge", UserMessage(err))
	assert.Equal(t, "Something went wrong. Try again.", UserMessage(errors.New("plain")))
}
