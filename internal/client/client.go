package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/terraincognita07/coachdesk/internal/logging"
	"go.uber.org/zap"
)

const (
	defaultTimeout  = 15 * time.Second
	maxErrorBody    = 64 << 10
	requestIDHeader = "X-Request-ID"
)

type Config struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	UserAgent  string
	Metrics    *Metrics
	// OnUnauthorized runs for every 401 before the error is returned.
	OnUnauthorized func(ctx context.Context)
}

type Client struct {
	baseURL        *url.URL
	http           *http.Client
	userAgent      string
	metrics        *Metrics
	onUnauthorized func(ctx context.Context)
}

type Request struct {
	Method string
	Path   string
	// Route is the low-cardinality metrics label; Path is used when empty.
	Route  string
	Query  url.Values
	Token  string
	Body   any
	Accept string
}

type Download struct {
	ContentType string
	Filename    string
	Body        []byte
}

func New(config Config) (*Client, error) {
	rawBase := strings.TrimSpace(config.BaseURL)
	if rawBase == "" {
		return nil, errors.New("backend base URL is required")
	}
	baseURL, err := url.Parse(strings.TrimSuffix(rawBase, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse backend base URL: %w", err)
	}
	if baseURL.Scheme != "http" && baseURL.Scheme != "https" {
		return nil, fmt.Errorf("backend base URL must be http or https, got %q", rawBase)
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		timeout := config.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	userAgent := strings.TrimSpace(config.UserAgent)
	if userAgent == "" {
		userAgent = "coachdesk"
	}

	return &Client{
		baseURL:        baseURL,
		http:           httpClient,
		userAgent:      userAgent,
		metrics:        config.Metrics,
		onUnauthorized: config.OnUnauthorized,
	}, nil
}

// Do sends one request and decodes a JSON response into out when out is not nil.
func (client *Client) Do(ctx context.Context, request Request, out any) error {
	response, err := client.send(ctx, request)
	if err != nil {
		return err
	}
	defer response.Body.Close()

	if out == nil || response.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, response.Body)
		return nil
	}

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return client.failure(request, KindNetwork, response.StatusCode, "", err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return client.failure(request, KindDecode, response.StatusCode, "", err)
	}
	return nil
}

// Download fetches a binary or text artifact as-is.
func (client *Client) Download(ctx context.Context, request Request) (Download, error) {
	response, err := client.send(ctx, request)
	if err != nil {
		return Download{}, err
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return Download{}, client.failure(request, KindNetwork, response.StatusCode, "", err)
	}

	return Download{
		ContentType: response.Header.Get("Content-Type"),
		Filename:    filenameFromDisposition(response.Header.Get("Content-Disposition")),
		Body:        body,
	}, nil
}

func (client *Client) send(ctx context.Context, request Request) (*http.Response, error) {
	method := request.Method
	if method == "" {
		method = http.MethodGet
	}
	request.Method = method

	httpRequest, err := client.buildRequest(ctx, request)
	if err != nil {
		return nil, client.failure(request, KindRequest, 0, "", err)
	}

	started := time.Now()
	response, err := client.http.Do(httpRequest)
	elapsed := time.Since(started)
	if err != nil {
		client.metrics.observe(method, client.route(request), string(KindNetwork), elapsed)
		return nil, client.failure(request, KindNetwork, 0, "", err)
	}

	logging.L().Debug("backend request",
		zap.String("method", method),
		zap.String("path", request.Path),
		zap.Int("status", response.StatusCode),
		zap.Duration("elapsed", elapsed),
		zap.String("request_id", httpRequest.Header.Get(requestIDHeader)),
	)

	if response.StatusCode >= 200 && response.StatusCode < 300 {
		client.metrics.observe(method, client.route(request), "ok", elapsed)
		return response, nil
	}

	defer response.Body.Close()
	kind := kindForStatus(response.StatusCode)
	client.metrics.observe(method, client.route(request), string(kind), elapsed)

	message := readErrorMessage(response.Body)
	if kind == KindUnauthorized && client.onUnauthorized != nil {
		client.onUnauthorized(ctx)
	}
	return nil, client.failure(request, kind, response.StatusCode, message, nil)
}

func (client *Client) buildRequest(ctx context.Context, request Request) (*http.Request, error) {
	target := *client.baseURL
	target.Path = strings.TrimSuffix(target.Path, "/") + "/" + strings.TrimPrefix(request.Path, "/")
	if len(request.Query) > 0 {
		target.RawQuery = request.Query.Encode()
	}

	var body io.Reader
	if request.Body != nil {
		encoded, err := json.Marshal(request.Body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	httpRequest, err := http.NewRequestWithContext(ctx, request.Method, target.String(), body)
	if err != nil {
		return nil, err
	}

	accept := request.Accept
	if accept == "" {
		accept = "application/json"
	}
	httpRequest.Header.Set("Accept", accept)
	httpRequest.Header.Set("User-Agent", client.userAgent)
	httpRequest.Header.Set(requestIDHeader, uuid.NewString())
	if request.Body != nil {
		httpRequest.Header.Set("Content-Type", "application/json")
	}
	if token := strings.TrimSpace(request.Token); token != "" {
		httpRequest.Header.Set("Authorization", "Bearer "+token)
	}
	return httpRequest, nil
}

func (client *Client) route(request Request) string {
	if request.Route != "" {
		return request.Route
	}
	return request.Path
}

func (client *Client) failure(request Request, kind ErrorKind, status int, message string, cause error) *Error {
	if cause == nil {
		cause = sentinelByKind[kind]
	}
	return &Error{
		Kind:    kind,
		Status:  status,
		Method:  request.Method,
		Path:    request.Path,
		Message: message,
		Err:     cause,
	}
}

func readErrorMessage(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, maxErrorBody))
	if err != nil || len(bytes.TrimSpace(raw)) == 0 {
		return ""
	}

	envelope := struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}{}
	if err := json.Unmarshal(raw, &envelope); err == nil {
		if envelope.Error != "" {
			return envelope.Error
		}
		return envelope.Message
	}
	return ""
}

func filenameFromDisposition(header string) string {
	if strings.TrimSpace(header) == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(header)
	if err != nil {
		return ""
	}
	return params["filename"]
}
