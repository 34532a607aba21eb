// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package personapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bureau-foundation/persons/lib/netutil"
)

// Transport performs raw requests against the API. Paths are absolute
// URL paths ("/api/persons/7/"); bodies are JSON-encoded by the
// transport. A nil error means a 2xx response; the returned bytes are
// the response body, possibly empty.
type Transport interface {
	Get(ctx context.Context, path string) ([]byte, error)
	Post(ctx context.Context, path string, body any) ([]byte, error)
	Put(ctx context.Context, path string, body any) ([]byte, error)
	Delete(ctx context.Context, path string) ([]byte, error)
}

// RequestIDHeader carries a per-request correlation ID. The mock backend
// logs it alongside each request.
const RequestIDHeader = "X-Request-ID"

// DefaultTimeout bounds a single request when HTTPConfig.Timeout is zero.
const DefaultTimeout = 30 * time.Second

// HTTPConfig configures an HTTPClient.
type HTTPConfig struct {
	// BaseURL is the scheme and host of the API, optionally with a path
	// prefix: "http://localhost:8000".
	BaseURL string

	// Token, when set, is sent as "Authorization: <AuthScheme> <Token>".
	Token string

	// AuthScheme defaults to "Token".
	AuthScheme string

	// UserAgent defaults to "persons".
	UserAgent string

	// Timeout bounds each request, including reading the body.
	Timeout time.Duration

	// RoundTripper overrides http.DefaultTransport. Tests use it to
	// redirect requests to an httptest server.
	RoundTripper http.RoundTripper

	Logger *slog.Logger
}

// HTTPClient is the Transport over net/http.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	authHeader string
	userAgent  string
	logger     *slog.Logger
}

// NewHTTPClient validates the base URL and returns a client.
func NewHTTPClient(config HTTPConfig) (*HTTPClient, error) {
	parsed, err := url.Parse(config.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("base URL %q: %w", config.BaseURL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("base URL %q: scheme must be http or https", config.BaseURL)
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("base URL %q: missing host", config.BaseURL)
	}

	timeout := config.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	roundTripper := config.RoundTripper
	if roundTripper == nil {
		roundTripper = http.DefaultTransport
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	client := &HTTPClient{
		baseURL:    strings.TrimSuffix(parsed.String(), "/"),
		httpClient: &http.Client{Transport: roundTripper, Timeout: timeout},
		userAgent:  config.UserAgent,
		logger:     logger,
	}
	if client.userAgent == "" {
		client.userAgent = "persons"
	}
	if config.Token != "" {
		scheme := config.AuthScheme
		if scheme == "" {
			scheme = "Token"
		}
		client.authHeader = scheme + " " + config.Token
	}
	return client, nil
}

// BaseURL returns the normalized base URL (no trailing slash).
func (client *HTTPClient) BaseURL() string {
	return client.baseURL
}

func (client *HTTPClient) Get(ctx context.Context, path string) ([]byte, error) {
	return client.do(ctx, http.MethodGet, path, nil)
}

func (client *HTTPClient) Post(ctx context.Context, path string, body any) ([]byte, error) {
	return client.do(ctx, http.MethodPost, path, body)
}

func (client *HTTPClient) Put(ctx context.Context, path string, body any) ([]byte, error) {
	return client.do(ctx, http.MethodPut, path, body)
}

func (client *HTTPClient) Delete(ctx context.Context, path string) ([]byte, error) {
	return client.do(ctx, http.MethodDelete, path, nil)
}

func (client *HTTPClient) do(ctx context.Context, method, path string, body any) ([]byte, error) {
	requestID := uuid.NewString()
	failure := func(statusCode int, body []byte, err error) *NetworkFailure {
		return &NetworkFailure{
			Method:     method,
			Path:       path,
			StatusCode: statusCode,
			Body:       netutil.Excerpt(body),
			RawBody:    body,
			RequestID:  requestID,
			Err:        err,
		}
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("%s %s: encoding request body: %w", method, path, err)
		}
		reader = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, client.baseURL+path, reader)
	if err != nil {
		return nil, failure(0, nil, err)
	}
	request.Header.Set("Accept", "application/json")
	request.Header.Set("User-Agent", client.userAgent)
	request.Header.Set(RequestIDHeader, requestID)
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if client.authHeader != "" {
		request.Header.Set("Authorization", client.authHeader)
	}

	start := time.Now()
	response, err := client.httpClient.Do(request)
	if err != nil {
		client.logger.Debug("request failed",
			"method", method, "path", path, "request_id", requestID, "error", err)
		return nil, failure(0, nil, err)
	}
	defer response.Body.Close()

	client.logger.Debug("request completed",
		"method", method,
		"path", path,
		"status", response.StatusCode,
		"request_id", requestID,
		"duration", time.Since(start),
	)

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return nil, failure(response.StatusCode, netutil.ReadErrorBody(response.Body), nil)
	}
	data, err := netutil.ReadResponse(response.Body)
	if err != nil {
		return nil, failure(0, nil, fmt.Errorf("reading response body: %w", err))
	}
	return data, nil
}
