// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package backend provides the HTTP client for the knowledge-base chat API.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ClientError represents a normalized failure from the backend client.
type ClientError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeConnection
	ErrTypeTimeout
	ErrTypeHTTP
	ErrTypeInvalidResponse
)

// ErrTimeout is returned when a request exceeds its deadline.
var ErrTimeout = &ClientError{Type: ErrTypeTimeout, Message: "request timed out"}

// genericFailure is surfaced when the backend returns a non-2xx status with
// no structured error body to extract a message from.
const genericFailure = "request failed"

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// ClientConfig holds configuration options for the backend client.
type ClientConfig struct {
	// BaseURL is the API base URL, e.g. "http://127.0.0.1:8000".
	BaseURL string

	// Timeout for chat, registration, and delete requests (default: 30s)
	Timeout time.Duration

	// UploadTimeout for document uploads, which ingest server-side and can
	// take much longer than a chat round-trip (default: 2m)
	UploadTimeout time.Duration

	// Logger records request outcomes. Nil disables logging.
	Logger *zap.Logger
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL:       "http://127.0.0.1:8000",
		Timeout:       30 * time.Second,
		UploadTimeout: 2 * time.Minute,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client performs the four tenant-scoped operations of the knowledge-base
// chat API: chat query, document upload, web-source registration, and
// document deletion.
//
// The Client is safe for concurrent use.
type Client struct {
	config       *ClientConfig
	httpClient   *http.Client
	uploadClient *http.Client
	log          *zap.Logger
}

// NewClient creates a backend client. A nil config uses defaults; zero
// values in a supplied config are filled in.
func NewClient(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig()
	}
	if config.BaseURL == "" {
		config.BaseURL = "http://127.0.0.1:8000"
	}
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	if config.UploadTimeout == 0 {
		config.UploadTimeout = 2 * time.Minute
	}
	log := config.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return &Client{
		config:       config,
		httpClient:   &http.Client{Timeout: config.Timeout},
		uploadClient: &http.Client{Timeout: config.UploadTimeout},
		log:          log,
	}
}

// BaseURL returns the configured API base URL.
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// =============================================================================
// CHAT
// =============================================================================

// ChatResponse is a successful answer from the retrieval backend.
type ChatResponse struct {
	Answer    string    `json:"answer"`
	Timestamp time.Time `json:"timestamp"`
	// Sources holds citation identifiers, in backend order.
	Sources []string `json:"sources,omitempty"`
}

// Chat sends the query to the tenant's assistant and returns its answer.
func (c *Client) Chat(ctx context.Context, tenantID, query string) (*ChatResponse, error) {
	endpoint := c.config.BaseURL + "/api/" + url.PathEscape(tenantID) + "/chat?query=" + url.QueryEscape(query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}

	resp, err := c.do(c.httpClient, req, "chat", tenantID)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var result ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode chat response", Cause: err}
	}
	return &result, nil
}

// =============================================================================
// KNOWLEDGE SOURCES
// =============================================================================

// UploadDocument uploads a PDF as a multipart form with field "file".
// The response body is ignored on success.
func (c *Client) UploadDocument(ctx context.Context, tenantID, filename string, content io.Reader) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return &ClientError{Type: ErrTypeConnection, Message: "failed to build upload form", Cause: err}
	}
	if _, err := io.Copy(part, content); err != nil {
		return &ClientError{Type: ErrTypeConnection, Message: "failed to read document", Cause: err}
	}
	if err := writer.Close(); err != nil {
		return &ClientError{Type: ErrTypeConnection, Message: "failed to build upload form", Cause: err}
	}

	endpoint := c.config.BaseURL + "/api/" + url.PathEscape(tenantID) + "/knowledge/pdf"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &buf)
	if err != nil {
		return &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.do(c.uploadClient, req, "upload-document", tenantID)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

// RegisterWebSource registers a web page as a form field "url".
// The caller is responsible for trimming; the response body is ignored.
func (c *Client) RegisterWebSource(ctx context.Context, tenantID, sourceURL string) error {
	form := url.Values{"url": {sourceURL}}

	endpoint := c.config.BaseURL + "/api/" + url.PathEscape(tenantID) + "/knowledge/web"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.do(c.httpClient, req, "register-web-source", tenantID)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

// DeleteDocument removes a previously uploaded document. The document name is
// percent-encoded into the path, so names with slashes or spaces round-trip.
func (c *Client) DeleteDocument(ctx context.Context, tenantID, name string) error {
	endpoint := c.config.BaseURL + "/api/" + url.PathEscape(tenantID) + "/knowledge/pdf/" + url.PathEscape(name)

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}

	resp, err := c.do(c.httpClient, req, "delete-source", tenantID)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

// =============================================================================
// TRANSPORT HELPERS
// =============================================================================

// do executes the request and normalizes failures. Any non-2xx status is
// converted into a *ClientError whose message comes from the response body
// when it is structured, else a generic fallback.
func (c *Client) do(hc *http.Client, req *http.Request, op, tenantID string) (*http.Response, error) {
	start := time.Now()
	resp, err := hc.Do(req)
	if err != nil {
		c.log.Warn("backend call failed",
			zap.String("op", op),
			zap.String("tenant", tenantID),
			zap.Error(err))
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrTimeout
		}
		return nil, &ClientError{Type: ErrTypeConnection, Message: "backend unreachable", Cause: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := extractErrorMessage(resp.Body)
		resp.Body.Close()
		c.log.Warn("backend call rejected",
			zap.String("op", op),
			zap.String("tenant", tenantID),
			zap.Int("status", resp.StatusCode),
			zap.String("message", msg))
		return nil, &ClientError{Type: ErrTypeHTTP, Message: msg}
	}

	c.log.Debug("backend call ok",
		zap.String("op", op),
		zap.String("tenant", tenantID),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))
	return resp, nil
}

// errorBody is the shape of a structured error response. Backends vary in
// which field they use, so all three are tried in order.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Detail  string `json:"detail"`
}

// extractErrorMessage pulls a human-readable message out of an error
// response body. Falls back to a generic message for unstructured bodies.
func extractErrorMessage(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, 8<<10))
	if err != nil || len(data) == 0 {
		return genericFailure
	}

	var body errorBody
	if err := json.Unmarshal(data, &body); err == nil {
		for _, msg := range []string{body.Error, body.Message, body.Detail} {
			if strings.TrimSpace(msg) != "" {
				return strings.TrimSpace(msg)
			}
		}
	}
	return genericFailure
}
