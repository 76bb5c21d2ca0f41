// Package client is the Go client for the content API, used by site
// generators and migration tooling that read and write the same keyed
// content documents the admin dashboard edits.
//
// The client is bound to one conference at construction; every request
// carries the tenant header explicitly rather than relying on the
// server-side default.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sciengasummits/confadmin/internal/app/system/tenant"
)

// APIError is the single error type all request failures normalize to.
// Status is zero when the request never produced an HTTP response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (HTTP %d)", e.Message, e.Status)
}

// Client talks to the content API for one conference.
type Client struct {
	baseURL  string
	tenantID string
	token    string
	http     *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithToken sets the bearer token used for writes.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// New creates a Client for the given API base URL and conference id.
func New(baseURL, tenantID string, opts ...Option) *Client {
	c := &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		tenantID: tenantID,
		http:     &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetContent fetches the payload stored under key. A slot that has
// never been written comes back as an empty map, matching the server.
func (c *Client) GetContent(ctx context.Context, key string) (map[string]any, error) {
	return c.do(ctx, http.MethodGet, key, nil)
}

// UpdateContent replaces the payload stored under key entirely and
// returns the document as stored. Callers that want to keep fields
// they did not set should use SaveFields instead.
func (c *Client) UpdateContent(ctx context.Context, key string, payload map[string]any) (map[string]any, error) {
	return c.do(ctx, http.MethodPut, key, payload)
}

// SaveFields performs the read-modify-write the replace-only PUT
// requires: fetch the current document, overlay the given fields, and
// write the union back. If the fetch fails the merge starts from an
// empty document, so a save can still go through when a read is flaky;
// that trade favors saving the user's work over preserving fields some
// other writer may have added meanwhile. Two concurrent SaveFields
// calls still race at the PUT: last write wins.
func (c *Client) SaveFields(ctx context.Context, key string, fields map[string]any) (map[string]any, error) {
	current, err := c.GetContent(ctx, key)
	if err != nil {
		current = map[string]any{}
	}

	merged := make(map[string]any, len(current)+len(fields))
	for k, v := range current {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}

	return c.UpdateContent(ctx, key, merged)
}

func (c *Client) do(ctx context.Context, method, key string, payload map[string]any) (map[string]any, error) {
	url := c.baseURL + "/api/content/" + key

	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, &APIError{Message: "encode payload: " + err.Error()}
		}
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, &APIError{Message: "build request: " + err.Error()}
	}
	req.Header.Set(tenant.HeaderName, c.tenantID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &APIError{Message: "request failed: " + err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, c.apiError(resp)
	}

	var doc map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, &APIError{Status: resp.StatusCode, Message: "decode response: " + err.Error()}
	}
	if doc == nil {
		doc = map[string]any{}
	}
	return doc, nil
}

// apiError extracts the server's {error} message when the body carries
// one and falls back to the HTTP status text when it does not.
func (c *Client) apiError(resp *http.Response) *APIError {
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		if body.Error != "" {
			return &APIError{Status: resp.StatusCode, Message: body.Error}
		}
		if body.Message != "" {
			return &APIError{Status: resp.StatusCode, Message: body.Message}
		}
	}
	return &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
}
