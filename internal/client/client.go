// ABOUTME: HTTP client for the bohe-sign check-in API
// ABOUTME: Every call funnels through Do, which normalizes failures into a Result

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"
)

// NetworkErrorMessage is reported for transport and decode failures
const NetworkErrorMessage = "network request failed, please check your connection"

// apiRoot is the fixed path prefix of every endpoint
const apiRoot = "/api"

// Client is the API client for the check-in backend
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new API client with the given base URL
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// BaseURL returns the backend URL the client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Result is the uniform envelope returned by every API call.
// When Success is false, Data must not be applied.
type Result struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// MessageOr returns the server message, or fallback when the server sent none
func (r Result) MessageOr(fallback string) string {
	if r.Message != "" {
		return r.Message
	}
	return fallback
}

// networkError builds the normalized failure result
func networkError() Result {
	return Result{Success: false, Message: NetworkErrorMessage}
}

// Do performs one request against the API root and decodes the envelope.
// It never returns an error: any transport or parse failure becomes a
// failed Result carrying NetworkErrorMessage.
func (c *Client) Do(ctx context.Context, method, endpoint string, body any) Result {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return networkError()
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+apiRoot+endpoint, reader)
	if err != nil {
		return networkError()
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return networkError()
	}
	defer resp.Body.Close()

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return networkError()
	}
	return result
}

// fetch performs a read call and decodes Data into T on success
func fetch[T any](ctx context.Context, c *Client, endpoint string) (*T, Result) {
	result := c.Do(ctx, http.MethodGet, endpoint, nil)
	if !result.Success {
		return nil, result
	}

	var out T
	if len(result.Data) == 0 {
		return &out, result
	}
	if err := json.Unmarshal(result.Data, &out); err != nil {
		return nil, networkError()
	}
	return &out, result
}
