package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"blog-gateway/internal/config"
)

// Client is the thin typed request layer over the remote CMS REST backend.
// It performs the HTTP call and normalizes failures; it never caches -
// freshness is the query cache coordinator's job.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(cfg config.RemoteConfig) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// Query collects request parameters. Empty values are dropped at encode
// time, so the client never emits empty query params.
type Query map[string]string

func (q Query) encode() string {
	if len(q) == 0 {
		return ""
	}
	values := url.Values{}
	for k, v := range q {
		if v == "" {
			continue
		}
		values.Set(k, v)
	}
	return values.Encode()
}

func (c *Client) Get(ctx context.Context, path string, query Query, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) Put(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// Ping reports whether the backend is reachable. Any HTTP response counts:
// reachability is about the network path, not the endpoint's semantics.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.baseURL, nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("blog backend unreachable: %w", err)
	}
	resp.Body.Close()
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, query Query, body, out interface{}) error {
	// Step 1: Build URL from configured base + endpoint
	endpoint := c.baseURL + path
	if encoded := query.encode(); encoded != "" {
		endpoint += "?" + encoded
	}

	// Step 2: Serialize body
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	// Step 3: Call the backend
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call blog backend: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	// Step 4: Non-2xx becomes a RequestError with the backend's message
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &RequestError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(respBody, resp.StatusCode),
		}
	}

	if out == nil {
		return nil
	}
	return decodeInto(respBody, out)
}

// decodeInto unwraps the {success, data} envelope when present and falls
// back to decoding the bare entity - legacy endpoints return both shapes.
func decodeInto(body []byte, out interface{}) error {
	var envelope struct {
		Success *bool           `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil &&
		envelope.Success != nil && len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return fmt.Errorf("failed to decode response data: %w", err)
		}
		return nil
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
