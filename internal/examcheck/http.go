package examcheck

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

// HTTPClient wraps http.Client with timeout
type HTTPClient struct {
	client  *http.Client
	baseURL string
}

// newHTTPClient creates a new HTTP client with timeout
func newHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{
			Timeout: timeout,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Close releases idle connections.
func (c *HTTPClient) Close() {
	c.client.CloseIdleConnections()
}

// Get performs a GET request against path.
func (c *HTTPClient) Get(ctx context.Context, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set(requestIDHeader, uuid.NewString())
	return c.client.Do(req)
}

// Post performs a POST request with JSON body
func (c *HTTPClient) Post(ctx context.Context, path string, body any) (*http.Response, error) {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(requestIDHeader, uuid.NewString())
	return c.client.Do(req)
}

// getJSON fetches path and decodes a 200 response into v.
func (c *HTTPClient) getJSON(ctx context.Context, path string, v any) error {
	resp, err := c.Get(ctx, path)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	return decodeResponse(resp, v)
}

// decodeResponse reads and closes the response body, decoding it into v
// when the status is 200.
func decodeResponse(resp *http.Response, v any) error {
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != StatusOK {
		return fmt.Errorf("%w: status %d: %s", ErrBadResponse, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("%w: %w", ErrBadResponse, err)
	}
	return nil
}

// fetchTopics lists the topics served by the API.
func (c *HTTPClient) fetchTopics(ctx context.Context) ([]string, error) {
	var body struct {
		Topics []string `json:"topics"`
	}
	if err := c.getJSON(ctx, "/topics", &body); err != nil {
		return nil, err
	}
	return body.Topics, nil
}

// fetchSamples returns the samples for one topic.
func (c *HTTPClient) fetchSamples(ctx context.Context, topic string) (TopicSamples, error) {
	var body TopicSamples
	if err := c.getJSON(ctx, "/samples/"+url.PathEscape(topic), &body); err != nil {
		return TopicSamples{}, err
	}
	return body, nil
}

// solve submits data for topic and decodes the solution.
func (c *HTTPClient) solve(ctx context.Context, topic string, data map[string]any) (Solution, error) {
	resp, err := c.Post(ctx, "/solve", map[string]any{"topic": topic, "data": data})
	if err != nil {
		return Solution{}, fmt.Errorf("POST /solve: %w", err)
	}
	var sol Solution
	if err := decodeResponse(resp, &sol); err != nil {
		return Solution{}, err
	}
	return sol, nil
}
