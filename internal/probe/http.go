package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	service "github.com/okian/disasterdash/internal/app"
	"github.com/okian/disasterdash/internal/domain/aggregate"
)

// HTTPClient wraps http.Client with timeout.
type HTTPClient struct {
	client  *http.Client
	baseURL string
}

func newHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
	}
}

// Get performs a GET request and returns the body of a 200 response.
func (c *HTTPClient) Get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("GET %s: read body: %w", path, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: status %d", path, resp.StatusCode)
	}
	return body, nil
}

// viewResponse is the subset of /api/view the probe compares.
type viewResponse struct {
	Heading    string             `json:"heading"`
	Subheading string             `json:"subheading"`
	Controls   service.Controls   `json:"controls"`
	Metrics    []aggregate.Metric `json:"metrics"`
	Map        json.RawMessage    `json:"map"`
}

func (c *HTTPClient) fetchOptions(ctx context.Context) (service.Controls, error) {
	var out service.Controls
	body, err := c.Get(ctx, "/api/options", nil)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return out, fmt.Errorf("decode options: %w", err)
	}
	return out, nil
}

func (c *HTTPClient) fetchView(ctx context.Context, check Check) (*viewResponse, error) {
	q := url.Values{"year": {strconv.Itoa(check.Year)}}
	if check.Risk != "" {
		q.Set("risk", check.Risk)
	}
	body, err := c.Get(ctx, "/api/view", q)
	if err != nil {
		return nil, err
	}
	var out viewResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("decode view: %w", err)
	}
	return &out, nil
}
