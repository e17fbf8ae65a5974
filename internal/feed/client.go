// Package feed talks to the public real-time quote endpoint and parses its
// semi-structured text responses into domain.Quote records.
package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// failureSentinel appears in response bodies when the feed rejects a
// request. Treated as a transient failure like a bad status code.
const failureSentinel = "FAILED"

// requestHeaders make the request look like a browser page load. The feed
// rejects requests without a plausible Referer.
var requestHeaders = map[string]string{
	"User-Agent":      "Mozilla/5.0 (Windows NT 10.0; WOW64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/104.0.0.0 Safari/537.36",
	"Accept":          "*/*",
	"Accept-Language": "zh-CN,zh;q=0.8,zh-TW;q=0.7,zh-HK;q=0.5,en-US;q=0.3,en;q=0.2",
	"Referer":         "https://finance.sina.com.cn",
}

// Client fetches raw quote text for batches of tickers over HTTP. The
// underlying session and headers are immutable after construction and safe
// for concurrent use.
type Client struct {
	HTTPClient *http.Client
	endpoint   string // base URL; the comma-joined ticker list is appended
}

// NewClient creates a feed client for the given endpoint with a
// per-request timeout.
func NewClient(endpoint string, timeout time.Duration) *Client {
	return &Client{
		HTTPClient: &http.Client{Timeout: timeout},
		endpoint:   endpoint,
	}
}

// Fetch performs one GET for the combined quote string of all tickers in
// the batch and returns the raw response body. A non-200 status or a body
// containing the failure sentinel is an error; callers retry via
// util.Retry.
func (c *Client) Fetch(ctx context.Context, tickers []string) (string, error) {
	url := c.endpoint + strings.Join(tickers, ",")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("building quote request: %w", err)
	}
	for k, v := range requestHeaders {
		req.Header.Set(k, v)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching quotes: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("quote feed returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading quote response: %w", err)
	}
	text := string(body)
	if strings.Contains(text, failureSentinel) {
		return "", fmt.Errorf("quote feed returned failure sentinel")
	}
	return text, nil
}
