// Package webhook posts analysis reports to HTTP endpoints.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/chatstat/chatstat/pkg/config"
	"github.com/chatstat/chatstat/pkg/output"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 10 * time.Second

// maxResponseBody caps how much of a response body is kept.
const maxResponseBody = 1 << 20

// Client sends analysis reports to webhook endpoints.
type Client struct {
	httpClient *http.Client
	logger     *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger sets the logger used for delivery results.
func WithLogger(l *slog.Logger) ClientOption {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient creates a new webhook client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With("component", "webhook")
	return c
}

// SendOptions configures a webhook request.
type SendOptions struct {
	Name    string        // Used in logs only
	URL     string
	Token   string        // Bearer token (optional)
	Timeout time.Duration // Request timeout (uses DefaultTimeout if zero)
}

// Response contains the result of a webhook request.
type Response struct {
	Name       string
	StatusCode int
	Body       string
	Duration   time.Duration
	Error      error
}

// Success returns true if the webhook was sent successfully (2xx status).
func (r *Response) Success() bool {
	return r.Error == nil && r.StatusCode >= 200 && r.StatusCode < 300
}

// Send posts an analysis report to a webhook endpoint.
func (c *Client) Send(ctx context.Context, report *output.Report, opts SendOptions) *Response {
	start := time.Now()
	resp := &Response{Name: opts.Name}
	defer func() { resp.Duration = time.Since(start) }()

	payload, err := json.Marshal(report)
	if err != nil {
		resp.Error = fmt.Errorf("marshaling report: %w", err)
		return resp
	}

	timeout := opts.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, opts.URL, bytes.NewReader(payload))
	if err != nil {
		resp.Error = fmt.Errorf("creating request: %w", err)
		return resp
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "chatstat-webhook")
	if opts.Token != "" {
		req.Header.Set("Authorization", "Bearer "+opts.Token)
	}

	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		resp.Error = fmt.Errorf("request failed: %w", err)
		return resp
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(httpResp.Body, maxResponseBody))
	if err != nil {
		resp.Error = fmt.Errorf("reading response: %w", err)
		return resp
	}

	resp.StatusCode = httpResp.StatusCode
	resp.Body = string(body)

	if resp.StatusCode >= 400 {
		resp.Error = fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	return resp
}

// Dispatch sends the report to every hook concurrently. Delivery failures
// are logged and reported in the responses; they never abort the others.
// Responses are in hook order.
func (c *Client) Dispatch(ctx context.Context, report *output.Report, hooks []config.WebhookConfig) []*Response {
	responses := make([]*Response, len(hooks))

	var g errgroup.Group
	for i, wh := range hooks {
		i, wh := i, wh
		g.Go(func() error {
			resp := c.Send(ctx, report, SendOptions{
				Name:    wh.Name,
				URL:     wh.URL,
				Token:   wh.Token,
				Timeout: wh.Timeout,
			})
			responses[i] = resp

			if resp.Success() {
				c.logger.InfoContext(ctx, "webhook delivered",
					"name", wh.Name, "status", resp.StatusCode, "duration", resp.Duration)
			} else {
				c.logger.WarnContext(ctx, "webhook failed",
					"name", wh.Name, "status", resp.StatusCode, "error", resp.Error)
			}
			return nil
		})
	}
	_ = g.Wait()

	return responses
}
