// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package power

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

	"github.com/tidwall/gjson"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Signal is a power action understood by the hosting API.
type Signal string

const (
	SignalStart   Signal = "start"
	SignalStop    Signal = "stop"
	SignalRestart Signal = "restart"
)

// DefaultTimeout bounds every request to the hosting API.
const DefaultTimeout = 10 * time.Second

// maxBodyBytes caps how much of a response body is kept for logging.
const maxBodyBytes = 4096

// ParseSignal maps an action identifier to a Signal.
func ParseSignal(s string) (Signal, bool) {
	switch Signal(s) {
	case SignalStart, SignalStop, SignalRestart:
		return Signal(s), true
	}
	return "", false
}

// ClientConfig configures the hosting API client.
type ClientConfig struct {
	BaseURL  string
	APIKey   string
	ServerID string
	Timeout  time.Duration
	// HTTPClient overrides the instrumented default client. Used by tests.
	HTTPClient *http.Client
}

// Result is the raw outcome of one power request.
type Result struct {
	Signal Signal
	Status int
	Body   string
	Err    error
}

// OK reports whether the API accepted the signal (204 No Content).
func (r Result) OK() bool {
	return r.Err == nil && r.Status == http.StatusNoContent
}

// String renders the outcome for logs.
func (r Result) String() string {
	if r.Err != nil {
		return fmt.Sprintf("%s -> error: %v", r.Signal, r.Err)
	}
	return fmt.Sprintf("%s -> %d | %s", r.Signal, r.Status, r.Body)
}

// Client talks to the hosting provider's client API. It is stateless.
type Client struct {
	baseURL  string
	apiKey   string
	serverID string
	timeout  time.Duration
	http     *http.Client
}

// NewClient creates a hosting API client.
func NewClient(cfg ClientConfig) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("hosting API base URL is required")
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid hosting API base URL: %w", err)
	}
	if cfg.APIKey == "" || cfg.ServerID == "" {
		return nil, fmt.Errorf("hosting API key and server ID are required")
	}

	c := &Client{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:   cfg.APIKey,
		serverID: cfg.ServerID,
		timeout:  cfg.Timeout,
		http:     cfg.HTTPClient,
	}
	if c.timeout <= 0 {
		c.timeout = DefaultTimeout
	}
	if c.http == nil {
		c.http = &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
	}
	return c, nil
}

type powerRequest struct {
	Signal Signal `json:"signal"`
}

// SendPower issues a single power request. It never retries; every failure
// is reported in the Result.
func (c *Client) SendPower(ctx context.Context, signal Signal) Result {
	res := Result{Signal: signal}

	body, err := json.Marshal(powerRequest{Signal: signal})
	if err != nil {
		res.Err = fmt.Errorf("failed to encode power request: %w", err)
		return res
	}

	resp, err := c.do(ctx, http.MethodPost, c.serverPath("power"), body)
	if err != nil {
		res.Err = err
		return res
	}
	res.Status = resp.status
	res.Body = resp.body
	return res
}

// CurrentState reads attributes.current_state from the resources endpoint
// (for example "running", "starting", "offline").
func (c *Client) CurrentState(ctx context.Context) (string, error) {
	resp, err := c.do(ctx, http.MethodGet, c.serverPath("resources"), nil)
	if err != nil {
		return "", err
	}
	if resp.status != http.StatusOK {
		return "", fmt.Errorf("resources request returned status %d", resp.status)
	}

	state := gjson.Get(resp.body, "attributes.current_state")
	if !state.Exists() || state.String() == "" {
		return "", fmt.Errorf("resources response has no current_state")
	}
	return state.String(), nil
}

func (c *Client) serverPath(endpoint string) string {
	return fmt.Sprintf("%s/servers/%s/%s", c.baseURL, url.PathEscape(c.serverID), endpoint)
}

type response struct {
	status int
	body   string
}

func (c *Client) do(ctx context.Context, method, target string, body []byte) (*response, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s failed: %w", method, target, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return &response{status: resp.StatusCode, body: string(data)}, nil
}
