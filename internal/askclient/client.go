// Package askclient posts dashboard questions to the ask endpoint.
package askclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"askdash/internal/dashboard"
	"askdash/internal/textutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultEndpoint matches the backend's default listen address.
const DefaultEndpoint = "http://127.0.0.1:5000/api/ask"

// RequestIDHeader carries a per-call id so client and server logs line up.
const RequestIDHeader = "X-Request-ID"

// ErrMissingResponse is returned when a 2xx body has no "response" field.
var ErrMissingResponse = errors.New("askclient: reply has no response field")

type Option func(*Client)

// WithHTTPClient swaps the transport. A zero Timeout means calls run until
// the context ends.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// Client implements dashboard.Asker over HTTP.
type Client struct {
	endpoint string
	http     *http.Client
	logger   *zap.Logger
}

var _ dashboard.Asker = (*Client)(nil)

func New(endpoint string, opts ...Option) *Client {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	c := &Client{
		endpoint: endpoint,
		http:     &http.Client{},
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Endpoint() string {
	return c.endpoint
}

type replyBody struct {
	Response *string `json:"response"`
	Error    string  `json:"error,omitempty"`
}

// Ask sends one request and returns the response text. There are no retries.
func (c *Client) Ask(ctx context.Context, req dashboard.Request) (string, error) {
	buf, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("encode ask request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(buf))
	if err != nil {
		return "", err
	}
	requestID := uuid.NewString()
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set(RequestIDHeader, requestID)

	started := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("ask request failed: %w", err)
	}
	defer resp.Body.Close()
	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read ask reply: %w", err)
	}
	c.logger.Debug("ask reply received",
		zap.String("request_id", requestID),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(started)),
		zap.Int("bytes", len(payload)),
	)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("ask http %d: %s", resp.StatusCode, textutil.CompactSingleLine(string(payload), 240))
	}
	var parsed replyBody
	if err := json.Unmarshal(payload, &parsed); err != nil {
		return "", fmt.Errorf("ask returned non-json payload: %w", err)
	}
	if parsed.Response == nil {
		return "", ErrMissingResponse
	}
	return *parsed.Response, nil
}
