// SPDX-License-Identifier: Apache-2.0
package analysis

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

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/marx-labs/marx/pkg/config"
)

// AnalyzePath is the service endpoint for strategy analysis
const AnalyzePath = "/api/analyze"

// maxBodySize caps how much of a response is read
const maxBodySize = 4 << 20

// Client talks to the analysis service
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewClient creates a client for baseURL with a request timeout
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout:   timeout,
			Transport: http.DefaultTransport.(*http.Transport).Clone(),
		},
	}
}

// NewClientFromConfig creates a client using api.url, api.timeout and api.token
func NewClientFromConfig() *Client {
	return NewClient(config.GetAPIURL(), config.GetAPITimeout()).WithToken(config.GetAPIToken())
}

// WithToken sets the bearer token sent with every request
func (c *Client) WithToken(token string) *Client {
	c.token = strings.TrimSpace(token)
	return c
}

// Close drops the idle keep-alive connections
func (c *Client) Close() {
	c.http.CloseIdleConnections()
}

// URL returns the full analyze endpoint
func (c *Client) URL() string {
	return c.baseURL + AnalyzePath
}

// Analyze posts the request and decodes the reply. The returned error is a
// *TransportError, *ServerError or *MalformedResponseError.
func (c *Client) Analyze(ctx context.Context, reqBody Request) (*Response, error) {
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL(), bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	log.Debug("analysis request", "url", c.URL(), "request_id", requestID, "budget", reqBody.RawBudgetAmount)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, fmt.Errorf("%w: %v", ErrCanceled, err)
		}
		log.Debug("analysis transport failure", "request_id", requestID, "err", err)
		return nil, &TransportError{URL: c.URL(), Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, &TransportError{URL: c.URL(), Err: fmt.Errorf("failed to read response: %w", err)}
	}

	log.Debug("analysis response", "request_id", requestID, "status", resp.StatusCode, "bytes", len(body), "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &ServerError{Status: resp.StatusCode, Body: string(body)}
	}

	return DecodeResponse(body)
}
