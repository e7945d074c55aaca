// Package client is a Go client for the emulator's JSON protocol and its
// engine endpoints.
package client

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

	"github.com/getmockd/mockwatchlogs/pkg/httputil"
	"github.com/getmockd/mockwatchlogs/pkg/logsapi"
	"github.com/getmockd/mockwatchlogs/pkg/logstore"
	"github.com/getmockd/mockwatchlogs/pkg/requestlog"
)

// APIError is an error response from the emulator.
type APIError struct {
	Type       string `json:"__type"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	RequestID  string `json:"-"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (status %d): %s", e.Type, e.StatusCode, e.Message)
}

// IsType reports whether err is an *APIError with the given wire type.
func IsType(err error, errType string) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Type == errType
}

// IsNotFound reports whether err is a ResourceNotFoundException.
func IsNotFound(err error) bool { return IsType(err, logsapi.TypeResourceNotFound) }

// IsAlreadyExists reports whether err is a ResourceAlreadyExistsException.
func IsAlreadyExists(err error) bool { return IsType(err, logsapi.TypeResourceAlreadyExists) }

// Client talks to one emulator instance.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the HTTP timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// New creates a client for the emulator at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CreateLogGroup creates a log group.
func (c *Client) CreateLogGroup(ctx context.Context, in *logsapi.CreateLogGroupInput) error {
	return c.call(ctx, logsapi.ActionCreateLogGroup, in, nil)
}

// CreateLogStream creates a log stream.
func (c *Client) CreateLogStream(ctx context.Context, in *logsapi.CreateLogStreamInput) error {
	return c.call(ctx, logsapi.ActionCreateLogStream, in, nil)
}

// DeleteLogGroup deletes a log group and its streams.
func (c *Client) DeleteLogGroup(ctx context.Context, in *logsapi.DeleteLogGroupInput) error {
	return c.call(ctx, logsapi.ActionDeleteLogGroup, in, nil)
}

// DeleteLogStream deletes a log stream.
func (c *Client) DeleteLogStream(ctx context.Context, in *logsapi.DeleteLogStreamInput) error {
	return c.call(ctx, logsapi.ActionDeleteLogStream, in, nil)
}

// DescribeLogGroups looks up log groups by prefix.
func (c *Client) DescribeLogGroups(ctx context.Context, in *logsapi.DescribeLogGroupsInput) (*logsapi.DescribeLogGroupsOutput, error) {
	var out logsapi.DescribeLogGroupsOutput
	if err := c.call(ctx, logsapi.ActionDescribeLogGroups, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DescribeLogStreams lists the streams of a group.
func (c *Client) DescribeLogStreams(ctx context.Context, in *logsapi.DescribeLogStreamsInput) (*logsapi.DescribeLogStreamsOutput, error) {
	var out logsapi.DescribeLogStreamsOutput
	if err := c.call(ctx, logsapi.ActionDescribeLogStreams, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PutLogEvents appends events to a stream.
func (c *Client) PutLogEvents(ctx context.Context, in *logsapi.PutLogEventsInput) (*logsapi.PutLogEventsOutput, error) {
	var out logsapi.PutLogEventsOutput
	if err := c.call(ctx, logsapi.ActionPutLogEvents, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetLogEvents reads events from a stream.
func (c *Client) GetLogEvents(ctx context.Context, in *logsapi.GetLogEventsInput) (*logsapi.GetLogEventsOutput, error) {
	var out logsapi.GetLogEventsOutput
	if err := c.call(ctx, logsapi.ActionGetLogEvents, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Invoke sends a raw request with an arbitrary target, for exercising
// protocol edge cases.
func (c *Client) Invoke(ctx context.Context, target string, body []byte) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/", bytes.NewReader(body))
	if err != nil {
		return 0, nil, err
	}
	if target != "" {
		req.Header.Set(logsapi.TargetHeader, target)
	}
	req.Header.Set("Content-Type", httputil.AWSJSONContentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("failed to read response: %w", err)
	}
	return resp.StatusCode, data, nil
}

func (c *Client) call(ctx context.Context, action logsapi.Action, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to encode %s request: %w", action, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set(logsapi.TargetHeader, action.Target())
	req.Header.Set("Content-Type", httputil.AWSJSONContentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", action, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return parseAPIError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", action, err)
	}
	return nil
}

func parseAPIError(resp *http.Response) error {
	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		RequestID:  resp.Header.Get(httputil.RequestIDHeader),
	}
	body, _ := io.ReadAll(resp.Body)
	if err := json.Unmarshal(body, apiErr); err != nil || apiErr.Type == "" {
		apiErr.Type = logsapi.TypeService
		apiErr.Message = strings.TrimSpace(string(body))
	}
	return apiErr
}

// Health checks if the emulator is healthy.
func (c *Client) Health(ctx context.Context) error {
	resp, err := c.engine(ctx, http.MethodGet, "/health")
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("emulator unhealthy: status %d", resp.StatusCode)
	}
	return nil
}

// StatusResponse is the body of GET /status.
type StatusResponse struct {
	Status        string         `json:"status"`
	UptimeSeconds int            `json:"uptimeSeconds"`
	Store         logstore.Stats `json:"store"`
	RequestLog    int            `json:"requestLog"`
}

// Status returns the emulator status.
func (c *Client) Status(ctx context.Context) (*StatusResponse, error) {
	resp, err := c.engine(ctx, http.MethodGet, "/status")
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status failed: status %d", resp.StatusCode)
	}

	var status StatusResponse
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return nil, fmt.Errorf("failed to decode status: %w", err)
	}
	return &status, nil
}

// Reset restores the emulator's store to its startup contents.
func (c *Client) Reset(ctx context.Context) error {
	resp, err := c.engine(ctx, http.MethodPost, "/_reset")
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("reset failed: status %d", resp.StatusCode)
	}
	return nil
}

// Requests returns the recorded request history, newest first.
func (c *Client) Requests(ctx context.Context) ([]*requestlog.Entry, error) {
	resp, err := c.engine(ctx, http.MethodGet, "/_requests")
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("list requests failed: status %d", resp.StatusCode)
	}

	var result struct {
		Requests []*requestlog.Entry `json:"requests"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode requests: %w", err)
	}
	return result.Requests, nil
}

func (c *Client) engine(ctx context.Context, method, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	return c.httpClient.Do(req)
}
