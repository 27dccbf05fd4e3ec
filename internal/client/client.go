// Package client talks to a todos server. Client implements
// types.SnapshotStore, so the list editor can use a remote server and a
// local SQLite backend interchangeably.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/mesh-intelligence/todos/internal/server"
	"github.com/mesh-intelligence/todos/pkg/types"
)

// DefaultTimeout bounds each request when Config.Timeout is zero.
const DefaultTimeout = 10 * time.Second

// Config holds the parameters for a Client. BaseURL is required.
type Config struct {
	// BaseURL is the server root, e.g. "http://localhost:3001".
	BaseURL string

	// Timeout bounds each request end to end. Zero means DefaultTimeout.
	// Ignored when HTTPClient is set.
	Timeout time.Duration

	// HTTPClient overrides the transport, mostly for tests.
	HTTPClient *http.Client

	// Logger receives request failures. If nil, output is discarded.
	Logger *slog.Logger
}

// Client is a types.SnapshotStore backed by the todos HTTP API.
type Client struct {
	base   *url.URL
	http   *http.Client
	logger *slog.Logger
}

// New validates cfg and returns a Client.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("client: BaseURL is required")
	}
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("client: parsing base URL: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("client: base URL %q must be http or https", cfg.BaseURL)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Client{base: base, http: httpClient, logger: logger}, nil
}

type storeRequest struct {
	Todos []types.Task `json:"todos"`
}

type errorReply struct {
	Error   string `json:"error"`
	Details string `json:"details"`
}

// ReplaceAll posts the whole list to the server, which overwrites its
// snapshot. A non-200 reply is returned as *types.RemoteError.
func (c *Client) ReplaceAll(ctx context.Context, tasks []types.Task) error {
	body, err := json.Marshal(storeRequest{Todos: types.CloneTasks(tasks)})
	if err != nil {
		return fmt.Errorf("encoding todos: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(server.PathStore), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building store request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("store request failed", "error", err)
		return fmt.Errorf("storing todos: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.remoteError(resp)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// ReadAll fetches the server snapshot. A non-200 reply, including the 404
// "No todos found" reply, is returned as *types.RemoteError.
func (c *Client) ReadAll(ctx context.Context) ([]types.Task, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(server.PathRetrieve), nil)
	if err != nil {
		return nil, fmt.Errorf("building retrieve request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("retrieve request failed", "error", err)
		return nil, fmt.Errorf("retrieving todos: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.remoteError(resp)
	}

	var tasks []types.Task
	if err := json.NewDecoder(resp.Body).Decode(&tasks); err != nil {
		return nil, fmt.Errorf("decoding todos: %w", err)
	}
	return types.CloneTasks(tasks), nil
}

func (c *Client) endpoint(path string) string {
	return c.base.JoinPath(path).String()
}

// remoteError reads an error reply. Bodies that are not the expected JSON
// shape still produce a RemoteError carrying the status code.
func (c *Client) remoteError(resp *http.Response) error {
	var reply errorReply
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err := json.Unmarshal(raw, &reply); err != nil {
		reply.Error = http.StatusText(resp.StatusCode)
	}
	c.logger.Warn("server returned error",
		"status", resp.StatusCode,
		"error", reply.Error,
		"details", reply.Details,
	)
	return &types.RemoteError{
		StatusCode: resp.StatusCode,
		Message:    reply.Error,
		Details:    reply.Details,
	}
}
