// Package client is a Go client for the Roster HTTP API. It mirrors the
// server's /api/users contract and is used by the admin CLI and tests.
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
)

// User is the wire representation of a user record.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// UserFields carries the fields sent on create.
type UserFields struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// UserPatch is a partial field set for update. Nil fields are omitted
// from the request body and left unchanged server-side.
type UserPatch struct {
	Name     *string `json:"name,omitempty"`
	Username *string `json:"username,omitempty"`
	Email    *string `json:"email,omitempty"`
}

// ErrNotFound indicates the server answered 404 for the requested user.
var ErrNotFound = errors.New("user not found")

// APIError is a non-2xx response decoded from the {"message": ...} body.
type APIError struct {
	StatusCode int
	Message    string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// Client talks to one Roster server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client. No timeout is
// imposed by default; it is left to the transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New creates a client for the server at baseURL, e.g. "http://localhost:3001".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// List fetches the full user collection.
func (c *Client) List(ctx context.Context) ([]User, error) {
	var users []User
	if err := c.do(ctx, http.MethodGet, "/api/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Get fetches one user by id.
func (c *Client) Get(ctx context.Context, id string) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, "/api/users/"+id, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Create submits a new user and returns the created record with its
// server-assigned id.
func (c *Client) Create(ctx context.Context, fields UserFields) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodPost, "/api/users", fields, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Update submits a partial update and returns the merged record.
func (c *Client) Update(ctx context.Context, id string, patch UserPatch) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodPut, "/api/users/"+id, patch, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Delete removes a user by id.
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/users/"+id, nil, nil)
}

// do issues one request and decodes the response into out (if non-nil).
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("client: encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("client: build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("client: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return c.decodeError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("client: decode response: %w", err)
		}
	}
	return nil
}

// decodeError turns a non-2xx response into ErrNotFound or an APIError.
func (c *Client) decodeError(resp *http.Response) error {
	var body struct {
		Message string `json:"message"`
	}
	// A missing or malformed error body still yields a usable APIError.
	data, _ := io.ReadAll(resp.Body)
	_ = json.Unmarshal(data, &body)

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s", ErrNotFound, body.Message)
	}
	return &APIError{
		StatusCode: resp.StatusCode,
		Message:    body.Message,
	}
}
