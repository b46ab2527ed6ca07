// Package api is a thin JSON client for the habitcheck server.
package api

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
)

// Error is a non-2xx answer from the server.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned %d", e.Status)
	}
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
}

// IsStatus reports whether err is an *Error with the given status.
func IsStatus(err error, status int) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == status
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New returns a client for baseURL. A nil hc gets a 10s timeout client.
func New(baseURL string, hc *http.Client) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), httpClient: hc}
}

func (c *Client) Login(ctx context.Context, username, token string) (*LoginResult, error) {
	var out LoginResult
	body := map[string]string{"username": username, "token": token}
	if err := c.do(ctx, http.MethodPost, "/api/login", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var out []User
	if err := c.do(ctx, http.MethodGet, "/api/users", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateUser(ctx context.Context, adminUsername, adminToken, newUsername string) (*Account, error) {
	var out Account
	body := map[string]string{
		"adminUsername": adminUsername,
		"adminToken":    adminToken,
		"newUsername":   newUsername,
	}
	if err := c.do(ctx, http.MethodPost, "/api/users", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListEntries(ctx context.Context) ([]Entry, error) {
	var out []Entry
	if err := c.do(ctx, http.MethodGet, "/api/entries", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) SubmitEntry(ctx context.Context, in EntryInput) (*Entry, error) {
	var out Entry
	if err := c.do(ctx, http.MethodPost, "/api/entries", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Health returns nil when the server and its store are reachable.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/api/health", nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to connect to server: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{Status: resp.StatusCode}
		var e struct {
			Error string `json:"error"`
		}
		if b, _ := io.ReadAll(resp.Body); json.Unmarshal(b, &e) == nil {
			apiErr.Message = e.Error
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
