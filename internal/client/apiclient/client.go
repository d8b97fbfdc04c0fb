// Package apiclient talks to the passvault server: the JSON API over HTTP
// and the account service over gRPC.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/passvault/internal/common"
)

// APIError is a non-2xx answer. Message is the server's message field.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned %d", e.Status)
	}
	return fmt.Sprintf("%s (%d)", e.Message, e.Status)
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae.Status
	}
	return 0
}

type Client struct {
	baseURL string
	hc      *http.Client
	token   string
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{Timeout: timeout},
	}
}

// WithToken returns a copy of c that sends token as bearer credential.
func (c *Client) WithToken(token string) *Client {
	cp := *c
	cp.token = token
	return &cp
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerScheme+" "+c.token)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var m messageResponse
		_ = json.Unmarshal(data, &m)
		return &APIError{Status: resp.StatusCode, Message: m.Message}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) Health(ctx context.Context) (*Health, error) {
	var h Health
	if err := c.do(ctx, http.MethodGet, "/health", nil, nil, &h); err != nil {
		return nil, err
	}
	return &h, nil
}

func (c *Client) Register(ctx context.Context, userName, password string) (*AuthResponse, error) {
	return c.auth(ctx, "/api/auth/register", userName, password)
}

func (c *Client) Login(ctx context.Context, userName, password string) (*AuthResponse, error) {
	return c.auth(ctx, "/api/auth/login", userName, password)
}

func (c *Client) auth(ctx context.Context, path, userName, password string) (*AuthResponse, error) {
	in := map[string]string{"username": userName, "password": password}
	var out AuthResponse
	if err := c.do(ctx, http.MethodPost, path, nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Me(ctx context.Context) (*Profile, error) {
	var out meResponse
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// ListEntries returns the caller's entries with masked passwords.
func (c *Client) ListEntries(ctx context.Context) ([]Entry, error) {
	var out entryListResponse
	if err := c.do(ctx, http.MethodGet, "/api/passwords", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.PasswordItems, nil
}

// GetEntry returns one entry with its password revealed.
func (c *Client) GetEntry(ctx context.Context, id string) (*Entry, error) {
	var out entryResponse
	if err := c.do(ctx, http.MethodGet, "/api/passwords/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out.PasswordItem, nil
}

func (c *Client) CreateEntry(ctx context.Context, in EntryInput) (*Entry, error) {
	var out entryResponse
	if err := c.do(ctx, http.MethodPost, "/api/passwords", nil, in, &out); err != nil {
		return nil, err
	}
	return &out.PasswordItem, nil
}

func (c *Client) UpdateEntry(ctx context.Context, id string, in EntryInput) (*Entry, error) {
	var out entryResponse
	if err := c.do(ctx, http.MethodPut, "/api/passwords/"+url.PathEscape(id), nil, in, &out); err != nil {
		return nil, err
	}
	return &out.PasswordItem, nil
}

func (c *Client) DeleteEntry(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/passwords/"+url.PathEscape(id), nil, nil, nil)
}

func (c *Client) GeneratePassword(ctx context.Context, o GenerateOptions) (string, error) {
	q := url.Values{}
	if o.Length > 0 {
		q.Set("length", strconv.Itoa(o.Length))
	}
	q.Set("includeUppercase", strconv.FormatBool(o.Uppercase))
	q.Set("includeLowercase", strconv.FormatBool(o.Lowercase))
	q.Set("includeNumbers", strconv.FormatBool(o.Numbers))
	q.Set("includeSymbols", strconv.FormatBool(o.Symbols))

	var out generateResponse
	if err := c.do(ctx, http.MethodGet, "/api/passwords/generate/password", q, nil, &out); err != nil {
		return "", err
	}
	return out.Password, nil
}
