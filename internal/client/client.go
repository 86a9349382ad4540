// Copyright (c) 2026 Hinário. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package client is the thin HTTP client for the public hymn API.

It covers the two operations the picker needs: refreshing the catalog for
the suggestion index, and creating a hymn for the inline creation
affordance. [Client] satisfies [picker.Creator] directly.

Errors from the server's {"error", "code"} payload surface as [*APIError],
so callers can branch on the HTTP status and machine code without string
matching.
*/
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/taibuivan/hinario/internal/core/hymn"
	"github.com/taibuivan/hinario/internal/core/lookup"
)

// # Client Definition

const (
	publicHymnsPath = "/api/public-hymns"

	defaultRequestTimeout = 10 * time.Second
)

// Client talks to the public hymn API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for the API at baseURL (scheme and host, no
// trailing slash required). A nil httpClient gets a default with a 10s
// timeout.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultRequestTimeout}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// # Error Surface

// APIError is a non-2xx response decoded from the server's error payload.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("client: api error %d (%s): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("client: api error %d: %s", e.StatusCode, e.Message)
}

// # Operations

// List fetches the full public hymn catalog, ordered by number.
func (c *Client) List(ctx context.Context) ([]hymn.PublicHymn, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+publicHymnsPath, nil)
	if err != nil {
		return nil, fmt.Errorf("client: build list request: %w", err)
	}

	var hymns []hymn.PublicHymn
	if err := c.do(request, http.StatusOK, &hymns); err != nil {
		return nil, err
	}
	return hymns, nil
}

// CreateHymn submits a new hymn. The server normalizes the name and
// assigns the number; the returned record is authoritative.
func (c *Client) CreateHymn(ctx context.Context, name string, submittedBy *string) (*hymn.PublicHymn, error) {
	payload, err := json.Marshal(hymn.CreatePublicHymnInput{
		Name:        name,
		SubmittedBy: submittedBy,
	})
	if err != nil {
		return nil, fmt.Errorf("client: encode create payload: %w", err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+publicHymnsPath, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("client: build create request: %w", err)
	}
	request.Header.Set("Content-Type", "application/json")

	var created hymn.PublicHymn
	if err := c.do(request, http.StatusCreated, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Create satisfies the picker's creation port: it submits the name without
// attribution and reduces the response to a suggestion entry.
func (c *Client) Create(ctx context.Context, name string) (lookup.Entry, error) {
	created, err := c.CreateHymn(ctx, name, nil)
	if err != nil {
		return lookup.Entry{}, err
	}
	return lookup.Entry{Number: created.Number, Name: created.Name}, nil
}

// Entries reduces a catalog listing to suggestion entries for a
// [lookup.Index].
func Entries(hymns []hymn.PublicHymn) []lookup.Entry {
	entries := make([]lookup.Entry, 0, len(hymns))
	for _, h := range hymns {
		entries = append(entries, lookup.Entry{Number: h.Number, Name: h.Name})
	}
	return entries
}

// # Transport Internals

// do executes the request, enforcing the expected success status and
// decoding either the success payload into out or the error payload into
// an [*APIError].
func (c *Client) do(request *http.Request, wantStatus int, out any) error {
	request.Header.Set("Accept", "application/json")

	response, err := c.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("client: %s %s: %w", request.Method, request.URL.Path, err)
	}
	defer response.Body.Close()

	if response.StatusCode != wantStatus {
		return decodeAPIError(response)
	}

	if err := json.NewDecoder(response.Body).Decode(out); err != nil {
		return fmt.Errorf("client: decode %s %s response: %w", request.Method, request.URL.Path, err)
	}
	return nil
}

// decodeAPIError reads the flat {"error", "code"} error payload. A body
// that is not valid JSON still yields a usable APIError carrying the
// status.
func decodeAPIError(response *http.Response) error {
	apiError := &APIError{StatusCode: response.StatusCode}

	body, err := io.ReadAll(io.LimitReader(response.Body, 1<<16))
	if err != nil {
		apiError.Message = http.StatusText(response.StatusCode)
		return apiError
	}

	var payload struct {
		Error string `json:"error"`
		Code  string `json:"code"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || payload.Error == "" {
		apiError.Message = http.StatusText(response.StatusCode)
		return apiError
	}

	apiError.Message = payload.Error
	apiError.Code = payload.Code
	return apiError
}
