//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

// Package dida provides an HTTP client for the Dida travel content and
// booking APIs. Every call is a single synchronous request/response round
// trip: no retries, no caching, no state kept between calls.
package dida

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Catalog selects which of the two provider base URLs a call targets.
type Catalog string

const (
	// CatalogContent targets the static content API (regions, hotels, dictionaries).
	CatalogContent Catalog = "content"
	// CatalogBooking targets the booking API (rates, orders, cancellation).
	CatalogBooking Catalog = "booking"
)

const defaultTimeout = 30 * time.Second

// Client is a Dida API client. It is safe for concurrent use; all fields are
// set at construction time and never mutated.
type Client struct {
	cfg           Config
	authorization string
	httpClient    *http.Client
}

// Option is a functional option for configuring the client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a Dida client with a static Basic-auth header computed
// from the configured credentials.
func NewClient(cfg Config, opts ...Option) *Client {
	credentials := cfg.ClientID + ":" + cfg.LicenseKey
	c := &Client{
		cfg:           cfg,
		authorization: "Basic " + base64.StdEncoding.EncodeToString([]byte(credentials)),
		httpClient:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Header returns the credential block the booking API requires inside every
// request body. The provider demands it in addition to the Basic-auth header.
func (c *Client) Header() map[string]string {
	return map[string]string{
		"ClientID":   c.cfg.ClientID,
		"LicenseKey": c.cfg.LicenseKey,
	}
}

func (c *Client) baseURL(catalog Catalog) string {
	if catalog == CatalogBooking {
		return c.cfg.BookingURL
	}
	return c.cfg.ContentURL
}

// Get issues a GET request against the selected catalog and returns the raw
// JSON body. A network error, non-2xx status or undecodable body comes back
// as an error; a parsed provider error payload does not.
func (c *Client) Get(ctx context.Context, catalog Catalog, path string, params url.Values) (json.RawMessage, error) {
	reqURL := c.baseURL(catalog) + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	return c.do(req)
}

// Post issues a POST request with a JSON body against the selected catalog.
func (c *Client) Post(ctx context.Context, catalog Catalog, path string, params url.Values, body any) (json.RawMessage, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode request body: %w", err)
	}
	reqURL := c.baseURL(catalog) + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

func (c *Client) do(req *http.Request) (json.RawMessage, error) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", c.authorization)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, req.URL.Path)
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("undecodable response body from %s", req.URL.Path)
	}
	return body, nil
}

// ProviderError is the structured error object the booking API returns.
type ProviderError struct {
	Code      string `json:"Code"`
	Message   string `json:"Message"`
	BookingID string `json:"BookingID,omitempty"`
}

// Envelope is the booking API response wrapper. Exactly one of Success or
// Error is populated on a well-formed response; both nil means the provider
// returned an unexpected shape.
type Envelope struct {
	Success json.RawMessage `json:"Success,omitempty"`
	Error   *ProviderError  `json:"Error,omitempty"`
}

// PostBooking issues a booking-catalog POST with the provider's standard
// "$format=json" query parameter and decodes the Success/Error envelope.
func (c *Client) PostBooking(ctx context.Context, path string, body any) (*Envelope, error) {
	params := url.Values{}
	params.Set("$format", "json")
	raw, err := c.Post(ctx, CatalogBooking, path, params, body)
	if err != nil {
		return nil, err
	}
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("decode response envelope: %w", err)
	}
	return &env, nil
}
