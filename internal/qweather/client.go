//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

// Package qweather provides an HTTP client for the QWeather API. Each call
// is authenticated with a freshly signed EdDSA JWT; the token is valid for
// 15 minutes but deliberately not reused, which keeps the client free of
// shared mutable state.
package qweather

import (
	"context"
	"crypto/ed25519"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/kelseyhightower/envconfig"
)

const defaultTimeout = 10 * time.Second

// clock skew tolerance and token lifetime, in seconds
const (
	issuedAtSkew  = 30
	tokenLifetime = 900
)

// Config holds the QWeather credentials and API host.
type Config struct {
	// PrivateKey is a PEM-encoded Ed25519 private key.
	PrivateKey string `envconfig:"QWEATHER_PRIVATE_KEY" required:"true"`
	KeyID      string `envconfig:"QWEATHER_KEY_ID" required:"true"`
	SubID      string `envconfig:"QWEATHER_SUB_ID" required:"true"`
	APIURL     string `envconfig:"QWEATHER_API_URL" default:"https://m44gkj23jm.re.qweatherapi.com"`
}

// ConfigFromEnv loads the configuration from process environment variables.
func ConfigFromEnv() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Client is a QWeather API client. Safe for concurrent use.
type Client struct {
	cfg        Config
	privateKey ed25519.PrivateKey
	httpClient *http.Client
}

// Option is a functional option for configuring the client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient parses the configured private key and creates a client.
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	key, err := jwt.ParseEdPrivateKeyFromPEM([]byte(cfg.PrivateKey))
	if err != nil {
		return nil, fmt.Errorf("parse qweather private key: %w", err)
	}
	edKey, ok := key.(ed25519.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("qweather private key is not an Ed25519 key")
	}
	c := &Client{
		cfg:        cfg,
		privateKey: edKey,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// signToken builds the per-call bearer token: iat backdated by the skew
// tolerance, exp 900 seconds out, sub set to the configured subject, and the
// key id carried in the "kid" header.
func (c *Client) signToken(now time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(now.Add(-issuedAtSkew * time.Second)),
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenLifetime * time.Second)),
		Subject:   c.cfg.SubID,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims)
	token.Header["kid"] = c.cfg.KeyID
	return token.SignedString(c.privateKey)
}

// statusProbe is the provider-specific success indicator carried in every
// response body.
type statusProbe struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Get issues a GET request and decodes the body into out. Success requires
// both HTTP 200 and the body's code field equal to "200"; any other
// combination is an error.
func (c *Client) Get(ctx context.Context, endpoint string, params url.Values, out any) error {
	token, err := c.signToken(time.Now())
	if err != nil {
		return fmt.Errorf("sign token: %w", err)
	}

	reqURL := c.cfg.APIURL + endpoint
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, endpoint)
	}

	var probe statusProbe
	if err := json.Unmarshal(body, &probe); err != nil {
		return fmt.Errorf("decode response from %s: %w", endpoint, err)
	}
	if probe.Code != "200" {
		if probe.Message != "" {
			return fmt.Errorf("provider returned code %s: %s", probe.Code, probe.Message)
		}
		return fmt.Errorf("provider returned code %s", probe.Code)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response from %s: %w", endpoint, err)
	}
	return nil
}
