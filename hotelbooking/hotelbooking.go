//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

// Package hotelbooking provides Dida booking API tools for AI agents,
// covering the full order lifecycle: price search, price confirmation,
// booking confirmation, order search, pre-cancellation and cancellation
// confirmation. The provider holds all order state; every tool here is a
// stateless request/response translator.
package hotelbooking

import (
	"context"
	"net/http"
	"time"

	"trpc.group/trpc-go/trpc-agent-go/tool"

	"trpc.group/trpc-go/trpc-agent-go/tool/travel/internal/dida"
)

const defaultName = "hotel_booking"

// display cap for price search results, applied after the provider's ordering
const priceDisplayLimit = 10

const connectivityFailureText = "API request failed, please check network connectivity and parameters"

const unexpectedShapeText = "unexpected API response format, please check the request parameters"

// config holds the configuration for the booking tool set.
type config struct {
	didaConfig *dida.Config
	client     *dida.Client
	httpClient *http.Client
	timeout    time.Duration
}

// Option is a functional option for configuring the booking tool set.
type Option func(*config)

// WithConfig sets the Dida credentials and base URLs explicitly instead of
// reading them from the environment.
func WithConfig(cfg dida.Config) Option {
	return func(c *config) {
		c.didaConfig = &cfg
	}
}

// WithClient sets a prebuilt Dida client.
func WithClient(client *dida.Client) Option {
	return func(c *config) {
		c.client = client
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *config) {
		c.httpClient = httpClient
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *config) {
		c.timeout = timeout
	}
}

// BookingToolSet implements the ToolSet interface for the order lifecycle.
type BookingToolSet struct {
	tools []tool.Tool
}

// Tools implements the ToolSet interface.
func (s *BookingToolSet) Tools(_ context.Context) []tool.Tool {
	return s.tools
}

// Name implements the ToolSet interface.
func (s *BookingToolSet) Name() string {
	return defaultName
}

// Close implements the ToolSet interface.
func (s *BookingToolSet) Close() error {
	// No resources to clean up for booking tools.
	return nil
}

// NewToolSet creates a new booking tool set with the given options.
func NewToolSet(opts ...Option) (*BookingToolSet, error) {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}

	client, err := buildClient(cfg)
	if err != nil {
		return nil, err
	}

	return &BookingToolSet{
		tools: []tool.Tool{
			createLowestPriceTool(client),
			createPriceConfirmTool(client),
			createBookingConfirmTool(client),
			createBookingSearchTool(client),
			createPreCancelTool(client),
			createCancelConfirmTool(client),
		},
	}, nil
}

func buildClient(cfg *config) (*dida.Client, error) {
	if cfg.client != nil {
		return cfg.client, nil
	}
	didaCfg := cfg.didaConfig
	if didaCfg == nil {
		fromEnv, err := dida.ConfigFromEnv()
		if err != nil {
			return nil, err
		}
		didaCfg = &fromEnv
	}
	var clientOpts []dida.Option
	if cfg.httpClient != nil {
		clientOpts = append(clientOpts, dida.WithHTTPClient(cfg.httpClient))
	}
	if cfg.timeout > 0 {
		clientOpts = append(clientOpts, dida.WithTimeout(cfg.timeout))
	}
	return dida.NewClient(*didaCfg, clientOpts...), nil
}
