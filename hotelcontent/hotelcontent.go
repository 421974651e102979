//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

// Package hotelcontent provides Dida content API tools for AI agents:
// country and destination lists, hotel lists and details, and the static
// dictionaries (meal, bed, window, smoking and view types).
package hotelcontent

import (
	"context"
	"net/http"
	"time"

	"trpc.group/trpc-go/trpc-agent-go/log"
	"trpc.group/trpc-go/trpc-agent-go/tool"
	"trpc.group/trpc-go/trpc-agent-go/tool/function"

	"trpc.group/trpc-go/trpc-agent-go/tool/travel/internal/dida"
	"trpc.group/trpc-go/trpc-agent-go/tool/travel/response"
)

const (
	defaultName = "hotel_content"

	// display cap for destination lists, not a provider-side limit
	destinationDisplayLimit = 10

	// provider-side cap on hotel detail lookups
	maxHotelDetailIDs = 50
)

// config holds the configuration for the content tool set.
type config struct {
	didaConfig *dida.Config
	client     *dida.Client
	httpClient *http.Client
	timeout    time.Duration
}

// Option is a functional option for configuring the content tool set.
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

// ContentToolSet implements the ToolSet interface for Dida content lookups.
type ContentToolSet struct {
	tools []tool.Tool
}

// Tools implements the ToolSet interface.
func (s *ContentToolSet) Tools(_ context.Context) []tool.Tool {
	return s.tools
}

// Name implements the ToolSet interface.
func (s *ContentToolSet) Name() string {
	return defaultName
}

// Close implements the ToolSet interface.
func (s *ContentToolSet) Close() error {
	// No resources to clean up for content tools.
	return nil
}

// NewToolSet creates a new content tool set with the given options.
func NewToolSet(opts ...Option) (*ContentToolSet, error) {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}

	client, err := buildClient(cfg)
	if err != nil {
		return nil, err
	}

	tools := []tool.Tool{
		createCountriesTool(client),
		createDestinationsTool(client),
		createHotelListTool(client),
		createHotelDetailsTool(client),
	}
	tools = append(tools, createDictionaryTools(client)...)

	return &ContentToolSet{tools: tools}, nil
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

const connectivityFailureText = "API request failed, please check network connectivity and parameters"

// ===== Country list =====

type countriesRequest struct {
	Language string `json:"language" jsonschema:"description=Response language; supported values include zh-CN, ja-JP, ko-KR, pt-BR, es-ES, id-ID"`
}

type codeNameEntry struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type listPayload struct {
	Data []codeNameEntry `json:"data"`
}

func createCountriesTool(client *dida.Client) tool.CallableTool {
	handler := func(ctx context.Context, req countriesRequest) response.Response {
		if req.Language == "" {
			return response.Text("error: language must not be empty")
		}
		log.Debugf("hotelcontent: listing countries, language %q", req.Language)

		raw, err := client.Get(ctx, dida.CatalogContent, "/api/v1/region/countries", urlValues("language", req.Language))
		if err != nil {
			log.Warnf("hotelcontent: country list request failed: %v", err)
			return response.Text(connectivityFailureText)
		}

		var payload listPayload
		if jsonErr := decode(raw, &payload); jsonErr != nil || payload.Data == nil {
			return response.Textf("unexpected response format: %s", raw)
		}

		text := "Countries for language '" + req.Language + "':\n\n"
		for i, country := range payload.Data {
			text += formatIndexedEntry(i+1, country)
		}
		return response.Text(text)
	}

	return function.NewFunctionTool(
		response.Guard(handler),
		function.WithName("get_countries"),
		function.WithDescription("Retrieve the full list of countries supported by the hotel platform. "+
			"Returns country codes and localized names."),
	)
}

// ===== Destination list =====

type destinationsRequest struct {
	CountryCode string `json:"country_code" jsonschema:"description=Country code, e.g. CN, JP, US"`
	Language    string `json:"language,omitempty" jsonschema:"description=Response language, default en-US"`
}

func createDestinationsTool(client *dida.Client) tool.CallableTool {
	handler := func(ctx context.Context, req destinationsRequest) response.Response {
		if req.CountryCode == "" {
			return response.Text("error: country_code must not be empty")
		}
		language := defaultString(req.Language, "en-US")
		log.Debugf("hotelcontent: listing destinations for %q, language %q", req.CountryCode, language)

		raw, err := client.Get(ctx, dida.CatalogContent, "/api/v1/region/destinations",
			urlValues("countryCode", req.CountryCode, "language", language))
		if err != nil {
			log.Warnf("hotelcontent: destination list request failed: %v", err)
			return response.Text(connectivityFailureText)
		}

		var payload listPayload
		if jsonErr := decode(raw, &payload); jsonErr != nil || payload.Data == nil {
			return response.Textf("unexpected response format: %s", raw)
		}

		// Cap the list for display; the provider may return far more.
		destinations := payload.Data
		if len(destinations) > destinationDisplayLimit {
			destinations = destinations[:destinationDisplayLimit]
		}

		text := "Destinations for country '" + req.CountryCode + "' (showing first " +
			itoa(len(destinations)) + "):\n\n"
		for i, destination := range destinations {
			text += formatIndexedEntry(i+1, destination)
		}
		return response.Text(text)
	}

	return function.NewFunctionTool(
		response.Guard(handler),
		function.WithName("get_destinations"),
		function.WithDescription("Retrieve the destination (city/region) list for a country. "+
			"Returns at most 10 destinations with their codes."),
	)
}

// ===== Hotel list =====

type hotelListRequest struct {
	CountryCode    string `json:"country_code" jsonschema:"description=Country code, e.g. CN, JP, US"`
	LastUpdateTime string `json:"last_update_time,omitempty" jsonschema:"description=Unix timestamp in seconds (no earlier than 1732982400); when set only hotels changed after this time are returned"`
	Language       string `json:"language,omitempty" jsonschema:"description=Response language, default en-US"`
}

func createHotelListTool(client *dida.Client) tool.CallableTool {
	handler := func(ctx context.Context, req hotelListRequest) response.Response {
		if req.CountryCode == "" {
			return response.Text("error: country_code must not be empty")
		}
		language := defaultString(req.Language, "en-US")
		log.Debugf("hotelcontent: listing hotels for %q", req.CountryCode)

		params := urlValues("countryCode", req.CountryCode, "language", language)
		if req.LastUpdateTime != "" {
			params.Set("lastUpdateTime", req.LastUpdateTime)
		}

		raw, err := client.Get(ctx, dida.CatalogContent, "/api/v1/hotel/list", params)
		if err != nil {
			log.Warnf("hotelcontent: hotel list request failed: %v", err)
			return response.Text(connectivityFailureText)
		}
		return response.Textf("Authorized hotel list for country '%s', language '%s': %s",
			req.CountryCode, language, raw)
	}

	return function.NewFunctionTool(
		response.Guard(handler),
		function.WithName("get_hotel_list"),
		function.WithDescription("Retrieve the hotel IDs you are authorized to access in a country. "+
			"Optionally restricted to hotels changed after a Unix timestamp."),
	)
}

// ===== Hotel details =====

type hotelDetailsRequest struct {
	HotelIDs []int  `json:"hotel_ids" jsonschema:"description=Hotel ID list, at most 50 IDs"`
	Language string `json:"language,omitempty" jsonschema:"description=Response language, default en-US"`
}

func createHotelDetailsTool(client *dida.Client) tool.CallableTool {
	handler := func(ctx context.Context, req hotelDetailsRequest) response.Response {
		if len(req.HotelIDs) == 0 {
			return response.Text("error: hotel_ids must not be empty")
		}
		if len(req.HotelIDs) > maxHotelDetailIDs {
			return response.Textf("error: hotel_ids supports at most %d IDs, got %d",
				maxHotelDetailIDs, len(req.HotelIDs))
		}
		for _, id := range req.HotelIDs {
			if id <= 0 {
				return response.Text("error: hotel IDs must be positive integers")
			}
		}
		language := defaultString(req.Language, "en-US")
		log.Debugf("hotelcontent: fetching details for %d hotels", len(req.HotelIDs))

		body := map[string]any{
			"language": language,
			"hotelIds": req.HotelIDs,
		}
		raw, err := client.Post(ctx, dida.CatalogContent, "/api/v1/hotel/details", nil, body)
		if err != nil {
			log.Warnf("hotelcontent: hotel details request failed: %v", err)
			return response.Text(connectivityFailureText)
		}
		return response.Textf("Hotel details for IDs %v, language '%s': %s", req.HotelIDs, language, raw)
	}

	return function.NewFunctionTool(
		response.Guard(handler),
		function.WithName("get_hotel_details"),
		function.WithDescription("Retrieve detailed hotel information (basics, policies, facilities) "+
			"for up to 50 hotel IDs."),
	)
}

// ===== Dictionary lookups =====

type dictionaryRequest struct {
	Language string `json:"language,omitempty" jsonschema:"description=Response language, e.g. zh-CN, en-US, ja-JP; default zh-CN"`
}

type dictionarySpec struct {
	name        string
	path        string
	description string
}

// The five static dictionaries share one handler shape; only the endpoint
// and wording differ.
var dictionarySpecs = []dictionarySpec{
	{"get_meal_types", "/api/v1/dictionary/meal-types", "meal (board) types"},
	{"get_bed_types", "/api/v1/dictionary/bed-types", "bed types"},
	{"get_window_types", "/api/v1/dictionary/window-types", "window types"},
	{"get_smoking_types", "/api/v1/dictionary/smoking-types", "smoking policy types"},
	{"get_view_types", "/api/v1/dictionary/view-types", "room view types"},
}

func createDictionaryTools(client *dida.Client) []tool.Tool {
	tools := make([]tool.Tool, 0, len(dictionarySpecs))
	for _, spec := range dictionarySpecs {
		tools = append(tools, createDictionaryTool(client, spec))
	}
	return tools
}

func createDictionaryTool(client *dida.Client, spec dictionarySpec) tool.CallableTool {
	handler := func(ctx context.Context, req dictionaryRequest) response.Response {
		language := defaultString(req.Language, "zh-CN")
		log.Debugf("hotelcontent: dictionary lookup %s, language %q", spec.path, language)

		raw, err := client.Get(ctx, dida.CatalogContent, spec.path, urlValues("language", language))
		if err != nil {
			log.Warnf("hotelcontent: dictionary request %s failed: %v", spec.path, err)
			return response.Text(connectivityFailureText)
		}
		return response.Textf("Dictionary of %s, language '%s': %s", spec.description, language, raw)
	}

	return function.NewFunctionTool(
		response.Guard(handler),
		function.WithName(spec.name),
		function.WithDescription("Retrieve the names and codes of all "+spec.description+
			" that may appear in API responses."),
	)
}
