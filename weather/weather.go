//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

// Package weather provides QWeather API tools for AI agents: city lookup,
// real-time conditions, hourly/daily forecasts, minutely precipitation,
// life indices, air quality, astronomy, warnings and historical data, plus
// an OpenWeatherMap fallback that serves mock data when no key is set.
package weather

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"trpc.group/trpc-go/trpc-agent-go/log"
	"trpc.group/trpc-go/trpc-agent-go/tool"
	"trpc.group/trpc-go/trpc-agent-go/tool/function"

	"trpc.group/trpc-go/trpc-agent-go/tool/travel/internal/qweather"
	"trpc.group/trpc-go/trpc-agent-go/tool/travel/response"
)

const defaultName = "weather"

// config holds the configuration for the weather tool set.
type config struct {
	qweatherConfig *qweather.Config
	client         *qweather.Client
	httpClient     *http.Client
	openWeather    openWeatherConfig
}

// Option is a functional option for configuring the weather tool set.
type Option func(*config)

// WithConfig sets the QWeather credentials explicitly instead of reading
// them from the environment.
func WithConfig(cfg qweather.Config) Option {
	return func(c *config) {
		c.qweatherConfig = &cfg
	}
}

// WithClient sets a prebuilt QWeather client.
func WithClient(client *qweather.Client) Option {
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

// WithOpenWeatherAPIKey sets the OpenWeatherMap key for the fallback
// weather tool; when neither this nor OPENWEATHERMAP_API_KEY is set the
// tool serves mock data.
func WithOpenWeatherAPIKey(apiKey string) Option {
	return func(c *config) {
		c.openWeather.apiKey = apiKey
	}
}

// WeatherToolSet implements the ToolSet interface for weather lookups.
type WeatherToolSet struct {
	tools []tool.Tool
}

// Tools implements the ToolSet interface.
func (s *WeatherToolSet) Tools(_ context.Context) []tool.Tool {
	return s.tools
}

// Name implements the ToolSet interface.
func (s *WeatherToolSet) Name() string {
	return defaultName
}

// Close implements the ToolSet interface.
func (s *WeatherToolSet) Close() error {
	// No resources to clean up for weather tools.
	return nil
}

// NewToolSet creates a new weather tool set with the given options.
func NewToolSet(opts ...Option) (*WeatherToolSet, error) {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}

	client, err := buildClient(cfg)
	if err != nil {
		return nil, err
	}
	openWeather := newOpenWeatherClient(cfg)

	return &WeatherToolSet{
		tools: []tool.Tool{
			createCityLookupTool(client),
			createNowTool(client),
			createHourlyForecastTool(client),
			createDailyForecastTool(client),
			createMinutelyTool(client),
			createIndicesTool(client),
			createAirQualityTool(client),
			createAirForecastTool(client),
			createSunMoonTool(client),
			createMoonPhaseTool(client),
			createWarningTool(client),
			createHistoricalWeatherTool(client),
			createHistoricalAirTool(client),
			createOpenWeatherTool(openWeather),
		},
	}, nil
}

func buildClient(cfg *config) (*qweather.Client, error) {
	if cfg.client != nil {
		return cfg.client, nil
	}
	qwCfg := cfg.qweatherConfig
	if qwCfg == nil {
		fromEnv, err := qweather.ConfigFromEnv()
		if err != nil {
			return nil, err
		}
		qwCfg = &fromEnv
	}
	var clientOpts []qweather.Option
	if cfg.httpClient != nil {
		clientOpts = append(clientOpts, qweather.WithHTTPClient(cfg.httpClient))
	}
	return qweather.NewClient(*qwCfg, clientOpts...)
}

// locationParams builds the query parameters shared by most endpoints.
func locationParams(locationID, lang string) url.Values {
	params := url.Values{}
	params.Set("location", locationID)
	if lang != "" {
		params.Set("lang", lang)
	}
	return params
}

func defaultLang(lang string) string {
	if lang == "" {
		return "zh"
	}
	return lang
}

// marshalInfo renders a payload struct into the embedded-JSON form the
// tool texts use. Marshaling these flat structs cannot fail in practice.
func marshalInfo(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(data)
}

// ===== City lookup =====

type cityLookupRequest struct {
	LocationName string `json:"location_name" jsonschema:"description=City name, e.g. Beijing, Shanghai, Seoul"`
	Lang         string `json:"lang,omitempty" jsonschema:"description=Response language, default zh"`
}

type cityLookupPayload struct {
	Location []struct {
		ID      string `json:"id"`
		Name    string `json:"name"`
		Country string `json:"country"`
		Adm1    string `json:"adm1"`
		Adm2    string `json:"adm2"`
		Lat     string `json:"lat"`
		Lon     string `json:"lon"`
	} `json:"location"`
}

func createCityLookupTool(client *qweather.Client) tool.CallableTool {
	handler := func(ctx context.Context, req cityLookupRequest) response.Response {
		if req.LocationName == "" {
			return response.Text("error: location_name must not be empty")
		}
		log.Debugf("weather: city lookup %q", req.LocationName)

		params := url.Values{}
		params.Set("location", req.LocationName)
		var payload cityLookupPayload
		if err := client.Get(ctx, "/geo/v2/city/lookup", params, &payload); err != nil || len(payload.Location) == 0 {
			return response.Textf("city not found: %s, please check the city name", req.LocationName)
		}
		return response.Textf("City found: %s, city info: %s", req.LocationName, marshalInfo(payload.Location[0]))
	}

	return function.NewFunctionTool(
		response.Guard(handler),
		function.WithName("search_qweather_city_code"),
		function.WithDescription("Look up the QWeather location id for a city name; required by every "+
			"other weather tool."),
	)
}
