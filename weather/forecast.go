//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

package weather

import (
	"context"
	"fmt"

	"trpc.group/trpc-go/trpc-agent-go/log"
	"trpc.group/trpc-go/trpc-agent-go/tool"
	"trpc.group/trpc-go/trpc-agent-go/tool/function"

	"trpc.group/trpc-go/trpc-agent-go/tool/travel/internal/qweather"
	"trpc.group/trpc-go/trpc-agent-go/tool/travel/response"
)

// ===== Real-time conditions =====

type nowRequest struct {
	LocationID string `json:"location_id" jsonschema:"description=Location id from search_qweather_city_code"`
	Lang       string `json:"lang,omitempty" jsonschema:"description=Response language, default zh"`
}

type nowConditions struct {
	ObsTime   string `json:"obsTime"`
	Temp      string `json:"temp"`
	FeelsLike string `json:"feelsLike"`
	Icon      string `json:"icon"`
	Text      string `json:"text"`
	WindDir   string `json:"windDir"`
	WindScale string `json:"windScale"`
	WindSpeed string `json:"windSpeed"`
	Humidity  string `json:"humidity"`
	Precip    string `json:"precip"`
	Pressure  string `json:"pressure"`
	Vis       string `json:"vis"`
	Cloud     string `json:"cloud"`
	Dew       string `json:"dew"`
}

type nowPayload struct {
	Now *nowConditions `json:"now"`
}

func createNowTool(client *qweather.Client) tool.CallableTool {
	handler := func(ctx context.Context, req nowRequest) response.Response {
		log.Debugf("weather: real-time conditions for %q", req.LocationID)

		var payload nowPayload
		err := client.Get(ctx, "/v7/weather/now", locationParams(req.LocationID, req.Lang), &payload)
		if err != nil || payload.Now == nil {
			return response.Textf("failed to get real-time weather for location '%s'", req.LocationID)
		}
		return response.Textf("Real-time weather for location '%s': %s", req.LocationID, marshalInfo(payload.Now))
	}

	return function.NewFunctionTool(
		response.Guard(handler),
		function.WithName("get_qweather_forecast"),
		function.WithDescription("Get real-time weather conditions for a location id: temperature, "+
			"feels-like, wind, humidity, precipitation, pressure, visibility."),
	)
}

// ===== Hourly forecast =====

type hourlyRequest struct {
	LocationID string `json:"location_id" jsonschema:"description=Location id from search_qweather_city_code"`
	Hours      int    `json:"hours,omitempty" jsonschema:"description=Forecast hours, supports 24/72/168, default 24"`
	Lang       string `json:"lang,omitempty" jsonschema:"description=Response language, default zh"`
}

type hourlyEntry struct {
	FxTime    string `json:"fxTime"`
	Temp      string `json:"temp"`
	Icon      string `json:"icon"`
	Text      string `json:"text"`
	Wind360   string `json:"wind360"`
	WindDir   string `json:"windDir"`
	WindScale string `json:"windScale"`
	WindSpeed string `json:"windSpeed"`
	Humidity  string `json:"humidity"`
	Pop       string `json:"pop"`
	Precip    string `json:"precip"`
	Pressure  string `json:"pressure"`
	Cloud     string `json:"cloud"`
	Dew       string `json:"dew"`
}

type hourlyPayload struct {
	Hourly []hourlyEntry `json:"hourly"`
}

// hourlyEndpoint buckets the requested hours onto a provider endpoint;
// out-of-range values fall into the largest bucket.
func hourlyEndpoint(hours int) string {
	switch {
	case hours <= 24:
		return "/v7/weather/24h"
	case hours <= 72:
		return "/v7/weather/72h"
	default:
		return "/v7/weather/168h"
	}
}

func createHourlyForecastTool(client *qweather.Client) tool.CallableTool {
	handler := func(ctx context.Context, req hourlyRequest) response.Response {
		hours := req.Hours
		if hours <= 0 {
			hours = 24
		}
		log.Debugf("weather: %d-hour forecast for %q", hours, req.LocationID)

		var payload hourlyPayload
		err := client.Get(ctx, hourlyEndpoint(hours), locationParams(req.LocationID, defaultLang(req.Lang)), &payload)
		if err != nil || len(payload.Hourly) == 0 {
			return response.Textf("failed to get the %d-hour forecast for location '%s'", hours, req.LocationID)
		}
		entries := payload.Hourly
		if len(entries) > hours {
			entries = entries[:hours]
		}
		return response.Textf("%d-hour forecast for location '%s': %s", hours, req.LocationID, marshalInfo(entries))
	}

	return function.NewFunctionTool(
		response.Guard(handler),
		function.WithName("get_qweather_hourly_forecast"),
		function.WithDescription("Get the hourly weather forecast for a location id; supports 24, 72 or "+
			"168 hours (default 24)."),
	)
}

// ===== Daily forecast =====

type dailyRequest struct {
	LocationID string `json:"location_id" jsonschema:"description=Location id from search_qweather_city_code"`
	Days       int    `json:"days,omitempty" jsonschema:"description=Forecast days, 1-30, default 3"`
	Lang       string `json:"lang,omitempty" jsonschema:"description=Response language, default zh"`
}

type dailyEntry struct {
	FxDate         string `json:"fxDate"`
	Sunrise        string `json:"sunrise"`
	Sunset         string `json:"sunset"`
	Moonrise       string `json:"moonrise"`
	Moonset        string `json:"moonset"`
	MoonPhase      string `json:"moonPhase"`
	TempMax        string `json:"tempMax"`
	TempMin        string `json:"tempMin"`
	IconDay        string `json:"iconDay"`
	TextDay        string `json:"textDay"`
	IconNight      string `json:"iconNight"`
	TextNight      string `json:"textNight"`
	Wind360Day     string `json:"wind360Day"`
	WindDirDay     string `json:"windDirDay"`
	WindScaleDay   string `json:"windScaleDay"`
	WindSpeedDay   string `json:"windSpeedDay"`
	Wind360Night   string `json:"wind360Night"`
	WindDirNight   string `json:"windDirNight"`
	WindScaleNight string `json:"windScaleNight"`
	WindSpeedNight string `json:"windSpeedNight"`
	Humidity       string `json:"humidity"`
	Precip         string `json:"precip"`
	Pressure       string `json:"pressure"`
	Vis            string `json:"vis"`
	Cloud          string `json:"cloud"`
	UvIndex        string `json:"uvIndex"`
}

type dailyPayload struct {
	Daily []dailyEntry `json:"daily"`
}

// dailyEndpoint buckets the requested days onto a provider endpoint;
// out-of-range values fall into the largest bucket.
func dailyEndpoint(days int) string {
	switch {
	case days <= 3:
		return "/v7/weather/3d"
	case days <= 7:
		return "/v7/weather/7d"
	case days <= 10:
		return "/v7/weather/10d"
	case days <= 15:
		return "/v7/weather/15d"
	default:
		return "/v7/weather/30d"
	}
}

func createDailyForecastTool(client *qweather.Client) tool.CallableTool {
	handler := func(ctx context.Context, req dailyRequest) response.Response {
		days := req.Days
		if days <= 0 {
			days = 3
		}
		log.Debugf("weather: %d-day forecast for %q", days, req.LocationID)

		var payload dailyPayload
		err := client.Get(ctx, dailyEndpoint(days), locationParams(req.LocationID, defaultLang(req.Lang)), &payload)
		if err != nil || len(payload.Daily) == 0 {
			return response.Textf("failed to get the %d-day forecast for location '%s'", days, req.LocationID)
		}
		entries := payload.Daily
		if len(entries) > days {
			entries = entries[:days]
		}
		return response.Textf("%d-day forecast for location '%s': %s", days, req.LocationID, marshalInfo(entries))
	}

	return function.NewFunctionTool(
		response.Guard(handler),
		function.WithName("get_qweather_daily_forecast"),
		function.WithDescription("Get the multi-day weather forecast for a location id; supports 1-30 "+
			"days (default 3)."),
	)
}

// ===== Minutely precipitation =====

type minutelyRequest struct {
	LocationID string `json:"location_id" jsonschema:"description=Location id from search_qweather_city_code"`
	Lang       string `json:"lang,omitempty" jsonschema:"description=Response language, default zh"`
}

type minutelyEntry struct {
	FxTime string `json:"fxTime"`
	Precip string `json:"precip"`
	Type   string `json:"type"`
}

type minutelyPayload struct {
	Summary  string          `json:"summary"`
	Minutely []minutelyEntry `json:"minutely"`
}

func createMinutelyTool(client *qweather.Client) tool.CallableTool {
	handler := func(ctx context.Context, req minutelyRequest) response.Response {
		log.Debugf("weather: minutely precipitation for %q", req.LocationID)

		var payload minutelyPayload
		err := client.Get(ctx, "/v7/minutely/5m", locationParams(req.LocationID, defaultLang(req.Lang)), &payload)
		if err != nil {
			return response.Textf("failed to get minutely precipitation for location '%s'; "+
				"the area may not be covered (mainland China only)", req.LocationID)
		}
		return response.Textf("Minutely precipitation for location '%s': %s", req.LocationID, marshalInfo(payload))
	}

	return function.NewFunctionTool(
		response.Guard(handler),
		function.WithName("get_qweather_minutely"),
		function.WithDescription("Get minute-level precipitation nowcast for a location id "+
			"(mainland China only)."),
	)
}

// ===== Life indices =====

type indicesRequest struct {
	LocationID string `json:"location_id" jsonschema:"description=Location id from search_qweather_city_code"`
	IndexType  string `json:"index_type,omitempty" jsonschema:"description=Index type; 0 for all, or a comma-separated list like 1,2,3; default 0"`
	Days       int    `json:"days,omitempty" jsonschema:"description=Forecast days, default 1"`
}

type indicesEntry struct {
	Date     string `json:"date"`
	Type     string `json:"type"`
	Name     string `json:"name"`
	Level    string `json:"level"`
	Category string `json:"category"`
	Text     string `json:"text"`
	Summary  string `json:"summary,omitempty"`
}

type indicesPayload struct {
	Daily []indicesEntry `json:"daily"`
}

func createIndicesTool(client *qweather.Client) tool.CallableTool {
	handler := func(ctx context.Context, req indicesRequest) response.Response {
		indexType := req.IndexType
		if indexType == "" {
			indexType = "0"
		}
		days := req.Days
		if days <= 0 {
			days = 1
		}
		log.Debugf("weather: %d-day indices %q for %q", days, indexType, req.LocationID)

		params := locationParams(req.LocationID, "")
		params.Set("type", indexType)
		var payload indicesPayload
		err := client.Get(ctx, fmt.Sprintf("/v7/indices/%dd", days), params, &payload)
		if err != nil || len(payload.Daily) == 0 {
			return response.Textf("failed to get weather indices for location '%s'", req.LocationID)
		}
		return response.Textf("Weather indices for location '%s': %s", req.LocationID, marshalInfo(payload.Daily))
	}

	return function.NewFunctionTool(
		response.Guard(handler),
		function.WithName("get_qweather_indices"),
		function.WithDescription("Get life indices (sport, car wash, dressing, UV, ...) for a location "+
			"id; index_type 0 selects all indices."),
	)
}
