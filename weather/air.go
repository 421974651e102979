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

	"trpc.group/trpc-go/trpc-agent-go/log"
	"trpc.group/trpc-go/trpc-agent-go/tool"
	"trpc.group/trpc-go/trpc-agent-go/tool/function"

	"trpc.group/trpc-go/trpc-agent-go/tool/travel/internal/qweather"
	"trpc.group/trpc-go/trpc-agent-go/tool/travel/response"
)

// ===== Real-time air quality =====

type airQualityRequest struct {
	LocationID string `json:"location_id" jsonschema:"description=Location id from search_qweather_city_code"`
	Lang       string `json:"lang,omitempty" jsonschema:"description=Response language, default zh"`
}

type airConditions struct {
	PubTime  string `json:"pubTime"`
	Aqi      string `json:"aqi"`
	Level    string `json:"level"`
	Category string `json:"category"`
	Primary  string `json:"primary"`
	Pm10     string `json:"pm10"`
	Pm2p5    string `json:"pm2p5"`
	No2      string `json:"no2"`
	So2      string `json:"so2"`
	Co       string `json:"co"`
	O3       string `json:"o3"`
}

type airNowPayload struct {
	Now *airConditions `json:"now"`
}

func createAirQualityTool(client *qweather.Client) tool.CallableTool {
	handler := func(ctx context.Context, req airQualityRequest) response.Response {
		log.Debugf("weather: real-time air quality for %q", req.LocationID)

		var payload airNowPayload
		err := client.Get(ctx, "/v7/air/now", locationParams(req.LocationID, defaultLang(req.Lang)), &payload)
		if err != nil || payload.Now == nil {
			return response.Textf("failed to get real-time air quality for location '%s'", req.LocationID)
		}
		return response.Textf("Real-time air quality for location '%s': %s", req.LocationID, marshalInfo(payload.Now))
	}

	return function.NewFunctionTool(
		response.Guard(handler),
		function.WithName("get_qweather_air_quality"),
		function.WithDescription("Get real-time air quality for a location id: AQI, level, primary "+
			"pollutant, PM10, PM2.5, NO2, SO2, CO, O3."),
	)
}

// ===== Air quality forecast =====

type airForecastRequest struct {
	LocationID string `json:"location_id" jsonschema:"description=Location id from search_qweather_city_code"`
	Days       int    `json:"days,omitempty" jsonschema:"description=Forecast days, 1-5, default 5"`
	Lang       string `json:"lang,omitempty" jsonschema:"description=Response language, default zh"`
}

type airForecastEntry struct {
	FxDate   string `json:"fxDate"`
	Aqi      string `json:"aqi"`
	Level    string `json:"level"`
	Category string `json:"category"`
	Primary  string `json:"primary"`
}

type airForecastPayload struct {
	Daily []airForecastEntry `json:"daily"`
}

func createAirForecastTool(client *qweather.Client) tool.CallableTool {
	handler := func(ctx context.Context, req airForecastRequest) response.Response {
		days := req.Days
		if days <= 0 || days > 5 {
			days = 5
		}
		log.Debugf("weather: %d-day air quality forecast for %q", days, req.LocationID)

		var payload airForecastPayload
		err := client.Get(ctx, "/v7/air/5d", locationParams(req.LocationID, defaultLang(req.Lang)), &payload)
		if err != nil || len(payload.Daily) == 0 {
			return response.Textf("failed to get the %d-day air quality forecast for location '%s'", days, req.LocationID)
		}
		entries := payload.Daily
		if len(entries) > days {
			entries = entries[:days]
		}
		return response.Textf("%d-day air quality forecast for location '%s': %s", days, req.LocationID, marshalInfo(entries))
	}

	return function.NewFunctionTool(
		response.Guard(handler),
		function.WithName("get_qweather_air_forecast"),
		function.WithDescription("Get the air quality forecast for a location id; supports 1-5 days "+
			"(default 5)."),
	)
}
