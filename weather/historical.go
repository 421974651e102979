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

// ===== Historical weather =====

type historicalRequest struct {
	LocationID string `json:"location_id" jsonschema:"description=Location id from search_qweather_city_code"`
	Date       string `json:"date" jsonschema:"description=Date in yyyyMMdd format, within the last 10 days (excluding today)"`
	Lang       string `json:"lang,omitempty" jsonschema:"description=Response language, default zh"`
}

type historicalDaily struct {
	Date     string `json:"date"`
	Sunrise  string `json:"sunrise"`
	Sunset   string `json:"sunset"`
	TempMax  string `json:"tempMax"`
	TempMin  string `json:"tempMin"`
	Humidity string `json:"humidity"`
	Precip   string `json:"precip"`
	Pressure string `json:"pressure"`
}

type historicalHourly struct {
	Time      string `json:"time"`
	Temp      string `json:"temp"`
	Icon      string `json:"icon"`
	Text      string `json:"text"`
	WindDir   string `json:"windDir"`
	WindScale string `json:"windScale"`
	Humidity  string `json:"humidity"`
	Precip    string `json:"precip"`
	Pressure  string `json:"pressure"`
}

type historicalWeatherPayload struct {
	WeatherDaily  *historicalDaily   `json:"weatherDaily"`
	WeatherHourly []historicalHourly `json:"weatherHourly"`
}

func createHistoricalWeatherTool(client *qweather.Client) tool.CallableTool {
	handler := func(ctx context.Context, req historicalRequest) response.Response {
		if req.Date == "" {
			return response.Text("error: date must be provided in yyyyMMdd format")
		}
		log.Debugf("weather: historical weather on %s for %q", req.Date, req.LocationID)

		params := locationParams(req.LocationID, defaultLang(req.Lang))
		params.Set("date", req.Date)
		var payload historicalWeatherPayload
		err := client.Get(ctx, "/v7/historical/weather", params, &payload)
		if err != nil || payload.WeatherDaily == nil {
			return response.Textf("failed to get historical weather for location '%s' on %s; "+
				"only the last 10 days are available", req.LocationID, req.Date)
		}
		return response.Textf("Historical weather for location '%s' on %s: %s",
			req.LocationID, req.Date, marshalInfo(payload))
	}

	return function.NewFunctionTool(
		response.Guard(handler),
		function.WithName("get_qweather_historical"),
		function.WithDescription("Get historical weather for a location id on a date within the last "+
			"10 days: daily summary plus hourly records."),
	)
}

// ===== Historical air quality =====

type historicalAirHourly struct {
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

type historicalAirPayload struct {
	AirHourly []historicalAirHourly `json:"airHourly"`
}

func createHistoricalAirTool(client *qweather.Client) tool.CallableTool {
	handler := func(ctx context.Context, req historicalRequest) response.Response {
		if req.Date == "" {
			return response.Text("error: date must be provided in yyyyMMdd format")
		}
		log.Debugf("weather: historical air quality on %s for %q", req.Date, req.LocationID)

		params := locationParams(req.LocationID, defaultLang(req.Lang))
		params.Set("date", req.Date)
		var payload historicalAirPayload
		err := client.Get(ctx, "/v7/historical/air", params, &payload)
		if err != nil || len(payload.AirHourly) == 0 {
			return response.Textf("failed to get historical air quality for location '%s' on %s; "+
				"only the last 10 days are available", req.LocationID, req.Date)
		}
		return response.Textf("Historical air quality for location '%s' on %s: %s",
			req.LocationID, req.Date, marshalInfo(payload.AirHourly))
	}

	return function.NewFunctionTool(
		response.Guard(handler),
		function.WithName("get_qweather_historical_air"),
		function.WithDescription("Get hourly historical air quality for a location id on a date within "+
			"the last 10 days."),
	)
}
