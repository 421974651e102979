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
	"time"

	"trpc.group/trpc-go/trpc-agent-go/log"
	"trpc.group/trpc-go/trpc-agent-go/tool"
	"trpc.group/trpc-go/trpc-agent-go/tool/function"

	"trpc.group/trpc-go/trpc-agent-go/tool/travel/internal/qweather"
	"trpc.group/trpc-go/trpc-agent-go/tool/travel/response"
)

const astroDateLayout = "20060102"

// astroDate normalizes the optional date parameter; the provider wants
// yyyyMMdd and defaults to today.
func astroDate(date string) string {
	if date == "" {
		return time.Now().Format(astroDateLayout)
	}
	return date
}

// ===== Sunrise and sunset =====

type sunMoonRequest struct {
	LocationID string `json:"location_id" jsonschema:"description=Location id from search_qweather_city_code"`
	Date       string `json:"date,omitempty" jsonschema:"description=Date in yyyyMMdd format, default today"`
}

type sunPayload struct {
	Sunrise string `json:"sunrise"`
	Sunset  string `json:"sunset"`
}

func createSunMoonTool(client *qweather.Client) tool.CallableTool {
	handler := func(ctx context.Context, req sunMoonRequest) response.Response {
		date := astroDate(req.Date)
		log.Debugf("weather: sunrise/sunset on %s for %q", date, req.LocationID)

		params := locationParams(req.LocationID, "")
		params.Set("date", date)
		var payload sunPayload
		err := client.Get(ctx, "/v7/astronomy/sun", params, &payload)
		if err != nil || payload.Sunrise == "" {
			return response.Textf("failed to get sunrise/sunset for location '%s' on %s", req.LocationID, date)
		}
		return response.Textf("Sunrise/sunset for location '%s' on %s: %s", req.LocationID, date, marshalInfo(payload))
	}

	return function.NewFunctionTool(
		response.Guard(handler),
		function.WithName("get_qweather_sun"),
		function.WithDescription("Get sunrise and sunset times for a location id on a given date "+
			"(default today)."),
	)
}

// ===== Moonrise, moonset and phases =====

type moonRequest struct {
	LocationID string `json:"location_id" jsonschema:"description=Location id from search_qweather_city_code"`
	Date       string `json:"date,omitempty" jsonschema:"description=Date in yyyyMMdd format, default today"`
}

type moonPhaseEntry struct {
	FxTime string `json:"fxTime"`
	Value  string `json:"value"`
	Name   string `json:"name"`
	Illum  string `json:"illumination"`
}

type moonPayload struct {
	Moonrise  string           `json:"moonrise"`
	Moonset   string           `json:"moonset"`
	MoonPhase []moonPhaseEntry `json:"moonPhase"`
}

func createMoonPhaseTool(client *qweather.Client) tool.CallableTool {
	handler := func(ctx context.Context, req moonRequest) response.Response {
		date := astroDate(req.Date)
		log.Debugf("weather: moon phase on %s for %q", date, req.LocationID)

		params := locationParams(req.LocationID, "")
		params.Set("date", date)
		var payload moonPayload
		err := client.Get(ctx, "/v7/astronomy/moon", params, &payload)
		if err != nil || len(payload.MoonPhase) == 0 {
			return response.Textf("failed to get moon data for location '%s' on %s", req.LocationID, date)
		}
		return response.Textf("Moon data for location '%s' on %s: %s", req.LocationID, date, marshalInfo(payload))
	}

	return function.NewFunctionTool(
		response.Guard(handler),
		function.WithName("get_qweather_moon"),
		function.WithDescription("Get moonrise, moonset and moon phases for a location id on a given "+
			"date (default today)."),
	)
}

// ===== Weather warnings =====

type warningRequest struct {
	LocationID string `json:"location_id" jsonschema:"description=Location id from search_qweather_city_code"`
	Lang       string `json:"lang,omitempty" jsonschema:"description=Response language, default zh"`
}

type warningEntry struct {
	ID        string `json:"id"`
	Sender    string `json:"sender"`
	PubTime   string `json:"pubTime"`
	Title     string `json:"title"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Status    string `json:"status"`
	Severity  string `json:"severity"`
	TypeName  string `json:"typeName"`
	Text      string `json:"text"`
}

type warningPayload struct {
	Warning []warningEntry `json:"warning"`
}

func createWarningTool(client *qweather.Client) tool.CallableTool {
	handler := func(ctx context.Context, req warningRequest) response.Response {
		log.Debugf("weather: active warnings for %q", req.LocationID)

		var payload warningPayload
		err := client.Get(ctx, "/v7/warning/now", locationParams(req.LocationID, defaultLang(req.Lang)), &payload)
		if err != nil {
			return response.Textf("failed to get weather warnings for location '%s'", req.LocationID)
		}
		if len(payload.Warning) == 0 {
			return response.Textf("No active weather warnings for location '%s'.", req.LocationID)
		}
		return response.Textf("Active weather warnings for location '%s': %s", req.LocationID, marshalInfo(payload.Warning))
	}

	return function.NewFunctionTool(
		response.Guard(handler),
		function.WithName("get_qweather_warning"),
		function.WithDescription("Get currently active official weather warnings for a location id; "+
			"reports when there are none."),
	)
}
