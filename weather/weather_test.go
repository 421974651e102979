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
	"crypto/ed25519"
	"crypto/rand"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trpc.group/trpc-go/trpc-agent-go/tool"

	"trpc.group/trpc-go/trpc-agent-go/tool/travel/internal/qweather"
	"trpc.group/trpc-go/trpc-agent-go/tool/travel/response"
)

func testClient(t *testing.T, serverURL string) *qweather.Client {
	t.Helper()
	_, private, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	der, err := x509.MarshalPKCS8PrivateKey(private)
	require.NoError(t, err)
	keyPEM := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der})

	client, err := qweather.NewClient(qweather.Config{
		PrivateKey: string(keyPEM),
		KeyID:      "test-key-id",
		SubID:      "test-sub-id",
		APIURL:     serverURL,
	})
	require.NoError(t, err)
	return client
}

func callText(t *testing.T, tl tool.CallableTool, args string) string {
	t.Helper()
	result, err := tl.Call(context.Background(), []byte(args))
	require.NoError(t, err)
	resp, ok := result.(response.Response)
	require.True(t, ok, "expected response.Response, got %T", result)
	require.Len(t, resp.Content, 1)
	return resp.Content[0].Text
}

func TestHourlyEndpoint(t *testing.T) {
	tests := []struct {
		hours int
		want  string
	}{
		{1, "/v7/weather/24h"},
		{24, "/v7/weather/24h"},
		{25, "/v7/weather/72h"},
		{72, "/v7/weather/72h"},
		{73, "/v7/weather/168h"},
		{168, "/v7/weather/168h"},
		{500, "/v7/weather/168h"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, hourlyEndpoint(tt.hours), "hours=%d", tt.hours)
	}
}

func TestDailyEndpoint(t *testing.T) {
	tests := []struct {
		days int
		want string
	}{
		{1, "/v7/weather/3d"},
		{3, "/v7/weather/3d"},
		{4, "/v7/weather/7d"},
		{7, "/v7/weather/7d"},
		{10, "/v7/weather/10d"},
		{15, "/v7/weather/15d"},
		{16, "/v7/weather/30d"},
		{30, "/v7/weather/30d"},
		{90, "/v7/weather/30d"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, dailyEndpoint(tt.days), "days=%d", tt.days)
	}
}

func TestCityLookupTool_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/geo/v2/city/lookup", r.URL.Path)
		assert.Equal(t, "Beijing", r.URL.Query().Get("location"))
		_, _ = w.Write([]byte(`{"code":"200","location":[
			{"id":"101010100","name":"北京","country":"中国","adm1":"北京市","adm2":"北京","lat":"39.90","lon":"116.40"},
			{"id":"101010200","name":"海淀","country":"中国","adm1":"北京市","adm2":"北京","lat":"39.99","lon":"116.28"}
		]}`))
	}))
	defer server.Close()

	text := callText(t, createCityLookupTool(testClient(t, server.URL)), `{"location_name":"Beijing"}`)
	assert.Contains(t, text, "City found: Beijing")
	// only the first match is returned
	assert.Contains(t, text, "101010100")
	assert.NotContains(t, text, "101010200")
}

func TestCityLookupTool_EmptyName(t *testing.T) {
	text := callText(t, createCityLookupTool(testClient(t, "http://unused")), `{}`)
	assert.Equal(t, "error: location_name must not be empty", text)
}

func TestCityLookupTool_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"code":"404"}`))
	}))
	defer server.Close()

	text := callText(t, createCityLookupTool(testClient(t, server.URL)), `{"location_name":"Nowhere"}`)
	assert.Contains(t, text, "city not found: Nowhere")
}

func TestNowTool_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v7/weather/now", r.URL.Path)
		assert.Equal(t, "101010100", r.URL.Query().Get("location"))
		_, _ = w.Write([]byte(`{"code":"200","now":{"temp":"21","text":"Cloudy","humidity":"40"}}`))
	}))
	defer server.Close()

	text := callText(t, createNowTool(testClient(t, server.URL)), `{"location_id":"101010100"}`)
	assert.Contains(t, text, "Real-time weather for location '101010100'")
	assert.Contains(t, text, `"temp":"21"`)
}

func TestHourlyForecastTool_BucketsAndSlices(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		entries := make([]map[string]string, 72)
		for i := range entries {
			entries[i] = map[string]string{"fxTime": fmt.Sprintf("t%d", i), "temp": "20"}
		}
		body, _ := json.Marshal(map[string]any{"code": "200", "hourly": entries})
		_, _ = w.Write(body)
	}))
	defer server.Close()

	text := callText(t, createHourlyForecastTool(testClient(t, server.URL)),
		`{"location_id":"101010100","hours":48}`)

	assert.Equal(t, "/v7/weather/72h", gotPath)
	assert.Contains(t, text, "48-hour forecast")
	// the 72 provider entries are trimmed to the requested 48
	assert.Contains(t, text, `"fxTime":"t47"`)
	assert.NotContains(t, text, `"fxTime":"t48"`)
}

func TestDailyForecastTool_DefaultsToThreeDays(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{"code":"200","daily":[{"fxDate":"2026-08-31"},{"fxDate":"2026-09-01"},{"fxDate":"2026-09-02"}]}`))
	}))
	defer server.Close()

	text := callText(t, createDailyForecastTool(testClient(t, server.URL)), `{"location_id":"101010100"}`)
	assert.Equal(t, "/v7/weather/3d", gotPath)
	assert.Contains(t, text, "3-day forecast")
}

func TestIndicesTool_PathAndDefaults(t *testing.T) {
	var gotPath, gotType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotType = r.URL.Query().Get("type")
		_, _ = w.Write([]byte(`{"code":"200","daily":[{"date":"2026-08-31","name":"运动指数","category":"适宜"}]}`))
	}))
	defer server.Close()

	callText(t, createIndicesTool(testClient(t, server.URL)), `{"location_id":"101010100"}`)
	assert.Equal(t, "/v7/indices/1d", gotPath)
	assert.Equal(t, "0", gotType)

	callText(t, createIndicesTool(testClient(t, server.URL)), `{"location_id":"101010100","index_type":"1,2","days":3}`)
	assert.Equal(t, "/v7/indices/3d", gotPath)
	assert.Equal(t, "1,2", gotType)
}

func TestWarningTool_NoActiveWarnings(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v7/warning/now", r.URL.Path)
		_, _ = w.Write([]byte(`{"code":"200","warning":[]}`))
	}))
	defer server.Close()

	text := callText(t, createWarningTool(testClient(t, server.URL)), `{"location_id":"101010100"}`)
	assert.Equal(t, "No active weather warnings for location '101010100'.", text)
}

func TestWarningTool_ActiveWarnings(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"code":"200","warning":[{"id":"w1","title":"暴雨橙色预警","severity":"Severe","typeName":"暴雨"}]}`))
	}))
	defer server.Close()

	text := callText(t, createWarningTool(testClient(t, server.URL)), `{"location_id":"101010100"}`)
	assert.Contains(t, text, "Active weather warnings")
	assert.Contains(t, text, "暴雨橙色预警")
}

func TestAirForecastTool_ClampsDays(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v7/air/5d", r.URL.Path)
		_, _ = w.Write([]byte(`{"code":"200","daily":[
			{"fxDate":"d1","aqi":"50"},{"fxDate":"d2","aqi":"60"},{"fxDate":"d3","aqi":"70"},
			{"fxDate":"d4","aqi":"80"},{"fxDate":"d5","aqi":"90"}
		]}`))
	}))
	defer server.Close()

	text := callText(t, createAirForecastTool(testClient(t, server.URL)),
		`{"location_id":"101010100","days":2}`)
	assert.Contains(t, text, "2-day air quality forecast")
	assert.Contains(t, text, `"fxDate":"d2"`)
	assert.NotContains(t, text, `"fxDate":"d3"`)

	// out-of-range values fall back to the full 5 days
	text = callText(t, createAirForecastTool(testClient(t, server.URL)),
		`{"location_id":"101010100","days":9}`)
	assert.Contains(t, text, "5-day air quality forecast")
}

func TestHistoricalWeatherTool_RequiresDate(t *testing.T) {
	text := callText(t, createHistoricalWeatherTool(testClient(t, "http://unused")), `{"location_id":"101010100"}`)
	assert.Equal(t, "error: date must be provided in yyyyMMdd format", text)
}

func TestHistoricalWeatherTool_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v7/historical/weather", r.URL.Path)
		assert.Equal(t, "20260825", r.URL.Query().Get("date"))
		_, _ = w.Write([]byte(`{"code":"200",
			"weatherDaily":{"date":"20260825","tempMax":"30","tempMin":"22"},
			"weatherHourly":[{"time":"2026-08-25T01:00+08:00","temp":"23"}]}`))
	}))
	defer server.Close()

	text := callText(t, createHistoricalWeatherTool(testClient(t, server.URL)),
		`{"location_id":"101010100","date":"20260825"}`)
	assert.Contains(t, text, "Historical weather for location '101010100' on 20260825")
	assert.Contains(t, text, `"tempMax":"30"`)
}

func TestProviderFailureYieldsText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"code":"402","message":"over quota"}`))
	}))
	defer server.Close()

	text := callText(t, createNowTool(testClient(t, server.URL)), `{"location_id":"101010100"}`)
	assert.Contains(t, text, "failed to get real-time weather")
}

func TestNewToolSet_WithClient(t *testing.T) {
	toolSet, err := NewToolSet(WithClient(testClient(t, "http://unused")))
	require.NoError(t, err)

	assert.Equal(t, "weather", toolSet.Name())
	assert.Len(t, toolSet.Tools(context.Background()), 14)
	require.NoError(t, toolSet.Close())
}
