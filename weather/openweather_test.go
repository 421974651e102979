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
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOpenWeatherTool_MissingParams(t *testing.T) {
	client := &openWeatherClient{httpClient: http.DefaultClient}
	text := callText(t, createOpenWeatherTool(client), `{"country":"Japan"}`)
	assert.Equal(t, "error: both country and destination must be provided", text)
}

func TestOpenWeatherTool_MockDataWithoutKey(t *testing.T) {
	client := &openWeatherClient{httpClient: http.DefaultClient}
	text := callText(t, createOpenWeatherTool(client), `{"country":"Japan","destination":"Tokyo"}`)

	assert.Contains(t, text, "Location: Tokyo, Japan")
	assert.Contains(t, text, "mock data")
	assert.Contains(t, text, "22°C")
}

func TestOpenWeatherTool_LiveRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		assert.Equal(t, "Tokyo,Japan", query.Get("q"))
		assert.Equal(t, "test-key", query.Get("appid"))
		assert.Equal(t, "metric", query.Get("units"))
		assert.Equal(t, "zh_cn", query.Get("lang"))
		_, _ = w.Write([]byte(`{
			"name":"Tokyo",
			"sys":{"country":"JP","sunrise":1756600000,"sunset":1756645000},
			"main":{"temp":27.5,"feels_like":29.1,"humidity":70,"pressure":1008},
			"weather":[{"description":"scattered clouds"}],
			"visibility":10000,
			"wind":{"speed":3.6,"deg":180},
			"clouds":{"all":40}
		}`))
	}))
	defer server.Close()

	client := &openWeatherClient{
		apiKey:     "test-key",
		baseURL:    server.URL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	text := callText(t, createOpenWeatherTool(client), `{"country":"Japan","destination":"Tokyo"}`)

	assert.Contains(t, text, "Location: Tokyo, Japan")
	assert.Contains(t, text, `"location":"Tokyo, JP"`)
	assert.Contains(t, text, "27.5°C")
	assert.Contains(t, text, "scattered clouds")
	assert.Contains(t, text, "3.6 m/s")
	assert.Contains(t, text, "10 km")
	assert.NotContains(t, text, "mock data")
}

func TestOpenWeatherTool_ImperialUnits(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "imperial", r.URL.Query().Get("units"))
		_, _ = w.Write([]byte(`{
			"name":"New York","sys":{"country":"US"},
			"main":{"temp":81,"feels_like":85,"humidity":60,"pressure":1010},
			"weather":[{"description":"sunny"}],
			"wind":{"speed":8,"deg":90},"clouds":{"all":10}
		}`))
	}))
	defer server.Close()

	client := &openWeatherClient{
		apiKey:     "test-key",
		baseURL:    server.URL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	text := callText(t, createOpenWeatherTool(client),
		`{"country":"United States","destination":"New York","units":"imperial"}`)

	assert.Contains(t, text, "81°F")
	assert.Contains(t, text, "8 mph")
	// no visibility in the reply
	assert.Contains(t, text, "N/A")
}

func TestOpenWeatherTool_UpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := &openWeatherClient{
		apiKey:     "bad-key",
		baseURL:    server.URL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	text := callText(t, createOpenWeatherTool(client), `{"country":"Japan","destination":"Tokyo"}`)
	assert.Contains(t, text, "failed to get weather for Tokyo, Japan")
}
