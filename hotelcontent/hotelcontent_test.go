//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

package hotelcontent

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trpc.group/trpc-go/trpc-agent-go/tool"

	"trpc.group/trpc-go/trpc-agent-go/tool/travel/internal/dida"
	"trpc.group/trpc-go/trpc-agent-go/tool/travel/response"
)

func testClient(serverURL string) *dida.Client {
	return dida.NewClient(dida.Config{
		ClientID:   "test-client",
		LicenseKey: "test-license",
		ContentURL: serverURL,
		BookingURL: serverURL,
	})
}

func callText(t *testing.T, tl tool.CallableTool, args string) string {
	t.Helper()
	result, err := tl.Call(context.Background(), []byte(args))
	require.NoError(t, err)
	resp, ok := result.(response.Response)
	require.True(t, ok, "expected response.Response, got %T", result)
	require.Len(t, resp.Content, 1)
	assert.Equal(t, "text", resp.Content[0].Type)
	return resp.Content[0].Text
}

func TestCountriesTool_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/region/countries", r.URL.Path)
		assert.Equal(t, "zh-CN", r.URL.Query().Get("language"))
		_, _ = w.Write([]byte(`{"data":[{"code":"CN","name":"中国"},{"code":"JP","name":"日本"}]}`))
	}))
	defer server.Close()

	text := callText(t, createCountriesTool(testClient(server.URL)), `{"language":"zh-CN"}`)
	assert.Contains(t, text, "1: CN, 中国")
	assert.Contains(t, text, "2: JP, 日本")
}

func TestCountriesTool_RepeatedCallsAreIdentical(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data":[{"code":"CN","name":"China"}]}`))
	}))
	defer server.Close()

	tl := createCountriesTool(testClient(server.URL))
	first := callText(t, tl, `{"language":"en-US"}`)
	second := callText(t, tl, `{"language":"en-US"}`)
	assert.Equal(t, first, second)
}

func TestCountriesTool_EmptyLanguage(t *testing.T) {
	text := callText(t, createCountriesTool(testClient("http://unused")), `{}`)
	assert.Equal(t, "error: language must not be empty", text)
}

func TestCountriesTool_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	text := callText(t, createCountriesTool(testClient(server.URL)), `{"language":"zh-CN"}`)
	assert.Equal(t, connectivityFailureText, text)
}

func TestCountriesTool_UnexpectedShape(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"something":"else"}`))
	}))
	defer server.Close()

	text := callText(t, createCountriesTool(testClient(server.URL)), `{"language":"zh-CN"}`)
	assert.Contains(t, text, "unexpected response format")
}

func TestDestinationsTool_TruncatesToDisplayLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "CN", r.URL.Query().Get("countryCode"))
		body := `{"data":[`
		for i := 1; i <= 15; i++ {
			if i > 1 {
				body += ","
			}
			body += fmt.Sprintf(`{"code":"D%d","name":"City %d"}`, i, i)
		}
		body += `]}`
		_, _ = w.Write([]byte(body))
	}))
	defer server.Close()

	text := callText(t, createDestinationsTool(testClient(server.URL)), `{"country_code":"CN"}`)
	assert.Contains(t, text, "showing first 10")
	assert.Contains(t, text, "10: D10, City 10")
	assert.NotContains(t, text, "D11")
}

func TestDestinationsTool_DefaultLanguage(t *testing.T) {
	var gotLanguage string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotLanguage = r.URL.Query().Get("language")
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	defer server.Close()

	callText(t, createDestinationsTool(testClient(server.URL)), `{"country_code":"JP"}`)
	assert.Equal(t, "en-US", gotLanguage)
}

func TestDestinationsTool_EmptyCountryCode(t *testing.T) {
	text := callText(t, createDestinationsTool(testClient("http://unused")), `{}`)
	assert.Equal(t, "error: country_code must not be empty", text)
}

func TestHotelListTool_OptionalLastUpdateTime(t *testing.T) {
	var withFilter, withoutFilter string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Has("lastUpdateTime") {
			withFilter = r.URL.Query().Get("lastUpdateTime")
		} else {
			withoutFilter = "called"
		}
		_, _ = w.Write([]byte(`{"data":{"hotelIds":[1,2,3]}}`))
	}))
	defer server.Close()

	tl := createHotelListTool(testClient(server.URL))
	callText(t, tl, `{"country_code":"CN"}`)
	callText(t, tl, `{"country_code":"CN","last_update_time":"1732982400"}`)

	assert.Equal(t, "called", withoutFilter)
	assert.Equal(t, "1732982400", withFilter)
}

func TestHotelDetailsTool_Validation(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requests++
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	tl := createHotelDetailsTool(testClient(server.URL))

	text := callText(t, tl, `{"hotel_ids":[]}`)
	assert.Equal(t, "error: hotel_ids must not be empty", text)

	ids := "["
	for i := 0; i < 51; i++ {
		if i > 0 {
			ids += ","
		}
		ids += fmt.Sprintf("%d", i+1)
	}
	ids += "]"
	text = callText(t, tl, `{"hotel_ids":`+ids+`}`)
	assert.Contains(t, text, "at most 50 IDs, got 51")

	text = callText(t, tl, `{"hotel_ids":[1,-2]}`)
	assert.Equal(t, "error: hotel IDs must be positive integers", text)

	// Validation failures never reach the network.
	assert.Equal(t, 0, requests)
}

func TestHotelDetailsTool_PostsIDList(t *testing.T) {
	var gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/hotel/details", r.URL.Path)
		_, _ = w.Write([]byte(`{"data":{"hotels":[]}}`))
	}))
	defer server.Close()

	text := callText(t, createHotelDetailsTool(testClient(server.URL)), `{"hotel_ids":[101,102]}`)
	assert.Contains(t, gotBody, `"hotelIds":[101,102]`)
	assert.Contains(t, gotBody, `"language":"en-US"`)
	assert.Contains(t, text, "Hotel details for IDs [101 102]")
}

func TestDictionaryTools_EndpointsAndDefaultLanguage(t *testing.T) {
	var gotPaths []string
	var gotLanguages []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPaths = append(gotPaths, r.URL.Path)
		gotLanguages = append(gotLanguages, r.URL.Query().Get("language"))
		_, _ = w.Write([]byte(`{"data":[{"code":"1","name":"测试"}]}`))
	}))
	defer server.Close()

	tools := createDictionaryTools(testClient(server.URL))
	require.Len(t, tools, 5)
	for _, tl := range tools {
		callable, ok := tl.(tool.CallableTool)
		require.True(t, ok)
		callText(t, callable, `{}`)
	}

	assert.Equal(t, []string{
		"/api/v1/dictionary/meal-types",
		"/api/v1/dictionary/bed-types",
		"/api/v1/dictionary/window-types",
		"/api/v1/dictionary/smoking-types",
		"/api/v1/dictionary/view-types",
	}, gotPaths)
	for _, language := range gotLanguages {
		assert.Equal(t, "zh-CN", language)
	}
}

func TestNewToolSet_WithClient(t *testing.T) {
	toolSet, err := NewToolSet(WithClient(testClient("http://unused")))
	require.NoError(t, err)

	assert.Equal(t, "hotel_content", toolSet.Name())
	tools := toolSet.Tools(context.Background())
	assert.Len(t, tools, 9)
	require.NoError(t, toolSet.Close())
}
