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
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"trpc.group/trpc-go/trpc-agent-go/log"
	"trpc.group/trpc-go/trpc-agent-go/tool"
	"trpc.group/trpc-go/trpc-agent-go/tool/function"

	"trpc.group/trpc-go/trpc-agent-go/tool/travel/response"
)

const openWeatherBaseURL = "https://api.openweathermap.org/data/2.5/weather"

type openWeatherConfig struct {
	apiKey string
}

type openWeatherClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// newOpenWeatherClient builds the OpenWeatherMap fallback client. The key
// is optional: without one the tool serves mock data so that agents keep
// working in demo setups.
func newOpenWeatherClient(cfg *config) *openWeatherClient {
	apiKey := cfg.openWeather.apiKey
	if apiKey == "" {
		apiKey = os.Getenv("OPENWEATHERMAP_API_KEY")
	}
	httpClient := cfg.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &openWeatherClient{
		apiKey:     apiKey,
		baseURL:    openWeatherBaseURL,
		httpClient: httpClient,
	}
}

type openWeatherRequest struct {
	Country     string `json:"country" jsonschema:"description=Country name, e.g. China, United States, Japan"`
	Destination string `json:"destination" jsonschema:"description=Destination city name, e.g. Beijing, New York, Tokyo"`
	Units       string `json:"units,omitempty" jsonschema:"description=Temperature units: metric, imperial or kelvin, default metric"`
	Language    string `json:"language,omitempty" jsonschema:"description=Response language such as zh_cn, en, ja, default zh_cn"`
}

// openWeatherData is the flattened summary returned to the agent for both
// the live and the mock path.
type openWeatherData struct {
	Location      string `json:"location"`
	Temperature   string `json:"temperature"`
	FeelsLike     string `json:"feels_like,omitempty"`
	Description   string `json:"description"`
	Humidity      string `json:"humidity"`
	Pressure      string `json:"pressure"`
	Visibility    string `json:"visibility,omitempty"`
	WindSpeed     string `json:"wind_speed"`
	WindDirection string `json:"wind_direction,omitempty"`
	Cloudiness    string `json:"cloudiness,omitempty"`
	Sunrise       int64  `json:"sunrise,omitempty"`
	Sunset        int64  `json:"sunset,omitempty"`
	Note          string `json:"note,omitempty"`
}

// openWeatherReply mirrors the fields of the provider's current-weather
// response that the summary needs.
type openWeatherReply struct {
	Name string `json:"name"`
	Sys  struct {
		Country string `json:"country"`
		Sunrise int64  `json:"sunrise"`
		Sunset  int64  `json:"sunset"`
	} `json:"sys"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
		Pressure  int     `json:"pressure"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Visibility int `json:"visibility"`
	Wind       struct {
		Speed float64 `json:"speed"`
		Deg   int     `json:"deg"`
	} `json:"wind"`
	Clouds struct {
		All int `json:"all"`
	} `json:"clouds"`
}

func tempSuffix(units string) string {
	switch units {
	case "imperial":
		return "°F"
	case "kelvin":
		return "K"
	default:
		return "°C"
	}
}

func mockWeatherData(destination, country string) openWeatherData {
	return openWeatherData{
		Location:    fmt.Sprintf("%s, %s", destination, country),
		Temperature: "22°C",
		Description: "clear sky",
		Humidity:    "65%",
		WindSpeed:   "5 km/h",
		Pressure:    "1013 hPa",
		Visibility:  "10 km",
		Note:        "mock data; set OPENWEATHERMAP_API_KEY to get real weather",
	}
}

func (c *openWeatherClient) currentWeather(ctx context.Context, req openWeatherRequest) (openWeatherData, error) {
	units := req.Units
	if units == "" {
		units = "metric"
	}
	lang := req.Language
	if lang == "" {
		lang = "zh_cn"
	}

	params := url.Values{}
	params.Set("q", fmt.Sprintf("%s,%s", req.Destination, req.Country))
	params.Set("appid", c.apiKey)
	params.Set("units", units)
	params.Set("lang", lang)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return openWeatherData{}, err
	}
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return openWeatherData{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return openWeatherData{}, err
	}
	if resp.StatusCode != http.StatusOK {
		return openWeatherData{}, fmt.Errorf("openweathermap returned status %d", resp.StatusCode)
	}

	var reply openWeatherReply
	if err := json.Unmarshal(body, &reply); err != nil {
		return openWeatherData{}, fmt.Errorf("decode openweathermap response: %w", err)
	}

	data := openWeatherData{
		Location:      fmt.Sprintf("%s, %s", reply.Name, reply.Sys.Country),
		Temperature:   fmt.Sprintf("%g%s", reply.Main.Temp, tempSuffix(units)),
		FeelsLike:     fmt.Sprintf("%g%s", reply.Main.FeelsLike, tempSuffix(units)),
		Humidity:      fmt.Sprintf("%d%%", reply.Main.Humidity),
		Pressure:      fmt.Sprintf("%d hPa", reply.Main.Pressure),
		WindDirection: fmt.Sprintf("%d°", reply.Wind.Deg),
		Cloudiness:    fmt.Sprintf("%d%%", reply.Clouds.All),
		Sunrise:       reply.Sys.Sunrise,
		Sunset:        reply.Sys.Sunset,
	}
	if len(reply.Weather) > 0 {
		data.Description = reply.Weather[0].Description
	}
	if reply.Visibility > 0 {
		data.Visibility = fmt.Sprintf("%g km", float64(reply.Visibility)/1000)
	} else {
		data.Visibility = "N/A"
	}
	if units == "metric" {
		data.WindSpeed = fmt.Sprintf("%g m/s", reply.Wind.Speed)
	} else {
		data.WindSpeed = fmt.Sprintf("%g mph", reply.Wind.Speed)
	}
	return data, nil
}

func createOpenWeatherTool(client *openWeatherClient) tool.CallableTool {
	handler := func(ctx context.Context, req openWeatherRequest) response.Response {
		if req.Country == "" || req.Destination == "" {
			return response.Text("error: both country and destination must be provided")
		}
		log.Debugf("weather: openweathermap lookup %q, %q", req.Destination, req.Country)

		if client.apiKey == "" {
			data := mockWeatherData(req.Destination, req.Country)
			return response.Textf("Location: %s, %s\nWeather: %s", req.Destination, req.Country, marshalInfo(data))
		}

		data, err := client.currentWeather(ctx, req)
		if err != nil {
			log.Warnf("weather: openweathermap request failed: %v", err)
			return response.Textf("failed to get weather for %s, %s: %v", req.Destination, req.Country, err)
		}
		return response.Textf("Location: %s, %s\nWeather: %s", req.Destination, req.Country, marshalInfo(data))
	}

	return function.NewFunctionTool(
		response.Guard(handler),
		function.WithName("get_weather"),
		function.WithDescription("Get current weather for a destination city and country via "+
			"OpenWeatherMap; serves mock data when no API key is configured."),
	)
}
