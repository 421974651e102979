//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

package hotelbooking

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"trpc.group/trpc-go/trpc-agent-go/log"
	"trpc.group/trpc-go/trpc-agent-go/tool"
	"trpc.group/trpc-go/trpc-agent-go/tool/function"

	"trpc.group/trpc-go/trpc-agent-go/tool/travel/internal/dida"
	"trpc.group/trpc-go/trpc-agent-go/tool/travel/response"
)

// ===== Lowest price search =====

type lowestPriceRequest struct {
	CheckInDate  string `json:"check_in_date" jsonschema:"description=Check-in date in YYYY-MM-DD format"`
	CheckOutDate string `json:"check_out_date" jsonschema:"description=Check-out date in YYYY-MM-DD format"`
	Currency     string `json:"currency" jsonschema:"description=Desired price currency, e.g. CNY, USD, JPY"`
	CityCode     string `json:"city_code,omitempty" jsonschema:"description=Destination city/region code, e.g. 602651; mutually exclusive with hotel_ids"`
	HotelIDs     []int  `json:"hotel_ids,omitempty" jsonschema:"description=Hotel ID list; mutually exclusive with city_code"`
	Nationality  string `json:"nationality,omitempty" jsonschema:"description=Guest nationality as ISO 3166-1 alpha-2, default CN"`
}

type lowestPriceSuccess struct {
	PriceDetails struct {
		HotelList []struct {
			HotelName   string `json:"HotelName"`
			HotelID     int64  `json:"HotelID"`
			LowestPrice struct {
				Value    json.Number `json:"Value"`
				Currency string      `json:"Currency"`
			} `json:"LowestPrice"`
			LowestRateRatePlanInfo struct {
				RatePlanName string `json:"RatePlanName"`
			} `json:"LowestRateRatePlanInfo"`
		} `json:"HotelList"`
	} `json:"PriceDetails"`
}

func createLowestPriceTool(client *dida.Client) tool.CallableTool {
	handler := func(ctx context.Context, req lowestPriceRequest) response.Response {
		if req.CityCode == "" && len(req.HotelIDs) == 0 {
			return response.Text("error: exactly one of city_code or hotel_ids must be provided")
		}
		if req.CityCode != "" && len(req.HotelIDs) > 0 {
			return response.Text("error: city_code and hotel_ids are mutually exclusive, provide only one")
		}
		if text := validateStayDates(req.CheckInDate, req.CheckOutDate); text != "" {
			return response.Text(text)
		}
		if blank(req.Currency) {
			return response.Text("error: currency must not be empty")
		}
		nationality := req.Nationality
		if nationality == "" {
			nationality = "CN"
		}
		log.Debugf("hotelbooking: price search %s -> %s, currency %s", req.CheckInDate, req.CheckOutDate, req.Currency)

		body := map[string]any{
			"Header":       client.Header(),
			"CheckInDate":  req.CheckInDate,
			"CheckOutDate": req.CheckOutDate,
			// the provider only honors lowest-price search when this flag is set
			"LowestPriceOnly": true,
			"Nationality":     nationality,
			"Currency":        req.Currency,
		}
		if req.CityCode != "" {
			body["Destination"] = map[string]string{"CityCode": req.CityCode}
		} else {
			body["HotelIDList"] = req.HotelIDs
		}

		env, err := client.PostBooking(ctx, "/api/rate/pricesearch", body)
		if err != nil {
			log.Warnf("hotelbooking: price search request failed: %v", err)
			return response.Text(connectivityFailureText)
		}
		if env.Error != nil {
			return response.Textf("price search failed: [%s] %s", env.Error.Code, env.Error.Message)
		}
		if env.Success == nil {
			return response.Text(unexpectedShapeText)
		}

		var success lowestPriceSuccess
		if err := json.Unmarshal(env.Success, &success); err != nil {
			return response.Text(unexpectedShapeText)
		}
		hotels := success.PriceDetails.HotelList
		if len(hotels) == 0 {
			return response.Textf("no hotel prices found for the given criteria (check-in: %s, check-out: %s)",
				req.CheckInDate, req.CheckOutDate)
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "Lowest price results (check-in: %s, check-out: %s):\n", req.CheckInDate, req.CheckOutDate)
		fmt.Fprintf(&sb, "Found prices for %d hotels\n\n", len(hotels))
		shown := hotels
		if len(shown) > priceDisplayLimit {
			shown = shown[:priceDisplayLimit]
		}
		for i, hotel := range shown {
			fmt.Fprintf(&sb, "%d. %s (ID: %d)\n", i+1, hotel.HotelName, hotel.HotelID)
			currency := hotel.LowestPrice.Currency
			if currency == "" {
				currency = req.Currency
			}
			fmt.Fprintf(&sb, "   lowest price: %s %s\n", hotel.LowestPrice.Value, currency)
			if plan := hotel.LowestRateRatePlanInfo.RatePlanName; plan != "" {
				fmt.Fprintf(&sb, "   rate plan: %s\n", plan)
			}
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "Raw response: %s", env.Success)
		return response.Text(sb.String())
	}

	return function.NewFunctionTool(
		response.Guard(handler),
		function.WithName("get_lowest_price"),
		function.WithDescription("Search the lowest hotel prices for a stay, by destination city code "+
			"or by an explicit hotel ID list (exactly one of the two). Returns the SearchCode and rate "+
			"plan data needed for price confirmation."),
	)
}

// ===== Price confirmation =====

type priceConfirmRequest struct {
	SearchCode   string       `json:"search_code" jsonschema:"description=SearchCode from the price search response"`
	HotelID      int          `json:"hotel_id" jsonschema:"description=Hotel ID"`
	RatePlanID   string       `json:"rate_plan_id" jsonschema:"description=Rate plan ID"`
	CheckInDate  string       `json:"check_in_date" jsonschema:"description=Check-in date in YYYY-MM-DD format"`
	CheckOutDate string       `json:"check_out_date" jsonschema:"description=Check-out date in YYYY-MM-DD format"`
	NumOfRooms   int          `json:"num_of_rooms" jsonschema:"description=Number of rooms"`
	GuestList    []RoomGuests `json:"guest_list" jsonschema:"description=Guests grouped by room"`
	Currency     string       `json:"currency,omitempty" jsonschema:"description=Desired price currency, default USD"`
}

type priceConfirmSuccess struct {
	ReferenceNo string      `json:"ReferenceNo"`
	TotalPrice  json.Number `json:"TotalPrice"`
	Currency    string      `json:"Currency"`
	Hotel       struct {
		HotelName string `json:"HotelName"`
	} `json:"Hotel"`
}

func createPriceConfirmTool(client *dida.Client) tool.CallableTool {
	handler := func(ctx context.Context, req priceConfirmRequest) response.Response {
		if text := validateStay(req.CheckInDate, req.CheckOutDate, req.NumOfRooms, req.GuestList); text != "" {
			return response.Text(text)
		}
		currency := req.Currency
		if currency == "" {
			currency = "USD"
		}
		log.Debugf("hotelbooking: price confirm for hotel %d, search code %s", req.HotelID, req.SearchCode)

		body := map[string]any{
			"Header":       client.Header(),
			"SearchCode":   req.SearchCode,
			"HotelID":      req.HotelID,
			"RatePlanID":   req.RatePlanID,
			"CheckInDate":  req.CheckInDate,
			"CheckOutDate": req.CheckOutDate,
			"NumOfRooms":   req.NumOfRooms,
			"GuestList":    mapGuestList(req.GuestList, false),
			"Currency":     currency,
		}

		env, err := client.PostBooking(ctx, "/api/booking/HotelPriceConfirm", body)
		if err != nil {
			log.Warnf("hotelbooking: price confirm request failed: %v", err)
			return response.Text(connectivityFailureText)
		}
		if env.Error != nil {
			return response.Textf("price confirmation failed: [%s] %s", env.Error.Code, env.Error.Message)
		}
		if env.Success == nil {
			return response.Text(unexpectedShapeText)
		}

		var success priceConfirmSuccess
		if err := json.Unmarshal(env.Success, &success); err != nil {
			return response.Text(unexpectedShapeText)
		}
		resultCurrency := success.Currency
		if resultCurrency == "" {
			resultCurrency = currency
		}

		var sb strings.Builder
		sb.WriteString("Price confirmed!\n")
		fmt.Fprintf(&sb, "reference no: %s\n", success.ReferenceNo)
		fmt.Fprintf(&sb, "hotel name: %s\n", success.Hotel.HotelName)
		fmt.Fprintf(&sb, "check-in date: %s\n", req.CheckInDate)
		fmt.Fprintf(&sb, "check-out date: %s\n", req.CheckOutDate)
		fmt.Fprintf(&sb, "total price: %s %s\n", success.TotalPrice, resultCurrency)
		fmt.Fprintf(&sb, "rooms: %d\n\n", req.NumOfRooms)
		sb.WriteString("Important: the reference no is valid for 10-30 minutes, " +
			"create the booking with it as soon as possible!")
		return response.Text(sb.String())
	}

	return function.NewFunctionTool(
		response.Guard(handler),
		function.WithName("price_confirm"),
		function.WithDescription("Confirm that a quoted rate is still valid and obtain the booking "+
			"reference no (ReferenceNo) required to create the order. The reference no expires within "+
			"10-30 minutes."),
	)
}
