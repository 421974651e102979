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

// ===== Booking confirmation =====

type bookingConfirmRequest struct {
	ReferenceNo     string       `json:"reference_no" jsonschema:"description=Reference no returned by price confirmation"`
	CheckInDate     string       `json:"check_in_date" jsonschema:"description=Check-in date in YYYY-MM-DD format"`
	CheckOutDate    string       `json:"check_out_date" jsonschema:"description=Check-out date in YYYY-MM-DD format"`
	NumOfRooms      int          `json:"num_of_rooms" jsonschema:"description=Number of rooms"`
	GuestList       []RoomGuests `json:"guest_list" jsonschema:"description=Guests grouped by room"`
	Contact         Contact      `json:"contact" jsonschema:"description=Booking contact; name, email and phone are all required"`
	ClientReference string       `json:"client_reference,omitempty" jsonschema:"description=Your own order number, must be unique"`
	CustomerRequest string       `json:"customer_request,omitempty" jsonschema:"description=Special request forwarded to the hotel, fulfilment not guaranteed"`
}

type bookingDetails struct {
	BookingID        string      `json:"BookingID"`
	Status           int         `json:"Status"`
	ConfirmationCode string      `json:"ConfirmationCode"`
	TotalPrice       json.Number `json:"TotalPrice"`
	ClientReference  string      `json:"ClientReference"`
}

type bookingConfirmSuccess struct {
	BookingDetails bookingDetails `json:"BookingDetails"`
}

func createBookingConfirmTool(client *dida.Client) tool.CallableTool {
	handler := func(ctx context.Context, req bookingConfirmRequest) response.Response {
		if text := validateStay(req.CheckInDate, req.CheckOutDate, req.NumOfRooms, req.GuestList); text != "" {
			return response.Text(text)
		}
		if text := validateContact(req.Contact); text != "" {
			return response.Text(text)
		}
		log.Debugf("hotelbooking: booking confirm with reference %s", req.ReferenceNo)

		body := map[string]any{
			"Header":       client.Header(),
			"ReferenceNo":  req.ReferenceNo,
			"CheckInDate":  req.CheckInDate,
			"CheckOutDate": req.CheckOutDate,
			"NumOfRooms":   req.NumOfRooms,
			"GuestList":    mapGuestList(req.GuestList, true),
			"Contact":      mapContact(req.Contact),
		}
		if req.ClientReference != "" {
			body["ClientReference"] = req.ClientReference
		}
		if req.CustomerRequest != "" {
			body["CustomerRequest"] = req.CustomerRequest
		}

		env, err := client.PostBooking(ctx, "/api/booking/HotelBookingConfirm", body)
		if err != nil {
			log.Warnf("hotelbooking: booking confirm request failed: %v", err)
			return response.Text(connectivityFailureText)
		}
		if env.Error != nil {
			return response.Textf("booking creation failed: [%s] %s", env.Error.Code, env.Error.Message)
		}
		if env.Success == nil {
			return response.Text(unexpectedShapeText)
		}

		var success bookingConfirmSuccess
		if err := json.Unmarshal(env.Success, &success); err != nil {
			return response.Text(unexpectedShapeText)
		}
		details := success.BookingDetails
		status := dida.BookingStatus(details.Status)

		var sb strings.Builder
		sb.WriteString("Booking order created!\n")
		fmt.Fprintf(&sb, "booking id: %s\n", details.BookingID)
		fmt.Fprintf(&sb, "order status: %s\n", status)
		if details.ConfirmationCode != "" {
			fmt.Fprintf(&sb, "hotel confirmation code: %s\n", details.ConfirmationCode)
		} else {
			sb.WriteString("hotel confirmation code: not returned yet " +
				"(query the order 3 days before check-in to retrieve it)\n")
		}
		fmt.Fprintf(&sb, "check-in date: %s\n", req.CheckInDate)
		fmt.Fprintf(&sb, "check-out date: %s\n", req.CheckOutDate)
		fmt.Fprintf(&sb, "total price: %s\n", details.TotalPrice)
		if details.ClientReference != "" {
			fmt.Fprintf(&sb, "client reference: %s\n", details.ClientReference)
		}

		switch status {
		case dida.StatusConfirmed:
			sb.WriteString("\nThe order is confirmed, booking succeeded.")
		case dida.StatusPending, dida.StatusOnRequest:
			sb.WriteString("\nThe order is being processed; query it later for the final status.")
		case dida.StatusCanceled, dida.StatusFailed:
			sb.WriteString("\nThe order failed or has been canceled.")
		}
		return response.Text(sb.String())
	}

	return function.NewFunctionTool(
		response.Guard(handler),
		function.WithName("booking_confirm"),
		function.WithDescription("Create a hotel booking order. Requires a valid reference no obtained "+
			"from price confirmation first. The contact's name, email and phone are all mandatory."),
	)
}

// ===== Booking search =====

type bookingSearchRequest struct {
	BookingID        string `json:"booking_id,omitempty" jsonschema:"description=Platform booking id; most precise, overrides every other filter"`
	ClientReference  string `json:"client_reference,omitempty" jsonschema:"description=Your own order number"`
	CheckInDateFrom  string `json:"check_in_date_from,omitempty" jsonschema:"description=Check-in range start, YYYY-MM-DD"`
	CheckInDateTo    string `json:"check_in_date_to,omitempty" jsonschema:"description=Check-in range end, YYYY-MM-DD"`
	CheckOutDateFrom string `json:"check_out_date_from,omitempty" jsonschema:"description=Check-out range start, YYYY-MM-DD"`
	CheckOutDateTo   string `json:"check_out_date_to,omitempty" jsonschema:"description=Check-out range end, YYYY-MM-DD"`
	BookDateFrom     string `json:"book_date_from,omitempty" jsonschema:"description=Order creation range start, YYYY-MM-DD"`
	BookDateTo       string `json:"book_date_to,omitempty" jsonschema:"description=Order creation range end, YYYY-MM-DD"`
	GuestFirstName   string `json:"guest_first_name,omitempty" jsonschema:"description=Guest given name"`
	GuestLastName    string `json:"guest_last_name,omitempty" jsonschema:"description=Guest family name"`
	ContactFirstName string `json:"contact_first_name,omitempty" jsonschema:"description=Contact given name"`
	ContactLastName  string `json:"contact_last_name,omitempty" jsonschema:"description=Contact family name"`
	Status           *int   `json:"status,omitempty" jsonschema:"description=Order status: 0=PreBook 2=Confirmed 3=Canceled 4=Failed 5=Pending 6=OnRequest"`
	CityCode         string `json:"city_code,omitempty" jsonschema:"description=City code"`
}

func (r bookingSearchRequest) hasCondition() bool {
	return r.BookingID != "" || r.ClientReference != "" ||
		r.CheckInDateFrom != "" || r.CheckInDateTo != "" ||
		r.CheckOutDateFrom != "" || r.CheckOutDateTo != "" ||
		r.BookDateFrom != "" || r.BookDateTo != "" ||
		r.GuestFirstName != "" || r.GuestLastName != "" ||
		r.ContactFirstName != "" || r.ContactLastName != "" ||
		r.Status != nil || r.CityCode != ""
}

type bookingSearchSuccess struct {
	BookingDetailsList []struct {
		BookingID        string      `json:"BookingID"`
		Status           int         `json:"Status"`
		CheckInDate      string      `json:"CheckInDate"`
		CheckOutDate     string      `json:"CheckOutDate"`
		OrderDate        string      `json:"OrderDate"`
		NumOfRooms       int         `json:"NumOfRooms"`
		TotalPrice       json.Number `json:"TotalPrice"`
		ClientReference  string      `json:"ClientReference"`
		ConfirmationCode string      `json:"ConfirmationCode"`
		Hotel            struct {
			HotelName string `json:"HotelName"`
			HotelID   int64  `json:"HotelID"`
		} `json:"Hotel"`
		Contact struct {
			Name  providerName `json:"Name"`
			Phone string       `json:"Phone"`
			Email string       `json:"Email"`
		} `json:"Contact"`
	} `json:"BookingDetailsList"`
}

func createBookingSearchTool(client *dida.Client) tool.CallableTool {
	handler := func(ctx context.Context, req bookingSearchRequest) response.Response {
		if !req.hasCondition() {
			return response.Text("error: must provide at least one search condition")
		}
		dateFields := []struct {
			value string
			label string
		}{
			{req.CheckInDateFrom, "check_in_date_from"},
			{req.CheckInDateTo, "check_in_date_to"},
			{req.CheckOutDateFrom, "check_out_date_from"},
			{req.CheckOutDateTo, "check_out_date_to"},
			{req.BookDateFrom, "book_date_from"},
			{req.BookDateTo, "book_date_to"},
		}
		for _, field := range dateFields {
			if field.value != "" && !validDate(field.value) {
				return response.Textf("error: %s has an invalid format, please use YYYY-MM-DD", field.label)
			}
		}
		log.Debugf("hotelbooking: booking search, booking id %q", req.BookingID)

		body := map[string]any{
			"Header":   client.Header(),
			"SearchBy": buildSearchBy(req),
		}

		env, err := client.PostBooking(ctx, "/api/booking/HotelBookingSearch", body)
		if err != nil {
			log.Warnf("hotelbooking: booking search request failed: %v", err)
			return response.Text(connectivityFailureText)
		}
		if env.Error != nil {
			return response.Textf("booking search failed: [%s] %s", env.Error.Code, env.Error.Message)
		}
		if env.Success == nil {
			return response.Text(unexpectedShapeText)
		}

		var success bookingSearchSuccess
		if err := json.Unmarshal(env.Success, &success); err != nil {
			return response.Text(unexpectedShapeText)
		}
		if len(success.BookingDetailsList) == 0 {
			return response.Text("no orders found for the given conditions")
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "Found %d orders:\n\n", len(success.BookingDetailsList))
		for i, order := range success.BookingDetailsList {
			fmt.Fprintf(&sb, "=== order %d ===\n", i+1)
			fmt.Fprintf(&sb, "booking id: %s\n", order.BookingID)
			fmt.Fprintf(&sb, "order status: %s\n", dida.BookingStatus(order.Status))
			if order.ClientReference != "" {
				fmt.Fprintf(&sb, "client reference: %s\n", order.ClientReference)
			}
			if order.ConfirmationCode != "" {
				fmt.Fprintf(&sb, "hotel confirmation code: %s\n", order.ConfirmationCode)
			}
			fmt.Fprintf(&sb, "hotel: %s (ID: %d)\n", order.Hotel.HotelName, order.Hotel.HotelID)
			fmt.Fprintf(&sb, "check-in date: %s\n", dateOnly(order.CheckInDate))
			fmt.Fprintf(&sb, "check-out date: %s\n", dateOnly(order.CheckOutDate))
			fmt.Fprintf(&sb, "order created: %s\n", dateOnly(order.OrderDate))
			fmt.Fprintf(&sb, "rooms: %d\n", order.NumOfRooms)
			fmt.Fprintf(&sb, "total price: %s\n", order.TotalPrice)
			if order.Contact.Name.First != "" || order.Contact.Name.Last != "" {
				fmt.Fprintf(&sb, "contact: %s %s\n", order.Contact.Name.First, order.Contact.Name.Last)
			}
			if order.Contact.Phone != "" {
				fmt.Fprintf(&sb, "contact phone: %s\n", order.Contact.Phone)
			}
			if order.Contact.Email != "" {
				fmt.Fprintf(&sb, "contact email: %s\n", order.Contact.Email)
			}
			sb.WriteString("\n")
		}
		return response.Text(strings.TrimRight(sb.String(), "\n"))
	}

	return function.NewFunctionTool(
		response.Guard(handler),
		function.WithName("booking_search"),
		function.WithDescription("Search booking orders by booking id, client reference, date ranges, "+
			"guest or contact names, status or city code. At least one condition is required; a booking "+
			"id takes precedence over all other filters."),
	)
}

// buildSearchBy maps the request into the provider's filter object. A
// booking id is the sole search key when present; everything else combines
// conjunctively under BookingInfo.
func buildSearchBy(req bookingSearchRequest) map[string]any {
	searchBy := map[string]any{}
	if req.BookingID != "" {
		searchBy["BookingID"] = req.BookingID
		return searchBy
	}

	info := map[string]any{}
	if req.ClientReference != "" {
		info["ClientReference"] = req.ClientReference
	}
	if dateRange := buildDateRange(req.CheckInDateFrom, req.CheckInDateTo); dateRange != nil {
		info["CheckInDateRange"] = dateRange
	}
	if dateRange := buildDateRange(req.CheckOutDateFrom, req.CheckOutDateTo); dateRange != nil {
		info["CheckOutDateRange"] = dateRange
	}
	if dateRange := buildDateRange(req.BookDateFrom, req.BookDateTo); dateRange != nil {
		info["BookDateRange"] = dateRange
	}
	if name := buildName(req.GuestFirstName, req.GuestLastName); name != nil {
		info["GuestName"] = name
	}
	if name := buildName(req.ContactFirstName, req.ContactLastName); name != nil {
		info["ContactName"] = name
	}
	if req.Status != nil {
		info["Status"] = *req.Status
	}
	if req.CityCode != "" {
		info["CityCode"] = req.CityCode
	}
	if len(info) > 0 {
		searchBy["BookingInfo"] = info
	}
	return searchBy
}

func buildDateRange(from, to string) map[string]string {
	if from == "" && to == "" {
		return nil
	}
	dateRange := map[string]string{}
	if from != "" {
		dateRange["from"] = from
	}
	if to != "" {
		dateRange["to"] = to
	}
	return dateRange
}

func buildName(first, last string) map[string]string {
	if first == "" && last == "" {
		return nil
	}
	name := map[string]string{}
	if first != "" {
		name["First"] = first
	}
	if last != "" {
		name["Last"] = last
	}
	return name
}

// dateOnly strips the time component from the provider's "date time" fields.
func dateOnly(value string) string {
	if idx := strings.IndexByte(value, ' '); idx != -1 {
		return value[:idx]
	}
	return value
}
