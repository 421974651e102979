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

// ===== Pre-cancellation =====

type preCancelRequest struct {
	BookingID string `json:"booking_id" jsonschema:"description=Platform booking id"`
}

type preCancelSuccess struct {
	BookingID string      `json:"BookingID"`
	ConfirmID string      `json:"ConfirmID"`
	Currency  string      `json:"Currency"`
	Amount    json.Number `json:"Amount"`
}

func createPreCancelTool(client *dida.Client) tool.CallableTool {
	handler := func(ctx context.Context, req preCancelRequest) response.Response {
		if blank(req.BookingID) {
			return response.Text("error: must provide booking id")
		}
		log.Debugf("hotelbooking: pre-cancel for booking %s", req.BookingID)

		body := map[string]any{
			"Header":    client.Header(),
			"BookingID": req.BookingID,
		}

		env, err := client.PostBooking(ctx, "/api/booking/HotelBookingCancel", body)
		if err != nil {
			log.Warnf("hotelbooking: pre-cancel request failed: %v", err)
			return response.Text(connectivityFailureText)
		}
		if env.Error != nil {
			text := fmt.Sprintf("pre-cancellation failed: [%s] %s", env.Error.Code, env.Error.Message)
			if env.Error.BookingID != "" {
				text += fmt.Sprintf("\nrelated booking id: %s", env.Error.BookingID)
			}
			return response.Text(text)
		}
		if env.Success == nil {
			return response.Text(unexpectedShapeText)
		}

		var success preCancelSuccess
		if err := json.Unmarshal(env.Success, &success); err != nil {
			return response.Text(unexpectedShapeText)
		}

		var sb strings.Builder
		sb.WriteString("Pre-cancellation succeeded!\n")
		fmt.Fprintf(&sb, "booking id: %s\n", success.BookingID)
		fmt.Fprintf(&sb, "cancellation confirm id: %s\n", success.ConfirmID)
		fmt.Fprintf(&sb, "cancellation penalty: %s %s\n\n", success.Amount, success.Currency)
		sb.WriteString("Important:\n")
		sb.WriteString("1. this is a pre-cancellation, the order is NOT canceled yet\n")
		sb.WriteString("2. the confirm id is only valid for 10 minutes\n")
		sb.WriteString("3. to actually cancel, call booking_cancel_confirm with the confirm id within 10 minutes\n")
		sb.WriteString("4. after 10 minutes, call this pre-cancellation again to obtain a fresh confirm id")
		return response.Text(sb.String())
	}

	return function.NewFunctionTool(
		response.Guard(handler),
		function.WithName("booking_pre_cancel"),
		function.WithDescription("Pre-cancel an order: returns the cancellation penalty and a confirm id. "+
			"This alone does not cancel the order; booking_cancel_confirm must be called with the confirm "+
			"id within its 10-minute validity window."),
	)
}

// ===== Cancellation confirmation =====

type cancelConfirmRequest struct {
	BookingID   string `json:"booking_id" jsonschema:"description=Platform booking id"`
	ConfirmID   string `json:"confirm_id" jsonschema:"description=Confirm id from pre-cancellation, valid for 10 minutes"`
	Description string `json:"description,omitempty" jsonschema:"description=Optional customer note, e.g. the cancellation reason"`
}

// cancelHints maps substrings of the provider's free-text error message to
// remediation hints. Best effort only: the provider exposes no structured
// sub-error codes, so substring matching is all there is.
var cancelHints = []struct {
	needles []string
	hint    string
}{
	{
		needles: []string{"expired"},
		hint: "Possible resolution:\n" +
			"1. the confirm id may have expired (10-minute validity)\n" +
			"2. call booking_pre_cancel again to obtain a fresh confirm id\n" +
			"3. double-check the booking id and confirm id",
	},
	{
		needles: []string{"invalid"},
		hint: "Possible resolution:\n" +
			"1. the confirm id may have expired (10-minute validity)\n" +
			"2. call booking_pre_cancel again to obtain a fresh confirm id\n" +
			"3. double-check the booking id and confirm id",
	},
	{
		needles: []string{"already", "cancel"},
		hint:    "The order may already be canceled; verify its status with booking_search.",
	},
}

func cancelHint(message string) string {
	lowered := strings.ToLower(message)
	for _, rule := range cancelHints {
		matched := true
		for _, needle := range rule.needles {
			if !strings.Contains(lowered, needle) {
				matched = false
				break
			}
		}
		if matched {
			return rule.hint
		}
	}
	return ""
}

func createCancelConfirmTool(client *dida.Client) tool.CallableTool {
	handler := func(ctx context.Context, req cancelConfirmRequest) response.Response {
		if blank(req.BookingID) {
			return response.Text("error: must provide booking id")
		}
		if blank(req.ConfirmID) {
			return response.Text("error: must provide cancellation confirm id")
		}
		log.Debugf("hotelbooking: cancel confirm for booking %s", req.BookingID)

		body := map[string]any{
			"Header":    client.Header(),
			"BookingID": req.BookingID,
			"ConfirmID": req.ConfirmID,
		}
		if req.Description != "" {
			body["Description"] = req.Description
		}

		env, err := client.PostBooking(ctx, "/api/booking/HotelBookingCancelConfirm", body)
		if err != nil {
			log.Warnf("hotelbooking: cancel confirm request failed: %v", err)
			return response.Text(connectivityFailureText)
		}
		if env.Error != nil {
			text := fmt.Sprintf("order cancellation failed: [%s] %s\n", env.Error.Code, env.Error.Message)
			if hint := cancelHint(env.Error.Message); hint != "" {
				text += "\n" + hint
			}
			return response.Text(text)
		}
		if env.Success == nil {
			return response.Text(unexpectedShapeText)
		}

		var sb strings.Builder
		sb.WriteString("Order canceled!\n")
		fmt.Fprintf(&sb, "booking id: %s\n", req.BookingID)
		fmt.Fprintf(&sb, "confirm id: %s\n", req.ConfirmID)
		if req.Description != "" {
			fmt.Fprintf(&sb, "cancellation note: %s\n", req.Description)
		}
		sb.WriteString("\nThe order has been canceled; fees are settled per the cancellation policy.")
		return response.Text(sb.String())
	}

	return function.NewFunctionTool(
		response.Guard(handler),
		function.WithName("booking_cancel_confirm"),
		function.WithDescription("Finalize an order cancellation using the confirm id from pre-cancellation. "+
			"This call actually cancels the order."),
	)
}
