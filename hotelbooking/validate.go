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
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

func validDate(value string) bool {
	_, err := time.Parse(dateLayout, value)
	return err == nil
}

// validateStayDates checks the shared date rules of the booking chain:
// both dates parse as YYYY-MM-DD and check-in strictly precedes check-out.
// The comparison is lexicographic, which is safe for fixed-width ISO dates.
// Returns an error text, or "" when the dates are acceptable.
func validateStayDates(checkIn, checkOut string) string {
	if !validDate(checkIn) || !validDate(checkOut) {
		return "error: invalid date format, please use YYYY-MM-DD"
	}
	if checkIn >= checkOut {
		return "error: check-in date must be before check-out date"
	}
	return ""
}

// validateStay checks the rules common to price confirm and booking
// confirm: stay dates, a positive room count and a non-empty guest list.
func validateStay(checkIn, checkOut string, numOfRooms int, guestList []RoomGuests) string {
	if text := validateStayDates(checkIn, checkOut); text != "" {
		return text
	}
	if numOfRooms <= 0 {
		return "error: num_of_rooms must be greater than 0"
	}
	if len(guestList) == 0 {
		return "error: guest_list must not be empty"
	}
	return ""
}

func validateContact(contact Contact) string {
	if contact.Name == nil || strings.TrimSpace(contact.Email) == "" || strings.TrimSpace(contact.Phone) == "" {
		return "error: contact must include name, email and phone"
	}
	return ""
}

func blank(value string) bool {
	return strings.TrimSpace(value) == ""
}
