//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

package dida

import "fmt"

// BookingStatus is the order lifecycle code the booking API returns. The
// provider owns the state machine; this package only labels the codes.
type BookingStatus int

const (
	// StatusPreBook means the order is created but not yet confirmed.
	StatusPreBook BookingStatus = 0
	// StatusConfirmed means the booking succeeded.
	StatusConfirmed BookingStatus = 2
	// StatusCanceled means the order has been canceled.
	StatusCanceled BookingStatus = 3
	// StatusFailed means the booking failed.
	StatusFailed BookingStatus = 4
	// StatusPending means the order is being processed.
	StatusPending BookingStatus = 5
	// StatusOnRequest means the order is waiting on the hotel's response.
	StatusOnRequest BookingStatus = 6
)

var statusLabels = map[BookingStatus]string{
	StatusPreBook:   "PreBook",
	StatusConfirmed: "Confirmed",
	StatusCanceled:  "Canceled",
	StatusFailed:    "Failed",
	StatusPending:   "Pending",
	StatusOnRequest: "OnRequest",
}

// String returns the fixed label for a known status code and
// "unknown status(N)" for anything else.
func (s BookingStatus) String() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return fmt.Sprintf("unknown status(%d)", int(s))
}
