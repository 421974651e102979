//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

package dida

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookingStatus_String(t *testing.T) {
	tests := []struct {
		status BookingStatus
		want   string
	}{
		{StatusPreBook, "PreBook"},
		{StatusConfirmed, "Confirmed"},
		{StatusCanceled, "Canceled"},
		{StatusFailed, "Failed"},
		{StatusPending, "Pending"},
		{StatusOnRequest, "OnRequest"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.status.String())
	}
}

func TestBookingStatus_StringUnknown(t *testing.T) {
	assert.Equal(t, "unknown status(1)", BookingStatus(1).String())
	assert.Equal(t, "unknown status(99)", BookingStatus(99).String())
	assert.Equal(t, "unknown status(-1)", BookingStatus(-1).String())
}
