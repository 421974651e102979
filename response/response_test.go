//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

package response

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestText(t *testing.T) {
	resp := Text("hello")
	require.Len(t, resp.Content, 1)
	assert.Equal(t, "text", resp.Content[0].Type)
	assert.Equal(t, "hello", resp.Content[0].Text)
}

func TestTextf(t *testing.T) {
	resp := Textf("count: %d", 42)
	require.Len(t, resp.Content, 1)
	assert.Equal(t, "count: 42", resp.Content[0].Text)
}

func TestGuard_PassesThrough(t *testing.T) {
	fn := Guard(func(_ context.Context, in string) Response {
		return Text("got " + in)
	})

	resp, err := fn(context.Background(), "input")
	require.NoError(t, err)
	assert.Equal(t, "got input", resp.Content[0].Text)
}

func TestGuard_RecoversPanic(t *testing.T) {
	fn := Guard(func(_ context.Context, _ string) Response {
		panic("boom")
	})

	resp, err := fn(context.Background(), "input")
	require.NoError(t, err)
	require.Len(t, resp.Content, 1)
	assert.Contains(t, resp.Content[0].Text, "internal error")
	assert.Contains(t, resp.Content[0].Text, "boom")
}
