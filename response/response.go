//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

// Package response defines the single result shape shared by every travel tool.
// A tool call always yields a Response with one text content block; validation
// failures, transport failures, provider errors and mapping panics are all
// rendered into the text so the calling agent never observes a Go error.
package response

import (
	"context"
	"fmt"
)

// ContentBlock is one typed block of tool output.
type ContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Response is the externally visible result of every tool call.
type Response struct {
	Content []ContentBlock `json:"content"`
}

// Text builds a Response holding a single text block.
func Text(text string) Response {
	return Response{
		Content: []ContentBlock{
			{Type: "text", Text: text},
		},
	}
}

// Textf builds a Response holding a single formatted text block.
func Textf(format string, args ...any) Response {
	return Text(fmt.Sprintf(format, args...))
}

// Guard wraps a tool handler so that a panic during request mapping is caught
// and rendered as an internal-error text block. The returned function never
// returns a non-nil error.
func Guard[I any](fn func(context.Context, I) Response) func(context.Context, I) (Response, error) {
	return func(ctx context.Context, in I) (out Response, err error) {
		defer func() {
			if r := recover(); r != nil {
				out = Textf("internal error while handling the request: %v", r)
				err = nil
			}
		}()
		return fn(ctx, in), nil
	}
}
