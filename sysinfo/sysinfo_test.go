//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

package sysinfo

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trpc.group/trpc-go/trpc-agent-go/tool/travel/response"
)

func callEnvironment(t *testing.T, args string) environmentInfo {
	t.Helper()
	result, err := createEnvironmentTool().Call(context.Background(), []byte(args))
	require.NoError(t, err)
	resp, ok := result.(response.Response)
	require.True(t, ok, "expected response.Response, got %T", result)
	require.Len(t, resp.Content, 1)

	text := resp.Content[0].Text
	require.True(t, strings.HasPrefix(text, "Environment information collected:\n"), text)
	payload := strings.TrimPrefix(text, "Environment information collected:\n")

	var env environmentInfo
	require.NoError(t, json.Unmarshal([]byte(payload), &env))
	return env
}

func TestEnvironmentTool_DefaultsIncludeEverything(t *testing.T) {
	env := callEnvironment(t, `{}`)

	assert.NotEmpty(t, env.Datetime.Local)
	assert.True(t, strings.HasSuffix(env.Datetime.UTC, " UTC"))
	assert.NotZero(t, env.Datetime.Timestamp)
	assert.NotNil(t, env.System)
	assert.NotNil(t, env.Process)
	require.NotNil(t, env.Runtime)
	assert.NotEmpty(t, env.Runtime.GoVersion)
	assert.Greater(t, env.Runtime.NumCPU, 0)
}

func TestEnvironmentTool_SectionsCanBeDisabled(t *testing.T) {
	env := callEnvironment(t, `{"include_system_info":false,"include_process_info":false,"include_runtime_info":false}`)

	assert.Nil(t, env.System)
	assert.Nil(t, env.Process)
	assert.Nil(t, env.Runtime)
	// the datetime section is always present
	assert.NotEmpty(t, env.Datetime.Local)
}

func TestEnvironmentTool_UTCTimezone(t *testing.T) {
	env := callEnvironment(t, `{"timezone":"UTC","include_system_info":false,"include_process_info":false,"include_runtime_info":false}`)

	assert.Equal(t, "UTC", env.Datetime.Timezone)
	// local rendering matches the UTC rendering when the zone is UTC
	assert.Equal(t, env.Datetime.UTC, env.Datetime.Local+" UTC")
}

func TestEnvironmentTool_UnknownTimezoneFallsBack(t *testing.T) {
	env := callEnvironment(t, `{"timezone":"Not/AZone","include_system_info":false,"include_process_info":false,"include_runtime_info":false}`)
	assert.NotEmpty(t, env.Datetime.Timezone)
	assert.NotEqual(t, "Not/AZone", env.Datetime.Timezone)
}

func TestNewToolSet(t *testing.T) {
	toolSet, err := NewToolSet()
	require.NoError(t, err)
	assert.Equal(t, "sysinfo", toolSet.Name())
	assert.Len(t, toolSet.Tools(context.Background()), 1)
	require.NoError(t, toolSet.Close())
}
