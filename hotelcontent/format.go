//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

package hotelcontent

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

func urlValues(pairs ...string) url.Values {
	values := url.Values{}
	for i := 0; i+1 < len(pairs); i += 2 {
		values.Set(pairs[i], pairs[i+1])
	}
	return values
}

func decode(raw json.RawMessage, out any) error {
	return json.Unmarshal(raw, out)
}

func defaultString(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

func formatIndexedEntry(index int, entry codeNameEntry) string {
	return fmt.Sprintf("%d: %s, %s\n", index, entry.Code, entry.Name)
}
