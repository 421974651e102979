//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

package dida

import "github.com/kelseyhightower/envconfig"

// Config holds the Dida credentials and base URLs. It is read once at
// construction time and never mutated afterwards.
type Config struct {
	ClientID   string `envconfig:"DIDA_CLIENT_ID" required:"true"`
	LicenseKey string `envconfig:"DIDA_LICENSE_KEY" required:"true"`
	ContentURL string `envconfig:"DIDA_CONTENT_URL" default:"https://static-api.didatravel.com"`
	BookingURL string `envconfig:"DIDA_BOOKING_URL" default:"https://api.didatravel.com"`
}

// ConfigFromEnv loads the configuration from process environment variables.
func ConfigFromEnv() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
