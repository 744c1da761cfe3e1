// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Load reads configuration from environment variables.
// It attempts to load from .env file first (for local development),
// then parses environment variables into the Config struct.
func Load() (*Config, error) {
	// In production the environment is injected directly.
	if err := godotenv.Load(); err != nil {
		logrus.Debugf("no .env file loaded: %v", err)
	} else {
		logrus.Infof("loaded environment variables from .env file")
	}

	return Parse()
}

// Parse reads the configuration from the process environment only.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config from environment: %w", err)
	}

	return cfg, nil
}

// Validate performs custom validation on the configuration.
func (c *Config) Validate() error {
	if len(c.OwnerIDs) == 0 {
		return fmt.Errorf("OWNER_IDS must list at least one caller")
	}

	if c.GRPCPort < 1 || c.GRPCPort > 65535 {
		return fmt.Errorf("invalid GRPC_PORT: %d (must be 1-65535)", c.GRPCPort)
	}

	if c.MetricsPort < 1 || c.MetricsPort > 65535 {
		return fmt.Errorf("invalid METRICS_PORT: %d (must be 1-65535)", c.MetricsPort)
	}

	if c.MCQueryPort < 0 || c.MCQueryPort > 65535 {
		return fmt.Errorf("invalid MC_QUERY_PORT: %d (must be 0-65535)", c.MCQueryPort)
	}

	durations := []struct {
		name  string
		value time.Duration
	}{
		{"POLL_INTERVAL", c.PollInterval},
		{"IDLE_THRESHOLD", c.IdleThreshold},
		{"NOTIFY_TTL", c.NotifyTTL},
		{"CLICK_COOLDOWN", c.ClickCooldown},
		{"REQUEST_TIMEOUT", c.RequestTimeout},
	}
	for _, d := range durations {
		if d.value <= 0 {
			return fmt.Errorf("invalid %s: %v (must be positive)", d.name, d.value)
		}
	}

	if c.LogCount < 1 {
		return fmt.Errorf("invalid LOG_COUNT: %d (must be positive)", c.LogCount)
	}

	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	if c.LogFormat != "json" && c.LogFormat != "text" {
		return fmt.Errorf("invalid LOG_FORMAT: %q (must be json or text)", c.LogFormat)
	}

	return nil
}
