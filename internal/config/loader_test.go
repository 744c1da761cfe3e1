// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package config

import (
	"strings"
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("BOT_TOKEN", "123:abc")
	t.Setenv("OWNER_IDS", "1001,1002")
	t.Setenv("PLAY_API_KEY", "ptlc_key")
	t.Setenv("SERVER_ID", "a1b2c3")
}

func TestParse_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Parse()
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if len(cfg.OwnerIDs) != 2 || cfg.OwnerIDs[0] != 1001 || cfg.OwnerIDs[1] != 1002 {
		t.Errorf("OwnerIDs = %v", cfg.OwnerIDs)
	}
	if cfg.PlayAPIBase != "https://panel.play.hosting/api/client" {
		t.Errorf("PlayAPIBase = %s", cfg.PlayAPIBase)
	}
	if cfg.PollInterval != 10*time.Second || cfg.IdleThreshold != 15*time.Minute ||
		cfg.NotifyTTL != 30*time.Second || cfg.ClickCooldown != 2*time.Second ||
		cfg.RequestTimeout != 10*time.Second {
		t.Errorf("unexpected duration defaults: %+v", cfg)
	}
	if cfg.LogCount != 10 || !cfg.AutoUpdate {
		t.Errorf("LogCount = %d, AutoUpdate = %v", cfg.LogCount, cfg.AutoUpdate)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestParse_MissingRequired(t *testing.T) {
	tests := []string{"BOT_TOKEN", "OWNER_IDS", "PLAY_API_KEY", "SERVER_ID"}

	for _, name := range tests {
		t.Run(name, func(t *testing.T) {
			setRequired(t)
			t.Setenv(name, "")

			if _, err := Parse(); err == nil {
				t.Errorf("Parse() without %s should fail", name)
			}
		})
	}
}

func TestParse_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("IDLE_THRESHOLD", "5m")
	t.Setenv("AUTO_UPDATE", "false")
	t.Setenv("MC_HOST", "localhost:25566")

	cfg, err := Parse()
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cfg.IdleThreshold != 5*time.Minute || cfg.AutoUpdate || cfg.MCHost != "localhost:25566" {
		t.Errorf("overrides not applied: %+v", cfg)
	}
}

func TestParse_InvalidOwner(t *testing.T) {
	setRequired(t)
	t.Setenv("OWNER_IDS", "alice")

	if _, err := Parse(); err == nil {
		t.Error("Parse() should reject non-numeric owner IDs")
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			OwnerIDs:       []int64{1},
			GRPCPort:       6565,
			MetricsPort:    8080,
			PollInterval:   10 * time.Second,
			IdleThreshold:  15 * time.Minute,
			NotifyTTL:      30 * time.Second,
			ClickCooldown:  2 * time.Second,
			RequestTimeout: 10 * time.Second,
			LogCount:       10,
			LogLevel:       "info",
			LogFormat:      "json",
		}
	}

	tests := []struct {
		name      string
		mutate    func(c *Config)
		expectErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "no owners", mutate: func(c *Config) { c.OwnerIDs = nil }, expectErr: "OWNER_IDS"},
		{name: "bad grpc port", mutate: func(c *Config) { c.GRPCPort = 0 }, expectErr: "GRPC_PORT"},
		{name: "bad metrics port", mutate: func(c *Config) { c.MetricsPort = 70000 }, expectErr: "METRICS_PORT"},
		{name: "bad query port", mutate: func(c *Config) { c.MCQueryPort = -1 }, expectErr: "MC_QUERY_PORT"},
		{name: "zero poll interval", mutate: func(c *Config) { c.PollInterval = 0 }, expectErr: "POLL_INTERVAL"},
		{name: "negative cooldown", mutate: func(c *Config) { c.ClickCooldown = -time.Second }, expectErr: "CLICK_COOLDOWN"},
		{name: "zero log count", mutate: func(c *Config) { c.LogCount = 0 }, expectErr: "LOG_COUNT"},
		{name: "bad log level", mutate: func(c *Config) { c.LogLevel = "loud" }, expectErr: "LOG_LEVEL"},
		{name: "bad log format", mutate: func(c *Config) { c.LogFormat = "xml" }, expectErr: "LOG_FORMAT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.expectErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.expectErr) {
				t.Errorf("Validate() error = %v, expected mention of %s", err, tt.expectErr)
			}
		})
	}
}
