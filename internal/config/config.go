// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package config

import "time"

// Config holds all application configuration loaded from environment variables.
// This struct uses github.com/caarlos0/env for automatic environment variable parsing.
type Config struct {
	// ============================================================
	// Chat transport (REQUIRED)
	// ============================================================
	BotToken string  `env:"BOT_TOKEN,required,notEmpty"`
	OwnerIDs []int64 `env:"OWNER_IDS,required,notEmpty" envSeparator:","`

	// ============================================================
	// Hosting control API (REQUIRED)
	// ============================================================
	PlayAPIKey  string `env:"PLAY_API_KEY,required,notEmpty"`
	ServerID    string `env:"SERVER_ID,required,notEmpty"`
	PlayAPIBase string `env:"PLAY_API_BASE" envDefault:"https://panel.play.hosting/api/client"`

	// ============================================================
	// Game server
	// ============================================================
	MCHost      string `env:"MC_HOST" envDefault:"mirvosit.play.hosting"`
	MCQueryPort int    `env:"MC_QUERY_PORT" envDefault:"0"`

	// ============================================================
	// Control loop and dispatcher
	// ============================================================
	PollInterval   time.Duration `env:"POLL_INTERVAL" envDefault:"10s"`
	IdleThreshold  time.Duration `env:"IDLE_THRESHOLD" envDefault:"15m"`
	NotifyTTL      time.Duration `env:"NOTIFY_TTL" envDefault:"30s"`
	ClickCooldown  time.Duration `env:"CLICK_COOLDOWN" envDefault:"2s"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"10s"`
	LogCount       int           `env:"LOG_COUNT" envDefault:"10"`
	AutoUpdate     bool          `env:"AUTO_UPDATE" envDefault:"true"`
	PanelTextsPath string        `env:"PANEL_TEXTS_PATH"`

	// ============================================================
	// Server configuration
	// ============================================================
	GRPCPort    int    `env:"GRPC_PORT" envDefault:"6565"`
	MetricsPort int    `env:"METRICS_PORT" envDefault:"8080"`
	Environment string `env:"ENVIRONMENT" envDefault:"dev"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"mc-control-bot"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat   string `env:"LOG_FORMAT" envDefault:"json"`

	// ============================================================
	// Telemetry configuration
	// ============================================================
	OtelEnabled    bool   `env:"OTEL_ENABLED" envDefault:"true"`
	ZipkinEndpoint string `env:"OTEL_EXPORTER_ZIPKIN_ENDPOINT"`
}
