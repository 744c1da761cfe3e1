// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package main

import (
	"context"
	"os"

	"github.com/mirvosit/mc-control-bot/internal/app"
	"github.com/mirvosit/mc-control-bot/internal/config"
	"github.com/sirupsen/logrus"
)

func main() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.Infof("starting mc control bot..")

	cfg, err := config.Load()
	if err != nil {
		logrus.Errorf("failed to load configuration: %v", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		logrus.Errorf("invalid configuration: %v", err)
		os.Exit(1)
	}

	configureLogging(cfg)

	ctx := context.Background()

	application, err := app.New(ctx, cfg)
	if err != nil {
		logrus.Errorf("failed to initialize application: %v", err)
		os.Exit(1)
	}

	if err := application.Run(ctx); err != nil {
		logrus.Errorf("application error: %v", err)
		os.Exit(1)
	}
}

func configureLogging(cfg *config.Config) {
	if cfg.LogFormat == "text" {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}
