// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package bootstrap

import (
	"github.com/mirvosit/mc-control-bot/internal/config"
	"github.com/mirvosit/mc-control-bot/pkg/controlloop"
	"github.com/sirupsen/logrus"
)

// InitControlLoop creates the periodic control loop.
func InitControlLoop(cfg *config.Config, deps controlloop.Dependencies) *controlloop.Loop {
	loop := controlloop.New(deps, controlloop.Config{Interval: cfg.PollInterval})
	logrus.Infof("initialized control loop (interval %v, idle threshold %v)",
		cfg.PollInterval, deps.Session.Idle().Threshold())
	return loop
}
