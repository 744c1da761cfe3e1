// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package bootstrap

import (
	"fmt"

	"github.com/mirvosit/mc-control-bot/internal/config"
	"github.com/mirvosit/mc-control-bot/pkg/command"
	"github.com/mirvosit/mc-control-bot/pkg/command/builtin"
	"github.com/sirupsen/logrus"
)

// InitDispatcher registers the built-in commands and creates the
// dispatcher that gates them.
//
// To add a command, implement command.Command in pkg/command/builtin and
// add it to builtin.RegisterCommands; the renderer's keyboard decides
// which actions the operator can press.
func InitDispatcher(cfg *config.Config, deps *builtin.Dependencies) (*command.Dispatcher, *command.Registry, error) {
	deps.LogCount = cfg.LogCount

	registry := command.NewRegistry()
	if err := builtin.RegisterCommands(registry, deps); err != nil {
		return nil, nil, fmt.Errorf("failed to register commands: %w", err)
	}
	logrus.Infof("registered %d commands: %v", registry.Count(), registry.Actions())

	dispatcher := command.NewDispatcher(registry, deps.Display, command.DispatcherConfig{
		Owners:   cfg.OwnerIDs,
		Cooldown: cfg.ClickCooldown,
	})
	logrus.Infof("initialized command dispatcher for %d owners", len(cfg.OwnerIDs))

	return dispatcher, registry, nil
}
