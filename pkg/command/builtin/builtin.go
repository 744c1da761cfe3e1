// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package builtin

import (
	"context"
	"fmt"

	"github.com/mirvosit/mc-control-bot/pkg/chat"
	"github.com/mirvosit/mc-control-bot/pkg/command"
	"github.com/mirvosit/mc-control-bot/pkg/eventlog"
	"github.com/mirvosit/mc-control-bot/pkg/power"
	"github.com/mirvosit/mc-control-bot/pkg/render"
	"github.com/mirvosit/mc-control-bot/pkg/state"
)

// DefaultLogCount is how many event log entries the log command shows.
const DefaultLogCount = 10

// StatusAlias is the legacy identifier of the refresh action.
const StatusAlias = "status"

// PowerController sends a power signal and reports whether it was accepted.
type PowerController interface {
	SendPower(ctx context.Context, signal power.Signal) bool
}

// PlayerProber lists connected players.
type PlayerProber interface {
	Players(ctx context.Context) ([]string, error)
}

// Notifier sends short-lived notifications.
type Notifier interface {
	Notify(ctx context.Context, chatID int64, msg chat.Message) error
}

// Dependencies holds dependencies needed by built-in commands.
type Dependencies struct {
	Power    PowerController
	Prober   PlayerProber
	Notifier Notifier
	Renderer *render.Renderer
	Events   *eventlog.Log
	Session  *state.Session
	Display  command.Opener
	LogCount int
}

// RegisterCommands registers every built-in command with registry.
func RegisterCommands(registry *command.Registry, deps *Dependencies) error {
	if deps.LogCount <= 0 {
		deps.LogCount = DefaultLogCount
	}

	commands := []command.Command{
		NewPowerCommand(power.SignalStart, deps),
		NewPowerCommand(power.SignalStop, deps),
		NewPowerCommand(power.SignalRestart, deps),
		NewPlayersCommand(deps),
		NewLogCommand(deps),
		NewAddressCommand(deps),
		NewRefreshCommand(deps),
		NewAutoUpdateCommand(deps),
	}
	for _, cmd := range commands {
		if err := registry.Register(cmd); err != nil {
			return fmt.Errorf("failed to register command %s: %w", cmd.ID(), err)
		}
	}

	return registry.Alias(StatusAlias, render.ActionRefresh)
}
