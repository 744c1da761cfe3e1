// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package builtin

import (
	"context"

	"github.com/mirvosit/mc-control-bot/pkg/command"
	"github.com/mirvosit/mc-control-bot/pkg/render"
	"github.com/sirupsen/logrus"
)

// PlayersCommand lists connected players.
type PlayersCommand struct {
	deps *Dependencies
}

// NewPlayersCommand creates the players command.
func NewPlayersCommand(deps *Dependencies) *PlayersCommand {
	return &PlayersCommand{deps: deps}
}

func (c *PlayersCommand) ID() string   { return render.ActionPlayers }
func (c *PlayersCommand) Name() string { return "Players" }

// Execute queries the player list. An unavailable query is reported to
// the operator as such, distinct from an empty server.
func (c *PlayersCommand) Execute(ctx context.Context, req command.Request) error {
	names, err := c.deps.Prober.Players(ctx)
	if err != nil {
		logrus.Debugf("player query: %v", err)
	}
	return c.deps.Notifier.Notify(ctx, req.ChatID, c.deps.Renderer.Players(names, err))
}

// LogCommand shows the most recent event log entries.
type LogCommand struct {
	deps *Dependencies
}

// NewLogCommand creates the log command.
func NewLogCommand(deps *Dependencies) *LogCommand {
	return &LogCommand{deps: deps}
}

func (c *LogCommand) ID() string   { return render.ActionLog }
func (c *LogCommand) Name() string { return "Event log" }

func (c *LogCommand) Execute(ctx context.Context, req command.Request) error {
	entries := c.deps.Events.Recent(c.deps.LogCount)
	return c.deps.Notifier.Notify(ctx, req.ChatID, c.deps.Renderer.Log(entries))
}

// AddressCommand shows the game host address.
type AddressCommand struct {
	deps *Dependencies
}

// NewAddressCommand creates the address command.
func NewAddressCommand(deps *Dependencies) *AddressCommand {
	return &AddressCommand{deps: deps}
}

func (c *AddressCommand) ID() string   { return render.ActionIP }
func (c *AddressCommand) Name() string { return "Server address" }

func (c *AddressCommand) Execute(ctx context.Context, req command.Request) error {
	return c.deps.Notifier.Notify(ctx, req.ChatID, c.deps.Renderer.Address())
}
