// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package builtin

import (
	"context"

	"github.com/mirvosit/mc-control-bot/pkg/command"
	"github.com/mirvosit/mc-control-bot/pkg/power"
)

// PowerCommand sends one power signal and acknowledges the outcome.
type PowerCommand struct {
	signal power.Signal
	deps   *Dependencies
}

// NewPowerCommand creates the command for signal.
func NewPowerCommand(signal power.Signal, deps *Dependencies) *PowerCommand {
	return &PowerCommand{signal: signal, deps: deps}
}

// ID returns the signal name, which is also its action identifier.
func (c *PowerCommand) ID() string {
	return string(c.signal)
}

// Name returns the command name.
func (c *PowerCommand) Name() string {
	return "Power " + string(c.signal)
}

// Execute sends the signal. A rejected signal is not an error; the
// acknowledgement reports it.
func (c *PowerCommand) Execute(ctx context.Context, req command.Request) error {
	ok := c.deps.Power.SendPower(ctx, c.signal)
	return c.deps.Notifier.Notify(ctx, req.ChatID, c.deps.Renderer.PowerAck(c.signal, ok))
}
