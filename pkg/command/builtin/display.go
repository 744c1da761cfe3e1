// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package builtin

import (
	"context"
	"fmt"

	"github.com/mirvosit/mc-control-bot/pkg/command"
	"github.com/mirvosit/mc-control-bot/pkg/render"
	"github.com/sirupsen/logrus"
)

// RefreshCommand runs one probe and display update immediately. If the
// live display was lost it is recreated in the caller's chat.
type RefreshCommand struct {
	deps *Dependencies
}

// NewRefreshCommand creates the refresh command.
func NewRefreshCommand(deps *Dependencies) *RefreshCommand {
	return &RefreshCommand{deps: deps}
}

func (c *RefreshCommand) ID() string   { return render.ActionRefresh }
func (c *RefreshCommand) Name() string { return "Refresh" }

func (c *RefreshCommand) Execute(ctx context.Context, req command.Request) error {
	return c.deps.Display.Open(ctx, req.ChatID)
}

// AutoUpdateCommand toggles periodic display updates. It does not refresh
// the display itself.
type AutoUpdateCommand struct {
	deps *Dependencies
}

// NewAutoUpdateCommand creates the auto-update toggle.
func NewAutoUpdateCommand(deps *Dependencies) *AutoUpdateCommand {
	return &AutoUpdateCommand{deps: deps}
}

func (c *AutoUpdateCommand) ID() string   { return render.ActionAuto }
func (c *AutoUpdateCommand) Name() string { return "Toggle auto-update" }

func (c *AutoUpdateCommand) Execute(ctx context.Context, req command.Request) error {
	enabled := c.deps.Session.ToggleAutoUpdate()

	c.deps.Events.Append(fmt.Sprintf("auto-update %s", onOff(enabled)))
	logrus.WithField("caller", req.CallerID).Infof("auto-update %s", onOff(enabled))

	return c.deps.Notifier.Notify(ctx, req.ChatID, c.deps.Renderer.AutoUpdate(enabled))
}

func onOff(enabled bool) string {
	if enabled {
		return "on"
	}
	return "off"
}
