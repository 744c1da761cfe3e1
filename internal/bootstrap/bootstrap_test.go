// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package bootstrap

import (
	"context"
	"testing"
	"time"

	"github.com/mirvosit/mc-control-bot/internal/config"
	"github.com/mirvosit/mc-control-bot/pkg/chat"
	"github.com/mirvosit/mc-control-bot/pkg/command/builtin"
	"github.com/mirvosit/mc-control-bot/pkg/controlloop"
	"github.com/mirvosit/mc-control-bot/pkg/display"
	"github.com/mirvosit/mc-control-bot/pkg/eventlog"
	"github.com/mirvosit/mc-control-bot/pkg/mcstatus"
	"github.com/mirvosit/mc-control-bot/pkg/mock"
	"github.com/mirvosit/mc-control-bot/pkg/power"
	"github.com/mirvosit/mc-control-bot/pkg/render"
	"github.com/mirvosit/mc-control-bot/pkg/state"
)

func TestWiring_StartThenRefresh(t *testing.T) {
	cfg := &config.Config{
		OwnerIDs:      []int64{7},
		PollInterval:  10 * time.Second,
		ClickCooldown: 2 * time.Second,
		LogCount:      5,
	}

	transport := mock.NewTransport()
	prober := mock.NewProber(mcstatus.Snapshot{Online: true, PlayersOnline: 1, PlayersMax: 10})
	sender := mock.NewPowerSender()
	events := eventlog.New(0)
	session := state.NewSession(true, state.NewIdleTracker(time.Minute))
	renderer := render.NewRenderer(nil, "mc.example.org")
	controller := power.NewController(sender, events)

	loop := InitControlLoop(cfg, controlloop.Dependencies{
		Prober:   prober,
		Power:    controller,
		Panel:    sender,
		Session:  session,
		Display:  display.NewLive(transport, session, time.Second),
		Renderer: renderer,
		Events:   events,
	})

	deps := &builtin.Dependencies{
		Power:    controller,
		Prober:   prober,
		Notifier: chat.NewNotifier(transport, time.Hour, time.Second),
		Renderer: renderer,
		Events:   events,
		Session:  session,
		Display:  loop,
	}
	dispatcher, registry, err := InitDispatcher(cfg, deps)
	if err != nil {
		t.Fatalf("InitDispatcher() error = %v", err)
	}
	if deps.LogCount != 5 {
		t.Errorf("LogCount = %d, expected the configured 5", deps.LogCount)
	}
	if registry.Get("status") == nil {
		t.Error("status alias not registered")
	}

	dispatcher.HandleEvent(context.Background(), chat.NewStartEvent(7, 99))
	if len(transport.SentMessages()) != 1 || len(transport.EditCalls()) != 1 {
		t.Fatalf("start should create and refresh the display: sent=%d edits=%d",
			len(transport.SentMessages()), len(transport.EditCalls()))
	}

	dispatcher.HandleEvent(context.Background(), chat.NewActionEvent(7, 99, "refresh", nil))
	if len(transport.EditCalls()) != 2 {
		t.Errorf("refresh should edit the display again, edits=%d", len(transport.EditCalls()))
	}
	if len(transport.SentMessages()) != 1 {
		t.Error("refresh must not create a second display")
	}
}
