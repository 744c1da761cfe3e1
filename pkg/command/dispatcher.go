// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package command

import (
	"context"
	"time"

	"github.com/mirvosit/mc-control-bot/pkg/chat"
	"github.com/mirvosit/mc-control-bot/pkg/common"
	"github.com/mirvosit/mc-control-bot/pkg/metrics"
	"github.com/sirupsen/logrus"
)

// Opener opens the live display in a chat and brings it up to date.
type Opener interface {
	Open(ctx context.Context, chatID int64) error
}

// DispatcherConfig configures the gates in front of every command.
type DispatcherConfig struct {
	// Owners is the static allow-list of caller identities.
	Owners   []int64
	Cooldown time.Duration
	// Now is the limiter clock; defaults to time.Now.
	Now func() time.Time
}

// Dispatcher gates inbound events and routes actions to commands.
// Events from unknown callers are dropped without any response.
type Dispatcher struct {
	registry *Registry
	opener   Opener
	owners   map[int64]struct{}
	limiter  *Limiter
}

// NewDispatcher creates a dispatcher over registry. Start commands are
// handed to opener.
func NewDispatcher(registry *Registry, opener Opener, cfg DispatcherConfig) *Dispatcher {
	owners := make(map[int64]struct{}, len(cfg.Owners))
	for _, id := range cfg.Owners {
		owners[id] = struct{}{}
	}
	return &Dispatcher{
		registry: registry,
		opener:   opener,
		owners:   owners,
		limiter:  NewLimiter(cfg.Cooldown, cfg.Now),
	}
}

// Authorized reports whether caller is on the allow-list.
func (d *Dispatcher) Authorized(caller int64) bool {
	_, ok := d.owners[caller]
	return ok
}

// HandleEvent implements chat.Handler.
func (d *Dispatcher) HandleEvent(ctx context.Context, ev chat.Event) {
	if !d.Authorized(ev.CallerID) {
		metrics.CommandsTotal.WithLabelValues(actionLabel(ev), "unauthorized").Inc()
		return
	}

	switch ev.Kind {
	case chat.EventStart:
		d.open(ctx, ev)
	case chat.EventAction:
		d.dispatch(ctx, ev)
	}
}

func (d *Dispatcher) open(ctx context.Context, ev chat.Event) {
	scope := common.NewScope(ctx, "command.open")
	defer scope.Finish()
	scope.SetAttributes("caller", ev.CallerID)

	if err := d.opener.Open(scope.Ctx, ev.ChatID); err != nil {
		scope.TraceError(err)
		scope.Log.WithField("caller", ev.CallerID).Errorf("failed to open live display: %v", err)
		metrics.CommandsTotal.WithLabelValues("open", "failed").Inc()
		return
	}
	metrics.CommandsTotal.WithLabelValues("open", "dispatched").Inc()
}

func (d *Dispatcher) dispatch(ctx context.Context, ev chat.Event) {
	if !d.limiter.Allow(ev.CallerID) {
		metrics.CommandsTotal.WithLabelValues(d.label(ev.Action), "rate_limited").Inc()
		return
	}

	ev.Acknowledge(ctx)

	cmd := d.registry.Get(ev.Action)
	if cmd == nil {
		metrics.CommandsTotal.WithLabelValues("unknown", "unknown").Inc()
		return
	}

	scope := common.NewScope(ctx, "command."+cmd.ID())
	defer scope.Finish()
	scope.SetAttributes("caller", ev.CallerID)
	scope.SetAttributes("action", ev.Action)

	log := scope.Log.WithFields(logrus.Fields{"caller": ev.CallerID, "action": ev.Action})
	log.Infof("executing command %s", cmd.Name())

	req := Request{CallerID: ev.CallerID, ChatID: ev.ChatID, Action: ev.Action}
	if err := cmd.Execute(scope.Ctx, req); err != nil {
		scope.TraceError(err)
		log.Errorf("command %s failed: %v", cmd.ID(), err)
		metrics.CommandsTotal.WithLabelValues(cmd.ID(), "failed").Inc()
		return
	}
	metrics.CommandsTotal.WithLabelValues(cmd.ID(), "dispatched").Inc()
}

// label bounds metric cardinality to registered actions.
func (d *Dispatcher) label(action string) string {
	if d.registry.Get(action) == nil {
		return "unknown"
	}
	return action
}

func actionLabel(ev chat.Event) string {
	if ev.Kind == chat.EventStart {
		return "open"
	}
	return "any"
}
