// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package controlloop

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mirvosit/mc-control-bot/pkg/common"
	"github.com/mirvosit/mc-control-bot/pkg/display"
	"github.com/mirvosit/mc-control-bot/pkg/eventlog"
	"github.com/mirvosit/mc-control-bot/pkg/mcstatus"
	"github.com/mirvosit/mc-control-bot/pkg/metrics"
	"github.com/mirvosit/mc-control-bot/pkg/power"
	"github.com/mirvosit/mc-control-bot/pkg/render"
	"github.com/mirvosit/mc-control-bot/pkg/state"
	"github.com/sirupsen/logrus"
)

// DefaultPollInterval is the time between scheduled cycles.
const DefaultPollInterval = 10 * time.Second

// Prober reads the live game server status. It never fails; an
// unreachable server is reported as offline.
type Prober interface {
	Status(ctx context.Context) mcstatus.Snapshot
}

// PowerController sends a power signal and reports whether it was accepted.
type PowerController interface {
	SendPower(ctx context.Context, signal power.Signal) bool
}

// PanelReader reads the hosting panel's view of the server state.
type PanelReader interface {
	CurrentState(ctx context.Context) (string, error)
}

// Dependencies holds the collaborators of the control loop.
type Dependencies struct {
	Prober Prober
	Power  PowerController
	// Panel is optional.
	Panel    PanelReader
	Session  *state.Session
	Display  *display.Live
	Renderer *render.Renderer
	Events   *eventlog.Log
}

// Config configures the loop schedule.
type Config struct {
	Interval time.Duration
	// Now is the tracker clock; defaults to time.Now.
	Now func() time.Time
}

// Loop periodically probes the server, tracks idleness, and keeps the
// live display up to date. Cycles never run concurrently.
type Loop struct {
	deps     Dependencies
	interval time.Duration
	now      func() time.Time

	cycle sync.Mutex
}

// New creates a control loop.
func New(deps Dependencies, cfg Config) *Loop {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultPollInterval
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Loop{deps: deps, interval: cfg.Interval, now: cfg.Now}
}

// Run drives scheduled cycles until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	logrus.Infof("control loop started, polling every %v", l.interval)
	for {
		select {
		case <-ctx.Done():
			logrus.Info("control loop stopped")
			return nil
		case <-ticker.C:
			l.Tick(ctx)
		}
	}
}

// Tick runs one scheduled cycle. It is skipped while auto-update is off
// or before a live display exists, and reports whether a cycle ran.
func (l *Loop) Tick(ctx context.Context) bool {
	if !l.deps.Session.AutoUpdate() || !l.deps.Display.Exists() {
		return false
	}
	l.RunCycle(ctx)
	return true
}

// RunCycle probes the server once, feeds the snapshot to the idle
// tracker, renders it, and refreshes the live display. It reports
// whether the display was updated. No step failure escapes the cycle.
func (l *Loop) RunCycle(ctx context.Context) bool {
	l.cycle.Lock()
	defer l.cycle.Unlock()

	start := time.Now()
	defer func() {
		metrics.CycleDuration.Observe(time.Since(start).Seconds())
	}()

	scope := common.NewScope(ctx, "controlloop.cycle")
	defer scope.Finish()

	snap := l.deps.Prober.Status(scope.Ctx)
	l.recordProbe(scope, snap)

	now := l.now()
	decision := l.deps.Session.Idle().Observe(snap, now)
	if decision.Shutdown {
		l.autoStop(scope, decision.Elapsed)
	}

	panelState := ""
	if !snap.Online {
		panelState = l.panelState(scope)
	}

	msg := l.deps.Renderer.Display(render.View{
		Snapshot:   snap,
		Idle:       decision.View,
		AutoUpdate: l.deps.Session.AutoUpdate(),
		PanelState: panelState,
		UpdatedAt:  now,
	})

	ok := l.deps.Display.Refresh(scope.Ctx, msg)
	scope.SetAttributes("refreshed", ok)
	return ok
}

// Open ensures the live display exists in chatID and brings it up to date.
func (l *Loop) Open(ctx context.Context, chatID int64) error {
	placeholder := l.deps.Renderer.Placeholder(l.deps.Session.AutoUpdate())
	if _, err := l.deps.Display.Ensure(ctx, chatID, placeholder); err != nil {
		return err
	}
	l.RunCycle(ctx)
	return nil
}

func (l *Loop) recordProbe(scope *common.Scope, snap mcstatus.Snapshot) {
	scope.SetAttributes("online", snap.Online)
	scope.SetAttributes("players", snap.PlayersOnline)

	if snap.Online {
		metrics.ProbeTotal.WithLabelValues("online").Inc()
	} else {
		metrics.ProbeTotal.WithLabelValues("offline").Inc()
	}
	metrics.PlayersOnline.Set(float64(snap.PlayersOnline))
}

// autoStop sends one stop signal. The tracker has already reset, so a
// rejected stop is not retried; the event log records it.
func (l *Loop) autoStop(scope *common.Scope, elapsed time.Duration) {
	scope.TraceEvent("idle shutdown")
	metrics.IdleShutdownsTotal.Inc()

	l.deps.Events.Append(fmt.Sprintf("empty for %v, auto-stop", elapsed.Round(time.Second)))
	if !l.deps.Power.SendPower(scope.Ctx, power.SignalStop) {
		scope.Log.Warn("auto-stop was not accepted by the hosting API")
		return
	}
	scope.Log.Infof("auto-stop sent after %v without players", elapsed.Round(time.Second))
}

func (l *Loop) panelState(scope *common.Scope) string {
	if l.deps.Panel == nil {
		return ""
	}
	st, err := l.deps.Panel.CurrentState(scope.Ctx)
	if err != nil {
		scope.Log.Debugf("panel state unavailable: %v", err)
		return ""
	}
	return st
}
