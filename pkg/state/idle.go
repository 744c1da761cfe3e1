// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package state

import (
	"sync"
	"time"

	"github.com/mirvosit/mc-control-bot/pkg/mcstatus"
	"github.com/sirupsen/logrus"
)

// DefaultIdleThreshold is how long the server may sit empty before it is stopped.
const DefaultIdleThreshold = 15 * time.Minute

// IdleView is what the renderer needs to know about the tracker.
type IdleView struct {
	Idle      bool
	Since     time.Time
	Remaining time.Duration
}

// IdleDecision is the outcome of observing one snapshot.
type IdleDecision struct {
	View IdleView
	// Shutdown is set when the threshold was reached on this observation.
	// The tracker has already reset; the caller sends the stop signal.
	Shutdown bool
	// Elapsed is the empty time that led to Shutdown.
	Elapsed time.Duration
}

// IdleTracker tracks how long the server has been online with no players.
type IdleTracker struct {
	mu         sync.Mutex
	threshold  time.Duration
	emptySince time.Time
}

// NewIdleTracker creates a tracker in the active state.
func NewIdleTracker(threshold time.Duration) *IdleTracker {
	if threshold <= 0 {
		threshold = DefaultIdleThreshold
	}
	return &IdleTracker{threshold: threshold}
}

// Threshold returns the configured idle threshold.
func (t *IdleTracker) Threshold() time.Duration {
	return t.threshold
}

// EmptySince returns when the server became empty, if it currently is.
func (t *IdleTracker) EmptySince() (time.Time, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.emptySince, !t.emptySince.IsZero()
}

// Observe advances the state machine with the snapshot fetched for this
// cycle. Offline or populated snapshots reset it; an online empty snapshot
// starts or continues the countdown.
func (t *IdleTracker) Observe(snap mcstatus.Snapshot, now time.Time) IdleDecision {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !snap.Empty() {
		if !t.emptySince.IsZero() {
			logrus.Debugf("idle countdown cancelled (online=%v players=%d)", snap.Online, snap.PlayersOnline)
		}
		t.emptySince = time.Time{}
		return IdleDecision{}
	}

	if t.emptySince.IsZero() {
		t.emptySince = now
		logrus.Debugf("server empty, idle countdown started at %s", now.Format(time.RFC3339))
	}

	elapsed := now.Sub(t.emptySince)
	if elapsed >= t.threshold {
		logrus.Infof("server empty for %v (threshold %v), requesting shutdown", elapsed, t.threshold)
		t.emptySince = time.Time{}
		return IdleDecision{Shutdown: true, Elapsed: elapsed}
	}

	return IdleDecision{
		View: IdleView{
			Idle:      true,
			Since:     t.emptySince,
			Remaining: t.threshold - elapsed,
		},
	}
}

// Reset returns the tracker to the active state.
func (t *IdleTracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.emptySince = time.Time{}
}
