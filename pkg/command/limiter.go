// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package command

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// DefaultCooldown is the minimum spacing between one caller's actions.
const DefaultCooldown = 2 * time.Second

// Limiter enforces a per-caller cooldown. A rejected action does not
// restart the caller's cooldown.
type Limiter struct {
	mu       sync.Mutex
	limiters map[int64]*rate.Limiter
	every    rate.Limit
	now      func() time.Time
}

// NewLimiter creates a limiter allowing one action per cooldown per caller.
func NewLimiter(cooldown time.Duration, now func() time.Time) *Limiter {
	if cooldown <= 0 {
		cooldown = DefaultCooldown
	}
	if now == nil {
		now = time.Now
	}
	return &Limiter{
		limiters: make(map[int64]*rate.Limiter),
		every:    rate.Every(cooldown),
		now:      now,
	}
}

// Allow reports whether caller may act now and, if so, starts its cooldown.
func (l *Limiter) Allow(caller int64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	limiter, ok := l.limiters[caller]
	if !ok {
		limiter = rate.NewLimiter(l.every, 1)
		l.limiters[caller] = limiter
	}

	return limiter.AllowN(l.now(), 1)
}
