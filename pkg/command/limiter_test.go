// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package command

import (
	"testing"
	"time"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func TestLimiter(t *testing.T) {
	tests := []struct {
		name    string
		offsets []time.Duration
		expect  []bool
	}{
		{
			name:    "single action",
			offsets: []time.Duration{0},
			expect:  []bool{true},
		},
		{
			name:    "burst within cooldown",
			offsets: []time.Duration{0, 100 * time.Millisecond, 500 * time.Millisecond, 1900 * time.Millisecond},
			expect:  []bool{true, false, false, false},
		},
		{
			name:    "spaced by cooldown",
			offsets: []time.Duration{0, 2 * time.Second, 4 * time.Second},
			expect:  []bool{true, true, true},
		},
		{
			name:    "rejected action does not extend cooldown",
			offsets: []time.Duration{0, 1500 * time.Millisecond, 2100 * time.Millisecond},
			expect:  []bool{true, false, true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
			clock := &fakeClock{now: start}
			limiter := NewLimiter(2*time.Second, clock.Now)

			for i, offset := range tt.offsets {
				clock.now = start.Add(offset)
				if got := limiter.Allow(42); got != tt.expect[i] {
					t.Errorf("Allow() at +%v = %v, expected %v", offset, got, tt.expect[i])
				}
			}
		})
	}
}

func TestLimiter_PerCaller(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
	limiter := NewLimiter(2*time.Second, clock.Now)

	if !limiter.Allow(1) {
		t.Fatal("first caller rejected")
	}
	if !limiter.Allow(2) {
		t.Error("second caller must not share the first caller's cooldown")
	}
	clock.Advance(time.Second)
	if limiter.Allow(1) || limiter.Allow(2) {
		t.Error("both callers should still be cooling down")
	}
}
