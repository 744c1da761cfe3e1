// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package eventlog

import (
	"fmt"
	"testing"
	"time"
)

func TestAppend_EvictsOldest(t *testing.T) {
	l := New(DefaultCapacity)

	for i := 1; i <= 21; i++ {
		l.Append(fmt.Sprintf("event %d", i))
	}

	if l.Len() != 20 {
		t.Fatalf("Len() = %d, expected 20", l.Len())
	}

	entries := l.Recent(0)
	if entries[0].Message != "event 2" {
		t.Errorf("oldest entry = %q, expected %q", entries[0].Message, "event 2")
	}
	for i, e := range entries {
		expected := fmt.Sprintf("event %d", i+2)
		if e.Message != expected {
			t.Errorf("entries[%d] = %q, expected %q", i, e.Message, expected)
		}
	}
}

func TestRecent(t *testing.T) {
	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	l := New(5).WithClock(func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	})

	tests := []struct {
		name     string
		appends  int
		n        int
		expected []string
	}{
		{name: "empty log", appends: 0, n: 10, expected: []string{}},
		{name: "fewer than requested", appends: 3, n: 10, expected: []string{"e0", "e1", "e2"}},
		{name: "newest two", appends: 3, n: 2, expected: []string{"e1", "e2"}},
		{name: "non-positive means all", appends: 2, n: 0, expected: []string{"e0", "e1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l = New(5).WithClock(l.now)
			for i := 0; i < tt.appends; i++ {
				l.Append(fmt.Sprintf("e%d", i))
			}

			got := l.Recent(tt.n)
			if len(got) != len(tt.expected) {
				t.Fatalf("Recent(%d) returned %d entries, expected %d", tt.n, len(got), len(tt.expected))
			}
			for i := range got {
				if got[i].Message != tt.expected[i] {
					t.Errorf("Recent(%d)[%d] = %q, expected %q", tt.n, i, got[i].Message, tt.expected[i])
				}
				if i > 0 && !got[i].Timestamp.After(got[i-1].Timestamp) {
					t.Errorf("entries out of order at %d", i)
				}
			}
		})
	}
}

func TestNew_DefaultCapacity(t *testing.T) {
	l := New(0)
	for i := 0; i < 30; i++ {
		l.Append("x")
	}
	if l.Len() != DefaultCapacity {
		t.Errorf("Len() = %d, expected %d", l.Len(), DefaultCapacity)
	}
}
