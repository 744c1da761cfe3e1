// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package eventlog

import (
	"sync"
	"time"
)

// DefaultCapacity is the number of entries kept before the oldest is evicted.
const DefaultCapacity = 20

// Entry is one immutable event log record.
type Entry struct {
	Timestamp time.Time
	Message   string
}

// Log is a bounded, insertion-ordered history of recent events.
// It is safe for concurrent use.
type Log struct {
	mu       sync.Mutex
	entries  []Entry
	capacity int
	now      func() time.Time
}

// New creates a log holding at most capacity entries.
// A non-positive capacity falls back to DefaultCapacity.
func New(capacity int) *Log {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Log{
		entries:  make([]Entry, 0, capacity),
		capacity: capacity,
		now:      time.Now,
	}
}

// WithClock replaces the time source. Used by tests.
func (l *Log) WithClock(now func() time.Time) *Log {
	l.now = now
	return l
}

// Append records message with the current time, evicting the oldest
// entry when the log is full.
func (l *Log) Append(message string) Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	e := Entry{Timestamp: l.now(), Message: message}
	if len(l.entries) == l.capacity {
		copy(l.entries, l.entries[1:])
		l.entries = l.entries[:len(l.entries)-1]
	}
	l.entries = append(l.entries, e)
	return e
}

// Recent returns up to n of the newest entries, oldest first.
func (l *Log) Recent(n int) []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	if n <= 0 || n > len(l.entries) {
		n = len(l.entries)
	}
	out := make([]Entry, n)
	copy(out, l.entries[len(l.entries)-n:])
	return out
}

// Len returns the number of stored entries.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
