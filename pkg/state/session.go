// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package state

import (
	"sync"
)

// DisplayRef identifies the single live display message.
type DisplayRef struct {
	ChatID    int64
	MessageID int
}

// Session is the process-lifetime control state shared by the control
// loop and the command dispatcher. It is safe for concurrent use and is
// never persisted.
type Session struct {
	mu         sync.RWMutex
	display    *DisplayRef
	autoUpdate bool
	idle       *IdleTracker
}

// NewSession creates a session with no display yet.
func NewSession(autoUpdate bool, idle *IdleTracker) *Session {
	return &Session{
		autoUpdate: autoUpdate,
		idle:       idle,
	}
}

// Display returns the live display, if one has been created.
func (s *Session) Display() (DisplayRef, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.display == nil {
		return DisplayRef{}, false
	}
	return *s.display, true
}

// SetDisplay records ref as the live display unless one already exists.
// It returns the display in effect afterwards and whether ref was stored.
func (s *Session) SetDisplay(ref DisplayRef) (DisplayRef, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.display != nil {
		return *s.display, false
	}
	s.display = &ref
	return ref, true
}

// ForgetDisplay drops ref if it is still the live display, so the next
// start command can create a new one.
func (s *Session) ForgetDisplay(ref DisplayRef) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.display == nil || *s.display != ref {
		return false
	}
	s.display = nil
	return true
}

// AutoUpdate reports whether the control loop should refresh the display.
func (s *Session) AutoUpdate() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.autoUpdate
}

// ToggleAutoUpdate flips auto-update and returns the new value.
func (s *Session) ToggleAutoUpdate() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.autoUpdate = !s.autoUpdate
	return s.autoUpdate
}

// Idle returns the idle-shutdown tracker.
func (s *Session) Idle() *IdleTracker {
	return s.idle
}
