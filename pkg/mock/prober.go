// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package mock

import (
	"context"
	"sync"

	"github.com/mirvosit/mc-control-bot/pkg/mcstatus"
)

// Prober is a mock game status prober for testing.
type Prober struct {
	mu sync.Mutex

	// Snapshot is returned by Status.
	Snapshot mcstatus.Snapshot
	// PlayerNames and PlayersErr are returned by Players.
	PlayerNames []string
	PlayersErr  error

	// Call tracking
	StatusCalls  int
	PlayersCalls int
}

// NewProber creates a mock prober reporting snap.
func NewProber(snap mcstatus.Snapshot) *Prober {
	return &Prober{Snapshot: snap}
}

// Status returns the configured snapshot.
func (m *Prober) Status(ctx context.Context) mcstatus.Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.StatusCalls++
	return m.Snapshot
}

// Players returns the configured names or error.
func (m *Prober) Players(ctx context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.PlayersCalls++
	if m.PlayersErr != nil {
		return nil, m.PlayersErr
	}
	return m.PlayerNames, nil
}

// SetSnapshot changes the snapshot returned by Status.
func (m *Prober) SetSnapshot(snap mcstatus.Snapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Snapshot = snap
}

// Calls returns the number of Status calls.
func (m *Prober) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.StatusCalls
}
