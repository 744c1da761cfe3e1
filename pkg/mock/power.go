// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package mock

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/mirvosit/mc-control-bot/pkg/power"
)

// PowerSender is a mock power.Sender for testing. Wrap it with
// power.NewController to get the boolean contract.
type PowerSender struct {
	mu sync.Mutex

	// Accept controls whether signals are acknowledged with 204.
	Accept bool
	// State and StateErr are returned by CurrentState.
	State    string
	StateErr error

	// Call tracking
	Signals    []power.Signal
	StateCalls int
}

// NewPowerSender creates a mock that accepts every signal.
func NewPowerSender() *PowerSender {
	return &PowerSender{Accept: true, StateErr: errors.New("no state")}
}

// SendPower records signal and returns the configured outcome.
func (m *PowerSender) SendPower(ctx context.Context, signal power.Signal) power.Result {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Signals = append(m.Signals, signal)
	if m.Accept {
		return power.Result{Signal: signal, Status: http.StatusNoContent}
	}
	return power.Result{Signal: signal, Status: http.StatusInternalServerError, Body: "error"}
}

// CurrentState returns the configured panel state.
func (m *PowerSender) CurrentState(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.StateCalls++
	return m.State, m.StateErr
}

// SentSignals returns a copy of the recorded signals.
func (m *PowerSender) SentSignals() []power.Signal {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]power.Signal(nil), m.Signals...)
}
