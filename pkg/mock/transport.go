// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package mock

import (
	"context"
	"sync"

	"github.com/mirvosit/mc-control-bot/pkg/chat"
)

// SentMessage records a Send call.
type SentMessage struct {
	ChatID    int64
	MessageID int
	Message   chat.Message
}

// EditCall records an Edit call.
type EditCall struct {
	ChatID    int64
	MessageID int
	Message   chat.Message
}

// DeleteCall records a Delete call.
type DeleteCall struct {
	ChatID    int64
	MessageID int
}

// Transport is a mock implementation of chat.Transport for testing.
// It is safe for concurrent use.
type Transport struct {
	mu sync.Mutex

	// SendErr, EditErr and DeleteErr are returned by the matching calls when set.
	SendErr   error
	EditErr   error
	DeleteErr error

	nextID int

	// Call tracking
	Sent    []SentMessage
	Edits   []EditCall
	Deletes []DeleteCall
}

// NewTransport creates a mock transport whose message IDs start at 100.
func NewTransport() *Transport {
	return &Transport{nextID: 100}
}

// Send records the message and returns a fresh message ID.
func (m *Transport) Send(ctx context.Context, chatID int64, msg chat.Message) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.SendErr != nil {
		return 0, m.SendErr
	}
	m.nextID++
	m.Sent = append(m.Sent, SentMessage{ChatID: chatID, MessageID: m.nextID, Message: msg})
	return m.nextID, nil
}

// Edit records the edit.
func (m *Transport) Edit(ctx context.Context, chatID int64, messageID int, msg chat.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Edits = append(m.Edits, EditCall{ChatID: chatID, MessageID: messageID, Message: msg})
	return m.EditErr
}

// Delete records the deletion.
func (m *Transport) Delete(ctx context.Context, chatID int64, messageID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Deletes = append(m.Deletes, DeleteCall{ChatID: chatID, MessageID: messageID})
	return m.DeleteErr
}

// SetEditErr changes the error returned by Edit.
func (m *Transport) SetEditErr(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.EditErr = err
}

// SentMessages returns a copy of the recorded sends.
func (m *Transport) SentMessages() []SentMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]SentMessage(nil), m.Sent...)
}

// EditCalls returns a copy of the recorded edits.
func (m *Transport) EditCalls() []EditCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]EditCall(nil), m.Edits...)
}

// DeleteCalls returns a copy of the recorded deletions.
func (m *Transport) DeleteCalls() []DeleteCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]DeleteCall(nil), m.Deletes...)
}

// Outbound returns the total number of outbound calls.
func (m *Transport) Outbound() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Sent) + len(m.Edits) + len(m.Deletes)
}
