// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package chat

import (
	"context"
	"errors"
)

var (
	// ErrNotModified is returned by Edit when the new content equals the old.
	ErrNotModified = errors.New("message is not modified")

	// ErrMessageGone is returned when the target message no longer exists
	// or can no longer be edited.
	ErrMessageGone = errors.New("message no longer exists")
)

// Button is one control in an inline control surface.
type Button struct {
	Label  string
	Action string
}

// Keyboard is an inline control surface, row by row.
type Keyboard [][]Button

// Message is outbound content. Text is HTML-formatted.
type Message struct {
	Text     string
	Keyboard Keyboard
}

// Transport is the outbound surface the bot needs from a chat service.
type Transport interface {
	Send(ctx context.Context, chatID int64, msg Message) (int, error)
	Edit(ctx context.Context, chatID int64, messageID int, msg Message) error
	Delete(ctx context.Context, chatID int64, messageID int) error
}

// EventKind distinguishes inbound event types.
type EventKind int

const (
	// EventStart is the start command that opens the control panel.
	EventStart EventKind = iota
	// EventAction is a press on an inline control.
	EventAction
)

// Event is one inbound user interaction.
type Event struct {
	Kind     EventKind
	CallerID int64
	ChatID   int64
	Action   string

	ack func(ctx context.Context)
}

// NewActionEvent builds an action event. ack may be nil.
func NewActionEvent(callerID, chatID int64, action string, ack func(ctx context.Context)) Event {
	return Event{Kind: EventAction, CallerID: callerID, ChatID: chatID, Action: action, ack: ack}
}

// NewStartEvent builds a start-command event.
func NewStartEvent(callerID, chatID int64) Event {
	return Event{Kind: EventStart, CallerID: callerID, ChatID: chatID}
}

// Acknowledge tells the transport the event was received, if it supports it.
func (e Event) Acknowledge(ctx context.Context) {
	if e.ack != nil {
		e.ack(ctx)
	}
}

// Handler consumes inbound events.
type Handler interface {
	HandleEvent(ctx context.Context, ev Event)
}
