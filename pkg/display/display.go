// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package display

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/mirvosit/mc-control-bot/pkg/chat"
	"github.com/mirvosit/mc-control-bot/pkg/metrics"
	"github.com/mirvosit/mc-control-bot/pkg/state"
	"github.com/sirupsen/logrus"
)

// Live owns the single live display message. The message reference lives
// in the session; Refresh is its only content mutation point.
type Live struct {
	transport chat.Transport
	session   *state.Session
	timeout   time.Duration

	// create serialises display creation so concurrent start commands
	// cannot both send a message.
	create sync.Mutex
}

// NewLive creates the live display manager.
func NewLive(transport chat.Transport, session *state.Session, timeout time.Duration) *Live {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Live{transport: transport, session: session, timeout: timeout}
}

// Ensure returns the live display, creating it in chatID with placeholder
// content if none exists yet. An existing display is never recreated.
func (l *Live) Ensure(ctx context.Context, chatID int64, placeholder chat.Message) (state.DisplayRef, error) {
	if ref, ok := l.session.Display(); ok {
		return ref, nil
	}

	l.create.Lock()
	defer l.create.Unlock()

	if ref, ok := l.session.Display(); ok {
		return ref, nil
	}

	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	id, err := l.transport.Send(ctx, chatID, placeholder)
	if err != nil {
		return state.DisplayRef{}, fmt.Errorf("failed to create display: %w", err)
	}

	ref, _ := l.session.SetDisplay(state.DisplayRef{ChatID: chatID, MessageID: id})
	logrus.WithFields(logrus.Fields{"chat": chatID, "message": id}).Info("live display created")
	return ref, nil
}

// Exists reports whether a live display has been created.
func (l *Live) Exists() bool {
	_, ok := l.session.Display()
	return ok
}

// Refresh replaces the display content in place. Failures are logged and
// reported as false, never returned. A display the transport reports as
// gone is forgotten so a later start command can create a new one.
func (l *Live) Refresh(ctx context.Context, msg chat.Message) bool {
	ref, ok := l.session.Display()
	if !ok {
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	err := l.transport.Edit(ctx, ref.ChatID, ref.MessageID, msg)
	switch {
	case err == nil:
		metrics.DisplayRefreshTotal.WithLabelValues("updated").Inc()
		return true
	case errors.Is(err, chat.ErrNotModified):
		metrics.DisplayRefreshTotal.WithLabelValues("unchanged").Inc()
		logrus.Debug("live display unchanged")
	case errors.Is(err, chat.ErrMessageGone):
		metrics.DisplayRefreshTotal.WithLabelValues("gone").Inc()
		if l.session.ForgetDisplay(ref) {
			logrus.WithField("message", ref.MessageID).Warn("live display no longer exists, forgetting it")
		}
	default:
		metrics.DisplayRefreshTotal.WithLabelValues("failed").Inc()
		logrus.Warnf("failed to refresh live display: %v", err)
	}
	return false
}
