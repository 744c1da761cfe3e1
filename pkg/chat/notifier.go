// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package chat

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultNotificationTTL is how long an ephemeral notification stays visible.
const DefaultNotificationTTL = 30 * time.Second

type messageKey struct {
	chatID    int64
	messageID int
}

// Notifier sends ephemeral notifications: each message is scheduled for
// deletion after a fixed TTL without blocking the sender.
type Notifier struct {
	transport Transport
	ttl       time.Duration
	timeout   time.Duration

	mu      sync.Mutex
	pending map[messageKey]*time.Timer
	closed  bool
}

// NewNotifier creates a notifier. timeout bounds each delete request.
func NewNotifier(transport Transport, ttl, timeout time.Duration) *Notifier {
	if ttl <= 0 {
		ttl = DefaultNotificationTTL
	}
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return &Notifier{
		transport: transport,
		ttl:       ttl,
		timeout:   timeout,
		pending:   make(map[messageKey]*time.Timer),
	}
}

// Notify sends msg to chatID and schedules its deletion.
func (n *Notifier) Notify(ctx context.Context, chatID int64, msg Message) error {
	id, err := n.transport.Send(ctx, chatID, msg)
	if err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}

	key := messageKey{chatID: chatID, messageID: id}

	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		return nil
	}
	n.pending[key] = time.AfterFunc(n.ttl, func() { n.expire(key) })
	return nil
}

// Pending returns the number of notifications awaiting deletion.
func (n *Notifier) Pending() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.pending)
}

func (n *Notifier) expire(key messageKey) {
	n.mu.Lock()
	_, ok := n.pending[key]
	delete(n.pending, key)
	n.mu.Unlock()
	if !ok {
		return
	}
	n.delete(context.Background(), key)
}

func (n *Notifier) delete(ctx context.Context, key messageKey) {
	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	if err := n.transport.Delete(ctx, key.chatID, key.messageID); err != nil {
		logrus.Debugf("failed to delete notification %d in chat %d: %v", key.messageID, key.chatID, err)
	}
}

// Close cancels the timers and deletes every pending notification now.
func (n *Notifier) Close(ctx context.Context) {
	n.mu.Lock()
	n.closed = true
	keys := make([]messageKey, 0, len(n.pending))
	for key, timer := range n.pending {
		timer.Stop()
		keys = append(keys, key)
		delete(n.pending, key)
	}
	n.mu.Unlock()

	for _, key := range keys {
		n.delete(ctx, key)
	}
}
