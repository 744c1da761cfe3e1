// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package power

import (
	"context"
	"fmt"

	"github.com/mirvosit/mc-control-bot/pkg/eventlog"
	"github.com/mirvosit/mc-control-bot/pkg/metrics"
	"github.com/sirupsen/logrus"
)

// Sender sends one power signal and reports the raw outcome.
type Sender interface {
	SendPower(ctx context.Context, signal Signal) Result
}

// Controller is the boolean power contract used by the control loop and
// the command dispatcher. Every call appends one event log entry.
type Controller struct {
	sender Sender
	events *eventlog.Log
}

// NewController wraps sender, recording outcomes in events.
func NewController(sender Sender, events *eventlog.Log) *Controller {
	return &Controller{sender: sender, events: events}
}

// SendPower returns true iff the hosting API accepted the signal.
func (c *Controller) SendPower(ctx context.Context, signal Signal) bool {
	res := c.sender.SendPower(ctx, signal)
	ok := res.OK()

	fields := logrus.Fields{"signal": signal, "status": res.Status}
	if ok {
		logrus.WithFields(fields).Infof("power %s", res)
		c.events.Append(fmt.Sprintf("power %s: accepted", signal))
		metrics.PowerRequestsTotal.WithLabelValues(string(signal), "accepted").Inc()
		return true
	}

	logrus.WithFields(fields).Warnf("power %s", res)
	outcome := fmt.Sprintf("status %d", res.Status)
	if res.Err != nil {
		outcome = "request failed"
	}
	c.events.Append(fmt.Sprintf("power %s: %s", signal, outcome))
	metrics.PowerRequestsTotal.WithLabelValues(string(signal), "failed").Inc()
	return false
}
