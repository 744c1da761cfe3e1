// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package command

import "context"

// Command performs one control action pressed by an operator.
// Commands are registered in a Registry and invoked by the Dispatcher.
type Command interface {
	// ID returns the action identifier carried by the control surface.
	ID() string

	// Name returns a human-readable command name.
	Name() string

	// Execute performs the command for req.
	Execute(ctx context.Context, req Request) error
}

// Request is one authorized, rate-limited invocation.
type Request struct {
	CallerID int64
	ChatID   int64
	Action   string
}
