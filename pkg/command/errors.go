// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package command

import "errors"

var (
	// ErrNotFound indicates that no command is registered for an action.
	ErrNotFound = errors.New("command not found in registry")

	// ErrAlreadyRegistered indicates a duplicate action identifier.
	ErrAlreadyRegistered = errors.New("command already registered")
)
