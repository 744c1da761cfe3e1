// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package command

import (
	"fmt"
	"sort"
	"sync"
)

// Registry manages available commands.
// It provides thread-safe registration and lookup by action identifier.
type Registry struct {
	commands map[string]Command
	mu       sync.RWMutex
}

// NewRegistry creates a new empty command registry.
func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[string]Command),
	}
}

// Register adds a command under its own ID.
func (r *Registry) Register(cmd Command) error {
	return r.register(cmd.ID(), cmd)
}

// Alias makes action resolve to the command registered as target.
func (r *Registry) Alias(action, target string) error {
	cmd := r.Get(target)
	if cmd == nil {
		return fmt.Errorf("alias %s: %w: %s", action, ErrNotFound, target)
	}
	return r.register(action, cmd)
}

func (r *Registry) register(action string, cmd Command) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.commands[action]; exists {
		return fmt.Errorf("%w: %s", ErrAlreadyRegistered, action)
	}

	r.commands[action] = cmd
	return nil
}

// Get returns the command for action, or nil if there is none.
func (r *Registry) Get(action string) Command {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.commands[action]
}

// Actions returns every registered action identifier, sorted.
func (r *Registry) Actions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	actions := make([]string, 0, len(r.commands))
	for action := range r.commands {
		actions = append(actions, action)
	}
	sort.Strings(actions)

	return actions
}

// Count returns the number of registered action identifiers.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.commands)
}
