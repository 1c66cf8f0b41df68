// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package action

import (
	"fmt"
	"sort"
	"sync"
)

// Registry manages available actions.
// It provides thread-safe registration and lookup of actions.
type Registry struct {
	actions map[string]Action
	mu      sync.RWMutex
}

// NewRegistry creates a new empty action registry.
func NewRegistry() *Registry {
	return &Registry{
		actions: make(map[string]Action),
	}
}

// Register adds an action to the registry.
// Returns an error if an action with the same ID already exists.
func (r *Registry) Register(action Action) error {
	if action == nil {
		return fmt.Errorf("cannot register nil action")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.actions[action.ID()]; exists {
		return fmt.Errorf("action %s already registered", action.ID())
	}

	r.actions[action.ID()] = action
	return nil
}

// Get returns an action by ID.
// Returns nil if the action doesn't exist.
func (r *Registry) Get(actionID string) Action {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.actions[actionID]
}

// GetEnabled returns an action by ID only if it's enabled.
func (r *Registry) GetEnabled(actionID string) Action {
	r.mu.RLock()
	defer r.mu.RUnlock()

	action := r.actions[actionID]
	if action != nil && !action.Config().Enabled {
		return nil
	}

	return action
}

// IDs returns the IDs of all registered actions, sorted.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.actions))
	for id := range r.actions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Count returns the number of registered actions.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.actions)
}
