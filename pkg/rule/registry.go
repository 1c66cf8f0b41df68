// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package rule

import (
	"fmt"
	"sort"
	"sync"
)

// Registry manages available rules.
// It provides thread-safe registration and lookup of rules.
type Registry struct {
	rules map[string]Rule
	mu    sync.RWMutex
}

// NewRegistry creates a new empty rule registry.
func NewRegistry() *Registry {
	return &Registry{
		rules: make(map[string]Rule),
	}
}

// Register adds a rule to the registry.
// Returns an error if a rule with the same ID already exists.
func (r *Registry) Register(rule Rule) error {
	if rule == nil {
		return fmt.Errorf("cannot register nil rule")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.rules[rule.ID()]; exists {
		return fmt.Errorf("rule %s already registered", rule.ID())
	}

	r.rules[rule.ID()] = rule
	return nil
}

// Get returns a rule by ID.
// Returns nil if the rule doesn't exist.
func (r *Registry) Get(ruleID string) Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.rules[ruleID]
}

// GetBySignalType returns all enabled rules that handle a signal type, ordered by rule ID.
func (r *Registry) GetBySignalType(signalType string) []Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matching []Rule
	for _, rule := range r.rules {
		if !rule.Config().Enabled {
			continue
		}
		if handles(rule, signalType) {
			matching = append(matching, rule)
		}
	}

	sort.Slice(matching, func(i, j int) bool {
		return matching[i].ID() < matching[j].ID()
	})
	return matching
}

func handles(rule Rule, signalType string) bool {
	signalTypes := rule.SignalTypes()
	if len(signalTypes) == 0 {
		return true
	}
	for _, st := range signalTypes {
		if st == signalType {
			return true
		}
	}
	return false
}

// IDs returns the IDs of all registered rules, sorted.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.rules))
	for id := range r.rules {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Count returns the number of registered rules.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.rules)
}
