// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package ledger keeps per (user, guild) invite credit counts.
// Counts only grow: the only mutation is Increment with a positive delta.
package ledger

import (
	"errors"
	"fmt"
	"sync"
)

// ErrInvalidDelta is returned when an increment is not a positive integer.
var ErrInvalidDelta = errors.New("delta must be positive")

// Key identifies a credit entry.
type Key struct {
	UserID  string
	GuildID string
}

// Ledger is the inviter credit store.
type Ledger interface {
	Get(userID, guildID string) int
	Increment(userID, guildID string, delta int) (int, error)
	Len() int
}

// Memory is a process-local Ledger. Credits are lost on restart.
type Memory struct {
	credits map[Key]int
	mu      sync.RWMutex
}

// NewMemory creates an empty ledger.
func NewMemory() *Memory {
	return &Memory{
		credits: make(map[Key]int),
	}
}

// Get returns the credit of a user in a guild, 0 if absent.
func (m *Memory) Get(userID, guildID string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.credits[Key{UserID: userID, GuildID: guildID}]
}

// Increment adds delta to the credit and returns the new total.
func (m *Memory) Increment(userID, guildID string, delta int) (int, error) {
	if delta <= 0 {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidDelta, delta)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	key := Key{UserID: userID, GuildID: guildID}
	m.credits[key] += delta
	return m.credits[key], nil
}

// Len returns the number of credited (user, guild) entries.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.credits)
}
