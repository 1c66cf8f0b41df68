// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package invite

import (
	"sync"
)

// SnapshotStore holds the last successfully fetched snapshot per guild.
type SnapshotStore interface {
	// Get returns the stored snapshot, or an empty one if the guild was never loaded.
	Get(guildID string) Snapshot

	// Replace overwrites the stored snapshot for the guild. No merge.
	Replace(guildID string, snapshot Snapshot)
}

// MemoryStore is a process-local SnapshotStore. State is lost on restart.
type MemoryStore struct {
	snapshots map[string]Snapshot
	mu        sync.RWMutex
}

// NewMemoryStore creates an empty snapshot store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		snapshots: make(map[string]Snapshot),
	}
}

// Get implements SnapshotStore.
func (m *MemoryStore) Get(guildID string) Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.snapshots[guildID]
	if !ok {
		return NewSnapshot()
	}
	return s
}

// Replace implements SnapshotStore.
func (m *MemoryStore) Replace(guildID string, snapshot Snapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.snapshots[guildID] = snapshot
}

// Guilds returns the number of guilds with a stored snapshot.
func (m *MemoryStore) Guilds() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.snapshots)
}
