// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package invite

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// scriptedSource returns queued snapshots or errors in order.
type scriptedSource struct {
	mu        sync.Mutex
	snapshots []Snapshot
	errs      []error
	calls     int
}

func (s *scriptedSource) FetchInvites(ctx context.Context, guildID string) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.calls
	s.calls++
	if i < len(s.errs) && s.errs[i] != nil {
		return Snapshot{}, s.errs[i]
	}
	if i < len(s.snapshots) {
		return s.snapshots[i], nil
	}
	return s.snapshots[len(s.snapshots)-1], nil
}

func TestTracker_Track_Attributes(t *testing.T) {
	store := NewMemoryStore()
	store.Replace("g1", NewSnapshot(Record{Code: "abc", InviterID: "U1", Uses: 3}))

	source := &scriptedSource{
		snapshots: []Snapshot{NewSnapshot(Record{Code: "abc", InviterID: "U1", Uses: 4})},
	}
	tracker := NewTracker(source, store, TrackerConfig{})

	att, err := tracker.Track(context.Background(), "g1")
	if err != nil {
		t.Fatalf("Track() error = %v", err)
	}
	if att == nil || att.InviterID != "U1" || att.Code != "abc" {
		t.Fatalf("Track() = %+v, expected U1/abc", att)
	}

	r, _ := store.Get("g1").Get("abc")
	if r.Uses != 4 {
		t.Errorf("stored uses = %d, expected snapshot replaced with 4", r.Uses)
	}
}

func TestTracker_Track_NoMatchStillReplaces(t *testing.T) {
	store := NewMemoryStore()
	source := &scriptedSource{
		snapshots: []Snapshot{NewSnapshot(Record{Code: "new", InviterID: "U9", Uses: 1})},
	}
	tracker := NewTracker(source, store, TrackerConfig{})

	att, err := tracker.Track(context.Background(), "g1")
	if err != nil {
		t.Fatalf("Track() error = %v", err)
	}
	if att != nil {
		t.Errorf("Track() = %+v, expected nil on uninitialized guild", att)
	}
	if store.Get("g1").Len() != 1 {
		t.Error("expected snapshot to be stored after successful fetch")
	}
}

func TestTracker_Track_FetchFailureKeepsSnapshot(t *testing.T) {
	store := NewMemoryStore()
	store.Replace("g1", NewSnapshot(Record{Code: "abc", InviterID: "U1", Uses: 3}))

	source := &scriptedSource{
		snapshots: []Snapshot{NewSnapshot()},
		errs:      []error{errors.New("missing permissions"), errors.New("missing permissions")},
	}
	tracker := NewTracker(source, store, TrackerConfig{FetchRetries: 1})

	att, err := tracker.Track(context.Background(), "g1")
	if !errors.Is(err, ErrFetchFailed) {
		t.Fatalf("Track() error = %v, expected ErrFetchFailed", err)
	}
	if att != nil {
		t.Error("expected no attribution on fetch failure")
	}
	if source.calls != 2 {
		t.Errorf("FetchInvites called %d times, expected 2 (1 retry)", source.calls)
	}

	r, ok := store.Get("g1").Get("abc")
	if !ok || r.Uses != 3 {
		t.Error("stale snapshot was modified after fetch failure")
	}
}

func TestTracker_Track_RetryRecovers(t *testing.T) {
	store := NewMemoryStore()
	store.Replace("g1", NewSnapshot(Record{Code: "abc", InviterID: "U1", Uses: 3}))

	source := &scriptedSource{
		snapshots: []Snapshot{{}, NewSnapshot(Record{Code: "abc", InviterID: "U1", Uses: 4})},
		errs:      []error{errors.New("timeout")},
	}
	tracker := NewTracker(source, store, TrackerConfig{FetchRetries: 2, FetchTimeout: time.Second})

	att, err := tracker.Track(context.Background(), "g1")
	if err != nil {
		t.Fatalf("Track() error = %v", err)
	}
	if att == nil || att.InviterID != "U1" {
		t.Fatalf("Track() = %+v, expected U1", att)
	}
}

func TestTracker_Load(t *testing.T) {
	store := NewMemoryStore()
	source := &scriptedSource{
		snapshots: []Snapshot{NewSnapshot(Record{Code: "a"}, Record{Code: "b"})},
	}
	tracker := NewTracker(source, store, TrackerConfig{})

	n, err := tracker.Load(context.Background(), "g1")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if n != 2 {
		t.Errorf("Load() = %d, expected 2", n)
	}
	if store.Get("g1").Len() != 2 {
		t.Error("Load() did not store snapshot")
	}
}

// countingSource increments the single code on every fetch, like a stream of joins.
type countingSource struct {
	mu   sync.Mutex
	uses int
}

func (c *countingSource) FetchInvites(ctx context.Context, guildID string) (Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.uses++
	return NewSnapshot(Record{Code: "abc", InviterID: "U1", Uses: c.uses}), nil
}

func TestTracker_Track_SerializedPerGuild(t *testing.T) {
	store := NewMemoryStore()
	source := &countingSource{}
	tracker := NewTracker(source, store, TrackerConfig{})

	if _, err := tracker.Load(context.Background(), "g1"); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	const joins = 20
	var wg sync.WaitGroup
	var mu sync.Mutex
	attributed := 0

	for i := 0; i < joins; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			att, err := tracker.Track(context.Background(), "g1")
			if err == nil && att != nil {
				mu.Lock()
				attributed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if attributed != joins {
		t.Errorf("attributed %d joins, expected %d", attributed, joins)
	}
}
