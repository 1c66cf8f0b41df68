// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package invite

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"
)

// ErrFetchFailed indicates the live invite list could not be fetched.
// The stored snapshot is left untouched when this is returned.
var ErrFetchFailed = errors.New("invite snapshot unavailable")

// Source fetches the current invite list of a guild from the chat platform.
type Source interface {
	FetchInvites(ctx context.Context, guildID string) (Snapshot, error)
}

// TrackerConfig bounds the external fetch performed by the Tracker.
type TrackerConfig struct {
	FetchTimeout time.Duration // per attempt, 0 means no timeout
	FetchRetries uint64        // extra attempts after the first
}

// Tracker serializes fetch -> resolve -> replace per guild so concurrent joins
// never observe or write a snapshot out of order.
type Tracker struct {
	source Source
	store  SnapshotStore
	cfg    TrackerConfig

	mu     sync.Mutex
	guilds map[string]*sync.Mutex
}

// NewTracker creates a tracker over the given source and store.
func NewTracker(source Source, store SnapshotStore, cfg TrackerConfig) *Tracker {
	return &Tracker{
		source: source,
		store:  store,
		cfg:    cfg,
		guilds: make(map[string]*sync.Mutex),
	}
}

func (t *Tracker) guildLock(guildID string) *sync.Mutex {
	t.mu.Lock()
	defer t.mu.Unlock()

	l, ok := t.guilds[guildID]
	if !ok {
		l = &sync.Mutex{}
		t.guilds[guildID] = l
	}
	return l
}

// Load fetches the invite list of a guild and stores it as the baseline.
func (t *Tracker) Load(ctx context.Context, guildID string) (int, error) {
	l := t.guildLock(guildID)
	l.Lock()
	defer l.Unlock()

	snapshot, err := t.fetch(ctx, guildID)
	if err != nil {
		return 0, err
	}
	t.store.Replace(guildID, snapshot)
	return snapshot.Len(), nil
}

// Track resolves which invite a new member of the guild used.
// It returns nil without error when the join cannot be attributed.
func (t *Tracker) Track(ctx context.Context, guildID string) (*Attribution, error) {
	l := t.guildLock(guildID)
	l.Lock()
	defer l.Unlock()

	old := t.store.Get(guildID)

	current, err := t.fetch(ctx, guildID)
	if err != nil {
		return nil, err
	}

	attribution, ok := Resolve(old, current)
	t.store.Replace(guildID, current)

	if !ok {
		logrus.Debugf("no invite attributed in guild %s (%d codes before, %d after)",
			guildID, old.Len(), current.Len())
		return nil, nil
	}
	return attribution, nil
}

func (t *Tracker) fetch(ctx context.Context, guildID string) (Snapshot, error) {
	var snapshot Snapshot

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 200 * time.Millisecond
	b.MaxElapsedTime = 0
	policy := backoff.WithContext(backoff.WithMaxRetries(b, t.cfg.FetchRetries), ctx)

	err := backoff.RetryNotify(
		func() error {
			attemptCtx := ctx
			if t.cfg.FetchTimeout > 0 {
				var cancel context.CancelFunc
				attemptCtx, cancel = context.WithTimeout(ctx, t.cfg.FetchTimeout)
				defer cancel()
			}

			s, err := t.source.FetchInvites(attemptCtx, guildID)
			if err != nil {
				return err
			}
			snapshot = s
			return nil
		},
		policy,
		func(err error, next time.Duration) {
			logrus.Warnf("fetching invites for guild %s failed: %v, retrying in %v", guildID, err, next)
		},
	)
	if err != nil {
		return Snapshot{}, fmt.Errorf("%w: guild %s: %v", ErrFetchFailed, guildID, err)
	}
	return snapshot, nil
}
