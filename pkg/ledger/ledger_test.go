// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package ledger

import (
	"errors"
	"sync"
	"testing"
)

func TestMemory_GetAbsent(t *testing.T) {
	l := NewMemory()
	if got := l.Get("u1", "g1"); got != 0 {
		t.Errorf("Get() = %d, expected 0", got)
	}
	if l.Len() != 0 {
		t.Errorf("Len() = %d, expected 0", l.Len())
	}
}

func TestMemory_IncrementIsLinear(t *testing.T) {
	pairs := []struct{ d1, d2 int }{
		{1, 1},
		{1, 4},
		{3, 7},
		{10, 1},
	}

	for _, p := range pairs {
		twice := NewMemory()
		if _, err := twice.Increment("u1", "g1", p.d1); err != nil {
			t.Fatalf("Increment() error = %v", err)
		}
		total, err := twice.Increment("u1", "g1", p.d2)
		if err != nil {
			t.Fatalf("Increment() error = %v", err)
		}

		once := NewMemory()
		combined, err := once.Increment("u1", "g1", p.d1+p.d2)
		if err != nil {
			t.Fatalf("Increment() error = %v", err)
		}

		if total != combined {
			t.Errorf("Increment(%d)+Increment(%d) = %d, Increment(%d) = %d",
				p.d1, p.d2, total, p.d1+p.d2, combined)
		}
	}
}

func TestMemory_IncrementRejectsNonPositive(t *testing.T) {
	l := NewMemory()
	if _, err := l.Increment("u1", "g1", 2); err != nil {
		t.Fatalf("Increment() error = %v", err)
	}

	for _, delta := range []int{0, -1, -100} {
		_, err := l.Increment("u1", "g1", delta)
		if !errors.Is(err, ErrInvalidDelta) {
			t.Errorf("Increment(%d) error = %v, expected ErrInvalidDelta", delta, err)
		}
	}

	if got := l.Get("u1", "g1"); got != 2 {
		t.Errorf("Get() = %d after rejected increments, expected 2", got)
	}
}

func TestMemory_NamespacedByGuild(t *testing.T) {
	l := NewMemory()
	l.Increment("u1", "g1", 3)
	l.Increment("u1", "g2", 1)

	if l.Get("u1", "g1") != 3 || l.Get("u1", "g2") != 1 {
		t.Error("credits leaked across guilds")
	}
	if l.Len() != 2 {
		t.Errorf("Len() = %d, expected 2", l.Len())
	}
}

func TestMemory_ConcurrentIncrements(t *testing.T) {
	l := NewMemory()

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Increment("u1", "g1", 1)
		}()
	}
	wg.Wait()

	if got := l.Get("u1", "g1"); got != 100 {
		t.Errorf("Get() = %d, expected 100", got)
	}
}
