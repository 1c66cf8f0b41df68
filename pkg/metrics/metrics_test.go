// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestAll_RegistersWithoutConflict(t *testing.T) {
	registry := prometheus.NewRegistry()
	for _, c := range All() {
		if err := registry.Register(c); err != nil {
			t.Fatalf("failed to register collector: %v", err)
		}
	}
}

func TestCounters(t *testing.T) {
	before := testutil.ToFloat64(CreditsTotal.WithLabelValues("manual"))
	CreditsTotal.WithLabelValues("manual").Add(3)
	if got := testutil.ToFloat64(CreditsTotal.WithLabelValues("manual")) - before; got != 3 {
		t.Errorf("credits delta = %v, expected 3", got)
	}

	before = testutil.ToFloat64(MemberJoinsTotal)
	MemberJoinsTotal.Inc()
	if got := testutil.ToFloat64(MemberJoinsTotal) - before; got != 1 {
		t.Errorf("joins delta = %v, expected 1", got)
	}
}
