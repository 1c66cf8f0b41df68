// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestMetricsServer_ExposesCollectors(t *testing.T) {
	counter := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "invite_rewards_test_total",
		Help: "Test counter",
	})
	counter.Add(3)

	m := NewMetricsServer(8080, "/metrics", counter)
	if err := m.Setup(); err != nil {
		t.Fatalf("Setup() error = %v", err)
	}

	rec := httptest.NewRecorder()
	m.server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "invite_rewards_test_total 3") {
		t.Errorf("expected the custom counter in the output")
	}
	if !strings.Contains(body, "go_goroutines") {
		t.Errorf("expected Go runtime metrics in the output")
	}
}

func TestMetricsServer_DuplicateCollector(t *testing.T) {
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "dup_total", Help: "dup"})

	m := NewMetricsServer(8080, "/metrics", counter, counter)
	if err := m.Setup(); err == nil {
		t.Error("expected an error registering the same collector twice")
	}
}
