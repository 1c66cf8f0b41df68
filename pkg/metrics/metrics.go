// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package metrics holds the Prometheus collectors of the invite rewards pipeline.
// Collectors are package-level and registered by the metrics server via All.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "invite_rewards"

// Attribution outcomes.
const (
	AttributionMatched    = "attributed"
	AttributionUnmatched  = "unattributed"
	AttributionFetchError = "fetch_failed"
)

// Failure kinds.
const (
	FailureRoleOperation  = "role_operation"
	FailureNotification   = "notification"
	FailureMemberNotFound = "member_not_found"
	FailureFetch          = "fetch"
	FailureOther          = "other"
)

var (
	MemberJoinsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "member_joins_total",
			Help:      "Total number of member join events handled",
		},
	)

	AttributionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "attributions_total",
			Help:      "Join attribution outcomes",
		},
		[]string{"outcome"},
	)

	CreditsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "credits_total",
			Help:      "Invite credits added to the ledger, by source",
		},
		[]string{"source"},
	)

	PromotionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "promotions_total",
			Help:      "Rank promotions decided, by target tier",
		},
		[]string{"tier"},
	)

	RuleTriggersTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rule_triggers_total",
			Help:      "Total number of rule triggers",
		},
		[]string{"rule_id"},
	)

	ActionExecutionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "action_executions_total",
			Help:      "Action executions by action type and outcome",
		},
		[]string{"action_type", "outcome"},
	)

	ActionDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "action_duration_seconds",
			Help:      "Action execution time including retries",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"action_type"},
	)

	FailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "failures_total",
			Help:      "Pipeline failures by kind",
		},
		[]string{"kind"},
	)
)

// All returns every collector of the package.
func All() []prometheus.Collector {
	return []prometheus.Collector{
		MemberJoinsTotal,
		AttributionsTotal,
		CreditsTotal,
		PromotionsTotal,
		RuleTriggersTotal,
		ActionExecutionsTotal,
		ActionDuration,
		FailuresTotal,
	}
}
