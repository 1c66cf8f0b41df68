// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package builtin

import (
	"context"
	"fmt"

	"github.com/AccelByte/extend-invite-rewards/pkg/rank"
	"github.com/AccelByte/extend-invite-rewards/pkg/rule"
	"github.com/AccelByte/extend-invite-rewards/pkg/signal"
)

const (
	// RankPromotionRuleID is the rule type identifier for tier promotion
	RankPromotionRuleID = "rank_promotion"
)

// RankPromotionRule runs the rank engine whenever an inviter's credit changes.
// The held tier comes from the member's current roles, loaded with the signal.
type RankPromotionRule struct {
	config     rule.RuleConfig
	thresholds rank.Thresholds
}

// NewRankPromotionRule creates a rank promotion rule. Thresholds default to the
// startup configuration in deps and may be overridden by the gold_threshold and
// platinum_threshold parameters.
func NewRankPromotionRule(config rule.RuleConfig, deps *rule.Dependencies) (*RankPromotionRule, error) {
	var th rank.Thresholds
	if deps != nil {
		th = deps.Thresholds
	}
	th.Gold = config.GetInt("gold_threshold", th.Gold)
	th.Platinum = config.GetInt("platinum_threshold", th.Platinum)

	if err := th.Validate(); err != nil {
		return nil, fmt.Errorf("rule %s: %w", config.ID, err)
	}

	return &RankPromotionRule{
		config:     config,
		thresholds: th,
	}, nil
}

// ID returns the rule's unique identifier
func (r *RankPromotionRule) ID() string {
	return r.config.ID
}

// Name returns the human-readable name
func (r *RankPromotionRule) Name() string {
	return "Rank Promotion"
}

// SignalTypes returns the signal types this rule listens to
func (r *RankPromotionRule) SignalTypes() []string {
	return []string{signal.TypeInviteCredited}
}

// Config returns the rule configuration
func (r *RankPromotionRule) Config() rule.RuleConfig {
	return r.config
}

// Thresholds returns the thresholds the rule evaluates against.
func (r *RankPromotionRule) Thresholds() rank.Thresholds {
	return r.thresholds
}

// Evaluate triggers only when the rank engine decides a role change.
func (r *RankPromotionRule) Evaluate(ctx context.Context, sig signal.Signal) (bool, *rule.Trigger, error) {
	credited, ok := sig.(*signal.InviteCreditedSignal)
	if !ok {
		return false, nil, nil
	}

	memberCtx := credited.Context()
	if memberCtx == nil {
		return false, nil, fmt.Errorf("invite_credited signal for user %s has no member context", credited.UserID())
	}

	decision := rank.Evaluate(credited.Total, memberCtx.HeldTier, r.thresholds)
	if !decision.Changed() {
		return false, nil, nil
	}

	reason := fmt.Sprintf("%d invites reached %s (held %s)", credited.Total, decision.Target, memberCtx.HeldTier)
	trigger := rule.NewTrigger(r.config.ID, credited.UserID(), credited.GuildID(), reason, r.config.Priority).
		WithMetadata(rule.MetaDecision, decision).
		WithMetadata(rule.MetaTotal, credited.Total).
		WithMetadata(rule.MetaPreviousTier, memberCtx.HeldTier).
		WithMetadata(rule.MetaSource, credited.Source)

	return true, trigger, nil
}
