// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package builtin

import (
	"context"

	"github.com/AccelByte/extend-invite-rewards/pkg/rule"
	"github.com/AccelByte/extend-invite-rewards/pkg/signal"
)

const (
	// StarterRoleRuleID is the rule type identifier for the join welcome flow
	StarterRoleRuleID = "starter_role"
)

// StarterRoleRule fires once for every member that joins a guild,
// attributed or not, bot accounts included. Its actions grant the initiate
// role and welcome the member.
type StarterRoleRule struct {
	config rule.RuleConfig
}

// NewStarterRoleRule creates a new starter role rule.
func NewStarterRoleRule(config rule.RuleConfig) *StarterRoleRule {
	return &StarterRoleRule{config: config}
}

// ID returns the rule's unique identifier
func (r *StarterRoleRule) ID() string {
	return r.config.ID
}

// Name returns the human-readable name
func (r *StarterRoleRule) Name() string {
	return "Starter Role"
}

// SignalTypes returns the signal types this rule listens to
func (r *StarterRoleRule) SignalTypes() []string {
	return []string{signal.TypeMemberJoined}
}

// Config returns the rule configuration
func (r *StarterRoleRule) Config() rule.RuleConfig {
	return r.config
}

// Evaluate matches every join.
func (r *StarterRoleRule) Evaluate(ctx context.Context, sig signal.Signal) (bool, *rule.Trigger, error) {
	joined, ok := sig.(*signal.MemberJoinedSignal)
	if !ok {
		return false, nil, nil
	}

	trigger := rule.NewTrigger(r.config.ID, joined.UserID(), joined.GuildID(), "member joined", r.config.Priority).
		WithMetadata(rule.MetaInviterID, joined.InviterID).
		WithMetadata(rule.MetaCode, joined.Code)

	return true, trigger, nil
}
