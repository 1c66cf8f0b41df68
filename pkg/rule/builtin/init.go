// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package builtin

import (
	"github.com/AccelByte/extend-invite-rewards/pkg/rule"
)

// RegisterRules registers all built-in rule types with the factory.
func RegisterRules() {
	rule.RegisterRuleType(StarterRoleRuleID, func(config rule.RuleConfig, deps *rule.Dependencies) (rule.Rule, error) {
		return NewStarterRoleRule(config), nil
	})

	rule.RegisterRuleType(RankPromotionRuleID, func(config rule.RuleConfig, deps *rule.Dependencies) (rule.Rule, error) {
		r, err := NewRankPromotionRule(config, deps)
		if err != nil {
			return nil, err
		}
		return r, nil
	})
}
