// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package bootstrap

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/AccelByte/extend-invite-rewards/pkg/pipeline"
	"github.com/AccelByte/extend-invite-rewards/pkg/rank"
	"github.com/AccelByte/extend-invite-rewards/pkg/rule"
	ruleBuiltin "github.com/AccelByte/extend-invite-rewards/pkg/rule/builtin"
)

// InitRuleEngine creates and initializes a rule engine with rules from pipeline config.
func InitRuleEngine(pipelineConfig *pipeline.Config, thresholds rank.Thresholds) (*rule.Engine, *rule.Registry, error) {
	ruleBuiltin.RegisterRules()

	ruleConfigs := pipelineConfig.RuleConfigs()

	registry := rule.NewRegistry()
	if err := rule.RegisterRules(registry, ruleConfigs, rule.NewDependencies(thresholds)); err != nil {
		return nil, nil, fmt.Errorf("failed to register rules: %w", err)
	}

	engine := rule.NewEngine(registry)
	logrus.Infof("initialized rule engine with %d rules", registry.Count())

	return engine, registry, nil
}
