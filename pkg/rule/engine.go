// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package rule

import (
	"context"
	"sort"

	"github.com/AccelByte/extend-invite-rewards/pkg/signal"
	"github.com/sirupsen/logrus"
)

// Engine evaluates signals against registered rules and returns triggers.
type Engine struct {
	registry *Registry
}

// NewEngine creates a new rule evaluation engine.
func NewEngine(registry *Registry) *Engine {
	return &Engine{
		registry: registry,
	}
}

// Evaluate evaluates a signal against all matching rules.
// Returns a list of triggers for rules that matched, highest priority first.
func (e *Engine) Evaluate(ctx context.Context, sig signal.Signal) ([]*Trigger, error) {
	if sig == nil {
		return nil, nil
	}

	rules := e.registry.GetBySignalType(sig.Type())
	if len(rules) == 0 {
		logrus.Debugf("no rules found for signal type '%s'", sig.Type())
		return nil, nil
	}

	logrus.Debugf("evaluating signal type '%s' against %d rules", sig.Type(), len(rules))

	var triggers []*Trigger

	for _, rule := range rules {
		matched, trigger, err := rule.Evaluate(ctx, sig)
		if err != nil {
			// One failing rule never blocks the others
			logrus.Errorf("rule %s evaluation failed: %v", rule.ID(), err)
			continue
		}

		if matched && trigger != nil {
			logrus.Infof("rule %s triggered for user %s in guild %s: %s", rule.ID(), sig.UserID(), sig.GuildID(), trigger.Reason)
			triggers = append(triggers, trigger)
		}
	}

	// Ties keep rule ID order so the outcome does not depend on map iteration
	sort.SliceStable(triggers, func(i, j int) bool {
		if triggers[i].Priority != triggers[j].Priority {
			return triggers[i].Priority > triggers[j].Priority
		}
		return triggers[i].RuleID < triggers[j].RuleID
	})

	return triggers, nil
}

// GetRegistry returns the rule registry used by this engine.
func (e *Engine) GetRegistry() *Registry {
	return e.registry
}
