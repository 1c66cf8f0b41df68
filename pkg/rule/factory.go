// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package rule

import (
	"fmt"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"
)

// RuleFactory is a function that creates a rule from a configuration.
type RuleFactory func(config RuleConfig, deps *Dependencies) (Rule, error)

var (
	factoriesMu sync.RWMutex
	factories   = make(map[string]RuleFactory)
)

// RegisterRuleType registers a factory function for a rule type.
// Registering the same type again replaces the factory.
func RegisterRuleType(ruleType string, factory RuleFactory) {
	factoriesMu.Lock()
	defer factoriesMu.Unlock()

	factories[ruleType] = factory
	logrus.Debugf("registered rule type: %s", ruleType)
}

// RegisteredTypes returns the known rule types, sorted.
func RegisteredTypes() []string {
	factoriesMu.RLock()
	defer factoriesMu.RUnlock()

	types := make([]string, 0, len(factories))
	for t := range factories {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// CreateRule creates a rule instance based on the configuration.
// Disabled rules yield (nil, nil). Returns an error if the rule type is unknown.
func CreateRule(config RuleConfig, deps *Dependencies) (Rule, error) {
	if !config.Enabled {
		logrus.Infof("skipping disabled rule: %s", config.ID)
		return nil, nil
	}

	logrus.Infof("creating rule: id=%s, type=%s, priority=%d", config.ID, config.Type, config.Priority)

	factoriesMu.RLock()
	factory, exists := factories[config.Type]
	factoriesMu.RUnlock()
	if !exists {
		return nil, fmt.Errorf("unknown rule type: %s", config.Type)
	}

	return factory(config, deps)
}

// CreateRules creates multiple rule instances from a list of configurations.
// Returns all successfully created rules and any errors encountered.
func CreateRules(configs []RuleConfig, deps *Dependencies) ([]Rule, []error) {
	var rules []Rule
	var errs []error

	for _, config := range configs {
		rule, err := CreateRule(config, deps)
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to create rule %s: %w", config.ID, err))
			continue
		}

		if rule != nil {
			rules = append(rules, rule)
		}
	}

	return rules, errs
}

// RegisterRules creates rules from configs and registers them.
// Creation errors are logged; unregistered rules are caught later by wiring validation.
func RegisterRules(registry *Registry, configs []RuleConfig, deps *Dependencies) error {
	rules, errs := CreateRules(configs, deps)

	if len(errs) > 0 {
		logrus.Warnf("encountered %d errors while creating rules", len(errs))
		for _, err := range errs {
			logrus.Warnf("rule creation error: %v", err)
		}
	}

	for _, rule := range rules {
		if err := registry.Register(rule); err != nil {
			return fmt.Errorf("failed to register rule %s: %w", rule.ID(), err)
		}
	}

	logrus.Infof("registered %d rules", len(rules))
	return nil
}
