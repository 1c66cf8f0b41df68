// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package pipeline

import (
	"fmt"
	"strings"

	"github.com/AccelByte/extend-invite-rewards/pkg/action"
	"github.com/AccelByte/extend-invite-rewards/pkg/rule"
)

// ValidateWiring validates that the pipeline is correctly wired.
// It checks that:
// - All enabled rules in config have registered instances
// - All enabled actions in config have registered instances
// - Enabled rules only reference enabled, registered actions
//
// This catches common mistakes like:
// - Forgetting to register a rule or action type factory
// - A factory rejecting its parameters (the error is only logged at creation)
// - A rule pointing at a disabled action
func ValidateWiring(ruleRegistry *rule.Registry, actionRegistry *action.Registry, config *Config) error {
	var errs []string

	for _, rc := range config.Rules {
		if !rc.Enabled {
			continue
		}

		if ruleRegistry.Get(rc.ID) == nil {
			errs = append(errs, fmt.Sprintf("rule '%s' (type=%s) is enabled in config but not registered", rc.ID, rc.Type))
		}

		for _, actionID := range rc.Actions {
			if actionRegistry.GetEnabled(actionID) == nil {
				errs = append(errs, fmt.Sprintf("rule '%s' references action '%s' which is disabled or not registered", rc.ID, actionID))
			}
		}
	}

	for _, ac := range config.Actions {
		if !ac.Enabled {
			continue
		}

		if actionRegistry.Get(ac.ID) == nil {
			errs = append(errs, fmt.Sprintf("action '%s' (type=%s) is enabled in config but not registered", ac.ID, ac.Type))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("pipeline wiring validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}
