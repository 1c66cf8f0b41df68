// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package pipeline

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/AccelByte/extend-invite-rewards/pkg/action"
	"github.com/AccelByte/extend-invite-rewards/pkg/rule"
)

// Config represents the complete pipeline configuration.
type Config struct {
	Rules   []RuleConfig   `yaml:"rules"`
	Actions []ActionConfig `yaml:"actions"`
}

// RuleConfig represents a rule configuration entry.
type RuleConfig struct {
	ID              string                 `yaml:"id"`
	Name            string                 `yaml:"name,omitempty"`
	Type            string                 `yaml:"type"`
	Enabled         bool                   `yaml:"enabled"`
	Priority        int                    `yaml:"priority,omitempty"`
	Actions         []string               `yaml:"actions,omitempty"` // Action IDs to execute when rule triggers
	StopOnError     bool                   `yaml:"stop_on_error,omitempty"`
	RollbackOnError bool                   `yaml:"rollback_on_error,omitempty"`
	Parameters      map[string]interface{} `yaml:"parameters,omitempty"`
}

// ActionConfig represents an action configuration entry.
type ActionConfig struct {
	ID         string                 `yaml:"id"`
	Name       string                 `yaml:"name,omitempty"`
	Type       string                 `yaml:"type"`
	Enabled    bool                   `yaml:"enabled"`
	Retry      *action.RetryConfig    `yaml:"retry,omitempty"`
	Parameters map[string]interface{} `yaml:"parameters,omitempty"`
}

// ToRuleConfig converts the entry for the rule factory.
func (rc RuleConfig) ToRuleConfig() rule.RuleConfig {
	return rule.RuleConfig{
		ID:         rc.ID,
		Name:       rc.Name,
		Type:       rc.Type,
		Enabled:    rc.Enabled,
		Priority:   rc.Priority,
		Parameters: rc.Parameters,
	}
}

// Policy returns the executor policy of the rule's action list.
func (rc RuleConfig) Policy() action.Policy {
	return action.Policy{
		StopOnError:     rc.StopOnError,
		RollbackOnError: rc.RollbackOnError,
	}
}

// ToActionConfig converts the entry for the action factory.
func (ac ActionConfig) ToActionConfig() action.ActionConfig {
	return action.ActionConfig{
		ID:         ac.ID,
		Name:       ac.Name,
		Type:       ac.Type,
		Enabled:    ac.Enabled,
		Retry:      ac.Retry,
		Parameters: ac.Parameters,
	}
}

// RuleConfigs returns all rule entries converted for the rule factory.
func (c *Config) RuleConfigs() []rule.RuleConfig {
	out := make([]rule.RuleConfig, 0, len(c.Rules))
	for _, rc := range c.Rules {
		out = append(out, rc.ToRuleConfig())
	}
	return out
}

// ActionConfigs returns all action entries converted for the action factory.
func (c *Config) ActionConfigs() []action.ActionConfig {
	out := make([]action.ActionConfig, 0, len(c.Actions))
	for _, ac := range c.Actions {
		out = append(out, ac.ToActionConfig())
	}
	return out
}

// LoadConfig loads pipeline configuration from a YAML file.
// Supports environment variable expansion in the form ${VAR_NAME} or ${VAR_NAME:default}.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return ParseConfig(data)
}

// ParseConfig parses and validates pipeline configuration from YAML bytes.
func ParseConfig(data []byte) (*Config, error) {
	expanded := expandEnvVars(string(data))

	var config Config
	if err := yaml.Unmarshal([]byte(expanded), &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Validate validates the configuration for common errors.
func (c *Config) Validate() error {
	ruleIDs := make(map[string]bool)
	for _, rc := range c.Rules {
		if rc.ID == "" {
			return fmt.Errorf("rule with empty ID found")
		}
		if ruleIDs[rc.ID] {
			return fmt.Errorf("duplicate rule ID: %s", rc.ID)
		}
		ruleIDs[rc.ID] = true

		if rc.Type == "" {
			return fmt.Errorf("rule %s has empty type", rc.ID)
		}
		if rc.RollbackOnError && !rc.StopOnError {
			return fmt.Errorf("rule %s sets rollback_on_error without stop_on_error", rc.ID)
		}
	}

	actionIDs := make(map[string]bool)
	for _, ac := range c.Actions {
		if ac.ID == "" {
			return fmt.Errorf("action with empty ID found")
		}
		if actionIDs[ac.ID] {
			return fmt.Errorf("duplicate action ID: %s", ac.ID)
		}
		actionIDs[ac.ID] = true

		if ac.Type == "" {
			return fmt.Errorf("action %s has empty type", ac.ID)
		}
		if ac.Retry != nil {
			if err := ac.Retry.Validate(); err != nil {
				return fmt.Errorf("action %s: %w", ac.ID, err)
			}
		}
	}

	for _, rc := range c.Rules {
		for _, actionID := range rc.Actions {
			if !actionIDs[actionID] {
				return fmt.Errorf("rule %s references unknown action: %s", rc.ID, actionID)
			}
		}
	}

	return nil
}

// expandEnvVars expands environment variables in the format ${VAR} or ${VAR:default}.
func expandEnvVars(s string) string {
	return os.Expand(s, func(key string) string {
		parts := strings.SplitN(key, ":", 2)
		varName := parts[0]
		defaultValue := ""
		if len(parts) == 2 {
			defaultValue = parts[1]
		}

		value := os.Getenv(varName)
		if value == "" {
			return defaultValue
		}
		return value
	})
}
