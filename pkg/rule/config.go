// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package rule

// RuleConfig is the base configuration for all rules.
// This is typically loaded from the pipeline YAML file.
type RuleConfig struct {
	ID         string                 `yaml:"id" json:"id"`
	Name       string                 `yaml:"name" json:"name"`
	Type       string                 `yaml:"type" json:"type"` // e.g., "rank_promotion"
	Enabled    bool                   `yaml:"enabled" json:"enabled"`
	Priority   int                    `yaml:"priority" json:"priority"`
	Parameters map[string]interface{} `yaml:"parameters" json:"parameters"`
}

// GetInt retrieves an integer value from parameters with a default.
// YAML numbers may decode as int or float64; both are accepted.
func (c *RuleConfig) GetInt(key string, defaultValue int) int {
	switch v := c.Parameters[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return defaultValue
}

// GetString retrieves a string value from parameters with a default.
func (c *RuleConfig) GetString(key string, defaultValue string) string {
	if val, ok := c.Parameters[key]; ok {
		if strVal, ok := val.(string); ok {
			return strVal
		}
	}
	return defaultValue
}

// GetBool retrieves a boolean value from parameters with a default.
func (c *RuleConfig) GetBool(key string, defaultValue bool) bool {
	if val, ok := c.Parameters[key]; ok {
		if boolVal, ok := val.(bool); ok {
			return boolVal
		}
	}
	return defaultValue
}
