// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package action

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ActionConfig is the base configuration for all actions.
// This is typically loaded from the pipeline YAML file.
type ActionConfig struct {
	ID         string                 `yaml:"id" json:"id"`
	Name       string                 `yaml:"name" json:"name"`
	Type       string                 `yaml:"type" json:"type"` // e.g., "grant_tier_role"
	Enabled    bool                   `yaml:"enabled" json:"enabled"`
	Retry      *RetryConfig           `yaml:"retry,omitempty" json:"retry,omitempty"`
	Parameters map[string]interface{} `yaml:"parameters" json:"parameters"`
}

// RetryConfig defines retry behavior for failed actions.
type RetryConfig struct {
	MaxAttempts int           `yaml:"max_attempts" json:"max_attempts"`
	Delay       time.Duration `yaml:"delay" json:"delay"`
	Backoff     string        `yaml:"backoff" json:"backoff"` // "constant", "exponential"
}

// Validate checks the retry settings.
func (r *RetryConfig) Validate() error {
	if r.MaxAttempts < 1 {
		return fmt.Errorf("%w: retry max_attempts must be at least 1, got %d", ErrInvalidConfig, r.MaxAttempts)
	}
	if r.Delay < 0 {
		return fmt.Errorf("%w: retry delay must not be negative", ErrInvalidConfig)
	}
	switch r.Backoff {
	case "", "constant", "exponential":
		return nil
	}
	return fmt.Errorf("%w: unknown retry backoff %q", ErrInvalidConfig, r.Backoff)
}

// GetParameterInt retrieves an integer parameter with a default.
func (c *ActionConfig) GetParameterInt(key string, defaultValue int) int {
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

// GetParameterString retrieves a string parameter with a default.
func (c *ActionConfig) GetParameterString(key string, defaultValue string) string {
	if val, ok := c.Parameters[key]; ok {
		if strVal, ok := val.(string); ok {
			return strVal
		}
	}
	return defaultValue
}

// GetParameterBool retrieves a boolean parameter with a default.
func (c *ActionConfig) GetParameterBool(key string, defaultValue bool) bool {
	if val, ok := c.Parameters[key]; ok {
		if boolVal, ok := val.(bool); ok {
			return boolVal
		}
	}
	return defaultValue
}

// GetParameterColor retrieves an embed color given as "#RRGGBB", "0xRRGGBB" or an integer.
func (c *ActionConfig) GetParameterColor(key string, defaultValue int) (int, error) {
	val, ok := c.Parameters[key]
	if !ok {
		return defaultValue, nil
	}

	switch v := val.(type) {
	case int:
		return v, nil
	case string:
		s := strings.TrimPrefix(strings.TrimPrefix(strings.ToLower(v), "#"), "0x")
		n, err := strconv.ParseInt(s, 16, 32)
		if err != nil || n < 0 || n > 0xFFFFFF {
			return 0, fmt.Errorf("%w: parameter %s is not a color: %q", ErrInvalidConfig, key, v)
		}
		return int(n), nil
	}
	return 0, fmt.Errorf("%w: parameter %s has unsupported type %T", ErrInvalidConfig, key, val)
}
