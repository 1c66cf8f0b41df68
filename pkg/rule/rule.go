// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package rule

import (
	"context"
	"time"

	"github.com/AccelByte/extend-invite-rewards/pkg/rank"
	"github.com/AccelByte/extend-invite-rewards/pkg/signal"
)

// Trigger metadata keys shared by rules and actions.
const (
	MetaDecision     = "decision"
	MetaTotal        = "total"
	MetaPreviousTier = "previous_tier"
	MetaInviterID    = "inviter_id"
	MetaCode         = "code"
	MetaSource       = "source"
)

// Rule evaluates signals and emits triggers when conditions are met.
// Rules are registered in a Registry and evaluated by the Engine.
type Rule interface {
	// ID returns unique rule identifier.
	ID() string

	// Name returns human-readable rule name.
	Name() string

	// SignalTypes returns which signal types this rule handles.
	// An empty slice means the rule handles all signal types.
	SignalTypes() []string

	// Evaluate checks if the signal matches rule conditions.
	// Returns true and trigger data if rule matches, false otherwise.
	// Returns error only for unexpected failures, not rule mismatches.
	Evaluate(ctx context.Context, sig signal.Signal) (bool, *Trigger, error)

	// Config returns the rule's configuration.
	Config() RuleConfig
}

// Trigger represents a rule match that should execute actions.
type Trigger struct {
	RuleID    string                 // ID of the rule that triggered
	UserID    string                 // Member who triggered the rule
	GuildID   string                 // Guild the signal came from
	Timestamp time.Time              // When the trigger occurred
	Reason    string                 // Human-readable reason for the trigger
	Metadata  map[string]interface{} // Rule-specific data for actions
	Priority  int                    // Priority for action ordering (higher = first)
}

// NewTrigger creates a new trigger with the given parameters.
func NewTrigger(ruleID, userID, guildID, reason string, priority int) *Trigger {
	return &Trigger{
		RuleID:    ruleID,
		UserID:    userID,
		GuildID:   guildID,
		Timestamp: time.Now(),
		Reason:    reason,
		Metadata:  make(map[string]interface{}),
		Priority:  priority,
	}
}

// WithMetadata adds metadata to the trigger and returns it for chaining.
func (t *Trigger) WithMetadata(key string, value interface{}) *Trigger {
	t.Metadata[key] = value
	return t
}

// Decision returns the rank decision carried by the trigger, if any.
func (t *Trigger) Decision() (rank.Decision, bool) {
	d, ok := t.Metadata[MetaDecision].(rank.Decision)
	return d, ok
}

// GetInt returns an integer metadata value, 0 when absent.
func (t *Trigger) GetInt(key string) int {
	if v, ok := t.Metadata[key].(int); ok {
		return v
	}
	return 0
}

// GetString returns a string metadata value, empty when absent.
func (t *Trigger) GetString(key string) string {
	if v, ok := t.Metadata[key].(string); ok {
		return v
	}
	return ""
}
