// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package signal

import (
	"time"

	"github.com/AccelByte/extend-invite-rewards/pkg/rank"
	"github.com/AccelByte/extend-invite-rewards/pkg/service"
)

// Signal represents a normalized guild event with member context.
// Signals are produced by the Processor from gateway events and
// are consumed by the Rule Engine for evaluation.
type Signal interface {
	// Type returns the signal type identifier (e.g., "member_joined", "invite_credited").
	Type() string

	// UserID returns the member the signal is about.
	UserID() string

	// GuildID returns the guild the signal happened in.
	GuildID() string

	// Timestamp returns when the signal occurred.
	Timestamp() time.Time

	// Metadata returns additional signal-specific data.
	Metadata() map[string]interface{}

	// Context returns the member context loaded at processing time.
	Context() *MemberContext
}

// MemberContext is the member state rules and actions work with.
// HeldTier is derived from the member's roles when the context is loaded;
// roles are the only record of past promotions.
type MemberContext struct {
	UserID   string
	GuildID  string
	Member   *service.MemberInfo
	HeldTier rank.Tier
}

// Mention returns the mention markup for the member.
func (c *MemberContext) Mention() string {
	return service.Mention(c.UserID)
}

// BaseSignal provides the common Signal fields for concrete signal types.
type BaseSignal struct {
	signalType string
	userID     string
	guildID    string
	timestamp  time.Time
	metadata   map[string]interface{}
	context    *MemberContext
}

// NewBaseSignal creates a BaseSignal. A nil metadata map is replaced by an empty one.
func NewBaseSignal(signalType, userID, guildID string, timestamp time.Time, metadata map[string]interface{}, context *MemberContext) BaseSignal {
	if metadata == nil {
		metadata = make(map[string]interface{})
	}
	return BaseSignal{
		signalType: signalType,
		userID:     userID,
		guildID:    guildID,
		timestamp:  timestamp,
		metadata:   metadata,
		context:    context,
	}
}

// Type implements Signal interface.
func (s *BaseSignal) Type() string {
	return s.signalType
}

// UserID implements Signal interface.
func (s *BaseSignal) UserID() string {
	return s.userID
}

// GuildID implements Signal interface.
func (s *BaseSignal) GuildID() string {
	return s.guildID
}

// Timestamp implements Signal interface.
func (s *BaseSignal) Timestamp() time.Time {
	return s.timestamp
}

// Metadata implements Signal interface.
func (s *BaseSignal) Metadata() map[string]interface{} {
	return s.metadata
}

// Context implements Signal interface.
func (s *BaseSignal) Context() *MemberContext {
	return s.context
}
