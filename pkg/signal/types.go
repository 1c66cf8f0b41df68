// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package signal

import (
	"time"
)

// Signal type constants
const (
	TypeMemberJoined   = "member_joined"
	TypeInviteCredited = "invite_credited"
)

// Credit sources
const (
	SourceJoin   = "join"
	SourceManual = "manual"
)

// MemberJoinedSignal is emitted once per guild join, after attribution ran.
type MemberJoinedSignal struct {
	BaseSignal

	// InviterID and Code are empty when the join could not be attributed.
	InviterID string
	Code      string
}

// NewMemberJoinedSignal creates a member joined signal.
func NewMemberJoinedSignal(context *MemberContext, inviterID, code string, timestamp time.Time) *MemberJoinedSignal {
	metadata := map[string]interface{}{
		"inviter_id": inviterID,
		"code":       code,
	}
	return &MemberJoinedSignal{
		BaseSignal: NewBaseSignal(TypeMemberJoined, context.UserID, context.GuildID, timestamp, metadata, context),
		InviterID:  inviterID,
		Code:       code,
	}
}

// Attributed reports whether the join was matched to an inviter.
func (s *MemberJoinedSignal) Attributed() bool {
	return s.InviterID != ""
}

// InviteCreditedSignal is emitted after an inviter's ledger total changed.
// The signal's user is the inviter.
type InviteCreditedSignal struct {
	BaseSignal

	Total     int
	Delta     int
	Source    string
	InviteeID string
	Code      string
	Actor     string
	Reason    string
}

// CreditEvent describes a ledger change that has already been applied.
type CreditEvent struct {
	GuildID   string
	InviterID string
	Total     int
	Delta     int
	Source    string

	// Set for join credits
	InviteeID string
	Code      string

	// Set for manual credits
	Actor  string
	Reason string
}

// NewInviteCreditedSignal creates an invite credited signal.
func NewInviteCreditedSignal(context *MemberContext, event CreditEvent, timestamp time.Time) *InviteCreditedSignal {
	metadata := map[string]interface{}{
		"total":      event.Total,
		"delta":      event.Delta,
		"source":     event.Source,
		"invitee_id": event.InviteeID,
		"code":       event.Code,
	}
	return &InviteCreditedSignal{
		BaseSignal: NewBaseSignal(TypeInviteCredited, context.UserID, context.GuildID, timestamp, metadata, context),
		Total:      event.Total,
		Delta:      event.Delta,
		Source:     event.Source,
		InviteeID:  event.InviteeID,
		Code:       event.Code,
		Actor:      event.Actor,
		Reason:     event.Reason,
	}
}
