// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package signal

import (
	"context"
	"fmt"
	"time"

	"github.com/AccelByte/extend-invite-rewards/pkg/rank"
	"github.com/AccelByte/extend-invite-rewards/pkg/service"
	"github.com/sirupsen/logrus"
)

// MemberContextLoader provides member context for signal processing.
type MemberContextLoader interface {
	Load(ctx context.Context, guildID, userID string) (*MemberContext, error)
}

// Processor converts guild events into domain signals with enriched context.
type Processor struct {
	members service.MemberDirectory
	roles   rank.RoleSet
	now     func() time.Time
}

// NewProcessor creates a new signal processor.
func NewProcessor(members service.MemberDirectory, roles rank.RoleSet) *Processor {
	return &Processor{
		members: members,
		roles:   roles,
		now:     time.Now,
	}
}

// Load fetches the member and derives the tier it currently holds.
// Returns an error wrapping service.ErrMemberNotFound if the member left.
func (p *Processor) Load(ctx context.Context, guildID, userID string) (*MemberContext, error) {
	member, err := p.members.FetchMember(ctx, guildID, userID)
	if err != nil {
		return nil, err
	}
	return p.contextFor(guildID, member), nil
}

func (p *Processor) contextFor(guildID string, member *service.MemberInfo) *MemberContext {
	return &MemberContext{
		UserID:   member.UserID,
		GuildID:  guildID,
		Member:   member,
		HeldTier: p.roles.HeldTier(member.RoleIDs),
	}
}

// ProcessMemberJoin converts a join into a MemberJoinedSignal.
// The member is taken from the gateway event, so no lookup is needed.
func (p *Processor) ProcessMemberJoin(guildID string, member *service.MemberInfo, inviterID, code string) (*MemberJoinedSignal, error) {
	if member == nil || member.UserID == "" {
		return nil, fmt.Errorf("member is empty in join event")
	}
	if guildID == "" {
		return nil, fmt.Errorf("guild ID is empty in join event")
	}

	sig := NewMemberJoinedSignal(p.contextFor(guildID, member), inviterID, code, p.now())
	logrus.Debugf("processed join of user %s in guild %s into member_joined signal", member.UserID, guildID)
	return sig, nil
}

// ProcessCredit converts an applied ledger change into an InviteCreditedSignal.
// The inviter is fetched fresh so the held tier reflects current roles.
func (p *Processor) ProcessCredit(ctx context.Context, event CreditEvent) (*InviteCreditedSignal, error) {
	if event.InviterID == "" {
		return nil, fmt.Errorf("inviter ID is empty in credit event")
	}

	memberCtx, err := p.Load(ctx, event.GuildID, event.InviterID)
	if err != nil {
		return nil, fmt.Errorf("failed to load member context for user %s: %w", event.InviterID, err)
	}

	sig := NewInviteCreditedSignal(memberCtx, event, p.now())
	logrus.Debugf("processed %s credit for user %s into invite_credited signal (total=%d, held=%s)",
		event.Source, event.InviterID, event.Total, memberCtx.HeldTier)
	return sig, nil
}
