// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package mock

import (
	"context"
	"fmt"
	"sync"

	"github.com/AccelByte/extend-invite-rewards/pkg/invite"
	"github.com/AccelByte/extend-invite-rewards/pkg/service"
)

// Platform is an in-memory chat platform for testing.
// It implements invite.Source and every interface in pkg/service.
type Platform struct {
	mu sync.Mutex

	// Invites holds the live invite list per guild, returned by FetchInvites.
	Invites map[string][]invite.Record

	// Members holds guild members by guild ID then user ID.
	Members map[string]map[string]*service.MemberInfo

	// Admins holds user IDs allowed to run admin commands.
	Admins map[string]bool

	// GuildList is returned by Guilds.
	GuildList []service.GuildSummary
	Tag       string

	// Failure injection
	FetchInvitesErr error
	GrantRoleErr    error
	RevokeRoleErr   error
	FetchMemberErr  error
	ChannelSendErr  error
	DirectSendErr   error

	// Call tracking
	FetchInvitesCalls []string
	GrantRoleCalls    []RoleCall
	RevokeRoleCalls   []RoleCall
	ChannelMessages   []ChannelMessage
	DirectMessages    []DirectMessage
}

// RoleCall tracks parameters for GrantRole and RevokeRole calls
type RoleCall struct {
	GuildID string
	UserID  string
	RoleID  string
}

// ChannelMessage tracks a SendChannelMessage call
type ChannelMessage struct {
	ChannelID string
	Message   service.Message
}

// DirectMessage tracks a SendDirectMessage call
type DirectMessage struct {
	UserID  string
	Message service.Message
}

// NewPlatform creates an empty platform.
func NewPlatform() *Platform {
	return &Platform{
		Invites: make(map[string][]invite.Record),
		Members: make(map[string]map[string]*service.MemberInfo),
		Admins:  make(map[string]bool),
	}
}

// AddMember registers a member with the given roles.
func (p *Platform) AddMember(guildID, userID string, roleIDs ...string) *service.MemberInfo {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.Members[guildID] == nil {
		p.Members[guildID] = make(map[string]*service.MemberInfo)
	}
	m := &service.MemberInfo{
		UserID:   userID,
		GuildID:  guildID,
		Username: "user-" + userID,
		Tag:      "user-" + userID,
		RoleIDs:  append([]string(nil), roleIDs...),
	}
	p.Members[guildID][userID] = m
	return m
}

// RemoveMember simulates a member leaving the guild.
func (p *Platform) RemoveMember(guildID, userID string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	delete(p.Members[guildID], userID)
}

// SetInvites replaces the live invite list of a guild.
func (p *Platform) SetInvites(guildID string, records ...invite.Record) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.Invites[guildID] = append([]invite.Record(nil), records...)
}

// UseInvite increments the uses of a live invite code.
func (p *Platform) UseInvite(guildID, code string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i := range p.Invites[guildID] {
		if p.Invites[guildID][i].Code == code {
			p.Invites[guildID][i].Uses++
		}
	}
}

// HasRole reports whether a member currently holds a role.
func (p *Platform) HasRole(guildID, userID, roleID string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	m, ok := p.Members[guildID][userID]
	if !ok {
		return false
	}
	return m.HasRole(roleID)
}

// FetchInvites implements invite.Source.
func (p *Platform) FetchInvites(ctx context.Context, guildID string) (invite.Snapshot, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.FetchInvitesCalls = append(p.FetchInvitesCalls, guildID)
	if p.FetchInvitesErr != nil {
		return invite.Snapshot{}, p.FetchInvitesErr
	}
	return invite.NewSnapshot(p.Invites[guildID]...), nil
}

// GrantRole implements service.RoleDirectory. Granting a held role is a no-op.
func (p *Platform) GrantRole(ctx context.Context, guildID, userID, roleID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.GrantRoleCalls = append(p.GrantRoleCalls, RoleCall{GuildID: guildID, UserID: userID, RoleID: roleID})
	if p.GrantRoleErr != nil {
		return fmt.Errorf("%w: %v", service.ErrRoleOperation, p.GrantRoleErr)
	}

	m, ok := p.Members[guildID][userID]
	if !ok {
		return fmt.Errorf("%w: user %s", service.ErrMemberNotFound, userID)
	}
	if !m.HasRole(roleID) {
		m.RoleIDs = append(m.RoleIDs, roleID)
	}
	return nil
}

// RevokeRole implements service.RoleDirectory.
func (p *Platform) RevokeRole(ctx context.Context, guildID, userID, roleID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.RevokeRoleCalls = append(p.RevokeRoleCalls, RoleCall{GuildID: guildID, UserID: userID, RoleID: roleID})
	if p.RevokeRoleErr != nil {
		return fmt.Errorf("%w: %v", service.ErrRoleOperation, p.RevokeRoleErr)
	}

	m, ok := p.Members[guildID][userID]
	if !ok {
		return fmt.Errorf("%w: user %s", service.ErrMemberNotFound, userID)
	}
	kept := m.RoleIDs[:0]
	for _, id := range m.RoleIDs {
		if id != roleID {
			kept = append(kept, id)
		}
	}
	m.RoleIDs = kept
	return nil
}

// FetchMember implements service.MemberDirectory. It returns a copy.
func (p *Platform) FetchMember(ctx context.Context, guildID, userID string) (*service.MemberInfo, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.FetchMemberErr != nil {
		return nil, p.FetchMemberErr
	}
	m, ok := p.Members[guildID][userID]
	if !ok {
		return nil, fmt.Errorf("%w: user %s in guild %s", service.ErrMemberNotFound, userID, guildID)
	}
	cp := *m
	cp.RoleIDs = append([]string(nil), m.RoleIDs...)
	return &cp, nil
}

// SendChannelMessage implements service.Notifier.
func (p *Platform) SendChannelMessage(ctx context.Context, channelID string, msg service.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ChannelSendErr != nil {
		return fmt.Errorf("%w: %v", service.ErrNotification, p.ChannelSendErr)
	}
	p.ChannelMessages = append(p.ChannelMessages, ChannelMessage{ChannelID: channelID, Message: msg})
	return nil
}

// SendDirectMessage implements service.Notifier.
func (p *Platform) SendDirectMessage(ctx context.Context, userID string, msg service.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.DirectSendErr != nil {
		return fmt.Errorf("%w: %v", service.ErrNotification, p.DirectSendErr)
	}
	p.DirectMessages = append(p.DirectMessages, DirectMessage{UserID: userID, Message: msg})
	return nil
}

// IsAdmin implements service.PermissionChecker.
func (p *Platform) IsAdmin(ctx context.Context, guildID, channelID, userID string) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.Admins[userID], nil
}

// Guilds implements service.GuildDirectory.
func (p *Platform) Guilds() []service.GuildSummary {
	p.mu.Lock()
	defer p.mu.Unlock()

	return append([]service.GuildSummary(nil), p.GuildList...)
}

// BotTag implements service.GuildDirectory.
func (p *Platform) BotTag() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.Tag
}

// MessagesTo returns the channel messages sent to a channel.
func (p *Platform) MessagesTo(channelID string) []service.Message {
	p.mu.Lock()
	defer p.mu.Unlock()

	var out []service.Message
	for _, m := range p.ChannelMessages {
		if m.ChannelID == channelID {
			out = append(out, m.Message)
		}
	}
	return out
}
