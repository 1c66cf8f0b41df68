// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/AccelByte/extend-invite-rewards/pkg/invite"
	"github.com/bwmarrin/discordgo"
)

// Discord implements the platform interfaces over a discordgo session.
type Discord struct {
	session *discordgo.Session
}

// NewDiscord creates a Discord adapter. The session may be opened later.
func NewDiscord(session *discordgo.Session) *Discord {
	return &Discord{
		session: session,
	}
}

// FetchInvites implements invite.Source.
func (d *Discord) FetchInvites(ctx context.Context, guildID string) (invite.Snapshot, error) {
	invites, err := d.session.GuildInvites(guildID, discordgo.WithContext(ctx))
	if err != nil {
		return invite.Snapshot{}, fmt.Errorf("failed to fetch invites for guild %s: %w", guildID, err)
	}

	records := make([]invite.Record, 0, len(invites))
	for _, inv := range invites {
		if inv == nil {
			continue
		}
		r := invite.Record{
			Code: inv.Code,
			Uses: inv.Uses,
		}
		if inv.Inviter != nil {
			r.InviterID = inv.Inviter.ID
		}
		records = append(records, r)
	}

	return invite.NewSnapshot(records...), nil
}

// GrantRole implements RoleDirectory.
func (d *Discord) GrantRole(ctx context.Context, guildID, userID, roleID string) error {
	if err := d.session.GuildMemberRoleAdd(guildID, userID, roleID, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("%w: grant role %s to user %s: %v", ErrRoleOperation, roleID, userID, err)
	}
	return nil
}

// RevokeRole implements RoleDirectory.
func (d *Discord) RevokeRole(ctx context.Context, guildID, userID, roleID string) error {
	if err := d.session.GuildMemberRoleRemove(guildID, userID, roleID, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("%w: revoke role %s from user %s: %v", ErrRoleOperation, roleID, userID, err)
	}
	return nil
}

// FetchMember implements MemberDirectory.
func (d *Discord) FetchMember(ctx context.Context, guildID, userID string) (*MemberInfo, error) {
	m, err := d.session.GuildMember(guildID, userID, discordgo.WithContext(ctx))
	if err != nil {
		if isUnknownMember(err) {
			return nil, fmt.Errorf("%w: user %s in guild %s", ErrMemberNotFound, userID, guildID)
		}
		return nil, fmt.Errorf("failed to fetch member %s: %w", userID, err)
	}
	if m == nil || m.User == nil {
		return nil, fmt.Errorf("%w: user %s in guild %s", ErrMemberNotFound, userID, guildID)
	}

	return MemberFromDiscord(guildID, m), nil
}

// MemberFromDiscord converts a discordgo member.
func MemberFromDiscord(guildID string, m *discordgo.Member) *MemberInfo {
	info := &MemberInfo{
		GuildID: guildID,
		RoleIDs: append([]string(nil), m.Roles...),
	}
	if m.GuildID != "" {
		info.GuildID = m.GuildID
	}
	if m.User != nil {
		info.UserID = m.User.ID
		info.Username = m.User.Username
		info.Tag = m.User.String()
		info.AvatarURL = m.User.AvatarURL("")
		info.Bot = m.User.Bot
	}
	return info
}

// SendChannelMessage implements Notifier.
func (d *Discord) SendChannelMessage(ctx context.Context, channelID string, msg Message) error {
	send := toMessageSend(msg)
	if msg.ReplyToMessageID != "" {
		send.Reference = &discordgo.MessageReference{
			MessageID: msg.ReplyToMessageID,
			ChannelID: channelID,
		}
	}

	if _, err := d.session.ChannelMessageSendComplex(channelID, send, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("%w: channel %s: %v", ErrNotification, channelID, err)
	}
	return nil
}

// SendDirectMessage implements Notifier.
func (d *Discord) SendDirectMessage(ctx context.Context, userID string, msg Message) error {
	ch, err := d.session.UserChannelCreate(userID, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("%w: open DM with user %s: %v", ErrNotification, userID, err)
	}

	if _, err := d.session.ChannelMessageSendComplex(ch.ID, toMessageSend(msg), discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("%w: DM user %s: %v", ErrNotification, userID, err)
	}
	return nil
}

// IsAdmin implements PermissionChecker.
func (d *Discord) IsAdmin(ctx context.Context, guildID, channelID, userID string) (bool, error) {
	perms, err := d.session.UserChannelPermissions(userID, channelID)
	if err != nil {
		return false, fmt.Errorf("failed to read permissions of user %s: %w", userID, err)
	}
	return perms&(discordgo.PermissionAdministrator|discordgo.PermissionManageServer) != 0, nil
}

// Guilds implements GuildDirectory from the session state cache.
func (d *Discord) Guilds() []GuildSummary {
	if d.session.State == nil {
		return nil
	}
	d.session.State.RLock()
	defer d.session.State.RUnlock()

	out := make([]GuildSummary, 0, len(d.session.State.Guilds))
	for _, g := range d.session.State.Guilds {
		out = append(out, GuildSummary{
			ID:          g.ID,
			Name:        g.Name,
			MemberCount: g.MemberCount,
		})
	}
	return out
}

// BotTag implements GuildDirectory. Empty until the gateway is ready.
func (d *Discord) BotTag() string {
	if d.session.State == nil || d.session.State.User == nil {
		return ""
	}
	return d.session.State.User.String()
}

func isUnknownMember(err error) bool {
	var restErr *discordgo.RESTError
	if !errors.As(err, &restErr) {
		return false
	}
	if restErr.Message != nil {
		switch restErr.Message.Code {
		case discordgo.ErrCodeUnknownMember, discordgo.ErrCodeUnknownUser:
			return true
		}
	}
	return restErr.Response != nil && restErr.Response.StatusCode == http.StatusNotFound
}

func toMessageSend(msg Message) *discordgo.MessageSend {
	send := &discordgo.MessageSend{
		Content: msg.Content,
	}
	if msg.Embed != nil {
		send.Embeds = []*discordgo.MessageEmbed{toDiscordEmbed(msg.Embed)}
	}
	return send
}

func toDiscordEmbed(e *Embed) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       e.Title,
		Description: e.Description,
		Color:       e.Color,
	}
	for _, f := range e.Fields {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   f.Name,
			Value:  f.Value,
			Inline: f.Inline,
		})
	}
	if e.ThumbnailURL != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: e.ThumbnailURL}
	}
	if e.Footer != "" {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: e.Footer}
	}
	if !e.Timestamp.IsZero() {
		embed.Timestamp = e.Timestamp.Format(time.RFC3339)
	}
	return embed
}
