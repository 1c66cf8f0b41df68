// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package service

import (
	"context"
)

// Service interfaces for the chat platform capabilities the pipeline uses.
// The Discord adapter implements all of them; tests use pkg/service/mock.
//
// The invite source lives in pkg/invite (invite.Source) because the
// snapshot type is defined there.

// RoleDirectory grants and revokes guild roles.
// Both operations are expected to be idempotent on the platform side.
type RoleDirectory interface {
	GrantRole(ctx context.Context, guildID, userID, roleID string) error
	RevokeRole(ctx context.Context, guildID, userID, roleID string) error
}

// MemberDirectory looks up guild members.
type MemberDirectory interface {
	// FetchMember returns ErrMemberNotFound when the user is not in the guild.
	FetchMember(ctx context.Context, guildID, userID string) (*MemberInfo, error)
}

// Notifier delivers channel messages and direct messages.
type Notifier interface {
	SendChannelMessage(ctx context.Context, channelID string, msg Message) error
	SendDirectMessage(ctx context.Context, userID string, msg Message) error
}

// PermissionChecker answers whether a user may run admin commands in a channel.
type PermissionChecker interface {
	IsAdmin(ctx context.Context, guildID, channelID, userID string) (bool, error)
}

// GuildDirectory exposes cached guild information for status reporting.
type GuildDirectory interface {
	Guilds() []GuildSummary
	BotTag() string
}
