// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package service

import (
	"errors"
	"time"
)

var (
	// ErrMemberNotFound indicates the member left the guild or never existed.
	ErrMemberNotFound = errors.New("member not found")

	// ErrRoleOperation indicates the platform rejected a role grant or revoke.
	ErrRoleOperation = errors.New("role operation failed")

	// ErrNotification indicates a channel message or DM could not be delivered.
	ErrNotification = errors.New("notification failed")
)

// MemberInfo is the subset of a guild member the pipeline needs.
type MemberInfo struct {
	UserID    string
	GuildID   string
	Username  string
	Tag       string
	AvatarURL string
	RoleIDs   []string
	Bot       bool
}

// Mention returns the platform mention markup for the member.
func (m *MemberInfo) Mention() string {
	return Mention(m.UserID)
}

// HasRole reports whether the member holds a role.
func (m *MemberInfo) HasRole(roleID string) bool {
	for _, id := range m.RoleIDs {
		if id == roleID {
			return true
		}
	}
	return false
}

// Mention returns the mention markup for a user ID.
func Mention(userID string) string {
	return "<@" + userID + ">"
}

// Message is a platform-neutral outgoing message.
type Message struct {
	Content          string
	Embed            *Embed
	ReplyToMessageID string
}

// Embed is a rich message card.
type Embed struct {
	Title        string
	Description  string
	Color        int
	Fields       []EmbedField
	ThumbnailURL string
	Footer       string
	Timestamp    time.Time
}

// EmbedField is a single name/value row of an Embed.
type EmbedField struct {
	Name   string
	Value  string
	Inline bool
}

// GuildSummary is a cached view of a guild used by the status endpoint.
type GuildSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	MemberCount int    `json:"memberCount"`
}
