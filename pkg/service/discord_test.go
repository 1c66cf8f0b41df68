// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package service

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
)

func TestIsUnknownMember(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "unknown member code",
			err:      &discordgo.RESTError{Message: &discordgo.APIErrorMessage{Code: discordgo.ErrCodeUnknownMember}},
			expected: true,
		},
		{
			name:     "wrapped unknown user code",
			err:      fmt.Errorf("wrapped: %w", &discordgo.RESTError{Message: &discordgo.APIErrorMessage{Code: discordgo.ErrCodeUnknownUser}}),
			expected: true,
		},
		{
			name:     "plain 404",
			err:      &discordgo.RESTError{Response: &http.Response{StatusCode: http.StatusNotFound}},
			expected: true,
		},
		{
			name:     "permission error",
			err:      &discordgo.RESTError{Response: &http.Response{StatusCode: http.StatusForbidden}, Message: &discordgo.APIErrorMessage{Code: discordgo.ErrCodeMissingPermissions}},
			expected: false,
		},
		{
			name:     "not a REST error",
			err:      errors.New("connection reset"),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isUnknownMember(tt.err); got != tt.expected {
				t.Errorf("isUnknownMember() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestMemberFromDiscord(t *testing.T) {
	m := &discordgo.Member{
		User:  &discordgo.User{ID: "42", Username: "alice", Bot: false},
		Roles: []string{"r1", "r2"},
	}

	info := MemberFromDiscord("g1", m)
	if info.UserID != "42" || info.GuildID != "g1" || info.Username != "alice" {
		t.Errorf("MemberFromDiscord() = %+v", info)
	}
	if !info.HasRole("r2") || info.HasRole("r3") {
		t.Errorf("HasRole() mismatch for roles %v", info.RoleIDs)
	}
	if info.Mention() != "<@42>" {
		t.Errorf("Mention() = %s, expected <@42>", info.Mention())
	}

	m.Roles[0] = "changed"
	if info.RoleIDs[0] != "r1" {
		t.Error("MemberFromDiscord() shares the role slice with the source member")
	}
}

func TestToMessageSend(t *testing.T) {
	ts := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	send := toMessageSend(Message{
		Content: "hello",
		Embed: &Embed{
			Title:        "Rank up",
			Color:        0xFFD700,
			Fields:       []EmbedField{{Name: "Invites", Value: "5", Inline: true}},
			ThumbnailURL: "https://cdn.example/avatar.png",
			Footer:       "footer",
			Timestamp:    ts,
		},
	})

	if send.Content != "hello" {
		t.Errorf("Content = %q", send.Content)
	}
	if len(send.Embeds) != 1 {
		t.Fatalf("expected 1 embed, got %d", len(send.Embeds))
	}

	e := send.Embeds[0]
	if e.Title != "Rank up" || e.Color != 0xFFD700 {
		t.Errorf("embed = %+v", e)
	}
	if len(e.Fields) != 1 || !e.Fields[0].Inline {
		t.Errorf("embed fields = %+v", e.Fields)
	}
	if e.Thumbnail == nil || e.Footer == nil || e.Footer.Text != "footer" {
		t.Error("expected thumbnail and footer to be set")
	}
	if e.Timestamp != "2025-01-02T03:04:05Z" {
		t.Errorf("Timestamp = %s", e.Timestamp)
	}

	plain := toMessageSend(Message{Content: "only text"})
	if len(plain.Embeds) != 0 {
		t.Error("expected no embeds for plain message")
	}
}
