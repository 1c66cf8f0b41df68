// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package handler

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/AccelByte/extend-invite-rewards/pkg/pipeline"
	"github.com/AccelByte/extend-invite-rewards/pkg/rank"
	"github.com/AccelByte/extend-invite-rewards/pkg/service"
	"github.com/AccelByte/extend-invite-rewards/pkg/service/mock"
)

type manualCreditCall struct {
	UserID  string
	GuildID string
	Amount  int
	Actor   string
	Reason  string
}

// fakeOrchestrator records what the handlers ask of the pipeline.
type fakeOrchestrator struct {
	mu sync.Mutex

	credits map[string]int

	joins        []*service.MemberInfo
	joinErr      error
	loadedGuilds [][]string
	manualCalls  []manualCreditCall
	manualErr    error
}

func newFakeOrchestrator() *fakeOrchestrator {
	return &fakeOrchestrator{credits: make(map[string]int)}
}

func (f *fakeOrchestrator) OnMemberJoin(ctx context.Context, guildID string, member *service.MemberInfo) (*pipeline.JoinOutcome, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.joins = append(f.joins, member)
	if f.joinErr != nil {
		return nil, f.joinErr
	}
	return &pipeline.JoinOutcome{EventID: "event-1"}, nil
}

func (f *fakeOrchestrator) LoadGuilds(ctx context.Context, guildIDs []string) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.loadedGuilds = append(f.loadedGuilds, guildIDs)
	return len(guildIDs)
}

func (f *fakeOrchestrator) GetCredit(userID, guildID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.credits[guildID+"/"+userID]
}

func (f *fakeOrchestrator) GrantManualCredit(ctx context.Context, userID, guildID string, amount int, actor, reason string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.manualCalls = append(f.manualCalls, manualCreditCall{UserID: userID, GuildID: guildID, Amount: amount, Actor: actor, Reason: reason})
	if f.manualErr != nil {
		return 0, f.manualErr
	}
	if amount <= 0 {
		return 0, pipeline.ErrInvalidAmount
	}
	key := guildID + "/" + userID
	f.credits[key] += amount
	return f.credits[key], nil
}

func newTestCommands() (*Commands, *fakeOrchestrator, *mock.Platform) {
	orchestrator := newFakeOrchestrator()
	platform := mock.NewPlatform()
	commands := NewCommands(orchestrator, platform, platform, rank.Thresholds{Gold: 5, Platinum: 10}, "!")
	return commands, orchestrator, platform
}

func message(content string) IncomingMessage {
	return IncomingMessage{
		ID:         "m1",
		GuildID:    "G",
		ChannelID:  "C",
		AuthorID:   "A",
		AuthorName: "alice",
		Content:    content,
	}
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name     string
		prefix   string
		content  string
		wantOK   bool
		wantName string
		wantArgs []string
	}{
		{name: "bare command", prefix: "!", content: "!invites", wantOK: true, wantName: "invites", wantArgs: []string{}},
		{name: "arguments", prefix: "!", content: "!addinvites <@1> 3 event bonus", wantOK: true, wantName: "addinvites", wantArgs: []string{"<@1>", "3", "event", "bonus"}},
		{name: "case folded", prefix: "!", content: "!HELP", wantOK: true, wantName: "help", wantArgs: []string{}},
		{name: "surrounding spaces", prefix: "!", content: "  !help  ", wantOK: true, wantName: "help", wantArgs: []string{}},
		{name: "no prefix", prefix: "!", content: "invites", wantOK: false},
		{name: "prefix only", prefix: "!", content: "!", wantOK: false},
		{name: "other prefix", prefix: "?", content: "!invites", wantOK: false},
		{name: "empty prefix", prefix: "", content: "invites", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, ok := ParseCommand(tt.prefix, tt.content)
			if ok != tt.wantOK {
				t.Fatalf("ParseCommand() ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if cmd.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", cmd.Name, tt.wantName)
			}
			if strings.Join(cmd.Args, " ") != strings.Join(tt.wantArgs, " ") {
				t.Errorf("Args = %v, want %v", cmd.Args, tt.wantArgs)
			}
		})
	}
}

func TestParseMention(t *testing.T) {
	tests := []struct {
		in     string
		wantID string
		wantOK bool
	}{
		{in: "<@123>", wantID: "123", wantOK: true},
		{in: "<@!456>", wantID: "456", wantOK: true},
		{in: "123", wantOK: false},
		{in: "<@&789>", wantOK: false},
		{in: "<@abc>", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			id, ok := ParseMention(tt.in)
			if ok != tt.wantOK || id != tt.wantID {
				t.Errorf("ParseMention(%q) = (%q, %v), want (%q, %v)", tt.in, id, ok, tt.wantID, tt.wantOK)
			}
		})
	}
}

func TestCommands_Invites(t *testing.T) {
	commands, orchestrator, platform := newTestCommands()
	orchestrator.credits["G/A"] = 7

	if err := commands.Handle(context.Background(), message("!invites")); err != nil {
		t.Fatalf("Handle() error = %v", err)
	}

	replies := platform.MessagesTo("C")
	if len(replies) != 1 {
		t.Fatalf("expected 1 reply, got %d", len(replies))
	}
	reply := replies[0]
	if reply.ReplyToMessageID != "m1" {
		t.Errorf("ReplyToMessageID = %q, want m1", reply.ReplyToMessageID)
	}
	if reply.Embed == nil {
		t.Fatal("expected an embed")
	}
	if reply.Embed.Color != ColorInvites {
		t.Errorf("Color = %#x, want %#x", reply.Embed.Color, ColorInvites)
	}
	if !strings.Contains(reply.Embed.Description, "**7**") {
		t.Errorf("Description = %q, want it to contain the count", reply.Embed.Description)
	}
	if len(reply.Embed.Fields) != 2 || reply.Embed.Fields[0].Value != "Requires 5 invites" || reply.Embed.Fields[1].Value != "Requires 10 invites" {
		t.Errorf("unexpected threshold fields: %+v", reply.Embed.Fields)
	}
}

func TestCommands_InvitesWithNoCredit(t *testing.T) {
	commands, _, platform := newTestCommands()

	if err := commands.Handle(context.Background(), message("!invites")); err != nil {
		t.Fatalf("Handle() error = %v", err)
	}

	replies := platform.MessagesTo("C")
	if len(replies) != 1 || !strings.Contains(replies[0].Embed.Description, "**0**") {
		t.Errorf("expected a zero count reply, got %+v", replies)
	}
}

func TestCommands_Help(t *testing.T) {
	commands, _, platform := newTestCommands()

	if err := commands.Handle(context.Background(), message("!help")); err != nil {
		t.Fatalf("Handle() error = %v", err)
	}

	replies := platform.MessagesTo("C")
	if len(replies) != 1 || replies[0].Embed == nil {
		t.Fatalf("expected one embed reply, got %+v", replies)
	}
	embed := replies[0].Embed
	if embed.Color != ColorHelp || embed.Footer != FooterHelp {
		t.Errorf("unexpected embed styling: %+v", embed)
	}
	if len(embed.Fields) != 3 {
		t.Errorf("expected 3 command fields, got %d", len(embed.Fields))
	}
}

func TestCommands_Ignored(t *testing.T) {
	tests := []struct {
		name string
		msg  IncomingMessage
	}{
		{name: "bot author", msg: func() IncomingMessage { m := message("!invites"); m.AuthorBot = true; return m }()},
		{name: "direct message", msg: func() IncomingMessage { m := message("!invites"); m.GuildID = ""; return m }()},
		{name: "plain chat", msg: message("hello there")},
		{name: "unknown command", msg: message("!dance")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			commands, _, platform := newTestCommands()
			if err := commands.Handle(context.Background(), tt.msg); err != nil {
				t.Fatalf("Handle() error = %v", err)
			}
			if len(platform.ChannelMessages) != 0 {
				t.Errorf("expected no reply, got %+v", platform.ChannelMessages)
			}
		})
	}
}

func TestCommands_AddInvites(t *testing.T) {
	tests := []struct {
		name      string
		admin     bool
		content   string
		manualErr error
		wantReply string
		wantCall  *manualCreditCall
	}{
		{
			name:      "admin adds credit",
			admin:     true,
			content:   "!addinvites <@111> 3 event bonus",
			wantReply: "Added 3 invites to <@111>. Total: 3",
			wantCall:  &manualCreditCall{UserID: "111", GuildID: "G", Amount: 3, Actor: "A", Reason: "event bonus"},
		},
		{
			name:      "nickname mention",
			admin:     true,
			content:   "!addinvites <@!111> 2",
			wantReply: "Added 2 invites to <@111>. Total: 2",
			wantCall:  &manualCreditCall{UserID: "111", GuildID: "G", Amount: 2, Actor: "A"},
		},
		{
			name:      "not an admin",
			admin:     false,
			content:   "!addinvites <@111> 3",
			wantReply: "You need the Administrator or Manage Server permission to use this command.",
		},
		{
			name:      "missing amount",
			admin:     true,
			content:   "!addinvites <@111>",
			wantReply: "Usage: !addinvites @user <amount> [reason]",
		},
		{
			name:      "not a mention",
			admin:     true,
			content:   "!addinvites 111 3",
			wantReply: "Usage: !addinvites @user <amount> [reason]",
		},
		{
			name:      "amount not a number",
			admin:     true,
			content:   "!addinvites <@111> lots",
			wantReply: "Usage: !addinvites @user <amount> [reason]",
		},
		{
			name:      "non-positive amount",
			admin:     true,
			content:   "!addinvites <@111> -2",
			wantReply: pipeline.ErrInvalidAmount.Error(),
			wantCall:  &manualCreditCall{UserID: "111", GuildID: "G", Amount: -2, Actor: "A"},
		},
		{
			name:      "pipeline failure",
			admin:     true,
			content:   "!addinvites <@111> 3",
			manualErr: errors.New("boom"),
			wantReply: "Could not add invites, please try again later.",
			wantCall:  &manualCreditCall{UserID: "111", GuildID: "G", Amount: 3, Actor: "A"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			commands, orchestrator, platform := newTestCommands()
			platform.Admins["A"] = tt.admin
			orchestrator.manualErr = tt.manualErr

			if err := commands.Handle(context.Background(), message(tt.content)); err != nil {
				t.Fatalf("Handle() error = %v", err)
			}

			replies := platform.MessagesTo("C")
			if len(replies) != 1 {
				t.Fatalf("expected 1 reply, got %d", len(replies))
			}
			if replies[0].Content != tt.wantReply {
				t.Errorf("reply = %q, want %q", replies[0].Content, tt.wantReply)
			}

			if tt.wantCall == nil {
				if len(orchestrator.manualCalls) != 0 {
					t.Errorf("expected no manual credit, got %+v", orchestrator.manualCalls)
				}
				return
			}
			if len(orchestrator.manualCalls) != 1 {
				t.Fatalf("expected 1 manual credit call, got %d", len(orchestrator.manualCalls))
			}
			if orchestrator.manualCalls[0] != *tt.wantCall {
				t.Errorf("manual credit call = %+v, want %+v", orchestrator.manualCalls[0], *tt.wantCall)
			}
		})
	}
}

func TestCommands_ReplyFailure(t *testing.T) {
	commands, _, platform := newTestCommands()
	platform.ChannelSendErr = errors.New("missing access")

	err := commands.Handle(context.Background(), message("!help"))
	if err == nil {
		t.Fatal("expected an error when the reply cannot be sent")
	}
	if !errors.Is(err, service.ErrNotification) {
		t.Errorf("expected ErrNotification, got %v", err)
	}
}
