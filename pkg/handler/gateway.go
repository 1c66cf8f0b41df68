// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package handler

import (
	"context"

	"github.com/bwmarrin/discordgo"
	"github.com/sirupsen/logrus"

	"github.com/AccelByte/extend-invite-rewards/pkg/service"
)

// Gateway listens for Discord gateway events and feeds them to the pipeline.
type Gateway struct {
	ctx          context.Context
	orchestrator Orchestrator
	commands     *Commands
}

// NewGateway creates a gateway listener. ctx is the lifetime of the bot;
// handlers started after it is cancelled do nothing.
func NewGateway(ctx context.Context, orchestrator Orchestrator, commands *Commands) *Gateway {
	return &Gateway{
		ctx:          ctx,
		orchestrator: orchestrator,
		commands:     commands,
	}
}

// Register adds the gateway handlers to a session.
func (g *Gateway) Register(s *discordgo.Session) {
	s.AddHandler(g.OnReady)
	s.AddHandler(g.OnGuildMemberAdd)
	s.AddHandler(g.OnMessageCreate)
}

// Intents returns the gateway intents the handlers need.
func Intents() discordgo.Intent {
	return discordgo.IntentsGuilds |
		discordgo.IntentsGuildMembers |
		discordgo.IntentsGuildInvites |
		discordgo.IntentsGuildMessages |
		discordgo.IntentMessageContent
}

// OnReady loads the invite baseline of every guild the bot is in.
func (g *Gateway) OnReady(s *discordgo.Session, r *discordgo.Ready) {
	if g.ctx.Err() != nil {
		return
	}

	if r.User != nil {
		logrus.Infof("connected to Discord as %s", r.User.String())
	}

	guildIDs := make([]string, 0, len(r.Guilds))
	for _, guild := range r.Guilds {
		guildIDs = append(guildIDs, guild.ID)
	}

	loaded := g.orchestrator.LoadGuilds(g.ctx, guildIDs)
	logrus.Infof("invite baseline loaded for %d of %d guilds", loaded, len(guildIDs))
}

// OnGuildMemberAdd runs the join pipeline.
func (g *Gateway) OnGuildMemberAdd(s *discordgo.Session, e *discordgo.GuildMemberAdd) {
	if g.ctx.Err() != nil || e.Member == nil || e.Member.User == nil {
		return
	}

	member := service.MemberFromDiscord(e.GuildID, e.Member)
	outcome, err := g.orchestrator.OnMemberJoin(g.ctx, member.GuildID, member)
	if err != nil {
		logrus.Errorf("failed to handle join of %s in guild %s: %v", member.UserID, member.GuildID, err)
		return
	}

	logrus.WithField("eventID", outcome.EventID).Infof("handled join of %s in guild %s", member.Tag, member.GuildID)
}

// OnMessageCreate dispatches chat commands.
func (g *Gateway) OnMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if g.ctx.Err() != nil || m.Message == nil || m.Author == nil {
		return
	}

	msg := IncomingMessage{
		ID:         m.ID,
		GuildID:    m.GuildID,
		ChannelID:  m.ChannelID,
		AuthorID:   m.Author.ID,
		AuthorName: m.Author.Username,
		AuthorBot:  m.Author.Bot,
		Content:    m.Content,
	}

	if err := g.commands.Handle(g.ctx, msg); err != nil {
		logrus.Warnf("command handling failed: %v", err)
	}
}
