// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package handler

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/AccelByte/extend-invite-rewards/pkg/common"
	"github.com/AccelByte/extend-invite-rewards/pkg/pipeline"
	"github.com/AccelByte/extend-invite-rewards/pkg/rank"
	"github.com/AccelByte/extend-invite-rewards/pkg/service"
)

var mentionPattern = regexp.MustCompile(`^<@!?(\d+)>$`)

// IncomingMessage is a chat message the command handler looks at.
type IncomingMessage struct {
	ID         string
	GuildID    string
	ChannelID  string
	AuthorID   string
	AuthorName string
	AuthorBot  bool
	Content    string
}

// Command is a parsed chat command.
type Command struct {
	Name string
	Args []string
}

// ParseCommand splits a message into a command and its arguments.
// Returns false when the message does not start with the prefix.
func ParseCommand(prefix, content string) (*Command, bool) {
	content = strings.TrimSpace(content)
	if prefix == "" || !strings.HasPrefix(content, prefix) {
		return nil, false
	}

	fields := strings.Fields(strings.TrimPrefix(content, prefix))
	if len(fields) == 0 {
		return nil, false
	}

	return &Command{
		Name: strings.ToLower(fields[0]),
		Args: fields[1:],
	}, true
}

// ParseMention extracts the user ID from mention markup.
func ParseMention(s string) (string, bool) {
	m := mentionPattern.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// Commands answers chat commands.
type Commands struct {
	orchestrator Orchestrator
	perms        service.PermissionChecker
	notifier     service.Notifier
	thresholds   rank.Thresholds
	prefix       string
}

// NewCommands creates a new command handler.
func NewCommands(orchestrator Orchestrator, perms service.PermissionChecker, notifier service.Notifier, thresholds rank.Thresholds, prefix string) *Commands {
	return &Commands{
		orchestrator: orchestrator,
		perms:        perms,
		notifier:     notifier,
		thresholds:   thresholds,
		prefix:       prefix,
	}
}

// Handle runs the command in a message, if any.
// Returns an error only when the reply itself could not be delivered.
func (c *Commands) Handle(ctx context.Context, msg IncomingMessage) error {
	if msg.AuthorBot || msg.GuildID == "" {
		return nil
	}

	cmd, ok := ParseCommand(c.prefix, msg.Content)
	if !ok {
		return nil
	}

	scope := common.StartScope(ctx, "Commands."+cmd.Name)
	defer scope.Finish()

	var reply service.Message
	switch cmd.Name {
	case CommandInvites:
		reply = c.invites(msg)
	case CommandHelp:
		reply = c.help()
	case CommandAddInvites:
		reply = c.addInvites(scope, msg, cmd.Args)
	default:
		return nil
	}

	reply.ReplyToMessageID = msg.ID
	if err := c.notifier.SendChannelMessage(scope.Ctx, msg.ChannelID, reply); err != nil {
		scope.Fail(err)
		return fmt.Errorf("failed to reply to %s command: %w", cmd.Name, err)
	}
	return nil
}

func (c *Commands) invites(msg IncomingMessage) service.Message {
	count := c.orchestrator.GetCredit(msg.AuthorID, msg.GuildID)
	return service.Message{
		Embed: &service.Embed{
			Title:       "Your Invites",
			Description: fmt.Sprintf("**%s**, you have **%d** invites", msg.AuthorName, count),
			Color:       ColorInvites,
			Fields: []service.EmbedField{
				{Name: "Gold Role", Value: fmt.Sprintf("Requires %d invites", c.thresholds.Gold), Inline: true},
				{Name: "Platinum Role", Value: fmt.Sprintf("Requires %d invites", c.thresholds.Platinum), Inline: true},
			},
			Footer: FooterInvites,
		},
	}
}

func (c *Commands) help() service.Message {
	return service.Message{
		Embed: &service.Embed{
			Title:       "Bot Commands",
			Description: "Available commands:",
			Color:       ColorHelp,
			Fields: []service.EmbedField{
				{Name: c.prefix + CommandInvites, Value: "Shows your current invites"},
				{Name: c.prefix + CommandHelp, Value: "Shows this help"},
				{Name: c.prefix + CommandAddInvites + " @user <amount> [reason]", Value: "Adds invites to a member (admins only)"},
			},
			Footer: FooterHelp,
		},
	}
}

func (c *Commands) addInvites(scope *common.Scope, msg IncomingMessage, args []string) service.Message {
	usage := service.Message{Content: fmt.Sprintf("Usage: %s%s @user <amount> [reason]", c.prefix, CommandAddInvites)}

	admin, err := c.perms.IsAdmin(scope.Ctx, msg.GuildID, msg.ChannelID, msg.AuthorID)
	if err != nil {
		scope.Log.Warnf("permission check for %s failed: %v", msg.AuthorID, err)
	}
	if !admin {
		return service.Message{Content: "You need the Administrator or Manage Server permission to use this command."}
	}

	if len(args) < 2 {
		return usage
	}
	userID, ok := ParseMention(args[0])
	if !ok {
		return usage
	}
	amount, err := strconv.Atoi(args[1])
	if err != nil {
		return usage
	}
	reason := strings.Join(args[2:], " ")

	total, err := c.orchestrator.GrantManualCredit(scope.Ctx, userID, msg.GuildID, amount, msg.AuthorID, reason)
	if errors.Is(err, pipeline.ErrInvalidAmount) {
		return service.Message{Content: pipeline.ErrInvalidAmount.Error()}
	}
	if err != nil {
		scope.Log.Errorf("manual credit for %s failed: %v", userID, err)
		return service.Message{Content: "Could not add invites, please try again later."}
	}

	return service.Message{Content: fmt.Sprintf("Added %d invites to %s. Total: %d", amount, service.Mention(userID), total)}
}
