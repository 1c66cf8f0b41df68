// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package builtin

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/AccelByte/extend-invite-rewards/pkg/action"
	"github.com/AccelByte/extend-invite-rewards/pkg/rule"
	"github.com/AccelByte/extend-invite-rewards/pkg/service"
	"github.com/AccelByte/extend-invite-rewards/pkg/signal"
)

const (
	// WelcomeDMActionID sends the new member a direct welcome message.
	WelcomeDMActionID = "welcome_dm"

	// WelcomeMessageActionID posts a join notice to the welcome channel.
	WelcomeMessageActionID = "welcome_message"

	defaultWelcomeDM = "Welcome to the server! You have been given the Initiate role. " +
		"Invite your friends to earn better roles and rewards."
	defaultWelcomeAttributed   = "{member} joined (invited by {inviter})"
	defaultWelcomeUnattributed = "{member} joined"
)

// render substitutes {member} and {inviter} placeholders.
func render(template, memberID, inviterID string) string {
	inviter := ""
	if inviterID != "" {
		inviter = service.Mention(inviterID)
	}
	return strings.NewReplacer(
		"{member}", service.Mention(memberID),
		"{inviter}", inviter,
	).Replace(template)
}

// WelcomeDMAction sends a welcome DM.
// Members with closed DMs make this fail; the failure is reported, not retried forever.
type WelcomeDMAction struct {
	config   action.ActionConfig
	notifier service.Notifier
	message  string
}

// NewWelcomeDMAction creates a new welcome DM action.
func NewWelcomeDMAction(config action.ActionConfig, notifier service.Notifier) *WelcomeDMAction {
	return &WelcomeDMAction{
		config:   config,
		notifier: notifier,
		message:  config.GetParameterString("message", defaultWelcomeDM),
	}
}

// ID returns the action identifier.
func (a *WelcomeDMAction) ID() string {
	return a.config.ID
}

// Name returns the action name.
func (a *WelcomeDMAction) Name() string {
	return "Welcome DM"
}

// Config returns the action configuration.
func (a *WelcomeDMAction) Config() action.ActionConfig {
	return a.config
}

// Execute sends the DM.
func (a *WelcomeDMAction) Execute(ctx context.Context, trigger *rule.Trigger, memberCtx *signal.MemberContext) error {
	if memberCtx == nil {
		return action.ErrMissingMemberContext
	}

	msg := service.Message{
		Content: render(a.message, memberCtx.UserID, trigger.GetString(rule.MetaInviterID)),
	}
	if err := a.notifier.SendDirectMessage(ctx, memberCtx.UserID, msg); err != nil {
		return fmt.Errorf("failed to send welcome DM to %s: %w", memberCtx.UserID, err)
	}

	logrus.Debugf("sent welcome DM to %s", memberCtx.UserID)
	return nil
}

// Rollback is not supported for direct messages.
func (a *WelcomeDMAction) Rollback(ctx context.Context, trigger *rule.Trigger, memberCtx *signal.MemberContext) error {
	return action.ErrRollbackNotSupported
}

// WelcomeMessageAction posts a join notice to the welcome channel.
// It does nothing when no channel is configured.
//
// Parameters:
//   - channel_id: overrides the welcome channel
//   - message: template used when the join was attributed
//   - message_unattributed: template used otherwise
type WelcomeMessageAction struct {
	config       action.ActionConfig
	notifier     service.Notifier
	channelID    string
	attributed   string
	unattributed string
}

// NewWelcomeMessageAction creates a new welcome message action.
func NewWelcomeMessageAction(config action.ActionConfig, notifier service.Notifier, welcomeChannelID string) *WelcomeMessageAction {
	return &WelcomeMessageAction{
		config:       config,
		notifier:     notifier,
		channelID:    config.GetParameterString("channel_id", welcomeChannelID),
		attributed:   config.GetParameterString("message", defaultWelcomeAttributed),
		unattributed: config.GetParameterString("message_unattributed", defaultWelcomeUnattributed),
	}
}

// ID returns the action identifier.
func (a *WelcomeMessageAction) ID() string {
	return a.config.ID
}

// Name returns the action name.
func (a *WelcomeMessageAction) Name() string {
	return "Welcome Message"
}

// Config returns the action configuration.
func (a *WelcomeMessageAction) Config() action.ActionConfig {
	return a.config
}

// Execute posts the join notice.
func (a *WelcomeMessageAction) Execute(ctx context.Context, trigger *rule.Trigger, memberCtx *signal.MemberContext) error {
	if a.channelID == "" {
		return nil
	}
	if memberCtx == nil {
		return action.ErrMissingMemberContext
	}

	inviterID := trigger.GetString(rule.MetaInviterID)
	template := a.unattributed
	if inviterID != "" {
		template = a.attributed
	}

	msg := service.Message{Content: render(template, memberCtx.UserID, inviterID)}
	if err := a.notifier.SendChannelMessage(ctx, a.channelID, msg); err != nil {
		return fmt.Errorf("failed to post welcome message for %s: %w", memberCtx.UserID, err)
	}
	return nil
}

// Rollback is not supported for channel messages.
func (a *WelcomeMessageAction) Rollback(ctx context.Context, trigger *rule.Trigger, memberCtx *signal.MemberContext) error {
	return action.ErrRollbackNotSupported
}
