// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package builtin

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/AccelByte/extend-invite-rewards/pkg/action"
	"github.com/AccelByte/extend-invite-rewards/pkg/rule"
	"github.com/AccelByte/extend-invite-rewards/pkg/service"
	"github.com/AccelByte/extend-invite-rewards/pkg/signal"
)

const (
	// AnnouncePromotionActionID posts a rank-up card to the rewards channel.
	AnnouncePromotionActionID = "announce_promotion"

	defaultAnnounceColor  = 0xFFD700
	defaultAnnounceTitle  = "Rank Up"
	defaultAnnounceFooter = "Invite Rewards System"
)

// AnnouncePromotionAction announces a promotion publicly.
//
// Parameters:
//   - channel_id: overrides the rewards channel
//   - title, footer: embed texts
//   - color: embed color, "#RRGGBB"
type AnnouncePromotionAction struct {
	config    action.ActionConfig
	notifier  service.Notifier
	channelID string
	title     string
	footer    string
	color     int
}

// NewAnnouncePromotionAction creates a new announce promotion action.
func NewAnnouncePromotionAction(config action.ActionConfig, notifier service.Notifier, rewardsChannelID string) (*AnnouncePromotionAction, error) {
	channelID := config.GetParameterString("channel_id", rewardsChannelID)
	if channelID == "" {
		return nil, fmt.Errorf("%w: action %s has no announcement channel", action.ErrInvalidConfig, config.ID)
	}

	color, err := config.GetParameterColor("color", defaultAnnounceColor)
	if err != nil {
		return nil, err
	}

	return &AnnouncePromotionAction{
		config:    config,
		notifier:  notifier,
		channelID: channelID,
		title:     config.GetParameterString("title", defaultAnnounceTitle),
		footer:    config.GetParameterString("footer", defaultAnnounceFooter),
		color:     color,
	}, nil
}

// ID returns the action identifier.
func (a *AnnouncePromotionAction) ID() string {
	return a.config.ID
}

// Name returns the action name.
func (a *AnnouncePromotionAction) Name() string {
	return "Announce Promotion"
}

// Config returns the action configuration.
func (a *AnnouncePromotionAction) Config() action.ActionConfig {
	return a.config
}

// Execute posts the announcement when the decision asks for one.
func (a *AnnouncePromotionAction) Execute(ctx context.Context, trigger *rule.Trigger, memberCtx *signal.MemberContext) error {
	if memberCtx == nil {
		return action.ErrMissingMemberContext
	}
	d, ok := trigger.Decision()
	if !ok {
		return fmt.Errorf("%w: rule %s", action.ErrMissingDecision, trigger.RuleID)
	}
	if !d.Announce {
		return nil
	}

	msg := a.buildMessage(trigger, memberCtx)
	if err := a.notifier.SendChannelMessage(ctx, a.channelID, msg); err != nil {
		return fmt.Errorf("failed to announce promotion of %s: %w", memberCtx.UserID, err)
	}

	logrus.Infof("announced promotion of %s to %s", memberCtx.UserID, d.Target)
	return nil
}

func (a *AnnouncePromotionAction) buildMessage(trigger *rule.Trigger, memberCtx *signal.MemberContext) service.Message {
	d, _ := trigger.Decision()
	mention := memberCtx.Mention()

	embed := &service.Embed{
		Title:       a.title,
		Description: fmt.Sprintf("%s has been promoted", mention),
		Color:       a.color,
		Fields: []service.EmbedField{
			{Name: "Invites", Value: fmt.Sprintf("%d invites", trigger.GetInt(rule.MetaTotal)), Inline: true},
			{Name: "New Rank", Value: d.Target.String(), Inline: true},
			{Name: "Previous Rank", Value: memberCtx.HeldTier.String(), Inline: true},
		},
		Footer:    a.footer,
		Timestamp: trigger.Timestamp,
	}
	if memberCtx.Member != nil {
		embed.ThumbnailURL = memberCtx.Member.AvatarURL
	}

	return service.Message{
		Content: fmt.Sprintf("Congratulations %s!", mention),
		Embed:   embed,
	}
}

// Rollback is not supported for announcements.
func (a *AnnouncePromotionAction) Rollback(ctx context.Context, trigger *rule.Trigger, memberCtx *signal.MemberContext) error {
	return action.ErrRollbackNotSupported
}
