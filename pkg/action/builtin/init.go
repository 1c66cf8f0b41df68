// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package builtin

import (
	"github.com/AccelByte/extend-invite-rewards/pkg/action"
	"github.com/AccelByte/extend-invite-rewards/pkg/rank"
	"github.com/AccelByte/extend-invite-rewards/pkg/service"
)

// Dependencies holds dependencies needed by built-in actions.
type Dependencies struct {
	Roles    service.RoleDirectory
	Notifier service.Notifier
	RoleSet  rank.RoleSet

	// RewardsChannelID receives promotion announcements.
	RewardsChannelID string
	// WelcomeChannelID receives join notices; empty disables them.
	WelcomeChannelID string
}

// RegisterActions registers built-in action factories with dependencies.
func RegisterActions(deps *Dependencies) {
	action.RegisterActionType(GrantRoleActionID, func(config action.ActionConfig) (action.Action, error) {
		a, err := NewGrantRoleAction(config, deps.Roles, deps.RoleSet)
		if err != nil {
			return nil, err
		}
		return a, nil
	})

	action.RegisterActionType(RevokeTierRoleActionID, func(config action.ActionConfig) (action.Action, error) {
		return NewRevokeTierRoleAction(config, deps.Roles, deps.RoleSet), nil
	})

	action.RegisterActionType(GrantTierRoleActionID, func(config action.ActionConfig) (action.Action, error) {
		return NewGrantTierRoleAction(config, deps.Roles, deps.RoleSet), nil
	})

	action.RegisterActionType(AnnouncePromotionActionID, func(config action.ActionConfig) (action.Action, error) {
		a, err := NewAnnouncePromotionAction(config, deps.Notifier, deps.RewardsChannelID)
		if err != nil {
			return nil, err
		}
		return a, nil
	})

	action.RegisterActionType(WelcomeDMActionID, func(config action.ActionConfig) (action.Action, error) {
		return NewWelcomeDMAction(config, deps.Notifier), nil
	})

	action.RegisterActionType(WelcomeMessageActionID, func(config action.ActionConfig) (action.Action, error) {
		return NewWelcomeMessageAction(config, deps.Notifier, deps.WelcomeChannelID), nil
	})
}
