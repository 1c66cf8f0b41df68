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
	"github.com/AccelByte/extend-invite-rewards/pkg/rank"
	"github.com/AccelByte/extend-invite-rewards/pkg/rule"
	"github.com/AccelByte/extend-invite-rewards/pkg/service"
	"github.com/AccelByte/extend-invite-rewards/pkg/signal"
)

const (
	// GrantRoleActionID grants a fixed role, the starter role by default.
	GrantRoleActionID = "grant_role"

	// RevokeTierRoleActionID removes the tier role a rank decision replaces.
	RevokeTierRoleActionID = "revoke_tier_role"

	// GrantTierRoleActionID grants the tier role a rank decision reaches.
	GrantTierRoleActionID = "grant_tier_role"
)

// GrantRoleAction grants one configured role to the trigger's member.
//
// Parameters:
//   - role: "initiate", "gold" or "platinum" (default "initiate")
//   - role_id: explicit role ID, overrides role
type GrantRoleAction struct {
	config action.ActionConfig
	roles  service.RoleDirectory
	roleID string
}

// NewGrantRoleAction creates a new grant role action.
func NewGrantRoleAction(config action.ActionConfig, roles service.RoleDirectory, roleSet rank.RoleSet) (*GrantRoleAction, error) {
	roleID := config.GetParameterString("role_id", "")
	if roleID == "" {
		name := config.GetParameterString("role", "initiate")
		if strings.EqualFold(name, "initiate") {
			roleID = roleSet.Initiate
		} else {
			tier, err := rank.ParseTier(name)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", action.ErrInvalidConfig, err)
			}
			roleID = roleSet.RoleFor(tier)
		}
	}
	if roleID == "" {
		return nil, fmt.Errorf("%w: action %s resolves to no role", action.ErrInvalidConfig, config.ID)
	}

	return &GrantRoleAction{
		config: config,
		roles:  roles,
		roleID: roleID,
	}, nil
}

// ID returns the action identifier.
func (a *GrantRoleAction) ID() string {
	return a.config.ID
}

// Name returns the action name.
func (a *GrantRoleAction) Name() string {
	return "Grant Role"
}

// Config returns the action configuration.
func (a *GrantRoleAction) Config() action.ActionConfig {
	return a.config
}

// Execute grants the role unless the member already holds it.
func (a *GrantRoleAction) Execute(ctx context.Context, trigger *rule.Trigger, memberCtx *signal.MemberContext) error {
	if memberCtx == nil {
		return action.ErrMissingMemberContext
	}
	if memberCtx.Member != nil && memberCtx.Member.HasRole(a.roleID) {
		logrus.Debugf("member %s already holds role %s", memberCtx.UserID, a.roleID)
		return nil
	}

	if err := a.roles.GrantRole(ctx, memberCtx.GuildID, memberCtx.UserID, a.roleID); err != nil {
		return fmt.Errorf("failed to grant role %s to %s: %w", a.roleID, memberCtx.UserID, err)
	}

	logrus.Infof("granted role %s to member %s", a.roleID, memberCtx.UserID)
	return nil
}

// Rollback revokes the granted role.
func (a *GrantRoleAction) Rollback(ctx context.Context, trigger *rule.Trigger, memberCtx *signal.MemberContext) error {
	if memberCtx == nil {
		return action.ErrMissingMemberContext
	}
	return a.roles.RevokeRole(ctx, memberCtx.GuildID, memberCtx.UserID, a.roleID)
}

// tierRoleAction is shared by the two decision-driven role actions.
type tierRoleAction struct {
	config  action.ActionConfig
	roles   service.RoleDirectory
	roleSet rank.RoleSet
}

func (a *tierRoleAction) ID() string {
	return a.config.ID
}

func (a *tierRoleAction) Config() action.ActionConfig {
	return a.config
}

func (a *tierRoleAction) decision(trigger *rule.Trigger, memberCtx *signal.MemberContext) (rank.Decision, error) {
	if memberCtx == nil {
		return rank.Decision{}, action.ErrMissingMemberContext
	}
	d, ok := trigger.Decision()
	if !ok {
		return rank.Decision{}, fmt.Errorf("%w: rule %s", action.ErrMissingDecision, trigger.RuleID)
	}
	return d, nil
}

func (a *tierRoleAction) grant(ctx context.Context, memberCtx *signal.MemberContext, tier rank.Tier) error {
	roleID := a.roleSet.RoleFor(tier)
	if err := a.roles.GrantRole(ctx, memberCtx.GuildID, memberCtx.UserID, roleID); err != nil {
		return fmt.Errorf("failed to grant %s role to %s: %w", tier, memberCtx.UserID, err)
	}
	logrus.Infof("granted %s role to member %s", tier, memberCtx.UserID)
	return nil
}

func (a *tierRoleAction) revoke(ctx context.Context, memberCtx *signal.MemberContext, tier rank.Tier) error {
	roleID := a.roleSet.RoleFor(tier)
	if err := a.roles.RevokeRole(ctx, memberCtx.GuildID, memberCtx.UserID, roleID); err != nil {
		return fmt.Errorf("failed to revoke %s role from %s: %w", tier, memberCtx.UserID, err)
	}
	logrus.Infof("revoked %s role from member %s", tier, memberCtx.UserID)
	return nil
}

// RevokeTierRoleAction removes the tier role named by Decision.Revoke.
type RevokeTierRoleAction struct {
	tierRoleAction
}

// NewRevokeTierRoleAction creates a new revoke tier role action.
func NewRevokeTierRoleAction(config action.ActionConfig, roles service.RoleDirectory, roleSet rank.RoleSet) *RevokeTierRoleAction {
	return &RevokeTierRoleAction{tierRoleAction{config: config, roles: roles, roleSet: roleSet}}
}

// Name returns the action name.
func (a *RevokeTierRoleAction) Name() string {
	return "Revoke Tier Role"
}

// Execute revokes the replaced tier role, if any.
func (a *RevokeTierRoleAction) Execute(ctx context.Context, trigger *rule.Trigger, memberCtx *signal.MemberContext) error {
	d, err := a.decision(trigger, memberCtx)
	if err != nil {
		return err
	}
	if d.Revoke == rank.TierNone {
		return nil
	}
	return a.revoke(ctx, memberCtx, d.Revoke)
}

// Rollback grants the revoked tier role back.
func (a *RevokeTierRoleAction) Rollback(ctx context.Context, trigger *rule.Trigger, memberCtx *signal.MemberContext) error {
	d, err := a.decision(trigger, memberCtx)
	if err != nil {
		return err
	}
	if d.Revoke == rank.TierNone {
		return nil
	}
	return a.grant(ctx, memberCtx, d.Revoke)
}

// GrantTierRoleAction grants the tier role named by Decision.Grant.
type GrantTierRoleAction struct {
	tierRoleAction
}

// NewGrantTierRoleAction creates a new grant tier role action.
func NewGrantTierRoleAction(config action.ActionConfig, roles service.RoleDirectory, roleSet rank.RoleSet) *GrantTierRoleAction {
	return &GrantTierRoleAction{tierRoleAction{config: config, roles: roles, roleSet: roleSet}}
}

// Name returns the action name.
func (a *GrantTierRoleAction) Name() string {
	return "Grant Tier Role"
}

// Execute grants the reached tier role, if any.
func (a *GrantTierRoleAction) Execute(ctx context.Context, trigger *rule.Trigger, memberCtx *signal.MemberContext) error {
	d, err := a.decision(trigger, memberCtx)
	if err != nil {
		return err
	}
	if d.Grant == rank.TierNone {
		return nil
	}
	return a.grant(ctx, memberCtx, d.Grant)
}

// Rollback revokes the granted tier role.
func (a *GrantTierRoleAction) Rollback(ctx context.Context, trigger *rule.Trigger, memberCtx *signal.MemberContext) error {
	d, err := a.decision(trigger, memberCtx)
	if err != nil {
		return err
	}
	if d.Grant == rank.TierNone {
		return nil
	}
	return a.revoke(ctx, memberCtx, d.Grant)
}
