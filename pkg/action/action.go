// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package action

import (
	"context"
	"time"

	"github.com/AccelByte/extend-invite-rewards/pkg/rule"
	"github.com/AccelByte/extend-invite-rewards/pkg/signal"
)

// Action performs operations in response to triggers.
// Actions are registered in a Registry and executed by the Executor.
type Action interface {
	// ID returns unique action identifier.
	ID() string

	// Name returns human-readable action name.
	Name() string

	// Execute performs the action.
	// Actions with nothing to do for a trigger return nil.
	Execute(ctx context.Context, trigger *rule.Trigger, memberCtx *signal.MemberContext) error

	// Rollback undoes the action (optional, can return ErrRollbackNotSupported).
	// This is called if a later action fails and the rule asks for rollback.
	Rollback(ctx context.Context, trigger *rule.Trigger, memberCtx *signal.MemberContext) error

	// Config returns the action's configuration.
	Config() ActionConfig
}

// ActionResult represents the outcome of an action execution.
type ActionResult struct {
	ActionID string
	Type     string
	Success  bool
	Error    error
	Attempts int
	Duration time.Duration
}

// NewActionResult creates a successful action result.
func NewActionResult(action Action) *ActionResult {
	return &ActionResult{
		ActionID: action.ID(),
		Type:     action.Config().Type,
		Success:  true,
	}
}

// NewActionError creates a failed action result with an error.
func NewActionError(actionID string, err error) *ActionResult {
	return &ActionResult{
		ActionID: actionID,
		Success:  false,
		Error:    err,
	}
}

// Outcome returns "success" or "failure" for metrics labels.
func (r *ActionResult) Outcome() string {
	if r.Success {
		return "success"
	}
	return "failure"
}
