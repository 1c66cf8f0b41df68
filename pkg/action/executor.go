// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package action

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"

	"github.com/AccelByte/extend-invite-rewards/pkg/rule"
	"github.com/AccelByte/extend-invite-rewards/pkg/signal"
)

// Policy controls how ExecuteMultiple reacts to a failing action.
type Policy struct {
	// StopOnError skips the remaining actions once one fails.
	StopOnError bool
	// RollbackOnError rolls back already executed actions, newest first.
	// Only applies together with StopOnError.
	RollbackOnError bool
}

// Executor executes actions in response to rule triggers.
type Executor struct {
	registry *Registry
	timeout  time.Duration
}

// ExecutorOption configures an Executor.
type ExecutorOption func(*Executor)

// WithActionTimeout bounds every single action attempt.
func WithActionTimeout(timeout time.Duration) ExecutorOption {
	return func(e *Executor) {
		e.timeout = timeout
	}
}

// NewExecutor creates a new action executor.
func NewExecutor(registry *Registry, opts ...ExecutorOption) *Executor {
	e := &Executor{
		registry: registry,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute runs an action in response to a trigger.
func (e *Executor) Execute(ctx context.Context, actionID string, trigger *rule.Trigger, memberCtx *signal.MemberContext) (*ActionResult, error) {
	action := e.registry.Get(actionID)
	if action == nil {
		err := fmt.Errorf("%w: %s", ErrActionNotFound, actionID)
		return NewActionError(actionID, err), err
	}

	return e.run(ctx, action, trigger, memberCtx)
}

// ExecuteMultiple executes multiple actions in sequence and returns one result per attempted action.
// The returned error is the first failure, or nil when every action succeeded.
func (e *Executor) ExecuteMultiple(ctx context.Context, actionIDs []string, trigger *rule.Trigger, memberCtx *signal.MemberContext, policy Policy) ([]*ActionResult, error) {
	var results []*ActionResult
	var executed []Action
	var firstErr error

	for _, actionID := range actionIDs {
		action := e.registry.Get(actionID)
		if action == nil {
			err := fmt.Errorf("%w: %s", ErrActionNotFound, actionID)
			logrus.Errorf("%v", err)
			results = append(results, NewActionError(actionID, err))
			if firstErr == nil {
				firstErr = err
			}
			if policy.StopOnError {
				e.afterFailure(ctx, policy, executed, trigger, memberCtx)
				return results, firstErr
			}
			continue
		}

		result, err := e.run(ctx, action, trigger, memberCtx)
		results = append(results, result)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			if policy.StopOnError {
				e.afterFailure(ctx, policy, executed, trigger, memberCtx)
				return results, firstErr
			}
			continue
		}

		executed = append(executed, action)
	}

	return results, firstErr
}

func (e *Executor) afterFailure(ctx context.Context, policy Policy, executed []Action, trigger *rule.Trigger, memberCtx *signal.MemberContext) {
	if policy.RollbackOnError && len(executed) > 0 {
		e.rollbackActions(ctx, executed, trigger, memberCtx)
	}
}

// run executes one action, retrying according to its RetryConfig.
func (e *Executor) run(ctx context.Context, action Action, trigger *rule.Trigger, memberCtx *signal.MemberContext) (*ActionResult, error) {
	logrus.Infof("executing action %s for trigger %s (user: %s)", action.ID(), trigger.RuleID, trigger.UserID)

	start := time.Now()
	attempts := 0
	operation := func() error {
		attempts++
		attemptCtx := ctx
		if e.timeout > 0 {
			var cancel context.CancelFunc
			attemptCtx, cancel = context.WithTimeout(ctx, e.timeout)
			defer cancel()
		}

		err := action.Execute(attemptCtx, trigger, memberCtx)
		if errors.Is(err, ErrMissingMemberContext) || errors.Is(err, ErrMissingDecision) || errors.Is(err, ErrInvalidConfig) {
			return backoff.Permanent(err)
		}
		return err
	}

	err := backoff.Retry(operation, retryPolicy(ctx, action.Config().Retry))
	if err != nil && attempts > 1 {
		err = fmt.Errorf("%w after %d attempts: %w", ErrMaxRetriesExceeded, attempts, err)
	}

	result := NewActionResult(action)
	result.Attempts = attempts
	result.Duration = time.Since(start)
	if err != nil {
		logrus.Errorf("action %s failed: %v", action.ID(), err)
		result.Success = false
		result.Error = err
		return result, err
	}

	logrus.Infof("action %s completed successfully", action.ID())
	return result, nil
}

func retryPolicy(ctx context.Context, cfg *RetryConfig) backoff.BackOff {
	if cfg == nil || cfg.MaxAttempts <= 1 {
		return backoff.WithContext(&backoff.StopBackOff{}, ctx)
	}

	var b backoff.BackOff
	if cfg.Backoff == "exponential" {
		exp := backoff.NewExponentialBackOff()
		if cfg.Delay > 0 {
			exp.InitialInterval = cfg.Delay
		}
		exp.MaxElapsedTime = 0
		b = exp
	} else {
		b = backoff.NewConstantBackOff(cfg.Delay)
	}

	return backoff.WithContext(backoff.WithMaxRetries(b, uint64(cfg.MaxAttempts-1)), ctx)
}

// rollbackActions rolls back actions in reverse order.
func (e *Executor) rollbackActions(ctx context.Context, actions []Action, trigger *rule.Trigger, memberCtx *signal.MemberContext) {
	logrus.Warnf("rolling back %d actions", len(actions))

	for i := len(actions) - 1; i >= 0; i-- {
		action := actions[i]
		logrus.Infof("rolling back action %s", action.ID())

		err := action.Rollback(ctx, trigger, memberCtx)
		switch {
		case err == nil:
			logrus.Infof("action %s rolled back successfully", action.ID())
		case errors.Is(err, ErrRollbackNotSupported):
			logrus.Warnf("action %s does not support rollback", action.ID())
		default:
			logrus.Errorf("failed to rollback action %s: %v", action.ID(), err)
		}
	}
}

// GetRegistry returns the action registry used by this executor.
func (e *Executor) GetRegistry() *Registry {
	return e.registry
}
