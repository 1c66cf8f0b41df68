// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package action

import "errors"

var (
	// ErrRollbackNotSupported indicates that an action doesn't support rollback.
	ErrRollbackNotSupported = errors.New("rollback not supported for this action")

	// ErrActionNotFound indicates that a requested action doesn't exist in the registry.
	ErrActionNotFound = errors.New("action not found in registry")

	// ErrInvalidConfig indicates that an action's configuration is invalid.
	ErrInvalidConfig = errors.New("invalid action configuration")

	// ErrMaxRetriesExceeded indicates that an action failed after all retry attempts.
	ErrMaxRetriesExceeded = errors.New("maximum retry attempts exceeded")

	// ErrMissingMemberContext indicates that required member context is missing.
	ErrMissingMemberContext = errors.New("missing member context")

	// ErrMissingDecision indicates a tier action ran on a trigger without a rank decision.
	ErrMissingDecision = errors.New("trigger carries no rank decision")
)
