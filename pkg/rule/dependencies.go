// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package rule

import "github.com/AccelByte/extend-invite-rewards/pkg/rank"

// Dependencies holds the startup configuration rules can use.
// Values are fixed for the process lifetime.
type Dependencies struct {
	Thresholds rank.Thresholds
}

// NewDependencies creates a new dependencies container.
func NewDependencies(thresholds rank.Thresholds) *Dependencies {
	return &Dependencies{
		Thresholds: thresholds,
	}
}
