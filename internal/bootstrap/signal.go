// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package bootstrap

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/AccelByte/extend-invite-rewards/pkg/invite"
	"github.com/AccelByte/extend-invite-rewards/pkg/rank"
	"github.com/AccelByte/extend-invite-rewards/pkg/service"
	"github.com/AccelByte/extend-invite-rewards/pkg/signal"
)

// inviteFetchRetries is the number of extra invite list fetches on a join.
const inviteFetchRetries = 2

// InitSignalProcessor creates the processor that turns joins and credits into signals.
func InitSignalProcessor(members service.MemberDirectory, roles rank.RoleSet) *signal.Processor {
	processor := signal.NewProcessor(members, roles)
	logrus.Infof("initialized signal processor")
	return processor
}

// InitInviteTracker creates the attribution tracker over an in-memory snapshot store.
func InitInviteTracker(source invite.Source, callTimeout time.Duration) *invite.Tracker {
	tracker := invite.NewTracker(source, invite.NewMemoryStore(), invite.TrackerConfig{
		FetchTimeout: callTimeout,
		FetchRetries: inviteFetchRetries,
	})
	logrus.Infof("initialized invite tracker")
	return tracker
}
