// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package handler

import (
	"context"

	"github.com/AccelByte/extend-invite-rewards/pkg/pipeline"
	"github.com/AccelByte/extend-invite-rewards/pkg/service"
)

const (
	// Command names, without the prefix
	CommandInvites    = "invites"
	CommandHelp       = "help"
	CommandAddInvites = "addinvites"

	// Embed colors
	ColorInvites = 0x00FF00
	ColorHelp    = 0x0099FF

	FooterInvites = "Use !help for more commands"
	FooterHelp    = "Invite Rewards System"
)

// Orchestrator is the part of the pipeline manager the handlers drive.
type Orchestrator interface {
	OnMemberJoin(ctx context.Context, guildID string, member *service.MemberInfo) (*pipeline.JoinOutcome, error)
	LoadGuilds(ctx context.Context, guildIDs []string) int
	GetCredit(userID, guildID string) int
	GrantManualCredit(ctx context.Context, userID, guildID string, amount int, actor, reason string) (int, error)
}

var _ Orchestrator = (*pipeline.Manager)(nil)
