// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package signal

import (
	"context"
	"errors"
	"testing"

	"github.com/AccelByte/extend-invite-rewards/pkg/rank"
	"github.com/AccelByte/extend-invite-rewards/pkg/service"
	"github.com/AccelByte/extend-invite-rewards/pkg/service/mock"
)

var testRoles = rank.RoleSet{Initiate: "r-init", Gold: "r-gold", Platinum: "r-plat"}

func setupTestProcessor() (*Processor, *mock.Platform) {
	platform := mock.NewPlatform()
	return NewProcessor(platform, testRoles), platform
}

func TestProcessor_Load(t *testing.T) {
	tests := []struct {
		name     string
		roles    []string
		expected rank.Tier
	}{
		{name: "no reward roles", roles: []string{"r-init"}, expected: rank.TierNone},
		{name: "gold", roles: []string{"r-init", "r-gold"}, expected: rank.TierGold},
		{name: "platinum", roles: []string{"r-plat"}, expected: rank.TierPlatinum},
		{name: "both held", roles: []string{"r-gold", "r-plat"}, expected: rank.TierPlatinum},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			processor, platform := setupTestProcessor()
			platform.AddMember("g1", "u1", tt.roles...)

			memberCtx, err := processor.Load(context.Background(), "g1", "u1")
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if memberCtx.HeldTier != tt.expected {
				t.Errorf("HeldTier = %s, expected %s", memberCtx.HeldTier, tt.expected)
			}
			if memberCtx.UserID != "u1" || memberCtx.GuildID != "g1" {
				t.Errorf("unexpected context identity %+v", memberCtx)
			}
		})
	}
}

func TestProcessor_ProcessMemberJoin(t *testing.T) {
	processor, _ := setupTestProcessor()
	member := &service.MemberInfo{UserID: "m1", GuildID: "g1"}

	sig, err := processor.ProcessMemberJoin("g1", member, "u1", "abc")
	if err != nil {
		t.Fatalf("ProcessMemberJoin() error = %v", err)
	}
	if sig.Type() != TypeMemberJoined {
		t.Errorf("Type() = %s, expected %s", sig.Type(), TypeMemberJoined)
	}
	if sig.UserID() != "m1" || sig.GuildID() != "g1" {
		t.Errorf("unexpected identity user=%s guild=%s", sig.UserID(), sig.GuildID())
	}
	if !sig.Attributed() || sig.InviterID != "u1" || sig.Code != "abc" {
		t.Errorf("unexpected attribution %+v", sig)
	}
	if sig.Context().Member != member {
		t.Error("expected the gateway member to be reused")
	}

	unattributed, err := processor.ProcessMemberJoin("g1", member, "", "")
	if err != nil {
		t.Fatalf("ProcessMemberJoin() error = %v", err)
	}
	if unattributed.Attributed() {
		t.Error("expected unattributed join")
	}
}

func TestProcessor_ProcessMemberJoin_InvalidInput(t *testing.T) {
	processor, _ := setupTestProcessor()

	if _, err := processor.ProcessMemberJoin("g1", nil, "", ""); err == nil {
		t.Error("expected error for nil member")
	}
	if _, err := processor.ProcessMemberJoin("", &service.MemberInfo{UserID: "m1"}, "", ""); err == nil {
		t.Error("expected error for empty guild")
	}
}

func TestProcessor_ProcessCredit(t *testing.T) {
	processor, platform := setupTestProcessor()
	platform.AddMember("g1", "u1", "r-gold")

	sig, err := processor.ProcessCredit(context.Background(), CreditEvent{
		GuildID:   "g1",
		InviterID: "u1",
		Total:     6,
		Delta:     1,
		Source:    SourceJoin,
		InviteeID: "m1",
		Code:      "abc",
	})
	if err != nil {
		t.Fatalf("ProcessCredit() error = %v", err)
	}

	if sig.Type() != TypeInviteCredited {
		t.Errorf("Type() = %s, expected %s", sig.Type(), TypeInviteCredited)
	}
	if sig.UserID() != "u1" {
		t.Errorf("UserID() = %s, expected the inviter", sig.UserID())
	}
	if sig.Total != 6 || sig.Context().HeldTier != rank.TierGold {
		t.Errorf("unexpected signal total=%d held=%s", sig.Total, sig.Context().HeldTier)
	}
	if sig.Metadata()["invitee_id"] != "m1" {
		t.Errorf("expected invitee in metadata, got %v", sig.Metadata())
	}
}

func TestProcessor_ProcessCredit_MemberLeft(t *testing.T) {
	processor, _ := setupTestProcessor()

	_, err := processor.ProcessCredit(context.Background(), CreditEvent{GuildID: "g1", InviterID: "gone", Total: 1, Delta: 1})
	if !errors.Is(err, service.ErrMemberNotFound) {
		t.Errorf("expected ErrMemberNotFound, got %v", err)
	}
}

func TestProcessor_ProcessCredit_EmptyInviter(t *testing.T) {
	processor, _ := setupTestProcessor()

	if _, err := processor.ProcessCredit(context.Background(), CreditEvent{GuildID: "g1"}); err == nil {
		t.Error("expected error for empty inviter")
	}
}
