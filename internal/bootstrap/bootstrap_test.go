// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package bootstrap

import (
	"context"
	"testing"
	"time"

	actionBuiltin "github.com/AccelByte/extend-invite-rewards/pkg/action/builtin"
	"github.com/AccelByte/extend-invite-rewards/pkg/invite"
	"github.com/AccelByte/extend-invite-rewards/pkg/ledger"
	"github.com/AccelByte/extend-invite-rewards/pkg/pipeline"
	"github.com/AccelByte/extend-invite-rewards/pkg/rank"
	"github.com/AccelByte/extend-invite-rewards/pkg/service/mock"
)

const shippedConfig = "../../config/pipeline.yaml"

var testRoles = rank.RoleSet{Initiate: "R-init", Gold: "R-gold", Platinum: "R-plat"}

func TestShippedPipelineWiring(t *testing.T) {
	cfg, err := pipeline.LoadConfig(shippedConfig)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	platform := mock.NewPlatform()

	_, ruleRegistry, err := InitRuleEngine(cfg, rank.Thresholds{Gold: 5, Platinum: 10})
	if err != nil {
		t.Fatalf("InitRuleEngine() error = %v", err)
	}

	_, actionRegistry, err := InitActionExecutor(cfg, &actionBuiltin.Dependencies{
		Roles:            platform,
		Notifier:         platform,
		RoleSet:          testRoles,
		RewardsChannelID: "C-rewards",
	}, time.Second)
	if err != nil {
		t.Fatalf("InitActionExecutor() error = %v", err)
	}

	if err := pipeline.ValidateWiring(ruleRegistry, actionRegistry, cfg); err != nil {
		t.Errorf("shipped config does not wire: %v", err)
	}

	for _, id := range []string{"starter_role", "rank_promotion"} {
		if ruleRegistry.Get(id) == nil {
			t.Errorf("expected rule %s to be registered", id)
		}
	}
	if actionRegistry.Count() != 6 {
		t.Errorf("expected 6 actions, got %d", actionRegistry.Count())
	}
}

func TestShippedPipelinePromotes(t *testing.T) {
	cfg, err := pipeline.LoadConfig(shippedConfig)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	platform := mock.NewPlatform()
	platform.AddMember("G", "U1")
	platform.SetInvites("G", invite.Record{Code: "abc", InviterID: "U1", Uses: 4})

	engine, _, err := InitRuleEngine(cfg, rank.Thresholds{Gold: 5, Platinum: 10})
	if err != nil {
		t.Fatalf("InitRuleEngine() error = %v", err)
	}
	executor, _, err := InitActionExecutor(cfg, &actionBuiltin.Dependencies{
		Roles:            platform,
		Notifier:         platform,
		RoleSet:          testRoles,
		RewardsChannelID: "C-rewards",
	}, time.Second)
	if err != nil {
		t.Fatalf("InitActionExecutor() error = %v", err)
	}

	credits := ledger.NewMemory()
	for i := 0; i < 4; i++ {
		if _, err := credits.Increment("U1", "G", 1); err != nil {
			t.Fatalf("Increment() error = %v", err)
		}
	}

	manager := InitPipeline(pipeline.ManagerConfig{
		Tracker:     InitInviteTracker(platform, time.Second),
		Ledger:      credits,
		Processor:   InitSignalProcessor(platform, testRoles),
		Engine:      engine,
		Executor:    executor,
		CallTimeout: time.Second,
	}, cfg)

	ctx := context.Background()
	if _, err := manager.LoadGuild(ctx, "G"); err != nil {
		t.Fatalf("LoadGuild() error = %v", err)
	}

	platform.UseInvite("G", "abc")
	newcomer := platform.AddMember("G", "U9")

	outcome, err := manager.OnMemberJoin(ctx, "G", newcomer)
	if err != nil {
		t.Fatalf("OnMemberJoin() error = %v", err)
	}
	if outcome.InviterTotal != 5 {
		t.Errorf("InviterTotal = %d, want 5", outcome.InviterTotal)
	}
	if !platform.HasRole("G", "U1", testRoles.Gold) {
		t.Error("expected the inviter to be promoted to Gold")
	}
	if !platform.HasRole("G", "U9", testRoles.Initiate) {
		t.Error("expected the newcomer to get the Initiate role")
	}
	if got := len(platform.MessagesTo("C-rewards")); got != 1 {
		t.Errorf("expected 1 announcement, got %d", got)
	}
}
