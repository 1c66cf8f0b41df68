// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package pipeline

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const testPipelineYAML = `
rules:
  - id: starter_role
    type: starter_role
    enabled: true
    actions: [grant_initiate, welcome_dm, welcome_message]

  - id: rank_promotion
    type: rank_promotion
    enabled: true
    priority: 10
    stop_on_error: true
    actions: [revoke_previous_tier, grant_new_tier, announce_promotion]

actions:
  - id: grant_initiate
    type: grant_role
    enabled: true
    parameters:
      role: initiate

  - id: welcome_dm
    type: welcome_dm
    enabled: true

  - id: welcome_message
    type: welcome_message
    enabled: true

  - id: revoke_previous_tier
    type: revoke_tier_role
    enabled: true

  - id: grant_new_tier
    type: grant_tier_role
    enabled: true
    retry:
      max_attempts: 2
      delay: 1ms

  - id: announce_promotion
    type: announce_promotion
    enabled: true
    parameters:
      color: "#FFD700"
`

func TestLoadConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "pipeline.yaml")

	if err := os.WriteFile(configPath, []byte(testPipelineYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	config, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if len(config.Rules) != 2 {
		t.Fatalf("expected 2 rules, got %d", len(config.Rules))
	}
	if len(config.Actions) != 6 {
		t.Fatalf("expected 6 actions, got %d", len(config.Actions))
	}

	promotion := config.Rules[1]
	if promotion.ID != "rank_promotion" || promotion.Priority != 10 {
		t.Errorf("unexpected promotion rule: %+v", promotion)
	}
	if p := promotion.Policy(); !p.StopOnError || p.RollbackOnError {
		t.Errorf("expected stop without rollback, got %+v", p)
	}
	if p := config.Rules[0].Policy(); p.StopOnError {
		t.Errorf("expected starter rule to continue on error, got %+v", p)
	}

	retry := config.Actions[4].Retry
	if retry == nil || retry.MaxAttempts != 2 || retry.Delay != time.Millisecond {
		t.Errorf("unexpected retry config: %+v", retry)
	}

	grant := config.Actions[0].ToActionConfig()
	if got := grant.GetParameterString("role", ""); got != "initiate" {
		t.Errorf("expected role parameter 'initiate', got %q", got)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestParseConfig_EnvVarExpansion(t *testing.T) {
	t.Setenv("TEST_REWARDS_CHANNEL", "123456789012345678")

	yaml := `
rules: []
actions:
  - id: announce
    type: announce_promotion
    enabled: ${TEST_ANNOUNCE_ENABLED:true}
    parameters:
      channel_id: "${TEST_REWARDS_CHANNEL}"
`
	config, err := ParseConfig([]byte(yaml))
	if err != nil {
		t.Fatalf("ParseConfig failed: %v", err)
	}

	ac := config.Actions[0]
	if !ac.Enabled {
		t.Error("expected default to enable the action")
	}
	if got := ac.Parameters["channel_id"]; got != "123456789012345678" {
		t.Errorf("expected expanded channel ID, got %v", got)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr string
	}{
		{
			name: "valid",
			config: Config{
				Rules:   []RuleConfig{{ID: "r", Type: "starter_role", Actions: []string{"a"}}},
				Actions: []ActionConfig{{ID: "a", Type: "grant_role"}},
			},
		},
		{
			name:    "empty rule id",
			config:  Config{Rules: []RuleConfig{{Type: "starter_role"}}},
			wantErr: "empty ID",
		},
		{
			name:    "duplicate rule id",
			config:  Config{Rules: []RuleConfig{{ID: "r", Type: "x"}, {ID: "r", Type: "x"}}},
			wantErr: "duplicate rule ID",
		},
		{
			name:    "empty rule type",
			config:  Config{Rules: []RuleConfig{{ID: "r"}}},
			wantErr: "empty type",
		},
		{
			name:    "rollback without stop",
			config:  Config{Rules: []RuleConfig{{ID: "r", Type: "x", RollbackOnError: true}}},
			wantErr: "rollback_on_error",
		},
		{
			name:    "duplicate action id",
			config:  Config{Actions: []ActionConfig{{ID: "a", Type: "x"}, {ID: "a", Type: "x"}}},
			wantErr: "duplicate action ID",
		},
		{
			name:    "unknown action reference",
			config:  Config{Rules: []RuleConfig{{ID: "r", Type: "x", Actions: []string{"missing"}}}},
			wantErr: "unknown action",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestFromConfig(t *testing.T) {
	config, err := ParseConfig([]byte(testPipelineYAML))
	if err != nil {
		t.Fatalf("ParseConfig failed: %v", err)
	}
	config.Rules[0].Enabled = false

	p := FromConfig("test", config)
	if len(p.Rules) != 1 || p.Rules[0] != "rank_promotion" {
		t.Fatalf("expected only rank_promotion, got %v", p.Rules)
	}
	if got := p.GetActions("rank_promotion"); len(got) != 3 || got[0] != "revoke_previous_tier" {
		t.Errorf("unexpected actions: %v", got)
	}
	if got := p.GetActions("starter_role"); len(got) != 0 {
		t.Errorf("disabled rule must not be routed, got %v", got)
	}
	if !p.GetPolicy("rank_promotion").StopOnError {
		t.Error("expected stop_on_error policy")
	}
}
