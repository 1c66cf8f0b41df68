// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package pipeline

import "github.com/AccelByte/extend-invite-rewards/pkg/action"

// Pipeline connects rules to actions.
// A pipeline defines which actions run, and under which policy, when a rule triggers.
type Pipeline struct {
	Name     string                   // Pipeline name
	Rules    []string                 // Rule IDs in config order
	Actions  map[string][]string      // Rule ID → Action IDs mapping
	Policies map[string]action.Policy // Rule ID → executor policy
}

// NewPipeline creates a new pipeline with the given name.
func NewPipeline(name string) *Pipeline {
	return &Pipeline{
		Name:     name,
		Actions:  make(map[string][]string),
		Policies: make(map[string]action.Policy),
	}
}

// FromConfig builds the routing table of every enabled rule in a config.
func FromConfig(name string, config *Config) *Pipeline {
	p := NewPipeline(name)
	for _, rc := range config.Rules {
		if !rc.Enabled {
			continue
		}
		p.AddRule(rc.ID).AddActions(rc.ID, rc.Actions...).SetPolicy(rc.ID, rc.Policy())
	}
	return p
}

// AddRule adds a rule to be evaluated in this pipeline.
func (p *Pipeline) AddRule(ruleID string) *Pipeline {
	p.Rules = append(p.Rules, ruleID)
	return p
}

// AddActions associates actions with a rule.
func (p *Pipeline) AddActions(ruleID string, actionIDs ...string) *Pipeline {
	if p.Actions == nil {
		p.Actions = make(map[string][]string)
	}
	p.Actions[ruleID] = append(p.Actions[ruleID], actionIDs...)
	return p
}

// GetActions returns the action IDs for a given rule.
func (p *Pipeline) GetActions(ruleID string) []string {
	return p.Actions[ruleID]
}

// SetPolicy sets how a rule's actions react to failures.
func (p *Pipeline) SetPolicy(ruleID string, policy action.Policy) *Pipeline {
	if p.Policies == nil {
		p.Policies = make(map[string]action.Policy)
	}
	p.Policies[ruleID] = policy
	return p
}

// GetPolicy returns the policy for a rule. The zero policy runs every action.
func (p *Pipeline) GetPolicy(ruleID string) action.Policy {
	return p.Policies[ruleID]
}
