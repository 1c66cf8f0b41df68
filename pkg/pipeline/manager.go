// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/AccelByte/extend-invite-rewards/pkg/action"
	"github.com/AccelByte/extend-invite-rewards/pkg/common"
	"github.com/AccelByte/extend-invite-rewards/pkg/invite"
	"github.com/AccelByte/extend-invite-rewards/pkg/ledger"
	"github.com/AccelByte/extend-invite-rewards/pkg/metrics"
	"github.com/AccelByte/extend-invite-rewards/pkg/rank"
	"github.com/AccelByte/extend-invite-rewards/pkg/rule"
	"github.com/AccelByte/extend-invite-rewards/pkg/service"
	"github.com/AccelByte/extend-invite-rewards/pkg/signal"
)

// ErrInvalidAmount is returned when a manual credit is not a positive integer.
var ErrInvalidAmount = errors.New("amount must be positive")

// ManagerConfig holds the components a Manager orchestrates.
type ManagerConfig struct {
	Tracker   *invite.Tracker
	Ledger    ledger.Ledger
	Processor *signal.Processor
	Engine    *rule.Engine
	Executor  *action.Executor
	Pipeline  *Pipeline

	// Notifier and LogChannelID enable the audit line for manual credits.
	Notifier     service.Notifier
	LogChannelID string

	// CallTimeout bounds the audit message send.
	CallTimeout time.Duration
}

// Manager orchestrates the complete invite rewards pipeline:
// Join → Attribution → Ledger → Signal → Rules → Actions
//
// Work for one guild is serialized, so two joins never race on the
// snapshot or evaluate the same inviter's rank at the same time.
type Manager struct {
	tracker      *invite.Tracker
	ledger       ledger.Ledger
	processor    *signal.Processor
	engine       *rule.Engine
	executor     *action.Executor
	pipeline     *Pipeline
	notifier     service.Notifier
	logChannelID string
	callTimeout  time.Duration

	mu     sync.Mutex
	guilds map[string]*sync.Mutex
}

// NewManager creates a new pipeline manager with all required components.
func NewManager(cfg ManagerConfig) *Manager {
	p := cfg.Pipeline
	if p == nil {
		p = NewPipeline("empty")
	}

	return &Manager{
		tracker:      cfg.Tracker,
		ledger:       cfg.Ledger,
		processor:    cfg.Processor,
		engine:       cfg.Engine,
		executor:     cfg.Executor,
		pipeline:     p,
		notifier:     cfg.Notifier,
		logChannelID: cfg.LogChannelID,
		callTimeout:  cfg.CallTimeout,
		guilds:       make(map[string]*sync.Mutex),
	}
}

func (m *Manager) guildLock(guildID string) *sync.Mutex {
	m.mu.Lock()
	defer m.mu.Unlock()

	l, ok := m.guilds[guildID]
	if !ok {
		l = &sync.Mutex{}
		m.guilds[guildID] = l
	}
	return l
}

// JoinOutcome summarizes how a join was handled.
type JoinOutcome struct {
	EventID string
	// Attribution is nil when the join could not be attributed.
	Attribution *invite.Attribution
	// InviterTotal is the inviter's credit after this join, 0 when unattributed.
	InviterTotal int
	// Triggers lists the rule IDs that fired, in execution order.
	Triggers []string
}

// LoadGuild stores the current invite list of a guild as the attribution baseline.
func (m *Manager) LoadGuild(ctx context.Context, guildID string) (int, error) {
	n, err := m.tracker.Load(ctx, guildID)
	if err != nil {
		metrics.FailuresTotal.WithLabelValues(metrics.FailureFetch).Inc()
		return 0, err
	}
	logrus.Infof("loaded %d invites for guild %s", n, guildID)
	return n, nil
}

// LoadGuilds loads every guild, logging failures and continuing with the rest.
// Returns the number of guilds loaded.
func (m *Manager) LoadGuilds(ctx context.Context, guildIDs []string) int {
	loaded := 0
	for _, guildID := range guildIDs {
		if _, err := m.LoadGuild(ctx, guildID); err != nil {
			logrus.Errorf("failed to load invites for guild %s: %v", guildID, err)
			continue
		}
		loaded++
	}
	return loaded
}

// GetCredit returns the invite credit of a user in a guild.
func (m *Manager) GetCredit(userID, guildID string) int {
	return m.ledger.Get(userID, guildID)
}

// OnMemberJoin handles a member joining a guild.
// Each stage is isolated: a failed attribution still lets the starter role
// through, and a failed welcome never blocks the inviter's credit.
func (m *Manager) OnMemberJoin(ctx context.Context, guildID string, member *service.MemberInfo) (*JoinOutcome, error) {
	if member == nil || member.UserID == "" {
		return nil, fmt.Errorf("member is empty in join event")
	}

	outcome := &JoinOutcome{EventID: uuid.NewString()}

	scope := common.StartScope(ctx, "pipeline.OnMemberJoin")
	defer scope.Finish()
	scope.Tag("event_id", outcome.EventID)
	scope.Tag("guild_id", guildID)
	scope.Tag("user_id", member.UserID)
	log := scope.Log.WithFields(logrus.Fields{
		"eventID": outcome.EventID,
		"guildID": guildID,
		"userID":  member.UserID,
	})

	l := m.guildLock(guildID)
	l.Lock()
	defer l.Unlock()

	metrics.MemberJoinsTotal.Inc()
	log.Info("processing member join through pipeline")

	// Step 1: Attribute the join before anything else touches the invite list
	attribution, err := m.tracker.Track(scope.Ctx, guildID)
	switch {
	case err != nil:
		metrics.AttributionsTotal.WithLabelValues(metrics.AttributionFetchError).Inc()
		metrics.FailuresTotal.WithLabelValues(metrics.FailureFetch).Inc()
		scope.Fail(err)
		log.Warnf("attribution skipped: %v", err)
	case attribution == nil:
		metrics.AttributionsTotal.WithLabelValues(metrics.AttributionUnmatched).Inc()
		log.Info("join could not be attributed to an invite")
	default:
		metrics.AttributionsTotal.WithLabelValues(metrics.AttributionMatched).Inc()
		outcome.Attribution = attribution
		log.Infof("join attributed to inviter %s via code %s", attribution.InviterID, attribution.Code)
	}

	// Step 2: Member-side rules (starter role, welcome)
	inviterID, code := "", ""
	if attribution != nil {
		inviterID, code = attribution.InviterID, attribution.Code
	}
	sig, err := m.processor.ProcessMemberJoin(guildID, member, inviterID, code)
	if err != nil {
		log.Errorf("failed to process join to signal: %v", err)
	} else {
		outcome.Triggers = append(outcome.Triggers, m.evaluateAndExecute(scope, sig)...)
	}

	// Step 3: Credit the inviter and evaluate their rank
	if attribution == nil {
		return outcome, nil
	}

	total, err := m.ledger.Increment(attribution.InviterID, guildID, 1)
	if err != nil {
		log.Errorf("failed to credit inviter %s: %v", attribution.InviterID, err)
		return outcome, nil
	}
	metrics.CreditsTotal.WithLabelValues(signal.SourceJoin).Inc()
	outcome.InviterTotal = total
	scope.Count("inviter_total", total)
	log.Infof("inviter %s now has %d invites", attribution.InviterID, total)

	fired := m.processCredit(scope, signal.CreditEvent{
		GuildID:   guildID,
		InviterID: attribution.InviterID,
		Total:     total,
		Delta:     1,
		Source:    signal.SourceJoin,
		InviteeID: member.UserID,
		Code:      attribution.Code,
	})
	outcome.Triggers = append(outcome.Triggers, fired...)

	return outcome, nil
}

// GrantManualCredit adds credits to a user on an admin's behalf and evaluates
// the user's rank like an organic credit. Returns the new total.
func (m *Manager) GrantManualCredit(ctx context.Context, userID, guildID string, amount int, actor, reason string) (int, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidAmount, amount)
	}

	scope := common.StartScope(ctx, "pipeline.GrantManualCredit")
	defer scope.Finish()
	scope.Tag("guild_id", guildID)
	scope.Tag("user_id", userID)
	scope.Tag("actor", actor)

	l := m.guildLock(guildID)
	l.Lock()
	defer l.Unlock()

	total, err := m.ledger.Increment(userID, guildID, amount)
	if err != nil {
		scope.Fail(err)
		return 0, err
	}
	metrics.CreditsTotal.WithLabelValues(signal.SourceManual).Add(float64(amount))
	scope.Log.Infof("%s granted %d invites to %s in guild %s (total=%d, reason=%q)", actor, amount, userID, guildID, total, reason)

	m.postAudit(scope, userID, amount, total, actor, reason)

	m.processCredit(scope, signal.CreditEvent{
		GuildID:   guildID,
		InviterID: userID,
		Total:     total,
		Delta:     amount,
		Source:    signal.SourceManual,
		Actor:     actor,
		Reason:    reason,
	})

	return total, nil
}

func (m *Manager) postAudit(scope *common.Scope, userID string, amount, total int, actor, reason string) {
	if m.notifier == nil || m.logChannelID == "" {
		return
	}

	content := fmt.Sprintf("%s added %d invites to %s. Total: %d", service.Mention(actor), amount, service.Mention(userID), total)
	if reason != "" {
		content += fmt.Sprintf(" (reason: %s)", reason)
	}

	ctx := scope.Ctx
	if m.callTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.callTimeout)
		defer cancel()
	}
	if err := m.notifier.SendChannelMessage(ctx, m.logChannelID, service.Message{Content: content}); err != nil {
		metrics.FailuresTotal.WithLabelValues(failureKind(err)).Inc()
		scope.Log.Warnf("failed to post audit line: %v", err)
	}
}

// processCredit turns an applied ledger change into a signal and runs it.
func (m *Manager) processCredit(scope *common.Scope, event signal.CreditEvent) []string {
	sig, err := m.processor.ProcessCredit(scope.Ctx, event)
	if errors.Is(err, service.ErrMemberNotFound) {
		metrics.FailuresTotal.WithLabelValues(metrics.FailureMemberNotFound).Inc()
		scope.Log.Debugf("inviter %s is no longer in guild %s, skipping rank evaluation", event.InviterID, event.GuildID)
		return nil
	}
	if err != nil {
		metrics.FailuresTotal.WithLabelValues(failureKind(err)).Inc()
		scope.Log.Errorf("failed to process credit to signal: %v", err)
		return nil
	}

	return m.evaluateAndExecute(scope, sig)
}

// evaluateAndExecute evaluates rules for a signal and executes triggered actions.
// Returns the IDs of the rules that fired.
func (m *Manager) evaluateAndExecute(scope *common.Scope, sig signal.Signal) []string {
	child := scope.Child("pipeline." + sig.Type())
	defer child.Finish()
	ctx := child.Ctx
	log := child.Log.WithFields(logrus.Fields{
		"signalType": sig.Type(),
		"userID":     sig.UserID(),
	})

	triggers, err := m.engine.Evaluate(ctx, sig)
	if err != nil {
		log.Errorf("rule evaluation failed: %v", err)
		return nil
	}

	if len(triggers) == 0 {
		log.Debug("no rules triggered for signal")
		return nil
	}

	var fired []string
	for _, trigger := range triggers {
		fired = append(fired, trigger.RuleID)
		child.Event("rule " + trigger.RuleID + " triggered")
		metrics.RuleTriggersTotal.WithLabelValues(trigger.RuleID).Inc()
		if d, ok := trigger.Decision(); ok && d.Grant != rank.TierNone {
			metrics.PromotionsTotal.WithLabelValues(d.Grant.String()).Inc()
		}

		actionIDs := m.pipeline.GetActions(trigger.RuleID)
		if len(actionIDs) == 0 {
			log.Infof("rule %s has no actions configured", trigger.RuleID)
			continue
		}

		results, err := m.executor.ExecuteMultiple(ctx, actionIDs, trigger, sig.Context(), m.pipeline.GetPolicy(trigger.RuleID))
		if err != nil {
			child.Fail(err)
		}

		successCount := 0
		failureCount := 0
		for _, result := range results {
			metrics.ActionExecutionsTotal.WithLabelValues(result.Type, result.Outcome()).Inc()
			if result.Type != "" {
				metrics.ActionDuration.WithLabelValues(result.Type).Observe(result.Duration.Seconds())
			}
			if result.Error != nil {
				failureCount++
				metrics.FailuresTotal.WithLabelValues(failureKind(result.Error)).Inc()
				log.Errorf("action %s for rule %s failed: %v", result.ActionID, trigger.RuleID, result.Error)
				continue
			}
			successCount++
		}

		skipped := len(actionIDs) - len(results)
		log.Infof("rule %s: %d actions succeeded, %d failed, %d skipped", trigger.RuleID, successCount, failureCount, skipped)
	}

	return fired
}

func failureKind(err error) string {
	switch {
	case errors.Is(err, service.ErrRoleOperation):
		return metrics.FailureRoleOperation
	case errors.Is(err, service.ErrNotification):
		return metrics.FailureNotification
	case errors.Is(err, service.ErrMemberNotFound):
		return metrics.FailureMemberNotFound
	case errors.Is(err, invite.ErrFetchFailed):
		return metrics.FailureFetch
	}
	return metrics.FailureOther
}
