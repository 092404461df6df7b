package escalation

import (
	"fmt"
	"sync"
	"time"

	"github.com/WardenStudios/WardenBotGo/pkg/logger"
	"github.com/WardenStudios/WardenBotGo/pkg/models"
	"github.com/bwmarrin/discordgo"
)

// Orchestrator is the single entry point of the escalation engine. It
// sequences counting, evaluation, deduplication, execution, audit and
// notification, isolating each side effect behind its own failure
// boundary.
type Orchestrator struct {
	warnings  WarningStore
	rules     RuleRepository
	evaluator *Evaluator
	guard     *Guard
	executor  *Executor
	audit     AuditLogger
	notify    NotificationDispatcher
	sinks     []EventSink
}

// Options wires the orchestrator's collaborators.
type Options struct {
	Warnings   WarningStore
	Rules      RuleRepository
	Capability ModerationCapability
	Audit      AuditLogger
	Notifier   NotificationDispatcher
	Sinks      []EventSink
}

var (
	orchestrator *Orchestrator
	once         sync.Once
)

// Init initializes the global orchestrator instance.
func Init(opts Options) *Orchestrator {
	once.Do(func() {
		orchestrator = New(opts)
	})
	return orchestrator
}

// Get returns the global orchestrator instance.
func Get() *Orchestrator {
	return orchestrator
}

// New creates an Orchestrator from its collaborators.
func New(opts Options) *Orchestrator {
	return &Orchestrator{
		warnings:  opts.Warnings,
		rules:     opts.Rules,
		evaluator: NewEvaluator(opts.Rules),
		guard:     NewGuard(opts.Audit),
		executor:  NewExecutor(opts.Capability),
		audit:     opts.Audit,
		notify:    opts.Notifier,
		sinks:     opts.Sinks,
	}
}

// CheckResult is the outcome of an automatic escalation check.
// RuleTriggered is set whenever a rule matched, even when execution
// was suppressed as a duplicate, so callers can surface it.
type CheckResult struct {
	Triggered        bool                   `json:"triggered"`
	WarningCount     int                    `json:"warningCount"`
	RuleTriggered    *models.EscalationRule `json:"ruleTriggered,omitempty"`
	PunishmentResult *PunishmentResult      `json:"punishmentResult,omitempty"`
}

// PreviewResult is the side-effect-free answer to "what would fire on
// the next warning".
type PreviewResult struct {
	WarningCount     int                    `json:"warningCount"`
	NextWarningCount int                    `json:"nextWarningCount"`
	Rule             *models.EscalationRule `json:"rule,omitempty"`
}

// CheckAndExecute runs the automatic escalation path for a member. It
// never returns an error: any internal failure resolves to
// triggered=false so a warning event can never crash its caller.
func (o *Orchestrator) CheckAndExecute(guild *discordgo.Guild, member *discordgo.Member, triggerReason string) (result CheckResult) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error(fmt.Sprintf("Escalation check panicked for %s/%s: %v",
				guild.ID, member.User.ID, r), "Escalation")
			result = CheckResult{WarningCount: result.WarningCount}
		}
	}()

	count, err := o.warnings.CountActive(guild.ID, member.User.ID)
	if err != nil {
		logger.Error(fmt.Sprintf("Warning count failed for %s/%s: %v", guild.ID, member.User.ID, err), "Escalation")
		return result
	}
	result.WarningCount = count

	rule, err := o.evaluator.Evaluate(guild.ID, count)
	if err != nil {
		logger.Error(fmt.Sprintf("Rule evaluation failed for %s: %v", guild.ID, err), "Escalation")
		return result
	}
	if rule == nil {
		return result
	}
	result.RuleTriggered = rule

	if o.guard.IsDuplicate(guild.ID, member.User.ID, rule.ID, count) {
		logger.Debug(fmt.Sprintf("Escalation suppressed as duplicate: rule %s at %d warnings for %s/%s",
			rule.ID, count, guild.ID, member.User.ID), "Escalation")
		return result
	}

	pr := o.executor.Execute(guild, member, rule, count)
	o.finalize(guild, member, rule, count, &pr, AutomatedSystem{}, triggerReason)

	result.Triggered = true
	result.PunishmentResult = &pr
	return result
}

// ManualTrigger executes a specific rule against a member, bypassing
// the evaluator and the deduplication guard. Unlike the automatic
// path it returns an error, since its callers are admin-facing.
func (o *Orchestrator) ManualTrigger(guild *discordgo.Guild, member *discordgo.Member, ruleID, reason string, actor Actor) (*PunishmentResult, error) {
	rule, err := o.rules.GetRule(guild.ID, ruleID)
	if err != nil {
		return nil, fmt.Errorf("looking up rule %s: %w", ruleID, err)
	}
	if rule == nil {
		return nil, fmt.Errorf("escalation rule %s not found in guild %s", ruleID, guild.ID)
	}

	count, err := o.warnings.CountActive(guild.ID, member.User.ID)
	if err != nil {
		// The count only annotates the audit trail here; a manual
		// trigger proceeds without it.
		logger.Warn(fmt.Sprintf("Warning count unavailable for manual trigger on %s/%s: %v",
			guild.ID, member.User.ID, err), "Escalation")
		count = 0
	}

	pr := o.executor.Execute(guild, member, rule, count)
	o.finalize(guild, member, rule, count, &pr, actor, reason)
	return &pr, nil
}

// Preview reports which rule would fire on the member's next warning.
// When warningCount is non-nil it is used instead of the stored count.
// Preview performs no writes and no platform calls.
func (o *Orchestrator) Preview(guildID, userID string, warningCount *int) (*PreviewResult, error) {
	count := 0
	if warningCount != nil {
		count = *warningCount
	} else {
		var err error
		count, err = o.warnings.CountActive(guildID, userID)
		if err != nil {
			return nil, fmt.Errorf("counting warnings for %s/%s: %w", guildID, userID, err)
		}
	}

	rule, err := o.evaluator.Evaluate(guildID, count+1)
	if err != nil {
		return nil, fmt.Errorf("evaluating rules for %s: %w", guildID, err)
	}

	return &PreviewResult{
		WarningCount:     count,
		NextWarningCount: count + 1,
		Rule:             rule,
	}, nil
}

// ResetUserWarnings deactivates every active warning for a user, one
// at a time, and returns how many were deactivated. Each removal is an
// independent idempotent operation; the first failure stops the loop
// and is returned with the count removed so far.
func (o *Orchestrator) ResetUserWarnings(guildID, userID string, actor Actor, reason string) (int, error) {
	active, err := o.warnings.GetActive(guildID, userID)
	if err != nil {
		return 0, fmt.Errorf("loading active warnings for %s/%s: %w", guildID, userID, err)
	}

	removed := 0
	for _, w := range active {
		ok, err := o.warnings.RemoveWarning(guildID, userID, w.ID, actor.ID(), reason)
		if err != nil {
			return removed, fmt.Errorf("removing warning %s: %w", w.ID, err)
		}
		if ok {
			removed++
		}
	}

	logger.Info(fmt.Sprintf("Reset %d warnings for %s/%s by %s", removed, guildID, userID, actor.ID()), "Escalation")
	return removed, nil
}

// finalize runs the post-execution pipeline: moderation case
// (best-effort), escalation log entry (always), notifications and
// event sinks (best-effort). None of these steps can change the
// punishment's success value.
func (o *Orchestrator) finalize(guild *discordgo.Guild, member *discordgo.Member, rule *models.EscalationRule, warningCount int, pr *PunishmentResult, actor Actor, triggerReason string) {
	now := time.Now()

	if pr.Success && rule.PunishmentType != models.PunishmentTypeNone {
		created, err := o.audit.CreateCase(models.ModerationCase{
			GuildID:        guild.ID,
			ActionType:     rule.PunishmentType,
			UserID:         member.User.ID,
			ModeratorID:    actor.ID(),
			Reason:         rule.PunishmentReason,
			AdditionalInfo: fmt.Sprintf("Escalation at %d warnings (%s)", warningCount, triggerReason),
			CreatedAt:      now,
		})
		if err != nil {
			logger.Error(fmt.Sprintf("Case creation failed for %s/%s: %v", guild.ID, member.User.ID, err), "Escalation")
		} else if created != nil {
			pr.CaseNumber = created.CaseNumber
		}
	}

	entry := models.EscalationLogEntry{
		GuildID:                   guild.ID,
		UserID:                    member.User.ID,
		ModeratorID:               actor.ID(),
		RuleID:                    rule.ID,
		WarningCount:              warningCount,
		PunishmentType:            rule.PunishmentType,
		PunishmentDurationMinutes: rule.PunishmentDurationMinutes,
		PunishmentReason:          rule.PunishmentReason,
		Success:                   pr.Success,
		ErrorMessage:              pr.Error,
		CaseNumber:                pr.CaseNumber,
		CreatedAt:                 now,
	}
	if err := o.audit.LogEscalation(entry); err != nil {
		logger.Error(fmt.Sprintf("Escalation log write failed for %s/%s: %v", guild.ID, member.User.ID, err), "Escalation")
	}

	o.dispatchNotifications(guild, member, rule, warningCount, pr)

	event := models.EscalationEvent{
		GuildID:        guild.ID,
		UserID:         member.User.ID,
		RuleID:         rule.ID,
		WarningCount:   warningCount,
		PunishmentType: rule.PunishmentType,
		Action:         pr.Action,
		Success:        pr.Success,
		CaseNumber:     pr.CaseNumber,
		Timestamp:      now,
	}
	for _, sink := range o.sinks {
		sink.PublishEscalation(event)
	}
}

// dispatchNotifications sends the target DM (on success) and the staff
// summary. Both are best-effort and swallow their own errors.
func (o *Orchestrator) dispatchNotifications(guild *discordgo.Guild, member *discordgo.Member, rule *models.EscalationRule, warningCount int, pr *PunishmentResult) {
	if o.notify == nil {
		return
	}

	if pr.Success && rule.PunishmentType != models.PunishmentTypeNone {
		dm := Notification{
			Title: fmt.Sprintf("Moderation action in %s", guild.Name),
			Description: fmt.Sprintf("You reached **%d warnings** and received: **%s**.\n**Reason:** %s",
				warningCount, pr.Action, rule.PunishmentReason),
			Color: 0xE67E22,
		}
		if err := o.notify.DirectMessage(member.User.ID, dm); err != nil {
			logger.Debug(fmt.Sprintf("Escalation DM to %s failed: %v", member.User.ID, err), "Escalation")
		}
	}

	status := "✅ succeeded"
	color := 0x2ECC71
	if !pr.Success {
		status = "❌ failed: " + pr.Error
		color = 0xE74C3C
	}
	summary := Notification{
		Title: "⚖️ Automatic escalation",
		Description: fmt.Sprintf("**User:** <@%s>\n**Warnings:** %d\n**Action:** %s\n**Outcome:** %s",
			member.User.ID, warningCount, pr.Action, status),
		Color: color,
	}
	if pr.CaseNumber > 0 {
		summary.Description += fmt.Sprintf("\n**Case:** #%d", pr.CaseNumber)
	}
	if err := o.notify.PostToModerationChannel(guild.ID, summary); err != nil {
		logger.Debug(fmt.Sprintf("Mod channel post for %s failed: %v", guild.ID, err), "Escalation")
	}
}
