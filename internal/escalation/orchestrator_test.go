package escalation

import (
	"errors"
	"strings"
	"testing"

	"github.com/WardenStudios/WardenBotGo/pkg/models"
)

type testHarness struct {
	warnings *fakeWarningStore
	rules    *fakeRuleRepo
	cap      *fakeCapability
	audit    *fakeAudit
	notify   *fakeNotifier
	sink     *fakeSink
	orch     *Orchestrator
}

func newHarness(rules ...models.EscalationRule) *testHarness {
	h := &testHarness{
		warnings: newFakeWarningStore(),
		rules:    newFakeRuleRepo(rules...),
		cap:      newFakeCapability(),
		audit:    newFakeAudit(),
		notify:   &fakeNotifier{},
		sink:     &fakeSink{},
	}
	h.orch = New(Options{
		Warnings:   h.warnings,
		Rules:      h.rules,
		Capability: h.cap,
		Audit:      h.audit,
		Notifier:   h.notify,
		Sinks:      []EventSink{h.sink},
	})
	return h
}

// Scenario: 3 active warnings hit a timeout rule at threshold 3.
func TestCheckAndExecuteTriggersTimeout(t *testing.T) {
	h := newHarness(models.EscalationRule{
		ID: "r3", GuildID: "G1", WarningThreshold: 3,
		PunishmentType:            models.PunishmentTypeTimeout,
		PunishmentDurationMinutes: 60,
		PunishmentReason:          "three strikes",
	})
	h.warnings.addActive("G1", "U1", 3)

	result := h.orch.CheckAndExecute(testGuild(), testMember("U1"), "warning issued")

	if !result.Triggered {
		t.Fatal("Triggered = false, want true")
	}
	if result.WarningCount != 3 {
		t.Errorf("WarningCount = %d, want 3", result.WarningCount)
	}
	if result.PunishmentResult == nil || !result.PunishmentResult.Success {
		t.Fatalf("PunishmentResult = %+v, want success", result.PunishmentResult)
	}
	if !strings.Contains(result.PunishmentResult.Action, "60 minute timeout") {
		t.Errorf("Action = %q, want 60 minute timeout mentioned", result.PunishmentResult.Action)
	}
	if result.PunishmentResult.CaseNumber != 1 {
		t.Errorf("CaseNumber = %d, want 1", result.PunishmentResult.CaseNumber)
	}
	if len(h.audit.cases) != 1 {
		t.Errorf("cases = %d, want 1", len(h.audit.cases))
	}
	if len(h.audit.entries) != 1 {
		t.Fatalf("log entries = %d, want 1", len(h.audit.entries))
	}
	entry := h.audit.entries[0]
	if entry.ModeratorID != SystemActorID {
		t.Errorf("entry.ModeratorID = %q, want system actor marker %q", entry.ModeratorID, SystemActorID)
	}
	if !entry.Success || entry.CaseNumber != 1 || entry.WarningCount != 3 {
		t.Errorf("entry = %+v, want success with case #1 at 3 warnings", entry)
	}
	if len(h.notify.dms) != 1 {
		t.Errorf("DMs = %d, want 1", len(h.notify.dms))
	}
	if len(h.notify.posts) != 1 {
		t.Errorf("mod channel posts = %d, want 1", len(h.notify.posts))
	}
	if len(h.sink.events) != 1 {
		t.Errorf("sink events = %d, want 1", len(h.sink.events))
	}
}

// Scenario: immediately repeating the triggering call is suppressed.
func TestCheckAndExecuteIdempotentWithinWindow(t *testing.T) {
	h := newHarness(models.EscalationRule{
		ID: "r3", GuildID: "G1", WarningThreshold: 3,
		PunishmentType:            models.PunishmentTypeTimeout,
		PunishmentDurationMinutes: 60,
	})
	h.warnings.addActive("G1", "U1", 3)

	first := h.orch.CheckAndExecute(testGuild(), testMember("U1"), "warning issued")
	second := h.orch.CheckAndExecute(testGuild(), testMember("U1"), "warning issued")

	if !first.Triggered {
		t.Fatal("first call: Triggered = false, want true")
	}
	if second.Triggered {
		t.Error("second call: Triggered = true, want false (duplicate)")
	}
	if second.RuleTriggered == nil || second.RuleTriggered.ID != "r3" {
		t.Error("second call: RuleTriggered not surfaced for visibility")
	}
	if len(h.cap.timeouts) != 1 {
		t.Errorf("timeout calls = %d, want exactly 1", len(h.cap.timeouts))
	}
	if len(h.audit.cases) != 1 {
		t.Errorf("cases = %d, want exactly 1", len(h.audit.cases))
	}
}

// Scenario: ban rule with duration 10 clamps message deletion to 7 days.
func TestCheckAndExecuteBanClamped(t *testing.T) {
	h := newHarness(models.EscalationRule{
		ID: "r5", GuildID: "G1", WarningThreshold: 5,
		PunishmentType:            models.PunishmentTypeBan,
		PunishmentDurationMinutes: 10,
		PunishmentReason:          "five strikes",
	})
	h.warnings.addActive("G1", "U1", 5)

	result := h.orch.CheckAndExecute(testGuild(), testMember("U1"), "warning issued")

	if !result.Triggered || !result.PunishmentResult.Success {
		t.Fatalf("result = %+v, want successful trigger", result)
	}
	if len(h.cap.bans) != 1 {
		t.Fatalf("ban calls = %d, want 1", len(h.cap.bans))
	}
	if h.cap.bans[0].days != 7 {
		t.Errorf("deleteMessageDays = %d, want 7 (clamped from 10)", h.cap.bans[0].days)
	}
}

// Scenario: 4 warnings with no rule at threshold 4.
func TestCheckAndExecuteNoRuleMatched(t *testing.T) {
	h := newHarness(
		models.EscalationRule{ID: "r3", GuildID: "G1", WarningThreshold: 3},
		models.EscalationRule{ID: "r5", GuildID: "G1", WarningThreshold: 5},
	)
	h.warnings.addActive("G1", "U1", 4)

	result := h.orch.CheckAndExecute(testGuild(), testMember("U1"), "warning issued")

	if result.Triggered {
		t.Error("Triggered = true, want false")
	}
	if result.WarningCount != 4 {
		t.Errorf("WarningCount = %d, want 4", result.WarningCount)
	}
	if result.RuleTriggered != nil {
		t.Errorf("RuleTriggered = %v, want nil", result.RuleTriggered)
	}
	if len(h.audit.entries) != 0 {
		t.Errorf("log entries = %d, want 0", len(h.audit.entries))
	}
}

func TestCheckAndExecuteFailedPunishmentStillLogged(t *testing.T) {
	h := newHarness(models.EscalationRule{
		ID: "r3", GuildID: "G1", WarningThreshold: 3,
		PunishmentType: models.PunishmentTypeKick,
	})
	h.warnings.addActive("G1", "U1", 3)
	h.cap.failWith = errors.New("missing permissions")

	result := h.orch.CheckAndExecute(testGuild(), testMember("U1"), "warning issued")

	if !result.Triggered {
		t.Fatal("Triggered = false, want true (execution was attempted)")
	}
	if result.PunishmentResult.Success {
		t.Error("Success = true, want false")
	}
	if len(h.audit.cases) != 0 {
		t.Errorf("cases = %d, want 0 for failed punishment", len(h.audit.cases))
	}
	if len(h.audit.entries) != 1 {
		t.Fatalf("log entries = %d, want 1 (failures are logged too)", len(h.audit.entries))
	}
	if h.audit.entries[0].Success || h.audit.entries[0].ErrorMessage == "" {
		t.Errorf("entry = %+v, want failure recorded with error message", h.audit.entries[0])
	}
	if len(h.notify.dms) != 0 {
		t.Errorf("DMs = %d, want 0 for failed punishment", len(h.notify.dms))
	}
	if len(h.notify.posts) != 1 {
		t.Errorf("mod channel posts = %d, want 1 (staff see failures)", len(h.notify.posts))
	}
}

func TestCheckAndExecuteCaseWriteFailureDoesNotFlipSuccess(t *testing.T) {
	h := newHarness(models.EscalationRule{
		ID: "r3", GuildID: "G1", WarningThreshold: 3,
		PunishmentType: models.PunishmentTypeKick,
	})
	h.warnings.addActive("G1", "U1", 3)
	h.audit.caseErr = errors.New("cases collection down")

	result := h.orch.CheckAndExecute(testGuild(), testMember("U1"), "warning issued")

	if !result.Triggered || !result.PunishmentResult.Success {
		t.Fatalf("result = %+v, want punishment success despite case failure", result)
	}
	if result.PunishmentResult.CaseNumber != 0 {
		t.Errorf("CaseNumber = %d, want 0 when case creation failed", result.PunishmentResult.CaseNumber)
	}
	if len(h.audit.entries) != 1 {
		t.Errorf("log entries = %d, want 1", len(h.audit.entries))
	}
}

func TestCheckAndExecuteNotificationErrorsSwallowed(t *testing.T) {
	h := newHarness(models.EscalationRule{
		ID: "r3", GuildID: "G1", WarningThreshold: 3,
		PunishmentType: models.PunishmentTypeKick,
	})
	h.warnings.addActive("G1", "U1", 3)
	h.notify.dmErr = errors.New("DMs closed")
	h.notify.postErr = errors.New("channel deleted")

	result := h.orch.CheckAndExecute(testGuild(), testMember("U1"), "warning issued")

	if !result.Triggered || !result.PunishmentResult.Success {
		t.Errorf("result = %+v, want success despite notification failures", result)
	}
}

func TestCheckAndExecuteCountErrorResolvesUntriggered(t *testing.T) {
	h := newHarness(models.EscalationRule{ID: "r3", GuildID: "G1", WarningThreshold: 3})
	h.warnings.countErr = errors.New("db down")

	result := h.orch.CheckAndExecute(testGuild(), testMember("U1"), "warning issued")

	if result.Triggered {
		t.Error("Triggered = true, want false on internal failure")
	}
}

func TestCheckAndExecuteNoneTypeCreatesNoCase(t *testing.T) {
	h := newHarness(models.EscalationRule{
		ID: "r2", GuildID: "G1", WarningThreshold: 2,
		PunishmentType: models.PunishmentTypeNone,
	})
	h.warnings.addActive("G1", "U1", 2)

	result := h.orch.CheckAndExecute(testGuild(), testMember("U1"), "warning issued")

	if !result.Triggered || !result.PunishmentResult.Success {
		t.Fatalf("result = %+v, want triggered success", result)
	}
	if len(h.audit.cases) != 0 {
		t.Errorf("cases = %d, want 0 for none punishment", len(h.audit.cases))
	}
	if len(h.audit.entries) != 1 {
		t.Errorf("log entries = %d, want 1", len(h.audit.entries))
	}
	if len(h.notify.dms) != 0 {
		t.Errorf("DMs = %d, want 0 for none punishment", len(h.notify.dms))
	}
}

func TestCaseNumbersStrictlyIncrease(t *testing.T) {
	h := newHarness(
		models.EscalationRule{ID: "r1", GuildID: "G1", WarningThreshold: 1, PunishmentType: models.PunishmentTypeKick},
		models.EscalationRule{ID: "r2", GuildID: "G1", WarningThreshold: 2, PunishmentType: models.PunishmentTypeKick},
		models.EscalationRule{ID: "r3", GuildID: "G1", WarningThreshold: 3, PunishmentType: models.PunishmentTypeKick},
	)

	for i, user := range []string{"U1", "U2", "U3"} {
		h.warnings.addActive("G1", user, i+1)
		result := h.orch.CheckAndExecute(testGuild(), testMember(user), "warning issued")
		if !result.Triggered {
			t.Fatalf("user %s: Triggered = false, want true", user)
		}
		if result.PunishmentResult.CaseNumber != i+1 {
			t.Errorf("user %s: CaseNumber = %d, want %d", user, result.PunishmentResult.CaseNumber, i+1)
		}
	}
}

func TestManualTriggerBypassesGuard(t *testing.T) {
	h := newHarness(models.EscalationRule{
		ID: "r3", GuildID: "G1", WarningThreshold: 3,
		PunishmentType: models.PunishmentTypeKick,
	})
	h.warnings.addActive("G1", "U1", 3)

	// Automatic trigger first, then an immediate manual override.
	auto := h.orch.CheckAndExecute(testGuild(), testMember("U1"), "warning issued")
	if !auto.Triggered {
		t.Fatal("automatic trigger failed")
	}

	pr, err := h.orch.ManualTrigger(testGuild(), testMember("U1"), "r3", "admin override", HumanModerator{UserID: "M1"})
	if err != nil {
		t.Fatalf("ManualTrigger() error = %v", err)
	}
	if !pr.Success {
		t.Errorf("manual result = %+v, want success despite recent duplicate", pr)
	}
	if len(h.cap.kicks) != 2 {
		t.Errorf("kick calls = %d, want 2", len(h.cap.kicks))
	}
	if len(h.audit.entries) != 2 {
		t.Fatalf("log entries = %d, want 2", len(h.audit.entries))
	}
	if h.audit.entries[1].ModeratorID != "M1" {
		t.Errorf("manual entry ModeratorID = %q, want M1", h.audit.entries[1].ModeratorID)
	}
}

func TestManualTriggerUnknownRule(t *testing.T) {
	h := newHarness()

	if _, err := h.orch.ManualTrigger(testGuild(), testMember("U1"), "nope", "reason", HumanModerator{UserID: "M1"}); err == nil {
		t.Error("ManualTrigger() error = nil, want error for unknown rule")
	}
}

func TestPreviewIsSideEffectFree(t *testing.T) {
	h := newHarness(models.EscalationRule{
		ID: "r3", GuildID: "G1", WarningThreshold: 3,
		PunishmentType: models.PunishmentTypeTimeout,
	})
	h.warnings.addActive("G1", "U1", 2)

	preview, err := h.orch.Preview("G1", "U1", nil)
	if err != nil {
		t.Fatalf("Preview() error = %v", err)
	}
	if preview.WarningCount != 2 || preview.NextWarningCount != 3 {
		t.Errorf("preview counts = %d/%d, want 2/3", preview.WarningCount, preview.NextWarningCount)
	}
	if preview.Rule == nil || preview.Rule.ID != "r3" {
		t.Errorf("preview.Rule = %v, want r3", preview.Rule)
	}

	if len(h.audit.cases) != 0 || len(h.audit.entries) != 0 {
		t.Error("Preview() persisted audit records, want none")
	}
	if h.cap.mutationCalls() != 0 {
		t.Error("Preview() performed platform calls, want none")
	}
	if len(h.notify.dms)+len(h.notify.posts) != 0 {
		t.Error("Preview() sent notifications, want none")
	}
}

func TestPreviewWithExplicitCount(t *testing.T) {
	h := newHarness(models.EscalationRule{ID: "r5", GuildID: "G1", WarningThreshold: 5})

	count := 4
	preview, err := h.orch.Preview("G1", "U1", &count)
	if err != nil {
		t.Fatalf("Preview() error = %v", err)
	}
	if preview.Rule == nil || preview.Rule.ID != "r5" {
		t.Errorf("preview.Rule = %v, want r5 at count 4+1", preview.Rule)
	}
}

func TestResetUserWarnings(t *testing.T) {
	h := newHarness()
	h.warnings.addActive("G1", "U1", 4)

	removed, err := h.orch.ResetUserWarnings("G1", "U1", HumanModerator{UserID: "M1"}, "clean slate")
	if err != nil {
		t.Fatalf("ResetUserWarnings() error = %v", err)
	}
	if removed != 4 {
		t.Errorf("removed = %d, want 4", removed)
	}

	count, _ := h.warnings.CountActive("G1", "U1")
	if count != 0 {
		t.Errorf("active warnings after reset = %d, want 0", count)
	}
	if h.warnings.removeCalls != 4 {
		t.Errorf("remove calls = %d, want one per warning", h.warnings.removeCalls)
	}
}

func TestResetUserWarningsEmpty(t *testing.T) {
	h := newHarness()

	removed, err := h.orch.ResetUserWarnings("G1", "U1", AutomatedSystem{}, "reason")
	if err != nil {
		t.Fatalf("ResetUserWarnings() error = %v", err)
	}
	if removed != 0 {
		t.Errorf("removed = %d, want 0", removed)
	}
}
