package escalation

import (
	"errors"
	"testing"
	"time"

	"github.com/WardenStudios/WardenBotGo/pkg/models"
)

func TestIsDuplicateWithinWindow(t *testing.T) {
	audit := newFakeAudit()
	audit.entries = append(audit.entries, models.EscalationLogEntry{
		GuildID: "G1", UserID: "U1", RuleID: "r3", WarningCount: 3,
		CreatedAt: time.Now().Add(-10 * time.Minute),
	})
	g := NewGuard(audit)

	if !g.IsDuplicate("G1", "U1", "r3", 3) {
		t.Error("IsDuplicate() = false, want true for entry 10m old")
	}
}

func TestIsDuplicateOutsideWindow(t *testing.T) {
	audit := newFakeAudit()
	audit.entries = append(audit.entries, models.EscalationLogEntry{
		GuildID: "G1", UserID: "U1", RuleID: "r3", WarningCount: 3,
		CreatedAt: time.Now().Add(-DeduplicationWindow - time.Minute),
	})
	g := NewGuard(audit)

	if g.IsDuplicate("G1", "U1", "r3", 3) {
		t.Error("IsDuplicate() = true, want false for entry older than the window")
	}
}

func TestIsDuplicateRequiresSameRuleAndCount(t *testing.T) {
	audit := newFakeAudit()
	audit.entries = append(audit.entries, models.EscalationLogEntry{
		GuildID: "G1", UserID: "U1", RuleID: "r3", WarningCount: 3,
		CreatedAt: time.Now(),
	})
	g := NewGuard(audit)

	if g.IsDuplicate("G1", "U1", "r5", 3) {
		t.Error("IsDuplicate() = true for different rule, want false")
	}
	if g.IsDuplicate("G1", "U1", "r3", 4) {
		t.Error("IsDuplicate() = true for different count, want false")
	}
	if g.IsDuplicate("G1", "U2", "r3", 3) {
		t.Error("IsDuplicate() = true for different user, want false")
	}
}

func TestIsDuplicateFailsOpen(t *testing.T) {
	audit := newFakeAudit()
	audit.historyErr = errors.New("history unavailable")
	g := NewGuard(audit)

	if g.IsDuplicate("G1", "U1", "r3", 3) {
		t.Error("IsDuplicate() = true on lookup error, want false (fail-open)")
	}
}

func TestIsDuplicateFailureEntriesAlsoSuppress(t *testing.T) {
	// A failed execution attempt is still an attempt; it suppresses an
	// immediate retry at the same count.
	audit := newFakeAudit()
	audit.entries = append(audit.entries, models.EscalationLogEntry{
		GuildID: "G1", UserID: "U1", RuleID: "r3", WarningCount: 3,
		Success: false, CreatedAt: time.Now(),
	})
	g := NewGuard(audit)

	if !g.IsDuplicate("G1", "U1", "r3", 3) {
		t.Error("IsDuplicate() = false, want true for recent failed attempt")
	}
}
