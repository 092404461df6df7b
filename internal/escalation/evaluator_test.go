package escalation

import (
	"errors"
	"testing"

	"github.com/WardenStudios/WardenBotGo/pkg/models"
)

func TestEvaluateExactMatch(t *testing.T) {
	repo := newFakeRuleRepo(
		models.EscalationRule{ID: "r3", GuildID: "G1", WarningThreshold: 3, PunishmentType: models.PunishmentTypeTimeout},
		models.EscalationRule{ID: "r5", GuildID: "G1", WarningThreshold: 5, PunishmentType: models.PunishmentTypeBan},
	)
	e := NewEvaluator(repo)

	rule, err := e.Evaluate("G1", 3)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if rule == nil || rule.ID != "r3" {
		t.Errorf("Evaluate(3) = %v, want rule r3", rule)
	}

	rule, err = e.Evaluate("G1", 5)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if rule == nil || rule.ID != "r5" {
		t.Errorf("Evaluate(5) = %v, want rule r5", rule)
	}
}

func TestEvaluateNoMatchIsNotAnError(t *testing.T) {
	repo := newFakeRuleRepo(
		models.EscalationRule{ID: "r3", GuildID: "G1", WarningThreshold: 3},
		models.EscalationRule{ID: "r5", GuildID: "G1", WarningThreshold: 5},
	)
	e := NewEvaluator(repo)

	// 4 skips both thresholds: exact match only, no "highest below".
	for _, count := range []int{0, 1, 2, 4, 6, 100} {
		rule, err := e.Evaluate("G1", count)
		if err != nil {
			t.Fatalf("Evaluate(%d) error = %v", count, err)
		}
		if rule != nil {
			t.Errorf("Evaluate(%d) = %v, want nil", count, rule)
		}
	}
}

func TestEvaluateUnconfiguredGuild(t *testing.T) {
	e := NewEvaluator(newFakeRuleRepo())

	rule, err := e.Evaluate("G-unknown", 3)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if rule != nil {
		t.Errorf("Evaluate() = %v, want nil for unconfigured guild", rule)
	}
}

func TestEvaluateDuplicateThresholdTieBreak(t *testing.T) {
	// Should not happen under correct configuration; the first rule in
	// repository order wins.
	repo := newFakeRuleRepo(
		models.EscalationRule{ID: "older", GuildID: "G1", WarningThreshold: 3},
		models.EscalationRule{ID: "newer", GuildID: "G1", WarningThreshold: 3},
	)
	e := NewEvaluator(repo)

	rule, err := e.Evaluate("G1", 3)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if rule == nil || rule.ID != "older" {
		t.Errorf("Evaluate() = %v, want first rule in repository order", rule)
	}
}

func TestEvaluateRepositoryError(t *testing.T) {
	repo := newFakeRuleRepo()
	repo.err = errors.New("db down")
	e := NewEvaluator(repo)

	if _, err := e.Evaluate("G1", 3); err == nil {
		t.Error("Evaluate() error = nil, want repository error")
	}
}
