package database

import (
	"testing"
	"time"

	"github.com/WardenStudios/WardenBotGo/pkg/models"
)

func newTestCache() *RuleCache {
	return &RuleCache{
		rules:       make(map[string][]models.EscalationRule),
		stopRefresh: make(chan struct{}),
	}
}

func TestSortRulesOrdersByThresholdThenCreation(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	rules := []models.EscalationRule{
		{ID: "c", WarningThreshold: 5, CreatedAt: base},
		{ID: "b", WarningThreshold: 3, CreatedAt: base.Add(time.Hour)},
		{ID: "a", WarningThreshold: 3, CreatedAt: base},
	}

	sortRules(rules)

	want := []string{"a", "b", "c"}
	for i, id := range want {
		if rules[i].ID != id {
			t.Errorf("rules[%d].ID = %q, want %q", i, rules[i].ID, id)
		}
	}
}

func TestValidateRule(t *testing.T) {
	tests := []struct {
		name    string
		rule    models.EscalationRule
		wantErr bool
	}{
		{
			name:    "valid timeout rule",
			rule:    models.EscalationRule{WarningThreshold: 3, PunishmentType: models.PunishmentTypeTimeout},
			wantErr: false,
		},
		{
			name:    "valid none rule",
			rule:    models.EscalationRule{WarningThreshold: 1, PunishmentType: models.PunishmentTypeNone},
			wantErr: false,
		},
		{
			name:    "threshold below one",
			rule:    models.EscalationRule{WarningThreshold: 0, PunishmentType: models.PunishmentTypeKick},
			wantErr: true,
		},
		{
			name:    "role punishment without role id",
			rule:    models.EscalationRule{WarningThreshold: 2, PunishmentType: models.PunishmentTypeRoleAdd},
			wantErr: true,
		},
		{
			name:    "role punishment with role id",
			rule:    models.EscalationRule{WarningThreshold: 2, PunishmentType: models.PunishmentTypeRoleAdd, RoleID: "role-1"},
			wantErr: false,
		},
		{
			name:    "unknown punishment type",
			rule:    models.EscalationRule{WarningThreshold: 2, PunishmentType: "banish"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateRule(&tt.rule)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateRule() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRuleCacheUpsertAndRemove(t *testing.T) {
	cache := newTestCache()

	cache.upsert(models.EscalationRule{ID: "r1", GuildID: "g1", WarningThreshold: 3})
	cache.upsert(models.EscalationRule{ID: "r2", GuildID: "g1", WarningThreshold: 1})

	rules := cache.GetRules("g1")
	if len(rules) != 2 {
		t.Fatalf("GetRules returned %d rules, want 2", len(rules))
	}
	if rules[0].ID != "r2" {
		t.Errorf("rules[0].ID = %q, want %q (lowest threshold first)", rules[0].ID, "r2")
	}

	// Upsert with an existing ID replaces, never duplicates
	cache.upsert(models.EscalationRule{ID: "r1", GuildID: "g1", WarningThreshold: 5})
	if got := cache.Size(); got != 2 {
		t.Errorf("Size() after replace = %d, want 2", got)
	}
	if rule := cache.GetRule("g1", "r1"); rule == nil || rule.WarningThreshold != 5 {
		t.Errorf("GetRule after replace = %+v, want threshold 5", rule)
	}

	cache.remove("g1", "r1")
	if rule := cache.GetRule("g1", "r1"); rule != nil {
		t.Errorf("GetRule after remove = %+v, want nil", rule)
	}
	if got := cache.Size(); got != 1 {
		t.Errorf("Size() after remove = %d, want 1", got)
	}
}

func TestRuleCacheGetRuleMissingGuild(t *testing.T) {
	cache := newTestCache()

	if rule := cache.GetRule("unknown", "r1"); rule != nil {
		t.Errorf("GetRule for unknown guild = %+v, want nil", rule)
	}
	if rules := cache.GetRules("unknown"); len(rules) != 0 {
		t.Errorf("GetRules for unknown guild returned %d rules, want 0", len(rules))
	}
}

func TestRuleCacheGetRulesReturnsCopy(t *testing.T) {
	cache := newTestCache()
	cache.upsert(models.EscalationRule{ID: "r1", GuildID: "g1", WarningThreshold: 3})

	rules := cache.GetRules("g1")
	rules[0].WarningThreshold = 99

	if rule := cache.GetRule("g1", "r1"); rule.WarningThreshold != 3 {
		t.Errorf("cached rule threshold = %d, want 3 (mutating the returned slice must not affect the cache)", rule.WarningThreshold)
	}
}
