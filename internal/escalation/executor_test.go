package escalation

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/WardenStudios/WardenBotGo/pkg/models"
	"github.com/bwmarrin/discordgo"
)

func timeoutRule(minutes int) *models.EscalationRule {
	return &models.EscalationRule{
		ID: "r1", GuildID: "G1", WarningThreshold: 3,
		PunishmentType:            models.PunishmentTypeTimeout,
		PunishmentDurationMinutes: minutes,
		PunishmentReason:          "repeated warnings",
	}
}

func TestExecuteNoActionSkipsPlatform(t *testing.T) {
	cap := newFakeCapability()
	x := NewExecutor(cap)

	rule := &models.EscalationRule{ID: "r1", PunishmentType: models.PunishmentTypeNone}
	result := x.Execute(testGuild(), testMember("U1"), rule, 2)

	if !result.Success {
		t.Errorf("Success = false, want true")
	}
	if result.Action != "warning only" {
		t.Errorf("Action = %q, want %q", result.Action, "warning only")
	}
	if cap.mutationCalls() != 0 {
		t.Errorf("platform calls = %d, want 0", cap.mutationCalls())
	}
}

func TestExecuteTimeout(t *testing.T) {
	cap := newFakeCapability()
	x := NewExecutor(cap)
	base := time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)
	x.now = func() time.Time { return base }

	result := x.Execute(testGuild(), testMember("U1"), timeoutRule(90), 3)

	if !result.Success {
		t.Fatalf("Success = false, error = %q", result.Error)
	}
	if result.Action != "90 minute timeout" {
		t.Errorf("Action = %q, want %q", result.Action, "90 minute timeout")
	}
	if len(cap.timeouts) != 1 {
		t.Fatalf("timeout calls = %d, want 1", len(cap.timeouts))
	}
	wantUntil := base.Add(90 * time.Minute)
	if !cap.timeouts[0].until.Equal(wantUntil) {
		t.Errorf("timeout until = %v, want %v", cap.timeouts[0].until, wantUntil)
	}
	if cap.timeouts[0].reason != "repeated warnings" {
		t.Errorf("timeout reason = %q, want %q", cap.timeouts[0].reason, "repeated warnings")
	}
}

func TestExecuteTimeoutDefaultDuration(t *testing.T) {
	cap := newFakeCapability()
	x := NewExecutor(cap)

	result := x.Execute(testGuild(), testMember("U1"), timeoutRule(0), 3)

	if !result.Success {
		t.Fatalf("Success = false, error = %q", result.Error)
	}
	if result.Action != "60 minute timeout" {
		t.Errorf("Action = %q, want default 60 minute timeout", result.Action)
	}
}

func TestExecuteTimeoutPlatformError(t *testing.T) {
	cap := newFakeCapability()
	cap.failWith = errors.New("missing permissions")
	x := NewExecutor(cap)

	result := x.Execute(testGuild(), testMember("U1"), timeoutRule(60), 3)

	if result.Success {
		t.Error("Success = true, want false on platform error")
	}
	if result.Error != "missing permissions" {
		t.Errorf("Error = %q, want %q", result.Error, "missing permissions")
	}
	if result.Action != "60 minute timeout" {
		t.Errorf("Action = %q, want label retained on failure", result.Action)
	}
}

func TestExecuteKick(t *testing.T) {
	cap := newFakeCapability()
	x := NewExecutor(cap)

	rule := &models.EscalationRule{ID: "r1", PunishmentType: models.PunishmentTypeKick, PunishmentReason: "out"}
	result := x.Execute(testGuild(), testMember("U1"), rule, 4)

	if !result.Success {
		t.Fatalf("Success = false, error = %q", result.Error)
	}
	if len(cap.kicks) != 1 || cap.kicks[0] != "U1" {
		t.Errorf("kicks = %v, want [U1]", cap.kicks)
	}
}

func TestExecuteBanClampsDeleteDays(t *testing.T) {
	tests := []struct {
		name     string
		duration int
		wantDays int
	}{
		{"above cap", 10, 7},
		{"at cap", 7, 7},
		{"below cap", 3, 3},
		{"zero", 0, 0},
		{"negative", -5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cap := newFakeCapability()
			x := NewExecutor(cap)
			rule := &models.EscalationRule{
				ID: "r1", PunishmentType: models.PunishmentTypeBan,
				PunishmentDurationMinutes: tt.duration,
			}

			result := x.Execute(testGuild(), testMember("U1"), rule, 5)

			if !result.Success {
				t.Fatalf("Success = false, error = %q", result.Error)
			}
			if len(cap.bans) != 1 {
				t.Fatalf("ban calls = %d, want 1", len(cap.bans))
			}
			if cap.bans[0].days != tt.wantDays {
				t.Errorf("deleteMessageDays = %d, want %d", cap.bans[0].days, tt.wantDays)
			}
		})
	}
}

func TestExecuteRoleAddIdempotent(t *testing.T) {
	cap := newFakeCapability()
	cap.roles["muted"] = &discordgo.Role{ID: "muted", Name: "Muted"}
	x := NewExecutor(cap)

	rule := &models.EscalationRule{ID: "r1", PunishmentType: models.PunishmentTypeRoleAdd, RoleID: "muted"}
	result := x.Execute(testGuild(), testMember("U1", "muted"), rule, 3)

	if !result.Success {
		t.Errorf("Success = false, want true")
	}
	if result.Action != "no action needed" {
		t.Errorf("Action = %q, want %q", result.Action, "no action needed")
	}
	if cap.mutationCalls() != 0 {
		t.Errorf("platform calls = %d, want 0 when member already has the role", cap.mutationCalls())
	}
}

func TestExecuteRoleAdd(t *testing.T) {
	cap := newFakeCapability()
	cap.roles["muted"] = &discordgo.Role{ID: "muted", Name: "Muted"}
	x := NewExecutor(cap)

	rule := &models.EscalationRule{ID: "r1", PunishmentType: models.PunishmentTypeRoleAdd, RoleID: "muted"}
	result := x.Execute(testGuild(), testMember("U1"), rule, 3)

	if !result.Success {
		t.Fatalf("Success = false, error = %q", result.Error)
	}
	if !strings.Contains(result.Action, "Muted") {
		t.Errorf("Action = %q, want role name mentioned", result.Action)
	}
	if len(cap.roleAdds) != 1 || cap.roleAdds[0] != "muted" {
		t.Errorf("roleAdds = %v, want [muted]", cap.roleAdds)
	}
}

func TestExecuteRoleAddMissingRoleFails(t *testing.T) {
	cap := newFakeCapability()
	x := NewExecutor(cap)

	rule := &models.EscalationRule{ID: "r1", PunishmentType: models.PunishmentTypeRoleAdd, RoleID: "deleted-role"}
	result := x.Execute(testGuild(), testMember("U1"), rule, 3)

	if result.Success {
		t.Error("Success = true, want false when the role no longer exists")
	}
	if cap.mutationCalls() != 0 {
		t.Errorf("platform calls = %d, want 0", cap.mutationCalls())
	}
}

func TestExecuteRoleRemoveIdempotent(t *testing.T) {
	cap := newFakeCapability()
	cap.roles["muted"] = &discordgo.Role{ID: "muted", Name: "Muted"}
	x := NewExecutor(cap)

	rule := &models.EscalationRule{ID: "r1", PunishmentType: models.PunishmentTypeRoleRemove, RoleID: "muted"}
	result := x.Execute(testGuild(), testMember("U1"), rule, 3)

	if !result.Success || result.Action != "no action needed" {
		t.Errorf("result = %+v, want idempotent no-op success", result)
	}
	if cap.mutationCalls() != 0 {
		t.Errorf("platform calls = %d, want 0 when member lacks the role", cap.mutationCalls())
	}
}

func TestExecuteRoleRemove(t *testing.T) {
	cap := newFakeCapability()
	cap.roles["muted"] = &discordgo.Role{ID: "muted", Name: "Muted"}
	x := NewExecutor(cap)

	rule := &models.EscalationRule{ID: "r1", PunishmentType: models.PunishmentTypeRoleRemove, RoleID: "muted"}
	result := x.Execute(testGuild(), testMember("U1", "muted"), rule, 3)

	if !result.Success {
		t.Fatalf("Success = false, error = %q", result.Error)
	}
	if len(cap.roleRemoves) != 1 || cap.roleRemoves[0] != "muted" {
		t.Errorf("roleRemoves = %v, want [muted]", cap.roleRemoves)
	}
}

func TestExecuteMalformedRuleRejectedBeforePlatform(t *testing.T) {
	cap := newFakeCapability()
	x := NewExecutor(cap)

	for _, punishmentType := range []string{models.PunishmentTypeRoleAdd, models.PunishmentTypeRoleRemove} {
		rule := &models.EscalationRule{ID: "r1", PunishmentType: punishmentType} // no RoleID
		result := x.Execute(testGuild(), testMember("U1"), rule, 3)

		if result.Success {
			t.Errorf("%s without roleId: Success = true, want false", punishmentType)
		}
		if result.Action != "configuration error" {
			t.Errorf("%s without roleId: Action = %q, want configuration error", punishmentType, result.Action)
		}
	}
	if cap.mutationCalls() != 0 {
		t.Errorf("platform calls = %d, want 0 for malformed rules", cap.mutationCalls())
	}
}

func TestExecuteUnknownPunishmentType(t *testing.T) {
	cap := newFakeCapability()
	x := NewExecutor(cap)

	rule := &models.EscalationRule{ID: "r1", PunishmentType: "banish_to_shadow_realm"}
	result := x.Execute(testGuild(), testMember("U1"), rule, 3)

	if result.Success {
		t.Error("Success = true, want false for unknown punishment type")
	}
	if cap.mutationCalls() != 0 {
		t.Errorf("platform calls = %d, want 0", cap.mutationCalls())
	}
}
