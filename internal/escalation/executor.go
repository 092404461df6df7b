package escalation

import (
	"fmt"
	"time"

	"github.com/WardenStudios/WardenBotGo/pkg/models"
	"github.com/bwmarrin/discordgo"
)

// PunishmentResult reports the outcome of a single punishment
// execution. Success reflects only the platform-level action; audit
// and notification failures never alter it.
type PunishmentResult struct {
	Success    bool   `json:"success"`
	Error      string `json:"error,omitempty"`
	Action     string `json:"action"`
	CaseNumber int    `json:"caseNumber,omitempty"`
}

// Executor carries out the concrete punishment for a rule through the
// moderation capability. It never returns an error: platform failures
// are captured in the result.
type Executor struct {
	mod ModerationCapability
	// now is swappable for tests.
	now func() time.Time
}

// NewExecutor creates an Executor over a moderation capability.
func NewExecutor(mod ModerationCapability) *Executor {
	return &Executor{mod: mod, now: time.Now}
}

// Execute dispatches on the rule's punishment variant and performs the
// platform call. Role punishments are idempotent: when the member is
// already in the target state, no platform mutation happens.
func (x *Executor) Execute(guild *discordgo.Guild, member *discordgo.Member, rule *models.EscalationRule, warningCount int) PunishmentResult {
	punishment, err := PunishmentFromRule(rule)
	if err != nil {
		return PunishmentResult{Success: false, Error: err.Error(), Action: "configuration error"}
	}

	switch p := punishment.(type) {
	case NoAction:
		return PunishmentResult{Success: true, Action: "warning only"}

	case Timeout:
		action := fmt.Sprintf("%d minute timeout", int(p.Duration.Minutes()))
		until := x.now().Add(p.Duration)
		if err := x.mod.Timeout(guild.ID, member.User.ID, until, rule.PunishmentReason); err != nil {
			return PunishmentResult{Success: false, Error: err.Error(), Action: action}
		}
		return PunishmentResult{Success: true, Action: action}

	case Kick:
		action := "kicked from server"
		if err := x.mod.Kick(guild.ID, member.User.ID, rule.PunishmentReason); err != nil {
			return PunishmentResult{Success: false, Error: err.Error(), Action: action}
		}
		return PunishmentResult{Success: true, Action: action}

	case Ban:
		action := fmt.Sprintf("banned (%d days of messages deleted)", p.DeleteMessageDays)
		if err := x.mod.Ban(guild.ID, member.User.ID, rule.PunishmentReason, p.DeleteMessageDays); err != nil {
			return PunishmentResult{Success: false, Error: err.Error(), Action: action}
		}
		return PunishmentResult{Success: true, Action: action}

	case RoleAdd:
		if memberHasRole(member, p.RoleID) {
			return PunishmentResult{Success: true, Action: "no action needed"}
		}
		role, err := x.mod.FetchRole(guild.ID, p.RoleID)
		if err != nil {
			return PunishmentResult{Success: false, Error: err.Error(), Action: "role add"}
		}
		action := fmt.Sprintf("role %s added", role.Name)
		if err := x.mod.AddRole(guild.ID, member.User.ID, p.RoleID); err != nil {
			return PunishmentResult{Success: false, Error: err.Error(), Action: action}
		}
		return PunishmentResult{Success: true, Action: action}

	case RoleRemove:
		if !memberHasRole(member, p.RoleID) {
			return PunishmentResult{Success: true, Action: "no action needed"}
		}
		role, err := x.mod.FetchRole(guild.ID, p.RoleID)
		if err != nil {
			return PunishmentResult{Success: false, Error: err.Error(), Action: "role remove"}
		}
		action := fmt.Sprintf("role %s removed", role.Name)
		if err := x.mod.RemoveRole(guild.ID, member.User.ID, p.RoleID); err != nil {
			return PunishmentResult{Success: false, Error: err.Error(), Action: action}
		}
		return PunishmentResult{Success: true, Action: action}
	}

	// Punishment is a closed set; reaching here means a variant was
	// added without an executor branch.
	return PunishmentResult{
		Success: false,
		Error:   fmt.Sprintf("no executor branch for punishment %q", punishment.Kind()),
		Action:  "configuration error",
	}
}

func memberHasRole(member *discordgo.Member, roleID string) bool {
	for _, id := range member.Roles {
		if id == roleID {
			return true
		}
	}
	return false
}
