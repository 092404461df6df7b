package escalation

import (
	"fmt"
	"time"

	"github.com/WardenStudios/WardenBotGo/pkg/models"
)

// DefaultTimeoutMinutes is applied when a timeout rule carries no
// duration.
const DefaultTimeoutMinutes = 60

// MaxDeleteMessageDays caps the message-deletion window on bans,
// regardless of the configured duration.
const MaxDeleteMessageDays = 7

// Punishment is the closed set of concrete actions a rule can map to.
// The executor dispatches over these variants; new punishment types
// must be added here and handled explicitly.
type Punishment interface {
	Kind() string
	isPunishment()
}

// NoAction records the escalation without touching the platform.
type NoAction struct{}

// Timeout issues a timed mute.
type Timeout struct {
	Duration time.Duration
}

// Kick removes the member from the guild.
type Kick struct{}

// Ban bans the member and deletes up to DeleteMessageDays of messages.
type Ban struct {
	DeleteMessageDays int
}

// RoleAdd grants a role to the member.
type RoleAdd struct {
	RoleID string
}

// RoleRemove takes a role away from the member.
type RoleRemove struct {
	RoleID string
}

func (NoAction) Kind() string   { return models.PunishmentTypeNone }
func (Timeout) Kind() string    { return models.PunishmentTypeTimeout }
func (Kick) Kind() string       { return models.PunishmentTypeKick }
func (Ban) Kind() string        { return models.PunishmentTypeBan }
func (RoleAdd) Kind() string    { return models.PunishmentTypeRoleAdd }
func (RoleRemove) Kind() string { return models.PunishmentTypeRoleRemove }

func (NoAction) isPunishment()   {}
func (Timeout) isPunishment()    {}
func (Kick) isPunishment()       {}
func (Ban) isPunishment()        {}
func (RoleAdd) isPunishment()    {}
func (RoleRemove) isPunishment() {}

// PunishmentFromRule validates a rule and converts it into its
// punishment variant. Malformed rules are rejected here, before any
// platform call can happen.
func PunishmentFromRule(rule *models.EscalationRule) (Punishment, error) {
	switch rule.PunishmentType {
	case models.PunishmentTypeNone:
		return NoAction{}, nil

	case models.PunishmentTypeTimeout:
		minutes := rule.PunishmentDurationMinutes
		if minutes <= 0 {
			minutes = DefaultTimeoutMinutes
		}
		return Timeout{Duration: time.Duration(minutes) * time.Minute}, nil

	case models.PunishmentTypeKick:
		return Kick{}, nil

	case models.PunishmentTypeBan:
		days := rule.PunishmentDurationMinutes
		if days < 0 {
			days = 0
		}
		if days > MaxDeleteMessageDays {
			days = MaxDeleteMessageDays
		}
		return Ban{DeleteMessageDays: days}, nil

	case models.PunishmentTypeRoleAdd:
		if rule.RoleID == "" {
			return nil, fmt.Errorf("rule %s: role_add punishment requires a roleId", rule.ID)
		}
		return RoleAdd{RoleID: rule.RoleID}, nil

	case models.PunishmentTypeRoleRemove:
		if rule.RoleID == "" {
			return nil, fmt.Errorf("rule %s: role_remove punishment requires a roleId", rule.ID)
		}
		return RoleRemove{RoleID: rule.RoleID}, nil

	default:
		return nil, fmt.Errorf("rule %s: unknown punishment type %q", rule.ID, rule.PunishmentType)
	}
}
