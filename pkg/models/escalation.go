package models

import "time"

// Punishment type identifiers as persisted in rule documents.
const (
	PunishmentTypeNone       = "none"
	PunishmentTypeTimeout    = "timeout"
	PunishmentTypeKick       = "kick"
	PunishmentTypeBan        = "ban"
	PunishmentTypeRoleAdd    = "role_add"
	PunishmentTypeRoleRemove = "role_remove"
)

// EscalationRule maps an exact active-warning count to an automatic
// punishment. Rules are configured per guild through the dashboard.
type EscalationRule struct {
	ID                        string    `bson:"_id" json:"id"`
	GuildID                   string    `bson:"guildId" json:"guildId"`
	WarningThreshold          int       `bson:"warningThreshold" json:"warningThreshold"`
	PunishmentType            string    `bson:"punishmentType" json:"punishmentType"`
	PunishmentDurationMinutes int       `bson:"punishmentDurationMinutes,omitempty" json:"punishmentDurationMinutes,omitempty"`
	PunishmentReason          string    `bson:"punishmentReason" json:"punishmentReason"`
	RoleID                    string    `bson:"roleId,omitempty" json:"roleId,omitempty"`
	CreatedBy                 string    `bson:"createdBy" json:"createdBy"`
	CreatedAt                 time.Time `bson:"createdAt" json:"createdAt"`
}

// EscalationLogEntry is the append-only audit record written once per
// escalation execution attempt, successful or not. It doubles as the
// lookup source for the deduplication guard.
type EscalationLogEntry struct {
	GuildID                   string    `bson:"guildId" json:"guildId"`
	UserID                    string    `bson:"userId" json:"userId"`
	ModeratorID               string    `bson:"moderatorId" json:"moderatorId"`
	RuleID                    string    `bson:"ruleId" json:"ruleId"`
	WarningCount              int       `bson:"warningCount" json:"warningCount"`
	PunishmentType            string    `bson:"punishmentType" json:"punishmentType"`
	PunishmentDurationMinutes int       `bson:"punishmentDurationMinutes,omitempty" json:"punishmentDurationMinutes,omitempty"`
	PunishmentReason          string    `bson:"punishmentReason" json:"punishmentReason"`
	Success                   bool      `bson:"success" json:"success"`
	ErrorMessage              string    `bson:"errorMessage,omitempty" json:"errorMessage,omitempty"`
	CaseNumber                int       `bson:"caseNumber,omitempty" json:"caseNumber,omitempty"`
	CreatedAt                 time.Time `bson:"createdAt" json:"createdAt"`
}

// EscalationEvent is the payload broadcast to the dashboard websocket
// feed and the MQTT telemetry topic after an escalation attempt.
type EscalationEvent struct {
	GuildID        string    `json:"guildId"`
	UserID         string    `json:"userId"`
	RuleID         string    `json:"ruleId"`
	WarningCount   int       `json:"warningCount"`
	PunishmentType string    `json:"punishmentType"`
	Action         string    `json:"action"`
	Success        bool      `json:"success"`
	CaseNumber     int       `json:"caseNumber,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
}
