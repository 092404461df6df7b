package escalation

import (
	"time"

	"github.com/WardenStudios/WardenBotGo/pkg/models"
	"github.com/bwmarrin/discordgo"
)

// WarningStore provides access to the warnings recorded against users.
type WarningStore interface {
	// CountActive returns the number of active warnings for a user.
	CountActive(guildID, userID string) (int, error)
	// GetActive returns the active warnings for a user.
	GetActive(guildID, userID string) ([]models.Warning, error)
	// RemoveWarning deactivates a single warning. It returns false when
	// the warning does not exist or is already inactive.
	RemoveWarning(guildID, userID, warningID, moderatorID, reason string) (bool, error)
}

// RuleRepository provides the configured escalation rules per guild.
// GetRules returns rules ordered by threshold, then creation time, so
// evaluation is deterministic even under misconfigured duplicate
// thresholds.
type RuleRepository interface {
	GetRules(guildID string) ([]models.EscalationRule, error)
	GetRule(guildID, ruleID string) (*models.EscalationRule, error)
}

// AuditLogger persists moderation cases and escalation log entries.
type AuditLogger interface {
	// CreateCase assigns the next per-guild case number and persists the
	// case. The returned case carries the assigned number.
	CreateCase(c models.ModerationCase) (*models.ModerationCase, error)
	// LogEscalation appends one escalation log entry.
	LogEscalation(e models.EscalationLogEntry) error
	// GetHistory returns the most recent escalation log entries for a
	// user, newest first.
	GetHistory(guildID, userID string, limit int) ([]models.EscalationLogEntry, error)
}

// ModerationCapability performs the concrete platform-level punishment
// calls. Implemented over a discordgo session in pkg/discord.
type ModerationCapability interface {
	Timeout(guildID, userID string, until time.Time, reason string) error
	Kick(guildID, userID, reason string) error
	Ban(guildID, userID, reason string, deleteMessageDays int) error
	AddRole(guildID, userID, roleID string) error
	RemoveRole(guildID, userID, roleID string) error
	FetchRole(guildID, roleID string) (*discordgo.Role, error)
}

// Notification is the renderer-agnostic payload handed to the
// dispatcher; the Discord implementation turns it into an embed.
type Notification struct {
	Title       string
	Description string
	Color       int
}

// NotificationDispatcher delivers best-effort notifications. Both
// methods may fail; callers swallow and log the error.
type NotificationDispatcher interface {
	DirectMessage(userID string, n Notification) error
	PostToModerationChannel(guildID string, n Notification) error
}

// EventSink receives escalation events after the pipeline finishes.
// Implementations (websocket feed, MQTT telemetry) must not block and
// must never fail the pipeline.
type EventSink interface {
	PublishEscalation(event models.EscalationEvent)
}
