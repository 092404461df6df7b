package discord

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
)

// Moderator performs punishment calls against the Discord API. It is
// the platform side of the escalation engine; the engine decides what
// to do and the Moderator does it.
type Moderator struct {
	session *discordgo.Session
}

// NewModerator creates a Moderator over an active session
func NewModerator(session *discordgo.Session) *Moderator {
	return &Moderator{session: session}
}

// Timeout applies a communication timeout until the given time
func (m *Moderator) Timeout(guildID, userID string, until time.Time, reason string) error {
	return m.session.GuildMemberTimeout(guildID, userID, &until, discordgo.WithAuditLogReason(reason))
}

// Kick removes a member from the guild
func (m *Moderator) Kick(guildID, userID, reason string) error {
	return m.session.GuildMemberDeleteWithReason(guildID, userID, reason)
}

// Ban bans a member and deletes their recent messages
func (m *Moderator) Ban(guildID, userID, reason string, deleteMessageDays int) error {
	return m.session.GuildBanCreateWithReason(guildID, userID, reason, deleteMessageDays)
}

// AddRole grants a role to a member
func (m *Moderator) AddRole(guildID, userID, roleID string) error {
	return m.session.GuildMemberRoleAdd(guildID, userID, roleID)
}

// RemoveRole revokes a role from a member
func (m *Moderator) RemoveRole(guildID, userID, roleID string) error {
	return m.session.GuildMemberRoleRemove(guildID, userID, roleID)
}

// FetchRole resolves a role, from state when cached and from the API
// otherwise. Returns an error when the role no longer exists.
func (m *Moderator) FetchRole(guildID, roleID string) (*discordgo.Role, error) {
	if role, err := m.session.State.Role(guildID, roleID); err == nil {
		return role, nil
	}

	roles, err := m.session.GuildRoles(guildID)
	if err != nil {
		return nil, err
	}
	for _, role := range roles {
		if role.ID == roleID {
			return role, nil
		}
	}
	return nil, fmt.Errorf("role %s not found in guild %s", roleID, guildID)
}
