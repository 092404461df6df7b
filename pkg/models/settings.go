package models

import "time"

// GuildSettings holds the per-guild moderation configuration managed
// from the dashboard.
type GuildSettings struct {
	GuildID         string    `bson:"guildId" json:"guildId"`
	ModLogChannelID string    `bson:"modLogChannelId,omitempty" json:"modLogChannelId,omitempty"`
	UpdatedBy       string    `bson:"updatedBy,omitempty" json:"updatedBy,omitempty"`
	UpdatedAt       time.Time `bson:"updatedAt" json:"updatedAt"`
}
