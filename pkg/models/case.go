package models

import "time"

// ModerationCase is the immutable audit record created once per
// successful punishment. CaseNumber is monotonic within a guild.
type ModerationCase struct {
	CaseNumber     int       `bson:"caseNumber" json:"caseNumber"`
	GuildID        string    `bson:"guildId" json:"guildId"`
	ActionType     string    `bson:"actionType" json:"actionType"`
	UserID         string    `bson:"userId" json:"userId"`
	ModeratorID    string    `bson:"moderatorId" json:"moderatorId"`
	Reason         string    `bson:"reason" json:"reason"`
	AdditionalInfo string    `bson:"additionalInfo,omitempty" json:"additionalInfo,omitempty"`
	CreatedAt      time.Time `bson:"createdAt" json:"createdAt"`
}

// CaseCounter backs the per-guild monotonic case number sequence in
// the "case_counters" collection.
type CaseCounter struct {
	GuildID string `bson:"_id" json:"guildId"`
	Seq     int    `bson:"seq" json:"seq"`
}
