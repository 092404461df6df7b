// Package models defines the document structures stored in MongoDB.
package models

// Warning is a single disciplinary note recorded against a user.
// A warning is never deleted; removal flips Active and records who
// removed it and why.
type Warning struct {
	ID            string `bson:"id" json:"id"`
	Reason        string `bson:"reason" json:"reason"`
	ModeratorID   string `bson:"moderatorId" json:"moderatorId"`
	CreatedAt     int64  `bson:"createdAt" json:"createdAt"`
	Active        bool   `bson:"active" json:"active"`
	RemovedBy     string `bson:"removedBy,omitempty" json:"removedBy,omitempty"`
	RemovalReason string `bson:"removalReason,omitempty" json:"removalReason,omitempty"`
	RemovedAt     int64  `bson:"removedAt,omitempty" json:"removedAt,omitempty"`
}

// WarningsDocument is the per-(guild, user) document in the "warns"
// collection holding every warning ever issued to that user.
type WarningsDocument struct {
	GuildID  string    `bson:"guildId" json:"guildId"`
	UserID   string    `bson:"userId" json:"userId"`
	Warnings []Warning `bson:"warnings" json:"warnings"`
}

// ActiveWarnings returns the warnings that still count toward
// escalation thresholds.
func (d *WarningsDocument) ActiveWarnings() []Warning {
	if d == nil {
		return nil
	}
	active := make([]Warning, 0, len(d.Warnings))
	for _, w := range d.Warnings {
		if w.Active {
			active = append(active, w)
		}
	}
	return active
}
