// Package escalation implements the warning escalation engine: rule
// evaluation, duplicate suppression, punishment execution and the
// orchestration pipeline that ties them to audit and notifications.
package escalation

// SystemActorID is the moderator marker persisted on records created
// by the automatic escalation path.
const SystemActorID = "AutoMod"

// Actor identifies who initiated a moderation action. It is a closed
// set: either a human moderator or the automated escalation system.
type Actor interface {
	ID() string
	DisplayName() string
	isActor()
}

// HumanModerator is a staff member acting through a command or the
// dashboard.
type HumanModerator struct {
	UserID string
}

func (h HumanModerator) ID() string          { return h.UserID }
func (h HumanModerator) DisplayName() string { return "<@" + h.UserID + ">" }
func (HumanModerator) isActor()              {}

// AutomatedSystem is the escalation engine acting on its own.
type AutomatedSystem struct{}

func (AutomatedSystem) ID() string          { return SystemActorID }
func (AutomatedSystem) DisplayName() string { return "Warden AutoMod" }
func (AutomatedSystem) isActor()            {}
