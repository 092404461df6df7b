package escalation

import (
	"fmt"
	"time"

	"github.com/WardenStudios/WardenBotGo/pkg/logger"
)

// DeduplicationWindow is the trailing span during which an identical
// (rule, warning count) combination is treated as already handled.
const DeduplicationWindow = time.Hour

// historyLookupLimit bounds how many log entries the guard inspects;
// anything older than the window can never match anyway.
const historyLookupLimit = 50

// Guard suppresses repeat executions of the same rule for the same
// warning count. It is a soft guard backed by the escalation log, not
// a lock: two evaluations racing before either logs can both pass.
type Guard struct {
	audit AuditLogger
	// now is swappable for tests.
	now func() time.Time
}

// NewGuard creates a Guard backed by the audit log.
func NewGuard(audit AuditLogger) *Guard {
	return &Guard{audit: audit, now: time.Now}
}

// IsDuplicate reports whether an entry for the same rule and warning
// count was logged within the deduplication window. The guard fails
// open: if the history lookup errors, moderation is enforced rather
// than skipped, and the lookup failure is logged.
func (g *Guard) IsDuplicate(guildID, userID, ruleID string, warningCount int) bool {
	history, err := g.audit.GetHistory(guildID, userID, historyLookupLimit)
	if err != nil {
		logger.Warn(fmt.Sprintf("Dedup history lookup failed for %s/%s, treating as not duplicate: %v",
			guildID, userID, err), "Escalation")
		return false
	}

	cutoff := g.now().Add(-DeduplicationWindow)
	for _, entry := range history {
		if entry.RuleID == ruleID && entry.WarningCount == warningCount && entry.CreatedAt.After(cutoff) {
			return true
		}
	}
	return false
}
