package escalation

import (
	"github.com/WardenStudios/WardenBotGo/pkg/models"
)

// Evaluator resolves a warning count to the configured rule, if any.
type Evaluator struct {
	rules RuleRepository
}

// NewEvaluator creates an Evaluator backed by a rule repository.
func NewEvaluator(rules RuleRepository) *Evaluator {
	return &Evaluator{rules: rules}
}

// Evaluate returns the rule whose threshold exactly equals
// warningCount, or nil when no rule matches. A missing rule is not an
// error. Counts that skip a threshold (bulk imports) do not trigger the
// skipped rule; this mirrors the configured exact-match semantics.
//
// The repository returns rules ordered by threshold then creation
// time, so if two rules share a threshold the older one wins.
func (e *Evaluator) Evaluate(guildID string, warningCount int) (*models.EscalationRule, error) {
	rules, err := e.rules.GetRules(guildID)
	if err != nil {
		return nil, err
	}

	for i := range rules {
		if rules[i].WarningThreshold == warningCount {
			return &rules[i], nil
		}
	}
	return nil, nil
}
