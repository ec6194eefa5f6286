// Package rules is the reference safety gate: a post-decision legality check
// against hard constraints. It rewrites illegal decisions to idle with a
// block reason; it never fails a decision outright.
package rules

import (
	"context"

	"volition/internal/domain/decision"
)

type Gate struct{}

func (Gate) Validate(_ context.Context, d decision.IntentDecision, ac decision.AgentContext) (decision.IntentDecision, error) {
	if d.IntentType == decision.IntentIdle {
		return d, nil
	}
	if ac.Frozen {
		return blocked(d, "Blocked: account frozen"), nil
	}
	if ac.Jailed && d.IntentType != decision.IntentRest {
		return blocked(d, "Blocked: agent jailed"), nil
	}
	if cost, ok := costOf(d); ok && cost > ac.WalletBalance {
		return blocked(d, "Blocked: insufficient funds"), nil
	}
	return d, nil
}

func blocked(d decision.IntentDecision, reason string) decision.IntentDecision {
	return decision.IntentDecision{
		IntentType:     decision.IntentIdle,
		Reason:         reason,
		BudgetExceeded: d.BudgetExceeded,
	}
}

func costOf(d decision.IntentDecision) (float64, bool) {
	switch v := d.Params[decision.ParamCost].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	default:
		return 0, false
	}
}
