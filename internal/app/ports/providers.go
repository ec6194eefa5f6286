package ports

import (
	"context"

	"volition/internal/domain/decision"
)

// ContextProvider assembles the immutable per-agent, per-tick world view.
// Returns ErrNotFound when the agent does not exist or its state is missing.
type ContextProvider interface {
	LoadContext(ctx context.Context, agentID string, tick int64) (decision.AgentContext, error)
}

// UrgencyEvaluator converts raw need values into ranked urgencies.
type UrgencyEvaluator interface {
	Evaluate(ctx context.Context, ac decision.AgentContext) (decision.Urgencies, error)
}

// ModifierProvider supplies the persona bias vector for one agent.
type ModifierProvider interface {
	GetModifiers(ctx context.Context, agentID string) (decision.PersonaModifiers, error)
}

// GoalProvider lists the intent types backed by active agent goals. Optional;
// when present its output is merged into PersonaModifiers.ActiveGoalIntents.
type GoalProvider interface {
	GetActiveGoalIntents(ctx context.Context, agentID string) ([]string, error)
}

// CandidateGenerator is one pluggable behavioral domain. Generate must be a
// pure function of its inputs; a failing generator only loses its own
// candidates, never the whole decision.
type CandidateGenerator interface {
	Domain() string
	Generate(ctx context.Context, ac decision.AgentContext, urg decision.Urgencies) ([]decision.CandidateIntent, error)
}

// SafetyGate is the final legality check. It may rewrite the decision (for
// example to an idle with a block reason) but never fails it outright.
type SafetyGate interface {
	Validate(ctx context.Context, d decision.IntentDecision, ac decision.AgentContext) (decision.IntentDecision, error)
}

// FeedbackStore tracks recent per-agent decision outcomes so repeatedly
// blocked intents lose score. Short-term by design; the permanent record
// lives in the decision log.
type FeedbackStore interface {
	Append(agentID, intentType string, tick int64, result string)
	CountRecentFailures(agentID, intentType string, currentTick, window int64) int
}

const (
	FeedbackPending   = "pending"
	FeedbackBlocked   = "blocked"
	FeedbackDiscarded = "discarded"
)
