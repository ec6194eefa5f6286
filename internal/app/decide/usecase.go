// Package decide implements the per-agent decision pipeline: candidate
// collection from pluggable domain generators, deterministic multi-factor
// scoring, tiered prioritization with hard survival overrides, and seeded
// weighted-random final selection.
package decide

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"volition/internal/app/ports"
	"volition/internal/domain/decision"
	"volition/internal/domain/seedrand"
)

type UseCase struct {
	Contexts   ports.ContextProvider
	Urgency    ports.UrgencyEvaluator
	Modifiers  ports.ModifierProvider
	Goals      ports.GoalProvider
	Generators []ports.CandidateGenerator
	Feedback   ports.FeedbackStore
	Gate       ports.SafetyGate
	Metrics    ports.DecisionMetrics
	Log        *zap.Logger
}

// round carries the working state of one decision call.
type round struct {
	agentID string
	tick    int64
	seed    string
	rng     *seedrand.Stream

	ac         decision.AgentContext
	urg        decision.Urgencies
	mods       decision.PersonaModifiers
	candidates []decision.CandidateIntent
	scored     []decision.ScoredCandidate
}

// Decide runs the full pipeline for one agent and tick. It never fails: every
// error path degrades to a well-formed idle decision with a readable reason.
func (u UseCase) Decide(ctx context.Context, agentID string, tick int64, seed string) decision.IntentDecision {
	r := &round{agentID: agentID, tick: tick, seed: seed, rng: seedrand.New(seed)}

	ac, err := u.Contexts.LoadContext(ctx, agentID, tick)
	if err != nil {
		return idleDecision(decision.ReasonUnavailable, nil)
	}
	r.ac = ac

	if d, ok := u.ownerOverride(r); ok {
		return d
	}

	u.loadUrgencies(ctx, r)
	u.loadModifiers(ctx, r)
	u.gatherCandidates(ctx, r)

	if d, ok := u.applyBusyFilter(r); ok {
		return u.finish(ctx, r, d)
	}

	u.scoreCandidates(r)

	if d, ok := u.criticalSurvivalOverride(r); ok {
		return u.finish(ctx, r, d)
	}

	return u.finish(ctx, r, u.selectWeighted(r))
}

// finish attaches upstream budget diagnostics and runs the safety gate.
func (u UseCase) finish(ctx context.Context, r *round, d decision.IntentDecision) decision.IntentDecision {
	if len(r.ac.BudgetExceeded) > 0 {
		d.BudgetExceeded = r.ac.BudgetExceeded
		d.Reason += " (skill budget exceeded: " + strings.Join(r.ac.BudgetExceeded, ", ") + ")"
	}
	if u.Gate == nil {
		return d
	}
	validated, err := u.Gate.Validate(ctx, d, r.ac)
	if err != nil {
		u.logger().Warn("safety gate failed, keeping engine decision",
			zap.String("agent_id", r.agentID), zap.Error(err))
		return d
	}
	if validated.IntentType != d.IntentType && u.Feedback != nil {
		u.Feedback.Append(r.agentID, d.IntentType, r.tick, ports.FeedbackBlocked)
	}
	return validated
}

func (u UseCase) logger() *zap.Logger {
	if u.Log == nil {
		return zap.NewNop()
	}
	return u.Log
}

func idleDecision(reason string, budgetExceeded []string) decision.IntentDecision {
	return decision.IntentDecision{
		IntentType:     decision.IntentIdle,
		Reason:         reason,
		BudgetExceeded: budgetExceeded,
	}
}

func copyParams(in map[string]any) map[string]any {
	if in == nil {
		return nil
	}
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
