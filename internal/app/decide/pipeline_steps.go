package decide

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"volition/internal/app/ports"
	"volition/internal/domain/decision"
	"volition/internal/domain/seedrand"
)

// Intents allowed to interrupt a busy (multi-tick) activity. Survival-domain
// candidates are re-admitted separately once survival urgency reaches
// MODERATE.
var busyInterruptIntents = map[string]bool{
	decision.IntentRest:        true,
	decision.IntentConsumeItem: true,
	decision.IntentFreeze:      true,
}

// Intent types exempt from the recent-failure penalty. Penalizing job
// applications starves agents that keep getting rejected into never applying
// again.
var failPenaltyExempt = map[string]bool{
	decision.IntentApplyJob:  true,
	decision.IntentWorkShift: true,
}

// ownerOverride short-circuits the pipeline when the context carries a
// directive from outside the simulation. The directive is implicitly trusted:
// no scoring, no gate.
func (u UseCase) ownerOverride(r *round) (decision.IntentDecision, bool) {
	s := r.ac.OwnerSuggestion
	if s == nil {
		return decision.IntentDecision{}, false
	}
	if u.Metrics != nil {
		u.Metrics.RecordOwnerOverride()
	}
	params := copyParams(s.Params)
	if params == nil {
		params = map[string]any{}
	}
	params[decision.ParamOwnerOverride] = true
	reason := s.Reason
	if reason == "" {
		reason = "Owner directive"
	}
	return decision.IntentDecision{
		IntentType: s.IntentType,
		Params:     params,
		Reason:     reason,
		Confidence: 1,
	}, true
}

func (u UseCase) loadUrgencies(ctx context.Context, r *round) {
	if u.Urgency == nil {
		return
	}
	urg, err := u.Urgency.Evaluate(ctx, r.ac)
	if err != nil {
		u.logger().Warn("urgency evaluation failed, proceeding without urgencies",
			zap.String("agent_id", r.agentID), zap.Error(err))
		return
	}
	r.urg = urg
}

func (u UseCase) loadModifiers(ctx context.Context, r *round) {
	if u.Modifiers != nil {
		mods, err := u.Modifiers.GetModifiers(ctx, r.agentID)
		if err != nil {
			u.logger().Warn("modifier load failed, using neutral persona",
				zap.String("agent_id", r.agentID), zap.Error(err))
		} else {
			r.mods = mods
		}
	}
	if u.Goals != nil {
		goals, err := u.Goals.GetActiveGoalIntents(ctx, r.agentID)
		if err == nil {
			r.mods.ActiveGoalIntents = append(r.mods.ActiveGoalIntents, goals...)
		}
	}
}

// gatherCandidates collects every generator's output, isolating failures:
// a generator that errors or panics loses its own candidates only. The
// pipeline-wide policy filter drops INTENT_FORAGE regardless of origin, and a
// synthetic idle candidate guarantees the pool is never empty.
func (u UseCase) gatherCandidates(ctx context.Context, r *round) {
	for _, gen := range u.Generators {
		cands, err := u.safeGenerate(ctx, gen, r)
		if err != nil {
			u.logger().Warn("candidate generator failed",
				zap.String("agent_id", r.agentID),
				zap.String("domain", gen.Domain()),
				zap.Error(err))
			if u.Metrics != nil {
				u.Metrics.RecordGeneratorFailure(gen.Domain())
			}
			continue
		}
		for _, c := range cands {
			if c.IntentType == decision.IntentForage {
				continue
			}
			r.candidates = append(r.candidates, c)
		}
	}

	r.candidates = append(r.candidates, decision.CandidateIntent{
		IntentType:   decision.IntentIdle,
		BasePriority: decision.IdleBasePriority,
		Reason:       decision.ReasonNoViableOptions,
		Domain:       decision.DomainCore,
	})
}

func (u UseCase) safeGenerate(ctx context.Context, gen ports.CandidateGenerator, r *round) (cands []decision.CandidateIntent, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			cands = nil
			err = fmt.Errorf("generator panic: %v", rec)
		}
	}()
	return gen.Generate(ctx, r.ac, r.urg)
}

// applyBusyFilter narrows the pool while the agent is mid multi-tick
// activity. Survival candidates come back in once survival urgency reaches
// MODERATE; with nothing admissible the agent stays on its current activity.
func (u UseCase) applyBusyFilter(r *round) (decision.IntentDecision, bool) {
	if !r.ac.Busy() {
		return decision.IntentDecision{}, false
	}

	var kept []decision.CandidateIntent
	for _, c := range r.candidates {
		if busyInterruptIntents[c.IntentType] {
			kept = append(kept, c)
		}
	}

	survivalStress := r.urg.SurvivalAtLeast(decision.SurvivalStressLevel)
	if survivalStress {
		for _, c := range r.candidates {
			if c.Domain == decision.DomainSurvival {
				kept = append(kept, c)
			}
		}
		kept = dedupeCandidates(kept)
	}

	// Nothing admissible, with or without stress: the agent stays on its
	// current activity. Falling through here would let the unfiltered pool
	// compete.
	if len(kept) == 0 {
		return idleDecision("Busy: "+r.ac.ActivityState, nil), true
	}

	r.candidates = kept
	return decision.IntentDecision{}, false
}

func dedupeCandidates(in []decision.CandidateIntent) []decision.CandidateIntent {
	seen := make(map[string]bool, len(in))
	out := in[:0]
	for _, c := range in {
		k := decision.CompositeKey(c)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, c)
	}
	return out
}

// scoreCandidates runs the scoring arithmetic for the whole pool. Jitter is
// drawn from a per-candidate stream derived from the decision seed and the
// candidate's composite key, so generator registration order cannot change
// any candidate's score. Survival candidates get zero jitter while survival
// urgency is MODERATE or higher.
func (u UseCase) scoreCandidates(r *round) {
	maxJitter := decision.MaxJitter(r.ac.Personality)
	survivalStress := r.urg.SurvivalAtLeast(decision.SurvivalStressLevel)

	r.scored = make([]decision.ScoredCandidate, 0, len(r.candidates))
	for _, c := range r.candidates {
		in := decision.ScoreInputs{
			Modifiers: r.mods,
			Wellbeing: decision.WellbeingFactor(r.ac, c.Domain),
		}
		if u.Feedback != nil && !failPenaltyExempt[c.IntentType] {
			fails := u.Feedback.CountRecentFailures(r.agentID, c.IntentType, r.tick, decision.FailureWindowTicks)
			in.FailPenalty = -decision.FailPenaltyPerFailure * float64(fails)
		}
		if !(survivalStress && c.Domain == decision.DomainSurvival) {
			jrng := seedrand.New(r.seed + "|" + decision.CompositeKey(c))
			in.Jitter = jrng.Symmetric(maxJitter)
		}

		sc := decision.Score(c, in)
		sc.Tier = decision.Tier(c, r.ac, r.urg)
		r.scored = append(r.scored, sc)
	}
}

// criticalSurvivalOverride is the one place determinism fully suppresses the
// weighted draw: under a CRITICAL survival urgency the best survival
// candidate wins outright, identically on every seed.
func (u UseCase) criticalSurvivalOverride(r *round) (decision.IntentDecision, bool) {
	if !r.urg.CriticalSurvival() {
		return decision.IntentDecision{}, false
	}

	var best *decision.ScoredCandidate
	for i := range r.scored {
		sc := &r.scored[i]
		if sc.Domain != decision.DomainSurvival {
			continue
		}
		if best == nil || sc.FinalScore > best.FinalScore ||
			(sc.FinalScore == best.FinalScore &&
				decision.CompositeKey(sc.CandidateIntent) < decision.CompositeKey(best.CandidateIntent)) {
			best = sc
		}
	}
	if best == nil {
		return decision.IntentDecision{}, false
	}
	return decision.IntentDecision{
		IntentType: best.IntentType,
		Params:     copyParams(best.Params),
		Reason:     best.Reason,
		Confidence: 1,
	}, true
}

// selectWeighted keeps the lowest-numbered non-empty tier, narrows to the top
// candidates by final score, and runs a roulette-wheel draw with the
// per-decision seeded stream.
func (u UseCase) selectWeighted(r *round) decision.IntentDecision {
	minTier := r.scored[0].Tier
	for _, sc := range r.scored[1:] {
		if sc.Tier < minTier {
			minTier = sc.Tier
		}
	}

	pool := make([]decision.ScoredCandidate, 0, len(r.scored))
	for _, sc := range r.scored {
		if sc.Tier == minTier {
			pool = append(pool, sc)
		}
	}
	if len(pool) == 0 {
		pool = r.scored
	}

	sort.Slice(pool, func(i, j int) bool {
		if pool[i].FinalScore != pool[j].FinalScore {
			return pool[i].FinalScore > pool[j].FinalScore
		}
		return decision.CompositeKey(pool[i].CandidateIntent) < decision.CompositeKey(pool[j].CandidateIntent)
	})

	limit := decision.SelectionPoolSize
	if r.urg.SurvivalAtLeast(decision.SurvivalStressLevel) {
		limit = decision.StressSelectionPoolSize
	}
	if len(pool) > limit {
		pool = pool[:limit]
	}

	var total float64
	for _, sc := range pool {
		total += sc.FinalScore
	}
	if total <= 0 {
		return idleDecision(decision.ReasonNoViableOptions, nil)
	}

	draw := r.rng.Float64() * total
	chosen := pool[len(pool)-1]
	for _, sc := range pool {
		draw -= sc.FinalScore
		if draw <= 0 {
			chosen = sc
			break
		}
	}

	return decision.IntentDecision{
		IntentType: chosen.IntentType,
		Params:     copyParams(chosen.Params),
		Reason:     chosen.Reason,
		Confidence: chosen.FinalScore / total,
	}
}
