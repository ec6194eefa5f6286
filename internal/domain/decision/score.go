package decision

import (
	"encoding/json"
	"math"
	"sort"
	"strings"
)

// ScoreInputs carries the per-candidate adjustments computed by the engine
// before the arithmetic in Score runs.
type ScoreInputs struct {
	Modifiers   PersonaModifiers
	FailPenalty float64 // non-positive, already scaled by FailPenaltyPerFailure
	Wellbeing   float64 // 1 or WellbeingMultiplier
	Jitter      float64 // in [-maxJitter, +maxJitter], 0 under survival stress
}

// RawScore combines base desirability with the persona bias vector and the
// recent-failure penalty. Clamped at zero so a heavily penalized candidate
// drops out of the weighted draw instead of going negative.
func RawScore(c CandidateIntent, in ScoreInputs) float64 {
	m := in.Modifiers
	score := c.BasePriority + c.PersonalityBoost
	score += m.DomainBias[c.Domain]
	score += m.IntentBoosts[c.IntentType]
	if containsString(m.ActiveGoalIntents, c.IntentType) {
		score += GoalIntentBoost
	}
	if target := TargetActor(c); target != "" {
		if containsString(m.AvoidActors, target) {
			score -= AvoidActorPenalty
		}
		if containsString(m.PreferActors, target) {
			score += PreferActorBoost
		}
	}
	score += in.FailPenalty
	return math.Max(0, score)
}

// Score runs the full scoring arithmetic for one candidate.
func Score(c CandidateIntent, in ScoreInputs) ScoredCandidate {
	raw := RawScore(c, in)
	adjusted := math.Max(0, raw*in.Wellbeing*(1+in.Jitter))
	return ScoredCandidate{
		CandidateIntent: c,
		RawScore:        raw,
		// Exponent sharpens the gap between strong and weak candidates so the
		// weighted draw is not near-uniform.
		FinalScore: math.Pow(adjusted, ScoreExponent),
	}
}

// MaxJitter scales the perturbation band by risk tolerance and creativity.
func MaxJitter(p Personality) float64 {
	return BaseJitter + PersonalityJitter*((p.RiskTolerance+p.Creativity)/200)
}

// WellbeingFactor returns the compounding low-mood multiplier for social,
// leisure and gaming candidates when social, fun and purpose are all low.
func WellbeingFactor(ac AgentContext, domain string) float64 {
	switch domain {
	case DomainSocial, DomainLeisure, DomainGaming:
	default:
		return 1
	}
	if ac.Need(NeedSocial) < WellbeingNeedThreshold &&
		ac.Need(NeedFun) < WellbeingNeedThreshold &&
		ac.Need(NeedPurpose) < WellbeingNeedThreshold {
		return WellbeingMultiplier
	}
	return 1
}

// TargetActor extracts the candidate's target agent, if any.
func TargetActor(c CandidateIntent) string {
	v, _ := c.Params[ParamTargetAgent].(string)
	return v
}

// CompositeKey identifies a candidate for de-duplication within one decision
// round: intent type, domain and canonically serialized params.
func CompositeKey(c CandidateIntent) string {
	var b strings.Builder
	b.WriteString(c.IntentType)
	b.WriteByte('|')
	b.WriteString(c.Domain)
	b.WriteByte('|')
	if len(c.Params) > 0 {
		keys := make([]string, 0, len(c.Params))
		for k := range c.Params {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			v, _ := json.Marshal(c.Params[k])
			b.WriteString(k)
			b.WriteByte('=')
			b.Write(v)
			b.WriteByte(';')
		}
	}
	return b.String()
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
