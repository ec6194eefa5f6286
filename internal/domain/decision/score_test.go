package decision

import (
	"math"
	"testing"
)

func TestRawScoreCombinesModifiers(t *testing.T) {
	c := CandidateIntent{
		IntentType:       IntentSocialChat,
		Params:           map[string]any{ParamTargetAgent: "friend"},
		BasePriority:     40,
		PersonalityBoost: 5,
		Domain:           DomainSocial,
	}
	in := ScoreInputs{Modifiers: PersonaModifiers{
		DomainBias:        map[string]float64{DomainSocial: 8},
		IntentBoosts:      map[string]float64{IntentSocialChat: 2},
		PreferActors:      []string{"friend"},
		ActiveGoalIntents: []string{IntentSocialChat},
	}}

	// 40 + 5 + 8 + 2 + 15 (goal) + 10 (prefer) = 80
	if got := RawScore(c, in); got != 80 {
		t.Fatalf("expected raw score 80, got %v", got)
	}
}

func TestRawScoreAvoidActorPenalty(t *testing.T) {
	c := CandidateIntent{
		IntentType:   IntentSocialChat,
		Params:       map[string]any{ParamTargetAgent: "rival"},
		BasePriority: 40,
		Domain:       DomainSocial,
	}
	in := ScoreInputs{Modifiers: PersonaModifiers{AvoidActors: []string{"rival"}}}
	if got := RawScore(c, in); got != 15 {
		t.Fatalf("expected raw score 15, got %v", got)
	}
}

func TestRawScoreClampedAtZero(t *testing.T) {
	c := CandidateIntent{IntentType: IntentSocialChat, BasePriority: 10, Domain: DomainSocial}
	in := ScoreInputs{FailPenalty: -100}
	if got := RawScore(c, in); got != 0 {
		t.Fatalf("expected clamp to 0, got %v", got)
	}
}

func TestFailPenaltyMonotonic(t *testing.T) {
	c := CandidateIntent{IntentType: IntentBuyItem, BasePriority: 50, Domain: DomainEconomy}
	prev := RawScore(c, ScoreInputs{})
	for fails := 1; fails <= 6; fails++ {
		got := RawScore(c, ScoreInputs{FailPenalty: -FailPenaltyPerFailure * float64(fails)})
		if got > prev {
			t.Fatalf("raw score increased with more failures: %v -> %v", prev, got)
		}
		if got < 0 {
			t.Fatalf("raw score went negative: %v", got)
		}
		prev = got
	}
	if prev != 0 {
		t.Fatalf("expected full clamp after 6 failures, got %v", prev)
	}
}

func TestScoreExponentSharpensGap(t *testing.T) {
	strong := Score(CandidateIntent{BasePriority: 80}, ScoreInputs{Wellbeing: 1})
	weak := Score(CandidateIntent{BasePriority: 20}, ScoreInputs{Wellbeing: 1})

	if want := math.Pow(80, ScoreExponent); strong.FinalScore != want {
		t.Fatalf("expected final %v, got %v", want, strong.FinalScore)
	}
	rawRatio := strong.RawScore / weak.RawScore
	finalRatio := strong.FinalScore / weak.FinalScore
	if finalRatio <= rawRatio {
		t.Fatalf("exponent did not sharpen separation: raw ratio %v, final ratio %v", rawRatio, finalRatio)
	}
}

func TestMaxJitterScalesWithPersonality(t *testing.T) {
	timid := MaxJitter(Personality{})
	if timid != BaseJitter {
		t.Fatalf("expected base jitter %v, got %v", BaseJitter, timid)
	}
	bold := MaxJitter(Personality{RiskTolerance: 100, Creativity: 100})
	if bold != BaseJitter+PersonalityJitter {
		t.Fatalf("expected %v, got %v", BaseJitter+PersonalityJitter, bold)
	}
}

func TestWellbeingFactor(t *testing.T) {
	low := AgentContext{Needs: map[string]float64{NeedSocial: 50, NeedFun: 40, NeedPurpose: 30}}
	high := AgentContext{Needs: map[string]float64{NeedSocial: 50, NeedFun: 40, NeedPurpose: 70}}

	if got := WellbeingFactor(low, DomainSocial); got != WellbeingMultiplier {
		t.Fatalf("expected multiplier for low mood, got %v", got)
	}
	if got := WellbeingFactor(low, DomainLeisure); got != WellbeingMultiplier {
		t.Fatalf("expected multiplier for leisure, got %v", got)
	}
	if got := WellbeingFactor(low, DomainSurvival); got != 1 {
		t.Fatalf("multiplier must not apply outside social/leisure/gaming, got %v", got)
	}
	if got := WellbeingFactor(high, DomainSocial); got != 1 {
		t.Fatalf("multiplier requires all three needs low, got %v", got)
	}
}

func TestCompositeKeyStableAcrossParamOrder(t *testing.T) {
	a := CandidateIntent{IntentType: IntentBuyItem, Domain: DomainEconomy,
		Params: map[string]any{"item": "bread", "qty": 2}}
	b := CandidateIntent{IntentType: IntentBuyItem, Domain: DomainEconomy,
		Params: map[string]any{"qty": 2, "item": "bread"}}
	if CompositeKey(a) != CompositeKey(b) {
		t.Fatalf("composite key depends on map iteration order")
	}
	c := CandidateIntent{IntentType: IntentBuyItem, Domain: DomainEconomy,
		Params: map[string]any{"item": "bread", "qty": 3}}
	if CompositeKey(a) == CompositeKey(c) {
		t.Fatalf("composite key ignores params")
	}
}
