// Package basic ships a minimal generator set satisfying the candidate
// contract, enough to exercise the pipeline end to end in the demo server
// and integration tests. Real behavioral content plugs in through the same
// interface.
package basic

import (
	"context"

	"volition/internal/domain/decision"
)

// Survival proposes eating and resting as survival needs degrade.
type Survival struct{}

func (Survival) Domain() string { return decision.DomainSurvival }

func (Survival) Generate(_ context.Context, ac decision.AgentContext, urg decision.Urgencies) ([]decision.CandidateIntent, error) {
	var out []decision.CandidateIntent
	for _, u := range urg {
		if u.Domain != decision.DomainSurvival {
			continue
		}
		switch u.Need {
		case decision.NeedHunger:
			out = append(out, decision.CandidateIntent{
				IntentType:   decision.IntentConsumeItem,
				Params:       map[string]any{"item_type": "food"},
				BasePriority: 50 + 10*float64(u.Level),
				Reason:       "Hunger is getting serious",
				Domain:       decision.DomainSurvival,
			})
		case decision.NeedEnergy:
			out = append(out, decision.CandidateIntent{
				IntentType:   decision.IntentRest,
				BasePriority: 40 + 10*float64(u.Level),
				Reason:       "Running low on energy",
				Domain:       decision.DomainSurvival,
			})
		}
	}
	return out, nil
}

// Economy proposes working and job seeking.
type Economy struct {
	ShiftPriority float64
}

func (Economy) Domain() string { return decision.DomainEconomy }

func (g Economy) Generate(_ context.Context, ac decision.AgentContext, _ decision.Urgencies) ([]decision.CandidateIntent, error) {
	shift := g.ShiftPriority
	if shift <= 0 {
		shift = 45
	}
	out := []decision.CandidateIntent{{
		IntentType:   decision.IntentWorkShift,
		BasePriority: shift,
		Reason:       "A shift pays the bills",
		Domain:       decision.DomainEconomy,
	}}
	if ac.WalletBalance < 20 {
		out = append(out, decision.CandidateIntent{
			IntentType:   decision.IntentApplyJob,
			BasePriority: 55,
			Reason:       "Wallet is nearly empty",
			Domain:       decision.DomainEconomy,
		})
	}
	return out, nil
}

// Social proposes chatting with each nearby agent; targets feed the
// avoid/prefer persona adjustments.
type Social struct{}

func (Social) Domain() string { return decision.DomainSocial }

func (Social) Generate(_ context.Context, ac decision.AgentContext, _ decision.Urgencies) ([]decision.CandidateIntent, error) {
	var out []decision.CandidateIntent
	for _, other := range ac.NearbyAgents {
		out = append(out, decision.CandidateIntent{
			IntentType:   decision.IntentSocialChat,
			Params:       map[string]any{decision.ParamTargetAgent: other},
			BasePriority: 35,
			Reason:       "Catch up with " + other,
			Domain:       decision.DomainSocial,
		})
	}
	return out, nil
}

// Leisure proposes paid recreation when fun runs low.
type Leisure struct{}

func (Leisure) Domain() string { return decision.DomainLeisure }

func (Leisure) Generate(_ context.Context, ac decision.AgentContext, _ decision.Urgencies) ([]decision.CandidateIntent, error) {
	if ac.Need(decision.NeedFun) >= decision.LeisureFunThreshold {
		return nil, nil
	}
	return []decision.CandidateIntent{{
		IntentType:   decision.IntentVisitBusiness,
		Params:       map[string]any{"business_type": "tavern", decision.ParamCost: 5},
		BasePriority: 30,
		Reason:       "Could use a night out",
		Domain:       decision.DomainLeisure,
	}}, nil
}
