// Package threshold discretizes raw need values into urgency levels with
// fixed cut-offs. Lower value means a less satisfied need.
package threshold

import (
	"context"

	"volition/internal/domain/decision"
)

// Band boundaries on the 0..100 need scale.
const (
	criticalBelow = 10
	urgentBelow   = 25
	moderateBelow = 45
	lowBelow      = 65
)

// Survival needs map to the survival domain; everything else keeps its own
// need name as domain so generators can route on it.
var survivalNeeds = map[string]bool{
	decision.NeedHunger: true,
	decision.NeedEnergy: true,
	"health":            true,
}

type Evaluator struct{}

func (Evaluator) Evaluate(_ context.Context, ac decision.AgentContext) (decision.Urgencies, error) {
	out := make(decision.Urgencies, 0, len(ac.Needs))
	for need, value := range ac.Needs {
		level := levelFor(value)
		if level == decision.UrgencyNone {
			continue
		}
		domain := need
		if survivalNeeds[need] {
			domain = decision.DomainSurvival
		}
		out = append(out, decision.NeedUrgency{
			Need:   need,
			Value:  value,
			Level:  level,
			Domain: domain,
		})
	}
	return out, nil
}

func levelFor(value float64) decision.UrgencyLevel {
	switch {
	case value < criticalBelow:
		return decision.UrgencyCritical
	case value < urgentBelow:
		return decision.UrgencyUrgent
	case value < moderateBelow:
		return decision.UrgencyModerate
	case value < lowBelow:
		return decision.UrgencyLow
	default:
		return decision.UrgencyNone
	}
}
