package decision

// Urgencies wraps the evaluator output with the survival-level queries the
// pipeline keeps asking.
type Urgencies []NeedUrgency

// MaxSurvivalLevel returns the highest urgency level among survival-domain
// entries, UrgencyNone when there are none.
func (u Urgencies) MaxSurvivalLevel() UrgencyLevel {
	max := UrgencyNone
	for _, n := range u {
		if n.Domain == DomainSurvival && n.Level > max {
			max = n.Level
		}
	}
	return max
}

func (u Urgencies) SurvivalAtLeast(level UrgencyLevel) bool {
	return u.MaxSurvivalLevel() >= level
}

func (u Urgencies) CriticalSurvival() bool {
	return u.SurvivalAtLeast(UrgencyCritical)
}
