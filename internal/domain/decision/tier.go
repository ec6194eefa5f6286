package decision

// Tier assigns a candidate to its priority bracket. Lower is stronger; only
// the lowest-numbered non-empty tier competes in final selection.
func Tier(c CandidateIntent, ac AgentContext, urg Urgencies) int {
	if c.IntentType == IntentFreeze {
		return TierFreeze
	}
	switch c.Domain {
	case DomainSurvival:
		if urg.SurvivalAtLeast(SurvivalStressLevel) {
			return TierSurvivalUrgent
		}
		return TierSurvivalCalm
	case DomainHousing:
		return TierHousing
	case DomainEconomy, DomainEconomic:
		return TierEconomy
	case DomainGaming:
		if ac.Need(NeedFun) < GamingFunThreshold {
			return TierElevated
		}
		return TierRelaxed
	case DomainSocial:
		if ac.Need(NeedSocial) < SocialNeedThreshold {
			return TierElevated
		}
		return TierRelaxed
	case DomainLeisure:
		if ac.Need(NeedFun) < LeisureFunThreshold {
			return TierElevated
		}
		return TierRelaxed
	case DomainBusiness:
		return TierBusiness
	case DomainGovernance:
		return TierGovernance
	default:
		return TierDefault
	}
}
