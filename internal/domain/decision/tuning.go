package decision

const (
	IdleBasePriority = 5

	FailPenaltyPerFailure = 10
	FailureWindowTicks    = 100

	WellbeingMultiplier    = 1.3
	WellbeingNeedThreshold = 60

	GoalIntentBoost   = 15
	AvoidActorPenalty = 25
	PreferActorBoost  = 10

	BaseJitter        = 0.05
	PersonalityJitter = 0.05

	ScoreExponent = 1.5

	SelectionPoolSize       = 5
	StressSelectionPoolSize = 3

	GamingFunThreshold   = 30
	SocialNeedThreshold  = 50
	LeisureFunThreshold  = 50
	SurvivalStressLevel  = UrgencyModerate
)

const (
	TierFreeze         = 0
	TierSurvivalUrgent = 1
	TierHousing        = 1
	TierEconomy        = 2
	TierSurvivalCalm   = 2
	TierElevated       = 2
	TierRelaxed        = 3
	TierBusiness       = 3
	TierGovernance     = 4
	TierDefault        = 6
)

// Reason strings surfaced on degraded decisions. The scheduler and tests
// match on these, so they are part of the contract.
const (
	ReasonNoViableOptions = "No viable options"
	ReasonBrainCrash      = "Brain Crash Fallback"
	ReasonUnavailable     = "Agent unavailable or jailed"
)
