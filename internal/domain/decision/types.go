package decision

import "time"

type UrgencyLevel int

const (
	UrgencyNone UrgencyLevel = iota
	UrgencyLow
	UrgencyModerate
	UrgencyUrgent
	UrgencyCritical
)

func (l UrgencyLevel) String() string {
	switch l {
	case UrgencyLow:
		return "LOW"
	case UrgencyModerate:
		return "MODERATE"
	case UrgencyUrgent:
		return "URGENT"
	case UrgencyCritical:
		return "CRITICAL"
	default:
		return "NONE"
	}
}

// NeedUrgency is a discretized severity reading for one need, produced by the
// external urgency evaluator.
type NeedUrgency struct {
	Need   string       `json:"need"`
	Value  float64      `json:"value"`
	Level  UrgencyLevel `json:"level"`
	Domain string       `json:"domain"`
}

// CandidateIntent is a proposed action emitted by a domain generator.
// Immutable once emitted; identity is structural (see CompositeKey).
type CandidateIntent struct {
	IntentType       string         `json:"intent_type"`
	Params           map[string]any `json:"params,omitempty"`
	BasePriority     float64        `json:"base_priority"`
	PersonalityBoost float64        `json:"personality_boost"`
	Reason           string         `json:"reason"`
	Domain           string         `json:"domain"`
}

// ScoredCandidate exists only for the duration of one decision round.
type ScoredCandidate struct {
	CandidateIntent
	RawScore   float64
	FinalScore float64
	Tier       int
}

// IntentDecision is the pipeline output, persisted as a pending action by the
// tick scheduler and consumed by the external world-mutation layer.
type IntentDecision struct {
	IntentType     string         `json:"intent_type"`
	Params         map[string]any `json:"params,omitempty"`
	Reason         string         `json:"reason"`
	Confidence     float64        `json:"confidence,omitempty"`
	BudgetExceeded []string       `json:"budget_exceeded,omitempty"`
}

// OwnerOverride reports whether the decision came from an owner suggestion.
func (d IntentDecision) OwnerOverride() bool {
	v, ok := d.Params[ParamOwnerOverride].(bool)
	return ok && v
}

// PersonaModifiers is the per-agent bias vector supplied by the persona layer.
// Read-only for one decision call.
type PersonaModifiers struct {
	DomainBias        map[string]float64 `json:"domain_bias,omitempty"`
	IntentBoosts      map[string]float64 `json:"intent_boosts,omitempty"`
	AvoidActors       []string           `json:"avoid_actors,omitempty"`
	PreferActors      []string           `json:"prefer_actors,omitempty"`
	ActiveGoalIntents []string           `json:"active_goal_intents,omitempty"`
}

type Personality struct {
	RiskTolerance float64 `json:"risk_tolerance"` // 0..100
	Creativity    float64 `json:"creativity"`     // 0..100
}

// OwnerSuggestion is a directive injected from outside the simulation.
// It is implicitly trusted and bypasses scoring entirely.
type OwnerSuggestion struct {
	IntentType string         `json:"intent_type"`
	Params     map[string]any `json:"params,omitempty"`
	Reason     string         `json:"reason,omitempty"`
}

// AgentContext is the immutable per-agent, per-tick view of world state
// assembled by the external snapshot provider.
type AgentContext struct {
	AgentID         string             `json:"agent_id"`
	Tick            int64              `json:"tick"`
	Needs           map[string]float64 `json:"needs"` // 0..100 per need
	Personality     Personality        `json:"personality"`
	ActivityState   string             `json:"activity_state"` // "IDLE" unless mid multi-tick activity
	WalletBalance   float64            `json:"wallet_balance"`
	Frozen          bool               `json:"frozen"`
	Jailed          bool               `json:"jailed"`
	NearbyAgents    []string           `json:"nearby_agents,omitempty"`
	OwnerSuggestion *OwnerSuggestion   `json:"owner_suggestion,omitempty"`
	BudgetExceeded  []string           `json:"budget_exceeded,omitempty"`
	UpdatedAt       time.Time          `json:"updated_at"`
}

// Need returns a need value, defaulting to fully satisfied when the snapshot
// does not carry the need at all.
func (ac AgentContext) Need(name string) float64 {
	v, ok := ac.Needs[name]
	if !ok {
		return 100
	}
	return v
}

// Busy reports whether the agent is mid multi-tick activity.
func (ac AgentContext) Busy() bool {
	return ac.ActivityState != "" && ac.ActivityState != ActivityIdle
}

const (
	ActivityIdle = "IDLE"

	NeedSocial  = "social"
	NeedFun     = "fun"
	NeedPurpose = "purpose"
	NeedHunger  = "hunger"
	NeedEnergy  = "energy"
)

const (
	DomainCore       = "core"
	DomainSurvival   = "survival"
	DomainHousing    = "housing"
	DomainEconomy    = "economy"
	DomainEconomic   = "economic"
	DomainGaming     = "gaming"
	DomainSocial     = "social"
	DomainLeisure    = "leisure"
	DomainBusiness   = "business"
	DomainGovernance = "governance"
)

const (
	IntentIdle          = "INTENT_IDLE"
	IntentFreeze        = "INTENT_FREEZE"
	IntentForage        = "INTENT_FORAGE"
	IntentRest          = "INTENT_REST"
	IntentConsumeItem   = "INTENT_CONSUME_ITEM"
	IntentBuyItem       = "INTENT_BUY_ITEM"
	IntentVisitBusiness = "INTENT_VISIT_BUSINESS"
	IntentApplyJob      = "INTENT_APPLY_JOB"
	IntentWorkShift     = "INTENT_WORK_SHIFT"
	IntentSocialChat    = "INTENT_SOCIAL_CHAT"
)

// Param keys shared between generators, the engine and the scheduler.
const (
	ParamTargetAgent   = "target_agent_id"
	ParamOwnerOverride = "owner_override"
	ParamCost          = "cost"
)
