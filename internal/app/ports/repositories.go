package ports

import (
	"context"
	"time"

	"volition/internal/domain/decision"
)

// PendingIntentRecord is a submitted decision awaiting execution by the
// world-mutation layer.
type PendingIntentRecord struct {
	IntentID    string
	AgentID     string
	IntentType  string
	Params      map[string]any
	Reason      string
	Tick        int64
	Source      string
	Status      string
	SubmittedAt time.Time
}

const (
	IntentSourceEngine = "engine"
	IntentSourceOwner  = "owner"

	IntentStatusPending    = "pending"
	IntentStatusQueued     = "queued"
	IntentStatusSuperseded = "superseded"
	IntentStatusConsumed   = "consumed"
)

// PendingIntentRepository persists submitted intents. SubmitIfIdle is the
// single atomic check-and-insert: it must fail with ErrConflict when the
// agent already has an active (pending or queued) intent, with no window in
// which two submissions can both succeed.
type PendingIntentRepository interface {
	ActiveByAgentID(ctx context.Context, agentID string) (*PendingIntentRecord, error)
	SubmitIfIdle(ctx context.Context, rec PendingIntentRecord) error
	Supersede(ctx context.Context, rec PendingIntentRecord) error
}

// DecisionLogEntry is the durable per-decision record used for replay and
// telemetry.
type DecisionLogEntry struct {
	AgentID    string         `json:"agent_id"`
	Tick       int64          `json:"tick"`
	IntentType string         `json:"intent_type"`
	Params     map[string]any `json:"params,omitempty"`
	Reason     string         `json:"reason"`
	Confidence float64        `json:"confidence,omitempty"`
	Submitted  bool           `json:"submitted"`
	CreatedAt  time.Time      `json:"created_at"`
}

// DecisionLogRepository lists entries newest first; limit <= 0 means no
// limit.
type DecisionLogRepository interface {
	Append(ctx context.Context, agentID string, entries []DecisionLogEntry) error
	ListByAgentID(ctx context.Context, agentID string, limit int) ([]DecisionLogEntry, error)
}

// Decider is the single-agent pipeline entry point as the scheduler sees it:
// infallible, always a well-formed decision.
type Decider interface {
	Decide(ctx context.Context, agentID string, tick int64, seed string) decision.IntentDecision
}
