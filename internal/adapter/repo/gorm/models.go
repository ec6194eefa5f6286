package gormrepo

import "time"

// PendingIntent rows keep agent_active set to the agent id while the intent
// is in flight (pending or queued) and NULL afterwards. The unique index on
// agent_active turns "submit unless one exists" into a single insert: a
// concurrent duplicate fails with a duplicate-key violation instead of
// racing a read-then-write.
type PendingIntent struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	IntentID    string    `gorm:"size:64;uniqueIndex"`
	AgentID     string    `gorm:"size:64;index"`
	AgentActive *string   `gorm:"size:64;uniqueIndex"`
	IntentType  string    `gorm:"size:64"`
	Params      []byte    `gorm:"type:jsonb"`
	Reason      string    `gorm:"type:text"`
	Tick        int64     `gorm:"index"`
	Source      string    `gorm:"size:16"`
	Status      string    `gorm:"size:16;index"`
	SubmittedAt time.Time
}

type DecisionLog struct {
	ID         int64  `gorm:"primaryKey;autoIncrement"`
	AgentID    string `gorm:"size:64;index:idx_decision_log_agent_tick"`
	Tick       int64  `gorm:"index:idx_decision_log_agent_tick"`
	IntentType string `gorm:"size:64"`
	Params     []byte `gorm:"type:jsonb"`
	Reason     string `gorm:"type:text"`
	Confidence float64
	Submitted  bool
	CreatedAt  time.Time
}
