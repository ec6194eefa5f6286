package gormrepo

import (
	"context"
	"encoding/json"

	"gorm.io/gorm"

	"volition/internal/app/ports"
)

type DecisionLogRepo struct {
	db *gorm.DB
}

func NewDecisionLogRepo(db *gorm.DB) DecisionLogRepo {
	return DecisionLogRepo{db: db}
}

func (r DecisionLogRepo) Append(ctx context.Context, agentID string, entries []ports.DecisionLogEntry) error {
	if len(entries) == 0 {
		return nil
	}
	models := make([]DecisionLog, 0, len(entries))
	for _, e := range entries {
		params, err := json.Marshal(e.Params)
		if err != nil {
			return err
		}
		models = append(models, DecisionLog{
			AgentID:    agentID,
			Tick:       e.Tick,
			IntentType: e.IntentType,
			Params:     params,
			Reason:     e.Reason,
			Confidence: e.Confidence,
			Submitted:  e.Submitted,
			CreatedAt:  e.CreatedAt,
		})
	}
	return getDBFromCtx(ctx, r.db).Create(&models).Error
}

func (r DecisionLogRepo) ListByAgentID(ctx context.Context, agentID string, limit int) ([]ports.DecisionLogEntry, error) {
	q := getDBFromCtx(ctx, r.db).
		Where("agent_id = ?", agentID).
		Order("tick DESC, id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var models []DecisionLog
	err := q.Find(&models).Error
	if err != nil {
		return nil, err
	}
	out := make([]ports.DecisionLogEntry, 0, len(models))
	for _, m := range models {
		var params map[string]any
		_ = json.Unmarshal(m.Params, &params)
		out = append(out, ports.DecisionLogEntry{
			AgentID:    m.AgentID,
			Tick:       m.Tick,
			IntentType: m.IntentType,
			Params:     params,
			Reason:     m.Reason,
			Confidence: m.Confidence,
			Submitted:  m.Submitted,
			CreatedAt:  m.CreatedAt,
		})
	}
	return out, nil
}
