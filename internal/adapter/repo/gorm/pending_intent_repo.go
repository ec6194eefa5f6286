package gormrepo

import (
	"context"
	"encoding/json"
	"errors"

	"gorm.io/gorm"

	"volition/internal/app/ports"
)

type PendingIntentRepo struct {
	db *gorm.DB
}

func NewPendingIntentRepo(db *gorm.DB) PendingIntentRepo {
	return PendingIntentRepo{db: db}
}

func (r PendingIntentRepo) ActiveByAgentID(ctx context.Context, agentID string) (*ports.PendingIntentRecord, error) {
	var m PendingIntent
	err := getDBFromCtx(ctx, r.db).
		Where("agent_active = ?", agentID).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	rec := toRecord(m)
	return &rec, nil
}

// SubmitIfIdle inserts the intent with agent_active set. The unique index on
// agent_active makes this the atomic check-and-insert: an in-flight intent
// for the same agent surfaces as a duplicate-key error, reported as
// ErrConflict.
func (r PendingIntentRepo) SubmitIfIdle(ctx context.Context, rec ports.PendingIntentRecord) error {
	m, err := toModel(rec)
	if err != nil {
		return err
	}
	if err := getDBFromCtx(ctx, r.db).Create(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ports.ErrConflict
		}
		return err
	}
	return nil
}

// Supersede retires the agent's active intent and inserts the new one in its
// place. Callers run it inside RunInTx, after SubmitIfIdle reported a
// conflict.
func (r PendingIntentRepo) Supersede(ctx context.Context, rec ports.PendingIntentRecord) error {
	db := getDBFromCtx(ctx, r.db)
	err := db.Model(&PendingIntent{}).
		Where("agent_active = ?", rec.AgentID).
		Updates(map[string]any{"agent_active": nil, "status": ports.IntentStatusSuperseded}).Error
	if err != nil {
		return err
	}
	m, err := toModel(rec)
	if err != nil {
		return err
	}
	return db.Create(&m).Error
}

// MarkConsumed releases the active slot once the world-mutation layer has
// executed the intent.
func (r PendingIntentRepo) MarkConsumed(ctx context.Context, agentID, intentID string) error {
	res := getDBFromCtx(ctx, r.db).Model(&PendingIntent{}).
		Where("agent_active = ? AND intent_id = ?", agentID, intentID).
		Updates(map[string]any{"agent_active": nil, "status": ports.IntentStatusConsumed})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func toModel(rec ports.PendingIntentRecord) (PendingIntent, error) {
	params, err := json.Marshal(rec.Params)
	if err != nil {
		return PendingIntent{}, err
	}
	agentActive := rec.AgentID
	return PendingIntent{
		IntentID:    rec.IntentID,
		AgentID:     rec.AgentID,
		AgentActive: &agentActive,
		IntentType:  rec.IntentType,
		Params:      params,
		Reason:      rec.Reason,
		Tick:        rec.Tick,
		Source:      rec.Source,
		Status:      rec.Status,
		SubmittedAt: rec.SubmittedAt,
	}, nil
}

func toRecord(m PendingIntent) ports.PendingIntentRecord {
	var params map[string]any
	_ = json.Unmarshal(m.Params, &params)
	return ports.PendingIntentRecord{
		IntentID:    m.IntentID,
		AgentID:     m.AgentID,
		IntentType:  m.IntentType,
		Params:      params,
		Reason:      m.Reason,
		Tick:        m.Tick,
		Source:      m.Source,
		Status:      m.Status,
		SubmittedAt: m.SubmittedAt,
	}
}
