package memory

import (
	"context"

	"volition/internal/app/ports"
)

// PendingIntentRepo implements the atomic check-and-insert contract against
// the shared store. Like the gorm adapter, calls are meant to run inside
// TxManager.RunInTx, which holds the store lock for the whole unit.
type PendingIntentRepo struct {
	store *Store
}

func NewPendingIntentRepo(store *Store) PendingIntentRepo {
	return PendingIntentRepo{store: store}
}

func (r PendingIntentRepo) ActiveByAgentID(_ context.Context, agentID string) (*ports.PendingIntentRecord, error) {
	rec, ok := r.store.active[agentID]
	if !ok {
		return nil, ports.ErrNotFound
	}
	out := rec
	return &out, nil
}

func (r PendingIntentRepo) SubmitIfIdle(_ context.Context, rec ports.PendingIntentRecord) error {
	if _, exists := r.store.active[rec.AgentID]; exists {
		return ports.ErrConflict
	}
	r.store.active[rec.AgentID] = rec
	r.store.history[rec.AgentID] = append(r.store.history[rec.AgentID], rec)
	return nil
}

func (r PendingIntentRepo) Supersede(_ context.Context, rec ports.PendingIntentRecord) error {
	if old, exists := r.store.active[rec.AgentID]; exists {
		hist := r.store.history[rec.AgentID]
		for i := range hist {
			if hist[i].IntentID == old.IntentID {
				hist[i].Status = ports.IntentStatusSuperseded
			}
		}
	}
	r.store.active[rec.AgentID] = rec
	r.store.history[rec.AgentID] = append(r.store.history[rec.AgentID], rec)
	return nil
}

// MarkConsumed clears the active slot once the world-mutation layer has
// executed the intent.
func (r PendingIntentRepo) MarkConsumed(_ context.Context, agentID, intentID string) error {
	rec, ok := r.store.active[agentID]
	if !ok || rec.IntentID != intentID {
		return ports.ErrNotFound
	}
	delete(r.store.active, agentID)
	hist := r.store.history[agentID]
	for i := range hist {
		if hist[i].IntentID == intentID {
			hist[i].Status = ports.IntentStatusConsumed
		}
	}
	return nil
}
