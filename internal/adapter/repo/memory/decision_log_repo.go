package memory

import (
	"context"

	"volition/internal/app/ports"
)

type DecisionLogRepo struct {
	store *Store
}

func NewDecisionLogRepo(store *Store) DecisionLogRepo {
	return DecisionLogRepo{store: store}
}

func (r DecisionLogRepo) Append(_ context.Context, agentID string, entries []ports.DecisionLogEntry) error {
	r.store.decisions[agentID] = append(r.store.decisions[agentID], entries...)
	return nil
}

// ListByAgentID returns the most recent entries, newest first.
func (r DecisionLogRepo) ListByAgentID(_ context.Context, agentID string, limit int) ([]ports.DecisionLogEntry, error) {
	all := r.store.decisions[agentID]
	if limit <= 0 || limit > len(all) {
		limit = len(all)
	}
	out := make([]ports.DecisionLogEntry, 0, limit)
	for i := len(all) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, all[i])
	}
	return out, nil
}
