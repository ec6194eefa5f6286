package memory

import (
	"sync"

	"volition/internal/app/ports"
)

// Store backs the in-memory adapters. One lock guards everything; the
// TxManager reuses it so a transaction sees and mutates a consistent view.
type Store struct {
	mu        sync.Mutex
	active    map[string]ports.PendingIntentRecord // agentID -> active intent
	history   map[string][]ports.PendingIntentRecord
	decisions map[string][]ports.DecisionLogEntry
}

func NewStore() *Store {
	return &Store{
		active:    make(map[string]ports.PendingIntentRecord),
		history:   make(map[string][]ports.PendingIntentRecord),
		decisions: make(map[string][]ports.DecisionLogEntry),
	}
}

// SeedActive installs an in-flight intent directly. Test hook.
func (s *Store) SeedActive(rec ports.PendingIntentRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active[rec.AgentID] = rec
	s.history[rec.AgentID] = append(s.history[rec.AgentID], rec)
}
