// Package feedback keeps a short-term, in-memory record of recent decision
// outcomes per agent. It exists to damp intents that keep getting blocked;
// it deliberately does not survive restarts; the durable history is the
// decision log.
package feedback

import (
	"hash/fnv"
	"sync"
)

// Capacity bounds each agent's ring buffer; oldest entries are evicted first.
const Capacity = 20

const shardCount = 16

// Record is one remembered decision outcome.
type Record struct {
	IntentType string
	Tick       int64
	Result     string
}

type shard struct {
	mu      sync.Mutex
	buckets map[string][]Record
}

// Store is safe for concurrent use. Buckets are keyed by agent id and no
// operation touches more than one bucket, so sharded locks are enough.
type Store struct {
	shards [shardCount]*shard
}

func NewStore() *Store {
	s := &Store{}
	for i := range s.shards {
		s.shards[i] = &shard{buckets: make(map[string][]Record)}
	}
	return s
}

func (s *Store) shardFor(agentID string) *shard {
	h := fnv.New32a()
	h.Write([]byte(agentID))
	return s.shards[h.Sum32()%shardCount]
}

// Append records one outcome, evicting the oldest entry when the agent's
// buffer is full.
func (s *Store) Append(agentID, intentType string, tick int64, result string) {
	sh := s.shardFor(agentID)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	b := sh.buckets[agentID]
	if len(b) >= Capacity {
		copy(b, b[1:])
		b = b[:Capacity-1]
	}
	sh.buckets[agentID] = append(b, Record{IntentType: intentType, Tick: tick, Result: result})
}

// CountRecentFailures counts blocked outcomes for the intent type within the
// trailing tick window.
func (s *Store) CountRecentFailures(agentID, intentType string, currentTick, window int64) int {
	sh := s.shardFor(agentID)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	cutoff := currentTick - window
	count := 0
	for _, r := range sh.buckets[agentID] {
		if r.IntentType == intentType && r.Result == "blocked" && r.Tick >= cutoff {
			count++
		}
	}
	return count
}

// Len reports the current buffer size for one agent. Test hook.
func (s *Store) Len(agentID string) int {
	sh := s.shardFor(agentID)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	return len(sh.buckets[agentID])
}
