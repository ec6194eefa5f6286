// Package seedrand is the single seeded randomness source shared by every
// component that needs determinism. A seed string maps to a reproducible
// stream of floats in [0,1); the same seed always yields the same stream.
package seedrand

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"math/rand"
)

// Derive builds the per-agent, per-tick seed. Including both the agent id and
// the tick guarantees independent streams across agents and across ticks.
func Derive(globalSeed, agentID string, tick int64) string {
	return fmt.Sprintf("%s:%s:%d", globalSeed, agentID, tick)
}

// Stream is a deterministic PRNG scoped to one decision. Not safe for
// concurrent use; every decision owns its own stream.
type Stream struct {
	r *rand.Rand
}

func New(seed string) *Stream {
	sum := sha256.Sum256([]byte(seed))
	n := binary.LittleEndian.Uint64(sum[:8])
	return &Stream{r: rand.New(rand.NewSource(int64(n)))}
}

// Float64 returns the next value in [0,1).
func (s *Stream) Float64() float64 {
	return s.r.Float64()
}

// Symmetric returns the next value in [-max, +max].
func (s *Stream) Symmetric(max float64) float64 {
	return (s.r.Float64()*2 - 1) * max
}
