// Package static is a canned context/persona source for tests and the demo
// wiring, standing in for the external world-state snapshot assembler.
package static

import (
	"context"
	"sync"

	"volition/internal/app/ports"
	"volition/internal/domain/decision"
)

type Provider struct {
	mu        sync.RWMutex
	contexts  map[string]decision.AgentContext
	modifiers map[string]decision.PersonaModifiers
	goals     map[string][]string
}

func NewProvider() *Provider {
	return &Provider{
		contexts:  make(map[string]decision.AgentContext),
		modifiers: make(map[string]decision.PersonaModifiers),
		goals:     make(map[string][]string),
	}
}

func (p *Provider) SeedContext(ac decision.AgentContext) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.contexts[ac.AgentID] = ac
}

func (p *Provider) SeedModifiers(agentID string, mods decision.PersonaModifiers) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.modifiers[agentID] = mods
}

func (p *Provider) SeedGoals(agentID string, intents []string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.goals[agentID] = intents
}

// AgentIDs lists every seeded agent, for driving whole-population ticks.
func (p *Provider) AgentIDs() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]string, 0, len(p.contexts))
	for id := range p.contexts {
		out = append(out, id)
	}
	return out
}

func (p *Provider) LoadContext(_ context.Context, agentID string, tick int64) (decision.AgentContext, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	ac, ok := p.contexts[agentID]
	if !ok {
		return decision.AgentContext{}, ports.ErrNotFound
	}
	ac.Tick = tick
	return ac, nil
}

func (p *Provider) GetModifiers(_ context.Context, agentID string) (decision.PersonaModifiers, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.modifiers[agentID], nil
}

func (p *Provider) GetActiveGoalIntents(_ context.Context, agentID string) ([]string, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.goals[agentID], nil
}
