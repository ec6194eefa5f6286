package memory

import (
	"context"
	"testing"

	"volition/internal/app/ports"
)

func TestDecisionLogNewestFirst(t *testing.T) {
	repo := NewDecisionLogRepo(NewStore())
	ctx := context.Background()

	for tick := int64(1); tick <= 4; tick++ {
		err := repo.Append(ctx, "a1", []ports.DecisionLogEntry{{AgentID: "a1", Tick: tick, IntentType: "INTENT_IDLE"}})
		if err != nil {
			t.Fatalf("append tick %d: %v", tick, err)
		}
	}

	got, err := repo.ListByAgentID(ctx, "a1", 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(got))
	}
	for i, e := range got {
		if want := int64(4 - i); e.Tick != want {
			t.Fatalf("entry %d: tick %d, want %d", i, e.Tick, want)
		}
	}
}

func TestDecisionLogLimit(t *testing.T) {
	repo := NewDecisionLogRepo(NewStore())
	ctx := context.Background()

	for tick := int64(1); tick <= 10; tick++ {
		if err := repo.Append(ctx, "a1", []ports.DecisionLogEntry{{AgentID: "a1", Tick: tick}}); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	got, err := repo.ListByAgentID(ctx, "a1", 3)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 3 || got[0].Tick != 10 || got[2].Tick != 8 {
		t.Fatalf("unexpected window: %+v", got)
	}
}

func TestDecisionLogUnknownAgent(t *testing.T) {
	repo := NewDecisionLogRepo(NewStore())
	got, err := repo.ListByAgentID(context.Background(), "ghost", 5)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %d entries", len(got))
	}
}
