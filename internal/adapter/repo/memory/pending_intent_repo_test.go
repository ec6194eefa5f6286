package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"volition/internal/app/ports"
)

func record(intentID, agentID, intentType string) ports.PendingIntentRecord {
	return ports.PendingIntentRecord{
		IntentID:    intentID,
		AgentID:     agentID,
		IntentType:  intentType,
		Status:      ports.IntentStatusPending,
		SubmittedAt: time.Unix(0, 0),
	}
}

func TestSubmitIfIdleConflict(t *testing.T) {
	repo := NewPendingIntentRepo(NewStore())
	ctx := context.Background()

	if err := repo.SubmitIfIdle(ctx, record("i1", "a1", "INTENT_REST")); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	err := repo.SubmitIfIdle(ctx, record("i2", "a1", "INTENT_WORK_SHIFT"))
	if !errors.Is(err, ports.ErrConflict) {
		t.Fatalf("second submit: want ErrConflict, got %v", err)
	}
	rec, err := repo.ActiveByAgentID(ctx, "a1")
	if err != nil || rec.IntentID != "i1" {
		t.Fatalf("active intent corrupted: %+v err=%v", rec, err)
	}
}

func TestSubmitIfIdlePerAgentIsolation(t *testing.T) {
	repo := NewPendingIntentRepo(NewStore())
	ctx := context.Background()

	if err := repo.SubmitIfIdle(ctx, record("i1", "a1", "INTENT_REST")); err != nil {
		t.Fatalf("a1 submit: %v", err)
	}
	if err := repo.SubmitIfIdle(ctx, record("i2", "a2", "INTENT_REST")); err != nil {
		t.Fatalf("a2 submit blocked by a1's intent: %v", err)
	}
}

func TestSupersedeMarksHistory(t *testing.T) {
	store := NewStore()
	repo := NewPendingIntentRepo(store)
	ctx := context.Background()

	if err := repo.SubmitIfIdle(ctx, record("i1", "a1", "INTENT_WORK_SHIFT")); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := repo.Supersede(ctx, record("i2", "a1", "INTENT_REST")); err != nil {
		t.Fatalf("supersede: %v", err)
	}

	rec, err := repo.ActiveByAgentID(ctx, "a1")
	if err != nil || rec.IntentID != "i2" {
		t.Fatalf("active intent not replaced: %+v err=%v", rec, err)
	}

	hist := store.history["a1"]
	if len(hist) != 2 {
		t.Fatalf("expected 2 history rows, got %d", len(hist))
	}
	if hist[0].Status != ports.IntentStatusSuperseded {
		t.Fatalf("first row status = %s, want superseded", hist[0].Status)
	}
	if hist[1].Status != ports.IntentStatusPending {
		t.Fatalf("second row status = %s, want pending", hist[1].Status)
	}
}

func TestMarkConsumedFreesTheAgent(t *testing.T) {
	store := NewStore()
	repo := NewPendingIntentRepo(store)
	ctx := context.Background()

	if err := repo.SubmitIfIdle(ctx, record("i1", "a1", "INTENT_REST")); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := repo.MarkConsumed(ctx, "a1", "i1"); err != nil {
		t.Fatalf("consume: %v", err)
	}
	if _, err := repo.ActiveByAgentID(ctx, "a1"); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("agent should be free, got err=%v", err)
	}
	if err := repo.SubmitIfIdle(ctx, record("i2", "a1", "INTENT_REST")); err != nil {
		t.Fatalf("resubmit after consume: %v", err)
	}
	if store.history["a1"][0].Status != ports.IntentStatusConsumed {
		t.Fatalf("consumed row status = %s", store.history["a1"][0].Status)
	}
}

func TestMarkConsumedWrongIntentID(t *testing.T) {
	repo := NewPendingIntentRepo(NewStore())
	ctx := context.Background()

	if err := repo.SubmitIfIdle(ctx, record("i1", "a1", "INTENT_REST")); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := repo.MarkConsumed(ctx, "a1", "stale-id"); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("stale consume: want ErrNotFound, got %v", err)
	}
	if _, err := repo.ActiveByAgentID(ctx, "a1"); err != nil {
		t.Fatalf("active intent must survive a stale consume: %v", err)
	}
}
