// Package tick drives one simulation step: it fans the decision pipeline out
// over all active agents in bounded-size concurrent groups, degrades slow
// agents to an idle fallback, and submits surviving decisions exactly once.
package tick

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"volition/internal/app/ports"
	"volition/internal/domain/decision"
	"volition/internal/domain/seedrand"
)

const (
	DefaultGroupSize = 10
	DefaultTimeout   = 4000 * time.Millisecond
)

// Intent types allowed to supersede an in-flight non-critical action.
var supersedeAllowlist = map[string]bool{
	decision.IntentRest:          true,
	decision.IntentConsumeItem:   true,
	decision.IntentBuyItem:       true,
	decision.IntentVisitBusiness: true,
}

type UseCase struct {
	Decider   ports.Decider
	TxManager ports.TxManager
	Pending   ports.PendingIntentRepository
	Decisions ports.DecisionLogRepository
	Feedback  ports.FeedbackStore
	Metrics   ports.DecisionMetrics
	Log       *zap.Logger

	GroupSize int
	Timeout   time.Duration
	Now       func() time.Time
}

// Result aggregates one tick's outcome.
type Result struct {
	Submitted   int      `json:"submitted"`
	Diagnostics []string `json:"diagnostics,omitempty"`
}

// RunTick computes and submits decisions for every active agent. Per-agent
// failures never surface as errors; only an unavailable persistence layer
// does.
func (u UseCase) RunTick(ctx context.Context, agentIDs []string, tickNo int64, globalSeed string) (Result, error) {
	groupSize := u.GroupSize
	if groupSize <= 0 {
		groupSize = DefaultGroupSize
	}
	timeout := u.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	var (
		mu  sync.Mutex
		res Result
	)

	for start := 0; start < len(agentIDs); start += groupSize {
		end := start + groupSize
		if end > len(agentIDs) {
			end = len(agentIDs)
		}

		// One concurrent invocation per agent in the group; the join barrier
		// below bounds peak concurrency to the group size.
		eg, egCtx := errgroup.WithContext(ctx)
		for _, agentID := range agentIDs[start:end] {
			agentID := agentID
			eg.Go(func() error {
				d, timedOut := u.decideWithDeadline(egCtx, agentID, tickNo, globalSeed, timeout)

				submitted, diags, err := u.handleDecision(egCtx, agentID, tickNo, d)
				if err != nil {
					return err
				}
				if timedOut {
					diags = append(diags, "timeout: "+agentID)
				}

				mu.Lock()
				if submitted {
					res.Submitted++
				}
				res.Diagnostics = append(res.Diagnostics, diags...)
				mu.Unlock()
				return nil
			})
		}
		if err := eg.Wait(); err != nil {
			return Result{}, err
		}
	}
	return res, nil
}

// decideWithDeadline wraps one pipeline invocation with a soft timeout: on
// expiry it stops waiting and substitutes the idle fallback. The underlying
// computation observes the context deadline cooperatively.
func (u UseCase) decideWithDeadline(ctx context.Context, agentID string, tickNo int64, globalSeed string, timeout time.Duration) (decision.IntentDecision, bool) {
	dctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	seed := seedrand.Derive(globalSeed, agentID, tickNo)
	ch := make(chan decision.IntentDecision, 1)
	go func() {
		ch <- u.Decider.Decide(dctx, agentID, tickNo, seed)
	}()

	select {
	case d := <-ch:
		return d, false
	case <-dctx.Done():
		if u.Metrics != nil {
			u.Metrics.RecordTimeout()
		}
		u.logger().Warn("decision timed out",
			zap.String("agent_id", agentID), zap.Int64("tick", tickNo))
		return decision.IntentDecision{
			IntentType: decision.IntentIdle,
			Reason:     decision.ReasonBrainCrash,
		}, true
	}
}

// handleDecision applies the dedup/supersede policy and submits the decision
// atomically together with its log entry.
func (u UseCase) handleDecision(ctx context.Context, agentID string, tickNo int64, d decision.IntentDecision) (bool, []string, error) {
	var diags []string
	for _, note := range d.BudgetExceeded {
		diags = append(diags, "budget exceeded: "+agentID+": "+note)
	}

	if d.IntentType == decision.IntentIdle {
		// The log append still needs the TxManager: the memory adapter's
		// repos rely on RunInTx holding the store lock, and agents in one
		// group log concurrently.
		err := u.runInTx(ctx, func(txCtx context.Context) error {
			return u.appendLog(txCtx, agentID, tickNo, d, false)
		})
		if err != nil {
			return false, nil, err
		}
		return false, diags, nil
	}

	rec := ports.PendingIntentRecord{
		IntentID:    uuid.NewString(),
		AgentID:     agentID,
		IntentType:  d.IntentType,
		Params:      d.Params,
		Reason:      d.Reason,
		Tick:        tickNo,
		Source:      ports.IntentSourceEngine,
		Status:      ports.IntentStatusPending,
		SubmittedAt: u.now(),
	}
	if d.OwnerOverride() {
		rec.Source = ports.IntentSourceOwner
	}

	submitted := false
	err := u.runInTx(ctx, func(txCtx context.Context) error {
		err := u.Pending.SubmitIfIdle(txCtx, rec)
		switch {
		case err == nil:
			submitted = true
		case errors.Is(err, ports.ErrConflict):
			if rec.Source != ports.IntentSourceOwner && !supersedeAllowlist[d.IntentType] {
				if u.Feedback != nil {
					u.Feedback.Append(agentID, d.IntentType, tickNo, ports.FeedbackDiscarded)
				}
				if u.Metrics != nil {
					u.Metrics.RecordConflict()
				}
				break
			}
			if err := u.Pending.Supersede(txCtx, rec); err != nil {
				return err
			}
			submitted = true
			if u.Metrics != nil {
				u.Metrics.RecordSuperseded()
			}
		default:
			return err
		}
		return u.appendLog(txCtx, agentID, tickNo, d, submitted)
	})
	if err != nil {
		return false, nil, err
	}

	if submitted {
		if u.Feedback != nil {
			u.Feedback.Append(agentID, d.IntentType, tickNo, ports.FeedbackPending)
		}
		if u.Metrics != nil {
			u.Metrics.RecordSubmitted()
		}
	}
	return submitted, diags, nil
}

func (u UseCase) appendLog(ctx context.Context, agentID string, tickNo int64, d decision.IntentDecision, submitted bool) error {
	if u.Decisions == nil {
		return nil
	}
	return u.Decisions.Append(ctx, agentID, []ports.DecisionLogEntry{{
		AgentID:    agentID,
		Tick:       tickNo,
		IntentType: d.IntentType,
		Params:     d.Params,
		Reason:     d.Reason,
		Confidence: d.Confidence,
		Submitted:  submitted,
		CreatedAt:  u.now(),
	}})
}

func (u UseCase) runInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if u.TxManager == nil {
		return fn(ctx)
	}
	return u.TxManager.RunInTx(ctx, fn)
}

func (u UseCase) now() time.Time {
	if u.Now != nil {
		return u.Now()
	}
	return time.Now()
}

func (u UseCase) logger() *zap.Logger {
	if u.Log == nil {
		return zap.NewNop()
	}
	return u.Log
}
