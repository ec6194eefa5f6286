// Package replay serves the durable decision history for one agent: what the
// pipeline chose each tick, with what confidence, and whether it was
// submitted.
package replay

import (
	"context"
	"errors"
	"strings"

	"volition/internal/app/ports"
)

var ErrInvalidRequest = errors.New("invalid replay request")

const defaultLimit = 50

type Request struct {
	AgentID  string
	Limit    int
	TickFrom int64
	TickTo   int64
}

type Response struct {
	Decisions []ports.DecisionLogEntry `json:"decisions"`
}

type UseCase struct {
	Decisions ports.DecisionLogRepository
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	if strings.TrimSpace(req.AgentID) == "" {
		return Response{}, ErrInvalidRequest
	}
	limit := req.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	// With a tick window the limit applies to rows inside the window, so the
	// repository fetch must not truncate first.
	fetch := limit
	if req.TickFrom > 0 || req.TickTo > 0 {
		fetch = 0
	}
	entries, err := u.Decisions.ListByAgentID(ctx, req.AgentID, fetch)
	if err != nil {
		return Response{}, err
	}
	decisions := filterByTickWindow(entries, req.TickFrom, req.TickTo)
	if len(decisions) > limit {
		decisions = decisions[:limit]
	}
	return Response{Decisions: decisions}, nil
}

func filterByTickWindow(entries []ports.DecisionLogEntry, from, to int64) []ports.DecisionLogEntry {
	if from <= 0 && to <= 0 {
		return entries
	}
	out := make([]ports.DecisionLogEntry, 0, len(entries))
	for _, e := range entries {
		if from > 0 && e.Tick < from {
			continue
		}
		if to > 0 && e.Tick > to {
			continue
		}
		out = append(out, e)
	}
	return out
}
