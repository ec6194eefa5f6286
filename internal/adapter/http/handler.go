package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"volition/internal/app/ports"
	"volition/internal/app/replay"
	"volition/internal/app/tick"
)

type Handler struct {
	Decider  ports.Decider
	TickUC   tick.UseCase
	ReplayUC replay.UseCase
	Pending  ports.PendingIntentRepository
	KPI      kpiSnapshotProvider
}

type kpiSnapshotProvider interface {
	SnapshotAny() any
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.Use(corsMiddleware())

	agent := s.Group("/api/agent")
	agent.POST("/decide", h.decide)
	agent.GET("/pending", h.pending)
	agent.GET("/decisions", h.decisions)

	s.POST("/api/tick", h.tick)
	s.GET("/ops/kpi", h.kpi)
}

type decideRequest struct {
	AgentID string `json:"agent_id"`
	Tick    int64  `json:"tick"`
	Seed    string `json:"seed"`
}

// decide runs the pipeline for one agent without submitting anything, a
// dry-run surface for inspecting what an agent would choose.
func (h Handler) decide(c context.Context, ctx *app.RequestContext) {
	var body decideRequest
	if err := decodeJSON(ctx, &body); err != nil || body.AgentID == "" {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "agent_id required")
		return
	}
	d := h.Decider.Decide(c, body.AgentID, body.Tick, body.Seed)
	ctx.JSON(consts.StatusOK, d)
}

type tickRequest struct {
	AgentIDs []string `json:"agent_ids"`
	Tick     int64    `json:"tick"`
	Seed     string   `json:"seed"`
}

func (h Handler) tick(c context.Context, ctx *app.RequestContext) {
	var body tickRequest
	if err := decodeJSON(ctx, &body); err != nil || len(body.AgentIDs) == 0 {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "agent_ids required")
		return
	}
	res, err := h.TickUC.RunTick(c, body.AgentIDs, body.Tick, body.Seed)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, res)
}

func (h Handler) pending(c context.Context, ctx *app.RequestContext) {
	agentID := string(ctx.Query("agent_id"))
	if agentID == "" {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_request", "agent_id required")
		return
	}
	rec, err := h.Pending.ActiveByAgentID(c, agentID)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, rec)
}

func (h Handler) decisions(c context.Context, ctx *app.RequestContext) {
	agentID := string(ctx.Query("agent_id"))
	limit, _ := strconv.Atoi(string(ctx.Query("limit")))
	tickFrom, _ := strconv.ParseInt(string(ctx.Query("tick_from")), 10, 64)
	tickTo, _ := strconv.ParseInt(string(ctx.Query("tick_to")), 10, 64)

	resp, err := h.ReplayUC.Execute(c, replay.Request{
		AgentID:  agentID,
		Limit:    limit,
		TickFrom: tickFrom,
		TickTo:   tickTo,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) kpi(_ context.Context, ctx *app.RequestContext) {
	if h.KPI == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "kpi provider not configured")
		return
	}
	ctx.JSON(consts.StatusOK, h.KPI.SnapshotAny())
}

func decodeJSON(ctx *app.RequestContext, out any) error {
	body := ctx.Request.Body()
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, errorBody{Code: code, Message: message})
}

func writeError(ctx *app.RequestContext, err error) {
	switch {
	case errors.Is(err, ports.ErrNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, replay.ErrInvalidRequest):
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_request", err.Error())
	default:
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal", err.Error())
	}
}
