package main

import (
	"context"
	"os"
	"time"

	"github.com/cloudwego/hertz/pkg/app/server"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	staticctx "volition/internal/adapter/context/static"
	"volition/internal/adapter/gate/rules"
	"volition/internal/adapter/generators/basic"
	httpadapter "volition/internal/adapter/http"
	metricsinmem "volition/internal/adapter/metrics/inmemory"
	gormrepo "volition/internal/adapter/repo/gorm"
	memrepo "volition/internal/adapter/repo/memory"
	"volition/internal/adapter/urgency/threshold"
	"volition/internal/app/decide"
	"volition/internal/app/feedback"
	"volition/internal/app/ports"
	"volition/internal/app/replay"
	"volition/internal/app/tick"
	"volition/internal/config"
	"volition/internal/domain/decision"
)

func main() {
	cfg, err := config.Load(os.Getenv("VOLITION_CONFIG"))
	if err != nil {
		panic(err)
	}
	logger := mustBuildLogger(cfg.LogLevel)
	defer logger.Sync()

	pendingRepo, decisionRepo, txManager := buildRepos(cfg, logger)

	contexts := buildDemoContexts()
	feedbackStore := feedback.NewStore()
	kpi := metricsinmem.NewRecorder()

	decider := decide.UseCase{
		Contexts:  contexts,
		Urgency:   threshold.Evaluator{},
		Modifiers: contexts,
		Goals:     contexts,
		Generators: []ports.CandidateGenerator{
			basic.Survival{},
			basic.Economy{},
			basic.Social{},
			basic.Leisure{},
		},
		Feedback: feedbackStore,
		Gate:     rules.Gate{},
		Metrics:  kpi,
		Log:      logger,
	}

	tickUC := tick.UseCase{
		Decider:   decider,
		TxManager: txManager,
		Pending:   pendingRepo,
		Decisions: decisionRepo,
		Feedback:  feedbackStore,
		Metrics:   kpi,
		Log:       logger,
		GroupSize: cfg.GroupSize,
		Timeout:   cfg.Timeout(),
	}

	h := httpadapter.Handler{
		Decider:  decider,
		TickUC:   tickUC,
		ReplayUC: replay.UseCase{Decisions: decisionRepo},
		Pending:  pendingRepo,
		KPI:      kpi,
	}

	if cfg.TickIntervalS > 0 {
		go runTickLoop(tickUC, contexts, cfg, logger)
	}

	s := server.Default(server.WithHostPorts(cfg.ListenAddr))
	h.RegisterRoutes(s)

	logger.Info("volition server listening", zap.String("addr", cfg.ListenAddr))
	s.Spin()
}

func buildRepos(cfg config.Config, logger *zap.Logger) (ports.PendingIntentRepository, ports.DecisionLogRepository, ports.TxManager) {
	if cfg.DatabaseDSN == "" {
		logger.Info("no database configured, using in-memory repositories")
		store := memrepo.NewStore()
		return memrepo.NewPendingIntentRepo(store), memrepo.NewDecisionLogRepo(store), memrepo.NewTxManager(store)
	}

	db, err := gormrepo.OpenPostgres(cfg.DatabaseDSN)
	if err != nil {
		logger.Fatal("open postgres", zap.Error(err))
	}
	if err := gormrepo.ApplyMigrations(context.Background(), db, cfg.MigrationsDir); err != nil {
		logger.Fatal("apply migrations", zap.Error(err))
	}
	return gormrepo.NewPendingIntentRepo(db), gormrepo.NewDecisionLogRepo(db), gormrepo.NewTxManager(db)
}

// runTickLoop drives the scheduler on a fixed cadence when the server is
// configured as its own orchestrator. Ticks never overlap: a tick fully
// completes before the next one starts, since pending-intent status feeds
// forward.
func runTickLoop(tickUC tick.UseCase, contexts *staticctx.Provider, cfg config.Config, logger *zap.Logger) {
	ticker := time.NewTicker(cfg.TickInterval())
	defer ticker.Stop()

	var tickNo int64
	for range ticker.C {
		tickNo++
		res, err := tickUC.RunTick(context.Background(), contexts.AgentIDs(), tickNo, cfg.GlobalSeed)
		if err != nil {
			logger.Error("tick failed", zap.Int64("tick", tickNo), zap.Error(err))
			continue
		}
		logger.Info("tick complete",
			zap.Int64("tick", tickNo),
			zap.Int("submitted", res.Submitted),
			zap.Int("diagnostics", len(res.Diagnostics)))
	}
}

// buildDemoContexts seeds a small population so the binary is exercisable
// without the external world-state service.
func buildDemoContexts() *staticctx.Provider {
	p := staticctx.NewProvider()
	p.SeedContext(decision.AgentContext{
		AgentID:       "demo-agent",
		Needs:         map[string]float64{decision.NeedHunger: 40, decision.NeedEnergy: 70, decision.NeedFun: 45, decision.NeedSocial: 55},
		Personality:   decision.Personality{RiskTolerance: 50, Creativity: 50},
		ActivityState: decision.ActivityIdle,
		WalletBalance: 100,
		NearbyAgents:  []string{"demo-neighbor"},
	})
	p.SeedContext(decision.AgentContext{
		AgentID:       "demo-neighbor",
		Needs:         map[string]float64{decision.NeedHunger: 80, decision.NeedEnergy: 30, decision.NeedFun: 70, decision.NeedSocial: 40},
		Personality:   decision.Personality{RiskTolerance: 30, Creativity: 70},
		ActivityState: decision.ActivityIdle,
		WalletBalance: 15,
		NearbyAgents:  []string{"demo-agent"},
	})
	return p
}

func mustBuildLogger(level string) *zap.Logger {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	logger, err := zcfg.Build()
	if err != nil {
		panic(err)
	}
	return logger
}
