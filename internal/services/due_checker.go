package services

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/daydone/backend/usecase/notify"
)

// CheckerConfig controls how frequently due dates are evaluated.
type CheckerConfig struct {
	Interval time.Duration
}

// DueChecker periodically sweeps the todo list for due and overdue
// deadlines and hands them to the notification engine.
type DueChecker struct {
	engine *notify.Engine
	logger *zap.Logger
	cron   *cron.Cron
	cfg    CheckerConfig
}

func NewDueChecker(engine *notify.Engine, logger *zap.Logger, cfg CheckerConfig) *DueChecker {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	dc := &DueChecker{
		engine: engine,
		logger: logger,
		cfg:    cfg,
		cron:   cron.New(cron.WithSeconds()),
	}

	schedule := fmt.Sprintf("@every %ds", int(cfg.Interval.Seconds()))
	_, _ = dc.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Interval)
		defer cancel()
		dc.engine.Tick(ctx)
	})

	return dc
}

// Start launches the cron scheduler.
func (dc *DueChecker) Start() {
	if dc == nil || dc.cron == nil {
		return
	}
	dc.cron.Start()
	dc.logger.Info("due checker started", zap.Duration("interval", dc.cfg.Interval))
}

// Stop gracefully stops the scheduler.
func (dc *DueChecker) Stop(ctx context.Context) {
	if dc == nil || dc.cron == nil {
		return
	}
	stopCtx := dc.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
	dc.logger.Info("due checker stopped")
}
