package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Cleaner deletes records older than a cutoff.
type Cleaner interface {
	Cleanup(ctx context.Context, before time.Time) (int64, error)
}

// Retention periodically drops records older than the configured number of
// months.
type Retention struct {
	cleaner Cleaner
	months  int
	logger  *zap.Logger
	now     func() time.Time
	cron    *cron.Cron
}

// NewRetention schedules cleanup on spec, a six-field cron expression with
// seconds.
func NewRetention(spec string, cleaner Cleaner, months int, logger *zap.Logger) (*Retention, error) {
	if months <= 0 {
		return nil, fmt.Errorf("retention months must be positive, got %d", months)
	}
	r := &Retention{
		cleaner: cleaner,
		months:  months,
		logger:  logger,
		now:     time.Now,
		cron:    cron.New(cron.WithSeconds()),
	}
	if _, err := r.cron.AddFunc(spec, r.run); err != nil {
		return nil, fmt.Errorf("schedule cleanup %q: %w", spec, err)
	}
	return r, nil
}

// Cutoff is the oldest timestamp kept.
func (r *Retention) Cutoff() time.Time {
	return r.now().AddDate(0, -r.months, 0)
}

// RunOnce performs a cleanup immediately.
func (r *Retention) RunOnce(ctx context.Context) (int64, error) {
	return r.cleaner.Cleanup(ctx, r.Cutoff())
}

func (r *Retention) run() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	n, err := r.RunOnce(ctx)
	if err != nil {
		r.logger.Error("privacy cleanup failed", zap.Error(err))
		return
	}
	if n > 0 {
		r.logger.Info("privacy cleanup removed old records",
			zap.Int64("rows", n), zap.Int("retention_months", r.months))
	}
}

func (r *Retention) Start() {
	r.cron.Start()
	r.logger.Info("retention scheduler started", zap.Int("retention_months", r.months))
}

// Stop halts scheduling and waits for a running cleanup to finish or ctx to
// expire.
func (r *Retention) Stop(ctx context.Context) {
	select {
	case <-r.cron.Stop().Done():
	case <-ctx.Done():
	}
}
