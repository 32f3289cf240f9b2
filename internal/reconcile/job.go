package reconcile

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

type Runner interface {
	Run(ctx context.Context) (*Report, error)
}

// NewScheduler registers a reconciliation pass on schedule. Overlapping
// runs are skipped. The caller starts and stops the returned scheduler.
func NewScheduler(runner Runner, schedule string, timeout time.Duration, logger *zap.Logger) (*cron.Cron, error) {
	sched := cron.New(
		cron.WithParser(cronParser),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)

	_, err := sched.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		if _, err := runner.Run(ctx); err != nil {
			logger.Error("scheduled reconciliation failed", zap.Error(err))
		}
	})
	if err != nil {
		return nil, fmt.Errorf("scheduling reconciliation %q: %w", schedule, err)
	}

	return sched, nil
}
