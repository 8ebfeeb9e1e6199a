package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/ifund-app/ifund/internal/config"
	"github.com/ifund-app/ifund/internal/repository"
	"github.com/ifund-app/ifund/internal/service"
)

// Runner owns the background scheduler: the periodic solvency check and
// the stale chat conversation sweep.
type Runner struct {
	scheduler gocron.Scheduler
}

func New(solvency *service.SolvencyService, queries *repository.Queries) (*Runner, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(config.SolvencyCheckInterval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			report, err := solvency.Report(ctx)
			if err != nil {
				slog.Error("solvency check", "error", err)
				return
			}
			if report.Warning {
				slog.Warn("fund balance below member earnings",
					"total_funds", report.TotalFunds,
					"member_earnings", report.MemberEarnings,
					"approved_payouts", report.ApprovedPayouts,
				)
			}
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("schedule solvency check: %w", err)
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(config.StaleChatStateCleanup),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			n, err := queries.ResetStaleChatStates(ctx, time.Now().Add(-config.StaleChatStateAge))
			if err != nil {
				slog.Error("reset stale chat states", "error", err)
				return
			}
			if n > 0 {
				slog.Info("reset stale chat states", "count", n)
			}
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("schedule chat state cleanup: %w", err)
	}

	return &Runner{scheduler: scheduler}, nil
}

func (r *Runner) Start() {
	r.scheduler.Start()
}

func (r *Runner) Shutdown() {
	if err := r.scheduler.Shutdown(); err != nil {
		slog.Error("shutdown scheduler", "error", err)
	}
}
