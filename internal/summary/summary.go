package summary

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/cleankili/backend/internal/models"
	"github.com/cleankili/backend/internal/notify"
	"github.com/cleankili/backend/internal/storage"
)

// Compiler aggregates report counts into a daily summary.
type Compiler struct {
	store storage.Storage
}

func NewCompiler(store storage.Storage) *Compiler {
	return &Compiler{store: store}
}

// Compile builds the summary for the calendar day containing day, counting
// reports created since that day's midnight (local time).
func (c *Compiler) Compile(ctx context.Context, day time.Time) (*models.DailySummary, error) {
	midnight := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())

	counts, err := c.store.CountReportsSince(ctx, midnight)
	if err != nil {
		return nil, fmt.Errorf("count reports: %w", err)
	}

	date := midnight.Format("2006-01-02")
	text := fmt.Sprintf(
		"Daily report summary for %s: %d new reports (%d pending, %d in progress, %d resolved)",
		date, counts.Total, counts.Pending, counts.InProgress, counts.Resolved,
	)

	return &models.DailySummary{
		Date:              date,
		TotalReports:      counts.Total,
		PendingReports:    counts.Pending,
		InProgressReports: counts.InProgress,
		ResolvedReports:   counts.Resolved,
		SummaryText:       text,
	}, nil
}

// Scheduler compiles and delivers the summary once a day at a fixed hour.
type Scheduler struct {
	compiler *Compiler
	notifier notify.Notifier
	logger   *logrus.Logger
	hour     int
	now      func() time.Time
}

func NewScheduler(compiler *Compiler, notifier notify.Notifier, logger *logrus.Logger, hour int) *Scheduler {
	return &Scheduler{
		compiler: compiler,
		notifier: notifier,
		logger:   logger,
		hour:     hour,
		now:      time.Now,
	}
}

// Run blocks until ctx is cancelled, firing once per day at the configured
// hour. Intended to run in its own goroutine.
func (s *Scheduler) Run(ctx context.Context) {
	for {
		now := s.now()
		timer := time.NewTimer(s.nextRun(now).Sub(now))

		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		if err := s.runOnce(ctx); err != nil {
			s.logger.WithError(err).Error("daily summary failed")
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context) error {
	summary, err := s.compiler.Compile(ctx, s.now())
	if err != nil {
		return err
	}
	return s.notifier.SendDailySummary(ctx, summary)
}

func (s *Scheduler) nextRun(now time.Time) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), s.hour, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
