package jobs

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// trackingSchedule fires every ten seconds.
const trackingSchedule = "*/10 * * * * *"

// panicBackoff is how long the job stays quiet after a recovered panic.
const panicBackoff = 5 * time.Second

// Ticker advances the tracking simulation by one step.
type Ticker interface {
	Tick(ctx context.Context) error
}

// TrackingJob runs the tracking ticker on a fixed schedule. Ticks never
// overlap: if one is still running when the next fires, the new one is
// skipped. A panicking tick is recovered and the job backs off before
// resuming.
type TrackingJob struct {
	ticker Ticker
	cron   *cron.Cron
	logger *slog.Logger
	now    func() time.Time

	mu           sync.Mutex
	running      bool
	backoffUntil time.Time
}

// NewTrackingJob creates a new job driving the given ticker.
func NewTrackingJob(ticker Ticker, logger *slog.Logger) *TrackingJob {
	return &TrackingJob{
		ticker: ticker,
		cron:   cron.New(cron.WithSeconds()),
		logger: logger.With("component", "tracking_job"),
		now:    time.Now,
	}
}

// Start begins the tracking job on its ten-second schedule.
func (j *TrackingJob) Start() error {
	_, err := j.cron.AddFunc(trackingSchedule, j.run)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Tracking job started (running every ten seconds)")
	return nil
}

// Stop stops the schedule and waits for an in-flight tick to finish.
func (j *TrackingJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Tracking job stopped")
}

func (j *TrackingJob) run() {
	j.mu.Lock()
	if j.running {
		j.mu.Unlock()
		j.logger.Warn("previous tick still running, skipping")
		return
	}
	if j.now().Before(j.backoffUntil) {
		j.mu.Unlock()
		j.logger.Warn("in backoff window after panic, skipping tick")
		return
	}
	j.running = true
	j.mu.Unlock()

	defer func() {
		j.mu.Lock()
		if r := recover(); r != nil {
			j.backoffUntil = j.now().Add(panicBackoff)
			j.logger.Error("tick panicked, backing off",
				"panic", r,
				"backoff", panicBackoff.String())
		}
		j.running = false
		j.mu.Unlock()
	}()

	ctx := context.Background()
	if err := j.ticker.Tick(ctx); err != nil {
		j.logger.ErrorContext(ctx, "Tracking tick failed", "error", err)
	}
}
