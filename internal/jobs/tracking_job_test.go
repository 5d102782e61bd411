package jobs_test

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"shelf2door/internal/jobs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTicker counts ticks and can be told to panic or block.
type fakeTicker struct {
	ticks     atomic.Int64
	panicOn   int64
	blockOn   chan struct{}
	returnErr error
}

func (f *fakeTicker) Tick(context.Context) error {
	n := f.ticks.Add(1)
	if f.blockOn != nil {
		<-f.blockOn
	}
	if f.panicOn != 0 && n == f.panicOn {
		panic("tick exploded")
	}
	return f.returnErr
}

func newJob(ticker jobs.Ticker) *jobs.TrackingJob {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return jobs.NewTrackingJob(ticker, logger)
}

func TestTrackingJob_Run(t *testing.T) {
	t.Run("should invoke the ticker once per run", func(t *testing.T) {
		ticker := &fakeTicker{}
		job := newJob(ticker)

		job.RunOnce()
		job.RunOnce()

		assert.Equal(t, int64(2), ticker.ticks.Load())
	})

	t.Run("tick error should not stop later runs", func(t *testing.T) {
		ticker := &fakeTicker{returnErr: context.DeadlineExceeded}
		job := newJob(ticker)

		job.RunOnce()
		job.RunOnce()

		assert.Equal(t, int64(2), ticker.ticks.Load())
	})
}

func TestTrackingJob_PanicBackoff(t *testing.T) {
	t.Run("should recover a panicking tick and back off five seconds", func(t *testing.T) {
		ticker := &fakeTicker{panicOn: 1}
		job := newJob(ticker)

		now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		job.SetNowFunc(func() time.Time { return now })

		require.NotPanics(t, job.RunOnce)
		require.Equal(t, int64(1), ticker.ticks.Load())

		// Still inside the backoff window: runs are skipped.
		now = now.Add(3 * time.Second)
		job.RunOnce()
		assert.Equal(t, int64(1), ticker.ticks.Load())

		// Past the window: ticking resumes.
		now = now.Add(3 * time.Second)
		job.RunOnce()
		assert.Equal(t, int64(2), ticker.ticks.Load())
	})
}

func TestTrackingJob_OverlapSkip(t *testing.T) {
	t.Run("should skip a run while the previous tick is in flight", func(t *testing.T) {
		gate := make(chan struct{})
		ticker := &fakeTicker{blockOn: gate}
		job := newJob(ticker)

		done := make(chan struct{})
		go func() {
			job.RunOnce()
			close(done)
		}()

		// Wait until the first tick is inside the ticker.
		require.Eventually(t, func() bool {
			return ticker.ticks.Load() == 1
		}, time.Second, time.Millisecond)

		job.RunOnce()
		assert.Equal(t, int64(1), ticker.ticks.Load())

		close(gate)
		<-done

		job.RunOnce()
		assert.Equal(t, int64(2), ticker.ticks.Load())
	})
}

func TestTrackingJob_StartStop(t *testing.T) {
	t.Run("should start and stop without firing immediately", func(t *testing.T) {
		ticker := &fakeTicker{}
		job := newJob(ticker)

		require.NoError(t, job.Start())
		job.Stop()
	})
}

func TestJobManager(t *testing.T) {
	t.Run("should start and stop all jobs", func(t *testing.T) {
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		manager := jobs.NewJobManager(&fakeTicker{}, logger)

		require.NoError(t, manager.StartAll())
		manager.StopAll()
	})
}
