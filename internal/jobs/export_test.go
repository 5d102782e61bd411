package jobs

import "time"

// RunOnce invokes the scheduled function directly, bypassing cron.
func (j *TrackingJob) RunOnce() {
	j.run()
}

// SetNowFunc overrides the job's clock in tests.
func (j *TrackingJob) SetNowFunc(now func() time.Time) {
	j.now = now
}
