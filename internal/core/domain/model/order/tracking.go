package order

import (
	"errors"
	"time"

	"shelf2door/internal/pkg/errs"
	"shelf2door/internal/pkg/guard"
)

// ErrTrackingUpdateIsNotConstructed is returned when using an improperly
// initialized TrackingUpdate.
var ErrTrackingUpdateIsNotConstructed = errors.New(
	"TrackingUpdate must be created via NewTrackingUpdate constructor")

// TrackingUpdate is one immutable entry in an order's audit log: a timestamp,
// the status at that moment, a free-text message and optional structured
// details. Entries are append-only; once written they are never mutated.
type TrackingUpdate struct {
	at      time.Time
	status  Status
	message string
	details map[string]string
	guard   guard.ConstructorGuard
}

// NewTrackingUpdate creates a TrackingUpdate. details may be nil; when
// present it is copied so later mutation of the argument cannot reach the log.
func NewTrackingUpdate(at time.Time, status Status, message string, details map[string]string) (TrackingUpdate, error) {
	update := TrackingUpdate{
		guard: guard.NewConstructorGuard(),
	}

	if at.IsZero() {
		return TrackingUpdate{}, errs.NewValueIsRequiredError("timestamp")
	}
	if err := status.Validate(); err != nil {
		return TrackingUpdate{}, err
	}

	update.at = at
	update.status = status
	update.message = message
	if len(details) > 0 {
		update.details = make(map[string]string, len(details))
		for k, v := range details {
			update.details[k] = v
		}
	}

	return update, nil
}

// Validate checks that the TrackingUpdate was created via NewTrackingUpdate.
func (u TrackingUpdate) Validate() error {
	return u.guard.Validate(ErrTrackingUpdateIsNotConstructed)
}

// At returns the capture timestamp.
func (u TrackingUpdate) At() time.Time {
	return u.at
}

// Status returns the order status at the time of the update.
func (u TrackingUpdate) Status() Status {
	return u.status
}

// Message returns the free-text message, possibly empty.
func (u TrackingUpdate) Message() string {
	return u.message
}

// Details returns a copy of the structured details, nil when none were set.
func (u TrackingUpdate) Details() map[string]string {
	if u.details == nil {
		return nil
	}
	out := make(map[string]string, len(u.details))
	for k, v := range u.details {
		out[k] = v
	}
	return out
}
