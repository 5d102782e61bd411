// Package ports defines the outbound interfaces the core depends on.
// Adapters under internal/adapters/out implement them.
package ports

import (
	"context"

	"shelf2door/internal/core/domain/model/customer"
)

// Notifier delivers a message to a customer over every channel in the
// customer's preference list.
//
// Delivery is best effort: per-channel failures are logged by the
// implementation and never surfaced to the caller, so a transition is never
// blocked or rolled back by an undeliverable notification.
type Notifier interface {
	Notify(ctx context.Context, recipient *customer.Customer, title, body string)
}
