// Package notify implements the Notifier port with simulated channels: each
// channel has a fixed network latency, an independent failure probability and
// a per-message cost. Every attempt is appended to an in-memory log for cost
// accounting and tests.
package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"shelf2door/internal/core/domain/model/customer"
	"shelf2door/internal/pkg/sim"

	"github.com/shopspring/decimal"
)

// Attempt is one send over one channel, delivered or not.
type Attempt struct {
	Channel   customer.Channel
	Recipient string
	Title     string
	Body      string
	Delivered bool
	Cost      decimal.Decimal
	SentAt    time.Time
}

// channelProfile holds the simulated characteristics of one channel.
type channelProfile struct {
	latency     time.Duration
	failureRate float64
	cost        decimal.Decimal
}

var channelProfiles = map[customer.Channel]channelProfile{
	customer.ChannelSMS: {
		latency:     100 * time.Millisecond,
		failureRate: 0.05,
		cost:        decimal.RequireFromString("0.05"),
	},
	customer.ChannelWhatsApp: {
		latency:     150 * time.Millisecond,
		failureRate: 0.02,
		cost:        decimal.RequireFromString("0.02"),
	},
	customer.ChannelPush: {
		failureRate: 0.01,
		cost:        decimal.RequireFromString("0.001"),
	},
}

// Gateway fans messages out across a customer's preferred channels.
// It is safe for concurrent use.
type Gateway struct {
	mu     sync.Mutex
	log    []Attempt
	rand   sim.Rand
	now    func() time.Time
	logger *slog.Logger
}

// NewGateway creates a Gateway drawing delivery outcomes from the given
// random source.
func NewGateway(rand sim.Rand, logger *slog.Logger) *Gateway {
	return &Gateway{
		rand:   rand,
		now:    time.Now,
		logger: logger.With("component", "notification_gateway"),
	}
}

// Notify sends the message once per channel in the recipient's preference
// list. Channel failures are independent: one failing never blocks the rest.
func (g *Gateway) Notify(ctx context.Context, recipient *customer.Customer, title, body string) {
	for _, channel := range recipient.PreferredChannels() {
		g.send(ctx, channel, recipient, title, body)
	}
}

// Log returns a copy of every attempt made so far.
func (g *Gateway) Log() []Attempt {
	g.mu.Lock()
	defer g.mu.Unlock()

	out := make([]Attempt, len(g.log))
	copy(out, g.log)
	return out
}

// TotalCost sums the simulated cost of every attempt, delivered or not.
// Carriers charge per send, not per success.
func (g *Gateway) TotalCost() decimal.Decimal {
	g.mu.Lock()
	defer g.mu.Unlock()

	total := decimal.Zero
	for _, attempt := range g.log {
		total = total.Add(attempt.Cost)
	}
	return total
}

func (g *Gateway) send(ctx context.Context, channel customer.Channel, recipient *customer.Customer, title, body string) {
	profile, ok := channelProfiles[channel]
	if !ok {
		g.logger.Warn("unknown notification channel", "channel", channel.String())
		return
	}

	if profile.latency > 0 {
		select {
		case <-ctx.Done():
			return
		case <-time.After(profile.latency):
		}
	}

	g.mu.Lock()
	delivered := g.rand.Float64() >= profile.failureRate
	attempt := Attempt{
		Channel:   channel,
		Recipient: recipient.Phone(),
		Title:     title,
		Body:      body,
		Delivered: delivered,
		Cost:      profile.cost,
		SentAt:    g.now(),
	}
	g.log = append(g.log, attempt)
	g.mu.Unlock()

	if delivered {
		g.logger.Info("notification sent",
			"channel", channel.String(),
			"recipient", recipient.Name(),
			"title", title,
			"cost", profile.cost.String())
	} else {
		g.logger.Warn("notification delivery failed",
			"channel", channel.String(),
			"recipient", recipient.Name(),
			"title", title)
	}
}
