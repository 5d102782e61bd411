package notify_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"shelf2door/internal/adapters/out/notify"
	"shelf2door/internal/core/domain/model/customer"
	"shelf2door/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seqRand replays a fixed sequence of Float64 values, wrapping around.
type seqRand struct {
	floats []float64
	i      int
}

func (r *seqRand) Float64() float64 {
	v := r.floats[r.i%len(r.floats)]
	r.i++
	return v
}

func (r *seqRand) IntN(int) int {
	return 0
}

func newGateway(floats ...float64) *notify.Gateway {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return notify.NewGateway(&seqRand{floats: floats}, logger)
}

func recipient(t *testing.T, channels ...customer.Channel) *customer.Customer {
	t.Helper()
	location, err := kernel.NewGeoPoint(40.7128, -74.0060)
	require.NoError(t, err)
	c, err := customer.NewCustomer(kernel.NewUUID(), "Alice Johnson", "+1-555-0101",
		"123 Main St, New York", location, channels)
	require.NoError(t, err)
	return c
}

func TestGateway_Notify(t *testing.T) {
	t.Run("should fan out once per preferred channel", func(t *testing.T) {
		gateway := newGateway(0.99)
		c := recipient(t, customer.ChannelSMS, customer.ChannelWhatsApp, customer.ChannelPush)

		gateway.Notify(context.Background(), c, "Order Confirmation", "your order is placed")

		log := gateway.Log()
		require.Len(t, log, 3)
		channels := []customer.Channel{log[0].Channel, log[1].Channel, log[2].Channel}
		assert.Equal(t, []customer.Channel{
			customer.ChannelSMS, customer.ChannelWhatsApp, customer.ChannelPush,
		}, channels)
		for _, attempt := range log {
			assert.Equal(t, "+1-555-0101", attempt.Recipient)
			assert.Equal(t, "Order Confirmation", attempt.Title)
			assert.True(t, attempt.Delivered)
			assert.False(t, attempt.SentAt.IsZero())
		}
	})

	t.Run("channel failures should be independent", func(t *testing.T) {
		// First draw fails SMS (0.0 < 0.05), the rest succeed.
		gateway := newGateway(0.0, 0.99, 0.99)
		c := recipient(t, customer.ChannelSMS, customer.ChannelWhatsApp, customer.ChannelPush)

		gateway.Notify(context.Background(), c, "Order Update", "out for delivery")

		log := gateway.Log()
		require.Len(t, log, 3)
		assert.False(t, log[0].Delivered)
		assert.True(t, log[1].Delivered)
		assert.True(t, log[2].Delivered)
	})

	t.Run("should send only to preferred channels", func(t *testing.T) {
		gateway := newGateway(0.99)
		c := recipient(t, customer.ChannelPush)

		gateway.Notify(context.Background(), c, "Order Update", "preparing")

		log := gateway.Log()
		require.Len(t, log, 1)
		assert.Equal(t, customer.ChannelPush, log[0].Channel)
	})

	t.Run("cancelled context should stop sends with latency", func(t *testing.T) {
		gateway := newGateway(0.99)
		c := recipient(t, customer.ChannelSMS, customer.ChannelPush)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		gateway.Notify(ctx, c, "Order Update", "preparing")

		// SMS is skipped at its latency gate; push has none and goes out.
		log := gateway.Log()
		require.Len(t, log, 1)
		assert.Equal(t, customer.ChannelPush, log[0].Channel)
	})
}

func TestGateway_TotalCost(t *testing.T) {
	t.Run("should charge per attempt regardless of outcome", func(t *testing.T) {
		gateway := newGateway(0.0) // every attempt fails
		c := recipient(t, customer.ChannelSMS, customer.ChannelWhatsApp, customer.ChannelPush)

		gateway.Notify(context.Background(), c, "Order Update", "preparing")

		expected := decimal.RequireFromString("0.071")
		assert.True(t, gateway.TotalCost().Equal(expected),
			"got %s", gateway.TotalCost())
	})

	t.Run("empty log should cost nothing", func(t *testing.T) {
		gateway := newGateway(0.99)

		assert.True(t, gateway.TotalCost().IsZero())
	})
}

func TestGateway_Log(t *testing.T) {
	t.Run("should return a copy", func(t *testing.T) {
		gateway := newGateway(0.99)
		c := recipient(t, customer.ChannelPush)
		gateway.Notify(context.Background(), c, "Order Update", "preparing")

		log := gateway.Log()
		log[0].Title = "tampered"

		assert.Equal(t, "Order Update", gateway.Log()[0].Title)
	})
}
