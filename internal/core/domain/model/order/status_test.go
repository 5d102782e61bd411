package order_test

import (
	"testing"

	"shelf2door/internal/core/domain/model/order"
	"shelf2door/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_String(t *testing.T) {
	tests := []struct {
		status   order.Status
		expected string
	}{
		{order.Placed, "placed"},
		{order.Confirmed, "confirmed"},
		{order.Preparing, "preparing"},
		{order.OutForDelivery, "out_for_delivery"},
		{order.Delivered, "delivered"},
		{order.Cancelled, "cancelled"},
		{order.Unknown, "unknown"},
		{order.Status(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.status.String())
		})
	}
}

func TestParseStatus(t *testing.T) {
	t.Run("should round-trip all valid statuses", func(t *testing.T) {
		statuses := []order.Status{
			order.Placed, order.Confirmed, order.Preparing,
			order.OutForDelivery, order.Delivered, order.Cancelled,
		}

		for _, status := range statuses {
			parsed, err := order.ParseStatus(status.String())
			require.NoError(t, err)
			assert.Equal(t, status, parsed)
		}
	})

	t.Run("should reject unrecognized name", func(t *testing.T) {
		_, err := order.ParseStatus("teleported")

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject the unknown name itself", func(t *testing.T) {
		_, err := order.ParseStatus("unknown")

		require.Error(t, err)
	})
}

func TestStatus_CanTransitionTo(t *testing.T) {
	t.Run("should allow the forward chain", func(t *testing.T) {
		assert.True(t, order.Placed.CanTransitionTo(order.Confirmed))
		assert.True(t, order.Confirmed.CanTransitionTo(order.Preparing))
		assert.True(t, order.Preparing.CanTransitionTo(order.OutForDelivery))
		assert.True(t, order.OutForDelivery.CanTransitionTo(order.Delivered))
	})

	t.Run("should allow cancellation from any non-terminal state", func(t *testing.T) {
		for _, status := range []order.Status{
			order.Placed, order.Confirmed, order.Preparing, order.OutForDelivery,
		} {
			assert.True(t, status.CanTransitionTo(order.Cancelled), status.String())
		}
	})

	t.Run("should forbid leaving terminal states", func(t *testing.T) {
		for _, terminal := range []order.Status{order.Delivered, order.Cancelled} {
			for _, target := range []order.Status{
				order.Placed, order.Confirmed, order.Preparing,
				order.OutForDelivery, order.Delivered, order.Cancelled,
			} {
				assert.False(t, terminal.CanTransitionTo(target),
					"%s -> %s", terminal, target)
			}
		}
	})

	t.Run("should forbid skipping states", func(t *testing.T) {
		assert.False(t, order.Placed.CanTransitionTo(order.Preparing))
		assert.False(t, order.Placed.CanTransitionTo(order.Delivered))
		assert.False(t, order.Confirmed.CanTransitionTo(order.OutForDelivery))
	})

	t.Run("should forbid moving backward", func(t *testing.T) {
		assert.False(t, order.Confirmed.CanTransitionTo(order.Placed))
		assert.False(t, order.OutForDelivery.CanTransitionTo(order.Preparing))
	})
}

func TestStatus_TransitionTo(t *testing.T) {
	t.Run("should return next status for valid transition", func(t *testing.T) {
		next, err := order.Placed.TransitionTo(order.Confirmed)

		require.NoError(t, err)
		assert.Equal(t, order.Confirmed, next)
	})

	t.Run("should fail for invalid transition", func(t *testing.T) {
		_, err := order.Delivered.TransitionTo(order.Cancelled)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should fail for invalid target", func(t *testing.T) {
		_, err := order.Placed.TransitionTo(order.Status(99))

		require.Error(t, err)
	})
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.True(t, order.Delivered.IsTerminal())
	assert.True(t, order.Cancelled.IsTerminal())
	assert.False(t, order.Placed.IsTerminal())
	assert.False(t, order.OutForDelivery.IsTerminal())
	assert.False(t, order.Unknown.IsTerminal())
}

func TestStatus_Validate(t *testing.T) {
	t.Run("should accept all lifecycle states", func(t *testing.T) {
		for _, status := range []order.Status{
			order.Placed, order.Confirmed, order.Preparing,
			order.OutForDelivery, order.Delivered, order.Cancelled,
		} {
			assert.NoError(t, status.Validate())
		}
	})

	t.Run("should reject unknown and out-of-range values", func(t *testing.T) {
		assert.Error(t, order.Unknown.Validate())
		assert.Error(t, order.Status(42).Validate())
	})
}
