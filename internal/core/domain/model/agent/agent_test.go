package agent_test

import (
	"testing"

	"shelf2door/internal/core/domain/model/agent"
	"shelf2door/internal/core/domain/model/kernel"
	"shelf2door/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAgent(t *testing.T) *agent.Agent {
	t.Helper()
	a, err := agent.NewAgent(kernel.NewUUID(), "Mike Rodriguez", "+1-555-0201", "motorcycle")
	require.NoError(t, err)
	return a
}

func TestNewAgent(t *testing.T) {
	t.Run("should create agent with valid parameters", func(t *testing.T) {
		id := kernel.NewUUID()

		a, err := agent.NewAgent(id, "Mike Rodriguez", "+1-555-0201", "motorcycle")

		require.NoError(t, err)
		require.NotNil(t, a)
		assert.True(t, a.ID().IsEqual(id))
		assert.Equal(t, "Mike Rodriguez", a.Name())
		assert.Equal(t, "+1-555-0201", a.Phone())
		assert.Equal(t, "motorcycle", a.Vehicle())
		assert.Equal(t, agent.Available, a.Availability())
		assert.Empty(t, a.AssignedOrders())
		assert.NoError(t, a.Validate())
	})

	t.Run("should fail with empty name", func(t *testing.T) {
		a, err := agent.NewAgent(kernel.NewUUID(), "", "+1-555-0201", "motorcycle")

		require.Error(t, err)
		assert.Nil(t, a)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should fail with empty vehicle", func(t *testing.T) {
		a, err := agent.NewAgent(kernel.NewUUID(), "Mike", "+1-555-0201", "")

		require.Error(t, err)
		assert.Nil(t, a)
	})

	t.Run("should collect multiple validation errors", func(t *testing.T) {
		a, err := agent.NewAgent(kernel.UUID{}, "", "", "")

		require.Error(t, err)
		assert.Nil(t, a)
		assert.Contains(t, err.Error(), "name")
		assert.Contains(t, err.Error(), "phone")
		assert.Contains(t, err.Error(), "vehicle")
	})
}

func TestAgent_Assign(t *testing.T) {
	t.Run("should become busy on first assignment", func(t *testing.T) {
		a := newAgent(t)
		orderID := kernel.NewUUID()

		err := a.Assign(orderID)

		require.NoError(t, err)
		assert.Equal(t, agent.Busy, a.Availability())
		require.Len(t, a.AssignedOrders(), 1)
		assert.True(t, a.AssignedOrders()[0].IsEqual(orderID))
	})

	t.Run("should accept orders up to capacity", func(t *testing.T) {
		a := newAgent(t)

		for range agent.MaxConcurrentOrders {
			require.NoError(t, a.Assign(kernel.NewUUID()))
		}

		assert.Len(t, a.AssignedOrders(), agent.MaxConcurrentOrders)
		assert.False(t, a.HasHeadroom())
	})

	t.Run("should reject assignment beyond capacity", func(t *testing.T) {
		a := newAgent(t)
		for range agent.MaxConcurrentOrders {
			require.NoError(t, a.Assign(kernel.NewUUID()))
		}

		err := a.Assign(kernel.NewUUID())

		require.Error(t, err)
		require.ErrorIs(t, err, agent.ErrAgentHasNoHeadroom)
	})

	t.Run("should reject duplicate assignment", func(t *testing.T) {
		a := newAgent(t)
		orderID := kernel.NewUUID()
		require.NoError(t, a.Assign(orderID))

		err := a.Assign(orderID)

		require.Error(t, err)
		require.ErrorIs(t, err, agent.ErrOrderAlreadyAssigned)
	})

	t.Run("should reject assignment to offline agent", func(t *testing.T) {
		a := newAgent(t)
		require.NoError(t, a.MarkOffline())

		err := a.Assign(kernel.NewUUID())

		require.Error(t, err)
		require.ErrorIs(t, err, agent.ErrAgentIsOffline)
	})

	t.Run("should reject invalid order id", func(t *testing.T) {
		a := newAgent(t)

		err := a.Assign(kernel.UUID{})

		require.Error(t, err)
	})
}

func TestAgent_Release(t *testing.T) {
	t.Run("should return to available when last order is released", func(t *testing.T) {
		a := newAgent(t)
		orderID := kernel.NewUUID()
		require.NoError(t, a.Assign(orderID))

		err := a.Release(orderID)

		require.NoError(t, err)
		assert.Equal(t, agent.Available, a.Availability())
		assert.Empty(t, a.AssignedOrders())
	})

	t.Run("should stay busy while other orders remain", func(t *testing.T) {
		a := newAgent(t)
		first := kernel.NewUUID()
		second := kernel.NewUUID()
		require.NoError(t, a.Assign(first))
		require.NoError(t, a.Assign(second))

		require.NoError(t, a.Release(first))

		assert.Equal(t, agent.Busy, a.Availability())
		require.Len(t, a.AssignedOrders(), 1)
		assert.True(t, a.AssignedOrders()[0].IsEqual(second))
	})

	t.Run("should fail for order the agent does not hold", func(t *testing.T) {
		a := newAgent(t)
		require.NoError(t, a.Assign(kernel.NewUUID()))

		err := a.Release(kernel.NewUUID())

		require.Error(t, err)
		require.ErrorIs(t, err, agent.ErrOrderNotAssigned)
	})
}

func TestAgent_HasHeadroom(t *testing.T) {
	t.Run("available agent with free slots has headroom", func(t *testing.T) {
		a := newAgent(t)

		assert.True(t, a.HasHeadroom())

		require.NoError(t, a.Assign(kernel.NewUUID()))
		assert.True(t, a.HasHeadroom())
	})

	t.Run("offline agent has no headroom", func(t *testing.T) {
		a := newAgent(t)
		require.NoError(t, a.MarkOffline())

		assert.False(t, a.HasHeadroom())
	})
}

func TestAgent_Offline(t *testing.T) {
	t.Run("should go offline when idle", func(t *testing.T) {
		a := newAgent(t)

		require.NoError(t, a.MarkOffline())

		assert.Equal(t, agent.Offline, a.Availability())
	})

	t.Run("should refuse to go offline with assigned orders", func(t *testing.T) {
		a := newAgent(t)
		require.NoError(t, a.Assign(kernel.NewUUID()))

		err := a.MarkOffline()

		require.Error(t, err)
		require.ErrorIs(t, err, agent.ErrAgentHasAssignedOrders)
		assert.Equal(t, agent.Busy, a.Availability())
	})

	t.Run("should reset offline agent back to available", func(t *testing.T) {
		a := newAgent(t)
		require.NoError(t, a.MarkOffline())

		a.MarkAvailable()

		assert.Equal(t, agent.Available, a.Availability())
	})

	t.Run("reset should not touch a busy agent", func(t *testing.T) {
		a := newAgent(t)
		require.NoError(t, a.Assign(kernel.NewUUID()))

		a.MarkAvailable()

		assert.Equal(t, agent.Busy, a.Availability())
	})
}

func TestAgent_Snapshot(t *testing.T) {
	t.Run("should copy state without aliasing", func(t *testing.T) {
		a := newAgent(t)
		orderID := kernel.NewUUID()
		require.NoError(t, a.Assign(orderID))

		snapshot := a.Snapshot()

		assert.True(t, snapshot.ID.IsEqual(a.ID()))
		assert.Equal(t, agent.Busy, snapshot.Availability)
		require.Len(t, snapshot.AssignedOrders, 1)

		snapshot.AssignedOrders[0] = kernel.NewUUID()
		assert.True(t, a.AssignedOrders()[0].IsEqual(orderID))
	})
}

func TestAgent_Validate(t *testing.T) {
	t.Run("zero value should be invalid", func(t *testing.T) {
		var a agent.Agent

		err := a.Validate()

		require.Error(t, err)
		assert.ErrorIs(t, err, agent.ErrAgentIsNotConstructed)
	})
}

func TestAvailability_String(t *testing.T) {
	assert.Equal(t, "available", agent.Available.String())
	assert.Equal(t, "busy", agent.Busy.String())
	assert.Equal(t, "offline", agent.Offline.String())
	assert.Equal(t, "unknown", agent.AvailabilityUnknown.String())
}
