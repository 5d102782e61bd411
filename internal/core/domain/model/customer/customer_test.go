package customer_test

import (
	"testing"

	"shelf2door/internal/core/domain/model/customer"
	"shelf2door/internal/core/domain/model/kernel"
	"shelf2door/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validLocation(t *testing.T) kernel.GeoPoint {
	t.Helper()
	location, err := kernel.NewGeoPoint(40.7128, -74.0060)
	require.NoError(t, err)
	return location
}

func TestNewCustomer(t *testing.T) {
	t.Run("should create customer with valid parameters", func(t *testing.T) {
		id := kernel.NewUUID()
		location := validLocation(t)
		channels := []customer.Channel{customer.ChannelSMS, customer.ChannelPush}

		c, err := customer.NewCustomer(id, "Alice Johnson", "+1-555-0101",
			"123 Main St, New York", location, channels)

		require.NoError(t, err)
		require.NotNil(t, c)
		assert.True(t, c.ID().IsEqual(id))
		assert.Equal(t, "Alice Johnson", c.Name())
		assert.Equal(t, "+1-555-0101", c.Phone())
		assert.Equal(t, "123 Main St, New York", c.Address())
		assert.Equal(t, channels, c.PreferredChannels())
		assert.NoError(t, c.Validate())
	})

	t.Run("should fail with empty name", func(t *testing.T) {
		c, err := customer.NewCustomer(kernel.NewUUID(), "", "+1-555-0101",
			"123 Main St", validLocation(t), []customer.Channel{customer.ChannelSMS})

		require.Error(t, err)
		assert.Nil(t, c)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should fail with empty phone", func(t *testing.T) {
		c, err := customer.NewCustomer(kernel.NewUUID(), "Alice", "",
			"123 Main St", validLocation(t), []customer.Channel{customer.ChannelSMS})

		require.Error(t, err)
		assert.Nil(t, c)
	})

	t.Run("should fail with empty address", func(t *testing.T) {
		c, err := customer.NewCustomer(kernel.NewUUID(), "Alice", "+1-555-0101",
			"", validLocation(t), []customer.Channel{customer.ChannelSMS})

		require.Error(t, err)
		assert.Nil(t, c)
	})

	t.Run("should fail with invalid location", func(t *testing.T) {
		var location kernel.GeoPoint

		c, err := customer.NewCustomer(kernel.NewUUID(), "Alice", "+1-555-0101",
			"123 Main St", location, []customer.Channel{customer.ChannelSMS})

		require.Error(t, err)
		assert.Nil(t, c)
	})

	t.Run("should fail without preferred channels", func(t *testing.T) {
		c, err := customer.NewCustomer(kernel.NewUUID(), "Alice", "+1-555-0101",
			"123 Main St", validLocation(t), nil)

		require.Error(t, err)
		assert.Nil(t, c)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should fail with unknown channel", func(t *testing.T) {
		c, err := customer.NewCustomer(kernel.NewUUID(), "Alice", "+1-555-0101",
			"123 Main St", validLocation(t), []customer.Channel{customer.ChannelUnknown})

		require.Error(t, err)
		assert.Nil(t, c)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should fail with duplicate channels", func(t *testing.T) {
		c, err := customer.NewCustomer(kernel.NewUUID(), "Alice", "+1-555-0101",
			"123 Main St", validLocation(t),
			[]customer.Channel{customer.ChannelSMS, customer.ChannelSMS})

		require.Error(t, err)
		assert.Nil(t, c)
	})

	t.Run("should collect multiple validation errors", func(t *testing.T) {
		c, err := customer.NewCustomer(kernel.UUID{}, "", "", "",
			kernel.GeoPoint{}, nil)

		require.Error(t, err)
		assert.Nil(t, c)
		assert.Contains(t, err.Error(), "name")
		assert.Contains(t, err.Error(), "phone")
		assert.Contains(t, err.Error(), "address")
	})
}

func TestCustomer_PreferredChannels(t *testing.T) {
	t.Run("should return a copy", func(t *testing.T) {
		c, err := customer.NewCustomer(kernel.NewUUID(), "Alice", "+1-555-0101",
			"123 Main St", validLocation(t),
			[]customer.Channel{customer.ChannelSMS, customer.ChannelWhatsApp})
		require.NoError(t, err)

		channels := c.PreferredChannels()
		channels[0] = customer.ChannelPush

		assert.Equal(t, customer.ChannelSMS, c.PreferredChannels()[0])
	})
}

func TestCustomer_IsEqual(t *testing.T) {
	t.Run("should compare by identity", func(t *testing.T) {
		id := kernel.NewUUID()
		channels := []customer.Channel{customer.ChannelSMS}

		a, err := customer.NewCustomer(id, "Alice", "+1-555-0101", "123 Main St",
			validLocation(t), channels)
		require.NoError(t, err)
		b, err := customer.NewCustomer(id, "Bob", "+1-555-0102", "456 Oak Ave",
			validLocation(t), channels)
		require.NoError(t, err)

		assert.True(t, a.IsEqual(b))
		assert.False(t, a.IsEqual(nil))
	})
}

func TestCustomer_Validate(t *testing.T) {
	t.Run("zero value should be invalid", func(t *testing.T) {
		var c customer.Customer

		err := c.Validate()

		require.Error(t, err)
		assert.ErrorIs(t, err, customer.ErrCustomerIsNotConstructed)
	})

	t.Run("nil customer should be invalid", func(t *testing.T) {
		var c *customer.Customer

		err := c.Validate()

		require.Error(t, err)
	})
}
