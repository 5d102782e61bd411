package order_test

import (
	"testing"

	"shelf2door/internal/core/domain/model/order"
	"shelf2door/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLineItem(t *testing.T) {
	t.Run("should create item with valid parameters", func(t *testing.T) {
		price := decimal.RequireFromString("4.99")

		item, err := order.NewLineItem("Organic Milk 1L", price, 2)

		require.NoError(t, err)
		assert.Equal(t, "Organic Milk 1L", item.ProductName())
		assert.True(t, item.UnitPrice().Equal(price))
		assert.Equal(t, 2, item.Quantity())
		assert.NoError(t, item.Validate())
	})

	t.Run("should fail with empty product name", func(t *testing.T) {
		_, err := order.NewLineItem("", decimal.RequireFromString("4.99"), 1)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should fail with zero price", func(t *testing.T) {
		_, err := order.NewLineItem("Milk", decimal.Zero, 1)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should fail with negative price", func(t *testing.T) {
		_, err := order.NewLineItem("Milk", decimal.RequireFromString("-1.50"), 1)

		require.Error(t, err)
	})

	t.Run("should fail with zero quantity", func(t *testing.T) {
		_, err := order.NewLineItem("Milk", decimal.RequireFromString("4.99"), 0)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestLineItem_Subtotal(t *testing.T) {
	t.Run("should multiply price by quantity exactly", func(t *testing.T) {
		item, err := order.NewLineItem("Milk", decimal.RequireFromString("4.99"), 2)
		require.NoError(t, err)

		assert.True(t, item.Subtotal().Equal(decimal.RequireFromString("9.98")),
			"got %s", item.Subtotal())
	})
}

func TestLineItem_Validate(t *testing.T) {
	t.Run("zero value should be invalid", func(t *testing.T) {
		var item order.LineItem

		err := item.Validate()

		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrLineItemIsNotConstructed)
	})
}
