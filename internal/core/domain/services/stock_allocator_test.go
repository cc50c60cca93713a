package services_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStockAllocator_Allocate(t *testing.T) {
	t.Run("reserves every line", func(t *testing.T) {
		// Given
		o := newOrder(t, "SO-1", order.Normal, lineSpec{"ELEC-001", 20}, lineSpec{"ACC-088", 5})
		stock := stockOf(item("ELEC-001", 150, 0), item("ACC-088", 500, 120))

		// When
		err := services.NewStockAllocator().Allocate(o, stock)

		// Then
		require.NoError(t, err)
		assert.Equal(t, 20, stock["ELEC-001"].Allocated())
		assert.Equal(t, 125, stock["ACC-088"].Allocated())
	})

	t.Run("rolls back earlier lines when a later line is short", func(t *testing.T) {
		// Given
		o := newOrder(t, "SO-2", order.Normal, lineSpec{"ELEC-001", 20}, lineSpec{"ACC-088", 400})
		stock := stockOf(item("ELEC-001", 150, 0), item("ACC-088", 500, 120))

		// When
		err := services.NewStockAllocator().Allocate(o, stock)

		// Then
		var conflict *inventory.ReservationConflictError
		require.ErrorAs(t, err, &conflict)
		assert.ErrorIs(t, err, inventory.ErrReservationConflict)
		assert.ErrorIs(t, err, inventory.ErrInsufficientStock)
		assert.Equal(t, "ACC-088", conflict.SKU)
		assert.Equal(t, 0, stock["ELEC-001"].Allocated(), "compensated")
		assert.Equal(t, 120, stock["ACC-088"].Allocated())
	})

	t.Run("unknown sku aborts", func(t *testing.T) {
		o := newOrder(t, "SO-3", order.Normal, lineSpec{"ELEC-001", 1}, lineSpec{"GONE-1", 1})
		stock := stockOf(item("ELEC-001", 10, 0))

		err := services.NewStockAllocator().Allocate(o, stock)

		assert.ErrorIs(t, err, inventory.ErrReservationConflict)
		assert.ErrorIs(t, err, inventory.ErrUnknownSKU)
		assert.Equal(t, 0, stock["ELEC-001"].Allocated())
	})
}

func TestStockAllocator_Consume(t *testing.T) {
	o := newOrder(t, "SO-4", order.Normal, lineSpec{"ELEC-001", 20})
	stock := stockOf(item("ELEC-001", 150, 20))

	require.NoError(t, services.NewStockAllocator().Consume(o, stock))

	assert.Equal(t, 130, stock["ELEC-001"].OnHand())
	assert.Equal(t, 0, stock["ELEC-001"].Allocated())

	assert.ErrorIs(t, services.NewStockAllocator().Consume(o, stockOf(item("ELEC-001", 19, 0))), inventory.ErrInvariantViolation)
	assert.ErrorIs(t, services.NewStockAllocator().Consume(o, stockOf()), inventory.ErrUnknownSKU)
}
