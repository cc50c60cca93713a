package commands_test

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/validation"
	"fulfillment/internal/core/domain/model/warehouse"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateOrder(t *testing.T) {
	t.Run("should fail inventory check when demand exceeds available", func(t *testing.T) {
		// Given
		e := newEngine(t)
		e.stock("ACC-088", "Zone C-01", 500, 120)
		id := e.placeOrder(order.Normal, line{"ACC-088", 400})

		// When
		res, err := e.validate(id)

		// Then
		var failed *validation.ValidationFailedError
		require.ErrorAs(t, err, &failed)
		assert.Equal(t, validation.InventoryCheck, failed.Check)
		require.Len(t, failed.Reasons, 1)
		assert.Contains(t, failed.Reasons[0], "Need 400, Available 380")
		assert.Equal(t, order.Confirmed, res.Status)

		assert.Equal(t, 120, e.item("ACC-088").Allocated())
		assert.Equal(t, order.Confirmed, e.order(id).Status())
		assert.Zero(t, e.credit.calls)
	})

	t.Run("should reserve stock and release a picking task", func(t *testing.T) {
		// Given
		e := newEngine(t)
		e.stock("ELEC-001", "Zone A-12", 100, 0)
		id := e.placeOrder(order.High, line{"ELEC-001", 20})

		// When
		res, err := e.validate(id)

		// Then
		require.NoError(t, err)
		assert.True(t, res.Report.Passed())
		assert.Equal(t, order.WarehousePick, res.Status)
		assert.Equal(t, order.WarehousePick, e.order(id).Status())
		assert.Equal(t, 20, e.item("ELEC-001").Allocated())

		view := e.tasks("Zone")
		assert.Equal(t, 1, view.Pending)
		require.Len(t, view.Groups, 1)
		assert.Equal(t, "Zone A", view.Groups[0].Key)
		assert.Equal(t, "ELEC-001", view.Groups[0].Tasks[0].SKU)
		assert.Equal(t, "Zone A-12", view.Groups[0].Tasks[0].Location)

		events := e.publisher.For(id)
		require.Len(t, events, 1)
		assert.Equal(t, order.Confirmed, events[0].From)
		assert.Equal(t, order.WarehousePick, events[0].To)
	})

	t.Run("should be idempotent once the order is in picking", func(t *testing.T) {
		// Given
		e := newEngine(t)
		e.stock("ELEC-001", "Zone A-12", 100, 0)
		id := e.placeOrder(order.Normal, line{"ELEC-001", 5})
		_, err := e.validate(id)
		require.NoError(t, err)

		// When
		res, err := e.validate(id)

		// Then
		require.NoError(t, err)
		assert.True(t, res.AlreadyValidated)
		assert.Equal(t, 5, e.item("ELEC-001").Allocated())
		assert.Len(t, e.publisher.For(id), 1)
	})

	t.Run("should leave the order confirmed when a provider cannot decide", func(t *testing.T) {
		// Given
		e := newEngine(t)
		e.stock("ELEC-001", "Zone A-12", 100, 0)
		id := e.placeOrder(order.Normal, line{"ELEC-001", 5})
		e.credit.set(validation.Outcome{}, errors.New("credit bureau unreachable"))

		// When
		_, err := e.validate(id)

		// Then
		require.ErrorIs(t, err, validation.ErrIndeterminate)
		assert.Equal(t, order.Confirmed, e.order(id).Status())
		assert.Zero(t, e.item("ELEC-001").Allocated())

		// When the provider recovers
		e.credit.set(validation.Passed(), nil)
		res, err := e.validate(id)

		// Then
		require.NoError(t, err)
		assert.Equal(t, order.WarehousePick, res.Status)
	})

	t.Run("should reject validation of a shipped order", func(t *testing.T) {
		// Given
		e := newEngine(t)
		e.stock("ELEC-001", "Zone A-12", 100, 0)
		id := e.placeOrder(order.Normal, line{"ELEC-001", 1})
		_, err := e.validate(id)
		require.NoError(t, err)
		_, err = e.pick(e.taskIDs()[0], "Zone A-12", "ELEC-001")
		require.NoError(t, err)
		_, err = e.toggle(id, "ELEC-001")
		require.NoError(t, err)
		require.NoError(t, e.finalize(id))

		// When
		_, err = e.validate(id)

		// Then
		require.ErrorIs(t, err, order.ErrIllegalTransition)
	})

	t.Run("should report a conflict when an order names an unknown SKU", func(t *testing.T) {
		// Given
		e := newEngine(t)
		id := e.placeOrder(order.Normal, line{"GHOST-1", 1})

		// When
		_, err := e.validate(id)

		// Then
		var failed *validation.ValidationFailedError
		require.ErrorAs(t, err, &failed)
		assert.Equal(t, []string{"SKU not found: GHOST-1"}, failed.Reasons)
	})
}

func TestFulfillment_PickPackShip(t *testing.T) {
	// Given
	e := newEngine(t)
	e.stock("ELEC-001", "Zone A-12", 100, 0)
	e.stock("ACC-088", "Zone C-01", 50, 0)
	id := e.placeOrder(order.Critical, line{"ELEC-001", 2}, line{"ACC-088", 3})
	_, err := e.validate(id)
	require.NoError(t, err)

	ids := e.taskIDs()
	require.Len(t, ids, 2)

	// When only the first line is picked
	res, err := e.pick(ids[0], "Zone A-12", "ELEC-001")
	require.NoError(t, err)
	assert.False(t, res.PackEligible)

	// Then packing is not open and shipment is refused
	_, err = e.toggle(id, "ELEC-001")
	require.ErrorIs(t, err, commands.ErrNotPackEligible)

	err = e.finalize(id)
	var incomplete *warehouse.IncompletePackingError
	require.ErrorAs(t, err, &incomplete)
	assert.Equal(t, []int{1}, incomplete.UnpickedLines)

	// When the second line is picked and one SKU verified
	res, err = e.pick(ids[1], "Zone C-01", "ACC-088")
	require.NoError(t, err)
	assert.True(t, res.PackEligible)

	verified, err := e.toggle(id, "ELEC-001")
	require.NoError(t, err)
	assert.True(t, verified.Verified)
	assert.Equal(t, []string{"ACC-088"}, verified.MissingSKUs)

	// Then shipment still lists the unverified SKU
	err = e.finalize(id)
	require.ErrorAs(t, err, &incomplete)
	assert.Empty(t, incomplete.UnpickedLines)
	assert.Equal(t, []string{"ACC-088"}, incomplete.MissingSKUs)

	// When everything is verified
	_, err = e.toggle(id, "ACC-088")
	require.NoError(t, err)
	require.NoError(t, e.finalize(id))

	// Then stock leaves the building and tasks disappear
	assert.Equal(t, order.Shipped, e.order(id).Status())
	elec := e.item("ELEC-001")
	assert.Equal(t, 98, elec.OnHand())
	assert.Zero(t, elec.Allocated())
	acc := e.item("ACC-088")
	assert.Equal(t, 47, acc.OnHand())
	assert.Zero(t, acc.Allocated())
	assert.Empty(t, e.taskIDs())

	// When the order is invoiced twice
	invoice, err := commands.NewIssueInvoiceCommand(id)
	require.NoError(t, err)
	require.NoError(t, e.issueInvoice.Handle(t.Context(), invoice))
	require.NoError(t, e.issueInvoice.Handle(t.Context(), invoice))

	// Then the event stream walks the lifecycle once
	var steps []string
	for _, ev := range e.publisher.For(id) {
		steps = append(steps, ev.From.String()+"->"+ev.To.String())
	}
	assert.Equal(t, []string{
		"Confirmed->WarehousePick",
		"WarehousePick->Shipped",
		"Shipped->Invoiced",
	}, steps)

	// And finalizing again is a no-op
	require.NoError(t, e.finalize(id))
	assert.Equal(t, 98, e.item("ELEC-001").OnHand())
}

func TestFinalizeShipment_AfterReservationReleased(t *testing.T) {
	// Given a validated order whose reservation was handed back to the pool
	e := newEngine(t)
	e.stock("ELEC-001", "Zone A-12", 100, 0)
	id := e.placeOrder(order.Normal, line{"ELEC-001", 20})
	_, err := e.validate(id)
	require.NoError(t, err)
	release, err := commands.NewReleaseStockCommand("ELEC-001", 20)
	require.NoError(t, err)
	released, err := e.releaseStock.Handle(t.Context(), release)
	require.NoError(t, err)
	require.Equal(t, 20, released)

	e.pickAll()
	_, err = e.toggle(id, "ELEC-001")
	require.NoError(t, err)

	// When
	err = e.finalize(id)

	// Then the pack gate alone decides and the ledger stays consistent
	require.NoError(t, err)
	assert.Equal(t, order.Shipped, e.order(id).Status())
	item := e.item("ELEC-001")
	assert.Equal(t, 80, item.OnHand())
	assert.Zero(t, item.Allocated())
	assert.NoError(t, item.CheckInvariant())
}

func TestFinalizeShipment_EveryPartialVerificationFails(t *testing.T) {
	skus := []string{"A-1", "B-1", "C-1"}

	for mask := 0; mask < 1<<len(skus)-1; mask++ {
		t.Run(fmt.Sprintf("verified_mask_%03b", mask), func(t *testing.T) {
			// Given
			e := newEngine(t)
			var lines []line
			for i, sku := range skus {
				e.stock(sku, fmt.Sprintf("Zone %c-0%d", 'A'+i, i+1), 10, 0)
				lines = append(lines, line{sku, 1})
			}
			id := e.placeOrder(order.Normal, lines...)
			_, err := e.validate(id)
			require.NoError(t, err)
			e.pickAll()
			for i, sku := range skus {
				if mask&(1<<i) != 0 {
					_, err = e.toggle(id, sku)
					require.NoError(t, err)
				}
			}

			// When
			err = e.finalize(id)

			// Then
			require.ErrorIs(t, err, warehouse.ErrIncompletePacking)
			assert.Equal(t, order.WarehousePick, e.order(id).Status())
			for _, sku := range skus {
				assert.Equal(t, 10, e.item(sku).OnHand())
				assert.Equal(t, 1, e.item(sku).Allocated())
			}
		})
	}
}

func TestConfirmPick(t *testing.T) {
	t.Run("should leave state unchanged on a scan mismatch", func(t *testing.T) {
		// Given
		e := newEngine(t)
		e.stock("ELEC-001", "Zone A-12", 100, 0)
		id := e.placeOrder(order.Normal, line{"ELEC-001", 2})
		_, err := e.validate(id)
		require.NoError(t, err)
		taskID := e.taskIDs()[0]

		// When
		_, err = e.pick(taskID, "Zone B-01", "ELEC-001")

		// Then
		var mismatch *warehouse.MismatchError
		require.ErrorAs(t, err, &mismatch)
		assert.Equal(t, "Zone A-12", mismatch.ExpectedLocation)
		assert.Equal(t, []string{taskID}, e.taskIDs())
		_, err = e.toggle(id, "ELEC-001")
		assert.ErrorIs(t, err, commands.ErrNotPackEligible)
	})

	t.Run("should report a wrong SKU", func(t *testing.T) {
		// Given
		e := newEngine(t)
		e.stock("ELEC-001", "Zone A-12", 100, 0)
		id := e.placeOrder(order.Normal, line{"ELEC-001", 2})
		_, err := e.validate(id)
		require.NoError(t, err)

		// When
		_, err = e.pick(e.taskIDs()[0], "Zone A-12", "ELEC-002")

		// Then
		require.ErrorIs(t, err, warehouse.ErrMismatch)
	})

	t.Run("should be a no-op for an already picked task", func(t *testing.T) {
		// Given
		e := newEngine(t)
		e.stock("ELEC-001", "Zone A-12", 100, 0)
		id := e.placeOrder(order.Normal, line{"ELEC-001", 2})
		_, err := e.validate(id)
		require.NoError(t, err)
		taskID := e.taskIDs()[0]
		_, err = e.pick(taskID, "Zone A-12", "ELEC-001")
		require.NoError(t, err)

		// When
		res, err := e.pick(taskID, "Zone A-12", "ELEC-001")

		// Then
		require.NoError(t, err)
		assert.True(t, res.AlreadyPicked)
		assert.Equal(t, warehouse.Picked, res.Task.Status())
	})

	t.Run("should not find a task of an order that is not being picked", func(t *testing.T) {
		// Given
		e := newEngine(t)
		e.stock("ELEC-001", "Zone A-12", 100, 0)
		id := e.placeOrder(order.Normal, line{"ELEC-001", 2})

		// When
		_, err := e.pick(warehouse.LineRef{OrderID: id}.TaskID(), "Zone A-12", "ELEC-001")

		// Then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "taskId")
	})
}

func TestReceiveGoods(t *testing.T) {
	t.Run("should stock a pending batch and suggest the existing location", func(t *testing.T) {
		// Given
		e := newEngine(t)
		e.stock("ELEC-001", "Zone A-12", 100, 20)
		expiry := time.Date(2027, 6, 30, 0, 0, 0, 0, time.UTC)
		cmd, err := commands.NewReceiveGoodsCommand("ELEC-001", 50, "B-2026-01", "L-7", &expiry, "")
		require.NoError(t, err)

		// When
		res, err := e.receiveGoods.Handle(t.Context(), cmd)

		// Then
		require.NoError(t, err)
		item := e.item("ELEC-001")
		assert.Equal(t, 150, item.OnHand())
		assert.Equal(t, 20, item.Allocated())
		require.Len(t, item.Batches(), 1)
		batch := item.Batches()[0]
		assert.Equal(t, res.BatchID, batch.ID())
		assert.Equal(t, "B-2026-01", batch.BatchNumber())
		assert.Equal(t, inventory.PendingReview, batch.Compliance())
		assert.Equal(t, 50, batch.Quantity())

		tasks, err := e.putawayTasks.Handle(t.Context(), queries.NewGetPutawayTasksQuery())
		require.NoError(t, err)
		require.Len(t, tasks, 1)
		assert.Equal(t, res.PutawayTaskID.String(), tasks[0].ID)
		assert.Equal(t, "Zone A-12", tasks[0].Suggested)
		assert.Equal(t, 50, tasks[0].Quantity)
		assert.Equal(t, res.BatchID, tasks[0].ReceiptRef)

		// When the putaway is confirmed
		confirm, err := commands.NewConfirmPutawayCommand(res.PutawayTaskID)
		require.NoError(t, err)
		require.NoError(t, e.confirmPutaway.Handle(t.Context(), confirm))

		// Then it leaves the queue
		tasks, err = e.putawayTasks.Handle(t.Context(), queries.NewGetPutawayTasksQuery())
		require.NoError(t, err)
		assert.Empty(t, tasks)
	})

	t.Run("should reject an unknown SKU without side effects", func(t *testing.T) {
		// Given
		e := newEngine(t)
		cmd, err := commands.NewReceiveGoodsCommand("GHOST-1", 5, "", "", nil, "")
		require.NoError(t, err)

		// When
		_, err = e.receiveGoods.Handle(t.Context(), cmd)

		// Then
		require.ErrorIs(t, err, inventory.ErrUnknownSKU)
		tasks, err := e.putawayTasks.Handle(t.Context(), queries.NewGetPutawayTasksQuery())
		require.NoError(t, err)
		assert.Empty(t, tasks)
	})

	t.Run("should book receipts against a purchase order", func(t *testing.T) {
		// Given
		e := newEngine(t)
		e.stock("ELEC-001", "Zone A-12", 0, 0)
		create, err := commands.NewCreatePurchaseOrderCommand(kernel.NewUUID(), "PT Elektronik", time.Now().Add(48*time.Hour),
			[]commands.PurchaseOrderLineInput{{SKU: "ELEC-001", ExpectedQty: 40}})
		require.NoError(t, err)
		number, err := e.createPO.Handle(t.Context(), create)
		require.NoError(t, err)

		cmd, err := commands.NewReceiveGoodsCommand("ELEC-001", 15, "", "", nil, number)
		require.NoError(t, err)

		// When
		_, err = e.receiveGoods.Handle(t.Context(), cmd)

		// Then
		require.NoError(t, err)
		po, err := e.factory.Create().PurchaseOrderRepository().GetByNumber(t.Context(), number)
		require.NoError(t, err)
		assert.Equal(t, 15, po.Lines()[0].ReceivedQty)

		tasks, err := e.putawayTasks.Handle(t.Context(), queries.NewGetPutawayTasksQuery())
		require.NoError(t, err)
		require.Len(t, tasks, 1)
		assert.Equal(t, number, tasks[0].ReceiptRef)
	})
}

func TestStockMaintenance(t *testing.T) {
	t.Run("should release at most what is allocated", func(t *testing.T) {
		// Given
		e := newEngine(t)
		e.stock("ELEC-001", "Zone A-12", 100, 30)
		cmd, err := commands.NewReleaseStockCommand("ELEC-001", 50)
		require.NoError(t, err)

		// When
		released, err := e.releaseStock.Handle(t.Context(), cmd)

		// Then
		require.NoError(t, err)
		assert.Equal(t, 30, released)
		assert.Zero(t, e.item("ELEC-001").Allocated())
	})

	t.Run("should refuse to register a SKU twice", func(t *testing.T) {
		// Given
		e := newEngine(t)
		e.stock("ELEC-001", "Zone A-12", 100, 0)
		cmd, err := commands.NewRegisterStockItemCommand("ELEC-001", "Again", e.item("ELEC-001").Location(), 1,
			e.item("ELEC-001").UnitPrice(), 1)
		require.NoError(t, err)

		// When
		err = e.registerItem.Handle(t.Context(), cmd)

		// Then
		require.ErrorIs(t, err, commands.ErrStockItemAlreadyExists)
		assert.Equal(t, 100, e.item("ELEC-001").OnHand())
	})

	t.Run("should record a compliance decision on a batch", func(t *testing.T) {
		// Given
		e := newEngine(t)
		e.stock("ELEC-001", "Zone A-12", 0, 0)
		receive, err := commands.NewReceiveGoodsCommand("ELEC-001", 5, "", "", nil, "")
		require.NoError(t, err)
		res, err := e.receiveGoods.Handle(t.Context(), receive)
		require.NoError(t, err)
		cmd, err := commands.NewUpdateBatchComplianceCommand("ELEC-001", res.BatchID, inventory.Compliant)
		require.NoError(t, err)

		// When
		err = e.batchCompliance.Handle(t.Context(), cmd)

		// Then
		require.NoError(t, err)
		assert.Equal(t, inventory.Compliant, e.item("ELEC-001").Batches()[0].Compliance())
	})
}

func TestConcurrency(t *testing.T) {
	t.Run("should let exactly one validation of the same order win", func(t *testing.T) {
		// Given
		e := newEngine(t)
		e.stock("ELEC-001", "Zone A-12", 100, 0)
		id := e.placeOrder(order.Normal, line{"ELEC-001", 10})
		cmd, err := commands.NewValidateOrderCommand(id)
		require.NoError(t, err)

		// When
		const n = 16
		var wg sync.WaitGroup
		results := make([]error, n)
		validated := make([]bool, n)
		for i := range n {
			wg.Add(1)
			go func() {
				defer wg.Done()
				res, err := e.validateOrder.Handle(t.Context(), cmd)
				results[i] = err
				validated[i] = err == nil && !res.AlreadyValidated
			}()
		}
		wg.Wait()

		// Then
		winners := 0
		for i, err := range results {
			if validated[i] {
				winners++
				continue
			}
			if err != nil {
				assert.ErrorIs(t, err, commands.ErrAlreadyTransitioning)
			}
		}
		assert.Equal(t, 1, winners)
		assert.Equal(t, 10, e.item("ELEC-001").Allocated())
		assert.Len(t, e.publisher.For(id), 1)
	})

	t.Run("should let one validation win across processes sharing a store", func(t *testing.T) {
		// Given handlers that share the store but not their in-process locks
		e := newEngine(t)
		e.stock("ELEC-001", "Zone A-12", 100, 0)
		id := e.placeOrder(order.Normal, line{"ELEC-001", 10})
		cmd, err := commands.NewValidateOrderCommand(id)
		require.NoError(t, err)

		uows := uowFactoryFunc(func() commands.UoW { return e.factory.Create() })
		pipeline := services.NewValidationPipeline(time.Second, services.StandardChecks(e.credit, e.compliance))

		// When
		const n = 8
		var wg sync.WaitGroup
		validated := make([]bool, n)
		results := make([]error, n)
		for i := range n {
			handler := commands.NewValidateOrderCommandHandler(uows, pipeline, commands.NewLocks(), ports.NopMetrics{})
			wg.Add(1)
			go func() {
				defer wg.Done()
				res, err := handler.Handle(t.Context(), cmd)
				results[i] = err
				validated[i] = err == nil && !res.AlreadyValidated
			}()
		}
		wg.Wait()

		// Then
		winners := 0
		for i, err := range results {
			if validated[i] {
				winners++
				continue
			}
			if err != nil {
				assert.ErrorIs(t, err, commands.ErrAlreadyTransitioning)
			}
		}
		assert.Equal(t, 1, winners)
		assert.Equal(t, 10, e.item("ELEC-001").Allocated())
		assert.Len(t, e.publisher.For(id), 1)
	})

	t.Run("should never over-allocate across competing orders", func(t *testing.T) {
		// Given
		e := newEngine(t)
		e.stock("ACC-088", "Zone C-01", 55, 0)
		const n = 12
		cmds := make([]commands.ValidateOrderCommand, 0, n)
		for range n {
			id := e.placeOrder(order.Normal, line{"ACC-088", 10})
			cmd, err := commands.NewValidateOrderCommand(id)
			require.NoError(t, err)
			cmds = append(cmds, cmd)
		}

		// When
		var wg sync.WaitGroup
		errs := make([]error, n)
		for i, cmd := range cmds {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, errs[i] = e.validateOrder.Handle(t.Context(), cmd)
			}()
		}
		wg.Wait()

		// Then
		succeeded := 0
		for _, err := range errs {
			if err == nil {
				succeeded++
				continue
			}
			if !errors.Is(err, inventory.ErrReservationConflict) {
				assert.ErrorIs(t, err, validation.ErrValidationFailed)
			}
		}
		assert.Equal(t, 5, succeeded)
		item := e.item("ACC-088")
		assert.Equal(t, 50, item.Allocated())
		assert.NoError(t, item.CheckInvariant())
	})

	t.Run("should apply concurrent confirmations of one task once", func(t *testing.T) {
		// Given
		e := newEngine(t)
		e.stock("ELEC-001", "Zone A-12", 100, 0)
		id := e.placeOrder(order.Normal, line{"ELEC-001", 2})
		_, err := e.validate(id)
		require.NoError(t, err)
		cmd, err := commands.NewConfirmPickCommand(e.taskIDs()[0], "Zone A-12", "ELEC-001")
		require.NoError(t, err)

		// When
		const n = 8
		var wg sync.WaitGroup
		fresh := make([]bool, n)
		errs := make([]error, n)
		for i := range n {
			wg.Add(1)
			go func() {
				defer wg.Done()
				res, err := e.confirmPick.Handle(t.Context(), cmd)
				errs[i] = err
				fresh[i] = err == nil && !res.AlreadyPicked
			}()
		}
		wg.Wait()

		// Then
		writes := 0
		for i := range n {
			assert.NoError(t, errs[i])
			if fresh[i] {
				writes++
			}
		}
		assert.Equal(t, 1, writes)
		assert.Empty(t, e.taskIDs())
	})

	t.Run("should serialize packing toggles of one order", func(t *testing.T) {
		// Given
		e := newEngine(t)
		e.stock("ELEC-001", "Zone A-12", 100, 0)
		id := e.placeOrder(order.Normal, line{"ELEC-001", 2})
		_, err := e.validate(id)
		require.NoError(t, err)
		_, err = e.pick(e.taskIDs()[0], "Zone A-12", "ELEC-001")
		require.NoError(t, err)
		cmd, err := commands.NewTogglePackItemCommand(id, "ELEC-001")
		require.NoError(t, err)

		// When an even number of toggles race
		const n = 10
		var wg sync.WaitGroup
		for range n {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, _ = e.togglePackItem.Handle(t.Context(), cmd)
			}()
		}
		wg.Wait()

		// Then none is lost
		ready, err := e.packingReady.Handle(t.Context(), queries.NewGetPackingReadyOrdersQuery())
		require.NoError(t, err)
		require.Len(t, ready, 1)
		assert.Empty(t, ready[0].VerifiedSKUs)
		assert.False(t, ready[0].Complete)
	})
}
