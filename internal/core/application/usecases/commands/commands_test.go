package commands_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/warehouse"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommands_Validate_WhenNotConstructed_ShouldReturnSentinel(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"create_order", commands.CreateOrderCommand{}.Validate(), commands.ErrCreateOrderCommandIsNotConstructed},
		{"validate_order", commands.ValidateOrderCommand{}.Validate(), commands.ErrValidateOrderCommandIsNotConstructed},
		{"receive_goods", commands.ReceiveGoodsCommand{}.Validate(), commands.ErrReceiveGoodsCommandIsNotConstructed},
		{"confirm_putaway", commands.ConfirmPutawayCommand{}.Validate(), commands.ErrConfirmPutawayCommandIsNotConstructed},
		{"confirm_pick", commands.ConfirmPickCommand{}.Validate(), commands.ErrConfirmPickCommandIsNotConstructed},
		{"toggle_pack_item", commands.TogglePackItemCommand{}.Validate(), commands.ErrTogglePackItemCommandIsNotConstructed},
		{"finalize_shipment", commands.FinalizeShipmentCommand{}.Validate(), commands.ErrFinalizeShipmentCommandIsNotConstructed},
		{"issue_invoice", commands.IssueInvoiceCommand{}.Validate(), commands.ErrIssueInvoiceCommandIsNotConstructed},
		{"release_stock", commands.ReleaseStockCommand{}.Validate(), commands.ErrReleaseStockCommandIsNotConstructed},
		{"update_batch_compliance", commands.UpdateBatchComplianceCommand{}.Validate(), commands.ErrUpdateBatchComplianceCommandIsNotConstructed},
		{"register_stock_item", commands.RegisterStockItemCommand{}.Validate(), commands.ErrRegisterStockItemCommandIsNotConstructed},
		{"create_purchase_order", commands.CreatePurchaseOrderCommand{}.Validate(), commands.ErrCreatePurchaseOrderCommandIsNotConstructed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err)
		})
	}
}

func TestNewCreateOrderCommand(t *testing.T) {
	valid := []commands.OrderLineInput{{SKU: "ELEC-001", Quantity: 1}}

	t.Run("should keep trimmed values", func(t *testing.T) {
		id := kernel.NewUUID()
		cmd, err := commands.NewCreateOrderCommand(id, "  PT Sentosa ", order.High, " Jakarta ", valid)
		require.NoError(t, err)
		assert.Equal(t, id, cmd.OrderID())
		assert.Equal(t, "PT Sentosa", cmd.Customer())
		assert.Equal(t, "Jakarta", cmd.ShippingAddress())
		assert.Equal(t, order.High, cmd.Priority())
		assert.Equal(t, valid, cmd.Lines())
	})

	t.Run("should reject a zero order id", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(kernel.UUID{}, "PT Sentosa", order.High, "Jakarta", valid)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject an unknown priority", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(kernel.NewUUID(), "PT Sentosa", order.PriorityUnknown, "Jakarta", valid)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject missing lines", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(kernel.NewUUID(), "PT Sentosa", order.Normal, "Jakarta", nil)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject a non positive quantity", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(kernel.NewUUID(), "PT Sentosa", order.Normal, "Jakarta",
			[]commands.OrderLineInput{{SKU: "ELEC-001", Quantity: 0}})
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "lines[0].quantity")
	})

	t.Run("should report every missing field", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(kernel.NewUUID(), " ", order.Normal, "", valid)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "customer")
		assert.Contains(t, err.Error(), "shipping address")
	})
}

func TestNewReceiveGoodsCommand(t *testing.T) {
	t.Run("should copy the expiry", func(t *testing.T) {
		expiry := time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)
		cmd, err := commands.NewReceiveGoodsCommand(" ELEC-001 ", 50, " B-1 ", "", &expiry, " PO-7 ")
		require.NoError(t, err)

		expiry = expiry.Add(time.Hour)

		assert.Equal(t, "ELEC-001", cmd.SKU())
		assert.Equal(t, "B-1", cmd.BatchNumber())
		assert.Equal(t, "PO-7", cmd.PurchaseOrderNumber())
		require.NotNil(t, cmd.Expiry())
		assert.Equal(t, 0, cmd.Expiry().Hour())
	})

	t.Run("should reject an empty sku and a zero quantity together", func(t *testing.T) {
		_, err := commands.NewReceiveGoodsCommand("", 0, "", "", nil, "")
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestNewConfirmPickCommand(t *testing.T) {
	id := kernel.NewUUID()
	ref := warehouse.LineRef{OrderID: id, LineIndex: 2}

	t.Run("should parse the task id", func(t *testing.T) {
		cmd, err := commands.NewConfirmPickCommand(ref.TaskID(), " Zone A-12 ", "ELEC-001\n")
		require.NoError(t, err)
		assert.Equal(t, ref, cmd.Ref())
		assert.Equal(t, "Zone A-12", cmd.ScannedLocation())
		assert.Equal(t, "ELEC-001", cmd.ScannedSKU())
	})

	t.Run("should reject a malformed task id", func(t *testing.T) {
		_, err := commands.NewConfirmPickCommand("not-a-task", "Zone A-12", "ELEC-001")
		assert.Error(t, err)
	})
}

func TestNewReleaseStockCommand(t *testing.T) {
	_, err := commands.NewReleaseStockCommand("ELEC-001", -1)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)

	cmd, err := commands.NewReleaseStockCommand(" ELEC-001 ", 3)
	require.NoError(t, err)
	assert.Equal(t, "ELEC-001", cmd.SKU())
}

func TestNewTogglePackItemCommand(t *testing.T) {
	_, err := commands.NewTogglePackItemCommand(kernel.NewUUID(), " ")
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = commands.NewTogglePackItemCommand(kernel.UUID{}, "ELEC-001")
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestNewUpdateBatchComplianceCommand(t *testing.T) {
	_, err := commands.NewUpdateBatchComplianceCommand("ELEC-001", "", inventory.Compliant)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestNewCreatePurchaseOrderCommand(t *testing.T) {
	_, err := commands.NewCreatePurchaseOrderCommand(kernel.NewUUID(), "PT Elektronik", time.Now(),
		[]commands.PurchaseOrderLineInput{{SKU: "ELEC-001", ExpectedQty: 0}})
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Contains(t, err.Error(), "lines[0].expectedQty")

	_, err = commands.NewCreatePurchaseOrderCommand(kernel.NewUUID(), "", time.Now(), nil)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}
