package ledger

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/garage-erp/backend/internal/domain/ledger"
	"github.com/garage-erp/backend/internal/domain/shared"
	"github.com/garage-erp/backend/internal/domain/workshop"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newWorkOrderService(store *fakeStore) *WorkOrderService {
	return NewWorkOrderService(&fakeTxManager{store: store}, zap.NewNop())
}

func TestWorkOrderService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("derives the total from line items", func(t *testing.T) {
		store := newFakeStore()
		svc := newWorkOrderService(store)

		wo, err := svc.Create(ctx, CreateWorkOrderRequest{
			CustomerName: "Deniz Kaya",
			VehiclePlate: "34 ABC 123",
			VehicleMake:  "Renault",
			VehicleModel: "Clio",
			Items: []LineItemInput{
				{Kind: workshop.LineItemKindPart, Description: "Brake pads", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.RequireFromString("150")},
				{Kind: workshop.LineItemKindLabor, Description: "Brake service", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.RequireFromString("200")},
			},
		})
		require.NoError(t, err)

		assert.Equal(t, fmt.Sprintf("WO-%d-00001", time.Now().Year()), wo.OrderNumber)
		assert.True(t, wo.TotalAmount.Equal(decimal.RequireFromString("500")))
		assert.Equal(t, workshop.PaymentStatusPending, wo.PaymentStatus)
		assert.Equal(t, workshop.RecordKindWorkOrder, wo.RecordKind)
		assert.Equal(t, "Renault", wo.VehicleMake)
		assert.Contains(t, store.workOrders, wo.ID)
	})

	t.Run("explicit total overrides the line item sum", func(t *testing.T) {
		store := newFakeStore()
		svc := newWorkOrderService(store)

		negotiated := decimal.RequireFromString("450")
		wo, err := svc.Create(ctx, CreateWorkOrderRequest{
			CustomerName: "Deniz Kaya",
			VehiclePlate: "34 ABC 123",
			Items: []LineItemInput{
				{Kind: workshop.LineItemKindPart, Description: "Brake pads", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.RequireFromString("150")},
				{Kind: workshop.LineItemKindLabor, Description: "Brake service", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.RequireFromString("200")},
			},
			ExplicitTotal: &negotiated,
		})
		require.NoError(t, err)
		assert.True(t, wo.TotalAmount.Equal(negotiated))
	})

	t.Run("order numbers advance per creation", func(t *testing.T) {
		store := newFakeStore()
		svc := newWorkOrderService(store)

		total := decimal.RequireFromString("100")
		first, err := svc.Create(ctx, CreateWorkOrderRequest{CustomerName: "A", VehiclePlate: "34 A 1", ExplicitTotal: &total})
		require.NoError(t, err)
		second, err := svc.Create(ctx, CreateWorkOrderRequest{CustomerName: "B", VehiclePlate: "34 B 2", ExplicitTotal: &total})
		require.NoError(t, err)

		year := time.Now().Year()
		assert.Equal(t, fmt.Sprintf("WO-%d-00001", year), first.OrderNumber)
		assert.Equal(t, fmt.Sprintf("WO-%d-00002", year), second.OrderNumber)
	})

	t.Run("invalid line item rejects the whole request", func(t *testing.T) {
		store := newFakeStore()
		svc := newWorkOrderService(store)

		_, err := svc.Create(ctx, CreateWorkOrderRequest{
			CustomerName: "Deniz Kaya",
			VehiclePlate: "34 ABC 123",
			Items: []LineItemInput{
				{Kind: "FEE", Description: "Unknown kind", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.RequireFromString("10")},
			},
		})
		assert.Error(t, err)
		assert.Empty(t, store.workOrders)
	})
}

func TestWorkOrderService_UpdateLineItems(t *testing.T) {
	ctx := context.Background()

	t.Run("recomputes the total from the new items", func(t *testing.T) {
		store := newFakeStore()
		wo := seedWorkOrder(t, store, "1000")
		svc := newWorkOrderService(store)

		updated, err := svc.UpdateLineItems(ctx, wo.ID, []LineItemInput{
			{Kind: workshop.LineItemKindPart, Description: "Alternator", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.RequireFromString("750")},
		}, nil)
		require.NoError(t, err)
		assert.True(t, updated.TotalAmount.Equal(decimal.RequireFromString("750")))
	})

	t.Run("explicit total still wins on update", func(t *testing.T) {
		store := newFakeStore()
		wo := seedWorkOrder(t, store, "1000")
		svc := newWorkOrderService(store)

		negotiated := decimal.RequireFromString("700")
		updated, err := svc.UpdateLineItems(ctx, wo.ID, []LineItemInput{
			{Kind: workshop.LineItemKindPart, Description: "Alternator", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.RequireFromString("750")},
		}, &negotiated)
		require.NoError(t, err)
		assert.True(t, updated.TotalAmount.Equal(negotiated))
	})

	t.Run("unknown work order", func(t *testing.T) {
		store := newFakeStore()
		svc := newWorkOrderService(store)

		_, err := svc.UpdateLineItems(ctx, uuid.New(), nil, nil)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestWorkOrderService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("detaches payments instead of dropping them", func(t *testing.T) {
		store := newFakeStore()
		wo := seedWorkOrder(t, store, "500")
		seedPayment(t, store, ledger.TargetWorkOrder, wo.ID, "200")
		svc := newWorkOrderService(store)

		require.NoError(t, svc.Delete(ctx, wo.ID))

		assert.NotContains(t, store.workOrders, wo.ID)
		require.Len(t, store.payments, 1)
		assert.Nil(t, store.payments[0].WorkOrderID)
	})

	t.Run("unknown work order", func(t *testing.T) {
		store := newFakeStore()
		svc := newWorkOrderService(store)
		assert.ErrorIs(t, svc.Delete(ctx, uuid.New()), shared.ErrNotFound)
	})
}
