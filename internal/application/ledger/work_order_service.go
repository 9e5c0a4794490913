package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/garage-erp/backend/internal/domain/workshop"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// WorkOrderService covers the insert/update/delete primitives the ledger
// operations build on.
type WorkOrderService struct {
	tx     TxManager
	logger *zap.Logger
}

// NewWorkOrderService creates a new WorkOrderService
func NewWorkOrderService(tx TxManager, logger *zap.Logger) *WorkOrderService {
	return &WorkOrderService{tx: tx, logger: logger}
}

// LineItemInput is one requested line item
type LineItemInput struct {
	Kind        workshop.LineItemKind
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
}

// CreateWorkOrderRequest carries a work order creation
type CreateWorkOrderRequest struct {
	CustomerID   *uuid.UUID
	CustomerName string
	VehiclePlate string
	VehicleMake  string
	VehicleModel string
	Items        []LineItemInput
	// ExplicitTotal, when set, overrides the line item sum verbatim.
	ExplicitTotal *decimal.Decimal
	Remark        string
}

// Create inserts a new work order with a generated order number
func (s *WorkOrderService) Create(ctx context.Context, req CreateWorkOrderRequest) (*workshop.WorkOrder, error) {
	items, err := buildLineItems(req.Items)
	if err != nil {
		return nil, err
	}

	var wo *workshop.WorkOrder
	err = s.tx.Do(ctx, func(r Repos) error {
		seq, err := r.Sequences.Next(ctx, "WO", time.Now().Year())
		if err != nil {
			return fmt.Errorf("failed to generate order number: %w", err)
		}
		orderNumber := fmt.Sprintf("WO-%d-%05d", time.Now().Year(), seq)

		wo, err = workshop.NewWorkOrder(orderNumber, req.CustomerID, req.CustomerName, req.VehiclePlate, items, req.ExplicitTotal)
		if err != nil {
			return err
		}
		wo.VehicleMake = req.VehicleMake
		wo.VehicleModel = req.VehicleModel
		wo.Remark = req.Remark
		if err := r.WorkOrders.Save(ctx, wo); err != nil {
			return fmt.Errorf("failed to save work order: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("work order created",
		zap.String("work_order_id", wo.ID.String()),
		zap.String("order_number", wo.OrderNumber),
		zap.String("total", wo.TotalAmount.String()),
	)
	return wo, nil
}

// UpdateLineItems replaces the full line item set, honoring the same
// explicit-total precedence as creation. Recomputing from line items while
// ignoring an explicit override is a reconciliation bug, not a shortcut.
func (s *WorkOrderService) UpdateLineItems(ctx context.Context, workOrderID uuid.UUID, inputs []LineItemInput, explicitTotal *decimal.Decimal) (*workshop.WorkOrder, error) {
	items, err := buildLineItems(inputs)
	if err != nil {
		return nil, err
	}

	var wo *workshop.WorkOrder
	err = s.tx.Do(ctx, func(r Repos) error {
		wo, err = r.WorkOrders.FindByID(ctx, workOrderID)
		if err != nil {
			return err
		}
		if err := wo.ReplaceLineItems(items, explicitTotal); err != nil {
			return err
		}
		if err := r.WorkOrders.SaveWithLock(ctx, wo); err != nil {
			return fmt.Errorf("failed to save work order: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return wo, nil
}

// Delete removes a work order. Its payments are detached, never dropped, so
// historical totals survive the removal.
func (s *WorkOrderService) Delete(ctx context.Context, workOrderID uuid.UUID) error {
	return s.tx.Do(ctx, func(r Repos) error {
		if _, err := r.WorkOrders.FindByID(ctx, workOrderID); err != nil {
			return err
		}
		if err := r.Payments.DetachFromWorkOrder(ctx, workOrderID); err != nil {
			return fmt.Errorf("failed to detach payments: %w", err)
		}
		if err := r.WorkOrders.Delete(ctx, workOrderID); err != nil {
			return fmt.Errorf("failed to delete work order: %w", err)
		}
		return nil
	})
}

func buildLineItems(inputs []LineItemInput) ([]workshop.LineItem, error) {
	items := make([]workshop.LineItem, 0, len(inputs))
	for _, in := range inputs {
		item, err := workshop.NewLineItem(in.Kind, in.Description, in.Quantity, in.UnitPrice)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}
