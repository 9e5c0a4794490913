package workshop

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WorkOrderRepository defines persistence operations for work orders
type WorkOrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*WorkOrder, error)
	FindByOrderNumber(ctx context.Context, orderNumber string) (*WorkOrder, error)
	FindAll(ctx context.Context) ([]WorkOrder, error)
	Save(ctx context.Context, wo *WorkOrder) error
	// SaveWithLock persists the work order guarded by its version column and
	// fails with a concurrency conflict when the row moved underneath us.
	SaveWithLock(ctx context.Context, wo *WorkOrder) error
	Delete(ctx context.Context, id uuid.UUID) error
	// SumPendingOutstanding totals the open balance of unpromoted pending work
	// orders. Promoted orders (record_kind = CURRENT_ACCOUNT) are excluded so
	// a debt tracked on the current account side is never counted twice.
	SumPendingOutstanding(ctx context.Context) (decimal.Decimal, error)
	CountByKind(ctx context.Context, kind RecordKind) (int64, error)
}
