package procurement

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SupplierRepository defines persistence operations for suppliers
type SupplierRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Supplier, error)
	Save(ctx context.Context, s *Supplier) error
	SaveWithLock(ctx context.Context, s *Supplier) error
	Delete(ctx context.Context, id uuid.UUID) error
	SumOutstanding(ctx context.Context) (decimal.Decimal, error)
}

// PurchaseRepository defines persistence operations for supplier purchases
type PurchaseRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Purchase, error)
	FindBySupplierID(ctx context.Context, supplierID uuid.UUID) ([]Purchase, error)
	Create(ctx context.Context, p *Purchase) error
	Delete(ctx context.Context, id uuid.UUID) error
	SumTotalBySupplierID(ctx context.Context, supplierID uuid.UUID) (decimal.Decimal, error)
}

// SupplierPaymentRepository defines persistence operations for the immutable
// supplier payment trail
type SupplierPaymentRepository interface {
	Create(ctx context.Context, p *SupplierPayment) error
	FindBySupplierID(ctx context.Context, supplierID uuid.UUID) ([]SupplierPayment, error)
	SumBySupplierID(ctx context.Context, supplierID uuid.UUID) (decimal.Decimal, error)
}

// StockItemRepository defines the upsert used by purchase recording
type StockItemRepository interface {
	FindByNameAndSupplier(ctx context.Context, name string, supplierID uuid.UUID) (*StockItem, error)
	Save(ctx context.Context, item *StockItem) error
}

// ExpenseRepository defines persistence operations for expenses
type ExpenseRepository interface {
	Create(ctx context.Context, e *Expense) error
	FindByID(ctx context.Context, id uuid.UUID) (*Expense, error)
}
