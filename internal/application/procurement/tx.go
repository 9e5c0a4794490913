package procurement

import (
	"context"

	"github.com/garage-erp/backend/internal/domain/ledger"
	"github.com/garage-erp/backend/internal/domain/procurement"
)

// Repos bundles the repositories one supplier-side transaction touches
type Repos struct {
	Suppliers        procurement.SupplierRepository
	Purchases        procurement.PurchaseRepository
	SupplierPayments procurement.SupplierPaymentRepository
	Stock            procurement.StockItemRepository
	Expenses         procurement.ExpenseRepository
	Sequences        ledger.SequenceRepository
}

// TxManager runs a function inside one atomic store transaction
type TxManager interface {
	Do(ctx context.Context, fn func(r Repos) error) error
}
