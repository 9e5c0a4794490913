package persistence

import (
	"context"

	appledger "github.com/garage-erp/backend/internal/application/ledger"
	appprocurement "github.com/garage-erp/backend/internal/application/procurement"
	"gorm.io/gorm"
)

// LedgerTxManager runs ledger use cases inside one database transaction.
// Each closure invocation gets repositories bound to the transaction handle,
// so a failed settlement cascade rolls back the payment row with it.
type LedgerTxManager struct {
	db *gorm.DB
}

// NewLedgerTxManager creates a new LedgerTxManager
func NewLedgerTxManager(db *gorm.DB) *LedgerTxManager {
	return &LedgerTxManager{db: db}
}

// Do implements the ledger TxManager interface
func (m *LedgerTxManager) Do(ctx context.Context, fn func(r appledger.Repos) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(appledger.Repos{
			WorkOrders: NewGormWorkOrderRepository(tx),
			Entries:    NewGormAccountEntryRepository(tx),
			Payments:   NewGormPaymentRepository(tx),
			Sequences:  NewGormSequenceRepository(tx),
		})
	})
}

// ProcurementTxManager runs supplier-side use cases inside one database
// transaction.
type ProcurementTxManager struct {
	db *gorm.DB
}

// NewProcurementTxManager creates a new ProcurementTxManager
func NewProcurementTxManager(db *gorm.DB) *ProcurementTxManager {
	return &ProcurementTxManager{db: db}
}

// Do implements the procurement TxManager interface
func (m *ProcurementTxManager) Do(ctx context.Context, fn func(r appprocurement.Repos) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(appprocurement.Repos{
			Suppliers:        NewGormSupplierRepository(tx),
			Purchases:        NewGormPurchaseRepository(tx),
			SupplierPayments: NewGormSupplierPaymentRepository(tx),
			Stock:            NewGormStockItemRepository(tx),
			Expenses:         NewGormExpenseRepository(tx),
			Sequences:        NewGormSequenceRepository(tx),
		})
	})
}

// Ensure the managers satisfy the application interfaces
var (
	_ appledger.TxManager      = (*LedgerTxManager)(nil)
	_ appprocurement.TxManager = (*ProcurementTxManager)(nil)
)
