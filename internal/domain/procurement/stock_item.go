package procurement

import (
	"time"

	"github.com/garage-erp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockItem tracks the on-hand quantity of one purchased part per supplier.
// Purchases merge into an existing row by (name, supplier) or insert a new
// one. Downstream reporting reads these rows, so the upsert must not be
// skipped even though stock bookkeeping has no reconciliation invariant of
// its own.
type StockItem struct {
	shared.BaseEntity
	Name          string          `json:"name"`
	SupplierID    uuid.UUID       `json:"supplier_id"`
	Quantity      decimal.Decimal `json:"quantity"`
	LastUnitPrice decimal.Decimal `json:"last_unit_price"`
}

// NewStockItem creates a stock row for a first-seen (name, supplier) pair
func NewStockItem(name string, supplierID uuid.UUID, quantity, unitPrice decimal.Decimal) (*StockItem, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_STOCK_ITEM", "Stock item name cannot be empty")
	}
	if supplierID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SUPPLIER", "Supplier ID cannot be empty")
	}
	return &StockItem{
		BaseEntity:    shared.NewBaseEntity(),
		Name:          name,
		SupplierID:    supplierID,
		Quantity:      quantity,
		LastUnitPrice: unitPrice,
	}, nil
}

// Receive merges a newly purchased quantity into the row
func (s *StockItem) Receive(quantity, unitPrice decimal.Decimal) {
	s.Quantity = s.Quantity.Add(quantity)
	s.LastUnitPrice = unitPrice
	s.UpdatedAt = time.Now()
}
