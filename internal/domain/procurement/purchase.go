package procurement

import (
	"github.com/garage-erp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PurchaseItem is one line of a supplier purchase
type PurchaseItem struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// NewPurchaseItem creates a purchase item with its total derived from
// quantity and unit price
func NewPurchaseItem(name string, quantity, unitPrice decimal.Decimal) (PurchaseItem, error) {
	if name == "" {
		return PurchaseItem{}, shared.NewDomainError("INVALID_PURCHASE_ITEM", "Purchase item name cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return PurchaseItem{}, shared.NewDomainError("INVALID_PURCHASE_ITEM", "Purchase item quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return PurchaseItem{}, shared.NewDomainError("INVALID_PURCHASE_ITEM", "Purchase item unit price cannot be negative")
	}
	return PurchaseItem{
		ID:        uuid.New(),
		Name:      name,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		LineTotal: quantity.Mul(unitPrice),
	}, nil
}

// Purchase is one received delivery from a supplier. It is immutable once
// created except for deletion, which reverses the supplier's running totals
// by this purchase's own TotalAmount/PaidAmount split at delete time.
type Purchase struct {
	shared.BaseAggregateRoot
	PurchaseNumber string          `json:"purchase_number"`
	SupplierID     uuid.UUID       `json:"supplier_id"`
	Items          []PurchaseItem  `json:"items"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	PaidAmount     decimal.Decimal `json:"paid_amount"`
	Remark         string          `json:"remark"`
}

// NewPurchase creates a purchase whose total is the sum of its item totals
func NewPurchase(purchaseNumber string, supplierID uuid.UUID, items []PurchaseItem) (*Purchase, error) {
	if purchaseNumber == "" {
		return nil, shared.NewDomainError("INVALID_PURCHASE_NUMBER", "Purchase number cannot be empty")
	}
	if supplierID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SUPPLIER", "Supplier ID cannot be empty")
	}
	if len(items) == 0 {
		return nil, shared.NewDomainError("INVALID_PURCHASE", "A purchase needs at least one item")
	}

	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.LineTotal)
	}

	return &Purchase{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		PurchaseNumber:    purchaseNumber,
		SupplierID:        supplierID,
		Items:             items,
		TotalAmount:       total,
		PaidAmount:        decimal.Zero,
	}, nil
}
