package procurement

import (
	"time"

	"github.com/garage-erp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Expense is a shop expense. When tagged with a supplier it doubles as a
// supplier payment and must go through the shared pay-supplier path so the
// supplier's running totals are bumped exactly once.
type Expense struct {
	shared.BaseEntity
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	SupplierID  *uuid.UUID      `json:"supplier_id"`
	SpentAt     time.Time       `json:"spent_at"`
}

// NewExpense creates an expense record
func NewExpense(description, category string, amount decimal.Decimal, supplierID *uuid.UUID) (*Expense, error) {
	if description == "" {
		return nil, shared.NewDomainError("INVALID_EXPENSE", "Expense description cannot be empty")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Expense amount must be positive")
	}
	return &Expense{
		BaseEntity:  shared.NewBaseEntity(),
		Description: description,
		Category:    category,
		Amount:      amount,
		SupplierID:  supplierID,
		SpentAt:     time.Now(),
	}, nil
}

// IsSupplierPayment returns true when the expense doubles as a payment to a supplier
func (e *Expense) IsSupplierPayment() bool {
	return e.SupplierID != nil
}
