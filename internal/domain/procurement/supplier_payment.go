package procurement

import (
	"time"

	"github.com/garage-erp/backend/internal/domain/ledger"
	"github.com/garage-erp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentSource records which entry point produced a supplier payment.
// Direct payments and supplier-tagged expenses both funnel through the one
// shared pay-supplier operation; the source only matters for reporting.
type PaymentSource string

const (
	PaymentSourceDirect  PaymentSource = "DIRECT"
	PaymentSourceExpense PaymentSource = "EXPENSE"
)

// IsValid checks if the source is a valid PaymentSource
func (s PaymentSource) IsValid() bool {
	return s == PaymentSourceDirect || s == PaymentSourceExpense
}

// SupplierPayment is one immutable money movement to a supplier
type SupplierPayment struct {
	shared.BaseEntity
	SupplierID uuid.UUID            `json:"supplier_id"`
	Amount     decimal.Decimal      `json:"amount"`
	Method     ledger.PaymentMethod `json:"method"`
	Source     PaymentSource        `json:"source"`
	Memo       string               `json:"memo"`
	PaidAt     time.Time            `json:"paid_at"`
}

// NewSupplierPayment creates a supplier payment
func NewSupplierPayment(supplierID uuid.UUID, amount decimal.Decimal, method ledger.PaymentMethod, source PaymentSource, memo string) (*SupplierPayment, error) {
	if supplierID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SUPPLIER", "Supplier ID cannot be empty")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_METHOD", "Unknown payment method")
	}
	if !source.IsValid() {
		return nil, shared.NewDomainError("INVALID_SOURCE", "Unknown payment source")
	}
	return &SupplierPayment{
		BaseEntity: shared.NewBaseEntity(),
		SupplierID: supplierID,
		Amount:     amount,
		Method:     method,
		Source:     source,
		Memo:       memo,
		PaidAt:     time.Now(),
	}, nil
}
