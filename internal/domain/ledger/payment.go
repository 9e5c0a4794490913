package ledger

import (
	"time"

	"github.com/garage-erp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentMethod enumerates how money changed hands
type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "CASH"
	PaymentMethodCard     PaymentMethod = "CARD"
	PaymentMethodTransfer PaymentMethod = "TRANSFER"
	PaymentMethodCheck    PaymentMethod = "CHECK"
	PaymentMethodNote     PaymentMethod = "NOTE" // promissory note
)

// IsValid checks if the method is a valid PaymentMethod
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodTransfer, PaymentMethodCheck, PaymentMethodNote:
		return true
	}
	return false
}

// TargetKind identifies which entity family a payment is applied to
type TargetKind string

const (
	TargetWorkOrder    TargetKind = "WORK_ORDER"
	TargetAccountEntry TargetKind = "ACCOUNT_ENTRY"
)

// IsValid checks if the kind is a valid TargetKind
func (k TargetKind) IsValid() bool {
	return k == TargetWorkOrder || k == TargetAccountEntry
}

// Payment is one money movement applied to a work order or a current account
// entry. Payments are immutable once created; corrections are new payments,
// never edits, which keeps the payment history an append-only audit trail.
//
// Exactly one target reference is set at creation. Promotion later adds the
// account entry reference next to the work order one, so history stays
// queryable from either side. Deleting an account entry clears its reference
// instead of deleting the rows - detached, never dropped.
type Payment struct {
	shared.BaseEntity
	WorkOrderID    *uuid.UUID      `json:"work_order_id"`
	AccountEntryID *uuid.UUID      `json:"account_entry_id"`
	Amount         decimal.Decimal `json:"amount"`
	Method         PaymentMethod   `json:"method"`
	InstallmentNo  *int            `json:"installment_no"`
	Memo           string          `json:"memo"`
	IdempotencyKey *string         `json:"idempotency_key"`
	PaidAt         time.Time       `json:"paid_at"`
}

// NewPayment creates a payment against the given target
func NewPayment(targetKind TargetKind, targetID uuid.UUID, amount decimal.Decimal, method PaymentMethod, memo string) (*Payment, error) {
	if !targetKind.IsValid() {
		return nil, shared.NewDomainError("INVALID_TARGET", "Payment target must be a work order or an account entry")
	}
	if targetID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TARGET", "Payment target ID cannot be empty")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_METHOD", "Unknown payment method")
	}

	p := &Payment{
		BaseEntity: shared.NewBaseEntity(),
		Amount:     amount,
		Method:     method,
		Memo:       memo,
		PaidAt:     time.Now(),
	}
	switch targetKind {
	case TargetWorkOrder:
		p.WorkOrderID = &targetID
	case TargetAccountEntry:
		p.AccountEntryID = &targetID
	}
	return p, nil
}

// WithInstallmentNo tags the payment with its installment index
func (p *Payment) WithInstallmentNo(no int) *Payment {
	p.InstallmentNo = &no
	return p
}

// WithIdempotencyKey attaches a caller-supplied idempotency key
func (p *Payment) WithIdempotencyKey(key string) *Payment {
	p.IdempotencyKey = &key
	return p
}

// IsDetached returns true for historical rows whose targets were deleted
func (p *Payment) IsDetached() bool {
	return p.WorkOrderID == nil && p.AccountEntryID == nil
}
