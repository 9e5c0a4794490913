package ledger

import (
	"time"

	"github.com/garage-erp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EntryStatus represents the status of a current account entry
type EntryStatus string

const (
	EntryStatusUnpaid      EntryStatus = "UNPAID"      // No payment applied yet
	EntryStatusPartial     EntryStatus = "PARTIAL"     // Partially paid, 0 < remaining < invoice
	EntryStatusInstallment EntryStatus = "INSTALLMENT" // An installment plan is active
	EntryStatusSettled     EntryStatus = "SETTLED"     // Fully paid, remaining = 0
)

// IsValid checks if the status is a valid EntryStatus
func (s EntryStatus) IsValid() bool {
	switch s {
	case EntryStatusUnpaid, EntryStatusPartial, EntryStatusInstallment, EntryStatusSettled:
		return true
	}
	return false
}

// String returns the string representation of EntryStatus
func (s EntryStatus) String() string {
	return string(s)
}

// AccountEntry is a customer's running tab. It is either linked 1:1 to a work
// order (created through promotion) or standalone, e.g. a company-level manual
// entry. Once linked, the entry is the authoritative side for outstanding-debt
// reporting; the work order keeps only a back-reference.
type AccountEntry struct {
	shared.BaseAggregateRoot
	AccountNumber     string          `json:"account_number"`
	WorkOrderID       *uuid.UUID      `json:"work_order_id"`
	CustomerName      string          `json:"customer_name"`
	CompanyName       string          `json:"company_name"`
	InvoiceAmount     decimal.Decimal `json:"invoice_amount"`
	PaidAmount        decimal.Decimal `json:"paid_amount"`
	RemainingDebt     decimal.Decimal `json:"remaining_debt"`
	Status            EntryStatus     `json:"status"`
	InstallmentCount  int             `json:"installment_count"`
	RecurringCustomer bool            `json:"recurring_customer"`
	Remark            string          `json:"remark"`
}

// NewAccountEntry creates a current account entry. paidAmount may be non-zero
// when the entry is created through promotion, carrying forward payments
// already applied to the source work order.
func NewAccountEntry(
	accountNumber string,
	workOrderID *uuid.UUID,
	customerName string,
	companyName string,
	invoiceAmount decimal.Decimal,
	paidAmount decimal.Decimal,
	recurringCustomer bool,
) (*AccountEntry, error) {
	if accountNumber == "" {
		return nil, shared.NewDomainError("INVALID_ACCOUNT_NUMBER", "Account number cannot be empty")
	}
	if customerName == "" && companyName == "" {
		return nil, shared.NewDomainError("INVALID_ACCOUNT_ENTRY", "An account entry needs a customer or company name")
	}
	if invoiceAmount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Invoice amount cannot be negative")
	}
	if paidAmount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Paid amount cannot be negative")
	}

	entry := &AccountEntry{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		AccountNumber:     accountNumber,
		WorkOrderID:       workOrderID,
		CustomerName:      customerName,
		CompanyName:       companyName,
		InvoiceAmount:     invoiceAmount,
		PaidAmount:        paidAmount,
		RecurringCustomer: recurringCustomer,
		Status:            EntryStatusUnpaid,
	}
	entry.syncRemaining()
	entry.deriveStatus()
	return entry, nil
}

// RecordPayment applies a payment amount to the entry. Overpayment is clamped
// at a zero remaining debt, never rejected.
func (e *AccountEntry) RecordPayment(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	e.PaidAmount = e.PaidAmount.Add(amount)
	e.syncRemaining()
	e.deriveStatus()
	e.touch()
	return nil
}

// PlanInstallments divides the remaining debt into count equal display
// amounts and marks the entry accordingly. No future payment rows are
// created; each installment later arrives as an ordinary payment.
// A plan on a zero balance is permitted and yields a zero per-installment
// amount, matching how the books were kept before this system.
func (e *AccountEntry) PlanInstallments(count int) (decimal.Decimal, error) {
	if count < 2 {
		return decimal.Zero, shared.NewDomainError("INVALID_INSTALLMENT_COUNT", "Installment count must be at least 2")
	}
	e.InstallmentCount = count
	e.Status = EntryStatusInstallment
	e.touch()
	return e.RemainingDebt.Div(decimal.NewFromInt(int64(count))).Round(2), nil
}

// PerInstallment recomputes the per-installment display amount from the
// current remaining debt. Repeated reads must not accumulate rounding error,
// so this always derives from the stored remaining debt.
func (e *AccountEntry) PerInstallment() decimal.Decimal {
	if e.InstallmentCount < 2 {
		return decimal.Zero
	}
	return e.RemainingDebt.Div(decimal.NewFromInt(int64(e.InstallmentCount))).Round(2)
}

// SettleInFull forces the entry into the fully-settled state. Used when the
// linked work order reaches zero balance and the settlement cascades here.
func (e *AccountEntry) SettleInFull() {
	e.PaidAmount = e.InvoiceAmount
	e.syncRemaining()
	e.Status = EntryStatusSettled
	e.touch()
}

// HasInstallmentPlan returns true once a plan is active
func (e *AccountEntry) HasInstallmentPlan() bool {
	return e.InstallmentCount > 0
}

// IsSettled returns true once the remaining debt reached zero
func (e *AccountEntry) IsSettled() bool {
	return e.Status == EntryStatusSettled
}

// IsLinked returns true if the entry was created from a work order
func (e *AccountEntry) IsLinked() bool {
	return e.WorkOrderID != nil
}

// syncRemaining keeps the denormalized remaining debt equal to
// max(0, invoice - paid)
func (e *AccountEntry) syncRemaining() {
	remaining := e.InvoiceAmount.Sub(e.PaidAmount)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}
	e.RemainingDebt = remaining
}

// deriveStatus applies the status transition rules, in priority order:
// settled wins, an active installment plan sticks, and partial payment only
// shows for non-recurring customers. Anything else leaves the status alone.
func (e *AccountEntry) deriveStatus() {
	switch {
	case e.RemainingDebt.LessThanOrEqual(decimal.Zero):
		e.Status = EntryStatusSettled
	case e.HasInstallmentPlan():
		e.Status = EntryStatusInstallment
	case !e.RecurringCustomer && e.PaidAmount.GreaterThan(decimal.Zero):
		e.Status = EntryStatusPartial
	}
}

func (e *AccountEntry) touch() {
	e.UpdatedAt = time.Now()
	e.IncrementVersion()
}
