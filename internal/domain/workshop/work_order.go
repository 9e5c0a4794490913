package workshop

import (
	"time"

	"github.com/garage-erp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WorkOrderStatus represents the work-side status of a work order
type WorkOrderStatus string

const (
	WorkOrderStatusPending   WorkOrderStatus = "PENDING"
	WorkOrderStatusCompleted WorkOrderStatus = "COMPLETED"
)

// IsValid checks if the status is a valid WorkOrderStatus
func (s WorkOrderStatus) IsValid() bool {
	return s == WorkOrderStatusPending || s == WorkOrderStatusCompleted
}

// String returns the string representation of WorkOrderStatus
func (s WorkOrderStatus) String() string {
	return string(s)
}

// PaymentStatus represents the settlement status of a work order
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusPartial PaymentStatus = "PARTIAL"
	PaymentStatusPaid    PaymentStatus = "PAID"
)

// IsValid checks if the status is a valid PaymentStatus
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPartial, PaymentStatusPaid:
		return true
	}
	return false
}

// RecordKind classifies which reporting bucket a work order belongs to.
// Once a work order is promoted to a current account entry, the entry becomes
// the authoritative side for outstanding-debt reporting and the work order is
// reclassified so dashboards never count the same debt twice.
type RecordKind string

const (
	RecordKindWorkOrder      RecordKind = "WORK_ORDER"
	RecordKindCurrentAccount RecordKind = "CURRENT_ACCOUNT"
	RecordKindDamageClaim    RecordKind = "DAMAGE_CLAIM"
)

// IsValid checks if the kind is a valid RecordKind
func (k RecordKind) IsValid() bool {
	switch k {
	case RecordKindWorkOrder, RecordKindCurrentAccount, RecordKindDamageClaim:
		return true
	}
	return false
}

// LineItemKind distinguishes parts from labor charges
type LineItemKind string

const (
	LineItemKindPart  LineItemKind = "PART"
	LineItemKindLabor LineItemKind = "LABOR"
)

// IsValid checks if the kind is a valid LineItemKind
func (k LineItemKind) IsValid() bool {
	return k == LineItemKindPart || k == LineItemKindLabor
}

// LineItem is one priced part or labor charge on a work order.
// Line items are owned by exactly one work order and are replaced as a whole
// set on update, never diffed.
type LineItem struct {
	ID          uuid.UUID       `json:"id"`
	Kind        LineItemKind    `json:"kind"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// NewLineItem creates a line item with its total derived from quantity and unit price
func NewLineItem(kind LineItemKind, description string, quantity, unitPrice decimal.Decimal) (LineItem, error) {
	if !kind.IsValid() {
		return LineItem{}, shared.NewDomainError("INVALID_LINE_ITEM", "Line item kind must be PART or LABOR")
	}
	if description == "" {
		return LineItem{}, shared.NewDomainError("INVALID_LINE_ITEM", "Line item description cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return LineItem{}, shared.NewDomainError("INVALID_LINE_ITEM", "Line item quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return LineItem{}, shared.NewDomainError("INVALID_LINE_ITEM", "Line item unit price cannot be negative")
	}
	return LineItem{
		ID:          uuid.New(),
		Kind:        kind,
		Description: description,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		LineTotal:   quantity.Mul(unitPrice),
	}, nil
}

// WorkOrder represents one unit of shop work for a vehicle/customer.
// It carries a denormalized PaidAmount alongside the payment history; the
// ledger keeps the two reconcilable at all times.
type WorkOrder struct {
	shared.BaseAggregateRoot
	OrderNumber     string          `json:"order_number"`
	CustomerID      *uuid.UUID      `json:"customer_id"`
	CustomerName    string          `json:"customer_name"`
	VehiclePlate    string          `json:"vehicle_plate"`
	VehicleMake     string          `json:"vehicle_make"`
	VehicleModel    string          `json:"vehicle_model"`
	LineItems       []LineItem      `json:"line_items"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	PaidAmount      decimal.Decimal `json:"paid_amount"`
	Status          WorkOrderStatus `json:"status"`
	PaymentStatus   PaymentStatus   `json:"payment_status"`
	RecordKind      RecordKind      `json:"record_kind"`
	LinkedAccountID *uuid.UUID      `json:"linked_account_id"`
	Remark          string          `json:"remark"`
}

// NewWorkOrder creates a new work order. If explicitTotal is non-nil it is
// used verbatim; otherwise the total falls back to the sum of line totals.
// The same precedence applies on update (see ReplaceLineItems).
func NewWorkOrder(
	orderNumber string,
	customerID *uuid.UUID,
	customerName string,
	vehiclePlate string,
	items []LineItem,
	explicitTotal *decimal.Decimal,
) (*WorkOrder, error) {
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if vehiclePlate == "" && customerName == "" {
		return nil, shared.NewDomainError("INVALID_WORK_ORDER", "A work order needs a customer name or a vehicle plate")
	}
	if explicitTotal != nil && explicitTotal.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Total amount cannot be negative")
	}

	wo := &WorkOrder{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderNumber:       orderNumber,
		CustomerID:        customerID,
		CustomerName:      customerName,
		VehiclePlate:      vehiclePlate,
		LineItems:         items,
		TotalAmount:       resolveTotal(items, explicitTotal),
		PaidAmount:        decimal.Zero,
		Status:            WorkOrderStatusPending,
		PaymentStatus:     PaymentStatusPending,
		RecordKind:        RecordKindWorkOrder,
	}
	return wo, nil
}

// resolveTotal applies the total-amount precedence rule: an explicit caller
// total wins verbatim, the line item sum is only a fallback.
func resolveTotal(items []LineItem, explicitTotal *decimal.Decimal) decimal.Decimal {
	if explicitTotal != nil {
		return *explicitTotal
	}
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.LineTotal)
	}
	return total
}

// ReplaceLineItems swaps the full line item set and re-resolves the total
// with the same precedence rule as creation.
func (wo *WorkOrder) ReplaceLineItems(items []LineItem, explicitTotal *decimal.Decimal) error {
	if explicitTotal != nil && explicitTotal.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Total amount cannot be negative")
	}
	wo.LineItems = items
	wo.TotalAmount = resolveTotal(items, explicitTotal)
	wo.touch()
	return nil
}

// Outstanding returns the remaining balance, clamped at zero
func (wo *WorkOrder) Outstanding() decimal.Decimal {
	remaining := wo.TotalAmount.Sub(wo.PaidAmount)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

// RecordPayment applies a payment amount to the work order. Overpayment is
// not rejected; the derived balance is clamped at zero instead. On a partial
// payment the statuses are left untouched - they only flip on full settlement.
func (wo *WorkOrder) RecordPayment(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	wo.PaidAmount = wo.PaidAmount.Add(amount)
	if wo.Outstanding().IsZero() {
		wo.markSettled()
	}
	wo.touch()
	return nil
}

// SettleInFull forces the work order into the fully-settled state. Used when
// a linked current account entry reaches zero balance and the settlement
// cascades back to the work order.
func (wo *WorkOrder) SettleInFull() {
	wo.PaidAmount = wo.TotalAmount
	wo.markSettled()
	wo.touch()
}

// MarkPromoted links the work order to its current account entry and
// reclassifies it so it drops out of pending work order totals.
// Promoting an already-linked work order is a conflict.
func (wo *WorkOrder) MarkPromoted(accountEntryID uuid.UUID) error {
	if wo.LinkedAccountID != nil {
		return shared.ErrAlreadyLinked
	}
	wo.LinkedAccountID = &accountEntryID
	wo.RecordKind = RecordKindCurrentAccount
	wo.touch()
	return nil
}

// IsPromoted returns true once the work order has a linked current account entry
func (wo *WorkOrder) IsPromoted() bool {
	return wo.LinkedAccountID != nil
}

// IsSettled returns true once the outstanding balance reached zero
func (wo *WorkOrder) IsSettled() bool {
	return wo.PaymentStatus == PaymentStatusPaid
}

func (wo *WorkOrder) markSettled() {
	wo.PaymentStatus = PaymentStatusPaid
	wo.Status = WorkOrderStatusCompleted
}

func (wo *WorkOrder) touch() {
	wo.UpdatedAt = time.Now()
	wo.IncrementVersion()
}
