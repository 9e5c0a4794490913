package models

import (
	"time"

	"github.com/garage-erp/backend/internal/domain/ledger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountEntryModel is the persistence model for the AccountEntry aggregate root.
type AccountEntryModel struct {
	AggregateModel
	AccountNumber     string             `gorm:"type:varchar(50);not null;uniqueIndex"`
	WorkOrderID       *uuid.UUID         `gorm:"type:uuid;uniqueIndex"`
	CustomerName      string             `gorm:"type:varchar(200)"`
	CompanyName       string             `gorm:"type:varchar(200);index"`
	InvoiceAmount     decimal.Decimal    `gorm:"type:decimal(18,2);not null"`
	PaidAmount        decimal.Decimal    `gorm:"type:decimal(18,2);not null"`
	RemainingDebt     decimal.Decimal    `gorm:"type:decimal(18,2);not null;index"`
	Status            ledger.EntryStatus `gorm:"type:varchar(20);not null;default:'UNPAID';index"`
	InstallmentCount  int                `gorm:"not null;default:0"`
	RecurringCustomer bool               `gorm:"not null;default:false"`
	Remark            string             `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (AccountEntryModel) TableName() string {
	return "account_entries"
}

// ToDomain converts the persistence model to a domain AccountEntry entity.
func (m *AccountEntryModel) ToDomain() *ledger.AccountEntry {
	return &ledger.AccountEntry{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		AccountNumber:     m.AccountNumber,
		WorkOrderID:       m.WorkOrderID,
		CustomerName:      m.CustomerName,
		CompanyName:       m.CompanyName,
		InvoiceAmount:     m.InvoiceAmount,
		PaidAmount:        m.PaidAmount,
		RemainingDebt:     m.RemainingDebt,
		Status:            m.Status,
		InstallmentCount:  m.InstallmentCount,
		RecurringCustomer: m.RecurringCustomer,
		Remark:            m.Remark,
	}
}

// FromDomain populates the persistence model from a domain AccountEntry entity.
func (m *AccountEntryModel) FromDomain(e *ledger.AccountEntry) {
	m.FromDomainAggregateRoot(e.BaseAggregateRoot)
	m.AccountNumber = e.AccountNumber
	m.WorkOrderID = e.WorkOrderID
	m.CustomerName = e.CustomerName
	m.CompanyName = e.CompanyName
	m.InvoiceAmount = e.InvoiceAmount
	m.PaidAmount = e.PaidAmount
	m.RemainingDebt = e.RemainingDebt
	m.Status = e.Status
	m.InstallmentCount = e.InstallmentCount
	m.RecurringCustomer = e.RecurringCustomer
	m.Remark = e.Remark
}

// AccountEntryModelFromDomain creates a new persistence model from a domain AccountEntry.
func AccountEntryModelFromDomain(e *ledger.AccountEntry) *AccountEntryModel {
	m := &AccountEntryModel{}
	m.FromDomain(e)
	return m
}

// PaymentModel is the persistence model for the immutable payment trail.
// Target references are nullable so deleting a target can detach its
// payments without dropping the rows.
type PaymentModel struct {
	BaseModel
	WorkOrderID    *uuid.UUID           `gorm:"type:uuid;index"`
	AccountEntryID *uuid.UUID           `gorm:"type:uuid;index"`
	Amount         decimal.Decimal      `gorm:"type:decimal(18,2);not null"`
	Method         ledger.PaymentMethod `gorm:"type:varchar(20);not null"`
	InstallmentNo  *int
	Memo           string  `gorm:"type:varchar(500)"`
	IdempotencyKey *string `gorm:"type:varchar(100);uniqueIndex"`
	PaidAt         time.Time
}

// TableName returns the table name for GORM
func (PaymentModel) TableName() string {
	return "payments"
}

// ToDomain converts the persistence model to a domain Payment entity.
func (m *PaymentModel) ToDomain() *ledger.Payment {
	return &ledger.Payment{
		BaseEntity:     m.BaseModel.ToDomain(),
		WorkOrderID:    m.WorkOrderID,
		AccountEntryID: m.AccountEntryID,
		Amount:         m.Amount,
		Method:         m.Method,
		InstallmentNo:  m.InstallmentNo,
		Memo:           m.Memo,
		IdempotencyKey: m.IdempotencyKey,
		PaidAt:         m.PaidAt,
	}
}

// FromDomain populates the persistence model from a domain Payment entity.
func (m *PaymentModel) FromDomain(p *ledger.Payment) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.WorkOrderID = p.WorkOrderID
	m.AccountEntryID = p.AccountEntryID
	m.Amount = p.Amount
	m.Method = p.Method
	m.InstallmentNo = p.InstallmentNo
	m.Memo = p.Memo
	m.IdempotencyKey = p.IdempotencyKey
	m.PaidAt = p.PaidAt
}

// PaymentModelFromDomain creates a new persistence model from a domain Payment.
func PaymentModelFromDomain(p *ledger.Payment) *PaymentModel {
	m := &PaymentModel{}
	m.FromDomain(p)
	return m
}

// NumberSequenceModel backs the atomic document number counters.
// One row per (prefix, year).
type NumberSequenceModel struct {
	Prefix  string `gorm:"type:varchar(10);primaryKey"`
	Year    int    `gorm:"primaryKey"`
	Counter int64  `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (NumberSequenceModel) TableName() string {
	return "number_sequences"
}
