package models

import (
	"time"

	"github.com/garage-erp/backend/internal/domain/ledger"
	"github.com/garage-erp/backend/internal/domain/procurement"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SupplierModel is the persistence model for the Supplier aggregate root.
type SupplierModel struct {
	AggregateModel
	Name      string          `gorm:"type:varchar(200);not null;index"`
	Phone     string          `gorm:"type:varchar(30)"`
	TotalDebt decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	TotalPaid decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Remark    string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (SupplierModel) TableName() string {
	return "suppliers"
}

// ToDomain converts the persistence model to a domain Supplier entity.
func (m *SupplierModel) ToDomain() *procurement.Supplier {
	return &procurement.Supplier{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		Phone:             m.Phone,
		TotalDebt:         m.TotalDebt,
		TotalPaid:         m.TotalPaid,
		Remark:            m.Remark,
	}
}

// FromDomain populates the persistence model from a domain Supplier entity.
func (m *SupplierModel) FromDomain(s *procurement.Supplier) {
	m.FromDomainAggregateRoot(s.BaseAggregateRoot)
	m.Name = s.Name
	m.Phone = s.Phone
	m.TotalDebt = s.TotalDebt
	m.TotalPaid = s.TotalPaid
	m.Remark = s.Remark
}

// SupplierModelFromDomain creates a new persistence model from a domain Supplier.
func SupplierModelFromDomain(s *procurement.Supplier) *SupplierModel {
	m := &SupplierModel{}
	m.FromDomain(s)
	return m
}

// PurchaseModel is the persistence model for the Purchase aggregate root.
type PurchaseModel struct {
	AggregateModel
	PurchaseNumber string              `gorm:"type:varchar(50);not null;uniqueIndex"`
	SupplierID     uuid.UUID           `gorm:"type:uuid;not null;index"`
	Items          []PurchaseItemModel `gorm:"foreignKey:PurchaseID;references:ID;constraint:OnDelete:CASCADE"`
	TotalAmount    decimal.Decimal     `gorm:"type:decimal(18,2);not null"`
	PaidAmount     decimal.Decimal     `gorm:"type:decimal(18,2);not null"`
	Remark         string              `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (PurchaseModel) TableName() string {
	return "supplier_purchases"
}

// PurchaseItemModel is the persistence model for one purchase line item.
type PurchaseItemModel struct {
	ID         uuid.UUID       `gorm:"type:uuid;primary_key"`
	PurchaseID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name       string          `gorm:"type:varchar(200);not null"`
	Quantity   decimal.Decimal `gorm:"type:decimal(18,3);not null"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	LineTotal  decimal.Decimal `gorm:"type:decimal(18,2);not null"`
}

// TableName returns the table name for GORM
func (PurchaseItemModel) TableName() string {
	return "purchase_items"
}

// ToDomain converts the persistence model to a domain Purchase entity.
func (m *PurchaseModel) ToDomain() *procurement.Purchase {
	items := make([]procurement.PurchaseItem, len(m.Items))
	for i, it := range m.Items {
		items[i] = procurement.PurchaseItem{
			ID:        it.ID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			LineTotal: it.LineTotal,
		}
	}
	return &procurement.Purchase{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		PurchaseNumber:    m.PurchaseNumber,
		SupplierID:        m.SupplierID,
		Items:             items,
		TotalAmount:       m.TotalAmount,
		PaidAmount:        m.PaidAmount,
		Remark:            m.Remark,
	}
}

// FromDomain populates the persistence model from a domain Purchase entity.
func (m *PurchaseModel) FromDomain(p *procurement.Purchase) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.PurchaseNumber = p.PurchaseNumber
	m.SupplierID = p.SupplierID
	m.TotalAmount = p.TotalAmount
	m.PaidAmount = p.PaidAmount
	m.Remark = p.Remark

	m.Items = make([]PurchaseItemModel, len(p.Items))
	for i, it := range p.Items {
		m.Items[i] = PurchaseItemModel{
			ID:         it.ID,
			PurchaseID: p.ID,
			Name:       it.Name,
			Quantity:   it.Quantity,
			UnitPrice:  it.UnitPrice,
			LineTotal:  it.LineTotal,
		}
	}
}

// PurchaseModelFromDomain creates a new persistence model from a domain Purchase.
func PurchaseModelFromDomain(p *procurement.Purchase) *PurchaseModel {
	m := &PurchaseModel{}
	m.FromDomain(p)
	return m
}

// SupplierPaymentModel is the persistence model for the immutable supplier
// payment trail.
type SupplierPaymentModel struct {
	BaseModel
	SupplierID uuid.UUID                 `gorm:"type:uuid;not null;index"`
	Amount     decimal.Decimal           `gorm:"type:decimal(18,2);not null"`
	Method     ledger.PaymentMethod      `gorm:"type:varchar(20);not null"`
	Source     procurement.PaymentSource `gorm:"type:varchar(20);not null;default:'DIRECT'"`
	Memo       string                    `gorm:"type:varchar(500)"`
	PaidAt     time.Time
}

// TableName returns the table name for GORM
func (SupplierPaymentModel) TableName() string {
	return "supplier_payments"
}

// ToDomain converts the persistence model to a domain SupplierPayment entity.
func (m *SupplierPaymentModel) ToDomain() *procurement.SupplierPayment {
	return &procurement.SupplierPayment{
		BaseEntity: m.BaseModel.ToDomain(),
		SupplierID: m.SupplierID,
		Amount:     m.Amount,
		Method:     m.Method,
		Source:     m.Source,
		Memo:       m.Memo,
		PaidAt:     m.PaidAt,
	}
}

// FromDomain populates the persistence model from a domain SupplierPayment entity.
func (m *SupplierPaymentModel) FromDomain(p *procurement.SupplierPayment) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.SupplierID = p.SupplierID
	m.Amount = p.Amount
	m.Method = p.Method
	m.Source = p.Source
	m.Memo = p.Memo
	m.PaidAt = p.PaidAt
}

// SupplierPaymentModelFromDomain creates a new persistence model from a domain SupplierPayment.
func SupplierPaymentModelFromDomain(p *procurement.SupplierPayment) *SupplierPaymentModel {
	m := &SupplierPaymentModel{}
	m.FromDomain(p)
	return m
}

// StockItemModel is the persistence model for on-hand stock rows.
type StockItemModel struct {
	BaseModel
	Name          string          `gorm:"type:varchar(200);not null;uniqueIndex:idx_stock_name_supplier,priority:1"`
	SupplierID    uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_stock_name_supplier,priority:2"`
	Quantity      decimal.Decimal `gorm:"type:decimal(18,3);not null"`
	LastUnitPrice decimal.Decimal `gorm:"type:decimal(18,2);not null"`
}

// TableName returns the table name for GORM
func (StockItemModel) TableName() string {
	return "stock_items"
}

// ToDomain converts the persistence model to a domain StockItem entity.
func (m *StockItemModel) ToDomain() *procurement.StockItem {
	return &procurement.StockItem{
		BaseEntity:    m.BaseModel.ToDomain(),
		Name:          m.Name,
		SupplierID:    m.SupplierID,
		Quantity:      m.Quantity,
		LastUnitPrice: m.LastUnitPrice,
	}
}

// FromDomain populates the persistence model from a domain StockItem entity.
func (m *StockItemModel) FromDomain(s *procurement.StockItem) {
	m.FromDomainBaseEntity(s.BaseEntity)
	m.Name = s.Name
	m.SupplierID = s.SupplierID
	m.Quantity = s.Quantity
	m.LastUnitPrice = s.LastUnitPrice
}

// StockItemModelFromDomain creates a new persistence model from a domain StockItem.
func StockItemModelFromDomain(s *procurement.StockItem) *StockItemModel {
	m := &StockItemModel{}
	m.FromDomain(s)
	return m
}

// ExpenseModel is the persistence model for shop expenses.
type ExpenseModel struct {
	BaseModel
	Description string          `gorm:"type:varchar(500);not null"`
	Category    string          `gorm:"type:varchar(100);index"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	SupplierID  *uuid.UUID      `gorm:"type:uuid;index"`
	SpentAt     time.Time       `gorm:"index"`
}

// TableName returns the table name for GORM
func (ExpenseModel) TableName() string {
	return "expenses"
}

// ToDomain converts the persistence model to a domain Expense entity.
func (m *ExpenseModel) ToDomain() *procurement.Expense {
	return &procurement.Expense{
		BaseEntity:  m.BaseModel.ToDomain(),
		Description: m.Description,
		Category:    m.Category,
		Amount:      m.Amount,
		SupplierID:  m.SupplierID,
		SpentAt:     m.SpentAt,
	}
}

// FromDomain populates the persistence model from a domain Expense entity.
func (m *ExpenseModel) FromDomain(e *procurement.Expense) {
	m.FromDomainBaseEntity(e.BaseEntity)
	m.Description = e.Description
	m.Category = e.Category
	m.Amount = e.Amount
	m.SupplierID = e.SupplierID
	m.SpentAt = e.SpentAt
}

// ExpenseModelFromDomain creates a new persistence model from a domain Expense.
func ExpenseModelFromDomain(e *procurement.Expense) *ExpenseModel {
	m := &ExpenseModel{}
	m.FromDomain(e)
	return m
}
