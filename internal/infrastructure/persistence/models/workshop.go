package models

import (
	"github.com/garage-erp/backend/internal/domain/workshop"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WorkOrderModel is the persistence model for the WorkOrder aggregate root.
type WorkOrderModel struct {
	AggregateModel
	OrderNumber     string                   `gorm:"type:varchar(50);not null;uniqueIndex"`
	CustomerID      *uuid.UUID               `gorm:"type:uuid;index"`
	CustomerName    string                   `gorm:"type:varchar(200)"`
	VehiclePlate    string                   `gorm:"type:varchar(20);index"`
	VehicleMake     string                   `gorm:"type:varchar(100)"`
	VehicleModel    string                   `gorm:"type:varchar(100)"`
	LineItems       []WorkOrderLineItemModel `gorm:"foreignKey:WorkOrderID;references:ID;constraint:OnDelete:CASCADE"`
	TotalAmount     decimal.Decimal          `gorm:"type:decimal(18,2);not null"`
	PaidAmount      decimal.Decimal          `gorm:"type:decimal(18,2);not null"`
	Status          workshop.WorkOrderStatus `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	PaymentStatus   workshop.PaymentStatus   `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	RecordKind      workshop.RecordKind      `gorm:"type:varchar(30);not null;default:'WORK_ORDER';index"`
	LinkedAccountID *uuid.UUID               `gorm:"type:uuid;index"`
	Remark          string                   `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (WorkOrderModel) TableName() string {
	return "work_orders"
}

// WorkOrderLineItemModel is the persistence model for one work order line item.
type WorkOrderLineItemModel struct {
	ID          uuid.UUID             `gorm:"type:uuid;primary_key"`
	WorkOrderID uuid.UUID             `gorm:"type:uuid;not null;index"`
	Kind        workshop.LineItemKind `gorm:"type:varchar(10);not null"`
	Description string                `gorm:"type:varchar(500);not null"`
	Quantity    decimal.Decimal       `gorm:"type:decimal(18,3);not null"`
	UnitPrice   decimal.Decimal       `gorm:"type:decimal(18,2);not null"`
	LineTotal   decimal.Decimal       `gorm:"type:decimal(18,2);not null"`
}

// TableName returns the table name for GORM
func (WorkOrderLineItemModel) TableName() string {
	return "work_order_line_items"
}

// ToDomain converts the persistence model to a domain WorkOrder entity.
func (m *WorkOrderModel) ToDomain() *workshop.WorkOrder {
	items := make([]workshop.LineItem, len(m.LineItems))
	for i, it := range m.LineItems {
		items[i] = workshop.LineItem{
			ID:          it.ID,
			Kind:        it.Kind,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			LineTotal:   it.LineTotal,
		}
	}
	return &workshop.WorkOrder{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		OrderNumber:       m.OrderNumber,
		CustomerID:        m.CustomerID,
		CustomerName:      m.CustomerName,
		VehiclePlate:      m.VehiclePlate,
		VehicleMake:       m.VehicleMake,
		VehicleModel:      m.VehicleModel,
		LineItems:         items,
		TotalAmount:       m.TotalAmount,
		PaidAmount:        m.PaidAmount,
		Status:            m.Status,
		PaymentStatus:     m.PaymentStatus,
		RecordKind:        m.RecordKind,
		LinkedAccountID:   m.LinkedAccountID,
		Remark:            m.Remark,
	}
}

// FromDomain populates the persistence model from a domain WorkOrder entity.
func (m *WorkOrderModel) FromDomain(wo *workshop.WorkOrder) {
	m.FromDomainAggregateRoot(wo.BaseAggregateRoot)
	m.OrderNumber = wo.OrderNumber
	m.CustomerID = wo.CustomerID
	m.CustomerName = wo.CustomerName
	m.VehiclePlate = wo.VehiclePlate
	m.VehicleMake = wo.VehicleMake
	m.VehicleModel = wo.VehicleModel
	m.TotalAmount = wo.TotalAmount
	m.PaidAmount = wo.PaidAmount
	m.Status = wo.Status
	m.PaymentStatus = wo.PaymentStatus
	m.RecordKind = wo.RecordKind
	m.LinkedAccountID = wo.LinkedAccountID
	m.Remark = wo.Remark

	m.LineItems = make([]WorkOrderLineItemModel, len(wo.LineItems))
	for i, it := range wo.LineItems {
		m.LineItems[i] = WorkOrderLineItemModel{
			ID:          it.ID,
			WorkOrderID: wo.ID,
			Kind:        it.Kind,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			LineTotal:   it.LineTotal,
		}
	}
}

// WorkOrderModelFromDomain creates a new persistence model from a domain WorkOrder.
func WorkOrderModelFromDomain(wo *workshop.WorkOrder) *WorkOrderModel {
	m := &WorkOrderModel{}
	m.FromDomain(wo)
	return m
}
