package persistence

import (
	"context"
	"errors"

	"github.com/garage-erp/backend/internal/domain/shared"
	"github.com/garage-erp/backend/internal/domain/workshop"
	"github.com/garage-erp/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormWorkOrderRepository implements WorkOrderRepository using GORM
type GormWorkOrderRepository struct {
	db *gorm.DB
}

// NewGormWorkOrderRepository creates a new GormWorkOrderRepository
func NewGormWorkOrderRepository(db *gorm.DB) *GormWorkOrderRepository {
	return &GormWorkOrderRepository{db: db}
}

// FindByID finds a work order by its ID
func (r *GormWorkOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*workshop.WorkOrder, error) {
	var model models.WorkOrderModel
	if err := r.db.WithContext(ctx).
		Preload("LineItems").
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByOrderNumber finds a work order by its order number
func (r *GormWorkOrderRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*workshop.WorkOrder, error) {
	var model models.WorkOrderModel
	if err := r.db.WithContext(ctx).
		Preload("LineItems").
		First(&model, "order_number = ?", orderNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns all work orders
func (r *GormWorkOrderRepository) FindAll(ctx context.Context) ([]workshop.WorkOrder, error) {
	var workOrderModels []models.WorkOrderModel
	if err := r.db.WithContext(ctx).
		Preload("LineItems").
		Order("created_at DESC").
		Find(&workOrderModels).Error; err != nil {
		return nil, err
	}
	orders := make([]workshop.WorkOrder, len(workOrderModels))
	for i, model := range workOrderModels {
		orders[i] = *model.ToDomain()
	}
	return orders, nil
}

// Save creates or updates a work order together with its line items
func (r *GormWorkOrderRepository) Save(ctx context.Context, wo *workshop.WorkOrder) error {
	model := models.WorkOrderModelFromDomain(wo)
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return err
	}
	return r.replaceLineItems(ctx, model)
}

// SaveWithLock saves with optimistic locking. The line item set is replaced
// as a whole after the version-guarded row update succeeds.
func (r *GormWorkOrderRepository) SaveWithLock(ctx context.Context, wo *workshop.WorkOrder) error {
	model := models.WorkOrderModelFromDomain(wo)
	result := r.db.WithContext(ctx).
		Model(model).
		Where("id = ? AND version = ?", wo.ID, wo.Version-1).
		Select("*").
		Omit("LineItems", "created_at").
		Updates(model)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("OPTIMISTIC_LOCK_ERROR", "The record has been modified by another transaction")
	}
	return r.replaceLineItems(ctx, model)
}

func (r *GormWorkOrderRepository) replaceLineItems(ctx context.Context, model *models.WorkOrderModel) error {
	if err := r.db.WithContext(ctx).
		Where("work_order_id = ?", model.ID).
		Delete(&models.WorkOrderLineItemModel{}).Error; err != nil {
		return err
	}
	if len(model.LineItems) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&model.LineItems).Error
}

// Delete removes a work order. Its payments must be detached by the caller first.
func (r *GormWorkOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).
		Where("work_order_id = ?", id).
		Delete(&models.WorkOrderLineItemModel{}).Error; err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&models.WorkOrderModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// SumPendingOutstanding totals open balances of work orders still counted on
// the workshop side. Promoted orders are excluded so the same debt is never
// reported twice.
func (r *GormWorkOrderRepository) SumPendingOutstanding(ctx context.Context) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	if err := r.db.WithContext(ctx).
		Model(&models.WorkOrderModel{}).
		Select("COALESCE(SUM(total_amount - paid_amount), 0) as total").
		Where("record_kind <> ? AND payment_status <> ?",
			workshop.RecordKindCurrentAccount, workshop.PaymentStatusPaid).
		Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

// CountByKind counts work orders in one reporting bucket
func (r *GormWorkOrderRepository) CountByKind(ctx context.Context, kind workshop.RecordKind) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.WorkOrderModel{}).
		Where("record_kind = ?", kind).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormWorkOrderRepository implements WorkOrderRepository
var _ workshop.WorkOrderRepository = (*GormWorkOrderRepository)(nil)
