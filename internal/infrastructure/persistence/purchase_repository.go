package persistence

import (
	"context"
	"errors"

	"github.com/garage-erp/backend/internal/domain/procurement"
	"github.com/garage-erp/backend/internal/domain/shared"
	"github.com/garage-erp/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormPurchaseRepository implements PurchaseRepository using GORM
type GormPurchaseRepository struct {
	db *gorm.DB
}

// NewGormPurchaseRepository creates a new GormPurchaseRepository
func NewGormPurchaseRepository(db *gorm.DB) *GormPurchaseRepository {
	return &GormPurchaseRepository{db: db}
}

// FindByID finds a purchase by its ID
func (r *GormPurchaseRepository) FindByID(ctx context.Context, id uuid.UUID) (*procurement.Purchase, error) {
	var model models.PurchaseModel
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindBySupplierID returns all purchases for a supplier, newest first
func (r *GormPurchaseRepository) FindBySupplierID(ctx context.Context, supplierID uuid.UUID) ([]procurement.Purchase, error) {
	var purchaseModels []models.PurchaseModel
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("supplier_id = ?", supplierID).
		Order("created_at DESC").
		Find(&purchaseModels).Error; err != nil {
		return nil, err
	}
	purchases := make([]procurement.Purchase, len(purchaseModels))
	for i, model := range purchaseModels {
		purchases[i] = *model.ToDomain()
	}
	return purchases, nil
}

// Create inserts a purchase with its line items
func (r *GormPurchaseRepository) Create(ctx context.Context, p *procurement.Purchase) error {
	model := models.PurchaseModelFromDomain(p)
	return r.db.WithContext(ctx).Create(model).Error
}

// Delete removes a purchase and its line items
func (r *GormPurchaseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).
		Where("purchase_id = ?", id).
		Delete(&models.PurchaseItemModel{}).Error; err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&models.PurchaseModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// SumTotalBySupplierID totals purchase amounts for a supplier
func (r *GormPurchaseRepository) SumTotalBySupplierID(ctx context.Context, supplierID uuid.UUID) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	if err := r.db.WithContext(ctx).
		Model(&models.PurchaseModel{}).
		Select("COALESCE(SUM(total_amount), 0) as total").
		Where("supplier_id = ?", supplierID).
		Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

// Ensure GormPurchaseRepository implements PurchaseRepository
var _ procurement.PurchaseRepository = (*GormPurchaseRepository)(nil)
