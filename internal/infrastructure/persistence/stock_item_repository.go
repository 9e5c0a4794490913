package persistence

import (
	"context"
	"errors"

	"github.com/garage-erp/backend/internal/domain/procurement"
	"github.com/garage-erp/backend/internal/domain/shared"
	"github.com/garage-erp/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormStockItemRepository implements StockItemRepository using GORM
type GormStockItemRepository struct {
	db *gorm.DB
}

// NewGormStockItemRepository creates a new GormStockItemRepository
func NewGormStockItemRepository(db *gorm.DB) *GormStockItemRepository {
	return &GormStockItemRepository{db: db}
}

// FindByNameAndSupplier finds the stock row for an item name at a supplier
func (r *GormStockItemRepository) FindByNameAndSupplier(ctx context.Context, name string, supplierID uuid.UUID) (*procurement.StockItem, error) {
	var model models.StockItemModel
	if err := r.db.WithContext(ctx).
		Where("name = ? AND supplier_id = ?", name, supplierID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates a stock row
func (r *GormStockItemRepository) Save(ctx context.Context, item *procurement.StockItem) error {
	model := models.StockItemModelFromDomain(item)
	return r.db.WithContext(ctx).Save(model).Error
}

// Ensure GormStockItemRepository implements StockItemRepository
var _ procurement.StockItemRepository = (*GormStockItemRepository)(nil)
