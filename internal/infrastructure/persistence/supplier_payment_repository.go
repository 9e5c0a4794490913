package persistence

import (
	"context"

	"github.com/garage-erp/backend/internal/domain/procurement"
	"github.com/garage-erp/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormSupplierPaymentRepository implements SupplierPaymentRepository using GORM
type GormSupplierPaymentRepository struct {
	db *gorm.DB
}

// NewGormSupplierPaymentRepository creates a new GormSupplierPaymentRepository
func NewGormSupplierPaymentRepository(db *gorm.DB) *GormSupplierPaymentRepository {
	return &GormSupplierPaymentRepository{db: db}
}

// Create inserts a supplier payment row
func (r *GormSupplierPaymentRepository) Create(ctx context.Context, p *procurement.SupplierPayment) error {
	model := models.SupplierPaymentModelFromDomain(p)
	return r.db.WithContext(ctx).Create(model).Error
}

// FindBySupplierID returns all payments to a supplier, oldest first
func (r *GormSupplierPaymentRepository) FindBySupplierID(ctx context.Context, supplierID uuid.UUID) ([]procurement.SupplierPayment, error) {
	var paymentModels []models.SupplierPaymentModel
	if err := r.db.WithContext(ctx).
		Where("supplier_id = ?", supplierID).
		Order("paid_at ASC, created_at ASC").
		Find(&paymentModels).Error; err != nil {
		return nil, err
	}
	payments := make([]procurement.SupplierPayment, len(paymentModels))
	for i, model := range paymentModels {
		payments[i] = *model.ToDomain()
	}
	return payments, nil
}

// SumBySupplierID totals the payments made to a supplier
func (r *GormSupplierPaymentRepository) SumBySupplierID(ctx context.Context, supplierID uuid.UUID) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	if err := r.db.WithContext(ctx).
		Model(&models.SupplierPaymentModel{}).
		Select("COALESCE(SUM(amount), 0) as total").
		Where("supplier_id = ?", supplierID).
		Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

// Ensure GormSupplierPaymentRepository implements SupplierPaymentRepository
var _ procurement.SupplierPaymentRepository = (*GormSupplierPaymentRepository)(nil)
