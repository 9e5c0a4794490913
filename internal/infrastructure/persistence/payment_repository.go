package persistence

import (
	"context"
	"errors"

	"github.com/garage-erp/backend/internal/domain/ledger"
	"github.com/garage-erp/backend/internal/domain/shared"
	"github.com/garage-erp/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormPaymentRepository implements PaymentRepository using GORM.
// Payment rows are append-only: they are created, re-attributed, or detached,
// never updated in place or deleted.
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository creates a new GormPaymentRepository
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// Create inserts a new payment row
func (r *GormPaymentRepository) Create(ctx context.Context, p *ledger.Payment) error {
	model := models.PaymentModelFromDomain(p)
	return r.db.WithContext(ctx).Create(model).Error
}

// FindByID finds a payment by its ID
func (r *GormPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Payment, error) {
	var model models.PaymentModel
	if err := r.db.WithContext(ctx).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByWorkOrderID returns all payments applied to a work order, oldest first
func (r *GormPaymentRepository) FindByWorkOrderID(ctx context.Context, workOrderID uuid.UUID) ([]ledger.Payment, error) {
	return r.findAll(ctx, "work_order_id = ?", workOrderID)
}

// FindByAccountEntryID returns all payments attributed to an account entry, oldest first
func (r *GormPaymentRepository) FindByAccountEntryID(ctx context.Context, entryID uuid.UUID) ([]ledger.Payment, error) {
	return r.findAll(ctx, "account_entry_id = ?", entryID)
}

func (r *GormPaymentRepository) findAll(ctx context.Context, query string, arg any) ([]ledger.Payment, error) {
	var paymentModels []models.PaymentModel
	if err := r.db.WithContext(ctx).
		Where(query, arg).
		Order("paid_at ASC, created_at ASC").
		Find(&paymentModels).Error; err != nil {
		return nil, err
	}
	payments := make([]ledger.Payment, len(paymentModels))
	for i, model := range paymentModels {
		payments[i] = *model.ToDomain()
	}
	return payments, nil
}

// ExistsByIdempotencyKey reports whether a payment with the key was already recorded
func (r *GormPaymentRepository) ExistsByIdempotencyKey(ctx context.Context, key string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.PaymentModel{}).
		Where("idempotency_key = ?", key).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// SumByWorkOrderID totals the payments applied to a work order
func (r *GormPaymentRepository) SumByWorkOrderID(ctx context.Context, workOrderID uuid.UUID) (decimal.Decimal, error) {
	return r.sum(ctx, "work_order_id = ?", workOrderID)
}

// SumByAccountEntryID totals the payments attributed to an account entry
func (r *GormPaymentRepository) SumByAccountEntryID(ctx context.Context, entryID uuid.UUID) (decimal.Decimal, error) {
	return r.sum(ctx, "account_entry_id = ?", entryID)
}

func (r *GormPaymentRepository) sum(ctx context.Context, query string, arg any) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	if err := r.db.WithContext(ctx).
		Model(&models.PaymentModel{}).
		Select("COALESCE(SUM(amount), 0) as total").
		Where(query, arg).
		Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

// AttachToAccountEntry re-attributes a work order's payments to the given
// account entry. The work order reference stays in place so history remains
// queryable from both sides.
func (r *GormPaymentRepository) AttachToAccountEntry(ctx context.Context, workOrderID, entryID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.PaymentModel{}).
		Where("work_order_id = ?", workOrderID).
		Update("account_entry_id", entryID).Error
}

// DetachFromAccountEntry clears the account entry reference on its payments
func (r *GormPaymentRepository) DetachFromAccountEntry(ctx context.Context, entryID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.PaymentModel{}).
		Where("account_entry_id = ?", entryID).
		Update("account_entry_id", nil).Error
}

// DetachFromWorkOrder clears the work order reference on its payments
func (r *GormPaymentRepository) DetachFromWorkOrder(ctx context.Context, workOrderID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.PaymentModel{}).
		Where("work_order_id = ?", workOrderID).
		Update("work_order_id", nil).Error
}

// Ensure GormPaymentRepository implements PaymentRepository
var _ ledger.PaymentRepository = (*GormPaymentRepository)(nil)
