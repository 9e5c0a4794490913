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

// GormAccountEntryRepository implements AccountEntryRepository using GORM
type GormAccountEntryRepository struct {
	db *gorm.DB
}

// NewGormAccountEntryRepository creates a new GormAccountEntryRepository
func NewGormAccountEntryRepository(db *gorm.DB) *GormAccountEntryRepository {
	return &GormAccountEntryRepository{db: db}
}

// FindByID finds an account entry by its ID
func (r *GormAccountEntryRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.AccountEntry, error) {
	var model models.AccountEntryModel
	if err := r.db.WithContext(ctx).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByWorkOrderID finds the account entry linked to a work order
func (r *GormAccountEntryRepository) FindByWorkOrderID(ctx context.Context, workOrderID uuid.UUID) (*ledger.AccountEntry, error) {
	var model models.AccountEntryModel
	if err := r.db.WithContext(ctx).
		First(&model, "work_order_id = ?", workOrderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns all account entries
func (r *GormAccountEntryRepository) FindAll(ctx context.Context) ([]ledger.AccountEntry, error) {
	var entryModels []models.AccountEntryModel
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&entryModels).Error; err != nil {
		return nil, err
	}
	entries := make([]ledger.AccountEntry, len(entryModels))
	for i, model := range entryModels {
		entries[i] = *model.ToDomain()
	}
	return entries, nil
}

// FindCompanyByName performs the case-insensitive company lookup used for
// grouping promotions under one company. Ties resolve to the oldest entry so
// the grouping target is deterministic.
func (r *GormAccountEntryRepository) FindCompanyByName(ctx context.Context, name string) (*ledger.AccountEntry, error) {
	var model models.AccountEntryModel
	if err := r.db.WithContext(ctx).
		Where("LOWER(company_name) = LOWER(?)", name).
		Order("created_at ASC, id ASC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates an account entry
func (r *GormAccountEntryRepository) Save(ctx context.Context, entry *ledger.AccountEntry) error {
	model := models.AccountEntryModelFromDomain(entry)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock saves with optimistic locking
func (r *GormAccountEntryRepository) SaveWithLock(ctx context.Context, entry *ledger.AccountEntry) error {
	model := models.AccountEntryModelFromDomain(entry)
	result := r.db.WithContext(ctx).
		Model(model).
		Where("id = ? AND version = ?", entry.ID, entry.Version-1).
		Select("*").
		Omit("created_at").
		Updates(model)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("OPTIMISTIC_LOCK_ERROR", "The record has been modified by another transaction")
	}
	return nil
}

// Delete removes an account entry. Its payments must be detached by the caller first.
func (r *GormAccountEntryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.AccountEntryModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// SumRemainingDebt totals remaining debt across all account entries
func (r *GormAccountEntryRepository) SumRemainingDebt(ctx context.Context) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	if err := r.db.WithContext(ctx).
		Model(&models.AccountEntryModel{}).
		Select("COALESCE(SUM(remaining_debt), 0) as total").
		Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

// Ensure GormAccountEntryRepository implements AccountEntryRepository
var _ ledger.AccountEntryRepository = (*GormAccountEntryRepository)(nil)
