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

// GormExpenseRepository implements ExpenseRepository using GORM
type GormExpenseRepository struct {
	db *gorm.DB
}

// NewGormExpenseRepository creates a new GormExpenseRepository
func NewGormExpenseRepository(db *gorm.DB) *GormExpenseRepository {
	return &GormExpenseRepository{db: db}
}

// Create inserts an expense row
func (r *GormExpenseRepository) Create(ctx context.Context, e *procurement.Expense) error {
	model := models.ExpenseModelFromDomain(e)
	return r.db.WithContext(ctx).Create(model).Error
}

// FindByID finds an expense by its ID
func (r *GormExpenseRepository) FindByID(ctx context.Context, id uuid.UUID) (*procurement.Expense, error) {
	var model models.ExpenseModel
	if err := r.db.WithContext(ctx).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Ensure GormExpenseRepository implements ExpenseRepository
var _ procurement.ExpenseRepository = (*GormExpenseRepository)(nil)
