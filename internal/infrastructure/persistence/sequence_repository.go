package persistence

import (
	"context"

	"github.com/garage-erp/backend/internal/domain/ledger"
	"gorm.io/gorm"
)

// GormSequenceRepository hands out document numbers from per-(prefix, year)
// counter rows. The bump is one atomic upsert, so concurrent creates inside
// separate transactions can never draw the same number the way counting
// existing rows would.
type GormSequenceRepository struct {
	db *gorm.DB
}

// NewGormSequenceRepository creates a new GormSequenceRepository
func NewGormSequenceRepository(db *gorm.DB) *GormSequenceRepository {
	return &GormSequenceRepository{db: db}
}

// Next returns the next number for the given prefix and year
func (r *GormSequenceRepository) Next(ctx context.Context, prefix string, year int) (int64, error) {
	var counter int64
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO number_sequences (prefix, year, counter)
		VALUES (?, ?, 1)
		ON CONFLICT (prefix, year)
		DO UPDATE SET counter = number_sequences.counter + 1
		RETURNING counter`,
		prefix, year,
	).Scan(&counter).Error
	if err != nil {
		return 0, err
	}
	return counter, nil
}

// Ensure GormSequenceRepository implements SequenceRepository
var _ ledger.SequenceRepository = (*GormSequenceRepository)(nil)
