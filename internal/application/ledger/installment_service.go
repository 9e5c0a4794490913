package ledger

import (
	"context"
	"fmt"

	"github.com/garage-erp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// InstallmentService converts an account entry's remaining debt into an
// N-part installment schedule. The per-installment figure is display-only:
// no future payment rows are created, each actual installment flows through
// PaymentService as an ordinary payment carrying its installment index.
type InstallmentService struct {
	tx     TxManager
	logger *zap.Logger
}

// NewInstallmentService creates a new InstallmentService
func NewInstallmentService(tx TxManager, logger *zap.Logger) *InstallmentService {
	return &InstallmentService{tx: tx, logger: logger}
}

// InstallmentPlanResult reports the created plan
type InstallmentPlanResult struct {
	AccountEntryID   uuid.UUID       `json:"account_entry_id"`
	InstallmentCount int             `json:"installment_count"`
	PerInstallment   decimal.Decimal `json:"per_installment"`
}

// CreatePlan marks the entry as on-installment and returns the equal split
// of its remaining debt.
func (s *InstallmentService) CreatePlan(ctx context.Context, entryID uuid.UUID, count int) (*InstallmentPlanResult, error) {
	if count < 2 {
		return nil, shared.NewDomainError("INVALID_INSTALLMENT_COUNT", "Installment count must be at least 2")
	}

	var result *InstallmentPlanResult
	err := s.tx.Do(ctx, func(r Repos) error {
		entry, err := r.Entries.FindByID(ctx, entryID)
		if err != nil {
			return err
		}
		per, err := entry.PlanInstallments(count)
		if err != nil {
			return err
		}
		if err := r.Entries.SaveWithLock(ctx, entry); err != nil {
			return fmt.Errorf("failed to save account entry: %w", err)
		}
		result = &InstallmentPlanResult{
			AccountEntryID:   entry.ID,
			InstallmentCount: count,
			PerInstallment:   per,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("installment plan created",
		zap.String("account_entry_id", entryID.String()),
		zap.Int("count", count),
		zap.String("per_installment", result.PerInstallment.String()),
	)
	return result, nil
}
