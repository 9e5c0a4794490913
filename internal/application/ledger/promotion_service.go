package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/garage-erp/backend/internal/domain/ledger"
	"github.com/garage-erp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PromotionService converts an open work order's debt into a tracked current
// account entry. After promotion the entry is the authoritative side for
// outstanding-debt reporting; the work order is reclassified and keeps a
// back-reference. The whole promotion is one transaction: a work order can
// never end up flagged as promoted without its entry, or the other way round.
type PromotionService struct {
	tx     TxManager
	logger *zap.Logger
}

// NewPromotionService creates a new PromotionService
func NewPromotionService(tx TxManager, logger *zap.Logger) *PromotionService {
	return &PromotionService{tx: tx, logger: logger}
}

// PromoteOverrides are optional caller adjustments applied to the new entry
type PromoteOverrides struct {
	CompanyName       string
	RecurringCustomer bool
	Remark            string
}

// Promote creates the linked account entry, carries the paid amount forward,
// re-attributes the existing payment history, and reclassifies the work order.
func (s *PromotionService) Promote(ctx context.Context, workOrderID uuid.UUID, overrides PromoteOverrides) (*ledger.AccountEntry, error) {
	var entry *ledger.AccountEntry
	err := s.tx.Do(ctx, func(r Repos) error {
		wo, err := r.WorkOrders.FindByID(ctx, workOrderID)
		if err != nil {
			return err
		}
		if wo.IsPromoted() {
			return shared.ErrAlreadyLinked
		}

		seq, err := r.Sequences.Next(ctx, "CA", time.Now().Year())
		if err != nil {
			return fmt.Errorf("failed to generate account number: %w", err)
		}
		accountNumber := fmt.Sprintf("CA-%d-%05d", time.Now().Year(), seq)

		companyName := overrides.CompanyName
		if companyName == "" && wo.CustomerName != "" {
			// Fuzzy company grouping: a customer whose name matches an
			// existing company tag joins that company's tab. Ambiguity
			// resolves to the lowest entry id, so grouping is stable.
			match, err := r.Entries.FindCompanyByName(ctx, wo.CustomerName)
			if err != nil && !errors.Is(err, shared.ErrNotFound) {
				return fmt.Errorf("failed to look up company grouping: %w", err)
			}
			if match != nil {
				companyName = match.CompanyName
			}
		}

		// Paid amount carries forward - payments applied before promotion
		// must not be lost.
		entry, err = ledger.NewAccountEntry(
			accountNumber,
			&wo.ID,
			wo.CustomerName,
			companyName,
			wo.TotalAmount,
			wo.PaidAmount,
			overrides.RecurringCustomer,
		)
		if err != nil {
			return err
		}
		entry.Remark = overrides.Remark
		if err := r.Entries.Save(ctx, entry); err != nil {
			return fmt.Errorf("failed to save account entry: %w", err)
		}

		// Existing payments become discoverable from the entry side too;
		// the work order reference stays so history reads from either side.
		if err := r.Payments.AttachToAccountEntry(ctx, wo.ID, entry.ID); err != nil {
			return fmt.Errorf("failed to re-attribute payments: %w", err)
		}

		if err := wo.MarkPromoted(entry.ID); err != nil {
			return err
		}
		if err := r.WorkOrders.SaveWithLock(ctx, wo); err != nil {
			return fmt.Errorf("failed to save work order: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("work order promoted to current account",
		zap.String("work_order_id", workOrderID.String()),
		zap.String("account_entry_id", entry.ID.String()),
		zap.String("account_number", entry.AccountNumber),
	)
	return entry, nil
}
