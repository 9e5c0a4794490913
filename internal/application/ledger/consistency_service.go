package ledger

import (
	"context"
	"fmt"

	"github.com/garage-erp/backend/internal/domain/ledger"
	"go.uber.org/zap"
)

// ConsistencyService recomputes the denormalized paid totals from the
// append-only payment history and flags drift. The denormalized columns are
// there for fast reads; replaying the history must always reproduce them,
// and any divergence is surfaced rather than silently absorbed.
type ConsistencyService struct {
	tx     TxManager
	logger *zap.Logger
}

// NewConsistencyService creates a new ConsistencyService
func NewConsistencyService(tx TxManager, logger *zap.Logger) *ConsistencyService {
	return &ConsistencyService{tx: tx, logger: logger}
}

// CheckReport lists every drifted running total found in one sweep
type CheckReport struct {
	Checked int            `json:"checked"`
	Drifts  []ledger.Drift `json:"drifts"`
}

// Clean returns true when no drift was found
func (r *CheckReport) Clean() bool {
	return len(r.Drifts) == 0
}

// Check sweeps all work orders and account entries, comparing each recorded
// paid total with the sum of its payment rows. Promoted work orders are
// skipped: their totals are forced by settlement cascade, and the linked
// entry is the authoritative side for the pair's debt. A linked entry is
// audited against the pair's shared payment pool, so payments applied on
// either side count exactly once.
func (s *ConsistencyService) Check(ctx context.Context) (*CheckReport, error) {
	report := &CheckReport{}
	err := s.tx.Do(ctx, func(r Repos) error {
		orders, err := r.WorkOrders.FindAll(ctx)
		if err != nil {
			return fmt.Errorf("failed to list work orders: %w", err)
		}
		for i := range orders {
			wo := &orders[i]
			if wo.IsPromoted() {
				continue
			}
			payments, err := r.Payments.FindByWorkOrderID(ctx, wo.ID)
			if err != nil {
				return fmt.Errorf("failed to load payments for work order %s: %w", wo.ID, err)
			}
			report.Checked++
			if drift := ledger.CheckPaidAmount(ledger.TargetWorkOrder, wo.ID, wo.PaidAmount, payments); drift != nil {
				report.Drifts = append(report.Drifts, *drift)
			}
		}

		entries, err := r.Entries.FindAll(ctx)
		if err != nil {
			return fmt.Errorf("failed to list account entries: %w", err)
		}
		for i := range entries {
			entry := &entries[i]
			payments, err := r.Payments.FindByAccountEntryID(ctx, entry.ID)
			if err != nil {
				return fmt.Errorf("failed to load payments for account entry %s: %w", entry.ID, err)
			}
			if entry.WorkOrderID != nil {
				woPayments, err := r.Payments.FindByWorkOrderID(ctx, *entry.WorkOrderID)
				if err != nil {
					return fmt.Errorf("failed to load payments for linked work order %s: %w", entry.WorkOrderID, err)
				}
				payments = mergePayments(payments, woPayments)
			}
			report.Checked++
			if drift := ledger.CheckPaidAmount(ledger.TargetAccountEntry, entry.ID, entry.PaidAmount, payments); drift != nil {
				report.Drifts = append(report.Drifts, *drift)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !report.Clean() {
		s.logger.Warn("ledger drift detected",
			zap.Int("checked", report.Checked),
			zap.Int("drifts", len(report.Drifts)),
		)
	}
	return report, nil
}

// mergePayments combines two payment slices, keeping each payment once even
// when it is reachable through both sides of a linked pair.
func mergePayments(a, b []ledger.Payment) []ledger.Payment {
	seen := make(map[string]struct{}, len(a))
	merged := make([]ledger.Payment, 0, len(a)+len(b))
	for i := range a {
		seen[a[i].ID.String()] = struct{}{}
		merged = append(merged, a[i])
	}
	for i := range b {
		if _, ok := seen[b[i].ID.String()]; ok {
			continue
		}
		merged = append(merged, b[i])
	}
	return merged
}
