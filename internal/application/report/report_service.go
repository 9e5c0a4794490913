package report

import (
	"context"
	"fmt"

	"github.com/garage-erp/backend/internal/domain/ledger"
	"github.com/garage-erp/backend/internal/domain/procurement"
	"github.com/garage-erp/backend/internal/domain/workshop"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ReportService answers the read-only balance questions. Both sums exclude
// promoted work orders on the workshop side, so a balance carried into the
// current account is never counted twice.
type ReportService struct {
	workOrders workshop.WorkOrderRepository
	entries    ledger.AccountEntryRepository
	suppliers  procurement.SupplierRepository
	logger     *zap.Logger
}

// NewReportService creates a new ReportService
func NewReportService(
	workOrders workshop.WorkOrderRepository,
	entries ledger.AccountEntryRepository,
	suppliers procurement.SupplierRepository,
	logger *zap.Logger,
) *ReportService {
	return &ReportService{
		workOrders: workOrders,
		entries:    entries,
		suppliers:  suppliers,
		logger:     logger,
	}
}

// ReceivablesSummary breaks the money still owed to the shop into the
// workshop side and the current-account side
type ReceivablesSummary struct {
	PendingWorkOrders decimal.Decimal `json:"pending_work_orders"`
	AccountEntries    decimal.Decimal `json:"account_entries"`
	Total             decimal.Decimal `json:"total"`
}

// PendingReceivables sums outstanding work order balances and remaining
// current-account debt. Promoted work orders contribute only through their
// account entry.
func (s *ReportService) PendingReceivables(ctx context.Context) (*ReceivablesSummary, error) {
	workOrderTotal, err := s.workOrders.SumPendingOutstanding(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to sum work order balances: %w", err)
	}
	entryTotal, err := s.entries.SumRemainingDebt(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to sum account entry debt: %w", err)
	}
	return &ReceivablesSummary{
		PendingWorkOrders: workOrderTotal,
		AccountEntries:    entryTotal,
		Total:             workOrderTotal.Add(entryTotal),
	}, nil
}

// PayablesSummary carries the money owed to suppliers
type PayablesSummary struct {
	SupplierOutstanding decimal.Decimal `json:"supplier_outstanding"`
}

// SupplierPayables sums the outstanding balance across all suppliers
func (s *ReportService) SupplierPayables(ctx context.Context) (*PayablesSummary, error) {
	total, err := s.suppliers.SumOutstanding(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to sum supplier balances: %w", err)
	}
	return &PayablesSummary{SupplierOutstanding: total}, nil
}
