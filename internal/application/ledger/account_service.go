package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/garage-erp/backend/internal/domain/ledger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// AccountService covers standalone current account entries: manual creation
// (e.g. a company-level tab with no work order behind it) and deletion.
type AccountService struct {
	tx     TxManager
	logger *zap.Logger
}

// NewAccountService creates a new AccountService
func NewAccountService(tx TxManager, logger *zap.Logger) *AccountService {
	return &AccountService{tx: tx, logger: logger}
}

// CreateEntryRequest carries a standalone entry creation
type CreateEntryRequest struct {
	CustomerName      string
	CompanyName       string
	InvoiceAmount     decimal.Decimal
	RecurringCustomer bool
	Remark            string
}

// Create inserts a standalone account entry with a generated account number
func (s *AccountService) Create(ctx context.Context, req CreateEntryRequest) (*ledger.AccountEntry, error) {
	var entry *ledger.AccountEntry
	err := s.tx.Do(ctx, func(r Repos) error {
		seq, err := r.Sequences.Next(ctx, "CA", time.Now().Year())
		if err != nil {
			return fmt.Errorf("failed to generate account number: %w", err)
		}
		accountNumber := fmt.Sprintf("CA-%d-%05d", time.Now().Year(), seq)

		entry, err = ledger.NewAccountEntry(accountNumber, nil, req.CustomerName, req.CompanyName, req.InvoiceAmount, decimal.Zero, req.RecurringCustomer)
		if err != nil {
			return err
		}
		entry.Remark = req.Remark
		if err := r.Entries.Save(ctx, entry); err != nil {
			return fmt.Errorf("failed to save account entry: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("account entry created",
		zap.String("account_entry_id", entry.ID.String()),
		zap.String("account_number", entry.AccountNumber),
	)
	return entry, nil
}

// Delete removes an account entry. Payments referencing it are detached
// (their entry reference cleared) rather than deleted, so historical totals
// survive record removal. A payment also attributed to a work order keeps
// that side.
func (s *AccountService) Delete(ctx context.Context, entryID uuid.UUID) error {
	return s.tx.Do(ctx, func(r Repos) error {
		entry, err := r.Entries.FindByID(ctx, entryID)
		if err != nil {
			return err
		}
		if err := r.Payments.DetachFromAccountEntry(ctx, entryID); err != nil {
			return fmt.Errorf("failed to detach payments: %w", err)
		}
		if err := r.Entries.Delete(ctx, entry.ID); err != nil {
			return fmt.Errorf("failed to delete account entry: %w", err)
		}
		return nil
	})
}
