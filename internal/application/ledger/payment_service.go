package ledger

import (
	"context"
	"fmt"

	"github.com/garage-erp/backend/internal/domain/ledger"
	"github.com/garage-erp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PaymentService applies payments to work orders and current account entries.
// It is the one write path for the receivable side: every applied payment
// inserts an immutable payment row, bumps the denormalized paid total and
// derives the new status inside a single transaction, then cascades full
// settlement to the linked counterpart.
type PaymentService struct {
	tx     TxManager
	logger *zap.Logger
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(tx TxManager, logger *zap.Logger) *PaymentService {
	return &PaymentService{tx: tx, logger: logger}
}

// ApplyPaymentRequest carries one payment application
type ApplyPaymentRequest struct {
	TargetKind    ledger.TargetKind
	TargetID      uuid.UUID
	Amount        decimal.Decimal
	Method        ledger.PaymentMethod
	Memo          string
	InstallmentNo *int
	// IdempotencyKey is optional. Without it a replayed request records a
	// second payment and double-applies the amount - the caller owns retry
	// safety. With it, a duplicate key is rejected before any mutation.
	IdempotencyKey string
}

// ApplyPaymentResult reports the balance after application
type ApplyPaymentResult struct {
	PaymentID uuid.UUID       `json:"payment_id"`
	Remaining decimal.Decimal `json:"remaining"`
	Status    string          `json:"status"`
}

// ApplyPayment validates the request, then runs the five-step application
// atomically: payment insert, paid-total bump, balance clamp, status
// derivation, settlement cascade. A store failure anywhere rolls the whole
// operation back - a payment row is never observable without its balance
// effects.
func (s *PaymentService) ApplyPayment(ctx context.Context, req ApplyPaymentRequest) (*ApplyPaymentResult, error) {
	if !req.TargetKind.IsValid() {
		return nil, shared.NewDomainError("INVALID_TARGET", "Payment target must be a work order or an account entry")
	}
	if req.TargetID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TARGET", "Payment target ID cannot be empty")
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if !req.Method.IsValid() {
		return nil, shared.NewDomainError("INVALID_METHOD", "Unknown payment method")
	}

	var result *ApplyPaymentResult
	err := s.tx.Do(ctx, func(r Repos) error {
		if req.IdempotencyKey != "" {
			exists, err := r.Payments.ExistsByIdempotencyKey(ctx, req.IdempotencyKey)
			if err != nil {
				return fmt.Errorf("failed to check idempotency key: %w", err)
			}
			if exists {
				return shared.ErrDuplicatePayment
			}
		}

		switch req.TargetKind {
		case ledger.TargetWorkOrder:
			res, err := s.applyToWorkOrder(ctx, r, req)
			if err != nil {
				return err
			}
			result = res
		case ledger.TargetAccountEntry:
			res, err := s.applyToAccountEntry(ctx, r, req)
			if err != nil {
				return err
			}
			result = res
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("payment applied",
		zap.String("target_kind", string(req.TargetKind)),
		zap.String("target_id", req.TargetID.String()),
		zap.String("amount", req.Amount.String()),
		zap.String("remaining", result.Remaining.String()),
		zap.String("status", result.Status),
	)
	return result, nil
}

func (s *PaymentService) applyToWorkOrder(ctx context.Context, r Repos, req ApplyPaymentRequest) (*ApplyPaymentResult, error) {
	wo, err := r.WorkOrders.FindByID(ctx, req.TargetID)
	if err != nil {
		return nil, err
	}

	payment, err := s.buildPayment(req)
	if err != nil {
		return nil, err
	}
	if err := r.Payments.Create(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}

	if err := wo.RecordPayment(req.Amount); err != nil {
		return nil, err
	}
	if err := r.WorkOrders.SaveWithLock(ctx, wo); err != nil {
		return nil, fmt.Errorf("failed to save work order: %w", err)
	}

	// Partial payments on a linked work order never push amounts to the
	// entry - it keeps its own payment trail. Only full settlement crosses
	// over, so the two sides can't disagree while a balance is open.
	if wo.IsSettled() && wo.LinkedAccountID != nil {
		entry, err := r.Entries.FindByID(ctx, *wo.LinkedAccountID)
		if err != nil {
			return nil, fmt.Errorf("failed to load linked account entry: %w", err)
		}
		entry.SettleInFull()
		if err := r.Entries.SaveWithLock(ctx, entry); err != nil {
			return nil, fmt.Errorf("failed to cascade settlement to account entry: %w", err)
		}
	}

	return &ApplyPaymentResult{
		PaymentID: payment.ID,
		Remaining: wo.Outstanding(),
		Status:    string(wo.PaymentStatus),
	}, nil
}

func (s *PaymentService) applyToAccountEntry(ctx context.Context, r Repos, req ApplyPaymentRequest) (*ApplyPaymentResult, error) {
	entry, err := r.Entries.FindByID(ctx, req.TargetID)
	if err != nil {
		return nil, err
	}

	payment, err := s.buildPayment(req)
	if err != nil {
		return nil, err
	}
	if err := r.Payments.Create(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}

	if err := entry.RecordPayment(req.Amount); err != nil {
		return nil, err
	}
	if err := r.Entries.SaveWithLock(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to save account entry: %w", err)
	}

	if entry.IsSettled() && entry.WorkOrderID != nil {
		wo, err := r.WorkOrders.FindByID(ctx, *entry.WorkOrderID)
		if err != nil {
			return nil, fmt.Errorf("failed to load linked work order: %w", err)
		}
		wo.SettleInFull()
		if err := r.WorkOrders.SaveWithLock(ctx, wo); err != nil {
			return nil, fmt.Errorf("failed to cascade settlement to work order: %w", err)
		}
	}

	return &ApplyPaymentResult{
		PaymentID: payment.ID,
		Remaining: entry.RemainingDebt,
		Status:    string(entry.Status),
	}, nil
}

func (s *PaymentService) buildPayment(req ApplyPaymentRequest) (*ledger.Payment, error) {
	payment, err := ledger.NewPayment(req.TargetKind, req.TargetID, req.Amount, req.Method, req.Memo)
	if err != nil {
		return nil, err
	}
	if req.InstallmentNo != nil {
		payment.WithInstallmentNo(*req.InstallmentNo)
	}
	if req.IdempotencyKey != "" {
		payment.WithIdempotencyKey(req.IdempotencyKey)
	}
	return payment, nil
}
