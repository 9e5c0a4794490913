package procurement

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/garage-erp/backend/internal/domain/ledger"
	"github.com/garage-erp/backend/internal/domain/procurement"
	"github.com/garage-erp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ProcurementService is the payable-side mirror of the payment engine:
// purchases increase a supplier's running debt, payments and supplier-tagged
// expenses decrease it. Both payment entry points funnel through one shared
// pay path so the totals are bumped exactly once.
type ProcurementService struct {
	tx     TxManager
	logger *zap.Logger
}

// NewProcurementService creates a new ProcurementService
func NewProcurementService(tx TxManager, logger *zap.Logger) *ProcurementService {
	return &ProcurementService{tx: tx, logger: logger}
}

// PurchaseItemInput is one requested purchase line
type PurchaseItemInput struct {
	Name      string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
}

// RecordPurchase persists a received delivery, bumps the supplier's debt by
// the item total, and upserts a stock row per item (merge by item name +
// supplier). All inside one transaction.
func (s *ProcurementService) RecordPurchase(ctx context.Context, supplierID uuid.UUID, inputs []PurchaseItemInput) (*procurement.Purchase, error) {
	if len(inputs) == 0 {
		return nil, shared.NewDomainError("INVALID_PURCHASE", "A purchase needs at least one item")
	}
	items := make([]procurement.PurchaseItem, 0, len(inputs))
	for _, in := range inputs {
		item, err := procurement.NewPurchaseItem(in.Name, in.Quantity, in.UnitPrice)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	var purchase *procurement.Purchase
	err := s.tx.Do(ctx, func(r Repos) error {
		supplier, err := r.Suppliers.FindByID(ctx, supplierID)
		if err != nil {
			return err
		}

		seq, err := r.Sequences.Next(ctx, "PO", time.Now().Year())
		if err != nil {
			return fmt.Errorf("failed to generate purchase number: %w", err)
		}
		purchaseNumber := fmt.Sprintf("PO-%d-%05d", time.Now().Year(), seq)

		purchase, err = procurement.NewPurchase(purchaseNumber, supplierID, items)
		if err != nil {
			return err
		}
		if err := r.Purchases.Create(ctx, purchase); err != nil {
			return fmt.Errorf("failed to save purchase: %w", err)
		}

		if err := supplier.AddDebt(purchase.TotalAmount); err != nil {
			return err
		}
		if err := r.Suppliers.SaveWithLock(ctx, supplier); err != nil {
			return fmt.Errorf("failed to save supplier: %w", err)
		}

		for _, item := range items {
			if err := s.receiveStock(ctx, r, supplierID, item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("supplier purchase recorded",
		zap.String("supplier_id", supplierID.String()),
		zap.String("purchase_number", purchase.PurchaseNumber),
		zap.String("total", purchase.TotalAmount.String()),
	)
	return purchase, nil
}

func (s *ProcurementService) receiveStock(ctx context.Context, r Repos, supplierID uuid.UUID, item procurement.PurchaseItem) error {
	existing, err := r.Stock.FindByNameAndSupplier(ctx, item.Name, supplierID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return fmt.Errorf("failed to look up stock item: %w", err)
	}
	if existing != nil {
		existing.Receive(item.Quantity, item.UnitPrice)
		if err := r.Stock.Save(ctx, existing); err != nil {
			return fmt.Errorf("failed to update stock item: %w", err)
		}
		return nil
	}

	stock, err := procurement.NewStockItem(item.Name, supplierID, item.Quantity, item.UnitPrice)
	if err != nil {
		return err
	}
	if err := r.Stock.Save(ctx, stock); err != nil {
		return fmt.Errorf("failed to insert stock item: %w", err)
	}
	return nil
}

// RecordSupplierPayment logs an immutable supplier payment and bumps the
// supplier's running paid total.
func (s *ProcurementService) RecordSupplierPayment(ctx context.Context, supplierID uuid.UUID, amount decimal.Decimal, method ledger.PaymentMethod, memo string) (*procurement.Supplier, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_METHOD", "Unknown payment method")
	}

	var supplier *procurement.Supplier
	err := s.tx.Do(ctx, func(r Repos) error {
		var err error
		supplier, err = s.paySupplier(ctx, r, supplierID, amount, method, procurement.PaymentSourceDirect, memo)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("supplier payment recorded",
		zap.String("supplier_id", supplierID.String()),
		zap.String("amount", amount.String()),
		zap.String("outstanding", supplier.Outstanding().String()),
	)
	return supplier, nil
}

// RecordExpenseRequest carries an expense entry
type RecordExpenseRequest struct {
	Description string
	Category    string
	Amount      decimal.Decimal
	SupplierID  *uuid.UUID
	Method      ledger.PaymentMethod
}

// RecordExpense logs an expense. A supplier-tagged expense is also a payment
// to that supplier and goes through the same shared pay path as a direct
// payment, so the two entry points can never diverge.
func (s *ProcurementService) RecordExpense(ctx context.Context, req RecordExpenseRequest) (*procurement.Expense, error) {
	expense, err := procurement.NewExpense(req.Description, req.Category, req.Amount, req.SupplierID)
	if err != nil {
		return nil, err
	}
	if expense.IsSupplierPayment() && !req.Method.IsValid() {
		return nil, shared.NewDomainError("INVALID_METHOD", "Unknown payment method")
	}

	err = s.tx.Do(ctx, func(r Repos) error {
		if err := r.Expenses.Create(ctx, expense); err != nil {
			return fmt.Errorf("failed to save expense: %w", err)
		}
		if expense.IsSupplierPayment() {
			if _, err := s.paySupplier(ctx, r, *req.SupplierID, req.Amount, req.Method, procurement.PaymentSourceExpense, req.Description); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return expense, nil
}

// paySupplier is the single shared pay path: bump the running paid total and
// log the immutable payment row, atomically with whatever the caller wraps
// around it.
func (s *ProcurementService) paySupplier(ctx context.Context, r Repos, supplierID uuid.UUID, amount decimal.Decimal, method ledger.PaymentMethod, source procurement.PaymentSource, memo string) (*procurement.Supplier, error) {
	supplier, err := r.Suppliers.FindByID(ctx, supplierID)
	if err != nil {
		return nil, err
	}

	payment, err := procurement.NewSupplierPayment(supplierID, amount, method, source, memo)
	if err != nil {
		return nil, err
	}
	if err := r.SupplierPayments.Create(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to save supplier payment: %w", err)
	}

	if err := supplier.AddPaid(amount); err != nil {
		return nil, err
	}
	if err := r.Suppliers.SaveWithLock(ctx, supplier); err != nil {
		return nil, fmt.Errorf("failed to save supplier: %w", err)
	}
	return supplier, nil
}

// DeletePurchase removes a purchase and reverses the supplier's running
// totals by the purchase's own stored TotalAmount/PaidAmount split, trusting
// the purchase's denormalized fields rather than re-deriving from remaining
// payments.
func (s *ProcurementService) DeletePurchase(ctx context.Context, purchaseID uuid.UUID) error {
	return s.tx.Do(ctx, func(r Repos) error {
		purchase, err := r.Purchases.FindByID(ctx, purchaseID)
		if err != nil {
			return err
		}
		supplier, err := r.Suppliers.FindByID(ctx, purchase.SupplierID)
		if err != nil {
			return err
		}

		supplier.ReversePurchase(purchase.TotalAmount, purchase.PaidAmount)
		if err := r.Suppliers.SaveWithLock(ctx, supplier); err != nil {
			return fmt.Errorf("failed to save supplier: %w", err)
		}
		if err := r.Purchases.Delete(ctx, purchaseID); err != nil {
			return fmt.Errorf("failed to delete purchase: %w", err)
		}
		return nil
	})
}

// CreateSupplier inserts a new supplier with zeroed totals
func (s *ProcurementService) CreateSupplier(ctx context.Context, name, phone string) (*procurement.Supplier, error) {
	supplier, err := procurement.NewSupplier(name, phone)
	if err != nil {
		return nil, err
	}
	err = s.tx.Do(ctx, func(r Repos) error {
		return r.Suppliers.Save(ctx, supplier)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save supplier: %w", err)
	}
	return supplier, nil
}
