package procurement

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/garage-erp/backend/internal/domain/ledger"
	"github.com/garage-erp/backend/internal/domain/procurement"
	"github.com/garage-erp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// ============================================
// In-memory store and fakes
// ============================================

type fakeStore struct {
	suppliers map[uuid.UUID]*procurement.Supplier
	purchases map[uuid.UUID]*procurement.Purchase
	payments  []*procurement.SupplierPayment
	stock     []*procurement.StockItem
	expenses  map[uuid.UUID]*procurement.Expense
	sequences map[string]int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		suppliers: make(map[uuid.UUID]*procurement.Supplier),
		purchases: make(map[uuid.UUID]*procurement.Purchase),
		expenses:  make(map[uuid.UUID]*procurement.Expense),
		sequences: make(map[string]int64),
	}
}

type fakeTxManager struct {
	store *fakeStore
}

func (m *fakeTxManager) Do(_ context.Context, fn func(r Repos) error) error {
	return fn(Repos{
		Suppliers:        &fakeSupplierRepo{store: m.store},
		Purchases:        &fakePurchaseRepo{store: m.store},
		SupplierPayments: &fakeSupplierPaymentRepo{store: m.store},
		Stock:            &fakeStockRepo{store: m.store},
		Expenses:         &fakeExpenseRepo{store: m.store},
		Sequences:        &fakeSequenceRepo{store: m.store},
	})
}

type fakeSupplierRepo struct {
	store *fakeStore
}

func (r *fakeSupplierRepo) FindByID(_ context.Context, id uuid.UUID) (*procurement.Supplier, error) {
	s, ok := r.store.suppliers[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return s, nil
}

func (r *fakeSupplierRepo) Save(_ context.Context, s *procurement.Supplier) error {
	r.store.suppliers[s.ID] = s
	return nil
}

func (r *fakeSupplierRepo) SaveWithLock(_ context.Context, s *procurement.Supplier) error {
	if _, ok := r.store.suppliers[s.ID]; !ok {
		return shared.ErrConcurrencyConflict
	}
	r.store.suppliers[s.ID] = s
	return nil
}

func (r *fakeSupplierRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.store.suppliers, id)
	return nil
}

func (r *fakeSupplierRepo) SumOutstanding(_ context.Context) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, s := range r.store.suppliers {
		sum = sum.Add(s.Outstanding())
	}
	return sum, nil
}

type fakePurchaseRepo struct {
	store *fakeStore
}

func (r *fakePurchaseRepo) FindByID(_ context.Context, id uuid.UUID) (*procurement.Purchase, error) {
	p, ok := r.store.purchases[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return p, nil
}

func (r *fakePurchaseRepo) FindBySupplierID(_ context.Context, supplierID uuid.UUID) ([]procurement.Purchase, error) {
	var out []procurement.Purchase
	for _, p := range r.store.purchases {
		if p.SupplierID == supplierID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakePurchaseRepo) Create(_ context.Context, p *procurement.Purchase) error {
	r.store.purchases[p.ID] = p
	return nil
}

func (r *fakePurchaseRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.store.purchases, id)
	return nil
}

func (r *fakePurchaseRepo) SumTotalBySupplierID(_ context.Context, supplierID uuid.UUID) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, p := range r.store.purchases {
		if p.SupplierID == supplierID {
			sum = sum.Add(p.TotalAmount)
		}
	}
	return sum, nil
}

type fakeSupplierPaymentRepo struct {
	store *fakeStore
}

func (r *fakeSupplierPaymentRepo) Create(_ context.Context, p *procurement.SupplierPayment) error {
	r.store.payments = append(r.store.payments, p)
	return nil
}

func (r *fakeSupplierPaymentRepo) FindBySupplierID(_ context.Context, supplierID uuid.UUID) ([]procurement.SupplierPayment, error) {
	var out []procurement.SupplierPayment
	for _, p := range r.store.payments {
		if p.SupplierID == supplierID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeSupplierPaymentRepo) SumBySupplierID(_ context.Context, supplierID uuid.UUID) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, p := range r.store.payments {
		if p.SupplierID == supplierID {
			sum = sum.Add(p.Amount)
		}
	}
	return sum, nil
}

type fakeStockRepo struct {
	store *fakeStore
}

func (r *fakeStockRepo) FindByNameAndSupplier(_ context.Context, name string, supplierID uuid.UUID) (*procurement.StockItem, error) {
	for _, item := range r.store.stock {
		if item.SupplierID == supplierID && item.Name == name {
			return item, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeStockRepo) Save(_ context.Context, item *procurement.StockItem) error {
	for i, existing := range r.store.stock {
		if existing.ID == item.ID {
			r.store.stock[i] = item
			return nil
		}
	}
	r.store.stock = append(r.store.stock, item)
	return nil
}

type fakeExpenseRepo struct {
	store *fakeStore
}

func (r *fakeExpenseRepo) Create(_ context.Context, e *procurement.Expense) error {
	r.store.expenses[e.ID] = e
	return nil
}

func (r *fakeExpenseRepo) FindByID(_ context.Context, id uuid.UUID) (*procurement.Expense, error) {
	e, ok := r.store.expenses[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return e, nil
}

type fakeSequenceRepo struct {
	store *fakeStore
}

func (r *fakeSequenceRepo) Next(_ context.Context, prefix string, year int) (int64, error) {
	key := fmt.Sprintf("%s-%d", prefix, year)
	r.store.sequences[key]++
	return r.store.sequences[key], nil
}

func newService(store *fakeStore) *ProcurementService {
	return NewProcurementService(&fakeTxManager{store: store}, zap.NewNop())
}

func seedSupplier(t *testing.T, store *fakeStore, name string) *procurement.Supplier {
	t.Helper()
	s, err := procurement.NewSupplier(name, "0212 000 00 00")
	require.NoError(t, err)
	store.suppliers[s.ID] = s
	return s
}

// ============================================
// Tests
// ============================================

func TestProcurementService_CreateSupplier(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := newService(store)

	t.Run("creates with zeroed totals", func(t *testing.T) {
		s, err := svc.CreateSupplier(ctx, "Aydin Yedek Parca", "0212 555 11 22")
		require.NoError(t, err)
		assert.True(t, s.TotalDebt.IsZero())
		assert.True(t, s.TotalPaid.IsZero())
		assert.Contains(t, store.suppliers, s.ID)
	})

	t.Run("rejects an empty name", func(t *testing.T) {
		_, err := svc.CreateSupplier(ctx, "", "")
		assert.Error(t, err)
	})
}

func TestProcurementService_RecordPurchase(t *testing.T) {
	ctx := context.Background()

	t.Run("bumps the supplier debt and stocks the items", func(t *testing.T) {
		store := newFakeStore()
		supplier := seedSupplier(t, store, "Aydin Yedek Parca")
		svc := newService(store)

		purchase, err := svc.RecordPurchase(ctx, supplier.ID, []PurchaseItemInput{
			{Name: "Oil filter", Quantity: decimal.NewFromInt(10), UnitPrice: decimal.RequireFromString("45")},
			{Name: "Air filter", Quantity: decimal.NewFromInt(5), UnitPrice: decimal.RequireFromString("30")},
		})
		require.NoError(t, err)

		assert.Equal(t, fmt.Sprintf("PO-%d-00001", time.Now().Year()), purchase.PurchaseNumber)
		assert.True(t, purchase.TotalAmount.Equal(decimal.RequireFromString("600")))
		assert.True(t, supplier.TotalDebt.Equal(decimal.RequireFromString("600")))
		require.Len(t, store.stock, 2)
	})

	t.Run("merges repeat deliveries into the existing stock row", func(t *testing.T) {
		store := newFakeStore()
		supplier := seedSupplier(t, store, "Aydin Yedek Parca")
		svc := newService(store)

		_, err := svc.RecordPurchase(ctx, supplier.ID, []PurchaseItemInput{
			{Name: "Oil filter", Quantity: decimal.NewFromInt(10), UnitPrice: decimal.RequireFromString("45")},
		})
		require.NoError(t, err)
		_, err = svc.RecordPurchase(ctx, supplier.ID, []PurchaseItemInput{
			{Name: "Oil filter", Quantity: decimal.NewFromInt(4), UnitPrice: decimal.RequireFromString("50")},
		})
		require.NoError(t, err)

		require.Len(t, store.stock, 1)
		assert.True(t, store.stock[0].Quantity.Equal(decimal.NewFromInt(14)))
		assert.True(t, store.stock[0].LastUnitPrice.Equal(decimal.RequireFromString("50")))
	})

	t.Run("rejects an empty purchase", func(t *testing.T) {
		store := newFakeStore()
		supplier := seedSupplier(t, store, "Aydin Yedek Parca")
		svc := newService(store)

		_, err := svc.RecordPurchase(ctx, supplier.ID, nil)
		assert.Error(t, err)
		assert.True(t, supplier.TotalDebt.IsZero())
	})

	t.Run("unknown supplier", func(t *testing.T) {
		store := newFakeStore()
		svc := newService(store)

		_, err := svc.RecordPurchase(ctx, uuid.New(), []PurchaseItemInput{
			{Name: "Oil filter", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.RequireFromString("45")},
		})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestProcurementService_RecordSupplierPayment(t *testing.T) {
	ctx := context.Background()

	t.Run("logs the payment and reduces the outstanding balance", func(t *testing.T) {
		store := newFakeStore()
		supplier := seedSupplier(t, store, "Aydin Yedek Parca")
		require.NoError(t, supplier.AddDebt(decimal.RequireFromString("1200")))
		svc := newService(store)

		updated, err := svc.RecordSupplierPayment(ctx, supplier.ID, decimal.RequireFromString("500"), ledger.PaymentMethodTransfer, "invoice 42")
		require.NoError(t, err)

		assert.True(t, updated.Outstanding().Equal(decimal.RequireFromString("700")))
		require.Len(t, store.payments, 1)
		assert.Equal(t, procurement.PaymentSourceDirect, store.payments[0].Source)
		assert.Equal(t, "invoice 42", store.payments[0].Memo)
	})

	t.Run("rejects a non-positive amount", func(t *testing.T) {
		store := newFakeStore()
		supplier := seedSupplier(t, store, "Aydin Yedek Parca")
		svc := newService(store)

		_, err := svc.RecordSupplierPayment(ctx, supplier.ID, decimal.Zero, ledger.PaymentMethodCash, "")
		assert.Error(t, err)
		assert.Empty(t, store.payments)
	})

	t.Run("rejects an unknown method", func(t *testing.T) {
		store := newFakeStore()
		supplier := seedSupplier(t, store, "Aydin Yedek Parca")
		svc := newService(store)

		_, err := svc.RecordSupplierPayment(ctx, supplier.ID, decimal.RequireFromString("100"), "BARTER", "")
		assert.Error(t, err)
	})
}

func TestProcurementService_RecordExpense(t *testing.T) {
	ctx := context.Background()

	t.Run("plain expense touches no supplier", func(t *testing.T) {
		store := newFakeStore()
		svc := newService(store)

		expense, err := svc.RecordExpense(ctx, RecordExpenseRequest{
			Description: "Electricity bill",
			Category:    "utilities",
			Amount:      decimal.RequireFromString("850"),
		})
		require.NoError(t, err)

		assert.False(t, expense.IsSupplierPayment())
		assert.Contains(t, store.expenses, expense.ID)
		assert.Empty(t, store.payments)
	})

	t.Run("supplier-tagged expense pays the supplier", func(t *testing.T) {
		store := newFakeStore()
		supplier := seedSupplier(t, store, "Aydin Yedek Parca")
		require.NoError(t, supplier.AddDebt(decimal.RequireFromString("1000")))
		svc := newService(store)

		expense, err := svc.RecordExpense(ctx, RecordExpenseRequest{
			Description: "Parts invoice 17",
			Category:    "parts",
			Amount:      decimal.RequireFromString("400"),
			SupplierID:  &supplier.ID,
			Method:      ledger.PaymentMethodCash,
		})
		require.NoError(t, err)

		assert.True(t, expense.IsSupplierPayment())
		assert.True(t, supplier.Outstanding().Equal(decimal.RequireFromString("600")))
		require.Len(t, store.payments, 1)
		assert.Equal(t, procurement.PaymentSourceExpense, store.payments[0].Source)
	})

	t.Run("supplier-tagged expense needs a valid method", func(t *testing.T) {
		store := newFakeStore()
		supplier := seedSupplier(t, store, "Aydin Yedek Parca")
		svc := newService(store)

		_, err := svc.RecordExpense(ctx, RecordExpenseRequest{
			Description: "Parts invoice 18",
			Amount:      decimal.RequireFromString("100"),
			SupplierID:  &supplier.ID,
		})
		assert.Error(t, err)
		assert.Empty(t, store.expenses)
	})

	t.Run("unknown supplier on a tagged expense", func(t *testing.T) {
		store := newFakeStore()
		svc := newService(store)

		unknown := uuid.New()
		_, err := svc.RecordExpense(ctx, RecordExpenseRequest{
			Description: "Parts invoice 19",
			Amount:      decimal.RequireFromString("100"),
			SupplierID:  &unknown,
			Method:      ledger.PaymentMethodCash,
		})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestProcurementService_DeletePurchase(t *testing.T) {
	ctx := context.Background()

	t.Run("reverses the supplier totals by the purchase split", func(t *testing.T) {
		store := newFakeStore()
		supplier := seedSupplier(t, store, "Aydin Yedek Parca")
		svc := newService(store)

		purchase, err := svc.RecordPurchase(ctx, supplier.ID, []PurchaseItemInput{
			{Name: "Oil filter", Quantity: decimal.NewFromInt(10), UnitPrice: decimal.RequireFromString("45")},
		})
		require.NoError(t, err)
		require.True(t, supplier.TotalDebt.Equal(decimal.RequireFromString("450")))

		require.NoError(t, svc.DeletePurchase(ctx, purchase.ID))

		assert.True(t, supplier.TotalDebt.IsZero())
		assert.NotContains(t, store.purchases, purchase.ID)
	})

	t.Run("unknown purchase", func(t *testing.T) {
		store := newFakeStore()
		svc := newService(store)
		assert.ErrorIs(t, svc.DeletePurchase(ctx, uuid.New()), shared.ErrNotFound)
	})
}
