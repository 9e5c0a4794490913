package ledger

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/garage-erp/backend/internal/domain/ledger"
	"github.com/garage-erp/backend/internal/domain/shared"
	"github.com/garage-erp/backend/internal/domain/workshop"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// ============================================
// In-memory store shared by the service tests
// ============================================

// fakeStore backs the fake repositories with plain maps. The fake tx manager
// hands out repositories bound to the same store, mirroring how the real tx
// manager binds them to one transaction. Rollback is not simulated.
type fakeStore struct {
	workOrders map[uuid.UUID]*workshop.WorkOrder
	entries    map[uuid.UUID]*ledger.AccountEntry
	payments   []*ledger.Payment
	sequences  map[string]int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		workOrders: make(map[uuid.UUID]*workshop.WorkOrder),
		entries:    make(map[uuid.UUID]*ledger.AccountEntry),
		sequences:  make(map[string]int64),
	}
}

type fakeTxManager struct {
	store *fakeStore
}

func (m *fakeTxManager) Do(_ context.Context, fn func(r Repos) error) error {
	return fn(Repos{
		WorkOrders: &fakeWorkOrderRepo{store: m.store},
		Entries:    &fakeEntryRepo{store: m.store},
		Payments:   &fakePaymentRepo{store: m.store},
		Sequences:  &fakeSequenceRepo{store: m.store},
	})
}

// ============================================
// Work order repository
// ============================================

type fakeWorkOrderRepo struct {
	store *fakeStore
}

func (r *fakeWorkOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*workshop.WorkOrder, error) {
	wo, ok := r.store.workOrders[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return wo, nil
}

func (r *fakeWorkOrderRepo) FindByOrderNumber(_ context.Context, orderNumber string) (*workshop.WorkOrder, error) {
	for _, wo := range r.store.workOrders {
		if wo.OrderNumber == orderNumber {
			return wo, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeWorkOrderRepo) FindAll(_ context.Context) ([]workshop.WorkOrder, error) {
	out := make([]workshop.WorkOrder, 0, len(r.store.workOrders))
	for _, wo := range r.store.workOrders {
		out = append(out, *wo)
	}
	return out, nil
}

func (r *fakeWorkOrderRepo) Save(_ context.Context, wo *workshop.WorkOrder) error {
	r.store.workOrders[wo.ID] = wo
	return nil
}

func (r *fakeWorkOrderRepo) SaveWithLock(_ context.Context, wo *workshop.WorkOrder) error {
	if _, ok := r.store.workOrders[wo.ID]; !ok {
		return shared.ErrConcurrencyConflict
	}
	r.store.workOrders[wo.ID] = wo
	return nil
}

func (r *fakeWorkOrderRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.store.workOrders, id)
	return nil
}

func (r *fakeWorkOrderRepo) SumPendingOutstanding(_ context.Context) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, wo := range r.store.workOrders {
		if wo.RecordKind == workshop.RecordKindCurrentAccount {
			continue
		}
		if wo.PaymentStatus != workshop.PaymentStatusPaid {
			sum = sum.Add(wo.Outstanding())
		}
	}
	return sum, nil
}

func (r *fakeWorkOrderRepo) CountByKind(_ context.Context, kind workshop.RecordKind) (int64, error) {
	var n int64
	for _, wo := range r.store.workOrders {
		if wo.RecordKind == kind {
			n++
		}
	}
	return n, nil
}

// ============================================
// Account entry repository
// ============================================

type fakeEntryRepo struct {
	store *fakeStore
}

func (r *fakeEntryRepo) FindByID(_ context.Context, id uuid.UUID) (*ledger.AccountEntry, error) {
	entry, ok := r.store.entries[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return entry, nil
}

func (r *fakeEntryRepo) FindByWorkOrderID(_ context.Context, workOrderID uuid.UUID) (*ledger.AccountEntry, error) {
	for _, entry := range r.store.entries {
		if entry.WorkOrderID != nil && *entry.WorkOrderID == workOrderID {
			return entry, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeEntryRepo) FindAll(_ context.Context) ([]ledger.AccountEntry, error) {
	out := make([]ledger.AccountEntry, 0, len(r.store.entries))
	for _, entry := range r.store.entries {
		out = append(out, *entry)
	}
	return out, nil
}

func (r *fakeEntryRepo) FindCompanyByName(_ context.Context, name string) (*ledger.AccountEntry, error) {
	var match *ledger.AccountEntry
	for _, entry := range r.store.entries {
		if !strings.EqualFold(entry.CompanyName, name) {
			continue
		}
		if match == nil || entry.CreatedAt.Before(match.CreatedAt) {
			match = entry
		}
	}
	if match == nil {
		return nil, shared.ErrNotFound
	}
	return match, nil
}

func (r *fakeEntryRepo) Save(_ context.Context, entry *ledger.AccountEntry) error {
	r.store.entries[entry.ID] = entry
	return nil
}

func (r *fakeEntryRepo) SaveWithLock(_ context.Context, entry *ledger.AccountEntry) error {
	if _, ok := r.store.entries[entry.ID]; !ok {
		return shared.ErrConcurrencyConflict
	}
	r.store.entries[entry.ID] = entry
	return nil
}

func (r *fakeEntryRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.store.entries, id)
	return nil
}

func (r *fakeEntryRepo) SumRemainingDebt(_ context.Context) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, entry := range r.store.entries {
		sum = sum.Add(entry.RemainingDebt)
	}
	return sum, nil
}

// ============================================
// Payment repository
// ============================================

type fakePaymentRepo struct {
	store *fakeStore
}

func (r *fakePaymentRepo) Create(_ context.Context, p *ledger.Payment) error {
	r.store.payments = append(r.store.payments, p)
	return nil
}

func (r *fakePaymentRepo) FindByID(_ context.Context, id uuid.UUID) (*ledger.Payment, error) {
	for _, p := range r.store.payments {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakePaymentRepo) FindByWorkOrderID(_ context.Context, workOrderID uuid.UUID) ([]ledger.Payment, error) {
	var out []ledger.Payment
	for _, p := range r.store.payments {
		if p.WorkOrderID != nil && *p.WorkOrderID == workOrderID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakePaymentRepo) FindByAccountEntryID(_ context.Context, entryID uuid.UUID) ([]ledger.Payment, error) {
	var out []ledger.Payment
	for _, p := range r.store.payments {
		if p.AccountEntryID != nil && *p.AccountEntryID == entryID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakePaymentRepo) ExistsByIdempotencyKey(_ context.Context, key string) (bool, error) {
	for _, p := range r.store.payments {
		if p.IdempotencyKey != nil && *p.IdempotencyKey == key {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakePaymentRepo) SumByWorkOrderID(ctx context.Context, workOrderID uuid.UUID) (decimal.Decimal, error) {
	payments, _ := r.FindByWorkOrderID(ctx, workOrderID)
	return ledger.DerivePaid(payments), nil
}

func (r *fakePaymentRepo) SumByAccountEntryID(ctx context.Context, entryID uuid.UUID) (decimal.Decimal, error) {
	payments, _ := r.FindByAccountEntryID(ctx, entryID)
	return ledger.DerivePaid(payments), nil
}

func (r *fakePaymentRepo) AttachToAccountEntry(_ context.Context, workOrderID, entryID uuid.UUID) error {
	for _, p := range r.store.payments {
		if p.WorkOrderID != nil && *p.WorkOrderID == workOrderID {
			id := entryID
			p.AccountEntryID = &id
		}
	}
	return nil
}

func (r *fakePaymentRepo) DetachFromAccountEntry(_ context.Context, entryID uuid.UUID) error {
	for _, p := range r.store.payments {
		if p.AccountEntryID != nil && *p.AccountEntryID == entryID {
			p.AccountEntryID = nil
		}
	}
	return nil
}

func (r *fakePaymentRepo) DetachFromWorkOrder(_ context.Context, workOrderID uuid.UUID) error {
	for _, p := range r.store.payments {
		if p.WorkOrderID != nil && *p.WorkOrderID == workOrderID {
			p.WorkOrderID = nil
		}
	}
	return nil
}

// ============================================
// Sequence repository
// ============================================

type fakeSequenceRepo struct {
	store *fakeStore
}

func (r *fakeSequenceRepo) Next(_ context.Context, prefix string, year int) (int64, error) {
	key := fmt.Sprintf("%s-%d", prefix, year)
	r.store.sequences[key]++
	return r.store.sequences[key], nil
}

// ============================================
// Seed helpers
// ============================================

func seedWorkOrder(t *testing.T, store *fakeStore, total string) *workshop.WorkOrder {
	t.Helper()
	amount := decimal.RequireFromString(total)
	wo, err := workshop.NewWorkOrder("WO-2026-00900", nil, "Test Customer", "34 TST 900", nil, &amount)
	require.NoError(t, err)
	store.workOrders[wo.ID] = wo
	return wo
}

func seedEntry(t *testing.T, store *fakeStore, invoice, paid string, recurring bool) *ledger.AccountEntry {
	t.Helper()
	entry, err := ledger.NewAccountEntry(
		"CA-2026-00900",
		nil,
		"Test Customer",
		"",
		decimal.RequireFromString(invoice),
		decimal.RequireFromString(paid),
		recurring,
	)
	require.NoError(t, err)
	store.entries[entry.ID] = entry
	return entry
}

func seedPayment(t *testing.T, store *fakeStore, kind ledger.TargetKind, targetID uuid.UUID, amount string) *ledger.Payment {
	t.Helper()
	p, err := ledger.NewPayment(kind, targetID, decimal.RequireFromString(amount), ledger.PaymentMethodCash, "")
	require.NoError(t, err)
	store.payments = append(store.payments, p)
	return p
}
