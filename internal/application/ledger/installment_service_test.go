package ledger

import (
	"context"
	"testing"

	"github.com/garage-erp/backend/internal/domain/ledger"
	"github.com/garage-erp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newInstallmentService(store *fakeStore) *InstallmentService {
	return NewInstallmentService(&fakeTxManager{store: store}, zap.NewNop())
}

func TestInstallmentService_CreatePlan(t *testing.T) {
	ctx := context.Background()

	t.Run("splits the remaining debt evenly", func(t *testing.T) {
		store := newFakeStore()
		entry := seedEntry(t, store, "900", "0", false)
		svc := newInstallmentService(store)

		result, err := svc.CreatePlan(ctx, entry.ID, 3)
		require.NoError(t, err)

		assert.Equal(t, entry.ID, result.AccountEntryID)
		assert.Equal(t, 3, result.InstallmentCount)
		assert.True(t, result.PerInstallment.Equal(decimal.RequireFromString("300")))
		assert.Equal(t, ledger.EntryStatusInstallment, entry.Status)
	})

	t.Run("plans over what is still owed, not the invoice", func(t *testing.T) {
		store := newFakeStore()
		entry := seedEntry(t, store, "1000", "400", false)
		svc := newInstallmentService(store)

		result, err := svc.CreatePlan(ctx, entry.ID, 2)
		require.NoError(t, err)
		assert.True(t, result.PerInstallment.Equal(decimal.RequireFromString("300")))
	})

	t.Run("rejects fewer than two installments", func(t *testing.T) {
		store := newFakeStore()
		entry := seedEntry(t, store, "900", "0", false)
		svc := newInstallmentService(store)

		_, err := svc.CreatePlan(ctx, entry.ID, 1)
		assert.Error(t, err)
		assert.Equal(t, ledger.EntryStatusUnpaid, entry.Status)
	})

	t.Run("unknown entry", func(t *testing.T) {
		store := newFakeStore()
		svc := newInstallmentService(store)

		_, err := svc.CreatePlan(ctx, uuid.New(), 3)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
