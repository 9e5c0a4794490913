package ledger

import (
	"context"
	"testing"

	"github.com/garage-erp/backend/internal/domain/ledger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newConsistencyService(store *fakeStore) *ConsistencyService {
	return NewConsistencyService(&fakeTxManager{store: store}, zap.NewNop())
}

func TestConsistencyService_Check(t *testing.T) {
	ctx := context.Background()

	t.Run("clean ledger reports no drift", func(t *testing.T) {
		store := newFakeStore()
		wo := seedWorkOrder(t, store, "1000")
		require.NoError(t, wo.RecordPayment(decimal.RequireFromString("400")))
		seedPayment(t, store, ledger.TargetWorkOrder, wo.ID, "400")

		entry := seedEntry(t, store, "800", "0", false)
		require.NoError(t, entry.RecordPayment(decimal.RequireFromString("250")))
		seedPayment(t, store, ledger.TargetAccountEntry, entry.ID, "250")

		report, err := newConsistencyService(store).Check(ctx)
		require.NoError(t, err)
		assert.True(t, report.Clean())
		assert.Equal(t, 2, report.Checked)
	})

	t.Run("flags a work order whose total cannot be replayed", func(t *testing.T) {
		store := newFakeStore()
		wo := seedWorkOrder(t, store, "1000")
		seedPayment(t, store, ledger.TargetWorkOrder, wo.ID, "100")
		// The recorded total moved without a matching payment row.
		wo.PaidAmount = decimal.RequireFromString("150")

		report, err := newConsistencyService(store).Check(ctx)
		require.NoError(t, err)
		require.Len(t, report.Drifts, 1)

		drift := report.Drifts[0]
		assert.Equal(t, ledger.TargetWorkOrder, drift.TargetKind)
		assert.Equal(t, wo.ID, drift.TargetID)
		assert.True(t, drift.Recorded.Equal(decimal.RequireFromString("150")))
		assert.True(t, drift.Derived.Equal(decimal.RequireFromString("100")))
		assert.True(t, drift.Delta().Equal(decimal.RequireFromString("50")))
	})

	t.Run("flags an entry whose total cannot be replayed", func(t *testing.T) {
		store := newFakeStore()
		entry := seedEntry(t, store, "500", "0", false)
		entry.PaidAmount = decimal.RequireFromString("200")

		report, err := newConsistencyService(store).Check(ctx)
		require.NoError(t, err)
		require.Len(t, report.Drifts, 1)
		assert.Equal(t, ledger.TargetAccountEntry, report.Drifts[0].TargetKind)
	})

	t.Run("skips promoted work orders", func(t *testing.T) {
		store := newFakeStore()
		wo := seedWorkOrder(t, store, "1000")
		entry, err := ledger.NewAccountEntry("CA-2026-00910", &wo.ID, wo.CustomerName, "", wo.TotalAmount, decimal.Zero, false)
		require.NoError(t, err)
		store.entries[entry.ID] = entry
		require.NoError(t, wo.MarkPromoted(entry.ID))

		// Settlement through the entry side forces the work order's totals
		// without leaving payment rows on its side of the trail.
		seedPayment(t, store, ledger.TargetAccountEntry, entry.ID, "1000")
		require.NoError(t, entry.RecordPayment(decimal.RequireFromString("1000")))
		wo.SettleInFull()

		report, err := newConsistencyService(store).Check(ctx)
		require.NoError(t, err)
		assert.True(t, report.Clean())
		assert.Equal(t, 1, report.Checked)
	})

	t.Run("counts a shared payment once for a linked entry", func(t *testing.T) {
		store := newFakeStore()
		wo := seedWorkOrder(t, store, "1000")
		require.NoError(t, wo.RecordPayment(decimal.RequireFromString("200")))

		entry, err := ledger.NewAccountEntry("CA-2026-00911", &wo.ID, wo.CustomerName, "", wo.TotalAmount, wo.PaidAmount, false)
		require.NoError(t, err)
		store.entries[entry.ID] = entry
		require.NoError(t, wo.MarkPromoted(entry.ID))

		// The carried-over payment is reachable from both sides after
		// promotion re-attributes the trail.
		p := seedPayment(t, store, ledger.TargetWorkOrder, wo.ID, "200")
		p.AccountEntryID = &entry.ID

		report, err := newConsistencyService(store).Check(ctx)
		require.NoError(t, err)
		assert.True(t, report.Clean())
	})

	t.Run("empty ledger", func(t *testing.T) {
		store := newFakeStore()
		report, err := newConsistencyService(store).Check(ctx)
		require.NoError(t, err)
		assert.True(t, report.Clean())
		assert.Equal(t, 0, report.Checked)
	})
}
