package ledger

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================
// PaymentMethod / TargetKind Tests
// ============================================

func TestPaymentMethod_IsValid(t *testing.T) {
	tests := []struct {
		method  PaymentMethod
		isValid bool
	}{
		{PaymentMethodCash, true},
		{PaymentMethodCard, true},
		{PaymentMethodTransfer, true},
		{PaymentMethodCheck, true},
		{PaymentMethodNote, true},
		{PaymentMethod("BARTER"), false},
		{PaymentMethod(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.method), func(t *testing.T) {
			assert.Equal(t, tt.isValid, tt.method.IsValid())
		})
	}
}

func TestTargetKind_IsValid(t *testing.T) {
	assert.True(t, TargetWorkOrder.IsValid())
	assert.True(t, TargetAccountEntry.IsValid())
	assert.False(t, TargetKind("SUPPLIER").IsValid())
}

// ============================================
// NewPayment Tests
// ============================================

func TestNewPayment(t *testing.T) {
	t.Run("sets work order reference", func(t *testing.T) {
		targetID := uuid.New()
		p, err := NewPayment(TargetWorkOrder, targetID, decimal.NewFromInt(100), PaymentMethodCash, "first payment")
		require.NoError(t, err)

		require.NotNil(t, p.WorkOrderID)
		assert.Equal(t, targetID, *p.WorkOrderID)
		assert.Nil(t, p.AccountEntryID)
		assert.Equal(t, "first payment", p.Memo)
		assert.False(t, p.PaidAt.IsZero())
		assert.False(t, p.IsDetached())
	})

	t.Run("sets account entry reference", func(t *testing.T) {
		targetID := uuid.New()
		p, err := NewPayment(TargetAccountEntry, targetID, decimal.NewFromInt(100), PaymentMethodTransfer, "")
		require.NoError(t, err)

		require.NotNil(t, p.AccountEntryID)
		assert.Equal(t, targetID, *p.AccountEntryID)
		assert.Nil(t, p.WorkOrderID)
	})

	t.Run("rejects invalid target kind", func(t *testing.T) {
		_, err := NewPayment(TargetKind("OTHER"), uuid.New(), decimal.NewFromInt(100), PaymentMethodCash, "")
		assert.Error(t, err)
	})

	t.Run("rejects nil target ID", func(t *testing.T) {
		_, err := NewPayment(TargetWorkOrder, uuid.Nil, decimal.NewFromInt(100), PaymentMethodCash, "")
		assert.Error(t, err)
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		_, err := NewPayment(TargetWorkOrder, uuid.New(), decimal.Zero, PaymentMethodCash, "")
		assert.Error(t, err)
		_, err = NewPayment(TargetWorkOrder, uuid.New(), decimal.NewFromInt(-50), PaymentMethodCash, "")
		assert.Error(t, err)
	})

	t.Run("rejects unknown method", func(t *testing.T) {
		_, err := NewPayment(TargetWorkOrder, uuid.New(), decimal.NewFromInt(100), PaymentMethod("GOLD"), "")
		assert.Error(t, err)
	})
}

func TestPayment_Builders(t *testing.T) {
	p, err := NewPayment(TargetAccountEntry, uuid.New(), decimal.NewFromInt(300), PaymentMethodCash, "")
	require.NoError(t, err)

	p.WithInstallmentNo(2).WithIdempotencyKey("key-123")

	require.NotNil(t, p.InstallmentNo)
	assert.Equal(t, 2, *p.InstallmentNo)
	require.NotNil(t, p.IdempotencyKey)
	assert.Equal(t, "key-123", *p.IdempotencyKey)
}

func TestPayment_IsDetached(t *testing.T) {
	p, err := NewPayment(TargetWorkOrder, uuid.New(), decimal.NewFromInt(100), PaymentMethodCash, "")
	require.NoError(t, err)

	p.WorkOrderID = nil

	assert.True(t, p.IsDetached())
}
