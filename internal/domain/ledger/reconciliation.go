package ledger

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Drift describes a denormalized running total that no longer matches the
// amount derived by replaying the payment history. Any drift is a defect:
// the denormalized columns exist for fast reads, the history stays the truth.
type Drift struct {
	TargetKind TargetKind      `json:"target_kind"`
	TargetID   uuid.UUID       `json:"target_id"`
	Recorded   decimal.Decimal `json:"recorded"`
	Derived    decimal.Decimal `json:"derived"`
}

// Delta returns recorded minus derived
func (d Drift) Delta() decimal.Decimal {
	return d.Recorded.Sub(d.Derived)
}

// DerivePaid replays a payment history into a paid total
func DerivePaid(payments []Payment) decimal.Decimal {
	total := decimal.Zero
	for _, p := range payments {
		total = total.Add(p.Amount)
	}
	return total
}

// CheckPaidAmount compares a recorded paid total with the replayed history
// and reports drift, or nil when the two agree.
func CheckPaidAmount(kind TargetKind, targetID uuid.UUID, recorded decimal.Decimal, payments []Payment) *Drift {
	derived := DerivePaid(payments)
	if recorded.Equal(derived) {
		return nil
	}
	return &Drift{
		TargetKind: kind,
		TargetID:   targetID,
		Recorded:   recorded,
		Derived:    derived,
	}
}
