package ledger

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountEntryRepository defines persistence operations for current account entries
type AccountEntryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*AccountEntry, error)
	FindByWorkOrderID(ctx context.Context, workOrderID uuid.UUID) (*AccountEntry, error)
	FindAll(ctx context.Context) ([]AccountEntry, error)
	// FindCompanyByName performs the case-insensitive company grouping lookup
	// used during promotion. Ambiguous matches resolve to the entry with the
	// lowest id so repeated promotions group deterministically.
	FindCompanyByName(ctx context.Context, name string) (*AccountEntry, error)
	Save(ctx context.Context, entry *AccountEntry) error
	SaveWithLock(ctx context.Context, entry *AccountEntry) error
	Delete(ctx context.Context, id uuid.UUID) error
	SumRemainingDebt(ctx context.Context) (decimal.Decimal, error)
}

// PaymentRepository defines persistence operations for the append-only payment trail
type PaymentRepository interface {
	Create(ctx context.Context, p *Payment) error
	FindByID(ctx context.Context, id uuid.UUID) (*Payment, error)
	FindByWorkOrderID(ctx context.Context, workOrderID uuid.UUID) ([]Payment, error)
	FindByAccountEntryID(ctx context.Context, entryID uuid.UUID) ([]Payment, error)
	ExistsByIdempotencyKey(ctx context.Context, key string) (bool, error)
	SumByWorkOrderID(ctx context.Context, workOrderID uuid.UUID) (decimal.Decimal, error)
	SumByAccountEntryID(ctx context.Context, entryID uuid.UUID) (decimal.Decimal, error)
	// AttachToAccountEntry sets the account entry reference on every payment
	// of the given work order, keeping the work order reference in place.
	AttachToAccountEntry(ctx context.Context, workOrderID, entryID uuid.UUID) error
	// DetachFromAccountEntry clears the account entry reference so history
	// survives entry deletion.
	DetachFromAccountEntry(ctx context.Context, entryID uuid.UUID) error
	// DetachFromWorkOrder clears the work order reference when a work order
	// is removed; rows already re-attributed to an entry keep that side.
	DetachFromWorkOrder(ctx context.Context, workOrderID uuid.UUID) error
}

// SequenceRepository hands out document numbers from atomic per-(prefix, year)
// counter rows. Counting existing rows to derive the next number races under
// concurrent creates; a counter row bumped inside the caller's transaction
// does not.
type SequenceRepository interface {
	Next(ctx context.Context, prefix string, year int) (int64, error)
}
