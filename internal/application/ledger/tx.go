package ledger

import (
	"context"

	"github.com/garage-erp/backend/internal/domain/ledger"
	"github.com/garage-erp/backend/internal/domain/workshop"
)

// Repos bundles the repositories one ledger transaction touches. The store
// layer hands a transaction-bound set to the closure, so every read and write
// inside it sees and joins the same transaction.
type Repos struct {
	WorkOrders workshop.WorkOrderRepository
	Entries    ledger.AccountEntryRepository
	Payments   ledger.PaymentRepository
	Sequences  ledger.SequenceRepository
}

// TxManager runs a function inside one atomic store transaction. Any error
// returned by the function rolls back every mutation made through the Repos
// it was handed.
type TxManager interface {
	Do(ctx context.Context, fn func(r Repos) error) error
}
