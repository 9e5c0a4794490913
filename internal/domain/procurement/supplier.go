package procurement

import (
	"time"

	"github.com/garage-erp/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Supplier tracks money owed to one parts supplier. TotalDebt and TotalPaid
// are denormalized running totals bumped alongside each purchase and payment;
// they are never re-derived by summing children at read time, but must stay
// re-derivable from the purchase and payment history.
type Supplier struct {
	shared.BaseAggregateRoot
	Name      string          `json:"name"`
	Phone     string          `json:"phone"`
	TotalDebt decimal.Decimal `json:"total_debt"`
	TotalPaid decimal.Decimal `json:"total_paid"`
	Remark    string          `json:"remark"`
}

// NewSupplier creates a supplier with zeroed running totals
func NewSupplier(name, phone string) (*Supplier, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_SUPPLIER", "Supplier name cannot be empty")
	}
	return &Supplier{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Phone:             phone,
		TotalDebt:         decimal.Zero,
		TotalPaid:         decimal.Zero,
	}, nil
}

// Outstanding returns the derived balance still owed to the supplier
func (s *Supplier) Outstanding() decimal.Decimal {
	return s.TotalDebt.Sub(s.TotalPaid)
}

// AddDebt increases the running debt total (a purchase was received)
func (s *Supplier) AddDebt(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Debt amount must be positive")
	}
	s.TotalDebt = s.TotalDebt.Add(amount)
	s.touch()
	return nil
}

// AddPaid increases the running paid total (money went out)
func (s *Supplier) AddPaid(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	s.TotalPaid = s.TotalPaid.Add(amount)
	s.touch()
	return nil
}

// ReversePurchase rolls the running totals back by a deleted purchase's own
// stored split. The purchase's denormalized fields are trusted as-is rather
// than re-deriving from whatever payments remain.
func (s *Supplier) ReversePurchase(totalAmount, paidAmount decimal.Decimal) {
	s.TotalDebt = s.TotalDebt.Sub(totalAmount)
	s.TotalPaid = s.TotalPaid.Sub(paidAmount)
	s.touch()
}

func (s *Supplier) touch() {
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
}
