package ledger

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/shared"
	"github.com/pos/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Allocation records how much of a payment landed on one receivable
type Allocation struct {
	ReceivableID uuid.UUID         `json:"receivable_id"`
	Installment  int               `json:"installment"`
	Applied      valueobject.Money `json:"applied"`
	Status       ReceivableStatus  `json:"status"`
}

// PaymentAllocator distributes incoming payments across a sale's outstanding
// receivables. It mutates receivable state only; re-deriving the parent
// sale's totals is the caller's responsibility.
type PaymentAllocator struct{}

// NewPaymentAllocator creates a new PaymentAllocator
func NewPaymentAllocator() *PaymentAllocator {
	return &PaymentAllocator{}
}

// ApplyToReceivable applies an amount to one named receivable ("pay this
// specific installment")
func (a *PaymentAllocator) ApplyToReceivable(r *Receivable, amount valueobject.Money) (Allocation, error) {
	if err := r.ApplyPayment(amount); err != nil {
		return Allocation{}, err
	}
	return Allocation{
		ReceivableID: r.ID,
		Installment:  r.Installment,
		Applied:      amount.Round(),
		Status:       r.Status,
	}, nil
}

// Sweep applies a lump amount across a sale's outstanding receivables in
// ascending installment order (oldest due first). The amount must not exceed
// the total outstanding balance beyond the tolerance; overpayment sweeps are
// rejected, never silently accepted.
func (a *PaymentAllocator) Sweep(receivables []*Receivable, amount valueobject.Money) ([]Allocation, error) {
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}

	open := make([]*Receivable, 0, len(receivables))
	outstanding := decimal.Zero
	for _, r := range receivables {
		if r.Status.IsOpen() {
			open = append(open, r)
			outstanding = outstanding.Add(r.Amount.Sub(r.PaidAmount))
		}
	}
	sort.Slice(open, func(i, j int) bool { return open[i].Installment < open[j].Installment })

	if amount.Amount().GreaterThan(outstanding.Add(paymentTolerance)) {
		return nil, shared.NewDomainError("EXCEEDS_OUTSTANDING",
			fmt.Sprintf("Payment of %s exceeds remaining balance of %s", amount, outstanding.StringFixed(2)))
	}

	allocations := make([]Allocation, 0, len(open))
	remaining := amount.Round().Amount()
	for _, r := range open {
		if !remaining.IsPositive() {
			break
		}
		slice := decimal.Min(remaining, r.Amount.Sub(r.PaidAmount))
		if err := r.ApplyPayment(valueobject.NewMoney(slice)); err != nil {
			return nil, err
		}
		allocations = append(allocations, Allocation{
			ReceivableID: r.ID,
			Installment:  r.Installment,
			Applied:      valueobject.NewMoney(slice),
			Status:       r.Status,
		})
		remaining = remaining.Sub(slice)
	}
	return allocations, nil
}
