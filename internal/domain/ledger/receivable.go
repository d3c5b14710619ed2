package ledger

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/shared"
	"github.com/pos/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// paymentTolerance bridges operator-entered amounts that carry float residue.
// Applied amounts are stored exactly; the tolerance only widens the
// full-payment and overpayment checks by one minor unit.
var paymentTolerance = decimal.New(1, -2) // 0.01

// ReceivableStatus represents the status of an installment receivable
type ReceivableStatus string

const (
	ReceivableStatusPending   ReceivableStatus = "PENDING"   // No payment applied yet
	ReceivableStatusPartial   ReceivableStatus = "PARTIAL"   // Partially paid, 0 < paid < amount
	ReceivableStatusPaid      ReceivableStatus = "PAID"      // Fully paid
	ReceivableStatusCancelled ReceivableStatus = "CANCELLED" // Cancelled, excluded from balance math
)

// IsValid checks if the status is a valid ReceivableStatus
func (s ReceivableStatus) IsValid() bool {
	switch s {
	case ReceivableStatusPending, ReceivableStatusPartial, ReceivableStatusPaid, ReceivableStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of ReceivableStatus
func (s ReceivableStatus) String() string {
	return string(s)
}

// IsTerminal returns true if the receivable is in a terminal state
func (s ReceivableStatus) IsTerminal() bool {
	return s == ReceivableStatusPaid || s == ReceivableStatusCancelled
}

// IsOpen returns true if the receivable still carries outstanding balance
func (s ReceivableStatus) IsOpen() bool {
	return s == ReceivableStatusPending || s == ReceivableStatusPartial
}

// Receivable represents one scheduled installment of a sale's open balance.
// Installment numbers are 1-based and contiguous per sale, ordered by due
// date among open receivables.
type Receivable struct {
	shared.BaseAggregateRoot
	SaleID      uuid.UUID        `json:"sale_id"`
	Installment int              `json:"installment"`
	Amount      decimal.Decimal  `json:"amount"`
	PaidAmount  decimal.Decimal  `json:"paid_amount"`
	DueDate     time.Time        `json:"due_date"`
	Status      ReceivableStatus `json:"status"`
	PaidAt      *time.Time       `json:"paid_at,omitempty"`
}

// NewReceivable creates a new pending receivable
func NewReceivable(saleID uuid.UUID, installment int, amount valueobject.Money, dueDate time.Time) (*Receivable, error) {
	if saleID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SALE", "Sale ID cannot be empty")
	}
	if installment < 1 {
		return nil, shared.NewDomainError("INVALID_INSTALLMENT", "Installment number must be at least 1")
	}
	if amount.Amount().LessThan(valueobject.MinimumSlice) {
		return nil, shared.NewDomainError("INVALID_AMOUNT",
			fmt.Sprintf("Receivable amount %s is below the minimum installment value", amount))
	}

	return &Receivable{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SaleID:            saleID,
		Installment:       installment,
		Amount:            amount.Round().Amount(),
		PaidAmount:        decimal.Zero,
		DueDate:           dueDate,
		Status:            ReceivableStatusPending,
	}, nil
}

// Outstanding returns the amount still owed on this receivable
func (r *Receivable) Outstanding() valueobject.Money {
	return valueobject.NewMoney(r.Amount.Sub(r.PaidAmount))
}

// ApplyPayment applies a payment amount to this receivable and advances the
// status machine: PENDING -> PARTIAL -> PAID, or PENDING -> PAID in one step.
// The paid amount never exceeds the owed amount; an overshoot within the
// tolerance is absorbed by clamping, anything beyond it is rejected.
func (r *Receivable) ApplyPayment(amount valueobject.Money) error {
	if !r.Status.IsOpen() {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot apply payment to receivable in %s status", r.Status))
	}
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}

	outstanding := r.Amount.Sub(r.PaidAmount)
	if amount.Amount().GreaterThan(outstanding.Add(paymentTolerance)) {
		return shared.NewDomainError("EXCEEDS_OUTSTANDING",
			fmt.Sprintf("Payment amount %s exceeds remaining balance of %s", amount, outstanding.StringFixed(2)))
	}

	newPaid := r.PaidAmount.Add(amount.Amount())
	if newPaid.GreaterThanOrEqual(r.Amount.Sub(paymentTolerance)) {
		now := time.Now()
		r.PaidAmount = r.Amount // clamp: paidAmount <= amount always holds
		r.Status = ReceivableStatusPaid
		r.PaidAt = &now
		r.AddDomainEvent(NewReceivablePaidEvent(r))
	} else {
		r.PaidAmount = newPaid
		r.Status = ReceivableStatusPartial
	}

	r.UpdatedAt = time.Now()
	return nil
}

// SetAmount replaces the owed amount, used by schedule amendments that
// redistribute value across open receivables. The new amount may not fall
// below what has already been paid.
func (r *Receivable) SetAmount(amount valueobject.Money) error {
	if !r.Status.IsOpen() {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot change amount of receivable in %s status", r.Status))
	}
	rounded := amount.Round().Amount()
	if rounded.LessThan(valueobject.MinimumSlice) {
		return shared.NewDomainError("INVALID_AMOUNT", "Receivable amount is below the minimum installment value")
	}
	if rounded.LessThan(r.PaidAmount) {
		return shared.NewDomainError("INVALID_AMOUNT",
			fmt.Sprintf("Receivable amount %s cannot fall below the %s already paid",
				rounded.StringFixed(2), r.PaidAmount.StringFixed(2)))
	}

	r.Amount = rounded
	r.UpdatedAt = time.Now()
	return nil
}

// Reschedule changes the due date only; the amount is untouched
func (r *Receivable) Reschedule(dueDate time.Time) error {
	if r.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot reschedule receivable in %s status", r.Status))
	}
	r.DueDate = dueDate
	r.UpdatedAt = time.Now()
	return nil
}

// Cancel marks the receivable as cancelled. Cancelled receivables are
// excluded from all balance math.
func (r *Receivable) Cancel() error {
	if r.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot cancel receivable in %s status", r.Status))
	}
	r.Status = ReceivableStatusCancelled
	r.UpdatedAt = time.Now()
	r.AddDomainEvent(NewReceivableCancelledEvent(r))
	return nil
}

// IsOverdue returns true if the receivable is open and past its due date
func (r *Receivable) IsOverdue(now time.Time) bool {
	return r.Status.IsOpen() && now.After(r.DueDate)
}

// GetAmountMoney returns the owed amount as Money
func (r *Receivable) GetAmountMoney() valueobject.Money {
	return valueobject.NewMoney(r.Amount)
}

// GetPaidAmountMoney returns the paid amount as Money
func (r *Receivable) GetPaidAmountMoney() valueobject.Money {
	return valueobject.NewMoney(r.PaidAmount)
}
