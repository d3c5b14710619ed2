package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/shared/valueobject"
)

// ScheduleParams describes the installment schedule to generate for a sale's
// open balance
type ScheduleParams struct {
	OpenBalance  valueobject.Money
	Installments int
	PaymentDay   int
	Reference    time.Time
	// Optional explicit first-installment month/year. When unset the base
	// month derives from Reference and PaymentDay.
	StartMonth *int
	StartYear  *int
	// FirstInstallment numbers the generated receivables; defaults to 1
	FirstInstallment int
}

// BuildSchedule produces the ordered receivables covering an open balance.
// The balance is split with the remainder-to-last-slice rule and due dates
// follow a monthly cadence on the payment day. A non-positive balance yields
// no receivables; an installment count below 1 is treated as 1 and a count
// that would drive slices below the minimum value is clamped down.
func BuildSchedule(saleID uuid.UUID, p ScheduleParams) ([]*Receivable, error) {
	if !p.OpenBalance.IsPositive() {
		return nil, nil
	}
	if err := validatePaymentDay(p.PaymentDay); err != nil {
		return nil, err
	}

	n := p.Installments
	if n < 1 {
		n = 1
	}
	if maxSlices := p.OpenBalance.MaxSliceCount(); n > maxSlices {
		n = maxSlices
	}

	slices, err := p.OpenBalance.SplitEvenly(n)
	if err != nil {
		return nil, err
	}

	first := p.FirstInstallment
	if first < 1 {
		first = 1
	}

	receivables := make([]*Receivable, 0, n)
	for i, slice := range slices {
		due := InstallmentDueDate(p.Reference, p.PaymentDay, i, p.StartMonth, p.StartYear)
		r, err := NewReceivable(saleID, first+i, slice, due)
		if err != nil {
			return nil, err
		}
		receivables = append(receivables, r)
	}
	return receivables, nil
}
