package ledger

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/shared"
	"github.com/pos/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// AmendMode selects the recalculation policy applied when items are added to
// an open sale. Exactly one mode is chosen per amendment.
type AmendMode interface {
	modeName() string
}

// AppendFixed keeps the per-installment amount unchanged and appends new
// receivables at the end of the pending queue. Amount overrides the sale's
// stored fixed installment amount when set.
type AppendFixed struct {
	Amount *valueobject.Money
}

func (AppendFixed) modeName() string { return "append_fixed" }

// InflateAll keeps the pending receivable count unchanged and redistributes
// the added amount across all open receivables.
type InflateAll struct{}

func (InflateAll) modeName() string { return "inflate_all" }

// InflateFrom leaves receivables before Installment untouched and absorbs the
// added amount into the rest, either at an explicit per-installment target or
// by even redistribution.
type InflateFrom struct {
	Installment  int
	TargetAmount *valueobject.Money
}

func (InflateFrom) modeName() string { return "inflate_from" }

// Recalculate deletes open receivables from StartFrom onward and rebuilds
// them to cover the affected balance plus the added amount. Whichever of
// TargetAmount/TargetCount is given drives the rebuild; with neither, the
// prior affected count is preserved.
type Recalculate struct {
	TargetAmount *valueobject.Money
	TargetCount  *int
	StartFrom    *int
}

func (Recalculate) modeName() string { return "recalculate" }

// AmendmentResult describes the schedule reshaping produced by an amendment.
// Updated receivables are mutated in place; DeletedIDs name the contiguous
// tail of rebuilt receivables that must be removed.
type AmendmentResult struct {
	NewReceivables []*Receivable
	Updated        []*Receivable
	DeletedIDs     []uuid.UUID
	PlanCount      int
	FixedAmount    *decimal.Decimal
}

// AmendmentEngine reshapes a sale's receivable schedule when its total grows.
// Every mode preserves the pending-sum invariant: the open amounts after the
// amendment equal the open amounts before it plus the added amount, exactly.
type AmendmentEngine struct{}

// NewAmendmentEngine creates a new AmendmentEngine
func NewAmendmentEngine() *AmendmentEngine {
	return &AmendmentEngine{}
}

// Amend applies the selected mode to the sale's receivables and returns the
// resulting schedule changes. The receivable slice must hold every
// non-deleted receivable of the sale, paid ones included; due-date cadence
// and installment numbering depend on them.
func (e *AmendmentEngine) Amend(sale *Sale, receivables []*Receivable,
	added valueobject.Money, mode AmendMode, ref time.Time) (*AmendmentResult, error) {
	if sale == nil {
		return nil, shared.NewDomainError("INVALID_SALE", "Sale cannot be nil")
	}
	if sale.Status != SaleStatusPending {
		return nil, shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot amend a %s sale", sale.Status))
	}
	if !added.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Added amount must be positive")
	}
	if mode == nil {
		return nil, shared.NewDomainError("INVALID_MODE", "Amendment mode is required")
	}

	sorted := make([]*Receivable, len(receivables))
	copy(sorted, receivables)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Installment < sorted[j].Installment })

	open := make([]*Receivable, 0, len(sorted))
	prevOpenTotal := decimal.Zero
	for _, r := range sorted {
		if r.Status.IsOpen() {
			open = append(open, r)
			prevOpenTotal = prevOpenTotal.Add(r.Amount)
		}
	}

	var (
		result *AmendmentResult
		err    error
	)
	switch m := mode.(type) {
	case AppendFixed:
		result, err = e.appendFixed(sale, sorted, added, m, ref)
	case InflateAll:
		result, err = e.inflateAll(sale, sorted, open, added, ref)
	case InflateFrom:
		result, err = e.inflateFrom(sale, sorted, open, added, m, ref)
	case Recalculate:
		result, err = e.recalculate(sale, sorted, open, added, m, ref)
	default:
		return nil, shared.NewDomainError("INVALID_MODE",
			fmt.Sprintf("Unknown amendment mode %q", mode.modeName()))
	}
	if err != nil {
		return nil, err
	}

	if err := verifyConservation(open, result, prevOpenTotal, added); err != nil {
		return nil, err
	}
	return result, nil
}

// appendFixed keeps the per-installment amount and appends ceil(delta/fixed)
// receivables after the last due date. Without a fixed amount, a single
// receivable carries the whole delta.
func (e *AmendmentEngine) appendFixed(sale *Sale, all []*Receivable,
	added valueobject.Money, mode AppendFixed, ref time.Time) (*AmendmentResult, error) {
	fixed := sale.FixedInstallmentAmount
	var resultFixed *decimal.Decimal
	if mode.Amount != nil {
		rounded := mode.Amount.Round().Amount()
		fixed = &rounded
		resultFixed = &rounded
	}

	newCount := 1
	if fixed != nil && fixed.GreaterThanOrEqual(valueobject.MinimumSlice) {
		newCount = int(added.Amount().Div(*fixed).Ceil().IntPart())
	}
	if newCount < 1 {
		newCount = 1
	}
	if maxSlices := added.MaxSliceCount(); newCount > maxSlices {
		newCount = maxSlices
	}

	amounts, err := added.SplitEvenly(newCount)
	if err != nil {
		return nil, err
	}

	newReceivables, err := buildTail(sale, all, amounts, ref)
	if err != nil {
		return nil, err
	}
	return &AmendmentResult{
		NewReceivables: newReceivables,
		PlanCount:      sale.InstallmentPlan + newCount,
		FixedAmount:    resultFixed,
	}, nil
}

// inflateAll redistributes the grown open total across the existing open
// receivables without changing their count
func (e *AmendmentEngine) inflateAll(sale *Sale, all, open []*Receivable,
	added valueobject.Money, ref time.Time) (*AmendmentResult, error) {
	if len(open) == 0 {
		return e.appendSingle(sale, all, added, ref)
	}

	pool := added
	for _, r := range open {
		pool = pool.Add(valueobject.NewMoney(r.Amount))
	}
	slices, err := pool.SplitEvenly(len(open))
	if err != nil {
		return nil, err
	}
	for i, r := range open {
		if err := r.SetAmount(slices[i]); err != nil {
			return nil, err
		}
	}

	result := &AmendmentResult{
		Updated:   open,
		PlanCount: sale.InstallmentPlan,
	}
	if sale.FixedInstallmentAmount != nil {
		base := slices[0].Amount()
		result.FixedAmount = &base
	}
	return result, nil
}

// inflateFrom absorbs the delta into open receivables at or after the given
// installment, leaving earlier ones untouched
func (e *AmendmentEngine) inflateFrom(sale *Sale, all, open []*Receivable,
	added valueobject.Money, mode InflateFrom, ref time.Time) (*AmendmentResult, error) {
	if mode.Installment < 1 {
		return nil, shared.NewDomainError("INVALID_INSTALLMENT", "Installment number must be at least 1")
	}

	affected := make([]*Receivable, 0, len(open))
	for _, r := range open {
		if r.Installment >= mode.Installment {
			affected = append(affected, r)
		}
	}
	if len(affected) == 0 {
		return e.appendSingle(sale, all, added, ref)
	}

	pool := added
	for _, r := range affected {
		pool = pool.Add(valueobject.NewMoney(r.Amount))
	}

	var (
		slices      []valueobject.Money
		resultFixed *decimal.Decimal
		err         error
	)
	if mode.TargetAmount != nil {
		target := mode.TargetAmount.Round()
		if target.Amount().LessThan(valueobject.MinimumSlice) {
			return nil, shared.NewDomainError("INVALID_AMOUNT", "Target amount is below the minimum installment value")
		}
		// First n-1 slices take the operator's target; the last absorbs the
		// remainder so the pending sum stays exact.
		slices = make([]valueobject.Money, len(affected))
		allocated := valueobject.Zero()
		for i := 0; i < len(affected)-1; i++ {
			slices[i] = target
			allocated = allocated.Add(target)
		}
		last := pool.Subtract(allocated)
		if last.Amount().LessThan(valueobject.MinimumSlice) {
			return nil, shared.NewDomainError("INVALID_AMOUNT",
				fmt.Sprintf("Target amount %s leaves no room for the final installment", target))
		}
		slices[len(affected)-1] = last
		t := target.Amount()
		resultFixed = &t
	} else {
		slices, err = pool.SplitEvenly(len(affected))
		if err != nil {
			return nil, err
		}
	}

	for i, r := range affected {
		if err := r.SetAmount(slices[i]); err != nil {
			return nil, err
		}
	}
	return &AmendmentResult{
		Updated:     affected,
		PlanCount:   sale.InstallmentPlan,
		FixedAmount: resultFixed,
	}, nil
}

// recalculate deletes the affected open tail and rebuilds it to cover the
// affected balance plus the delta
func (e *AmendmentEngine) recalculate(sale *Sale, all, open []*Receivable,
	added valueobject.Money, mode Recalculate, ref time.Time) (*AmendmentResult, error) {
	affected := open
	if mode.StartFrom != nil {
		affected = make([]*Receivable, 0, len(open))
		for _, r := range open {
			if r.Installment >= *mode.StartFrom {
				affected = append(affected, r)
			}
		}
	}
	if len(affected) == 0 {
		return e.appendSingle(sale, all, added, ref)
	}

	deleted := make(map[uuid.UUID]bool, len(affected))
	cover := added
	for _, r := range affected {
		if r.PaidAmount.IsPositive() {
			return nil, shared.NewDomainError("HAS_PAYMENTS",
				fmt.Sprintf("Installment %d has payments and cannot be rebuilt", r.Installment))
		}
		cover = cover.Add(valueobject.NewMoney(r.Amount))
		deleted[r.ID] = true
	}

	n := len(affected)
	var resultFixed *decimal.Decimal
	switch {
	case mode.TargetCount != nil:
		n = *mode.TargetCount
	case mode.TargetAmount != nil:
		target := mode.TargetAmount.Round()
		if target.Amount().LessThan(valueobject.MinimumSlice) {
			return nil, shared.NewDomainError("INVALID_AMOUNT", "Target amount is below the minimum installment value")
		}
		n = int(cover.Amount().Div(target.Amount()).Ceil().IntPart())
		t := target.Amount()
		resultFixed = &t
	}
	if n < 1 {
		n = 1
	}
	if maxSlices := cover.MaxSliceCount(); n > maxSlices {
		n = maxSlices
	}

	amounts, err := cover.SplitEvenly(n)
	if err != nil {
		return nil, err
	}

	// Numbering and cadence restart after the last kept receivable; when
	// nothing open survives, after the existing schedule's last due date.
	nextInstallment := 1
	var lastKeptDue, lastAnyDue time.Time
	for _, r := range all {
		if r.Status == ReceivableStatusCancelled {
			continue
		}
		if r.DueDate.After(lastAnyDue) {
			lastAnyDue = r.DueDate
		}
		if deleted[r.ID] {
			continue
		}
		if r.Installment >= nextInstallment {
			nextInstallment = r.Installment + 1
		}
		if r.DueDate.After(lastKeptDue) {
			lastKeptDue = r.DueDate
		}
	}
	base := lastKeptDue
	if base.IsZero() {
		base = lastAnyDue
	}

	newReceivables := make([]*Receivable, 0, n)
	for i, amount := range amounts {
		due := tailDueDate(base, sale.PaymentDay, ref, i)
		r, err := NewReceivable(sale.ID, nextInstallment+i, amount, due)
		if err != nil {
			return nil, err
		}
		newReceivables = append(newReceivables, r)
	}

	deletedIDs := make([]uuid.UUID, 0, len(affected))
	for _, r := range affected {
		deletedIDs = append(deletedIDs, r.ID)
	}
	return &AmendmentResult{
		NewReceivables: newReceivables,
		DeletedIDs:     deletedIDs,
		PlanCount:      nextInstallment - 1 + n,
		FixedAmount:    resultFixed,
	}, nil
}

// appendSingle is the shared fallback when a mode finds no open receivables
// to reshape: one new receivable carries the whole delta
func (e *AmendmentEngine) appendSingle(sale *Sale, all []*Receivable,
	added valueobject.Money, ref time.Time) (*AmendmentResult, error) {
	newReceivables, err := buildTail(sale, all, []valueobject.Money{added.Round()}, ref)
	if err != nil {
		return nil, err
	}
	return &AmendmentResult{
		NewReceivables: newReceivables,
		PlanCount:      sale.InstallmentPlan + 1,
	}, nil
}

// buildTail appends receivables after the schedule's last installment and due
// date, one month apart
func buildTail(sale *Sale, all []*Receivable, amounts []valueobject.Money, ref time.Time) ([]*Receivable, error) {
	nextInstallment := 1
	var lastDue time.Time
	for _, r := range all {
		if r.Status == ReceivableStatusCancelled {
			continue
		}
		if r.Installment >= nextInstallment {
			nextInstallment = r.Installment + 1
		}
		if r.DueDate.After(lastDue) {
			lastDue = r.DueDate
		}
	}

	receivables := make([]*Receivable, 0, len(amounts))
	for i, amount := range amounts {
		due := tailDueDate(lastDue, sale.PaymentDay, ref, i)
		r, err := NewReceivable(sale.ID, nextInstallment+i, amount, due)
		if err != nil {
			return nil, err
		}
		receivables = append(receivables, r)
	}
	return receivables, nil
}

// tailDueDate computes the i-th monthly due date after a base date, falling
// back to the reference-date cadence when no base exists
func tailDueDate(base time.Time, day int, ref time.Time, i int) time.Time {
	if base.IsZero() {
		return InstallmentDueDate(ref, day, i, nil, nil)
	}
	sm, sy := monthAfter(base)
	return InstallmentDueDate(ref, day, i, &sm, &sy)
}

// verifyConservation asserts the pending-sum invariant after an amendment.
// A violation is an internal bug and must abort the transaction before
// anything is persisted.
func verifyConservation(openBefore []*Receivable, result *AmendmentResult,
	prevOpenTotal decimal.Decimal, added valueobject.Money) error {
	deleted := make(map[uuid.UUID]bool, len(result.DeletedIDs))
	for _, id := range result.DeletedIDs {
		deleted[id] = true
	}

	got := decimal.Zero
	for _, r := range openBefore {
		if !deleted[r.ID] {
			got = got.Add(r.Amount)
		}
	}
	for _, r := range result.NewReceivables {
		got = got.Add(r.Amount)
	}

	want := prevOpenTotal.Add(added.Amount())
	if !got.Equal(want) {
		return shared.NewDomainError("CONSISTENCY_VIOLATION",
			fmt.Sprintf("Amended schedule sums to %s, expected %s", got.StringFixed(2), want.StringFixed(2)))
	}
	return nil
}
