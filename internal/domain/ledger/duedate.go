package ledger

import (
	"time"

	"github.com/pos/backend/internal/domain/shared"
)

// InstallmentDueDate computes the due date of the installment at the given
// 0-based slice index.
//
// The base month is the explicit start month/year when provided. Otherwise it
// is the reference date's month, advanced by one when the target day has
// already passed (ref.Day() >= day), so the first installment never falls due
// in the past. The target day is clamped to the last day of short months, so a
// payment day of 31 lands on Feb 28/29.
func InstallmentDueDate(ref time.Time, day, index int, startMonth, startYear *int) time.Time {
	year := ref.Year()
	month := int(ref.Month())

	if startMonth != nil && startYear != nil {
		month = *startMonth
		year = *startYear
	} else if ref.Day() >= day {
		month++
	}

	month += index
	for month > 12 {
		month -= 12
		year++
	}
	for month < 1 {
		month += 12
		year--
	}

	d := day
	if last := lastDayOfMonth(year, time.Month(month)); d > last {
		d = last
	}
	return time.Date(year, time.Month(month), d, 0, 0, 0, 0, ref.Location())
}

// lastDayOfMonth returns the number of days in the given month
func lastDayOfMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// monthAfter returns the month and year immediately following the given date
func monthAfter(t time.Time) (month, year int) {
	month = int(t.Month()) + 1
	year = t.Year()
	if month > 12 {
		month = 1
		year++
	}
	return month, year
}

// validatePaymentDay checks that a day-of-month target is within 1..31
func validatePaymentDay(day int) error {
	if day < 1 || day > 31 {
		return shared.NewDomainError("INVALID_PAYMENT_DAY", "Payment day must be between 1 and 31")
	}
	return nil
}
