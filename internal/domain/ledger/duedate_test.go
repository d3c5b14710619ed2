package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestInstallmentDueDate_StartsNextMonthWhenDayPassed(t *testing.T) {
	// Target day 10 already passed on the 15th
	due := InstallmentDueDate(date(2026, time.March, 15), 10, 0, nil, nil)
	assert.Equal(t, date(2026, time.April, 10), due)

	// Same-day counts as passed
	due = InstallmentDueDate(date(2026, time.March, 10), 10, 0, nil, nil)
	assert.Equal(t, date(2026, time.April, 10), due)

	// Day not reached yet: first installment this month
	due = InstallmentDueDate(date(2026, time.March, 5), 10, 0, nil, nil)
	assert.Equal(t, date(2026, time.March, 10), due)
}

func TestInstallmentDueDate_YearOverflow(t *testing.T) {
	due := InstallmentDueDate(date(2026, time.November, 20), 10, 3, nil, nil)
	assert.Equal(t, date(2027, time.March, 10), due)
}

func TestInstallmentDueDate_ClampsToShortMonths(t *testing.T) {
	// Day 31 starting from January: Feb clamps to 28 (2026 is not a leap year)
	assert.Equal(t, date(2026, time.January, 31),
		InstallmentDueDate(date(2026, time.January, 5), 31, 0, nil, nil))
	assert.Equal(t, date(2026, time.February, 28),
		InstallmentDueDate(date(2026, time.January, 5), 31, 1, nil, nil))
	assert.Equal(t, date(2026, time.March, 31),
		InstallmentDueDate(date(2026, time.January, 5), 31, 2, nil, nil))
	assert.Equal(t, date(2026, time.April, 30),
		InstallmentDueDate(date(2026, time.January, 5), 31, 3, nil, nil))

	// Leap year February
	assert.Equal(t, date(2028, time.February, 29),
		InstallmentDueDate(date(2028, time.January, 5), 31, 1, nil, nil))
}

func TestInstallmentDueDate_ExplicitStart(t *testing.T) {
	sm, sy := 7, 2026
	due := InstallmentDueDate(date(2026, time.March, 15), 5, 0, &sm, &sy)
	assert.Equal(t, date(2026, time.July, 5), due)

	due = InstallmentDueDate(date(2026, time.March, 15), 5, 2, &sm, &sy)
	assert.Equal(t, date(2026, time.September, 5), due)

	// Explicit start crossing a year boundary
	sm, sy = 12, 2026
	due = InstallmentDueDate(date(2026, time.March, 15), 5, 1, &sm, &sy)
	assert.Equal(t, date(2027, time.January, 5), due)
}

func TestInstallmentDueDate_Monotonicity(t *testing.T) {
	// Strictly increasing, never skipping or repeating a month, for two years
	// of slices including short months
	ref := date(2026, time.January, 20)
	prev := InstallmentDueDate(ref, 31, 0, nil, nil)
	for i := 1; i < 24; i++ {
		due := InstallmentDueDate(ref, 31, i, nil, nil)
		assert.True(t, due.After(prev), "index %d: %s not after %s", i, due, prev)

		expMonth := int(prev.Month())%12 + 1
		assert.Equal(t, expMonth, int(due.Month()), "index %d skipped a month", i)
		prev = due
	}
}

func TestInstallmentDueDate_NegativeIndexBorrowsMonths(t *testing.T) {
	sm, sy := 2, 2026
	due := InstallmentDueDate(date(2026, time.June, 1), 15, -3, &sm, &sy)
	assert.Equal(t, date(2025, time.November, 15), due)
}
