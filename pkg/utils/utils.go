package utils

import (
	"time"

	"github.com/shopspring/decimal"
)

// StartOfDay strips the time-of-day component, keeping the calendar date
// in the value's own location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DaysUntil returns the number of whole calendar days from asOf until due.
// Negative when due is in the past. Time-of-day is stripped from both ends
// so a payment due later today never counts as overdue.
func DaysUntil(asOf, due time.Time) int {
	from := StartOfDay(asOf)
	to := StartOfDay(due)
	return int(to.Sub(from).Hours() / 24)
}

// IsDateOverdue checks whether due falls on a calendar day before asOf.
func IsDateOverdue(asOf, due time.Time) bool {
	return DaysUntil(asOf, due) < 0
}

// SplitEvenly divides an amount into n parts rounded to 2 decimal places,
// putting any rounding remainder on the last part so the parts always sum
// back to the original amount.
func SplitEvenly(amount decimal.Decimal, n int) []decimal.Decimal {
	if n <= 0 {
		return nil
	}
	parts := make([]decimal.Decimal, n)
	per := amount.Div(decimal.NewFromInt(int64(n))).Round(2)
	running := decimal.Zero
	for i := 0; i < n-1; i++ {
		parts[i] = per
		running = running.Add(per)
	}
	parts[n-1] = amount.Sub(running)
	return parts
}

// MinDecimal returns the smaller of a and b.
func MinDecimal(a, b decimal.Decimal) decimal.Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}

// DecimalFromString converts string to decimal.Decimal
func DecimalFromString(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}
