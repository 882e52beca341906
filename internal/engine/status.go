package engine

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/campuspay/fee-engine/internal/domain"
	"github.com/campuspay/fee-engine/pkg/utils"
)

// UpcomingThresholdDays is the boundary between "pending" and
// "pending_10_plus_days": an unpaid installment due 10 or more calendar
// days out is not yet urgent.
const UpcomingThresholdDays = 10

// StatusInput carries everything the status derivation needs about one
// installment. All date comparisons use calendar-day granularity.
type StatusInput struct {
	Payable       decimal.Decimal
	AllocatedPaid decimal.Decimal
	// PendingSubmitted is the amount awaiting verification. Full submitted
	// coverage reads as verification_pending, not partially paid, even when
	// a single transaction covers the whole installment.
	PendingSubmitted decimal.Decimal
	DueDate          time.Time
	AsOf             time.Time

	HasTransactions          bool
	HasVerificationPendingTx bool
	HasApprovedTx            bool

	// Waiver is the admin override; it pre-empts every transaction-driven
	// rule because waivers are not derivable from transactions.
	Waiver domain.WaiverState
}

// DeriveStatus is the single authoritative status derivation for every
// plan variant. Rule order is load-bearing: verification signals pre-empt
// date-based signals, and date-based signals pre-empt the plain pending
// default.
func DeriveStatus(in StatusInput) domain.InstallmentStatus {
	if in.Waiver == domain.WaiverFull {
		return domain.StatusWaived
	}

	status := deriveFromTransactions(in)

	if in.Waiver == domain.WaiverPartial && status != domain.StatusPaid {
		return domain.StatusPartiallyWaived
	}
	return status
}

func deriveFromTransactions(in StatusInput) domain.InstallmentStatus {
	if !in.HasTransactions {
		return deriveFromDates(in)
	}

	if in.HasApprovedTx && !in.AllocatedPaid.LessThan(in.Payable) && !in.HasVerificationPendingTx {
		return domain.StatusPaid
	}

	if in.HasVerificationPendingTx {
		// Submitted coverage counts approved money plus amounts still in
		// review; a full-amount submission under review is verification
		// pending, never "partially paid".
		covered := in.AllocatedPaid.Add(in.PendingSubmitted)
		if !covered.LessThan(in.Payable) {
			return domain.StatusVerification
		}
		if covered.IsPositive() {
			return domain.StatusPartialVerify
		}
	}

	return deriveFromDates(in)
}

func deriveFromDates(in StatusInput) domain.InstallmentStatus {
	daysUntilDue := utils.DaysUntil(in.AsOf, in.DueDate)
	partiallyPaid := in.AllocatedPaid.IsPositive()

	if daysUntilDue < 0 {
		if partiallyPaid {
			return domain.StatusPartiallyOverdue
		}
		return domain.StatusOverdue
	}
	if partiallyPaid {
		return domain.StatusPartiallyPaidDays
	}
	if daysUntilDue >= UpcomingThresholdDays {
		return domain.StatusPending10PlusDays
	}
	return domain.StatusPending
}

// ApplyTransactions reconciles a transaction set against every installment
// of a breakdown and fills in the derived fields: allocated and pending
// amounts, partial markers and status. This is the one place status is
// computed for one-shot and multi-installment schedules alike.
//
// An installment whose payable went to zero through scholarship allocation
// is treated as fully waived; the money never becomes owed.
func ApplyTransactions(b *domain.Breakdown, txs []*domain.PaymentTransaction, sel *domain.PlanSelection, asOf time.Time) {
	for _, inst := range b.Installments() {
		key := inst.Key()
		r := Reconcile(txs, key, inst.Payable, inst.Payable)

		inst.AllocatedPaid = r.AllocatedPaid
		inst.PendingSubmitted = r.PendingSubmitted
		inst.IsPartial = r.IsPartial
		inst.PartialSequence = r.Sequence

		waiver := sel.WaiverFor(key)
		if waiver == domain.WaiverNone && inst.Payable.IsZero() && inst.ScholarshipAmount.IsPositive() {
			waiver = domain.WaiverFull
		}

		inst.Status = DeriveStatus(StatusInput{
			Payable:                  inst.Payable,
			AllocatedPaid:            r.AllocatedPaid,
			PendingSubmitted:         r.PendingSubmitted,
			DueDate:                  inst.DueDate,
			AsOf:                     asOf,
			HasTransactions:          r.HasTransactions,
			HasVerificationPendingTx: r.HasVerificationPendingTx,
			HasApprovedTx:            r.HasApprovedTx,
			Waiver:                   waiver,
		})
	}
}
