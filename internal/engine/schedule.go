package engine

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/campuspay/fee-engine/internal/domain"
	customError "github.com/campuspay/fee-engine/pkg/errors"
	"github.com/campuspay/fee-engine/pkg/utils"
)

// SemesterGapMonths is the default cadence between semester due dates when
// the fee structure carries no explicit due-date map.
const SemesterGapMonths = 6

// ZeroBreakdown is the documented degraded output for students with no fee
// structure or no selected plan. The surrounding system renders it as a
// "no schedule yet" state; it is a deliberate fallback, not an error.
func ZeroBreakdown(plan domain.PaymentPlan) *domain.Breakdown {
	return &domain.Breakdown{
		Plan:      plan,
		Semesters: []*domain.Semester{},
	}
}

// ComputeBreakdown turns a fee structure plus a chosen plan into a complete
// payment schedule: GST-split amounts, one-shot discount, backward
// scholarship allocation and a reconciled overall summary.
//
// A nil fee structure or unselected plan yields ZeroBreakdown. A
// scholarship that exceeds the schedule's total payable, or any negative
// payable, is an invariant violation and returns an error rather than
// being silently clamped.
func ComputeBreakdown(fs *domain.FeeStructure, plan domain.PaymentPlan, scholarship decimal.Decimal, asOf time.Time) (*domain.Breakdown, error) {
	if fs == nil || !plan.IsSelected() {
		return ZeroBreakdown(plan), nil
	}
	if scholarship.IsNegative() {
		return nil, customError.WrapInvariantViolation(
			fmt.Sprintf("scholarship amount is negative: %v", scholarship))
	}
	if fs.ProgramFeeExcludingAdmission().IsNegative() {
		return nil, customError.WrapInvariantViolation(
			fmt.Sprintf("admission fee %v exceeds total program fee %v", fs.AdmissionFee, fs.TotalProgramFee))
	}

	b := &domain.Breakdown{
		Plan:         plan,
		AdmissionFee: admissionBreakdown(fs.AdmissionFee),
		Semesters:    []*domain.Semester{},
	}

	var installments []*domain.Installment
	switch plan {
	case domain.PlanOneShot:
		oneShot := buildOneShot(fs, asOf)
		b.OneShotPayment = oneShot
		installments = []*domain.Installment{oneShot}
	case domain.PlanSemWise:
		installments = buildSemWise(fs)
	case domain.PlanInstalmentWise:
		installments = buildInstalmentWise(fs)
	}

	left := AllocateScholarship(installments, scholarship)
	if left.IsPositive() {
		return nil, customError.WrapInvariantViolation(
			fmt.Sprintf("scholarship %v exceeds total payable by %v", scholarship, left))
	}

	for _, inst := range installments {
		if inst.Payable.IsNegative() {
			return nil, customError.WrapInvariantViolation(
				fmt.Sprintf("installment %s payable is negative: %v", inst.Key(), inst.Payable))
		}
		inst.Status = domain.StatusPending
	}

	if plan != domain.PlanOneShot {
		b.Semesters = groupBySemester(installments)
	}
	b.OverallSummary = summarize(fs, b, installments)
	return b, nil
}

// admissionBreakdown splits the configured admission fee. It is never
// discounted or scholarshipped and is always due in full.
func admissionBreakdown(fee decimal.Decimal) domain.AmountBreakdown {
	return domain.AmountBreakdown{
		BaseAmount:        ExtractBase(fee),
		GSTAmount:         ExtractGST(fee),
		DiscountAmount:    decimal.Zero,
		ScholarshipAmount: decimal.Zero,
		TotalPayable:      fee,
	}
}

// newInstallment builds one installment from its GST-inclusive gross share.
// Discount is subtracted from the payable; base + GST always recombine into
// the gross share, so payable = base + gst − discount − scholarship holds
// by construction.
func newInstallment(semester, number int, gross, discount decimal.Decimal, due time.Time) *domain.Installment {
	return &domain.Installment{
		InstallmentNumber: number,
		SemesterNumber:    semester,
		DueDate:           utils.StartOfDay(due),
		BaseAmount:        ExtractBase(gross),
		GSTAmount:         ExtractGST(gross),
		DiscountAmount:    discount,
		ScholarshipAmount: decimal.Zero,
		Payable:           gross.Sub(discount),
		AllocatedPaid:     decimal.Zero,
		PendingSubmitted:  decimal.Zero,
	}
}

func buildOneShot(fs *domain.FeeStructure, asOf time.Time) *domain.Installment {
	share := fs.ProgramFeeExcludingAdmission()
	discount := share.Mul(fs.OneShotDiscountPercent).Div(decimal.NewFromInt(100)).Round(2)

	due := asOf
	if fs.OneShotDueDate != nil {
		due = *fs.OneShotDueDate
	} else if d, ok := fs.DueDateFor(domain.NewInstallmentKey(1, 1)); ok {
		due = d
	}
	return newInstallment(1, 1, share, discount, due)
}

func buildSemWise(fs *domain.FeeStructure) []*domain.Installment {
	n := semesters(fs)
	shares := utils.SplitEvenly(fs.ProgramFeeExcludingAdmission(), n)

	out := make([]*domain.Installment, 0, n)
	for s := 1; s <= n; s++ {
		due := semesterStart(fs, s)
		if d, ok := fs.DueDateFor(domain.SemesterOnlyKey(s)); ok {
			due = d
		}
		out = append(out, newInstallment(s, 1, shares[s-1], decimal.Zero, due))
	}
	return out
}

func buildInstalmentWise(fs *domain.FeeStructure) []*domain.Installment {
	n := semesters(fs)
	m := fs.InstallmentsPerSemester
	if m <= 0 {
		m = 1
	}
	semShares := utils.SplitEvenly(fs.ProgramFeeExcludingAdmission(), n)

	out := make([]*domain.Installment, 0, n*m)
	for s := 1; s <= n; s++ {
		parts := utils.SplitEvenly(semShares[s-1], m)
		start := semesterStart(fs, s)
		span := semesterStart(fs, s+1).Sub(start)
		for i := 1; i <= m; i++ {
			// Due dates spaced evenly within the semester window.
			due := start.Add(span * time.Duration(i-1) / time.Duration(m))
			if d, ok := fs.DueDateFor(domain.NewInstallmentKey(s, i)); ok {
				due = d
			}
			out = append(out, newInstallment(s, i, parts[i-1], decimal.Zero, due))
		}
	}
	return out
}

func semesters(fs *domain.FeeStructure) int {
	if fs.NumberOfSemesters <= 0 {
		return 1
	}
	return fs.NumberOfSemesters
}

func semesterStart(fs *domain.FeeStructure, semester int) time.Time {
	return fs.CohortStartDate.AddDate(0, SemesterGapMonths*(semester-1), 0)
}

func groupBySemester(installments []*domain.Installment) []*domain.Semester {
	var out []*domain.Semester
	byNumber := map[int]*domain.Semester{}
	for _, inst := range installments {
		sem, ok := byNumber[inst.SemesterNumber]
		if !ok {
			sem = &domain.Semester{SemesterNumber: inst.SemesterNumber}
			byNumber[inst.SemesterNumber] = sem
			out = append(out, sem)
		}
		sem.Instalments = append(sem.Instalments, inst)
		sem.Total.Add(inst.Amounts())
	}
	return out
}

func summarize(fs *domain.FeeStructure, b *domain.Breakdown, installments []*domain.Installment) domain.OverallSummary {
	s := domain.OverallSummary{
		TotalProgramFee:    fs.TotalProgramFee,
		AdmissionFee:       fs.AdmissionFee,
		TotalGST:           b.AdmissionFee.GSTAmount,
		TotalDiscount:      decimal.Zero,
		TotalScholarship:   decimal.Zero,
		TotalAmountPayable: b.AdmissionFee.TotalPayable,
	}
	for _, inst := range installments {
		s.TotalGST = s.TotalGST.Add(inst.GSTAmount)
		s.TotalDiscount = s.TotalDiscount.Add(inst.DiscountAmount)
		s.TotalScholarship = s.TotalScholarship.Add(inst.ScholarshipAmount)
		s.TotalAmountPayable = s.TotalAmountPayable.Add(inst.Payable)
	}
	return s
}
