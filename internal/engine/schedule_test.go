package engine

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuspay/fee-engine/internal/domain"
	customError "github.com/campuspay/fee-engine/pkg/errors"
)

var testAsOf = time.Date(2026, 9, 1, 10, 30, 0, 0, time.UTC)

func testStructure() *domain.FeeStructure {
	return &domain.FeeStructure{
		CohortID:                "COHORT-2026",
		TotalProgramFee:         decimal.NewFromInt(236000),
		AdmissionFee:            decimal.NewFromInt(59000),
		NumberOfSemesters:       4,
		InstallmentsPerSemester: 2,
		OneShotDiscountPercent:  decimal.Zero,
		CohortStartDate:         time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestComputeBreakdownOneShot(t *testing.T) {
	// Program fee 236,000 inclusive of GST, admission fee 59,000, one-shot
	// plan, 0% discount, no scholarship.
	fs := testStructure()

	b, err := ComputeBreakdown(fs, domain.PlanOneShot, decimal.Zero, testAsOf)
	require.NoError(t, err)
	require.NotNil(t, b.OneShotPayment)
	assert.Empty(t, b.Semesters)

	assert.True(t, b.OneShotPayment.Payable.Equal(decimal.NewFromInt(177000)),
		"one-shot payable: got %v", b.OneShotPayment.Payable)
	assert.True(t, b.OneShotPayment.BaseAmount.Equal(decimal.NewFromInt(150000)))
	assert.True(t, b.OneShotPayment.GSTAmount.Equal(decimal.NewFromInt(27000)))

	assert.True(t, b.AdmissionFee.BaseAmount.Equal(decimal.NewFromInt(50000)))
	assert.True(t, b.AdmissionFee.GSTAmount.Equal(decimal.NewFromInt(9000)))
	assert.True(t, b.AdmissionFee.TotalPayable.Equal(decimal.NewFromInt(59000)))

	assert.True(t, b.OverallSummary.TotalAmountPayable.Equal(decimal.NewFromInt(236000)))
	assert.True(t, b.OverallSummary.TotalGST.Equal(decimal.NewFromInt(36000)))
}

func TestComputeBreakdownOneShotDiscount(t *testing.T) {
	fs := testStructure()
	fs.OneShotDiscountPercent = decimal.NewFromInt(10)

	b, err := ComputeBreakdown(fs, domain.PlanOneShot, decimal.Zero, testAsOf)
	require.NoError(t, err)

	// 10% off the 177,000 share.
	assert.True(t, b.OneShotPayment.DiscountAmount.Equal(decimal.NewFromInt(17700)))
	assert.True(t, b.OneShotPayment.Payable.Equal(decimal.NewFromInt(159300)))

	// payable = base + gst − discount − scholarship
	recombined := b.OneShotPayment.BaseAmount.
		Add(b.OneShotPayment.GSTAmount).
		Sub(b.OneShotPayment.DiscountAmount).
		Sub(b.OneShotPayment.ScholarshipAmount)
	assert.True(t, b.OneShotPayment.Payable.Equal(recombined))

	assert.True(t, b.OverallSummary.TotalDiscount.Equal(decimal.NewFromInt(17700)))
	assert.True(t, b.OverallSummary.TotalAmountPayable.Equal(decimal.NewFromInt(218300)))
}

func TestComputeBreakdownSemWiseScholarship(t *testing.T) {
	// 4 semesters, 400,000 excl. admission, 100,000 scholarship: the whole
	// scholarship lands on semester 4 and semesters 1-3 are untouched.
	fs := testStructure()
	fs.TotalProgramFee = decimal.NewFromInt(400000)
	fs.AdmissionFee = decimal.Zero

	b, err := ComputeBreakdown(fs, domain.PlanSemWise, decimal.NewFromInt(100000), testAsOf)
	require.NoError(t, err)
	require.Len(t, b.Semesters, 4)

	for s := 0; s < 3; s++ {
		inst := b.Semesters[s].Instalments[0]
		assert.True(t, inst.Payable.Equal(decimal.NewFromInt(100000)),
			"semester %d payable: got %v", s+1, inst.Payable)
		assert.True(t, inst.ScholarshipAmount.IsZero())
	}
	last := b.Semesters[3].Instalments[0]
	assert.True(t, last.ScholarshipAmount.Equal(decimal.NewFromInt(100000)))
	assert.True(t, last.Payable.IsZero())

	assert.True(t, b.OverallSummary.TotalScholarship.Equal(decimal.NewFromInt(100000)))
	assert.True(t, b.OverallSummary.TotalAmountPayable.Equal(decimal.NewFromInt(300000)))
}

func TestComputeBreakdownSemWiseDueDates(t *testing.T) {
	fs := testStructure()

	b, err := ComputeBreakdown(fs, domain.PlanSemWise, decimal.Zero, testAsOf)
	require.NoError(t, err)
	require.Len(t, b.Semesters, 4)

	// 6-month cadence from cohort start.
	for s, sem := range b.Semesters {
		require.Len(t, sem.Instalments, 1)
		want := fs.CohortStartDate.AddDate(0, 6*s, 0)
		assert.True(t, sem.Instalments[0].DueDate.Equal(want),
			"semester %d due date: got %v, want %v", s+1, sem.Instalments[0].DueDate, want)
	}

	// Explicit due-date map overrides the cadence.
	override := time.Date(2027, 3, 15, 0, 0, 0, 0, time.UTC)
	fs.DueDates = domain.DueDateMap{"2": override}
	b, err = ComputeBreakdown(fs, domain.PlanSemWise, decimal.Zero, testAsOf)
	require.NoError(t, err)
	assert.True(t, b.Semesters[1].Instalments[0].DueDate.Equal(override))
}

func TestComputeBreakdownInstalmentWise(t *testing.T) {
	fs := testStructure()

	b, err := ComputeBreakdown(fs, domain.PlanInstalmentWise, decimal.Zero, testAsOf)
	require.NoError(t, err)
	require.Len(t, b.Semesters, 4)

	// 177,000 / 4 semesters = 44,250; / 2 installments = 22,125 each.
	total := decimal.Zero
	for _, sem := range b.Semesters {
		require.Len(t, sem.Instalments, 2)
		for _, inst := range sem.Instalments {
			assert.True(t, inst.Payable.Equal(decimal.RequireFromString("22125")),
				"installment %s payable: got %v", inst.Key(), inst.Payable)
			total = total.Add(inst.Payable)
		}
		assert.True(t, sem.Total.TotalPayable.Equal(decimal.NewFromInt(44250)))
	}
	assert.True(t, total.Equal(decimal.NewFromInt(177000)))

	// Second installment of semester 1 falls inside the semester window.
	first := b.Semesters[0].Instalments[0].DueDate
	second := b.Semesters[0].Instalments[1].DueDate
	semEnd := fs.CohortStartDate.AddDate(0, 6, 0)
	assert.True(t, first.Equal(fs.CohortStartDate))
	assert.True(t, second.After(first))
	assert.True(t, second.Before(semEnd))
}

func TestComputeBreakdownReconciliationInvariant(t *testing.T) {
	// admissionFee.totalPayable + sum(installment.payable) == totalAmountPayable
	// across plans and awkward amounts.
	fs := testStructure()
	fs.TotalProgramFee = decimal.RequireFromString("333333.33")
	fs.AdmissionFee = decimal.RequireFromString("47123.11")
	fs.NumberOfSemesters = 3
	fs.InstallmentsPerSemester = 3

	for _, plan := range []domain.PaymentPlan{domain.PlanOneShot, domain.PlanSemWise, domain.PlanInstalmentWise} {
		b, err := ComputeBreakdown(fs, plan, decimal.NewFromInt(20000), testAsOf)
		require.NoError(t, err, "plan %s", plan)

		sum := b.AdmissionFee.TotalPayable
		for _, inst := range b.Installments() {
			sum = sum.Add(inst.Payable)
		}
		assert.True(t, sum.Equal(b.OverallSummary.TotalAmountPayable),
			"plan %s: %v != %v", plan, sum, b.OverallSummary.TotalAmountPayable)
	}
}

func TestComputeBreakdownDegradedInputs(t *testing.T) {
	// Missing structure and unselected plan degrade to the zero breakdown,
	// never an error: the UI renders a "no schedule yet" state from it.
	b, err := ComputeBreakdown(nil, domain.PlanSemWise, decimal.Zero, testAsOf)
	assert.NoError(t, err)
	assert.Empty(t, b.Installments())
	assert.True(t, b.OverallSummary.TotalAmountPayable.IsZero())

	b, err = ComputeBreakdown(testStructure(), domain.PlanNotSelected, decimal.Zero, testAsOf)
	assert.NoError(t, err)
	assert.Empty(t, b.Installments())
}

func TestComputeBreakdownInvariantViolations(t *testing.T) {
	fs := testStructure()

	// Scholarship larger than everything owed is a programming error, not
	// something to clamp quietly.
	_, err := ComputeBreakdown(fs, domain.PlanSemWise, decimal.NewFromInt(1000000), testAsOf)
	assert.ErrorIs(t, err, customError.ErrInvariantViolation)

	_, err = ComputeBreakdown(fs, domain.PlanOneShot, decimal.NewFromInt(-1), testAsOf)
	assert.ErrorIs(t, err, customError.ErrInvariantViolation)

	fs.AdmissionFee = decimal.NewFromInt(300000) // exceeds the program fee
	_, err = ComputeBreakdown(fs, domain.PlanOneShot, decimal.Zero, testAsOf)
	assert.ErrorIs(t, err, customError.ErrInvariantViolation)
}
