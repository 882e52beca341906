package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AmountBreakdown splits a GST-inclusive amount into its components.
// Invariant: TotalPayable = BaseAmount + GSTAmount − DiscountAmount −
// ScholarshipAmount, never negative.
type AmountBreakdown struct {
	BaseAmount        decimal.Decimal `json:"baseAmount"`
	GSTAmount         decimal.Decimal `json:"gstAmount"`
	DiscountAmount    decimal.Decimal `json:"discountAmount"`
	ScholarshipAmount decimal.Decimal `json:"scholarshipAmount"`
	TotalPayable      decimal.Decimal `json:"totalPayable"`
}

// Add accumulates another breakdown into this one.
func (a *AmountBreakdown) Add(b AmountBreakdown) {
	a.BaseAmount = a.BaseAmount.Add(b.BaseAmount)
	a.GSTAmount = a.GSTAmount.Add(b.GSTAmount)
	a.DiscountAmount = a.DiscountAmount.Add(b.DiscountAmount)
	a.ScholarshipAmount = a.ScholarshipAmount.Add(b.ScholarshipAmount)
	a.TotalPayable = a.TotalPayable.Add(b.TotalPayable)
}

// Installment is one payable unit of the schedule. Installments are derived
// views, recomputed on every invocation, never persisted.
type Installment struct {
	InstallmentNumber int               `json:"instalmentNumber"`
	SemesterNumber    int               `json:"semesterNumber"`
	DueDate           time.Time         `json:"dueDate"`
	BaseAmount        decimal.Decimal   `json:"baseAmount"`
	GSTAmount         decimal.Decimal   `json:"gstAmount"`
	DiscountAmount    decimal.Decimal   `json:"discountAmount"`
	ScholarshipAmount decimal.Decimal   `json:"scholarshipAmount"`
	Payable           decimal.Decimal   `json:"payableAmount"`
	Status            InstallmentStatus `json:"status"`

	// Reconciliation results, filled in once transactions are applied.
	AllocatedPaid    decimal.Decimal `json:"allocatedPaid"`
	PendingSubmitted decimal.Decimal `json:"pendingSubmitted"`
	IsPartial        bool            `json:"isPartial"`
	PartialSequence  int             `json:"partialSequence,omitempty"`
}

// Key returns the composite key transactions reference this installment by.
func (i *Installment) Key() InstallmentKey {
	return NewInstallmentKey(i.SemesterNumber, i.InstallmentNumber)
}

// Amounts rolls the installment's components into an AmountBreakdown.
func (i *Installment) Amounts() AmountBreakdown {
	return AmountBreakdown{
		BaseAmount:        i.BaseAmount,
		GSTAmount:         i.GSTAmount,
		DiscountAmount:    i.DiscountAmount,
		ScholarshipAmount: i.ScholarshipAmount,
		TotalPayable:      i.Payable,
	}
}

// Semester is an ordered collection of installments plus a rolled-up total.
type Semester struct {
	SemesterNumber int             `json:"semesterNumber"`
	Instalments    []*Installment  `json:"instalments"`
	Total          AmountBreakdown `json:"total"`
}

// OverallSummary is the reconciled roll-up across the whole program.
type OverallSummary struct {
	TotalProgramFee    decimal.Decimal `json:"totalProgramFee"`
	AdmissionFee       decimal.Decimal `json:"admissionFee"`
	TotalGST           decimal.Decimal `json:"totalGST"`
	TotalDiscount      decimal.Decimal `json:"totalDiscount"`
	TotalScholarship   decimal.Decimal `json:"totalScholarship"`
	TotalAmountPayable decimal.Decimal `json:"totalAmountPayable"`
}

// Breakdown is the engine's output for one student and plan.
type Breakdown struct {
	Plan           PaymentPlan     `json:"plan"`
	AdmissionFee   AmountBreakdown `json:"admissionFee"`
	Semesters      []*Semester     `json:"semesters"`
	OneShotPayment *Installment    `json:"oneShotPayment,omitempty"`
	OverallSummary OverallSummary  `json:"overallSummary"`
}

// Installments returns every installment in chronological order: the
// one-shot payment when present, otherwise the semesters' installments in
// semester order.
func (b *Breakdown) Installments() []*Installment {
	if b.OneShotPayment != nil {
		return []*Installment{b.OneShotPayment}
	}
	var out []*Installment
	for _, sem := range b.Semesters {
		out = append(out, sem.Instalments...)
	}
	return out
}

// ProgressSummary is the dashboard roll-up across admission fee and all
// installments.
type ProgressSummary struct {
	TotalAmount        decimal.Decimal `json:"totalAmount"`
	PaidAmount         decimal.Decimal `json:"paidAmount"`
	PendingAmount      decimal.Decimal `json:"pendingAmount"`
	ProgressPercentage int             `json:"progressPercentage"`
}
