package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DueDateMap holds explicit due-date overrides keyed by installment key
// string ("2" for sem_wise, "2-1" for instalment_wise). Stored as jsonb.
type DueDateMap map[string]time.Time

func (m DueDateMap) Value() (driver.Value, error) {
	if len(m) == 0 {
		return nil, nil
	}
	return json.Marshal(m)
}

func (m *DueDateMap) Scan(src interface{}) error {
	if src == nil {
		*m = nil
		return nil
	}
	b, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("cannot scan %T into DueDateMap", src)
	}
	return json.Unmarshal(b, m)
}

// WaiverMap records admin waiver overrides per installment key. Stored as
// jsonb on the plan selection row.
type WaiverMap map[string]WaiverState

func (m WaiverMap) Value() (driver.Value, error) {
	if len(m) == 0 {
		return nil, nil
	}
	return json.Marshal(m)
}

func (m *WaiverMap) Scan(src interface{}) error {
	if src == nil {
		*m = nil
		return nil
	}
	b, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("cannot scan %T into WaiverMap", src)
	}
	return json.Unmarshal(b, m)
}

// FeeStructure is the immutable fee configuration for a cohort, or a
// per-student override ("custom fee structure") that entirely replaces the
// cohort default when present. All fee amounts are GST-inclusive.
type FeeStructure struct {
	ID       uuid.UUID `json:"id" db:"id"`
	CohortID string    `json:"cohort_id" db:"cohort_id"`
	// StudentID is empty for the cohort default and set on custom overrides.
	StudentID               string          `json:"student_id" db:"student_id"`
	TotalProgramFee         decimal.Decimal `json:"total_program_fee" db:"total_program_fee"`
	AdmissionFee            decimal.Decimal `json:"admission_fee" db:"admission_fee"`
	NumberOfSemesters       int             `json:"number_of_semesters" db:"number_of_semesters"`
	InstallmentsPerSemester int             `json:"installments_per_semester" db:"installments_per_semester"`
	// OneShotDiscountPercent applies to the one_shot plan only, e.g. 10 for 10%.
	OneShotDiscountPercent decimal.Decimal `json:"one_shot_discount_percent" db:"one_shot_discount_percent"`
	CohortStartDate        time.Time       `json:"cohort_start_date" db:"cohort_start_date"`
	OneShotDueDate         *time.Time      `json:"one_shot_due_date" db:"one_shot_due_date"`
	DueDates               DueDateMap      `json:"due_dates" db:"due_dates"`
	CreatedAt              time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt              time.Time       `json:"updated_at" db:"updated_at"`
}

// ProgramFeeExcludingAdmission returns the GST-inclusive amount the payment
// schedule is built from. The admission fee is carved out first and handled
// separately: it is never discounted or scholarshipped.
func (f *FeeStructure) ProgramFeeExcludingAdmission() decimal.Decimal {
	return f.TotalProgramFee.Sub(f.AdmissionFee)
}

// DueDateFor looks up an explicit due-date override for the given key.
func (f *FeeStructure) DueDateFor(key InstallmentKey) (time.Time, bool) {
	if f.DueDates == nil {
		return time.Time{}, false
	}
	t, ok := f.DueDates[key.String()]
	return t, ok
}

// PlanSelection is a student's chosen payment plan plus the scholarship
// awarded to them and any admin waivers. One row per student.
type PlanSelection struct {
	ID                uuid.UUID       `json:"id" db:"id"`
	StudentID         string          `json:"student_id" db:"student_id"`
	Plan              PaymentPlan     `json:"plan" db:"plan"`
	ScholarshipAmount decimal.Decimal `json:"scholarship_amount" db:"scholarship_amount"`
	Waivers           WaiverMap       `json:"waivers" db:"waivers"`
	CreatedAt         time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at" db:"updated_at"`
}

// WaiverFor returns the waiver override recorded for an installment key,
// if any.
func (p *PlanSelection) WaiverFor(key InstallmentKey) WaiverState {
	if p == nil || p.Waivers == nil {
		return WaiverNone
	}
	return p.Waivers[key.String()]
}

// ProgressRecord carries the persisted paid/total fields used by the
// degraded, database-only progress calculation when the live schedule
// recomputation is unavailable.
type ProgressRecord struct {
	StudentID   string          `json:"student_id" db:"student_id"`
	TotalAmount decimal.Decimal `json:"total_amount" db:"total_amount"`
	PaidAmount  decimal.Decimal `json:"paid_amount" db:"paid_amount"`
	UpdatedAt   time.Time       `json:"updated_at" db:"updated_at"`
}
