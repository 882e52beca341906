package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	customError "github.com/campuspay/fee-engine/pkg/errors"
)

// VerificationStatus tracks where a submitted payment sits in the staff
// review queue.
type VerificationStatus string

const (
	VerificationPending   VerificationStatus = "verification_pending"
	VerificationSubmitted VerificationStatus = "pending" // legacy alias still present in old rows
	VerificationApproved  VerificationStatus = "approved"
	VerificationRejected  VerificationStatus = "rejected"
	VerificationPartial   VerificationStatus = "partially_approved"
)

// ParseVerificationStatus validates a wire string.
func ParseVerificationStatus(s string) (VerificationStatus, error) {
	switch VerificationStatus(s) {
	case VerificationPending, VerificationSubmitted, VerificationApproved,
		VerificationRejected, VerificationPartial:
		return VerificationStatus(s), nil
	default:
		return "", customError.WrapInvalidVerification(s)
	}
}

// CountsAsApproved reports whether the amount counts toward money actually
// received. Partially approved transactions count: their Amount field is
// adjusted to the approved portion at verification time.
func (v VerificationStatus) CountsAsApproved() bool {
	return v == VerificationApproved || v == VerificationPartial
}

// CountsAsPending reports whether the transaction still awaits staff review.
func (v VerificationStatus) CountsAsPending() bool {
	return v == VerificationPending || v == VerificationSubmitted
}

// InstallmentKey identifies the installment a transaction targets. Legacy
// rows sometimes carry only a semester number, so the key is a tagged
// variant: Installment == 0 means "semester-only".
type InstallmentKey struct {
	Semester    int
	Installment int
}

// NewInstallmentKey builds a fully-qualified key.
func NewInstallmentKey(semester, installment int) InstallmentKey {
	return InstallmentKey{Semester: semester, Installment: installment}
}

// SemesterOnlyKey builds the loose fallback key for legacy rows.
func SemesterOnlyKey(semester int) InstallmentKey {
	return InstallmentKey{Semester: semester}
}

// HasInstallment reports whether the key pins a specific installment.
func (k InstallmentKey) HasInstallment() bool {
	return k.Installment > 0
}

func (k InstallmentKey) String() string {
	if !k.HasInstallment() {
		return strconv.Itoa(k.Semester)
	}
	return fmt.Sprintf("%d-%d", k.Semester, k.Installment)
}

// ParseInstallmentKey parses "{semester}-{installment}" or a bare semester
// number.
func ParseInstallmentKey(s string) (InstallmentKey, error) {
	if s == "" {
		return InstallmentKey{}, customError.WrapInvalidInstallmentKey(s)
	}
	parts := strings.SplitN(s, "-", 2)
	sem, err := strconv.Atoi(parts[0])
	if err != nil || sem <= 0 {
		return InstallmentKey{}, customError.WrapInvalidInstallmentKey(s)
	}
	if len(parts) == 1 {
		return SemesterOnlyKey(sem), nil
	}
	inst, err := strconv.Atoi(parts[1])
	if err != nil || inst <= 0 {
		return InstallmentKey{}, customError.WrapInvalidInstallmentKey(s)
	}
	return NewInstallmentKey(sem, inst), nil
}

// PaymentTransaction is a single payment attempt by a student. It is the
// only persisted, mutable entity the engine consumes; verification actions
// change VerificationStatus (and Amount, for partial approvals) and the
// schedule is re-derived from scratch afterwards.
type PaymentTransaction struct {
	ID                 uuid.UUID          `json:"id" db:"id"`
	StudentID          string             `json:"student_id" db:"student_id"`
	Amount             decimal.Decimal    `json:"amount" db:"amount"`
	PaymentMethod      string             `json:"payment_method" db:"payment_method"`
	VerificationStatus VerificationStatus `json:"verification_status" db:"verification_status"`
	// PartialPaymentSequence is nonzero when this row is one of several
	// partial payments toward a single installment; it is authoritative for
	// display ordering even when amount heuristics disagree.
	PartialPaymentSequence int `json:"partial_payment_sequence" db:"partial_payment_sequence"`
	// InstallmentID is the legacy "{semester}-{installment}" reference.
	// Empty on old rows, which then match by SemesterNumber alone.
	InstallmentID  string    `json:"installment_id" db:"installment_id"`
	SemesterNumber int       `json:"semester_number" db:"semester_number"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// Key resolves the transaction's installment reference. The second return
// is false when the row carries neither an installment ID nor a semester
// number and cannot be matched at all.
func (t *PaymentTransaction) Key() (InstallmentKey, bool) {
	if t.InstallmentID != "" {
		if key, err := ParseInstallmentKey(t.InstallmentID); err == nil {
			return key, true
		}
	}
	if t.SemesterNumber > 0 {
		return SemesterOnlyKey(t.SemesterNumber), true
	}
	return InstallmentKey{}, false
}
