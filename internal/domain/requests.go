package domain

import "github.com/shopspring/decimal"

// DTOs for requests and responses

type CreateTransactionRequest struct {
	Amount                 decimal.Decimal `json:"amount" validate:"required"`
	PaymentMethod          string          `json:"payment_method" validate:"required"`
	InstallmentID          string          `json:"installment_id"`
	SemesterNumber         int             `json:"semester_number" validate:"gte=0"`
	PartialPaymentSequence int             `json:"partial_payment_sequence" validate:"gte=0"`
}

type VerificationRequest struct {
	Status string `json:"status" validate:"required"`
	// ApprovedAmount records the accepted portion of a partial approval.
	ApprovedAmount *decimal.Decimal `json:"approved_amount,omitempty"`
}

type ScheduleResponse struct {
	StudentID string         `json:"student_id"`
	Plan      PaymentPlan    `json:"plan"`
	Schedule  []*Installment `json:"schedule"`
}
