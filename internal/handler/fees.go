package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/campuspay/fee-engine/internal/domain"
	"github.com/campuspay/fee-engine/internal/service"
	customError "github.com/campuspay/fee-engine/pkg/errors"
	"github.com/campuspay/fee-engine/pkg/response"
)

type FeeHandler struct {
	service   *service.FeeService
	validator *validator.Validate
}

func NewFeeHandler(service *service.FeeService) *FeeHandler {
	return &FeeHandler{
		service:   service,
		validator: validator.New(),
	}
}

// GetBreakdown returns the full fee breakdown for a student.
func (h *FeeHandler) GetBreakdown(w http.ResponseWriter, r *http.Request) {
	studentID := mux.Vars(r)["studentId"]

	breakdown, err := h.service.GetBreakdown(r.Context(), studentID)
	if err != nil {
		writeBusinessError(w, err)
		return
	}

	response.Success(w, breakdown)
}

// GetSchedule returns the chronological installment list for a student.
func (h *FeeHandler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	studentID := mux.Vars(r)["studentId"]

	breakdown, err := h.service.GetBreakdown(r.Context(), studentID)
	if err != nil {
		writeBusinessError(w, err)
		return
	}

	response.Success(w, domain.ScheduleResponse{
		StudentID: studentID,
		Plan:      breakdown.Plan,
		Schedule:  breakdown.Installments(),
	})
}

// GetProgress returns the paid/pending roll-up for a student.
func (h *FeeHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	studentID := mux.Vars(r)["studentId"]

	progress, err := h.service.GetProgress(r.Context(), studentID)
	if err != nil {
		writeBusinessError(w, err)
		return
	}

	// Progress never renders negative, whatever state the records are in.
	progress.PendingAmount = response.DisplayAmount(progress.PendingAmount)
	response.Success(w, progress)
}

// RecordTransaction accepts a student's payment submission.
func (h *FeeHandler) RecordTransaction(w http.ResponseWriter, r *http.Request) {
	studentID := mux.Vars(r)["studentId"]

	var req domain.CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		response.BadRequest(w, "Validation failed", err)
		return
	}
	if req.Amount.IsNegative() || req.Amount.IsZero() {
		response.BadRequest(w, "Amount must be positive", nil)
		return
	}

	tx := &domain.PaymentTransaction{
		StudentID:              studentID,
		Amount:                 req.Amount,
		PaymentMethod:          req.PaymentMethod,
		InstallmentID:          req.InstallmentID,
		SemesterNumber:         req.SemesterNumber,
		PartialPaymentSequence: req.PartialPaymentSequence,
	}

	if err := h.service.RecordTransaction(r.Context(), tx); err != nil {
		writeBusinessError(w, err)
		return
	}

	response.Created(w, tx)
}

// SetVerification applies a staff verification action to a transaction.
func (h *FeeHandler) SetVerification(w http.ResponseWriter, r *http.Request) {
	transactionID, err := uuid.Parse(mux.Vars(r)["transactionId"])
	if err != nil {
		response.BadRequest(w, "Invalid transaction ID", err)
		return
	}

	var req domain.VerificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		response.BadRequest(w, "Validation failed", err)
		return
	}

	status, err := domain.ParseVerificationStatus(req.Status)
	if err != nil {
		response.BadRequest(w, "Unknown verification status", err)
		return
	}

	if err := h.service.SetVerification(r.Context(), transactionID, status, req.ApprovedAmount); err != nil {
		writeBusinessError(w, err)
		return
	}

	response.Success(w, map[string]string{
		"transaction_id": transactionID.String(),
		"status":         string(status),
	})
}

func writeBusinessError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, customError.ErrTransactionNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, customError.ErrInvalidInstallmentKey),
		errors.Is(err, customError.ErrInvalidVerification),
		errors.Is(err, customError.ErrInvalidPaymentPlan):
		response.BadRequest(w, "Invalid request", err)
	default:
		response.InternalServerError(w, "Request failed", err)
	}
}
