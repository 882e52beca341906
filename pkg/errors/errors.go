package errors

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrFeeStructureNotFound  = errors.New("fee structure not found")
	ErrPlanNotSelected       = errors.New("payment plan not selected")
	ErrInvalidPaymentPlan    = errors.New("invalid payment plan")
	ErrInvariantViolation    = errors.New("fee computation invariant violated")
	ErrTransactionNotFound   = errors.New("payment transaction not found")
	ErrInvalidVerification   = errors.New("invalid verification status")
	ErrInvalidInstallmentKey = errors.New("invalid installment key")
)

// BusinessError represents a business logic error
type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

// NewBusinessError creates a new business error
func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Error codes
const (
	ErrCodeFeeStructureNotFound  = "FEE_STRUCTURE_NOT_FOUND"
	ErrCodePlanNotSelected       = "PLAN_NOT_SELECTED"
	ErrCodeInvalidPaymentPlan    = "INVALID_PAYMENT_PLAN"
	ErrCodeInvariantViolation    = "INVARIANT_VIOLATION"
	ErrCodeTransactionNotFound   = "TRANSACTION_NOT_FOUND"
	ErrCodeInvalidVerification   = "INVALID_VERIFICATION_STATUS"
	ErrCodeInvalidInstallmentKey = "INVALID_INSTALLMENT_KEY"
	ErrCodeDatabaseError         = "DATABASE_ERROR"
	ErrCodeCacheError            = "CACHE_ERROR"
)

// Wrap common errors with business context

func WrapFeeStructureNotFound(studentID string) *BusinessError {
	return NewBusinessError(
		ErrCodeFeeStructureNotFound,
		fmt.Sprintf("No fee structure configured for student %s", studentID),
		ErrFeeStructureNotFound,
	)
}

func WrapInvalidPaymentPlan(plan string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidPaymentPlan,
		fmt.Sprintf("Payment plan %q is not one of one_shot, sem_wise, instalment_wise", plan),
		ErrInvalidPaymentPlan,
	)
}

func WrapInvariantViolation(detail string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvariantViolation,
		detail,
		ErrInvariantViolation,
	)
}

func WrapTransactionNotFound(transactionID string) *BusinessError {
	return NewBusinessError(
		ErrCodeTransactionNotFound,
		fmt.Sprintf("Payment transaction %s not found", transactionID),
		ErrTransactionNotFound,
	)
}

func WrapInvalidVerification(status string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidVerification,
		fmt.Sprintf("Verification status %q is not recognised", status),
		ErrInvalidVerification,
	)
}

func WrapInvalidInstallmentKey(key string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidInstallmentKey,
		fmt.Sprintf("Installment key %q is not of the form {semester}-{installment}", key),
		ErrInvalidInstallmentKey,
	)
}

func WrapDatabaseError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeDatabaseError,
		"database operation failed",
		err,
	)
}

func WrapCacheError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeCacheError,
		"Cache operation failed",
		err,
	)
}
