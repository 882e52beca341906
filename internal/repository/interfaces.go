package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/campuspay/fee-engine/internal/domain"
)

// FeeStructureRepository defines the interface for fee configuration reads
type FeeStructureRepository interface {
	// GetCustomForStudent retrieves a per-student custom fee structure.
	// When present it entirely replaces the cohort default.
	GetCustomForStudent(ctx context.Context, studentID string) (*domain.FeeStructure, error)

	// GetDefaultForStudent retrieves the cohort-default fee structure for
	// the student's cohort
	GetDefaultForStudent(ctx context.Context, studentID string) (*domain.FeeStructure, error)

	// GetPlanSelection retrieves a student's chosen plan, scholarship and waivers
	GetPlanSelection(ctx context.Context, studentID string) (*domain.PlanSelection, error)

	// SavePlanSelection upserts a student's plan selection
	SavePlanSelection(ctx context.Context, sel *domain.PlanSelection) error

	// ListPlanSelections lists every student with a selected plan, for the
	// scheduler's snapshot refresh
	ListPlanSelections(ctx context.Context) ([]*domain.PlanSelection, error)
}

// TransactionRepository defines the interface for payment transaction data operations
type TransactionRepository interface {
	// Create creates a new payment transaction record
	Create(ctx context.Context, tx *domain.PaymentTransaction) error

	// GetByID retrieves a single transaction
	GetByID(ctx context.Context, id uuid.UUID) (*domain.PaymentTransaction, error)

	// GetByStudentID retrieves all transactions for a student
	GetByStudentID(ctx context.Context, studentID string) ([]*domain.PaymentTransaction, error)

	// UpdateVerification applies a verification action. A non-nil amount
	// records the approved portion of a partial approval.
	UpdateVerification(ctx context.Context, id uuid.UUID, status domain.VerificationStatus, amount *decimal.Decimal) error

	// GetProgressRecord reads the persisted paid/total roll-up used by the
	// degraded progress calculation
	GetProgressRecord(ctx context.Context, studentID string) (*domain.ProgressRecord, error)

	// SaveProgressRecord upserts the persisted roll-up
	SaveProgressRecord(ctx context.Context, rec *domain.ProgressRecord) error
}
