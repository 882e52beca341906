package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/campuspay/fee-engine/internal/domain"
)

type MockFeeStructureRepository struct {
	mock.Mock
}

func (m *MockFeeStructureRepository) GetCustomForStudent(ctx context.Context, studentID string) (*domain.FeeStructure, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FeeStructure), args.Error(1)
}

func (m *MockFeeStructureRepository) GetDefaultForStudent(ctx context.Context, studentID string) (*domain.FeeStructure, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FeeStructure), args.Error(1)
}

func (m *MockFeeStructureRepository) GetPlanSelection(ctx context.Context, studentID string) (*domain.PlanSelection, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PlanSelection), args.Error(1)
}

func (m *MockFeeStructureRepository) SavePlanSelection(ctx context.Context, sel *domain.PlanSelection) error {
	args := m.Called(ctx, sel)
	return args.Error(0)
}

func (m *MockFeeStructureRepository) ListPlanSelections(ctx context.Context) ([]*domain.PlanSelection, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.PlanSelection), args.Error(1)
}

type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) Create(ctx context.Context, tx *domain.PaymentTransaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockTransactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.PaymentTransaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentTransaction), args.Error(1)
}

func (m *MockTransactionRepository) GetByStudentID(ctx context.Context, studentID string) ([]*domain.PaymentTransaction, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.PaymentTransaction), args.Error(1)
}

func (m *MockTransactionRepository) UpdateVerification(ctx context.Context, id uuid.UUID, status domain.VerificationStatus, amount *decimal.Decimal) error {
	args := m.Called(ctx, id, status, amount)
	return args.Error(0)
}

func (m *MockTransactionRepository) GetProgressRecord(ctx context.Context, studentID string) (*domain.ProgressRecord, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProgressRecord), args.Error(1)
}

func (m *MockTransactionRepository) SaveProgressRecord(ctx context.Context, rec *domain.ProgressRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}
