package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/campuspay/fee-engine/internal/config"
	"github.com/campuspay/fee-engine/internal/domain"
	"github.com/campuspay/fee-engine/internal/engine"
	"github.com/campuspay/fee-engine/internal/repository"
	customError "github.com/campuspay/fee-engine/pkg/errors"
)

// allPlans enumerates every cache key suffix a student's breakdown may be
// stored under; invalidation sweeps them all.
var allPlans = []domain.PaymentPlan{
	domain.PlanOneShot,
	domain.PlanSemWise,
	domain.PlanInstalmentWise,
	domain.PlanNotSelected,
}

type FeeService struct {
	StructureRepo   repository.FeeStructureRepository
	TransactionRepo repository.TransactionRepository
	redis           *redis.Client
	config          *config.Config
	// now is swappable in tests; the engine itself always receives an
	// explicit as-of time.
	now func() time.Time
}

func NewFeeService(
	structureRepo repository.FeeStructureRepository,
	transactionRepo repository.TransactionRepository,
	redisClient *redis.Client,
	cfg *config.Config,
) *FeeService {
	return &FeeService{
		StructureRepo:   structureRepo,
		TransactionRepo: transactionRepo,
		redis:           redisClient,
		config:          cfg,
		now:             time.Now,
	}
}

func breakdownCacheKey(studentID string, plan domain.PaymentPlan) string {
	return fmt.Sprintf("fees:breakdown:%s:%s", studentID, plan)
}

// GetBreakdown computes the full schedule for a student: plan selection
// first, then fee structure and transactions fetched concurrently, then the
// engine. Results are cached per (student, plan) and invalidated on every
// write, replacing the original system's persisted "data loaded" flags.
//
// A student with no fee structure or no selected plan gets the documented
// zero breakdown, never an error: the dashboard renders it as "no schedule
// yet".
func (s *FeeService) GetBreakdown(ctx context.Context, studentID string) (*domain.Breakdown, error) {
	sel, err := s.getPlanSelection(ctx, studentID)
	if err != nil {
		return nil, err
	}

	plan := domain.PlanNotSelected
	if sel != nil {
		plan = sel.Plan
	}

	if cached := s.cachedBreakdown(ctx, studentID, plan); cached != nil {
		return cached, nil
	}

	fs, txs, err := s.fetchInputs(ctx, studentID)
	if err != nil {
		return nil, err
	}

	scholarship := decimal.Zero
	if sel != nil {
		scholarship = sel.ScholarshipAmount
	}

	asOf := s.now()
	b, err := engine.ComputeBreakdown(fs, plan, scholarship, asOf)
	if err != nil {
		return nil, err
	}
	engine.ApplyTransactions(b, txs, sel, asOf)

	s.cacheBreakdown(ctx, studentID, plan, b)
	return b, nil
}

// GetSchedule returns the chronological installment list for a student.
func (s *FeeService) GetSchedule(ctx context.Context, studentID string) ([]*domain.Installment, error) {
	b, err := s.GetBreakdown(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return b.Installments(), nil
}

// GetProgress folds the student's schedule into the dashboard summary. When
// the live computation fails it degrades to the persisted paid/total
// roll-up rather than surfacing an error; the UI must still render.
func (s *FeeService) GetProgress(ctx context.Context, studentID string) (domain.ProgressSummary, error) {
	b, err := s.GetBreakdown(ctx, studentID)
	if err != nil {
		log.Printf("live progress computation failed for student %s, using persisted roll-up: %v", studentID, err)
		return s.degradedProgress(ctx, studentID)
	}

	txs, err := s.TransactionRepo.GetByStudentID(ctx, studentID)
	if err != nil {
		log.Printf("transaction fetch failed for student %s, using persisted roll-up: %v", studentID, err)
		return s.degradedProgress(ctx, studentID)
	}

	progress := engine.AggregateProgress(b, txs)

	// Keep the persisted roll-up fresh so the degraded path stays usable.
	if err := s.TransactionRepo.SaveProgressRecord(ctx, &domain.ProgressRecord{
		StudentID:   studentID,
		TotalAmount: progress.TotalAmount,
		PaidAmount:  progress.PaidAmount,
	}); err != nil {
		log.Printf("failed to persist progress record for student %s: %v", studentID, err)
	}

	return progress, nil
}

// RecordTransaction stores a payment submission and invalidates the
// student's cached breakdown so the next read re-derives every status.
func (s *FeeService) RecordTransaction(ctx context.Context, tx *domain.PaymentTransaction) error {
	if tx.InstallmentID != "" {
		if _, err := domain.ParseInstallmentKey(tx.InstallmentID); err != nil {
			return err
		}
	}

	if tx.ID == uuid.Nil {
		tx.ID = uuid.New()
	}
	if tx.VerificationStatus == "" {
		tx.VerificationStatus = domain.VerificationPending
	}
	now := s.now()
	tx.CreatedAt = now
	tx.UpdatedAt = now

	if err := s.TransactionRepo.Create(ctx, tx); err != nil {
		return customError.WrapDatabaseError(err)
	}

	s.invalidateBreakdown(ctx, tx.StudentID)
	return nil
}

// SetVerification applies a staff verification action
// (approve/reject/reset/partial-approve). A non-nil amount records the
// approved portion of a partial approval. The cache is invalidated so the
// changed verification state feeds the next derivation.
func (s *FeeService) SetVerification(ctx context.Context, transactionID uuid.UUID, status domain.VerificationStatus, amount *decimal.Decimal) error {
	tx, err := s.TransactionRepo.GetByID(ctx, transactionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return customError.WrapTransactionNotFound(transactionID.String())
		}
		return customError.WrapDatabaseError(err)
	}

	if err := s.TransactionRepo.UpdateVerification(ctx, transactionID, status, amount); err != nil {
		return customError.WrapDatabaseError(err)
	}

	s.invalidateBreakdown(ctx, tx.StudentID)
	return nil
}

// RefreshStatuses is the scheduler entry point: it recomputes every
// student's progress roll-up and sweeps their cached breakdowns so date
// rollovers (an installment slipping into overdue overnight) show up
// without waiting for cache expiry.
func (s *FeeService) RefreshStatuses(ctx context.Context) error {
	selections, err := s.StructureRepo.ListPlanSelections(ctx)
	if err != nil {
		return customError.WrapDatabaseError(err)
	}

	var failed int
	for _, sel := range selections {
		s.invalidateBreakdown(ctx, sel.StudentID)
		if _, err := s.GetProgress(ctx, sel.StudentID); err != nil {
			failed++
			log.Printf("status refresh failed for student %s: %v", sel.StudentID, err)
		}
	}

	if failed > 0 {
		return fmt.Errorf("status refresh completed with %d of %d students failed", failed, len(selections))
	}
	return nil
}

// fetchInputs resolves the fee structure and the transaction list. The two
// are independent, so they are fetched concurrently; within the structure
// fetch the custom override is tried before the cohort default, which is a
// sequential dependency.
func (s *FeeService) fetchInputs(ctx context.Context, studentID string) (*domain.FeeStructure, []*domain.PaymentTransaction, error) {
	var (
		wg    sync.WaitGroup
		fs    *domain.FeeStructure
		fsErr error
		txs   []*domain.PaymentTransaction
		txErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		fs, fsErr = s.resolveStructure(ctx, studentID)
	}()
	go func() {
		defer wg.Done()
		txs, txErr = s.TransactionRepo.GetByStudentID(ctx, studentID)
	}()
	wg.Wait()

	if fsErr != nil {
		return nil, nil, fsErr
	}
	if txErr != nil {
		return nil, nil, customError.WrapDatabaseError(txErr)
	}
	return fs, txs, nil
}

// resolveStructure returns the custom per-student structure when one
// exists, otherwise the cohort default, otherwise nil (the engine degrades
// to the zero breakdown).
func (s *FeeService) resolveStructure(ctx context.Context, studentID string) (*domain.FeeStructure, error) {
	fs, err := s.StructureRepo.GetCustomForStudent(ctx, studentID)
	if err == nil {
		return fs, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, customError.WrapDatabaseError(err)
	}

	fs, err = s.StructureRepo.GetDefaultForStudent(ctx, studentID)
	if err == nil {
		return fs, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, customError.WrapDatabaseError(err)
	}

	log.Printf("no fee structure for student %s, serving zero breakdown", studentID)
	return nil, nil
}

func (s *FeeService) getPlanSelection(ctx context.Context, studentID string) (*domain.PlanSelection, error) {
	sel, err := s.StructureRepo.GetPlanSelection(ctx, studentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, customError.WrapDatabaseError(err)
	}
	return sel, nil
}

func (s *FeeService) degradedProgress(ctx context.Context, studentID string) (domain.ProgressSummary, error) {
	rec, err := s.TransactionRepo.GetProgressRecord(ctx, studentID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return domain.ProgressSummary{}, customError.WrapDatabaseError(err)
	}
	return engine.AggregateProgressFromRecord(rec), nil
}

func (s *FeeService) cachedBreakdown(ctx context.Context, studentID string, plan domain.PaymentPlan) *domain.Breakdown {
	if s.redis == nil {
		return nil
	}
	raw, err := s.redis.Get(ctx, breakdownCacheKey(studentID, plan)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("breakdown cache read failed for student %s: %v", studentID, err)
		}
		return nil
	}
	var b domain.Breakdown
	if err := json.Unmarshal(raw, &b); err != nil {
		log.Printf("breakdown cache entry corrupt for student %s: %v", studentID, err)
		return nil
	}
	return &b
}

func (s *FeeService) cacheBreakdown(ctx context.Context, studentID string, plan domain.PaymentPlan, b *domain.Breakdown) {
	if s.redis == nil {
		return
	}
	raw, err := json.Marshal(b)
	if err != nil {
		log.Printf("breakdown cache marshal failed for student %s: %v", studentID, err)
		return
	}
	ttl := s.config.GetBreakdownCacheTTL()
	if err := s.redis.Set(ctx, breakdownCacheKey(studentID, plan), raw, ttl).Err(); err != nil {
		log.Printf("breakdown cache write failed for student %s: %v", studentID, err)
	}
}

func (s *FeeService) invalidateBreakdown(ctx context.Context, studentID string) {
	if s.redis == nil {
		return
	}
	keys := make([]string, 0, len(allPlans))
	for _, plan := range allPlans {
		keys = append(keys, breakdownCacheKey(studentID, plan))
	}
	if err := s.redis.Del(ctx, keys...).Err(); err != nil {
		log.Printf("breakdown cache invalidation failed for student %s: %v", studentID, err)
	}
}
