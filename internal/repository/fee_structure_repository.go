package repository

import (
	"context"
	"time"

	"github.com/campuspay/fee-engine/internal/domain"

	"github.com/jmoiron/sqlx"
)

type feeStructureRepository struct {
	db *sqlx.DB
}

func NewFeeStructureRepository(db *sqlx.DB) FeeStructureRepository {
	return &feeStructureRepository{db: db}
}

func (r *feeStructureRepository) GetCustomForStudent(ctx context.Context, studentID string) (*domain.FeeStructure, error) {
	query := `
		SELECT id, cohort_id, student_id, total_program_fee, admission_fee,
		       number_of_semesters, installments_per_semester, one_shot_discount_percent,
		       cohort_start_date, one_shot_due_date, due_dates, created_at, updated_at
		FROM fee_structures
		WHERE student_id = $1
	`

	var fs domain.FeeStructure
	err := r.db.GetContext(ctx, &fs, query, studentID)
	if err != nil {
		return nil, err
	}

	return &fs, nil
}

func (r *feeStructureRepository) GetDefaultForStudent(ctx context.Context, studentID string) (*domain.FeeStructure, error) {
	query := `
		SELECT fs.id, fs.cohort_id, fs.student_id, fs.total_program_fee, fs.admission_fee,
		       fs.number_of_semesters, fs.installments_per_semester, fs.one_shot_discount_percent,
		       fs.cohort_start_date, fs.one_shot_due_date, fs.due_dates, fs.created_at, fs.updated_at
		FROM fee_structures fs
		JOIN students s ON s.cohort_id = fs.cohort_id
		WHERE s.student_id = $1 AND fs.student_id = ''
	`

	var fs domain.FeeStructure
	err := r.db.GetContext(ctx, &fs, query, studentID)
	if err != nil {
		return nil, err
	}

	return &fs, nil
}

func (r *feeStructureRepository) GetPlanSelection(ctx context.Context, studentID string) (*domain.PlanSelection, error) {
	query := `
		SELECT id, student_id, plan, scholarship_amount, waivers, created_at, updated_at
		FROM plan_selections
		WHERE student_id = $1
	`

	var sel domain.PlanSelection
	err := r.db.GetContext(ctx, &sel, query, studentID)
	if err != nil {
		return nil, err
	}

	return &sel, nil
}

func (r *feeStructureRepository) SavePlanSelection(ctx context.Context, sel *domain.PlanSelection) error {
	query := `
		INSERT INTO plan_selections (id, student_id, plan, scholarship_amount, waivers, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (student_id) DO UPDATE
		SET plan = EXCLUDED.plan,
		    scholarship_amount = EXCLUDED.scholarship_amount,
		    waivers = EXCLUDED.waivers,
		    updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.ExecContext(ctx, query,
		sel.ID,
		sel.StudentID,
		sel.Plan,
		sel.ScholarshipAmount,
		sel.Waivers,
		sel.CreatedAt,
		time.Now(),
	)

	return err
}

func (r *feeStructureRepository) ListPlanSelections(ctx context.Context) ([]*domain.PlanSelection, error) {
	query := `
		SELECT id, student_id, plan, scholarship_amount, waivers, created_at, updated_at
		FROM plan_selections
		ORDER BY student_id
	`

	var selections []*domain.PlanSelection
	err := r.db.SelectContext(ctx, &selections, query)
	if err != nil {
		return nil, err
	}

	return selections, nil
}
