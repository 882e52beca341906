package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/campuspay/fee-engine/internal/domain"

	"github.com/jmoiron/sqlx"
)

type transactionRepository struct {
	db *sqlx.DB
}

func NewTransactionRepository(db *sqlx.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(ctx context.Context, tx *domain.PaymentTransaction) error {
	query := `
		INSERT INTO payment_transactions (id, student_id, amount, payment_method, verification_status,
		                                  partial_payment_sequence, installment_id, semester_number,
		                                  created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.ExecContext(ctx, query,
		tx.ID,
		tx.StudentID,
		tx.Amount,
		tx.PaymentMethod,
		tx.VerificationStatus,
		tx.PartialPaymentSequence,
		tx.InstallmentID,
		tx.SemesterNumber,
		tx.CreatedAt,
		tx.UpdatedAt,
	)

	return err
}

func (r *transactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.PaymentTransaction, error) {
	query := `
		SELECT id, student_id, amount, payment_method, verification_status,
		       partial_payment_sequence, installment_id, semester_number, created_at, updated_at
		FROM payment_transactions
		WHERE id = $1
	`

	var tx domain.PaymentTransaction
	err := r.db.GetContext(ctx, &tx, query, id)
	if err != nil {
		return nil, err
	}

	return &tx, nil
}

func (r *transactionRepository) GetByStudentID(ctx context.Context, studentID string) ([]*domain.PaymentTransaction, error) {
	query := `
		SELECT id, student_id, amount, payment_method, verification_status,
		       partial_payment_sequence, installment_id, semester_number, created_at, updated_at
		FROM payment_transactions
		WHERE student_id = $1
		ORDER BY created_at
	`

	var txs []*domain.PaymentTransaction
	err := r.db.SelectContext(ctx, &txs, query, studentID)
	if err != nil {
		return nil, err
	}

	return txs, nil
}

func (r *transactionRepository) UpdateVerification(ctx context.Context, id uuid.UUID, status domain.VerificationStatus, amount *decimal.Decimal) error {
	if amount != nil {
		query := `
			UPDATE payment_transactions
			SET verification_status = $2, amount = $3, updated_at = $4
			WHERE id = $1
		`
		_, err := r.db.ExecContext(ctx, query, id, status, *amount, time.Now())
		return err
	}

	query := `
		UPDATE payment_transactions
		SET verification_status = $2, updated_at = $3
		WHERE id = $1
	`

	_, err := r.db.ExecContext(ctx, query, id, status, time.Now())
	return err
}

func (r *transactionRepository) GetProgressRecord(ctx context.Context, studentID string) (*domain.ProgressRecord, error) {
	query := `
		SELECT student_id, total_amount, paid_amount, updated_at
		FROM progress_records
		WHERE student_id = $1
	`

	var rec domain.ProgressRecord
	err := r.db.GetContext(ctx, &rec, query, studentID)
	if err != nil {
		return nil, err
	}

	return &rec, nil
}

func (r *transactionRepository) SaveProgressRecord(ctx context.Context, rec *domain.ProgressRecord) error {
	query := `
		INSERT INTO progress_records (student_id, total_amount, paid_amount, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (student_id) DO UPDATE
		SET total_amount = EXCLUDED.total_amount,
		    paid_amount = EXCLUDED.paid_amount,
		    updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.ExecContext(ctx, query,
		rec.StudentID,
		rec.TotalAmount,
		rec.PaidAmount,
		time.Now(),
	)

	return err
}
