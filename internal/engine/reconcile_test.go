package engine

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/campuspay/fee-engine/internal/domain"
)

func tx(installmentID string, semester int, amount int64, status domain.VerificationStatus) *domain.PaymentTransaction {
	return &domain.PaymentTransaction{
		InstallmentID:      installmentID,
		SemesterNumber:     semester,
		Amount:             decimal.NewFromInt(amount),
		VerificationStatus: status,
	}
}

func TestMatchTransactions(t *testing.T) {
	key := domain.NewInstallmentKey(2, 1)

	t.Run("exact key wins", func(t *testing.T) {
		txs := []*domain.PaymentTransaction{
			tx("2-1", 2, 10000, domain.VerificationApproved),
			tx("2-2", 2, 5000, domain.VerificationApproved),
			tx("", 2, 7000, domain.VerificationApproved), // legacy row
		}
		matched := MatchTransactions(txs, key)
		assert.Len(t, matched, 1)
		assert.Equal(t, "2-1", matched[0].InstallmentID)
	})

	t.Run("semester fallback only when nothing carries the key", func(t *testing.T) {
		txs := []*domain.PaymentTransaction{
			tx("", 2, 7000, domain.VerificationApproved),
			tx("", 3, 9000, domain.VerificationApproved),
		}
		matched := MatchTransactions(txs, key)
		assert.Len(t, matched, 1)
		assert.Equal(t, 2, matched[0].SemesterNumber)
	})

	t.Run("a different installment key never matches through the fallback", func(t *testing.T) {
		txs := []*domain.PaymentTransaction{
			tx("2-2", 2, 5000, domain.VerificationApproved),
		}
		assert.Empty(t, MatchTransactions(txs, key))
	})

	t.Run("unmatchable rows are skipped", func(t *testing.T) {
		txs := []*domain.PaymentTransaction{
			tx("", 0, 5000, domain.VerificationApproved),
		}
		assert.Empty(t, MatchTransactions(txs, key))
	})
}

func TestReconcile(t *testing.T) {
	key := domain.NewInstallmentKey(1, 1)
	payable := decimal.NewFromInt(29500)

	tests := []struct {
		name              string
		txs               []*domain.PaymentTransaction
		expectedApproved  int64
		expectedPending   int64
		expectedAllocated int64
		expectedPartial   bool
		expectedSequence  int
	}{
		{
			name:              "no transactions",
			txs:               nil,
			expectedApproved:  0,
			expectedAllocated: 0,
		},
		{
			name: "single approved partial payment",
			txs: []*domain.PaymentTransaction{
				tx("1-1", 1, 15000, domain.VerificationApproved),
			},
			expectedApproved:  15000,
			expectedAllocated: 15000,
			expectedPartial:   true,
		},
		{
			name: "approved plus pending verification",
			txs: []*domain.PaymentTransaction{
				tx("1-1", 1, 15000, domain.VerificationApproved),
				tx("1-1", 1, 14500, domain.VerificationPending),
			},
			expectedApproved:  15000,
			expectedPending:   14500,
			expectedAllocated: 15000,
			expectedPartial:   true,
		},
		{
			name: "partially approved counts as approved money",
			txs: []*domain.PaymentTransaction{
				tx("1-1", 1, 20000, domain.VerificationPartial),
			},
			expectedApproved:  20000,
			expectedAllocated: 20000,
			expectedPartial:   true,
		},
		{
			name: "rejected transactions count nowhere",
			txs: []*domain.PaymentTransaction{
				tx("1-1", 1, 29500, domain.VerificationRejected),
			},
			expectedApproved:  0,
			expectedAllocated: 0,
		},
		{
			name: "overpayment is capped at the payable",
			txs: []*domain.PaymentTransaction{
				tx("1-1", 1, 40000, domain.VerificationApproved),
			},
			expectedApproved:  40000,
			expectedAllocated: 29500,
			expectedPartial:   false,
		},
		{
			name: "legacy pending alias counts as pending",
			txs: []*domain.PaymentTransaction{
				tx("1-1", 1, 10000, domain.VerificationSubmitted),
			},
			expectedPending:   10000,
			expectedAllocated: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Reconcile(tt.txs, key, payable, payable)
			assert.True(t, r.ApprovedPaid.Equal(decimal.NewFromInt(tt.expectedApproved)),
				"approved: got %v", r.ApprovedPaid)
			assert.True(t, r.PendingSubmitted.Equal(decimal.NewFromInt(tt.expectedPending)),
				"pending: got %v", r.PendingSubmitted)
			assert.True(t, r.AllocatedPaid.Equal(decimal.NewFromInt(tt.expectedAllocated)),
				"allocated: got %v", r.AllocatedPaid)
			assert.Equal(t, tt.expectedPartial, r.IsPartial)
			assert.Equal(t, tt.expectedSequence, r.Sequence)
			assert.Equal(t, len(tt.txs) > 0, r.HasTransactions)
		})
	}
}

func TestReconcilePartialSequenceIsAuthoritative(t *testing.T) {
	key := domain.NewInstallmentKey(1, 1)
	payable := decimal.NewFromInt(29500)

	first := tx("1-1", 1, 10000, domain.VerificationApproved)
	first.PartialPaymentSequence = 1
	second := tx("1-1", 1, 5000, domain.VerificationPending)
	second.PartialPaymentSequence = 2

	r := Reconcile([]*domain.PaymentTransaction{first, second}, key, payable, payable)
	assert.Equal(t, 2, r.Sequence)
	assert.True(t, r.IsPartial)
}
