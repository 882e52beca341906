package engine

import (
	"github.com/shopspring/decimal"

	"github.com/campuspay/fee-engine/internal/domain"
	"github.com/campuspay/fee-engine/pkg/utils"
)

// ReconcileResult is the outcome of matching a transaction set against one
// installment.
type ReconcileResult struct {
	// ApprovedPaid is the sum of approved and partially-approved amounts.
	ApprovedPaid decimal.Decimal
	// PendingSubmitted is the sum of amounts still awaiting verification.
	PendingSubmitted decimal.Decimal
	// AllocatedPaid caps ApprovedPaid at the installment's payable: a single
	// installment never shows more paid than it owes, even when an
	// overpayment transaction exists. The excess is not modeled here.
	AllocatedPaid decimal.Decimal
	// IsPartial is true iff 0 < AllocatedPaid < the expected amount.
	IsPartial bool
	// Sequence is the highest partial_payment_sequence on file. It is
	// authoritative for ordering partial payments and preserved even when
	// amount heuristics disagree.
	Sequence int

	HasTransactions          bool
	HasVerificationPendingTx bool
	HasApprovedTx            bool
}

// MatchTransactions collects the transactions targeting an installment.
// Exact installment-level keys win; only when no transaction matches the
// full key do legacy semester-only rows (no installment reference at all)
// match by semester number. A row carrying a different installment-level
// key never matches through the fallback.
func MatchTransactions(txs []*domain.PaymentTransaction, key domain.InstallmentKey) []*domain.PaymentTransaction {
	var exact, loose []*domain.PaymentTransaction
	for _, tx := range txs {
		txKey, ok := tx.Key()
		if !ok {
			continue
		}
		if txKey == key {
			exact = append(exact, tx)
			continue
		}
		if !txKey.HasInstallment() && txKey.Semester == key.Semester {
			loose = append(loose, tx)
		}
	}
	if len(exact) > 0 {
		return exact
	}
	return loose
}

// Reconcile sums a transaction set for one installment and judges whether
// the payments are partial relative to the expected amount. The expected
// amount is the live payable recomputed for the student's actual plan; the
// engine is pure, so that tier is always reachable (the original system's
// degraded tiers existed only because its computation dependency could be
// unreachable).
func Reconcile(txs []*domain.PaymentTransaction, key domain.InstallmentKey, payable, expected decimal.Decimal) ReconcileResult {
	matched := MatchTransactions(txs, key)

	r := ReconcileResult{
		ApprovedPaid:     decimal.Zero,
		PendingSubmitted: decimal.Zero,
		AllocatedPaid:    decimal.Zero,
		HasTransactions:  len(matched) > 0,
	}
	for _, tx := range matched {
		switch {
		case tx.VerificationStatus.CountsAsApproved():
			r.ApprovedPaid = r.ApprovedPaid.Add(tx.Amount)
			r.HasApprovedTx = true
		case tx.VerificationStatus.CountsAsPending():
			r.PendingSubmitted = r.PendingSubmitted.Add(tx.Amount)
			r.HasVerificationPendingTx = true
		}
		if tx.PartialPaymentSequence > r.Sequence {
			r.Sequence = tx.PartialPaymentSequence
		}
	}

	r.AllocatedPaid = utils.MinDecimal(r.ApprovedPaid, payable)
	r.IsPartial = r.AllocatedPaid.IsPositive() && r.AllocatedPaid.LessThan(expected)
	return r
}
