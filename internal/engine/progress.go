package engine

import (
	"github.com/shopspring/decimal"

	"github.com/campuspay/fee-engine/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// AggregateProgress folds the admission fee and every installment into the
// dashboard summary. The admission fee is always counted as paid: it is
// collected at enrollment, before any schedule exists.
func AggregateProgress(b *domain.Breakdown, txs []*domain.PaymentTransaction) domain.ProgressSummary {
	paid := b.AdmissionFee.TotalPayable
	for _, inst := range b.Installments() {
		r := Reconcile(txs, inst.Key(), inst.Payable, inst.Payable)
		paid = paid.Add(r.AllocatedPaid)
	}
	return progressFrom(b.OverallSummary.TotalAmountPayable, paid)
}

// AggregateProgressFromRecord is the degraded, database-only calculation
// used when the live plan recomputation is unavailable: it trusts the
// persisted paid/total fields and nothing else.
func AggregateProgressFromRecord(rec *domain.ProgressRecord) domain.ProgressSummary {
	if rec == nil {
		return progressFrom(decimal.Zero, decimal.Zero)
	}
	return progressFrom(rec.TotalAmount, rec.PaidAmount)
}

func progressFrom(total, paid decimal.Decimal) domain.ProgressSummary {
	p := domain.ProgressSummary{
		TotalAmount:   total,
		PaidAmount:    paid,
		PendingAmount: total.Sub(paid),
	}
	if total.IsPositive() {
		pct := paid.Div(total).Mul(hundred).Round(0)
		p.ProgressPercentage = int(pct.IntPart())
	}
	return p
}
