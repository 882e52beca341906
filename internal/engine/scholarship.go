package engine

import (
	"github.com/shopspring/decimal"

	"github.com/campuspay/fee-engine/internal/domain"
	"github.com/campuspay/fee-engine/pkg/utils"
)

// AllocateScholarship distributes a flat scholarship amount across an
// ordered (chronological) installment list, starting from the last
// installment and walking backward until the amount is exhausted. Students
// pay full price early and get relief at the end of the obligation, which
// is how the waiver is framed to them.
//
// Each installment's ScholarshipAmount is increased and its Payable reduced
// by min(remaining, payable). The unallocated remainder is returned; a
// nonzero remainder means the scholarship exceeded the total payable, which
// callers treat as an invariant violation.
func AllocateScholarship(installments []*domain.Installment, total decimal.Decimal) decimal.Decimal {
	remaining := total
	for i := len(installments) - 1; i >= 0 && remaining.IsPositive(); i-- {
		inst := installments[i]
		apply := utils.MinDecimal(remaining, inst.Payable)
		if !apply.IsPositive() {
			continue
		}
		inst.ScholarshipAmount = inst.ScholarshipAmount.Add(apply)
		inst.Payable = inst.Payable.Sub(apply)
		remaining = remaining.Sub(apply)
	}
	return remaining
}
