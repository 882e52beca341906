package domain

// PaymentPlan is the granularity a student pays the program fee at.
type PaymentPlan string

const (
	PlanOneShot        PaymentPlan = "one_shot"
	PlanSemWise        PaymentPlan = "sem_wise"
	PlanInstalmentWise PaymentPlan = "instalment_wise"
	PlanNotSelected    PaymentPlan = "not_selected"
)

// ParsePaymentPlan maps a wire string onto a PaymentPlan. Empty and unknown
// values resolve to PlanNotSelected so callers degrade to the zero schedule
// instead of failing.
func ParsePaymentPlan(s string) PaymentPlan {
	switch PaymentPlan(s) {
	case PlanOneShot, PlanSemWise, PlanInstalmentWise:
		return PaymentPlan(s)
	default:
		return PlanNotSelected
	}
}

// IsSelected reports whether the plan names a concrete schedule variant.
func (p PaymentPlan) IsSelected() bool {
	switch p {
	case PlanOneShot, PlanSemWise, PlanInstalmentWise:
		return true
	default:
		return false
	}
}
