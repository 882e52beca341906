package domain

// InstallmentStatus is the derived lifecycle state of one installment.
// The string values are wire-stable; clients key badges and filters off them.
type InstallmentStatus string

const (
	StatusPending           InstallmentStatus = "pending"
	StatusPending10PlusDays InstallmentStatus = "pending_10_plus_days"
	StatusUpcoming          InstallmentStatus = "upcoming"
	StatusPartiallyPaidDays InstallmentStatus = "partially_paid_days_left"
	StatusOverdue           InstallmentStatus = "overdue"
	StatusPartiallyOverdue  InstallmentStatus = "partially_paid_overdue"
	StatusVerification      InstallmentStatus = "verification_pending"
	StatusPartialVerify     InstallmentStatus = "partially_paid_verification_pending"
	StatusPaid              InstallmentStatus = "paid"
	StatusWaived            InstallmentStatus = "waived"
	StatusPartiallyWaived   InstallmentStatus = "partially_waived"
	StatusNotSetup          InstallmentStatus = "not_setup"
)

// IsTerminal reports whether the installment needs no further payment action.
func (s InstallmentStatus) IsTerminal() bool {
	return s == StatusPaid || s == StatusWaived
}

// WaiverState records an admin waiver override on an installment. Waivers are
// not derivable from transactions; staff record them explicitly and the
// status derivation honors them ahead of every transaction-driven rule.
type WaiverState string

const (
	WaiverNone    WaiverState = ""
	WaiverFull    WaiverState = "full"
	WaiverPartial WaiverState = "partial"
)
