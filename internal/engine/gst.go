// Package engine implements the fee schedule and payment status
// computations. Everything here is a pure function over immutable inputs:
// no I/O, no shared state, safe to call concurrently. Callers fetch fee
// structures and transactions, run the engine, and persist nothing — the
// schedule is a derived view, recomputed on every invocation.
package engine

import "github.com/shopspring/decimal"

// GSTRatePercent is the flat GST rate baked into the domain. Fee amounts
// are stored GST-inclusive; the splitter recovers the base and tax parts.
const GSTRatePercent = 18

var gstFactor = decimal.NewFromInt(100 + GSTRatePercent).Div(decimal.NewFromInt(100))

// ExtractBase returns the pre-tax base of a GST-inclusive total.
func ExtractBase(total decimal.Decimal) decimal.Decimal {
	return total.Div(gstFactor).Round(2)
}

// ExtractGST returns the tax portion of a GST-inclusive total.
func ExtractGST(total decimal.Decimal) decimal.Decimal {
	return total.Sub(ExtractBase(total))
}

// AddGST returns the GST-inclusive total for a base amount.
func AddGST(base decimal.Decimal) decimal.Decimal {
	return base.Mul(gstFactor).Round(2)
}
