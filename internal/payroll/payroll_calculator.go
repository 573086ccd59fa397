package payroll

import (
	"github.com/shopspring/decimal"

	payrollerrors "github.com/haingladys/JSDC-Accounting/internal/payroll/errors"
)

var hundred = decimal.NewFromInt(100)

// calculateNetSalary floors at zero so a negative incentive can never push
// the payout below nothing.
func calculateNetSalary(basicPay, incentive decimal.Decimal) decimal.Decimal {
	net := basicPay.Add(incentive)
	if net.IsNegative() {
		return decimal.Zero
	}
	return net
}

// normalizeSplit resolves the effective cash/bank percentages for a split
// type. Percentages that do not sum to 100 are renormalized proportionally;
// the bank share is derived as the complement so the pair sums to exactly
// 100 after rounding. A 0+0 split is rejected rather than left stale.
func normalizeSplit(splitType string, cashPct, bankPct decimal.Decimal) (decimal.Decimal, decimal.Decimal, error) {
	if !ValidSplitType(splitType) {
		return decimal.Zero, decimal.Zero, payrollerrors.ErrInvalidSplitType
	}

	switch splitType {
	case SplitFullCash:
		return hundred, decimal.Zero, nil
	case SplitFullBank:
		return decimal.Zero, hundred, nil
	}

	if cashPct.IsNegative() || bankPct.IsNegative() {
		return decimal.Zero, decimal.Zero, payrollerrors.ErrNegativeSplitPercentage
	}
	sum := cashPct.Add(bankPct)
	if sum.IsZero() {
		return decimal.Zero, decimal.Zero, payrollerrors.ErrZeroSplitPercentages
	}
	if !sum.Equal(hundred) {
		cashPct = cashPct.Mul(hundred).Div(sum).Round(2)
		bankPct = hundred.Sub(cashPct)
	}
	return cashPct, bankPct, nil
}

// splitAmounts applies the percentages to net salary, rounding each portion
// to 2 decimal places half away from zero. Banker's rounding is deliberately
// not used for currency.
func splitAmounts(netSalary, cashPct, bankPct decimal.Decimal) (decimal.Decimal, decimal.Decimal) {
	cashAmount := netSalary.Mul(cashPct).Div(hundred).Round(2)
	bankAmount := netSalary.Mul(bankPct).Div(hundred).Round(2)
	return cashAmount, bankAmount
}

// validateIncentives enforces the attendance gate: incentives are only
// payable on more than 28 worked days in the period.
func validateIncentives(incentive, workedDays decimal.Decimal) error {
	if incentive.IsPositive() && workedDays.LessThanOrEqual(decimal.NewFromInt(28)) {
		return payrollerrors.ErrIncentiveRequiresAttendance
	}
	return nil
}
