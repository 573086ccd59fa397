package payroll

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	payrollerrors "github.com/haingladys/JSDC-Accounting/internal/payroll/errors"
)

func TestCalculateNetSalary(t *testing.T) {
	net := calculateNetSalary(decimal.NewFromInt(30000), decimal.NewFromInt(2000))
	assert.True(t, net.Equal(decimal.NewFromInt(32000)))

	net = calculateNetSalary(decimal.NewFromInt(1000), decimal.NewFromInt(-5000))
	assert.True(t, net.IsZero(), "net salary never goes below zero, got %s", net)

	net = calculateNetSalary(decimal.Zero, decimal.Zero)
	assert.True(t, net.IsZero())
}

func TestNormalizeSplit(t *testing.T) {
	t.Run("full cash", func(t *testing.T) {
		cash, bank, err := normalizeSplit(SplitFullCash, decimal.NewFromInt(40), decimal.NewFromInt(60))
		assert.NoError(t, err)
		assert.True(t, cash.Equal(decimal.NewFromInt(100)))
		assert.True(t, bank.IsZero())
	})

	t.Run("full bank", func(t *testing.T) {
		cash, bank, err := normalizeSplit(SplitFullBank, decimal.Zero, decimal.Zero)
		assert.NoError(t, err)
		assert.True(t, cash.IsZero())
		assert.True(t, bank.Equal(decimal.NewFromInt(100)))
	})

	t.Run("split already summing to 100", func(t *testing.T) {
		cash, bank, err := normalizeSplit(SplitMixed, decimal.NewFromInt(70), decimal.NewFromInt(30))
		assert.NoError(t, err)
		assert.True(t, cash.Equal(decimal.NewFromInt(70)))
		assert.True(t, bank.Equal(decimal.NewFromInt(30)))
	})

	t.Run("split renormalized proportionally", func(t *testing.T) {
		cash, bank, err := normalizeSplit(SplitMixed, decimal.NewFromInt(30), decimal.NewFromInt(30))
		assert.NoError(t, err)
		assert.True(t, cash.Equal(decimal.NewFromInt(50)), "got cash %s", cash)
		assert.True(t, bank.Equal(decimal.NewFromInt(50)), "got bank %s", bank)
	})

	t.Run("renormalized pair always sums to exactly 100", func(t *testing.T) {
		cash, bank, err := normalizeSplit(SplitMixed, decimal.NewFromInt(1), decimal.NewFromInt(2))
		assert.NoError(t, err)
		assert.True(t, cash.Add(bank).Equal(decimal.NewFromInt(100)), "got %s + %s", cash, bank)
	})

	t.Run("zero split rejected", func(t *testing.T) {
		_, _, err := normalizeSplit(SplitMixed, decimal.Zero, decimal.Zero)
		assert.ErrorIs(t, err, payrollerrors.ErrZeroSplitPercentages)
	})

	t.Run("negative percentage rejected", func(t *testing.T) {
		_, _, err := normalizeSplit(SplitMixed, decimal.NewFromInt(-10), decimal.NewFromInt(110))
		assert.ErrorIs(t, err, payrollerrors.ErrNegativeSplitPercentage)
	})

	t.Run("unknown split type rejected", func(t *testing.T) {
		_, _, err := normalizeSplit("cheque", decimal.NewFromInt(50), decimal.NewFromInt(50))
		assert.ErrorIs(t, err, payrollerrors.ErrInvalidSplitType)
	})
}

func TestSplitAmounts(t *testing.T) {
	net := decimal.NewFromInt(30000)

	cash, bank := splitAmounts(net, decimal.NewFromInt(100), decimal.Zero)
	assert.True(t, cash.Equal(net))
	assert.True(t, bank.IsZero())

	cash, bank = splitAmounts(net, decimal.NewFromInt(50), decimal.NewFromInt(50))
	assert.True(t, cash.Equal(decimal.NewFromInt(15000)))
	assert.True(t, bank.Equal(decimal.NewFromInt(15000)))

	// 33.33 / 66.67 of 100.01 rounds each portion half away from zero.
	cash, bank = splitAmounts(decimal.NewFromFloat(100.01), decimal.NewFromFloat(33.33), decimal.NewFromFloat(66.67))
	assert.Equal(t, "33.33", cash.StringFixed(2))
	assert.Equal(t, "66.68", bank.StringFixed(2))
}

func TestSplitAmounts_SumStaysWithinOneCent(t *testing.T) {
	cases := []struct {
		net  float64
		cash float64
	}{
		{30000, 100},
		{12345.67, 33.33},
		{999.99, 66.67},
		{0.01, 50},
	}

	for _, tc := range cases {
		cashPct := decimal.NewFromFloat(tc.cash)
		bankPct := decimal.NewFromInt(100).Sub(cashPct)
		net := decimal.NewFromFloat(tc.net)

		cash, bank := splitAmounts(net, cashPct, bankPct)
		diff := net.Sub(cash.Add(bank)).Abs()
		assert.True(t, diff.LessThanOrEqual(decimal.NewFromFloat(0.01)),
			"net %s split %s/%s drifted by %s", net, cashPct, bankPct, diff)
	}
}

func TestValidateIncentives(t *testing.T) {
	assert.NoError(t, validateIncentives(decimal.Zero, decimal.Zero))
	assert.NoError(t, validateIncentives(decimal.NewFromInt(2000), decimal.NewFromFloat(28.5)))
	assert.NoError(t, validateIncentives(decimal.NewFromInt(2000), decimal.NewFromInt(29)))

	err := validateIncentives(decimal.NewFromInt(2000), decimal.NewFromInt(28))
	assert.ErrorIs(t, err, payrollerrors.ErrIncentiveRequiresAttendance)

	err = validateIncentives(decimal.NewFromFloat(0.01), decimal.Zero)
	assert.ErrorIs(t, err, payrollerrors.ErrIncentiveRequiresAttendance)
}
