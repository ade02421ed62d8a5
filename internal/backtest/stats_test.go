package backtest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ledgerOf(balances ...float64) []TradeRecord {
	out := make([]TradeRecord, 0, len(balances))
	for i, b := range balances {
		out = append(out, TradeRecord{Index: i, BalanceAfter: b})
	}
	return out
}

func TestMaxDrawdownPct(t *testing.T) {
	cases := []struct {
		name     string
		balances []float64
		want     float64
	}{
		{"rising only", []float64{1010, 1020, 1020, 1100}, 0},
		{"win loss alternating", []float64{1020, 1010, 1030, 1020}, -0.98},
		{"first trade loses", []float64{900, 950, 1000}, -10},
		{"deep trough after new peak", []float64{1200, 600, 1500}, -50},
		{"below zero", []float64{500, -500}, -150},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, MaxDrawdownPct(ledgerOf(c.balances...), 1000))
		})
	}
}

func TestMaxDrawdownPct_ZeroIffNonDecreasing(t *testing.T) {
	assert.Equal(t, 0.0, MaxDrawdownPct(ledgerOf(1000, 1000, 1001), 1000))
	assert.Less(t, MaxDrawdownPct(ledgerOf(1001, 1000), 1000), 0.0)
}

func TestCalculate_EmptyLedger(t *testing.T) {
	s := Calculate(nil, 1000)

	assert.Equal(t, 1000.0, s.FinalBalance)
	assert.Equal(t, 0.0, s.GrossProfit)
	assert.Equal(t, 0.0, s.MaxDrawdownPct)
}

func TestCalculate_NetSubtractsFees(t *testing.T) {
	ledger := []TradeRecord{
		{PnL: 49.5, Fee: 0.5, BalanceAfter: 1049.5},
		{PnL: -10.5, Fee: 0.52, BalanceAfter: 1039},
	}

	s := Calculate(ledger, 1000)

	assert.Equal(t, 1039.0, s.FinalBalance)
	assert.Equal(t, 1.02, s.TotalFeePaid)
	assert.Equal(t, 39.0, s.GrossProfit)
	assert.Equal(t, 3.9, s.GrossProfitPct)
	assert.InDelta(t, 37.98, s.NetProfit, 1e-9)
	assert.Equal(t, 3.8, s.NetProfitPct)
	assert.Equal(t, -1.0, s.MaxDrawdownPct)
}

func TestCalculate_ProfitIsUnrounded(t *testing.T) {
	final := 1000.004
	ledger := []TradeRecord{{Fee: 0.01, BalanceAfter: final}}

	s := Calculate(ledger, 1000)

	gross := final - 1000
	assert.Equal(t, gross, s.GrossProfit)
	assert.NotZero(t, s.GrossProfit)
	assert.Equal(t, gross-0.01, s.NetProfit)
	assert.Equal(t, 0.0, s.GrossProfitPct)
}
