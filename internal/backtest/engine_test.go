package backtest

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wager-sim/internal/model"
	"wager-sim/internal/sequence"
)

func scenarioParams() model.Params {
	return model.Params{
		InitialBalance:  1000,
		TotalTrades:     4,
		WinRate:         50,
		RiskRewardRatio: 2,
		PlatformFeeRate: 0,
		Compounding:     false,
	}
}

func TestEngine_RunFixedScenario(t *testing.T) {
	res, err := New().Run(scenarioParams(), []bool{true, false, true, false})
	require.NoError(t, err)

	require.Len(t, res.Ledger, 4)
	pnls := make([]float64, 0, 4)
	balances := make([]float64, 0, 4)
	for _, rec := range res.Ledger {
		pnls = append(pnls, rec.PnL)
		balances = append(balances, rec.BalanceAfter)
		assert.Equal(t, 0.0, rec.Fee)
		assert.Equal(t, 1000.0, rec.PositionSize)
	}
	assert.Equal(t, []float64{20, -10, 20, -10}, pnls)
	assert.Equal(t, []float64{1020, 1010, 1030, 1020}, balances)
	assert.Equal(t, model.OutcomeWin, res.Ledger[0].Outcome)
	assert.Equal(t, model.OutcomeLoss, res.Ledger[1].Outcome)

	s := res.Summary
	assert.Equal(t, 1020.0, s.FinalBalance)
	assert.Equal(t, 20.0, s.GrossProfit)
	assert.Equal(t, 2.0, s.GrossProfitPct)
	assert.Equal(t, 0.0, s.TotalFeePaid)
	assert.Equal(t, 20.0, s.NetProfit)
	assert.Equal(t, 2.0, s.NetProfitPct)
	assert.Equal(t, -0.98, s.MaxDrawdownPct)
	assert.Equal(t, 2, res.Wins())
}

func TestEngine_RunCompoundingWithFees(t *testing.T) {
	p := scenarioParams()
	p.Compounding = true
	p.PlatformFeeRate = 0.1

	res, err := New().Run(p, []bool{true, false, true, false})
	require.NoError(t, err)

	wantPnL := []float64{19, -11.21, 19.15, -11.30}
	wantFee := []float64{1, 1.02, 1.01, 1.03}
	wantBal := []float64{1019, 1007.79, 1026.94, 1015.64}
	for i, rec := range res.Ledger {
		assert.Equal(t, wantPnL[i], rec.PnL, "pnl %d", i)
		assert.Equal(t, wantFee[i], rec.Fee, "fee %d", i)
		assert.InDelta(t, wantBal[i], rec.BalanceAfter, 1e-9, "balance %d", i)
	}

	s := res.Summary
	assert.Equal(t, 4.06, s.TotalFeePaid)
	assert.InDelta(t, 15.64, s.GrossProfit, 1e-9)
	assert.Equal(t, 1.56, s.GrossProfitPct)
	assert.InDelta(t, 11.58, s.NetProfit, 1e-9)
	assert.Equal(t, 1.16, s.NetProfitPct)
	assert.Equal(t, -1.1, s.MaxDrawdownPct)
}

func TestEngine_SingleWinBoundary(t *testing.T) {
	p := model.Params{InitialBalance: 500, TotalTrades: 1, WinRate: 100, RiskRewardRatio: 3, Compounding: true}

	res, err := New().Simulate(p, sequence.NewSource(99))
	require.NoError(t, err)

	require.Len(t, res.Ledger, 1)
	assert.Equal(t, model.OutcomeWin, res.Ledger[0].Outcome)
	assert.Equal(t, 15.0, res.Ledger[0].PnL)
	assert.Equal(t, 515.0, res.Summary.FinalBalance)
	assert.Equal(t, 0.0, res.Summary.MaxDrawdownPct)
}

func TestEngine_RunRejectsBadInput(t *testing.T) {
	_, err := New().Run(scenarioParams(), []bool{true, false})
	assert.ErrorIs(t, err, ErrSequenceLength)

	p := scenarioParams()
	p.InitialBalance = 0
	_, err = New().Run(p, []bool{true, false, true, false})
	assert.ErrorIs(t, err, model.ErrInvalidConfig)
}

func TestEngine_SimulateRejectsBeforeGenerating(t *testing.T) {
	src := &countingSource{}
	p := scenarioParams()
	p.TotalTrades = 0

	_, err := New().Simulate(p, src)
	assert.ErrorIs(t, err, model.ErrInvalidConfig)
	assert.Zero(t, src.calls, "no randomness consumed for an invalid config")
}

func TestEngine_RunIsIdempotent(t *testing.T) {
	p := model.Params{InitialBalance: 2500, TotalTrades: 300, WinRate: 45, RiskRewardRatio: 2.7, Compounding: true, PlatformFeeRate: 0.07}
	outcomes, err := sequence.Generate(sequence.NewSource(5), p.TotalTrades, p.WinRate)
	require.NoError(t, err)

	a, err := New().Run(p, outcomes)
	require.NoError(t, err)
	b, err := New().Run(p, outcomes)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestEngine_LedgerInvariants(t *testing.T) {
	engine := New()
	cases := []model.Params{
		{InitialBalance: 1000, TotalTrades: 100, WinRate: 50, RiskRewardRatio: 2.5, Compounding: true, PlatformFeeRate: 0.1},
		{InitialBalance: 1000, TotalTrades: 250, WinRate: 30, RiskRewardRatio: 1.5, Compounding: false, PlatformFeeRate: 0.25},
		{InitialBalance: 10, TotalTrades: 500, WinRate: 10, RiskRewardRatio: 0.5, Compounding: false, PlatformFeeRate: 5},
		{InitialBalance: 7, TotalTrades: 1, WinRate: 0, RiskRewardRatio: 0, Compounding: true},
	}

	for seed, p := range cases {
		res, err := engine.Simulate(p, sequence.NewSource(uint64(seed)))
		require.NoError(t, err)

		require.Len(t, res.Ledger, p.TotalTrades)
		assert.Equal(t, sequence.WinCount(p.TotalTrades, p.WinRate), res.Wins())

		prev := float64(p.InitialBalance)
		fees := 0.0
		for i, rec := range res.Ledger {
			assert.Equal(t, prev+rec.PnL, rec.BalanceAfter, "case %d trade %d", seed, i)
			assert.GreaterOrEqual(t, rec.Fee, 0.0)
			prev = rec.BalanceAfter
			fees += rec.Fee
		}

		assert.Equal(t, model.Round2(fees), res.Summary.TotalFeePaid)
		assert.Equal(t, prev, res.Summary.FinalBalance)
		assert.LessOrEqual(t, res.Summary.MaxDrawdownPct, 0.0)
	}
}

type countingSource struct{ calls int }

func (c *countingSource) IntN(n int) int {
	c.calls++
	return 0
}

func (c *countingSource) Shuffle(n int, swap func(i, j int)) {
	c.calls++
}

func TestEngine_OverflowPropagates(t *testing.T) {
	// Each win doubles the balance; float64 runs out after ~1015 of them.
	p := model.Params{InitialBalance: 1000, TotalTrades: 1100, WinRate: 100, RiskRewardRatio: 100, Compounding: true}
	require.NoError(t, p.Validate())

	outcomes := make([]bool, p.TotalTrades)
	for i := range outcomes {
		outcomes[i] = true
	}

	var res *Result
	require.NotPanics(t, func() {
		var err error
		res, err = New().Run(p, outcomes)
		require.NoError(t, err)
	})

	require.Len(t, res.Ledger, p.TotalTrades)
	assert.False(t, math.IsInf(res.Ledger[0].BalanceAfter, 0))
	assert.True(t, math.IsInf(res.Summary.FinalBalance, 1))
	assert.True(t, math.IsInf(res.Summary.GrossProfit, 1))
	assert.False(t, res.Summary.Finite())
}

func TestEngine_OverflowWithFeesAndLoss(t *testing.T) {
	p := model.Params{InitialBalance: 1000, TotalTrades: 1101, WinRate: 100, RiskRewardRatio: 100, Compounding: true, PlatformFeeRate: 0.1}

	outcomes := make([]bool, p.TotalTrades)
	for i := range outcomes {
		outcomes[i] = i < p.TotalTrades-1
	}

	var res *Result
	require.NotPanics(t, func() {
		var err error
		res, err = New().Run(p, outcomes)
		require.NoError(t, err)
	})

	assert.True(t, math.IsNaN(res.Summary.FinalBalance))
	assert.False(t, res.Summary.Finite())
}

func TestSummary_FiniteForNormalRun(t *testing.T) {
	res, err := New().Run(scenarioParams(), []bool{true, false, true, false})
	require.NoError(t, err)
	assert.True(t, res.Summary.Finite())
}
