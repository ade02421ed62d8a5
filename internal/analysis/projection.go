package analysis

import (
	"math"

	"wager-sim/internal/model"
	"wager-sim/internal/sequence"
)

// Projection is the closed-form counterpart of a simulation run.
//
// The win count of a run is fixed by the params, so outcome order only
// matters through cent rounding of each PnL. Without compounding every win
// (and every loss) settles to the same amount and the projection is exact;
// with compounding it ignores per-trade rounding.
type Projection struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`

	// Percent of position per trade, net of fee.
	WinPnLPct  float64 `json:"win_pnl_pct"`
	LossPnLPct float64 `json:"loss_pnl_pct"`

	ExpectedPnLPctPerTrade float64 `json:"expected_pnl_pct_per_trade"`
	// BreakevenWinRate is the win rate (percent) at which the expected PnL is
	// zero. Above 100 means the params cannot break even.
	BreakevenWinRate float64 `json:"breakeven_win_rate"`

	ProjectedFinalBalance float64 `json:"projected_final_balance"`
	ProjectedReturnPct    float64 `json:"projected_return_pct"`
	Exact                 bool    `json:"exact"`
}

// Finite reports whether the projected figures are real numbers; with
// compounding they overflow float64 for large runs.
func (p Projection) Finite() bool {
	return model.Finite(p.ExpectedPnLPctPerTrade, p.ProjectedFinalBalance, p.ProjectedReturnPct)
}

func Project(p model.Params) (Projection, error) {
	if err := p.Validate(); err != nil {
		return Projection{}, err
	}

	wins := sequence.WinCount(p.TotalTrades, p.WinRate)
	losses := p.TotalTrades - wins
	winPct := p.RiskRewardRatio - p.PlatformFeeRate
	lossPct := -1 - p.PlatformFeeRate

	out := Projection{
		Wins:       wins,
		Losses:     losses,
		WinPnLPct:  winPct,
		LossPnLPct: lossPct,
		ExpectedPnLPctPerTrade: model.Round2(
			(float64(wins)*winPct + float64(losses)*lossPct) / float64(p.TotalTrades),
		),
		BreakevenWinRate: model.Round2((1 + p.PlatformFeeRate) * 100 / (p.RiskRewardRatio + 1)),
	}

	initial := float64(p.InitialBalance)
	if p.Compounding {
		out.ProjectedFinalBalance = model.Round2(initial *
			math.Pow(1+winPct/100, float64(wins)) *
			math.Pow(1+lossPct/100, float64(losses)))
	} else {
		// Settle one win and one loss exactly the way the engine does.
		winAcc, _ := model.NewAccount(p)
		lossAcc, _ := model.NewAccount(p)
		winPnL := winAcc.ApplyOutcome(true).PnL
		lossPnL := lossAcc.ApplyOutcome(false).PnL
		out.ProjectedFinalBalance = model.Round2(initial + float64(wins)*winPnL + float64(losses)*lossPnL)
		out.Exact = true
	}
	out.ProjectedReturnPct = model.Round2((out.ProjectedFinalBalance - initial) / (initial / 100))
	return out, nil
}
