package backtest

import "wager-sim/internal/model"

// TradeRecord is one row of per-trade output.
// This is the primary artifact for "what happened" in a simulation.
type TradeRecord struct {
	Index   int           `json:"index"`
	Outcome model.Outcome `json:"outcome"`

	PositionSize float64 `json:"position_size"`

	// PnL is net of fee and rounded to cents.
	PnL float64 `json:"pnl"`
	// Fee is rounded to cents.
	Fee float64 `json:"fee"`

	BalanceAfter float64 `json:"balance_after"`
}

// Summary is computed once from a finished ledger.
type Summary struct {
	FinalBalance   float64 `json:"final_balance"`
	TotalFeePaid   float64 `json:"total_fee_paid"`
	GrossProfit    float64 `json:"gross_profit"`
	GrossProfitPct float64 `json:"gross_profit_pct"`
	NetProfit      float64 `json:"net_profit"`
	NetProfitPct   float64 `json:"net_profit_pct"`
	// MaxDrawdownPct is <= 0; 0 means the balance never fell below its running peak.
	MaxDrawdownPct float64 `json:"max_drawdown_pct"`
}

// Finite reports whether every summary figure is a real number. A compounding
// run can overflow float64, after which balances are ±Inf or NaN.
func (s Summary) Finite() bool {
	return model.Finite(s.FinalBalance, s.TotalFeePaid, s.GrossProfit, s.GrossProfitPct,
		s.NetProfit, s.NetProfitPct, s.MaxDrawdownPct)
}

type Result struct {
	Params  model.Params  `json:"params"`
	Ledger  []TradeRecord `json:"ledger"`
	Summary Summary       `json:"summary"`
}

// Outcomes recovers the replayed sequence from the ledger.
func (r *Result) Outcomes() []bool {
	out := make([]bool, len(r.Ledger))
	for i, rec := range r.Ledger {
		out[i] = rec.Outcome.IsWin()
	}
	return out
}

// Wins counts winning trades in the ledger.
func (r *Result) Wins() int {
	n := 0
	for _, rec := range r.Ledger {
		if rec.Outcome.IsWin() {
			n++
		}
	}
	return n
}
