package backtest

import (
	"errors"
	"fmt"

	"wager-sim/internal/logging"
	"wager-sim/internal/model"
	"wager-sim/internal/sequence"
)

var ErrSequenceLength = errors.New("outcome sequence length does not match total_trades")

var log = logging.New("engine")

type Engine struct{}

func New() *Engine { return &Engine{} }

// Simulate validates params, draws a fresh outcome sequence from src and
// replays it.
func (e *Engine) Simulate(params model.Params, src sequence.Source) (*Result, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	outcomes, err := sequence.Generate(src, params.TotalTrades, params.WinRate)
	if err != nil {
		return nil, err
	}
	return e.Run(params, outcomes)
}

// Run replays a fixed outcome sequence against a fresh account.
// The same params and outcomes always produce the same Result.
func (e *Engine) Run(params model.Params, outcomes []bool) (*Result, error) {
	acc, err := model.NewAccount(params)
	if err != nil {
		return nil, err
	}
	if len(outcomes) != params.TotalTrades {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrSequenceLength, len(outcomes), params.TotalTrades)
	}

	log.Debug("Starting simulation",
		"initial_balance", params.InitialBalance,
		"total_trades", params.TotalTrades,
		"win_rate", params.WinRate,
		"risk_reward_ratio", params.RiskRewardRatio,
		"compounding", params.Compounding,
		"platform_fee_rate", params.PlatformFeeRate,
	)

	ledger := make([]TradeRecord, 0, len(outcomes))
	for idx, win := range outcomes {
		res := acc.ApplyOutcome(win)
		log.Debug("Settled trade", "index", idx, "win", win, "position_size", res.PositionSize, "pnl", res.PnL, "balance", res.BalanceAfter)

		ledger = append(ledger, TradeRecord{
			Index:        idx,
			Outcome:      model.OutcomeFromWin(win),
			PositionSize: res.PositionSize,
			PnL:          res.PnL,
			Fee:          model.Round2(res.Fee),
			BalanceAfter: res.BalanceAfter,
		})
	}

	summary := Calculate(ledger, params.InitialBalance)
	log.Debug("Finished simulation", "final_balance", summary.FinalBalance, "max_drawdown_pct", summary.MaxDrawdownPct)

	return &Result{
		Params:  params,
		Ledger:  ledger,
		Summary: summary,
	}, nil
}
