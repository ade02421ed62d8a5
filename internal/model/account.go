package model

// AccountState captures mutable state.
type AccountState struct {
	Balance float64
	// TotalFeePaid is the unrounded running sum of fees.
	TotalFeePaid float64
}

// Account is a convenience wrapper bundling params + state.
type Account struct {
	Params Params
	State  AccountState
}

func NewAccount(params Params) (*Account, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &Account{
		Params: params,
		State:  AccountState{Balance: float64(params.InitialBalance)},
	}, nil
}

// TradeResult captures what happened in one trade.
type TradeResult struct {
	Win           bool
	PositionSize  float64
	PnL           float64 // rounded to cents, net of fee
	Fee           float64 // unrounded
	BalanceBefore float64
	BalanceAfter  float64
}

// ApplyOutcome settles one wager against the account.
//
// A win pays RiskRewardRatio percent of the position; a loss always costs
// exactly 1 percent. The ratio expresses reward per fixed unit of risk, so it
// never scales the loss side.
func (a *Account) ApplyOutcome(win bool) TradeResult {
	res := TradeResult{
		Win:           win,
		BalanceBefore: a.State.Balance,
	}

	pos := a.Params.PositionSize(a.State.Balance)
	res.PositionSize = pos

	var pnl float64
	if win {
		pnl = pos / 100 * a.Params.RiskRewardRatio
	} else {
		pnl = -pos / 100
	}

	if a.Params.PlatformFeeRate != 0 {
		fee := a.Params.PlatformFeeRate / 100 * pos
		pnl -= fee
		a.State.TotalFeePaid += fee
		res.Fee = fee
	}

	res.PnL = Round2(pnl)
	a.State.Balance += res.PnL
	res.BalanceAfter = a.State.Balance
	return res
}
