package backtest

import "wager-sim/internal/model"

// Calculate derives the Summary from a finished ledger in one pass.
//
// TotalFeePaid sums the per-record (cent-rounded) fees so the ledger and
// summary always reconcile. NetProfit subtracts fees from GrossProfit even
// though each PnL is already net of its fee; this mirrors how the model
// reports "gross" and "net" and is kept as is. GrossProfit and NetProfit
// are left unrounded; only the percentages are rounded to cents.
func Calculate(ledger []TradeRecord, initialBalance int) Summary {
	initial := float64(initialBalance)

	var fees float64
	for _, rec := range ledger {
		fees += rec.Fee
	}

	final := initial
	if len(ledger) > 0 {
		final = ledger[len(ledger)-1].BalanceAfter
	}

	s := Summary{
		FinalBalance:   final,
		TotalFeePaid:   model.Round2(fees),
		MaxDrawdownPct: MaxDrawdownPct(ledger, initialBalance),
	}
	s.GrossProfit = final - initial
	s.NetProfit = s.GrossProfit - s.TotalFeePaid
	if initialBalance > 0 {
		s.GrossProfitPct = model.Round2(s.GrossProfit / (initial / 100))
		s.NetProfitPct = model.Round2(s.NetProfit / (initial / 100))
	}
	return s
}

// MaxDrawdownPct returns the deepest peak-to-trough fall, as a non-positive
// percentage rounded to cents. The running peak starts at initialBalance.
func MaxDrawdownPct(ledger []TradeRecord, initialBalance int) float64 {
	peak := float64(initialBalance)
	worst := 0.0
	for _, rec := range ledger {
		if rec.BalanceAfter > peak {
			peak = rec.BalanceAfter
		}
		if peak == 0 {
			continue
		}
		dd := (rec.BalanceAfter - peak) / peak
		if dd < worst {
			worst = dd
		}
	}
	return model.Round2(worst * 100)
}
