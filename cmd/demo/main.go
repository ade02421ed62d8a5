package main

import (
	"flag"
	"fmt"
	"os"

	"wager-sim/internal/backtest"
	"wager-sim/internal/config"
	"wager-sim/internal/model"
	"wager-sim/internal/report"
	"wager-sim/internal/sequence"
)

// Demo:
// - Settle a short fixed W/L sequence trade by trade on a bare account
// - Run the same sequence through the engine and print its summary
// - Draw a seeded sequence to show the generator
func main() {
	cfgPath := flag.String("config", "", "Path to YAML config (optional)")
	outcomes := flag.String("outcomes", "WLWL", "W/L sequence to settle")
	outCSV := flag.String("out", "", "Optional path to write ledger CSV (e.g. results/demo.csv)")
	flag.Parse()

	// Defaults (can be overridden via --config).
	params := model.Params{
		InitialBalance:  1000,
		WinRate:         50,
		RiskRewardRatio: 2,
		TotalTrades:     4,
		Compounding:     false,
	}
	if *cfgPath != "" {
		cfg, err := config.LoadUnchecked(*cfgPath)
		if err != nil {
			panic(err)
		}
		params, err = cfg.Params()
		if err != nil {
			panic(err)
		}
	}

	seq, err := sequence.Parse(*outcomes)
	if err != nil {
		panic(err)
	}
	params.TotalTrades = len(seq)

	acc, err := model.NewAccount(params)
	if err != nil {
		panic(err)
	}
	fmt.Printf("Start balance=%.2f compounding=%t rr=%g fee=%g%%\n",
		acc.State.Balance, params.Compounding, params.RiskRewardRatio, params.PlatformFeeRate)
	for i, win := range seq {
		res := acc.ApplyOutcome(win)
		fmt.Printf("%02d %-4s pos=%.2f pnl=%.2f fee=%.4f balance %.2f -> %.2f\n",
			i, model.OutcomeFromWin(win), res.PositionSize, res.PnL, res.Fee, res.BalanceBefore, res.BalanceAfter)
	}
	fmt.Printf("Fees accrued=%.4f\n\n", acc.State.TotalFeePaid)

	res, err := backtest.New().Run(params, seq)
	if err != nil {
		panic(err)
	}
	report.NewPrinter(os.Stdout, false).Summary(res)

	if *outCSV != "" {
		if err := backtest.WriteLedgerCSV(*outCSV, res.Ledger); err != nil {
			panic(err)
		}
		fmt.Printf("Wrote %d rows to %s\n", len(res.Ledger), *outCSV)
	}

	drawn, err := sequence.Generate(sequence.NewSource(42), 20, params.WinRate)
	if err != nil {
		panic(err)
	}
	fmt.Printf("\nSeed 42, 20 trades at %d%%: %s (%d wins)\n", params.WinRate, sequence.Format(drawn), sequence.Count(drawn))
}
