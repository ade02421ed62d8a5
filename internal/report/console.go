// Package report renders simulation results for humans. It only reads
// results; nothing here feeds back into a run.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"wager-sim/internal/analysis"
	"wager-sim/internal/backtest"
)

const (
	colorReset = "\033[0m"
	colorGreen = "\033[0;32m"
	colorRed   = "\033[0;31m"
	colorCyan  = "\033[0;36m"
)

// Printer writes to w, optionally with ANSI colors.
type Printer struct {
	w     io.Writer
	color bool
}

func NewPrinter(w io.Writer, color bool) *Printer {
	return &Printer{w: w, color: color}
}

func (p *Printer) line(color, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if p.color && color != "" {
		msg = color + msg + colorReset
	}
	fmt.Fprintln(p.w, msg)
}

// signColor is green for gains and red for losses.
func signColor(v float64) string {
	if v < 0 {
		return colorRed
	}
	return colorGreen
}

func (p *Printer) Summary(res *backtest.Result) {
	s := res.Summary
	prm := res.Params

	p.line(colorCyan, "=== Simulation Results ===")
	p.line("", "Trades:        %d (%d wins, win rate %d%%)", len(res.Ledger), res.Wins(), prm.WinRate)
	p.line("", "Risk/Reward:   1:%g   Compounding: %t   Fee: %g%%", prm.RiskRewardRatio, prm.Compounding, prm.PlatformFeeRate)
	p.line("", "Initial:       %d$", prm.InitialBalance)
	p.line(signColor(s.GrossProfit), "Final Balance: %.2f$", s.FinalBalance)
	p.line(signColor(s.GrossProfit), "Gross PNL:     %.2f$ (%.2f%%)", s.GrossProfit, s.GrossProfitPct)
	p.line(signColor(s.NetProfit), "Net PNL:       %.2f$ (%.2f%%)", s.NetProfit, s.NetProfitPct)
	p.line("", "Fee:           %.2f$", s.TotalFeePaid)
	p.line(signColor(s.MaxDrawdownPct), "MDD:           %.2f%%", s.MaxDrawdownPct)
}

func (p *Printer) Projection(proj analysis.Projection) {
	kind := "approx"
	if proj.Exact {
		kind = "exact"
	}
	p.line(colorCyan, "=== Projection (%s) ===", kind)
	p.line("", "Per win:       %.4f%%   Per loss: %.4f%%", proj.WinPnLPct, proj.LossPnLPct)
	p.line("", "Expected/trade %.2f%%   Breakeven win rate: %.2f%%", proj.ExpectedPnLPctPerTrade, proj.BreakevenWinRate)
	p.line(signColor(proj.ProjectedReturnPct), "Projected:     %.2f$ (%.2f%%)", proj.ProjectedFinalBalance, proj.ProjectedReturnPct)
}

// Ledger prints trades in [from, to), clamped to the ledger bounds.
func (p *Printer) Ledger(ledger []backtest.TradeRecord, from, to int) {
	from = min(max(from, 0), len(ledger))
	to = min(to, len(ledger))
	p.line(colorCyan, "=== Trade List ===")
	for _, r := range ledger[from:max(from, to)] {
		p.line("", "#%d | %-4s | Position: %.2f | P&L: %.2f$ | Fee: %.2f$ | Balance: %.2f$",
			r.Index+1, r.Outcome, r.PositionSize, r.PnL, r.Fee, r.BalanceAfter)
	}
}

func (p *Printer) Ranking(ranked []analysis.RankedProfile) {
	fmt.Fprintf(p.w, "%-4s %-18s %-8s %-6s %-6s %-8s %-12s %-10s\n", "rank", "profile", "trades", "win%", "rr", "fee%", "projected$", "return%")
	for i, r := range ranked {
		fmt.Fprintf(p.w, "%-4d %-18s %-8d %-6d %-6g %-8g %-12.2f %-10.2f\n",
			i+1,
			r.ID,
			r.Params.TotalTrades,
			r.Params.WinRate,
			r.Params.RiskRewardRatio,
			r.Params.PlatformFeeRate,
			r.ProjectedFinalBalance,
			r.ProjectedReturnPct,
		)
	}
}

// WriteJSON emits v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
