package model

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrInvalidConfig is matched (via errors.Is) by every ValidationError.
var ErrInvalidConfig = errors.New("invalid simulation config")

// Params defines one simulation run.
// Units:
// - InitialBalance: account currency, whole units
// - WinRate: percent 0..100
// - RiskRewardRatio: percent of position gained on a win (a loss always costs 1%)
// - PlatformFeeRate: percent of position charged on every trade
type Params struct {
	InitialBalance  int     `json:"initial_balance"`
	WinRate         int     `json:"win_rate"`
	RiskRewardRatio float64 `json:"risk_reward_ratio"`
	TotalTrades     int     `json:"total_trades"`
	Compounding     bool    `json:"compounding"`
	PlatformFeeRate float64 `json:"platform_fee_rate"`
}

// FieldError names a single configuration field that failed validation.
type FieldError struct {
	Field    string `json:"field"`
	Value    any    `json:"value,omitempty"`
	Expected string `json:"expected"`
}

func (e FieldError) String() string {
	if e.Value == nil {
		return fmt.Sprintf("%s: %s", e.Field, e.Expected)
	}
	return fmt.Sprintf("%s=%v: %s", e.Field, e.Value, e.Expected)
}

// ValidationError collects every failing field of a configuration.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.String())
	}
	return fmt.Sprintf("%s: %s", ErrInvalidConfig, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error { return ErrInvalidConfig }

func (e *ValidationError) add(field string, value any, expected string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Value: value, Expected: expected})
}

func (e *ValidationError) orNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

// Validate checks every field and reports all failures at once.
// A zero initial balance is rejected here because every percentage in the
// summary divides by it.
func (p Params) Validate() error {
	verr := &ValidationError{}
	if p.InitialBalance <= 0 {
		verr.add("initial_balance", p.InitialBalance, "must be > 0")
	}
	verr.checkWinRate(p.WinRate)
	if math.IsNaN(p.RiskRewardRatio) || math.IsInf(p.RiskRewardRatio, 0) || p.RiskRewardRatio < 0 {
		verr.add("risk_reward_ratio", p.RiskRewardRatio, "must be a finite number >= 0")
	}
	verr.checkTotalTrades(p.TotalTrades)
	if math.IsNaN(p.PlatformFeeRate) || math.IsInf(p.PlatformFeeRate, 0) || p.PlatformFeeRate < 0 {
		verr.add("platform_fee_rate", p.PlatformFeeRate, "must be a finite number >= 0")
	}
	return verr.orNil()
}

// ValidateSequence checks only the fields that shape an outcome sequence,
// with the same messages as Validate.
func ValidateSequence(totalTrades, winRate int) error {
	verr := &ValidationError{}
	verr.checkTotalTrades(totalTrades)
	verr.checkWinRate(winRate)
	return verr.orNil()
}

func (e *ValidationError) checkWinRate(winRate int) {
	if winRate < 0 || winRate > 100 {
		e.add("win_rate", winRate, "must be in [0, 100]")
	}
}

func (e *ValidationError) checkTotalTrades(totalTrades int) {
	if totalTrades < 1 {
		e.add("total_trades", totalTrades, "must be >= 1")
	}
}

// PositionSize returns the stake for the next trade given the running balance.
func (p Params) PositionSize(balance float64) float64 {
	if p.Compounding {
		return balance
	}
	return float64(p.InitialBalance)
}
